package report

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	elevationColor = color.RGBA{R: 0x31, G: 0x68, B: 0x8e, A: 0xff}
	windageColor   = color.RGBA{R: 0xb5, G: 0x3b, B: 0x2b, A: 0xff}
)

// WritePlot renders drop and windage against range as a PNG.
func (c Card) WritePlot(w io.Writer) error {
	if len(c.Rows) == 0 {
		return fmt.Errorf("no rows to plot")
	}

	p := plot.New()
	p.Title.Text = c.Title
	p.X.Label.Text = fmt.Sprintf("Range (%s)", c.Units.Range)
	p.Y.Label.Text = fmt.Sprintf("Offset (%s)", c.Units.Offset)
	p.Add(plotter.NewGrid())

	elev := make(plotter.XYs, len(c.Rows))
	wind := make(plotter.XYs, len(c.Rows))
	for i, r := range c.Rows {
		elev[i] = plotter.XY{X: r.Range, Y: r.Elevation}
		wind[i] = plotter.XY{X: r.Range, Y: r.Windage}
	}

	for _, s := range []struct {
		name  string
		pts   plotter.XYs
		color color.Color
	}{
		{"drop", elev, elevationColor},
		{"windage", wind, windageColor},
	} {
		line, err := plotter.NewLine(s.pts)
		if err != nil {
			return err
		}
		line.Color = s.color
		line.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add(s.name, line)
	}
	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	wt, err := p.WriterTo(8*vg.Inch, 5*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("failed to render plot: %w", err)
	}
	_, err = wt.WriteTo(w)
	return err
}
