package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// RenderChart writes a standalone HTML line chart of drop, windage and
// velocity against range.
func (c Card) RenderChart(w io.Writer) error {
	du := c.Units
	ranges := make([]string, len(c.Rows))
	elev := make([]opts.LineData, len(c.Rows))
	wind := make([]opts.LineData, len(c.Rows))
	vel := make([]opts.LineData, len(c.Rows))
	for i, r := range c.Rows {
		ranges[i] = fmt.Sprintf("%.0f", r.Range)
		elev[i] = opts.LineData{Value: r.Elevation}
		wind[i] = opts.LineData{Value: r.Windage}
		vel[i] = opts.LineData{Value: r.Velocity, YAxisIndex: 1}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Range card", Width: "900px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{Title: c.Title, Subtitle: fmt.Sprintf("%d rows", len(c.Rows))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: fmt.Sprintf("Range (%s)", du.Range), NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: fmt.Sprintf("Offset (%s)", du.Offset)}),
	)
	line.ExtendYAxis(opts.YAxis{Name: fmt.Sprintf("Velocity (%s)", du.Velocity)})

	line.SetXAxis(ranges).
		AddSeries("drop", elev).
		AddSeries("windage", wind).
		AddSeries("velocity", vel)

	if err := line.Render(w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}
