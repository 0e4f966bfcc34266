// Package report turns sampled trajectories into range cards: a text table,
// a PNG plot and an interactive HTML chart.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/banshee-data/ballistics/internal/trajectory"
	"github.com/banshee-data/ballistics/internal/units"
)

// Row is one range-card line in display units.
type Row struct {
	Range          float64 `json:"range"`
	Elevation      float64 `json:"elevation"`
	Windage        float64 `json:"windage"`
	ElevationAngle float64 `json:"elevation_angle"`
	WindageAngle   float64 `json:"windage_angle"`
	Velocity       float64 `json:"velocity"`
	Mach           float64 `json:"mach"`
	Energy         float64 `json:"energy"`
	Time           float64 `json:"time"`
}

// Card is a converted range card with the units it is expressed in.
type Card struct {
	Title string             `json:"title"`
	Units units.DisplayUnits `json:"units"`
	Rows  []Row              `json:"rows"`
}

// NewCard converts measurements into rows in the given unit system.
func NewCard(title string, ms []trajectory.Measurement, system units.System) Card {
	du := system.Display()
	rows := make([]Row, len(ms))
	for i, m := range ms {
		rows[i] = Row{
			Range:          units.ConvertDistance(m.Distance, du.Range),
			Elevation:      units.ConvertDistance(m.Elevation, du.Offset),
			Windage:        units.ConvertDistance(m.Windage, du.Offset),
			ElevationAngle: units.ConvertAngle(m.ElevationMOA*units.RadiansPerMOA, du.Angle),
			WindageAngle:   units.ConvertAngle(m.WindageMOA*units.RadiansPerMOA, du.Angle),
			Velocity:       units.ConvertSpeed(m.Velocity, du.Velocity),
			Mach:           m.Mach,
			Energy:         units.ConvertEnergy(m.Energy, du.Energy),
			Time:           m.Time,
		}
	}
	return Card{Title: title, Units: du, Rows: rows}
}

// WriteTable prints the card as aligned text columns.
func (c Card) WriteTable(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	du := c.Units
	if c.Title != "" {
		fmt.Fprintf(tw, "%s\n", c.Title)
	}
	fmt.Fprintf(tw, "Range (%s)\tDrop (%s)\tWindage (%s)\tDrop (%s)\tWindage (%s)\tVelocity (%s)\tMach\tEnergy (%s)\tTime (s)\t\n",
		du.Range, du.Offset, du.Offset, du.Angle, du.Angle, du.Velocity, du.Energy)
	for _, r := range c.Rows {
		fmt.Fprintf(tw, "%.0f\t%.2f\t%.2f\t%.2f\t%.2f\t%.0f\t%.2f\t%.0f\t%.3f\t\n",
			r.Range, r.Elevation, r.Windage, r.ElevationAngle, r.WindageAngle,
			r.Velocity, r.Mach, r.Energy, r.Time)
	}
	return tw.Flush()
}
