package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/ballistics/internal/testutil"
	"github.com/banshee-data/ballistics/internal/trajectory"
	"github.com/banshee-data/ballistics/internal/units"
)

var sample = []trajectory.Measurement{
	{Time: 0, Distance: 0, Elevation: -0.0381, Velocity: 826.008, Mach: 2.427, Energy: 3094.8},
	{
		Time:         0.1152,
		Distance:     91.44,
		Elevation:    0.00254,
		Windage:      -0.0254,
		ElevationMOA: 0.0955,
		WindageMOA:   -0.96,
		Velocity:     762,
		Mach:         2.239,
		Energy:       2633.8,
	},
}

func TestNewCard(t *testing.T) {
	tests := []struct {
		name   string
		system units.System
		want   []Row
	}{
		{
			name:   "imperial",
			system: units.Imperial,
			want: []Row{
				{Range: 0, Elevation: -1.5, Velocity: 2710, Mach: 2.427, Energy: 2282.6},
				{Range: 100, Elevation: 0.1, Windage: -1, ElevationAngle: 0.0955, WindageAngle: -0.96, Velocity: 2500, Mach: 2.239, Energy: 1942.6, Time: 0.1152},
			},
		},
		{
			name:   "metric",
			system: units.Metric,
			want: []Row{
				{Range: 0, Elevation: -3.81, Velocity: 826.008, Mach: 2.427, Energy: 3094.8},
				{Range: 91.44, Elevation: 0.254, Windage: -2.54, ElevationAngle: 0.02778, WindageAngle: -0.2793, Velocity: 762, Mach: 2.239, Energy: 2633.8, Time: 0.1152},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := NewCard("test", sample, tt.system)
			assert.Equal(t, tt.system.Display(), card.Units)
			if diff := cmp.Diff(tt.want, card.Rows, cmpopts.EquateApprox(0.001, 0.01)); diff != "" {
				t.Errorf("NewCard() rows mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCard("6.5 CM", sample, units.Imperial).WriteTable(&buf))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "6.5 CM", strings.TrimSpace(lines[0]))
	assert.Contains(t, lines[1], "Range (yd)")
	assert.Contains(t, lines[1], "Drop (moa)")
	assert.Contains(t, lines[1], "Energy (ftlb)")
	assert.Equal(t, []string{"100", "0.10", "-1.00", "0.10", "-0.96", "2500", "2.24", "1943", "0.115"}, strings.Fields(lines[3]))
}

func TestWritePlot(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCard("plot", sample, units.Imperial).WritePlot(&buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")), "output is a PNG")

	assert.Error(t, NewCard("empty", nil, units.Imperial).WritePlot(&buf))
}

func TestRenderChart(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCard("chart title", sample, units.Metric).RenderChart(&buf))

	html := buf.String()
	assert.Contains(t, html, "echarts")
	assert.Contains(t, html, "chart title")
	assert.Contains(t, html, "Velocity (mps)")
}

func TestCardFromSimulation(t *testing.T) {
	packets, err := trajectory.Sample(testutil.ReferenceSimulation(t), trajectory.SampleOptions{
		Interval:    units.ConvertToMeters(100, units.Yard),
		MaxDistance: units.ConvertToMeters(300, units.Yard),
	})
	require.NoError(t, err)

	card := NewCard("reference", trajectory.Measurements(packets), units.Imperial)
	require.Len(t, card.Rows, 4)
	assert.InDelta(t, 2710, card.Rows[0].Velocity, 0.01)
	assert.InDelta(t, -1.5, card.Rows[0].Elevation, 1e-9)
	for i, r := range card.Rows {
		assert.InDelta(t, float64(100*i), r.Range, 0.05)
	}
}
