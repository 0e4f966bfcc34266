package trajectory_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/ballistics/internal/drag"
	"github.com/banshee-data/ballistics/internal/testutil"
	"github.com/banshee-data/ballistics/internal/trajectory"
)

func TestSample(t *testing.T) {
	tests := []struct {
		name string
		opts trajectory.SampleOptions
		want int
	}{
		{"every ten meters", trajectory.SampleOptions{Interval: 10, MaxDistance: 50}, 6},
		{"muzzle only", trajectory.SampleOptions{Interval: 10, MaxDistance: 0}, 1},
		{"partial last interval", trajectory.SampleOptions{Interval: 10, MaxDistance: 35}, 4},
		{"cut by time", trajectory.SampleOptions{Interval: 10, MaxDistance: 50, MaxTime: 0.25}, 3},
		{"cut by velocity", trajectory.SampleOptions{Interval: 10, MaxDistance: 50, MinVelocity: 200}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			packets, err := trajectory.Sample(testutil.Vacuum(100, 1e-3), tt.opts)
			require.NoError(t, err)
			require.Len(t, packets, tt.want)

			for i, p := range packets {
				mark := float64(i) * tt.opts.Interval
				assert.GreaterOrEqual(t, p.Distance(), mark)
				assert.Less(t, p.Distance(), mark+0.1+1e-9, "first packet past the mark")
			}
		})
	}
}

func TestSampleReferenceRun(t *testing.T) {
	packets, err := trajectory.Sample(testutil.ReferenceSimulation(t), trajectory.SampleOptions{
		Interval:    100,
		MaxDistance: 500,
	})
	require.NoError(t, err)
	require.Len(t, packets, 6)

	for i := 1; i < len(packets); i++ {
		assert.Less(t, packets[i].Velocity(), packets[i-1].Velocity())
		assert.Less(t, packets[i].Elevation(), packets[i-1].Elevation())
		assert.Greater(t, packets[i].Time(), packets[i-1].Time())
	}
}

func TestSampleErrors(t *testing.T) {
	t.Run("bad interval", func(t *testing.T) {
		_, err := trajectory.Sample(testutil.Vacuum(100, 1e-3), trajectory.SampleOptions{MaxDistance: 10})
		assert.ErrorIs(t, err, trajectory.ErrInvalidSample)
	})

	t.Run("negative distance", func(t *testing.T) {
		_, err := trajectory.Sample(testutil.Vacuum(100, 1e-3), trajectory.SampleOptions{Interval: 1, MaxDistance: -1})
		assert.ErrorIs(t, err, trajectory.ErrInvalidSample)
	})

	t.Run("infinite distance", func(t *testing.T) {
		_, err := trajectory.Sample(testutil.Vacuum(100, 1e-3), trajectory.SampleOptions{Interval: 1, MaxDistance: math.Inf(1)})
		assert.ErrorIs(t, err, trajectory.ErrInvalidSample)
	})

	t.Run("too many samples", func(t *testing.T) {
		_, err := trajectory.Sample(testutil.Vacuum(100, 1e-3), trajectory.SampleOptions{Interval: 1e-6, MaxDistance: 1e12, MaxTime: 0.01})
		assert.ErrorIs(t, err, trajectory.ErrInvalidSample)
	})

	t.Run("fine interval within limit", func(t *testing.T) {
		packets, err := trajectory.Sample(testutil.Vacuum(100, 1e-3), trajectory.SampleOptions{Interval: 1e-3, MaxDistance: 99.999, MaxTime: 0.01})
		require.NoError(t, err)
		assert.NotEmpty(t, packets)
	})

	t.Run("invalid simulation", func(t *testing.T) {
		_, err := trajectory.Sample(testutil.Vacuum(100, 0), trajectory.SampleOptions{Interval: 1, MaxDistance: 1})
		assert.ErrorIs(t, err, trajectory.ErrConfiguration)
	})

	t.Run("drag failure keeps collected packets", func(t *testing.T) {
		table, err := drag.NewTable([]float64{0, 0.5}, []float64{0.2, 0.2})
		require.NoError(t, err)
		sim := testutil.Vacuum(343, 1e-3)
		sim.Flags.Drag = true
		sim.Projectile.Table = table

		packets, err := trajectory.Sample(sim, trajectory.SampleOptions{Interval: 10, MaxDistance: 100})
		assert.True(t, errors.Is(err, drag.ErrOutOfRange))
		assert.Len(t, packets, 1)
	})
}
