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
	"github.com/banshee-data/ballistics/internal/units"
)

// take pulls up to n packets from a fresh run of sim.
func take(t *testing.T, sim *trajectory.Simulation, n int) []trajectory.Packet {
	t.Helper()
	require.NoError(t, sim.Validate())
	s := trajectory.Simulate(sim)
	var out []trajectory.Packet
	for p := range s.Packets() {
		out = append(out, p)
		if len(out) == n {
			break
		}
	}
	require.NoError(t, s.Err())
	return out
}

func TestFirstPacketIsMuzzle(t *testing.T) {
	sim := testutil.ReferenceSimulation(t)
	p := take(t, sim, 1)[0]

	assert.Equal(t, 0.0, p.Time())
	assert.InDelta(t, 0, p.Distance(), 1e-12)
	assert.InDelta(t, -units.ConvertToMeters(1.5, units.Inch), p.Elevation(), 1e-12)
	assert.InDelta(t, 0, p.Windage(), 1e-12)
	assert.InDelta(t, sim.Projectile.Velocity, p.Velocity(), 1e-9)
	assert.InDelta(t, sim.Projectile.Velocity/sim.Atmosphere.SpeedOfSound(), p.Mach(), 1e-9)

	v := sim.Projectile.Velocity
	assert.InDelta(t, 0.5*sim.Projectile.Weight*v*v, p.Energy(), 1e-6)
	assert.Same(t, sim, p.Simulation())
}

func TestFreeFlight(t *testing.T) {
	sim := testutil.Vacuum(100, 1e-3)
	packets := take(t, sim, 11)
	require.Len(t, packets, 11)

	for i, p := range packets {
		assert.InDelta(t, float64(i)*1e-3, p.Time(), 1e-12)
		assert.InDelta(t, float64(i)*0.1, p.Distance(), 1e-9)
		assert.Equal(t, 0.0, p.Elevation())
		assert.Equal(t, 0.0, p.Windage())
		assert.InDelta(t, 100, p.Velocity(), 1e-12)
	}
}

func TestFreeFall(t *testing.T) {
	sim := testutil.Vacuum(100, 1e-3)
	sim.Flags.Gravity = true
	g := sim.Shooter.Gravity

	packets := take(t, sim, 1001)
	require.Len(t, packets, 1001)

	for _, i := range []int{1, 10, 250, 1000} {
		p := packets[i]
		tm := p.Time()
		assert.InDelta(t, -g*tm, p.VelocityVector().Y, 1e-9, "packet %d", i)
		assert.InDelta(t, -0.5*g*tm*tm, p.Position().Y, 1e-9, "packet %d", i)
		assert.InDelta(t, 100*tm, p.Distance(), 1e-9, "packet %d", i)
	}
	assert.InDelta(t, 1.0, packets[1000].Time(), 1e-9)
}

func TestRunEndsWhenProjectileStopsAdvancing(t *testing.T) {
	sim := testutil.Vacuum(100, 1e-3)
	sim.Flags.Gravity = true
	// Past vertical the first step already moves back toward the shooter.
	sim.Muzzle.Pitch = math.Pi/2 + 0.01

	s := trajectory.Simulate(sim)
	p, ok := s.Next()
	require.True(t, ok)
	assert.Equal(t, 0.0, p.Time())

	_, ok = s.Next()
	assert.False(t, ok)
	assert.NoError(t, s.Err())

	_, ok = s.Next()
	assert.False(t, ok, "a finished run stays finished")
}

func TestDragFailureEndsRun(t *testing.T) {
	table, err := drag.NewTable([]float64{0, 0.5}, []float64{0.2, 0.2})
	require.NoError(t, err)

	sim := testutil.Vacuum(343, 1e-3)
	sim.Flags = trajectory.Flags{Drag: true, Gravity: true}
	sim.Projectile.Table = table
	require.NoError(t, sim.Validate())

	s := trajectory.Simulate(sim)
	p, ok := s.Next()
	require.True(t, ok, "the state before the failing step is still reported")
	assert.Equal(t, 0.0, p.Time())

	_, ok = s.Next()
	assert.False(t, ok)

	err = s.Err()
	require.Error(t, err)
	assert.True(t, errors.Is(err, drag.ErrOutOfRange))
	assert.Contains(t, err.Error(), "step at t=0.000000s")

	var rangeErr *drag.OutOfRangeError
	require.True(t, errors.As(err, &rangeErr))
	assert.Greater(t, rangeErr.Mach, 0.5)
}

func TestDragSlowsProjectile(t *testing.T) {
	sim := testutil.ReferenceSimulation(t)
	packets := take(t, sim, 20001)
	require.Len(t, packets, 20001)

	prev := packets[0]
	for _, p := range packets[1:] {
		require.Less(t, p.Velocity(), prev.Velocity())
		require.Greater(t, p.Distance(), prev.Distance())
		prev = p
	}
	// 0.2 s of flight covers a bit under 160 m.
	last := packets[len(packets)-1]
	assert.InDelta(t, 0.2, last.Time(), 1e-9)
	assert.InDelta(t, 155, last.Distance(), 8)
	assert.Less(t, last.Elevation(), -0.0381)
}

func TestResetReplaysRun(t *testing.T) {
	sim := testutil.ReferenceSimulation(t)
	s := trajectory.Simulate(sim)

	var first []trajectory.Packet
	for p := range s.Packets() {
		first = append(first, p)
		if len(first) == 50 {
			break
		}
	}

	s.Reset()
	var second []trajectory.Packet
	for p := range s.Packets() {
		second = append(second, p)
		if len(second) == 50 {
			break
		}
	}

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].Time(), second[i].Time())
		assert.Equal(t, first[i].Position(), second[i].Position())
		assert.Equal(t, first[i].VelocityVector(), second[i].VelocityVector())
	}
}

func TestBreakingOutOfPacketsResumes(t *testing.T) {
	s := trajectory.Simulate(testutil.Vacuum(100, 1e-3))
	for p := range s.Packets() {
		if p.Time() > 0.0045 {
			break
		}
	}
	p, ok := s.Next()
	require.True(t, ok)
	assert.InDelta(t, 0.006, p.Time(), 1e-12)
}

func TestMeasurementsIgnoreBearing(t *testing.T) {
	north := testutil.ReferenceSimulation(t)
	north.Flags.Coriolis = false

	west := testutil.ReferenceSimulation(t)
	west.Flags.Coriolis = false
	west.Shooter.Bearing = units.ConvertToRadians(270, units.Degree)

	a := take(t, north, 5001)[5000]
	b := take(t, west, 5001)[5000]

	assert.InDelta(t, a.Distance(), b.Distance(), 1e-9)
	assert.InDelta(t, a.Elevation(), b.Elevation(), 1e-9)
	assert.InDelta(t, a.Windage(), b.Windage(), 1e-9)
	assert.NotEqual(t, a.Position(), b.Position())
}

func TestCrosswindDrift(t *testing.T) {
	calm := testutil.ReferenceSimulation(t)
	calm.Flags.Coriolis = false

	fromRight := testutil.ReferenceSimulation(t)
	fromRight.Flags.Coriolis = false
	fromRight.Wind = trajectory.Wind{Speed: 5, Yaw: math.Pi / 2}

	fromLeft := testutil.ReferenceSimulation(t)
	fromLeft.Flags.Coriolis = false
	fromLeft.Wind = trajectory.Wind{Speed: 5, Yaw: -math.Pi / 2}

	c := take(t, calm, 30001)[30000]
	r := take(t, fromRight, 30001)[30000]
	l := take(t, fromLeft, 30001)[30000]

	assert.InDelta(t, 0, c.Windage(), 1e-12)
	assert.Less(t, r.Windage(), -0.01, "a wind from the right pushes left")
	assert.Greater(t, l.Windage(), 0.01)
	assert.InDelta(t, -r.Windage(), l.Windage(), 1e-9)
	assert.Less(t, r.WindageMOA(), 0.0)
}

func TestHeadwindAddsDrag(t *testing.T) {
	calm := testutil.ReferenceSimulation(t)
	head := testutil.ReferenceSimulation(t)
	head.Wind = trajectory.Wind{Speed: 10}

	c := take(t, calm, 10001)[10000]
	h := take(t, head, 10001)[10000]

	assert.Less(t, h.Velocity(), c.Velocity())
	assert.Less(t, h.Distance(), c.Distance())
}

func TestMachUsesAirspeed(t *testing.T) {
	tests := []struct {
		name     string
		wind     trajectory.Wind
		airspeed float64
	}{
		{"calm", trajectory.Wind{}, 300},
		{"headwind", trajectory.Wind{Speed: 10}, 310},
		{"tailwind", trajectory.Wind{Speed: 10, Yaw: math.Pi}, 290},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim := testutil.Vacuum(300, 1e-3)
			sim.Wind = tt.wind
			p := take(t, sim, 1)[0]

			assert.InDelta(t, 300, p.Velocity(), 1e-9)
			assert.InDelta(t, tt.airspeed, p.Airspeed(), 1e-9)
			assert.InDelta(t, tt.airspeed/sim.Atmosphere.SpeedOfSound(), p.Mach(), 1e-9)
		})
	}
}

func TestCoriolisDeflectsRightInNorthernHemisphere(t *testing.T) {
	sim := testutil.Vacuum(100, 1e-3)
	sim.Flags.Coriolis = true
	lat := units.ConvertToRadians(45, units.Degree)
	sim.Shooter.Latitude = lat

	p := take(t, sim, 1001)[1000]

	want := trajectory.EarthAngularVelocity * math.Sin(lat) * 100 * p.Time() * p.Time()
	assert.InEpsilon(t, want, p.Windage(), 0.01)

	sim.Shooter.Latitude = -lat
	p = take(t, sim, 1001)[1000]
	assert.InEpsilon(t, -want, p.Windage(), 0.01)
}

func TestElevationAngle(t *testing.T) {
	sim := testutil.Vacuum(100, 1e-3)
	sim.Muzzle.Pitch = 0.01

	p := take(t, sim, 101)[100]
	assert.InDelta(t, 0.01, p.ElevationAngle(), 1e-9)
	assert.InDelta(t, 0.01/units.RadiansPerMOA, p.ElevationMOA(), 1e-6)
	assert.InDelta(t, 0, p.WindageAngle(), 1e-12)
}

func TestMeasureMatchesAccessors(t *testing.T) {
	sim := testutil.ReferenceSimulation(t)
	sim.Wind = trajectory.Wind{Speed: 3, Yaw: 1}
	packets := take(t, sim, 5001)

	got := trajectory.Measurements(packets[4999:])
	require.Len(t, got, 2)

	p := packets[5000]
	want := trajectory.Measurement{
		Time:         p.Time(),
		Distance:     p.Distance(),
		Elevation:    p.Elevation(),
		Windage:      p.Windage(),
		ElevationMOA: p.ElevationMOA(),
		WindageMOA:   p.WindageMOA(),
		Velocity:     p.Velocity(),
		Mach:         p.Mach(),
		Energy:       p.Energy(),
	}
	assert.Equal(t, want, got[1])
}
