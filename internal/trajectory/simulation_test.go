package trajectory_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/ballistics/internal/testutil"
	"github.com/banshee-data/ballistics/internal/trajectory"
)

func TestProjectileDerivedQuantities(t *testing.T) {
	p := testutil.ReferenceProjectile(t)

	// 140 gr over 0.264 in squared.
	assert.InDelta(t, 0.2870, p.SectionalDensity(), 1e-4)
	assert.InDelta(t, 0.2870/0.305, p.FormFactor(), 1e-3)
	assert.InDelta(t, 3.5315e-5, p.Area(), 1e-8)
}

func TestWithMuzzleCopies(t *testing.T) {
	sim := testutil.ReferenceSimulation(t)
	aimed := sim.WithMuzzle(0.01, -0.002)

	assert.Equal(t, trajectory.Muzzle{Pitch: 0.01, Yaw: -0.002}, aimed.Muzzle)
	assert.Equal(t, trajectory.Muzzle{}, sim.Muzzle, "original must be untouched")
	assert.Same(t, sim.Projectile.Table, aimed.Projectile.Table)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(s *trajectory.Simulation)
		field  string
	}{
		{"zero time step", func(s *trajectory.Simulation) { s.TimeStep = 0 }, "time_step"},
		{"time step too large", func(s *trajectory.Simulation) { s.TimeStep = 0.5 }, "time_step"},
		{"NaN time step", func(s *trajectory.Simulation) { s.TimeStep = math.NaN() }, "time_step"},
		{"zero caliber", func(s *trajectory.Simulation) { s.Projectile.Caliber = 0 }, "projectile.caliber"},
		{"negative weight", func(s *trajectory.Simulation) { s.Projectile.Weight = -1 }, "projectile.weight"},
		{"zero velocity", func(s *trajectory.Simulation) { s.Projectile.Velocity = 0 }, "projectile.velocity"},
		{"zero bc", func(s *trajectory.Simulation) { s.Projectile.BC = 0 }, "projectile.bc"},
		{"drag without table", func(s *trajectory.Simulation) { s.Projectile.Table = nil }, "projectile.table"},
		{"zero pressure", func(s *trajectory.Simulation) { s.Atmosphere.Pressure = 0 }, "atmosphere.pressure"},
		{"zero temperature", func(s *trajectory.Simulation) { s.Atmosphere.Temperature = 0 }, "atmosphere.temperature"},
		{"humidity above one", func(s *trajectory.Simulation) { s.Atmosphere.Humidity = 1.5 }, "atmosphere.humidity"},
		{"pressure below vapour pressure", func(s *trajectory.Simulation) {
			s.Atmosphere.Temperature = 373.15
			s.Atmosphere.Humidity = 1
			s.Atmosphere.Pressure = 1000
		}, "atmosphere.pressure"},
		{"negative wind", func(s *trajectory.Simulation) { s.Wind.Speed = -1 }, "wind.speed"},
		{"negative gravity", func(s *trajectory.Simulation) { s.Shooter.Gravity = -9.8 }, "shooter.gravity"},
		{"latitude beyond pole", func(s *trajectory.Simulation) { s.Shooter.Latitude = 2 }, "shooter.latitude"},
		{"infinite bearing", func(s *trajectory.Simulation) { s.Shooter.Bearing = math.Inf(1) }, "shooter.bearing"},
		{"NaN scope height", func(s *trajectory.Simulation) { s.Scope.Height = math.NaN() }, "scope.height"},
		{"NaN muzzle yaw", func(s *trajectory.Simulation) { s.Muzzle.Yaw = math.NaN() }, "muzzle.yaw"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim := testutil.ReferenceSimulation(t)
			tt.modify(sim)

			err := sim.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, trajectory.ErrConfiguration))

			var cfgErr *trajectory.ConfigurationError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestValidateAcceptsTableFreeVacuum(t *testing.T) {
	sim := testutil.Vacuum(300, 1e-3)
	sim.Flags.Gravity = true
	assert.NoError(t, sim.Validate())
}
