// Package testutil provides shared test helpers and ballistic fixtures.
package testutil

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/banshee-data/ballistics/internal/atmosphere"
	"github.com/banshee-data/ballistics/internal/drag"
	"github.com/banshee-data/ballistics/internal/trajectory"
	"github.com/banshee-data/ballistics/internal/units"
)

// AssertStatusCode checks that the response status code matches expected.
func AssertStatusCode(t testing.TB, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("status code = %d, want %d", got, want)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// NewTestRequest creates a test HTTP request.
func NewTestRequest(method, path string) *http.Request {
	return httptest.NewRequest(method, path, nil)
}

// Table returns the embedded drag table of the given kind.
func Table(t testing.TB, kind drag.Kind) *drag.Table {
	t.Helper()
	reg, err := drag.DefaultRegistry()
	AssertNoError(t, err)
	table, err := reg.Table(kind)
	AssertNoError(t, err)
	return table
}

// ReferenceProjectile is a 6.5 mm, 140 gr match bullet with a G7 BC of
// 0.305 leaving the muzzle at 2710 ft/s.
func ReferenceProjectile(t testing.TB) trajectory.Projectile {
	t.Helper()
	return trajectory.Projectile{
		Caliber:  units.ConvertToMeters(0.264, units.Inch),
		Weight:   units.ConvertToKilograms(140, units.Grain),
		BC:       0.305,
		Table:    Table(t, drag.G7),
		Velocity: units.ConvertToMPS(2710, units.FPS),
	}
}

// ReferenceSimulation fires the reference projectile level and due north in
// a standard atmosphere with no wind, a 1.5 in scope height and every
// acceleration term enabled.
func ReferenceSimulation(t testing.TB) *trajectory.Simulation {
	t.Helper()
	return &trajectory.Simulation{
		Projectile: ReferenceProjectile(t),
		Atmosphere: atmosphere.Standard(),
		Shooter: trajectory.Shooter{
			Latitude: units.ConvertToRadians(45, units.Degree),
			Gravity:  trajectory.StandardGravity,
		},
		Scope:    trajectory.Scope{Height: units.ConvertToMeters(1.5, units.Inch)},
		Flags:    trajectory.AllFlags(),
		TimeStep: 1e-5,
	}
}

// Vacuum returns a simulation with every acceleration term disabled, so the
// projectile keeps its muzzle velocity.
func Vacuum(velocity, timeStep float64) *trajectory.Simulation {
	return &trajectory.Simulation{
		Projectile: trajectory.Projectile{
			Caliber:  0.00762,
			Weight:   0.0097,
			BC:       0.5,
			Velocity: velocity,
		},
		Atmosphere: atmosphere.Standard(),
		Shooter:    trajectory.Shooter{Gravity: trajectory.StandardGravity},
		TimeStep:   timeStep,
	}
}
