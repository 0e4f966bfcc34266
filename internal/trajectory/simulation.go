// Package trajectory integrates a projectile's flight through the air and
// exposes each time step as an immutable Packet.
//
// All quantities are SI: meters, seconds, kilograms, pascals, kelvin and
// radians. Convert at the edges with the units package.
package trajectory

import (
	"errors"
	"fmt"
	"math"

	"github.com/banshee-data/ballistics/internal/atmosphere"
	"github.com/banshee-data/ballistics/internal/drag"
	"github.com/banshee-data/ballistics/internal/frame"
)

const (
	// EarthAngularVelocity is the sidereal rotation rate in rad/s.
	EarthAngularVelocity = 7.2921159e-5
	// StandardGravity is in m/s².
	StandardGravity = 9.80665
	// MaxTimeStep is the largest accepted integration step in seconds.
	MaxTimeStep = 0.1

	metersPerInch  = 0.0254
	kilogramsPerLb = 0.45359237
)

// Projectile is the bullet being fired.
type Projectile struct {
	Caliber  float64     // diameter, m
	Weight   float64     // mass, kg
	BC       float64     // ballistic coefficient, lb/in²
	Table    *drag.Table // standard drag function the BC refers to
	Velocity float64     // muzzle velocity, m/s
}

// Area returns the frontal area in m².
func (p Projectile) Area() float64 {
	r := p.Caliber / 2
	return math.Pi * r * r
}

// SectionalDensity returns weight over caliber squared in lb/in², the
// convention ballistic coefficients are published in.
func (p Projectile) SectionalDensity() float64 {
	d := p.Caliber / metersPerInch
	return (p.Weight / kilogramsPerLb) / (d * d)
}

// FormFactor scales the standard table's coefficient to this projectile.
func (p Projectile) FormFactor() float64 {
	return p.SectionalDensity() / p.BC
}

// Wind is a uniform horizontal wind. Yaw is the direction it blows from,
// clockwise from the line of fire: 0 is a headwind, π/2 comes from the right.
type Wind struct {
	Speed float64
	Yaw   float64
}

// Shooter holds the Earth-relative orientation of the line of sight.
type Shooter struct {
	Bearing  float64 // compass bearing of the line of sight, clockwise from north
	Pitch    float64 // line-of-sight elevation above horizontal
	Roll     float64 // cant of the rifle about the line of sight
	Latitude float64
	Gravity  float64 // magnitude, m/s²
}

// Scope is the sight's mounting geometry relative to the bore.
type Scope struct {
	Height float64 // sight axis above the bore, m
	Offset float64 // sight axis right of the bore, m
	Pitch  float64 // bore elevation relative to the sight axis
	Yaw    float64 // bore yaw relative to the sight axis
	Roll   float64 // scope cant relative to the rifle
}

// Flags switch the individual acceleration terms on or off.
type Flags struct {
	Drag     bool
	Coriolis bool
	Gravity  bool
}

// AllFlags enables every acceleration term.
func AllFlags() Flags {
	return Flags{Drag: true, Coriolis: true, Gravity: true}
}

// Muzzle is the bore orientation relative to the sight axis chosen for a
// shot, usually the result of zeroing.
type Muzzle struct {
	Pitch float64
	Yaw   float64
}

// Simulation is the full, immutable description of one shot. It may be
// shared by any number of concurrent runs; each run owns its own state.
type Simulation struct {
	Projectile Projectile
	Atmosphere atmosphere.Atmosphere
	Wind       Wind
	Shooter    Shooter
	Scope      Scope
	Flags      Flags
	Muzzle     Muzzle
	TimeStep   float64 // s
}

// WithMuzzle returns a copy of s fired at the given muzzle angles.
func (s Simulation) WithMuzzle(pitch, yaw float64) *Simulation {
	s.Muzzle = Muzzle{Pitch: pitch, Yaw: yaw}
	return &s
}

// Sight returns the orientation of the line of sight in the world frame.
func (s *Simulation) Sight() frame.Angles {
	return frame.Angles{Pitch: s.Shooter.Pitch, Yaw: s.Shooter.Bearing, Roll: s.Shooter.Roll}
}

// ErrConfiguration is wrapped by every ConfigurationError.
var ErrConfiguration = errors.New("invalid simulation")

// ConfigurationError names a static parameter that breaks an invariant.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid simulation: %s %s", e.Field, e.Reason)
}

func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }

func invalid(field, format string, args ...interface{}) error {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Validate checks the simulation invariants. Runs assume a validated
// simulation and do not check again.
func (s *Simulation) Validate() error {
	p := s.Projectile
	switch {
	case !(s.TimeStep > 0) || s.TimeStep > MaxTimeStep:
		return invalid("time_step", "must be in (0, %g], got %g", MaxTimeStep, s.TimeStep)
	case !(p.Caliber > 0):
		return invalid("projectile.caliber", "must be positive, got %g", p.Caliber)
	case !(p.Weight > 0):
		return invalid("projectile.weight", "must be positive, got %g", p.Weight)
	case !(p.Velocity > 0):
		return invalid("projectile.velocity", "must be positive, got %g", p.Velocity)
	case !(p.BC > 0):
		return invalid("projectile.bc", "must be positive, got %g", p.BC)
	case s.Flags.Drag && p.Table == nil:
		return invalid("projectile.table", "is required when drag is enabled")
	}

	a := s.Atmosphere
	switch {
	case !(a.Pressure > 0):
		return invalid("atmosphere.pressure", "must be positive, got %g", a.Pressure)
	case !(a.Temperature > 0):
		return invalid("atmosphere.temperature", "must be above absolute zero, got %g K", a.Temperature)
	case !(a.Humidity >= 0 && a.Humidity <= 1):
		return invalid("atmosphere.humidity", "must be in [0, 1], got %g", a.Humidity)
	case !(a.Pressure > a.VaporPressure()):
		return invalid("atmosphere.pressure", "must exceed the vapour pressure (%g Pa)", a.VaporPressure())
	}

	switch {
	case !(s.Wind.Speed >= 0) || math.IsInf(s.Wind.Speed, 0):
		return invalid("wind.speed", "must be non-negative, got %g", s.Wind.Speed)
	case !(s.Shooter.Gravity >= 0) || math.IsInf(s.Shooter.Gravity, 0):
		return invalid("shooter.gravity", "must be non-negative, got %g", s.Shooter.Gravity)
	case !(math.Abs(s.Shooter.Latitude) <= math.Pi/2):
		return invalid("shooter.latitude", "must be within ±90°, got %g rad", s.Shooter.Latitude)
	}

	for _, f := range []struct {
		name  string
		value float64
	}{
		{"wind.yaw", s.Wind.Yaw},
		{"shooter.bearing", s.Shooter.Bearing},
		{"shooter.pitch", s.Shooter.Pitch},
		{"shooter.roll", s.Shooter.Roll},
		{"scope.height", s.Scope.Height},
		{"scope.offset", s.Scope.Offset},
		{"scope.pitch", s.Scope.Pitch},
		{"scope.yaw", s.Scope.Yaw},
		{"scope.roll", s.Scope.Roll},
		{"muzzle.pitch", s.Muzzle.Pitch},
		{"muzzle.yaw", s.Muzzle.Yaw},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return invalid(f.name, "must be finite, got %g", f.value)
		}
	}
	return nil
}
