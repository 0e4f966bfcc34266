package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/banshee-data/ballistics/internal/atmosphere"
	"github.com/banshee-data/ballistics/internal/drag"
	"github.com/banshee-data/ballistics/internal/monitoring"
	"github.com/banshee-data/ballistics/internal/trajectory"
	"github.com/banshee-data/ballistics/internal/units"
	"github.com/banshee-data/ballistics/internal/zeroing"
)

// DefaultConfigPath is the path to the example shot shipped with the repo.
const DefaultConfigPath = "config/shot.defaults.json"

const maxFileSize = 1 * 1024 * 1024 // 1MB

// ShotConfig is the user-facing description of a rifle, load, environment
// and the zero and range card to compute. Fields are optional unless noted;
// the Get* methods and Build supply defaults for anything left out.
type ShotConfig struct {
	Label      *string          `json:"label,omitempty"`
	Units      *string          `json:"units,omitempty"` // "imperial" or "metric" for output
	Projectile ProjectileConfig `json:"projectile"`
	Atmosphere AtmosphereConfig `json:"atmosphere"`
	Wind       WindConfig       `json:"wind"`
	Shooter    ShooterConfig    `json:"shooter"`
	Scope      ScopeConfig      `json:"scope"`
	Flags      FlagsConfig      `json:"flags"`
	TimeStep   *string          `json:"time_step,omitempty"` // duration string like "10us"
	Zero       ZeroConfig       `json:"zero"`
	Card       CardConfig       `json:"card"`
}

// ProjectileConfig describes the bullet. Caliber, weight, bc and velocity
// are required.
type ProjectileConfig struct {
	Caliber       *Quantity `json:"caliber,omitempty"`
	Weight        *Quantity `json:"weight,omitempty"`
	BC            *float64  `json:"bc,omitempty"`
	DragTable     *string   `json:"drag_table,omitempty"`      // G1, G7, ...
	DragTableFile *string   `json:"drag_table_file,omitempty"` // Mach,Cd CSV used instead of drag_table
	Velocity      *Quantity `json:"velocity,omitempty"`
}

// AtmosphereConfig defaults to the ICAO standard atmosphere.
type AtmosphereConfig struct {
	Temperature *Quantity `json:"temperature,omitempty"`
	Pressure    *Quantity `json:"pressure,omitempty"`
	Humidity    *float64  `json:"humidity,omitempty"` // relative, 0..1
}

// WindConfig direction is where the wind comes from, clockwise from the
// line of fire.
type WindConfig struct {
	Speed     *Quantity `json:"speed,omitempty"`
	Direction *Quantity `json:"direction,omitempty"`
}

type ShooterConfig struct {
	Bearing  *Quantity `json:"bearing,omitempty"`
	Pitch    *Quantity `json:"pitch,omitempty"`
	Roll     *Quantity `json:"roll,omitempty"`
	Latitude *Quantity `json:"latitude,omitempty"`
	Gravity  *float64  `json:"gravity,omitempty"` // m/s²
}

type ScopeConfig struct {
	Height *Quantity `json:"height,omitempty"`
	Offset *Quantity `json:"offset,omitempty"`
	Pitch  *Quantity `json:"pitch,omitempty"`
	Yaw    *Quantity `json:"yaw,omitempty"`
	Roll   *Quantity `json:"roll,omitempty"`
}

// FlagsConfig switches acceleration terms; all default to on.
type FlagsConfig struct {
	Drag     *bool `json:"drag,omitempty"`
	Coriolis *bool `json:"coriolis,omitempty"`
	Gravity  *bool `json:"gravity,omitempty"`
}

// ZeroConfig is the point the rifle is zeroed on. Alternates lists other
// zero distances to solve alongside it with the same offsets.
type ZeroConfig struct {
	Distance      *Quantity   `json:"distance,omitempty"`
	Alternates    []*Quantity `json:"alternates,omitempty"`
	Elevation     *Quantity   `json:"elevation,omitempty"`
	Windage       *Quantity   `json:"windage,omitempty"`
	Tolerance     *Quantity   `json:"tolerance,omitempty"`
	MaxIterations *int        `json:"max_iterations,omitempty"`
	MaxFlightTime *string     `json:"max_flight_time,omitempty"` // duration string like "10s"
}

// CardConfig controls the range card rows.
type CardConfig struct {
	Interval    *Quantity `json:"interval,omitempty"`
	MaxRange    *Quantity `json:"max_range,omitempty"`
	MinVelocity *Quantity `json:"min_velocity,omitempty"`
}

// Helper functions to create pointers
func ptrFloat64(v float64) *float64 { return &v }
func ptrBool(v bool) *bool          { return &v }
func ptrString(v string) *string    { return &v }
func ptrInt(v int) *int             { return &v }

// Parse decodes and validates a shot config from JSON.
func Parse(data []byte) (*ShotConfig, error) {
	cfg := &ShotConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Load reads a shot config from a JSON file. The file must have a .json
// extension and be under 1MB.
func Load(path string) (*ShotConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}

	// Relative table files resolve against the config's directory.
	if f := cfg.Projectile.DragTableFile; f != nil && !filepath.IsAbs(*f) {
		cfg.Projectile.DragTableFile = ptrString(filepath.Join(filepath.Dir(cleanPath), *f))
	}
	monitoring.Logf("loaded shot config %q from %s", cfg.GetLabel(), cleanPath)
	return cfg, nil
}

type fieldCheck struct {
	dim   dimension
	field string
	q     *Quantity
}

// Validate checks units, ranges and required fields. Physical invariants
// that need the whole simulation are checked again by Build.
func (c *ShotConfig) Validate() error {
	p := c.Projectile
	switch {
	case p.Caliber == nil:
		return fmt.Errorf("projectile.caliber is required")
	case p.Weight == nil:
		return fmt.Errorf("projectile.weight is required")
	case p.BC == nil:
		return fmt.Errorf("projectile.bc is required")
	case p.Velocity == nil:
		return fmt.Errorf("projectile.velocity is required")
	case *p.BC <= 0:
		return fmt.Errorf("projectile.bc must be positive, got %f", *p.BC)
	}
	if p.DragTable != nil {
		if _, err := drag.ParseKind(*p.DragTable); err != nil {
			return fmt.Errorf("projectile.drag_table: %w", err)
		}
	}

	checks := []fieldCheck{
		{distance, "projectile.caliber", p.Caliber},
		{mass, "projectile.weight", p.Weight},
		{speed, "projectile.velocity", p.Velocity},
		{temperature, "atmosphere.temperature", c.Atmosphere.Temperature},
		{pressure, "atmosphere.pressure", c.Atmosphere.Pressure},
		{speed, "wind.speed", c.Wind.Speed},
		{angle, "wind.direction", c.Wind.Direction},
		{angle, "shooter.bearing", c.Shooter.Bearing},
		{angle, "shooter.pitch", c.Shooter.Pitch},
		{angle, "shooter.roll", c.Shooter.Roll},
		{angle, "shooter.latitude", c.Shooter.Latitude},
		{distance, "scope.height", c.Scope.Height},
		{distance, "scope.offset", c.Scope.Offset},
		{angle, "scope.pitch", c.Scope.Pitch},
		{angle, "scope.yaw", c.Scope.Yaw},
		{angle, "scope.roll", c.Scope.Roll},
		{distance, "zero.distance", c.Zero.Distance},
		{distance, "zero.elevation", c.Zero.Elevation},
		{distance, "zero.windage", c.Zero.Windage},
		{distance, "zero.tolerance", c.Zero.Tolerance},
		{distance, "card.interval", c.Card.Interval},
		{distance, "card.max_range", c.Card.MaxRange},
		{speed, "card.min_velocity", c.Card.MinVelocity},
	}
	for i, q := range c.Zero.Alternates {
		if q == nil {
			return fmt.Errorf("zero.alternates[%d] is null", i)
		}
		checks = append(checks, fieldCheck{distance, fmt.Sprintf("zero.alternates[%d]", i), q})
	}
	for _, ch := range checks {
		if err := ch.dim.check(ch.field, ch.q); err != nil {
			return err
		}
	}

	if h := c.Atmosphere.Humidity; h != nil && (*h < 0 || *h > 1) {
		return fmt.Errorf("atmosphere.humidity must be between 0 and 1, got %f", *h)
	}
	if c.Units != nil {
		if _, err := units.ParseSystem(*c.Units); err != nil {
			return err
		}
	}
	if n := c.Zero.MaxIterations; n != nil && *n <= 0 {
		return fmt.Errorf("zero.max_iterations must be positive, got %d", *n)
	}

	durations := []struct {
		field string
		value *string
	}{
		{"time_step", c.TimeStep},
		{"zero.max_flight_time", c.Zero.MaxFlightTime},
	}
	for _, d := range durations {
		if d.value == nil || *d.value == "" {
			continue
		}
		v, err := time.ParseDuration(*d.value)
		if err != nil {
			return fmt.Errorf("invalid %s '%s': %w", d.field, *d.value, err)
		}
		if v <= 0 {
			return fmt.Errorf("%s must be positive, got %s", d.field, *d.value)
		}
	}

	if c.Card.Interval != nil && c.Card.Interval.Value <= 0 {
		return fmt.Errorf("card.interval must be positive, got %f", c.Card.Interval.Value)
	}
	return nil
}

// GetLabel returns the label or "unnamed".
func (c *ShotConfig) GetLabel() string {
	if c.Label == nil || *c.Label == "" {
		return "unnamed"
	}
	return *c.Label
}

// GetUnits returns the output unit system, imperial by default.
func (c *ShotConfig) GetUnits() units.System {
	if c.Units == nil {
		return units.Imperial
	}
	s, err := units.ParseSystem(*c.Units)
	if err != nil {
		return units.Imperial
	}
	return s
}

// GetDragTable returns the drag table kind, G7 by default.
func (c *ShotConfig) GetDragTable() drag.Kind {
	if c.Projectile.DragTable == nil {
		return drag.G7
	}
	k, err := drag.ParseKind(*c.Projectile.DragTable)
	if err != nil {
		return drag.G7
	}
	return k
}

// GetTimeStep returns the integration step in seconds, 10µs by default.
func (c *ShotConfig) GetTimeStep() float64 {
	return seconds(c.TimeStep, 10*time.Microsecond)
}

// GetMaxFlightTime returns the zeroing flight-time cap in seconds.
func (c *ShotConfig) GetMaxFlightTime() float64 {
	return seconds(c.Zero.MaxFlightTime, 10*time.Second)
}

// GetMaxIterations returns the zeroing iteration cap.
func (c *ShotConfig) GetMaxIterations() int {
	if c.Zero.MaxIterations == nil {
		return zeroing.DefaultSolver.MaxIterations
	}
	return *c.Zero.MaxIterations
}

// GetFlags returns the acceleration switches; unset flags are on.
func (c *ShotConfig) GetFlags() trajectory.Flags {
	on := func(b *bool) bool { return b == nil || *b }
	return trajectory.Flags{
		Drag:     on(c.Flags.Drag),
		Coriolis: on(c.Flags.Coriolis),
		Gravity:  on(c.Flags.Gravity),
	}
}

func seconds(s *string, def time.Duration) float64 {
	if s == nil || *s == "" {
		return def.Seconds()
	}
	d, err := time.ParseDuration(*s)
	if err != nil {
		return def.Seconds()
	}
	return d.Seconds()
}

// Build converts the config to SI and returns a validated simulation. The
// drag table is taken from reg unless drag_table_file is set, in which case
// that file is loaded instead and reg is left untouched.
func (c *ShotConfig) Build(reg *drag.Registry) (*trajectory.Simulation, error) {
	kind := c.GetDragTable()
	var table *drag.Table
	if f := c.Projectile.DragTableFile; f != nil && *f != "" {
		t, err := drag.LoadFile(*f)
		if err != nil {
			return nil, fmt.Errorf("projectile.drag_table_file: %w", err)
		}
		table = t
	} else if flags := c.GetFlags(); flags.Drag {
		t, err := reg.Table(kind)
		if err != nil {
			return nil, fmt.Errorf("projectile.drag_table: %w", err)
		}
		table = t
	}

	gravity := trajectory.StandardGravity
	if c.Shooter.Gravity != nil {
		gravity = *c.Shooter.Gravity
	}
	humidity := 0.0
	if c.Atmosphere.Humidity != nil {
		humidity = *c.Atmosphere.Humidity
	}
	std := atmosphere.Standard()

	p := c.Projectile
	sim := &trajectory.Simulation{
		Projectile: trajectory.Projectile{
			Caliber:  distance.si(p.Caliber, Quantity{}),
			Weight:   mass.si(p.Weight, Quantity{}),
			BC:       *p.BC,
			Table:    table,
			Velocity: speed.si(p.Velocity, Quantity{}),
		},
		Atmosphere: atmosphere.Atmosphere{
			Temperature: temperature.si(c.Atmosphere.Temperature, Quantity{std.Temperature, units.Kelvin}),
			Pressure:    pressure.si(c.Atmosphere.Pressure, Quantity{std.Pressure, units.Pascal}),
			Humidity:    humidity,
		},
		Wind: trajectory.Wind{
			Speed: speed.si(c.Wind.Speed, Quantity{0, units.MPS}),
			Yaw:   angle.si(c.Wind.Direction, Quantity{0, units.Radian}),
		},
		Shooter: trajectory.Shooter{
			Bearing:  angle.si(c.Shooter.Bearing, Quantity{0, units.Radian}),
			Pitch:    angle.si(c.Shooter.Pitch, Quantity{0, units.Radian}),
			Roll:     angle.si(c.Shooter.Roll, Quantity{0, units.Radian}),
			Latitude: angle.si(c.Shooter.Latitude, Quantity{0, units.Radian}),
			Gravity:  gravity,
		},
		Scope: trajectory.Scope{
			Height: distance.si(c.Scope.Height, Quantity{1.5, units.Inch}),
			Offset: distance.si(c.Scope.Offset, Quantity{0, units.Meter}),
			Pitch:  angle.si(c.Scope.Pitch, Quantity{0, units.Radian}),
			Yaw:    angle.si(c.Scope.Yaw, Quantity{0, units.Radian}),
			Roll:   angle.si(c.Scope.Roll, Quantity{0, units.Radian}),
		},
		Flags:    c.GetFlags(),
		TimeStep: c.GetTimeStep(),
	}
	if err := sim.Validate(); err != nil {
		return nil, err
	}
	return sim, nil
}

// Solver returns the zeroing limits from the config.
func (c *ShotConfig) Solver() zeroing.Solver {
	return zeroing.Solver{
		MaxIterations: c.GetMaxIterations(),
		MaxFlightTime: c.GetMaxFlightTime(),
	}
}

// Target returns the zero point in SI, by default dead on at 100 yd with a
// 0.1 in tolerance.
func (c *ShotConfig) Target() zeroing.Target {
	z := c.Zero
	return zeroing.Target{
		Distance:  distance.si(z.Distance, Quantity{100, units.Yard}),
		Elevation: distance.si(z.Elevation, Quantity{0, units.Meter}),
		Windage:   distance.si(z.Windage, Quantity{0, units.Meter}),
		Tolerance: distance.si(z.Tolerance, Quantity{0.1, units.Inch}),
	}
}

// Targets returns the zero target followed by one target per alternate
// distance, all sharing its offsets and tolerance.
func (c *ShotConfig) Targets() []zeroing.Target {
	primary := c.Target()
	targets := []zeroing.Target{primary}
	for _, q := range c.Zero.Alternates {
		t := primary
		t.Distance = distance.si(q, Quantity{})
		targets = append(targets, t)
	}
	return targets
}

// SampleOptions returns the range card spacing in SI, by default every
// 100 yd out to 1000 yd.
func (c *ShotConfig) SampleOptions() trajectory.SampleOptions {
	return trajectory.SampleOptions{
		Interval:    distance.si(c.Card.Interval, Quantity{100, units.Yard}),
		MaxDistance: distance.si(c.Card.MaxRange, Quantity{1000, units.Yard}),
		MinVelocity: speed.si(c.Card.MinVelocity, Quantity{0, units.MPS}),
		MaxTime:     c.GetMaxFlightTime(),
	}
}

// MustLoadDefaultConfig loads DefaultConfigPath from the current directory
// or one of its parents. Panics if the file cannot be loaded, intended for
// test setup.
func MustLoadDefaultConfig() *ShotConfig {
	candidates := []string{
		DefaultConfigPath,
		"../" + DefaultConfigPath,
		"../../" + DefaultConfigPath, // from internal/config/
		"../../../" + DefaultConfigPath,
	}
	for _, path := range candidates {
		if cfg, err := Load(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}
