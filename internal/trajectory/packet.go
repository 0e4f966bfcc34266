package trajectory

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/banshee-data/ballistics/internal/frame"
	"github.com/banshee-data/ballistics/internal/units"
)

// Packet is an immutable snapshot of one run at one time step. Every
// measurement is derived from its position, velocity, time and Simulation.
type Packet struct {
	time    float64
	pos     r3.Vec
	vel     r3.Vec
	wind    r3.Vec
	sim     *Simulation
	toSight *frame.Matrix
}

// Time returns the time of flight in seconds.
func (p Packet) Time() float64 { return p.time }

// Position returns the world-frame position in meters, relative to the
// sight's objective.
func (p Packet) Position() r3.Vec { return p.pos }

// VelocityVector returns the world-frame velocity in m/s.
func (p Packet) VelocityVector() r3.Vec { return p.vel }

// Simulation returns the simulation the packet belongs to.
func (p Packet) Simulation() *Simulation { return p.sim }

// Velocity returns the speed over ground in m/s.
func (p Packet) Velocity() float64 { return r3.Norm(p.vel) }

// Airspeed returns the speed relative to the moving air in m/s. This is the
// speed drag is computed from.
func (p Packet) Airspeed() float64 { return r3.Norm(r3.Sub(p.vel, p.wind)) }

// Mach returns the airspeed divided by the local speed of sound.
func (p Packet) Mach() float64 {
	return p.Airspeed() / p.sim.Atmosphere.SpeedOfSound()
}

// Energy returns the kinetic energy in joules.
func (p Packet) Energy() float64 {
	return 0.5 * p.sim.Projectile.Weight * r3.Norm2(p.vel)
}

// Relative returns the position in the sight frame: X along the line of
// sight, Y above it and Z to its right.
func (p Packet) Relative() r3.Vec { return p.toSight.Apply(p.pos) }

// Distance returns the down-range distance along the line of sight in meters.
func (p Packet) Distance() float64 { return p.Relative().X }

// Elevation returns the height above the line of sight in meters; negative
// values are drop.
func (p Packet) Elevation() float64 { return p.Relative().Y }

// Windage returns the lateral offset from the line of sight in meters,
// positive to the right.
func (p Packet) Windage() float64 { return p.Relative().Z }

// ElevationAngle returns the vertical angle of the packet seen from the
// sight, in radians.
func (p Packet) ElevationAngle() float64 { return frame.Elevation(p.Relative()) }

// WindageAngle returns the horizontal angle of the packet seen from the
// sight, in radians.
func (p Packet) WindageAngle() float64 { return frame.Azimuth(p.Relative()) }

// ElevationMOA is ElevationAngle in minutes of angle.
func (p Packet) ElevationMOA() float64 { return p.ElevationAngle() / units.RadiansPerMOA }

// WindageMOA is WindageAngle in minutes of angle.
func (p Packet) WindageMOA() float64 { return p.WindageAngle() / units.RadiansPerMOA }

// Measurement is the flat, SI form of a packet's derived values, suitable
// for storage and display.
type Measurement struct {
	Time         float64 `json:"time_s"`
	Distance     float64 `json:"distance_m"`
	Elevation    float64 `json:"elevation_m"`
	Windage      float64 `json:"windage_m"`
	ElevationMOA float64 `json:"elevation_moa"`
	WindageMOA   float64 `json:"windage_moa"`
	Velocity     float64 `json:"velocity_mps"`
	Mach         float64 `json:"mach"`
	Energy       float64 `json:"energy_j"`
}

// Measure evaluates every accessor once.
func (p Packet) Measure() Measurement {
	r := p.Relative()
	return Measurement{
		Time:         p.time,
		Distance:     r.X,
		Elevation:    r.Y,
		Windage:      r.Z,
		ElevationMOA: frame.Elevation(r) / units.RadiansPerMOA,
		WindageMOA:   frame.Azimuth(r) / units.RadiansPerMOA,
		Velocity:     p.Velocity(),
		Mach:         p.Mach(),
		Energy:       p.Energy(),
	}
}

// Measurements measures each packet in order.
func Measurements(packets []Packet) []Measurement {
	out := make([]Measurement, len(packets))
	for i, p := range packets {
		out[i] = p.Measure()
	}
	return out
}
