package trajectory

import (
	"fmt"
	"iter"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/banshee-data/ballistics/internal/drag"
	"github.com/banshee-data/ballistics/internal/frame"
)

// state is the mutable part of one run.
type state struct {
	pos  r3.Vec
	vel  r3.Vec
	time float64
}

// Stepper advances one run of a Simulation. It is pull-based: each call to
// Next yields the current state and then integrates one time step. A run
// ends when a step no longer moves the projectile down-range, or when the
// drag lookup fails, in which case Err reports why.
//
// A Stepper is not safe for concurrent use; start one per goroutine.
type Stepper struct {
	sim     *Simulation
	toSight *frame.Matrix

	initial state
	cur     state
	curX    float64
	done    bool
	err     error

	// Constant for the whole run.
	dt      float64
	table   *drag.Table
	wind    r3.Vec
	gravity r3.Vec
	spin    r3.Vec
	sound   float64
	dragK   float64
}

// Simulate starts a new run of sim at t=0. sim must already be validated.
func Simulate(sim *Simulation) *Stepper {
	sight := sim.Sight()
	toSight := frame.InverseMatrix(sight)

	muzzle := frame.Angles{Pitch: sim.Muzzle.Pitch, Yaw: sim.Muzzle.Yaw}.
		Add(frame.Angles{Pitch: sim.Scope.Pitch, Yaw: sim.Scope.Yaw})
	bore := frame.Forward(r3.Vec{X: sim.Projectile.Velocity}, muzzle)
	bore = frame.RotateX(bore, sim.Scope.Roll)

	// Horizontal wind is turned by the bearing only; the line of sight's
	// pitch and cant do not tilt the air.
	wind := r3.Scale(-sim.Wind.Speed, frame.Direction(frame.Angles{Yaw: sim.Wind.Yaw}))
	wind = frame.Forward(wind, frame.Angles{Yaw: sim.Shooter.Bearing})

	p := sim.Projectile
	rho := sim.Atmosphere.Density()

	s := &Stepper{
		sim:     sim,
		toSight: &toSight,
		initial: state{
			pos: frame.Forward(r3.Vec{Y: -sim.Scope.Height, Z: -sim.Scope.Offset}, sight),
			vel: frame.Forward(bore, sight),
		},
		dt:      sim.TimeStep,
		table:   p.Table,
		wind:    wind,
		gravity: r3.Vec{Y: -sim.Shooter.Gravity},
		spin:    frame.RotateZ(r3.Vec{X: EarthAngularVelocity}, sim.Shooter.Latitude),
		sound:   sim.Atmosphere.SpeedOfSound(),
		dragK:   0.5 * rho * p.Area() * p.FormFactor() / p.Weight,
	}
	s.Reset()
	return s
}

// Reset rewinds the run to t=0.
func (s *Stepper) Reset() {
	s.cur = s.initial
	s.curX = s.toSight.Apply(s.cur.pos).X
	s.done = false
	s.err = nil
}

// Next returns the current packet and advances one step. It returns false
// once the run has ended.
func (s *Stepper) Next() (Packet, bool) {
	if s.done {
		return Packet{}, false
	}

	out := s.packet(s.cur)
	next, err := s.step()
	if err != nil {
		s.err = fmt.Errorf("step at t=%.6fs: %w", s.cur.time, err)
		s.done = true
		return out, true
	}

	x := s.toSight.Apply(next.pos).X
	if !(x > s.curX) {
		s.done = true
		return out, true
	}
	s.cur, s.curX = next, x
	return out, true
}

// Err returns the error that ended the run, if any.
func (s *Stepper) Err() error { return s.err }

// Packets adapts the stepper to a range-over-func sequence. Breaking out of
// the loop leaves the stepper where it stopped; check Err after the loop.
func (s *Stepper) Packets() iter.Seq[Packet] {
	return func(yield func(Packet) bool) {
		for {
			p, ok := s.Next()
			if !ok || !yield(p) {
				return
			}
		}
	}
}

func (s *Stepper) step() (state, error) {
	a, err := s.acceleration(s.cur.vel)
	if err != nil {
		return state{}, err
	}

	dt := s.dt
	v := s.cur.vel
	return state{
		pos:  r3.Add(s.cur.pos, r3.Add(r3.Scale(dt, v), r3.Scale(0.5*dt*dt, a))),
		vel:  r3.Add(v, r3.Scale(dt, a)),
		time: s.cur.time + dt,
	}, nil
}

// acceleration sums the enabled terms: coriolis, drag and gravity.
func (s *Stepper) acceleration(v r3.Vec) (r3.Vec, error) {
	var a r3.Vec
	flags := s.sim.Flags

	if flags.Coriolis {
		a = r3.Add(a, r3.Scale(-2, r3.Cross(s.spin, v)))
	}

	if flags.Drag {
		rel := r3.Sub(v, s.wind)
		speed := r3.Norm(rel)
		cd, err := s.table.Lookup(speed / s.sound)
		if err != nil {
			return r3.Vec{}, err
		}
		a = r3.Add(a, r3.Scale(-s.dragK*cd*speed, rel))
	}

	if flags.Gravity {
		a = r3.Add(a, s.gravity)
	}
	return a, nil
}

func (s *Stepper) packet(st state) Packet {
	return Packet{
		time:    st.time,
		pos:     st.pos,
		vel:     st.vel,
		wind:    s.wind,
		sim:     s.sim,
		toSight: s.toSight,
	}
}
