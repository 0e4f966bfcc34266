// Package zeroing finds the muzzle angles that put a trajectory through a
// point at a given range.
package zeroing

import (
	"context"
	"fmt"
	"math"

	"github.com/banshee-data/ballistics/internal/trajectory"
)

const (
	minPitch = -math.Pi / 2
	maxPitch = math.Pi / 4
	maxYaw   = math.Pi / 2
)

// Target is the point a zero should pass through, measured from the sight.
// All fields are in meters.
type Target struct {
	Distance  float64
	Elevation float64
	Windage   float64
	Tolerance float64
}

func (t Target) validate() error {
	switch {
	case !(t.Distance > 0) || math.IsInf(t.Distance, 0):
		return fmt.Errorf("%w: distance must be positive, got %g", ErrInvalidTarget, t.Distance)
	case !(t.Tolerance > 0) || math.IsInf(t.Tolerance, 0):
		return fmt.Errorf("%w: tolerance must be positive, got %g", ErrInvalidTarget, t.Tolerance)
	case math.IsNaN(t.Elevation) || math.IsInf(t.Elevation, 0):
		return fmt.Errorf("%w: elevation must be finite", ErrInvalidTarget)
	case math.IsNaN(t.Windage) || math.IsInf(t.Windage, 0):
		return fmt.Errorf("%w: windage must be finite", ErrInvalidTarget)
	}
	return nil
}

// Solution holds the muzzle angles found by the solver.
type Solution struct {
	Pitch      float64 // rad
	Yaw        float64 // rad
	Iterations int
}

// Solver bounds the work a single zeroing attempt may do.
type Solver struct {
	// MaxIterations caps the number of trajectories flown. Zero means
	// DefaultSolver's value.
	MaxIterations int
	// MaxFlightTime is how long, in seconds, a trajectory may fly before
	// the target counts as unreachable. Zero means DefaultSolver's value.
	MaxFlightTime float64
}

// DefaultSolver is used by Zero.
var DefaultSolver = Solver{MaxIterations: 100, MaxFlightTime: 10}

func (s Solver) limits() (int, float64) {
	iters, flight := s.MaxIterations, s.MaxFlightTime
	if iters <= 0 {
		iters = DefaultSolver.MaxIterations
	}
	if flight <= 0 {
		flight = DefaultSolver.MaxFlightTime
	}
	return iters, flight
}

// Zero finds the pitch and yaw, in radians, at which sim passes target.
// The search starts from level and is deterministic for a given input.
func Zero(sim *trajectory.Simulation, distance, elevation, windage, tolerance float64) (pitch, yaw float64, err error) {
	sol, err := DefaultSolver.Zero(context.Background(), sim, Target{
		Distance:  distance,
		Elevation: elevation,
		Windage:   windage,
		Tolerance: tolerance,
	})
	return sol.Pitch, sol.Yaw, err
}

// Zero iterates from pitch = yaw = 0. Each pass flies a fresh trajectory,
// measures the offsets at the first packet at or past target.Distance and,
// unless both already lie within tolerance, corrects each angle by the
// angular miss seen from the sight.
//
// Zeroing failures are returned as *Error. Drag lookup failures and
// context cancellation are returned wrapped as they are.
func (s Solver) Zero(ctx context.Context, sim *trajectory.Simulation, target Target) (Solution, error) {
	if err := target.validate(); err != nil {
		return Solution{}, err
	}
	if err := sim.Validate(); err != nil {
		return Solution{}, err
	}

	maxIter, maxFlight := s.limits()
	var pitch, yaw float64

	for iter := 1; iter <= maxIter; iter++ {
		if err := ctx.Err(); err != nil {
			return Solution{}, err
		}
		fail := func(err error) (Solution, error) {
			return Solution{}, &Error{Err: err, Iteration: iter, Pitch: pitch, Yaw: yaw}
		}

		p, ok, err := crossing(sim.WithMuzzle(pitch, yaw), target.Distance, maxFlight)
		if err != nil {
			return Solution{}, fmt.Errorf("zeroing iteration %d: %w", iter, err)
		}
		if !ok {
			return fail(ErrTerminalVelocity)
		}

		rel := p.Relative()
		if within(rel.Y, target.Elevation, target.Tolerance) && within(rel.Z, target.Windage, target.Tolerance) {
			return Solution{Pitch: pitch, Yaw: yaw, Iterations: iter}, nil
		}

		nextPitch := pitch + correction(rel.Y, rel.X, target.Elevation, target.Distance, target.Tolerance)
		nextYaw := yaw + correction(rel.Z, rel.X, target.Windage, target.Distance, target.Tolerance)
		if nextPitch == pitch && nextYaw == yaw {
			return fail(ErrAngleNotChanging)
		}
		pitch, yaw = nextPitch, nextYaw

		if !(pitch >= minPitch && pitch <= maxPitch) || !(yaw >= -maxYaw && yaw <= maxYaw) {
			return fail(ErrAngleRange)
		}
	}
	return Solution{}, &Error{Err: ErrIterationLimit, Iteration: maxIter, Pitch: pitch, Yaw: yaw}
}

// crossing flies sim and returns the first packet at or past distance.
func crossing(sim *trajectory.Simulation, distance, maxFlight float64) (trajectory.Packet, bool, error) {
	st := trajectory.Simulate(sim)
	for p := range st.Packets() {
		if p.Time() > maxFlight {
			return trajectory.Packet{}, false, nil
		}
		if p.Distance() >= distance {
			return p, true, nil
		}
	}
	return trajectory.Packet{}, false, st.Err()
}

func within(got, want, tolerance float64) bool {
	return math.Abs(got-want) <= tolerance
}

// correction returns the signed angle that moves an impact measured at
// (x, component) toward offset at distance. Components at or above the
// lower edge of the tolerance band steer down, the rest steer up.
func correction(component, x, offset, distance, tolerance float64) float64 {
	sign := 1.0
	if component >= offset-tolerance {
		sign = -1
	}
	return sign * math.Abs(math.Atan2(component, x)-math.Atan2(offset, distance))
}
