package trajectory

import (
	"errors"
	"fmt"
	"math"
)

// SampleOptions selects which packets of a run Sample keeps.
type SampleOptions struct {
	Interval    float64 // down-range spacing of samples, m
	MaxDistance float64 // last sample distance, m
	MinVelocity float64 // stop once the projectile slows below this, m/s; 0 disables
	MaxTime     float64 // stop after this time of flight, s; 0 disables
}

// ErrInvalidSample is returned for unusable SampleOptions.
var ErrInvalidSample = errors.New("invalid sample options")

// MaxSamples bounds how many marks one Sample call may request.
const MaxSamples = 100_000

// Sample runs sim and returns the first packet at or beyond each multiple of
// opts.Interval, starting at 0 and ending at opts.MaxDistance. The result is
// shorter than requested when the run ends early; a drag failure is
// returned alongside the packets collected so far.
func Sample(sim *Simulation, opts SampleOptions) ([]Packet, error) {
	if !(opts.Interval > 0) || math.IsInf(opts.Interval, 0) {
		return nil, fmt.Errorf("%w: interval must be positive, got %g", ErrInvalidSample, opts.Interval)
	}
	if opts.MaxDistance < 0 || math.IsNaN(opts.MaxDistance) || math.IsInf(opts.MaxDistance, 0) {
		return nil, fmt.Errorf("%w: max distance must be finite and not negative, got %g", ErrInvalidSample, opts.MaxDistance)
	}
	marks := math.Floor(opts.MaxDistance/opts.Interval+1e-9) + 1
	if marks > MaxSamples {
		return nil, fmt.Errorf("%w: %g samples requested, at most %d allowed", ErrInvalidSample, marks, MaxSamples)
	}
	if err := sim.Validate(); err != nil {
		return nil, err
	}

	n := int(marks)
	out := make([]Packet, 0, min(n, 1024))

	s := Simulate(sim)
	for p := range s.Packets() {
		if opts.MaxTime > 0 && p.Time() > opts.MaxTime {
			break
		}
		if opts.MinVelocity > 0 && p.Velocity() < opts.MinVelocity {
			break
		}
		// A single long step can cross several marks.
		for len(out) < n && p.Distance() >= float64(len(out))*opts.Interval {
			out = append(out, p)
		}
		if len(out) == n {
			break
		}
	}
	return out, s.Err()
}
