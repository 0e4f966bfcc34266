// Package rangecard runs a shot config end to end: build the simulation,
// solve the zero and any alternate zeros, then sample the zeroed trajectory
// into a range card.
package rangecard

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/banshee-data/ballistics/internal/config"
	"github.com/banshee-data/ballistics/internal/db"
	"github.com/banshee-data/ballistics/internal/drag"
	"github.com/banshee-data/ballistics/internal/report"
	"github.com/banshee-data/ballistics/internal/trajectory"
	"github.com/banshee-data/ballistics/internal/units"
	"github.com/banshee-data/ballistics/internal/zeroing"
)

// Zero is a solved (or failed) zero in both radians and MOA.
type Zero struct {
	Distance   float64 `json:"distance_m"`
	Pitch      float64 `json:"pitch_rad"`
	Yaw        float64 `json:"yaw_rad"`
	PitchMOA   float64 `json:"pitch_moa"`
	YawMOA     float64 `json:"yaw_moa"`
	Iterations int     `json:"iterations"`
	Error      string  `json:"error,omitempty"`
}

func newZero(r zeroing.Result) Zero {
	z := Zero{
		Distance:   r.Target.Distance,
		Pitch:      r.Solution.Pitch,
		Yaw:        r.Solution.Yaw,
		PitchMOA:   r.Solution.Pitch / units.RadiansPerMOA,
		YawMOA:     r.Solution.Yaw / units.RadiansPerMOA,
		Iterations: r.Solution.Iterations,
	}
	if r.Err != nil {
		z.Error = r.Err.Error()
	}
	return z
}

// Result is a zeroed configuration and its range card.
type Result struct {
	Label        string                   `json:"label"`
	Zero         Zero                     `json:"zero"`
	Alternates   []Zero                   `json:"alternates,omitempty"`
	Measurements []trajectory.Measurement `json:"measurements,omitempty"`
	Card         *report.Card             `json:"card,omitempty"`

	sim *trajectory.Simulation
}

// Options tune Compute.
type Options struct {
	// Workers bounds concurrent zeroing runs; zero means GOMAXPROCS.
	Workers int
	// System overrides the config's display units when set.
	System units.System
}

// Solve zeros cfg at its primary target and alternates. Failing to zero
// the primary target is an error; alternates report failures per entry.
// The result has no range card.
func Solve(ctx context.Context, cfg *config.ShotConfig, reg *drag.Registry, opts Options) (*Result, error) {
	sim, err := cfg.Build(reg)
	if err != nil {
		return nil, err
	}

	results, err := cfg.Solver().ZeroAll(ctx, sim, cfg.Targets(), opts.Workers)
	if err != nil {
		return nil, err
	}
	primary := results[0]
	if primary.Err != nil {
		return nil, fmt.Errorf("zero at %.2f m: %w", primary.Target.Distance, primary.Err)
	}

	res := &Result{
		Label: cfg.GetLabel(),
		Zero:  newZero(primary),
		sim:   sim.WithMuzzle(primary.Solution.Pitch, primary.Solution.Yaw),
	}
	for _, r := range results[1:] {
		res.Alternates = append(res.Alternates, newZero(r))
	}
	return res, nil
}

// Compute solves cfg and samples the zeroed trajectory into its range card.
func Compute(ctx context.Context, cfg *config.ShotConfig, reg *drag.Registry, opts Options) (*Result, error) {
	res, err := Solve(ctx, cfg, reg, opts)
	if err != nil {
		return nil, err
	}

	packets, err := trajectory.Sample(res.sim, cfg.SampleOptions())
	if err != nil {
		return nil, fmt.Errorf("range card: %w", err)
	}
	res.Measurements = trajectory.Measurements(packets)

	system := opts.System
	if system == "" {
		system = cfg.GetUnits()
	}
	card := report.NewCard(res.Label, res.Measurements, system)
	res.Card = &card
	return res, nil
}

// Record stores the result and the config it came from, returning the
// stored run.
func (r *Result) Record(store *db.DB, cfg *config.ShotConfig) (*db.Run, error) {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	run := &db.Run{
		Label:      r.Label,
		Config:     raw,
		Pitch:      r.Zero.Pitch,
		Yaw:        r.Zero.Yaw,
		Iterations: r.Zero.Iterations,
	}
	if err := store.RecordRun(run, r.Measurements); err != nil {
		return nil, err
	}
	return run, nil
}
