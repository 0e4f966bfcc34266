package zeroing

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/banshee-data/ballistics/internal/trajectory"
)

// Result pairs a target with its solution or the error that prevented one.
type Result struct {
	Target   Target
	Solution Solution
	Err      error
}

// ZeroAll solves every target against the same simulation, running at most
// workers attempts at once (GOMAXPROCS when workers <= 0). A failed target
// does not stop the others; the returned error is only set when ctx ends
// the batch early. Results are in target order.
func (s Solver) ZeroAll(ctx context.Context, sim *trajectory.Simulation, targets []Target, workers int) ([]Result, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, len(targets))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, target := range targets {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sol, err := s.Zero(ctx, sim, target)
			if err != nil && ctx.Err() != nil {
				return ctx.Err()
			}
			results[i] = Result{Target: target, Solution: sol, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
