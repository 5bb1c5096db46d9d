// SPDX-License-Identifier: MIT

// Package sweep restarts the KhK driver from perturbed start points and keeps
// the outcomes in an explicit Results accumulator.
//
// Restart i starts from θ₀ = 1 + σ·N(0, 1), drawn from a generator seeded with
// the run's seed, so a sweep is reproducible seed by seed regardless of the
// concurrency it runs at. Restarts are solved in parallel under an errgroup;
// the first failing restart cancels the rest.
package sweep

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/erikrecio/qml/khk"
	"github.com/erikrecio/qml/optimize"
)

// Runner solves one Problem from many start points.
type Runner struct {
	p *khk.Problem
	o Options
}

// NewRunner returns a Runner over p.
func NewRunner(p *khk.Problem, opts ...Option) *Runner {
	return &Runner{p: p, o: gatherOptions(opts...)}
}

// Seeds returns the seeds 0..n-1.
func Seeds(n int) []int64 {
	out := make([]int64, n)
	for i := range out {
		out[i] = int64(i)
	}

	return out
}

// StartPoint returns θ₀ = 1 + σ·N(0, 1) of length n for seed.
func StartPoint(seed int64, n int, sigma float64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	for i := range out {
		out[i] = 1 + sigma*rng.NormFloat64()
	}

	return out
}

// Run solves one restart per seed and returns every finished run. On the
// first error (including cancellation of ctx) the remaining restarts are
// cancelled and the error is returned with the runs finished so far.
func (r *Runner) Run(ctx context.Context, seeds []int64) (*Results, error) {
	res := &Results{}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.o.concurrency)

	r.o.logger.Info("sweep started",
		zap.Int("runs", len(seeds)),
		zap.Int("concurrency", r.o.concurrency),
		zap.Float64("sigma", r.o.sigma),
	)
	for _, seed := range seeds {
		seed := seed
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			run, err := r.one(gctx, seed)
			r.o.metrics.observe(run, err)
			if err != nil {
				return fmt.Errorf("sweep: seed %d: %w", seed, err)
			}
			res.Add(*run)

			return nil
		})
	}
	err := g.Wait()

	if best, ok := res.Best(); ok {
		r.o.logger.Info("sweep finished",
			zap.Int("runs", res.Len()),
			zap.Int64("best_seed", best.Seed),
			zap.Float64("best_loss", best.MinLoss),
		)
	}

	return res, err
}

func (r *Runner) one(ctx context.Context, seed int64) (*Run, error) {
	id := uuid.New()
	log := r.o.logger.With(zap.String("run_id", id.String()), zap.Int64("seed", seed))
	theta0 := StartPoint(seed, r.p.Len(), r.o.sigma)

	opts := make([]khk.Option, 0, len(r.o.solve)+2)
	opts = append(opts, r.o.solve...)
	opts = append(opts, khk.WithLogger(log), khk.WithOptimizer(optimize.WithContext(ctx)))

	start := time.Now()
	d, err := khk.Solve(r.p, theta0, opts...)
	if err != nil {
		log.Warn("restart failed", zap.Error(err))
		return nil, err
	}

	return &Run{
		ID:            id,
		Seed:          seed,
		Theta0:        theta0,
		Decomposition: d,
		FinalLoss:     d.Result.LastLoss,
		MinLoss:       d.Result.BestLoss,
		Stalled:       d.Result.Stalled,
		Elapsed:       time.Since(start),
	}, nil
}
