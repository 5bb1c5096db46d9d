// SPDX-License-Identifier: MIT

package sweep

import (
	"math"
	"runtime"

	"go.uber.org/zap"

	"github.com/erikrecio/qml/khk"
)

// DefaultSigma is the standard deviation of the start-point perturbation.
const DefaultSigma = 0.1

const (
	panicConcurrency = "sweep: WithConcurrency: n must be >= 1"
	panicSigma       = "sweep: WithSigma: sigma must be finite and >= 0"
)

// Option configures a Runner.
type Option func(*Options)

// Options holds the resolved Runner configuration.
type Options struct {
	concurrency int
	sigma       float64
	solve       []khk.Option
	metrics     *Metrics
	logger      *zap.Logger
}

// WithConcurrency bounds the number of restarts solved at once
// (default GOMAXPROCS). Panics when n < 1.
func WithConcurrency(n int) Option {
	if n < 1 {
		panic(panicConcurrency)
	}

	return func(o *Options) { o.concurrency = n }
}

// WithSigma sets σ in θ₀ = 1 + σ·N(0, 1). Zero restarts every run from all ones.
func WithSigma(sigma float64) Option {
	if math.IsNaN(sigma) || math.IsInf(sigma, 0) || sigma < 0 {
		panic(panicSigma)
	}

	return func(o *Options) { o.sigma = sigma }
}

// WithSolveOptions forwards options to every khk.Solve call.
func WithSolveOptions(opts ...khk.Option) Option {
	return func(o *Options) { o.solve = append(o.solve, opts...) }
}

// WithMetrics records every run on m.
func WithMetrics(m *Metrics) Option {
	return func(o *Options) { o.metrics = m }
}

// WithLogger sets the logger; each run logs through a child tagged with its
// run id and seed.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l == nil {
			l = zap.NewNop()
		}
		o.logger = l
	}
}

func gatherOptions(opts ...Option) Options {
	o := Options{
		concurrency: runtime.GOMAXPROCS(0),
		sigma:       DefaultSigma,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
