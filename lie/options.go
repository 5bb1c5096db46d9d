// SPDX-License-Identifier: MIT

package lie

import (
	"math"

	"go.uber.org/zap"
)

// DefaultMaxDim bounds the closure; su(2ⁿ) on six qubits already has 4095 elements.
const DefaultMaxDim = 4096

const (
	panicMaxDim    = "lie: WithMaxDim: max must be >= 1"
	panicTolerance = "lie: WithTolerance: tol must be finite and > 0"
)

// Option configures Closure.
type Option func(*Options)

// Options holds the resolved Closure configuration.
type Options struct {
	maxDim int
	tol    float64
	logger *zap.Logger
}

// WithMaxDim stops the closure with ErrMaxDimExceeded once it exceeds max elements.
// Panics when max < 1.
func WithMaxDim(max int) Option {
	if max < 1 {
		panic(panicMaxDim)
	}

	return func(o *Options) { o.maxDim = max }
}

// WithTolerance sets the independence tolerance (DefaultTolerance otherwise).
// Panics on non-finite or non-positive values.
func WithTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol <= 0 {
		panic(panicTolerance)
	}

	return func(o *Options) { o.tol = tol }
}

// WithLogger routes per-level progress to l at debug level. nil restores the no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l == nil {
			l = zap.NewNop()
		}
		o.logger = l
	}
}

func gatherOptions(opts ...Option) Options {
	o := Options{maxDim: DefaultMaxDim, tol: DefaultTolerance, logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
