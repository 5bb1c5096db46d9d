// SPDX-License-Identifier: MIT

package khk

import (
	"go.uber.org/zap"

	"github.com/erikrecio/qml/optimize"
)

// Option configures Solve.
type Option func(*solveOptions)

type solveOptions struct {
	opt    []optimize.Option
	logger *zap.Logger
	last   bool
}

// WithOptimizer forwards options to optimize.Minimize.
func WithOptimizer(opts ...optimize.Option) Option {
	return func(o *solveOptions) { o.opt = append(o.opt, opts...) }
}

// WithLogger sets the logger for the run summary; the optimiser logs
// per-epoch progress to the same logger at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(o *solveOptions) {
		if l == nil {
			l = zap.NewNop()
		}
		o.logger = l
	}
}

// WithLastIterate builds the decomposition from the final iterate instead of
// the lowest-loss one.
func WithLastIterate() Option {
	return func(o *solveOptions) { o.last = true }
}

func gatherOptions(opts ...Option) solveOptions {
	o := solveOptions{logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
