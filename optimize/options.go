// SPDX-License-Identifier: MIT

package optimize

import (
	"context"
	"math"

	"go.uber.org/zap"
)

// Method selects the update rule.
type Method int

const (
	// GradientDescent is plain steepest descent with a fixed learning rate.
	GradientDescent Method = iota
	// LBFGS is limited-memory BFGS with a Wolfe line search.
	LBFGS
)

// String returns the method name used in logs and configuration.
func (m Method) String() string {
	switch m {
	case GradientDescent:
		return "gd"
	case LBFGS:
		return "lbfgs"
	default:
		return "unknown"
	}
}

// ParseMethod maps "gd" and "lbfgs" to their Method.
func ParseMethod(s string) (Method, bool) {
	switch s {
	case "gd":
		return GradientDescent, true
	case "lbfgs":
		return LBFGS, true
	default:
		return 0, false
	}
}

// Defaults.
const (
	DefaultMethod       = LBFGS
	DefaultEpochs       = 500
	DefaultLearningRate = 0.1
	DefaultMemory       = 100
	DefaultTolerance    = 0.0 // disabled: run the full budget
)

const (
	panicEpochs = "optimize: WithEpochs: n must be >= 1"
	panicRate   = "optimize: WithLearningRate: eta must be finite and > 0"
	panicMemory = "optimize: WithMemory: m must be >= 1"
	panicTol    = "optimize: WithTolerance: tol must be finite and >= 0"
	panicMethod = "optimize: WithMethod: unknown method"
	stallRelTol = 1e-12 // relative spread below which a trajectory is flat
)

// Option configures Minimize.
type Option func(*Options)

// Options holds the resolved configuration of one Minimize call.
type Options struct {
	method  Method
	epochs  int
	eta     float64
	memory  int
	tol     float64
	ctx     context.Context
	onEpoch func(epoch int, loss float64)
	logger  *zap.Logger
}

// WithMethod selects the update rule. Panics on an unknown Method.
func WithMethod(m Method) Option {
	if m != GradientDescent && m != LBFGS {
		panic(panicMethod)
	}

	return func(o *Options) { o.method = m }
}

// WithEpochs sets the iteration budget. Panics when n < 1.
func WithEpochs(n int) Option {
	if n < 1 {
		panic(panicEpochs)
	}

	return func(o *Options) { o.epochs = n }
}

// WithLearningRate sets the gradient-descent step η. L-BFGS chooses its own steps.
func WithLearningRate(eta float64) Option {
	if math.IsNaN(eta) || math.IsInf(eta, 0) || eta <= 0 {
		panic(panicRate)
	}

	return func(o *Options) { o.eta = eta }
}

// WithMemory sets the number of L-BFGS curvature pairs kept.
func WithMemory(m int) Option {
	if m < 1 {
		panic(panicMemory)
	}

	return func(o *Options) { o.memory = m }
}

// WithTolerance stops early once |loss_e − loss_{e−1}| < tol. Zero disables it.
func WithTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		panic(panicTol)
	}

	return func(o *Options) { o.tol = tol }
}

// WithContext sets a context checked once per epoch.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

// WithOnEpoch registers a callback run after each recorded loss.
func WithOnEpoch(fn func(epoch int, loss float64)) Option {
	return func(o *Options) {
		if fn != nil {
			o.onEpoch = fn
		}
	}
}

// WithLogger routes per-epoch progress to l at debug level.
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
		method:  DefaultMethod,
		epochs:  DefaultEpochs,
		eta:     DefaultLearningRate,
		memory:  DefaultMemory,
		tol:     DefaultTolerance,
		ctx:     context.Background(),
		onEpoch: func(int, float64) {},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
