// SPDX-License-Identifier: MIT

package optimize

import (
	"errors"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	gonum "gonum.org/v1/gonum/optimize"
)

var (
	// errBudget and errConverged end a gonum run from inside the recorder.
	errBudget    = errors.New("optimize: epoch budget spent")
	errConverged = errors.New("optimize: tolerance reached")
)

// gonumMethod builds a fresh gonum method; a restart therefore drops the
// L-BFGS curvature memory.
func (o *Options) gonumMethod() gonum.Method {
	switch o.method {
	case LBFGS:
		return &gonum.LBFGS{
			Store:             o.memory,
			GradStopThreshold: math.NaN(),
		}
	default:
		return &gonum.GradientDescent{
			Linesearcher:      &fixedStep{},
			StepSizer:         gonum.ConstantStepSize{Size: o.eta},
			GradStopThreshold: math.NaN(),
		}
	}
}

// fixedStep accepts the first trial step, so GradientDescent with a
// ConstantStepSize performs x ← x − η∇f(x).
type fixedStep struct {
	step float64
}

func (l *fixedStep) Init(_, _ float64, step float64) gonum.Operation {
	l.step = step

	return gonum.FuncEvaluation | gonum.GradEvaluation
}

func (l *fixedStep) Iterate(_, _ float64) (gonum.Operation, float64, error) {
	return gonum.MajorIteration, l.step, nil
}

// cachedObjective splits an Objective into gonum's Func and Grad, evaluating
// obj once per distinct point.
type cachedObjective struct {
	obj   Objective
	x     []float64
	f     float64
	grad  []float64
	ok    bool
	calls int
}

func newCachedObjective(obj Objective, n int) *cachedObjective {
	return &cachedObjective{
		obj:  obj,
		x:    make([]float64, n),
		grad: make([]float64, n),
	}
}

func (c *cachedObjective) eval(x []float64) {
	if c.ok && floats.Same(c.x, x) {
		return
	}
	copy(c.x, x)
	c.f = c.obj(c.x, c.grad)
	c.ok = true
	c.calls++
}

func (c *cachedObjective) problem() gonum.Problem {
	return gonum.Problem{
		Func: func(x []float64) float64 {
			c.eval(x)
			return c.f
		},
		Grad: func(grad, x []float64) {
			c.eval(x)
			copy(grad, c.grad)
		},
	}
}

// recorder turns gonum major iterations into epochs. The first major
// iteration of every run repeats the start point and is skipped.
type recorder struct {
	o       *Options
	res     *Result
	x       []float64 // current point
	f       float64   // loss at x
	started bool
	moved   int // updates taken in the current run
}

func (r *recorder) Init() error {
	r.started = false
	r.moved = 0

	return nil
}

// Record handles the update of epoch e = len(res.Params): store the new
// point, then either stop on the budget or open epoch e+1.
func (r *recorder) Record(loc *gonum.Location, op gonum.Operation, _ *gonum.Stats) error {
	if op != gonum.MajorIteration {
		return nil
	}
	if !r.started {
		r.started = true
		return nil
	}
	r.moved++
	copy(r.x, loc.X)
	r.f = loc.F
	r.res.Params = append(r.res.Params, clone(r.x))
	if len(r.res.Params) == r.o.epochs {
		return errBudget
	}

	return r.open()
}

// open records the loss at the current point as the start of the next epoch.
func (r *recorder) open() error {
	e := len(r.res.Losses)
	if err := r.o.ctx.Err(); err != nil {
		return err
	}
	r.res.record(r.x, r.f)
	r.o.onEpoch(e, r.f)
	r.o.logger.Debug("epoch", zap.Int("epoch", e), zap.Float64("loss", r.f))
	if r.o.tol > 0 && e > 0 && math.Abs(r.f-r.res.Losses[e-1]) < r.o.tol {
		return errConverged
	}

	return nil
}
