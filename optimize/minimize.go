// SPDX-License-Identifier: MIT

package optimize

import (
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
	gonum "gonum.org/v1/gonum/optimize"
)

// Objective evaluates f at x, writes ∇f(x) into grad (len(grad) == len(x))
// and returns f(x). It must not retain x or grad.
type Objective func(x, grad []float64) float64

// Result is the outcome of one Minimize call.
type Result struct {
	Method Method

	// Best is the point with the lowest finite loss seen, BestLoss that loss.
	// When every loss is NaN, Best is the start point and BestLoss is NaN.
	Best     []float64
	BestLoss float64

	// Last is the point after the final update and LastLoss its loss.
	Last     []float64
	LastLoss float64

	// Losses[e] is the loss at the start of epoch e, before its update.
	Losses []float64
	// Params[e] is the point after the update of epoch e.
	Params [][]float64

	Epochs      int  // recorded epochs; below the budget only on early stop
	Evaluations int  // objective evaluations, line-search trials included
	Converged   bool // stopped early: WithTolerance was met or no further progress was possible
	Stalled     bool // the loss trajectory is flat
	Elapsed     time.Duration
}

// Minimize runs the configured method on obj from x0 (not modified).
//
// The update rules are gonum's: optimize.GradientDescent with a constant step
// and optimize.LBFGS with its default Wolfe line search. A recorder turns each
// gonum major iteration into one epoch and ends the run once the budget is
// spent, so the trajectory never depends on gonum's own stopping rules.
//
// Implementation:
//   - Stage 1: validate inputs, evaluate f(x0) and open epoch 0.
//   - Stage 2: run gonum until the budget, the tolerance or the context ends
//     it. When the method gives up (line-search failure, non-descent
//     direction) after moving, restart it from the current point with fresh
//     memory; when it gives up without moving, stop early.
//   - Stage 3: fold the final point into Best and classify the trajectory.
//
// Errors: ErrNilObjective, ErrEmptyParams, and the context error (wrapped with
// the epoch reached) together with the partial Result.
func Minimize(obj Objective, x0 []float64, opts ...Option) (*Result, error) {
	// Stage 1: Validate
	if obj == nil {
		return nil, ErrNilObjective
	}
	if len(x0) == 0 {
		return nil, ErrEmptyParams
	}
	o := gatherOptions(opts...)
	start := time.Now()

	res := &Result{
		Method:   o.method,
		Best:     clone(x0),
		BestLoss: math.NaN(),
		Losses:   make([]float64, 0, o.epochs),
		Params:   make([][]float64, 0, o.epochs),
	}
	co := newCachedObjective(obj, len(x0))
	rec := &recorder{o: &o, res: res, x: clone(x0)}
	co.eval(rec.x)
	rec.f = co.f
	if err := rec.open(); err != nil {
		return res.stop(rec, co, start, err)
	}

	// Stage 2: Iterate
	prob := co.problem()
	stuck := false
	for {
		co.eval(rec.x)
		settings := &gonum.Settings{
			InitValues: &gonum.Location{F: co.f, Gradient: clone(co.grad)},
			Converger:  gonum.NeverTerminate{},
			Recorder:   rec,
		}
		_, err := gonum.Minimize(prob, rec.x, settings, o.gonumMethod())
		if errors.Is(err, errBudget) {
			break
		}
		if errors.Is(err, errConverged) {
			res.Converged = true
			break
		}
		if cerr := o.ctx.Err(); cerr != nil && errors.Is(err, cerr) {
			return res.stop(rec, co, start, err)
		}
		if rec.moved == 0 {
			stuck = true
			break
		}
		o.logger.Debug("optimizer restart", zap.Int("epoch", len(res.Losses)), zap.Error(err))
	}

	// Stage 3: Finish
	res.finish(rec.x, rec.f, co.calls, start)
	if stuck && !res.Stalled {
		res.Converged = true
	}

	return res, nil
}

// stop finishes a run cut short by the context.
func (r *Result) stop(rec *recorder, co *cachedObjective, start time.Time, err error) (*Result, error) {
	r.finish(rec.x, rec.f, co.calls, start)

	return r, fmt.Errorf("Minimize: epoch %d: %w", len(r.Losses), err)
}

// record appends loss f at x and updates Best.
func (r *Result) record(x []float64, f float64) {
	r.Losses = append(r.Losses, f)
	r.Epochs = len(r.Losses)
	r.consider(x, f)
}

func (r *Result) consider(x []float64, f float64) {
	if math.IsNaN(f) {
		return
	}
	if math.IsNaN(r.BestLoss) || f < r.BestLoss {
		r.BestLoss = f
		r.Best = clone(x)
	}
}

func (r *Result) finish(x []float64, f float64, calls int, start time.Time) {
	r.Last = clone(x)
	r.Evaluations = calls
	r.LastLoss = f
	r.consider(x, f)
	r.Stalled = flat(append(r.Losses[:len(r.Losses):len(r.Losses)], f))
	r.Elapsed = time.Since(start)
}

// flat reports whether the finite losses span no more than a relative
// stallRelTol, or whether there are none.
func flat(losses []float64) bool {
	lo, hi := math.Inf(1), math.Inf(-1)
	finite := 0
	for _, l := range losses {
		if math.IsNaN(l) || math.IsInf(l, 0) {
			continue
		}
		finite++
		lo = math.Min(lo, l)
		hi = math.Max(hi, l)
	}
	if finite == 0 {
		return true
	}

	return hi-lo <= stallRelTol*(1+math.Abs(lo))
}

func clone(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)

	return out
}
