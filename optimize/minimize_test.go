package optimize_test

import (
	"context"
	"math"
	"testing"

	"github.com/erikrecio/qml/optimize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// quadratic is f(x) = Σ aᵢ(xᵢ − cᵢ)².
func quadratic(a, c []float64) optimize.Objective {
	return func(x, g []float64) float64 {
		var f float64
		for i := range x {
			d := x[i] - c[i]
			f += a[i] * d * d
			g[i] = 2 * a[i] * d
		}
		return f
	}
}

// rosenbrock is the classic banana valley with minimum 0 at (1, 1).
func rosenbrock(x, g []float64) float64 {
	a, b := 1-x[0], x[1]-x[0]*x[0]
	g[0] = -2*a - 400*x[0]*b
	g[1] = 200 * b
	return a*a + 100*b*b
}

func TestMinimize_GradientDescentTrajectory(t *testing.T) {
	t.Parallel()

	res, err := optimize.Minimize(quadratic([]float64{1}, []float64{0}), []float64{1},
		optimize.WithMethod(optimize.GradientDescent),
		optimize.WithLearningRate(0.1),
		optimize.WithEpochs(3),
	)
	require.NoError(t, err)
	require.Len(t, res.Losses, 3)
	require.Len(t, res.Params, 3)
	assert.InDelta(t, 1, res.Losses[0], 1e-15)
	assert.InDelta(t, 0.64, res.Losses[1], 1e-15)
	assert.InDelta(t, 0.4096, res.Losses[2], 1e-15)
	assert.InDelta(t, 0.8, res.Params[0][0], 1e-15)
	assert.InDelta(t, 0.512, res.Last[0], 1e-15)
	assert.InDelta(t, 0.512*0.512, res.LastLoss, 1e-15)
	assert.InDelta(t, res.LastLoss, res.BestLoss, 0, "the final point is the best here")
	assert.Equal(t, 3, res.Epochs)
	assert.Equal(t, 4, res.Evaluations, "one evaluation per point")
	assert.Equal(t, optimize.GradientDescent, res.Method)
	assert.False(t, res.Stalled)
	assert.False(t, res.Converged)
}

func TestMinimize_LBFGSQuadratic(t *testing.T) {
	t.Parallel()

	a := []float64{1, 10, 100, 0.5}
	c := []float64{1, -2, 0.5, 3}
	res, err := optimize.Minimize(quadratic(a, c), []float64{0, 0, 0, 0}, optimize.WithEpochs(100))
	require.NoError(t, err)
	assert.Equal(t, optimize.LBFGS, res.Method)
	assert.Less(t, res.BestLoss, 1e-12)
	assert.InDeltaSlice(t, c, res.Best, 1e-6)
}

func TestMinimize_LBFGSRosenbrock(t *testing.T) {
	t.Parallel()

	res, err := optimize.Minimize(rosenbrock, []float64{-1.2, 1},
		optimize.WithEpochs(500),
		optimize.WithMemory(10),
	)
	require.NoError(t, err)
	assert.Less(t, res.BestLoss, 1e-6)
	assert.InDeltaSlice(t, []float64{1, 1}, res.Best, 1e-2)
}

func TestMinimize_LBFGSStopsAtExactMinimum(t *testing.T) {
	t.Parallel()

	res, err := optimize.Minimize(quadratic([]float64{1}, []float64{0}), []float64{1})
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.False(t, res.Stalled)
	assert.Less(t, res.Epochs, optimize.DefaultEpochs)
	assert.Len(t, res.Params, res.Epochs-1, "the last epoch has no update")
	assert.Less(t, res.BestLoss, 1e-12)
}

func TestMinimize_BestIsMinimumOfTrajectory(t *testing.T) {
	t.Parallel()

	res, err := optimize.Minimize(rosenbrock, []float64{-1.2, 1},
		optimize.WithMethod(optimize.GradientDescent),
		optimize.WithLearningRate(1e-3),
		optimize.WithEpochs(50),
	)
	require.NoError(t, err)
	for _, l := range res.Losses {
		assert.LessOrEqual(t, res.BestLoss, l)
	}
	g := make([]float64, 2)
	assert.InDelta(t, res.BestLoss, rosenbrock(res.Best, g), 0)
}

func TestMinimize_Deterministic(t *testing.T) {
	t.Parallel()

	for _, m := range []optimize.Method{optimize.GradientDescent, optimize.LBFGS} {
		run := func() *optimize.Result {
			res, err := optimize.Minimize(rosenbrock, []float64{-1.2, 1},
				optimize.WithMethod(m), optimize.WithLearningRate(1e-3), optimize.WithEpochs(60))
			require.NoError(t, err)
			return res
		}
		a, b := run(), run()
		assert.Equal(t, a.Losses, b.Losses, m.String())
		assert.Equal(t, a.Params, b.Params, m.String())
		assert.Equal(t, a.Best, b.Best, m.String())
	}
}

func TestMinimize_NaNNeverBest(t *testing.T) {
	t.Parallel()

	// Finite until x crosses 0.5, NaN afterwards.
	obj := func(x, g []float64) float64 {
		if x[0] > 0.5 {
			g[0] = math.NaN()
			return math.NaN()
		}
		d := x[0] - 1
		g[0] = 2 * d
		return d * d
	}
	res, err := optimize.Minimize(obj, []float64{0},
		optimize.WithMethod(optimize.GradientDescent), optimize.WithLearningRate(0.2), optimize.WithEpochs(20))
	require.NoError(t, err)
	assert.True(t, math.IsNaN(res.LastLoss))
	assert.False(t, math.IsNaN(res.BestLoss))
	assert.LessOrEqual(t, res.Best[0], 0.5)
	assert.Len(t, res.Losses, 20, "NaN losses stay in the trajectory")
	assert.False(t, res.Stalled)
}

func TestMinimize_AllNaN(t *testing.T) {
	t.Parallel()

	obj := func(_, g []float64) float64 {
		g[0] = math.NaN()
		return math.NaN()
	}
	for _, m := range []optimize.Method{optimize.GradientDescent, optimize.LBFGS} {
		res, err := optimize.Minimize(obj, []float64{0.25}, optimize.WithMethod(m), optimize.WithEpochs(5))
		require.NoError(t, err)
		assert.True(t, math.IsNaN(res.BestLoss))
		assert.Equal(t, []float64{0.25}, res.Best)
		assert.True(t, res.Stalled, m.String())
	}
}

func TestMinimize_FlatTrajectoryStalls(t *testing.T) {
	t.Parallel()

	flat := func(_, g []float64) float64 {
		for i := range g {
			g[i] = 0
		}
		return 3
	}
	for _, m := range []optimize.Method{optimize.GradientDescent, optimize.LBFGS} {
		res, err := optimize.Minimize(flat, []float64{1, 2}, optimize.WithMethod(m), optimize.WithEpochs(10))
		require.NoError(t, err)
		assert.True(t, res.Stalled, m.String())
		assert.Equal(t, []float64{1, 2}, res.Last)
		assert.Equal(t, 3.0, res.BestLoss)
	}
}

func TestMinimize_Tolerance(t *testing.T) {
	t.Parallel()

	res, err := optimize.Minimize(quadratic([]float64{1}, []float64{0}), []float64{1},
		optimize.WithMethod(optimize.GradientDescent),
		optimize.WithTolerance(1e-12),
	)
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.Less(t, res.Epochs, optimize.DefaultEpochs)
	assert.Len(t, res.Params, res.Epochs-1)
}

func TestMinimize_ContextAndHook(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	seen := 0
	res, err := optimize.Minimize(quadratic([]float64{1}, []float64{0}), []float64{1},
		optimize.WithMethod(optimize.GradientDescent),
		optimize.WithContext(ctx),
		optimize.WithOnEpoch(func(e int, _ float64) {
			seen++
			if e == 2 {
				cancel()
			}
		}),
	)
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, res)
	assert.Equal(t, 3, seen)
	assert.Len(t, res.Losses, 3)
	assert.NotNil(t, res.Last)
}

func TestMinimize_DoesNotModifyStart(t *testing.T) {
	t.Parallel()

	x0 := []float64{-1.2, 1}
	_, err := optimize.Minimize(rosenbrock, x0, optimize.WithEpochs(5))
	require.NoError(t, err)
	assert.Equal(t, []float64{-1.2, 1}, x0)
}

func TestMinimize_Errors(t *testing.T) {
	t.Parallel()

	_, err := optimize.Minimize(nil, []float64{1})
	assert.ErrorIs(t, err, optimize.ErrNilObjective)
	_, err = optimize.Minimize(rosenbrock, nil)
	assert.ErrorIs(t, err, optimize.ErrEmptyParams)
}

func TestOptions(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { optimize.WithEpochs(0) })
	assert.Panics(t, func() { optimize.WithLearningRate(0) })
	assert.Panics(t, func() { optimize.WithLearningRate(math.NaN()) })
	assert.Panics(t, func() { optimize.WithMemory(0) })
	assert.Panics(t, func() { optimize.WithTolerance(-1) })
	assert.Panics(t, func() { optimize.WithMethod(optimize.Method(9)) })
	assert.NotPanics(t, func() { optimize.WithLogger(nil); optimize.WithContext(nil); optimize.WithOnEpoch(nil) })

	m, ok := optimize.ParseMethod("gd")
	assert.True(t, ok)
	assert.Equal(t, optimize.GradientDescent, m)
	_, ok = optimize.ParseMethod("adam")
	assert.False(t, ok)
	assert.Equal(t, "lbfgs", optimize.LBFGS.String())
	assert.Equal(t, "unknown", optimize.Method(9).String())
}
