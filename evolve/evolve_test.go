package evolve_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erikrecio/qml/evolve"
	"github.com/erikrecio/qml/matrix"
	"github.com/erikrecio/qml/models"
	"github.com/erikrecio/qml/pauli"
)

func exactOf(t *testing.T, terms []pauli.Sentence, wires []int, tt float64) *matrix.Dense {
	t.Helper()
	h, err := models.Hamiltonian(terms).Matrix(wires)
	require.NoError(t, err)
	u, err := evolve.Exact(h, tt)
	require.NoError(t, err)

	return u
}

func distance(t *testing.T, a, b matrix.Matrix) float64 {
	t.Helper()
	d, err := evolve.TraceDistance(a, b)
	require.NoError(t, err)

	return d
}

func TestExact_Unitary(t *testing.T) {
	t.Parallel()

	h, err := pauli.MustParse("X0 X1 + 0.5*Z0 + 0.25*Y1").Matrix(models.Wires(2))
	require.NoError(t, err)
	u, err := evolve.Exact(h, 1.3)
	require.NoError(t, err)
	ok, err := matrix.IsUnitary(u, matrix.WithEpsilon(1e-10))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestTrotter_CommutingTermsAreExact(t *testing.T) {
	t.Parallel()

	wires := models.Wires(3)
	terms := []pauli.Sentence{pauli.MustParse("Z0 Z1"), pauli.MustParse("Z1 Z2"), pauli.MustParse("0.3*Z0")}
	u, err := evolve.Trotter(terms, wires, 0.9, 1, 1)
	require.NoError(t, err)
	assert.InDelta(t, 0, distance(t, exactOf(t, terms, wires, 0.9), u), 1e-12)
}

func TestTrotter_ErrorShrinksWithStepsAndOrder(t *testing.T) {
	t.Parallel()

	wires := models.Wires(3)
	terms, err := models.Heisenberg(3)
	require.NoError(t, err)
	terms = append(terms, pauli.MustParse("0.4*X1"))
	const tt = 1.0
	exact := exactOf(t, terms, wires, tt)

	errAt := func(steps, order int) float64 {
		u, err := evolve.Trotter(terms, wires, tt, steps, order)
		require.NoError(t, err)
		ok, err := matrix.IsUnitary(u, matrix.WithEpsilon(1e-9))
		require.NoError(t, err)
		require.True(t, ok)
		return distance(t, exact, u)
	}

	e1, e1x4 := errAt(2, 1), errAt(8, 1)
	assert.Less(t, e1x4, e1)
	e2 := errAt(8, 2)
	assert.Less(t, e2, e1x4)
	e4 := errAt(8, 4)
	assert.Less(t, e4, e2)
	assert.Less(t, e4, 1e-5)
}

func TestTraceDistance(t *testing.T) {
	t.Parallel()

	x, err := pauli.MustParse("X0").Matrix([]int{0})
	require.NoError(t, err)
	id, err := matrix.NewIdentity(2)
	require.NoError(t, err)
	phased, err := matrix.Scale(x, complex(0, 1))
	require.NoError(t, err)

	assert.InDelta(t, 0, distance(t, x, x), 1e-15)
	assert.InDelta(t, 0, distance(t, x, phased), 1e-15, "global phase is ignored")
	assert.InDelta(t, 1, distance(t, x, id), 1e-15, "orthogonal unitaries")

	id4, err := matrix.NewIdentity(4)
	require.NoError(t, err)
	_, err = evolve.TraceDistance(id, id4)
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = evolve.TraceDistance(nil, id)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestTrotter_Errors(t *testing.T) {
	t.Parallel()

	terms := []pauli.Sentence{pauli.MustParse("X0")}
	wires := []int{0}
	_, err := evolve.Trotter(nil, wires, 1, 1, 1)
	assert.ErrorIs(t, err, evolve.ErrNoTerms)
	_, err = evolve.Trotter(terms, wires, 1, 0, 1)
	assert.ErrorIs(t, err, evolve.ErrSteps)
	for _, order := range []int{0, 3, -2} {
		_, err = evolve.Trotter(terms, wires, 1, 1, order)
		assert.ErrorIs(t, err, evolve.ErrInvalidOrder, "order %d", order)
	}
	_, err = evolve.Trotter([]pauli.Sentence{pauli.MustParse("X3")}, wires, 1, 1, 1)
	assert.ErrorIs(t, err, pauli.ErrUnknownWire)
}
