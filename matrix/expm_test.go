package matrix_test

import (
	"math"
	"testing"

	"github.com/erikrecio/qml/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLU_ReconstructsPermutedInput(t *testing.T) {
	t.Parallel()

	// Zero leading entry forces a row swap.
	a := MustFrom(t, [][]complex128{
		{0, 2, 1i},
		{1, 1, 0},
		{3i, 0, 4},
	})
	l, u, perm, err := matrix.LU(a)
	require.NoError(t, err)

	lu, err := matrix.Mul(l, u)
	require.NoError(t, err)
	pa := MustDense(t, 3, 3)
	for i, src := range perm {
		for j := 0; j < 3; j++ {
			require.NoError(t, pa.Set(i, j, MustAt(t, a, src, j)))
		}
	}
	RequireClose(t, pa, lu, 1e-14)
}

func TestLU_Singular(t *testing.T) {
	t.Parallel()

	_, _, _, err := matrix.LU(MustFrom(t, [][]complex128{{1, 2}, {2, 4}}))
	assert.ErrorIs(t, err, matrix.ErrSingular)
	_, _, _, err = matrix.LU(MustDense(t, 2, 3))
	assert.ErrorIs(t, err, matrix.ErrNonSquare)
}

func TestSolveAndInverse(t *testing.T) {
	t.Parallel()

	a := MustDense(t, 5, 5)
	RandomFill(t, a, 42)
	b := MustDense(t, 5, 2)
	RandomFill(t, b, 43)

	x, err := matrix.Solve(a, b)
	require.NoError(t, err)
	ax, err := matrix.Mul(a, x)
	require.NoError(t, err)
	RequireClose(t, b, ax, 1e-12)

	inv, err := matrix.Inverse(a)
	require.NoError(t, err)
	prod, err := matrix.Mul(a, inv)
	require.NoError(t, err)
	id, err := matrix.NewIdentity(5)
	require.NoError(t, err)
	RequireClose(t, id, prod, 1e-12)

	_, err = matrix.Solve(a, MustDense(t, 4, 1))
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestExpm_PauliRotationClosedForm(t *testing.T) {
	t.Parallel()

	// exp(-iθY) = cos θ I − i sin θ Y
	for _, theta := range []float64{0, 0.3, 1.7, 12.5} {
		y := MustFrom(t, pauliY)
		arg, err := matrix.Scale(y, complex(0, -theta))
		require.NoError(t, err)
		got, err := matrix.Expm(arg)
		require.NoError(t, err)

		c, s := math.Cos(theta), math.Sin(theta)
		want := MustFrom(t, [][]complex128{
			{complex(c, 0), complex(-s, 0)},
			{complex(s, 0), complex(c, 0)},
		})
		RequireClose(t, want, got, 1e-12)
	}
}

func TestExpm_DiagonalAndUnitary(t *testing.T) {
	t.Parallel()

	d := MustFrom(t, [][]complex128{{1, 0}, {0, -2}})
	got, err := matrix.Expm(d)
	require.NoError(t, err)
	RequireClose(t, MustFrom(t, [][]complex128{{complex(math.E, 0), 0}, {0, complex(math.Exp(-2), 0)}}), got, 1e-12)

	// exp(-iH) of a Hermitian H is unitary.
	h := RandomHermitian(t, 8, 5)
	arg, err := matrix.Scale(h, -1i)
	require.NoError(t, err)
	u, err := matrix.Expm(arg)
	require.NoError(t, err)
	ok, err := matrix.IsUnitary(u)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestExpm_Errors(t *testing.T) {
	t.Parallel()

	_, err := matrix.Expm(MustDense(t, 2, 3))
	assert.ErrorIs(t, err, matrix.ErrNonSquare)
	_, err = matrix.Expm(nil)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
}
