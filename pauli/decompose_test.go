package pauli_test

import (
	"math/rand"
	"testing"

	"github.com/erikrecio/qml/matrix"
	"github.com/erikrecio/qml/pauli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecompose_RoundTrip(t *testing.T) {
	t.Parallel()

	s := pauli.MustParse("0.5*Z0 Z1 - X0 + (0.25+1i)*Y0 X1 + 0.125")
	for _, wires := range [][]int{{0, 1}, {1, 0}, {0, 1, 2}} {
		m := mustMatrix(t, s, wires...)
		got, err := pauli.Decompose(m, wires)
		require.NoError(t, err)
		assert.True(t, got.Equal(s, 1e-12), "wires %v: got %v", wires, got)
	}
}

func TestDecompose_RandomMatrix(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(7))
	m, err := matrix.NewDense(8, 8)
	require.NoError(t, err)
	for i := 0; i < 8; i++ {
		for j := 0; j < 8; j++ {
			require.NoError(t, m.Set(i, j, complex(rng.NormFloat64(), rng.NormFloat64())))
		}
	}
	wires := []int{3, 5, 9}
	s, err := pauli.Decompose(m, wires)
	require.NoError(t, err)
	requireClose(t, m, mustMatrix(t, s, wires...), 1e-12)
}

func TestDecompose_Errors(t *testing.T) {
	t.Parallel()

	m3, _ := matrix.NewDense(3, 3)
	_, err := pauli.Decompose(m3, []int{0, 1})
	assert.ErrorIs(t, err, pauli.ErrDimensionMismatch)

	m24, _ := matrix.NewDense(2, 4)
	_, err = pauli.Decompose(m24, []int{0})
	assert.ErrorIs(t, err, matrix.ErrNonSquare)

	_, err = pauli.Decompose(nil, []int{0})
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)

	m2, _ := matrix.NewIdentity(2)
	_, err = pauli.Decompose(m2, []int{-1})
	assert.ErrorIs(t, err, pauli.ErrInvalidWire)
	_, err = pauli.Decompose(m2, nil)
	assert.ErrorIs(t, err, pauli.ErrDimensionMismatch)
}
