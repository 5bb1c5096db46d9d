package models_test

import (
	"testing"

	"github.com/erikrecio/qml/models"
	"github.com/erikrecio/qml/pauli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func words(ss []pauli.Sentence) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = s.String()
	}

	return out
}

func TestHeisenberg(t *testing.T) {
	t.Parallel()

	gens, err := models.Heisenberg(3)
	require.NoError(t, err)
	assert.Equal(t, []string{"X0 X1", "X1 X2", "Y0 Y1", "Y1 Y2", "Z0 Z1", "Z1 Z2"}, words(gens))
}

func TestTransverseIsing(t *testing.T) {
	t.Parallel()

	gens, err := models.TransverseIsing(3)
	require.NoError(t, err)
	assert.Equal(t, []string{"Z0 Z1", "Z1 Z2", "X0", "X1", "X2"}, words(gens))
}

func TestTooFewWires(t *testing.T) {
	t.Parallel()

	_, err := models.Heisenberg(1)
	assert.ErrorIs(t, err, models.ErrTooFewWires)
	_, err = models.TransverseIsing(0)
	assert.ErrorIs(t, err, models.ErrTooFewWires)
}

func TestHamiltonian(t *testing.T) {
	t.Parallel()

	gens, err := models.Heisenberg(2)
	require.NoError(t, err)
	h := models.Hamiltonian(gens)
	assert.Equal(t, "X0 X1 + Y0 Y1 + Z0 Z1", h.String())
	assert.Equal(t, []int{0, 1}, models.Wires(2))
	assert.Equal(t, 0, models.Hamiltonian(nil).Len())
}
