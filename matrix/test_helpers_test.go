// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   - Provide small, deterministic test fixtures and utilities for kernels.
//   - Keep all data finite and well-formed to avoid numeric-policy interference.

package matrix_test

import (
	"math/rand"
	"testing"

	"github.com/erikrecio/qml/matrix"
	"github.com/stretchr/testify/require"
)

// hide wraps any Matrix to hide its concrete type from type assertions,
// forcing kernels down their interface fallback path.
type hide struct{ matrix.Matrix }

// MustDense allocates an r×c *Dense or fails the test.
func MustDense(t testing.TB, r, c int) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(r, c)
	require.NoError(t, err, "NewDense(%d,%d)", r, c)

	return m
}

// MustFrom builds a *Dense from a literal or fails the test.
func MustFrom(t testing.TB, rows [][]complex128) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(rows)
	require.NoError(t, err)

	return m
}

// MustAt reads m[i,j] or fails the test.
func MustAt(t testing.TB, m matrix.Matrix, i, j int) complex128 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err, "At(%d,%d)", i, j)

	return v
}

// RandomFill fills m with deterministic pseudo-random complex entries in [-1,1)².
func RandomFill(t testing.TB, m *matrix.Dense, seed int64) {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	var i, j int
	for i = 0; i < m.Rows(); i++ {
		for j = 0; j < m.Cols(); j++ {
			require.NoError(t, m.Set(i, j, complex(2*rng.Float64()-1, 2*rng.Float64()-1)))
		}
	}
}

// RandomHermitian returns a deterministic pseudo-random n×n Hermitian matrix.
func RandomHermitian(t testing.TB, n int, seed int64) *matrix.Dense {
	t.Helper()
	a := MustDense(t, n, n)
	RandomFill(t, a, seed)
	adj, err := matrix.Adjoint(a)
	require.NoError(t, err)
	h, err := matrix.Add(a, adj)
	require.NoError(t, err)

	return h
}

// RequireClose fails the test unless a and b agree entrywise within atol.
func RequireClose(t testing.TB, want, got matrix.Matrix, atol float64) {
	t.Helper()
	ok, err := matrix.AllClose(got, want, 0, atol)
	require.NoError(t, err)
	require.Truef(t, ok, "matrices differ beyond %g\nwant:\n%v\ngot:\n%v", atol, want, got)
}

// Pauli matrices used across tests.
var (
	pauliX = [][]complex128{{0, 1}, {1, 0}}
	pauliY = [][]complex128{{0, -1i}, {1i, 0}}
	pauliZ = [][]complex128{{1, 0}, {0, -1}}
)
