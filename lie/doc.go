// SPDX-License-Identifier: MIT

// Package lie provides the Lie-algebra helpers the Cartan tooling is built on.
//
// VSpace keeps an orthonormal basis of Pauli sentences (modified Gram–Schmidt
// over coefficient vectors) and answers the two questions a decomposition
// needs: is an element linearly independent of the span, and does it lie in it.
//
// Closure computes the dynamical Lie algebra of a set of generators. It grows
// the algebra level by level like a breadth-first walk: every element found at
// level d is commuted against the whole set, and the independent results form
// level d+1. The walk stops when a level adds nothing.
//
// Closure elements are normalised: commutators are multiplied by i (so
// Hermitian generators stay Hermitian), scaled to unit 2-norm, and rotated so
// that the coefficient of the leading word is positive real. Closures of pure
// Pauli words therefore consist of pure Pauli words with coefficient 1.
package lie
