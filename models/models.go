// SPDX-License-Identifier: MIT

// Package models builds the generator sets of nearest-neighbour spin chains.
//
// Each constructor returns the generators of an open chain on wires 0..n-1 in a
// fixed order: the order is part of the contract because the Cartan extractor
// downstream is order dependent.
package models

import (
	"errors"
	"fmt"

	"github.com/erikrecio/qml/pauli"
)

// ErrTooFewWires is returned for chains with fewer than two wires.
var ErrTooFewWires = errors.New("models: chain needs at least 2 wires")

// pair returns the word a_i b_{i+1}.
func pair(a, b func(int) pauli.Word, i int) pauli.Sentence {
	w, _ := a(i).Tensor(b(i + 1)) // wires i and i+1 never overlap

	return pauli.FromWord(w)
}

// Heisenberg returns {X_i X_{i+1}} ∪ {Y_i Y_{i+1}} ∪ {Z_i Z_{i+1}} for i = 0..n-2,
// grouped by Pauli type. For n = 4 the generated Lie algebra has dimension 60.
func Heisenberg(n int) ([]pauli.Sentence, error) {
	if n < 2 {
		return nil, fmt.Errorf("Heisenberg(%d): %w", n, ErrTooFewWires)
	}
	gens := make([]pauli.Sentence, 0, 3*(n-1))
	for _, op := range []func(int) pauli.Word{pauli.XW, pauli.YW, pauli.ZW} {
		for i := 0; i < n-1; i++ {
			gens = append(gens, pair(op, op, i))
		}
	}

	return gens, nil
}

// TransverseIsing returns {Z_i Z_{i+1}} for i = 0..n-2 followed by {X_i} for i = 0..n-1.
func TransverseIsing(n int) ([]pauli.Sentence, error) {
	if n < 2 {
		return nil, fmt.Errorf("TransverseIsing(%d): %w", n, ErrTooFewWires)
	}
	gens := make([]pauli.Sentence, 0, 2*n-1)
	for i := 0; i < n-1; i++ {
		gens = append(gens, pair(pauli.ZW, pauli.ZW, i))
	}
	for i := 0; i < n; i++ {
		gens = append(gens, pauli.FromWord(pauli.XW(i)))
	}

	return gens, nil
}

// Hamiltonian returns the unweighted sum of gens.
func Hamiltonian(gens []pauli.Sentence) pauli.Sentence {
	var h pauli.Sentence
	for _, g := range gens {
		h = h.Add(g)
	}

	return h
}

// Wires returns 0..n-1, the wire order the chain constructors use.
func Wires(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}

	return out
}
