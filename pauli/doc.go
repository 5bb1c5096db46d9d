// SPDX-License-Identifier: MIT

// Package pauli implements the operator elements of Pauli-word Lie algebras.
//
// A Word is a tensor product of single-qubit Pauli operators (I, X, Y, Z)
// labelled by wire, stored sorted by wire without identity factors so that two
// structurally equal words always share the same canonical key ("X0 Y1").
// A Sentence is a sparse linear combination of words with complex coefficients.
//
// Sentences support the operations an algebra partitioner needs:
//
//   - Commutator, bilinear and antisymmetric; commuting word pairs contribute
//     exactly zero, so commutators of commuting elements simplify to empty.
//   - Simplify, which drops terms whose coefficient modulus is at or below a
//     tolerance.
//   - Key, a canonical hashable key (sorted word keys plus rounded
//     coefficients) used for O(1) set membership.
//   - Matrix, dense 2ⁿ×2ⁿ materialisation over a fixed wire order, the first
//     wire being the most significant qubit.
//
// Decompose is the inverse of Matrix: it expands a dense operator back into
// Pauli words via c_P = tr(P·M)/2ⁿ.
//
// Sentences are values: every operation returns a new Sentence and never
// mutates its receiver or arguments.
package pauli
