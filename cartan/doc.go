// SPDX-License-Identifier: MIT

// Package cartan splits a Lie algebra of Pauli sentences into a Cartan
// decomposition g = k ⊕ m and extracts a Cartan subalgebra h ⊆ m.
//
// What:
//
//   - Decompose routes every element through an Involution: true means the
//     vertical subspace k, false the horizontal subspace m. Relative order is
//     preserved within each side.
//   - Subalgebra grows a maximal mutually commuting subset h of m from a seed
//     element in a single left-to-right greedy pass, and returns the remainder
//     m̃ = m \ h alongside it.
//   - CheckRelations verifies [k,k] ⊆ k, [k,m] ⊆ m and [m,m] ⊆ k, which is how a
//     caller detects an involution that does not induce a Cartan decomposition.
//   - GenericElement builds v = Σ_j (π^j mod 2)·h_j, whose one-parameter group
//     is dense in the torus generated by h.
//
// Order dependence:
//
// Subalgebra is greedy. An element is admitted when it commutes with every
// element admitted before it, so the result depends on the order of m and on
// the seed. It is maximal for that traversal, not maximum over all choices.
//
// Membership and removal use pauli.Sentence.Key, so "already present" is an
// O(1) lookup on the canonical key rather than a structural comparison.
package cartan
