// SPDX-License-Identifier: MIT

// Package matrix provides complex dense matrices for operator algebra.
//
// The matrix package provides:
//
//   - Dense, a row-major complex128 implementation of the Matrix interface
//     with safe accessors (At/Set return errors, never panic).
//   - Linear-algebra kernels: Add, Sub, Scale, Mul, Adjoint, Trace, TraceProd,
//     Kron, FrobeniusNorm.
//   - Structural checks: AllClose, IsUnitary, IsHermitian.
//   - Factorizations: LU with partial pivoting, Solve, Inverse.
//   - Expm, the matrix exponential by scaling and squaring of a [6/6] Padé
//     approximant.
//
// Every kernel allocates a fresh result and leaves its operands untouched.
// Kernels have a fast path for *Dense operands and fall back to At/Set for any
// other Matrix implementation.
//
// Matrices here are small (2ⁿ×2ⁿ for a handful of qubits); all kernels are
// dense O(n³) or better and deterministic in their loop order.
package matrix
