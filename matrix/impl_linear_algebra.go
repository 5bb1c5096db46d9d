// SPDX-License-Identifier: MIT
// Package matrix provides universal operations on any Matrix implementation:
// element-wise addition and subtraction, scaling, multiplication, conjugate
// transpose, traces and Kronecker products. All functions perform strict
// fail-fast validation and return clear errors on dimension mismatches.
//
// Notes:
//   - All kernels use the central validators and wrap failures via matrixErrorf.
//   - Operands are never mutated; each kernel allocates exactly one result.

package matrix

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opAdd         = "Add"
	opSub         = "Sub"
	opScale       = "Scale"
	opMul         = "Mul"
	opAdjoint     = "Adjoint"
	opTrace       = "Trace"
	opTraceProd   = "TraceProd"
	opKron        = "Kron"
	opFrobenius   = "FrobeniusNorm"
	opAllClose    = "AllClose"
	opIsUnitary   = "IsUnitary"
	opIsHermitian = "IsHermitian"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// addSub computes elementwise out = a + sign*b for sign ∈ {+1, -1}.
//
// Implementation:
//   - Stage 1: ValidateBinarySameShape(a, b). Resolve both operands to *Dense.
//   - Stage 2: single flat loop 0..n-1 into a fresh result.
//
// Complexity:
//   - Time O(r*c), Space O(r*c) for the new result.
func addSub(a, b Matrix, sign complex128, opTag string) (*Dense, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	da, err := asDense(a)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	db, err := asDense(b)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	res, err := NewDense(da.r, da.c)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	for idx := range res.data { // deterministic 0..n-1
		res.data[idx] = da.data[idx] + sign*db.data[idx]
	}

	return res, nil
}

// Add returns a + b.
// Errors: ErrNilMatrix, ErrDimensionMismatch (wrapped with "Add").
// Complexity: O(r*c).
func Add(a, b Matrix) (*Dense, error) { return addSub(a, b, 1, opAdd) }

// Sub returns a − b.
// Errors: ErrNilMatrix, ErrDimensionMismatch (wrapped with "Sub").
// Complexity: O(r*c).
func Sub(a, b Matrix) (*Dense, error) { return addSub(a, b, -1, opSub) }

// Scale returns alpha·m.
// Complexity: O(r*c).
func Scale(m Matrix, alpha complex128) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	dm, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	res := dm.clone()
	res.validateNaNInf = DefaultValidateNaNInf
	for idx := range res.data {
		res.data[idx] *= alpha
	}

	return res, nil
}

// Mul returns the matrix product a·b.
//
// Implementation:
//   - Stage 1: ValidateMulCompatible(a, b).
//   - Stage 2: i-k-j loop order so the inner loop streams rows of b and of the
//     result; zero a[i,k] entries are skipped (Pauli matrices are sparse).
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (wrapped with "Mul").
//
// Complexity:
//   - Time O(r·k·c), Space O(r·c).
func Mul(a, b Matrix) (*Dense, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	da, err := asDense(a)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	db, err := asDense(b)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	res, err := NewDense(da.r, db.c)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	var (
		i, k, j      int
		aik          complex128
		rowA, rowRes int
	)
	for i = 0; i < da.r; i++ {
		rowA = i * da.c
		rowRes = i * res.c
		for k = 0; k < da.c; k++ {
			aik = da.data[rowA+k]
			if aik == 0 {
				continue
			}
			rowB := k * db.c
			for j = 0; j < db.c; j++ {
				res.data[rowRes+j] += aik * db.data[rowB+j]
			}
		}
	}

	return res, nil
}

// MulChain multiplies its operands left to right: ms[0]·ms[1]·…·ms[n-1].
// Errors: ErrInvalidDimensions for an empty chain, otherwise those of Mul.
func MulChain(ms ...Matrix) (*Dense, error) {
	if len(ms) == 0 {
		return nil, matrixErrorf(opMul, ErrInvalidDimensions)
	}
	if err := ValidateNotNil(ms[0]); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	acc, err := asDense(ms[0])
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	acc = acc.clone()
	for _, m := range ms[1:] {
		if acc, err = Mul(acc, m); err != nil {
			return nil, err
		}
	}

	return acc, nil
}

// Adjoint returns the conjugate transpose m†.
// Complexity: O(r*c).
func Adjoint(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opAdjoint, err)
	}
	dm, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opAdjoint, err)
	}
	res, err := NewDense(dm.c, dm.r)
	if err != nil {
		return nil, matrixErrorf(opAdjoint, err)
	}

	var i, j int
	for i = 0; i < dm.r; i++ {
		for j = 0; j < dm.c; j++ {
			res.data[j*res.c+i] = cmplx.Conj(dm.data[i*dm.c+j])
		}
	}

	return res, nil
}

// Trace returns Σᵢ m[i,i] of a square matrix.
// Errors: ErrNilMatrix, ErrNonSquare (wrapped with "Trace").
// Complexity: O(n).
func Trace(m Matrix) (complex128, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return 0, matrixErrorf(opTrace, err)
	}
	dm, err := asDense(m)
	if err != nil {
		return 0, matrixErrorf(opTrace, err)
	}

	var sum complex128
	for i := 0; i < dm.r; i++ {
		sum += dm.data[i*dm.c+i]
	}

	return sum, nil
}

// TraceProd returns tr(a·b) = Σ_{i,j} a[i,j]·b[j,i] without forming the product.
// Requires a to be r×c and b to be c×r.
// Complexity: O(r*c) instead of the O(r²c) of Mul followed by Trace.
func TraceProd(a, b Matrix) (complex128, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return 0, matrixErrorf(opTraceProd, err)
	}
	if a.Rows() != b.Cols() {
		return 0, matrixErrorf(opTraceProd, ErrDimensionMismatch)
	}
	da, err := asDense(a)
	if err != nil {
		return 0, matrixErrorf(opTraceProd, err)
	}
	db, err := asDense(b)
	if err != nil {
		return 0, matrixErrorf(opTraceProd, err)
	}

	var (
		sum  complex128
		i, j int
	)
	for i = 0; i < da.r; i++ {
		for j = 0; j < da.c; j++ {
			sum += da.data[i*da.c+j] * db.data[j*db.c+i]
		}
	}

	return sum, nil
}

// Kron returns the Kronecker product a⊗b, an (ra·rb)×(ca·cb) matrix whose
// block (i,j) is a[i,j]·b.
// Complexity: O(ra·ca·rb·cb).
func Kron(a, b Matrix) (*Dense, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opKron, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf(opKron, err)
	}
	da, err := asDense(a)
	if err != nil {
		return nil, matrixErrorf(opKron, err)
	}
	db, err := asDense(b)
	if err != nil {
		return nil, matrixErrorf(opKron, err)
	}
	res, err := NewDense(da.r*db.r, da.c*db.c)
	if err != nil {
		return nil, matrixErrorf(opKron, err)
	}

	var (
		i, j, p, q int
		aij        complex128
	)
	for i = 0; i < da.r; i++ {
		for j = 0; j < da.c; j++ {
			aij = da.data[i*da.c+j]
			if aij == 0 {
				continue
			}
			for p = 0; p < db.r; p++ {
				for q = 0; q < db.c; q++ {
					res.data[(i*db.r+p)*res.c+j*db.c+q] = aij * db.data[p*db.c+q]
				}
			}
		}
	}

	return res, nil
}

// FrobeniusNorm returns sqrt(Σ |m[i,j]|²).
// Complexity: O(r*c).
func FrobeniusNorm(m Matrix) (float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, matrixErrorf(opFrobenius, err)
	}
	dm, err := asDense(m)
	if err != nil {
		return 0, matrixErrorf(opFrobenius, err)
	}

	var sum float64
	for _, v := range dm.data {
		sum += real(v)*real(v) + imag(v)*imag(v)
	}

	return math.Sqrt(sum), nil
}

// norm1 is the maximum absolute column sum, the norm the Padé scaling uses.
func norm1(m *Dense) float64 {
	var (
		best, col float64
		i, j      int
	)
	for j = 0; j < m.c; j++ {
		col = 0
		for i = 0; i < m.r; i++ {
			col += cmplx.Abs(m.data[i*m.c+j])
		}
		if col > best {
			best = col
		}
	}

	return best
}

// AllClose reports whether |a[i,j] − b[i,j]| ≤ atol + rtol·|b[i,j]| everywhere,
// the same rule numpy.allclose uses.
// Errors: ErrNilMatrix, ErrDimensionMismatch (wrapped with "AllClose").
// Complexity: O(r*c).
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	da, err := asDense(a)
	if err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	db, err := asDense(b)
	if err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	for idx := range da.data {
		if cmplx.Abs(da.data[idx]-db.data[idx]) > atol+rtol*cmplx.Abs(db.data[idx]) {
			return false, nil
		}
	}

	return true, nil
}

// IsUnitary reports whether m·m† equals the identity within eps (WithEpsilon,
// DefaultEpsilon otherwise) in every entry.
// Errors: ErrNilMatrix, ErrNonSquare (wrapped with "IsUnitary").
// Complexity: O(n³).
func IsUnitary(m Matrix, opts ...Option) (bool, error) {
	o := gatherOptions(opts...)
	if err := ValidateSquareNonNil(m); err != nil {
		return false, matrixErrorf(opIsUnitary, err)
	}
	adj, err := Adjoint(m)
	if err != nil {
		return false, matrixErrorf(opIsUnitary, err)
	}
	prod, err := Mul(m, adj)
	if err != nil {
		return false, matrixErrorf(opIsUnitary, err)
	}

	var (
		i, j int
		want complex128
	)
	for i = 0; i < prod.r; i++ {
		for j = 0; j < prod.c; j++ {
			want = 0
			if i == j {
				want = 1
			}
			if cmplx.Abs(prod.data[i*prod.c+j]-want) > o.eps {
				return false, nil
			}
		}
	}

	return true, nil
}

// IsHermitian reports whether m[i,j] = conj(m[j,i]) within eps.
// Errors: ErrNilMatrix, ErrNonSquare (wrapped with "IsHermitian").
// Complexity: O(n²) over the upper triangle and diagonal.
func IsHermitian(m Matrix, opts ...Option) (bool, error) {
	o := gatherOptions(opts...)
	if err := ValidateSquareNonNil(m); err != nil {
		return false, matrixErrorf(opIsHermitian, err)
	}
	dm, err := asDense(m)
	if err != nil {
		return false, matrixErrorf(opIsHermitian, err)
	}

	var i, j int
	for i = 0; i < dm.r; i++ {
		for j = i; j < dm.c; j++ {
			if cmplx.Abs(dm.data[i*dm.c+j]-cmplx.Conj(dm.data[j*dm.c+i])) > o.eps {
				return false, nil
			}
		}
	}

	return true, nil
}
