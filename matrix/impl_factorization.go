// SPDX-License-Identifier: MIT

// Package matrix - LU factorization, linear solves and inversion.
//
// Purpose:
//   - Doolittle LU with partial (row) pivoting: P·A = L·U.
//   - Solve A·X = B column by column via forward/backward substitution.
//   - Inverse as Solve(A, I).
//
// Determinism:
//   - Pivot choice is the first row with the largest modulus in the column,
//     so ties always resolve the same way.

package matrix

import (
	"fmt"
	"math/cmplx"
)

const (
	opLU      = "LU"
	opSolve   = "Solve"
	opInverse = "Inverse"
)

// LU performs Doolittle LU decomposition with partial pivoting on a square matrix m.
//
// Implementation:
//   - Stage 1: Validate m is square and non-nil.
//   - Stage 2: Copy m into a working buffer.
//   - Stage 3: For each column k pick the pivot row with max |a[i,k]|, swap,
//     eliminate below the pivot, storing multipliers in place.
//   - Stage 4: Split the packed buffer into L (unit lower) and U (upper).
//
// Returns:
//   - l, u: factors with P·m = l·u.
//   - perm: perm[i] is the row of m that ended up in row i.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrSingular (zero pivot after pivoting),
//     all wrapped with "LU".
//
// Complexity:
//   - Time O(n³), Space O(n²).
func LU(m Matrix) (l, u *Dense, perm []int, err error) {
	// Stage 1: Validate input is square
	if err = ValidateSquareNonNil(m); err != nil {
		return nil, nil, nil, matrixErrorf(opLU, err)
	}

	// Stage 2: Prepare working copy and identity permutation
	dm, err := asDense(m)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opLU, err)
	}
	n := dm.r
	a := make([]complex128, len(dm.data))
	copy(a, dm.data)
	perm = make([]int, n)
	for i := range perm {
		perm[i] = i
	}

	// Stage 3: Execute elimination
	var (
		i, j, k  int
		p        int        // pivot row
		best, av float64    // pivot magnitudes
		factor   complex128 // elimination multiplier
	)
	for k = 0; k < n; k++ {
		p, best = k, cmplx.Abs(a[k*n+k])
		for i = k + 1; i < n; i++ {
			if av = cmplx.Abs(a[i*n+k]); av > best {
				p, best = i, av
			}
		}
		if best == 0 {
			return nil, nil, nil, matrixErrorf(opLU, fmt.Errorf("zero pivot in column %d: %w", k, ErrSingular))
		}
		if p != k {
			for j = 0; j < n; j++ {
				a[k*n+j], a[p*n+j] = a[p*n+j], a[k*n+j]
			}
			perm[k], perm[p] = perm[p], perm[k]
		}
		for i = k + 1; i < n; i++ {
			factor = a[i*n+k] / a[k*n+k]
			a[i*n+k] = factor
			if factor == 0 {
				continue
			}
			for j = k + 1; j < n; j++ {
				a[i*n+j] -= factor * a[k*n+j]
			}
		}
	}

	// Stage 4: Split packed factors
	if l, err = NewIdentity(n); err != nil {
		return nil, nil, nil, matrixErrorf(opLU, err)
	}
	if u, err = NewDense(n, n); err != nil {
		return nil, nil, nil, matrixErrorf(opLU, err)
	}
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if j < i {
				l.data[i*n+j] = a[i*n+j]
			} else {
				u.data[i*n+j] = a[i*n+j]
			}
		}
	}

	return l, u, perm, nil
}

// Solve returns X with a·X = b for square a.
//
// Implementation:
//   - Stage 1: Validate shapes (a square, a.Rows == b.Rows).
//   - Stage 2: LU(a).
//   - Stage 3: For each column of b: permute, forward-substitute L·y = P·b,
//     back-substitute U·x = y.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrDimensionMismatch, ErrSingular (wrapped with "Solve").
//
// Complexity:
//   - Time O(n³ + n²·m) for an n×m right-hand side.
func Solve(a, b Matrix) (*Dense, error) {
	// Stage 1: Validate
	if err := ValidateSquareNonNil(a); err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	if a.Rows() != b.Rows() {
		return nil, matrixErrorf(opSolve, ErrDimensionMismatch)
	}

	// Stage 2: Factorize
	l, u, perm, err := LU(a)
	if err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	db, err := asDense(b)
	if err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	n, cols := l.r, db.c
	x, err := NewDense(n, cols)
	if err != nil {
		return nil, matrixErrorf(opSolve, err)
	}

	// Stage 3: Substitute column by column
	var (
		col, i, k int
		sum       complex128
	)
	y := make([]complex128, n)
	for col = 0; col < cols; col++ {
		// Forward substitution: L·y = P·b[:,col]
		for i = 0; i < n; i++ {
			sum = db.data[perm[i]*cols+col]
			for k = 0; k < i; k++ {
				sum -= l.data[i*n+k] * y[k]
			}
			y[i] = sum
		}
		// Backward substitution: U·x = y
		for i = n - 1; i >= 0; i-- {
			sum = y[i]
			for k = i + 1; k < n; k++ {
				sum -= u.data[i*n+k] * x.data[k*cols+col]
			}
			x.data[i*cols+col] = sum / u.data[i*n+i]
		}
	}

	return x, nil
}

// Inverse returns m⁻¹ for square, non-singular m.
// Errors: those of Solve, re-tagged with "Inverse".
// Complexity: O(n³).
func Inverse(m Matrix) (*Dense, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	id, err := NewIdentity(m.Rows())
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	inv, err := Solve(m, id)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}

	return inv, nil
}
