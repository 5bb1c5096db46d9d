// SPDX-License-Identifier: MIT

// Package matrix - matrix exponential.

package matrix

import "math"

const opExpm = "Expm"

// padeDegree is the degree p of the diagonal [p/p] Padé approximant.
const padeDegree = 6

// expmScaleTarget is the 1-norm the scaled matrix is brought under before the
// approximant is evaluated. At 0.5 the [6/6] truncation error is far below
// double-precision round-off.
const expmScaleTarget = 0.5

// Expm returns the matrix exponential e^m of a square matrix.
//
// Implementation:
//   - Stage 1: Validate m is square and non-nil.
//   - Stage 2: Choose s ≥ 0 with ‖m‖₁/2^s ≤ 0.5 and scale A = m/2^s.
//   - Stage 3: Evaluate N = Σ c_k A^k and D = Σ (−1)^k c_k A^k with the [6/6]
//     Padé coefficients c_k, then solve D·X = N.
//   - Stage 4: Square X s times.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrSingular (wrapped with "Expm").
//
// Complexity:
//   - Time O((p + s)·n³), Space O(p·n²).
//
// Notes:
//   - Callers exponentiating a single Pauli word should prefer the closed form
//     cos(θ)I − i·sin(θ)P; Expm is the general fallback.
func Expm(m Matrix) (*Dense, error) {
	// Stage 1: Validate
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, matrixErrorf(opExpm, err)
	}
	dm, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opExpm, err)
	}
	n := dm.r

	// Stage 2: Scale
	s := 0
	if nrm := norm1(dm); nrm > expmScaleTarget {
		s = int(math.Ceil(math.Log2(nrm / expmScaleTarget)))
	}
	a, err := Scale(dm, complex(math.Ldexp(1, -s), 0))
	if err != nil {
		return nil, matrixErrorf(opExpm, err)
	}

	// Stage 3: Padé numerator and denominator
	num, err := NewIdentity(n)
	if err != nil {
		return nil, matrixErrorf(opExpm, err)
	}
	den := num.clone()
	power := num.clone()
	c := 1.0
	for k := 1; k <= padeDegree; k++ {
		c *= float64(padeDegree-k+1) / float64(k*(2*padeDegree-k+1))
		if power, err = Mul(power, a); err != nil {
			return nil, matrixErrorf(opExpm, err)
		}
		sign := 1.0
		if k%2 == 1 {
			sign = -1.0
		}
		for idx, v := range power.data {
			num.data[idx] += complex(c, 0) * v
			den.data[idx] += complex(sign*c, 0) * v
		}
	}
	x, err := Solve(den, num)
	if err != nil {
		return nil, matrixErrorf(opExpm, err)
	}

	// Stage 4: Undo scaling by repeated squaring
	for ; s > 0; s-- {
		if x, err = Mul(x, x); err != nil {
			return nil, matrixErrorf(opExpm, err)
		}
	}

	return x, nil
}
