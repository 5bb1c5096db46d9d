// SPDX-License-Identifier: MIT

package pauli

import (
	"fmt"

	"github.com/erikrecio/qml/matrix"
)

// Decompose expands a 2ⁿ×2ⁿ operator into Pauli words over wireOrder:
// c_P = tr(P·M)/2ⁿ for every one of the 4ⁿ words, dropping coefficients with
// modulus ≤ DefaultTolerance. It inverts Sentence.Matrix for the same wire order.
//
// Implementation:
//   - Stage 1: validate the wire order and that m is square with side 2ⁿ.
//   - Stage 2: enumerate words as base-4 digit strings over the positions;
//     tr(P·M) = Σ_col P[row,col]·M[col,row] using the single non-zero entry
//     of each column of P.
//
// Errors: ErrInvalidWire, ErrDuplicateWire, ErrDimensionMismatch, matrix.ErrNilMatrix.
// Complexity: O(4ⁿ·2ⁿ·n).
func Decompose(m matrix.Matrix, wireOrder []int) (Sentence, error) {
	// Stage 1: Validate
	if err := matrix.ValidateSquareNonNil(m); err != nil {
		return Sentence{}, fmt.Errorf("Decompose: %w", err)
	}
	pos, err := positions(wireOrder)
	if err != nil {
		return Sentence{}, err
	}
	n := len(wireOrder)
	if n == 0 || m.Rows() != 1<<uint(n) {
		return Sentence{}, fmt.Errorf("Decompose: %dx%d over %d wires: %w", m.Rows(), m.Cols(), n, ErrDimensionMismatch)
	}

	// Stage 2: Project onto every word
	var (
		dim     = m.Rows()
		words   = 1 << uint(2*n)
		terms   = make([]Term, 0)
		factors = make([]Factor, n)
		idx, q  int
		col     int
	)
	for idx = 0; idx < words; idx++ {
		code := idx
		for q = n - 1; q >= 0; q-- {
			factors[q] = Factor{Wire: wireOrder[q], Op: Pauli(code & 3)}
			code >>= 2
		}
		w, err := NewWord(factors...)
		if err != nil {
			return Sentence{}, err
		}

		var sum complex128
		for col = 0; col < dim; col++ {
			row, phase := w.column(pos, n, col)
			v, err := m.At(col, row)
			if err != nil {
				return Sentence{}, err
			}
			sum += phase * v
		}
		terms = append(terms, Term{Word: w, Coeff: sum / complex(float64(dim), 0)})
	}

	return NewSentence(terms...).Simplify(DefaultTolerance), nil
}
