// SPDX-License-Identifier: MIT

package pauli

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"
	"strconv"
	"strings"

	"github.com/erikrecio/qml/matrix"
)

// DefaultTolerance is the coefficient modulus at or below which Simplify drops
// a term and Key rounds a coefficient component to zero.
const DefaultTolerance = 1e-10

// Term is one weighted word of a Sentence.
type Term struct {
	Word  Word
	Coeff complex128
}

// Sentence is a linear combination of Pauli words keyed by Word.Key.
// The zero value is the zero operator. Sentences are immutable values.
type Sentence struct {
	terms map[string]Term
}

// NewSentence sums terms; repeated words accumulate their coefficients.
// Exactly-zero results are dropped.
func NewSentence(terms ...Term) Sentence {
	s := Sentence{terms: make(map[string]Term, len(terms))}
	for _, t := range terms {
		s.accumulate(t.Word, t.Coeff)
	}

	return s
}

// FromWord returns the sentence 1·w.
func FromWord(w Word) Sentence {
	return NewSentence(Term{Word: w, Coeff: 1})
}

// accumulate adds c·w in place. Only used while building a fresh sentence.
func (s *Sentence) accumulate(w Word, c complex128) {
	if c == 0 {
		return
	}
	if s.terms == nil {
		s.terms = make(map[string]Term)
	}
	k := w.Key()
	t, ok := s.terms[k]
	if !ok {
		s.terms[k] = Term{Word: w, Coeff: c}
		return
	}
	t.Coeff += c
	if t.Coeff == 0 {
		delete(s.terms, k)
		return
	}
	s.terms[k] = t
}

// Len is the number of stored terms.
func (s Sentence) Len() int { return len(s.terms) }

// Terms returns the terms sorted by word key.
func (s Sentence) Terms() []Term {
	keys := make([]string, 0, len(s.terms))
	for k := range s.terms {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]Term, len(keys))
	for i, k := range keys {
		out[i] = s.terms[k]
	}

	return out
}

// Coeff returns the coefficient of w (0 when absent).
func (s Sentence) Coeff(w Word) complex128 {
	return s.terms[w.Key()].Coeff
}

// Leading returns the first term in key order; ok is false for the zero sentence.
func (s Sentence) Leading() (t Term, ok bool) {
	ts := s.Terms()
	if len(ts) == 0 {
		return Term{}, false
	}

	return ts[0], true
}

// Wires returns the union of the wires of all terms, ascending.
func (s Sentence) Wires() []int {
	seen := make(map[int]struct{})
	for _, t := range s.terms {
		for _, f := range t.Word.factors {
			seen[f.Wire] = struct{}{}
		}
	}
	out := make([]int, 0, len(seen))
	for w := range seen {
		out = append(out, w)
	}
	sort.Ints(out)

	return out
}

// Add returns s + o.
func (s Sentence) Add(o Sentence) Sentence {
	out := Sentence{terms: make(map[string]Term, len(s.terms)+len(o.terms))}
	for _, t := range s.terms {
		out.accumulate(t.Word, t.Coeff)
	}
	for _, t := range o.terms {
		out.accumulate(t.Word, t.Coeff)
	}

	return out
}

// Sub returns s − o.
func (s Sentence) Sub(o Sentence) Sentence {
	return s.Add(o.Scale(-1))
}

// Scale returns c·s.
func (s Sentence) Scale(c complex128) Sentence {
	out := Sentence{terms: make(map[string]Term, len(s.terms))}
	for _, t := range s.terms {
		out.accumulate(t.Word, c*t.Coeff)
	}

	return out
}

// Mul returns the operator product s·o.
// Complexity: O(|s|·|o|·n).
func (s Sentence) Mul(o Sentence) Sentence {
	out := Sentence{terms: make(map[string]Term)}
	for _, a := range s.Terms() {
		for _, b := range o.Terms() {
			ph, w := a.Word.Mul(b.Word)
			out.accumulate(w, ph*a.Coeff*b.Coeff)
		}
	}

	return out
}

// Commutator returns [s, o] = s·o − o·s.
// Commuting word pairs are skipped, anticommuting pairs contribute 2·a·b·(phase·word),
// so the commutator of commuting elements is the exact zero sentence.
// Complexity: O(|s|·|o|·n).
func (s Sentence) Commutator(o Sentence) Sentence {
	out := Sentence{terms: make(map[string]Term)}
	for _, a := range s.Terms() {
		for _, b := range o.Terms() {
			if a.Word.Commutes(b.Word) {
				continue
			}
			ph, w := a.Word.Mul(b.Word)
			out.accumulate(w, 2*ph*a.Coeff*b.Coeff)
		}
	}

	return out
}

// Simplify returns s without the terms whose coefficient modulus is ≤ tol.
func (s Sentence) Simplify(tol float64) Sentence {
	out := Sentence{terms: make(map[string]Term, len(s.terms))}
	for k, t := range s.terms {
		if cmplx.Abs(t.Coeff) > tol {
			out.terms[k] = t
		}
	}

	return out
}

// IsZero reports whether s simplifies to the empty sentence under tol.
func (s Sentence) IsZero(tol float64) bool {
	for _, t := range s.terms {
		if cmplx.Abs(t.Coeff) > tol {
			return false
		}
	}

	return true
}

// Norm is the 2-norm of the coefficient vector.
func (s Sentence) Norm() float64 {
	var sum float64
	for _, t := range s.terms {
		sum += real(t.Coeff)*real(t.Coeff) + imag(t.Coeff)*imag(t.Coeff)
	}

	return math.Sqrt(sum)
}

// Inner is the coefficient inner product ⟨s, o⟩ = Σ conj(s_P)·o_P, which is
// tr(s†·o)/2ⁿ for the matrices over any common wire order.
func (s Sentence) Inner(o Sentence) complex128 {
	var sum complex128
	for k, t := range s.terms {
		if u, ok := o.terms[k]; ok {
			sum += cmplx.Conj(t.Coeff) * u.Coeff
		}
	}

	return sum
}

// roundComponent zeroes components within DefaultTolerance of zero and
// normalises −0, so equal sentences format identically.
func roundComponent(x float64) float64 {
	if math.Abs(x) <= DefaultTolerance {
		return 0
	}

	return x
}

// formatCoeff renders c with fixed precision for canonical keys.
func formatCoeff(c complex128) string {
	re, im := roundComponent(real(c)), roundComponent(imag(c))

	return strconv.FormatFloat(re, 'g', 10, 64) + "," + strconv.FormatFloat(im, 'g', 10, 64)
}

// Key is the canonical hashable key of s: after Simplify(DefaultTolerance), the
// word keys in sorted order, each with its rounded coefficient. Structurally
// equal sentences share a key, which makes set membership O(1).
func (s Sentence) Key() string {
	ts := s.Simplify(DefaultTolerance).Terms()
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.Word.Key() + ":" + formatCoeff(t.Coeff)
	}

	return strings.Join(parts, ";")
}

// Equal reports whether s − o simplifies to zero under tol.
func (s Sentence) Equal(o Sentence, tol float64) bool {
	return s.Sub(o).IsZero(tol)
}

// String renders s as "0.5*Z0 Z1 + X0"; unit coefficients are omitted.
func (s Sentence) String() string {
	ts := s.Terms()
	if len(ts) == 0 {
		return "0"
	}
	parts := make([]string, len(ts))
	for i, t := range ts {
		switch {
		case t.Coeff == 1:
			parts[i] = t.Word.Key()
		case imag(t.Coeff) == 0:
			parts[i] = strconv.FormatFloat(real(t.Coeff), 'g', -1, 64) + "*" + t.Word.Key()
		default:
			parts[i] = fmt.Sprintf("%v*%s", t.Coeff, t.Word.Key())
		}
	}

	return strings.Join(parts, " + ")
}

// Matrix materialises s as a dense 2ⁿ×2ⁿ matrix over wireOrder (n = len(wireOrder)).
//
// Implementation:
//   - Stage 1: validate wireOrder and that every term's wires appear in it.
//   - Stage 2: for each term and each basis column, add the single non-zero
//     entry of the word's matrix.
//
// Errors: ErrInvalidWire, ErrDuplicateWire, ErrUnknownWire, matrix allocation errors.
// Complexity: O(4ⁿ) allocation + O(|s|·2ⁿ·n) fill.
func (s Sentence) Matrix(wireOrder []int) (*matrix.Dense, error) {
	// Stage 1: Validate
	pos, err := positions(wireOrder)
	if err != nil {
		return nil, err
	}
	ts := s.Terms()
	for _, t := range ts {
		if err = t.Word.checkWires(pos); err != nil {
			return nil, err
		}
	}

	// Stage 2: Fill
	n := len(wireOrder)
	dim := 1 << uint(n)
	out, err := matrix.NewDense(dim, dim)
	if err != nil {
		return nil, err
	}
	var (
		col, row int
		phase, v complex128
	)
	for _, t := range ts {
		for col = 0; col < dim; col++ {
			row, phase = t.Word.column(pos, n, col)
			if v, err = out.At(row, col); err != nil {
				return nil, err
			}
			if err = out.Set(row, col, v+t.Coeff*phase); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}
