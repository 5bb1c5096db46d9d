// SPDX-License-Identifier: MIT

package lie

import (
	"math/cmplx"

	"github.com/erikrecio/qml/pauli"
)

// DefaultTolerance is the relative residual norm below which an element is
// treated as lying in a span.
const DefaultTolerance = 1e-8

// VSpace is a complex vector space spanned by Pauli sentences.
// It keeps the added elements in insertion order alongside an orthonormal basis
// used for projections. Not safe for concurrent mutation.
type VSpace struct {
	tol   float64
	elems []pauli.Sentence
	ortho []pauli.Sentence
}

// NewVSpace returns the span of elems, keeping only the elements that are
// independent of those before them. tol ≤ 0 selects DefaultTolerance.
func NewVSpace(tol float64, elems ...pauli.Sentence) *VSpace {
	if tol <= 0 {
		tol = DefaultTolerance
	}
	vs := &VSpace{tol: tol}
	for _, s := range elems {
		vs.Add(s)
	}

	return vs
}

// residual returns s minus its projection onto the span.
// Complexity: O(Dim·|s|) with modified Gram–Schmidt.
func (vs *VSpace) residual(s pauli.Sentence) pauli.Sentence {
	r := s
	for _, b := range vs.ortho {
		ip := b.Inner(r)
		if ip == 0 {
			continue
		}
		r = r.Sub(b.Scale(ip))
	}

	return r
}

// independent reports whether r, the residual of s, is a new direction.
func (vs *VSpace) independent(s, r pauli.Sentence) bool {
	n := s.Norm()
	if n <= vs.tol {
		return false
	}

	return r.Norm() > vs.tol*n
}

// IsIndependent reports whether s is linearly independent of the span.
// The zero sentence is never independent.
func (vs *VSpace) IsIndependent(s pauli.Sentence) bool {
	return vs.independent(s, vs.residual(s))
}

// Contains reports whether s lies in the span within tolerance.
func (vs *VSpace) Contains(s pauli.Sentence) bool {
	return !vs.IsIndependent(s)
}

// Add appends s when it is independent of the span and reports whether it did.
func (vs *VSpace) Add(s pauli.Sentence) bool {
	r := vs.residual(s)
	if !vs.independent(s, r) {
		return false
	}
	vs.elems = append(vs.elems, s)
	vs.ortho = append(vs.ortho, r.Scale(complex(1/r.Norm(), 0)).Simplify(pauli.DefaultTolerance))

	return true
}

// Dim is the dimension of the span.
func (vs *VSpace) Dim() int { return len(vs.elems) }

// Basis returns a copy of the added elements in insertion order.
func (vs *VSpace) Basis() []pauli.Sentence {
	out := make([]pauli.Sentence, len(vs.elems))
	copy(out, vs.elems)

	return out
}

// Coordinates returns the orthonormal-basis coefficients of the projection of s
// together with the residual norm.
func (vs *VSpace) Coordinates(s pauli.Sentence) (coords []complex128, residual float64) {
	coords = make([]complex128, len(vs.ortho))
	for i, b := range vs.ortho {
		coords[i] = b.Inner(s)
	}

	return coords, vs.residual(s).Norm()
}

// Normalize scales s to unit 2-norm and rotates its global phase so the
// leading coefficient is positive real. The zero sentence is returned as is.
func Normalize(s pauli.Sentence) pauli.Sentence {
	s = s.Simplify(pauli.DefaultTolerance)
	lead, ok := s.Leading()
	if !ok {
		return s
	}
	phase := lead.Coeff / complex(cmplx.Abs(lead.Coeff), 0)
	out := s.Scale(1 / (complex(s.Norm(), 0) * phase))

	// Snap the leading coefficient so pure words come out exact.
	l := out.Coeff(lead.Word)

	return out.Add(pauli.NewSentence(pauli.Term{Word: lead.Word, Coeff: complex(cmplx.Abs(l), 0) - l}))
}
