// SPDX-License-Identifier: MIT

// Package evolve builds time-evolution operators used to benchmark the KhK
// fast-forwarding: the exact propagator, Suzuki–Trotter product formulae and
// the trace-overlap error between two unitaries.
package evolve

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/erikrecio/qml/matrix"
	"github.com/erikrecio/qml/pauli"
)

var (
	// ErrInvalidOrder is returned for product-formula orders other than 1 or a positive even number.
	ErrInvalidOrder = errors.New("evolve: order must be 1 or a positive even number")

	// ErrSteps is returned for a non-positive number of Trotter steps.
	ErrSteps = errors.New("evolve: steps must be >= 1")

	// ErrNoTerms is returned when a product formula has nothing to exponentiate.
	ErrNoTerms = errors.New("evolve: no Hamiltonian terms")
)

// Exact returns exp(−i·t·h).
func Exact(h matrix.Matrix, t float64) (*matrix.Dense, error) {
	arg, err := matrix.Scale(h, complex(0, -t))
	if err != nil {
		return nil, fmt.Errorf("Exact: %w", err)
	}

	return matrix.Expm(arg)
}

// factor is one exponential exp(−i·frac·τ·h_term) inside a product formula.
type factor struct {
	term int
	frac float64
}

// suzuki returns the factor sequence of the order-k Suzuki formula over n
// terms for a unit step. Order 1 is the plain product, order 2 the symmetric
// one, and order 2k = S₂ₖ₋₂(pτ)² S₂ₖ₋₂((1−4p)τ) S₂ₖ₋₂(pτ)² with
// p = 1/(4 − 4^{1/(2k−1)}).
func suzuki(order, n int, scale float64) []factor {
	switch order {
	case 1:
		out := make([]factor, n)
		for j := range out {
			out[j] = factor{term: j, frac: scale}
		}
		return out
	case 2:
		out := make([]factor, 0, 2*n)
		for j := 0; j < n; j++ {
			out = append(out, factor{term: j, frac: scale / 2})
		}
		for j := n - 1; j >= 0; j-- {
			out = append(out, factor{term: j, frac: scale / 2})
		}
		return out
	}
	p := 1 / (4 - math.Pow(4, 1/float64(order-1)))
	outer := suzuki(order-2, n, p*scale)
	inner := suzuki(order-2, n, (1-4*p)*scale)
	out := make([]factor, 0, 4*len(outer)+len(inner))
	out = append(out, outer...)
	out = append(out, outer...)
	out = append(out, inner...)
	out = append(out, outer...)

	return append(out, outer...)
}

// Trotter approximates exp(−i·t·Σ terms) by steps repetitions of the Suzuki
// product formula of the given order at step t/steps. Terms act on wires.
//
// Implementation:
//   - Stage 1: validate and materialise every term once.
//   - Stage 2: multiply the factor sequence of one step; factors are applied
//     left to right in time, so the first factor is the rightmost matrix.
//   - Stage 3: raise the step unitary to the power steps by repeated squaring.
//
// Errors: ErrNoTerms, ErrSteps, ErrInvalidOrder, pauli wire errors.
// Complexity: O(F·d³ + log(steps)·d³) with F = |terms|·2·5^{order/2−1} factors.
func Trotter(terms []pauli.Sentence, wires []int, t float64, steps, order int) (*matrix.Dense, error) {
	// Stage 1: Validate
	if len(terms) == 0 {
		return nil, ErrNoTerms
	}
	if steps < 1 {
		return nil, fmt.Errorf("Trotter: steps=%d: %w", steps, ErrSteps)
	}
	if order < 1 || (order > 1 && order%2 != 0) {
		return nil, fmt.Errorf("Trotter: order=%d: %w", order, ErrInvalidOrder)
	}
	ms := make([]*matrix.Dense, len(terms))
	for j, s := range terms {
		m, err := s.Matrix(wires)
		if err != nil {
			return nil, fmt.Errorf("Trotter: term %d: %w", j, err)
		}
		ms[j] = m
	}

	// Stage 2: One step
	tau := t / float64(steps)
	u, err := matrix.NewIdentity(1 << uint(len(wires)))
	if err != nil {
		return nil, err
	}
	for _, f := range suzuki(order, len(terms), 1) {
		e, err := Exact(ms[f.term], f.frac*tau)
		if err != nil {
			return nil, err
		}
		if u, err = matrix.Mul(e, u); err != nil {
			return nil, err
		}
	}

	// Stage 3: Power
	return power(u, steps)
}

// power returns u^n for n ≥ 1.
func power(u *matrix.Dense, n int) (*matrix.Dense, error) {
	var (
		out *matrix.Dense
		err error
	)
	for base := u; n > 0; n >>= 1 {
		if n&1 == 1 {
			if out == nil {
				out = base
			} else if out, err = matrix.Mul(out, base); err != nil {
				return nil, err
			}
		}
		if n > 1 {
			if base, err = matrix.Mul(base, base); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}

// TraceDistance returns 1 − |tr(a†·b)|/d for d×d unitaries a and b: zero when
// they agree up to a global phase.
// Errors: matrix.ErrNilMatrix, matrix.ErrNonSquare, matrix.ErrDimensionMismatch.
func TraceDistance(a, b matrix.Matrix) (float64, error) {
	if err := matrix.ValidateSquareNonNil(a); err != nil {
		return 0, fmt.Errorf("TraceDistance: %w", err)
	}
	ad, err := matrix.Adjoint(a)
	if err != nil {
		return 0, fmt.Errorf("TraceDistance: %w", err)
	}
	tr, err := matrix.TraceProd(ad, b)
	if err != nil {
		return 0, fmt.Errorf("TraceDistance: %w", err)
	}

	return 1 - cmplx.Abs(tr)/float64(a.Rows()), nil
}
