// SPDX-License-Identifier: MIT

package cartan

import (
	"fmt"
	"math"

	"github.com/erikrecio/qml/lie"
	"github.com/erikrecio/qml/pauli"
)

// Involution labels an algebra element: true for the vertical subspace k
// (Θ(x) = x), false for the horizontal subspace m (Θ(x) = −x).
// It must be consistent over the algebra; CheckRelations detects when it is not.
type Involution func(pauli.Sentence) bool

// EvenOdd is the even-odd involution on Pauli words: an element is vertical
// when its leading word has an odd number of non-identity factors. It is meant
// for algebras spanned by pure words; for sums only the leading word is read.
func EvenOdd(s pauli.Sentence) bool {
	t, ok := s.Leading()
	if !ok {
		return false
	}

	return t.Word.Weight()%2 == 1
}

// Decompose partitions g into (k, m) by evaluating inv once per element.
// Relative order is preserved on both sides; g is not modified.
// inv must be non-nil.
func Decompose(g []pauli.Sentence, inv Involution) (k, m []pauli.Sentence) {
	k = make([]pauli.Sentence, 0, len(g))
	m = make([]pauli.Sentence, 0, len(g))
	for _, op := range g {
		if inv(op) {
			k = append(k, op)
		} else {
			m = append(m, op)
		}
	}

	return k, m
}

// commutesWithAll reports whether [c, h] simplifies to zero for every h in hs.
func commutesWithAll(c pauli.Sentence, hs []pauli.Sentence) bool {
	for _, h := range hs {
		if !c.Commutator(h).IsZero(pauli.DefaultTolerance) {
			return false
		}
	}

	return true
}

// Subalgebra extracts a Cartan subalgebra h of m starting from m[seed], and
// returns the remainder m̃ together with it.
//
// Implementation:
//   - Stage 1: validate m and seed; h = [m[seed]].
//   - Stage 2: single pass over m in order (the seed included); admit an element
//     when it commutes with every current member of h and its key is not in h yet.
//   - Stage 3: m̃ is a copy of m with one occurrence of each h element removed.
//
// Errors: ErrInvalidArgument for an empty m or a seed outside [0, len(m)).
// Complexity: O(|m|·|h|) commutators.
func Subalgebra(m []pauli.Sentence, seed int) (mtilde, h []pauli.Sentence, err error) {
	// Stage 1: Validate
	if len(m) == 0 {
		return nil, nil, fmt.Errorf("Subalgebra: empty horizontal space: %w", ErrInvalidArgument)
	}
	if seed < 0 || seed >= len(m) {
		return nil, nil, fmt.Errorf("Subalgebra: seed %d outside [0, %d): %w", seed, len(m), ErrInvalidArgument)
	}
	h = []pauli.Sentence{m[seed]}
	inH := map[string]struct{}{m[seed].Key(): {}}

	// Stage 2: Greedy pass
	for _, c := range m {
		key := c.Key()
		if _, dup := inH[key]; dup {
			continue
		}
		if commutesWithAll(c, h) {
			h = append(h, c)
			inH[key] = struct{}{}
		}
	}

	// Stage 3: Remainder
	pending := make(map[string]struct{}, len(inH))
	for key := range inH {
		pending[key] = struct{}{}
	}
	mtilde = make([]pauli.Sentence, 0, len(m)-len(h))
	for _, c := range m {
		key := c.Key()
		if _, ok := pending[key]; ok {
			delete(pending, key)
			continue
		}
		mtilde = append(mtilde, c)
	}

	return mtilde, h, nil
}

// relation names one Cartan commutation rule.
type relation struct {
	name   string
	a, b   []pauli.Sentence
	same   bool // a and b are the same space; only i < j pairs are needed
	target *lie.VSpace
}

// CheckRelations verifies the Cartan commutation rules
//
//	[k, k] ⊆ k (subalgebra), [k, m] ⊆ m (reductive), [m, m] ⊆ k (symmetric)
//
// by span membership with relative tolerance tol (lie.DefaultTolerance when ≤ 0).
// Errors: ErrNotCartan wrapped with the failing rule and commutator pair.
// Complexity: O((|k|+|m|)²) commutators, each followed by a projection.
func CheckRelations(k, m []pauli.Sentence, tol float64) error {
	ks, ms := lie.NewVSpace(tol, k...), lie.NewVSpace(tol, m...)
	rules := []relation{
		{name: "[k,k] ⊆ k", a: k, b: k, same: true, target: ks},
		{name: "[k,m] ⊆ m", a: k, b: m, target: ms},
		{name: "[m,m] ⊆ k", a: m, b: m, same: true, target: ks},
	}
	for _, r := range rules {
		for i, x := range r.a {
			start := 0
			if r.same {
				start = i + 1
			}
			for j := start; j < len(r.b); j++ {
				c := x.Commutator(r.b[j])
				if c.IsZero(pauli.DefaultTolerance) {
					continue
				}
				if !r.target.Contains(c) {
					return fmt.Errorf("CheckRelations: %s: [%v, %v] = %v: %w", r.name, x, r.b[j], c, ErrNotCartan)
				}
			}
		}
	}

	return nil
}

// Gammas returns γ_j = π^j mod 2 for j = 1..n, the weights of GenericElement.
func Gammas(n int) []float64 {
	out := make([]float64, n)
	for j := range out {
		out[j] = math.Mod(math.Pow(math.Pi, float64(j+1)), 2)
	}

	return out
}

// GenericElement returns v = Σ_j γ_j h_j with γ_j = π^j mod 2 (j from 1).
// The γ_j are rationally independent, so exp(i t v) is dense in exp(i h).
func GenericElement(h []pauli.Sentence) pauli.Sentence {
	var v pauli.Sentence
	for j, g := range Gammas(len(h)) {
		v = v.Add(h[j].Scale(complex(g, 0)))
	}

	return v
}
