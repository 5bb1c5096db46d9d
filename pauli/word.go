// SPDX-License-Identifier: MIT

package pauli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/erikrecio/qml/matrix"
)

// Pauli is a single-qubit Pauli operator.
type Pauli uint8

const (
	I Pauli = iota // identity
	X
	Y
	Z
)

// String returns the one-letter label of p.
func (p Pauli) String() string {
	switch p {
	case I:
		return "I"
	case X:
		return "X"
	case Y:
		return "Y"
	case Z:
		return "Z"
	default:
		return "Pauli(" + strconv.Itoa(int(p)) + ")"
	}
}

// mulPauli returns (phase, r) with p·q = phase·r.
func mulPauli(p, q Pauli) (complex128, Pauli) {
	switch {
	case p == I:
		return 1, q
	case q == I:
		return 1, p
	case p == q:
		return 1, I
	}
	// XY = iZ, YZ = iX, ZX = iY; reversed order flips the sign.
	r := 6 - p - q // the third of X=1, Y=2, Z=3
	if (p == X && q == Y) || (p == Y && q == Z) || (p == Z && q == X) {
		return 1i, r
	}

	return -1i, r
}

// Factor is one non-identity tensor factor of a Word.
type Factor struct {
	Wire int
	Op   Pauli
}

// Word is a tensor product of Pauli operators, sorted by wire, identities dropped.
// The zero value is the identity word.
type Word struct {
	factors []Factor
}

// NewWord builds a word from factors in any order. Identity factors are dropped.
// Errors: ErrInvalidWire for negative wires, ErrDuplicateWire when a wire repeats.
func NewWord(factors ...Factor) (Word, error) {
	fs := make([]Factor, 0, len(factors))
	for _, f := range factors {
		if f.Wire < 0 {
			return Word{}, fmt.Errorf("NewWord: wire %d: %w", f.Wire, ErrInvalidWire)
		}
		if f.Op > Z {
			return Word{}, fmt.Errorf("NewWord: %v: %w", f.Op, ErrParse)
		}
		fs = append(fs, f)
	}
	sort.Slice(fs, func(i, j int) bool { return fs[i].Wire < fs[j].Wire })
	out := fs[:0]
	for i, f := range fs {
		if i > 0 && fs[i-1].Wire == f.Wire {
			return Word{}, fmt.Errorf("NewWord: wire %d: %w", f.Wire, ErrDuplicateWire)
		}
		if f.Op != I {
			out = append(out, f)
		}
	}

	return Word{factors: out}, nil
}

// single returns the one-factor word op(wire); negative wires panic.
func single(op Pauli, wire int) Word {
	if wire < 0 {
		panic(ErrInvalidWire)
	}

	return Word{factors: []Factor{{Wire: wire, Op: op}}}
}

// XW returns the word X on wire.
func XW(wire int) Word { return single(X, wire) }

// YW returns the word Y on wire.
func YW(wire int) Word { return single(Y, wire) }

// ZW returns the word Z on wire.
func ZW(wire int) Word { return single(Z, wire) }

// Tensor returns w⊗o. Errors: ErrDuplicateWire when the words overlap.
func (w Word) Tensor(o Word) (Word, error) {
	return NewWord(append(w.Factors(), o.Factors()...)...)
}

// Factors returns a copy of the non-identity factors, sorted by wire.
func (w Word) Factors() []Factor {
	out := make([]Factor, len(w.factors))
	copy(out, w.factors)

	return out
}

// Weight is the number of non-identity factors.
func (w Word) Weight() int { return len(w.factors) }

// IsIdentity reports whether w has no non-identity factor.
func (w Word) IsIdentity() bool { return len(w.factors) == 0 }

// Wires returns the wires w acts on non-trivially, ascending.
func (w Word) Wires() []int {
	out := make([]int, len(w.factors))
	for i, f := range w.factors {
		out[i] = f.Wire
	}

	return out
}

// Op returns the operator on wire, I when w does not act on it.
func (w Word) Op(wire int) Pauli {
	i := sort.Search(len(w.factors), func(i int) bool { return w.factors[i].Wire >= wire })
	if i < len(w.factors) && w.factors[i].Wire == wire {
		return w.factors[i].Op
	}

	return I
}

// Key is the canonical string form, e.g. "X0 Y1"; "I" for the identity word.
func (w Word) Key() string {
	if len(w.factors) == 0 {
		return "I"
	}
	var sb strings.Builder
	for i, f := range w.factors {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(f.Op.String())
		sb.WriteString(strconv.Itoa(f.Wire))
	}

	return sb.String()
}

// String implements fmt.Stringer.
func (w Word) String() string { return w.Key() }

// Mul returns (phase, r) with w·o = phase·r, merging the two sorted factor lists.
// Complexity: O(|w| + |o|).
func (w Word) Mul(o Word) (complex128, Word) {
	var (
		phase complex128 = 1
		out              = make([]Factor, 0, len(w.factors)+len(o.factors))
		i, j  int
	)
	for i < len(w.factors) || j < len(o.factors) {
		switch {
		case j >= len(o.factors) || (i < len(w.factors) && w.factors[i].Wire < o.factors[j].Wire):
			out = append(out, w.factors[i])
			i++
		case i >= len(w.factors) || o.factors[j].Wire < w.factors[i].Wire:
			out = append(out, o.factors[j])
			j++
		default:
			ph, r := mulPauli(w.factors[i].Op, o.factors[j].Op)
			phase *= ph
			if r != I {
				out = append(out, Factor{Wire: w.factors[i].Wire, Op: r})
			}
			i++
			j++
		}
	}

	return phase, Word{factors: out}
}

// Commutes reports whether w and o commute: they do iff the number of wires
// carrying two different non-identity operators is even.
func (w Word) Commutes(o Word) bool {
	var (
		i, j int
		anti int
	)
	for i < len(w.factors) && j < len(o.factors) {
		switch {
		case w.factors[i].Wire < o.factors[j].Wire:
			i++
		case o.factors[j].Wire < w.factors[i].Wire:
			j++
		default:
			if w.factors[i].Op != o.factors[j].Op {
				anti++
			}
			i++
			j++
		}
	}

	return anti%2 == 0
}

// positions maps each wire of wireOrder to its qubit position.
func positions(wireOrder []int) (map[int]int, error) {
	pos := make(map[int]int, len(wireOrder))
	for q, wire := range wireOrder {
		if wire < 0 {
			return nil, fmt.Errorf("wire order: %d: %w", wire, ErrInvalidWire)
		}
		if _, dup := pos[wire]; dup {
			return nil, fmt.Errorf("wire order: %d: %w", wire, ErrDuplicateWire)
		}
		pos[wire] = q
	}

	return pos, nil
}

// column returns the single non-zero entry of column col of w's matrix:
// w|col⟩ = phase·|row⟩. n is the qubit count, pos the wire→position map.
func (w Word) column(pos map[int]int, n, col int) (row int, phase complex128) {
	row, phase = col, 1
	for _, f := range w.factors {
		shift := uint(n - 1 - pos[f.Wire])
		bit := (col >> shift) & 1
		switch f.Op {
		case X:
			row ^= 1 << shift
		case Y:
			row ^= 1 << shift
			if bit == 0 {
				phase *= 1i // Y|0⟩ = i|1⟩
			} else {
				phase *= -1i // Y|1⟩ = −i|0⟩
			}
		case Z:
			if bit == 1 {
				phase = -phase
			}
		}
	}

	return row, phase
}

// checkWires verifies every wire of w is present in pos.
func (w Word) checkWires(pos map[int]int) error {
	for _, f := range w.factors {
		if _, ok := pos[f.Wire]; !ok {
			return fmt.Errorf("%s: wire %d: %w", w.Key(), f.Wire, ErrUnknownWire)
		}
	}

	return nil
}

// Matrix materialises w as a dense 2ⁿ×2ⁿ matrix over wireOrder (n = len(wireOrder)).
// The first wire of wireOrder is the most significant qubit.
// Errors: ErrUnknownWire, ErrDuplicateWire, ErrInvalidWire, matrix allocation errors.
// Complexity: O(4ⁿ) for the allocation, O(2ⁿ·|w|) for the fill.
func (w Word) Matrix(wireOrder []int) (*matrix.Dense, error) {
	return FromWord(w).Matrix(wireOrder)
}
