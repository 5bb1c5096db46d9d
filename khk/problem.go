// SPDX-License-Identifier: MIT

package khk

import (
	"fmt"
	"math"

	"github.com/erikrecio/qml/matrix"
	"github.com/erikrecio/qml/optimize"
	"github.com/erikrecio/qml/pauli"
)

// hermitianEps is the entrywise tolerance for the Hermiticity check of v and H.
const hermitianEps = 1e-10

// generator is one vertical basis element in dense form.
type generator struct {
	m *matrix.Dense // k_j
	// word is set when k_j = c·P for a single Pauli word P and real c; then
	// exp(−iθk_j) = cos(cθ)·I − i·sin(cθ)/c·k_j.
	word bool
	c    float64
}

// Problem is one KhK factorisation task over a fixed wire order.
// It is immutable after construction and safe for concurrent use.
type Problem struct {
	wires []int
	dim   int
	gens  []generator
	v     *matrix.Dense
	h     *matrix.Dense
	id    *matrix.Dense
}

// New materialises k, v and H over wires.
//
// Errors: ErrEmptyBasis, pauli wire errors (unknown, duplicate or negative
// wires), ErrNotHermitian when v or H has non-real coefficients.
func New(k []pauli.Sentence, v, h pauli.Sentence, wires []int) (*Problem, error) {
	if len(k) == 0 {
		return nil, ErrEmptyBasis
	}
	vm, err := v.Matrix(wires)
	if err != nil {
		return nil, fmt.Errorf("New: v: %w", err)
	}
	hm, err := h.Matrix(wires)
	if err != nil {
		return nil, fmt.Errorf("New: H: %w", err)
	}
	p, err := newProblem(wires, vm, hm)
	if err != nil {
		return nil, err
	}
	p.gens = make([]generator, len(k))
	for j, kj := range k {
		m, err := kj.Matrix(wires)
		if err != nil {
			return nil, fmt.Errorf("New: k[%d]: %w", j, err)
		}
		p.gens[j] = generator{m: m}
		if ts := kj.Terms(); len(ts) == 1 && imag(ts[0].Coeff) == 0 && real(ts[0].Coeff) != 0 {
			p.gens[j].word, p.gens[j].c = true, real(ts[0].Coeff)
		}
	}

	return p, nil
}

// NewDense builds a Problem from dense operators; every k_j goes through Expm.
// Errors: ErrEmptyBasis, ErrDimensionMismatch, ErrNotHermitian, matrix.ErrNilMatrix.
func NewDense(k []matrix.Matrix, v, h matrix.Matrix, wires []int) (*Problem, error) {
	if len(k) == 0 {
		return nil, ErrEmptyBasis
	}
	vm, err := dense(v)
	if err != nil {
		return nil, fmt.Errorf("NewDense: v: %w", err)
	}
	hm, err := dense(h)
	if err != nil {
		return nil, fmt.Errorf("NewDense: H: %w", err)
	}
	p, err := newProblem(wires, vm, hm)
	if err != nil {
		return nil, err
	}
	p.gens = make([]generator, len(k))
	for j, kj := range k {
		m, err := dense(kj)
		if err != nil {
			return nil, fmt.Errorf("NewDense: k[%d]: %w", j, err)
		}
		if m.Rows() != p.dim {
			return nil, fmt.Errorf("NewDense: k[%d] is %dx%d, want %dx%d: %w", j, m.Rows(), m.Cols(), p.dim, p.dim, ErrDimensionMismatch)
		}
		p.gens[j] = generator{m: m}
	}

	return p, nil
}

// dense validates m as square and returns an owned *matrix.Dense copy.
func dense(m matrix.Matrix) (*matrix.Dense, error) {
	if err := matrix.ValidateSquareNonNil(m); err != nil {
		return nil, err
	}
	// Scale by one yields a fresh *Dense regardless of the concrete type.
	return matrix.Scale(m, 1)
}

// newProblem checks the shared shape and Hermiticity of v and H.
func newProblem(wires []int, v, h *matrix.Dense) (*Problem, error) {
	dim := 1 << uint(len(wires))
	if v.Rows() != dim || h.Rows() != dim {
		return nil, fmt.Errorf("khk: v %dx%d, H %dx%d over %d wires: %w", v.Rows(), v.Cols(), h.Rows(), h.Cols(), len(wires), ErrDimensionMismatch)
	}
	for name, m := range map[string]*matrix.Dense{"v": v, "H": h} {
		ok, err := matrix.IsHermitian(m, matrix.WithEpsilon(hermitianEps))
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("khk: %s: %w", name, ErrNotHermitian)
		}
	}
	id, err := matrix.NewIdentity(dim)
	if err != nil {
		return nil, err
	}
	w := make([]int, len(wires))
	copy(w, wires)

	return &Problem{wires: w, dim: dim, v: v, h: h, id: id}, nil
}

// Len is the number of parameters, |k|.
func (p *Problem) Len() int { return len(p.gens) }

// Dim is the matrix side 2ⁿ.
func (p *Problem) Dim() int { return p.dim }

// Wires returns a copy of the wire order.
func (p *Problem) Wires() []int {
	out := make([]int, len(p.wires))
	copy(out, p.wires)

	return out
}

// H returns a copy of the target Hamiltonian matrix.
func (p *Problem) H() *matrix.Dense {
	out, _ := matrix.Scale(p.h, 1)

	return out
}

// Rotation returns U_j(θ) = exp(−i·θ·k_j).
func (p *Problem) Rotation(j int, theta float64) (*matrix.Dense, error) {
	if j < 0 || j >= len(p.gens) {
		return nil, fmt.Errorf("Rotation: index %d of %d: %w", j, len(p.gens), ErrParamLen)
	}
	g := p.gens[j]
	if g.word {
		s, c := math.Sincos(g.c * theta)
		a, err := matrix.Scale(p.id, complex(c, 0))
		if err != nil {
			return nil, err
		}
		b, err := matrix.Scale(g.m, complex(0, -s/g.c))
		if err != nil {
			return nil, err
		}
		return matrix.Add(a, b)
	}
	arg, err := matrix.Scale(g.m, complex(0, -theta))
	if err != nil {
		return nil, err
	}

	return matrix.Expm(arg)
}

func (p *Problem) checkLen(theta []float64) error {
	if len(theta) != len(p.gens) {
		return fmt.Errorf("got %d parameters, want %d: %w", len(theta), len(p.gens), ErrParamLen)
	}

	return nil
}

// rotations returns U_0..U_{n−1} at theta.
func (p *Problem) rotations(theta []float64) ([]*matrix.Dense, error) {
	us := make([]*matrix.Dense, len(theta))
	for j, th := range theta {
		u, err := p.Rotation(j, th)
		if err != nil {
			return nil, err
		}
		us[j] = u
	}

	return us, nil
}

// K returns K(θ) = U_{n−1}···U_0.
// Errors: ErrParamLen.
func (p *Problem) K(theta []float64) (*matrix.Dense, error) {
	if err := p.checkLen(theta); err != nil {
		return nil, fmt.Errorf("K: %w", err)
	}
	us, err := p.rotations(theta)
	if err != nil {
		return nil, err
	}
	k := us[0]
	for j := 1; j < len(us); j++ {
		if k, err = matrix.Mul(us[j], k); err != nil {
			return nil, err
		}
	}

	return k, nil
}

// lossAt evaluates Re tr(K v K† H) for a known K and also returns M = v K† H.
func (p *Problem) lossAt(k *matrix.Dense) (float64, *matrix.Dense, error) {
	kd, err := matrix.Adjoint(k)
	if err != nil {
		return 0, nil, err
	}
	kdh, err := matrix.Mul(kd, p.h)
	if err != nil {
		return 0, nil, err
	}
	mm, err := matrix.Mul(p.v, kdh)
	if err != nil {
		return 0, nil, err
	}
	tr, err := matrix.TraceProd(k, mm)
	if err != nil {
		return 0, nil, err
	}

	return real(tr), mm, nil
}

// Loss returns f(θ) = Re tr((K v K†)† H).
// Errors: ErrParamLen.
func (p *Problem) Loss(theta []float64) (float64, error) {
	k, err := p.K(theta)
	if err != nil {
		return 0, fmt.Errorf("Loss: %w", err)
	}
	f, _, err := p.lossAt(k)

	return f, err
}

// ValueAndGrad returns f(θ) and writes ∂f/∂θ into grad.
//
// Implementation:
//   - Stage 1: rotations U_j and prefix products R_j = U_j···U_0; K = R_{n−1}.
//   - Stage 2: f and M = v K† H.
//   - Stage 3: sweep j from n−1 down to 0 carrying the suffix L_j; each
//     component is 2·Im tr((L_j k_j)(R_j M)).
//
// Errors: ErrParamLen when theta or grad has the wrong length.
// Complexity: O(n·d³) for n parameters and matrix side d.
func (p *Problem) ValueAndGrad(theta, grad []float64) (float64, error) {
	if err := p.checkLen(theta); err != nil {
		return 0, fmt.Errorf("ValueAndGrad: %w", err)
	}
	if err := p.checkLen(grad); err != nil {
		return 0, fmt.Errorf("ValueAndGrad: grad: %w", err)
	}

	// Stage 1: Prefix products
	us, err := p.rotations(theta)
	if err != nil {
		return 0, err
	}
	n := len(us)
	prefix := make([]*matrix.Dense, n)
	prefix[0] = us[0]
	for j := 1; j < n; j++ {
		if prefix[j], err = matrix.Mul(us[j], prefix[j-1]); err != nil {
			return 0, err
		}
	}

	// Stage 2: Loss
	f, mm, err := p.lossAt(prefix[n-1])
	if err != nil {
		return 0, err
	}

	// Stage 3: Gradient
	suffix := p.id
	var (
		y, z *matrix.Dense
		tr   complex128
	)
	for j := n - 1; j >= 0; j-- {
		if y, err = matrix.Mul(prefix[j], mm); err != nil {
			return 0, err
		}
		if z, err = matrix.Mul(suffix, p.gens[j].m); err != nil {
			return 0, err
		}
		if tr, err = matrix.TraceProd(z, y); err != nil {
			return 0, err
		}
		grad[j] = 2 * imag(tr)
		if j > 0 {
			if suffix, err = matrix.Mul(suffix, us[j]); err != nil {
				return 0, err
			}
		}
	}

	return f, nil
}

// Objective adapts the Problem to optimize.Minimize. A failed evaluation
// reports NaN, which the optimiser records without selecting it.
func (p *Problem) Objective() optimize.Objective {
	return func(x, grad []float64) float64 {
		f, err := p.ValueAndGrad(x, grad)
		if err != nil {
			for i := range grad {
				grad[i] = math.NaN()
			}
			return math.NaN()
		}
		return f
	}
}
