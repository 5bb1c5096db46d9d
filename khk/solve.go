// SPDX-License-Identifier: MIT

package khk

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/erikrecio/qml/lie"
	"github.com/erikrecio/qml/matrix"
	"github.com/erikrecio/qml/optimize"
	"github.com/erikrecio/qml/pauli"
)

// Decomposition is the outcome of Solve: H ≈ K·H0·K† with K = K(Theta).
type Decomposition struct {
	Theta  []float64
	K      *matrix.Dense
	H0     *matrix.Dense
	Result *optimize.Result

	wires []int
}

// Solve minimises the KhK loss of p from theta0 and assembles the
// Decomposition at the selected parameters (lowest loss unless
// WithLastIterate is given). A nil theta0 starts from all ones.
//
// Implementation:
//   - Stage 1: resolve the start point.
//   - Stage 2: optimize.Minimize over p.Objective().
//   - Stage 3: K at the selected θ, h₀ = K† H K, summary log.
//
// Errors: ErrParamLen, and a context error from optimize.WithContext, which is
// returned together with the partial Decomposition.
func Solve(p *Problem, theta0 []float64, opts ...Option) (*Decomposition, error) {
	o := gatherOptions(opts...)

	// Stage 1: Start point
	if theta0 == nil {
		theta0 = make([]float64, p.Len())
		for i := range theta0 {
			theta0[i] = 1
		}
	}
	if err := p.checkLen(theta0); err != nil {
		return nil, fmt.Errorf("Solve: %w", err)
	}

	// Stage 2: Optimise
	mopts := append([]optimize.Option{optimize.WithLogger(o.logger)}, o.opt...)
	res, runErr := optimize.Minimize(p.Objective(), theta0, mopts...)
	if res == nil {
		return nil, fmt.Errorf("Solve: %w", runErr)
	}

	// Stage 3: Assemble
	theta := res.Best
	if o.last {
		theta = res.Last
	}
	d, err := p.assemble(theta)
	if err != nil {
		return nil, fmt.Errorf("Solve: %w", err)
	}
	d.Result = res

	o.logger.Info("khk solved",
		zap.Stringer("method", res.Method),
		zap.Int("params", p.Len()),
		zap.Int("epochs", res.Epochs),
		zap.Int("evaluations", res.Evaluations),
		zap.Float64("final_loss", res.LastLoss),
		zap.Float64("min_loss", res.BestLoss),
		zap.Bool("converged", res.Converged),
		zap.Bool("stalled", res.Stalled),
		zap.Duration("elapsed", res.Elapsed),
	)
	if res.Stalled {
		o.logger.Warn("khk loss trajectory is flat", zap.Float64("loss", res.BestLoss))
	}
	if runErr != nil {
		return d, fmt.Errorf("Solve: %w", runErr)
	}

	return d, nil
}

// Assemble builds the Decomposition at fixed parameters without optimising.
// Errors: ErrParamLen.
func (p *Problem) Assemble(theta []float64) (*Decomposition, error) {
	if err := p.checkLen(theta); err != nil {
		return nil, fmt.Errorf("Assemble: %w", err)
	}

	return p.assemble(theta)
}

func (p *Problem) assemble(theta []float64) (*Decomposition, error) {
	k, err := p.K(theta)
	if err != nil {
		return nil, err
	}
	kd, err := matrix.Adjoint(k)
	if err != nil {
		return nil, err
	}
	h0, err := matrix.MulChain(kd, p.h, k)
	if err != nil {
		return nil, err
	}
	th := make([]float64, len(theta))
	copy(th, theta)

	return &Decomposition{Theta: th, K: k, H0: h0, wires: p.Wires()}, nil
}

// H0Sentence expands h₀ in Pauli words over the problem wires.
func (d *Decomposition) H0Sentence() (pauli.Sentence, error) {
	return pauli.Decompose(d.H0, d.wires)
}

// InSpan reports whether h₀, without its identity component, lies in the span
// of h with relative residual at most tol (tol ≤ 0 selects lie.DefaultTolerance).
// The identity component is the trace of H and is left unchanged by K.
func (d *Decomposition) InSpan(h []pauli.Sentence, tol float64) (bool, error) {
	s, err := d.H0Sentence()
	if err != nil {
		return false, err
	}
	var id pauli.Word
	if c := s.Coeff(id); c != 0 {
		s = s.Sub(pauli.FromWord(id).Scale(c))
	}
	if s.IsZero(pauli.DefaultTolerance) {
		return true, nil
	}

	return lie.NewVSpace(tol, h...).Contains(s), nil
}

// Reconstruct returns K·h₀·K†.
func (d *Decomposition) Reconstruct() (*matrix.Dense, error) {
	kd, err := matrix.Adjoint(d.K)
	if err != nil {
		return nil, err
	}

	return matrix.MulChain(d.K, d.H0, kd)
}

// Evolve returns the fast-forwarded propagator K·exp(−i·t·h₀)·K†.
func (d *Decomposition) Evolve(t float64) (*matrix.Dense, error) {
	arg, err := matrix.Scale(d.H0, complex(0, -t))
	if err != nil {
		return nil, err
	}
	e, err := matrix.Expm(arg)
	if err != nil {
		return nil, err
	}
	kd, err := matrix.Adjoint(d.K)
	if err != nil {
		return nil, err
	}

	return matrix.MulChain(d.K, e, kd)
}

// Depth is the number of elementary rotations in the fast-forwarded circuit:
// |k| rotations for K, hDim for exp(−i·t·h₀) and |k| for K†.
func (d *Decomposition) Depth(hDim int) int {
	return 2*len(d.Theta) + hDim
}
