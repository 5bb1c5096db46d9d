// SPDX-License-Identifier: MIT

package lie

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/erikrecio/qml/pauli"
)

// walker carries the state of one closure computation.
type walker struct {
	opts  Options
	space *VSpace
	seen  map[string]struct{} // canonical keys of the normalised elements
	elems []pauli.Sentence
}

// Closure returns a basis of the smallest Lie algebra containing gens, the
// dynamical Lie algebra. The generators come first (normalised, dependent
// ones dropped), followed by the elements of each commutator level in the
// order they were found.
//
// Implementation:
//   - Stage 1: normalise and admit the generators; they form level 0.
//   - Stage 2: commute every element of the current level with every element
//     found so far; admit the independent normalised results as the next level.
//   - Stage 3: stop when a level is empty.
//
// Errors: ErrNoGenerators, ErrMaxDimExceeded (wrapped with the level reached).
// Complexity: O(L·D·C) commutators for D = dim g, L levels and C the cost of one
// independence test.
func Closure(gens []pauli.Sentence, opts ...Option) ([]pauli.Sentence, error) {
	w := &walker{
		opts: gatherOptions(opts...),
		seen: make(map[string]struct{}),
	}
	w.space = NewVSpace(w.opts.tol)

	// Stage 1: Seed level 0
	var level []pauli.Sentence
	for _, g := range gens {
		if s, ok := w.admit(g, false); ok {
			level = append(level, s)
		}
	}
	if len(level) == 0 {
		return nil, ErrNoGenerators
	}
	if err := w.checkDim(0); err != nil {
		return nil, err
	}

	// Stage 2: Grow level by level
	for depth := 1; len(level) > 0; depth++ {
		var next []pauli.Sentence
		for _, a := range level {
			// elems grows while we iterate; new entries are also commuted with a.
			for i := 0; i < len(w.elems); i++ {
				c := a.Commutator(w.elems[i])
				s, ok := w.admit(c, true)
				if !ok {
					continue
				}
				next = append(next, s)
				if err := w.checkDim(depth); err != nil {
					return nil, err
				}
			}
		}
		w.opts.logger.Debug("closure level",
			zap.Int("level", depth),
			zap.Int("added", len(next)),
			zap.Int("dim", len(w.elems)))
		level = next
	}

	// Stage 3: Done
	return w.space.Basis(), nil
}

// admit normalises s (after multiplying by i for commutators) and adds it when
// it is new and independent.
func (w *walker) admit(s pauli.Sentence, commutator bool) (pauli.Sentence, bool) {
	s = s.Simplify(pauli.DefaultTolerance)
	if s.Len() == 0 {
		return s, false
	}
	if commutator {
		s = s.Scale(1i)
	}
	s = Normalize(s)
	k := s.Key()
	if _, dup := w.seen[k]; dup {
		return s, false
	}
	if !w.space.Add(s) {
		return s, false
	}
	w.seen[k] = struct{}{}
	w.elems = append(w.elems, s)

	return s, true
}

func (w *walker) checkDim(depth int) error {
	if len(w.elems) > w.opts.maxDim {
		return fmt.Errorf("Closure: level %d: dim %d > %d: %w", depth, len(w.elems), w.opts.maxDim, ErrMaxDimExceeded)
	}

	return nil
}
