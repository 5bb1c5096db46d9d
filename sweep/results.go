// SPDX-License-Identifier: MIT

package sweep

import (
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/erikrecio/qml/khk"
)

// Run is one finished restart.
type Run struct {
	ID     uuid.UUID
	Seed   int64
	Theta0 []float64

	Decomposition *khk.Decomposition
	FinalLoss     float64 // loss at the last iterate
	MinLoss       float64 // lowest finite loss, NaN when none
	Stalled       bool
	Elapsed       time.Duration
}

// Results accumulates runs. The zero value is ready to use and safe for
// concurrent Add.
type Results struct {
	mu   sync.Mutex
	runs []Run
}

// Add appends run.
func (r *Results) Add(run Run) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs = append(r.runs, run)
}

// Len is the number of runs added.
func (r *Results) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.runs)
}

// Runs returns a copy of the runs ordered by seed.
func (r *Results) Runs() []Run {
	r.mu.Lock()
	out := make([]Run, len(r.runs))
	copy(out, r.runs)
	r.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].Seed < out[j].Seed })

	return out
}

// Best returns the run with the lowest MinLoss, the lower seed on ties.
// ok is false when no run has a finite loss.
func (r *Results) Best() (best Run, ok bool) {
	for _, run := range r.Runs() {
		if math.IsNaN(run.MinLoss) {
			continue
		}
		if !ok || run.MinLoss < best.MinLoss {
			best, ok = run, true
		}
	}

	return best, ok
}
