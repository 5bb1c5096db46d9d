// SPDX-License-Identifier: MIT

package sweep

import (
	"math"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Run outcome labels of kak_sweep_runs_total.
const (
	StatusOK      = "ok"
	StatusStalled = "stalled"
	StatusError   = "error"
)

// Metrics are the Prometheus collectors of a sweep.
type Metrics struct {
	// Runs counts finished restarts by status.
	Runs *prometheus.CounterVec
	// FinalLoss is the lowest loss reached by any successful restart so far.
	FinalLoss prometheus.Gauge
	// RunSeconds is the wall time per restart.
	RunSeconds prometheus.Histogram

	mu   sync.Mutex
	best float64
}

// NewMetrics creates the sweep collectors and registers them on reg. A nil reg
// leaves them unregistered. Registering twice on the same registry panics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		Runs: f.NewCounterVec(prometheus.CounterOpts{
			Name: "kak_sweep_runs_total",
			Help: "Finished KhK restarts by status",
		}, []string{"status"}),
		FinalLoss: f.NewGauge(prometheus.GaugeOpts{
			Name: "kak_sweep_final_loss",
			Help: "Lowest KhK loss reached by a restart",
		}),
		RunSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "kak_sweep_run_seconds",
			Help:    "Wall time of one KhK restart",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
		best: math.NaN(),
	}
}

// observe records one finished run; a nil receiver is a no-op.
func (m *Metrics) observe(run *Run, err error) {
	if m == nil {
		return
	}
	switch {
	case err != nil:
		m.Runs.WithLabelValues(StatusError).Inc()
		return
	case run.Stalled:
		m.Runs.WithLabelValues(StatusStalled).Inc()
	default:
		m.Runs.WithLabelValues(StatusOK).Inc()
	}
	m.RunSeconds.Observe(run.Elapsed.Seconds())

	m.mu.Lock()
	defer m.mu.Unlock()
	if !math.IsNaN(run.MinLoss) && (math.IsNaN(m.best) || run.MinLoss < m.best) {
		m.best = run.MinLoss
		m.FinalLoss.Set(m.best)
	}
}
