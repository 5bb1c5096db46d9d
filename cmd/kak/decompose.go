// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/erikrecio/qml/cartan"
	"github.com/erikrecio/qml/evolve"
	"github.com/erikrecio/qml/internal/config"
	"github.com/erikrecio/qml/khk"
	"github.com/erikrecio/qml/matrix"
	"github.com/erikrecio/qml/optimize"
	"github.com/erikrecio/qml/pauli"
	"github.com/erikrecio/qml/sweep"
)

// relationTol is the tolerance of the Cartan commutation-relation check.
const relationTol = 1e-8

var (
	seedIndex int
	epochs    int
	restarts  int
)

var decomposeCmd = &cobra.Command{
	Use:   "decompose",
	Short: "Run the full Cartan / KhK pipeline and report the fast-forwarding error",
	Long: `Runs closure → even-odd partition → Cartan subalgebra → KhK driver, then
prints the algebra dimensions, the final and minimum loss, whether h0 lies in
the Cartan subalgebra, the reconstruction error of H and, for every configured
time, the trace distance of the KhK and Trotter propagators to the exact one.

With --restarts > 1 the driver is restarted from perturbed start points in
parallel and the best restart is reported.`,
	Args: cobra.NoArgs,
	RunE: runDecompose,
}

func init() {
	f := decomposeCmd.Flags()
	f.IntVar(&seedIndex, "seed-index", 0, "index in m of the first Cartan subalgebra element")
	f.IntVar(&epochs, "epochs", 0, "optimiser epochs (overrides the config)")
	f.IntVar(&restarts, "restarts", 0, "number of restarts (overrides the config)")
}

// applyFlags overrides cfg with the flags the user set.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	f := cmd.Flags()
	if f.Changed("seed-index") {
		cfg.SeedIndex = seedIndex
	}
	if f.Changed("epochs") {
		cfg.Optimizer.Epochs = epochs
	}
	if f.Changed("restarts") {
		cfg.Sweep.Restarts = restarts
	}

	return cfg.Validate()
}

func optimizerOptions(cfg *config.Config) []optimize.Option {
	method, _ := optimize.ParseMethod(cfg.Optimizer.Method) // validated by config
	opts := []optimize.Option{
		optimize.WithMethod(method),
		optimize.WithEpochs(cfg.Optimizer.Epochs),
		optimize.WithLearningRate(cfg.Optimizer.LearningRate),
		optimize.WithMemory(cfg.Optimizer.Memory),
	}
	if cfg.Optimizer.Tolerance > 0 {
		opts = append(opts, optimize.WithTolerance(cfg.Optimizer.Tolerance))
	}

	return opts
}

func runDecompose(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err = applyFlags(cmd, cfg); err != nil {
		return err
	}

	// Algebra
	g, err := closure(cfg)
	if err != nil {
		return err
	}
	k, m := cartan.Decompose(g, cartan.EvenOdd)
	if err = cartan.CheckRelations(k, m, relationTol); err != nil {
		return err
	}
	mtilde, h, err := cartan.Subalgebra(m, cfg.SeedIndex)
	if err != nil {
		return err
	}
	logger.Info("cartan decomposition",
		zap.Int("g", len(g)), zap.Int("k", len(k)), zap.Int("m", len(m)),
		zap.Int("mtilde", len(mtilde)), zap.Int("h", len(h)))

	// Factorisation
	target, err := cfg.Target()
	if err != nil {
		return err
	}
	p, err := khk.New(k, cartan.GenericElement(h), target, cfg.WireOrder())
	if err != nil {
		return err
	}
	d, err := factorise(cmd.Context(), cfg, p)
	if err != nil {
		return err
	}

	// Report
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "|g| = %d  |k| = %d  |m| = %d  |m~| = %d  |h| = %d\n", len(g), len(k), len(m), len(mtilde), len(h))
	fmt.Fprintf(out, "final loss = %.10g  min loss = %.10g  epochs = %d  stalled = %t\n",
		d.Result.LastLoss, d.Result.BestLoss, d.Result.Epochs, d.Result.Stalled)
	in, err := d.InSpan(h, 1e-6)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "h0 in span(h): %t\n", in)
	fmt.Fprintf(out, "circuit depth = %d\n", d.Depth(len(h)))

	return report(out, cfg, p, d, target)
}

// factorise runs the driver once, or a sweep when more than one restart is configured.
func factorise(ctx context.Context, cfg *config.Config, p *khk.Problem) (*khk.Decomposition, error) {
	solve := []khk.Option{khk.WithOptimizer(optimizerOptions(cfg)...)}
	if cfg.Sweep.Restarts <= 1 {
		return khk.Solve(p, nil, append(solve, khk.WithLogger(logger), khk.WithOptimizer(optimize.WithContext(ctx)))...)
	}

	reg := prometheus.NewRegistry()
	opts := []sweep.Option{
		sweep.WithSigma(cfg.Sweep.Sigma),
		sweep.WithSolveOptions(solve...),
		sweep.WithMetrics(sweep.NewMetrics(reg)),
		sweep.WithLogger(logger),
	}
	if cfg.Sweep.Concurrency > 0 {
		opts = append(opts, sweep.WithConcurrency(cfg.Sweep.Concurrency))
	}
	res, err := sweep.NewRunner(p, opts...).Run(ctx, sweep.Seeds(cfg.Sweep.Restarts))
	if err != nil {
		return nil, err
	}
	logMetrics(reg)
	best, ok := res.Best()
	if !ok {
		return nil, fmt.Errorf("sweep: no restart reached a finite loss")
	}

	return best.Decomposition, nil
}

// logMetrics writes the gathered sweep metrics at debug level.
func logMetrics(reg *prometheus.Registry) {
	mfs, err := reg.Gather()
	if err != nil {
		logger.Warn("gather metrics", zap.Error(err))
		return
	}
	for _, mf := range mfs {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				logger.Debug("metric", zap.String("name", mf.GetName()), zap.Float64("value", m.GetCounter().GetValue()))
			case m.GetGauge() != nil:
				logger.Debug("metric", zap.String("name", mf.GetName()), zap.Float64("value", m.GetGauge().GetValue()))
			case m.GetHistogram() != nil:
				logger.Debug("metric", zap.String("name", mf.GetName()),
					zap.Uint64("count", m.GetHistogram().GetSampleCount()),
					zap.Float64("sum", m.GetHistogram().GetSampleSum()))
			}
		}
	}
}

// report prints the reconstruction error and the KhK and Trotter errors
// against exact evolution at the configured times.
func report(out io.Writer, cfg *config.Config, p *khk.Problem, d *khk.Decomposition, target pauli.Sentence) error {
	hm := p.H()
	rec, err := d.Reconstruct()
	if err != nil {
		return err
	}
	diff, err := matrix.Sub(rec, hm)
	if err != nil {
		return err
	}
	recErr, err := matrix.FrobeniusNorm(diff)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "reconstruction error ||K h0 K† - H||_F = %.3e\n", recErr)

	ts := target.Terms()
	terms := make([]pauli.Sentence, len(ts))
	for i, t := range ts {
		terms[i] = pauli.NewSentence(t)
	}
	fmt.Fprintf(out, "%8s  %12s  %12s\n", "t", "khk", fmt.Sprintf("trotter%d", cfg.Evolution.Order))
	for _, t := range cfg.Evolution.Times {
		exact, err := evolve.Exact(hm, t)
		if err != nil {
			return err
		}
		fast, err := d.Evolve(t)
		if err != nil {
			return err
		}
		trot, err := evolve.Trotter(terms, cfg.WireOrder(), t, cfg.Evolution.Steps, cfg.Evolution.Order)
		if err != nil {
			return err
		}
		dk, err := evolve.TraceDistance(exact, fast)
		if err != nil {
			return err
		}
		dt, err := evolve.TraceDistance(exact, trot)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%8.3f  %12.3e  %12.3e\n", t, dk, dt)
	}

	return nil
}
