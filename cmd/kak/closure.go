// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/erikrecio/qml/internal/config"
	"github.com/erikrecio/qml/lie"
	"github.com/erikrecio/qml/pauli"
)

var closureCmd = &cobra.Command{
	Use:   "closure",
	Short: "Print the dynamical Lie algebra of the configured generators",
	Args:  cobra.NoArgs,
	RunE:  runClosure,
}

func runClosure(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	g, err := closure(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "dim(g) = %d\n", len(g))
	for i, s := range g {
		fmt.Fprintf(out, "%4d  %s\n", i, s)
	}

	return nil
}

// closure runs lie.Closure with the configured bounds.
func closure(cfg *config.Config) ([]pauli.Sentence, error) {
	gens, err := cfg.GeneratorSet()
	if err != nil {
		return nil, err
	}
	logger.Info("computing closure", zap.String("model", cfg.Model), zap.Int("wires", cfg.Wires), zap.Int("generators", len(gens)))

	return lie.Closure(gens,
		lie.WithMaxDim(cfg.Closure.MaxDim),
		lie.WithTolerance(cfg.Closure.Tolerance),
		lie.WithLogger(logger),
	)
}
