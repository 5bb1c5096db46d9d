package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erikrecio/qml/internal/config"
)

func TestParse_EmptyKeepsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), *cfg)
	assert.Equal(t, []int{0, 1, 2, 3}, cfg.WireOrder())

	gens, err := cfg.GeneratorSet()
	require.NoError(t, err)
	assert.Len(t, gens, 9)
}

func TestParse_Overrides(t *testing.T) {
	t.Parallel()

	cfg, err := config.Parse([]byte(`
model: tfim
wires: 3
seed_index: 2
optimizer:
  method: gd
  epochs: 50
sweep:
  restarts: 4
evolution:
  times: [1.5]
  order: 2
`))
	require.NoError(t, err)
	assert.Equal(t, config.ModelTFIM, cfg.Model)
	assert.Equal(t, 2, cfg.SeedIndex)
	assert.Equal(t, "gd", cfg.Optimizer.Method)
	assert.Equal(t, 50, cfg.Optimizer.Epochs)
	assert.Equal(t, 0.1, cfg.Optimizer.LearningRate, "unset nested fields keep defaults")
	assert.Equal(t, 4, cfg.Sweep.Restarts)
	assert.Equal(t, []float64{1.5}, cfg.Evolution.Times)
	assert.Equal(t, 5, cfg.Evolution.Steps)

	gens, err := cfg.GeneratorSet()
	require.NoError(t, err)
	assert.Len(t, gens, 5)
	h, err := cfg.Target()
	require.NoError(t, err)
	assert.Equal(t, 5, h.Len())
}

func TestParse_Custom(t *testing.T) {
	t.Parallel()

	cfg, err := config.Parse([]byte(`
model: custom
wires: 2
generators: ["X0 X1", "Z0", "Z1"]
hamiltonian: "X0 X1 + 0.5*Z0"
`))
	require.NoError(t, err)
	gens, err := cfg.GeneratorSet()
	require.NoError(t, err)
	assert.Len(t, gens, 3)
	h, err := cfg.Target()
	require.NoError(t, err)
	assert.Equal(t, "X0 X1 + 0.5*Z0", h.String())
}

func TestParse_Invalid(t *testing.T) {
	t.Parallel()

	for name, src := range map[string]string{
		"unknown model":          "model: ising",
		"one wire":               "wires: 1",
		"custom without gens":    "model: custom",
		"bad generator":          "model: custom\ngenerators: [\"Q0\"]",
		"bad hamiltonian":        "hamiltonian: \"X0 X0\"",
		"non-finite hamiltonian": "hamiltonian: \"NaN*X0\"",
		"odd trotter order":      "evolution:\n  order: 3",
		"negative time":          "evolution:\n  times: [-1]",
		"unknown method":         "optimizer:\n  method: adam",
		"zero restarts":          "sweep:\n  restarts: 0",
		"negative seed index":    "seed_index: -1",
	} {
		_, err := config.Parse([]byte(src))
		assert.ErrorIs(t, err, config.ErrInvalid, name)
	}

	_, err := config.Parse([]byte("wires: [1"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, config.ErrInvalid)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("wires: 3\n"), 0o600))
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Wires)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
