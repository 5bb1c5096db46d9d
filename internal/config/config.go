// SPDX-License-Identifier: MIT

// Package config loads the YAML run configuration of the kak command.
//
// A file only needs to name what differs from Default; every other field keeps
// its default. The decoded configuration is checked with validator struct tags
// before it is returned.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/erikrecio/qml/models"
	"github.com/erikrecio/qml/pauli"
)

// Model names accepted in Config.Model.
const (
	ModelHeisenberg = "heisenberg"
	ModelTFIM       = "tfim"
	ModelCustom     = "custom"
)

// ErrInvalid is returned when a configuration fails validation.
var ErrInvalid = errors.New("config: invalid configuration")

// Config is one decomposition run.
type Config struct {
	// Model selects the generator set; custom reads Generators.
	Model string `yaml:"model" validate:"required,oneof=heisenberg tfim custom"`
	// Wires is the chain length, also the size of the wire order 0..Wires-1.
	Wires int `yaml:"wires" validate:"min=2,max=10"`
	// Generators are Pauli sentences in the pauli.Parse syntax.
	Generators []string `yaml:"generators" validate:"required_if=Model custom,dive,required"`
	// Hamiltonian defaults to the unweighted sum of the generators.
	Hamiltonian string `yaml:"hamiltonian"`
	// SeedIndex picks the first element of the Cartan subalgebra from m.
	SeedIndex int `yaml:"seed_index" validate:"gte=0"`

	Closure   ClosureConfig   `yaml:"closure"`
	Optimizer OptimizerConfig `yaml:"optimizer"`
	Sweep     SweepConfig     `yaml:"sweep"`
	Evolution EvolutionConfig `yaml:"evolution"`
}

// ClosureConfig bounds the Lie closure.
type ClosureConfig struct {
	MaxDim    int     `yaml:"max_dim" validate:"min=1"`
	Tolerance float64 `yaml:"tolerance" validate:"gt=0"`
}

// OptimizerConfig maps onto optimize options.
type OptimizerConfig struct {
	Method       string  `yaml:"method" validate:"oneof=gd lbfgs"`
	Epochs       int     `yaml:"epochs" validate:"min=1"`
	LearningRate float64 `yaml:"learning_rate" validate:"gt=0"`
	Memory       int     `yaml:"memory" validate:"min=1"`
	Tolerance    float64 `yaml:"tolerance" validate:"gte=0"`
}

// SweepConfig controls restarts; Restarts 1 runs the driver once from all ones.
type SweepConfig struct {
	Restarts    int     `yaml:"restarts" validate:"min=1"`
	Sigma       float64 `yaml:"sigma" validate:"gte=0"`
	Concurrency int     `yaml:"concurrency" validate:"gte=0"` // 0 = GOMAXPROCS
}

// EvolutionConfig lists the times at which KhK and Trotter evolution are compared.
type EvolutionConfig struct {
	Times []float64 `yaml:"times" validate:"dive,gte=0"`
	Steps int       `yaml:"steps" validate:"min=1"`
	Order int       `yaml:"order" validate:"trotter_order"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("trotter_order", validateTrotterOrder)
}

// validateTrotterOrder accepts 1 and positive even orders.
func validateTrotterOrder(fl validator.FieldLevel) bool {
	o := fl.Field().Int()

	return o == 1 || (o > 0 && o%2 == 0)
}

// Default returns the 4-wire Heisenberg run.
func Default() Config {
	return Config{
		Model: ModelHeisenberg,
		Wires: 4,
		Closure: ClosureConfig{
			MaxDim:    4096,
			Tolerance: 1e-8,
		},
		Optimizer: OptimizerConfig{
			Method:       "lbfgs",
			Epochs:       500,
			LearningRate: 0.1,
			Memory:       100,
		},
		Sweep: SweepConfig{
			Restarts: 1,
			Sigma:    0.1,
		},
		Evolution: EvolutionConfig{
			Times: []float64{0.5, 1, 2},
			Steps: 5,
			Order: 4,
		},
	}
}

// Parse decodes YAML over Default and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Load reads and parses the file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return Parse(data)
}

// Validate checks the struct tags and that every operator string parses.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := c.GeneratorSet(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := c.Target(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	return nil
}

// WireOrder returns 0..Wires-1.
func (c *Config) WireOrder() []int { return models.Wires(c.Wires) }

// GeneratorSet builds the generators named by Model.
func (c *Config) GeneratorSet() ([]pauli.Sentence, error) {
	switch c.Model {
	case ModelHeisenberg:
		return models.Heisenberg(c.Wires)
	case ModelTFIM:
		return models.TransverseIsing(c.Wires)
	}
	gens := make([]pauli.Sentence, len(c.Generators))
	for i, src := range c.Generators {
		s, err := pauli.Parse(src)
		if err != nil {
			return nil, fmt.Errorf("generators[%d]: %w", i, err)
		}
		gens[i] = s
	}

	return gens, nil
}

// Target returns the Hamiltonian to decompose.
func (c *Config) Target() (pauli.Sentence, error) {
	if c.Hamiltonian != "" {
		s, err := pauli.Parse(c.Hamiltonian)
		if err != nil {
			return pauli.Sentence{}, fmt.Errorf("hamiltonian: %w", err)
		}
		return s, nil
	}
	gens, err := c.GeneratorSet()
	if err != nil {
		return pauli.Sentence{}, err
	}

	return models.Hamiltonian(gens), nil
}
