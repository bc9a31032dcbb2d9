package constraint

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SolverConfig parameterizes one run of the constraint solver. It
// follows the same YAML-load, range-validate discipline used
// throughout this module's configuration types.
type SolverConfig struct {
	// UnconsumedPenalty is subtracted from the objective for every
	// block left unconsumed by the selected candidate set. Required:
	// spec.md leaves the exact weighting as an open question, and this
	// module resolves it by refusing a zero value rather than silently
	// defaulting (see DESIGN.md open-question decisions).
	UnconsumedPenalty float64 `yaml:"unconsumedPenalty" json:"unconsumedPenalty"`

	// BuildRetryBudget bounds how many times the solver re-invokes
	// Solve after a BuildFailed candidate is excluded. A loaded YAML
	// file that omits it gets 3.
	BuildRetryBudget int `yaml:"buildRetryBudget" json:"buildRetryBudget"`

	// PerPageTimeoutMillis bounds the branch-and-bound search per page.
	// On timeout the best solution found so far is returned along with
	// a warning.
	PerPageTimeoutMillis int `yaml:"perPageTimeoutMillis" json:"perPageTimeoutMillis"`
}

// LoadSolverConfig reads and validates a YAML configuration file.
func LoadSolverConfig(path string) (*SolverConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading solver config file: %w", err)
	}
	return LoadSolverConfigFromBytes(data)
}

// LoadSolverConfigFromBytes parses YAML configuration from a byte
// slice. Useful for testing and programmatic config generation.
func LoadSolverConfigFromBytes(data []byte) (*SolverConfig, error) {
	cfg := SolverConfig{BuildRetryBudget: 3}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate checks all SolverConfig constraints.
func (c *SolverConfig) Validate() error {
	if c.UnconsumedPenalty <= 0 {
		return errors.New("unconsumedPenalty must be a positive, explicitly-set value")
	}
	if c.BuildRetryBudget < 0 {
		return fmt.Errorf("buildRetryBudget must be >= 0, got %d", c.BuildRetryBudget)
	}
	if c.PerPageTimeoutMillis < 0 {
		return fmt.Errorf("perPageTimeoutMillis must be >= 0, got %d", c.PerPageTimeoutMillis)
	}
	return nil
}

// ToYAML serializes the config to YAML bytes.
func (c *SolverConfig) ToYAML() ([]byte, error) {
	return yaml.Marshal(c)
}
