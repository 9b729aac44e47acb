// ============================================================================
// The Last Supper - Configuration
// ============================================================================
//
// Package: internal/config
// File: config.go
// Purpose: Simulation parameters, YAML file loading and validation
//
// Parameter sources (later wins):
//   1. Built-in defaults
//   2. YAML config file (--config)
//   3. CLI flags / classic positional arguments
//
// YAML layout:
//   simulation:
//     philosophers: 5
//     time_to_die_ms: 800
//     time_to_eat_ms: 200
//     time_to_sleep_ms: 200
//     required_meals: unbounded   # or a positive integer
//   metrics:
//     enabled: false
//     port: 9090
//   log:
//     file: ""                    # JSON event log export path
//
// All validation happens here, before the simulation core starts. The core
// assumes a valid, immutable Simulation value.
//
// ============================================================================

package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Validation errors. The CLI surfaces these verbatim, so they read as user
// messages rather than internal diagnostics.
var (
	ErrPhilosopherCount = errors.New("philosopher count must be at least 1")
	ErrDurationRange    = errors.New("time_to_die, time_to_eat and time_to_sleep must be positive")
	ErrRequiredMeals    = errors.New("required_meals must be a positive integer or \"unbounded\"")
)

// MealQuota is the per-philosopher meal requirement. Any non-positive value
// means the run is unbounded and only ends by starvation.
type MealQuota int

// Unbounded marks a run with no meal requirement.
const Unbounded MealQuota = -1

// Bounded reports whether the quota actually limits the run.
func (q MealQuota) Bounded() bool {
	return q > 0
}

// UnmarshalYAML accepts either a positive integer or the keyword "unbounded".
func (q *MealQuota) UnmarshalYAML(node *yaml.Node) error {
	if node.Value == "unbounded" || node.Value == "" {
		*q = Unbounded
		return nil
	}
	var n int
	if err := node.Decode(&n); err != nil {
		return fmt.Errorf("%w: %q", ErrRequiredMeals, node.Value)
	}
	*q = MealQuota(n)
	return nil
}

// Simulation holds the core run parameters. It is immutable once validated.
type Simulation struct {
	Philosophers  int       `yaml:"philosophers" json:"philosophers"`
	TimeToDieMS   int64     `yaml:"time_to_die_ms" json:"time_to_die_ms"`
	TimeToEatMS   int64     `yaml:"time_to_eat_ms" json:"time_to_eat_ms"`
	TimeToSleepMS int64     `yaml:"time_to_sleep_ms" json:"time_to_sleep_ms"`
	RequiredMeals MealQuota `yaml:"required_meals" json:"required_meals"`
}

// Validate rejects parameter combinations the core is not defined for.
func (s Simulation) Validate() error {
	if s.Philosophers < 1 {
		return fmt.Errorf("%w: got %d", ErrPhilosopherCount, s.Philosophers)
	}
	if s.TimeToDieMS <= 0 || s.TimeToEatMS <= 0 || s.TimeToSleepMS <= 0 {
		return fmt.Errorf("%w: got die=%dms eat=%dms sleep=%dms",
			ErrDurationRange, s.TimeToDieMS, s.TimeToEatMS, s.TimeToSleepMS)
	}
	if s.RequiredMeals != Unbounded && s.RequiredMeals < 1 {
		return fmt.Errorf("%w: got %d", ErrRequiredMeals, int(s.RequiredMeals))
	}
	return nil
}

// Config is the complete driver configuration.
type Config struct {
	Simulation Simulation `yaml:"simulation"`

	Metrics struct {
		Enabled bool `yaml:"enabled"`
		Port    int  `yaml:"port"`
	} `yaml:"metrics"`

	Log struct {
		File string `yaml:"file"` // empty disables the JSON export
	} `yaml:"log"`
}

// Default returns the built-in configuration the CLI starts from.
func Default() Config {
	var cfg Config
	cfg.Simulation = Simulation{
		Philosophers:  5,
		TimeToDieMS:   800,
		TimeToEatMS:   200,
		TimeToSleepMS: 200,
		RequiredMeals: Unbounded,
	}
	cfg.Metrics.Port = 9090
	return cfg
}

// Load reads and parses a YAML config file. A required_meals field that is
// absent or zero is normalized to Unbounded.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	if cfg.Simulation.RequiredMeals == 0 {
		cfg.Simulation.RequiredMeals = Unbounded
	}

	return &cfg, nil
}
