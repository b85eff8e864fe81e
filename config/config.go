// Package config provides configuration loading for coordgame.
// It supports loading from YAML files and environment variables.
package config

import (
	"fmt"
	"math"
	"os"
	"runtime"
	"strconv"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Config contains all coordgame settings.
type Config struct {
	Store      StoreConfig      `yaml:"store"`
	Experiment ExperimentConfig `yaml:"experiment"`
	Sampling   SamplingConfig   `yaml:"sampling"`
	Solver     SolverConfig     `yaml:"solver"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// StoreConfig locates the artifact database.
type StoreConfig struct {
	// Path is the SQLite database file.
	Path string `yaml:"path"`
}

// ExperimentConfig is the configuration grid swept by the pipeline.
type ExperimentConfig struct {
	// Bonuses are the agreement bonuses c.
	Bonuses []float64 `yaml:"bonuses"`

	// Localities are the ego-network radii L; -1 means the full network.
	Localities []int `yaml:"localities"`

	// Workers bounds concurrent sub-solves. 0 means GOMAXPROCS.
	Workers int `yaml:"workers"`
}

// SamplingConfig describes the reward distribution and set counts.
type SamplingConfig struct {
	Instances      int     `yaml:"instances"`
	SolveScenarios int     `yaml:"solve_scenarios"`
	EvalScenarios  int     `yaml:"eval_scenarios"`
	Low            float64 `yaml:"low"`
	High           float64 `yaml:"high"`
	Seed           uint64  `yaml:"seed"`
}

// SolverConfig tunes the integer-programming backend.
type SolverConfig struct {
	Tolerance float64 `yaml:"tolerance"`

	// NodeLimit caps branch-and-bound nodes; 0 disables the cap.
	NodeLimit int `yaml:"node_limit"`

	// Verbose routes backend progress to the logger.
	Verbose bool `yaml:"verbose"`
}

// LoggingConfig configures log verbosity.
type LoggingConfig struct {
	// Level is a zerolog level name: "trace", "debug", "info", "warn" or "error".
	Level string `yaml:"level"`
}

// Default returns the configuration of the reference experiment.
func Default() *Config {
	return &Config{
		Store: StoreConfig{Path: "data/coordgame.db"},
		Experiment: ExperimentConfig{
			Bonuses:    []float64{0.1, 0.2, 0.3, 0.4, 0.5},
			Localities: []int{0, 2, 4, 6, -1},
			Workers:    0,
		},
		Sampling: SamplingConfig{
			Instances:      10,
			SolveScenarios: 100,
			EvalScenarios:  30,
			Low:            -1,
			High:           1,
			Seed:           123,
		},
		Solver: SolverConfig{
			Tolerance: 1e-9,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads path over the defaults and applies environment overrides.
// An empty path yields the defaults plus overrides.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnvOverrides applies COORDGAME_* environment variables.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("COORDGAME_STORE_PATH"); v != "" {
		cfg.Store.Path = v
	}
	if v := os.Getenv("COORDGAME_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("COORDGAME_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("COORDGAME_WORKERS: %w", err)
		}
		cfg.Experiment.Workers = n
	}
	return nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Store.Path == "" {
		return fmt.Errorf("store.path is required")
	}
	if len(c.Experiment.Bonuses) == 0 {
		return fmt.Errorf("experiment.bonuses must not be empty")
	}
	for _, b := range c.Experiment.Bonuses {
		if b < 0 || math.IsNaN(b) || math.IsInf(b, 0) {
			return fmt.Errorf("experiment.bonuses: invalid bonus %v", b)
		}
	}
	if len(c.Experiment.Localities) == 0 {
		return fmt.Errorf("experiment.localities must not be empty")
	}
	for _, l := range c.Experiment.Localities {
		if l < -1 {
			return fmt.Errorf("experiment.localities: invalid locality %d (use -1 for the full network)", l)
		}
	}
	if c.Experiment.Workers < 0 {
		return fmt.Errorf("experiment.workers must be non-negative, got %d", c.Experiment.Workers)
	}

	s := c.Sampling
	if s.Instances <= 0 || s.SolveScenarios <= 0 || s.EvalScenarios <= 0 {
		return fmt.Errorf("sampling counts must be positive, got %d/%d/%d",
			s.Instances, s.SolveScenarios, s.EvalScenarios)
	}
	if !(s.Low < s.High) {
		return fmt.Errorf("sampling.low must be below sampling.high, got [%v, %v)", s.Low, s.High)
	}

	if c.Solver.Tolerance <= 0 {
		return fmt.Errorf("solver.tolerance must be positive, got %v", c.Solver.Tolerance)
	}
	if c.Solver.NodeLimit < 0 {
		return fmt.Errorf("solver.node_limit must be non-negative, got %d", c.Solver.NodeLimit)
	}

	if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	return nil
}

// EffectiveWorkers resolves a zero worker count to GOMAXPROCS.
func (c *Config) EffectiveWorkers() int {
	if c.Experiment.Workers > 0 {
		return c.Experiment.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// CreateLogger creates a console zerolog logger at the configured level.
func (c *Config) CreateLogger() zerolog.Logger {
	level, err := zerolog.ParseLevel(c.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "15:04:05",
	}).Level(level).With().Timestamp().Str("service", "coordgame").Logger()
}
