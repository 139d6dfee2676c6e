package config

import (
	"errors"
	"fmt"
	"os"

	"twenty48/meta"

	"gopkg.in/yaml.v3"
)

// Config holds the options of a run. Zero Seed draws a fresh seed, zero Games
// plays the default count of the chosen mode.
type Config struct {
	Agent       string  `yaml:"agent"`
	Trials      int     `yaml:"trials"`
	Goroutines  int     `yaml:"goroutines"`
	Temperature float64 `yaml:"temperature"`
	Seed        uint64  `yaml:"seed"`
	Games       int     `yaml:"games"`
	MaxTurns    int     `yaml:"max_turns"`
	MetricsDir  string  `yaml:"metrics_dir,omitempty"`
	Serve       string  `yaml:"serve,omitempty"`
	Experiment  string  `yaml:"experiment,omitempty"`
	Quiet       bool    `yaml:"quiet"`
	LogLevel    string  `yaml:"log_level"`
	TraceRatio  float64 `yaml:"trace_ratio"` // Fraction of games traced when OTEL is configured
}

func Default() Config {
	return Config{
		Agent:       "mc",
		Trials:      meta.TRIALS_PER_MOVE,
		Goroutines:  meta.GO_ROUTINES,
		Temperature: 1.0,
		MaxTurns:    meta.MAX_TURNS,
		LogLevel:    "info",
		TraceRatio:  1.0,
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file keep
// their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	content, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var errs []error
	if c.Trials <= 0 {
		errs = append(errs, fmt.Errorf("trials must be positive, got %d", c.Trials))
	}
	if c.Goroutines <= 0 {
		errs = append(errs, fmt.Errorf("goroutines must be positive, got %d", c.Goroutines))
	}
	if c.Games < 0 {
		errs = append(errs, fmt.Errorf("games must not be negative, got %d", c.Games))
	}
	if c.MaxTurns < 0 {
		errs = append(errs, fmt.Errorf("max_turns must not be negative, got %d", c.MaxTurns))
	}
	if c.Temperature <= 0 {
		errs = append(errs, fmt.Errorf("temperature must be positive, got %g", c.Temperature))
	}
	if c.TraceRatio < 0 || c.TraceRatio > 1 {
		errs = append(errs, fmt.Errorf("trace_ratio must be within [0, 1], got %g", c.TraceRatio))
	}
	return errors.Join(errs...)
}
