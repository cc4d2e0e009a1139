// Package config defines pipeline configuration and loading hooks.
//
// Conventions:
// - Provide New(...) to build a Config with defaults.
// - Validation fails fast, before any sampling starts.
// - External errors are wrapped via this package's sentinels.
package config

import (
	"context"
	"fmt"
)

// Default run parameters.
const (
	defaultPlays        = 2500
	defaultSeed         = 42
	defaultPressureRate = 0.35
	defaultMinGroup     = 10
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Plays is the number of synthetic plays to generate.
	Plays int `koanf:"plays"`

	// Seed drives the random source; the same seed reproduces the run.
	Seed uint64 `koanf:"seed"`

	// PressureRate is the target share of plays with pressure applied.
	PressureRate float64 `koanf:"pressure_rate"`

	// MinGroupSize drops smaller groups from the high-value breakdown.
	MinGroupSize int `koanf:"min_group_size"`

	// OutputDir receives every artifact of the run.
	OutputDir string `koanf:"output_dir"`

	// Artifact file names, created under OutputDir.
	CSVFile     string `koanf:"csv_file"`
	ChartFile   string `koanf:"chart_file"`
	MetricsFile string `koanf:"metrics_file"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention; it is reserved for future use.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:     "info",
		Plays:        defaultPlays,
		Seed:         defaultSeed,
		PressureRate: defaultPressureRate,
		MinGroupSize: defaultMinGroup,
		OutputDir:    ".",
		CSVFile:      "qb_pressure_data.csv",
		ChartFile:    "qb_pressure_visualizations.png",
		MetricsFile:  "qb_pressure_run.prom",
	}
}

// Validate fails fast on malformed configuration.
func (c *Config) Validate() error {
	if c.Plays < 0 {
		return fmt.Errorf("%w: plays must not be negative, got %d", ErrInvalidConfig, c.Plays)
	}
	if c.PressureRate < 0 || c.PressureRate > 1 {
		return fmt.Errorf("%w: pressure_rate %.3f outside [0,1]", ErrInvalidConfig, c.PressureRate)
	}
	if c.MinGroupSize < 0 {
		return fmt.Errorf("%w: min_group_size must not be negative", ErrInvalidConfig)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("%w: output_dir must not be empty", ErrInvalidConfig)
	}
	for name, v := range map[string]string{
		"csv_file":     c.CSVFile,
		"chart_file":   c.ChartFile,
		"metrics_file": c.MetricsFile,
	} {
		if v == "" {
			return fmt.Errorf("%w: %s must not be empty", ErrInvalidConfig, name)
		}
	}
	return nil
}
