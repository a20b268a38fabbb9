package config

import (
	"github.com/mvp-joe/pytestgen/internal/candidate"
	"github.com/mvp-joe/pytestgen/internal/strategy"
)

// Config represents the complete pytestgen configuration.
// It can be loaded from .pytestgen/config.yml with environment variable overrides.
type Config struct {
	Generation GenerationConfig `yaml:"generation" mapstructure:"generation"`
	Paths      PathsConfig      `yaml:"paths" mapstructure:"paths"`
	Dedupe     DedupeConfig     `yaml:"dedupe" mapstructure:"dedupe"`
	Output     OutputConfig     `yaml:"output" mapstructure:"output"`
}

// GenerationConfig selects the ensemble the orchestrator runs. It is passed
// explicitly to whoever drives generation; nothing here is global.
type GenerationConfig struct {
	Strategies   []string  `yaml:"strategies" mapstructure:"strategies"`     // e.g., ["extend_coverage", "corner_cases"]
	Temperatures []float64 `yaml:"temperatures" mapstructure:"temperatures"` // one run per strategy and temperature
}

// PathsConfig defines which files hold generated output and which to ignore.
type PathsConfig struct {
	Generated []string `yaml:"generated" mapstructure:"generated"` // glob patterns for generated output files
	Ignore    []string `yaml:"ignore" mapstructure:"ignore"`       // glob patterns to ignore
}

// DedupeConfig controls duplicate suppression across ensemble runs.
type DedupeConfig struct {
	Enabled  bool `yaml:"enabled" mapstructure:"enabled"`
	Capacity int  `yaml:"capacity" mapstructure:"capacity"` // distinct normalized forms remembered
}

// OutputConfig controls how the CLI renders results.
type OutputConfig struct {
	Format string `yaml:"format" mapstructure:"format"` // "text", "json" or "yaml"
	Color  bool   `yaml:"color" mapstructure:"color"`
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Generation: GenerationConfig{
			Strategies:   strategy.Names(),
			Temperatures: []float64{0.0, 0.4},
		},
		Paths: PathsConfig{
			Generated: []string{
				"**/*.py",
				"**/*.txt",
			},
			Ignore: []string{
				".git/**",
				".pytestgen/**",
				"__pycache__/**",
				".venv/**",
				"*.pyc",
			},
		},
		Dedupe: DedupeConfig{
			Enabled:  true,
			Capacity: candidate.DefaultDedupeCapacity,
		},
		Output: OutputConfig{
			Format: "text",
			Color:  true,
		},
	}
}
