package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gobwas/glob"
	"github.com/mvp-joe/pytestgen/internal/strategy"
)

var (
	// ErrEmptyStrategies indicates no generation strategy is configured
	ErrEmptyStrategies = errors.New("empty generation strategies")

	// ErrInvalidStrategy indicates an unknown generation strategy
	ErrInvalidStrategy = errors.New("invalid generation strategy")

	// ErrInvalidTemperature indicates a sampling temperature out of range
	ErrInvalidTemperature = errors.New("invalid temperature")

	// ErrInvalidPattern indicates a glob pattern that does not compile
	ErrInvalidPattern = errors.New("invalid path pattern")

	// ErrInvalidCapacity indicates a non-positive dedupe capacity
	ErrInvalidCapacity = errors.New("invalid dedupe capacity")

	// ErrInvalidFormat indicates an unsupported output format
	ErrInvalidFormat = errors.New("invalid output format")
)

// MaxTemperature is the highest sampling temperature accepted.
const MaxTemperature = 2.0

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if err := validateGeneration(&cfg.Generation); err != nil {
		errs = append(errs, err)
	}

	if err := validatePaths(&cfg.Paths); err != nil {
		errs = append(errs, err)
	}

	if err := validateDedupe(&cfg.Dedupe); err != nil {
		errs = append(errs, err)
	}

	if err := validateOutput(&cfg.Output); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateGeneration(cfg *GenerationConfig) error {
	var errs []error

	if len(cfg.Strategies) == 0 {
		errs = append(errs, fmt.Errorf("%w: at least one strategy required", ErrEmptyStrategies))
	}

	for _, name := range cfg.Strategies {
		if _, err := strategy.Lookup(name); err != nil {
			errs = append(errs, fmt.Errorf("%w: %s (valid: %s)", ErrInvalidStrategy, name, strings.Join(strategy.Names(), ", ")))
		}
	}

	for _, temp := range cfg.Temperatures {
		if temp < 0 || temp > MaxTemperature {
			errs = append(errs, fmt.Errorf("%w: must be between 0 and %.1f, got %.2f", ErrInvalidTemperature, MaxTemperature, temp))
		}
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validatePaths(cfg *PathsConfig) error {
	var errs []error

	// Empty pattern lists are allowed; discovery then matches nothing or ignores nothing
	for _, pattern := range append(append([]string{}, cfg.Generated...), cfg.Ignore...) {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			errs = append(errs, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, pattern, err))
		}
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateDedupe(cfg *DedupeConfig) error {
	if cfg.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidCapacity, cfg.Capacity)
	}
	return nil
}

func validateOutput(cfg *OutputConfig) error {
	switch strings.ToLower(cfg.Format) {
	case "text", "json", "yaml":
		return nil
	default:
		return fmt.Errorf("%w: must be 'text', 'json' or 'yaml', got '%s'", ErrInvalidFormat, cfg.Format)
	}
}

// joinErrors combines multiple errors into a single error with clear formatting.
// The result still matches every wrapped sentinel with errors.Is.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	return &multiError{errs: errs}
}

type multiError struct {
	errs []error
}

func (m *multiError) Error() string {
	msgs := make([]string, 0, len(m.errs))
	for _, err := range m.errs {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

func (m *multiError) Unwrap() []error {
	return m.errs
}
