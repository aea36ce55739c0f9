package conanrecipe

import (
	"errors"
	"log/slog"
	"strings"
)

// Option configures an evaluation.
type Option func(*evalConfig) error

// evalConfig holds the immutable inputs of one evaluation pass.
type evalConfig struct {
	overrideVersion string
	buildOptions    []BuildOption
	table           []RequirementSpec

	// logger is the structured logger for debug/info output.
	// If nil, logging is disabled (silent mode).
	logger *slog.Logger
}

// WithOverrideVersion replaces the version parsed from the configuration
// source. Empty or whitespace-only values are ignored.
func WithOverrideVersion(version string) Option {
	return func(c *evalConfig) error {
		c.overrideVersion = version
		return nil
	}
}

// WithBuildOption adds a build option in its raw key=value form, as the
// packaging pipeline passes it. Options accumulate; each one is resolved.
// Only with_test_deps is known; anything else fails the evaluation with
// ErrUnresolvedOption. A repeated with_test_deps takes the last value.
func WithBuildOption(key, value string) Option {
	return func(c *evalConfig) error {
		c.buildOptions = append(c.buildOptions, BuildOption{Key: key, Value: value})
		return nil
	}
}

// WithTestDeps sets with_test_deps.
func WithTestDeps(enabled bool) Option {
	value := "False"
	if enabled {
		value = "True"
	}
	return WithBuildOption(OptionWithTestDeps, value)
}

// WithRequirementTable replaces the recipe's requirement table.
func WithRequirementTable(table []RequirementSpec) Option {
	return func(c *evalConfig) error {
		c.table = append([]RequirementSpec(nil), table...)
		return nil
	}
}

// WithLogger sets a structured logger for evaluation diagnostics.
// If not set, logging is disabled (silent mode).
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil)).With("component", "recipe")
//	eval, err := conanrecipe.NewEvaluation(src, conanrecipe.WithLogger(logger))
func WithLogger(l *slog.Logger) Option {
	return func(c *evalConfig) error {
		c.logger = l
		return nil
	}
}

// ParseBuildOption splits a key=value option string such as
// "with_test_deps=True". A package-scoped key ("hypertrie/*:with_test_deps")
// keeps only the part after the colon.
func ParseBuildOption(s string) (BuildOption, error) {
	key, value, ok := strings.Cut(s, "=")
	if !ok {
		return BuildOption{}, &UnresolvedOptionError{Key: s}
	}
	if _, after, scoped := strings.Cut(key, ":"); scoped {
		key = after
	}
	return BuildOption{Key: strings.TrimSpace(key), Value: strings.TrimSpace(value)}, nil
}

// validate checks the configuration for logical consistency.
func (c *evalConfig) validate() error {
	if len(c.table) == 0 {
		return errors.New("requirement table must not be empty")
	}
	return nil
}

// log returns the configured logger, or a no-op logger if none was set.
func (c *evalConfig) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return slog.New(slog.DiscardHandler)
}

// newEvalConfig applies the options over the recipe defaults and validates
// the result.
func newEvalConfig(opts ...Option) (*evalConfig, error) {
	c := &evalConfig{
		table: requirementTable,
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if err := c.validate(); err != nil {
		return nil, err
	}

	return c, nil
}
