package conanrecipe

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for recipe evaluation failures. Every failure aborts the
// evaluation; none is recovered from locally.
var (
	// ErrConfigNotFound indicates the configuration source could not be read.
	ErrConfigNotFound = errors.New("configuration source not found")

	// ErrMetadataParse indicates the project(...) declaration was absent,
	// ambiguous, or malformed.
	ErrMetadataParse = errors.New("metadata parse error")

	// ErrUnresolvedOption indicates a build option carried an unexpected key or value.
	ErrUnresolvedOption = errors.New("unresolved option")

	// ErrInvalidComponentGraph indicates the declared component graph violates
	// its invariants.
	ErrInvalidComponentGraph = errors.New("invalid component graph")

	// ErrDuplicateRequirement indicates two requirements pin the same package
	// without a force override.
	ErrDuplicateRequirement = errors.New("duplicate requirement")

	// ErrAlreadyExported indicates package info was already exported for this evaluation.
	ErrAlreadyExported = errors.New("package info already exported")
)

// ConfigNotFoundError reports a configuration source that could not be read.
type ConfigNotFoundError struct {
	Path string
	Err  error
}

func (e *ConfigNotFoundError) Error() string {
	return fmt.Sprintf("%v: %s: %v", ErrConfigNotFound, e.Path, e.Err)
}

func (e *ConfigNotFoundError) Unwrap() []error {
	return []error{ErrConfigNotFound, e.Err}
}

// MetadataParseError reports why the project(...) declaration could not be used.
type MetadataParseError struct {
	// Path is the configuration source that was searched.
	Path string

	// Pattern is the pattern that failed to match.
	Pattern string

	// Matches is how many declarations were found.
	Matches int

	// Reason is a short human-readable description.
	Reason string
}

func (e *MetadataParseError) Error() string {
	return fmt.Sprintf("%v: %s: %s (pattern %s, %d match(es))", ErrMetadataParse, e.Path, e.Reason, e.Pattern, e.Matches)
}

func (e *MetadataParseError) Unwrap() error {
	return ErrMetadataParse
}

// UnresolvedOptionError reports an option key or value outside its allowed set.
type UnresolvedOptionError struct {
	Key   string
	Value string
}

func (e *UnresolvedOptionError) Error() string {
	return fmt.Sprintf("%v: %s=%q", ErrUnresolvedOption, e.Key, e.Value)
}

func (e *UnresolvedOptionError) Unwrap() error {
	return ErrUnresolvedOption
}

// InvalidComponentGraphError lists every invariant violation found in a
// component graph.
type InvalidComponentGraphError struct {
	Violations []string
}

func (e *InvalidComponentGraphError) Error() string {
	return fmt.Sprintf("%v: %s", ErrInvalidComponentGraph, strings.Join(e.Violations, "; "))
}

func (e *InvalidComponentGraphError) Unwrap() error {
	return ErrInvalidComponentGraph
}

// Kind returns the taxonomy name of a recipe error, suitable for logs and
// metric labels. Errors outside the taxonomy map to "Internal".
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrConfigNotFound):
		return "ConfigNotFound"
	case errors.Is(err, ErrMetadataParse):
		return "MetadataParseError"
	case errors.Is(err, ErrUnresolvedOption):
		return "UnresolvedOption"
	case errors.Is(err, ErrInvalidComponentGraph):
		return "InvalidComponentGraph"
	case errors.Is(err, ErrDuplicateRequirement):
		return "DuplicateRequirement"
	case errors.Is(err, ErrAlreadyExported):
		return "AlreadyExported"
	default:
		return "Internal"
	}
}
