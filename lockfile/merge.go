package lockfile

import (
	"errors"
	"fmt"
)

// ErrConflict is returned by Merge under MergeErrorOnConflict when both
// lockfiles pin the same package at different references.
var ErrConflict = errors.New("lockfile conflict")

// MergeStrategy defines how to handle conflicts when merging lockfiles.
type MergeStrategy int

const (
	// MergePreferExisting keeps existing values on conflict.
	MergePreferExisting MergeStrategy = iota

	// MergePreferNew overwrites with new values on conflict.
	MergePreferNew

	// MergeErrorOnConflict returns an error if values differ.
	MergeErrorOnConflict
)

// String returns the strategy name as accepted by ParseMergeStrategy.
func (s MergeStrategy) String() string {
	switch s {
	case MergePreferExisting:
		return "existing"
	case MergePreferNew:
		return "new"
	case MergeErrorOnConflict:
		return "error"
	default:
		return fmt.Sprintf("MergeStrategy(%d)", int(s))
	}
}

// ParseMergeStrategy parses "existing", "new" or "error".
func ParseMergeStrategy(s string) (MergeStrategy, error) {
	switch s {
	case "existing":
		return MergePreferExisting, nil
	case "new":
		return MergePreferNew, nil
	case "error":
		return MergeErrorOnConflict, nil
	default:
		return 0, fmt.Errorf("unknown merge strategy %q (want existing, new or error)", s)
	}
}

// Merge combines another lockfile into this one. Entries are matched by
// package name. On error l is left unchanged.
func (l *Lockfile) Merge(other *Lockfile, strategy MergeStrategy) error {
	if other == nil {
		return nil
	}

	requires, err := mergeEntries(l.Requires, other.Requires, strategy)
	if err != nil {
		return fmt.Errorf("failed to merge requires: %w", err)
	}
	buildRequires, err := mergeEntries(l.BuildRequires, other.BuildRequires, strategy)
	if err != nil {
		return fmt.Errorf("failed to merge build_requires: %w", err)
	}
	pythonRequires, err := mergeEntries(l.PythonRequires, other.PythonRequires, strategy)
	if err != nil {
		return fmt.Errorf("failed to merge python_requires: %w", err)
	}

	l.Requires = requires
	l.BuildRequires = buildRequires
	l.PythonRequires = pythonRequires
	return nil
}

func mergeEntries(existing, incoming []string, strategy MergeStrategy) ([]string, error) {
	out := append([]string{}, existing...)
	for _, entry := range incoming {
		idx := -1
		for i, e := range out {
			if entryName(e) == entryName(entry) {
				idx = i
				break
			}
		}
		if idx < 0 {
			out = insert(out, entry)
			continue
		}
		if out[idx] == entry {
			continue
		}

		// Conflict handling
		switch strategy {
		case MergePreferExisting:
			// Keep existing
		case MergePreferNew:
			out = append(out[:idx], out[idx+1:]...)
			out = insert(out, entry)
		case MergeErrorOnConflict:
			return nil, fmt.Errorf("%w: %s vs %s", ErrConflict, out[idx], entry)
		}
	}
	return out, nil
}
