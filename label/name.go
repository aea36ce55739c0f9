// Package label provides strongly-typed, validated identifiers for Conan packages.
//
// All types in this package are immutable and validate their values at construction time.
// Zero values are generally invalid - use the constructor functions (NewPackageName,
// NewVersion, ParseReference) to create valid instances.
//
// # Types
//
// The main types are:
//   - [PackageName]: A validated package name (e.g., "dice-hash")
//   - [Version]: A package version, semver-shaped or loose (e.g., "0.4.0", "2.1")
//   - [Reference]: A full requirement reference (e.g., "boost/1.81.0@conan/stable")
//
// # Validation Patterns
//
// Package names must match: [a-z0-9_][a-z0-9_+.-]{1,100}
// User and channel qualifiers must match: [a-zA-Z0-9_][a-zA-Z0-9_+.-]{0,50}
package label

import (
	"fmt"
	"regexp"
)

// PackageName represents a validated Conan package name.
type PackageName struct {
	name string
}

var packageNameRegex = regexp.MustCompile(`^[a-z0-9_][a-z0-9_+.-]{1,100}$`)

// NewPackageName creates a validated PackageName from a string.
func NewPackageName(name string) (PackageName, error) {
	if name == "" {
		return PackageName{}, fmt.Errorf("package name cannot be empty")
	}
	if !packageNameRegex.MatchString(name) {
		return PackageName{}, fmt.Errorf("invalid package name %q: must match pattern [a-z0-9_][a-z0-9_+.-]{1,100}", name)
	}
	return PackageName{name: name}, nil
}

// MustPackageName creates a PackageName or panics. Use only for constants/tests.
func MustPackageName(name string) PackageName {
	n, err := NewPackageName(name)
	if err != nil {
		panic(err)
	}
	return n
}

// String returns the package name string.
func (n PackageName) String() string {
	return n.name
}

// IsEmpty returns true if this is a zero-value PackageName.
func (n PackageName) IsEmpty() bool {
	return n.name == ""
}
