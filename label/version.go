package label

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Version represents a validated package version.
//
// Conan accepts more than strict semver: two-part versions ("2.1"), four-part
// versions ("1.2.3.4") and date-like tags are all common on ConanCenter.
// Versions that semver can coerce are kept as a *semver.Version and compared
// with semver precedence; anything else falls back to a dotted, part-wise
// comparison.
type Version struct {
	raw    string
	semver *semver.Version
}

// looseVersionRegex matches any non-semver version token Conan would accept.
var looseVersionRegex = regexp.MustCompile(`^[a-zA-Z0-9_][a-zA-Z0-9_+.-]*$`)

// NewVersion creates a validated Version from a string.
func NewVersion(s string) (Version, error) {
	if s == "" {
		return Version{}, nil // Empty version is valid for some contexts
	}

	if sv, err := semver.NewVersion(s); err == nil {
		return Version{raw: s, semver: sv}, nil
	}

	if !looseVersionRegex.MatchString(s) {
		return Version{}, fmt.Errorf("invalid version %q: must follow version format", s)
	}
	return Version{raw: s}, nil
}

// MustVersion creates a Version or panics. Use only for constants/tests.
func MustVersion(s string) Version {
	v, err := NewVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the version string exactly as declared.
func (v Version) String() string {
	return v.raw
}

// IsEmpty returns true if this is a zero-value Version.
func (v Version) IsEmpty() bool {
	return v.raw == ""
}

// IsSemver reports whether the version could be interpreted as semver.
func (v Version) IsSemver() bool {
	return v.semver != nil
}

// IsStrict reports whether the version is a full MAJOR.MINOR.PATCH semver,
// with optional pre-release and build metadata.
func (v Version) IsStrict() bool {
	if v.raw == "" {
		return false
	}
	_, err := semver.StrictNewVersion(v.raw)
	return err == nil
}

// Prerelease returns the pre-release identifier (e.g., "rc1").
func (v Version) Prerelease() string {
	if v.semver == nil {
		return ""
	}
	return v.semver.Prerelease()
}

// IsPrerelease returns true if this is a pre-release version.
func (v Version) IsPrerelease() bool {
	return v.Prerelease() != ""
}

// Compare compares two versions.
// Returns -1 if v < other, 0 if v == other, 1 if v > other.
func (v Version) Compare(other Version) int {
	if v.semver != nil && other.semver != nil {
		return v.semver.Compare(other.semver)
	}
	return compareDotted(v.raw, other.raw)
}

// Less returns true if v < other.
func (v Version) Less(other Version) bool {
	return v.Compare(other) < 0
}

// compareDotted compares loose versions like "1.2.3.4" or "2023.01"
// part by part; numeric parts sort before alphanumeric ones.
func compareDotted(a, b string) int {
	aParts := strings.Split(a, ".")
	bParts := strings.Split(b, ".")

	for i := range min(len(aParts), len(bParts)) {
		aNum, aIsNum := tryParseInt(aParts[i])
		bNum, bIsNum := tryParseInt(bParts[i])

		if aIsNum && bIsNum {
			if aNum != bNum {
				return intCompare(aNum, bNum)
			}
		} else if aIsNum {
			return -1 // Numeric < alphanumeric
		} else if bIsNum {
			return 1
		} else {
			if c := strings.Compare(aParts[i], bParts[i]); c != 0 {
				return c
			}
		}
	}

	return intCompare(len(aParts), len(bParts))
}

func intCompare(a, b int) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

func tryParseInt(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	return n, err == nil
}
