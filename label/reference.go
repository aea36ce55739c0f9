package label

import (
	"fmt"
	"regexp"
	"strings"
)

// Reference is a requirement reference of the form name/version[@user/channel].
type Reference struct {
	name    PackageName
	version Version
	user    string
	channel string
}

var qualifierRegex = regexp.MustCompile(`^[a-zA-Z0-9_][a-zA-Z0-9_+.-]{0,50}$`)

// ParseReference parses and validates a reference string.
func ParseReference(s string) (Reference, error) {
	nameVersion, qualifier, hasQualifier := strings.Cut(s, "@")

	name, version, ok := strings.Cut(nameVersion, "/")
	if !ok {
		return Reference{}, fmt.Errorf("invalid reference %q: missing /version", s)
	}

	n, err := NewPackageName(name)
	if err != nil {
		return Reference{}, fmt.Errorf("invalid reference %q: %w", s, err)
	}
	if version == "" {
		return Reference{}, fmt.Errorf("invalid reference %q: version cannot be empty", s)
	}
	v, err := NewVersion(version)
	if err != nil {
		return Reference{}, fmt.Errorf("invalid reference %q: %w", s, err)
	}

	ref := Reference{name: n, version: v}
	if !hasQualifier {
		return ref, nil
	}

	user, channel, ok := strings.Cut(qualifier, "/")
	if !ok {
		return Reference{}, fmt.Errorf("invalid reference %q: qualifier must be user/channel", s)
	}
	if !qualifierRegex.MatchString(user) {
		return Reference{}, fmt.Errorf("invalid reference %q: bad user %q", s, user)
	}
	if !qualifierRegex.MatchString(channel) {
		return Reference{}, fmt.Errorf("invalid reference %q: bad channel %q", s, channel)
	}
	ref.user = user
	ref.channel = channel
	return ref, nil
}

// MustReference parses a Reference or panics. Use only for constants/tests.
func MustReference(s string) Reference {
	r, err := ParseReference(s)
	if err != nil {
		panic(err)
	}
	return r
}

// String returns the canonical reference string.
func (r Reference) String() string {
	if r.name.IsEmpty() {
		return ""
	}
	s := r.name.String() + "/" + r.version.String()
	if r.user != "" {
		s += "@" + r.user + "/" + r.channel
	}
	return s
}

// Name returns the package name.
func (r Reference) Name() PackageName {
	return r.name
}

// Version returns the pinned version.
func (r Reference) Version() Version {
	return r.version
}

// User returns the publisher qualifier, if any.
func (r Reference) User() string {
	return r.user
}

// Channel returns the channel qualifier, if any.
func (r Reference) Channel() string {
	return r.channel
}

// IsEmpty returns true if this is a zero-value Reference.
func (r Reference) IsEmpty() bool {
	return r.name.IsEmpty()
}

// MarshalText implements encoding.TextMarshaler so references render as
// plain strings in JSON, YAML and TOML output.
func (r Reference) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Reference) UnmarshalText(text []byte) error {
	parsed, err := ParseReference(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
