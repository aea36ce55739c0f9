package lockfile

import (
	"fmt"
	"slices"
	"strings"

	conanrecipe "github.com/albertocavalcante/go-conanrecipe"
	"github.com/albertocavalcante/go-conanrecipe/label"
)

// CurrentVersion is the lockfile schema version written by this package.
const CurrentVersion = "0.5"

// DefaultFileName is the conventional lockfile name next to a recipe.
const DefaultFileName = "conan.lock"

// Lockfile is the content of a conan.lock file.
type Lockfile struct {
	Version        string   `json:"version"`
	Requires       []string `json:"requires"`
	BuildRequires  []string `json:"build_requires"`
	PythonRequires []string `json:"python_requires"`
	ConfigRequires []string `json:"config_requires,omitempty"`
}

// New returns an empty lockfile at CurrentVersion.
func New() *Lockfile {
	return &Lockfile{
		Version:        CurrentVersion,
		Requires:       []string{},
		BuildRequires:  []string{},
		PythonRequires: []string{},
	}
}

// FromRequirements locks the given requirements. Test-scoped requirements
// are locked alongside core ones; Conan keeps both in "requires".
func FromRequirements(reqs []conanrecipe.Requirement) *Lockfile {
	lf := New()
	for _, r := range reqs {
		lf.Add(r.Ref.String())
	}
	return lf
}

// Add inserts a host requirement. An entry for the same reference, with or
// without a revision, is replaced.
func (l *Lockfile) Add(ref string) {
	l.Requires = insert(l.Requires, ref)
}

// AddBuild inserts a tool requirement.
func (l *Lockfile) AddBuild(ref string) {
	l.BuildRequires = insert(l.BuildRequires, ref)
}

func insert(entries []string, ref string) []string {
	base := StripRevision(ref)
	entries = slices.DeleteFunc(entries, func(e string) bool {
		return StripRevision(e) == base
	})
	entries = append(entries, ref)
	// Conan keeps lockfile entries newest first.
	slices.SortFunc(entries, func(a, b string) int {
		return strings.Compare(b, a)
	})
	return entries
}

// References parses the host requirements, dropping revisions.
func (l *Lockfile) References() ([]label.Reference, error) {
	refs := make([]label.Reference, 0, len(l.Requires))
	for _, e := range l.Requires {
		ref, err := label.ParseReference(StripRevision(e))
		if err != nil {
			return nil, fmt.Errorf("lockfile entry %q: %w", e, err)
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// Find returns the locked entry for the named package.
func (l *Lockfile) Find(name string) (string, bool) {
	for _, e := range l.Requires {
		if entryName(e) == name {
			return e, true
		}
	}
	return "", false
}

// IsCompatible reports whether this package can read the lockfile.
func (l *Lockfile) IsCompatible() bool {
	return l.Version == CurrentVersion
}

// Diff compares the host requirements of two lockfiles.
func (l *Lockfile) Diff(other *Lockfile) (*conanrecipe.RequirementsDiff, error) {
	oldRefs, err := l.References()
	if err != nil {
		return nil, err
	}
	newRefs, err := other.References()
	if err != nil {
		return nil, err
	}
	return conanrecipe.DiffReferences(oldRefs, newRefs), nil
}

// StripRevision removes a "#revision%timestamp" suffix.
func StripRevision(entry string) string {
	if i := strings.IndexByte(entry, '#'); i >= 0 {
		return entry[:i]
	}
	return entry
}

func entryName(entry string) string {
	name, _, _ := strings.Cut(StripRevision(entry), "/")
	return name
}
