package lockfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/albertocavalcante/go-conanrecipe/packageinfo"
)

// lockfilePermissions is the file permission mode for lockfiles. They are
// meant to be committed.
const lockfilePermissions = 0o644

// ReadFile reads and parses a lockfile from the given path.
func ReadFile(path string) (*Lockfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lockfile: %w", err)
	}
	return Parse(data)
}

// Parse parses lockfile JSON data.
func Parse(data []byte) (*Lockfile, error) {
	var lf Lockfile
	if err := json.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("failed to parse lockfile JSON: %w", err)
	}
	if lf.Version == "" {
		return nil, fmt.Errorf("failed to parse lockfile: missing version")
	}

	// Initialize nil slices for consistency
	if lf.Requires == nil {
		lf.Requires = []string{}
	}
	if lf.BuildRequires == nil {
		lf.BuildRequires = []string{}
	}
	if lf.PythonRequires == nil {
		lf.PythonRequires = []string{}
	}

	return &lf, nil
}

// WriteFile atomically writes the lockfile to the given path.
func (l *Lockfile) WriteFile(path string) error {
	data, err := l.Marshal()
	if err != nil {
		return err
	}
	return packageinfo.WriteFileAtomic(path, data, lockfilePermissions)
}

// WriteTo writes the lockfile to the given writer.
func (l *Lockfile) WriteTo(w io.Writer) (int64, error) {
	data, err := l.Marshal()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

// Marshal serializes the lockfile to indented JSON. Entry lists are sorted
// newest first so equal lockfiles produce equal bytes.
func (l *Lockfile) Marshal() ([]byte, error) {
	ordered := Lockfile{
		Version:        l.Version,
		Requires:       sortedEntries(l.Requires),
		BuildRequires:  sortedEntries(l.BuildRequires),
		PythonRequires: sortedEntries(l.PythonRequires),
	}
	if len(l.ConfigRequires) > 0 {
		ordered.ConfigRequires = sortedEntries(l.ConfigRequires)
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "    ")
	if err := encoder.Encode(ordered); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func sortedEntries(entries []string) []string {
	out := slices.Clone(entries)
	if out == nil {
		out = []string{}
	}
	slices.SortFunc(out, func(a, b string) int {
		return strings.Compare(b, a)
	})
	return out
}

// Exists checks if a lockfile exists at the given path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// DefaultPath returns the default lockfile path for a recipe directory.
func DefaultPath(recipeDir string) string {
	return filepath.Join(recipeDir, DefaultFileName)
}
