package conanrecipe

import (
	"fmt"
	"strings"

	"github.com/albertocavalcante/go-conanrecipe/label"
)

// RequirementSpec is one row of a requirement table.
type RequirementSpec struct {
	Ref               string
	TransitiveHeaders bool
	Libs              bool
	Force             bool
	Scope             Scope
}

// requirementTable is the recipe's dependency declaration. Core rows are the
// consumer-facing graph; test rows are added only with with_test_deps.
// Changing a pin is an edit to this table.
var requirementTable = []RequirementSpec{
	{Ref: "dice-hash/0.4.0", TransitiveHeaders: true, Libs: true, Scope: ScopeCore},
	{Ref: "dice-sparse-map/0.2.4", TransitiveHeaders: true, Libs: true, Scope: ScopeCore},
	{Ref: "dice-template-library/0.2.0", TransitiveHeaders: true, Libs: true, Scope: ScopeCore},
	{Ref: "robin-hood-hashing/3.11.5", TransitiveHeaders: true, Libs: true, Scope: ScopeCore},
	// boost is consumed headers-only and forced so consumers with their own
	// boost pin do not end up with a diamond conflict.
	{Ref: "boost/1.81.0", TransitiveHeaders: true, Libs: false, Force: true, Scope: ScopeCore},

	{Ref: "fmt/8.1.1", Libs: true, Scope: ScopeTest},
	{Ref: "cppitertools/2.1", Libs: true, Scope: ScopeTest},
	{Ref: "doctest/2.4.9", Libs: true, Scope: ScopeTest},
	{Ref: "metall/0.23.1", Libs: true, Scope: ScopeTest},
}

// RequirementTable returns a copy of the recipe's requirement table.
func RequirementTable() []RequirementSpec {
	out := make([]RequirementSpec, len(requirementTable))
	copy(out, requirementTable)
	return out
}

// ResolveOption checks opt against spec and returns its boolean value.
// An empty value selects the default. Accepted spellings are the ones Conan
// profiles and command lines use.
func ResolveOption(spec OptionSpec, opt BuildOption) (bool, error) {
	key := opt.Key
	if key == "" {
		key = spec.Key
	}
	if key != spec.Key {
		return false, &UnresolvedOptionError{Key: opt.Key, Value: opt.Value}
	}

	var value bool
	switch strings.ToLower(strings.TrimSpace(opt.Value)) {
	case "":
		value = spec.Default
	case "true", "1", "yes", "on":
		value = true
	case "false", "0", "no", "off":
		value = false
	default:
		return false, &UnresolvedOptionError{Key: key, Value: opt.Value}
	}

	for _, allowed := range spec.Allowed {
		if allowed == value {
			return value, nil
		}
	}
	return false, &UnresolvedOptionError{Key: key, Value: opt.Value}
}

// ResolveBuildOptions resolves every option against WithTestDepsSpec and
// returns the effective with_test_deps value. Each option must resolve on its
// own; a later valid option does not excuse an earlier invalid one. When the
// key is given more than once the last value wins.
func ResolveBuildOptions(opts ...BuildOption) (bool, error) {
	value := WithTestDepsSpec.Default
	for _, opt := range opts {
		v, err := ResolveOption(WithTestDepsSpec, opt)
		if err != nil {
			return false, err
		}
		value = v
	}
	return value, nil
}

// DeclareRequirements returns the recipe's requirements for the given
// with_test_deps option values. The order is stable: core rows first, then
// test rows, each in table order.
func DeclareRequirements(opts ...BuildOption) ([]Requirement, error) {
	return DeclareRequirementsFrom(requirementTable, opts...)
}

// DeclareRequirementsFrom is DeclareRequirements over a caller-supplied table.
//
// Every row is checked whether or not its scope is enabled. A package name
// may appear more than once only if the later row forces its pin within the
// same scope; the forcing row then replaces the earlier one at the earlier
// row's position. Test rows are dropped unless the option resolves to true.
func DeclareRequirementsFrom(table []RequirementSpec, opts ...BuildOption) ([]Requirement, error) {
	withTestDeps, err := ResolveBuildOptions(opts...)
	if err != nil {
		return nil, err
	}

	rows := make([]Requirement, 0, len(table))
	for _, row := range table {
		req, err := row.requirement()
		if err != nil {
			return nil, err
		}
		rows = append(rows, req)
	}

	reqs := make([]Requirement, 0, len(rows))
	index := make(map[string]int, len(rows))

	for _, scope := range []Scope{ScopeCore, ScopeTest} {
		for _, req := range rows {
			if req.Scope != scope {
				continue
			}

			if at, seen := index[req.Name()]; seen {
				prev := reqs[at]
				if !req.ForceOverride {
					return nil, fmt.Errorf("%w: %s conflicts with %s", ErrDuplicateRequirement, req.Ref, prev.Ref)
				}
				if prev.Scope != req.Scope {
					return nil, fmt.Errorf("%w: %s %s cannot force %s %s",
						ErrDuplicateRequirement, req.Scope, req.Ref, prev.Scope, prev.Ref)
				}
				reqs[at] = req
				continue
			}
			index[req.Name()] = len(reqs)
			reqs = append(reqs, req)
		}
	}

	if !withTestDeps {
		return CoreRequirements(reqs), nil
	}
	return reqs, nil
}

func (row RequirementSpec) requirement() (Requirement, error) {
	ref, err := label.ParseReference(row.Ref)
	if err != nil {
		return Requirement{}, fmt.Errorf("requirement table: %w", err)
	}
	switch row.Scope {
	case ScopeCore, ScopeTest:
	default:
		return Requirement{}, fmt.Errorf("requirement table: %s has unknown scope %q", row.Ref, row.Scope)
	}
	return Requirement{
		Ref:               ref,
		TransitiveHeaders: row.TransitiveHeaders,
		PropagatesLibs:    row.Libs,
		ForceOverride:     row.Force,
		Scope:             row.Scope,
	}, nil
}

// CoreRequirements filters reqs down to the consumer-facing ones.
func CoreRequirements(reqs []Requirement) []Requirement {
	out := make([]Requirement, 0, len(reqs))
	for _, r := range reqs {
		if r.Scope == ScopeCore {
			out = append(out, r)
		}
	}
	return out
}
