package conanrecipe

import (
	"fmt"

	"github.com/albertocavalcante/go-conanrecipe/label"
)

// PackageIdentity is the resolved name, version and description of the package.
// Once resolved it is never modified.
type PackageIdentity struct {
	// Name is the package name as declared in project(<name> ...).
	Name string `json:"name" yaml:"name" toml:"name"`

	// Version is the declared version, or the override when one was supplied.
	Version string `json:"version" yaml:"version" toml:"version"`

	// Description is the DESCRIPTION argument; empty for the older
	// project(<name> VERSION <v>) form.
	Description string `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
}

// String returns name/version.
func (id PackageIdentity) String() string {
	return id.Name + "/" + id.Version
}

// Scope says who a requirement is for.
type Scope string

const (
	// ScopeCore requirements are part of the consumer-facing dependency graph.
	ScopeCore Scope = "core"

	// ScopeTest requirements are only used by tests and benchmark tooling.
	ScopeTest Scope = "test"
)

// Requirement is an edge from this package to an external package.
type Requirement struct {
	// Ref is the pinned reference, e.g. boost/1.81.0 or fmt/6.0.0@bincrafters/stable.
	Ref label.Reference `json:"ref" yaml:"ref" toml:"ref"`

	// TransitiveHeaders propagates the dependency's headers to consumers.
	TransitiveHeaders bool `json:"transitive_headers" yaml:"transitive_headers" toml:"transitive_headers"`

	// PropagatesLibs propagates linkable libraries. False means headers only.
	PropagatesLibs bool `json:"libs" yaml:"libs" toml:"libs"`

	// ForceOverride makes this pin win over any conflicting version requested
	// elsewhere in the graph.
	ForceOverride bool `json:"force" yaml:"force" toml:"force"`

	// Scope is ScopeCore or ScopeTest.
	Scope Scope `json:"scope" yaml:"scope" toml:"scope"`
}

// Name returns the referenced package name.
func (r Requirement) Name() string {
	return r.Ref.Name().String()
}

// String returns the requirement in recipe syntax, e.g.
// boost/1.81.0 [transitive_headers libs=false force].
func (r Requirement) String() string {
	s := r.Ref.String()
	var flags []string
	if r.TransitiveHeaders {
		flags = append(flags, "transitive_headers")
	}
	if !r.PropagatesLibs {
		flags = append(flags, "libs=false")
	}
	if r.ForceOverride {
		flags = append(flags, "force")
	}
	if r.Scope == ScopeTest {
		flags = append(flags, "test")
	}
	if len(flags) == 0 {
		return s
	}
	return fmt.Sprintf("%s %v", s, flags)
}

// OptionSpec declares a boolean build option and its default.
type OptionSpec struct {
	Key     string
	Allowed []bool
	Default bool
}

// BuildOption is an option value as chosen by the invoking packaging pipeline.
// Value is the raw text the pipeline supplied ("True", "false", ...); an empty
// Value selects the default.
type BuildOption struct {
	Key   string
	Value string
}

// OptionWithTestDeps gates the test and benchmark requirements.
const OptionWithTestDeps = "with_test_deps"

// WithTestDepsSpec is the only option this recipe exposes.
var WithTestDepsSpec = OptionSpec{
	Key:     OptionWithTestDeps,
	Allowed: []bool{true, false},
	Default: false,
}

// ComponentID names a component.
type ComponentID string

const (
	// ComponentGlobal carries every core external requirement.
	ComponentGlobal ComponentID = "global"

	// ComponentEinsum is the einstein-summation feature component.
	ComponentEinsum ComponentID = "einsum"

	// ComponentQuery is the query feature component.
	ComponentQuery ComponentID = "query"
)

// FeatureComponents lists the feature components in declaration order.
var FeatureComponents = []ComponentID{ComponentEinsum, ComponentQuery}

// Component is a separately consumable slice of the package.
type Component struct {
	// ID is the component name.
	ID ComponentID `json:"id" yaml:"id" toml:"id"`

	// TargetName is the consumer-facing target, e.g. hypertrie::einsum.
	TargetName string `json:"target_name" yaml:"target_name" toml:"target_name"`

	// IncludeDirs are the include directories relative to the package folder.
	IncludeDirs []string `json:"include_dirs" yaml:"include_dirs" toml:"include_dirs"`

	// Requires are the components this one depends on, in order.
	Requires []ComponentID `json:"requires" yaml:"requires" toml:"requires"`

	// External are the external package references this component requires.
	// Only global carries any.
	External []label.Reference `json:"external,omitempty" yaml:"external,omitempty" toml:"external,omitempty"`
}
