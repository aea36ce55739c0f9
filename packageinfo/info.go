// Package packageinfo turns a recipe evaluation into the package information
// a build driver consumes and writes it exactly once.
//
// The same PackageInfo renders as JSON, YAML, TOML or a Bazel BUILD file:
//
//	res, _ := conanrecipe.EvaluateFile("CMakeLists.txt")
//	err := packageinfo.Export(res, packageinfo.FormatJSON, "package/conaninfo.json")
package packageinfo

import (
	"github.com/albertocavalcante/go-conanrecipe"
)

// FindModeBoth asks consumers' CMake to generate both config and module
// find files.
const FindModeBoth = "both"

// PackageInfo is the consumer-facing description of a package.
type PackageInfo struct {
	Name        string `json:"name" yaml:"name" toml:"name"`
	Version     string `json:"version" yaml:"version" toml:"version"`
	Description string `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	PackageID   string `json:"package_id,omitempty" yaml:"package_id,omitempty" toml:"package_id,omitempty"`

	// FileName is the CMake find-file name, e.g. find_package(hypertrie).
	FileName string `json:"cmake_file_name" yaml:"cmake_file_name" toml:"cmake_file_name"`
	FindMode string `json:"cmake_find_mode" yaml:"cmake_find_mode" toml:"cmake_find_mode"`

	Recipe     conanrecipe.RecipeMetadata `json:"recipe" yaml:"recipe" toml:"recipe"`
	Requires   []Requirement              `json:"requires" yaml:"requires" toml:"requires"`
	Components []Component                `json:"components" yaml:"components" toml:"components"`
}

// Requirement is an exported core requirement.
type Requirement struct {
	Ref               string `json:"ref" yaml:"ref" toml:"ref"`
	TransitiveHeaders bool   `json:"transitive_headers" yaml:"transitive_headers" toml:"transitive_headers"`
	Libs              bool   `json:"libs" yaml:"libs" toml:"libs"`
	Force             bool   `json:"force" yaml:"force" toml:"force"`
}

// Component is one consumable component.
type Component struct {
	Name        string   `json:"name" yaml:"name" toml:"name"`
	TargetName  string   `json:"cmake_target_name" yaml:"cmake_target_name" toml:"cmake_target_name"`
	IncludeDirs []string `json:"include_dirs" yaml:"include_dirs" toml:"include_dirs"`

	// Requires lists sibling components by name and external packages as
	// <name>::<name>.
	Requires []string `json:"requires" yaml:"requires" toml:"requires"`
}

// FromGraph builds package info from an identity, the recipe metadata and a
// validated component graph. Components are listed so each follows the
// components it requires.
func FromGraph(id conanrecipe.PackageIdentity, recipe conanrecipe.RecipeMetadata, cg *conanrecipe.ComponentGraph) *PackageInfo {
	info := &PackageInfo{
		Name:        id.Name,
		Version:     id.Version,
		Description: id.Description,
		FileName:    id.Name,
		FindMode:    FindModeBoth,
		Recipe:      recipe,
		Requires:    []Requirement{},
		Components:  make([]Component, 0, len(cg.Components)),
	}

	for _, cid := range cg.InstallOrder() {
		c, _ := cg.Get(cid)
		requires := make([]string, 0, len(c.Requires)+len(c.External))
		for _, r := range c.Requires {
			requires = append(requires, string(r))
		}
		for _, ext := range c.External {
			name := ext.Name().String()
			requires = append(requires, name+"::"+name)
		}
		info.Components = append(info.Components, Component{
			Name:        string(c.ID),
			TargetName:  c.TargetName,
			IncludeDirs: append([]string{}, c.IncludeDirs...),
			Requires:    requires,
		})
	}
	return info
}

// FromResult builds package info from a finished evaluation. Test-only
// requirements are left out.
func FromResult(res *conanrecipe.Result) *PackageInfo {
	info := FromGraph(res.Identity, res.Recipe, res.Components)
	info.PackageID = res.PackageID
	for _, r := range conanrecipe.CoreRequirements(res.Requirements) {
		info.Requires = append(info.Requires, Requirement{
			Ref:               r.Ref.String(),
			TransitiveHeaders: r.TransitiveHeaders,
			Libs:              r.PropagatesLibs,
			Force:             r.ForceOverride,
		})
	}
	return info
}
