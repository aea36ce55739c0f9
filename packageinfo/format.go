package packageinfo

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bazelbuild/buildtools/build"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"

	"github.com/albertocavalcante/go-conanrecipe/internal/buildutil"
)

// Format is an output format for package info.
type Format string

const (
	// FormatJSON renders indented JSON.
	FormatJSON Format = "json"
	// FormatYAML renders YAML.
	FormatYAML Format = "yaml"
	// FormatTOML renders TOML.
	FormatTOML Format = "toml"
	// FormatBazel renders a BUILD file with one cc_library per component.
	FormatBazel Format = "bazel"
)

// SupportedFormats returns every format Render accepts.
func SupportedFormats() []string {
	return []string{
		string(FormatJSON),
		string(FormatYAML),
		string(FormatTOML),
		string(FormatBazel),
	}
}

// ParseFormat converts a case-insensitive format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatJSON, FormatYAML, FormatTOML, FormatBazel:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format %q (want one of %s)", s, strings.Join(SupportedFormats(), ", "))
	}
}

// FileName is the conventional output file name for a format.
func (f Format) FileName() string {
	switch f {
	case FormatBazel:
		return "BUILD.bazel"
	default:
		return "conaninfo." + string(f)
	}
}

// Render serializes info in the given format.
func Render(info *PackageInfo, f Format) ([]byte, error) {
	switch f {
	case FormatJSON:
		return renderJSON(info)
	case FormatYAML:
		return renderYAML(info)
	case FormatTOML:
		return renderTOML(info)
	case FormatBazel:
		return renderBazel(info), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", f)
	}
}

func renderJSON(info *PackageInfo) ([]byte, error) {
	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize to JSON: %w", err)
	}
	return append(data, '\n'), nil
}

func renderYAML(info *PackageInfo) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(info); err != nil {
		return nil, fmt.Errorf("failed to serialize to YAML: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("failed to serialize to YAML: %w", err)
	}
	return buf.Bytes(), nil
}

func renderTOML(info *PackageInfo) ([]byte, error) {
	data, err := toml.Marshal(*info)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize to TOML: %w", err)
	}
	return data, nil
}

// renderBazel emits one cc_library per component. global depends on the
// external repositories; features depend on their sibling components.
func renderBazel(info *PackageInfo) []byte {
	f := &build.File{
		Path: FormatBazel.FileName(),
		Type: build.TypeBuild,
		Stmt: []build.Expr{
			buildutil.Comment(fmt.Sprintf("Package info for %s/%s (%s).", info.Name, info.Version, info.Recipe.License)),
		},
	}

	for _, c := range info.Components {
		deps := make([]string, 0, len(c.Requires))
		for _, r := range c.Requires {
			if repo, _, external := strings.Cut(r, "::"); external {
				deps = append(deps, "@"+repo)
			} else {
				deps = append(deps, ":"+r)
			}
		}
		f.Stmt = append(f.Stmt, buildutil.Call("cc_library",
			buildutil.StringAttr("name", c.Name),
			buildutil.Attr("hdrs", &build.CallExpr{
				X:    &build.Ident{Name: "glob"},
				List: []build.Expr{buildutil.StringList(headerGlobs(c.IncludeDirs))},
			}),
			buildutil.ListAttr("includes", c.IncludeDirs),
			buildutil.ListAttr("deps", deps),
			buildutil.ListAttr("tags", []string{"cmake_target=" + c.TargetName}),
			buildutil.ListAttr("visibility", []string{"//visibility:public"}),
		))
	}
	return build.Format(f)
}

func headerGlobs(dirs []string) []string {
	globs := make([]string, len(dirs))
	for i, d := range dirs {
		globs[i] = d + "/**/*.hpp"
	}
	return globs
}
