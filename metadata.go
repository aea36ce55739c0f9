package conanrecipe

import (
	"crypto/sha1" //nolint:gosec
	"encoding/hex"
	"slices"
	"strings"
)

// RecipeMetadata is the declarative part of the recipe that does not depend
// on the configuration source.
type RecipeMetadata struct {
	Author         string   `json:"author" yaml:"author" toml:"author"`
	Homepage       string   `json:"homepage" yaml:"homepage" toml:"homepage"`
	URL            string   `json:"url" yaml:"url" toml:"url"`
	License        string   `json:"license" yaml:"license" toml:"license"`
	Topics         []string `json:"topics" yaml:"topics" toml:"topics"`
	Settings       []string `json:"settings" yaml:"settings" toml:"settings"`
	ExportsSources []string `json:"exports_sources" yaml:"exports_sources" toml:"exports_sources"`
	PackageType    string   `json:"package_type" yaml:"package_type" toml:"package_type"`
	NoCopySource   bool     `json:"no_copy_source" yaml:"no_copy_source" toml:"no_copy_source"`
}

// Recipe returns the recipe metadata.
func Recipe() RecipeMetadata {
	return RecipeMetadata{
		Author:   "DICE Group <info@dice-research.org>",
		Homepage: "https://github.com/dice-group/hypertrie",
		URL:      "https://github.com/dice-group/hypertrie",
		License:  "AGPL-3.0",
		Topics: []string{
			"tensor", "data structure", "einsum", "einstein summation", "hypertrie",
		},
		Settings:       Settings(),
		ExportsSources: []string{"include/*", "libs/*", "CMakeLists.txt", "cmake/*", "LICENSE*"},
		PackageType:    "header-library",
		NoCopySource:   true,
	}
}

// Settings enumerates the build settings the recipe declares. They are
// cleared from the package id because the package is header-only.
func Settings() []string {
	return []string{"os", "compiler", "build_type", "arch"}
}

// TransientInstallDirs are removed from the package folder after install.
func TransientInstallDirs() []string {
	return []string{"res", "share", "cmake", "lib"}
}

// PackageID computes a header-only package id: a SHA-1 over the package
// reference and its core requirement references. Settings never contribute,
// and neither do test-only requirements.
func PackageID(id PackageIdentity, reqs []Requirement) string {
	lines := []string{"[requires]"}
	core := CoreRequirements(reqs)
	refs := make([]string, 0, len(core))
	for _, r := range core {
		refs = append(refs, r.Ref.String())
	}
	slices.Sort(refs)
	lines = append(lines, refs...)
	lines = append(lines, "[ref]", id.String())

	sum := sha1.Sum([]byte(strings.Join(lines, "\n") + "\n")) //nolint:gosec
	return hex.EncodeToString(sum[:])
}
