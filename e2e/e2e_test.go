package e2e

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	conanrecipe "github.com/albertocavalcante/go-conanrecipe"
	"github.com/albertocavalcante/go-conanrecipe/packageinfo"
	"github.com/albertocavalcante/go-conanrecipe/packaging"
)

// projectCMakeLists is a header-only project laid out the way the packaged
// library is. It refuses to configure with tests enabled and records the
// identity CMake itself resolved.
const projectCMakeLists = `cmake_minimum_required(VERSION 3.16)
project(hypertrie
        VERSION 0.9.4
        DESCRIPTION "A flexible data structure for low-rank, sparse tensors"
        LANGUAGES NONE)

option(hypertrie_BUILD_TESTS "Build tests" ON)
if (hypertrie_BUILD_TESTS)
    message(FATAL_ERROR "tests must not be built while packaging")
endif ()

file(WRITE "${CMAKE_BINARY_DIR}/identity.txt" "${PROJECT_NAME}\n${PROJECT_VERSION}\n${PROJECT_DESCRIPTION}\n")

add_library(hypertrie INTERFACE)
target_include_directories(hypertrie INTERFACE
        $<BUILD_INTERFACE:${CMAKE_CURRENT_SOURCE_DIR}/include>
        $<INSTALL_INTERFACE:include>)

install(DIRECTORY include/ DESTINATION include)
install(TARGETS hypertrie EXPORT hypertrie-targets)
install(EXPORT hypertrie-targets DESTINATION lib/cmake/hypertrie)
install(FILES README.md DESTINATION share/doc/hypertrie)
`

// createTestProject creates a temporary source folder with the project files.
func createTestProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		"CMakeLists.txt":                      projectCMakeLists,
		"LICENSE":                             "GNU AFFERO GENERAL PUBLIC LICENSE\n",
		"README.md":                           "# hypertrie\n",
		"include/hypertrie/Hypertrie.hpp":     "#pragma once\n",
		"include/hypertrie/einsum/Einsum.hpp": "#pragma once\n",
		"include/hypertrie/query/Query.hpp":   "#pragma once\n",
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("Failed to create %s: %v", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	return dir
}

// findCMake returns the cmake binary or skips the test.
func findCMake(t *testing.T) string {
	t.Helper()
	bin, err := exec.LookPath("cmake")
	if err != nil {
		t.Skip("cmake not found in PATH")
	}
	return bin
}

func TestE2E_Scenarios(t *testing.T) {
	src := createTestProject(t)
	config := filepath.Join(src, "CMakeLists.txt")

	t.Run("default options", func(t *testing.T) {
		res, err := conanrecipe.EvaluateFile(config)
		if err != nil {
			t.Fatalf("EvaluateFile: %v", err)
		}
		if res.Identity.String() != "hypertrie/0.9.4" {
			t.Errorf("identity = %s", res.Identity)
		}
		if len(res.Requirements) != 5 {
			t.Errorf("requirements = %d, want 5", len(res.Requirements))
		}
		if got := res.Components.IDs(); !slices.Equal(got, []conanrecipe.ComponentID{"global", "einsum", "query"}) {
			t.Errorf("components = %v", got)
		}
	})

	t.Run("version override", func(t *testing.T) {
		res, err := conanrecipe.EvaluateFile(config, conanrecipe.WithOverrideVersion("3.0.0-rc1"))
		if err != nil {
			t.Fatalf("EvaluateFile: %v", err)
		}
		if res.Identity.Version != "3.0.0-rc1" || res.Identity.Name != "hypertrie" {
			t.Errorf("identity = %+v", res.Identity)
		}
		if res.Identity.Description != "A flexible data structure for low-rank, sparse tensors" {
			t.Errorf("description = %q", res.Identity.Description)
		}
	})

	t.Run("test dependencies", func(t *testing.T) {
		res, err := conanrecipe.EvaluateFile(config, conanrecipe.WithTestDeps(true))
		if err != nil {
			t.Fatalf("EvaluateFile: %v", err)
		}
		if len(res.Requirements) != 9 {
			t.Errorf("requirements = %d, want 9", len(res.Requirements))
		}
	})
}

// TestE2E_IdentityMatchesCMake checks that the parsed identity is the one
// CMake itself resolves for the same project(...) statement.
func TestE2E_IdentityMatchesCMake(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping E2E test in short mode")
	}
	cmake := findCMake(t)
	src := createTestProject(t)
	build := t.TempDir()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cmd := exec.CommandContext(ctx, cmake, "-S", src, "-B", build, "-Dhypertrie_BUILD_TESTS=OFF")
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("cmake configure failed: %v\n%s", err, out)
	}

	data, err := os.ReadFile(filepath.Join(build, "identity.txt"))
	if err != nil {
		t.Fatalf("Failed to read identity written by cmake: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("unexpected identity.txt: %q", data)
	}

	id, err := conanrecipe.ResolveIdentity("", conanrecipe.FileSource(filepath.Join(src, "CMakeLists.txt")))
	if err != nil {
		t.Fatalf("ResolveIdentity: %v", err)
	}
	want := conanrecipe.PackageIdentity{Name: lines[0], Version: lines[1], Description: lines[2]}
	if id != want {
		t.Errorf("identity mismatch:\n  ours:  %+v\n  cmake: %+v", id, want)
	}
}

// TestE2E_PackageWithCMake runs the whole packaging pipeline with a real
// cmake and inspects the resulting package folder.
func TestE2E_PackageWithCMake(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping E2E test in short mode")
	}
	cmake := findCMake(t)
	src := createTestProject(t)
	root := t.TempDir()
	dirs := packaging.Dirs{
		Source:  src,
		Build:   filepath.Join(root, "build"),
		Package: filepath.Join(root, "package"),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	p := &packaging.Pipeline{
		Driver: &packaging.CMakeDriver{Binary: cmake},
		FS:     packaging.OSFilesystem{},
		Format: packageinfo.FormatJSON,
	}
	res, err := p.Run(ctx, dirs)
	if err != nil {
		t.Fatalf("Pipeline.Run: %v", err)
	}

	for _, f := range []string{
		"include/hypertrie/Hypertrie.hpp",
		"include/hypertrie/einsum/Einsum.hpp",
		"include/hypertrie/query/Query.hpp",
		"licenses/LICENSE",
		"conaninfo.json",
	} {
		if _, err := os.Stat(filepath.Join(dirs.Package, f)); err != nil {
			t.Errorf("expected %s in package: %v", f, err)
		}
	}
	for _, d := range conanrecipe.TransientInstallDirs() {
		if _, err := os.Stat(filepath.Join(dirs.Package, d)); !os.IsNotExist(err) {
			t.Errorf("transient install dir %s was not removed", d)
		}
	}

	data, err := os.ReadFile(filepath.Join(dirs.Package, "conaninfo.json"))
	if err != nil {
		t.Fatal(err)
	}
	var info packageinfo.PackageInfo
	if err := json.Unmarshal(data, &info); err != nil {
		t.Fatalf("conaninfo.json: %v", err)
	}
	if info.PackageID != res.PackageID {
		t.Errorf("package id = %s, want %s", info.PackageID, res.PackageID)
	}
	for _, c := range info.Components {
		for _, dir := range c.IncludeDirs {
			if fi, err := os.Stat(filepath.Join(dirs.Package, dir)); err != nil || !fi.IsDir() {
				t.Errorf("component %s include dir %s missing from package", c.Name, dir)
			}
		}
	}
}
