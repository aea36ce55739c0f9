package packaging

import (
	"context"
	"log/slog"
	"maps"
	"os/exec"
	"slices"

	"github.com/pkg/errors"
)

// Dirs are the folders one packaging run works in.
type Dirs struct {
	// Source holds the project sources and its CMakeLists.txt.
	Source string
	// Build is the out-of-source build tree.
	Build string
	// Package is the install prefix the package is assembled in.
	Package string
}

// Driver runs the project's build system.
type Driver interface {
	Configure(ctx context.Context, dirs Dirs, definitions map[string]string) error
	Build(ctx context.Context, dirs Dirs) error
	Install(ctx context.Context, dirs Dirs) error
}

// CommandRunner runs name with args in dir and returns its combined output.
type CommandRunner func(ctx context.Context, dir, name string, args ...string) ([]byte, error)

// ExecRunner runs commands with os/exec.
func ExecRunner(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}

// CMakeDriver drives a CMake project through the cmake command line.
type CMakeDriver struct {
	// Binary is the cmake executable. Defaults to "cmake" from PATH.
	Binary string
	// Generator is passed as -G when set.
	Generator string
	// BuildType defaults to Release.
	BuildType string
	// Run defaults to ExecRunner.
	Run CommandRunner
	// Logger defaults to a silent logger.
	Logger *slog.Logger
}

// Configure generates the build tree. Definitions are passed as -D flags in
// key order.
func (d *CMakeDriver) Configure(ctx context.Context, dirs Dirs, definitions map[string]string) error {
	args := []string{
		"-S", dirs.Source,
		"-B", dirs.Build,
		"-DCMAKE_BUILD_TYPE=" + d.buildType(),
		"-DCMAKE_INSTALL_PREFIX=" + dirs.Package,
	}
	if d.Generator != "" {
		args = append(args, "-G", d.Generator)
	}
	for _, k := range slices.Sorted(maps.Keys(definitions)) {
		args = append(args, "-D"+k+"="+definitions[k])
	}
	return d.cmake(ctx, dirs.Source, "configure", args...)
}

// Build compiles the build tree.
func (d *CMakeDriver) Build(ctx context.Context, dirs Dirs) error {
	return d.cmake(ctx, dirs.Build, "build", "--build", dirs.Build, "--config", d.buildType())
}

// Install installs the build tree into the package folder.
func (d *CMakeDriver) Install(ctx context.Context, dirs Dirs) error {
	return d.cmake(ctx, dirs.Build, "install", "--install", dirs.Build, "--prefix", dirs.Package, "--config", d.buildType())
}

func (d *CMakeDriver) cmake(ctx context.Context, dir, step string, args ...string) error {
	binary := d.Binary
	if binary == "" {
		path, err := exec.LookPath("cmake")
		if err != nil {
			return errors.Wrap(err, "cmake not found in PATH")
		}
		binary = path
	}
	run := d.Run
	if run == nil {
		run = ExecRunner
	}

	log := d.log()
	log.Debug("running cmake", "step", step, "args", args)
	out, err := run(ctx, dir, binary, args...)
	if err != nil {
		log.Error("cmake failed", "step", step, "output", string(out))
		return errors.Wrapf(err, "cmake %s", step)
	}
	return nil
}

func (d *CMakeDriver) buildType() string {
	if d.BuildType == "" {
		return "Release"
	}
	return d.BuildType
}

func (d *CMakeDriver) log() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.New(slog.DiscardHandler)
}
