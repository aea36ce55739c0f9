// Package packaging assembles a header-only package: it evaluates the recipe,
// runs the project's build system with tests disabled, installs into the
// package folder, collects license files, prunes install output consumers do
// not need and exports the package info.
package packaging

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/albertocavalcante/go-conanrecipe"
	"github.com/albertocavalcante/go-conanrecipe/packageinfo"
)

// ConfigFileName is the build configuration file looked up in the source folder.
const ConfigFileName = "CMakeLists.txt"

// LicensesDir is the package sub-folder license files are copied into.
const LicensesDir = "licenses"

// Pipeline runs one packaging pass.
type Pipeline struct {
	// Driver defaults to a CMakeDriver.
	Driver Driver
	// FS defaults to OSFilesystem.
	FS Filesystem

	// Format of the exported package info. Defaults to JSON.
	Format packageinfo.Format

	// Options are passed to the recipe evaluation.
	Options []conanrecipe.Option

	Logger *slog.Logger
}

// Run packages the project in dirs.Source into dirs.Package and returns the
// evaluation it packaged. Any failing step aborts the run.
func (p *Pipeline) Run(ctx context.Context, dirs Dirs) (*conanrecipe.Result, error) {
	log := p.log().With("source", dirs.Source, "package", dirs.Package)

	opts := append([]conanrecipe.Option{conanrecipe.WithLogger(log)}, p.Options...)
	res, err := conanrecipe.EvaluateFile(filepath.Join(dirs.Source, ConfigFileName), opts...)
	if err != nil {
		return nil, errors.Wrap(err, "evaluate recipe")
	}

	driver := p.Driver
	if driver == nil {
		driver = &CMakeDriver{Logger: log}
	}
	fsys := p.FS
	if fsys == nil {
		fsys = OSFilesystem{}
	}

	steps := []struct {
		name string
		run  func() error
	}{
		{"configure", func() error { return driver.Configure(ctx, dirs, Definitions(res.Identity)) }},
		{"build", func() error { return driver.Build(ctx, dirs) }},
		{"install", func() error { return driver.Install(ctx, dirs) }},
		{"copy licenses", func() error { return copyLicenses(fsys, dirs) }},
		{"prune", func() error { return prune(fsys, dirs) }},
		{"export", func() error { return p.export(res, dirs) }},
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrapf(err, "%s", step.name)
		}
		if err := step.run(); err != nil {
			return nil, errors.Wrapf(err, "%s", step.name)
		}
		log.Debug("packaging step done", "step", step.name)
	}

	log.Info("package assembled", "ref", res.Identity.String(), "package_id", res.PackageID)
	return res, nil
}

// Definitions are the CMake cache entries a packaging build sets. Tests are
// never built while packaging.
func Definitions(id conanrecipe.PackageIdentity) map[string]string {
	return map[string]string{
		id.Name + "_BUILD_TESTS": "OFF",
	}
}

// IsLicenseFile reports whether name looks like a license file
// (LICENSE, license.txt, License.md, ...).
func IsLicenseFile(name string) bool {
	return strings.HasPrefix(strings.ToLower(name), "license")
}

func copyLicenses(fsys Filesystem, dirs Dirs) error {
	entries, err := fsys.ReadDir(dirs.Source)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() || !IsLicenseFile(e.Name()) {
			continue
		}
		src := filepath.Join(dirs.Source, e.Name())
		dst := filepath.Join(dirs.Package, LicensesDir, e.Name())
		if err := fsys.CopyFile(src, dst); err != nil {
			return err
		}
	}
	return nil
}

func prune(fsys Filesystem, dirs Dirs) error {
	for _, dir := range conanrecipe.TransientInstallDirs() {
		if err := fsys.RemoveAll(filepath.Join(dirs.Package, dir)); err != nil {
			return err
		}
	}
	return nil
}

func (p *Pipeline) export(res *conanrecipe.Result, dirs Dirs) error {
	format := p.Format
	if format == "" {
		format = packageinfo.FormatJSON
	}
	return packageinfo.Export(res, format, filepath.Join(dirs.Package, format.FileName()))
}

func (p *Pipeline) log() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.New(slog.DiscardHandler)
}
