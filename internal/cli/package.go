package cli

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/albertocavalcante/go-conanrecipe/packageinfo"
	"github.com/albertocavalcante/go-conanrecipe/packaging"
)

func packageCmd() *cli.Command {
	return &cli.Command{
		Name:  "package",
		Usage: "Build, install and export the package",
		Description: `Evaluate the recipe from <source>/CMakeLists.txt, configure the project
with tests disabled, build and install it into the package folder, copy
license files into licenses/, remove install output consumers do not need
and write the package info next to it.

Example:
  conanrecipe package --source . --build build --package out/hypertrie`,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "source", Value: ".", Usage: "Project source folder"},
			&cli.StringFlag{Name: "build", Value: "build", Usage: "Out-of-source build folder"},
			&cli.StringFlag{Name: "package", Required: true, Usage: "Package folder (install prefix)"},
			&cli.StringFlag{Name: "cmake", Usage: "cmake executable (default: cmake from PATH)", Sources: cli.EnvVars("CMAKE")},
			&cli.StringFlag{Name: "generator", Usage: "CMake generator, e.g. Ninja", Sources: cli.EnvVars("CMAKE_GENERATOR")},
			&cli.StringFlag{Name: "build-type", Value: "Release", Usage: "CMake build type"},
			formatFlag(string(packageinfo.FormatJSON), packageinfo.SupportedFormats()...),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			opts, err := evalOptions(cmd)
			if err != nil {
				return err
			}
			format, err := packageinfo.ParseFormat(cmd.String("format"))
			if err != nil {
				return err
			}

			p := &packaging.Pipeline{
				Driver: &packaging.CMakeDriver{
					Binary:    cmd.String("cmake"),
					Generator: cmd.String("generator"),
					BuildType: cmd.String("build-type"),
					Logger:    slog.Default(),
				},
				FS:      packaging.OSFilesystem{},
				Format:  format,
				Options: opts,
				Logger:  slog.Default(),
			}
			_, err = p.Run(ctx, packaging.Dirs{
				Source:  cmd.String("source"),
				Build:   cmd.String("build"),
				Package: cmd.String("package"),
			})
			return err
		},
	}
}
