package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/albertocavalcante/go-conanrecipe/packageinfo"
)

func exportCmd() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Write the package info consumed by build drivers",
		Description: `Render name, version, components, include directories, targets and core
requirements, then write them once. Without --output the package info goes
to stdout.

Examples:
  conanrecipe export --format json --output package/conaninfo.json
  conanrecipe export --format bazel --output package/BUILD.bazel`,
		Flags: []cli.Flag{
			formatFlag(string(packageinfo.FormatJSON), packageinfo.SupportedFormats()...),
			&cli.StringFlag{
				Name:  "output",
				Usage: "Output file path (default: stdout)",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			format, err := packageinfo.ParseFormat(cmd.String("format"))
			if err != nil {
				return err
			}
			res, err := evaluate(cmd)
			if err != nil {
				return err
			}

			path := cmd.String("output")
			if path == "" || path == "-" {
				return packageinfo.ExportTo(res, format, stdout(cmd))
			}
			if err := packageinfo.Export(res, format, path); err != nil {
				return fmt.Errorf("failed to export package info: %w", err)
			}
			slog.Info("package info exported", "path", path, "format", format, "package", res.Identity.String())
			return nil
		},
	}
}
