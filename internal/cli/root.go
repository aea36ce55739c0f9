// Package cli implements the conanrecipe command line.
//
// # Commands
//
//	conanrecipe identity                 resolved name, version and description
//	conanrecipe requirements             declared requirements
//	conanrecipe components               component graph (text, dot or json)
//	conanrecipe export --format toml     package info, written once
//	conanrecipe lock                     pin requirements in conan.lock
//	conanrecipe diff                     compare requirements with conan.lock
//	conanrecipe package --source . ...   configure, build, install and export
//
// # Global Flags
//
//	--config            build configuration file (default CMakeLists.txt)
//	--version-override  replace the declared version (CONAN_RECIPE_VERSION)
//	--option, -o        build option as key=value, e.g. with_test_deps=True
//	--log-level         debug, info, warn or error (LOG_LEVEL)
//	--metrics-file      write evaluation metrics in text format on exit
//
// A .env file in the working directory is loaded before flags are parsed.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v3"

	"github.com/albertocavalcante/go-conanrecipe"
	"github.com/albertocavalcante/go-conanrecipe/internal/logging"
)

const name = "conanrecipe"

var (
	// overridden during build with ldflags
	version = "dev"
	commit  = "unknown"
)

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := LoadEnv(".env"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := NewCommand().Run(ctx, os.Args); err != nil {
		if kind := conanrecipe.Kind(err); kind != "Internal" {
			fmt.Fprintf(os.Stderr, "%s: %v\n", kind, err)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// LoadEnv loads environment files. Missing files are skipped; variables
// already set are kept.
func LoadEnv(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// NewCommand returns the root command.
func NewCommand() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Usage:                 "Evaluate and package a header-only C++ library recipe",
		Version:               fmt.Sprintf("%s (%s)", version, commit),
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Value:   "CMakeLists.txt",
				Usage:   "Build configuration file the identity is read from",
				Sources: cli.EnvVars("CONAN_RECIPE_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "version-override",
				Usage:   "Version that replaces the one declared in the configuration file",
				Sources: cli.EnvVars("CONAN_RECIPE_VERSION"),
			},
			&cli.StringSliceFlag{
				Name:    "option",
				Aliases: []string{"o"},
				Usage:   "Build option as key=value (can be repeated), e.g. with_test_deps=True",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars(logging.EnvLogLevel),
			},
			&cli.StringFlag{
				Name:  "metrics-file",
				Usage: "Write evaluation metrics to this file in Prometheus text format on exit",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logger := logging.SetDefaultStructuredLoggerWithLevel(name, version, cmd.String("log-level"))
			logger.Debug("starting", "commit", commit, "args", cmd.Args().Slice())
			return ctx, nil
		},
		After: func(_ context.Context, cmd *cli.Command) error {
			path := cmd.String("metrics-file")
			if path == "" {
				return nil
			}
			if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
				return fmt.Errorf("failed to write metrics to %s: %w", path, err)
			}
			return nil
		},
		Commands: []*cli.Command{
			identityCmd(),
			requirementsCmd(),
			componentsCmd(),
			exportCmd(),
			lockCmd(),
			diffCmd(),
			packageCmd(),
		},
	}
}

// evalOptions turns the global flags into evaluation options.
func evalOptions(cmd *cli.Command) ([]conanrecipe.Option, error) {
	opts := []conanrecipe.Option{
		conanrecipe.WithLogger(slog.Default()),
		conanrecipe.WithOverrideVersion(cmd.String("version-override")),
	}
	for _, raw := range cmd.StringSlice("option") {
		opt, err := conanrecipe.ParseBuildOption(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid --option %q: %w", raw, err)
		}
		opts = append(opts, conanrecipe.WithBuildOption(opt.Key, opt.Value))
	}
	return opts, nil
}

func evaluate(cmd *cli.Command) (*conanrecipe.Result, error) {
	opts, err := evalOptions(cmd)
	if err != nil {
		return nil, err
	}
	return conanrecipe.EvaluateFile(cmd.String("config"), opts...)
}
