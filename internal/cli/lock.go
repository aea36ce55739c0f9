package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/albertocavalcante/go-conanrecipe"
	"github.com/albertocavalcante/go-conanrecipe/lockfile"
)

func lockCmd() *cli.Command {
	return &cli.Command{
		Name:  "lock",
		Usage: "Pin the declared requirements in a conan.lock file",
		Description: `Write the evaluated requirements as a Conan 2 lockfile. With --merge the
entries of an existing lockfile are kept and combined with the new ones.

Examples:
  conanrecipe lock
  conanrecipe -o with_test_deps=True lock --output test.lock
  conanrecipe lock --merge new`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "output",
				Value: lockfile.DefaultFileName,
				Usage: "Lockfile path (- for stdout)",
			},
			&cli.StringFlag{
				Name:  "merge",
				Usage: "Merge into an existing lockfile: existing, new or error on conflict",
				Validator: func(v string) error {
					_, err := lockfile.ParseMergeStrategy(v)
					return err
				},
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			res, err := evaluate(cmd)
			if err != nil {
				return err
			}
			lf := lockfile.FromRequirements(res.Requirements)

			path := cmd.String("output")
			if path == "-" {
				_, err := lf.WriteTo(stdout(cmd))
				return err
			}

			if strategy := cmd.String("merge"); strategy != "" && lockfile.Exists(path) {
				s, err := lockfile.ParseMergeStrategy(strategy)
				if err != nil {
					return err
				}
				existing, err := lockfile.ReadFile(path)
				if err != nil {
					return err
				}
				if err := existing.Merge(lf, s); err != nil {
					return err
				}
				lf = existing
			}

			if err := lf.WriteFile(path); err != nil {
				return fmt.Errorf("failed to write lockfile: %w", err)
			}
			slog.Info("lockfile written", "path", path, "requires", len(lf.Requires), "package", res.Identity.String())
			return nil
		},
	}
}

func diffCmd() *cli.Command {
	return &cli.Command{
		Name:  "diff",
		Usage: "Compare the declared requirements with a lockfile",
		Description: `Show which requirements were added, removed, upgraded or downgraded
relative to a lockfile. A missing lockfile counts as empty.

Examples:
  conanrecipe diff
  conanrecipe diff --against release.lock --format json`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "against",
				Value: lockfile.DefaultFileName,
				Usage: "Lockfile to compare with",
			},
			formatFlag("text", "text", "json", "yaml"),
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			res, err := evaluate(cmd)
			if err != nil {
				return err
			}

			old, err := lockfile.ReadFile(cmd.String("against"))
			switch {
			case errors.Is(err, fs.ErrNotExist):
				old = lockfile.New()
			case err != nil:
				return err
			}

			diff, err := old.Diff(lockfile.FromRequirements(res.Requirements))
			if err != nil {
				return err
			}

			w := stdout(cmd)
			if format := cmd.String("format"); format != "text" {
				return writeValue(w, format, diff)
			}
			return writeDiffText(w, diff)
		},
	}
}

func writeDiffText(w io.Writer, diff *conanrecipe.RequirementsDiff) error {
	if diff.IsEmpty() {
		_, err := fmt.Fprintln(w, "no changes")
		return err
	}
	for _, c := range diff.Added {
		fmt.Fprintf(w, "+ %s/%s\n", c.Name, c.Version)
	}
	for _, c := range diff.Removed {
		fmt.Fprintf(w, "- %s/%s\n", c.Name, c.Version)
	}
	for _, c := range diff.Upgraded {
		fmt.Fprintf(w, "^ %s %s -> %s\n", c.Name, c.OldVersion, c.NewVersion)
	}
	for _, c := range diff.Downgraded {
		fmt.Fprintf(w, "v %s %s -> %s\n", c.Name, c.OldVersion, c.NewVersion)
	}
	_, err := fmt.Fprintf(w, "%d changes\n", diff.TotalChanges())
	return err
}
