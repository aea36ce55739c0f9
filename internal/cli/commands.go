package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/albertocavalcante/go-conanrecipe"
)

func identityCmd() *cli.Command {
	return &cli.Command{
		Name:  "identity",
		Usage: "Print the resolved package identity",
		Description: `Resolve name, version and description from the single project(...)
statement of the configuration file. --version-override replaces the version.`,
		Flags: []cli.Flag{formatFlag("yaml", "json", "yaml", "text")},
		Action: func(_ context.Context, cmd *cli.Command) error {
			res, err := evaluate(cmd)
			if err != nil {
				return err
			}
			if cmd.String("format") == "text" {
				_, err := fmt.Fprintln(stdout(cmd), res.Identity)
				return err
			}
			return writeValue(stdout(cmd), cmd.String("format"), res.Identity)
		},
	}
}

func requirementsCmd() *cli.Command {
	return &cli.Command{
		Name:  "requirements",
		Usage: "Print the declared requirements",
		Description: `List the pinned external packages in declaration order. Test and
benchmark packages are listed only with -o with_test_deps=True.`,
		Flags: []cli.Flag{formatFlag("text", "text", "json", "yaml")},
		Action: func(_ context.Context, cmd *cli.Command) error {
			res, err := evaluate(cmd)
			if err != nil {
				return err
			}
			if cmd.String("format") != "text" {
				return writeValue(stdout(cmd), cmd.String("format"), res.Requirements)
			}
			for _, r := range res.Requirements {
				if _, err := fmt.Fprintln(stdout(cmd), r); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func componentsCmd() *cli.Command {
	return &cli.Command{
		Name:  "components",
		Usage: "Print the component graph",
		Description: `Render the validated component graph as a text tree, Graphviz DOT or
JSON. External requirements are shown on the component that carries them.

With --requires or --dependents only the named component's neighbourhood is
printed, one component per line; --direct limits it to a single edge.
--bases lists the components that require nothing else, --order the
components in install order.

Examples:
  conanrecipe components --format dot
  conanrecipe components --dependents global
  conanrecipe components --requires query --direct`,
		Flags: []cli.Flag{
			formatFlag("text", "text", "dot", "json"),
			&cli.StringFlag{
				Name:  "requires",
				Usage: "List the components `ID` requires",
			},
			&cli.StringFlag{
				Name:  "dependents",
				Usage: "List the components that require `ID`",
			},
			&cli.BoolFlag{
				Name:  "direct",
				Usage: "Only follow one edge with --requires or --dependents",
			},
			&cli.BoolFlag{
				Name:  "bases",
				Usage: "List the components that require no other component",
			},
			&cli.BoolFlag{
				Name:  "order",
				Usage: "List the components in install order",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			res, err := evaluate(cmd)
			if err != nil {
				return err
			}
			cg := res.Components

			if ids, ok, err := componentQuery(cmd, cg); ok {
				if err != nil {
					return err
				}
				return writeComponentIDs(stdout(cmd), ids)
			}

			g := cg.Graph()
			var out []byte
			switch cmd.String("format") {
			case "dot":
				out = []byte(g.ToDOT())
			case "json":
				if out, err = g.ToJSON(); err != nil {
					return err
				}
				out = append(out, '\n')
			default:
				out = []byte(g.ToText())
			}
			_, err = stdout(cmd).Write(out)
			return err
		},
	}
}

// componentQuery answers the list flags of the components command. ok is
// false when none of them was given.
func componentQuery(cmd *cli.Command, cg *conanrecipe.ComponentGraph) (ids []conanrecipe.ComponentID, ok bool, err error) {
	lookup := func(flag string) (conanrecipe.ComponentID, error) {
		id := conanrecipe.ComponentID(cmd.String(flag))
		if _, found := cg.Get(id); !found {
			return "", fmt.Errorf("--%s: unknown component %q", flag, id)
		}
		return id, nil
	}

	switch {
	case cmd.IsSet("requires"):
		id, err := lookup("requires")
		if err != nil {
			return nil, true, err
		}
		if cmd.Bool("direct") {
			return cg.DirectRequires(id), true, nil
		}
		return cg.Closure(id)[1:], true, nil
	case cmd.IsSet("dependents"):
		id, err := lookup("dependents")
		if err != nil {
			return nil, true, err
		}
		if cmd.Bool("direct") {
			return cg.DirectDependents(id), true, nil
		}
		return cg.Dependents(id), true, nil
	case cmd.Bool("bases"):
		return cg.Bases(), true, nil
	case cmd.Bool("order"):
		return cg.InstallOrder(), true, nil
	}
	return nil, false, nil
}

func writeComponentIDs(w io.Writer, ids []conanrecipe.ComponentID) error {
	for _, id := range ids {
		if _, err := fmt.Fprintln(w, id); err != nil {
			return err
		}
	}
	return nil
}
