package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

func formatFlag(def string, allowed ...string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   def,
		Usage:   fmt.Sprintf("Output format (supported values: %s)", strings.Join(allowed, ", ")),
		Validator: func(v string) error {
			if !slices.Contains(allowed, v) {
				return fmt.Errorf("unknown output format: %q", v)
			}
			return nil
		},
	}
}

func stdout(cmd *cli.Command) io.Writer {
	return cmd.Root().Writer
}

func writeValue(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(v); err != nil {
			return fmt.Errorf("failed to serialize to JSON: %w", err)
		}
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return fmt.Errorf("failed to serialize to YAML: %w", err)
		}
		return encoder.Close()
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
	return nil
}
