// Package commands implements the skyjson subcommands.
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/skyjson/skyjson/internal/cli/config"
	"github.com/skyjson/skyjson/pkg/arena"
	"github.com/skyjson/skyjson/pkg/bstr"
	"github.com/skyjson/skyjson/pkg/json"
	"github.com/spf13/cobra"
)

// NewFmtCommand creates the fmt command: parse JSON text and write it
// back in compact form.
func NewFmtCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fmt [file]",
		Short: "Rewrite JSON in compact form",
		Long: `Parse a JSON document from a file or stdin and print it with all
insignificant whitespace removed. Object member order and duplicate
keys are preserved exactly as they appear in the input.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromContext(cmd.Context())
			logger := config.GetLogger(cmd.Context())

			input, name, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			a := arena.New(cfg.Arena.Capacity)
			v, _, err := json.Parse(a, input,
				json.WithMaxDepth(cfg.Parser.MaxDepth),
				json.WithLogger(logger))
			if err != nil {
				return fmt.Errorf("parse %s: %w", name, err)
			}

			out, err := json.Print(a, v,
				json.WithMaxDepth(cfg.Parser.MaxDepth),
				json.WithLogger(logger))
			if err != nil {
				return fmt.Errorf("print %s: %w", name, err)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.String())
			return nil
		},
	}
}

// readInput returns the JSON text from the file argument, or stdin when
// no file is given, along with a display name for error messages.
func readInput(cmd *cobra.Command, args []string) (bstr.Str, string, error) {
	if len(args) == 1 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return nil, "", err
		}
		return bstr.Str(data), args[0], nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, "", err
	}
	return bstr.Str(data), "stdin", nil
}
