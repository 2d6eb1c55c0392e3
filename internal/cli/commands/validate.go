package commands

import (
	"errors"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/skyjson/skyjson/internal/cli/config"
	"github.com/skyjson/skyjson/pkg/arena"
	"github.com/skyjson/skyjson/pkg/json"
	"github.com/spf13/cobra"
)

// NewValidateCommand creates the validate command: parse each input and
// report the failure code and byte offset when it is not valid JSON.
func NewValidateCommand() *cobra.Command {
	var showStats bool

	cmd := &cobra.Command{
		Use:   "validate [file...]",
		Short: "Check that inputs parse as JSON",
		Long: `Parse each file (or stdin when no files are given) and report the
result. The arena is reset between files, so one sizing covers the
whole run. With --stats, print per-kind node counts and arena usage.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromContext(cmd.Context())
			logger := config.GetLogger(cmd.Context())

			a := arena.New(cfg.Arena.Capacity)
			names := args
			if len(names) == 0 {
				names = []string{"-"}
			}

			var failed bool
			for _, name := range names {
				// One arena turn per input.
				a.Reset()

				fileArgs := []string{name}
				if name == "-" {
					fileArgs = nil
				}
				input, display, err := readInput(cmd, fileArgs)
				if err != nil {
					return err
				}

				v, rest, err := json.Parse(a, input,
					json.WithMaxDepth(cfg.Parser.MaxDepth),
					json.WithLogger(logger))
				if err != nil {
					failed = true
					reportFailure(cmd, display, err)
					continue
				}

				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", display)
				if rest.TrimLeft().Len() > 0 {
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(),
						"%s: warning: %d bytes of trailing content\n", display, rest.TrimLeft().Len())
				}
				if showStats {
					renderStats(cmd, v, a)
				}
			}

			if failed {
				return errors.New("validation failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showStats, "stats", false, "Print node counts per kind and arena usage")
	return cmd
}

func reportFailure(cmd *cobra.Command, name string, err error) {
	var pe *json.ParseError
	if errors.As(err, &pe) {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s at offset %d\n", name, pe.Code, pe.Offset)
		return
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %v\n", name, err)
}

// renderStats prints a per-kind node count table plus arena usage.
func renderStats(cmd *cobra.Command, v json.Value, a *arena.Arena) {
	counts := map[json.Kind]int{}
	total := 0
	json.Walk(v, func(n json.Value) bool {
		counts[n.Kind()]++
		total++
		return true
	})

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"kind", "count"})
	for _, k := range []json.Kind{
		json.KindObject, json.KindArray, json.KindString,
		json.KindNumber, json.KindBool, json.KindNull,
	} {
		if counts[k] > 0 {
			t.AppendRow(table.Row{k.String(), counts[k]})
		}
	}
	t.AppendFooter(table.Row{"total", total})
	t.Render()

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "arena: %d/%d bytes used\n", a.Used(), a.Capacity())
}
