// Package cli provides the command-line interface for skyjson.
package cli

import (
	"fmt"
	"os"

	"github.com/skyjson/skyjson/internal/cli/commands"
	"github.com/skyjson/skyjson/internal/cli/config"
	"github.com/skyjson/skyjson/pkg/arena"
	"github.com/skyjson/skyjson/pkg/json"
	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "0.1.0"

var cfgFile string

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "skyjson",
		Short: "skyjson - arena-backed JSON tool",
		Long: `skyjson parses and re-prints JSON using a fixed-capacity arena.

Parsing draws all value storage from one arena sized up front, so a
single configuration knob bounds memory for the whole run. Output is
always compact: no whitespace, insertion order preserved, duplicate
object keys kept.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			ctx := config.NewContext(cmd.Context(), cfg)
			ctx = config.WithLogger(ctx, cfg.Logger(cmd.ErrOrStderr()))
			cmd.SetContext(ctx)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./skyjson.yaml)")
	rootCmd.PersistentFlags().Int("arena-capacity", arena.DefaultCapacity, "Arena capacity in bytes")
	rootCmd.PersistentFlags().Int("max-depth", json.DefaultMaxDepth, "Maximum nesting depth")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (none|error|warn|info|debug)")

	_ = rootCmd.RegisterFlagCompletionFunc("log-level", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"none", "error", "warn", "info", "debug"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(commands.NewFmtCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand(Version))

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
