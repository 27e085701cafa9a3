// Command showdown tracks battle state from Pokémon Showdown battle logs,
// either from a saved replay or from a live battle room.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"showdown-tracker/config"
	"showdown-tracker/logging"
	"showdown-tracker/parser"
)

var version = "0.1.0-dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "showdown",
		Short:         "Reconstruct battle state from Showdown battle logs",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("config", "", "Path to config file (default ./"+config.DefaultConfigFile+" if present)")
	rootCmd.PersistentFlags().String("log-level", "", "Override log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newParseCmd(),
		newWatchCmd(),
	)
	return rootCmd
}

// setup loads configuration and builds the logger for a command. Logs go to
// stderr so narration on stdout stays clean.
func setup(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Log.Level = level
	}

	logger, err := logging.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, nil, fmt.Errorf("building logger: %w", err)
	}
	return cfg, logger, nil
}

func narrationPrinter(w io.Writer, turnPrefix bool) func(parser.Narration) {
	return func(n parser.Narration) {
		if turnPrefix {
			fmt.Fprintf(w, "Turn %d: %s\n", n.Turn, n.Text)
			return
		}
		fmt.Fprintln(w, n.Text)
	}
}
