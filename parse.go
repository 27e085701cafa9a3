package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"showdown-tracker/parser"
	"showdown-tracker/replay"
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Replay a saved battle log",
		Long:  "Reads a replay JSON file or a raw battle log, prints the narration of every applied event and a summary of the final battle state.",
		Args:  cobra.ExactArgs(1),
		RunE:  runParse,
	}
	cmd.Flags().Bool("diagnostics", false, "List lines that could not be applied")
	cmd.Flags().BoolP("quiet", "q", false, "Print only the final summary")
	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	quiet, _ := cmd.Flags().GetBool("quiet")
	showDiagnostics, _ := cmd.Flags().GetBool("diagnostics")

	rep, err := replay.Load(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	opts := []parser.Option{parser.WithLogger(logger)}
	if !quiet {
		opts = append(opts, parser.WithNarrationSink(narrationPrinter(out, cfg.Narration.TurnPrefix)))
	}
	p := parser.ParseLog(rep.Log, opts...)
	logger.Info("parsed replay", "file", args[0], "replay_id", rep.ID, "turns", p.State().Turn, "skipped", len(p.Diagnostics()))

	if !quiet {
		fmt.Fprintln(out)
	}
	fmt.Fprint(out, parser.RenderBattleState(p.State()))

	if showDiagnostics && len(p.Diagnostics()) > 0 {
		fmt.Fprintf(out, "\n%d lines skipped:\n", len(p.Diagnostics()))
		for _, d := range p.Diagnostics() {
			fmt.Fprintf(out, "  line %d: %v\n", d.LineNo, d.Err)
		}
	}
	return nil
}
