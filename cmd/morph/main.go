package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"morph/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "morph",
	Short: "Inspect and edit TypeScript source through its syntax tree",
	Long: `morph parses TypeScript-like source into a mutable object model and
applies edits that keep every untouched node, comment and blank line intact.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupRun,
	PersistentPostRun: func(cmd *cobra.Command, args []string) { runCleanup() },
}

func main() {
	rootCmd.Version = version.String()

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(refsCmd)
	rootCmd.AddCommand(docsCmd)
	rootCmd.AddCommand(journalCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("config", "", "path to morph.toml (default: nearest one above the working directory)")
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Int("max-diagnostics", 20, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().String("trace", "", "trace output file (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-mode", "", "trace storage (stream|ring|both)")
	rootCmd.PersistentFlags().Int("trace-ring-size", 4096, "events kept by the ring tracer")

	if err := rootCmd.Execute(); err != nil {
		runCleanup()
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
