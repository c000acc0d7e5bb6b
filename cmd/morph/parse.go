package main

import (
	"fmt"
	"os"

	"fortio.org/safecast"
	"github.com/spf13/cobra"

	"morph/internal/parser"
	"morph/internal/ui"
	"morph/internal/verify"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.ts",
	Short: "Print the syntax tree of a source file",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().Bool("verify", false, "also check the file with the tree-sitter TypeScript grammar")
}

func runParse(cmd *cobra.Command, args []string) error {
	path := args[0]
	check, err := cmd.Flags().GetBool("verify")
	if err != nil {
		return fmt.Errorf("failed to get verify flag: %w", err)
	}
	fs, id, src, err := readSource(path)
	if err != nil {
		return err
	}
	limit := maxDiagnostics(cmd)
	maxErrors, err := safecast.Conv[uint](limit)
	if err != nil {
		return err
	}
	tree, bag := parser.ParseFile(id, src, parser.Options{MaxErrors: maxErrors})
	if err := ui.RenderTree(cmd.OutOrStdout(), tree, tree.Root, styles()); err != nil {
		return err
	}
	if bag.Len() > 0 {
		printDiagnostics(os.Stderr, bag, fs, path, limit)
	}
	if check {
		if err := verify.Check(cmd.Context(), src); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	if bag.HasErrors() {
		return fmt.Errorf("%s: syntax errors", path)
	}
	return nil
}
