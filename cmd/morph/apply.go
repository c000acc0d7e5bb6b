package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"morph/internal/compiler"
	"morph/internal/journal"
	"morph/internal/observ"
	"morph/internal/script"
	"morph/internal/source"
	"morph/internal/verify"
)

var applyCmd = &cobra.Command{
	Use:   "apply [flags] script.toml",
	Short: "Run an edit script",
	Long: `apply runs the [[edit]] entries of a TOML script in order. File paths
in the script are relative to the script's directory. Nothing is written
when an edit fails.`,
	Args: cobra.ExactArgs(1),
	RunE: runApply,
}

func init() {
	applyCmd.Flags().Bool("dry-run", false, "print the edited files instead of saving them")
	applyCmd.Flags().Bool("verify", false, "reject edits the tree-sitter TypeScript grammar does not accept")
	applyCmd.Flags().String("journal", "", "write a msgpack journal of every committed edit to this file")
	applyCmd.Flags().Bool("timings", false, "print parse and reconcile timings")
}

func runApply(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	dryRun, err := flags.GetBool("dry-run")
	if err != nil {
		return fmt.Errorf("failed to get dry-run flag: %w", err)
	}
	check, err := flags.GetBool("verify")
	if err != nil {
		return fmt.Errorf("failed to get verify flag: %w", err)
	}
	journalPath, err := flags.GetString("journal")
	if err != nil {
		return fmt.Errorf("failed to get journal flag: %w", err)
	}
	timings, err := flags.GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	s, err := script.Load(args[0])
	if err != nil {
		return err
	}

	var (
		p    *compiler.Project
		opts compiler.Options
		jr   *journal.Journal
	)
	if check {
		opts.Validators = append(opts.Validators, verify.Validator{})
	}
	if journalPath != "" {
		jr = journal.New(func(id source.FileID) string {
			if sf := p.SourceFileByID(id); sf != nil {
				return sf.FilePath()
			}
			return ""
		})
		opts.Recorder = jr
	}
	if timings {
		opts.Timer = observ.NewTimer()
	}
	p, err = newProject(cmd, filepath.Dir(args[0]), opts)
	if err != nil {
		return err
	}

	results, err := script.Run(cmd.Context(), p, s)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	changed := p.UnsavedSourceFiles()
	if dryRun {
		for _, sf := range changed {
			fmt.Fprintf(out, "%s\n%s", infoColor.Sprintf("=== %s", sf.FilePath()), sf.Document().Text())
		}
	} else {
		save := func() error { return p.Save(cmd.Context()) }
		if opts.Timer != nil {
			err = opts.Timer.Track("save", save)
		} else {
			err = save()
		}
		if err != nil {
			return err
		}
	}
	if jr != nil {
		if err := jr.WriteFile(journalPath); err != nil {
			return fmt.Errorf("failed to write journal: %w", err)
		}
	}

	verb := "applied"
	if dryRun {
		verb = "would apply"
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s %d edits to %d files\n", okColor.Sprint(verb), len(results), len(changed))
	if opts.Timer != nil {
		fmt.Fprint(cmd.ErrOrStderr(), opts.Timer.Summary())
	}
	return nil
}
