package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"morph/internal/journal"
	"morph/internal/ui"
)

var journalCmd = &cobra.Command{
	Use:   "journal [flags] file.mp",
	Short: "Print a journal written by apply --journal",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournal,
}

func init() {
	journalCmd.Flags().BoolP("verbose", "v", false, "list the text edits of every entry")
}

func runJournal(cmd *cobra.Command, args []string) error {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return fmt.Errorf("failed to get verbose flag: %w", err)
	}
	jf, err := journal.Read(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s schema %d, %d entries, created %s\n",
		infoColor.Sprint(args[0]), jf.Schema, len(jf.Entries), jf.Created.Format("2006-01-02 15:04:05Z07:00"))

	tb := ui.Table{Headers: []string{"#", "op", "file", "gen", "edits", "kept", "forgotten"}}
	for i, e := range jf.Entries {
		tb.Append(strconv.Itoa(i+1), e.Op, e.Path, strconv.FormatUint(e.Generation, 10),
			strconv.Itoa(len(e.Edits)), strconv.Itoa(e.Retained), strconv.Itoa(e.Forgotten))
		if verbose {
			for _, ed := range e.Edits {
				tb.Append("", "", dimColor.Sprintf("[%d,%d)", ed.Start, ed.End), "", strconv.Quote(ed.Text), "", "")
			}
		}
	}
	return tb.Render(out, styles())
}
