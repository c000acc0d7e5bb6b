package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"morph/internal/diag"
	"morph/internal/lexer"
	"morph/internal/ui"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.ts",
	Short: "Print the tokens of a source file",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

type tokenJSON struct {
	Kind    string `json:"kind"`
	Start   uint32 `json:"start"`
	End     uint32 `json:"end"`
	Text    string `json:"text"`
	Leading int    `json:"leading_trivia"`
}

func runTokenize(cmd *cobra.Command, args []string) error {
	path := args[0]
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	fs, id, src, err := readSource(path)
	if err != nil {
		return err
	}
	bag := diag.NewBag(maxDiagnostics(cmd))
	toks := lexer.Tokenize(id, src, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	if bag.Len() > 0 {
		printDiagnostics(os.Stderr, bag, fs, path, maxDiagnostics(cmd))
	}

	switch format {
	case "pretty":
		tb := ui.Table{Headers: []string{"pos", "kind", "span", "text", "trivia"}}
		for _, tok := range toks {
			lc, _ := fs.Resolve(tok.Span)
			tb.Append(
				fmt.Sprintf("%d:%d", lc.Line, lc.Col),
				tok.Kind.String(),
				fmt.Sprintf("[%d,%d)", tok.Span.Start, tok.Span.End),
				strconv.Quote(tok.Text),
				strconv.Itoa(len(tok.Leading)),
			)
		}
		return tb.Render(cmd.OutOrStdout(), styles())
	case "json":
		out := make([]tokenJSON, 0, len(toks))
		for _, tok := range toks {
			out = append(out, tokenJSON{
				Kind:    tok.Kind.String(),
				Start:   tok.Span.Start,
				End:     tok.Span.End,
				Text:    tok.Text,
				Leading: len(tok.Leading),
			})
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
