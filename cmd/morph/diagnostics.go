package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"morph/internal/diag"
	"morph/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan)
	okColor      = color.New(color.FgGreen, color.Bold)
	dimColor     = color.New(color.Faint)
)

// printDiagnostics writes one "path:line:col: severity[ID]: message" line
// per diagnostic, followed by its notes.
func printDiagnostics(w io.Writer, bag *diag.Bag, fs *source.FileSet, path string, limit int) {
	for i, d := range bag.Items() {
		if limit > 0 && i == limit {
			fmt.Fprintf(w, "... and %d more\n", bag.Len()-limit)
			return
		}
		start, _ := fs.Resolve(d.Primary)
		sev := infoColor
		switch d.Severity {
		case diag.SevError:
			sev = errorColor
		case diag.SevWarning:
			sev = warningColor
		}
		fmt.Fprintf(w, "%s:%d:%d: %s: %s\n", path, start.Line, start.Col,
			sev.Sprintf("%s[%s]", d.Severity, d.Code.ID()), d.Message)
		for _, n := range d.Notes {
			ns, _ := fs.Resolve(n.Span)
			fmt.Fprintf(w, "  %s %d:%d: %s\n", dimColor.Sprint("note"), ns.Line, ns.Col, n.Msg)
		}
	}
}
