package ui

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Table is a header row plus data rows, rendered with columns padded to
// their display width.
type Table struct {
	Headers []string
	Rows    [][]string
}

func (t *Table) Append(cells ...string) { t.Rows = append(t.Rows, cells) }

func (t *Table) widths() []int {
	n := len(t.Headers)
	for _, r := range t.Rows {
		n = max(n, len(r))
	}
	w := make([]int, n)
	for i, h := range t.Headers {
		w[i] = runewidth.StringWidth(h)
	}
	for _, r := range t.Rows {
		for i, c := range r {
			w[i] = max(w[i], runewidth.StringWidth(c))
		}
	}
	return w
}

func (t *Table) Render(w io.Writer, st Styles) error {
	widths := t.widths()
	row := func(cells []string, header bool) string {
		parts := make([]string, len(widths))
		for i := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			if i < len(widths)-1 {
				cell = runewidth.FillRight(cell, widths[i])
			}
			if header {
				cell = st.paint(st.Header, cell)
			}
			parts[i] = cell
		}
		return strings.TrimRight(strings.Join(parts, "  "), " ") + "\n"
	}
	if len(t.Headers) > 0 {
		if _, err := io.WriteString(w, row(t.Headers, true)); err != nil {
			return err
		}
	}
	for _, r := range t.Rows {
		if _, err := io.WriteString(w, row(r, false)); err != nil {
			return err
		}
	}
	return nil
}
