package ui

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"morph/internal/ast"
)

// MaxTokenWidth bounds the token text shown per line.
const MaxTokenWidth = 40

type treeLine struct {
	guide string
	kind  string
	span  string
	text  string
}

// RenderTree writes the subtree under id, one node per line, with spans
// aligned in a column.
func RenderTree(w io.Writer, tree *ast.Tree, id ast.NodeID, st Styles) error {
	var lines []treeLine
	var walk func(id ast.NodeID, prefix string, last, root bool)
	walk = func(id ast.NodeID, prefix string, last, root bool) {
		guide, next := "", ""
		if !root {
			guide = prefix + "├─ "
			next = prefix + "│  "
			if last {
				guide = prefix + "└─ "
				next = prefix + "   "
			}
		}
		sp := tree.Span(id)
		l := treeLine{
			guide: guide,
			kind:  tree.Kind(id).String(),
			span:  fmt.Sprintf("[%d,%d)", sp.Start, sp.End),
		}
		if tree.Kind(id).IsToken() {
			l.text = runewidth.Truncate(strconv.Quote(tree.Text(id)), MaxTokenWidth, "…")
		}
		lines = append(lines, l)
		kids := tree.Children(id)
		for i, c := range kids {
			walk(c, next, i == len(kids)-1, false)
		}
	}
	walk(id, "", true, true)

	col := 0
	for _, l := range lines {
		col = max(col, runewidth.StringWidth(l.guide+l.kind))
	}
	for _, l := range lines {
		pad := strings.Repeat(" ", col-runewidth.StringWidth(l.guide+l.kind)+2)
		line := st.paint(st.Guide, l.guide) + st.paint(st.Kind, l.kind) + pad + st.paint(st.Span, l.span)
		if l.text != "" {
			line += " " + st.paint(st.Token, l.text)
		}
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}
	return nil
}
