package ui

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"morph/internal/parser"
)

func TestRenderTree(t *testing.T) {
	tree, bag := parser.ParseFile(0, []byte("let a = 1;\n"), parser.Options{})
	if bag.HasErrors() {
		t.Fatal(bag.Summary(5))
	}
	var sb strings.Builder
	if err := RenderTree(&sb, tree, tree.Root, Styles{}); err != nil {
		t.Fatal(err)
	}
	out := sb.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if !strings.HasPrefix(lines[0], "SourceFile") {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.Contains(out, "VariableStatement") || !strings.Contains(out, `"let"`) {
		t.Errorf("tree output is missing nodes:\n%s", out)
	}
	if !strings.Contains(out, "└─ ") {
		t.Errorf("tree output has no guides:\n%s", out)
	}
	col := strings.Index(lines[0], "[")
	for _, l := range lines {
		if got := runewidth.StringWidth(l[:strings.Index(l, "[")]); got != col {
			t.Errorf("span column of %q = %d, want %d", l, got, col)
		}
	}
}

func TestTableAlignsWideRunes(t *testing.T) {
	tb := Table{Headers: []string{"name", "kind"}}
	tb.Append("漢字", "class")
	tb.Append("x", "let")
	var sb strings.Builder
	if err := tb.Render(&sb, Styles{}); err != nil {
		t.Fatal(err)
	}
	want := "name  kind\n漢字  class\nx     let\n"
	if sb.String() != want {
		t.Fatalf("table =\n%q\nwant\n%q", sb.String(), want)
	}
}
