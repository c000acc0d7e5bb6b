package script

import (
	"context"
	"errors"
	"strings"
	"testing"

	"morph/internal/compiler"
	"morph/internal/errs"
	"morph/internal/fsys"
	"morph/internal/manip"
)

func TestParseSelector(t *testing.T) {
	tests := []struct {
		in      string
		want    Selector
		wantErr bool
	}{
		{in: "class:C", want: Selector{Kind: "class", Name: "C"}},
		{in: "property:C.p", want: Selector{Kind: "property", Parent: "C", Name: "p"}},
		{in: "member:Color.Red", want: Selector{Kind: "member", Parent: "Color", Name: "Red"}},
		{in: "variable:x", want: Selector{Kind: "variable", Name: "x"}},
		{in: "C", wantErr: true},
		{in: "class:", wantErr: true},
		{in: "class:A.B", wantErr: true},
		{in: "property:C", wantErr: true},
		{in: "widget:w", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseSelector(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseSelector(%q) = %+v, want error", tt.in, got)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseSelector(%q) = %+v, %v; want %+v", tt.in, got, err, tt.want)
		}
		if got.String() != tt.in {
			t.Errorf("String() = %q, want %q", got.String(), tt.in)
		}
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name, text, wantErr string
	}{
		{"empty", "", "missing [[edit]]"},
		{"unknown op", "[[edit]]\nfile = \"a.ts\"\ntarget = \"class:C\"\nop = \"explode\"\n", "unknown op"},
		{"no file", "[[edit]]\ntarget = \"class:C\"\nop = \"remove\"\n", "missing file"},
		{"no text", "[[edit]]\nfile = \"a.ts\"\ntarget = \"class:C\"\nop = \"rename\"\n", "needs text"},
		{"order without value", "[[edit]]\nfile = \"a.ts\"\ntarget = \"class:C\"\nop = \"set-order\"\n", "integer value"},
		{"toggle with string", "[[edit]]\nfile = \"a.ts\"\ntarget = \"class:C\"\nop = \"toggle-modifier\"\ntext = \"export\"\nvalue = \"yes\"\n", "boolean"},
		{"initializer text and value", "[[edit]]\nfile = \"a.ts\"\ntarget = \"variable:v\"\nop = \"set-initializer\"\ntext = \"1\"\nvalue = \"x\"\n", "not both"},
		{"unknown key", "[[edit]]\nfile = \"a.ts\"\ntarget = \"class:C\"\nop = \"remove\"\ncolour = 1\n", "unknown key"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.text)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Parse = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func newProject(t *testing.T, files map[string]string) (*compiler.Project, *fsys.MemoryHost) {
	t.Helper()
	h := fsys.NewMemoryHost()
	for name, text := range files {
		if err := h.WriteFile(context.Background(), name, []byte(text)); err != nil {
			t.Fatal(err)
		}
	}
	return compiler.NewProject(compiler.Options{Host: h}), h
}

func TestRun(t *testing.T) {
	src := "class Box {\n    size = 1;\n    grow() {}\n}\nlet n = 2;\nenum Color { Red, Green, Blue }\n"
	p, _ := newProject(t, map[string]string{"/src/box.ts": src})
	s, err := Parse(`
[[edit]]
file = "src/box.ts"
target = "property:Box.size"
op = "set-initializer"
text = "10"

[[edit]]
file = "src/box.ts"
target = "property:Box.size"
op = "add-modifier"
text = "private"

[[edit]]
file = "src/box.ts"
target = "class:Box"
op = "toggle-modifier"
text = "export"

[[edit]]
file = "src/box.ts"
target = "variable:n"
op = "rename"
text = "count"

[[edit]]
file = "src/box.ts"
target = "member:Color.Green"
op = "remove"

[[edit]]
file = "src/box.ts"
target = "method:Box.grow"
op = "set-order"
value = 0
`)
	if err != nil {
		t.Fatal(err)
	}
	results, err := Run(context.Background(), p, s)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 6 {
		t.Fatalf("results = %d", len(results))
	}
	want := "export class Box {\n    grow() {}\n    private size = 10;\n}\nlet count = 2;\nenum Color { Red, Blue }\n"
	if got := results[0].File.Document().Text(); got != want {
		t.Fatalf("text =\n%s\nwant\n%s", got, want)
	}
	for i := 1; i < len(results); i++ {
		if results[i].Generation <= results[i-1].Generation {
			t.Errorf("edit %d did not advance the generation", results[i].Index)
		}
	}
}

func TestRunSetDoc(t *testing.T) {
	p, _ := newProject(t, map[string]string{"/a.ts": "function f() {}\n"})
	run := func(text string) string {
		t.Helper()
		s, err := Parse("[[edit]]\nfile = \"a.ts\"\ntarget = \"function:f\"\nop = \"set-doc\"\ntext = \"" + text + "\"\n")
		if err != nil {
			t.Fatal(err)
		}
		res, err := Run(context.Background(), p, s)
		if err != nil {
			t.Fatal(err)
		}
		return res[0].File.Document().Text()
	}
	if got := run("Adds."); got != "/**\n * Adds.\n */\nfunction f() {}\n" {
		t.Fatalf("add doc = %q", got)
	}
	if got := run("Sums."); got != "/**\n * Sums.\n */\nfunction f() {}\n" {
		t.Fatalf("set doc = %q", got)
	}
	if got := run(""); got != "function f() {}\n" {
		t.Fatalf("remove doc = %q", got)
	}
}

func TestRunStopsAtFirstFailure(t *testing.T) {
	p, _ := newProject(t, map[string]string{"/a.ts": "let a = 1;\n"})
	s, err := Parse(`
[[edit]]
file = "a.ts"
target = "variable:a"
op = "remove-initializer"

[[edit]]
file = "a.ts"
target = "class:Missing"
op = "remove"

[[edit]]
file = "a.ts"
target = "variable:a"
op = "rename"
text = "b"
`)
	if err != nil {
		t.Fatal(err)
	}
	results, err := Run(context.Background(), p, s)
	if !errors.Is(err, errs.ErrInvalidOperation) {
		t.Fatalf("Run error = %v", err)
	}
	if !strings.Contains(err.Error(), "edit 2") {
		t.Errorf("error does not name the edit: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("results = %d, want 1", len(results))
	}
	if got := p.SourceFile("/a.ts").Document().Text(); got != "let a;\n" {
		t.Errorf("text = %q", got)
	}
}

func TestRunUnsupportedOp(t *testing.T) {
	p, _ := newProject(t, map[string]string{"/a.ts": "enum E { A }\n"})
	s, err := Parse("[[edit]]\nfile = \"a.ts\"\ntarget = \"member:E.A\"\nop = \"add-modifier\"\ntext = \"static\"\n")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Run(context.Background(), p, s); !errors.Is(err, errs.ErrInvalidOperation) {
		t.Fatalf("Run error = %v", err)
	}
	if got := p.SourceFile("/a.ts").Document().Text(); got != "enum E { A }\n" {
		t.Errorf("text = %q", got)
	}
}

func TestRunQuotesStringValue(t *testing.T) {
	h := fsys.NewMemoryHost()
	if err := h.WriteFile(context.Background(), "/a.ts", []byte("let greeting;\n")); err != nil {
		t.Fatal(err)
	}
	settings := manip.DefaultSettings()
	settings.Quote = '\''
	p := compiler.NewProject(compiler.Options{Host: h, Settings: settings})
	s, err := Parse("[[edit]]\nfile = \"a.ts\"\ntarget = \"variable:greeting\"\nop = \"set-initializer\"\nvalue = \"it's\"\n")
	if err != nil {
		t.Fatal(err)
	}
	res, err := Run(context.Background(), p, s)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := res[0].File.Document().Text(), "let greeting = 'it\\'s';\n"; got != want {
		t.Fatalf("text = %q, want %q", got, want)
	}
}
