package langsvc

import (
	"context"
	"strings"
	"testing"

	"morph/internal/parser"
	"morph/internal/source"
)

type program []File

func (p program) Files() []File { return p }

func parse(t *testing.T, id source.FileID, src string) File {
	t.Helper()
	tree, bag := parser.ParseFile(id, []byte(src), parser.Options{})
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics for %q:\n%s", src, bag.Summary(10))
	}
	return File{ID: id, Path: "/f" + string(rune('0'+id)) + ".ts", Tree: tree}
}

func newProgram(t *testing.T, srcs ...string) program {
	t.Helper()
	var p program
	for i, src := range srcs {
		p = append(p, parse(t, source.FileID(i+1), src))
	}
	return p
}

// posOf returns an offset inside the n-th (0-based) occurrence of word.
func posOf(t *testing.T, src, word string, n int) uint32 {
	t.Helper()
	off := 0
	for i := 0; ; i++ {
		j := strings.Index(src[off:], word)
		if j < 0 {
			t.Fatalf("occurrence %d of %q not found", n, word)
		}
		if i == n {
			return uint32(off + j + 1)
		}
		off += j + len(word)
	}
}

func texts(p program, entries []ReferenceEntry) []string {
	var out []string
	for _, e := range entries {
		for _, f := range p {
			if f.ID == e.File {
				out = append(out, f.Tree.Text(e.Node))
			}
		}
	}
	return out
}

func TestFindReferencesWriteAccess(t *testing.T) {
	src := "let count = 0;\nfunction inc() { count += 1; return count; }\ncount++;\n"
	p := newProgram(t, src)
	svc := New(p, nil)

	got, err := svc.FindReferences(context.Background(), 1, posOf(t, src, "count", 0))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("symbols = %d, want 1", len(got))
	}
	refs := got[0].References
	want := []struct{ def, write bool }{{true, true}, {false, true}, {false, false}, {false, true}}
	if len(refs) != len(want) {
		t.Fatalf("references = %d, want %d", len(refs), len(want))
	}
	for i, w := range want {
		if refs[i].IsDefinition != w.def || refs[i].IsWriteAccess != w.write {
			t.Errorf("ref %d: def=%v write=%v, want def=%v write=%v", i, refs[i].IsDefinition, refs[i].IsWriteAccess, w.def, w.write)
		}
	}
	if got[0].Definition.Kind != KindLet || got[0].Definition.Name != "count" {
		t.Errorf("definition = %+v", got[0].Definition)
	}
}

func TestFindReferencesAcrossFiles(t *testing.T) {
	a := "class Box {\n  size: number;\n  grow() { this.size = this.size + 1; }\n}\n"
	b := "const box = new Box();\n"
	p := newProgram(t, a, b)
	svc := New(p, nil)
	ctx := context.Background()

	got, err := svc.FindReferences(ctx, 2, posOf(t, b, "Box", 0))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || len(got[0].References) != 2 {
		t.Fatalf("Box references = %+v", got)
	}
	if got[0].References[0].File != 1 || got[0].References[1].File != 2 {
		t.Errorf("references not in file order: %+v", got[0].References)
	}

	got, err = svc.FindReferences(ctx, 1, posOf(t, a, "size", 0))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("size symbols = %d", len(got))
	}
	if n := len(got[0].References); n != 3 {
		t.Fatalf("size references = %d, want 3: %v", n, texts(p, got[0].References))
	}
	if !got[0].References[1].IsWriteAccess || got[0].References[2].IsWriteAccess {
		t.Errorf("this.size write access = %v, %v", got[0].References[1].IsWriteAccess, got[0].References[2].IsWriteAccess)
	}
	if got[0].Definition.ContainerName != "Box" {
		t.Errorf("container = %q", got[0].Definition.ContainerName)
	}
}

func TestNamespaceMembers(t *testing.T) {
	src := "namespace NS {\n  export const v = 1;\n  const hidden = 2;\n  export function f() { return v + hidden; }\n}\nNS.v;\nNS.f();\n"
	p := newProgram(t, src)
	svc := New(p, nil)
	ctx := context.Background()

	got, err := svc.FindReferences(ctx, 1, posOf(t, src, "v", 1))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || len(got[0].References) != 3 {
		t.Fatalf("v references = %+v", got)
	}

	got, err = svc.FindReferences(ctx, 1, posOf(t, src, "f()", 1))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || len(got[0].References) != 2 {
		t.Fatalf("f references = %+v", got)
	}
}

func TestShadowedParameter(t *testing.T) {
	src := "let x = 1;\nfunction g(x: number) { return x; }\nx;\n"
	p := newProgram(t, src)
	svc := New(p, nil)
	ctx := context.Background()

	got, err := svc.FindReferences(ctx, 1, posOf(t, src, "x", 0))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || len(got[0].References) != 2 {
		t.Fatalf("outer x references = %+v", got)
	}

	got, err = svc.FindReferences(ctx, 1, posOf(t, src, "x", 2))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Definition.Kind != KindParameter || len(got[0].References) != 2 {
		t.Fatalf("parameter x references = %+v", got)
	}
}

func TestPropertyKeyIsNotAReference(t *testing.T) {
	src := "let count = 1;\nconst o = { count: count };\n"
	p := newProgram(t, src)
	svc := New(p, nil)

	got, err := svc.FindReferences(context.Background(), 1, posOf(t, src, "count", 1))
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Fatalf("property key resolved to %+v", got)
	}
	got, err = svc.FindReferences(context.Background(), 1, posOf(t, src, "count", 0))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || len(got[0].References) != 2 {
		t.Fatalf("count references = %+v", got)
	}
}

func TestDefinitionsMergeAndDisplay(t *testing.T) {
	a := "interface Opts { a: number; }\nfunction add(a: number, b: number): number { return a + b; }\n"
	b := "interface Opts { b: string; }\nadd(1, 2);\n"
	p := newProgram(t, a, b)
	svc := New(p, nil)
	ctx := context.Background()

	defs, err := svc.Definitions(ctx, 2, posOf(t, b, "Opts", 0))
	if err != nil {
		t.Fatal(err)
	}
	if len(defs) != 2 || defs[0].File != 1 || defs[1].File != 2 {
		t.Fatalf("Opts definitions = %+v", defs)
	}

	defs, err = svc.Definitions(ctx, 2, posOf(t, b, "add", 0))
	if err != nil {
		t.Fatal(err)
	}
	if len(defs) != 1 {
		t.Fatalf("add definitions = %+v", defs)
	}
	if want := "function add(a: number, b: number): number"; defs[0].Display != want {
		t.Errorf("display = %q, want %q", defs[0].Display, want)
	}
}

func TestImplementations(t *testing.T) {
	src := "interface Shape { area(): number; }\n" +
		"class Square implements Shape { area() { return 1; } }\n" +
		"class Big extends Square { area() { return 2; } }\n"
	p := newProgram(t, src)
	svc := New(p, nil)
	ctx := context.Background()
	tree := p[0].Tree

	names := func(locs []ImplementationLocation) []string {
		var out []string
		for _, l := range locs {
			out = append(out, tree.Text(l.Node))
		}
		return out
	}

	got, err := svc.Implementations(ctx, 1, posOf(t, src, "Shape", 0))
	if err != nil {
		t.Fatal(err)
	}
	if n := names(got); strings.Join(n, ",") != "Square,Big" {
		t.Fatalf("Shape implementations = %v", n)
	}

	got, err = svc.Implementations(ctx, 1, posOf(t, src, "area", 0))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Location.Span.Start >= got[1].Location.Span.Start {
		t.Fatalf("area implementations = %+v", got)
	}
	for _, l := range got {
		if l.Kind != KindMethod {
			t.Errorf("kind = %q", l.Kind)
		}
	}
}

func TestNormalizedNames(t *testing.T) {
	src := "let caf\u00e9 = 1;\ncafe\u0301;\n"
	p := newProgram(t, src)
	svc := New(p, nil)

	got, err := svc.FindReferences(context.Background(), 1, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || len(got[0].References) != 2 {
		t.Fatalf("references = %+v", got)
	}
}

func TestIndexIsCachedPerTree(t *testing.T) {
	src := "let a = 1;\n"
	p := newProgram(t, src)
	svc := New(p, nil)
	ctx := context.Background()

	first, err := svc.index(ctx)
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.index(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Fatalf("index rebuilt for unchanged trees")
	}
	p[0] = parse(t, 1, "let a = 2;\n")
	svc.prog = p
	third, err := svc.index(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if third == first {
		t.Fatalf("index not rebuilt after a tree changed")
	}
}

func TestCanceledContext(t *testing.T) {
	p := newProgram(t, "let a = 1;\n")
	svc := New(p, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := svc.FindReferences(ctx, 1, 4); err == nil {
		t.Fatalf("expected context error")
	}
}
