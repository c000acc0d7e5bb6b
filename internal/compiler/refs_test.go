package compiler

import (
	"bytes"
	"errors"
	"testing"

	"morph/internal/ast"
	"morph/internal/errs"
	"morph/internal/manip"
)

func TestRenameAcrossFiles(t *testing.T) {
	p := NewProject(Options{})
	a := must(p.CreateSourceFile("/a.ts", "class Box {\n    size = 1;\n}\n"))
	b := must(p.CreateSourceFile("/b.ts", "let b = new Box();\n"))
	c := must(a.Class("Box"))
	genA, genB := a.Generation(), b.Generation()

	if err := c.Rename("Crate"); err != nil {
		t.Fatal(err)
	}
	checkFile(t, a, "class Crate {\n    size = 1;\n}\n")
	checkFile(t, b, "let b = new Crate();\n")
	if a.Generation() != genA+1 || b.Generation() != genB+1 {
		t.Errorf("generations = %d, %d; want one edit per file", a.Generation(), b.Generation())
	}
	if c.IsForgotten() {
		t.Fatal("renamed class was forgotten")
	}
	if name := must(c.Name()); name != "Crate" {
		t.Errorf("Name() = %q", name)
	}
	if c2 := must(a.Class("Crate")); c2 != c {
		t.Errorf("lookup by the new name returned a different wrapper")
	}
}

func TestRenameIsAllOrNothing(t *testing.T) {
	reject := manip.ValidatorFunc(func(src []byte) error {
		if bytes.Contains(src, []byte("new Crate")) {
			return errors.New("no crates here")
		}
		return nil
	})
	p := NewProject(Options{Validators: []manip.Validator{reject}})
	a := must(p.CreateSourceFile("/a.ts", "class Box {}\n"))
	b := must(p.CreateSourceFile("/b.ts", "let b = new Box();\n"))
	c := must(a.Class("Box"))
	genA, genB := a.Generation(), b.Generation()

	if err := c.Rename("Crate"); !errors.Is(err, errs.ErrInvalidOperation) {
		t.Fatalf("Rename = %v, want the validator to reject it", err)
	}
	checkFile(t, a, "class Box {}\n")
	checkFile(t, b, "let b = new Box();\n")
	if a.Generation() != genA || b.Generation() != genB {
		t.Errorf("generations moved to %d, %d", a.Generation(), b.Generation())
	}
	if name := must(c.Name()); name != "Box" {
		t.Errorf("Name() = %q", name)
	}
}

func TestRenameProperty(t *testing.T) {
	src := "class Box {\n    size = 1;\n    grow() { this.size++; }\n}\n"
	sf := newFile(t, src)
	prop := must(must(sf.Class("Box")).Property("size"))
	if err := prop.Rename("width"); err != nil {
		t.Fatal(err)
	}
	checkFile(t, sf, "class Box {\n    width = 1;\n    grow() { this.width++; }\n}\n")
}

func TestRenameUnresolved(t *testing.T) {
	sf := newFile(t, "foo();\n")
	ids := must(sf.DescendantsOfKind(ast.KindIdentifier))
	if len(ids) != 1 {
		t.Fatalf("found %d identifiers", len(ids))
	}
	ident := ids[0].(*Identifier)
	if err := ident.Rename("bar"); err != nil {
		t.Fatal(err)
	}
	checkFile(t, sf, "bar();\n")
	if err := ident.Rename(" "); !errors.Is(err, errs.ErrArgumentNullOrWhitespace) {
		t.Fatalf("blank rename error = %v", err)
	}
}

func TestRenameToSameNameIsNoop(t *testing.T) {
	sf := newFile(t, "let a = 1;\na;\n")
	v := must(sf.VariableDeclaration("a"))
	gen := sf.Generation()
	if err := v.Rename("a"); err != nil {
		t.Fatal(err)
	}
	if sf.Generation() != gen {
		t.Errorf("no-op rename committed a generation")
	}
}

func TestIdentifierQueries(t *testing.T) {
	src := "function add(a: number, b: number): number { return a + b; }\nlet x = add(1, 2);\nx = add(x, 3);\n"
	sf := newFile(t, src)
	fn := must(sf.Function("add"))
	name := must(fn.NameNode())

	found := must(name.FindReferences())
	if len(found) != 1 {
		t.Fatalf("referenced symbols = %d", len(found))
	}
	refs := found[0].References()
	if len(refs) != 3 {
		t.Fatalf("references = %d, want 3", len(refs))
	}
	if !refs[0].IsDefinition || refs[1].IsDefinition {
		t.Errorf("definition flags = %v, %v", refs[0].IsDefinition, refs[1].IsDefinition)
	}
	for _, r := range refs {
		if r.SourceFile != sf {
			t.Errorf("reference in another file")
		}
		if got := must(r.Node.Base().Text()); got != "add" {
			t.Errorf("reference text = %q", got)
		}
	}
	if def := found[0].Definition(); def.Kind != "function" || def.Display != "function add(a: number, b: number): number" {
		t.Errorf("definition = %+v", def)
	}

	x := must(sf.VariableDeclaration("x"))
	xname := must(x.NameNode())
	xrefs := must(xname.FindReferences())[0].References()
	writes := 0
	for _, r := range xrefs {
		if r.IsWriteAccess {
			writes++
		}
	}
	if len(xrefs) != 3 || writes != 2 {
		t.Errorf("x references = %d with %d writes, want 3 with 2", len(xrefs), writes)
	}

	defs := must(xname.Definitions())
	if len(defs) != 1 || defs[0].Node == nil {
		t.Fatalf("definitions = %+v", defs)
	}
	if got := must(defs[0].Node.Base().Text()); got != "x" {
		t.Errorf("definition node text = %q", got)
	}
}

func TestImplementationsThroughProject(t *testing.T) {
	p := NewProject(Options{})
	a := must(p.CreateSourceFile("/shape.ts", "interface Shape { area(): number; }\n"))
	must(p.CreateSourceFile("/square.ts", "class Square implements Shape { area() { return 1; } }\n"))
	iface := must(a.Interface("Shape"))
	name := must(iface.NameNode())
	impls := must(name.Implementations())
	if len(impls) != 1 {
		t.Fatalf("implementations = %d", len(impls))
	}
	if impls[0].SourceFile == nil || impls[0].SourceFile.FilePath() != "/square.ts" {
		t.Fatalf("implementation file = %v", impls[0].SourceFile)
	}
	if got := must(impls[0].Node.Base().Text()); got != "Square" {
		t.Errorf("implementation node = %q", got)
	}
}
