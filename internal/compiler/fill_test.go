package compiler

import (
	"errors"
	"slices"
	"testing"

	"morph/internal/errs"
	"morph/internal/structure"
)

func TestFillOrderIsCanonical(t *testing.T) {
	for _, w := range []Wrapper{&PropertyDeclaration{}, &MethodDeclaration{}, &ClassDeclaration{}, &VariableStatement{}} {
		caps := fillOrder(w.Capabilities())
		if !slices.IsSorted(caps) {
			t.Errorf("%T fill order %v is not sorted", w, caps)
		}
	}
	if got := Named.String(); got != "Named" {
		t.Errorf("Named.String() = %q", got)
	}
}

func TestFillPropertyDeclaration(t *testing.T) {
	sf := newFile(t, "class C {\n    x = 1;\n}\n")
	x := must(must(sf.Class("C")).Property("x"))

	err := x.Fill(&structure.PropertyDeclaration{
		Scoped:                    structure.Scoped{Scope: structure.Value(structure.ScopePrivate)},
		Staticable:                structure.Staticable{IsStatic: structure.Value(true)},
		Typed:                     structure.Typed{Type: structure.Value("number")},
		InitializerExpressionable: structure.InitializerExpressionable{Initializer: structure.Remove[string]()},
	})
	if err != nil {
		t.Fatal(err)
	}
	checkFile(t, sf, "class C {\n    private static x: number;\n}\n")

	// Unset fields leave the node alone.
	if err := x.Fill(&structure.PropertyDeclaration{}); err != nil {
		t.Fatal(err)
	}
	checkFile(t, sf, "class C {\n    private static x: number;\n}\n")

	err = x.Fill(&structure.PropertyDeclaration{
		Scoped:     structure.Scoped{Scope: structure.Remove[structure.Scope]()},
		Staticable: structure.Staticable{IsStatic: structure.Remove[bool]()},
		Typed:      structure.Typed{Type: structure.Value("string")},
	})
	if err != nil {
		t.Fatal(err)
	}
	checkFile(t, sf, "class C {\n    x: string;\n}\n")
}

func TestFillNameCannotBeRemoved(t *testing.T) {
	sf := newFile(t, "class C {}\n")
	c := must(sf.Class("C"))
	err := c.Fill(&structure.ClassDeclaration{Named: structure.Named{Name: structure.Remove[string]()}})
	if !errors.Is(err, errs.ErrInvalidOperation) {
		t.Fatalf("err = %v, want invalid operation", err)
	}
	checkFile(t, sf, "class C {}\n")
}

func TestFillVariableStatement(t *testing.T) {
	sf := newFile(t, "let a = 1;\n")
	stmt := must(must(sf.VariableDeclaration("a")).VariableStatement())
	err := stmt.Fill(&structure.VariableStatement{
		Exportable:      structure.Exportable{IsExported: structure.Value(true)},
		DeclarationKind: structure.Value(structure.DeclarationConst),
	})
	if err != nil {
		t.Fatal(err)
	}
	checkFile(t, sf, "export const a = 1;\n")
}

func TestFillForgottenNode(t *testing.T) {
	sf := newFile(t, "let a = 1;\nlet b = 2;\n")
	a := must(sf.VariableDeclaration("a"))
	if err := a.Remove(); err != nil {
		t.Fatal(err)
	}
	err := a.Fill(&structure.VariableDeclaration{Typed: structure.Typed{Type: structure.Value("number")}})
	if !errors.Is(err, errs.ErrStaleNode) {
		t.Fatalf("err = %v, want stale node", err)
	}
}

func TestStatements(t *testing.T) {
	sf := newFile(t, "let a = 1;\n")
	added := must(sf.AddStatements("let b = 2;"))
	if len(added) != 1 {
		t.Fatalf("added %d statements", len(added))
	}
	checkFile(t, sf, "let a = 1;\nlet b = 2;\n")

	added = must(sf.InsertStatements(0, "function f() {}\nclass C {}"))
	if len(added) != 2 {
		t.Fatalf("added %d statements", len(added))
	}
	if _, ok := added[1].(*ClassDeclaration); !ok {
		t.Fatalf("second statement is %T", added[1])
	}
	checkFile(t, sf, "function f() {}\nclass C {}\nlet a = 1;\nlet b = 2;\n")

	if _, err := sf.InsertStatements(9, "let z;"); !errors.Is(err, errs.ErrArgumentOutOfRange) {
		t.Fatalf("out of range insert = %v", err)
	}
	if n := len(must(sf.VariableStatements())); n != 2 {
		t.Fatalf("variable statements = %d", n)
	}
}

func TestStatementsIntoEmptyContainers(t *testing.T) {
	sf := newFile(t, "")
	must(sf.AddStatements("let a = 1;"))
	checkFile(t, sf, "let a = 1;\n")

	sf = newFile(t, "namespace N {\n}\n")
	n := must(sf.Namespaces())[0]
	must(n.AddStatements("export const a = 1;"))
	checkFile(t, sf, "namespace N {\n    export const a = 1;\n}\n")
	must(n.AddStatements("const b = 2;"))
	checkFile(t, sf, "namespace N {\n    export const a = 1;\n    const b = 2;\n}\n")
}

func TestJSDoc(t *testing.T) {
	sf := newFile(t, "function f() {}\n")
	f := must(sf.Function("f"))
	doc := must(f.AddJSDoc("Adds things."))
	checkFile(t, sf, "/**\n * Adds things.\n */\nfunction f() {}\n")
	if got := must(f.DocumentationComment()); got != "Adds things." {
		t.Fatalf("comment = %q", got)
	}

	if err := doc.SetComment("First.\nSecond."); err != nil {
		t.Fatal(err)
	}
	checkFile(t, sf, "/**\n * First.\n * Second.\n */\nfunction f() {}\n")
	if got := must(doc.Comment()); got != "First.\nSecond." {
		t.Fatalf("comment = %q", got)
	}

	if err := doc.Remove(); err != nil {
		t.Fatal(err)
	}
	checkFile(t, sf, "function f() {}\n")
	if n := len(must(f.JSDocs())); n != 0 {
		t.Fatalf("docs = %d", n)
	}
}

func TestSetOrder(t *testing.T) {
	sf := newFile(t, "class C {\n    a = 1;\n    b = 2;\n}\n")
	c := must(sf.Class("C"))
	b := must(c.Property("b"))
	if err := b.SetOrder(0); err != nil {
		t.Fatal(err)
	}
	props := must(c.Properties())
	if len(props) != 2 || props[0] != b {
		t.Fatalf("b is not first")
	}
	if err := b.SetOrder(5); !errors.Is(err, errs.ErrArgumentOutOfRange) {
		t.Fatalf("SetOrder(5) = %v", err)
	}
}
