package verify

import (
	"errors"
	"testing"

	"morph/internal/ast"
	"morph/internal/manip"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		name string
		src  string
		ok   bool
	}{
		{"class", "export class C {\n    private x: number = 1;\n}\n", true},
		{"function", "function f(a: string): void {}\n", true},
		{"empty", "", true},
		{"unclosed", "class C {\n", false},
		{"stray", "let = ;\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validator{}.Validate([]byte(tt.src))
			if tt.ok && err != nil {
				t.Fatalf("Validate(%q) = %v", tt.src, err)
			}
			if !tt.ok && !errors.Is(err, ErrSyntax) {
				t.Fatalf("Validate(%q) = %v, want ErrSyntax", tt.src, err)
			}
		})
	}
}

func TestValidatorAcceptsEdit(t *testing.T) {
	doc, err := manip.NewDocument(0, []byte("let x;\n"), manip.Options{Validators: []manip.Validator{Validator{}}})
	if err != nil {
		t.Fatal(err)
	}
	tree := doc.Tree()
	decl := tree.Descendants(tree.Root, ast.KindVariableDeclaration)[0]
	opts := manip.InsertIntoParentOptions{Parent: decl, InsertPos: tree.Span(decl).End, Text: " = 2"}
	if _, err := manip.InsertIntoParent(doc, opts); err != nil {
		t.Fatalf("InsertIntoParent: %v", err)
	}
	if got := doc.Text(); got != "let x = 2;\n" {
		t.Fatalf("text = %q", got)
	}
}
