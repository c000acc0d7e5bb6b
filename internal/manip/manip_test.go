package manip

import (
	"errors"
	"testing"

	"morph/internal/ast"
	"morph/internal/errs"
	"morph/internal/registry"
)

func newDoc(t *testing.T, src string) *Document {
	t.Helper()
	doc, err := NewDocument(1, []byte(src), Options{})
	if err != nil {
		t.Fatalf("NewDocument(%q): %v", src, err)
	}
	return doc
}

// find returns the n-th node of kind k whose text is text.
func find(t *testing.T, tree *ast.Tree, k ast.Kind, text string) ast.NodeID {
	t.Helper()
	for _, id := range tree.Descendants(tree.Root, k) {
		if tree.Text(id) == text {
			return id
		}
	}
	t.Fatalf("no %s %q in:\n%s", k, text, tree.Dump(tree.Root))
	return ast.NoNodeID
}

func statements(tree *ast.Tree) []ast.NodeID {
	return tree.Children(tree.Children(tree.Root)[0])
}

type countingCommitter struct {
	calls int
	last  registry.Mapping
}

func (c *countingCommitter) Apply(_ *ast.Tree, pairs registry.Mapping) registry.Stats {
	c.calls++
	c.last = pairs
	return registry.Stats{Retained: len(pairs)}
}

func TestNewDocumentRejectsSyntaxErrors(t *testing.T) {
	_, err := NewDocument(1, []byte("let = ;"), Options{})
	if !errors.Is(err, errs.ErrInvalidOperation) {
		t.Fatalf("err = %v", err)
	}
	var pe *ParseError
	if !errors.As(err, &pe) || pe.Bag.Len() == 0 {
		t.Fatalf("no parse error in %v", err)
	}
}

func TestInsertIntoParent(t *testing.T) {
	doc := newDoc(t, "let x;")
	c := &countingCommitter{}
	doc.Attach(c)
	decl := doc.Tree().Descendants(doc.Tree().Root, ast.KindVariableDeclaration)[0]
	end := doc.Tree().Span(decl).End

	res, err := InsertIntoParent(doc, InsertIntoParentOptions{
		Parent:           decl,
		InsertPos:        end,
		Text:             " = 1",
		ChildIndex:       1,
		InsertItemsCount: 2,
	})
	if err != nil {
		t.Fatalf("InsertIntoParent: %v", err)
	}
	if got := doc.Text(); got != "let x = 1;" {
		t.Fatalf("text = %q", got)
	}
	if res.Generation != 1 || doc.Generation() != 1 {
		t.Fatalf("generation = %d/%d", res.Generation, doc.Generation())
	}
	if _, ok := res.Map(decl); !ok {
		t.Fatalf("declaration lost its identity")
	}
	if c.calls != 1 {
		t.Fatalf("committer called %d times", c.calls)
	}
}

func TestFailedInsertChangesNothing(t *testing.T) {
	tests := []struct {
		name string
		text string
		want error
	}{
		{"blank", "  ", errs.ErrArgumentNullOrWhitespace},
		{"invalid syntax", " = ", errs.ErrInvalidOperation},
		{"wrong child count", " = 1 + 2", errs.ErrInvalidOperation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := newDoc(t, "let x;")
			decl := doc.Tree().Descendants(doc.Tree().Root, ast.KindVariableDeclaration)[0]
			_, err := InsertIntoParent(doc, InsertIntoParentOptions{
				Parent:           decl,
				InsertPos:        doc.Tree().Span(decl).End,
				Text:             tt.text,
				InsertItemsCount: 3,
			})
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if doc.Text() != "let x;" || doc.Generation() != 0 {
				t.Fatalf("document changed: %q gen %d", doc.Text(), doc.Generation())
			}
		})
	}
}

func TestRemoveChildrenWithPrecedingSpaces(t *testing.T) {
	doc := newDoc(t, "let x = 1;")
	tree := doc.Tree()
	eq := tree.Descendants(tree.Root, ast.KindEqualsToken)[0]
	lit := find(t, tree, ast.KindNumericLiteral, "1")
	if _, err := RemoveChildren(doc, RemoveChildrenOptions{
		Children:              []ast.NodeID{eq, lit},
		RemovePrecedingSpaces: true,
	}); err != nil {
		t.Fatalf("RemoveChildren: %v", err)
	}
	if got := doc.Text(); got != "let x;" {
		t.Fatalf("text = %q", got)
	}
}

func TestRemoveCommaSeparatedChild(t *testing.T) {
	const src = "let a = 1, b = 2, c;"
	tests := []struct {
		name string
		want string
	}{
		{"a", "let b = 2, c;"},
		{"b", "let a = 1, c;"},
		{"c", "let a = 1, b = 2;"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := newDoc(t, src)
			tree := doc.Tree()
			id := tree.Parent(find(t, tree, ast.KindIdentifier, tt.name))
			if _, err := RemoveCommaSeparatedChild(doc, id, RemoveCommaSeparatedOptions{RemovePrecedingSpaces: tt.name != "a"}); err != nil {
				t.Fatalf("remove %s: %v", tt.name, err)
			}
			if got := doc.Text(); got != tt.want {
				t.Fatalf("text = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRemoveModifiers(t *testing.T) {
	const src = "class A {\n    public static x = 1;\n}\n"
	tests := []struct {
		name   string
		remove []string
		want   string
	}{
		{"first", []string{"public"}, "class A {\n    static x = 1;\n}\n"},
		{"last", []string{"static"}, "class A {\n    public x = 1;\n}\n"},
		{"all", []string{"public", "static"}, "class A {\n    x = 1;\n}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := newDoc(t, src)
			tree := doc.Tree()
			var ids []ast.NodeID
			for _, text := range tt.remove {
				ids = append(ids, findModifier(t, tree, text))
			}
			if _, err := RemoveChildrenWithFormattingFromCollapsibleSyntaxList(doc, CollapsibleRemoveOptions{Children: ids}); err != nil {
				t.Fatalf("remove: %v", err)
			}
			if got := doc.Text(); got != tt.want {
				t.Fatalf("text = %q, want %q", got, tt.want)
			}
		})
	}
}

func findModifier(t *testing.T, tree *ast.Tree, text string) ast.NodeID {
	t.Helper()
	k, ok := ast.ModifierKind(text)
	if !ok {
		t.Fatalf("%q is not a modifier", text)
	}
	return find(t, tree, k, text)
}

func TestRemoveModifierBetweenOthers(t *testing.T) {
	tests := []struct {
		src, remove, want string
	}{
		{"export declare abstract class A {}", "declare", "export abstract class A {}"},
		{"export declare const x: number;", "declare", "export const x: number;"},
		{"export declare const x: number;", "export", "declare const x: number;"},
	}
	for _, tt := range tests {
		doc := newDoc(t, tt.src)
		id := findModifier(t, doc.Tree(), tt.remove)
		if _, err := RemoveChildrenWithFormattingFromCollapsibleSyntaxList(doc, CollapsibleRemoveOptions{Children: []ast.NodeID{id}}); err != nil {
			t.Fatalf("remove %s from %q: %v", tt.remove, tt.src, err)
		}
		if got := doc.Text(); got != tt.want {
			t.Errorf("remove %s from %q: text = %q, want %q", tt.remove, tt.src, got, tt.want)
		}
	}
}

func TestRemoveStatement(t *testing.T) {
	const src = "let a;\nlet b;\nlet c;\n"
	tests := []struct {
		index int
		want  string
	}{
		{0, "let b;\nlet c;\n"},
		{1, "let a;\nlet c;\n"},
		{2, "let a;\nlet b;\n"},
	}
	for _, tt := range tests {
		doc := newDoc(t, src)
		if _, err := RemoveStatementedNodeChild(doc, statements(doc.Tree())[tt.index]); err != nil {
			t.Fatalf("remove %d: %v", tt.index, err)
		}
		if got := doc.Text(); got != tt.want {
			t.Errorf("remove %d: text = %q, want %q", tt.index, got, tt.want)
		}
	}
}

func TestRemoveOnlyMember(t *testing.T) {
	doc := newDoc(t, "class A {\n    m() {}\n}\n")
	m := doc.Tree().Descendants(doc.Tree().Root, ast.KindMethodDeclaration)[0]
	if _, err := RemoveClassMember(doc, m); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if got := doc.Text(); got != "class A {\n}\n" {
		t.Fatalf("text = %q", got)
	}
}

func TestMoveChild(t *testing.T) {
	tests := []struct {
		src, name string
		index     int
		want      string
	}{
		{"a();\nb();\nc();\n", "c", 0, "c();\na();\nb();\n"},
		{"a();\nb();\nc();\n", "a", 2, "b();\nc();\na();\n"},
		{"let a = 1, b = 2;", "b", 0, "let b = 2, a = 1;"},
	}
	for _, tt := range tests {
		doc := newDoc(t, tt.src)
		tree := doc.Tree()
		id := find(t, tree, ast.KindIdentifier, tt.name)
		for tree.Kind(tree.Parent(id)) != ast.KindSyntaxList {
			id = tree.Parent(id)
		}
		res, err := MoveChild(doc, id, tt.index)
		if err != nil {
			t.Fatalf("MoveChild(%s): %v", tt.name, err)
		}
		if got := doc.Text(); got != tt.want {
			t.Errorf("MoveChild(%s): text = %q, want %q", tt.name, got, tt.want)
		}
		moved, ok := res.Map(id)
		if !ok {
			t.Fatalf("MoveChild(%s): moved element lost its identity", tt.name)
		}
		if got := doc.Tree().ChildIndex(moved); got < 0 {
			t.Fatalf("moved element is not in the list")
		}
	}
}

func TestMoveToSameIndexBumpsGeneration(t *testing.T) {
	doc := newDoc(t, "a();\nb();\n")
	first := statements(doc.Tree())[0]
	res, err := MoveChild(doc, first, 0)
	if err != nil {
		t.Fatalf("MoveChild: %v", err)
	}
	if res.Generation != 1 || len(res.Pairs) == 0 {
		t.Fatalf("result = %+v", res)
	}
}

func TestReplaceText(t *testing.T) {
	doc := newDoc(t, "let a = 1;\nlet b = a;\n")
	tree := doc.Tree()
	var ops []EditOperation
	for _, id := range tree.Descendants(tree.Root, ast.KindIdentifier) {
		if tree.Text(id) != "a" {
			continue
		}
		sp := tree.Span(id)
		ops = append(ops, EditOperation{InsertPos: sp.Start, Removed: sp, Text: "alpha", Parent: id})
	}
	res, err := ReplaceText(doc, ops)
	if err != nil {
		t.Fatalf("ReplaceText: %v", err)
	}
	if got := doc.Text(); got != "let alpha = 1;\nlet b = alpha;\n" {
		t.Fatalf("text = %q", got)
	}
	for _, op := range ops {
		if _, ok := res.Map(op.Parent); !ok {
			t.Fatalf("renamed identifier %d lost its identity", op.Parent)
		}
	}
}

func TestReplaceTextOutsideParent(t *testing.T) {
	doc := newDoc(t, "let a = 1;\n")
	tree := doc.Tree()
	id := tree.Descendants(tree.Root, ast.KindIdentifier)[0]
	sp := tree.Span(id)
	sp.Start = 0
	_, err := ReplaceText(doc, []EditOperation{{InsertPos: 0, Removed: sp, Text: "var b", Parent: id}})
	if !errors.Is(err, errs.ErrArgumentOutOfRange) {
		t.Fatalf("ReplaceText = %v, want out of range", err)
	}
	if doc.Text() != "let a = 1;\n" || doc.Generation() != 0 {
		t.Fatalf("failed replace changed the document: %q", doc.Text())
	}
}

func TestPendingCommit(t *testing.T) {
	doc := newDoc(t, "let a = 1;\n")
	tree := doc.Tree()
	id := tree.Descendants(tree.Root, ast.KindIdentifier)[0]
	sp := tree.Span(id)
	op := []EditOperation{{InsertPos: sp.Start, Removed: sp, Text: "b", Parent: id}}

	p, err := PrepareReplaceText(doc, op)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Text() != "let a = 1;\n" {
		t.Fatalf("prepare changed the text: %q", doc.Text())
	}
	if _, err := p.Commit(); err != nil {
		t.Fatal(err)
	}
	if doc.Text() != "let b = 1;\n" || doc.Generation() != 1 {
		t.Fatalf("after commit: %q gen %d", doc.Text(), doc.Generation())
	}
	if _, err := p.Commit(); !errors.Is(err, errs.ErrInvalidOperation) {
		t.Fatalf("second Commit = %v", err)
	}

	// A pending edit is bound to the generation it was prepared against.
	tree = doc.Tree()
	id = tree.Descendants(tree.Root, ast.KindIdentifier)[0]
	sp = tree.Span(id)
	stale, err := PrepareReplaceText(doc, []EditOperation{{InsertPos: sp.Start, Removed: sp, Text: "c", Parent: id}})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ReplaceText(doc, []EditOperation{{InsertPos: sp.Start, Removed: sp, Text: "d", Parent: id}}); err != nil {
		t.Fatal(err)
	}
	if _, err := stale.Commit(); !errors.Is(err, errs.ErrInvalidOperation) {
		t.Fatalf("stale Commit = %v", err)
	}
	if doc.Text() != "let d = 1;\n" {
		t.Fatalf("text = %q", doc.Text())
	}
}

func TestValidatorAndRecorder(t *testing.T) {
	doc := newDoc(t, "let x;")
	var rec []Applied
	doc.SetRecorder(recorderFunc(func(a Applied) { rec = append(rec, a) }))
	reject := errors.New("rejected")
	calls := 0
	doc.AddValidator(ValidatorFunc(func([]byte) error {
		calls++
		if calls == 1 {
			return reject
		}
		return nil
	}))

	decl := doc.Tree().Descendants(doc.Tree().Root, ast.KindVariableDeclaration)[0]
	opts := InsertIntoParentOptions{Parent: decl, InsertPos: doc.Tree().Span(decl).End, Text: " = 2"}
	if _, err := InsertIntoParent(doc, opts); !errors.Is(err, reject) {
		t.Fatalf("err = %v", err)
	}
	if len(rec) != 0 {
		t.Fatalf("rejected edit was recorded")
	}
	if _, err := InsertIntoParent(doc, opts); err != nil {
		t.Fatalf("second insert: %v", err)
	}
	if len(rec) != 1 || rec[0].Operation != "insert-into-parent" || rec[0].Generation != 1 {
		t.Fatalf("recorded %+v", rec)
	}
}

type recorderFunc func(Applied)

func (f recorderFunc) Record(a Applied) { f(a) }

func TestQuoteString(t *testing.T) {
	tests := []struct {
		quote byte
		in    string
		want  string
	}{
		{'"', `say "hi"`, `"say \"hi\""`},
		{'\'', "it's", `'it\'s'`},
		{'\'', `a "b"`, `'a "b"'`},
		{0, "line\nbreak\\", `"line\nbreak\\"`},
	}
	for _, tt := range tests {
		s := Settings{Quote: tt.quote}
		if got := s.QuoteString(tt.in); got != tt.want {
			t.Errorf("QuoteString(%q) with %q = %s, want %s", tt.in, tt.quote, got, tt.want)
		}
	}
}
