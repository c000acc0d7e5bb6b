package registry

import (
	"errors"
	"testing"

	"morph/internal/ast"
	"morph/internal/errs"
	"morph/internal/parser"
	"morph/internal/source"
	"morph/internal/trace"
)

type wrapper struct{ e *Entry }

func parse(t *testing.T, src string, gen ast.Generation) *ast.Tree {
	t.Helper()
	tree, bag := parser.ParseFile(1, []byte(src), parser.Options{Generation: gen})
	if bag.HasErrors() {
		t.Fatalf("parse %q:\n%s", src, bag.Summary(10))
	}
	return tree
}

func statements(tree *ast.Tree) (ast.NodeID, []ast.NodeID) {
	list := tree.Children(tree.Root)[0]
	return list, tree.Children(list)
}

func newRegistry(tree *ast.Tree) *Registry[*wrapper] {
	return New(tree, func(e *Entry) *wrapper { return &wrapper{e: e} }, trace.Nop)
}

// edit applies one splice to src and reparses.
func edit(t *testing.T, old *ast.Tree, e source.Edit) *ast.Tree {
	t.Helper()
	buf := source.NewBuffer(1, old.Src)
	next, err := buf.Preview([]source.Edit{e})
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	return parse(t, string(next), old.Gen+1)
}

func TestWrapperIsUnique(t *testing.T) {
	tree := parse(t, "let a = 1;", 0)
	r := newRegistry(tree)
	_, stmts := statements(tree)
	w1, ok := r.Wrapper(stmts[0])
	if !ok {
		t.Fatalf("no wrapper for statement")
	}
	w2, _ := r.Wrapper(stmts[0])
	if w1 != w2 {
		t.Fatalf("two wrappers for one node")
	}
	if r.Len() != 1 {
		t.Fatalf("Len = %d", r.Len())
	}
	if _, ok := r.Wrapper(ast.NodeID(9999)); ok {
		t.Fatalf("wrapper for unknown node")
	}
}

func TestInsertionKeepsSiblings(t *testing.T) {
	old := parse(t, "let a = 1;\nlet b = 2;\n", 0)
	r := newRegistry(old)
	list, stmts := statements(old)
	first, _ := r.Wrapper(stmts[0])
	second, _ := r.Wrapper(stmts[1])
	ins := "let c = 3;\n"

	next := edit(t, old, source.Edit{Start: 0, End: 0, Text: ins})
	st := r.Rebase(next, Splice(0, 0, len(ins), list))
	if st.Forgotten != 0 || st.Retained != 2 {
		t.Fatalf("stats = %+v", st)
	}
	_, newStmts := statements(next)
	for i, w := range []*wrapper{first, second} {
		id, err := w.e.Node()
		if err != nil {
			t.Fatalf("wrapper %d: %v", i, err)
		}
		if id != newStmts[i+1] {
			t.Fatalf("wrapper %d points at %d, want %d", i, id, newStmts[i+1])
		}
		if w.e.Generation() != next.Gen {
			t.Fatalf("wrapper %d generation = %d", i, w.e.Generation())
		}
	}
	if got := next.Text(newStmts[2]); got != "let b = 2;" {
		t.Fatalf("second statement text = %q", got)
	}
}

func TestOverlappedNodeIsForgotten(t *testing.T) {
	old := parse(t, "let a = 1;", 0)
	r := newRegistry(old)
	lit := old.Descendants(old.Root, ast.KindNumericLiteral)[0]
	name := old.Descendants(old.Root, ast.KindIdentifier)[0]
	decl := old.Descendants(old.Root, ast.KindVariableDeclaration)[0]
	litW, _ := r.Wrapper(lit)
	nameW, _ := r.Wrapper(name)

	sp := old.Span(lit)
	next := edit(t, old, source.Edit{Start: sp.Start, End: sp.End, Text: "10"})
	st := r.Rebase(next, Splice(sp.Start, sp.End, 2, decl))
	if st.Forgotten != 1 || st.Retained != 1 {
		t.Fatalf("stats = %+v", st)
	}
	if !litW.e.Forgotten() {
		t.Fatalf("literal wrapper survived")
	}
	_, err := litW.e.Node()
	if !errors.Is(err, errs.ErrStaleNode) {
		t.Fatalf("err = %v", err)
	}
	var stale *errs.StaleNodeError
	if !errors.As(err, &stale) || stale.Kind != ast.KindNumericLiteral.String() {
		t.Fatalf("stale error = %#v", err)
	}
	if _, err := nameW.e.Node(); err != nil {
		t.Fatalf("identifier forgotten: %v", err)
	}
}

func TestIdentityKeepsEverything(t *testing.T) {
	src := "export class A {\n  x = 1;\n  m() { return 2; }\n}\n"
	old := parse(t, src, 0)
	next := parse(t, src, 1)
	pairs := Reconcile(old, next, Identity())
	reachable := 0
	old.Walk(old.Root, func(ast.NodeID) bool { reachable++; return true })
	if len(pairs) != reachable {
		t.Fatalf("paired %d of %d nodes", len(pairs), reachable)
	}
	for o, n := range pairs {
		if old.Kind(o) != next.Kind(n) || old.Span(o) != next.Span(n) {
			t.Fatalf("node %d paired with a different node", o)
		}
	}
}

func TestRenameKeepsIdentifier(t *testing.T) {
	old := parse(t, "function f() {}\nf();\n", 0)
	r := newRegistry(old)
	ids := old.Descendants(old.Root, ast.KindIdentifier)
	decl, _ := r.Wrapper(ids[0])
	sp := old.Span(ids[0])

	next := edit(t, old, source.Edit{Start: sp.Start, End: sp.End, Text: "go"})
	r.Rebase(next, Splice(sp.Start, sp.End, 2, ids[0]))
	id, err := decl.e.Node()
	if err != nil {
		t.Fatalf("renamed identifier forgotten: %v", err)
	}
	if next.Text(id) != "go" {
		t.Fatalf("identifier text = %q", next.Text(id))
	}
}

func TestMoveKeepsBothStatements(t *testing.T) {
	old := parse(t, "a();\nb();\n", 0)
	r := newRegistry(old)
	list, stmts := statements(old)
	aW, _ := r.Wrapper(stmts[0])
	bW, _ := r.Wrapper(stmts[1])

	// "b();\na();" occupies the same bytes as before.
	next := parse(t, "b();\na();\n", 1)
	ch := Moved(0, 9, []Segment{
		{OldStart: 0, OldEnd: 4, Shift: 5},
		{OldStart: 5, OldEnd: 9, Shift: -5},
	}, list)
	st := r.Rebase(next, ch)
	if st.Forgotten != 0 {
		t.Fatalf("stats = %+v", st)
	}
	_, newStmts := statements(next)
	if id, _ := aW.e.Node(); id != newStmts[1] {
		t.Fatalf("a() wrapper at %d, want %d", id, newStmts[1])
	}
	if id, _ := bW.e.Node(); id != newStmts[0] {
		t.Fatalf("b() wrapper at %d, want %d", id, newStmts[0])
	}
}

func TestForgetSubtree(t *testing.T) {
	tree := parse(t, "let a = 1;", 0)
	r := newRegistry(tree)
	_, stmts := statements(tree)
	stmt, _ := r.Wrapper(stmts[0])
	lit, _ := r.Wrapper(tree.Descendants(tree.Root, ast.KindNumericLiteral)[0])
	if n := r.ForgetSubtree(stmts[0]); n != 2 {
		t.Fatalf("forgot %d wrappers", n)
	}
	if !stmt.e.Forgotten() || !lit.e.Forgotten() {
		t.Fatalf("wrappers not forgotten")
	}
	if r.Len() != 0 {
		t.Fatalf("Len = %d", r.Len())
	}
}
