package ast

import (
	"testing"

	"morph/internal/source"
	"morph/internal/token"
)

func tok(kind token.Kind, start, end uint32, src string) token.Token {
	return token.Token{Kind: kind, Span: source.Span{File: 1, Start: start, End: end}, Text: src[start:end]}
}

// buildLet builds "let x;" by hand.
func buildLet(t *testing.T) (*Tree, map[string]NodeID) {
	t.Helper()
	src := "let x;"
	b := NewBuilder(1, []byte(src), 3)
	kw := b.Token(KindKeyword, tok(token.KwLet, 0, 3, src), -1)
	name := b.Token(KindIdentifier, tok(token.Ident, 4, 5, src), -1)
	decl := b.Node(KindVariableDeclaration, name, NoNodeID)
	list := b.Node(KindVariableDeclarationList, kw, b.List(0, decl))
	semi := b.Token(KindSemicolonToken, tok(token.Semicolon, 5, 6, src), -1)
	stmt := b.Node(KindVariableStatement, list, semi)
	eof := b.Token(KindEndOfFileToken, tok(token.EOF, 6, 6, src), -1)
	tree := b.Root(b.List(6, stmt), eof)
	return tree, map[string]NodeID{"kw": kw, "name": name, "decl": decl, "list": list, "stmt": stmt, "semi": semi}
}

func TestBuilderLinksParents(t *testing.T) {
	tree, ids := buildLet(t)
	if tree.Gen != 3 {
		t.Fatalf("generation = %d", tree.Gen)
	}
	if p := tree.Parent(ids["name"]); p != ids["decl"] {
		t.Errorf("parent of name = %d, want %d", p, ids["decl"])
	}
	if sp := tree.Span(ids["stmt"]); sp.Start != 0 || sp.End != 6 {
		t.Errorf("statement span = %v", sp)
	}
	if got := tree.Text(ids["list"]); got != "let x" {
		t.Errorf("list text = %q", got)
	}
	if tree.NextSibling(ids["list"]) != ids["semi"] || tree.PrevSibling(ids["semi"]) != ids["list"] {
		t.Errorf("sibling navigation broken")
	}
	if i := tree.ChildIndex(ids["semi"]); i != 1 {
		t.Errorf("ChildIndex(semi) = %d", i)
	}
}

func TestQueries(t *testing.T) {
	tree, ids := buildLet(t)
	if got := tree.NodeAt(source.Span{File: 1, Start: 4, End: 5}); got != ids["name"] {
		t.Errorf("NodeAt(name span) = %d, want %d", got, ids["name"])
	}
	// the declaration list and the statement differ by the semicolon
	if got := tree.NodeAt(source.Span{File: 1, Start: 0, End: 5}); got != ids["list"] {
		t.Errorf("NodeAt(list span) = %d", got)
	}
	if got := tree.TokenAt(4); got != ids["name"] {
		t.Errorf("TokenAt(4) = %d", got)
	}
	if got := tree.Descendants(tree.Root, KindIdentifier); len(got) != 1 || got[0] != ids["name"] {
		t.Errorf("Descendants = %v", got)
	}
	anc := tree.Ancestors(ids["name"])
	if len(anc) == 0 || anc[len(anc)-1] != tree.Root {
		t.Errorf("ancestors should end at the root: %v", anc)
	}
}

func TestEmptyListSitsAtOffset(t *testing.T) {
	b := NewBuilder(1, []byte("()"), 1)
	l := b.List(1)
	tree := b.Root(l)
	sp := tree.Span(l)
	if sp.Start != 1 || sp.End != 1 || !tree.Node(l).IsLeaf() {
		t.Fatalf("empty list = %+v", tree.Node(l))
	}
}

func TestKindTables(t *testing.T) {
	for k := KindUnknown; k < KindCount; k++ {
		if k.String() == "" || k.String() == "Kind(?)" {
			t.Errorf("kind %d has no name", k)
		}
	}
	for _, text := range []string{"export", "default", "declare", "abstract", "public", "protected", "private", "static", "readonly", "async", "const"} {
		k, ok := ModifierKind(text)
		if !ok || !k.IsModifier() {
			t.Errorf("ModifierKind(%q) = %v, %v", text, k, ok)
		}
		if back, _ := ModifierText(k); back != text {
			t.Errorf("ModifierText(%s) = %q", k, back)
		}
	}
}
