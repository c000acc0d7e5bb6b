package parser

import (
	"strings"
	"testing"

	"morph/internal/ast"
)

func mustParse(t *testing.T, src string) *ast.Tree {
	t.Helper()
	tree, bag := ParseFile(1, []byte(src), Options{})
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics for %q:\n%s", src, bag.Summary(10))
	}
	return tree
}

func childKinds(tree *ast.Tree, id ast.NodeID) []ast.Kind {
	var out []ast.Kind
	for _, c := range tree.Children(id) {
		out = append(out, tree.Kind(c))
	}
	return out
}

func statements(tree *ast.Tree) []ast.NodeID {
	return tree.Children(tree.Children(tree.Root)[0])
}

func TestRootCoversText(t *testing.T) {
	src := "// lead\nlet x = 1;\n// trail\n"
	tree := mustParse(t, src)
	sp := tree.Span(tree.Root)
	if sp.Start != 0 || int(sp.End) != len(src) {
		t.Fatalf("root span = %v", sp)
	}
	got := childKinds(tree, tree.Root)
	if len(got) != 2 || got[0] != ast.KindSyntaxList || got[1] != ast.KindEndOfFileToken {
		t.Fatalf("root children = %v", got)
	}
}

func TestDeclarationShapes(t *testing.T) {
	tests := []struct {
		src  string
		want []ast.Kind
	}{
		{"let x = 1;", []ast.Kind{ast.KindVariableDeclarationList, ast.KindSemicolonToken}},
		{"export const a = 1, b;", []ast.Kind{ast.KindSyntaxList, ast.KindVariableDeclarationList, ast.KindSemicolonToken}},
		{"function f(a: number, b?: string): void {}", []ast.Kind{
			ast.KindKeyword, ast.KindIdentifier, ast.KindOpenParenToken, ast.KindSyntaxList,
			ast.KindCloseParenToken, ast.KindColonToken, ast.KindKeywordType, ast.KindBlock,
		}},
		{"@dec() export abstract class C<T> extends B implements I {}", []ast.Kind{
			ast.KindSyntaxList, ast.KindSyntaxList, ast.KindKeyword, ast.KindIdentifier,
			ast.KindLessThanToken, ast.KindSyntaxList, ast.KindGreaterThanToken, ast.KindSyntaxList,
			ast.KindOpenBraceToken, ast.KindSyntaxList, ast.KindCloseBraceToken,
		}},
		{"interface I { a: string; }", []ast.Kind{
			ast.KindKeyword, ast.KindIdentifier, ast.KindOpenBraceToken, ast.KindSyntaxList, ast.KindCloseBraceToken,
		}},
		{"const enum E { A = 1, B }", []ast.Kind{
			ast.KindSyntaxList, ast.KindKeyword, ast.KindIdentifier, ast.KindOpenBraceToken,
			ast.KindSyntaxList, ast.KindCloseBraceToken,
		}},
		{"declare namespace N { let x; }", []ast.Kind{ast.KindSyntaxList, ast.KindKeyword, ast.KindIdentifier, ast.KindModuleBlock}},
		{"type T = string | number[];", []ast.Kind{
			ast.KindKeyword, ast.KindIdentifier, ast.KindEqualsToken, ast.KindUnionType, ast.KindSemicolonToken,
		}},
	}
	for _, tt := range tests {
		tree := mustParse(t, tt.src)
		stmts := statements(tree)
		if len(stmts) != 1 {
			t.Fatalf("%q: %d statements", tt.src, len(stmts))
		}
		got := childKinds(tree, stmts[0])
		if len(got) != len(tt.want) {
			t.Errorf("%q: children = %v, want %v", tt.src, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%q: child %d = %s, want %s", tt.src, i, got[i], tt.want[i])
			}
		}
	}
}

func TestModifierKinds(t *testing.T) {
	tree := mustParse(t, "export default class C {}\nclass D { private static readonly x = 1; static() {} }")
	stmts := statements(tree)
	mods := tree.Children(tree.FirstChildOfKind(stmts[0], ast.KindSyntaxList))
	if len(mods) != 2 || tree.Kind(mods[0]) != ast.KindExportKeyword || tree.Kind(mods[1]) != ast.KindDefaultKeyword {
		t.Fatalf("statement modifiers = %v", childKinds(tree, tree.Parent(mods[0])))
	}

	members := tree.Children(tree.ChildrenOfKind(stmts[1], ast.KindSyntaxList)[0])
	if len(members) != 2 {
		t.Fatalf("members = %d", len(members))
	}
	prop := members[0]
	if tree.Kind(prop) != ast.KindPropertyDeclaration {
		t.Fatalf("member 0 = %s", tree.Kind(prop))
	}
	got := childKinds(tree, tree.Children(prop)[0])
	want := []ast.Kind{ast.KindPrivateKeyword, ast.KindStaticKeyword, ast.KindReadonlyKeyword}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("modifier %d = %s, want %s", i, got[i], want[i])
		}
	}
	if tree.Kind(members[1]) != ast.KindMethodDeclaration || tree.Text(tree.Children(members[1])[0]) != "static" {
		t.Errorf("a method named static was read as a modifier")
	}
}

func TestJSDocBelongsToDeclaration(t *testing.T) {
	src := "/** Adds.\n * @param a first\n * @returns sum\n */\nfunction add(a) {}"
	tree := mustParse(t, src)
	fn := statements(tree)[0]
	if tree.Span(fn).Start != 0 {
		t.Fatalf("function span should start at its doc: %v", tree.Span(fn))
	}
	doc := tree.Children(fn)[0]
	if tree.Kind(doc) != ast.KindJSDoc {
		t.Fatalf("first child = %s", tree.Kind(doc))
	}
	tags := tree.Children(doc)
	if len(tags) != 2 {
		t.Fatalf("tags = %d", len(tags))
	}
	if got := tree.Text(tags[0]); got != "@param a first" {
		t.Errorf("tag 0 = %q", got)
	}
	if got := tree.Text(tags[1]); got != "@returns sum" {
		t.Errorf("tag 1 = %q", got)
	}
	kw := tree.Children(fn)[1]
	if n := tree.Node(kw); n.Pos != tree.Span(doc).End {
		t.Errorf("keyword full start %d, want %d", n.Pos, tree.Span(doc).End)
	}
}

func TestScanDocTagsSingleLine(t *testing.T) {
	text := "/** @deprecated use g */"
	got := scanDocTags(text)
	if len(got) != 1 || text[got[0][0]:got[0][1]] != "@deprecated use g" {
		t.Fatalf("tags = %v", got)
	}
	if len(scanDocTags("/** plain */")) != 0 {
		t.Fatalf("unexpected tags in plain doc")
	}
}

func TestExpressions(t *testing.T) {
	srcs := []string{
		"x = a ? b : c;",
		"f(a, ...rest)[0].b?.c;",
		"const o = { a: 1, b, ...c, m() {}, get g() { return 1; } };",
		"const add = (a: number, b: number): number => a + b * 2 ** 3;",
		"const id = async x => x;",
		"let v = new Map() as any;",
		"if (a === 1) { return; } else b++;",
	}
	for _, src := range srcs {
		mustParse(t, src)
	}
}

func TestAutomaticSemicolons(t *testing.T) {
	tree := mustParse(t, "let a = 1\nlet b = 2\nfoo()")
	if n := len(statements(tree)); n != 3 {
		t.Fatalf("statements = %d", n)
	}
}

func TestErrorsAreReported(t *testing.T) {
	tests := []string{
		"let = ;",
		"class {",
		"function f( {}",
		"export 1;",
		"let a = 1 let b = 2;",
	}
	for _, src := range tests {
		tree, bag := ParseFile(1, []byte(src), Options{})
		if !bag.HasErrors() {
			t.Errorf("%q: expected diagnostics", src)
		}
		if tree == nil || !tree.Root.IsValid() {
			t.Errorf("%q: tree missing", src)
		}
	}
}

func TestDumpMentionsTokens(t *testing.T) {
	tree := mustParse(t, "let x;")
	dump := tree.Dump(tree.Root)
	for _, want := range []string{"SourceFile", "VariableStatement", "Keyword let", "Identifier x", "SemicolonToken ;"} {
		if !strings.Contains(dump, want) {
			t.Errorf("dump lacks %q:\n%s", want, dump)
		}
	}
}
