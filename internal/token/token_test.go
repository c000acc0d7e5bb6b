package token

import (
	"testing"
)

func TestLookupKeyword(t *testing.T) {
	cases := map[string]Kind{
		"class":     KwClass,
		"const":     KwConst,
		"interface": KwInterface,
		"export":    KwExport,
		"default":   KwDefault,
		"void":      KwVoid,
	}
	for lexeme, want := range cases {
		got, ok := LookupKeyword(lexeme)
		if !ok || got != want {
			t.Fatalf("LookupKeyword(%q) = %v, %v; want %v", lexeme, got, ok, want)
		}
	}
	for _, contextual := range []string{"public", "static", "readonly", "get", "namespace", "Class"} {
		if _, ok := LookupKeyword(contextual); ok {
			t.Fatalf("%q must lex as identifier", contextual)
		}
	}
}

func TestKindNamesComplete(t *testing.T) {
	for k := Kind(0); k < kindCount; k++ {
		if k.String() == "Kind(?)" {
			t.Fatalf("kind %d has no name", k)
		}
	}
	if !KwWhile.IsKeyword() || Ident.IsKeyword() || LBrace.IsKeyword() {
		t.Fatalf("IsKeyword range is wrong")
	}
}

func TestModifierWords(t *testing.T) {
	for _, w := range []string{"export", "default", "declare", "abstract", "public", "protected", "private", "static", "readonly", "async", "const"} {
		if !IsModifierWord(w) {
			t.Fatalf("%q must be a modifier", w)
		}
	}
	if IsModifierWord("let") {
		t.Fatalf("let is not a modifier")
	}
}
