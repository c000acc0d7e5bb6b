package lexer

import (
	"testing"

	"morph/internal/diag"
	"morph/internal/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(toks))
	for _, t := range toks {
		out = append(out, t.Kind)
	}
	return out
}

func TestTokenizeKinds(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []token.Kind
	}{
		{
			name: "variable statement",
			src:  "let x = 1;",
			want: []token.Kind{token.KwLet, token.Ident, token.Assign, token.NumberLit, token.Semicolon, token.EOF},
		},
		{
			name: "contextual modifiers are identifiers",
			src:  "export public static readonly",
			want: []token.Kind{token.KwExport, token.Ident, token.Ident, token.Ident, token.EOF},
		},
		{
			name: "nested generics keep single brackets",
			src:  "A<B<C>>",
			want: []token.Kind{token.Ident, token.Lt, token.Ident, token.Lt, token.Ident, token.Gt, token.Gt, token.EOF},
		},
		{
			name: "operators",
			src:  "a ?. b ?? c === d !== e => ...f",
			want: []token.Kind{
				token.Ident, token.QuestionDot, token.Ident, token.QuestionQuestion, token.Ident,
				token.EqEqEq, token.Ident, token.BangEqEq, token.Ident, token.FatArrow, token.DotDotDot, token.Ident, token.EOF,
			},
		},
		{
			name: "conditional before a fraction",
			src:  "a?.5:b",
			want: []token.Kind{token.Ident, token.Question, token.NumberLit, token.Colon, token.Ident, token.EOF},
		},
		{
			name: "compound assignment",
			src:  "x += y ** 2",
			want: []token.Kind{token.Ident, token.PlusAssign, token.Ident, token.StarStar, token.NumberLit, token.EOF},
		},
		{
			name: "non-ascii identifier",
			src:  "let café = 1",
			want: []token.Kind{token.KwLet, token.Ident, token.Assign, token.NumberLit, token.EOF},
		},
		{
			name: "strings and templates",
			src:  `'a' "b\"c" ` + "`x ${ {a: `y`} } z`",
			want: []token.Kind{token.StringLit, token.StringLit, token.TemplateLit, token.EOF},
		},
		{
			name: "numbers",
			src:  "1 0x1F 1_000 .5 1e10 10n",
			want: []token.Kind{token.NumberLit, token.NumberLit, token.NumberLit, token.NumberLit, token.NumberLit, token.NumberLit, token.EOF},
		},
		{
			name: "decorator",
			src:  "@dec() class",
			want: []token.Kind{token.At, token.Ident, token.LParen, token.RParen, token.KwClass, token.EOF},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bag := diag.NewBag(10)
			got := kinds(Tokenize(0, []byte(tt.src), Options{Reporter: diag.BagReporter{Bag: bag}}))
			if bag.Len() != 0 {
				t.Fatalf("unexpected diagnostics: %s", bag.Summary(0))
			}
			if len(got) != len(tt.want) {
				t.Fatalf("kinds = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("kinds[%d] = %v, want %v (all: %v)", i, got[i], tt.want[i], got)
				}
			}
		})
	}
}

func TestLeadingTrivia(t *testing.T) {
	src := "/** doc */\n// line\n  /* block */ function f() {}\n"
	toks := Tokenize(0, []byte(src), Options{})
	fn := toks[0]
	if fn.Kind != token.KwFunction {
		t.Fatalf("first token = %v", fn.Kind)
	}
	want := []token.TriviaKind{
		token.TriviaDocBlock, token.TriviaNewline, token.TriviaLineComment,
		token.TriviaNewline, token.TriviaSpace, token.TriviaBlockComment, token.TriviaSpace,
	}
	if len(fn.Leading) != len(want) {
		t.Fatalf("leading = %+v", fn.Leading)
	}
	for i, tr := range fn.Leading {
		if tr.Kind != want[i] {
			t.Fatalf("leading[%d] = %v, want %v", i, tr.Kind, want[i])
		}
		if src[tr.Span.Start:tr.Span.End] != tr.Text {
			t.Fatalf("trivia text %q does not match span", tr.Text)
		}
	}
	if fn.FullStart() != 0 {
		t.Fatalf("FullStart = %d", fn.FullStart())
	}
	eof := toks[len(toks)-1]
	if eof.Kind != token.EOF || len(eof.Leading) != 1 || eof.Leading[0].Kind != token.TriviaNewline {
		t.Fatalf("EOF must keep trailing trivia, got %+v", eof)
	}
}

func TestEmptyBlockCommentIsNotDoc(t *testing.T) {
	toks := Tokenize(0, []byte("/**/ x"), Options{})
	if toks[0].Leading[0].Kind != token.TriviaBlockComment {
		t.Fatalf("/**/ must be a plain block comment")
	}
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		src  string
		code diag.Code
	}{
		{"'abc", diag.LexUnterminatedString},
		{"/* open", diag.LexUnterminatedBlockComment},
		{"#", diag.LexUnknownChar},
		{"0x", diag.LexBadNumber},
		{"`open", diag.LexUnterminatedTemplate},
	}
	for _, tt := range tests {
		bag := diag.NewBag(10)
		Tokenize(0, []byte(tt.src), Options{Reporter: diag.BagReporter{Bag: bag}})
		if bag.Len() == 0 || bag.Items()[0].Code != tt.code {
			t.Fatalf("%q: diagnostics = %s, want %s", tt.src, bag.Summary(0), tt.code.ID())
		}
	}
}
