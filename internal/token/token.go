package token

import (
	"morph/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a literal value.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case NumberLit, StringLit, TemplateLit, KwTrue, KwFalse, KwNull:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsWord reports whether the token is an identifier or a reserved word.
// Property names accept both.
func (t Token) IsWord() bool { return t.Kind == Ident || t.Kind.IsKeyword() }

// Is reports whether the token is the identifier text (for contextual words).
func (t Token) Is(text string) bool { return t.Kind == Ident && t.Text == text }

// FullStart is the offset of the first leading trivia, or the token start.
func (t Token) FullStart() uint32 {
	if len(t.Leading) > 0 {
		return t.Leading[0].Span.Start
	}
	return t.Span.Start
}

// HasNewlineBefore reports whether a line break precedes the token.
func (t Token) HasNewlineBefore() bool {
	for _, tr := range t.Leading {
		if tr.Kind == TriviaNewline {
			return true
		}
	}
	return false
}
