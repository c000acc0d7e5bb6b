package lexer

import (
	"morph/internal/diag"
	"morph/internal/token"
)

// scanIdentOrKeyword reads an identifier. Reserved words get their keyword
// kind; contextual ones such as "public" stay identifiers.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	if r, size := lx.peekRune(); size == 0 || !isIdentStartRune(r) {
		lx.bumpRune()
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnknownChar, sp, "unknown character")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
	lx.bumpRune()
	for !lx.cursor.EOF() {
		if b := lx.cursor.Peek(); isIdentContinueByte(b) {
			lx.cursor.Bump()
			continue
		}
		r, size := lx.peekRune()
		if size <= 1 || !isIdentContinueRune(r) {
			break
		}
		lx.bumpRune()
	}
	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)
	kind, ok := token.LookupKeyword(text)
	if !ok {
		kind = token.Ident
	}
	return token.Token{Kind: kind, Span: sp, Text: text}
}
