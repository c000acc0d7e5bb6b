package lexer

import (
	"bytes"

	"morph/internal/diag"
	"morph/internal/token"
)

// multiOps lists operators longer than one byte, longest first. ">>" is
// absent so that nested type argument lists close one bracket at a time.
var multiOps = []struct {
	text string
	kind token.Kind
}{
	{"...", token.DotDotDot},
	{"===", token.EqEqEq},
	{"!==", token.BangEqEq},
	{"==", token.EqEq},
	{"!=", token.BangEq},
	{"=>", token.FatArrow},
	{"<=", token.LtEq},
	{">=", token.GtEq},
	{"&&", token.AndAnd},
	{"||", token.OrOr},
	{"**", token.StarStar},
	{"++", token.PlusPlus},
	{"--", token.MinusMinus},
	{"+=", token.PlusAssign},
	{"-=", token.MinusAssign},
	{"*=", token.StarAssign},
	{"/=", token.SlashAssign},
	{"%=", token.PercentAssign},
	{"??", token.QuestionQuestion},
}

var singleOps = [256]token.Kind{
	'+': token.Plus, '-': token.Minus, '*': token.Star, '/': token.Slash,
	'%': token.Percent, '=': token.Assign, '!': token.Bang, '~': token.Tilde,
	'<': token.Lt, '>': token.Gt, '&': token.Amp, '|': token.Pipe,
	'^': token.Caret, '?': token.Question, ':': token.Colon, ';': token.Semicolon,
	',': token.Comma, '.': token.Dot, '(': token.LParen, ')': token.RParen,
	'{': token.LBrace, '}': token.RBrace, '[': token.LBracket, ']': token.RBracket,
	'@': token.At,
}

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	rest := lx.src[lx.cursor.Off:lx.cursor.Limit]
	kind := token.Invalid
	n := 1
	for _, op := range multiOps {
		if bytes.HasPrefix(rest, []byte(op.text)) {
			kind, n = op.kind, len(op.text)
			break
		}
	}
	// "?." unless it is a conditional followed by a number, as in "a?.5:b".
	if kind == token.Invalid && bytes.HasPrefix(rest, []byte("?.")) && (len(rest) == 2 || !isDec(rest[2])) {
		kind, n = token.QuestionDot, 2
	}
	if kind == token.Invalid {
		kind = singleOps[rest[0]]
	}
	lx.cursor.Off += uint32(n)
	sp := lx.cursor.SpanFrom(start)
	if kind == token.Invalid {
		lx.errLex(diag.LexUnknownChar, sp, "unknown character")
	}
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}
