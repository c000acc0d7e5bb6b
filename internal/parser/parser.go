// Package parser builds an ast.Tree for a TypeScript subset: variable,
// function, class, interface, enum, namespace and type alias declarations
// with decorators, modifiers and JSDoc, plus the statements, types and
// expressions they contain.
//
// The parser never fails: malformed input yields diagnostics in the returned
// bag and placeholder nodes in the tree. Callers that need a trustworthy tree
// must check Bag.HasErrors.
package parser

import (
	"slices"

	"morph/internal/ast"
	"morph/internal/diag"
	"morph/internal/lexer"
	"morph/internal/source"
	"morph/internal/token"
)

type Options struct {
	MaxErrors     uint // 0 means unlimited
	CurrentErrors uint
	Reporter      diag.Reporter  // optional; the returned bag is always filled
	Generation    ast.Generation // stamped on the tree
}

// Enough reports whether the error limit has been reached.
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

// Parser holds the state for one file.
type Parser struct {
	toks     []token.Token
	pos      int
	b        *ast.Builder
	file     source.FileID
	src      []byte
	opts     Options
	rep      diag.Reporter
	lastSpan source.Span // span of the last consumed token
	nextPos  int64       // full-start override for the next leaf, -1 if none
}

// ParseFile tokenizes and parses src. The tree is always returned; the bag
// holds lexical and syntax diagnostics.
func ParseFile(file source.FileID, src []byte, opts Options) (*ast.Tree, *diag.Bag) {
	bag := diag.NewBag(int(opts.MaxErrors))
	var rep diag.Reporter = diag.BagReporter{Bag: bag}
	if opts.Reporter != nil {
		rep = teeReporter{rep, opts.Reporter}
	}

	p := &Parser{
		toks:    lexer.Tokenize(file, src, lexer.Options{Reporter: rep}),
		b:       ast.NewBuilder(file, src, opts.Generation),
		file:    file,
		src:     src,
		opts:    opts,
		rep:     rep,
		nextPos: -1,
	}
	stmts := p.parseStatementList(token.EOF)
	eof := p.leaf(ast.KindEndOfFileToken)
	return p.b.Root(stmts, eof), bag
}

type teeReporter []diag.Reporter

func (t teeReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	for _, r := range t {
		r.Report(code, sev, primary, msg, notes)
	}
}

func (p *Parser) cur() token.Token { return p.peek(0) }

// peek returns the token n positions ahead; past the end it returns EOF.
func (p *Parser) peek(n int) token.Token {
	i := p.pos + n
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[i]
}

func (p *Parser) at(k token.Kind) bool {
	return p.cur().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.cur().Kind)
}

func (p *Parser) atEnd() bool { return p.at(token.EOF) }

// advance consumes the current token without building a node.
func (p *Parser) advance() token.Token {
	tok := p.cur()
	if tok.Kind != token.EOF {
		p.pos++
		p.lastSpan = tok.Span
	}
	return tok
}

// leaf consumes the current token as a node of kind k.
func (p *Parser) leaf(k ast.Kind) ast.NodeID {
	pos := p.nextPos
	p.nextPos = -1
	tok := p.advance()
	return p.b.Token(k, tok, pos)
}

// take consumes the current token with its natural node kind.
func (p *Parser) take() ast.NodeID {
	return p.leaf(kindOf(p.cur()))
}

// expect consumes a token of kind k or reports and returns NoNodeID.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) ast.NodeID {
	if p.at(k) {
		return p.take()
	}
	p.err(code, msg)
	return ast.NoNodeID
}

// optional consumes a token of kind k if present.
func (p *Parser) optional(k token.Kind) ast.NodeID {
	if p.at(k) {
		return p.take()
	}
	return ast.NoNodeID
}

// missing creates an empty placeholder at the current token.
func (p *Parser) missing(k ast.Kind) ast.NodeID {
	at := p.cur().Span.Start
	return p.b.Leaf(k, source.Span{File: p.file, Start: at, End: at}, at)
}

// diagSpan points at the current token, or just past the last one at EOF.
func (p *Parser) diagSpan() source.Span {
	if p.atEnd() && p.lastSpan.End > 0 {
		return source.Span{File: p.file, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return p.cur().Span
}

func (p *Parser) err(code diag.Code, msg string) {
	p.report(code, diag.SevError, p.diagSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) {
	if sev == diag.SevError {
		p.opts.CurrentErrors++
	}
	if p.opts.Enough() && code != diag.SynTooManyErrors {
		return
	}
	diag.Report(p.rep, sev, code, sp, msg).Emit()
}

// skip drops one token after reporting it.
func (p *Parser) skip(msg string) {
	p.err(diag.SynUnexpectedToken, msg+", got \""+p.cur().Text+"\"")
	p.advance()
}

// kindOf maps a token to the node kind it gets when nothing more specific
// applies. Keywords used as names are turned into identifiers by callers.
func kindOf(tok token.Token) ast.Kind {
	switch tok.Kind {
	case token.Ident:
		return ast.KindIdentifier
	case token.NumberLit:
		return ast.KindNumericLiteral
	case token.StringLit:
		return ast.KindStringLiteral
	case token.TemplateLit:
		return ast.KindTemplateLiteral
	case token.EOF:
		return ast.KindEndOfFileToken
	case token.LBrace:
		return ast.KindOpenBraceToken
	case token.RBrace:
		return ast.KindCloseBraceToken
	case token.LParen:
		return ast.KindOpenParenToken
	case token.RParen:
		return ast.KindCloseParenToken
	case token.LBracket:
		return ast.KindOpenBracketToken
	case token.RBracket:
		return ast.KindCloseBracketToken
	case token.Semicolon:
		return ast.KindSemicolonToken
	case token.Comma:
		return ast.KindCommaToken
	case token.Dot:
		return ast.KindDotToken
	case token.DotDotDot:
		return ast.KindDotDotDotToken
	case token.Colon:
		return ast.KindColonToken
	case token.Question:
		return ast.KindQuestionToken
	case token.Assign:
		return ast.KindEqualsToken
	case token.At:
		return ast.KindAtToken
	case token.Lt:
		return ast.KindLessThanToken
	case token.Gt:
		return ast.KindGreaterThanToken
	case token.FatArrow:
		return ast.KindEqualsGreaterThanToken
	}
	if tok.Kind.IsKeyword() {
		return ast.KindKeyword
	}
	return ast.KindOperatorToken
}
