package parser

import (
	"morph/internal/ast"
	"morph/internal/diag"
	"morph/internal/token"
)

// parseSemicolon consumes an optional ';'. A missing one is only an error
// when the next token sits on the same line and does not close a block.
func (p *Parser) parseSemicolon() ast.NodeID {
	if p.at(token.Semicolon) {
		return p.take()
	}
	if p.atOr(token.RBrace, token.EOF) || p.cur().HasNewlineBefore() {
		return ast.NoNodeID
	}
	p.err(diag.SynExpectSemicolon, "expected ';'")
	return ast.NoNodeID
}

// parseDelimited parses "item, item, ..." up to (not including) close and
// returns the items interleaved with their comma tokens. A trailing comma is
// kept.
func (p *Parser) parseDelimited(close token.Kind, item func() ast.NodeID) []ast.NodeID {
	var out []ast.NodeID
	for !p.at(close) && !p.atEnd() {
		start := p.pos
		if n := item(); n.IsValid() {
			out = append(out, n)
		}
		if p.at(token.Comma) {
			out = append(out, p.take())
			continue
		}
		if p.pos == start {
			p.skip("unexpected token in list")
			continue
		}
		if !p.at(close) {
			p.err(diag.SynUnexpectedToken, "expected ',' or '"+close.String()+"'")
			break
		}
	}
	return out
}

// parseBracketed parses open, a delimited list and close, returning the
// three nodes. The list is empty and sits on close when there are no items.
func (p *Parser) parseBracketed(open, close token.Kind, code diag.Code, item func() ast.NodeID) (ast.NodeID, ast.NodeID, ast.NodeID) {
	o := p.expect(open, code, "expected '"+open.String()+"'")
	items := p.parseDelimited(close, item)
	list := p.b.List(p.cur().Span.Start, items...)
	c := p.expect(close, code, "expected '"+close.String()+"'")
	return o, list, c
}

// isStatementModifierAt reports whether the token n ahead acts as a
// declaration modifier at statement level.
func (p *Parser) isStatementModifierAt(n int) bool {
	tok, next := p.peek(n), p.peek(n+1)
	switch tok.Kind {
	case token.KwExport:
		return true
	case token.KwDefault:
		return n > 0 && p.peek(n-1).Kind == token.KwExport
	case token.KwConst:
		return next.Kind == token.KwEnum
	case token.Ident:
		switch tok.Text {
		case "declare", "abstract":
			return next.IsWord() && !next.HasNewlineBefore()
		case "async":
			return next.Kind == token.KwFunction && !next.HasNewlineBefore()
		}
	}
	return false
}

var memberModifiers = map[string]bool{
	"public": true, "protected": true, "private": true, "static": true,
	"readonly": true, "abstract": true, "async": true, "declare": true,
}

// isMemberModifierAt reports whether the token n ahead is a modifier of a
// class member, parameter or signature. A modifier word followed by
// something that cannot start a name is the name itself.
func (p *Parser) isMemberModifierAt(n int, allowed map[string]bool) bool {
	tok := p.peek(n)
	if tok.Kind != token.Ident || !allowed[tok.Text] {
		return false
	}
	next := p.peek(n + 1)
	return isPropertyNameStart(next) || next.Kind == token.DotDotDot
}

func isPropertyNameStart(tok token.Token) bool {
	return tok.IsWord() || tok.Kind == token.StringLit || tok.Kind == token.NumberLit || tok.Kind == token.LBracket
}

// parseModifiers builds the modifiers list or returns NoNodeID when there are
// none. isMod is evaluated against the current token.
func (p *Parser) parseModifiers(isMod func() bool) ast.NodeID {
	var mods []ast.NodeID
	for isMod() {
		k, ok := ast.ModifierKind(p.cur().Text)
		if !ok {
			break
		}
		mods = append(mods, p.leaf(k))
	}
	if len(mods) == 0 {
		return ast.NoNodeID
	}
	return p.b.List(0, mods...)
}

func (p *Parser) parseStatementModifiers() ast.NodeID {
	return p.parseModifiers(func() bool { return p.isStatementModifierAt(0) || p.continuesExportDefault() })
}

// continuesExportDefault accepts "default" right after a parsed "export".
func (p *Parser) continuesExportDefault() bool {
	return p.at(token.KwDefault) && p.pos > 0 && p.toks[p.pos-1].Kind == token.KwExport
}

func (p *Parser) parseMemberModifiers(allowed map[string]bool) ast.NodeID {
	return p.parseModifiers(func() bool { return p.isMemberModifierAt(0, allowed) })
}

// parseDecorators builds the decorators list or returns NoNodeID.
func (p *Parser) parseDecorators() ast.NodeID {
	var decos []ast.NodeID
	for p.at(token.At) {
		at := p.take()
		expr := p.parseLeftHandSide()
		decos = append(decos, p.b.Node(ast.KindDecorator, at, expr))
	}
	if len(decos) == 0 {
		return ast.NoNodeID
	}
	return p.b.List(0, decos...)
}

// parseIdentifier consumes an identifier or reports and returns a
// placeholder.
func (p *Parser) parseIdentifier() ast.NodeID {
	if p.at(token.Ident) {
		return p.leaf(ast.KindIdentifier)
	}
	p.err(diag.SynExpectIdentifier, "expected identifier, got \""+p.cur().Text+"\"")
	return p.missing(ast.KindIdentifier)
}

// parsePropertyName accepts any word, a string or number literal or a
// computed name.
func (p *Parser) parsePropertyName() ast.NodeID {
	tok := p.cur()
	switch {
	case tok.IsWord():
		return p.leaf(ast.KindIdentifier)
	case tok.Kind == token.StringLit:
		return p.leaf(ast.KindStringLiteral)
	case tok.Kind == token.NumberLit:
		return p.leaf(ast.KindNumericLiteral)
	case tok.Kind == token.LBracket:
		open := p.take()
		expr := p.parseAssignment()
		closeTok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']'")
		return p.b.Node(ast.KindComputedPropertyName, open, expr, closeTok)
	}
	p.err(diag.SynExpectMember, "expected property name, got \""+tok.Text+"\"")
	return p.missing(ast.KindIdentifier)
}

// parseTypeAnnotation parses ": Type" if present.
func (p *Parser) parseTypeAnnotation() (ast.NodeID, ast.NodeID) {
	if !p.at(token.Colon) {
		return ast.NoNodeID, ast.NoNodeID
	}
	colon := p.take()
	return colon, p.parseType()
}

// parseInitializer parses "= Expr" if present.
func (p *Parser) parseInitializer() (ast.NodeID, ast.NodeID) {
	if !p.at(token.Assign) {
		return ast.NoNodeID, ast.NoNodeID
	}
	eq := p.take()
	return eq, p.parseAssignment()
}
