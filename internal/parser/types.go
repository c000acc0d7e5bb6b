package parser

import (
	"morph/internal/ast"
	"morph/internal/diag"
	"morph/internal/token"
)

var keywordTypes = map[string]bool{
	"string": true, "number": true, "boolean": true, "any": true, "unknown": true,
	"never": true, "object": true, "undefined": true, "symbol": true, "bigint": true,
}

func (p *Parser) parseType() ast.NodeID {
	first := p.parseArrayType()
	if !p.at(token.Pipe) {
		return first
	}
	parts := []ast.NodeID{first}
	for p.at(token.Pipe) {
		parts = append(parts, p.take(), p.parseArrayType())
	}
	return p.b.Node(ast.KindUnionType, parts...)
}

func (p *Parser) parseArrayType() ast.NodeID {
	t := p.parsePrimaryType()
	for p.at(token.LBracket) && p.peek(1).Kind == token.RBracket && !p.cur().HasNewlineBefore() {
		open := p.take()
		t = p.b.Node(ast.KindArrayType, t, open, p.take())
	}
	return t
}

func (p *Parser) parsePrimaryType() ast.NodeID {
	tok := p.cur()
	switch tok.Kind {
	case token.Ident:
		if keywordTypes[tok.Text] && p.peek(1).Kind != token.Dot {
			return p.b.Node(ast.KindKeywordType, p.leaf(ast.KindKeyword))
		}
		return p.parseTypeReference()
	case token.KwVoid, token.KwNull, token.KwThis:
		return p.b.Node(ast.KindKeywordType, p.leaf(ast.KindKeyword))
	case token.KwTrue, token.KwFalse:
		return p.b.Node(ast.KindLiteralType, p.leaf(ast.KindKeyword))
	case token.StringLit, token.NumberLit, token.TemplateLit:
		return p.b.Node(ast.KindLiteralType, p.take())
	case token.LBrace:
		open, members, closeTok := p.parseMemberBlock(p.parseTypeMember)
		return p.b.Node(ast.KindTypeLiteral, open, members, closeTok)
	case token.Lt:
		return p.parseFunctionType()
	case token.LParen:
		if p.isFunctionTypeStart() {
			return p.parseFunctionType()
		}
		open := p.take()
		inner := p.parseType()
		closeTok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'")
		return p.b.Node(ast.KindParenthesizedType, open, inner, closeTok)
	}
	p.err(diag.SynExpectType, "expected type, got \""+tok.Text+"\"")
	return p.missing(ast.KindTypeReference)
}

// parseTypeReference parses an entity name (A or A.B.C) with optional type
// arguments.
func (p *Parser) parseTypeReference() ast.NodeID {
	name := p.parseEntityName()
	lt, args, gt := p.parseTypeArguments()
	return p.b.Node(ast.KindTypeReference, name, lt, args, gt)
}

func (p *Parser) parseEntityName() ast.NodeID {
	name := p.parseIdentifier()
	for p.at(token.Dot) {
		dot := p.take()
		right := p.parseMemberName()
		name = p.b.Node(ast.KindQualifiedName, name, dot, right)
	}
	return name
}

// parseMemberName accepts any word after a dot.
func (p *Parser) parseMemberName() ast.NodeID {
	if p.cur().IsWord() {
		return p.leaf(ast.KindIdentifier)
	}
	return p.parseIdentifier()
}

func (p *Parser) parseTypeArguments() (ast.NodeID, ast.NodeID, ast.NodeID) {
	if !p.at(token.Lt) {
		return ast.NoNodeID, ast.NoNodeID, ast.NoNodeID
	}
	return p.parseBracketed(token.Lt, token.Gt, diag.SynUnexpectedToken, p.parseType)
}

// isFunctionTypeStart decides whether "(" opens a function type rather than
// a parenthesized type.
func (p *Parser) isFunctionTypeStart() bool {
	next := p.peek(1)
	switch {
	case next.Kind == token.RParen || next.Kind == token.DotDotDot:
		return true
	case next.IsWord():
		switch p.peek(2).Kind {
		case token.Colon, token.Comma, token.Question, token.Assign:
			return true
		case token.RParen:
			return p.peek(3).Kind == token.FatArrow
		}
	}
	return false
}

func (p *Parser) parseFunctionType() ast.NodeID {
	lt, tparams, gt := p.parseTypeParameters()
	open, params, closeTok := p.parseBracketed(token.LParen, token.RParen, diag.SynUnclosedParen, p.parseParameter)
	arrow := p.expect(token.FatArrow, diag.SynUnexpectedToken, "expected '=>'")
	ret := p.parseType()
	return p.b.Node(ast.KindFunctionType, lt, tparams, gt, open, params, closeTok, arrow, ret)
}
