package parser

import (
	"morph/internal/ast"
	"morph/internal/diag"
	"morph/internal/token"
)

func (p *Parser) parseFunction(head []ast.NodeID) ast.NodeID {
	kw := p.leaf(ast.KindKeyword)
	var name ast.NodeID
	if p.at(token.Ident) {
		name = p.leaf(ast.KindIdentifier)
	}
	parts := append(head, kw, name)
	parts = append(parts, p.parseSignature()...)
	parts = append(parts, p.parseFunctionBody())
	return p.b.Node(ast.KindFunctionDeclaration, parts...)
}

// parseSignature parses optional type parameters, the parameter list and
// an optional return type.
func (p *Parser) parseSignature() []ast.NodeID {
	lt, tparams, gt := p.parseTypeParameters()
	open, params, closeTok := p.parseBracketed(token.LParen, token.RParen, diag.SynUnclosedParen, p.parseParameter)
	colon, ret := p.parseTypeAnnotation()
	return []ast.NodeID{lt, tparams, gt, open, params, closeTok, colon, ret}
}

// parseFunctionBody returns a block, or the terminating ';' of a body-less
// signature.
func (p *Parser) parseFunctionBody() ast.NodeID {
	if p.at(token.LBrace) {
		return p.parseBlock()
	}
	return p.parseSemicolon()
}

func (p *Parser) parseTypeParameters() (ast.NodeID, ast.NodeID, ast.NodeID) {
	if !p.at(token.Lt) {
		return ast.NoNodeID, ast.NoNodeID, ast.NoNodeID
	}
	return p.parseBracketed(token.Lt, token.Gt, diag.SynUnexpectedToken, p.parseTypeParameter)
}

func (p *Parser) parseTypeParameter() ast.NodeID {
	name := p.parseIdentifier()
	var ext, constraint, eq, def ast.NodeID
	if p.at(token.KwExtends) {
		ext = p.take()
		constraint = p.parseType()
	}
	if p.at(token.Assign) {
		eq = p.take()
		def = p.parseType()
	}
	return p.b.Node(ast.KindTypeParameter, name, ext, constraint, eq, def)
}

var parameterModifiers = map[string]bool{
	"public": true, "protected": true, "private": true, "readonly": true,
}

func (p *Parser) parseParameter() ast.NodeID {
	decos := p.parseDecorators()
	mods := p.parseMemberModifiers(parameterModifiers)
	dots := p.optional(token.DotDotDot)
	var name ast.NodeID
	if p.cur().IsWord() && p.cur().Kind != token.KwThis {
		name = p.leaf(ast.KindIdentifier)
	} else if p.at(token.KwThis) {
		name = p.leaf(ast.KindKeyword)
	} else {
		name = p.parseIdentifier()
	}
	q := p.optional(token.Question)
	colon, typ := p.parseTypeAnnotation()
	eq, init := p.parseInitializer()
	return p.b.Node(ast.KindParameter, decos, mods, dots, name, q, colon, typ, eq, init)
}

func (p *Parser) parseClass(head []ast.NodeID) ast.NodeID {
	kw := p.leaf(ast.KindKeyword)
	var name ast.NodeID
	if p.at(token.Ident) {
		name = p.leaf(ast.KindIdentifier)
	}
	lt, tparams, gt := p.parseTypeParameters()
	heritage := p.parseHeritageClauses()
	open, members, closeTok := p.parseMemberBlock(p.parseClassMember)
	parts := append(head, kw, name, lt, tparams, gt, heritage, open, members, closeTok)
	return p.b.Node(ast.KindClassDeclaration, parts...)
}

func (p *Parser) parseInterface(head []ast.NodeID) ast.NodeID {
	kw := p.leaf(ast.KindKeyword)
	name := p.parseIdentifier()
	lt, tparams, gt := p.parseTypeParameters()
	heritage := p.parseHeritageClauses()
	open, members, closeTok := p.parseMemberBlock(p.parseTypeMember)
	parts := append(head, kw, name, lt, tparams, gt, heritage, open, members, closeTok)
	return p.b.Node(ast.KindInterfaceDeclaration, parts...)
}

// parseMemberBlock parses "{ member* }". Stray semicolons between members
// are consumed without a node.
func (p *Parser) parseMemberBlock(member func() ast.NodeID) (ast.NodeID, ast.NodeID, ast.NodeID) {
	open := p.expect(token.LBrace, diag.SynUnclosedBrace, "expected '{'")
	var items []ast.NodeID
	for !p.at(token.RBrace) && !p.atEnd() {
		if p.at(token.Semicolon) {
			p.advance()
			continue
		}
		start := p.pos
		if m := member(); m.IsValid() {
			items = append(items, m)
		}
		if p.pos == start {
			p.skip("expected member")
		}
	}
	list := p.b.List(p.cur().Span.Start, items...)
	closeTok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}'")
	return open, list, closeTok
}

func (p *Parser) parseHeritageClauses() ast.NodeID {
	var clauses []ast.NodeID
	for p.atOr(token.KwExtends, token.KwImplements) {
		kw := p.take()
		var types []ast.NodeID
		for {
			types = append(types, p.parseExpressionWithTypeArguments())
			if !p.at(token.Comma) {
				break
			}
			types = append(types, p.take())
		}
		clauses = append(clauses, p.b.Node(ast.KindHeritageClause, kw, p.b.List(0, types...)))
	}
	if len(clauses) == 0 {
		return ast.NoNodeID
	}
	return p.b.List(0, clauses...)
}

func (p *Parser) parseExpressionWithTypeArguments() ast.NodeID {
	expr := p.parseIdentifier()
	for p.at(token.Dot) {
		dot := p.take()
		name := p.parseMemberName()
		expr = p.b.Node(ast.KindPropertyAccessExpression, expr, dot, name)
	}
	lt, args, gt := p.parseTypeArguments()
	return p.b.Node(ast.KindExpressionWithTypeArguments, expr, lt, args, gt)
}

func (p *Parser) parseEnum(head []ast.NodeID) ast.NodeID {
	kw := p.leaf(ast.KindKeyword)
	name := p.parseIdentifier()
	open, members, closeTok := p.parseBracketed(token.LBrace, token.RBrace, diag.SynUnclosedBrace, p.parseEnumMember)
	return p.b.Node(ast.KindEnumDeclaration, append(head, kw, name, open, members, closeTok)...)
}

func (p *Parser) parseEnumMember() ast.NodeID {
	docs := p.parseDocs()
	name := p.parsePropertyName()
	eq, init := p.parseInitializer()
	return p.b.Node(ast.KindEnumMember, append(docs, name, eq, init)...)
}

func (p *Parser) parseNamespace(head []ast.NodeID) ast.NodeID {
	kw := p.leaf(ast.KindKeyword)
	name := p.parseIdentifier()
	open := p.expect(token.LBrace, diag.SynUnclosedBrace, "expected '{'")
	if !open.IsValid() {
		open = p.missing(ast.KindOpenBraceToken)
	}
	stmts := p.parseStatementList(token.RBrace)
	closeTok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}'")
	body := p.b.Node(ast.KindModuleBlock, open, stmts, closeTok)
	return p.b.Node(ast.KindNamespaceDeclaration, append(head, kw, name, body)...)
}

func (p *Parser) parseTypeAlias(head []ast.NodeID) ast.NodeID {
	kw := p.leaf(ast.KindKeyword)
	name := p.parseIdentifier()
	lt, tparams, gt := p.parseTypeParameters()
	eq := p.expect(token.Assign, diag.SynUnexpectedToken, "expected '='")
	typ := p.parseType()
	semi := p.parseSemicolon()
	return p.b.Node(ast.KindTypeAliasDeclaration, append(head, kw, name, lt, tparams, gt, eq, typ, semi)...)
}
