package parser

import (
	"morph/internal/ast"
	"morph/internal/token"
)

func (p *Parser) parseClassMember() ast.NodeID {
	head := p.parseDocs()
	decos := p.parseDecorators()
	mods := p.parseMemberModifiers(memberModifiers)
	head = append(head, decos, mods)

	tok, next := p.cur(), p.peek(1)
	switch {
	case tok.Is("constructor") && next.Kind == token.LParen:
		kw := p.leaf(ast.KindKeyword)
		parts := append(head, kw)
		parts = append(parts, p.parseSignature()...)
		parts = append(parts, p.parseFunctionBody())
		return p.b.Node(ast.KindConstructor, parts...)
	case (tok.Is("get") || tok.Is("set")) && isPropertyNameStart(next) && !next.HasNewlineBefore():
		return p.parseAccessor(head)
	}

	name := p.parsePropertyName()
	q := p.optional(token.Question)
	if p.atOr(token.LParen, token.Lt) {
		parts := append(head, name, q)
		parts = append(parts, p.parseSignature()...)
		parts = append(parts, p.parseFunctionBody())
		return p.b.Node(ast.KindMethodDeclaration, parts...)
	}
	colon, typ := p.parseTypeAnnotation()
	eq, init := p.parseInitializer()
	semi := p.parseSemicolon()
	return p.b.Node(ast.KindPropertyDeclaration, append(head, name, q, colon, typ, eq, init, semi)...)
}

// parseAccessor parses "get name() {...}" or "set name(v) {...}" after the
// member head.
func (p *Parser) parseAccessor(head []ast.NodeID) ast.NodeID {
	kind := ast.KindGetAccessor
	if p.cur().Is("set") {
		kind = ast.KindSetAccessor
	}
	kw := p.leaf(ast.KindKeyword)
	name := p.parsePropertyName()
	parts := append(head, kw, name)
	parts = append(parts, p.parseSignature()...)
	parts = append(parts, p.parseFunctionBody())
	return p.b.Node(kind, parts...)
}

var signatureModifiers = map[string]bool{"readonly": true}

// parseTypeMember parses a property or method signature of an interface or
// type literal. The trailing ';' or ',' belongs to the member.
func (p *Parser) parseTypeMember() ast.NodeID {
	head := p.parseDocs()
	mods := p.parseMemberModifiers(signatureModifiers)
	name := p.parsePropertyName()
	q := p.optional(token.Question)
	if p.atOr(token.LParen, token.Lt) {
		parts := append(head, mods, name, q)
		parts = append(parts, p.parseSignature()...)
		parts = append(parts, p.parseMemberSeparator())
		return p.b.Node(ast.KindMethodSignature, parts...)
	}
	colon, typ := p.parseTypeAnnotation()
	eq, init := p.parseInitializer()
	sep := p.parseMemberSeparator()
	return p.b.Node(ast.KindPropertySignature, append(head, mods, name, q, colon, typ, eq, init, sep)...)
}

func (p *Parser) parseMemberSeparator() ast.NodeID {
	if p.at(token.Comma) {
		return p.take()
	}
	return p.parseSemicolon()
}
