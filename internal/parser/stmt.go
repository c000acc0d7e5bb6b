package parser

import (
	"morph/internal/ast"
	"morph/internal/diag"
	"morph/internal/token"
)

// parseStatementList parses statements until stop and wraps them in a list.
func (p *Parser) parseStatementList(stop token.Kind) ast.NodeID {
	var items []ast.NodeID
	for !p.at(stop) && !p.atEnd() {
		start := p.pos
		if st := p.parseStatement(); st.IsValid() {
			items = append(items, st)
		}
		if p.pos == start {
			p.skip("expected statement")
		}
	}
	return p.b.List(p.cur().Span.Start, items...)
}

func (p *Parser) parseStatement() ast.NodeID {
	if p.atDeclarationStart() {
		return p.parseDeclaration()
	}
	switch p.cur().Kind {
	case token.LBrace:
		return p.parseBlock()
	case token.KwReturn:
		return p.parseReturn()
	case token.KwIf:
		return p.parseIf()
	case token.Semicolon:
		return p.b.Node(ast.KindEmptyStatement, p.take())
	case token.RBrace, token.EOF:
		return ast.NoNodeID
	}
	expr := p.parseExpression()
	return p.b.Node(ast.KindExpressionStatement, expr, p.parseSemicolon())
}

// atDeclarationStart looks past decorators and modifiers for a declaration
// keyword.
func (p *Parser) atDeclarationStart() bool {
	if p.at(token.At) {
		return true
	}
	n := 0
	for p.isStatementModifierAt(n) {
		n++
	}
	tok, next := p.peek(n), p.peek(n+1)
	switch tok.Kind {
	case token.KwVar, token.KwLet, token.KwConst, token.KwFunction, token.KwClass, token.KwInterface, token.KwEnum:
		return true
	case token.Ident:
		switch tok.Text {
		case "namespace", "module", "type":
			return next.Kind == token.Ident && !next.HasNewlineBefore()
		}
	}
	return n > 0
}

func (p *Parser) parseDeclaration() ast.NodeID {
	head := p.parseDocs()
	decos := p.parseDecorators()
	mods := p.parseStatementModifiers()
	if decos.IsValid() && !p.at(token.KwClass) {
		p.report(diag.SynDecoratorNotAllowed, diag.SevError, p.b.Span(decos), "decorators are only valid on classes")
	}
	head = append(head, decos, mods)

	tok := p.cur()
	switch {
	case tok.Kind == token.KwVar || tok.Kind == token.KwLet || tok.Kind == token.KwConst:
		return p.parseVariableStatement(head)
	case tok.Kind == token.KwFunction:
		return p.parseFunction(head)
	case tok.Kind == token.KwClass:
		return p.parseClass(head)
	case tok.Kind == token.KwInterface:
		return p.parseInterface(head)
	case tok.Kind == token.KwEnum:
		return p.parseEnum(head)
	case tok.Is("namespace") || tok.Is("module"):
		return p.parseNamespace(head)
	case tok.Is("type"):
		return p.parseTypeAlias(head)
	}
	if mods.IsValid() {
		p.report(diag.SynModifierNotAllowed, diag.SevError, p.b.Span(mods), "modifiers must precede a declaration")
	}
	p.err(diag.SynUnexpectedToken, "expected declaration, got \""+tok.Text+"\"")
	return ast.NoNodeID
}

func (p *Parser) parseVariableStatement(head []ast.NodeID) ast.NodeID {
	list := p.parseVariableDeclarationList()
	semi := p.parseSemicolon()
	return p.b.Node(ast.KindVariableStatement, append(head, list, semi)...)
}

func (p *Parser) parseVariableDeclarationList() ast.NodeID {
	kw := p.leaf(ast.KindKeyword)
	var decls []ast.NodeID
	for {
		decls = append(decls, p.parseVariableDeclaration())
		if !p.at(token.Comma) {
			break
		}
		decls = append(decls, p.take())
	}
	return p.b.Node(ast.KindVariableDeclarationList, kw, p.b.List(p.cur().Span.Start, decls...))
}

func (p *Parser) parseVariableDeclaration() ast.NodeID {
	name := p.parseIdentifier()
	colon, typ := p.parseTypeAnnotation()
	eq, init := p.parseInitializer()
	return p.b.Node(ast.KindVariableDeclaration, name, colon, typ, eq, init)
}

func (p *Parser) parseBlock() ast.NodeID {
	open := p.expect(token.LBrace, diag.SynUnclosedBrace, "expected '{'")
	stmts := p.parseStatementList(token.RBrace)
	closeTok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}'")
	if !open.IsValid() {
		open = p.missing(ast.KindOpenBraceToken)
	}
	return p.b.Node(ast.KindBlock, open, stmts, closeTok)
}

func (p *Parser) parseReturn() ast.NodeID {
	kw := p.take()
	var expr ast.NodeID
	if !p.atOr(token.Semicolon, token.RBrace, token.EOF) && !p.cur().HasNewlineBefore() {
		expr = p.parseExpression()
	}
	return p.b.Node(ast.KindReturnStatement, kw, expr, p.parseSemicolon())
}

func (p *Parser) parseIf() ast.NodeID {
	kw := p.take()
	open := p.expect(token.LParen, diag.SynUnclosedParen, "expected '('")
	cond := p.parseExpression()
	closeTok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'")
	then := p.parseEmbeddedStatement()
	var elseKw, elseStmt ast.NodeID
	if p.at(token.KwElse) {
		elseKw = p.take()
		elseStmt = p.parseEmbeddedStatement()
	}
	return p.b.Node(ast.KindIfStatement, kw, open, cond, closeTok, then, elseKw, elseStmt)
}

func (p *Parser) parseEmbeddedStatement() ast.NodeID {
	if st := p.parseStatement(); st.IsValid() {
		return st
	}
	p.err(diag.SynUnexpectedToken, "expected statement")
	return p.missing(ast.KindEmptyStatement)
}
