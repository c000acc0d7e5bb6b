package parser

import (
	"morph/internal/ast"
	"morph/internal/diag"
	"morph/internal/token"
)

func (p *Parser) parseExpression() ast.NodeID {
	return p.parseAssignment()
}

func (p *Parser) parseAssignment() ast.NodeID {
	if p.isArrowStart() {
		return p.parseArrow()
	}
	left := p.parseConditional()
	if p.cur().Kind.IsAssignment() {
		op := p.take()
		right := p.parseAssignment()
		return p.b.Node(ast.KindBinaryExpression, left, op, right)
	}
	return left
}

func (p *Parser) parseConditional() ast.NodeID {
	cond := p.parseBinary(1)
	if !p.at(token.Question) {
		return cond
	}
	q := p.take()
	whenTrue := p.parseAssignment()
	colon := p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':'")
	whenFalse := p.parseAssignment()
	return p.b.Node(ast.KindConditionalExpression, cond, q, whenTrue, colon, whenFalse)
}

// binaryPrec returns the precedence of tok as a binary operator, 0 if it is
// not one. "as" binds like a relational operator.
func binaryPrec(tok token.Token) int {
	switch tok.Kind {
	case token.QuestionQuestion:
		return 1
	case token.OrOr:
		return 2
	case token.AndAnd:
		return 3
	case token.Pipe:
		return 4
	case token.Caret:
		return 5
	case token.Amp:
		return 6
	case token.EqEq, token.EqEqEq, token.BangEq, token.BangEqEq:
		return 7
	case token.Lt, token.Gt, token.LtEq, token.GtEq:
		return 8
	case token.Plus, token.Minus:
		return 9
	case token.Star, token.Slash, token.Percent:
		return 10
	case token.StarStar:
		return 11
	case token.Ident:
		if tok.Text == "as" && !tok.HasNewlineBefore() {
			return 8
		}
	}
	return 0
}

func (p *Parser) parseBinary(minPrec int) ast.NodeID {
	left := p.parseUnary()
	for {
		tok := p.cur()
		prec := binaryPrec(tok)
		if prec == 0 || prec < minPrec {
			return left
		}
		if tok.Is("as") {
			kw := p.leaf(ast.KindKeyword)
			left = p.b.Node(ast.KindAsExpression, left, kw, p.parseType())
			continue
		}
		op := p.leaf(kindOf(tok))
		next := prec + 1
		if tok.Kind == token.StarStar {
			next = prec
		}
		right := p.parseBinary(next)
		left = p.b.Node(ast.KindBinaryExpression, left, op, right)
	}
}

func (p *Parser) parseUnary() ast.NodeID {
	switch p.cur().Kind {
	case token.Bang, token.Minus, token.Plus, token.Tilde, token.PlusPlus, token.MinusMinus, token.KwTypeof, token.KwVoid:
		op := p.take()
		return p.b.Node(ast.KindPrefixUnaryExpression, op, p.parseUnary())
	}
	expr := p.parseLeftHandSide()
	if p.atOr(token.PlusPlus, token.MinusMinus) && !p.cur().HasNewlineBefore() {
		return p.b.Node(ast.KindPostfixUnaryExpression, expr, p.take())
	}
	return expr
}

// parseLeftHandSide parses a primary expression followed by member
// accesses, element accesses and calls.
func (p *Parser) parseLeftHandSide() ast.NodeID {
	expr := p.parsePrimary()
	for {
		switch p.cur().Kind {
		case token.Dot, token.QuestionDot:
			dot := p.take()
			expr = p.b.Node(ast.KindPropertyAccessExpression, expr, dot, p.parseMemberName())
		case token.LBracket:
			open := p.take()
			index := p.parseExpression()
			closeTok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']'")
			expr = p.b.Node(ast.KindElementAccessExpression, expr, open, index, closeTok)
		case token.LParen:
			open, args, closeTok := p.parseArguments()
			expr = p.b.Node(ast.KindCallExpression, expr, open, args, closeTok)
		default:
			return expr
		}
	}
}

func (p *Parser) parseArguments() (ast.NodeID, ast.NodeID, ast.NodeID) {
	return p.parseBracketed(token.LParen, token.RParen, diag.SynUnclosedParen, p.parseArgument)
}

func (p *Parser) parseArgument() ast.NodeID {
	if p.at(token.DotDotDot) {
		dots := p.take()
		return p.b.Node(ast.KindSpreadElement, dots, p.parseAssignment())
	}
	return p.parseAssignment()
}

func (p *Parser) parsePrimary() ast.NodeID {
	tok := p.cur()
	switch tok.Kind {
	case token.Ident:
		return p.leaf(ast.KindIdentifier)
	case token.KwThis, token.KwTrue, token.KwFalse, token.KwNull:
		return p.leaf(ast.KindKeyword)
	case token.NumberLit, token.StringLit, token.TemplateLit:
		return p.take()
	case token.LParen:
		open := p.take()
		inner := p.parseExpression()
		closeTok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'")
		return p.b.Node(ast.KindParenthesizedExpression, open, inner, closeTok)
	case token.LBracket:
		open, elems, closeTok := p.parseBracketed(token.LBracket, token.RBracket, diag.SynUnclosedBracket, p.parseArgument)
		return p.b.Node(ast.KindArrayLiteralExpression, open, elems, closeTok)
	case token.LBrace:
		open, elems, closeTok := p.parseBracketed(token.LBrace, token.RBrace, diag.SynUnclosedBrace, p.parseObjectElement)
		return p.b.Node(ast.KindObjectLiteralExpression, open, elems, closeTok)
	case token.KwNew:
		return p.parseNew()
	}
	p.err(diag.SynExpectExpression, "expected expression, got \""+tok.Text+"\"")
	return p.missing(ast.KindIdentifier)
}

// parseNew parses "new Callee(args)"; the argument list is optional.
func (p *Parser) parseNew() ast.NodeID {
	kw := p.take()
	callee := p.parsePrimary()
	for p.at(token.Dot) {
		dot := p.take()
		callee = p.b.Node(ast.KindPropertyAccessExpression, callee, dot, p.parseMemberName())
	}
	var open, args, closeTok ast.NodeID
	if p.at(token.LParen) {
		open, args, closeTok = p.parseArguments()
	}
	return p.b.Node(ast.KindNewExpression, kw, callee, open, args, closeTok)
}

func (p *Parser) parseObjectElement() ast.NodeID {
	if p.at(token.DotDotDot) {
		dots := p.take()
		return p.b.Node(ast.KindSpreadAssignment, dots, p.parseAssignment())
	}
	tok, next := p.cur(), p.peek(1)
	if (tok.Is("get") || tok.Is("set")) && isPropertyNameStart(next) {
		return p.parseAccessor(nil)
	}
	var mods ast.NodeID
	if tok.Is("async") && isPropertyNameStart(next) && !next.HasNewlineBefore() {
		mods = p.b.List(0, p.leaf(ast.KindAsyncKeyword))
	}
	name := p.parsePropertyName()
	switch {
	case p.atOr(token.LParen, token.Lt):
		parts := []ast.NodeID{mods, name}
		parts = append(parts, p.parseSignature()...)
		parts = append(parts, p.parseBlock())
		return p.b.Node(ast.KindMethodDeclaration, parts...)
	case p.at(token.Colon):
		colon := p.take()
		return p.b.Node(ast.KindPropertyAssignment, name, colon, p.parseAssignment())
	case p.b.Kind(name) == ast.KindIdentifier:
		return p.b.Node(ast.KindShorthandPropertyAssignment, name)
	}
	p.err(diag.SynUnexpectedToken, "expected ':'")
	return name
}

// isArrowStart looks ahead for "x =>", "async x =>", "(...) =>" or
// "(...): T =>".
func (p *Parser) isArrowStart() bool {
	n := 0
	if p.cur().Is("async") && !p.peek(1).HasNewlineBefore() && (p.peek(1).Kind == token.LParen || p.peek(1).Kind == token.Ident) {
		n = 1
	}
	tok := p.peek(n)
	if tok.Kind == token.Ident {
		return p.peek(n+1).Kind == token.FatArrow
	}
	if tok.Kind != token.LParen {
		return false
	}
	closeAt := p.matchingParen(n)
	if closeAt < 0 {
		return false
	}
	after := p.peek(closeAt + 1)
	if after.Kind == token.FatArrow {
		return true
	}
	return after.Kind == token.Colon && p.peek(closeAt+2).IsWord() && p.peek(closeAt+3).Kind == token.FatArrow
}

// matchingParen returns the lookahead offset of the ")" closing the "(" at
// offset n, or -1.
func (p *Parser) matchingParen(n int) int {
	depth := 0
	for i := n; p.pos+i < len(p.toks); i++ {
		switch p.peek(i).Kind {
		case token.LParen, token.LBracket, token.LBrace:
			depth++
		case token.RParen, token.RBracket, token.RBrace:
			depth--
			if depth == 0 {
				if p.peek(i).Kind == token.RParen {
					return i
				}
				return -1
			}
		case token.EOF:
			return -1
		}
	}
	return -1
}

func (p *Parser) parseArrow() ast.NodeID {
	var mods ast.NodeID
	if p.cur().Is("async") {
		mods = p.b.List(0, p.leaf(ast.KindAsyncKeyword))
	}
	var parts []ast.NodeID
	if p.at(token.Ident) {
		name := p.leaf(ast.KindIdentifier)
		parts = []ast.NodeID{mods, p.b.Node(ast.KindParameter, name)}
	} else {
		parts = append([]ast.NodeID{mods}, p.parseSignature()...)
	}
	arrow := p.expect(token.FatArrow, diag.SynUnexpectedToken, "expected '=>'")
	var body ast.NodeID
	if p.at(token.LBrace) {
		body = p.parseBlock()
	} else {
		body = p.parseAssignment()
	}
	return p.b.Node(ast.KindArrowFunction, append(parts, arrow, body)...)
}
