package compiler

import (
	"regexp"
	"strings"

	"morph/internal/ast"
	"morph/internal/errs"
	"morph/internal/manip"
	"morph/internal/source"
)

// InitializerExpressionableNode manages "= expression".
type InitializerExpressionableNode struct{ n *Node }

func (i InitializerExpressionableNode) initializer() (*ast.Tree, ast.NodeID, ast.NodeID, error) {
	tree, id, err := i.n.live()
	if err != nil {
		return nil, ast.NoNodeID, ast.NoNodeID, err
	}
	return tree, id, childAfter(tree, id, ast.KindEqualsToken), nil
}

// Initializer returns nil when there is none.
func (i InitializerExpressionableNode) Initializer() (*Node, error) {
	_, _, init, err := i.initializer()
	if err != nil {
		return nil, err
	}
	return i.n.sf.baseOrNil(init), nil
}

func (i InitializerExpressionableNode) InitializerOrErr() (*Node, error) {
	init, err := i.Initializer()
	if err != nil {
		return nil, err
	}
	if init == nil {
		return nil, errs.InvalidOperation("expected %s to have an initializer", i.n.Kind())
	}
	return init, nil
}

func (i InitializerExpressionableNode) HasInitializer() (bool, error) {
	init, err := i.Initializer()
	return init != nil, err
}

// SetInitializer writes " = text" in place of an existing "=" and
// expression, spaces before the "=" included, or inserts it before a
// trailing separator.
func (i InitializerExpressionableNode) SetInitializer(text string) error {
	if err := errs.CheckNotWhitespace(text, "text"); err != nil {
		return err
	}
	tree, id, init, err := i.initializer()
	if err != nil {
		return err
	}
	if init.IsValid() {
		eq := tree.PrevSibling(init)
		start, floor := tree.Span(eq).Start, tree.Node(eq).Pos
		src := i.n.doc().Text()
		for start > floor && isSpace(src[start-1]) {
			start--
		}
		removed := source.Span{File: tree.Span(init).File, Start: start, End: tree.Span(init).End}
		_, err = manip.ReplaceText(i.n.doc(), []manip.EditOperation{{
			InsertPos: start,
			Removed:   removed,
			Text:      " = " + text,
			Parent:    id,
		}})
		return err
	}
	kids := tree.Children(id)
	pos, idx := tree.Span(id).End, len(kids)
	if last := tree.LastChild(id); isTrailingSeparator(tree.Kind(last)) {
		pos, idx = tree.Node(last).Pos, len(kids)-1
	}
	_, err = manip.InsertIntoParent(i.n.doc(), manip.InsertIntoParentOptions{
		Parent:           id,
		InsertPos:        pos,
		Text:             " = " + text,
		ChildIndex:       idx,
		InsertItemsCount: 2,
	})
	return err
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' }

func isTrailingSeparator(k ast.Kind) bool {
	return k == ast.KindSemicolonToken || k == ast.KindCommaToken
}

// RemoveInitializer removes "=" and the expression with the spaces before
// them. It does nothing when there is no initializer.
func (i InitializerExpressionableNode) RemoveInitializer() error {
	tree, _, init, err := i.initializer()
	if err != nil || !init.IsValid() {
		return err
	}
	_, err = manip.RemoveChildren(i.n.doc(), manip.RemoveChildrenOptions{
		Children:              []ast.NodeID{tree.PrevSibling(init), init},
		RemovePrecedingSpaces: true,
	})
	return err
}

// nameOf returns the name child of a declaration: the first identifier,
// literal or computed name that is a direct child. A parameter may be named
// this.
func nameOf(tree *ast.Tree, id ast.NodeID) ast.NodeID {
	param := tree.Kind(id) == ast.KindParameter
	for _, c := range tree.Children(id) {
		switch tree.Kind(c) {
		case ast.KindIdentifier, ast.KindStringLiteral, ast.KindNumericLiteral, ast.KindComputedPropertyName:
			return c
		case ast.KindKeyword:
			if param {
				return c
			}
		}
	}
	return ast.NoNodeID
}

// TypedNode manages ": Type", or "= Type" of a type alias.
type TypedNode struct{ n *Node }

func (t TypedNode) typeNode() (*ast.Tree, ast.NodeID, ast.NodeID, error) {
	tree, id, err := t.n.live()
	if err != nil {
		return nil, ast.NoNodeID, ast.NoNodeID, err
	}
	sep := ast.KindColonToken
	if tree.Kind(id) == ast.KindTypeAliasDeclaration {
		sep = ast.KindEqualsToken
	}
	return tree, id, childAfter(tree, id, sep), nil
}

// Type returns nil when there is no annotation.
func (t TypedNode) Type() (*Node, error) {
	_, _, typ, err := t.typeNode()
	if err != nil {
		return nil, err
	}
	return t.n.sf.baseOrNil(typ), nil
}

func (t TypedNode) TypeOrErr() (*Node, error) {
	typ, err := t.Type()
	if err != nil {
		return nil, err
	}
	if typ == nil {
		return nil, errs.InvalidOperation("expected %s to have a type", t.n.Kind())
	}
	return typ, nil
}

func (t TypedNode) SetType(text string) error {
	if err := errs.CheckNotWhitespace(text, "text"); err != nil {
		return err
	}
	tree, id, typ, err := t.typeNode()
	if err != nil {
		return err
	}
	if typ.IsValid() {
		return replaceChild(t.n.doc(), tree, id, typ, text)
	}
	anchor := tree.FirstChildOfKind(id, ast.KindQuestionToken)
	if !anchor.IsValid() {
		anchor = nameOf(tree, id)
	}
	if !anchor.IsValid() {
		return errs.InvalidOperation("%s has no name to annotate", tree.Kind(id))
	}
	_, err = manip.InsertIntoParent(t.n.doc(), manip.InsertIntoParentOptions{
		Parent:           id,
		InsertPos:        tree.Span(anchor).End,
		Text:             ": " + text,
		ChildIndex:       tree.ChildIndex(anchor) + 1,
		InsertItemsCount: 2,
	})
	return err
}

func (t TypedNode) RemoveType() error {
	tree, id, typ, err := t.typeNode()
	if err != nil || !typ.IsValid() {
		return err
	}
	if tree.Kind(id) == ast.KindTypeAliasDeclaration {
		return errs.InvalidOperation("the type of a type alias cannot be removed")
	}
	_, err = manip.RemoveChildren(t.n.doc(), manip.RemoveChildrenOptions{
		Children:              []ast.NodeID{tree.PrevSibling(typ), typ},
		RemovePrecedingSpaces: true,
	})
	return err
}

// replaceChild replaces the text of child inside parent.
func replaceChild(doc *manip.Document, tree *ast.Tree, parent, child ast.NodeID, text string) error {
	sp := tree.Span(child)
	_, err := manip.ReplaceText(doc, []manip.EditOperation{{
		InsertPos: sp.Start,
		Removed:   sp,
		Text:      text,
		Parent:    parent,
	}})
	return err
}

// ReturnTypedNode manages the ": Type" after a parameter list.
type ReturnTypedNode struct{ n *Node }

func (r ReturnTypedNode) returnType() (*ast.Tree, ast.NodeID, ast.NodeID, ast.NodeID, error) {
	tree, id, err := r.n.live()
	if err != nil {
		return nil, ast.NoNodeID, ast.NoNodeID, ast.NoNodeID, err
	}
	closeParen := tree.FirstChildOfKind(id, ast.KindCloseParenToken)
	if !closeParen.IsValid() {
		return tree, id, closeParen, ast.NoNodeID, nil
	}
	next := tree.NextSibling(closeParen)
	if tree.Kind(next) != ast.KindColonToken {
		return tree, id, closeParen, ast.NoNodeID, nil
	}
	return tree, id, closeParen, tree.NextSibling(next), nil
}

// ReturnType returns nil when there is no annotation.
func (r ReturnTypedNode) ReturnType() (*Node, error) {
	_, _, _, typ, err := r.returnType()
	if err != nil {
		return nil, err
	}
	return r.n.sf.baseOrNil(typ), nil
}

func (r ReturnTypedNode) SetReturnType(text string) error {
	if err := errs.CheckNotWhitespace(text, "text"); err != nil {
		return err
	}
	tree, id, closeParen, typ, err := r.returnType()
	if err != nil {
		return err
	}
	if typ.IsValid() {
		return replaceChild(r.n.doc(), tree, id, typ, text)
	}
	if !closeParen.IsValid() {
		return errs.InvalidOperation("%s has no parameter list", tree.Kind(id))
	}
	_, err = manip.InsertIntoParent(r.n.doc(), manip.InsertIntoParentOptions{
		Parent:           id,
		InsertPos:        tree.Span(closeParen).End,
		Text:             ": " + text,
		ChildIndex:       tree.ChildIndex(closeParen) + 1,
		InsertItemsCount: 2,
	})
	return err
}

func (r ReturnTypedNode) RemoveReturnType() error {
	tree, _, _, typ, err := r.returnType()
	if err != nil || !typ.IsValid() {
		return err
	}
	_, err = manip.RemoveChildren(r.n.doc(), manip.RemoveChildrenOptions{
		Children: []ast.NodeID{tree.PrevSibling(typ), typ},
	})
	return err
}

// QuestionTokenableNode manages the optional marker after a name.
type QuestionTokenableNode struct{ n *Node }

func (q QuestionTokenableNode) HasQuestionToken() (bool, error) {
	tree, id, err := q.n.live()
	if err != nil {
		return false, err
	}
	return tree.FirstChildOfKind(id, ast.KindQuestionToken).IsValid(), nil
}

func (q QuestionTokenableNode) SetHasQuestionToken(value bool) error {
	tree, id, err := q.n.live()
	if err != nil {
		return err
	}
	tok := tree.FirstChildOfKind(id, ast.KindQuestionToken)
	switch {
	case value && !tok.IsValid():
		name := nameOf(tree, id)
		if !name.IsValid() {
			return errs.InvalidOperation("%s has no name", tree.Kind(id))
		}
		_, err = manip.InsertIntoParent(q.n.doc(), manip.InsertIntoParentOptions{
			Parent:           id,
			InsertPos:        tree.Span(name).End,
			Text:             "?",
			ChildIndex:       tree.ChildIndex(name) + 1,
			InsertItemsCount: 1,
		})
	case !value && tok.IsValid():
		_, err = manip.RemoveChildren(q.n.doc(), manip.RemoveChildrenOptions{Children: []ast.NodeID{tok}})
	}
	return err
}

// ChildOrderableNode moves a declaration within its list.
type ChildOrderableNode struct{ n *Node }

func (c ChildOrderableNode) SetOrder(index int) error {
	id, err := c.n.id()
	if err != nil {
		return err
	}
	_, err = manip.MoveChild(c.n.doc(), id, index)
	return err
}

type DecoratableNode struct{ n *Node }

func (d DecoratableNode) Decorators() ([]*Decorator, error) {
	tree, id, err := d.n.live()
	if err != nil {
		return nil, err
	}
	list := listOf(tree, id, func(k ast.Kind) bool { return k == ast.KindDecorator })
	if !list.IsValid() {
		return nil, nil
	}
	return wrapAs[*Decorator](d.n.sf.wrapAll(tree.Children(list))), nil
}

type ParameteredNode struct{ n *Node }

func (p ParameteredNode) Parameters() ([]*Parameter, error) {
	tree, id, err := p.n.live()
	if err != nil {
		return nil, err
	}
	list := childAfter(tree, id, ast.KindOpenParenToken)
	if tree.Kind(list) != ast.KindSyntaxList {
		return nil, nil
	}
	return wrapAs[*Parameter](p.n.sf.wrapAll(tree.ChildrenOfKind(list, ast.KindParameter))), nil
}

// BodiedNode manages a block or namespace body.
type BodiedNode struct{ n *Node }

func (b BodiedNode) body() (*ast.Tree, ast.NodeID, ast.NodeID, error) {
	tree, id, err := b.n.live()
	if err != nil {
		return nil, ast.NoNodeID, ast.NoNodeID, err
	}
	body := tree.FirstChildOfKind(id, ast.KindBlock)
	if !body.IsValid() {
		body = tree.FirstChildOfKind(id, ast.KindModuleBlock)
	}
	return tree, id, body, nil
}

// Body returns nil for a declaration without a body.
func (b BodiedNode) Body() (*Node, error) {
	_, _, body, err := b.body()
	if err != nil {
		return nil, err
	}
	return b.n.sf.baseOrNil(body), nil
}

// BodyText returns the statements of the body without the braces.
func (b BodiedNode) BodyText() (string, error) {
	tree, _, body, err := b.body()
	if err != nil || !body.IsValid() {
		return "", err
	}
	list := tree.FirstChildOfKind(body, ast.KindSyntaxList)
	return tree.Text(list), nil
}

var lineBreak = regexp.MustCompile(`\r?\n`)

// SetBodyText replaces the statements of the body with text, one level
// deeper than the declaration.
func (b BodiedNode) SetBodyText(text string) error {
	tree, id, body, err := b.body()
	if err != nil {
		return err
	}
	if !body.IsValid() {
		return errs.InvalidOperation("%s has no body", tree.Kind(id))
	}
	open := tree.FirstChildOfKind(body, ast.KindOpenBraceToken)
	closeBrace := tree.FirstChildOfKind(body, ast.KindCloseBraceToken)
	doc := b.n.doc()
	base := doc.IndentationOf(tree.Span(id).Start)
	nl := doc.Newline()

	var sb strings.Builder
	if strings.TrimSpace(text) != "" {
		for _, line := range lineBreak.Split(text, -1) {
			sb.WriteString(nl)
			if strings.TrimSpace(line) != "" {
				sb.WriteString(base + doc.Indent() + line)
			}
		}
	}
	sb.WriteString(nl + base)
	removed := source.Span{File: tree.File, Start: tree.Span(open).End, End: tree.Span(closeBrace).Start}
	_, err = manip.ReplaceText(doc, []manip.EditOperation{{
		InsertPos: removed.Start,
		Removed:   removed,
		Text:      sb.String(),
		Parent:    body,
	}})
	return err
}

// RemoveBody turns the declaration into a signature ending in ";". Only
// functions and methods can lose their body.
func (b BodiedNode) RemoveBody() error {
	tree, id, body, err := b.body()
	if err != nil || !body.IsValid() {
		return err
	}
	if tree.Kind(body) != ast.KindBlock {
		return errs.InvalidOperation("the body of a %s cannot be removed", tree.Kind(id))
	}
	start := tree.Span(tree.PrevSibling(body)).End
	removed := source.Span{File: tree.File, Start: start, End: tree.Span(body).End}
	_, err = manip.ReplaceText(b.n.doc(), []manip.EditOperation{{
		InsertPos: start,
		Removed:   removed,
		Text:      ";",
		Parent:    id,
	}})
	return err
}
