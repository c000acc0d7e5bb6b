package compiler

import (
	"strconv"
	"strings"

	"morph/internal/ast"
	"morph/internal/errs"
	"morph/internal/manip"
)

// PropertyName is the name of a member: an identifier, a string or number
// literal, or a computed name.
type PropertyName interface {
	Wrapper
	isPropertyName()
}

// PropertyNameText returns the name a member is looked up by: literals are
// unquoted, computed names keep their brackets.
func PropertyNameText(pn PropertyName) (string, error) {
	switch n := pn.(type) {
	case *Identifier:
		return n.Text()
	case *StringLiteral:
		return n.LiteralValue()
	case *NumericLiteral:
		return n.Text()
	case *ComputedPropertyName:
		return n.Text()
	default:
		return "", errs.NotImplementedForValue(pn)
	}
}

// ObjectLiteralElementLike is one element of an object literal.
type ObjectLiteralElementLike interface {
	Wrapper
	isObjectLiteralElement()
}

// ObjectLiteralElementName returns the property name of an element. Spread
// elements have none.
func ObjectLiteralElementName(e ObjectLiteralElementLike) (string, bool, error) {
	var (
		name string
		err  error
	)
	switch el := e.(type) {
	case *PropertyAssignment:
		name, err = el.Name()
	case *ShorthandPropertyAssignment:
		name, err = el.Name()
	case *MethodDeclaration:
		name, err = el.PropertyNamedNode.Name()
	case *GetAccessorDeclaration:
		name, err = el.PropertyNamedNode.Name()
	case *SetAccessorDeclaration:
		name, err = el.PropertyNamedNode.Name()
	case *SpreadAssignment:
		return "", false, nil
	default:
		return "", false, errs.NotImplementedForValue(e)
	}
	return name, err == nil, err
}

type Identifier struct{ *Node }

func (*Identifier) isPropertyName() {}

type StringLiteral struct{ *Node }

func (*StringLiteral) isPropertyName() {}

// LiteralValue returns the text between the quotes.
func (s *StringLiteral) LiteralValue() (string, error) {
	text, err := s.Text()
	if err != nil {
		return "", err
	}
	if len(text) >= 2 {
		text = text[1 : len(text)-1]
	}
	return text, nil
}

type NumericLiteral struct{ *Node }

func (*NumericLiteral) isPropertyName() {}

// LiteralValue parses decimal, hex, octal and binary forms with optional
// separators.
func (n *NumericLiteral) LiteralValue() (float64, error) {
	text, err := n.Text()
	if err != nil {
		return 0, err
	}
	text = strings.ReplaceAll(text, "_", "")
	if i, err := strconv.ParseInt(text, 0, 64); err == nil {
		return float64(i), nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, &errs.ArgumentError{Arg: "literal", Message: err.Error()}
	}
	return f, nil
}

type ComputedPropertyName struct{ *Node }

func (*ComputedPropertyName) isPropertyName() {}

// Expression returns what is between the brackets.
func (c *ComputedPropertyName) Expression() (Wrapper, error) {
	return childAt(c.Node, 1)
}

// childAt wraps the i-th child.
func childAt(n *Node, i int) (Wrapper, error) {
	tree, id, err := n.live()
	if err != nil {
		return nil, err
	}
	kids := tree.Children(id)
	if i >= len(kids) {
		return nil, errs.InvalidOperation("%s has no child %d", tree.Kind(id), i)
	}
	return n.sf.wrap(kids[i]), nil
}

// QualifiedName is "Left.Right" in type position.
type QualifiedName struct{ *Node }

func (q *QualifiedName) Left() (Wrapper, error) { return childAt(q.Node, 0) }

func (q *QualifiedName) Right() (*Identifier, error) {
	w, err := childAt(q.Node, 2)
	if err != nil {
		return nil, err
	}
	return AsOrErr[*Identifier](w)
}

type PropertyAccessExpression struct{ *Node }

func (p *PropertyAccessExpression) Expression() (Wrapper, error) { return childAt(p.Node, 0) }

func (p *PropertyAccessExpression) NameNode() (*Identifier, error) {
	w, err := childAt(p.Node, 2)
	if err != nil {
		return nil, err
	}
	return AsOrErr[*Identifier](w)
}

func (p *PropertyAccessExpression) Name() (string, error) {
	id, err := p.NameNode()
	if err != nil {
		return "", err
	}
	return id.Text()
}

type TypeReference struct{ *Node }

// TypeName is an Identifier or a QualifiedName.
func (t *TypeReference) TypeName() (Wrapper, error) { return childAt(t.Node, 0) }

func (t *TypeReference) TypeArguments() ([]Wrapper, error) {
	tree, id, err := t.live()
	if err != nil {
		return nil, err
	}
	list := childAfter(tree, id, ast.KindLessThanToken)
	if tree.Kind(list) != ast.KindSyntaxList {
		return nil, nil
	}
	return t.sf.wrapAll(elementsOf(tree, list)), nil
}

// elementsOf returns the children of a comma list without the commas.
func elementsOf(tree *ast.Tree, list ast.NodeID) []ast.NodeID {
	var out []ast.NodeID
	for _, c := range tree.Children(list) {
		if tree.Kind(c) != ast.KindCommaToken {
			out = append(out, c)
		}
	}
	return out
}

type Decorator struct{ *Node }

// Expression is what follows the @.
func (d *Decorator) Expression() (Wrapper, error) { return childAt(d.Node, 1) }

// Name returns the name of the decorator without call arguments.
func (d *Decorator) Name() (string, error) {
	w, err := d.Expression()
	if err != nil {
		return "", err
	}
	if call := w.Base(); call.Kind() == ast.KindCallExpression {
		if w, err = childAt(call, 0); err != nil {
			return "", err
		}
	}
	if pa, ok := As[*PropertyAccessExpression](w); ok {
		return pa.Name()
	}
	return w.Base().Text()
}

func (d *Decorator) Remove() error {
	id, err := d.id()
	if err != nil {
		return err
	}
	_, err = manip.RemoveChildrenWithFormattingFromCollapsibleSyntaxList(d.doc(), manip.CollapsibleRemoveOptions{
		Children:          []ast.NodeID{id},
		SiblingFormatting: manip.SpaceFormatting,
	})
	return err
}

type ObjectLiteralExpression struct{ *Node }

func (o *ObjectLiteralExpression) Properties() ([]ObjectLiteralElementLike, error) {
	tree, id, err := o.live()
	if err != nil {
		return nil, err
	}
	list := childAfter(tree, id, ast.KindOpenBraceToken)
	if tree.Kind(list) != ast.KindSyntaxList {
		return nil, nil
	}
	var out []ObjectLiteralElementLike
	for _, c := range elementsOf(tree, list) {
		el, ok := o.sf.wrap(c).(ObjectLiteralElementLike)
		if !ok {
			return nil, errs.NotImplementedForKind(tree.Kind(c))
		}
		out = append(out, el)
	}
	return out, nil
}

// Property returns nil when no element has that name.
func (o *ObjectLiteralExpression) Property(name string) (ObjectLiteralElementLike, error) {
	props, err := o.Properties()
	if err != nil {
		return nil, err
	}
	for _, p := range props {
		got, ok, err := ObjectLiteralElementName(p)
		if err != nil {
			return nil, err
		}
		if ok && got == name {
			return p, nil
		}
	}
	return nil, nil
}

func removeElement(n *Node) error {
	return removeCommaSeparated(n, manip.RemoveCommaSeparatedOptions{RemovePrecedingSpaces: true})
}

// PropertyAssignment is "name: value".
type PropertyAssignment struct {
	*Node
	PropertyNamedNode
}

func (*PropertyAssignment) isObjectLiteralElement() {}

func (p *PropertyAssignment) Initializer() (Wrapper, error) {
	tree, id, err := p.live()
	if err != nil {
		return nil, err
	}
	return p.sf.wrapOrNil(childAfter(tree, id, ast.KindColonToken)), nil
}

func (p *PropertyAssignment) Remove() error { return removeElement(p.Node) }

type ShorthandPropertyAssignment struct{ *Node }

func (*ShorthandPropertyAssignment) isObjectLiteralElement() {}

func (s *ShorthandPropertyAssignment) Name() (string, error) { return s.Text() }

func (s *ShorthandPropertyAssignment) Remove() error { return removeElement(s.Node) }

// SpreadAssignment is "...expression" in an object literal.
type SpreadAssignment struct{ *Node }

func (*SpreadAssignment) isObjectLiteralElement() {}

func (s *SpreadAssignment) Expression() (Wrapper, error) { return childAt(s.Node, 1) }

func (s *SpreadAssignment) Remove() error { return removeElement(s.Node) }
