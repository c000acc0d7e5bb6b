package compiler

import (
	"morph/internal/ast"
	"morph/internal/errs"
	"morph/internal/manip"
)

// NamedNode is a declaration named by an identifier.
type NamedNode struct{ n *Node }

func (nn NamedNode) nameID() (*ast.Tree, ast.NodeID, error) {
	tree, id, err := nn.n.live()
	if err != nil {
		return nil, ast.NoNodeID, err
	}
	name := nameOf(tree, id)
	if !name.IsValid() {
		return nil, ast.NoNodeID, errs.InvalidOperation("%s has no name", tree.Kind(id))
	}
	return tree, name, nil
}

func (nn NamedNode) NameNode() (*Identifier, error) {
	_, name, err := nn.nameID()
	if err != nil {
		return nil, err
	}
	return AsOrErr[*Identifier](nn.n.sf.wrap(name))
}

func (nn NamedNode) Name() (string, error) {
	tree, name, err := nn.nameID()
	if err != nil {
		return "", err
	}
	return tree.Text(name), nil
}

// SetName replaces the name of this declaration only.
func (nn NamedNode) SetName(name string) error {
	return setNameText(nn.n, name)
}

// Rename renames the declaration and every reference to it.
func (nn NamedNode) Rename(name string) error {
	id, err := nn.NameNode()
	if err != nil {
		return err
	}
	return id.Rename(name)
}

// setNameText rewrites the name token in place. The name stays the same
// node, so its wrapper survives.
func setNameText(n *Node, name string) error {
	if err := errs.CheckNotWhitespace(name, "name"); err != nil {
		return err
	}
	tree, id, err := n.live()
	if err != nil {
		return err
	}
	nameID := nameOf(tree, id)
	if !nameID.IsValid() {
		return errs.InvalidOperation("%s has no name", tree.Kind(id))
	}
	sp := tree.Span(nameID)
	_, err = manip.ReplaceText(n.doc(), []manip.EditOperation{{
		InsertPos: sp.Start,
		Removed:   sp,
		Text:      name,
		Parent:    nameID,
	}})
	return err
}

// PropertyNamedNode is a member named by an identifier, a literal or a
// computed name.
type PropertyNamedNode struct{ n *Node }

func (p PropertyNamedNode) NameNode() (PropertyName, error) {
	tree, id, err := p.n.live()
	if err != nil {
		return nil, err
	}
	name := nameOf(tree, id)
	if !name.IsValid() {
		return nil, errs.InvalidOperation("%s has no name", tree.Kind(id))
	}
	pn, ok := p.n.sf.wrap(name).(PropertyName)
	if !ok {
		return nil, errs.NotImplementedForKind(tree.Kind(name))
	}
	return pn, nil
}

// Name returns the name as written, quotes and brackets included.
func (p PropertyNamedNode) Name() (string, error) {
	pn, err := p.NameNode()
	if err != nil {
		return "", err
	}
	return pn.Base().Text()
}

func (p PropertyNamedNode) SetName(name string) error { return setNameText(p.n, name) }

// Rename renames the member and every reference to it. Only identifier
// names can be renamed this way.
func (p PropertyNamedNode) Rename(name string) error {
	pn, err := p.NameNode()
	if err != nil {
		return err
	}
	id, err := AsOrErr[*Identifier](pn)
	if err != nil {
		return err
	}
	return id.Rename(name)
}

// BindingNamedNode is a variable or parameter name.
type BindingNamedNode struct{ n *Node }

func (b BindingNamedNode) NameNode() (*Identifier, error) { return NamedNode(b).NameNode() }

func (b BindingNamedNode) Name() (string, error) { return NamedNode(b).Name() }

func (b BindingNamedNode) SetName(name string) error { return setNameText(b.n, name) }

func (b BindingNamedNode) Rename(name string) error { return NamedNode(b).Rename(name) }
