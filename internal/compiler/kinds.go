package compiler

import (
	"golang.org/x/text/unicode/norm"

	"morph/internal/ast"
	"morph/internal/errs"
	"morph/internal/manip"
	"morph/internal/structure"
)

// Remover is implemented by the kinds that can delete themselves.
type Remover interface {
	Wrapper
	Remove() error
}

func removeStatement(n *Node) error {
	id, err := n.id()
	if err != nil {
		return err
	}
	_, err = manip.RemoveStatementedNodeChild(n.doc(), id)
	return err
}

func removeMember(n *Node) error {
	id, err := n.id()
	if err != nil {
		return err
	}
	_, err = manip.RemoveClassMember(n.doc(), id)
	return err
}

func removeCommaSeparated(n *Node, opts manip.RemoveCommaSeparatedOptions) error {
	id, err := n.id()
	if err != nil {
		return err
	}
	_, err = manip.RemoveCommaSeparatedChild(n.doc(), id, opts)
	return err
}

type PropertySignature struct {
	*Node
	ChildOrderableNode
	DocumentationableNode
	ReadonlyableNode
	QuestionTokenableNode
	InitializerExpressionableNode
	TypedNode
	PropertyNamedNode
	ModifierableNode
}

func (*PropertySignature) Capabilities() []Capability {
	return []Capability{ChildOrderable, Documentationable, Readonlyable, QuestionTokenable,
		InitializerExpressionable, Typed, PropertyNamed, Modifierable}
}

func (p *PropertySignature) Remove() error { return removeMember(p.Node) }

func (p *PropertySignature) Fill(s *structure.PropertySignature) error { return Fill(p, s) }

type PropertyDeclaration struct {
	*Node
	ChildOrderableNode
	DecoratableNode
	AbstractableNode
	ScopedNode
	StaticableNode
	ReadonlyableNode
	DocumentationableNode
	QuestionTokenableNode
	InitializerExpressionableNode
	TypedNode
	PropertyNamedNode
	ModifierableNode
}

func (*PropertyDeclaration) Capabilities() []Capability {
	return []Capability{ChildOrderable, Decoratable, Abstractable, Scoped, Staticable, Readonlyable,
		Documentationable, QuestionTokenable, InitializerExpressionable, Typed, PropertyNamed, Modifierable}
}

func (p *PropertyDeclaration) Remove() error { return removeMember(p.Node) }

func (p *PropertyDeclaration) Fill(s *structure.PropertyDeclaration) error { return Fill(p, s) }

type MethodDeclaration struct {
	*Node
	ChildOrderableNode
	DecoratableNode
	AbstractableNode
	ScopedNode
	StaticableNode
	AsyncableNode
	DocumentationableNode
	BodiedNode
	ReturnTypedNode
	ParameteredNode
	PropertyNamedNode
	ModifierableNode
}

func (*MethodDeclaration) Capabilities() []Capability {
	return []Capability{ChildOrderable, Decoratable, Abstractable, Scoped, Staticable, Asyncable,
		Documentationable, Bodied, ReturnTyped, Parametered, PropertyNamed, Modifierable}
}

// Remove deletes the method from a class body or an object literal.
func (m *MethodDeclaration) Remove() error {
	tree, id, err := m.live()
	if err != nil {
		return err
	}
	if tree.Kind(tree.Parent(tree.Parent(id))) == ast.KindObjectLiteralExpression {
		return removeCommaSeparated(m.Node, manip.RemoveCommaSeparatedOptions{RemovePrecedingSpaces: true})
	}
	return removeMember(m.Node)
}

func (m *MethodDeclaration) Fill(s *structure.MethodDeclaration) error { return Fill(m, s) }

func (*MethodDeclaration) isObjectLiteralElement() {}

// accessorBase is shared by get and set accessors.
type accessorBase struct {
	*Node
	ChildOrderableNode
	DecoratableNode
	AbstractableNode
	ScopedNode
	StaticableNode
	BodiedNode
	ReturnTypedNode
	ParameteredNode
	PropertyNamedNode
	ModifierableNode
}

func (*accessorBase) Capabilities() []Capability {
	return []Capability{ChildOrderable, Decoratable, Abstractable, Scoped, Staticable, Bodied,
		ReturnTyped, Parametered, PropertyNamed, Modifierable}
}

func (a *accessorBase) Remove() error { return removeMember(a.Node) }

// counterpart finds the accessor of kind k with the same name and
// static-ness in the same list.
func (a *accessorBase) counterpart(k ast.Kind) (Wrapper, error) {
	name, err := a.PropertyNamedNode.Name()
	if err != nil {
		return nil, err
	}
	static, err := a.IsStatic()
	if err != nil {
		return nil, err
	}
	tree, id, err := a.live()
	if err != nil {
		return nil, err
	}
	for _, c := range tree.ChildrenOfKind(tree.Parent(id), k) {
		other := a.sf.wrap(c)
		var on string
		var os bool
		switch acc := other.(type) {
		case *GetAccessorDeclaration:
			on, err = acc.PropertyNamedNode.Name()
			if err == nil {
				os, err = acc.IsStatic()
			}
		case *SetAccessorDeclaration:
			on, err = acc.PropertyNamedNode.Name()
			if err == nil {
				os, err = acc.IsStatic()
			}
		default:
			return nil, errs.NotImplementedForValue(other)
		}
		if err != nil {
			return nil, err
		}
		if on == name && os == static {
			return other, nil
		}
	}
	return nil, nil
}

// AccessorDeclaration is a get or set accessor.
type AccessorDeclaration interface {
	Wrapper
	isAccessor()
}

type GetAccessorDeclaration struct{ accessorBase }

func (*GetAccessorDeclaration) isAccessor()             {}
func (*GetAccessorDeclaration) isObjectLiteralElement() {}

func (g *GetAccessorDeclaration) Fill(s *structure.AccessorDeclaration) error { return Fill(g, s) }

// SetAccessor returns the matching setter, or nil.
func (g *GetAccessorDeclaration) SetAccessor() (*SetAccessorDeclaration, error) {
	w, err := g.counterpart(ast.KindSetAccessor)
	if err != nil || w == nil {
		return nil, err
	}
	return AsOrErr[*SetAccessorDeclaration](w)
}

func (g *GetAccessorDeclaration) SetAccessorOrErr() (*SetAccessorDeclaration, error) {
	set, err := g.SetAccessor()
	if err != nil {
		return nil, err
	}
	if set == nil {
		return nil, errs.InvalidOperation("expected a set accessor for the get accessor")
	}
	return set, nil
}

type SetAccessorDeclaration struct{ accessorBase }

func (*SetAccessorDeclaration) isAccessor()             {}
func (*SetAccessorDeclaration) isObjectLiteralElement() {}

func (s *SetAccessorDeclaration) Fill(st *structure.AccessorDeclaration) error { return Fill(s, st) }

// GetAccessor returns the matching getter, or nil.
func (s *SetAccessorDeclaration) GetAccessor() (*GetAccessorDeclaration, error) {
	w, err := s.counterpart(ast.KindGetAccessor)
	if err != nil || w == nil {
		return nil, err
	}
	return AsOrErr[*GetAccessorDeclaration](w)
}

func (s *SetAccessorDeclaration) GetAccessorOrErr() (*GetAccessorDeclaration, error) {
	get, err := s.GetAccessor()
	if err != nil {
		return nil, err
	}
	if get == nil {
		return nil, errs.InvalidOperation("expected a get accessor for the set accessor")
	}
	return get, nil
}

type ConstructorDeclaration struct {
	*Node
	ChildOrderableNode
	ScopedNode
	BodiedNode
	ParameteredNode
	ModifierableNode
}

func (*ConstructorDeclaration) Capabilities() []Capability {
	return []Capability{ChildOrderable, Scoped, Bodied, Parametered, Modifierable}
}

func (c *ConstructorDeclaration) Remove() error { return removeMember(c.Node) }

func (c *ConstructorDeclaration) Fill(s *structure.ConstructorDeclaration) error { return Fill(c, s) }

type ClassDeclaration struct {
	*Node
	ChildOrderableNode
	ExportableNode
	AmbientableNode
	AbstractableNode
	DecoratableNode
	DocumentationableNode
	NamedNode
	ModifierableNode
}

func (*ClassDeclaration) Capabilities() []Capability {
	return []Capability{ChildOrderable, Exportable, Ambientable, Abstractable, Decoratable,
		Documentationable, Named, Modifierable}
}

func (c *ClassDeclaration) Remove() error { return removeStatement(c.Node) }

func (c *ClassDeclaration) Fill(s *structure.ClassDeclaration) error { return Fill(c, s) }

// members returns the wrappers of the class or interface body.
func members(n *Node) ([]Wrapper, error) {
	tree, id, err := n.live()
	if err != nil {
		return nil, err
	}
	list := childAfter(tree, id, ast.KindOpenBraceToken)
	if tree.Kind(list) != ast.KindSyntaxList {
		return nil, nil
	}
	return n.sf.wrapAll(tree.Children(list)), nil
}

func membersOf[T Wrapper](n *Node) ([]T, error) {
	ms, err := members(n)
	if err != nil {
		return nil, err
	}
	return wrapAs[T](ms), nil
}

// named returns the first element whose name is name.
func named[T interface {
	Wrapper
	Name() (string, error)
}](ws []T, name string) (T, error) {
	var zero T
	want := norm.NFC.String(name)
	for _, w := range ws {
		got, err := w.Name()
		if err != nil {
			return zero, err
		}
		if norm.NFC.String(got) == want {
			return w, nil
		}
	}
	return zero, nil
}

func (c *ClassDeclaration) Members() ([]Wrapper, error) { return members(c.Node) }

func (c *ClassDeclaration) Properties() ([]*PropertyDeclaration, error) {
	return membersOf[*PropertyDeclaration](c.Node)
}

func (c *ClassDeclaration) properties(static bool) ([]*PropertyDeclaration, error) {
	props, err := c.Properties()
	if err != nil {
		return nil, err
	}
	var out []*PropertyDeclaration
	for _, p := range props {
		s, err := p.IsStatic()
		if err != nil {
			return nil, err
		}
		if s == static {
			out = append(out, p)
		}
	}
	return out, nil
}

func (c *ClassDeclaration) InstanceProperties() ([]*PropertyDeclaration, error) {
	return c.properties(false)
}

func (c *ClassDeclaration) StaticProperties() ([]*PropertyDeclaration, error) {
	return c.properties(true)
}

func (c *ClassDeclaration) Methods() ([]*MethodDeclaration, error) {
	return membersOf[*MethodDeclaration](c.Node)
}

func (c *ClassDeclaration) GetAccessors() ([]*GetAccessorDeclaration, error) {
	return membersOf[*GetAccessorDeclaration](c.Node)
}

func (c *ClassDeclaration) SetAccessors() ([]*SetAccessorDeclaration, error) {
	return membersOf[*SetAccessorDeclaration](c.Node)
}

func (c *ClassDeclaration) Constructors() ([]*ConstructorDeclaration, error) {
	return membersOf[*ConstructorDeclaration](c.Node)
}

// Property returns nil when there is no property with that name.
func (c *ClassDeclaration) Property(name string) (*PropertyDeclaration, error) {
	props, err := c.Properties()
	if err != nil {
		return nil, err
	}
	return named(props, name)
}

func (c *ClassDeclaration) Method(name string) (*MethodDeclaration, error) {
	ms, err := c.Methods()
	if err != nil {
		return nil, err
	}
	return named(ms, name)
}

type InterfaceDeclaration struct {
	*Node
	ChildOrderableNode
	ExportableNode
	AmbientableNode
	DocumentationableNode
	NamedNode
	ModifierableNode
}

func (*InterfaceDeclaration) Capabilities() []Capability {
	return []Capability{ChildOrderable, Exportable, Ambientable, Documentationable, Named, Modifierable}
}

func (i *InterfaceDeclaration) Remove() error { return removeStatement(i.Node) }

func (i *InterfaceDeclaration) Fill(s *structure.InterfaceDeclaration) error { return Fill(i, s) }

func (i *InterfaceDeclaration) Members() ([]Wrapper, error) { return members(i.Node) }

func (i *InterfaceDeclaration) Properties() ([]*PropertySignature, error) {
	return membersOf[*PropertySignature](i.Node)
}

func (i *InterfaceDeclaration) Methods() ([]*MethodSignature, error) {
	return membersOf[*MethodSignature](i.Node)
}

func (i *InterfaceDeclaration) Property(name string) (*PropertySignature, error) {
	props, err := i.Properties()
	if err != nil {
		return nil, err
	}
	return named(props, name)
}

type MethodSignature struct {
	*Node
	ChildOrderableNode
	DocumentationableNode
	QuestionTokenableNode
	ReturnTypedNode
	ParameteredNode
	PropertyNamedNode
}

func (*MethodSignature) Capabilities() []Capability {
	return []Capability{ChildOrderable, Documentationable, QuestionTokenable, ReturnTyped, Parametered, PropertyNamed}
}

func (m *MethodSignature) Remove() error { return removeMember(m.Node) }

func (m *MethodSignature) Fill(s *structure.MethodSignature) error { return Fill(m, s) }

type FunctionDeclaration struct {
	*Node
	ChildOrderableNode
	ExportableNode
	AmbientableNode
	AsyncableNode
	DocumentationableNode
	BodiedNode
	ReturnTypedNode
	ParameteredNode
	NamedNode
	ModifierableNode
}

func (*FunctionDeclaration) Capabilities() []Capability {
	return []Capability{ChildOrderable, Exportable, Ambientable, Asyncable, Documentationable,
		Bodied, ReturnTyped, Parametered, Named, Modifierable}
}

func (f *FunctionDeclaration) Remove() error { return removeStatement(f.Node) }

func (f *FunctionDeclaration) Fill(s *structure.FunctionDeclaration) error { return Fill(f, s) }

type EnumDeclaration struct {
	*Node
	ChildOrderableNode
	ExportableNode
	AmbientableNode
	DocumentationableNode
	NamedNode
	ModifierableNode
}

func (*EnumDeclaration) Capabilities() []Capability {
	return []Capability{ChildOrderable, Exportable, Ambientable, Documentationable, Named, Modifierable}
}

func (e *EnumDeclaration) Remove() error { return removeStatement(e.Node) }

func (e *EnumDeclaration) Fill(s *structure.EnumDeclaration) error { return Fill(e, s) }

func (e *EnumDeclaration) Members() ([]*EnumMember, error) {
	tree, id, err := e.live()
	if err != nil {
		return nil, err
	}
	list := childAfter(tree, id, ast.KindOpenBraceToken)
	if tree.Kind(list) != ast.KindSyntaxList {
		return nil, nil
	}
	return wrapAs[*EnumMember](e.sf.wrapAll(tree.ChildrenOfKind(list, ast.KindEnumMember))), nil
}

func (e *EnumDeclaration) Member(name string) (*EnumMember, error) {
	ms, err := e.Members()
	if err != nil {
		return nil, err
	}
	return named(ms, name)
}

// IsConstEnum reports a "const enum".
func (e *EnumDeclaration) IsConstEnum() (bool, error) {
	return e.HasModifier(ast.KindConstKeyword)
}

type EnumMember struct {
	*Node
	DocumentationableNode
	InitializerExpressionableNode
	PropertyNamedNode
}

func (*EnumMember) Capabilities() []Capability {
	return []Capability{Documentationable, InitializerExpressionable, PropertyNamed}
}

func (e *EnumMember) Remove() error {
	return removeCommaSeparated(e.Node, manip.RemoveCommaSeparatedOptions{RemovePrecedingSpaces: true})
}

func (e *EnumMember) Fill(s *structure.EnumMember) error { return Fill(e, s) }

type NamespaceDeclaration struct {
	*Node
	ChildOrderableNode
	ExportableNode
	AmbientableNode
	DocumentationableNode
	BodiedNode
	NamedNode
	ModifierableNode
	StatementedNode
}

func (*NamespaceDeclaration) Capabilities() []Capability {
	return []Capability{ChildOrderable, Exportable, Ambientable, Documentationable, Bodied, Named, Modifierable}
}

func (ns *NamespaceDeclaration) Remove() error { return removeStatement(ns.Node) }

func (ns *NamespaceDeclaration) Fill(s *structure.NamespaceDeclaration) error { return Fill(ns, s) }

type TypeAliasDeclaration struct {
	*Node
	ChildOrderableNode
	ExportableNode
	AmbientableNode
	DocumentationableNode
	TypedNode
	NamedNode
	ModifierableNode
}

func (*TypeAliasDeclaration) Capabilities() []Capability {
	return []Capability{ChildOrderable, Exportable, Ambientable, Documentationable, Typed, Named, Modifierable}
}

func (t *TypeAliasDeclaration) Remove() error { return removeStatement(t.Node) }

func (t *TypeAliasDeclaration) Fill(s *structure.TypeAliasDeclaration) error { return Fill(t, s) }

type VariableStatement struct {
	*Node
	ChildOrderableNode
	ExportableNode
	AmbientableNode
	DocumentationableNode
	ModifierableNode
}

func (*VariableStatement) Capabilities() []Capability {
	return []Capability{ChildOrderable, Exportable, Ambientable, Documentationable, Modifierable}
}

func (v *VariableStatement) Remove() error { return removeStatement(v.Node) }

func (v *VariableStatement) Fill(s *structure.VariableStatement) error { return Fill(v, s) }

func (v *VariableStatement) fillOwn(s any) error {
	st, ok := s.(*structure.VariableStatement)
	if !ok {
		return nil
	}
	switch st.DeclarationKind.State() {
	case structure.Set:
		k, _ := st.DeclarationKind.Get()
		return v.SetDeclarationKind(k)
	case structure.Removed:
		return errs.InvalidOperation("the declaration kind cannot be removed")
	}
	return nil
}

func (v *VariableStatement) keyword() (*ast.Tree, ast.NodeID, error) {
	tree, id, err := v.live()
	if err != nil {
		return nil, ast.NoNodeID, err
	}
	list := tree.FirstChildOfKind(id, ast.KindVariableDeclarationList)
	return tree, tree.FirstChildOfKind(list, ast.KindKeyword), nil
}

func (v *VariableStatement) DeclarationKind() (structure.DeclarationKind, error) {
	tree, kw, err := v.keyword()
	if err != nil {
		return "", err
	}
	return structure.DeclarationKind(tree.Text(kw)), nil
}

// SetDeclarationKind rewrites the var, let or const keyword.
func (v *VariableStatement) SetDeclarationKind(k structure.DeclarationKind) error {
	switch k {
	case structure.DeclarationVar, structure.DeclarationLet, structure.DeclarationConst:
	default:
		return &errs.ArgumentError{Arg: "kind", Message: "unknown declaration kind " + string(k)}
	}
	tree, kw, err := v.keyword()
	if err != nil {
		return err
	}
	if tree.Text(kw) == string(k) {
		return nil
	}
	return replaceChild(v.doc(), tree, kw, kw, string(k))
}

func (v *VariableStatement) DeclarationList() (*Node, error) {
	w, err := v.FirstChildByKindOrErr(ast.KindVariableDeclarationList)
	if err != nil {
		return nil, err
	}
	return w.Base(), nil
}

func (v *VariableStatement) Declarations() ([]*VariableDeclaration, error) {
	tree, id, err := v.live()
	if err != nil {
		return nil, err
	}
	list := tree.FirstChildOfKind(tree.FirstChildOfKind(id, ast.KindVariableDeclarationList), ast.KindSyntaxList)
	return wrapAs[*VariableDeclaration](v.sf.wrapAll(tree.ChildrenOfKind(list, ast.KindVariableDeclaration))), nil
}

type VariableDeclaration struct {
	*Node
	InitializerExpressionableNode
	TypedNode
	BindingNamedNode
}

func (*VariableDeclaration) Capabilities() []Capability {
	return []Capability{InitializerExpressionable, Typed, BindingNamed}
}

func (v *VariableDeclaration) Fill(s *structure.VariableDeclaration) error { return Fill(v, s) }

// VariableStatement returns the statement that holds the declaration.
func (v *VariableDeclaration) VariableStatement() (*VariableStatement, error) {
	tree, id, err := v.live()
	if err != nil {
		return nil, err
	}
	for _, a := range tree.Ancestors(id) {
		if tree.Kind(a) == ast.KindVariableStatement {
			return AsOrErr[*VariableStatement](v.sf.wrap(a))
		}
	}
	return nil, errs.InvalidOperation("variable declaration is not inside a variable statement")
}

// Remove deletes the whole statement when this is its only declaration.
func (v *VariableDeclaration) Remove() error {
	tree, id, err := v.live()
	if err != nil {
		return err
	}
	list := tree.Parent(id)
	if len(tree.ChildrenOfKind(list, ast.KindVariableDeclaration)) == 1 {
		stmt, err := v.VariableStatement()
		if err != nil {
			return err
		}
		return stmt.Remove()
	}
	first := tree.Children(list)[0] == id
	return removeCommaSeparated(v.Node, manip.RemoveCommaSeparatedOptions{RemovePrecedingSpaces: !first})
}

type Parameter struct {
	*Node
	DecoratableNode
	ScopedNode
	ReadonlyableNode
	QuestionTokenableNode
	InitializerExpressionableNode
	TypedNode
	BindingNamedNode
	ModifierableNode
}

func (*Parameter) Capabilities() []Capability {
	return []Capability{Decoratable, Scoped, Readonlyable, QuestionTokenable, InitializerExpressionable,
		Typed, BindingNamed, Modifierable}
}

func (p *Parameter) Remove() error {
	return removeCommaSeparated(p.Node, manip.RemoveCommaSeparatedOptions{RemovePrecedingSpaces: true})
}

func (p *Parameter) Fill(s *structure.Parameter) error { return Fill(p, s) }

// IsRestParameter reports a leading "...".
func (p *Parameter) IsRestParameter() (bool, error) {
	tree, id, err := p.live()
	if err != nil {
		return false, err
	}
	return tree.FirstChildOfKind(id, ast.KindDotDotDotToken).IsValid(), nil
}

// IsParameterProperty reports a constructor parameter with a scope or
// readonly keyword.
func (p *Parameter) IsParameterProperty() (bool, error) {
	mods, err := p.Modifiers()
	return len(mods) > 0, err
}
