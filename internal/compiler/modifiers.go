package compiler

import (
	"slices"

	"morph/internal/ast"
	"morph/internal/errs"
	"morph/internal/manip"
	"morph/internal/structure"
)

// modifierPredecessors lists, per modifier, the modifiers that must appear
// before it.
var modifierPredecessors = map[string][]string{
	"export":    {},
	"default":   {"export"},
	"declare":   {"export", "default"},
	"abstract":  {"export", "default", "declare", "public", "private", "protected"},
	"readonly":  {"export", "default", "declare", "public", "private", "protected", "abstract", "static"},
	"public":    {},
	"protected": {},
	"private":   {},
	"static":    {"public", "protected", "private"},
	"async":     {"export", "public", "protected", "private", "static", "abstract"},
	"const":     {},
}

// modifierInsertIndex returns where text goes among the present modifiers:
// right after the last one that must precede it, or first.
func modifierInsertIndex(present []string, text string) (int, error) {
	preds, ok := modifierPredecessors[text]
	if !ok {
		return 0, errs.NotImplemented("modifier %q", text)
	}
	idx := 0
	for i, p := range present {
		if slices.Contains(preds, p) {
			idx = max(idx, i+1)
		}
	}
	return idx, nil
}

// ModifierableNode manages the modifier keywords of a declaration.
type ModifierableNode struct{ n *Node }

func isModifierList(k ast.Kind) bool { return k.IsModifier() }

func (m ModifierableNode) list() (*ast.Tree, ast.NodeID, ast.NodeID, error) {
	tree, id, err := m.n.live()
	if err != nil {
		return nil, ast.NoNodeID, ast.NoNodeID, err
	}
	return tree, id, listOf(tree, id, isModifierList), nil
}

func (m ModifierableNode) Modifiers() ([]*Node, error) {
	tree, _, list, err := m.list()
	if err != nil || !list.IsValid() {
		return nil, err
	}
	var out []*Node
	for _, c := range tree.Children(list) {
		out = append(out, m.n.sf.wrap(c).Base())
	}
	return out, nil
}

// FirstModifierByKind returns nil when there is no such modifier.
func (m ModifierableNode) FirstModifierByKind(k ast.Kind) (*Node, error) {
	mods, err := m.Modifiers()
	if err != nil {
		return nil, err
	}
	for _, mod := range mods {
		if mod.Kind() == k {
			return mod, nil
		}
	}
	return nil, nil
}

func (m ModifierableNode) FirstModifierByKindOrErr(k ast.Kind) (*Node, error) {
	mod, err := m.FirstModifierByKind(k)
	if err != nil {
		return nil, err
	}
	if mod == nil {
		return nil, errs.InvalidOperation("expected a modifier of kind %s", k)
	}
	return mod, nil
}

func (m ModifierableNode) HasModifier(k ast.Kind) (bool, error) {
	mod, err := m.FirstModifierByKind(k)
	return mod != nil, err
}

func (m ModifierableNode) HasModifierText(text string) (bool, error) {
	mod, err := m.modifierByText(text)
	return mod != nil, err
}

func (m ModifierableNode) modifierByText(text string) (*Node, error) {
	mods, err := m.Modifiers()
	if err != nil {
		return nil, err
	}
	for _, mod := range mods {
		t, err := mod.Text()
		if err != nil {
			return nil, err
		}
		if t == text {
			return mod, nil
		}
	}
	return nil, nil
}

// AddModifier inserts text at its conventional position and returns the
// modifier. An existing modifier is returned unchanged.
func (m ModifierableNode) AddModifier(text string) (*Node, error) {
	tree, id, list, err := m.list()
	if err != nil {
		return nil, err
	}
	var mods []ast.NodeID
	var present []string
	if list.IsValid() {
		mods = tree.Children(list)
		for _, c := range mods {
			present = append(present, tree.Text(c))
		}
	}
	idx, err := modifierInsertIndex(present, text)
	if err != nil {
		return nil, err
	}
	if i := slices.Index(present, text); i >= 0 {
		return m.n.sf.wrap(mods[i]).Base(), nil
	}

	var pos uint32
	switch {
	case len(mods) == 0:
		pos = initialModifierPos(tree, id)
	case idx == 0:
		pos = tree.Span(mods[0]).Start
	default:
		pos = tree.Span(mods[idx-1]).End
	}
	newText := " " + text
	if idx == 0 {
		newText = text + " "
	}
	if _, err := manip.InsertIntoCreatableSyntaxList(m.n.doc(), manip.InsertIntoCreatableSyntaxListOptions{
		Parent:           id,
		List:             list,
		InsertPos:        pos,
		Text:             newText,
		ChildIndex:       idx,
		InsertItemsCount: 1,
	}); err != nil {
		return nil, err
	}
	mod, err := m.modifierByText(text)
	if err != nil {
		return nil, err
	}
	if mod == nil {
		return nil, errs.InvalidOperation("modifier %q was not parsed as a modifier of %s", text, m.n.Kind())
	}
	return mod, nil
}

// initialModifierPos skips doc comments and the decorator list.
func initialModifierPos(tree *ast.Tree, id ast.NodeID) uint32 {
	for _, c := range tree.Children(id) {
		switch tree.Kind(c) {
		case ast.KindSyntaxList, ast.KindJSDoc:
			continue
		}
		return tree.Span(c).Start
	}
	return tree.Span(id).Start
}

// RemoveModifier reports whether there was a modifier to remove.
func (m ModifierableNode) RemoveModifier(text string) (bool, error) {
	mod, err := m.modifierByText(text)
	if err != nil || mod == nil {
		return false, err
	}
	id, err := mod.id()
	if err != nil {
		return false, err
	}
	_, err = manip.RemoveChildrenWithFormattingFromCollapsibleSyntaxList(m.n.doc(), manip.CollapsibleRemoveOptions{
		Children:          []ast.NodeID{id},
		SiblingFormatting: manip.SpaceFormatting,
	})
	return err == nil, err
}

// ToggleModifier adds or removes text. A nil value flips the current state.
func (m ModifierableNode) ToggleModifier(text string, value *bool) error {
	if _, ok := modifierPredecessors[text]; !ok {
		return errs.NotImplemented("modifier %q", text)
	}
	want := false
	if value != nil {
		want = *value
	} else {
		has, err := m.HasModifierText(text)
		if err != nil {
			return err
		}
		want = !has
	}
	return m.setModifier(text, want)
}

func (m ModifierableNode) setModifier(text string, on bool) error {
	if on {
		_, err := m.AddModifier(text)
		return err
	}
	_, err := m.RemoveModifier(text)
	return err
}

// ExportableNode covers export and default.
type ExportableNode struct{ n *Node }

func (e ExportableNode) mods() ModifierableNode { return ModifierableNode{e.n} }

func (e ExportableNode) IsExported() (bool, error) {
	return e.mods().HasModifier(ast.KindExportKeyword)
}

func (e ExportableNode) IsDefaultExport() (bool, error) {
	return e.mods().HasModifier(ast.KindDefaultKeyword)
}

// SetIsExported removes default too when value is false.
func (e ExportableNode) SetIsExported(value bool) error {
	if value {
		_, err := e.mods().AddModifier("export")
		return err
	}
	if _, err := e.mods().RemoveModifier("default"); err != nil {
		return err
	}
	_, err := e.mods().RemoveModifier("export")
	return err
}

// SetIsDefaultExport is only valid for top-level declarations.
func (e ExportableNode) SetIsDefaultExport(value bool) error {
	if !value {
		_, err := e.mods().RemoveModifier("default")
		return err
	}
	tree, id, err := e.n.live()
	if err != nil {
		return err
	}
	if tree.Parent(tree.Parent(id)) != tree.Root {
		return errs.InvalidOperation("only top-level declarations can be default exports")
	}
	if _, err := e.mods().AddModifier("export"); err != nil {
		return err
	}
	_, err = e.mods().AddModifier("default")
	return err
}

// AmbientableNode covers declare.
type AmbientableNode struct{ n *Node }

func (a AmbientableNode) HasDeclareKeyword() (bool, error) {
	return ModifierableNode{a.n}.HasModifier(ast.KindDeclareKeyword)
}

// DeclareKeyword returns nil when there is none.
func (a AmbientableNode) DeclareKeyword() (*Node, error) {
	return ModifierableNode{a.n}.FirstModifierByKind(ast.KindDeclareKeyword)
}

func (a AmbientableNode) ToggleDeclareKeyword(value *bool) error {
	return ModifierableNode{a.n}.ToggleModifier("declare", value)
}

type AbstractableNode struct{ n *Node }

func (a AbstractableNode) IsAbstract() (bool, error) {
	return ModifierableNode{a.n}.HasModifier(ast.KindAbstractKeyword)
}

func (a AbstractableNode) SetIsAbstract(value bool) error {
	return ModifierableNode{a.n}.setModifier("abstract", value)
}

type StaticableNode struct{ n *Node }

func (s StaticableNode) IsStatic() (bool, error) {
	return ModifierableNode{s.n}.HasModifier(ast.KindStaticKeyword)
}

func (s StaticableNode) SetIsStatic(value bool) error {
	return ModifierableNode{s.n}.setModifier("static", value)
}

type ReadonlyableNode struct{ n *Node }

func (r ReadonlyableNode) IsReadonly() (bool, error) {
	return ModifierableNode{r.n}.HasModifier(ast.KindReadonlyKeyword)
}

func (r ReadonlyableNode) SetIsReadonly(value bool) error {
	return ModifierableNode{r.n}.setModifier("readonly", value)
}

type AsyncableNode struct{ n *Node }

func (a AsyncableNode) IsAsync() (bool, error) {
	return ModifierableNode{a.n}.HasModifier(ast.KindAsyncKeyword)
}

func (a AsyncableNode) SetIsAsync(value bool) error {
	return ModifierableNode{a.n}.setModifier("async", value)
}

// ScopedNode covers public, protected and private. Class members without a
// keyword are public; parameters without one have no scope.
type ScopedNode struct {
	n              *Node
	implicitPublic bool
}

func (s ScopedNode) scopeKeyword() (*Node, error) {
	mods, err := ModifierableNode{s.n}.Modifiers()
	if err != nil {
		return nil, err
	}
	for _, m := range mods {
		if m.Kind().IsScopeModifier() {
			return m, nil
		}
	}
	return nil, nil
}

func (s ScopedNode) Scope() (structure.Scope, error) {
	kw, err := s.scopeKeyword()
	if err != nil {
		return structure.ScopeNone, err
	}
	if kw == nil {
		if s.implicitPublic {
			return structure.ScopePublic, nil
		}
		return structure.ScopeNone, nil
	}
	text, err := kw.Text()
	return structure.Scope(text), err
}

func (s ScopedNode) HasScopeKeyword() (bool, error) {
	kw, err := s.scopeKeyword()
	return kw != nil, err
}

// SetScope replaces the scope keyword. ScopeNone removes it.
func (s ScopedNode) SetScope(scope structure.Scope) error {
	if !scope.Valid() {
		return &errs.ArgumentError{Arg: "scope", Message: "unknown scope " + string(scope)}
	}
	mods := ModifierableNode{s.n}
	for _, other := range []structure.Scope{structure.ScopePublic, structure.ScopeProtected, structure.ScopePrivate} {
		if other == scope {
			continue
		}
		if _, err := mods.RemoveModifier(string(other)); err != nil {
			return err
		}
	}
	if scope == structure.ScopeNone {
		return nil
	}
	_, err := mods.AddModifier(string(scope))
	return err
}
