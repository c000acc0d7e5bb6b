package langsvc

import (
	"strings"

	"morph/internal/ast"
	"morph/internal/source"
)

// File is one parsed file of a program snapshot.
type File struct {
	ID   source.FileID
	Path string
	Tree *ast.Tree
}

// fileBinding holds what binding found in one file: the scope each
// scope-creating node introduces and the symbol of every declaration name.
type fileBinding struct {
	file   File
	order  int
	scopes map[ast.NodeID]*scope
	defs   map[ast.NodeID]*Symbol
}

type binder struct {
	global *scope
	files  []*fileBinding
}

func newBinder() *binder {
	return &binder{global: newScope(nil)}
}

// bindFile declares everything in f. Script files share the global scope.
func (b *binder) bindFile(f File) *fileBinding {
	fb := &fileBinding{
		file:   f,
		order:  len(b.files),
		scopes: make(map[ast.NodeID]*scope),
		defs:   make(map[ast.NodeID]*Symbol),
	}
	b.files = append(b.files, fb)
	tree := f.Tree
	fb.scopes[tree.Root] = b.global
	fb.bindChildren(tree.Root, b.global, nil)
	return fb
}

func (fb *fileBinding) tree() *ast.Tree { return fb.file.Tree }

// newSymbol creates a symbol declared by the name node id.
func (fb *fileBinding) newSymbol(id ast.NodeID, kind SymbolKind, write bool) *Symbol {
	tree := fb.tree()
	return &Symbol{
		Name: tree.Text(id),
		Kind: kind,
		Decls: []Decl{{
			Location: Location{File: fb.file.ID, Span: tree.Span(id)},
			Node:     id,
			Write:    write,
		}},
	}
}

// declare binds a declaration name in sc. Exported declarations of a
// namespace body also become members of the namespace.
func (fb *fileBinding) declare(sc *scope, ns *Symbol, exported bool, sym *Symbol) *Symbol {
	node := sym.Decls[0].Node
	if exported && ns != nil {
		if old := ns.member(sym.Name); old != nil {
			old.Decls = append(old.Decls, sym.Decls...)
			sc.names[key(sym.Name)] = old
			fb.defs[node] = old
			return old
		}
		sym = sc.declare(sym)
		ns.addMember(sym)
	} else {
		sym = sc.declare(sym)
	}
	fb.defs[node] = sym
	return sym
}

func (fb *fileBinding) declareMember(owner *Symbol, sym *Symbol) *Symbol {
	m := owner.addMember(sym)
	fb.defs[sym.Decls[0].Node] = m
	return m
}

func (fb *fileBinding) bindChildren(id ast.NodeID, sc *scope, ns *Symbol) {
	for _, c := range fb.tree().Children(id) {
		fb.bind(c, sc, ns)
	}
}

// bindAllBut binds every child except skip.
func (fb *fileBinding) bindAllBut(id ast.NodeID, sc *scope, skip ast.NodeID) {
	for _, c := range fb.tree().Children(id) {
		if c != skip {
			fb.bind(c, sc, nil)
		}
	}
}

func (fb *fileBinding) isExported(id ast.NodeID) bool {
	tree := fb.tree()
	for _, c := range tree.ChildrenOfKind(id, ast.KindSyntaxList) {
		if tree.FirstChildOfKind(c, ast.KindExportKeyword).IsValid() {
			return true
		}
	}
	return false
}

func (fb *fileBinding) bind(id ast.NodeID, sc *scope, ns *Symbol) {
	tree := fb.tree()
	switch tree.Kind(id) {
	case ast.KindSyntaxList:
		fb.bindChildren(id, sc, ns)

	case ast.KindVariableStatement:
		exported := fb.isExported(id)
		list := tree.FirstChildOfKind(id, ast.KindVariableDeclarationList)
		kind := SymbolKind(tree.Text(tree.FirstChildOfKind(list, ast.KindKeyword)))
		decls := tree.FirstChildOfKind(list, ast.KindSyntaxList)
		for _, d := range tree.ChildrenOfKind(decls, ast.KindVariableDeclaration) {
			name := tree.FirstChildOfKind(d, ast.KindIdentifier)
			if name.IsValid() {
				fb.declare(sc, ns, exported, fb.newSymbol(name, kind, tree.FirstChildOfKind(d, ast.KindEqualsToken).IsValid()))
			}
			fb.bindAllBut(d, sc, name)
		}

	case ast.KindFunctionDeclaration:
		name := tree.FirstChildOfKind(id, ast.KindIdentifier)
		if name.IsValid() {
			sym := fb.newSymbol(name, KindFunction, tree.FirstChildOfKind(id, ast.KindBlock).IsValid())
			sym.Display = fb.signatureDisplay(KindFunction, name, id)
			fb.declare(sc, ns, fb.isExported(id), sym)
		}
		fb.bindFunction(id, sc, name)

	case ast.KindClassDeclaration:
		fb.bindClass(id, sc, ns)

	case ast.KindInterfaceDeclaration:
		fb.bindInterface(id, sc, ns)

	case ast.KindEnumDeclaration:
		name := tree.FirstChildOfKind(id, ast.KindIdentifier)
		sym := fb.declare(sc, ns, fb.isExported(id), fb.newSymbol(name, KindEnum, true))
		inner := newScope(sc)
		inner.container = sym
		fb.scopes[id] = inner
		members := childAfter(tree, id, ast.KindOpenBraceToken)
		for _, m := range tree.ChildrenOfKind(members, ast.KindEnumMember) {
			mname := nameOf(tree, m)
			if mname.IsValid() {
				fb.declareMember(sym, fb.newSymbol(mname, KindEnumMember, tree.FirstChildOfKind(m, ast.KindEqualsToken).IsValid()))
			}
			fb.bindAllBut(m, inner, mname)
		}

	case ast.KindNamespaceDeclaration:
		name := tree.FirstChildOfKind(id, ast.KindIdentifier)
		sym := fb.declare(sc, ns, fb.isExported(id), fb.newSymbol(name, KindNamespace, true))
		inner := newScope(sc)
		inner.container = sym
		fb.scopes[id] = inner
		if body := tree.FirstChildOfKind(id, ast.KindModuleBlock); body.IsValid() {
			fb.bindChildren(body, inner, sym)
		}

	case ast.KindTypeAliasDeclaration:
		name := tree.FirstChildOfKind(id, ast.KindIdentifier)
		fb.declare(sc, ns, fb.isExported(id), fb.newSymbol(name, KindTypeAlias, true))
		inner := newScope(sc)
		fb.scopes[id] = inner
		fb.bindAllBut(id, inner, name)

	case ast.KindBlock:
		inner := newScope(sc)
		fb.scopes[id] = inner
		fb.bindChildren(id, inner, nil)

	case ast.KindArrowFunction, ast.KindMethodDeclaration, ast.KindGetAccessor, ast.KindSetAccessor:
		// Object literal members: their names are property keys.
		fb.bindFunction(id, sc, nameOf(tree, id))

	default:
		fb.bindChildren(id, sc, nil)
	}
}

// bindFunction gives a function-like node its own scope holding its type
// parameters and parameters. A block body shares that scope.
func (fb *fileBinding) bindFunction(id ast.NodeID, sc *scope, name ast.NodeID) *scope {
	tree := fb.tree()
	inner := newScope(sc)
	fb.scopes[id] = inner
	for _, c := range tree.Children(id) {
		switch {
		case c == name:
		case tree.Kind(c) == ast.KindBlock:
			fb.scopes[c] = inner
			fb.bindChildren(c, inner, nil)
		case tree.Kind(c) == ast.KindParameter:
			fb.bindParameter(c, inner)
		case tree.Kind(c) == ast.KindSyntaxList && isListOf(tree, c, ast.KindParameter):
			for _, p := range tree.ChildrenOfKind(c, ast.KindParameter) {
				fb.bindParameter(p, inner)
			}
		case tree.Kind(c) == ast.KindSyntaxList && isListOf(tree, c, ast.KindTypeParameter):
			fb.bindTypeParameters(c, inner)
		default:
			fb.bind(c, inner, nil)
		}
	}
	return inner
}

func (fb *fileBinding) bindParameter(p ast.NodeID, sc *scope) *Symbol {
	tree := fb.tree()
	name := tree.FirstChildOfKind(p, ast.KindIdentifier)
	var sym *Symbol
	if name.IsValid() {
		sym = fb.declare(sc, nil, false, fb.newSymbol(name, KindParameter, tree.FirstChildOfKind(p, ast.KindEqualsToken).IsValid()))
	}
	fb.bindAllBut(p, sc, name)
	return sym
}

func (fb *fileBinding) bindTypeParameters(list ast.NodeID, sc *scope) {
	tree := fb.tree()
	for _, tp := range tree.ChildrenOfKind(list, ast.KindTypeParameter) {
		name := tree.FirstChildOfKind(tp, ast.KindIdentifier)
		if name.IsValid() {
			fb.declare(sc, nil, false, fb.newSymbol(name, KindTypeParameter, false))
		}
		fb.bindAllBut(tp, sc, name)
	}
}

func (fb *fileBinding) bindClass(id ast.NodeID, sc *scope, ns *Symbol) {
	tree := fb.tree()
	name := tree.FirstChildOfKind(id, ast.KindIdentifier)
	var sym *Symbol
	if name.IsValid() {
		sym = fb.declare(sc, ns, fb.isExported(id), fb.newSymbol(name, KindClass, true))
	} else {
		sym = &Symbol{Kind: KindClass}
	}
	inner := newScope(sc)
	inner.this = sym
	fb.scopes[id] = inner

	members := childAfter(tree, id, ast.KindOpenBraceToken)
	for _, c := range tree.Children(id) {
		switch {
		case c == name:
		case c == members:
		case tree.Kind(c) == ast.KindSyntaxList && isListOf(tree, c, ast.KindTypeParameter):
			fb.bindTypeParameters(c, inner)
		default:
			fb.bind(c, inner, nil)
		}
	}
	for _, m := range tree.Children(members) {
		mname := nameOf(tree, m)
		switch tree.Kind(m) {
		case ast.KindPropertyDeclaration:
			if mname.IsValid() {
				fb.declareMember(sym, fb.newSymbol(mname, KindProperty, tree.FirstChildOfKind(m, ast.KindEqualsToken).IsValid()))
			}
			fb.bindAllBut(m, inner, mname)
		case ast.KindMethodDeclaration:
			if mname.IsValid() {
				ms := fb.newSymbol(mname, KindMethod, tree.FirstChildOfKind(m, ast.KindBlock).IsValid())
				ms.Display = fb.signatureDisplay(KindMethod, mname, m)
				fb.declareMember(sym, ms)
			}
			fb.bindFunction(m, inner, mname)
		case ast.KindGetAccessor, ast.KindSetAccessor:
			if mname.IsValid() {
				fb.declareMember(sym, fb.newSymbol(mname, KindAccessor, true))
			}
			fb.bindFunction(m, inner, mname)
		case ast.KindConstructor:
			fn := fb.bindFunction(m, inner, ast.NoNodeID)
			fb.bindParameterProperties(m, sym, fn)
		default:
			fb.bind(m, inner, nil)
		}
	}
}

// bindParameterProperties makes constructor parameters with a scope or
// readonly keyword members of the class.
func (fb *fileBinding) bindParameterProperties(ctor ast.NodeID, class *Symbol, fn *scope) {
	tree := fb.tree()
	params := childAfter(tree, ctor, ast.KindOpenParenToken)
	for _, p := range tree.ChildrenOfKind(params, ast.KindParameter) {
		if listOfModifiers(tree, p) == ast.NoNodeID {
			continue
		}
		name := tree.FirstChildOfKind(p, ast.KindIdentifier)
		if param := fb.defs[name]; param != nil {
			class.addMember(param)
		}
	}
}

func (fb *fileBinding) bindInterface(id ast.NodeID, sc *scope, ns *Symbol) {
	tree := fb.tree()
	name := tree.FirstChildOfKind(id, ast.KindIdentifier)
	sym := fb.declare(sc, ns, fb.isExported(id), fb.newSymbol(name, KindInterface, false))
	inner := newScope(sc)
	fb.scopes[id] = inner
	members := childAfter(tree, id, ast.KindOpenBraceToken)
	for _, c := range tree.Children(id) {
		switch {
		case c == name || c == members:
		case tree.Kind(c) == ast.KindSyntaxList && isListOf(tree, c, ast.KindTypeParameter):
			fb.bindTypeParameters(c, inner)
		default:
			fb.bind(c, inner, nil)
		}
	}
	for _, m := range tree.Children(members) {
		mname := nameOf(tree, m)
		switch tree.Kind(m) {
		case ast.KindPropertySignature:
			if mname.IsValid() {
				fb.declareMember(sym, fb.newSymbol(mname, KindProperty, false))
			}
			fb.bindAllBut(m, inner, mname)
		case ast.KindMethodSignature:
			if mname.IsValid() {
				ms := fb.newSymbol(mname, KindMethod, false)
				ms.Display = fb.signatureDisplay(KindMethod, mname, m)
				fb.declareMember(sym, ms)
			}
			fb.bindFunction(m, inner, mname)
		default:
			fb.bind(m, inner, nil)
		}
	}
}

// signatureDisplay renders "kind name(params): type".
func (fb *fileBinding) signatureDisplay(kind SymbolKind, name, decl ast.NodeID) string {
	tree := fb.tree()
	var sb strings.Builder
	sb.WriteString(string(kind) + " " + tree.Text(name))
	open := tree.FirstChildOfKind(decl, ast.KindOpenParenToken)
	closeParen := tree.FirstChildOfKind(decl, ast.KindCloseParenToken)
	if !open.IsValid() || !closeParen.IsValid() {
		return sb.String()
	}
	end := tree.Span(closeParen).End
	if next := tree.NextSibling(closeParen); tree.Kind(next) == ast.KindColonToken {
		end = tree.Span(tree.NextSibling(next)).End
	}
	start := tree.Span(open).Start
	sb.WriteString(strings.Join(strings.Fields(string(tree.Src[start:end])), " "))
	return sb.String()
}

func childAfter(tree *ast.Tree, id ast.NodeID, after ast.Kind) ast.NodeID {
	kids := tree.Children(id)
	for i, c := range kids {
		if tree.Kind(c) == after && i+1 < len(kids) {
			return kids[i+1]
		}
	}
	return ast.NoNodeID
}

func isListOf(tree *ast.Tree, list ast.NodeID, k ast.Kind) bool {
	kids := tree.Children(list)
	return len(kids) > 0 && tree.Kind(kids[0]) == k
}

func listOfModifiers(tree *ast.Tree, id ast.NodeID) ast.NodeID {
	for _, c := range tree.ChildrenOfKind(id, ast.KindSyntaxList) {
		kids := tree.Children(c)
		if len(kids) > 0 && tree.Kind(kids[0]).IsModifier() {
			return c
		}
	}
	return ast.NoNodeID
}

// nameOf returns the name of a member or declaration.
func nameOf(tree *ast.Tree, id ast.NodeID) ast.NodeID {
	for _, c := range tree.Children(id) {
		switch tree.Kind(c) {
		case ast.KindIdentifier, ast.KindStringLiteral, ast.KindNumericLiteral:
			return c
		}
	}
	return ast.NoNodeID
}
