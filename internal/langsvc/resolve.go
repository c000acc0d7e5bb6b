package langsvc

import (
	"morph/internal/ast"
)

// Reference is one non-declaring occurrence of a symbol.
type Reference struct {
	Location
	Node  ast.NodeID
	Write bool
}

// heritageEdge records that derived names base in an extends or implements
// clause.
type heritageEdge struct {
	derived *Symbol
	base    *Symbol
	node    ast.NodeID
}

// fileRefs is what resolution found in one file. Files resolve
// independently, so each result is owned by a single goroutine.
type fileRefs struct {
	at       map[ast.NodeID]*Symbol
	refs     map[*Symbol][]Reference
	heritage []heritageEdge
}

var assignmentOps = map[string]bool{
	"=": true, "+=": true, "-=": true, "*=": true, "/=": true, "%=": true,
	"**=": true, "&=": true, "|=": true, "^=": true, "<<=": true, ">>=": true,
	">>>=": true, "&&=": true, "||=": true, "??=": true,
}

type resolver struct {
	fb  *fileBinding
	out *fileRefs
}

func resolveFile(fb *fileBinding) *fileRefs {
	r := &resolver{fb: fb, out: &fileRefs{
		at:   make(map[ast.NodeID]*Symbol),
		refs: make(map[*Symbol][]Reference),
	}}
	tree := fb.tree()
	r.walk(tree.Root, fb.scopes[tree.Root])
	return r.out
}

func (r *resolver) tree() *ast.Tree { return r.fb.tree() }

func (r *resolver) walk(id ast.NodeID, sc *scope) {
	if s, ok := r.fb.scopes[id]; ok {
		sc = s
	}
	tree := r.tree()
	switch tree.Kind(id) {
	case ast.KindIdentifier:
		r.identifier(id, sc)
		return
	case ast.KindExpressionWithTypeArguments:
		r.heritage(id, sc)
	}
	for _, c := range tree.Children(id) {
		r.walk(c, sc)
	}
}

func (r *resolver) identifier(id ast.NodeID, sc *scope) {
	if sym := r.fb.defs[id]; sym != nil {
		r.out.at[id] = sym
		return
	}
	tree := r.tree()
	parent := tree.Parent(id)
	var sym *Symbol
	switch tree.Kind(parent) {
	case ast.KindPropertyAccessExpression, ast.KindQualifiedName:
		if tree.ChildIndex(id) == 2 {
			sym = r.expression(tree.Children(parent)[0], sc).member(tree.Text(id))
		} else {
			sym = sc.lookup(tree.Text(id))
		}
	case ast.KindPropertyAssignment, ast.KindPropertyDeclaration, ast.KindPropertySignature,
		ast.KindMethodDeclaration, ast.KindMethodSignature, ast.KindGetAccessor,
		ast.KindSetAccessor, ast.KindEnumMember:
		if nameOf(tree, parent) == id {
			return
		}
		sym = sc.lookup(tree.Text(id))
	default:
		sym = sc.lookup(tree.Text(id))
	}
	if sym == nil {
		return
	}
	r.out.at[id] = sym
	r.out.refs[sym] = append(r.out.refs[sym], Reference{
		Location: Location{File: r.fb.file.ID, Span: tree.Span(id)},
		Node:     id,
		Write:    r.isWrite(id),
	})
}

// expression resolves the entity an expression names, if any.
func (r *resolver) expression(id ast.NodeID, sc *scope) *Symbol {
	tree := r.tree()
	switch tree.Kind(id) {
	case ast.KindIdentifier:
		if sym := r.fb.defs[id]; sym != nil {
			return sym
		}
		return sc.lookup(tree.Text(id))
	case ast.KindKeyword:
		if tree.Text(id) == "this" {
			return sc.this
		}
	case ast.KindPropertyAccessExpression, ast.KindQualifiedName:
		kids := tree.Children(id)
		if len(kids) == 3 {
			return r.expression(kids[0], sc).member(tree.Text(kids[2]))
		}
	case ast.KindParenthesizedExpression:
		kids := tree.Children(id)
		if len(kids) >= 2 {
			return r.expression(kids[1], sc)
		}
	}
	return nil
}

// isWrite reports whether the identifier, or the access chain it ends,
// is assigned to or incremented.
func (r *resolver) isWrite(id ast.NodeID) bool {
	tree := r.tree()
	target := id
	for {
		parent := tree.Parent(target)
		switch tree.Kind(parent) {
		case ast.KindPropertyAccessExpression:
			if tree.ChildIndex(target) != 2 {
				return false
			}
			target = parent
			continue
		case ast.KindParenthesizedExpression:
			target = parent
			continue
		case ast.KindBinaryExpression:
			kids := tree.Children(parent)
			return len(kids) == 3 && kids[0] == target && assignmentOps[tree.Text(kids[1])]
		case ast.KindPrefixUnaryExpression, ast.KindPostfixUnaryExpression:
			for _, k := range tree.Children(parent) {
				if k != target {
					op := tree.Text(k)
					return op == "++" || op == "--"
				}
			}
		}
		return false
	}
}

func (r *resolver) heritage(id ast.NodeID, sc *scope) {
	tree := r.tree()
	kids := tree.Children(id)
	if len(kids) == 0 {
		return
	}
	base := r.expression(kids[0], sc)
	if base == nil {
		return
	}
	for _, a := range tree.Ancestors(id) {
		switch tree.Kind(a) {
		case ast.KindClassDeclaration, ast.KindInterfaceDeclaration:
			name := tree.FirstChildOfKind(a, ast.KindIdentifier)
			if derived := r.fb.defs[name]; derived != nil {
				r.out.heritage = append(r.out.heritage, heritageEdge{derived: derived, base: base, node: id})
			}
			return
		}
	}
}
