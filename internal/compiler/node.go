package compiler

import (
	"fmt"

	"morph/internal/ast"
	"morph/internal/errs"
	"morph/internal/manip"
	"morph/internal/registry"
	"morph/internal/source"
)

// Wrapper is implemented by every node wrapper. Base returns the shared
// navigation surface; Capabilities lists the traits the kind composes, in
// fill order.
type Wrapper interface {
	Base() *Node
	Capabilities() []Capability
}

// Node is the base wrapper of every syntax node. All methods fail with a
// StaleNodeError once the node has been removed or replaced by an edit.
type Node struct {
	sf    *SourceFile
	entry *registry.Entry
}

func (n *Node) Base() *Node { return n }

func (n *Node) Capabilities() []Capability { return nil }

func (n *Node) SourceFile() *SourceFile { return n.sf }

// Kind never changes over the life of a wrapper.
func (n *Node) Kind() ast.Kind { return n.entry.Kind() }

// IsForgotten reports whether an edit invalidated the node.
func (n *Node) IsForgotten() bool { return n.entry.Forgotten() }

func (n *Node) String() string {
	sp := n.entry.Span()
	state := ""
	if n.entry.Forgotten() {
		state = " (forgotten)"
	}
	return fmt.Sprintf("%s@%d-%d%s", n.entry.Kind(), sp.Start, sp.End, state)
}

// live returns the current tree and node id.
func (n *Node) live() (*ast.Tree, ast.NodeID, error) {
	id, err := n.entry.Node()
	if err != nil {
		return nil, ast.NoNodeID, err
	}
	return n.sf.doc.Tree(), id, nil
}

func (n *Node) id() (ast.NodeID, error) { return n.entry.Node() }

func (n *Node) doc() *manip.Document { return n.sf.doc }

func (n *Node) Span() (source.Span, error) {
	tree, id, err := n.live()
	if err != nil {
		return source.Span{}, err
	}
	return tree.Span(id), nil
}

func (n *Node) Start() (uint32, error) {
	sp, err := n.Span()
	return sp.Start, err
}

func (n *Node) End() (uint32, error) {
	sp, err := n.Span()
	return sp.End, err
}

// Pos is the start including leading trivia.
func (n *Node) Pos() (uint32, error) {
	tree, id, err := n.live()
	if err != nil {
		return 0, err
	}
	return tree.Node(id).Pos, nil
}

func (n *Node) Text() (string, error) {
	tree, id, err := n.live()
	if err != nil {
		return "", err
	}
	return tree.Text(id), nil
}

// FullText includes leading trivia.
func (n *Node) FullText() (string, error) {
	tree, id, err := n.live()
	if err != nil {
		return "", err
	}
	return tree.FullText(id), nil
}

// Parent returns nil for the source file.
func (n *Node) Parent() (Wrapper, error) {
	tree, id, err := n.live()
	if err != nil {
		return nil, err
	}
	p := tree.Parent(id)
	if !p.IsValid() {
		return nil, nil
	}
	return n.sf.wrap(p), nil
}

func (n *Node) ParentOrErr() (Wrapper, error) {
	p, err := n.Parent()
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errs.InvalidOperation("%s has no parent", n.Kind())
	}
	return p, nil
}

// ParentIfKind returns the parent when it has kind k, or nil.
func (n *Node) ParentIfKind(k ast.Kind) (Wrapper, error) {
	p, err := n.Parent()
	if err != nil || p == nil || p.Base().Kind() != k {
		return nil, err
	}
	return p, nil
}

func (n *Node) ParentIfKindOrErr(k ast.Kind) (Wrapper, error) {
	p, err := n.ParentIfKind(k)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errs.InvalidOperation("expected the parent of %s to be a %s", n.Kind(), k)
	}
	return p, nil
}

func (n *Node) Children() ([]Wrapper, error) {
	tree, id, err := n.live()
	if err != nil {
		return nil, err
	}
	return n.sf.wrapAll(tree.Children(id)), nil
}

func (n *Node) ChildCount() (int, error) {
	tree, id, err := n.live()
	if err != nil {
		return 0, err
	}
	return len(tree.Children(id)), nil
}

func (n *Node) ChildIndex() (int, error) {
	tree, id, err := n.live()
	if err != nil {
		return 0, err
	}
	return tree.ChildIndex(id), nil
}

func (n *Node) PreviousSibling() (Wrapper, error) {
	tree, id, err := n.live()
	if err != nil {
		return nil, err
	}
	return n.sf.wrapOrNil(tree.PrevSibling(id)), nil
}

func (n *Node) NextSibling() (Wrapper, error) {
	tree, id, err := n.live()
	if err != nil {
		return nil, err
	}
	return n.sf.wrapOrNil(tree.NextSibling(id)), nil
}

// FirstChildByKind returns nil when no child has kind k.
func (n *Node) FirstChildByKind(k ast.Kind) (Wrapper, error) {
	tree, id, err := n.live()
	if err != nil {
		return nil, err
	}
	return n.sf.wrapOrNil(tree.FirstChildOfKind(id, k)), nil
}

func (n *Node) FirstChildByKindOrErr(k ast.Kind) (Wrapper, error) {
	c, err := n.FirstChildByKind(k)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, errs.InvalidOperation("expected a child of kind %s in %s", k, n.Kind())
	}
	return c, nil
}

func (n *Node) ChildrenOfKind(k ast.Kind) ([]Wrapper, error) {
	tree, id, err := n.live()
	if err != nil {
		return nil, err
	}
	return n.sf.wrapAll(tree.ChildrenOfKind(id, k)), nil
}

// LastChildIfKind returns the last child when it has kind k, or nil.
func (n *Node) LastChildIfKind(k ast.Kind) (Wrapper, error) {
	tree, id, err := n.live()
	if err != nil {
		return nil, err
	}
	last := tree.LastChild(id)
	if !last.IsValid() || tree.Kind(last) != k {
		return nil, nil
	}
	return n.sf.wrap(last), nil
}

// DescendantsOfKind returns every node below n of kind k in source order.
func (n *Node) DescendantsOfKind(k ast.Kind) ([]Wrapper, error) {
	tree, id, err := n.live()
	if err != nil {
		return nil, err
	}
	return n.sf.wrapAll(tree.Descendants(id, k)), nil
}

// ParentSyntaxList returns the list n is an element of, or nil.
func (n *Node) ParentSyntaxList() (*Node, error) {
	p, err := n.ParentIfKind(ast.KindSyntaxList)
	if err != nil || p == nil {
		return nil, err
	}
	return p.Base(), nil
}

// childAfter returns the first child following a child of kind after, or
// NoNodeID.
func childAfter(tree *ast.Tree, id ast.NodeID, after ast.Kind) ast.NodeID {
	kids := tree.Children(id)
	for i, c := range kids {
		if tree.Kind(c) == after && i+1 < len(kids) {
			return kids[i+1]
		}
	}
	return ast.NoNodeID
}

// listOf returns the first list child whose elements all satisfy pred.
func listOf(tree *ast.Tree, id ast.NodeID, pred func(ast.Kind) bool) ast.NodeID {
	for _, c := range tree.Children(id) {
		if tree.Kind(c) != ast.KindSyntaxList {
			continue
		}
		kids := tree.Children(c)
		if len(kids) > 0 && pred(tree.Kind(kids[0])) {
			return c
		}
	}
	return ast.NoNodeID
}

// As converts a wrapper to a concrete kind.
func As[T Wrapper](w Wrapper) (T, bool) {
	t, ok := w.(T)
	return t, ok
}

// AsOrErr converts a wrapper or reports an ArgumentTypeError.
func AsOrErr[T Wrapper](w Wrapper) (T, error) {
	t, ok := w.(T)
	if !ok {
		var zero T
		actual := "nil"
		if w != nil {
			actual = w.Base().Kind().String()
		}
		return zero, &errs.ArgumentTypeError{Arg: "node", Expected: fmt.Sprintf("%T", zero), Actual: actual}
	}
	return t, nil
}

func wrapAs[T Wrapper](ws []Wrapper) []T {
	out := make([]T, 0, len(ws))
	for _, w := range ws {
		if t, ok := w.(T); ok {
			out = append(out, t)
		}
	}
	return out
}
