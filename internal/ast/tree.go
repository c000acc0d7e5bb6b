package ast

import (
	"slices"
	"strings"

	"morph/internal/source"
)

// Tree is one parse generation of a file. It is never mutated after the
// parser returns it.
type Tree struct {
	File  source.FileID
	Gen   Generation
	Root  NodeID
	Src   []byte
	nodes *Arena[NodeID, Node]
}

func (t *Tree) Node(id NodeID) *Node {
	if t == nil {
		return nil
	}
	return t.nodes.Get(id)
}

// Len is the number of nodes in the tree.
func (t *Tree) Len() int { return t.nodes.Len() }

func (t *Tree) Kind(id NodeID) Kind {
	if n := t.Node(id); n != nil {
		return n.Kind
	}
	return KindUnknown
}

func (t *Tree) Span(id NodeID) source.Span {
	if n := t.Node(id); n != nil {
		return n.Span
	}
	return source.Span{}
}

func (t *Tree) Parent(id NodeID) NodeID {
	if n := t.Node(id); n != nil {
		return n.Parent
	}
	return NoNodeID
}

func (t *Tree) Children(id NodeID) []NodeID {
	if n := t.Node(id); n != nil {
		return n.Children
	}
	return nil
}

// Text returns the source text under the node's span.
func (t *Tree) Text(id NodeID) string {
	sp := t.Span(id)
	return string(t.Src[sp.Start:sp.End])
}

// FullText includes leading trivia.
func (t *Tree) FullText(id NodeID) string {
	n := t.Node(id)
	if n == nil {
		return ""
	}
	return string(t.Src[n.Pos:n.Span.End])
}

// ChildIndex returns the position of id among its parent's children or -1.
func (t *Tree) ChildIndex(id NodeID) int {
	p := t.Node(t.Parent(id))
	if p == nil {
		return -1
	}
	return slices.Index(p.Children, id)
}

func (t *Tree) PrevSibling(id NodeID) NodeID {
	i := t.ChildIndex(id)
	if i <= 0 {
		return NoNodeID
	}
	return t.Children(t.Parent(id))[i-1]
}

func (t *Tree) NextSibling(id NodeID) NodeID {
	i := t.ChildIndex(id)
	if i < 0 {
		return NoNodeID
	}
	siblings := t.Children(t.Parent(id))
	if i+1 >= len(siblings) {
		return NoNodeID
	}
	return siblings[i+1]
}

// FirstChildOfKind returns the first direct child with kind k.
func (t *Tree) FirstChildOfKind(id NodeID, k Kind) NodeID {
	for _, c := range t.Children(id) {
		if t.Kind(c) == k {
			return c
		}
	}
	return NoNodeID
}

// ChildrenOfKind returns all direct children with kind k.
func (t *Tree) ChildrenOfKind(id NodeID, k Kind) []NodeID {
	var out []NodeID
	for _, c := range t.Children(id) {
		if t.Kind(c) == k {
			out = append(out, c)
		}
	}
	return out
}

// LastChild returns the last direct child.
func (t *Tree) LastChild(id NodeID) NodeID {
	ch := t.Children(id)
	if len(ch) == 0 {
		return NoNodeID
	}
	return ch[len(ch)-1]
}

// Ancestors returns the parent chain from the direct parent up to the root.
func (t *Tree) Ancestors(id NodeID) []NodeID {
	var out []NodeID
	for p := t.Parent(id); p.IsValid(); p = t.Parent(p) {
		out = append(out, p)
	}
	return out
}

// Walk visits id and its descendants in pre-order. Returning false from fn
// skips the node's children.
func (t *Tree) Walk(id NodeID, fn func(NodeID) bool) {
	if !fn(id) {
		return
	}
	for _, c := range t.Children(id) {
		t.Walk(c, fn)
	}
}

// Descendants returns every node below id with kind k, in source order.
func (t *Tree) Descendants(id NodeID, k Kind) []NodeID {
	var out []NodeID
	for _, c := range t.Children(id) {
		t.Walk(c, func(n NodeID) bool {
			if t.Kind(n) == k {
				out = append(out, n)
			}
			return true
		})
	}
	return out
}

// NodeAt returns the deepest node whose span equals sp exactly, preferring
// non-list nodes. It returns NoNodeID when nothing matches.
func (t *Tree) NodeAt(sp source.Span) NodeID {
	best := NoNodeID
	t.Walk(t.Root, func(id NodeID) bool {
		n := t.Node(id)
		if !n.Span.Encloses(sp) {
			return false
		}
		if n.Span.Start == sp.Start && n.Span.End == sp.End && n.Kind != KindSyntaxList {
			best = id
		}
		return true
	})
	return best
}

// TokenAt returns the token leaf containing off, or NoNodeID.
func (t *Tree) TokenAt(off uint32) NodeID {
	found := NoNodeID
	t.Walk(t.Root, func(id NodeID) bool {
		n := t.Node(id)
		if off < n.Span.Start || off > n.Span.End {
			return false
		}
		if n.Kind.IsToken() && n.Span.Contains(off) {
			found = id
		}
		return true
	})
	return found
}

// Dump renders the tree as indented "Kind [start,end)" lines; tokens also
// show their text. Used by tests and the CLI.
func (t *Tree) Dump(id NodeID) string {
	var sb strings.Builder
	var rec func(NodeID, int)
	rec = func(n NodeID, depth int) {
		node := t.Node(n)
		sb.WriteString(strings.Repeat("  ", depth))
		sb.WriteString(node.Kind.String())
		if node.Kind.IsToken() {
			sb.WriteString(" ")
			sb.WriteString(strings.ReplaceAll(t.Text(n), "\n", `\n`))
		}
		sb.WriteString("\n")
		for _, c := range node.Children {
			rec(c, depth+1)
		}
	}
	rec(id, 0)
	return sb.String()
}
