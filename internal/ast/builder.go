package ast

import (
	"fmt"

	"fortio.org/safecast"

	"morph/internal/source"
	"morph/internal/token"
)

// Builder assembles a Tree bottom-up: children are created before their
// parent and adopted by it.
type Builder struct {
	tree *Tree
}

func NewBuilder(file source.FileID, src []byte, gen Generation) *Builder {
	return &Builder{tree: &Tree{
		File:  file,
		Gen:   gen,
		Src:   src,
		nodes: NewArena[NodeID, Node](len(src)/3 + 8),
	}}
}

// Token creates a leaf for tok. Pos is the start of the token's leading
// trivia unless a doc block in that trivia has been turned into a node; pos
// overrides it when non-negative.
func (b *Builder) Token(kind Kind, tok token.Token, pos int64) NodeID {
	p := tok.FullStart()
	if pos >= 0 {
		p = uint32(pos)
	}
	return b.tree.nodes.Allocate(Node{
		Kind:  kind,
		Span:  tok.Span,
		Pos:   p,
		Token: tok.Kind,
	})
}

// Leaf creates a childless node with an explicit span (JSDoc tags, blocks).
func (b *Builder) Leaf(kind Kind, sp source.Span, pos uint32) NodeID {
	return b.tree.nodes.Allocate(Node{Kind: kind, Span: sp, Pos: pos})
}

// Node creates a node covering children. Invalid ids are skipped so callers
// can pass optional parts directly. At least one child must be valid.
func (b *Builder) Node(kind Kind, children ...NodeID) NodeID {
	kids := compact(children)
	if len(kids) == 0 {
		panic(fmt.Errorf("ast: %s node without children", kind))
	}
	first := b.tree.Node(kids[0])
	last := b.tree.Node(kids[len(kids)-1])
	span := source.Span{File: b.tree.File, Start: first.Span.Start, End: last.Span.End}
	return b.adopt(Node{Kind: kind, Span: span, Pos: first.Pos}, kids)
}

// List creates a SyntaxList. An empty list sits at the offset at.
func (b *Builder) List(at uint32, children ...NodeID) NodeID {
	kids := compact(children)
	if len(kids) == 0 {
		sp := source.Span{File: b.tree.File, Start: at, End: at}
		return b.tree.nodes.Allocate(Node{Kind: KindSyntaxList, Span: sp, Pos: at})
	}
	return b.Node(KindSyntaxList, kids...)
}

// Root finishes the tree with a SourceFile node spanning the whole text.
func (b *Builder) Root(children ...NodeID) *Tree {
	end, err := safecast.Conv[uint32](len(b.tree.Src))
	if err != nil {
		panic(fmt.Errorf("source too large: %w", err))
	}
	span := source.Span{File: b.tree.File, Start: 0, End: end}
	b.tree.Root = b.adopt(Node{Kind: KindSourceFile, Span: span, Pos: 0}, compact(children))
	return b.tree
}

// Span reports the span of an already built node.
func (b *Builder) Span(id NodeID) source.Span {
	return b.tree.Span(id)
}

// Kind reports the kind of an already built node.
func (b *Builder) Kind(id NodeID) Kind {
	return b.tree.Kind(id)
}

// Children reports the children of an already built node.
func (b *Builder) Children(id NodeID) []NodeID {
	return b.tree.Children(id)
}

func (b *Builder) adopt(n Node, kids []NodeID) NodeID {
	n.Children = kids
	id := b.tree.nodes.Allocate(n)
	for _, c := range kids {
		b.tree.nodes.Get(c).Parent = id
	}
	return id
}

func compact(ids []NodeID) []NodeID {
	out := make([]NodeID, 0, len(ids))
	for _, id := range ids {
		if id.IsValid() {
			out = append(out, id)
		}
	}
	return out
}

// Spanned creates a node with an explicit span, for nodes whose extent is
// not the cover of their children (JSDoc blocks and their tags).
func (b *Builder) Spanned(kind Kind, sp source.Span, pos uint32, children ...NodeID) NodeID {
	return b.adopt(Node{Kind: kind, Span: sp, Pos: pos}, compact(children))
}
