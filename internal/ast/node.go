package ast

import (
	"morph/internal/source"
	"morph/internal/token"
)

// Node is one element of an immutable syntax tree. Tokens are leaves; every
// other node covers its children. JSDoc blocks are children of the node they
// document, so Span includes them.
type Node struct {
	Kind     Kind
	Span     source.Span // [Start, End) excluding leading trivia
	Pos      uint32      // start including leading trivia
	Parent   NodeID
	Children []NodeID
	Token    token.Kind // lexical kind for token leaves
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }
