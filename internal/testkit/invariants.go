// Package testkit holds structural checks that tests run after parsing and
// after every manipulation.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"morph/internal/ast"
	"morph/internal/registry"
)

// CheckTree verifies the span invariants of a tree:
// 1) the root spans the whole text of the file
// 2) every child points back at its parent and lies inside the parent span
// 3) siblings are ordered and do not overlap
// 4) every span belongs to the tree's file
func CheckTree(tree *ast.Tree) error {
	if tree == nil {
		return fmt.Errorf("nil tree")
	}
	root := tree.Node(tree.Root)
	if root == nil {
		return fmt.Errorf("tree has no root")
	}
	lenSrc, err := safecast.Conv[uint32](len(tree.Src))
	if err != nil {
		return fmt.Errorf("len source overflow: %w", err)
	}
	if root.Span.Start != 0 || root.Span.End != lenSrc {
		return fmt.Errorf("root span %d-%d does not cover the text (0-%d)", root.Span.Start, root.Span.End, lenSrc)
	}

	var walkErr error
	tree.Walk(tree.Root, func(id ast.NodeID) bool {
		if walkErr != nil {
			return false
		}
		n := tree.Node(id)
		if n.Span.File != tree.File {
			walkErr = fmt.Errorf("%s at %v belongs to file %d, want %d", n.Kind, n.Span, n.Span.File, tree.File)
			return false
		}
		if n.Span.Start > n.Span.End || n.Pos > n.Span.Start {
			walkErr = fmt.Errorf("%s has a malformed span %d-%d (pos %d)", n.Kind, n.Span.Start, n.Span.End, n.Pos)
			return false
		}
		prevEnd := n.Span.Start
		for i, c := range n.Children {
			child := tree.Node(c)
			if child == nil {
				walkErr = fmt.Errorf("%s child %d is missing", n.Kind, i)
				return false
			}
			if child.Parent != id {
				walkErr = fmt.Errorf("%s at %v does not point back at its parent %s", child.Kind, child.Span, n.Kind)
				return false
			}
			if child.Span.Start < n.Span.Start || child.Span.End > n.Span.End {
				walkErr = fmt.Errorf("%s at %v lies outside its parent %s at %v", child.Kind, child.Span, n.Kind, n.Span)
				return false
			}
			if child.Span.Start < prevEnd {
				walkErr = fmt.Errorf("%s at %v overlaps its previous sibling in %s", child.Kind, child.Span, n.Kind)
				return false
			}
			prevEnd = child.Span.End
		}
		return true
	})
	return walkErr
}

// CheckRegistry verifies that every live entry of reg addresses a node of
// the registry's current tree with the entry's kind and span.
func CheckRegistry[W any](reg *registry.Registry[W]) error {
	tree := reg.Tree()
	for _, e := range reg.Entries() {
		id, err := e.Node()
		if err != nil {
			return fmt.Errorf("live entry reports %w", err)
		}
		n := tree.Node(id)
		if n == nil {
			return fmt.Errorf("entry for %s points at missing node %d", e.Kind(), id)
		}
		if e.Generation() != tree.Gen {
			return fmt.Errorf("entry for %s is at generation %d, tree at %d", e.Kind(), e.Generation(), tree.Gen)
		}
		if n.Kind != e.Kind() {
			return fmt.Errorf("entry kind %s points at %s", e.Kind(), n.Kind)
		}
		if n.Span != e.Span() {
			return fmt.Errorf("entry for %s has span %v, node has %v", e.Kind(), e.Span(), n.Span)
		}
		if _, ok := reg.Lookup(id); !ok {
			return fmt.Errorf("entry for %s at node %d has no wrapper", e.Kind(), id)
		}
	}
	return nil
}
