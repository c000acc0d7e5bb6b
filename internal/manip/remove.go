package manip

import (
	"fmt"
	"slices"

	"morph/internal/ast"
	"morph/internal/errs"
	"morph/internal/registry"
	"morph/internal/source"
)

type RemoveChildrenOptions struct {
	Children                []ast.NodeID
	RemovePrecedingSpaces   bool
	RemoveFollowingSpaces   bool
	RemovePrecedingNewLines bool
	RemoveFollowingNewLines bool
}

// RemoveChildren removes the range from the first to the last of the given
// siblings, optionally with the whitespace around it.
func RemoveChildren(doc *Document, opts RemoveChildrenOptions) (Result, error) {
	parent, idx, err := siblings(doc, opts.Children)
	if err != nil {
		return Result{}, err
	}
	tree := doc.tree
	kids := tree.Children(parent)
	first := tree.Span(kids[idx[0]])
	last := tree.Span(kids[idx[len(idx)-1]])

	src := doc.Bytes()
	start, end := first.Start, last.End
	if opts.RemovePrecedingSpaces || opts.RemovePrecedingNewLines {
		start = skipBack(src, start, 0, opts.RemovePrecedingNewLines)
	}
	if opts.RemoveFollowingSpaces || opts.RemoveFollowingNewLines {
		end = skipForward(src, end, doc.buf.Len(), opts.RemoveFollowingNewLines)
	}
	edit := source.Edit{Start: start, End: end}
	return doc.apply("remove-children", []source.Edit{edit}, registry.Splice(start, end, 0, parent), nil)
}

type RemoveCommaSeparatedOptions struct {
	// RemovePrecedingSpaces also removes the whitespace before the range when
	// the child is the last element of the list.
	RemovePrecedingSpaces bool
}

// RemoveCommaSeparatedChild removes one element of a comma-separated list
// together with the comma that belongs to it. A first or interior element
// takes its following comma and the whitespace up to the next element; the
// last element takes the comma before it.
func RemoveCommaSeparatedChild(doc *Document, child ast.NodeID, opts RemoveCommaSeparatedOptions) (Result, error) {
	n, err := doc.node(child, "child")
	if err != nil {
		return Result{}, err
	}
	tree := doc.tree
	list := n.Parent
	if tree.Kind(list) != ast.KindSyntaxList {
		return Result{}, &errs.ArgumentError{Arg: "child", Message: fmt.Sprintf("%s is not an element of a list", n.Kind)}
	}
	elems := elements(tree, list)
	i := slices.Index(elems, child)
	if i < 0 {
		return Result{}, &errs.ArgumentError{Arg: "child", Message: "a separator cannot be removed on its own"}
	}

	src := doc.Bytes()
	start, end := n.Span.Start, n.Span.End
	switch {
	case i < len(elems)-1:
		end = tree.Span(elems[i+1]).Start
	case i > 0:
		start = tree.Span(elems[i-1]).End
		if comma := tree.PrevSibling(child); tree.Kind(comma) == ast.KindCommaToken {
			start = tree.Span(comma).Start
		}
		if opts.RemovePrecedingSpaces {
			start = skipBack(src, start, 0, false)
		}
	default:
		if opts.RemovePrecedingSpaces {
			start = skipBack(src, start, 0, false)
		}
	}
	edit := source.Edit{Start: start, End: end}
	return doc.apply("remove-comma-separated", []source.Edit{edit}, registry.Splice(start, end, 0, list), nil)
}

type CollapsibleRemoveOptions struct {
	Children []ast.NodeID
	// SiblingFormatting defaults to SpaceFormatting.
	SiblingFormatting SiblingFormatting
}

// RemoveChildrenWithFormattingFromCollapsibleSyntaxList removes contiguous
// children of a list that may become empty. The gap left between the
// remaining neighbours is replaced with the separator the formatting policy
// asks for. When every child goes, the list goes too: with space formatting
// the whitespace after it is consumed, otherwise the whitespace back to the
// previous token.
func RemoveChildrenWithFormattingFromCollapsibleSyntaxList(doc *Document, opts CollapsibleRemoveOptions) (Result, error) {
	list, idx, err := siblings(doc, opts.Children)
	if err != nil {
		return Result{}, err
	}
	tree := doc.tree
	if tree.Kind(list) != ast.KindSyntaxList {
		return Result{}, &errs.ArgumentError{Arg: "children", Message: fmt.Sprintf("parent %s is not a list", tree.Kind(list))}
	}
	for k := 1; k < len(idx); k++ {
		if idx[k] != idx[k-1]+1 {
			return Result{}, &errs.ArgumentError{Arg: "children", Message: "children must be contiguous"}
		}
	}
	format := opts.SiblingFormatting
	if format == nil {
		format = SpaceFormatting
	}

	kids := tree.Children(list)
	first := tree.Span(kids[idx[0]])
	last := tree.Span(kids[idx[len(idx)-1]])
	var edit source.Edit
	changeParent := list

	if len(idx) == len(kids) {
		owner := tree.Parent(list)
		changeParent = owner
		lsp := tree.Span(list)
		switch format(tree, owner, list) {
		case FormattingNewline, FormattingBlankline:
			start := lsp.Start
			if prev := tree.PrevSibling(list); prev.IsValid() {
				start = tree.Span(prev).End
			}
			edit = source.Edit{Start: start, End: lsp.End}
		default:
			end := skipForward(doc.Bytes(), lsp.End, doc.buf.Len(), false)
			if next := tree.NextSibling(list); next.IsValid() {
				end = tree.Span(next).Start
			}
			edit = source.Edit{Start: lsp.Start, End: end}
		}
	} else {
		prev, next := ast.NoNodeID, ast.NoNodeID
		if idx[0] > 0 {
			prev = kids[idx[0]-1]
		}
		if l := idx[len(idx)-1]; l < len(kids)-1 {
			next = kids[l+1]
		}
		switch {
		case prev.IsValid() && next.IsValid():
			nsp := tree.Span(next)
			edit = source.Edit{
				Start: tree.Span(prev).End,
				End:   nsp.Start,
				Text:  doc.separator(format(tree, list, next), nsp.Start),
			}
		case next.IsValid():
			edit = source.Edit{Start: first.Start, End: tree.Span(next).Start}
		default:
			edit = source.Edit{Start: tree.Span(prev).End, End: last.End}
		}
	}
	ch := registry.Splice(edit.Start, edit.End, len(edit.Text), changeParent)
	return doc.apply("remove-collapsible", []source.Edit{edit}, ch, nil)
}

// RemoveStatementedNodeChild removes a statement from a statement list.
func RemoveStatementedNodeChild(doc *Document, stmt ast.NodeID) (Result, error) {
	return RemoveChildrenWithFormattingFromCollapsibleSyntaxList(doc, CollapsibleRemoveOptions{
		Children:          []ast.NodeID{stmt},
		SiblingFormatting: StatementFormatting,
	})
}

// RemoveClassMember removes a member of a class or interface body.
func RemoveClassMember(doc *Document, member ast.NodeID) (Result, error) {
	return RemoveChildrenWithFormattingFromCollapsibleSyntaxList(doc, CollapsibleRemoveOptions{
		Children:          []ast.NodeID{member},
		SiblingFormatting: ClassMemberFormatting,
	})
}

// siblings resolves ids, checks that they share one parent and returns their
// sorted child indexes.
func siblings(doc *Document, ids []ast.NodeID) (ast.NodeID, []int, error) {
	if len(ids) == 0 {
		return ast.NoNodeID, nil, &errs.ArgumentError{Arg: "children", Message: "no children given"}
	}
	tree := doc.tree
	parent := ast.NoNodeID
	idx := make([]int, 0, len(ids))
	for i, id := range ids {
		n, err := doc.node(id, fmt.Sprintf("children[%d]", i))
		if err != nil {
			return ast.NoNodeID, nil, err
		}
		if i == 0 {
			parent = n.Parent
		} else if n.Parent != parent {
			return ast.NoNodeID, nil, &errs.ArgumentError{Arg: "children", Message: "children must share a parent"}
		}
		if !parent.IsValid() {
			return ast.NoNodeID, nil, &errs.ArgumentError{Arg: "children", Message: "the root cannot be removed"}
		}
		idx = append(idx, tree.ChildIndex(id))
	}
	slices.Sort(idx)
	idx = slices.Compact(idx)
	return parent, idx, nil
}

// elements returns the children of a list that are not separators.
func elements(tree *ast.Tree, list ast.NodeID) []ast.NodeID {
	var out []ast.NodeID
	for _, c := range tree.Children(list) {
		if tree.Kind(c) != ast.KindCommaToken {
			out = append(out, c)
		}
	}
	return out
}
