package manip

import (
	"slices"
	"strings"

	"fortio.org/safecast"

	"morph/internal/ast"
	"morph/internal/errs"
	"morph/internal/registry"
	"morph/internal/source"
)

// MoveChild moves child to position index among the elements of its list.
// Separators and the whitespace between elements stay where they are, so
// only the elements change places. Every element keeps its identity.
func MoveChild(doc *Document, child ast.NodeID, index int) (Result, error) {
	n, err := doc.node(child, "child")
	if err != nil {
		return Result{}, err
	}
	tree := doc.tree
	list := n.Parent
	if tree.Kind(list) != ast.KindSyntaxList {
		return Result{}, &errs.ArgumentError{Arg: "child", Message: n.Kind.String() + " is not an element of a list"}
	}
	elems := elements(tree, list)
	from := slices.Index(elems, child)
	if from < 0 {
		return Result{}, &errs.ArgumentError{Arg: "child", Message: "a separator cannot be moved"}
	}
	if err := errs.CheckInRange(index, 0, len(elems)-1, "index"); err != nil {
		return Result{}, err
	}
	if from == index {
		return doc.apply("move-child", nil, registry.Identity(), nil)
	}

	order := slices.Clone(elems)
	order = slices.Delete(order, from, from+1)
	order = slices.Insert(order, index, child)

	src := doc.Bytes()
	lo := tree.Span(elems[0]).Start
	hi := tree.Span(elems[len(elems)-1]).End
	var sb strings.Builder
	moves := make([]registry.Segment, 0, len(order))
	for k, e := range order {
		sp := tree.Span(e)
		off, err := safecast.Conv[uint32](sb.Len())
		if err != nil {
			return Result{}, err
		}
		moves = append(moves, registry.Segment{
			OldStart: sp.Start,
			OldEnd:   sp.End,
			Shift:    int64(lo+off) - int64(sp.Start),
		})
		sb.Write(src[sp.Start:sp.End])
		if k < len(elems)-1 {
			gap := source.Span{Start: tree.Span(elems[k]).End, End: tree.Span(elems[k+1]).Start}
			sb.Write(src[gap.Start:gap.End])
		}
	}
	edit := source.Edit{Start: lo, End: hi, Text: sb.String()}
	return doc.apply("move-child", []source.Edit{edit}, registry.Moved(lo, hi, moves, list), nil)
}
