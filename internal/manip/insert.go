package manip

import (
	"fmt"

	"morph/internal/ast"
	"morph/internal/errs"
	"morph/internal/registry"
	"morph/internal/source"
)

// InsertIntoParentOptions describes an insertion of new children into an
// existing node.
type InsertIntoParentOptions struct {
	Parent           ast.NodeID
	InsertPos        uint32
	Text             string
	ChildIndex       int
	InsertItemsCount int
}

// InsertIntoParent inserts Text at InsertPos inside Parent. When
// InsertItemsCount is positive the parent must gain exactly that many
// children; otherwise the edit is rejected.
func InsertIntoParent(doc *Document, opts InsertIntoParentOptions) (Result, error) {
	if err := errs.CheckNotWhitespace(opts.Text, "text"); err != nil {
		return Result{}, err
	}
	parent, err := doc.node(opts.Parent, "parent")
	if err != nil {
		return Result{}, err
	}
	if err := checkPos(opts.InsertPos, parent); err != nil {
		return Result{}, err
	}
	if err := errs.CheckInRange(opts.ChildIndex, 0, len(parent.Children), "childIndex"); err != nil {
		return Result{}, err
	}
	if err := errs.CheckNonNegative(opts.InsertItemsCount, "insertItemsCount"); err != nil {
		return Result{}, err
	}

	edit := source.Edit{Start: opts.InsertPos, End: opts.InsertPos, Text: opts.Text}
	ch := registry.Splice(opts.InsertPos, opts.InsertPos, len(opts.Text), opts.Parent)
	before := len(parent.Children)
	check := func(next *ast.Tree, pairs registry.Mapping) error {
		if opts.InsertItemsCount == 0 {
			return nil
		}
		np, ok := pairs[opts.Parent]
		if !ok {
			return errs.InvalidOperation("inserting %q replaced the %s it was inserted into", opts.Text, parent.Kind)
		}
		if got := len(next.Children(np)); got != before+opts.InsertItemsCount {
			return errs.InvalidOperation("inserting %q into %s produced %d new children, expected %d",
				opts.Text, parent.Kind, got-before, opts.InsertItemsCount)
		}
		return nil
	}
	return doc.apply("insert-into-parent", []source.Edit{edit}, ch, check)
}

// InsertIntoCreatableSyntaxListOptions describes an insertion into a list
// that may not exist yet. List is NoNodeID when the parent has no such list.
type InsertIntoCreatableSyntaxListOptions struct {
	Parent           ast.NodeID
	List             ast.NodeID
	InsertPos        uint32
	Text             string
	ChildIndex       int
	InsertItemsCount int
}

// InsertIntoCreatableSyntaxList inserts Text into List, or creates the list
// inside Parent when there is none.
func InsertIntoCreatableSyntaxList(doc *Document, opts InsertIntoCreatableSyntaxListOptions) (Result, error) {
	if err := errs.CheckNotWhitespace(opts.Text, "text"); err != nil {
		return Result{}, err
	}
	parent, err := doc.node(opts.Parent, "parent")
	if err != nil {
		return Result{}, err
	}
	container := opts.Parent
	if opts.List.IsValid() {
		list, err := doc.node(opts.List, "list")
		if err != nil {
			return Result{}, err
		}
		if list.Kind != ast.KindSyntaxList || list.Parent != opts.Parent {
			return Result{}, &errs.ArgumentError{Arg: "list", Message: fmt.Sprintf("%s is not a list of the %s", list.Kind, parent.Kind)}
		}
		if err := errs.CheckInRange(opts.ChildIndex, 0, len(list.Children), "childIndex"); err != nil {
			return Result{}, err
		}
		container = opts.List
	}
	if err := checkPos(opts.InsertPos, parent); err != nil {
		return Result{}, err
	}

	edit := source.Edit{Start: opts.InsertPos, End: opts.InsertPos, Text: opts.Text}
	return doc.apply("insert-into-list", []source.Edit{edit}, registry.Splice(opts.InsertPos, opts.InsertPos, len(opts.Text), container), nil)
}

// ReplaceText applies several non-overlapping operations as one generation.
func ReplaceText(doc *Document, ops []EditOperation) (Result, error) {
	p, err := PrepareReplaceText(doc, ops)
	if err != nil {
		return Result{}, err
	}
	return p.Commit()
}

// PrepareReplaceText checks ops like ReplaceText and parses the result
// without committing it.
func PrepareReplaceText(doc *Document, ops []EditOperation) (*Pending, error) {
	if len(ops) == 0 {
		return nil, &errs.ArgumentError{Arg: "ops", Message: "no operations"}
	}
	edits := make([]source.Edit, 0, len(ops))
	parents := make([]ast.NodeID, 0, len(ops))
	for i, op := range ops {
		arg := fmt.Sprintf("ops[%d]", i)
		n, err := doc.node(op.Parent, arg)
		if err != nil {
			return nil, err
		}
		e := op.edit()
		if !op.Removed.Empty() && op.InsertPos != op.Removed.Start {
			return nil, &errs.ArgumentError{Arg: arg, Message: "insert position must equal the start of the removed range"}
		}
		if err := errs.CheckRangeInRange(int(e.Start), int(e.End), int(n.Pos), int(n.Span.End), arg); err != nil {
			return nil, err
		}
		edits = append(edits, e)
		parents = append(parents, op.Parent)
	}
	return doc.prepare("replace-text", edits, registry.Splices(edits, parents), nil)
}

func checkPos(pos uint32, parent *ast.Node) error {
	if pos < parent.Pos || pos > parent.Span.End {
		return &errs.ArgumentOutOfRangeError{Arg: "insertPos", Value: int(pos), Min: int(parent.Pos), Max: int(parent.Span.End)}
	}
	return nil
}
