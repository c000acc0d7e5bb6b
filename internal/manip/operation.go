package manip

import (
	"morph/internal/ast"
	"morph/internal/source"
)

// EditOperation is one splice computed by a caller. When Removed is empty
// the operation is a pure insertion at InsertPos; otherwise Removed is
// replaced and InsertPos must equal Removed.Start.
type EditOperation struct {
	InsertPos uint32
	Removed   source.Span
	Text      string
	// Parent is the node that contains the edited range.
	Parent ast.NodeID
	// ChildIndex and InsertItemsCount describe where in Parent the new
	// children appear and how many there are.
	ChildIndex       int
	InsertItemsCount int
}

func (op EditOperation) edit() source.Edit {
	if op.Removed.Empty() {
		return source.Edit{Start: op.InsertPos, End: op.InsertPos, Text: op.Text}
	}
	return source.Edit{Start: op.Removed.Start, End: op.Removed.End, Text: op.Text}
}

// FormattingKind selects the separator placed between list siblings.
type FormattingKind uint8

const (
	FormattingNone FormattingKind = iota
	FormattingSpace
	FormattingNewline
	FormattingBlankline
)

func (k FormattingKind) String() string {
	switch k {
	case FormattingSpace:
		return "space"
	case FormattingNewline:
		return "newline"
	case FormattingBlankline:
		return "blankline"
	default:
		return "none"
	}
}

// SiblingFormatting decides the separator that must precede sibling inside
// parent.
type SiblingFormatting func(tree *ast.Tree, parent, sibling ast.NodeID) FormattingKind

// SpaceFormatting separates siblings by a single space, as modifiers are.
func SpaceFormatting(*ast.Tree, ast.NodeID, ast.NodeID) FormattingKind { return FormattingSpace }

// StatementFormatting puts a blank line around declarations with a body and
// a newline between other statements.
func StatementFormatting(tree *ast.Tree, _ ast.NodeID, sibling ast.NodeID) FormattingKind {
	switch tree.Kind(sibling) {
	case ast.KindClassDeclaration, ast.KindInterfaceDeclaration, ast.KindEnumDeclaration,
		ast.KindNamespaceDeclaration:
		return FormattingBlankline
	case ast.KindFunctionDeclaration:
		if tree.FirstChildOfKind(sibling, ast.KindBlock).IsValid() {
			return FormattingBlankline
		}
	}
	return FormattingNewline
}

// ClassMemberFormatting puts a blank line around members with a body.
func ClassMemberFormatting(tree *ast.Tree, _ ast.NodeID, sibling ast.NodeID) FormattingKind {
	switch tree.Kind(sibling) {
	case ast.KindMethodDeclaration, ast.KindConstructor, ast.KindGetAccessor, ast.KindSetAccessor:
		if tree.FirstChildOfKind(sibling, ast.KindBlock).IsValid() {
			return FormattingBlankline
		}
	}
	return FormattingNewline
}

// separator renders k for a sibling starting at off.
func (d *Document) separator(k FormattingKind, off uint32) string {
	nl := d.Newline()
	switch k {
	case FormattingSpace:
		return " "
	case FormattingNewline:
		return nl + d.IndentationOf(off)
	case FormattingBlankline:
		return nl + nl + d.IndentationOf(off)
	default:
		return ""
	}
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' }

func isNewline(c byte) bool { return c == '\n' || c == '\r' }

// skipBack moves off left over spaces and tabs, and over line breaks too when
// newlines is set, never past floor.
func skipBack(src []byte, off, floor uint32, newlines bool) uint32 {
	for off > floor {
		c := src[off-1]
		if isSpace(c) || (newlines && isNewline(c)) {
			off--
			continue
		}
		break
	}
	return off
}

// skipForward moves off right over spaces and tabs, and over line breaks
// too when newlines is set, never past limit.
func skipForward(src []byte, off, limit uint32, newlines bool) uint32 {
	for off < limit && (isSpace(src[off]) || (newlines && isNewline(src[off]))) {
		off++
	}
	return off
}
