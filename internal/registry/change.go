package registry

import (
	"math"
	"slices"

	"morph/internal/ast"
	"morph/internal/source"
)

// Open marks a segment that extends to the end of the old text.
const Open = math.MaxUint32

// Segment maps the old byte range [OldStart, OldEnd] to the same text at
// OldStart+Shift in the new generation. Both bounds are inclusive so that
// nodes ending exactly at an edit stay inside the segment before it.
type Segment struct {
	OldStart uint32
	OldEnd   uint32
	Shift    int64
}

func (s Segment) holds(sp source.Span) bool {
	return sp.Start >= s.OldStart && sp.End <= s.OldEnd
}

func (s Segment) holdsOffset(off uint32) bool {
	return off >= s.OldStart && off <= s.OldEnd
}

// Change describes how one edit moved unchanged text. Parents are the
// old-tree nodes that contain the edited ranges; they and their ancestors
// keep their identity while their extent changes.
type Change struct {
	Segments []Segment
	Parents  []ast.NodeID
}

// Identity is the change of an edit that reproduced the old text.
func Identity() Change {
	return Change{Segments: []Segment{{OldStart: 0, OldEnd: Open}}}
}

// Splice is the change of replacing [start, end) with inserted bytes inside
// parent.
func Splice(start, end uint32, inserted int, parent ast.NodeID) Change {
	return Change{
		Segments: []Segment{
			{OldStart: 0, OldEnd: start},
			{OldStart: end, OldEnd: Open, Shift: int64(inserted) - int64(end-start)},
		},
		Parents: []ast.NodeID{parent},
	}
}

// Splices is the change of several non-overlapping edits applied at once.
// parents holds the containing node of each edit; order does not matter.
func Splices(edits []source.Edit, parents []ast.NodeID) Change {
	sorted := slices.Clone(edits)
	slices.SortFunc(sorted, func(a, b source.Edit) int {
		switch {
		case a.Start < b.Start:
			return -1
		case a.Start > b.Start:
			return 1
		}
		return 0
	})

	ch := Change{Parents: slices.Clone(parents)}
	var from uint32
	var shift int64
	for _, e := range sorted {
		ch.Segments = append(ch.Segments, Segment{OldStart: from, OldEnd: e.Start, Shift: shift})
		shift += e.Delta()
		from = e.End
	}
	ch.Segments = append(ch.Segments, Segment{OldStart: from, OldEnd: Open, Shift: shift})
	return ch
}

// Moved builds the change of a reorder inside [lo, hi): each moved range
// gets its own segment and the text outside the region is unchanged.
func Moved(lo, hi uint32, moves []Segment, parent ast.NodeID) Change {
	segs := make([]Segment, 0, len(moves)+2)
	segs = append(segs, Segment{OldStart: 0, OldEnd: lo})
	segs = append(segs, moves...)
	segs = append(segs, Segment{OldStart: hi, OldEnd: Open})
	return Change{Segments: segs, Parents: []ast.NodeID{parent}}
}

// shifted returns sp moved by the first segment that holds it.
func (c Change) shifted(sp source.Span) (source.Span, bool) {
	for _, s := range c.Segments {
		if s.holds(sp) {
			return sp.Shift(s.Shift), true
		}
	}
	return source.Span{}, false
}

// stretched maps a containing node: its start through the leftmost segment
// holding it, its end through the rightmost.
func (c Change) stretched(sp source.Span) (source.Span, bool) {
	start, end := -1, -1
	for i, s := range c.Segments {
		if start < 0 && s.holdsOffset(sp.Start) {
			start = i
		}
		if s.holdsOffset(sp.End) {
			end = i
		}
	}
	if start < 0 || end < 0 {
		return source.Span{}, false
	}
	return source.Span{
		File:  sp.File,
		Start: uint32(int64(sp.Start) + c.Segments[start].Shift),
		End:   uint32(int64(sp.End) + c.Segments[end].Shift),
	}, true
}
