package source

import (
	"fmt"
	"slices"

	"fortio.org/safecast"
)

// Edit replaces the bytes in [Start, End) with Text.
type Edit struct {
	Start uint32
	End   uint32
	Text  string
}

// Delta is the change in length the edit causes.
func (e Edit) Delta() int64 {
	return int64(len(e.Text)) - int64(e.End) + int64(e.Start)
}

// Buffer owns the mutable text of one file. Content is replaced wholesale on
// Commit; callers never see a half-applied splice.
type Buffer struct {
	file    FileID
	content []byte
	lineIdx []uint32
	version uint64
}

func NewBuffer(file FileID, content []byte) *Buffer {
	b := &Buffer{file: file}
	b.Commit(content)
	b.version = 0
	return b
}

func (b *Buffer) File() FileID { return b.file }

// Bytes returns the current content. The slice must not be modified.
func (b *Buffer) Bytes() []byte { return b.content }

func (b *Buffer) Text() string { return string(b.content) }

// Version counts commits since creation.
func (b *Buffer) Version() uint64 { return b.version }

func (b *Buffer) Len() uint32 {
	n, err := safecast.Conv[uint32](len(b.content))
	if err != nil {
		panic(fmt.Errorf("buffer length overflow: %w", err))
	}
	return n
}

// Slice returns the text under span; out-of-range spans are clamped.
func (b *Buffer) Slice(span Span) string {
	end := min(span.End, b.Len())
	start := min(span.Start, end)
	return string(b.content[start:end])
}

// Preview computes the content that applying edits would produce without
// touching the buffer. Edits may come in any order but must not overlap.
func (b *Buffer) Preview(edits []Edit) ([]byte, error) {
	sorted := slices.Clone(edits)
	slices.SortStableFunc(sorted, func(x, y Edit) int {
		switch {
		case x.Start < y.Start:
			return -1
		case x.Start > y.Start:
			return 1
		}
		return 0
	})

	size := int64(len(b.content))
	var prevEnd uint32
	for i, e := range sorted {
		if e.Start > e.End {
			return nil, fmt.Errorf("edit %d: reversed range %d-%d", i, e.Start, e.End)
		}
		if e.End > b.Len() {
			return nil, fmt.Errorf("edit %d: range %d-%d outside buffer of %d bytes", i, e.Start, e.End, b.Len())
		}
		if i > 0 && e.Start < prevEnd {
			return nil, fmt.Errorf("edit %d: range %d-%d overlaps previous edit", i, e.Start, e.End)
		}
		prevEnd = e.End
		size += e.Delta()
	}

	out := make([]byte, 0, size)
	var cursor uint32
	for _, e := range sorted {
		out = append(out, b.content[cursor:e.Start]...)
		out = append(out, e.Text...)
		cursor = e.End
	}
	out = append(out, b.content[cursor:]...)
	return out, nil
}

// Commit replaces the content and rebuilds the line index.
func (b *Buffer) Commit(content []byte) {
	b.content = content
	b.lineIdx = buildLineIndex(content)
	b.version++
}

// Resolve converts a byte offset into a 1-based line and column. Offsets
// past the end resolve against the last line.
func (b *Buffer) Resolve(off uint32) LineCol {
	// lineIdx holds newline offsets; the count of those before off is the
	// zero-based line.
	line, _ := slices.BinarySearch(b.lineIdx, off)
	start := uint32(0)
	if line > 0 {
		start = b.lineIdx[line-1] + 1
	}
	return LineCol{Line: uint32(line) + 1, Col: off - start + 1}
}

func buildLineIndex(content []byte) []uint32 {
	idx := make([]uint32, 0, len(content)/32+1)
	for i, c := range content {
		if c == '\n' {
			idx = append(idx, uint32(i))
		}
	}
	return idx
}

// LineStart returns the offset of the first byte on the line holding off.
func (b *Buffer) LineStart(off uint32) uint32 {
	off = min(off, b.Len())
	for off > 0 && b.content[off-1] != '\n' {
		off--
	}
	return off
}

// Indentation returns the run of spaces and tabs that opens the line holding off.
func (b *Buffer) Indentation(off uint32) string {
	start := b.LineStart(off)
	end := start
	for end < b.Len() && (b.content[end] == ' ' || b.content[end] == '\t') {
		end++
	}
	return string(b.content[start:end])
}

// NewlineKind reports "\r\n" when the buffer already uses CRLF line endings
// and "\n" otherwise.
func (b *Buffer) NewlineKind() string {
	if len(b.lineIdx) > 0 {
		first := b.lineIdx[0]
		if first > 0 && b.content[first-1] == '\r' {
			return "\r\n"
		}
	}
	return "\n"
}
