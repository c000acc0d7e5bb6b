package source

import "fmt"

// Span is the byte range [Start, End) of one file.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

func (s Span) Empty() bool { return s.Start == s.End }

func (s Span) Len() uint32 { return s.End - s.Start }

func (s Span) String() string { return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End) }

func (s Span) Contains(off uint32) bool { return off >= s.Start && off < s.End }

// Encloses reports whether other lies inside s. Empty spans on either
// boundary count.
func (s Span) Encloses(other Span) bool {
	return other.Start >= s.Start && other.End <= s.End
}

// Overlaps reports whether the spans share a byte.
func (s Span) Overlaps(other Span) bool {
	return s.Start < other.End && other.Start < s.End
}

// Shift moves s by delta. A shift that would put Start below zero leaves s
// as it is.
func (s Span) Shift(delta int64) Span {
	start := int64(s.Start) + delta
	if start < 0 {
		return s
	}
	return Span{File: s.File, Start: uint32(start), End: uint32(int64(s.End) + delta)}
}
