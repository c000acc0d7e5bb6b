package source

import (
	"testing"
)

func TestSpanShift(t *testing.T) {
	tests := []struct {
		name     string
		span     Span
		delta    int64
		expected Span
	}{
		{"shift right", Span{File: 1, Start: 10, End: 20}, 5, Span{File: 1, Start: 15, End: 25}},
		{"shift left", Span{File: 1, Start: 10, End: 20}, -5, Span{File: 1, Start: 5, End: 15}},
		{"shift left to zero", Span{File: 1, Start: 10, End: 20}, -10, Span{File: 1, Start: 0, End: 10}},
		{"shift past zero keeps span", Span{File: 1, Start: 10, End: 20}, -15, Span{File: 1, Start: 10, End: 20}},
		{"zero length", Span{File: 2, Start: 10, End: 10}, -3, Span{File: 2, Start: 7, End: 7}},
		{"no shift", Span{File: 1, Start: 3, End: 4}, 0, Span{File: 1, Start: 3, End: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.span.Shift(tt.delta); got != tt.expected {
				t.Fatalf("Shift(%d) = %v, want %v", tt.delta, got, tt.expected)
			}
		})
	}
}

func TestSpanRelations(t *testing.T) {
	a := Span{Start: 5, End: 10}
	if !a.Encloses(Span{Start: 5, End: 5}) || !a.Encloses(Span{Start: 10, End: 10}) {
		t.Fatalf("empty spans at the boundary must be enclosed")
	}
	if a.Encloses(Span{Start: 4, End: 6}) {
		t.Fatalf("span crossing the start must not be enclosed")
	}
	if a.Overlaps(Span{Start: 10, End: 12}) {
		t.Fatalf("adjacent spans must not overlap")
	}
	if !a.Overlaps(Span{Start: 9, End: 12}) {
		t.Fatalf("expected overlap")
	}
	if a.Contains(10) || !a.Contains(5) {
		t.Fatalf("Contains must be half-open")
	}
}
