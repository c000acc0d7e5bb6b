package diag

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Bag holds the diagnostics of one parse, up to a limit.
type Bag struct {
	items []Diagnostic
	max   int
}

// NewBag returns a bag holding at most max diagnostics; max <= 0 means
// no limit.
func NewBag(max int) *Bag {
	return &Bag{items: make([]Diagnostic, 0, 4), max: max}
}

// Add appends d and reports whether it fit under the limit.
func (b *Bag) Add(d Diagnostic) bool {
	if b.max > 0 && len(b.items) >= b.max {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) HasErrors() bool {
	if b == nil {
		return false
	}
	return slices.ContainsFunc(b.items, func(d Diagnostic) bool { return d.Severity >= SevError })
}

func (b *Bag) Len() int {
	if b == nil {
		return 0
	}
	return len(b.items)
}

// Items returns the backing slice; do not modify it.
func (b *Bag) Items() []Diagnostic {
	if b == nil {
		return nil
	}
	return b.items
}

// Sort orders by position, then by severity with errors first.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y Diagnostic) int {
		return cmp.Or(
			cmp.Compare(x.Primary.File, y.Primary.File),
			cmp.Compare(x.Primary.Start, y.Primary.Start),
			cmp.Compare(x.Primary.End, y.Primary.End),
			cmp.Compare(y.Severity, x.Severity),
			cmp.Compare(x.Code, y.Code),
		)
	})
}

// Summary renders up to limit diagnostics, one per line, followed by a count
// of the rest.
func (b *Bag) Summary(limit int) string {
	if b.Len() == 0 {
		return ""
	}
	shown := b.items
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}
	lines := make([]string, 0, len(shown)+1)
	for _, d := range shown {
		lines = append(lines, d.String())
	}
	if rest := len(b.items) - len(shown); rest > 0 {
		lines = append(lines, fmt.Sprintf("... and %d more", rest))
	}
	return strings.Join(lines, "\n")
}
