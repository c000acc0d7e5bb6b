package diag

import (
	"strings"
	"testing"

	"morph/internal/source"
)

func TestBagLimitAndErrors(t *testing.T) {
	b := NewBag(2)
	r := BagReporter{Bag: b}
	Report(r, SevWarning, SynExpectSemicolon, source.Span{Start: 4, End: 5}, "missing ;").Emit()
	if b.HasErrors() {
		t.Fatalf("warnings must not count as errors")
	}
	ReportError(r, SynUnexpectedToken, source.Span{Start: 1, End: 2}, "unexpected").Emit()
	if b.Add(NewError(SynUnexpectedToken, source.Span{}, "dropped")) {
		t.Fatalf("third diagnostic must be dropped at the limit")
	}
	if b.Len() != 2 || !b.HasErrors() {
		t.Fatalf("len=%d errors=%v", b.Len(), b.HasErrors())
	}
	b.Sort()
	if b.Items()[0].Primary.Start != 1 {
		t.Fatalf("Sort must order by start, got %+v", b.Items())
	}
	sum := b.Summary(1)
	if !strings.Contains(sum, "SYN2001") || !strings.Contains(sum, "and 1 more") {
		t.Fatalf("Summary = %q", sum)
	}
}

func TestBuilderEmitsOnce(t *testing.T) {
	b := NewBag(10)
	rb := ReportError(BagReporter{Bag: b}, LexUnknownChar, source.Span{}, "bad").
		WithNote(source.Span{Start: 3, End: 4}, "here")
	rb.Emit()
	rb.Emit()
	if b.Len() != 1 {
		t.Fatalf("expected one diagnostic, got %d", b.Len())
	}
	if got := b.Items()[0].Notes; len(got) != 1 || got[0].Msg != "here" {
		t.Fatalf("notes = %+v", got)
	}
}

func TestUnlimitedBag(t *testing.T) {
	b := NewBag(0)
	for i := 0; i < 100; i++ {
		if !b.Add(NewError(LexUnknownChar, source.Span{Start: uint32(i)}, "bad")) {
			t.Fatalf("add %d dropped", i)
		}
	}
	if b.Summary(0) == "" || strings.Contains(b.Summary(0), "more") {
		t.Errorf("unlimited summary should list every item")
	}
}
