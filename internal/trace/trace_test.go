package trace

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestLevelFiltersScopes(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeProject, false},
		{LevelError, ScopeProject, false},
		{LevelPhase, ScopeFile, true},
		{LevelPhase, ScopeEdit, false},
		{LevelDetail, ScopeEdit, true},
		{LevelDetail, ScopeNode, false},
		{LevelDebug, ScopeNode, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestRingKeepsLastEvents(t *testing.T) {
	r := NewRingTracer(2, LevelDebug)
	for _, name := range []string{"a", "b", "c"} {
		Point(r, ScopeEdit, name, "", nil)
	}
	evs := r.Snapshot()
	if len(evs) != 2 || evs[0].Name != "b" || evs[1].Name != "c" {
		t.Fatalf("snapshot = %+v", evs)
	}
}

func TestStreamTextFormat(t *testing.T) {
	var buf bytes.Buffer
	st := NewStreamTracer(&buf, LevelDetail, FormatText)
	sp := Begin(st, ScopeEdit, "apply", 0)
	sp.WithExtra("retained", "3").WithExtra("forgotten", "1").End("ok")
	Point(st, ScopeNode, "wrap", "", nil) // filtered at LevelDetail

	out := buf.String()
	if strings.Count(out, "\n") != 2 {
		t.Fatalf("expected begin and end lines, got %q", out)
	}
	if !strings.Contains(out, "← apply (ok) {forgotten=1, retained=3}") {
		t.Errorf("end line missing sorted extras: %q", out)
	}
}

func TestContextRoundTrip(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatalf("empty context should yield Nop")
	}
	r := NewRingTracer(4, LevelPhase)
	ctx := WithTracer(context.Background(), r)
	if FromContext(ctx) != Tracer(r) {
		t.Fatalf("tracer not propagated")
	}
}

func TestParseHelpers(t *testing.T) {
	if l, err := ParseLevel("DETAIL"); err != nil || l != LevelDetail {
		t.Errorf("ParseLevel = %v, %v", l, err)
	}
	if _, err := ParseMode("sideways"); err == nil {
		t.Errorf("expected mode error")
	}
	if f, err := ParseFormat("ndjson"); err != nil || f != FormatNDJSON {
		t.Errorf("ParseFormat = %v, %v", f, err)
	}
}

func TestStartNestsSpans(t *testing.T) {
	r := NewRingTracer(16, LevelDetail)
	ctx := WithTracer(context.Background(), r)
	ctx, outer := Start(ctx, nil, ScopeProject, "script")
	_, inner := Start(ctx, nil, ScopeEdit, "rename")
	inner.WithFile("/a.ts").WithGeneration(3).End("")
	outer.End("")

	ends := r.Named("rename")
	if len(ends) != 2 {
		t.Fatalf("rename events = %d", len(ends))
	}
	if ends[0].ParentID != outer.ID() || ends[1].ParentID != outer.ID() {
		t.Errorf("parent = %d, want %d", ends[0].ParentID, outer.ID())
	}
	if ends[1].File != "/a.ts" || ends[1].Generation != 3 {
		t.Errorf("end event = %+v", ends[1])
	}
	line := string(FormatEvent(&ends[1], FormatText))
	if !strings.Contains(line, "← rename /a.ts@3") {
		t.Errorf("text = %q", line)
	}
}

func TestStartWithoutTracerIsInert(t *testing.T) {
	ctx, sp := Start(context.Background(), nil, ScopeProject, "script")
	if sp.ID() != 0 || spanFrom(ctx) != 0 {
		t.Fatalf("inert span got id %d", sp.ID())
	}
	if d := sp.End(""); d != 0 {
		t.Errorf("End = %v", d)
	}
}

func TestNewBoth(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf, Format: FormatNDJSON})
	if err != nil {
		t.Fatal(err)
	}
	Point(tr, ScopeProject, "remove_source_file", "/a.ts", nil)
	ring, ok := Ring(tr)
	if !ok || len(ring.Snapshot()) != 1 {
		t.Fatalf("ring = %v, %v", ring, ok)
	}
	if !strings.Contains(buf.String(), `"name":"remove_source_file"`) {
		t.Errorf("stream = %q", buf.String())
	}
	if err := tr.Close(); err != nil {
		t.Errorf("Close = %v", err)
	}
	if tr, _ := New(Config{Level: LevelOff}); tr != Nop {
		t.Errorf("LevelOff should give Nop")
	}
}

func TestRingForFile(t *testing.T) {
	r := NewRingTracer(8, LevelPhase)
	Begin(r, ScopeFile, "parse", 0).WithFile("/a.ts").End("")
	Begin(r, ScopeFile, "parse", 0).WithFile("/b.ts").End("")
	if evs := r.ForFile("/b.ts"); len(evs) != 1 || evs[0].Kind != KindSpanEnd {
		t.Fatalf("ForFile = %+v", evs)
	}
	if evs := r.Snapshot(); len(evs) != 4 {
		t.Fatalf("snapshot = %d events", len(evs))
	}
}
