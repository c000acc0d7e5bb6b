package observ

import (
	"errors"
	"strings"
	"sync"
	"testing"
)

func TestTimerGroupsPhases(t *testing.T) {
	tm := NewTimer()
	for i := 0; i < 3; i++ {
		tm.End(tm.Begin("parse"), "")
	}
	tm.End(tm.Begin("reconcile"), "7 paired")
	tm.End(99, "ignored")

	full := tm.Report()
	if len(full.Phases) != 4 || full.Phases[3].Note != "7 paired" {
		t.Fatalf("report = %+v", full)
	}
	g := tm.Grouped()
	if len(g.Phases) != 2 {
		t.Fatalf("grouped = %+v", g)
	}
	if g.Phases[0].Name != "parse" || g.Phases[0].Count != 3 || g.Phases[1].Count != 1 {
		t.Errorf("grouped = %+v", g.Phases)
	}
	s := tm.Summary()
	if !strings.Contains(s, "parse") || !strings.Contains(s, "x3") || !strings.Contains(s, "total") {
		t.Errorf("summary = %q", s)
	}
}

func TestTimerTrack(t *testing.T) {
	tm := NewTimer()
	boom := errors.New("boom")
	if err := tm.Track("save", func() error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("Track = %v", err)
	}
	if r := tm.Report(); r.Phases[0].Note != "error" {
		t.Errorf("note = %q", r.Phases[0].Note)
	}
}

func TestTimerConcurrent(t *testing.T) {
	tm := NewTimer()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.End(tm.Begin("parse"), "")
		}()
	}
	wg.Wait()
	if tm.Len() != 8 {
		t.Fatalf("Len = %d", tm.Len())
	}
}

func TestEmptyTimer(t *testing.T) {
	r := NewTimer().Grouped()
	if r.TotalMS != 0 || len(r.Phases) != 0 {
		t.Fatalf("report = %+v", r)
	}
}
