package trace

import (
	"io"
	"sync"
)

// RingTracer keeps the last events in memory for a dump on exit.
type RingTracer struct {
	mu     sync.RWMutex
	events []Event
	next   int
	full   bool
	level  Level
}

func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = defaultRingSize
	}
	return &RingTracer{events: make([]Event, capacity), level: level}
}

func (t *RingTracer) Emit(ev *Event) {
	if !t.level.ShouldEmit(ev.Scope) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events[t.next] = *ev
	t.events[t.next].Seq = NextSeq()
	t.next++
	if t.next == len(t.events) {
		t.next, t.full = 0, true
	}
}

// Snapshot returns the stored events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	return t.Filter(nil)
}

// Filter returns the stored events keep accepts, oldest first. A nil keep
// accepts everything.
func (t *RingTracer) Filter(keep func(*Event) bool) []Event {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var out []Event
	add := func(evs []Event) {
		for i := range evs {
			if keep == nil || keep(&evs[i]) {
				out = append(out, evs[i])
			}
		}
	}
	if t.full {
		add(t.events[t.next:])
	}
	add(t.events[:t.next])
	return out
}

// Named returns the stored events called name.
func (t *RingTracer) Named(name string) []Event {
	return t.Filter(func(ev *Event) bool { return ev.Name == name })
}

// ForFile returns the stored events about the document at path.
func (t *RingTracer) ForFile(path string) []Event {
	return t.Filter(func(ev *Event) bool { return ev.File == path })
}

// Dump writes every stored event to w.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	for _, ev := range t.Snapshot() {
		if _, err := w.Write(FormatEvent(&ev, format)); err != nil {
			return err
		}
	}
	return nil
}

func (t *RingTracer) Flush() error  { return nil }
func (t *RingTracer) Close() error  { return nil }
func (t *RingTracer) Level() Level  { return t.level }
func (t *RingTracer) Enabled() bool { return t.level > LevelOff }
