package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Phase is one timed step, such as a parse or a reconcile.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer collects phases. Documents parsed in parallel may share one Timer,
// so every method locks.
type Timer struct {
	mu     sync.Mutex
	phases []Phase
}

func NewTimer() *Timer { return &Timer{phases: make([]Phase, 0, 8)} }

// Begin starts a phase and returns its index for End.
func (t *Timer) Begin(name string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	return len(t.phases) - 1
}

func (t *Timer) End(idx int, note string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.Dur = time.Since(p.Start)
	p.Note = note
}

// Track times fn as a phase named name.
func (t *Timer) Track(name string, fn func() error) error {
	idx := t.Begin(name)
	err := fn()
	note := ""
	if err != nil {
		note = "error"
	}
	t.End(idx, note)
	return err
}

// Len is the number of phases begun so far.
func (t *Timer) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.phases)
}

// PhaseReport is a phase, or a group of same-named phases, in milliseconds.
type PhaseReport struct {
	Name       string  `json:"name"`
	Count      int     `json:"count"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report lists every phase in the order it began.
func (t *Timer) Report() Report {
	t.mu.Lock()
	defer t.mu.Unlock()
	var report Report
	var total time.Duration
	for _, p := range t.phases {
		total += p.Dur
		report.Phases = append(report.Phases, PhaseReport{
			Name:       p.Name,
			Count:      1,
			DurationMS: durationToMillis(p.Dur),
			Note:       p.Note,
		})
	}
	report.TotalMS = durationToMillis(total)
	return report
}

// Grouped folds phases with the same name into one entry, ordered by first
// appearance. Notes are dropped.
func (t *Timer) Grouped() Report {
	full := t.Report()
	out := Report{TotalMS: full.TotalMS}
	index := make(map[string]int)
	for _, p := range full.Phases {
		i, ok := index[p.Name]
		if !ok {
			i = len(out.Phases)
			index[p.Name] = i
			out.Phases = append(out.Phases, PhaseReport{Name: p.Name})
		}
		out.Phases[i].Count++
		out.Phases[i].DurationMS += p.DurationMS
	}
	return out
}

// Summary renders the grouped report as text.
func (t *Timer) Summary() string {
	report := t.Grouped()
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, p := range report.Phases {
		fmt.Fprintf(&sb, "  %-20s %7.2f ms  x%d\n", p.Name, p.DurationMS, p.Count)
	}
	fmt.Fprintf(&sb, "  %-20s %7.2f ms\n", "total", report.TotalMS)
	return sb.String()
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
