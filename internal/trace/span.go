package trace

import (
	"context"
	"sync/atomic"
	"time"
)

var (
	seq     atomic.Uint64
	spanIDs atomic.Uint64
)

// NextSeq returns the next event sequence number.
func NextSeq() uint64 { return seq.Add(1) }

// Span tracks one begin/end pair.
type Span struct {
	tracer  Tracer
	id      uint64
	parent  uint64
	scope   Scope
	name    string
	file    string
	gen     uint64
	started time.Time
	extra   map[string]string
}

func (s *Span) live() bool { return s != nil && s.tracer != nil && s.tracer.Enabled() }

// Begin starts a span under parent (0 for a root) and emits its begin event.
// The span is inert when t is nil, off, or filters scope out.
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return &Span{tracer: Nop}
	}
	s := &Span{
		tracer:  t,
		id:      spanIDs.Add(1),
		parent:  parent,
		scope:   scope,
		name:    name,
		started: time.Now(),
	}
	t.Emit(&Event{
		Time:     s.started,
		Kind:     KindSpanBegin,
		Scope:    scope,
		SpanID:   s.id,
		ParentID: parent,
		Name:     name,
	})
	return s
}

// Start begins a span whose parent is the span carried by ctx and returns a
// context carrying the new one. A nil t falls back to the tracer in ctx.
func Start(ctx context.Context, t Tracer, scope Scope, name string) (context.Context, *Span) {
	if t == nil {
		t = FromContext(ctx)
	}
	s := Begin(t, scope, name, spanFrom(ctx))
	if s.id == 0 {
		return ctx, s
	}
	return withSpan(ctx, s.id), s
}

// WithFile names the document the span works on.
func (s *Span) WithFile(path string) *Span {
	if s.live() {
		s.file = path
	}
	return s
}

// WithGeneration records the document generation reached by the span.
func (s *Span) WithGeneration(gen uint64) *Span {
	if s.live() {
		s.gen = gen
	}
	return s
}

// WithExtra adds a key-value pair to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if !s.live() {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string)
	}
	s.extra[key] = value
	return s
}

// End emits the end event and returns the elapsed time.
func (s *Span) End(detail string) time.Duration {
	if !s.live() {
		return 0
	}
	dur := time.Since(s.started)
	s.tracer.Emit(&Event{
		Time:       time.Now(),
		Kind:       KindSpanEnd,
		Scope:      s.scope,
		SpanID:     s.id,
		ParentID:   s.parent,
		Name:       s.name,
		File:       s.file,
		Generation: s.gen,
		Detail:     detail,
		Extra:      s.extra,
	})
	return dur
}

// EndErr ends the span with err's message as detail, or none.
func (s *Span) EndErr(err error) {
	if err != nil {
		s.End(err.Error())
		return
	}
	s.End("")
}

func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

// Point emits an instant event.
func Point(t Tracer, scope Scope, name, detail string, extra map[string]string) {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return
	}
	t.Emit(&Event{
		Time:   time.Now(),
		Kind:   KindPoint,
		Scope:  scope,
		Name:   name,
		Detail: detail,
		Extra:  extra,
	})
}
