package trace

import "errors"

// tee sends every event to each of its tracers.
type tee struct {
	tracers []Tracer
	level   Level
}

// Tee combines tracers. Each receives its own copy of an event, since
// tracers stamp sequence numbers in place.
func Tee(level Level, tracers ...Tracer) Tracer {
	return &tee{tracers: tracers, level: level}
}

func (t *tee) Emit(ev *Event) {
	for _, tr := range t.tracers {
		cp := *ev
		tr.Emit(&cp)
	}
}

func (t *tee) Flush() error {
	var errsOut []error
	for _, tr := range t.tracers {
		errsOut = append(errsOut, tr.Flush())
	}
	return errors.Join(errsOut...)
}

func (t *tee) Close() error {
	var errsOut []error
	for _, tr := range t.tracers {
		errsOut = append(errsOut, tr.Close())
	}
	return errors.Join(errsOut...)
}

func (t *tee) Level() Level  { return t.level }
func (t *tee) Enabled() bool { return t.level > LevelOff }

// Ring returns the ring buffer inside t, if any.
func Ring(t Tracer) (*RingTracer, bool) {
	switch v := t.(type) {
	case *RingTracer:
		return v, true
	case *tee:
		for _, tr := range v.tracers {
			if r, ok := tr.(*RingTracer); ok {
				return r, true
			}
		}
	}
	return nil, false
}
