package trace

import "time"

// Kind represents the type of trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
)

func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	default:
		return "unknown"
	}
}

// Scope indicates the granularity of the event. Lower values are coarser.
type Scope uint8

const (
	ScopeProject Scope = iota + 1 // project load, save, rename across files
	ScopeFile                     // parse and save of one file
	ScopeEdit                     // one manipulation: splice, reparse, reconcile
	ScopeNode                     // wrapper creation and forgetting
)

func (s Scope) String() string {
	switch s {
	case ScopeProject:
		return "project"
	case ScopeFile:
		return "file"
	case ScopeEdit:
		return "edit"
	case ScopeNode:
		return "node"
	default:
		return "unknown"
	}
}

// Event is one trace record. File and Generation are set when the event
// concerns a single document.
type Event struct {
	Time       time.Time
	Seq        uint64
	Kind       Kind
	Scope      Scope
	SpanID     uint64
	ParentID   uint64 // 0 for a root span
	Name       string // "parse", "add-modifier", "rename"
	File       string
	Generation uint64
	Detail     string
	Extra      map[string]string
}
