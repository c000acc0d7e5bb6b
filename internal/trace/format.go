package trace

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Format selects how events are written.
type Format uint8

const (
	FormatAuto   Format = iota // picked from Config.OutputPath
	FormatText
	FormatNDJSON
)

// ParseFormat converts a string to Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "auto", "":
		return FormatAuto, nil
	case "text":
		return FormatText, nil
	case "ndjson", "json":
		return FormatNDJSON, nil
	default:
		return FormatAuto, fmt.Errorf("invalid trace format: %q (expected: auto|text|ndjson)", s)
	}
}

// FormatEvent renders ev as one line.
func FormatEvent(ev *Event, format Format) []byte {
	if format == FormatNDJSON {
		return formatNDJSON(ev)
	}
	return formatText(ev)
}

type jsonEvent struct {
	Time       string            `json:"time"`
	Seq        uint64            `json:"seq"`
	Kind       string            `json:"kind"`
	Scope      string            `json:"scope"`
	SpanID     uint64            `json:"span_id,omitempty"`
	ParentID   uint64            `json:"parent_id,omitempty"`
	Name       string            `json:"name"`
	File       string            `json:"file,omitempty"`
	Generation uint64            `json:"generation,omitempty"`
	Detail     string            `json:"detail,omitempty"`
	Extra      map[string]string `json:"extra,omitempty"`
}

func formatNDJSON(ev *Event) []byte {
	data, err := json.Marshal(jsonEvent{
		Time:       ev.Time.Format("2006-01-02T15:04:05.000000Z07:00"),
		Seq:        ev.Seq,
		Kind:       ev.Kind.String(),
		Scope:      ev.Scope.String(),
		SpanID:     ev.SpanID,
		ParentID:   ev.ParentID,
		Name:       ev.Name,
		File:       ev.File,
		Generation: ev.Generation,
		Detail:     ev.Detail,
		Extra:      ev.Extra,
	})
	if err != nil {
		return nil
	}
	return append(data, '\n')
}

var kindMarks = map[Kind]string{
	KindSpanBegin: "→ ",
	KindSpanEnd:   "← ",
	KindPoint:     "• ",
}

// formatText renders "#seq scope → name file@gen (detail) {k=v, ...}" with
// extras sorted by key.
func formatText(ev *Event) []byte {
	b := make([]byte, 0, 96)
	b = fmt.Appendf(b, "#%-6d %-7s ", ev.Seq, ev.Scope)
	if ev.ParentID > 0 {
		b = append(b, "  "...)
	}
	b = append(b, kindMarks[ev.Kind]...)
	b = append(b, ev.Name...)
	if ev.File != "" {
		b = append(b, ' ')
		b = append(b, ev.File...)
		if ev.Generation > 0 {
			b = append(b, '@')
			b = strconv.AppendUint(b, ev.Generation, 10)
		}
	}
	if ev.Detail != "" {
		b = append(b, " ("...)
		b = append(b, ev.Detail...)
		b = append(b, ')')
	}
	if len(ev.Extra) > 0 {
		b = append(b, " {"...)
		for i, k := range slices.Sorted(maps.Keys(ev.Extra)) {
			if i > 0 {
				b = append(b, ", "...)
			}
			b = append(b, k...)
			b = append(b, '=')
			b = append(b, ev.Extra[k]...)
		}
		b = append(b, '}')
	}
	return append(b, '\n')
}
