package trace

import (
	"fmt"
	"strings"
)

// Level controls which scopes are emitted.
type Level uint8

const (
	LevelOff    Level = iota
	LevelError        // nothing is streamed; ring keeps errors only
	LevelPhase        // project and file scopes
	LevelDetail       // plus every edit
	LevelDebug        // plus node-level events
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

// finest is the finest scope each level lets through; 0 lets nothing.
var finest = [...]Scope{LevelPhase: ScopeFile, LevelDetail: ScopeEdit, LevelDebug: ScopeNode}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel converts a name to a Level, ignoring case. The empty string
// means off.
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(s)
	if s == "" {
		return LevelOff, nil
	}
	for l, name := range levelNames {
		if name == s {
			return Level(l), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
}

// ShouldEmit reports whether events of scope pass at level l.
func (l Level) ShouldEmit(scope Scope) bool {
	return int(l) < len(finest) && scope <= finest[l]
}
