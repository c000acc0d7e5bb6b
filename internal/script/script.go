// Package script decodes and runs edit scripts: TOML files of [[edit]]
// entries, each naming a file, a declaration and an operation.
package script

import (
	"fmt"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// Script is a decoded edit script.
type Script struct {
	Path  string `toml:"-"`
	Edits []Edit `toml:"edit"`
}

// Edit is one [[edit]] entry.
//
//	[[edit]]
//	file = "src/box.ts"
//	target = "property:Box.size"
//	op = "set-initializer"
//	text = "10"
type Edit struct {
	File   string `toml:"file"`
	Target string `toml:"target"`
	Op     string `toml:"op"`
	Text   string `toml:"text"`
	// Value is an integer for set-order, an optional boolean for
	// toggle-modifier, and for set-initializer a string written as a
	// literal in the configured quote style.
	Value any `toml:"value"`

	sel Selector
}

// Selector returns the parsed target.
func (e *Edit) Selector() Selector { return e.sel }

const (
	OpAddModifier       = "add-modifier"
	OpRemoveModifier    = "remove-modifier"
	OpToggleModifier    = "toggle-modifier"
	OpSetInitializer    = "set-initializer"
	OpRemoveInitializer = "remove-initializer"
	OpRename            = "rename"
	OpRemove            = "remove"
	OpSetOrder          = "set-order"
	OpSetDoc            = "set-doc"
)

var ops = []string{
	OpAddModifier, OpRemoveModifier, OpToggleModifier,
	OpSetInitializer, OpRemoveInitializer,
	OpRename, OpRemove, OpSetOrder, OpSetDoc,
}

// needsText lists the ops whose text must not be blank.
var needsText = map[string]bool{
	OpAddModifier:    true,
	OpRemoveModifier: true,
	OpToggleModifier: true,
	OpSetInitializer: true,
	OpRename:         true,
}

// Load decodes the script at path.
func Load(path string) (*Script, error) {
	var s Script
	meta, err := toml.DecodeFile(path, &s)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	s.Path = path
	if err := s.check(meta); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &s, nil
}

// Parse decodes a script held in memory.
func Parse(text string) (*Script, error) {
	var s Script
	meta, err := toml.Decode(text, &s)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	if err := s.check(meta); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Script) check(meta toml.MetaData) error {
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown key %s", undecoded[0])
	}
	if !meta.IsDefined("edit") {
		return fmt.Errorf("missing [[edit]]")
	}
	for i := range s.Edits {
		e := &s.Edits[i]
		if err := e.check(); err != nil {
			return fmt.Errorf("edit %d: %w", i+1, err)
		}
	}
	return nil
}

func (e *Edit) check() error {
	if strings.TrimSpace(e.File) == "" {
		return fmt.Errorf("missing file")
	}
	if !slices.Contains(ops, e.Op) {
		return fmt.Errorf("unknown op %q (expected: %s)", e.Op, strings.Join(ops, "|"))
	}
	sel, err := ParseSelector(e.Target)
	if err != nil {
		return err
	}
	e.sel = sel
	_, stringValue := e.Value.(string)
	if needsText[e.Op] && strings.TrimSpace(e.Text) == "" && !(e.Op == OpSetInitializer && stringValue) {
		return fmt.Errorf("%s needs text", e.Op)
	}
	switch e.Op {
	case OpSetInitializer:
		if stringValue && e.Text != "" {
			return fmt.Errorf("%s takes text or a string value, not both", e.Op)
		}
	case OpSetOrder:
		if _, ok := e.Value.(int64); !ok {
			return fmt.Errorf("%s needs an integer value", e.Op)
		}
	case OpToggleModifier:
		if _, ok := e.Value.(bool); e.Value != nil && !ok {
			return fmt.Errorf("%s value must be a boolean", e.Op)
		}
	}
	return nil
}

// Selector addresses a declaration as kind:name or kind:Parent.member.
type Selector struct {
	Kind   string
	Parent string // class, interface or enum for member kinds
	Name   string
}

const (
	SelClass     = "class"
	SelInterface = "interface"
	SelEnum      = "enum"
	SelFunction  = "function"
	SelVariable  = "variable"
	SelNamespace = "namespace"
	SelType      = "type"
	SelProperty  = "property"
	SelMethod    = "method"
	SelMember    = "member"
)

func isMemberKind(k string) bool {
	return k == SelProperty || k == SelMethod || k == SelMember
}

// ParseSelector parses a target such as "class:C" or "property:C.p".
func ParseSelector(s string) (Selector, error) {
	kind, name, ok := strings.Cut(s, ":")
	if !ok || name == "" {
		return Selector{}, fmt.Errorf("target %q: expected kind:name", s)
	}
	sel := Selector{Kind: kind, Name: name}
	switch kind {
	case SelClass, SelInterface, SelEnum, SelFunction, SelVariable, SelNamespace, SelType:
		if strings.Contains(name, ".") {
			return Selector{}, fmt.Errorf("target %q: %s names cannot be qualified", s, kind)
		}
	case SelProperty, SelMethod, SelMember:
		parent, member, ok := strings.Cut(name, ".")
		if !ok || parent == "" || member == "" {
			return Selector{}, fmt.Errorf("target %q: expected %s:Parent.name", s, kind)
		}
		sel.Parent, sel.Name = parent, member
	default:
		return Selector{}, fmt.Errorf("target %q: unknown kind %q", s, kind)
	}
	return sel, nil
}

func (s Selector) String() string {
	if isMemberKind(s.Kind) {
		return s.Kind + ":" + s.Parent + "." + s.Name
	}
	return s.Kind + ":" + s.Name
}
