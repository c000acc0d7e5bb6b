// Package structure holds the sparse descriptions that wrappers are filled
// from. A structure names only what should change: every optional member is
// a Field that is either unset (leave as is), set (apply the value) or
// removed (delete the syntax).
package structure

// State is the state of a Field.
type State uint8

const (
	Unset State = iota
	Set
	Removed
)

func (s State) String() string {
	switch s {
	case Set:
		return "set"
	case Removed:
		return "removed"
	default:
		return "unset"
	}
}

// Field is an optional structure member with an explicit removal state.
type Field[T any] struct {
	state State
	value T
}

// Value returns a set field.
func Value[T any](v T) Field[T] { return Field[T]{state: Set, value: v} }

// Remove returns a field that asks for removal.
func Remove[T any]() Field[T] { return Field[T]{state: Removed} }

func (f Field[T]) State() State { return f.state }

func (f Field[T]) IsSet() bool { return f.state == Set }

func (f Field[T]) IsRemoved() bool { return f.state == Removed }

func (f Field[T]) IsUnset() bool { return f.state == Unset }

// Get returns the value and whether the field is set.
func (f Field[T]) Get() (T, bool) {
	return f.value, f.state == Set
}
