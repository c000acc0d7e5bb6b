package ast

import (
	"fmt"

	"fortio.org/safecast"
)

// Arena stores values addressed by 1-based ids of type ID; the zero id
// means none.
type Arena[ID ~uint32, T any] struct {
	data []T
}

func NewArena[ID ~uint32, T any](capHint int) *Arena[ID, T] {
	return &Arena[ID, T]{data: make([]T, 0, max(capHint, 0))}
}

// Allocate stores value and returns its id.
func (a *Arena[ID, T]) Allocate(value T) ID {
	a.data = append(a.data, value)
	n, err := safecast.Conv[uint32](len(a.data))
	if err != nil {
		panic(fmt.Errorf("arena overflow: %w", err))
	}
	return ID(n)
}

// Get returns the value with id, or nil when id is out of range.
func (a *Arena[ID, T]) Get(id ID) *T {
	if id == 0 || int(id) > len(a.data) {
		return nil
	}
	return &a.data[id-1]
}

func (a *Arena[ID, T]) Len() int { return len(a.data) }
