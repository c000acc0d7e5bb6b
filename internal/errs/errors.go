// Package errs holds the error taxonomy of the object model. Every error type
// matches its sentinel through errors.Is and can be extracted with errors.As.
package errs

import (
	"errors"
	"fmt"

	"morph/internal/source"
)

// Sentinels for errors.Is.
var (
	ErrArgument                 = errors.New("argument error")
	ErrArgumentType             = errors.New("argument type error")
	ErrArgumentNullOrWhitespace = errors.New("argument null or whitespace")
	ErrArgumentOutOfRange       = errors.New("argument out of range")
	ErrInvalidOperation         = errors.New("invalid operation")
	ErrNotImplemented           = errors.New("not implemented")
	ErrStaleNode                = errors.New("stale node")
)

// ArgumentError reports a bad argument value.
type ArgumentError struct {
	Arg     string
	Message string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("argument error (%s): %s", e.Arg, e.Message)
}

func (e *ArgumentError) Is(target error) bool { return target == ErrArgument }

// ArgumentTypeError reports a value of the wrong dynamic type.
type ArgumentTypeError struct {
	Arg      string
	Expected string
	Actual   string
}

func (e *ArgumentTypeError) Error() string {
	return fmt.Sprintf("argument error (%s): expected type %q but was %q", e.Arg, e.Expected, e.Actual)
}

func (e *ArgumentTypeError) Is(target error) bool {
	return target == ErrArgumentType || target == ErrArgument
}

type ArgumentNullOrWhitespaceError struct {
	Arg string
}

func (e *ArgumentNullOrWhitespaceError) Error() string {
	return fmt.Sprintf("argument error (%s): value was empty or whitespace", e.Arg)
}

func (e *ArgumentNullOrWhitespaceError) Is(target error) bool {
	return target == ErrArgumentNullOrWhitespace || target == ErrArgument
}

// ArgumentOutOfRangeError reports a value outside the inclusive range [Min, Max].
type ArgumentOutOfRangeError struct {
	Arg   string
	Value int
	Min   int
	Max   int
}

func (e *ArgumentOutOfRangeError) Error() string {
	return fmt.Sprintf("argument error (%s): range is [%d, %d], but value was %d", e.Arg, e.Min, e.Max, e.Value)
}

func (e *ArgumentOutOfRangeError) Is(target error) bool {
	return target == ErrArgumentOutOfRange || target == ErrArgument
}

// InvalidOperationError reports an operation that is not valid in the
// current state, e.g. asking for a missing child.
type InvalidOperationError struct {
	Message string
	Err     error // optional cause
}

func (e *InvalidOperationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid operation: %s: %v", e.Message, e.Err)
	}
	return "invalid operation: " + e.Message
}

func (e *InvalidOperationError) Is(target error) bool { return target == ErrInvalidOperation }

func (e *InvalidOperationError) Unwrap() error { return e.Err }

// NotImplementedError marks a gap in a grammar table or a closed union.
type NotImplementedError struct {
	Message string
}

func (e *NotImplementedError) Error() string { return "not implemented: " + e.Message }

func (e *NotImplementedError) Is(target error) bool { return target == ErrNotImplemented }

// StaleNodeError is returned by every operation on a wrapper whose node was
// removed or replaced by an edit. Kind and Span are the last known values.
type StaleNodeError struct {
	Kind string
	Span source.Span
}

func (e *StaleNodeError) Error() string {
	return fmt.Sprintf("stale node: %s at %d-%d was forgotten after an edit", e.Kind, e.Span.Start, e.Span.End)
}

func (e *StaleNodeError) Is(target error) bool { return target == ErrStaleNode }

// InvalidOperation is a shorthand constructor.
func InvalidOperation(format string, args ...any) error {
	return &InvalidOperationError{Message: fmt.Sprintf(format, args...)}
}

// NotImplemented is a shorthand constructor.
func NotImplemented(format string, args ...any) error {
	return &NotImplementedError{Message: fmt.Sprintf(format, args...)}
}
