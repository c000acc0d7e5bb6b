package errs

import (
	"fmt"
	"strings"
)

// CheckNotWhitespace fails when value is empty or only whitespace.
func CheckNotWhitespace(value, arg string) error {
	if strings.TrimSpace(value) == "" {
		return &ArgumentNullOrWhitespaceError{Arg: arg}
	}
	return nil
}

// CheckInRange fails when value lies outside the inclusive range [lo, hi].
func CheckInRange(value, lo, hi int, arg string) error {
	if value < lo || value > hi {
		return &ArgumentOutOfRangeError{Arg: arg, Value: value, Min: lo, Max: hi}
	}
	return nil
}

// CheckRangeInRange fails when [start, end] is reversed or either end lies
// outside [lo, hi]. A reversed range reports start against [lo, end].
func CheckRangeInRange(start, end, lo, hi int, arg string) error {
	if start > end {
		return &ArgumentOutOfRangeError{Arg: arg, Value: start, Min: lo, Max: end}
	}
	if err := CheckInRange(start, lo, hi, arg); err != nil {
		return err
	}
	return CheckInRange(end, lo, hi, arg)
}

func CheckNonNegative(value int, arg string) error {
	if value < 0 {
		return &ArgumentError{Arg: arg, Message: "expected a non-negative value"}
	}
	return nil
}

// CheckNotNil returns an InvalidOperationError with message when value is nil.
func CheckNotNil[T any](value *T, message string) (*T, error) {
	if value == nil {
		return nil, &InvalidOperationError{Message: message}
	}
	return value, nil
}

// CheckEqual fails when actual differs from expected. description should be
// a full sentence without the values.
func CheckEqual[T comparable](actual, expected T, description string) error {
	if actual != expected {
		return &InvalidOperationError{Message: fmt.Sprintf("expected %v to equal %v. %s", actual, expected, description)}
	}
	return nil
}

// NotImplementedForValue is the fallback of exhaustive switches over closed
// unions.
func NotImplementedForValue(value any) error {
	return &NotImplementedError{Message: fmt.Sprintf("value %T %v", value, value)}
}

// NotImplementedForKind reports a syntax kind a feature does not handle.
func NotImplementedForKind(kind fmt.Stringer) error {
	return &NotImplementedError{Message: fmt.Sprintf("feature for syntax kind %q", kind)}
}
