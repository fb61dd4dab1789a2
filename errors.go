package motion

import (
	"errors"
	"fmt"
)

// Error classes. Use errors.Is to test for them.
var (
	// ErrInvalidConfiguration reports malformed input rejected at creation:
	// bad spring parameters, mismatched value kinds, negative durations.
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrInvalidHandle reports an operation on an unknown, released or
	// terminal handle.
	ErrInvalidHandle = errors.New("invalid handle")
	// ErrCapacityExceeded reports that the registry or the layer cap is full.
	// Existing animations are unaffected.
	ErrCapacityExceeded = errors.New("engine capacity exceeded")
	// ErrUnsupportedProperty reports that the native facility cannot animate
	// a property. The engine never returns it to callers; it appears in
	// diagnostics when an animation falls back to the manual loop.
	ErrUnsupportedProperty = errors.New("unsupported property")
	// ErrUnknownProperty reports a read of a property the animation does not
	// animate.
	ErrUnknownProperty = errors.New("property not animated")
)

// Error is the structured error returned by Engine operations.
type Error struct {
	// Op is the engine operation that failed (e.g. "create", "pause").
	Op string
	// Handle is the handle involved, if any.
	Handle Handle
	// Property is the property involved, if any.
	Property string
	// Err is the underlying error; it wraps one of the Err* classes.
	Err error
}

func (e *Error) Error() string {
	switch {
	case e.Property != "" && e.Handle.Valid():
		return fmt.Sprintf("motion: %s %v property=%s: %v", e.Op, e.Handle, e.Property, e.Err)
	case e.Handle.Valid():
		return fmt.Sprintf("motion: %s %v: %v", e.Op, e.Handle, e.Err)
	case e.Property != "":
		return fmt.Sprintf("motion: %s property=%s: %v", e.Op, e.Property, e.Err)
	}
	return fmt.Sprintf("motion: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func configError(op string, err error) error {
	if errors.Is(err, ErrInvalidConfiguration) {
		return &Error{Op: op, Err: err}
	}
	return &Error{Op: op, Err: fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)}
}

func handleError(op string, h Handle) error {
	return &Error{Op: op, Handle: h, Err: ErrInvalidHandle}
}

// TickError records an entry that failed while being advanced. The entry is
// cancelled; other entries in the same tick are unaffected.
type TickError struct {
	// Handle is the entry that failed.
	Handle Handle
	// Value is the recovered panic value or the returned error.
	Value any
	// Timestamp is the tick timestamp at which the failure occurred.
	Timestamp float64
}

func (e *TickError) Error() string {
	return fmt.Sprintf("motion: tick %v at %v: %v", e.Handle, e.Timestamp, e.Value)
}
