package frp

import (
	"errors"
	"fmt"
)

// ErrInvalidTimestamp is returned when a timeline operation is given a
// spliced-out timestamp, or when [Timeline.SpliceOut] is given an end
// timestamp that does not lie after the start timestamp.
var ErrInvalidTimestamp = errors.New("frp: invalid timestamp")

// PropagatedFailure wraps a user error stored in a [Behavior]'s Fail result.
// [Read] panics with a *PropagatedFailure when the behavior it reads holds
// one; [ReadResult] instead returns the unwrapped cause in Result.Err,
// without panicking. It implements [Unwrap] so
// that [errors.Is] and [errors.As] see through to the original cause.
type PropagatedFailure struct {
	// Cause is the error the behavior was written with.
	Cause error
}

// Error implements the error interface.
func (e *PropagatedFailure) Error() string {
	if e.Cause == nil {
		return "frp: behavior holds a failure"
	}
	return fmt.Sprintf("frp: propagated failure: %s", e.Cause)
}

// Unwrap returns the underlying cause for use with [errors.Is] and [errors.As].
func (e *PropagatedFailure) Unwrap() error {
	return e.Cause
}

// ListenerPanic wraps a value recovered from a panicking listener, cleanup,
// or reader body. It is delivered to the runtime's uncaught-exception sink;
// propagation continues with the next listener.
type ListenerPanic struct {
	// Value is the recovered panic value, exactly as passed to panic().
	Value any
	// Category names the kind of callback that panicked: "listener",
	// "cleanup", or "reader".
	Category string
}

// Error implements the error interface.
func (e *ListenerPanic) Error() string {
	return fmt.Sprintf("frp: %s panicked: %v", e.Category, e.Value)
}

// Unwrap returns the underlying error if the panic value is itself an
// error, enabling [errors.Is]/[errors.As] through the panic boundary. If
// the panic value is not an error (e.g. a string), returns nil.
func (e *ListenerPanic) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// WrapError wraps an error with a message, preserving the chain so that
// errors.Is(result, cause) == true.
func WrapError(message string, cause error) error {
	return fmt.Errorf("%s: %w", message, cause)
}
