// Package errors provides error wrapping utilities for consistent error handling.
package errors

import (
	"fmt"
)

// Wrapper provides context-aware error wrapping for a module/operation pair.
type Wrapper struct {
	operation string
	module    string
}

// NewWrapper creates a new error wrapper with module and operation context.
func NewWrapper(module, operation string) *Wrapper {
	return &Wrapper{
		module:    module,
		operation: operation,
	}
}

// Wrap wraps an error with operation context.
// Returns nil if err is nil.
func (w *Wrapper) Wrap(err error, userMessage string) error {
	if err == nil {
		return nil
	}
	return &WrappedError{
		Operation:   w.operation,
		Module:      w.module,
		Cause:       err,
		UserMessage: userMessage,
	}
}

// Wrapf wraps an error with a formatted message.
func (w *Wrapper) Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return &WrappedError{
		Operation:   w.operation,
		Module:      w.module,
		Cause:       err,
		UserMessage: fmt.Sprintf(format, args...),
	}
}

// WrappedError contains both internal error details and a user-facing message.
type WrappedError struct {
	Operation   string // Operation being performed (e.g., "get_courses", "room_schedule")
	Module      string // Module name (e.g., "course", "rooms", "salary")
	Cause       error  // Underlying error
	UserMessage string // User-friendly message
}

func (e *WrappedError) Error() string {
	return fmt.Sprintf("[%s:%s] %s: %v", e.Module, e.Operation, e.UserMessage, e.Cause)
}

func (e *WrappedError) Unwrap() error {
	return e.Cause
}

// GetUserMessage returns the user-friendly message from a WrappedError.
// Returns the error string if not a WrappedError.
func GetUserMessage(err error) string {
	if err == nil {
		return ""
	}
	if wrapped, ok := err.(*WrappedError); ok {
		return wrapped.UserMessage
	}
	return err.Error()
}
