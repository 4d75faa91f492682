// Package errors provides domain-specific error types and sentinel errors
// for improved error handling across the application.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common scenarios.
// Use errors.Is() to check these errors in your code.
var (
	// ErrNotFound indicates a requested resource was not found.
	ErrNotFound = errors.New("resource not found")

	// ErrNoSnapshot indicates no course snapshot has ever been fetched
	// for the requested (year, term, campus) key.
	ErrNoSnapshot = errors.New("no snapshot available")

	// ErrInvalidInput indicates a caller provided invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrRateLimitExceeded indicates rate limit has been exceeded.
	ErrRateLimitExceeded = errors.New("rate limit exceeded")

	// ErrTimeout indicates an operation timed out.
	ErrTimeout = errors.New("operation timed out")
)

// UpstreamError represents a failed fetch from the course API with context.
type UpstreamError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("upstream error (url=%s, status=%d): %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("upstream error (url=%s): %v", e.URL, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// NewUpstreamError creates a new upstream fetch error.
func NewUpstreamError(url string, statusCode int, err error) *UpstreamError {
	return &UpstreamError{
		URL:        url,
		StatusCode: statusCode,
		Err:        err,
	}
}
