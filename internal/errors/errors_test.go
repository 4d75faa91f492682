package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestUpstreamErrorMessage(t *testing.T) {
	t.Parallel()

	err := NewUpstreamError("https://example.edu/api/courses.json", 503, errors.New("boom"))
	want := "upstream error (url=https://example.edu/api/courses.json, status=503): boom"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	noStatus := NewUpstreamError("https://example.edu/api/courses.json", 0, errors.New("timeout"))
	if got := noStatus.Error(); got != "upstream error (url=https://example.edu/api/courses.json): timeout" {
		t.Errorf("Error() without status = %q", got)
	}
}

func TestUpstreamErrorUnwrap(t *testing.T) {
	t.Parallel()

	cause := ErrTimeout
	err := NewUpstreamError("u", 0, fmt.Errorf("fetch: %w", cause))
	if !errors.Is(err, ErrTimeout) {
		t.Error("errors.Is should find the wrapped sentinel")
	}

	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Error("errors.As should find *UpstreamError")
	}
}

func TestWrapper(t *testing.T) {
	t.Parallel()

	w := NewWrapper("course", "get_courses")

	if w.Wrap(nil, "ignored") != nil {
		t.Error("Wrap(nil) should return nil")
	}

	err := w.Wrapf(ErrNoSnapshot, "no data for %s", "2025_1_NB")
	if !errors.Is(err, ErrNoSnapshot) {
		t.Error("wrapped error should unwrap to sentinel")
	}
	if got := GetUserMessage(err); got != "no data for 2025_1_NB" {
		t.Errorf("GetUserMessage() = %q", got)
	}
}

func TestGetUserMessagePlainError(t *testing.T) {
	t.Parallel()

	if got := GetUserMessage(errors.New("plain")); got != "plain" {
		t.Errorf("GetUserMessage(plain) = %q", got)
	}
	if got := GetUserMessage(nil); got != "" {
		t.Errorf("GetUserMessage(nil) = %q", got)
	}
}
