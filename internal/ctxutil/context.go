// Package ctxutil provides type-safe context value management.
// Uses private key types to prevent collisions.
package ctxutil

import (
	"context"
)

type contextKey string

const requestIDKey contextKey = "ctxutil.requestID"

// WithRequestID adds a request ID to the context.
// The ID is minted by the HTTP middleware and threaded through logging.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID retrieves the request ID from the context.
// Returns the request ID if found, empty string otherwise.
func GetRequestID(ctx context.Context) string {
	if v := ctx.Value(requestIDKey); v != nil {
		if requestID, ok := v.(string); ok && requestID != "" {
			return requestID
		}
	}
	return ""
}
