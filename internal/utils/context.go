// Package utils provides general-purpose helpers shared by the client
// packages and the test API: context keys, JSON responses, the HTTP client
// wrapper, JWT helpers, and UUID generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
func (c contextKey) String() string {
	return string(c)
}

// RequestIDCtxKey is the key under which a request identifier travels in a
// context. The adapter sends it as the X-Request-ID header.
var RequestIDCtxKey = contextKey("requestID")

// UserIDCtxKey is the key used by the test API to pass the authenticated
// user identifier from its auth middleware to handlers.
var UserIDCtxKey = contextKey("userID")

// WithRequestID returns a copy of ctx carrying requestID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDCtxKey, requestID)
}

// GetRequestIDFromContext returns the request identifier stored in ctx.
// ok is false when none is set or the stored value is empty.
func GetRequestIDFromContext(ctx context.Context) (string, bool) {
	requestID, ok := ctx.Value(RequestIDCtxKey).(string)
	return requestID, ok && requestID != ""
}

// GetUserIDFromContext retrieves the user identifier from the context.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(string)
	return userID, ok && userID != ""
}
