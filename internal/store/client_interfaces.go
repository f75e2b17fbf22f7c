package store

import (
	"context"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/session_repository_mock.go -package=mock

// SessionRepository is a durable key/value store for the client session.
// Values are opaque strings; the caller decides their encoding.
type SessionRepository interface {
	// Get returns the value stored under key or [ErrSessionEntryNotFound].
	Get(ctx context.Context, key string) (string, error)

	// Set writes all entries atomically, replacing existing values.
	Set(ctx context.Context, entries map[string]string) error

	// Delete removes the given keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error
}
