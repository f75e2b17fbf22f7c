// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport layer for talking to the notes API.
//
// The primary abstraction is [ServerAdapter], which decouples the service
// layer from HTTP. Every failed call returns a *[RequestError] whose Kind is
// derived from the HTTP status (or from the transport failure), so callers
// can branch with [errors.Is] on the sentinels in errors.go:
// [ErrUnauthorized], [ErrNotFound], [ErrValidation], [ErrServerError] and
// [ErrNetwork].
//
// The adapter is a pure pass-through: it never retries and applies no timeout
// beyond the one configured on the transport.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-note-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines one operation per notes API endpoint.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to all subsequent
	// authenticated requests. An empty token removes it.
	SetToken(token string)

	// Token returns the bearer token currently held by the adapter.
	Token() string

	// Login exchanges credentials for an access token. It does not install
	// the token; the caller decides when the session becomes active.
	Login(ctx context.Context, email, password string) (models.Token, error)

	// Register creates an account. It does not log the user in.
	Register(ctx context.Context, creds models.Credentials) (models.Registered, error)

	// ListNotes returns every note of the signed-in user in server order.
	ListNotes(ctx context.Context) ([]models.Note, error)

	// CreateNote stores a new note and returns it as created by the server.
	CreateNote(ctx context.Context, draft models.NoteDraft) (models.Note, error)

	// UpdateNote replaces the title and content of note id.
	UpdateNote(ctx context.Context, id string, draft models.NoteDraft) (models.Note, error)

	// DeleteNote removes note id together with its history.
	DeleteNote(ctx context.Context, id string) error

	// ListVersions returns the version history of a note ordered by version number.
	ListVersions(ctx context.Context, noteID string) ([]models.Version, error)

	// GetVersion returns a single version snapshot.
	GetVersion(ctx context.Context, noteID string, versionNumber int) (models.Version, error)

	// RestoreVersion sets the note content back to the snapshot of
	// versionNumber and returns the restored note.
	RestoreVersion(ctx context.Context, noteID string, versionNumber int) (models.Note, error)

	// Health reports the backend health. It does not require a token.
	Health(ctx context.Context) (models.Health, error)
}
