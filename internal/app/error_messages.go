// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the message strings the notes API puts into response
// bodies.
//
// The client shows these to the user verbatim, and the in-process test API
// answers with them, so both sides agree on wording.
package app

const (
	// MsgInvalidCredentials is returned by login when the email/password
	// combination does not match a user.
	MsgInvalidCredentials = "Invalid email or password"

	// MsgEmailTaken is returned by register when the email is already in use.
	MsgEmailTaken = "Email already registered"

	// MsgNotAuthenticated is returned when a protected route is called
	// without a bearer token.
	MsgNotAuthenticated = "Not authenticated"

	// MsgBadToken is returned when the bearer token is expired or cannot be
	// verified.
	MsgBadToken = "Could not validate credentials"

	// MsgFieldRequired is the per-field message of a validation failure.
	MsgFieldRequired = "Field required"

	MsgNoteNotFound    = "Note not found"
	MsgVersionNotFound = "Version not found"
	MsgNoteDeleted     = "Note deleted successfully"

	// MsgNoteRestored prefixes the version number in a restore response.
	MsgNoteRestored = "Note restored to version "
)

// Health report values.
const (
	StatusHealthy      = "healthy"
	StatusUnhealthy    = "unhealthy"
	MsgDatabaseOK      = "Database connection successful"
	MsgDatabaseFailure = "Database connection failed"
)
