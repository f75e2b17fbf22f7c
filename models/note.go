package models

import "strings"

// Note is a user-authored document as returned by the notes API.
// The backend is the only source of truth: a Note held by the client is
// always a transient snapshot of the last fetch.
type Note struct {
	// ID is the server-assigned opaque identifier.
	ID string `json:"id"`

	// Title is the note headline shown in lists.
	Title string `json:"title"`

	// Content is the note body.
	Content string `json:"content"`

	// OwnerID is the identifier of the user owning the note.
	// The client never relies on it; it is kept for display and logging.
	OwnerID string `json:"owner_id,omitempty"`

	// CreatedAt is the creation time assigned by the backend.
	CreatedAt Timestamp `json:"created_at"`

	// UpdatedAt is the time of the last accepted update.
	UpdatedAt Timestamp `json:"updated_at"`
}

// Matches reports whether query is a case-insensitive substring of the
// note title or of its content. An empty query matches every note.
func (n Note) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}

	return strings.Contains(strings.ToLower(n.Title), q) ||
		strings.Contains(strings.ToLower(n.Content), q)
}

// NoteDraft carries the editable fields of a note for create and update calls.
type NoteDraft struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}
