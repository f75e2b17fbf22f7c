package models

// Version is an immutable snapshot of a note's content produced by the
// backend on every update. VersionNumber grows monotonically per note and
// is the key used to restore a snapshot.
type Version struct {
	VersionID       string    `json:"version_id"`
	NoteID          string    `json:"note_id"`
	VersionNumber   int       `json:"version_number"`
	ContentSnapshot string    `json:"content_snapshot"`
	EditorID        string    `json:"editor_id,omitempty"`
	Timestamp       Timestamp `json:"timestamp"`
}

// VersionList is the body of GET /notes/{id}/versions.
type VersionList struct {
	NoteID   string    `json:"note_id"`
	Versions []Version `json:"versions"`
}

// VersionDetails is the body of GET /notes/{id}/versions/{n}.
type VersionDetails struct {
	NoteID        string  `json:"note_id"`
	VersionNumber int     `json:"version_number"`
	Version       Version `json:"version"`
}

// RestoreRequest is the body of POST /notes/{id}/versions/restore.
type RestoreRequest struct {
	VersionNumber int `json:"version_number"`
}

// RestoreResponse is the enveloped form of a restore result.
// Some backends return the restored note bare, others wrap it together with
// a human-readable message.
type RestoreResponse struct {
	Message string `json:"message,omitempty"`
	Note    *Note  `json:"note,omitempty"`
}
