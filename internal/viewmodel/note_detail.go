package viewmodel

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/service"
	"github.com/MKhiriev/go-note-keeper/internal/validators"
	"github.com/MKhiriev/go-note-keeper/models"
)

const EmptyHistoryMessage = "No version history available"

// Mode is the edit mode of a note.
type Mode int

const (
	ModeViewing Mode = iota
	ModeEditing
)

func (m Mode) String() string {
	if m == ModeEditing {
		return "editing"
	}
	return "viewing"
}

// NoteDetail is the state of the note screen.
type NoteDetail struct {
	mu     sync.Mutex
	noteID string
	note   models.Note
	loaded bool
	mode   Mode
	draft  models.NoteDraft

	historyOpen    bool
	versions       []models.Version
	preview        *models.Version
	pendingRestore int

	fetch latest

	svc       service.NotesService
	errs      ErrorHandler
	validator validators.Validator
	logger    *logger.Logger
}

func NewNoteDetail(svc service.NotesService, errs ErrorHandler, validator validators.Validator, logger *logger.Logger) *NoteDetail {
	d := &NoteDetail{
		svc:       svc,
		errs:      errs,
		validator: validator,
		logger:    logger,
	}
	errs.OnLogout(d.Reset)
	return d
}

// Load fetches the note collection and selects noteID from it.
// Loading another note resets edit mode and the history view.
func (d *NoteDetail) Load(ctx context.Context, noteID string) error {
	d.mu.Lock()
	fetchCtx, gen := d.fetch.next(ctx)
	d.mu.Unlock()

	notes, err := d.svc.ListNotes(fetchCtx)

	d.mu.Lock()
	if !d.fetch.done(gen) {
		d.mu.Unlock()
		d.logger.Debug().Str("func", "NoteDetail.Load").Str("note_id", noteID).Msg("discarding superseded load")
		return ErrSuperseded
	}
	if err != nil {
		d.mu.Unlock()
		return d.fail(ctx, "Load", err)
	}

	if noteID != d.noteID {
		d.resetLocked()
		d.noteID = noteID
	}

	idx := slices.IndexFunc(notes, func(n models.Note) bool { return n.ID == noteID })
	if idx < 0 {
		d.note = models.Note{}
		d.loaded = false
		d.mode = ModeViewing
		d.mu.Unlock()
		d.logger.Warn().Str("func", "NoteDetail.Load").Str("note_id", noteID).Msg("note not found")
		return ErrNoteNotFound
	}

	d.note = notes[idx]
	d.loaded = true
	d.mu.Unlock()

	return nil
}

// Note returns the loaded note.
func (d *NoteDetail) Note() (models.Note, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.note, d.loaded
}

func (d *NoteDetail) NoteID() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.noteID
}

func (d *NoteDetail) Mode() Mode {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mode
}

// Draft returns the edited fields. Outside edit mode it mirrors the note.
func (d *NoteDetail) Draft() models.NoteDraft {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.mode != ModeEditing {
		return models.NoteDraft{Title: d.note.Title, Content: d.note.Content}
	}
	return d.draft
}

// StartEdit enters edit mode with the draft seeded from the loaded note.
func (d *NoteDetail) StartEdit() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.loaded {
		return ErrNoNoteLoaded
	}
	if d.mode == ModeEditing {
		return nil
	}

	d.mode = ModeEditing
	d.draft = models.NoteDraft{Title: d.note.Title, Content: d.note.Content}
	return nil
}

func (d *NoteDetail) SetDraft(title, content string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.mode != ModeEditing {
		return ErrNotEditing
	}
	d.draft = models.NoteDraft{Title: title, Content: content}
	return nil
}

// CancelEdit leaves edit mode and discards the draft.
func (d *NoteDetail) CancelEdit() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.mode = ModeViewing
	d.draft = models.NoteDraft{}
}

// Save sends the draft and reloads the note. On failure the view stays in
// edit mode with the draft untouched.
func (d *NoteDetail) Save(ctx context.Context) error {
	d.mu.Lock()
	if d.mode != ModeEditing {
		d.mu.Unlock()
		return ErrNotEditing
	}
	id, draft := d.noteID, d.draft
	d.mu.Unlock()

	if err := d.validator.Validate(ctx, validators.NoteForm{Title: draft.Title, Content: draft.Content}); err != nil {
		return err
	}

	if _, err := d.svc.UpdateNote(ctx, id, draft); err != nil {
		return d.fail(ctx, "Save", err)
	}

	d.mu.Lock()
	if d.noteID == id {
		d.mode = ModeViewing
		d.draft = models.NoteDraft{}
	}
	d.mu.Unlock()

	return d.Load(ctx, id)
}

// ListVersions fetches the history of the loaded note and opens the history
// view. Edit mode is left as it is.
func (d *NoteDetail) ListVersions(ctx context.Context) error {
	d.mu.Lock()
	id, loaded := d.noteID, d.loaded
	d.mu.Unlock()

	if !loaded {
		return ErrNoNoteLoaded
	}

	versions, err := d.svc.ListVersions(ctx, id)
	if err != nil {
		return d.fail(ctx, "ListVersions", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.noteID != id {
		return ErrSuperseded
	}

	d.versions = versions
	d.historyOpen = true
	d.preview = nil
	d.pendingRestore = 0
	return nil
}

func (d *NoteDetail) HistoryOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.historyOpen
}

// Versions returns a copy of the fetched history.
func (d *NoteDetail) Versions() []models.Version {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.versions)
}

func (d *NoteDetail) CloseHistory() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closeHistoryLocked()
}

// PreviewVersion fetches one snapshot and keeps it for display.
func (d *NoteDetail) PreviewVersion(ctx context.Context, versionNumber int) (models.Version, error) {
	d.mu.Lock()
	id, open := d.noteID, d.historyOpen
	d.mu.Unlock()

	if !open {
		return models.Version{}, ErrVersionNotFound
	}

	version, err := d.svc.GetVersion(ctx, id, versionNumber)
	if err != nil {
		return models.Version{}, d.fail(ctx, "PreviewVersion", err)
	}

	d.mu.Lock()
	if d.noteID == id && d.historyOpen {
		d.preview = &version
	}
	d.mu.Unlock()

	return version, nil
}

// Preview returns the snapshot fetched by PreviewVersion.
func (d *NoteDetail) Preview() (models.Version, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.preview == nil {
		return models.Version{}, false
	}
	return *d.preview, true
}

// RequestRestore marks versionNumber for restore and returns the
// confirmation prompt. The version must be in the fetched history.
func (d *NoteDetail) RequestRestore(versionNumber int) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	known := slices.ContainsFunc(d.versions, func(v models.Version) bool { return v.VersionNumber == versionNumber })
	if !d.historyOpen || !known {
		return "", ErrVersionNotFound
	}

	d.pendingRestore = versionNumber
	return fmt.Sprintf("Restore to version %d?", versionNumber), nil
}

func (d *NoteDetail) PendingRestore() (int, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pendingRestore, d.pendingRestore != 0
}

// ConfirmRestore restores the version requested with RequestRestore, reloads
// the note and closes the history view. Edit mode is left because the draft
// no longer matches the note.
func (d *NoteDetail) ConfirmRestore(ctx context.Context) error {
	d.mu.Lock()
	id, n := d.noteID, d.pendingRestore
	d.pendingRestore = 0
	d.mu.Unlock()

	if n == 0 {
		return ErrNothingToConfirm
	}

	if _, err := d.svc.RestoreVersion(ctx, id, n); err != nil {
		return d.fail(ctx, "ConfirmRestore", err)
	}

	d.mu.Lock()
	if d.noteID == id {
		d.closeHistoryLocked()
		d.mode = ModeViewing
		d.draft = models.NoteDraft{}
	}
	d.mu.Unlock()

	return d.Load(ctx, id)
}

func (d *NoteDetail) CancelRestore() {
	d.mu.Lock()
	d.pendingRestore = 0
	d.mu.Unlock()
}

// Reset forgets the note and cancels a load in flight.
func (d *NoteDetail) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.fetch.stop()
	d.resetLocked()
	d.noteID = ""
}

func (d *NoteDetail) resetLocked() {
	d.note = models.Note{}
	d.loaded = false
	d.mode = ModeViewing
	d.draft = models.NoteDraft{}
	d.closeHistoryLocked()
}

func (d *NoteDetail) closeHistoryLocked() {
	d.historyOpen = false
	d.versions = nil
	d.preview = nil
	d.pendingRestore = 0
}

func (d *NoteDetail) fail(ctx context.Context, action string, err error) error {
	d.logger.Err(err).Str("func", "NoteDetail."+action).Msg("note action failed")
	d.errs.HandleError(ctx, err)
	return err
}
