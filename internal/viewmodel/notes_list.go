package viewmodel

import (
	"context"
	"slices"
	"sync"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/service"
	"github.com/MKhiriev/go-note-keeper/internal/validators"
	"github.com/MKhiriev/go-note-keeper/models"
)

const (
	DeletePrompt = "Are you sure you want to delete this note?"

	EmptyListMessage = "No notes yet. Create one to get started!"
	NoMatchesMessage = "No notes found"
)

// NotesList is the state of the notes list screen.
type NotesList struct {
	mu      sync.Mutex
	notes   []models.Note
	loaded  bool
	query   string
	pending string
	fetch   latest

	svc       service.NotesService
	errs      ErrorHandler
	validator validators.Validator
	logger    *logger.Logger
}

// NewNotesList returns an empty list. Nothing is fetched until Refresh.
// The list resets itself whenever errs reports a logout.
func NewNotesList(svc service.NotesService, errs ErrorHandler, validator validators.Validator, logger *logger.Logger) *NotesList {
	l := &NotesList{
		svc:       svc,
		errs:      errs,
		validator: validator,
		logger:    logger,
	}
	errs.OnLogout(l.Reset)
	return l
}

// Refresh fetches every note and replaces the local list wholesale.
// A call overtaken by a newer Refresh returns ErrSuperseded and changes nothing.
func (l *NotesList) Refresh(ctx context.Context) error {
	l.mu.Lock()
	fetchCtx, gen := l.fetch.next(ctx)
	l.mu.Unlock()

	notes, err := l.svc.ListNotes(fetchCtx)

	l.mu.Lock()
	if !l.fetch.done(gen) {
		l.mu.Unlock()
		l.logger.Debug().Str("func", "NotesList.Refresh").Uint64("generation", gen).Msg("discarding superseded refresh")
		return ErrSuperseded
	}
	if err == nil {
		l.notes = notes
		l.loaded = true
	}
	l.mu.Unlock()

	if err != nil {
		return l.fail(ctx, "Refresh", err)
	}
	return nil
}

// Notes returns a copy of the loaded list in server order.
func (l *NotesList) Notes() []models.Note {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.notes)
}

// Loaded reports whether at least one Refresh succeeded.
func (l *NotesList) Loaded() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loaded
}

// Filter returns the loaded notes whose title or content contains query,
// ignoring case. Order is preserved and an empty query returns every note.
func (l *NotesList) Filter(query string) []models.Note {
	l.mu.Lock()
	defer l.mu.Unlock()
	return filterNotes(l.notes, query)
}

// SetQuery stores the search query used by Visible.
func (l *NotesList) SetQuery(query string) {
	l.mu.Lock()
	l.query = query
	l.mu.Unlock()
}

func (l *NotesList) Query() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.query
}

// Visible returns the notes matching the current query.
func (l *NotesList) Visible() []models.Note {
	l.mu.Lock()
	defer l.mu.Unlock()
	return filterNotes(l.notes, l.query)
}

// EmptyMessage is the text shown when Visible returns nothing.
func (l *NotesList) EmptyMessage() string {
	if l.Query() != "" {
		return NoMatchesMessage
	}
	return EmptyListMessage
}

// Create validates the form, creates the note and refreshes the list.
// The new note only appears once the refresh has returned it.
func (l *NotesList) Create(ctx context.Context, title, content string) (models.Note, error) {
	if err := l.validator.Validate(ctx, validators.NoteForm{Title: title, Content: content}); err != nil {
		return models.Note{}, err
	}

	note, err := l.svc.CreateNote(ctx, models.NoteDraft{Title: title, Content: content})
	if err != nil {
		return models.Note{}, l.fail(ctx, "Create", err)
	}

	return note, l.Refresh(ctx)
}

// RequestDelete marks note id for deletion and returns the confirmation
// prompt. Nothing is sent to the server until ConfirmDelete.
func (l *NotesList) RequestDelete(id string) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !slices.ContainsFunc(l.notes, func(n models.Note) bool { return n.ID == id }) {
		return "", ErrNoteNotFound
	}

	l.pending = id
	return DeletePrompt, nil
}

// PendingDelete returns the id awaiting confirmation, if any.
func (l *NotesList) PendingDelete() (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pending, l.pending != ""
}

// ConfirmDelete deletes the note requested with RequestDelete and refreshes
// the list. Without a pending request it returns ErrNothingToConfirm and does
// not contact the server.
func (l *NotesList) ConfirmDelete(ctx context.Context) error {
	l.mu.Lock()
	id := l.pending
	l.pending = ""
	l.mu.Unlock()

	if id == "" {
		return ErrNothingToConfirm
	}

	if err := l.svc.DeleteNote(ctx, id); err != nil {
		return l.fail(ctx, "ConfirmDelete", err)
	}

	return l.Refresh(ctx)
}

// CancelDelete drops the pending deletion.
func (l *NotesList) CancelDelete() {
	l.mu.Lock()
	l.pending = ""
	l.mu.Unlock()
}

// Reset forgets everything and cancels a fetch in flight. It runs on every logout.
func (l *NotesList) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.fetch.stop()
	l.notes = nil
	l.loaded = false
	l.query = ""
	l.pending = ""
}

func (l *NotesList) fail(ctx context.Context, action string, err error) error {
	l.logger.Err(err).Str("func", "NotesList."+action).Msg("notes list action failed")
	l.errs.HandleError(ctx, err)
	return err
}

func filterNotes(notes []models.Note, query string) []models.Note {
	out := make([]models.Note, 0, len(notes))
	for _, n := range notes {
		if n.Matches(query) {
			out = append(out, n)
		}
	}
	return out
}
