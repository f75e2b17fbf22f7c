package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-note-keeper/internal/adapter"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/models"
)

type notesService struct {
	adapter adapter.ServerAdapter
	logger  *logger.Logger
}

// NewNotesService returns a [NotesService] calling the server through serverAdapter.
func NewNotesService(serverAdapter adapter.ServerAdapter, logger *logger.Logger) NotesService {
	return &notesService{adapter: serverAdapter, logger: logger}
}

func (n *notesService) ListNotes(ctx context.Context) ([]models.Note, error) {
	notes, err := n.adapter.ListNotes(ctx)
	if err != nil {
		return nil, n.fail(err, "list notes", "")
	}
	return notes, nil
}

func (n *notesService) CreateNote(ctx context.Context, draft models.NoteDraft) (models.Note, error) {
	note, err := n.adapter.CreateNote(ctx, draft)
	if err != nil {
		return models.Note{}, n.fail(err, "create note", "")
	}

	n.logger.Debug().Str("func", "notesService.CreateNote").Str("note_id", note.ID).Msg("note created")
	return note, nil
}

func (n *notesService) UpdateNote(ctx context.Context, id string, draft models.NoteDraft) (models.Note, error) {
	note, err := n.adapter.UpdateNote(ctx, id, draft)
	if err != nil {
		return models.Note{}, n.fail(err, "update note", id)
	}

	n.logger.Debug().Str("func", "notesService.UpdateNote").Str("note_id", id).Msg("note updated")
	return note, nil
}

func (n *notesService) DeleteNote(ctx context.Context, id string) error {
	if err := n.adapter.DeleteNote(ctx, id); err != nil {
		return n.fail(err, "delete note", id)
	}

	n.logger.Debug().Str("func", "notesService.DeleteNote").Str("note_id", id).Msg("note deleted")
	return nil
}

func (n *notesService) ListVersions(ctx context.Context, noteID string) ([]models.Version, error) {
	versions, err := n.adapter.ListVersions(ctx, noteID)
	if err != nil {
		return nil, n.fail(err, "list versions", noteID)
	}
	return versions, nil
}

func (n *notesService) GetVersion(ctx context.Context, noteID string, versionNumber int) (models.Version, error) {
	version, err := n.adapter.GetVersion(ctx, noteID, versionNumber)
	if err != nil {
		return models.Version{}, n.fail(err, "get version", noteID)
	}
	return version, nil
}

func (n *notesService) RestoreVersion(ctx context.Context, noteID string, versionNumber int) (models.Note, error) {
	note, err := n.adapter.RestoreVersion(ctx, noteID, versionNumber)
	if err != nil {
		return models.Note{}, n.fail(err, "restore version", noteID)
	}

	n.logger.Info().
		Str("func", "notesService.RestoreVersion").
		Str("note_id", noteID).
		Int("version_number", versionNumber).
		Msg("version restored")
	return note, nil
}

func (n *notesService) fail(err error, action, noteID string) error {
	event := n.logger.Err(err).Str("action", action).Stringer("kind", adapter.KindOf(err))
	if noteID != "" {
		event = event.Str("note_id", noteID)
	}
	event.Msg("notes request failed")

	return fmt.Errorf("%s: %w", action, err)
}
