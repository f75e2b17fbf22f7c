package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-note-keeper/internal/adapter"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/mock"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestNotesSvc(t *testing.T) (NotesService, *mock.MockServerAdapter) {
	t.Helper()
	serverAdapter := mock.NewMockServerAdapter(gomock.NewController(t))
	return NewNotesService(serverAdapter, logger.Nop()), serverAdapter
}

func TestNotesService_PassesThrough(t *testing.T) {
	svc, serverAdapter := newTestNotesSvc(t)
	ctx := context.Background()

	note := models.Note{ID: "n-1", Title: "T", Content: "C"}
	draft := models.NoteDraft{Title: "T", Content: "C"}
	versions := []models.Version{{VersionNumber: 1, ContentSnapshot: "old"}}

	serverAdapter.EXPECT().ListNotes(ctx).Return([]models.Note{note}, nil)
	serverAdapter.EXPECT().CreateNote(ctx, draft).Return(note, nil)
	serverAdapter.EXPECT().UpdateNote(ctx, "n-1", draft).Return(note, nil)
	serverAdapter.EXPECT().DeleteNote(ctx, "n-1").Return(nil)
	serverAdapter.EXPECT().ListVersions(ctx, "n-1").Return(versions, nil)
	serverAdapter.EXPECT().GetVersion(ctx, "n-1", 1).Return(versions[0], nil)
	serverAdapter.EXPECT().RestoreVersion(ctx, "n-1", 1).Return(note, nil)

	notes, err := svc.ListNotes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Note{note}, notes)

	created, err := svc.CreateNote(ctx, draft)
	require.NoError(t, err)
	assert.Equal(t, note, created)

	updated, err := svc.UpdateNote(ctx, "n-1", draft)
	require.NoError(t, err)
	assert.Equal(t, note, updated)

	require.NoError(t, svc.DeleteNote(ctx, "n-1"))

	gotVersions, err := svc.ListVersions(ctx, "n-1")
	require.NoError(t, err)
	assert.Equal(t, versions, gotVersions)

	version, err := svc.GetVersion(ctx, "n-1", 1)
	require.NoError(t, err)
	assert.Equal(t, "old", version.ContentSnapshot)

	restored, err := svc.RestoreVersion(ctx, "n-1", 1)
	require.NoError(t, err)
	assert.Equal(t, note, restored)
}

func TestNotesService_ErrorsKeepKind(t *testing.T) {
	svc, serverAdapter := newTestNotesSvc(t)
	ctx := context.Background()

	notFound := &adapter.RequestError{Op: "delete note", Kind: adapter.KindNotFound, StatusCode: 404, Message: "Note not found"}
	serverAdapter.EXPECT().DeleteNote(ctx, "missing").Return(notFound)

	err := svc.DeleteNote(ctx, "missing")

	require.Error(t, err)
	assert.ErrorIs(t, err, adapter.ErrNotFound)
	assert.Equal(t, adapter.KindNotFound, adapter.KindOf(err))
	assert.Contains(t, err.Error(), "delete note")
}

func TestNotesService_ListNotes_ErrorReturnsNil(t *testing.T) {
	svc, serverAdapter := newTestNotesSvc(t)
	ctx := context.Background()

	serverAdapter.EXPECT().ListNotes(ctx).Return(nil, &adapter.RequestError{Op: "list notes", Kind: adapter.KindUnauthorized, StatusCode: 401})

	notes, err := svc.ListNotes(ctx)
	assert.Nil(t, notes)
	assert.True(t, adapter.IsUnauthorized(err))
}
