package apitest

import (
	"net/http"
	"slices"
	"strconv"

	"github.com/MKhiriev/go-note-keeper/internal/app"
	"github.com/MKhiriev/go-note-keeper/internal/utils"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/go-chi/chi/v5"
)

func (s *Server) listNotes(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	s.mu.Lock()
	notes := make([]models.Note, 0)
	for _, n := range s.notes {
		if n.OwnerID == userID {
			notes = append(notes, *n)
		}
	}
	s.mu.Unlock()

	_, _ = utils.WriteJSON(w, notes, http.StatusOK)
}

func (s *Server) createNote(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var draft models.NoteDraft
	if !decode(w, r, &draft) {
		return
	}
	if missing := missingFields(map[string]string{"title": draft.Title, "content": draft.Content}); len(missing) > 0 {
		writeValidation(w, missing)
		return
	}

	s.mu.Lock()
	now := models.NewTimestamp(s.now())
	note := &models.Note{
		ID:        s.ids.Generate(),
		Title:     draft.Title,
		Content:   draft.Content,
		OwnerID:   userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.notes = append(s.notes, note)
	created := *note
	s.mu.Unlock()

	_, _ = utils.WriteJSON(w, created, http.StatusCreated)
}

func (s *Server) updateNote(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var draft models.NoteDraft
	if !decode(w, r, &draft) {
		return
	}
	if missing := missingFields(map[string]string{"title": draft.Title, "content": draft.Content}); len(missing) > 0 {
		writeValidation(w, missing)
		return
	}

	s.mu.Lock()
	note := s.findNoteLocked(chi.URLParam(r, "noteID"), userID)
	if note == nil {
		s.mu.Unlock()
		utils.WriteDetail(w, app.MsgNoteNotFound, http.StatusNotFound)
		return
	}

	s.snapshotLocked(note, userID)
	note.Title = draft.Title
	note.Content = draft.Content
	note.UpdatedAt = models.NewTimestamp(s.now())
	updated := *note
	s.mu.Unlock()

	_, _ = utils.WriteJSON(w, updated, http.StatusOK)
}

func (s *Server) deleteNote(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())
	id := chi.URLParam(r, "noteID")

	s.mu.Lock()
	if s.findNoteLocked(id, userID) == nil {
		s.mu.Unlock()
		utils.WriteDetail(w, app.MsgNoteNotFound, http.StatusNotFound)
		return
	}
	s.notes = slices.DeleteFunc(s.notes, func(n *models.Note) bool { return n.ID == id })
	delete(s.versions, id)
	s.mu.Unlock()

	_, _ = utils.WriteJSON(w, map[string]string{"message": app.MsgNoteDeleted}, http.StatusOK)
}

func (s *Server) listVersions(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())
	id := chi.URLParam(r, "noteID")

	s.mu.Lock()
	if s.findNoteLocked(id, userID) == nil {
		s.mu.Unlock()
		utils.WriteDetail(w, app.MsgNoteNotFound, http.StatusNotFound)
		return
	}
	versions := append(make([]models.Version, 0), s.versions[id]...)
	s.mu.Unlock()

	_, _ = utils.WriteJSON(w, models.VersionList{NoteID: id, Versions: versions}, http.StatusOK)
}

func (s *Server) getVersion(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())
	id := chi.URLParam(r, "noteID")

	n, err := strconv.Atoi(chi.URLParam(r, "versionNumber"))
	if err != nil {
		writeValidation(w, []string{"version_number"})
		return
	}

	s.mu.Lock()
	if s.findNoteLocked(id, userID) == nil {
		s.mu.Unlock()
		utils.WriteDetail(w, app.MsgNoteNotFound, http.StatusNotFound)
		return
	}
	version, ok := s.findVersionLocked(id, n)
	s.mu.Unlock()

	if !ok {
		utils.WriteDetail(w, app.MsgVersionNotFound, http.StatusNotFound)
		return
	}

	_, _ = utils.WriteJSON(w, models.VersionDetails{NoteID: id, VersionNumber: n, Version: version}, http.StatusOK)
}

func (s *Server) restoreVersion(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())
	id := chi.URLParam(r, "noteID")

	var req models.RestoreRequest
	if !decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	note := s.findNoteLocked(id, userID)
	if note == nil {
		s.mu.Unlock()
		utils.WriteDetail(w, app.MsgNoteNotFound, http.StatusNotFound)
		return
	}
	version, ok := s.findVersionLocked(id, req.VersionNumber)
	if !ok {
		s.mu.Unlock()
		utils.WriteDetail(w, app.MsgVersionNotFound, http.StatusNotFound)
		return
	}

	s.snapshotLocked(note, userID)
	note.Content = version.ContentSnapshot
	restored := *note
	s.mu.Unlock()

	_, _ = utils.WriteJSON(w, models.RestoreResponse{
		Message: app.MsgNoteRestored + strconv.Itoa(req.VersionNumber),
		Note:    &restored,
	}, http.StatusOK)
}

func (s *Server) findNoteLocked(id, ownerID string) *models.Note {
	for _, n := range s.notes {
		if n.ID == id && n.OwnerID == ownerID {
			return n
		}
	}
	return nil
}

func (s *Server) findVersionLocked(noteID string, n int) (models.Version, bool) {
	for _, v := range s.versions[noteID] {
		if v.VersionNumber == n {
			return v, true
		}
	}
	return models.Version{}, false
}

// snapshotLocked appends the current content of note as the next version.
func (s *Server) snapshotLocked(note *models.Note, editorID string) {
	history := s.versions[note.ID]
	next := 1
	if len(history) > 0 {
		next = history[len(history)-1].VersionNumber + 1
	}

	s.versions[note.ID] = append(history, models.Version{
		VersionID:       s.ids.Generate(),
		NoteID:          note.ID,
		VersionNumber:   next,
		ContentSnapshot: note.Content,
		EditorID:        editorID,
		Timestamp:       models.NewTimestamp(s.now()),
	})
}
