package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/models"
)

const (
	sessionTokenKey = "token"
	sessionUserKey  = "user"
)

type sessionStore struct {
	repo   store.SessionRepository
	logger *logger.Logger
}

// NewSessionStore returns a [SessionStore] persisting the session in repo
// under the keys "token" and "user".
func NewSessionStore(repo store.SessionRepository, logger *logger.Logger) SessionStore {
	return &sessionStore{repo: repo, logger: logger}
}

func (s *sessionStore) Load(ctx context.Context) (models.Session, error) {
	token, tokenErr := s.repo.Get(ctx, sessionTokenKey)
	rawUser, userErr := s.repo.Get(ctx, sessionUserKey)

	for _, err := range []error{tokenErr, userErr} {
		if err != nil && !errors.Is(err, store.ErrSessionEntryNotFound) {
			return models.Session{}, fmt.Errorf("load session: %w", err)
		}
	}

	tokenFound, userFound := tokenErr == nil, userErr == nil
	if !tokenFound && !userFound {
		return models.Session{}, ErrNoSession
	}

	session := models.Session{Token: token}
	if userFound {
		if err := json.Unmarshal([]byte(rawUser), &session.User); err != nil {
			s.logger.Warn().Err(err).Str("func", "sessionStore.Load").Msg("stored user is not valid JSON")
		}
	}

	if !session.Valid() {
		s.logger.Warn().
			Str("func", "sessionStore.Load").
			Bool("token_found", tokenFound).
			Bool("user_found", userFound).
			Msg("discarding incomplete session")
		if err := s.Clear(ctx); err != nil {
			s.logger.Err(err).Str("func", "sessionStore.Load").Msg("failed to clear incomplete session")
		}
		return models.Session{}, ErrNoSession
	}

	return session, nil
}

func (s *sessionStore) Save(ctx context.Context, session models.Session) error {
	if !session.Valid() {
		return fmt.Errorf("%w: token and user are required", ErrSavingSession)
	}

	rawUser, err := json.Marshal(session.User)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSavingSession, err)
	}

	err = s.repo.Set(ctx, map[string]string{
		sessionTokenKey: session.Token,
		sessionUserKey:  string(rawUser),
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSavingSession, err)
	}

	return nil
}

func (s *sessionStore) Clear(ctx context.Context) error {
	if err := s.repo.Delete(ctx, sessionTokenKey, sessionUserKey); err != nil {
		return fmt.Errorf("%w: %w", ErrClearingSession, err)
	}
	return nil
}
