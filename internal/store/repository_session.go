package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
)

type sessionRepository struct {
	db     *DB
	logger *logger.Logger
	now    func() time.Time
}

// NewSessionRepository returns a [SessionRepository] backed by db.
func NewSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	return &sessionRepository{
		db:     db,
		logger: logger,
		now:    time.Now,
	}
}

func (s *sessionRepository) Get(ctx context.Context, key string) (string, error) {
	query, args, err := buildGetSessionEntry(key)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var value string
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrSessionEntryNotFound
	}
	if err != nil {
		s.logger.Err(err).
			Str("func", "sessionRepository.Get").
			Str("key", key).
			Msg("failed to read session entry")
		return "", fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return value, nil
}

func (s *sessionRepository) Set(ctx context.Context, entries map[string]string) error {
	if len(entries) == 0 {
		return nil
	}

	// stable order keeps statements deterministic
	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	now := s.now()
	return s.db.withRetry(ctx, func(ctx context.Context) error {
		return s.upsert(ctx, keys, entries, now)
	})
}

func (s *sessionRepository) upsert(ctx context.Context, keys []string, entries map[string]string, now time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Err(err).Str("func", "sessionRepository.Set").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, key := range keys {
		query, args, err := buildUpsertSessionEntry(key, entries[key], now)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			s.logger.Err(err).
				Str("func", "sessionRepository.Set").
				Str("key", key).
				Msg("failed to upsert session entry")
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
	}

	if err = tx.Commit(); err != nil {
		s.logger.Err(err).Str("func", "sessionRepository.Set").Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

func (s *sessionRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	query, args, err := buildDeleteSessionEntries(keys)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = s.db.withRetry(ctx, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx, query, args...)
		return err
	})
	if err != nil {
		s.logger.Err(err).
			Str("func", "sessionRepository.Delete").
			Strs("keys", keys).
			Msg("failed to delete session entries")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}
