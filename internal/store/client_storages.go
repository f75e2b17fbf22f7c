package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
)

// ClientStorages aggregates the repositories of the local database.
type ClientStorages struct {
	SessionRepository SessionRepository

	db *DB
}

// NewClientStorages opens the SQLite database, applies migrations, and builds
// the repositories. Close must be called on shutdown.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		SessionRepository: NewSessionRepository(db, logger),
		db:                db,
	}, nil
}

// Close releases the database connection.
func (c *ClientStorages) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}
