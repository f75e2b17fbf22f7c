package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/migrations"
	"github.com/sethvargo/go-retry"
)

const (
	retryBaseDelay = 20 * time.Millisecond
	maxRetries     = 3
)

// DB wraps *sql.DB with the logger used by the repositories.
type DB struct {
	*sql.DB
	errorClassifier ErrorClassifier
	logger          *logger.Logger
}

// Migrate applies the embedded schema.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}

// withRetry runs op, repeating it with exponential backoff while the error
// is classified as [Retryable]. Without a classifier op runs once.
func (db *DB) withRetry(ctx context.Context, op func(ctx context.Context) error) error {
	if db.errorClassifier == nil {
		return op(ctx)
	}

	backoff := retry.WithMaxRetries(maxRetries, retry.NewExponential(retryBaseDelay))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := op(ctx)
		if err != nil && db.errorClassifier.Classify(err) == Retryable {
			db.logger.Warn().Err(err).Str("func", "DB.withRetry").Msg("database is locked, retrying")
			return retry.RetryableError(err)
		}
		return err
	})
}
