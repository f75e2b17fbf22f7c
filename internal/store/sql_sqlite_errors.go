package store

import (
	"errors"

	"github.com/mattn/go-sqlite3"
)

// ErrorClassification is the result type returned by [ErrorClassifier.Classify].
// It indicates whether a failed database operation should be retried or abandoned.
type ErrorClassification int

const (
	// NonRetryable indicates that the failed operation should not be retried.
	// This is the default classification for unrecognised errors.
	NonRetryable ErrorClassification = iota

	// Retryable indicates that the failed operation may succeed if attempted
	// again, e.g. when another process holds the database lock.
	Retryable
)

// ErrorClassifier maps driver errors to an [ErrorClassification].
type ErrorClassifier interface {
	Classify(err error) ErrorClassification
}

// SQLiteErrorClassifier implements [ErrorClassifier] for the sqlite3 driver.
type SQLiteErrorClassifier struct{}

func NewSQLiteErrorClassifier() *SQLiteErrorClassifier {
	return &SQLiteErrorClassifier{}
}

// Classify unwraps err as a sqlite3.Error and delegates to [ClassifySQLiteError].
// Anything else is [NonRetryable].
func (c *SQLiteErrorClassifier) Classify(err error) ErrorClassification {
	if err == nil {
		return NonRetryable
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return ClassifySQLiteError(sqliteErr)
	}

	return NonRetryable
}

// ClassifySQLiteError maps a primary SQLite result code to an [ErrorClassification].
// See https://www.sqlite.org/rescode.html.
//
// Retryable codes:
//   - SQLITE_BUSY: another connection holds a conflicting lock
//   - SQLITE_LOCKED: a conflict inside the same connection
//
// Everything else, constraint and I/O failures included, is [NonRetryable].
func ClassifySQLiteError(sqliteErr sqlite3.Error) ErrorClassification {
	switch sqliteErr.Code {
	case sqlite3.ErrBusy, sqlite3.ErrLocked:
		return Retryable
	}

	return NonRetryable
}
