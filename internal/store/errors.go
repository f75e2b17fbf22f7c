package store

import "errors"

// Domain-level errors.
var (
	// ErrSessionEntryNotFound is returned when no value is stored under a key.
	ErrSessionEntryNotFound = errors.New("session entry not found")
)

// Query-level errors. They wrap the driver error and tell callers which
// stage of the round trip failed.
var (
	// ErrBuildingSQLQuery is returned when squirrel cannot render a statement.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when the database rejects a statement.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when a transaction cannot be opened.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when a transaction cannot be committed.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrScanningRow is returned when a result row cannot be decoded.
	ErrScanningRow = errors.New("failed to scan session row")
)
