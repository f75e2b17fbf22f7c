package config

import "errors"

var (
	// ErrInvalidAdapterConfigs is returned when the API address is missing or
	// malformed, or the request timeout is negative.
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")

	// ErrInvalidStorageConfigs is returned when the session database DSN is
	// missing or points to an in-memory database.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")

	// ErrInvalidAppConfigs is returned when the log settings are unusable.
	ErrInvalidAppConfigs = errors.New("invalid app configuration")

	// ErrInvalidWorkerConfigs is returned when a worker interval is negative.
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
