// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container. It is populated
// by merging values from defaults, environment variables, command-line flags,
// and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds process-level settings such as logging.
	App App `envPrefix:"APP_"`

	// Storage holds the local session database settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Adapter holds the notes API address and transport settings.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds configuration for background workers.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App groups process-level settings.
type App struct {
	// LogFile is where JSON logs are written. The terminal belongs to the
	// TUI, so logs never go to stdout.
	LogFile string `env:"LOG_FILE"`

	// LogLevel is a zerolog level name (debug, info, warn, error).
	LogLevel string `env:"LOG_LEVEL"`
}

// Storage groups the configuration for the local database.
type Storage struct {
	DB DB `envPrefix:"DB_"`
}

// DB holds the SQLite connection settings.
type DB struct {
	// DSN is the SQLite file path or URI. It must point to a file because the
	// session has to survive a restart.
	DSN string `env:"DSN"`
}

// Adapter holds the notes API connection settings.
type Adapter struct {
	// HTTPAddress is the API base address, either host:port or a full URL.
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single request. Zero keeps the transport default.
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// RefreshInterval is the period of the background notes list refresh.
	// Zero disables the worker.
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL"`
}

// defaults returns the values used when no source provides a setting.
func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			LogFile:  "notevault.log",
			LogLevel: "debug",
		},
		Storage: Storage{
			DB: DB{DSN: "notevault.db"},
		},
		Adapter: Adapter{
			HTTPAddress: "http://localhost:8000",
		},
	}
}

// GetStructuredConfig builds the merged configuration from all sources.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withDotEnv(dotEnvFile).
		withEnv().
		withFlags().
		withJSON().
		build()
}
