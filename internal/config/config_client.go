package config

import (
	"fmt"
	"time"
)

// ClientApp holds process-level client settings.
type ClientApp struct {
	LogFile  string
	LogLevel string
}

// ClientAdapter holds the settings for the notes API adapter.
type ClientAdapter struct {
	// HTTPAddress is the normalized API base URL without a trailing slash.
	HTTPAddress string

	// RequestTimeout is zero when the transport default applies.
	RequestTimeout time.Duration
}

// ClientDB holds the session database settings.
type ClientDB struct {
	DSN string
}

// ClientStorage groups the client storage settings.
type ClientStorage struct {
	DB ClientDB
}

// ClientWorkers holds background worker settings.
type ClientWorkers struct {
	RefreshInterval time.Duration
}

// ClientConfig is the validated configuration consumed by cmd/client.
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Workers ClientWorkers
}

// GetClientConfig loads the structured configuration and narrows it to the
// client settings. The returned config has passed validation.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return newClientConfig(cfg)
}

func newClientConfig(cfg *StructuredConfig) (*ClientConfig, error) {
	clientCfg := &ClientConfig{
		App: ClientApp{
			LogFile:  cfg.App.LogFile,
			LogLevel: cfg.App.LogLevel,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				DSN: cfg.Storage.DB.DSN,
			},
		},
		Workers: ClientWorkers{RefreshInterval: cfg.Workers.RefreshInterval},
	}

	if err := clientCfg.validate(); err != nil {
		return nil, err
	}

	// validate has already proven the address parses
	clientCfg.Adapter.HTTPAddress, _ = NormalizeAddress(clientCfg.Adapter.HTTPAddress)
	return clientCfg, nil
}
