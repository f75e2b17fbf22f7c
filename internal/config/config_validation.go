package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
)

func (cfg *StructuredConfig) validate() error {
	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, ":memory:") || strings.Contains(cfg.Storage.DB.DSN, "mode=memory") {
		return ErrInvalidStorageConfigs
	}

	if _, err := NormalizeAddress(cfg.Adapter.HTTPAddress); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAdapterConfigs, err)
	}
	if cfg.Adapter.RequestTimeout < 0 {
		return fmt.Errorf("%w: negative request timeout", ErrInvalidAdapterConfigs)
	}

	if cfg.Workers.RefreshInterval < 0 {
		return ErrInvalidWorkerConfigs
	}

	if cfg.App.LogFile == "" {
		return fmt.Errorf("%w: empty log file", ErrInvalidAppConfigs)
	}
	if _, err := zerolog.ParseLevel(cfg.App.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAppConfigs, err)
	}

	return nil
}

// NormalizeAddress turns host:port or a URL into an absolute base URL with a
// scheme and without a trailing slash.
func NormalizeAddress(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("address must include host")
	}

	return strings.TrimRight(u.String(), "/"), nil
}
