package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerAddress_Set(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectError bool
		expected    string
	}{
		{name: "host and port", input: "localhost:8000", expected: "http://localhost:8000"},
		{name: "full url", input: "https://notes.example.com/", expected: "https://notes.example.com"},
		{name: "url with path", input: "http://10.0.0.1:8000/api", expected: "http://10.0.0.1:8000/api"},
		{name: "empty", input: "", expectError: true},
		{name: "unsupported scheme", input: "ftp://example.com", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr := &ServerAddress{}
			err := addr.Set(tt.input)
			if tt.expectError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, addr.String())
		})
	}
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		validate func(t *testing.T, cfg *StructuredConfig)
	}{
		{
			name: "all flags set",
			args: []string{
				"-a", "localhost:8000",
				"-d", "/tmp/session.db",
				"-c", "/path/to/config.json",
				"-log-file", "/tmp/nv.log",
				"-log-level", "warn",
				"-request-timeout", "30s",
				"-refresh-interval", "1m",
			},
			validate: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, "http://localhost:8000", cfg.Adapter.HTTPAddress)
				assert.Equal(t, "/tmp/session.db", cfg.Storage.DB.DSN)
				assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)
				assert.Equal(t, "/tmp/nv.log", cfg.App.LogFile)
				assert.Equal(t, "warn", cfg.App.LogLevel)
				assert.Equal(t, 30*time.Second, cfg.Adapter.RequestTimeout)
				assert.Equal(t, time.Minute, cfg.Workers.RefreshInterval)
			},
		},
		{
			name: "config alias flag",
			args: []string{"-config", "/path/to/config.json"},
			validate: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)
			},
		},
		{
			name: "no flags",
			args: []string{},
			validate: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, &StructuredConfig{}, cfg)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetCommandLine(t, tt.args)

			cfg, err := ParseFlags()
			require.NoError(t, err)
			require.NotNil(t, cfg)
			tt.validate(t, cfg)
		})
	}
}

func TestParseFlags_InvalidAddress(t *testing.T) {
	resetCommandLine(t, []string{"-a", "ftp://nowhere"})

	_, err := ParseFlags()
	assert.Error(t, err)
}

func resetCommandLine(t *testing.T, args []string) {
	t.Helper()
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	oldArgs := os.Args
	os.Args = append([]string{"cmd"}, args...)
	t.Cleanup(func() { os.Args = oldArgs })
}
