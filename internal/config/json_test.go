package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON_Success(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.json")
	jsonBody := `{
		"app": {"log_file": "/tmp/nv.log", "log_level": "info"},
		"storage": {"db": {"dsn": "/var/lib/nv/session.db"}},
		"adapter": {"http_address": "localhost:8000", "request_timeout": "10s"},
		"workers": {"refresh_interval": "2m"}
	}`
	require.NoError(t, os.WriteFile(p, []byte(jsonBody), 0o600))

	cfg, err := parseJSON(p)

	require.NoError(t, err)
	assert.Equal(t, "/tmp/nv.log", cfg.App.LogFile)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, "/var/lib/nv/session.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "localhost:8000", cfg.Adapter.HTTPAddress)
	assert.Equal(t, 10*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, 2*time.Minute, cfg.Workers.RefreshInterval)
	assert.Empty(t, cfg.JSONFilePath)
}

func TestParseJSON_Malformed(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(p, []byte("{not valid json"), 0o600))

	_, err := parseJSON(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error decoding json configs")
}

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{name: "string", input: `"1m30s"`, want: 90 * time.Second},
		{name: "nanoseconds", input: `1000000000`, want: time.Second},
		{name: "bad string", input: `"later"`, wantErr: true},
		{name: "bool", input: `true`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, time.Duration(d))
		})
	}
}
