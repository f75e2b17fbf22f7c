package apitest

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithRequestID(t *testing.T) {
	tests := []struct {
		name          string
		requestID     string
		wantSameID    bool
		wantValidUUID bool
	}{
		{name: "request id from client is echoed", requestID: "req-42", wantSameID: true},
		{name: "missing request id is generated", wantValidUUID: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Server{logger: logger.Nop()}
			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				w.WriteHeader(http.StatusNoContent)
			})

			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			if tt.requestID != "" {
				req.Header.Set(requestIDHeader, tt.requestID)
			}
			rr := httptest.NewRecorder()

			s.withLogging(s.withRequestID(next)).ServeHTTP(rr, req)

			require.True(t, called)
			assert.Equal(t, http.StatusNoContent, rr.Code)
			got := rr.Header().Get(requestIDHeader)
			if tt.wantSameID {
				assert.Equal(t, tt.requestID, got)
			}
			if tt.wantValidUUID {
				_, err := uuid.Parse(got)
				assert.NoError(t, err)
			}
		})
	}
}

func TestStatusWriter_ImplicitOK(t *testing.T) {
	rr := httptest.NewRecorder()
	w := &statusWriter{ResponseWriter: rr}

	_, err := w.Write([]byte("hello"))

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, w.status)
	assert.Equal(t, 5, w.size)
}
