package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/utils"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/go-resty/resty/v2"
)

const requestIDHeader = "X-Request-ID"

const (
	pathLogin    = "/auth/login"
	pathRegister = "/auth/register"
	pathNotes    = "/notes"
	pathHealth   = "/health"
)

type httpServerAdapter struct {
	client *utils.HTTPClient
	ids    *utils.UUIDGenerator

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs the HTTP implementation of [ServerAdapter].
// The base URL comes from adapterCfg.HTTPAddress (host:port or URL). A zero
// RequestTimeout keeps the transport default.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := config.NormalizeAddress(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	return &httpServerAdapter{
		client: utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		ids:    utils.NewUUIDGenerator(),
		logger: logger.WithComponent("adapter"),
	}, nil
}

// SetToken implements [ServerAdapter].
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter].
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Login implements [ServerAdapter]. POST /auth/login.
func (h *httpServerAdapter) Login(ctx context.Context, email, password string) (models.Token, error) {
	const op = "login"

	resp, err := h.do(ctx, op, http.MethodPost, pathLogin, models.LoginRequest{Email: email, Password: password}, false)
	if err != nil {
		return models.Token{}, err
	}

	var token models.Token
	if err = json.Unmarshal(resp.Body(), &token); err != nil {
		return models.Token{}, decodeError(op, resp, err)
	}
	if token.AccessToken == "" {
		return models.Token{}, decodeError(op, resp, errors.New("empty access token"))
	}

	// opaque tokens are fine, claims are only informational
	if claims, err := utils.ParseUnverifiedClaims(token.AccessToken); err == nil {
		token.Claims = claims
	}

	return token, nil
}

// Register implements [ServerAdapter]. POST /auth/register.
func (h *httpServerAdapter) Register(ctx context.Context, creds models.Credentials) (models.Registered, error) {
	const op = "register"

	body := models.RegisterRequest{Username: creds.Username, Email: creds.Email, Password: creds.Password}
	resp, err := h.do(ctx, op, http.MethodPost, pathRegister, body, false)
	if err != nil {
		return models.Registered{}, err
	}

	// any 2xx is a success, the echoed profile is optional
	var registered models.Registered
	if len(bytes.TrimSpace(resp.Body())) > 0 {
		if err = json.Unmarshal(resp.Body(), &registered); err != nil {
			h.logger.Debug().
				Err(err).
				Str("op", op).
				Int("status", resp.StatusCode()).
				Msg("ignoring undecodable register response body")
		}
	}
	if registered.Email == "" {
		registered.Email = creds.Email
		registered.Username = creds.Username
	}

	return registered, nil
}

// ListNotes implements [ServerAdapter]. GET /notes.
func (h *httpServerAdapter) ListNotes(ctx context.Context) ([]models.Note, error) {
	const op = "list notes"

	resp, err := h.do(ctx, op, http.MethodGet, pathNotes, nil, true)
	if err != nil {
		return nil, err
	}

	notes := make([]models.Note, 0)
	if err = json.Unmarshal(resp.Body(), &notes); err != nil {
		return nil, decodeError(op, resp, err)
	}

	return notes, nil
}

// CreateNote implements [ServerAdapter]. POST /notes.
func (h *httpServerAdapter) CreateNote(ctx context.Context, draft models.NoteDraft) (models.Note, error) {
	return h.writeNote(ctx, "create note", http.MethodPost, pathNotes, draft)
}

// UpdateNote implements [ServerAdapter]. PUT /notes/{id}.
func (h *httpServerAdapter) UpdateNote(ctx context.Context, id string, draft models.NoteDraft) (models.Note, error) {
	return h.writeNote(ctx, "update note", http.MethodPut, notePath(id), draft)
}

func (h *httpServerAdapter) writeNote(ctx context.Context, op, method, path string, draft models.NoteDraft) (models.Note, error) {
	resp, err := h.do(ctx, op, method, path, draft, true)
	if err != nil {
		return models.Note{}, err
	}

	var note models.Note
	if err = json.Unmarshal(resp.Body(), &note); err != nil {
		return models.Note{}, decodeError(op, resp, err)
	}

	return note, nil
}

// DeleteNote implements [ServerAdapter]. DELETE /notes/{id}.
func (h *httpServerAdapter) DeleteNote(ctx context.Context, id string) error {
	_, err := h.do(ctx, "delete note", http.MethodDelete, notePath(id), nil, true)
	return err
}

// ListVersions implements [ServerAdapter]. GET /notes/{id}/versions.
// Both {"versions": [...]} and a bare array are accepted.
func (h *httpServerAdapter) ListVersions(ctx context.Context, noteID string) ([]models.Version, error) {
	const op = "list versions"

	resp, err := h.do(ctx, op, http.MethodGet, notePath(noteID)+"/versions", nil, true)
	if err != nil {
		return nil, err
	}

	body := bytes.TrimSpace(resp.Body())
	versions := make([]models.Version, 0)
	if len(body) > 0 && body[0] == '[' {
		if err = json.Unmarshal(body, &versions); err != nil {
			return nil, decodeError(op, resp, err)
		}
		return versions, nil
	}

	var list models.VersionList
	if err = json.Unmarshal(body, &list); err != nil {
		return nil, decodeError(op, resp, err)
	}
	if list.Versions != nil {
		versions = list.Versions
	}

	return versions, nil
}

// GetVersion implements [ServerAdapter]. GET /notes/{id}/versions/{n}.
func (h *httpServerAdapter) GetVersion(ctx context.Context, noteID string, versionNumber int) (models.Version, error) {
	const op = "get version"

	path := notePath(noteID) + "/versions/" + strconv.Itoa(versionNumber)
	resp, err := h.do(ctx, op, http.MethodGet, path, nil, true)
	if err != nil {
		return models.Version{}, err
	}

	var details models.VersionDetails
	if err = json.Unmarshal(resp.Body(), &details); err != nil {
		return models.Version{}, decodeError(op, resp, err)
	}
	if details.Version.VersionNumber == 0 {
		// bare version object
		if err = json.Unmarshal(resp.Body(), &details.Version); err != nil {
			return models.Version{}, decodeError(op, resp, err)
		}
	}

	return details.Version, nil
}

// RestoreVersion implements [ServerAdapter]. POST /notes/{id}/versions/restore.
// The response may be the note itself or {"message": ..., "note": {...}}.
func (h *httpServerAdapter) RestoreVersion(ctx context.Context, noteID string, versionNumber int) (models.Note, error) {
	const op = "restore version"

	body := models.RestoreRequest{VersionNumber: versionNumber}
	resp, err := h.do(ctx, op, http.MethodPost, notePath(noteID)+"/versions/restore", body, true)
	if err != nil {
		return models.Note{}, err
	}

	var envelope models.RestoreResponse
	if err = json.Unmarshal(resp.Body(), &envelope); err != nil {
		return models.Note{}, decodeError(op, resp, err)
	}
	if envelope.Note != nil {
		return *envelope.Note, nil
	}

	var note models.Note
	if err = json.Unmarshal(resp.Body(), &note); err != nil {
		return models.Note{}, decodeError(op, resp, err)
	}

	return note, nil
}

// Health implements [ServerAdapter]. GET /health.
func (h *httpServerAdapter) Health(ctx context.Context) (models.Health, error) {
	const op = "health"

	resp, err := h.do(ctx, op, http.MethodGet, pathHealth, nil, false)
	if err != nil {
		return models.Health{}, err
	}

	var health models.Health
	if err = json.Unmarshal(resp.Body(), &health); err != nil {
		return models.Health{}, decodeError(op, resp, err)
	}

	return health, nil
}

// do sends one request and maps every failure to a *RequestError.
func (h *httpServerAdapter) do(ctx context.Context, op, method, path string, body any, authed bool) (*resty.Response, error) {
	requestID, ok := utils.GetRequestIDFromContext(ctx)
	if !ok {
		requestID = h.ids.Generate()
	}

	req := h.client.R().
		SetContext(ctx).
		SetHeader(requestIDHeader, requestID)
	var token string
	if authed {
		if token = h.Token(); token != "" {
			req.SetAuthToken(token)
		}
	}
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	start := time.Now()
	resp, err := req.Execute(method, path)
	if err != nil {
		h.logger.Debug().
			Err(err).
			Str("op", op).
			Str("request_id", requestID).
			Dur("elapsed", time.Since(start)).
			Msg("request failed before a response was received")
		return nil, mapTransportError(op, err)
	}

	h.logger.Debug().
		Str("op", op).
		Str("method", method).
		Str("path", path).
		Str("request_id", requestID).
		Int("status", resp.StatusCode()).
		Dur("elapsed", time.Since(start)).
		Msg("request done")

	if err = mapHTTPError(op, token, resp); err != nil {
		return nil, err
	}

	return resp, nil
}

func notePath(id string) string {
	return pathNotes + "/" + url.PathEscape(id)
}
