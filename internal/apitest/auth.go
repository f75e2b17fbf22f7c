package apitest

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-note-keeper/internal/app"
	"github.com/MKhiriev/go-note-keeper/internal/utils"
	"github.com/MKhiriev/go-note-keeper/models"
)

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	healthy := s.healthy
	s.mu.Unlock()

	health := models.Health{Status: app.StatusHealthy, Database: app.MsgDatabaseOK}
	if !healthy {
		health = models.Health{Status: app.StatusUnhealthy, Database: app.MsgDatabaseFailure}
	}
	_, _ = utils.WriteJSON(w, health, http.StatusOK)
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !decode(w, r, &req) {
		return
	}
	if missing := missingFields(map[string]string{"username": req.Username, "email": req.Email, "password": req.Password}); len(missing) > 0 {
		writeValidation(w, missing)
		return
	}

	s.mu.Lock()
	if _, exists := s.users[req.Email]; exists {
		s.mu.Unlock()
		utils.WriteDetail(w, app.MsgEmailTaken, http.StatusBadRequest)
		return
	}
	u := s.addUserLocked(req.Username, req.Email, req.Password)
	created := models.NewTimestamp(s.now())
	s.mu.Unlock()

	_, _ = utils.WriteJSON(w, models.Registered{
		UserID:    u.id,
		Username:  u.username,
		Email:     u.email,
		CreatedAt: created,
	}, http.StatusCreated)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	u, ok := s.users[req.Email]
	key := s.signKey
	s.mu.Unlock()

	if !ok || u.password != req.Password {
		utils.WriteDetail(w, app.MsgInvalidCredentials, http.StatusUnauthorized)
		return
	}

	token, err := utils.GenerateJWTToken(u.id, tokenDuration, key)
	if err != nil {
		utils.WriteDetail(w, err.Error(), http.StatusInternalServerError)
		return
	}

	_, _ = utils.WriteJSON(w, models.Token{AccessToken: token, TokenType: "bearer"}, http.StatusOK)
}

// auth resolves the bearer token to a user id stored under utils.UserIDCtxKey.
func (s *Server) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			w.Header().Set("WWW-Authenticate", "Bearer")
			utils.WriteDetail(w, app.MsgNotAuthenticated, http.StatusUnauthorized)
			return
		}

		token, err := utils.ParseBearerToken(header)
		if err != nil {
			utils.WriteDetail(w, app.MsgBadToken, http.StatusUnauthorized)
			return
		}

		s.mu.Lock()
		key := s.signKey
		s.mu.Unlock()

		userID, err := utils.ValidateJWTToken(token, key)
		if err != nil {
			utils.WriteDetail(w, app.MsgBadToken, http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), utils.UserIDCtxKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeValidation(w, []string{"body"})
		return false
	}
	return true
}

type validationIssue struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// writeValidation answers 422 with the FastAPI list-shaped detail.
func writeValidation(w http.ResponseWriter, fields []string) {
	issues := make([]validationIssue, 0, len(fields))
	for _, f := range fields {
		issues = append(issues, validationIssue{
			Loc:  []string{"body", f},
			Msg:  app.MsgFieldRequired,
			Type: "missing",
		})
	}
	_, _ = utils.WriteJSON(w, map[string]any{"detail": issues}, http.StatusUnprocessableEntity)
}

func missingFields(values map[string]string) []string {
	var missing []string
	for _, name := range []string{"username", "email", "password", "title", "content"} {
		if v, ok := values[name]; ok && v == "" {
			missing = append(missing, name)
		}
	}
	return missing
}
