package apitest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/utils"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const tokenDuration = 30 * time.Minute

type user struct {
	id       string
	username string
	email    string
	password string
}

// Server is the fake notes API.
type Server struct {
	URL string

	mu       sync.Mutex
	users    map[string]*user // by email
	notes    []*models.Note
	versions map[string][]models.Version
	calls    map[string]int
	healthy  bool
	signKey  string

	ids    *utils.UUIDGenerator
	now    func() time.Time
	logger *logger.Logger
}

// NewServer starts the fake API and stops it when the test ends.
func NewServer(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		users:    make(map[string]*user),
		versions: make(map[string][]models.Version),
		calls:    make(map[string]int),
		healthy:  true,
		ids:      utils.NewUUIDGenerator(),
		now:      func() time.Time { return time.Now().UTC() },
		logger:   logger.Nop(),
	}
	s.signKey = s.ids.Generate()

	srv := httptest.NewServer(s.Routes())
	t.Cleanup(srv.Close)
	s.URL = srv.URL

	return s
}

// Routes builds the router. It is exported so tests can mount it elsewhere.
func (s *Server) Routes() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(s.withRequestID)
	router.Use(s.withLogging)
	router.Use(s.countCalls)

	router.Get("/health", s.health)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/auth/register", s.register)
		r.Post("/auth/login", s.login)
	})

	router.Group(func(r chi.Router) {
		r.Use(s.auth)

		r.Get("/notes", s.listNotes)
		r.Post("/notes", s.createNote)
		r.Put("/notes/{noteID}", s.updateNote)
		r.Delete("/notes/{noteID}", s.deleteNote)
		r.Get("/notes/{noteID}/versions", s.listVersions)
		r.Get("/notes/{noteID}/versions/{versionNumber}", s.getVersion)
		r.Post("/notes/{noteID}/versions/restore", s.restoreVersion)
	})

	return router
}

// AddUser registers an account directly, bypassing the API.
func (s *Server) AddUser(username, email, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addUserLocked(username, email, password)
}

// Calls returns how many requests reached the route, e.g.
// Calls(http.MethodDelete, "/notes/{noteID}").
func (s *Server) Calls(method, pattern string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[callKey(method, pattern)]
}

// SetHealthy changes what GET /health reports.
func (s *Server) SetHealthy(healthy bool) {
	s.mu.Lock()
	s.healthy = healthy
	s.mu.Unlock()
}

// RevokeTokens rotates the signing key so every issued token becomes invalid.
func (s *Server) RevokeTokens() {
	s.mu.Lock()
	s.signKey = s.ids.Generate()
	s.mu.Unlock()
}

// Notes returns the notes stored for email in creation order.
func (s *Server) Notes(email string) []models.Note {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[email]
	if !ok {
		return nil
	}
	out := make([]models.Note, 0)
	for _, n := range s.notes {
		if n.OwnerID == u.id {
			out = append(out, *n)
		}
	}
	return out
}

func (s *Server) addUserLocked(username, email, password string) *user {
	u := &user{id: s.ids.Generate(), username: username, email: email, password: password}
	s.users[email] = u
	return u
}

func (s *Server) countCalls(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r)

		pattern := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			pattern = rctx.RoutePattern()
		}

		s.mu.Lock()
		s.calls[callKey(r.Method, pattern)]++
		s.mu.Unlock()
	})
}

func callKey(method, pattern string) string {
	return fmt.Sprintf("%s %s", method, pattern)
}
