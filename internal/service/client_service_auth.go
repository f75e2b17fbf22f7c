package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/MKhiriev/go-note-keeper/internal/adapter"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/models"
)

type authController struct {
	mu      sync.RWMutex
	state   models.AuthState
	session models.Session

	// transition serializes session changes that touch the durable store.
	transition sync.Mutex
	listeners  []func()

	sessions SessionStore
	adapter  adapter.ServerAdapter
	logger   *logger.Logger
}

// NewAuthController returns an [AuthController] in the unknown state.
func NewAuthController(sessions SessionStore, serverAdapter adapter.ServerAdapter, logger *logger.Logger) AuthController {
	return &authController{
		state:    models.AuthUnknown,
		sessions: sessions,
		adapter:  serverAdapter,
		logger:   logger,
	}
}

func (a *authController) Init(ctx context.Context) models.AuthState {
	session, err := a.sessions.Load(ctx)
	if err != nil && !errors.Is(err, ErrNoSession) {
		a.logger.Err(err).Str("func", "authController.Init").Msg("failed to load session")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if err != nil {
		a.becomeAnonymous()
		return a.state
	}

	a.session = session
	a.state = models.AuthAuthenticated
	a.adapter.SetToken(session.Token)
	a.logger.Info().Str("func", "authController.Init").Str("email", session.User.Email).Msg("session restored")

	return a.state
}

func (a *authController) Login(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)

	token, err := a.adapter.Login(ctx, email, password)
	if err != nil {
		a.logger.Err(err).Str("func", "authController.Login").Str("email", email).Msg("login failed")
		return fmt.Errorf("%w: %w", ErrLoginOnServer, err)
	}
	if token.AccessToken == "" {
		return ErrEmptyToken
	}

	session := models.Session{Token: token.AccessToken, User: models.User{Email: email}}

	a.transition.Lock()
	if err = a.sessions.Save(ctx, session); err != nil {
		a.transition.Unlock()
		a.logger.Err(err).Str("func", "authController.Login").Msg("failed to persist session")
		return err
	}

	a.mu.Lock()
	a.session = session
	a.state = models.AuthAuthenticated
	a.adapter.SetToken(session.Token)
	a.mu.Unlock()
	a.transition.Unlock()

	event := a.logger.Info().Str("func", "authController.Login").Str("email", email)
	if exp, ok := token.ExpiresAt(); ok {
		event = event.Time("expires_at", exp)
	}
	event.Msg("logged in")

	return nil
}

func (a *authController) Register(ctx context.Context, creds models.Credentials) error {
	creds.Email = strings.TrimSpace(creds.Email)
	creds.Username = strings.TrimSpace(creds.Username)

	if _, err := a.adapter.Register(ctx, creds); err != nil {
		a.logger.Err(err).Str("func", "authController.Register").Str("email", creds.Email).Msg("registration failed")
		return fmt.Errorf("%w: %w", ErrRegisterOnServer, err)
	}

	return a.Login(ctx, creds.Email, creds.Password)
}

func (a *authController) Logout(ctx context.Context) {
	a.transition.Lock()
	email := a.clearLocked(ctx, "authController.Logout")
	a.transition.Unlock()

	a.logger.Info().Str("func", "authController.Logout").Str("email", email).Msg("logged out")
	a.notifyLogout()
}

func (a *authController) HandleError(ctx context.Context, err error) bool {
	if !adapter.IsUnauthorized(err) {
		return false
	}

	a.transition.Lock()
	current := a.Session()
	if a.State() != models.AuthAuthenticated {
		a.transition.Unlock()
		return false
	}
	// a request sent with an older token says nothing about the current session
	if token, ok := adapter.TokenOf(err); ok && token != "" && token != current.Token {
		a.transition.Unlock()
		a.logger.Debug().Err(err).Str("func", "authController.HandleError").Msg("ignoring rejection of a replaced token")
		return false
	}

	a.logger.Warn().Err(err).Str("func", "authController.HandleError").Str("email", current.User.Email).Msg("server rejected the token, logging out")
	a.clearLocked(ctx, "authController.HandleError")
	a.transition.Unlock()

	a.notifyLogout()
	return true
}

func (a *authController) OnLogout(fn func()) {
	a.mu.Lock()
	a.listeners = append(a.listeners, fn)
	a.mu.Unlock()
}

func (a *authController) Allow(access models.Access) bool {
	if access == models.AccessPublic {
		return true
	}
	return a.State() == models.AuthAuthenticated
}

func (a *authController) State() models.AuthState {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state
}

func (a *authController) User() models.User {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.session.User
}

func (a *authController) Session() models.Session {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.session
}

// clearLocked drops the stored session and resolves the state to anonymous.
// It must be called with transition held and returns the email that was
// signed in.
func (a *authController) clearLocked(ctx context.Context, fn string) string {
	if err := a.sessions.Clear(ctx); err != nil {
		a.logger.Err(err).Str("func", fn).Msg("failed to clear stored session")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	email := a.session.User.Email
	a.becomeAnonymous()
	return email
}

func (a *authController) notifyLogout() {
	a.mu.RLock()
	listeners := slices.Clone(a.listeners)
	a.mu.RUnlock()

	for _, fn := range listeners {
		fn()
	}
}

// becomeAnonymous must be called with mu held.
func (a *authController) becomeAnonymous() {
	a.session = models.Session{}
	a.state = models.AuthAnonymous
	a.adapter.SetToken("")
}
