package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/MKhiriev/go-note-keeper/internal/adapter"
	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/mock"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestAuth builds an authController wired to mocks.
func newTestAuth(t *testing.T) (*authController, *mock.MockSessionStore, *mock.MockServerAdapter) {
	t.Helper()
	ctrl := gomock.NewController(t)
	sessions := mock.NewMockSessionStore(ctrl)
	serverAdapter := mock.NewMockServerAdapter(ctrl)

	auth := NewAuthController(sessions, serverAdapter, logger.Nop()).(*authController)
	return auth, sessions, serverAdapter
}

var testSession = models.Session{Token: "T1", User: models.User{Email: "a@x.com"}}

func unauthorizedErr() error {
	return &adapter.RequestError{Op: "list notes", Kind: adapter.KindUnauthorized, StatusCode: 401, Message: "Could not validate credentials"}
}

// ── Init ─────────────────────────────────────────────────────────────────────

func TestAuthController_StartsUnknown(t *testing.T) {
	auth, _, _ := newTestAuth(t)
	assert.Equal(t, models.AuthUnknown, auth.State())
}

func TestAuthController_Init_RestoresSession(t *testing.T) {
	auth, sessions, serverAdapter := newTestAuth(t)
	ctx := context.Background()

	gomock.InOrder(
		sessions.EXPECT().Load(ctx).Return(testSession, nil),
		serverAdapter.EXPECT().SetToken("T1"),
	)

	state := auth.Init(ctx)

	assert.Equal(t, models.AuthAuthenticated, state)
	assert.Equal(t, testSession, auth.Session())
	assert.Equal(t, "a@x.com", auth.User().Email)
}

func TestAuthController_Init_NoSession(t *testing.T) {
	auth, sessions, serverAdapter := newTestAuth(t)
	ctx := context.Background()

	sessions.EXPECT().Load(ctx).Return(models.Session{}, ErrNoSession)
	serverAdapter.EXPECT().SetToken("")

	assert.Equal(t, models.AuthAnonymous, auth.Init(ctx))
	assert.True(t, auth.Session().IsZero())
}

func TestAuthController_Init_LoadErrorResolvesAnonymous(t *testing.T) {
	auth, sessions, serverAdapter := newTestAuth(t)
	ctx := context.Background()

	sessions.EXPECT().Load(ctx).Return(models.Session{}, errors.New("disk I/O error"))
	serverAdapter.EXPECT().SetToken("")

	assert.Equal(t, models.AuthAnonymous, auth.Init(ctx))
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestAuthController_Login_Success(t *testing.T) {
	auth, sessions, serverAdapter := newTestAuth(t)
	ctx := context.Background()

	gomock.InOrder(
		serverAdapter.EXPECT().Login(ctx, "a@x.com", "pw").Return(models.Token{AccessToken: "T1", TokenType: "bearer"}, nil),
		sessions.EXPECT().Save(ctx, testSession).Return(nil),
		serverAdapter.EXPECT().SetToken("T1"),
	)

	err := auth.Login(ctx, " a@x.com ", "pw")

	require.NoError(t, err)
	assert.Equal(t, models.AuthAuthenticated, auth.State())
	assert.Equal(t, testSession, auth.Session())
}

func TestAuthController_Login_ServerRejects_StateUnchanged(t *testing.T) {
	auth, _, serverAdapter := newTestAuth(t)
	ctx := context.Background()
	auth.state = models.AuthAnonymous

	rejected := &adapter.RequestError{Op: "login", Kind: adapter.KindUnauthorized, StatusCode: 401, Message: "Invalid email or password"}
	serverAdapter.EXPECT().Login(ctx, "a@x.com", "bad").Return(models.Token{}, rejected).Times(1)

	err := auth.Login(ctx, "a@x.com", "bad")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLoginOnServer)
	assert.ErrorIs(t, err, adapter.ErrUnauthorized)
	assert.Equal(t, models.AuthAnonymous, auth.State())
	assert.True(t, auth.Session().IsZero())
}

func TestAuthController_Login_EmptyToken(t *testing.T) {
	auth, _, serverAdapter := newTestAuth(t)
	ctx := context.Background()
	auth.state = models.AuthAnonymous

	serverAdapter.EXPECT().Login(ctx, "a@x.com", "pw").Return(models.Token{}, nil)

	assert.ErrorIs(t, auth.Login(ctx, "a@x.com", "pw"), ErrEmptyToken)
	assert.Equal(t, models.AuthAnonymous, auth.State())
}

func TestAuthController_Login_SaveFails_StateUnchanged(t *testing.T) {
	auth, sessions, serverAdapter := newTestAuth(t)
	ctx := context.Background()
	auth.state = models.AuthAnonymous

	serverAdapter.EXPECT().Login(ctx, "a@x.com", "pw").Return(models.Token{AccessToken: "T1"}, nil)
	sessions.EXPECT().Save(ctx, testSession).Return(ErrSavingSession)

	assert.ErrorIs(t, auth.Login(ctx, "a@x.com", "pw"), ErrSavingSession)
	assert.Equal(t, models.AuthAnonymous, auth.State())
}

// ── Register ─────────────────────────────────────────────────────────────────

func TestAuthController_Register_ThenLogin(t *testing.T) {
	auth, sessions, serverAdapter := newTestAuth(t)
	ctx := context.Background()

	creds := models.Credentials{Username: "alice", Email: "a@x.com", Password: "pw"}

	gomock.InOrder(
		serverAdapter.EXPECT().Register(ctx, creds).Return(models.Registered{UserID: "u-1", Email: "a@x.com"}, nil),
		serverAdapter.EXPECT().Login(ctx, "a@x.com", "pw").Return(models.Token{AccessToken: "T1"}, nil),
		sessions.EXPECT().Save(ctx, testSession).Return(nil),
		serverAdapter.EXPECT().SetToken("T1"),
	)

	require.NoError(t, auth.Register(ctx, creds))
	assert.Equal(t, models.AuthAuthenticated, auth.State())
}

func TestAuthController_Register_FailureAbortsBeforeLogin(t *testing.T) {
	auth, _, serverAdapter := newTestAuth(t)
	ctx := context.Background()
	auth.state = models.AuthAnonymous

	taken := &adapter.RequestError{Op: "register", Kind: adapter.KindValidation, StatusCode: 400, Message: "Email already registered"}
	serverAdapter.EXPECT().Register(ctx, gomock.Any()).Return(models.Registered{}, taken)
	serverAdapter.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	err := auth.Register(ctx, models.Credentials{Username: "alice", Email: "a@x.com", Password: "pw"})

	assert.ErrorIs(t, err, ErrRegisterOnServer)
	assert.Equal(t, "Email already registered", adapter.MessageOf(err))
	assert.Equal(t, models.AuthAnonymous, auth.State())
}

func TestAuthController_Register_LoginFailureSurfaces(t *testing.T) {
	auth, _, serverAdapter := newTestAuth(t)
	ctx := context.Background()

	serverAdapter.EXPECT().Register(ctx, gomock.Any()).Return(models.Registered{}, nil)
	serverAdapter.EXPECT().Login(ctx, "a@x.com", "pw").Return(models.Token{}, &adapter.RequestError{Op: "login", Kind: adapter.KindNetworkError})

	err := auth.Register(ctx, models.Credentials{Username: "alice", Email: "a@x.com", Password: "pw"})
	assert.ErrorIs(t, err, ErrLoginOnServer)
	assert.ErrorIs(t, err, adapter.ErrNetwork)
}

// ── Logout ───────────────────────────────────────────────────────────────────

func TestAuthController_Logout(t *testing.T) {
	auth, sessions, serverAdapter := newTestAuth(t)
	ctx := context.Background()
	auth.state = models.AuthAuthenticated
	auth.session = testSession

	sessions.EXPECT().Clear(ctx).Return(nil)
	serverAdapter.EXPECT().SetToken("")

	auth.Logout(ctx)

	assert.Equal(t, models.AuthAnonymous, auth.State())
	assert.True(t, auth.Session().IsZero())
	assert.False(t, auth.Allow(models.AccessProtected))
	assert.True(t, auth.Allow(models.AccessPublic))
}

func TestAuthController_Logout_ClearErrorStillLogsOut(t *testing.T) {
	auth, sessions, serverAdapter := newTestAuth(t)
	ctx := context.Background()
	auth.state = models.AuthAuthenticated
	auth.session = testSession

	sessions.EXPECT().Clear(ctx).Return(ErrClearingSession)
	serverAdapter.EXPECT().SetToken("")

	auth.Logout(ctx)
	assert.Equal(t, models.AuthAnonymous, auth.State())
}

// ── HandleError ──────────────────────────────────────────────────────────────

func TestAuthController_HandleError_UnauthorizedLogsOut(t *testing.T) {
	auth, sessions, serverAdapter := newTestAuth(t)
	ctx := context.Background()
	auth.state = models.AuthAuthenticated
	auth.session = testSession

	sessions.EXPECT().Clear(ctx).Return(nil)
	serverAdapter.EXPECT().SetToken("")

	handled := auth.HandleError(ctx, unauthorizedErr())

	assert.True(t, handled)
	assert.Equal(t, models.AuthAnonymous, auth.State())
}

func TestAuthController_HandleError_OtherKindsIgnored(t *testing.T) {
	auth, _, _ := newTestAuth(t)
	ctx := context.Background()
	auth.state = models.AuthAuthenticated

	for _, kind := range []adapter.Kind{adapter.KindNetworkError, adapter.KindNotFound, adapter.KindValidation, adapter.KindServerError} {
		t.Run(kind.String(), func(t *testing.T) {
			assert.False(t, auth.HandleError(ctx, &adapter.RequestError{Op: "list notes", Kind: kind}))
			assert.Equal(t, models.AuthAuthenticated, auth.State())
		})
	}

	assert.False(t, auth.HandleError(ctx, nil))
}

func TestAuthController_HandleError_AlreadyAnonymous(t *testing.T) {
	auth, _, _ := newTestAuth(t)
	auth.state = models.AuthAnonymous

	assert.False(t, auth.HandleError(context.Background(), unauthorizedErr()))
}

func TestAuthController_HandleError_TokenMatching(t *testing.T) {
	tests := []struct {
		name       string
		sentToken  string
		wantLogout bool
	}{
		{name: "current token", sentToken: "T1", wantLogout: true},
		{name: "replaced token", sentToken: "T0", wantLogout: false},
		{name: "no token recorded", sentToken: "", wantLogout: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth, sessions, serverAdapter := newTestAuth(t)
			ctx := context.Background()
			auth.state = models.AuthAuthenticated
			auth.session = testSession

			if tt.wantLogout {
				sessions.EXPECT().Clear(ctx).Return(nil)
				serverAdapter.EXPECT().SetToken("")
			}

			rejected := &adapter.RequestError{Op: "list notes", Kind: adapter.KindUnauthorized, StatusCode: 401, Token: tt.sentToken}
			assert.Equal(t, tt.wantLogout, auth.HandleError(ctx, rejected))

			if tt.wantLogout {
				assert.Equal(t, models.AuthAnonymous, auth.State())
			} else {
				assert.Equal(t, testSession, auth.Session())
			}
		})
	}
}

func TestAuthController_OnLogout(t *testing.T) {
	auth, sessions, serverAdapter := newTestAuth(t)
	ctx := context.Background()

	var calls int
	auth.OnLogout(func() {
		calls++
		// listeners run after the switch, so they observe the anonymous state
		assert.Equal(t, models.AuthAnonymous, auth.State())
	})

	sessions.EXPECT().Clear(ctx).Return(nil).Times(2)
	serverAdapter.EXPECT().SetToken("").Times(2)

	auth.state = models.AuthAuthenticated
	auth.session = testSession
	require.True(t, auth.HandleError(ctx, unauthorizedErr()))
	assert.Equal(t, 1, calls)

	auth.state = models.AuthAuthenticated
	auth.session = testSession
	auth.Logout(ctx)
	assert.Equal(t, 2, calls)

	assert.False(t, auth.HandleError(ctx, unauthorizedErr()))
	assert.Equal(t, 2, calls, "a rejected request while anonymous is not a logout")
}

// ── Allow ────────────────────────────────────────────────────────────────────

func TestAuthController_Allow(t *testing.T) {
	tests := []struct {
		state  models.AuthState
		access models.Access
		want   bool
	}{
		{models.AuthUnknown, models.AccessPublic, true},
		{models.AuthUnknown, models.AccessProtected, false},
		{models.AuthAnonymous, models.AccessProtected, false},
		{models.AuthAuthenticated, models.AccessProtected, true},
		{models.AuthAuthenticated, models.AccessPublic, true},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			auth, _, _ := newTestAuth(t)
			auth.state = tt.state
			assert.Equal(t, tt.want, auth.Allow(tt.access))
		})
	}
}

// ── Durable session ──────────────────────────────────────────────────────────

func TestAuthController_SessionSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	cfg := config.ClientStorage{DB: config.ClientDB{DSN: filepath.Join(t.TempDir(), "session.db")}}

	open := func() (*store.ClientStorages, AuthController, *mock.MockServerAdapter) {
		storages, err := store.NewClientStorages(ctx, cfg, logger.Nop())
		require.NoError(t, err)
		serverAdapter := mock.NewMockServerAdapter(gomock.NewController(t))
		auth := NewAuthController(NewSessionStore(storages.SessionRepository, logger.Nop()), serverAdapter, logger.Nop())
		return storages, auth, serverAdapter
	}

	storages, auth, serverAdapter := open()
	serverAdapter.EXPECT().SetToken("")
	serverAdapter.EXPECT().Login(ctx, "a@x.com", "pw").Return(models.Token{AccessToken: "T1"}, nil)
	serverAdapter.EXPECT().SetToken("T1")

	require.Equal(t, models.AuthAnonymous, auth.Init(ctx))
	require.NoError(t, auth.Login(ctx, "a@x.com", "pw"))
	require.NoError(t, storages.Close())

	storages, auth, serverAdapter = open()
	serverAdapter.EXPECT().SetToken("T1")

	assert.Equal(t, models.AuthAuthenticated, auth.Init(ctx))
	assert.Equal(t, "T1", auth.Session().Token)
	assert.Equal(t, "a@x.com", auth.User().Email)

	serverAdapter.EXPECT().SetToken("")
	auth.Logout(ctx)

	_, err := storages.SessionRepository.Get(ctx, "token")
	assert.ErrorIs(t, err, store.ErrSessionEntryNotFound)
	_, err = storages.SessionRepository.Get(ctx, "user")
	assert.ErrorIs(t, err, store.ErrSessionEntryNotFound)
	require.NoError(t, storages.Close())
}
