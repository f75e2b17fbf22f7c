package viewmodel

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/MKhiriev/go-note-keeper/internal/adapter"
	"github.com/MKhiriev/go-note-keeper/internal/apitest"
	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/service"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/internal/validators"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// client is one run of the client program against the fake API.
type client struct {
	storages *store.ClientStorages
	services *service.ClientServices
	list     *NotesList
	detail   *NoteDetail
}

func startClient(t *testing.T, apiURL, dsn string) *client {
	t.Helper()
	ctx := context.Background()

	serverAdapter, err := adapter.NewHTTPServerAdapter(config.ClientAdapter{HTTPAddress: apiURL}, logger.Nop())
	require.NoError(t, err)

	storages, err := store.NewClientStorages(ctx, config.ClientStorage{DB: config.ClientDB{DSN: dsn}}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = storages.Close() })

	services := service.NewClientServices(storages, serverAdapter, models.NewAppBuildInfo("test", "", ""), logger.Nop())
	v := validators.NewFormValidator()

	return &client{
		storages: storages,
		services: services,
		list:     NewNotesList(services.Notes, services.Auth, v, logger.Nop()),
		detail:   NewNoteDetail(services.Notes, services.Auth, v, logger.Nop()),
	}
}

func newScenario(t *testing.T) (*apitest.Server, *client, string) {
	t.Helper()
	api := apitest.NewServer(t)
	api.AddUser("alice", "a@x.com", "pw")

	dsn := filepath.Join(t.TempDir(), "client.db")
	c := startClient(t, api.URL, dsn)

	require.Equal(t, models.AuthAnonymous, c.services.Auth.Init(context.Background()))
	require.NoError(t, c.services.Auth.Login(context.Background(), "a@x.com", "pw"))

	return api, c, dsn
}

func TestScenario_LoginSurvivesReload(t *testing.T) {
	ctx := context.Background()
	api, first, dsn := newScenario(t)

	token := first.services.Auth.Session().Token
	require.NotEmpty(t, token)
	require.NoError(t, first.storages.Close())

	reloaded := startClient(t, api.URL, dsn)

	assert.Equal(t, models.AuthAuthenticated, reloaded.services.Auth.Init(ctx))
	assert.Equal(t, token, reloaded.services.Auth.Session().Token)
	assert.Equal(t, "a@x.com", reloaded.services.Auth.User().Email)

	// the restored token is installed and accepted
	require.NoError(t, reloaded.list.Refresh(ctx))
}

func TestScenario_CreateThenDeleteWithConfirmation(t *testing.T) {
	ctx := context.Background()
	api, c, _ := newScenario(t)

	_, err := c.list.Create(ctx, "T", "C")
	require.NoError(t, err)

	notes := c.list.Notes()
	require.Len(t, notes, 1)
	assert.Equal(t, "T", notes[0].Title)
	assert.Equal(t, "C", notes[0].Content)

	_, err = c.list.RequestDelete(notes[0].ID)
	require.NoError(t, err)
	assert.Zero(t, api.Calls(http.MethodDelete, "/notes/{noteID}"), "no call before confirmation")

	require.NoError(t, c.list.ConfirmDelete(ctx))

	assert.Equal(t, 1, api.Calls(http.MethodDelete, "/notes/{noteID}"))
	assert.Empty(t, c.list.Notes())
	assert.Empty(t, api.Notes("a@x.com"))
}

func TestScenario_CancelledDeleteMakesNoCall(t *testing.T) {
	ctx := context.Background()
	api, c, _ := newScenario(t)

	created, err := c.list.Create(ctx, "keep", "me")
	require.NoError(t, err)

	_, err = c.list.RequestDelete(created.ID)
	require.NoError(t, err)
	c.list.CancelDelete()

	assert.ErrorIs(t, c.list.ConfirmDelete(ctx), ErrNothingToConfirm)
	assert.Zero(t, api.Calls(http.MethodDelete, "/notes/{noteID}"))
	assert.Len(t, c.list.Notes(), 1)
}

func TestScenario_CreatedFieldsRoundTripVerbatim(t *testing.T) {
	ctx := context.Background()
	_, c, _ := newScenario(t)

	inputs := []models.NoteDraft{
		{Title: "plain", Content: "text"},
		{Title: "  padded  ", Content: "\ttabbed\n"},
		{Title: "Ünïcødé ✓", Content: "日本語のノート"},
		{Title: `quotes "and" \ slashes`, Content: "<b>markup</b> & {json: true}"},
		{Title: "multi", Content: "line 1\nline 2\r\nline 3"},
	}

	for _, in := range inputs {
		created, err := c.list.Create(ctx, in.Title, in.Content)
		require.NoError(t, err)

		idx := -1
		for i, n := range c.list.Notes() {
			if n.ID == created.ID {
				idx = i
			}
		}
		require.GreaterOrEqual(t, idx, 0, "created note missing after refresh")

		got := c.list.Notes()[idx]
		assert.Equal(t, in.Title, got.Title)
		assert.Equal(t, in.Content, got.Content)
	}
}

func TestScenario_RestoreVersionRestoresSnapshot(t *testing.T) {
	ctx := context.Background()
	_, c, _ := newScenario(t)

	created, err := c.list.Create(ctx, "Draft", "first body")
	require.NoError(t, err)

	require.NoError(t, c.detail.Load(ctx, created.ID))
	require.NoError(t, c.detail.StartEdit())
	require.NoError(t, c.detail.SetDraft("Draft", "second body"))
	require.NoError(t, c.detail.Save(ctx))

	note, _ := c.detail.Note()
	require.Equal(t, "second body", note.Content)

	require.NoError(t, c.detail.ListVersions(ctx))
	versions := c.detail.Versions()
	require.Len(t, versions, 1)
	assert.Equal(t, "first body", versions[0].ContentSnapshot)

	preview, err := c.detail.PreviewVersion(ctx, versions[0].VersionNumber)
	require.NoError(t, err)
	assert.Equal(t, "first body", preview.ContentSnapshot)

	_, err = c.detail.RequestRestore(versions[0].VersionNumber)
	require.NoError(t, err)
	require.NoError(t, c.detail.ConfirmRestore(ctx))

	note, _ = c.detail.Note()
	assert.Equal(t, versions[0].ContentSnapshot, note.Content)
	assert.False(t, c.detail.HistoryOpen())

	// the content replaced by the restore is kept as a new version
	require.NoError(t, c.detail.ListVersions(ctx))
	history := c.detail.Versions()
	require.Len(t, history, 2)
	assert.Equal(t, "second body", history[1].ContentSnapshot)
}

func TestScenario_UnauthorizedForcesLogout(t *testing.T) {
	ctx := context.Background()
	api, c, _ := newScenario(t)
	require.NoError(t, c.list.Refresh(ctx))

	api.RevokeTokens()

	err := c.list.Refresh(ctx)
	require.Error(t, err)
	assert.True(t, adapter.IsUnauthorized(err))

	assert.Equal(t, models.AuthAnonymous, c.services.Auth.State())
	assert.False(t, c.services.Auth.Allow(models.AccessProtected))

	_, err = c.services.Sessions.Load(ctx)
	assert.ErrorIs(t, err, service.ErrNoSession)
}

func TestScenario_ForcedLogoutForgetsPreviousUsersNotes(t *testing.T) {
	ctx := context.Background()
	api, c, _ := newScenario(t)
	api.AddUser("bob", "b@x.com", "pw")

	created, err := c.list.Create(ctx, "alice secret", "private")
	require.NoError(t, err)
	require.NoError(t, c.detail.Load(ctx, created.ID))

	api.RevokeTokens()
	require.Error(t, c.list.Refresh(ctx))
	require.Equal(t, models.AuthAnonymous, c.services.Auth.State())

	assert.False(t, c.list.Loaded())
	assert.Empty(t, c.list.Visible())
	assert.Empty(t, c.detail.NoteID())
	_, loaded := c.detail.Note()
	assert.False(t, loaded)

	require.NoError(t, c.services.Auth.Login(ctx, "b@x.com", "pw"))
	assert.Empty(t, c.list.Visible(), "nothing is shown before bob's own refresh")

	require.NoError(t, c.list.Refresh(ctx))
	assert.Empty(t, c.list.Visible())
}

func TestScenario_LateRejectionOfOldTokenKeepsNewSession(t *testing.T) {
	ctx := context.Background()
	api, c, _ := newScenario(t)

	api.RevokeTokens()
	_, staleErr := c.services.Notes.ListNotes(ctx)
	require.True(t, adapter.IsUnauthorized(staleErr))

	require.NoError(t, c.services.Auth.Login(ctx, "a@x.com", "pw"))
	fresh := c.services.Auth.Session().Token

	assert.False(t, c.services.Auth.HandleError(ctx, staleErr))
	assert.Equal(t, models.AuthAuthenticated, c.services.Auth.State())
	assert.Equal(t, fresh, c.services.Auth.Session().Token)
	require.NoError(t, c.list.Refresh(ctx))
}

func TestScenario_LogoutClearsDurableEntries(t *testing.T) {
	ctx := context.Background()
	_, c, _ := newScenario(t)

	c.services.Auth.Logout(ctx)

	assert.Equal(t, models.AuthAnonymous, c.services.Auth.State())
	assert.False(t, c.services.Auth.Allow(models.AccessProtected))

	for _, key := range []string{"token", "user"} {
		_, err := c.storages.SessionRepository.Get(ctx, key)
		assert.ErrorIs(t, err, store.ErrSessionEntryNotFound, key)
	}

	// a request without a token is rejected by the server
	err := c.list.Refresh(ctx)
	assert.True(t, adapter.IsUnauthorized(err))
}

func TestScenario_RegisterThenLogin(t *testing.T) {
	ctx := context.Background()
	api := apitest.NewServer(t)
	c := startClient(t, api.URL, filepath.Join(t.TempDir(), "client.db"))
	c.services.Auth.Init(ctx)

	creds := models.Credentials{Username: "bob", Email: "b@x.com", Password: "secret"}
	require.NoError(t, c.services.Auth.Register(ctx, creds))
	assert.Equal(t, models.AuthAuthenticated, c.services.Auth.State())

	c.services.Auth.Logout(ctx)
	err := c.services.Auth.Register(ctx, creds)
	assert.ErrorIs(t, err, adapter.ErrValidation)
	assert.Equal(t, "Email already registered", adapter.MessageOf(err))
	assert.Equal(t, models.AuthAnonymous, c.services.Auth.State())
}

func TestScenario_WrongPassword(t *testing.T) {
	ctx := context.Background()
	api := apitest.NewServer(t)
	api.AddUser("alice", "a@x.com", "pw")
	c := startClient(t, api.URL, filepath.Join(t.TempDir(), "client.db"))
	c.services.Auth.Init(ctx)

	err := c.services.Auth.Login(ctx, "a@x.com", "nope")

	assert.True(t, adapter.IsUnauthorized(err))
	assert.Equal(t, "Invalid email or password", adapter.MessageOf(err))
	assert.Equal(t, models.AuthAnonymous, c.services.Auth.State())
}

func TestScenario_ServerStatus(t *testing.T) {
	api, c, _ := newScenario(t)
	ctx := context.Background()

	assert.Equal(t, service.ServerHealthy, c.services.AppInfo.ServerStatus(ctx))

	api.SetHealthy(false)
	assert.Equal(t, service.ServerUnhealthy, c.services.AppInfo.ServerStatus(ctx))
}
