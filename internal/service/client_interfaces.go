package service

import (
	"context"

	"github.com/MKhiriev/go-note-keeper/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_services_mock.go -package=mock

// SessionStore keeps the client session across restarts.
type SessionStore interface {
	// Load returns the stored session or ErrNoSession when nothing usable
	// is stored. A partially written session is cleared and reported as
	// ErrNoSession.
	Load(ctx context.Context) (models.Session, error)

	// Save overwrites the stored session with s.
	Save(ctx context.Context, s models.Session) error

	// Clear removes both session entries.
	Clear(ctx context.Context) error
}

// AuthController owns the authentication state of the client.
//
// The state starts as models.AuthUnknown and resolves to
// models.AuthAuthenticated or models.AuthAnonymous after Init. Protected
// screens must consult Allow before they are shown.
type AuthController interface {
	// Init loads the stored session and resolves the initial state.
	Init(ctx context.Context) models.AuthState

	// Login authenticates against the server and persists the session.
	// On failure the state is left unchanged.
	Login(ctx context.Context, email, password string) error

	// Register creates an account and then logs in with the same credentials.
	Register(ctx context.Context, creds models.Credentials) error

	// Logout clears the stored session and the adapter token. It never
	// contacts the server.
	Logout(ctx context.Context)

	// HandleError inspects an error returned by a server call and logs the
	// user out when the server rejected the current token. A rejection of a
	// token that has since been replaced is ignored. It reports whether a
	// logout happened.
	HandleError(ctx context.Context, err error) bool

	// OnLogout registers fn to run after every switch to the anonymous
	// state, whether from Logout or from HandleError.
	OnLogout(fn func())

	// Allow reports whether a screen with the given access level may be shown.
	Allow(access models.Access) bool

	State() models.AuthState
	User() models.User
	Session() models.Session
}

// NotesService exposes the notes endpoints to the view-models.
type NotesService interface {
	ListNotes(ctx context.Context) ([]models.Note, error)
	CreateNote(ctx context.Context, draft models.NoteDraft) (models.Note, error)
	UpdateNote(ctx context.Context, id string, draft models.NoteDraft) (models.Note, error)
	DeleteNote(ctx context.Context, id string) error
	ListVersions(ctx context.Context, noteID string) ([]models.Version, error)
	GetVersion(ctx context.Context, noteID string, versionNumber int) (models.Version, error)
	RestoreVersion(ctx context.Context, noteID string, versionNumber int) (models.Note, error)
}

// AppInfoService reports build metadata and the reachability of the server.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	BuildInfo() models.AppBuildInfo

	// ServerStatus returns "healthy", "unhealthy" or "unreachable".
	ServerStatus(ctx context.Context) string
}
