package models

// AuthState is the authentication state of the client.
type AuthState int

const (
	AuthUnknown AuthState = iota
	AuthAnonymous
	AuthAuthenticated
)

func (s AuthState) String() string {
	switch s {
	case AuthAnonymous:
		return "anonymous"
	case AuthAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Access is the access level of a screen.
type Access int

const (
	AccessPublic Access = iota
	AccessProtected
)
