package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token is the access token returned by a successful login.
//
// The client treats AccessToken as opaque: it is stored and sent back as a
// bearer credential and trusted until the backend rejects it. Claims holds
// whatever could be read from the token without verifying its signature and
// is used only for display.
type Token struct {
	// AccessToken is the compact serialized token.
	AccessToken string `json:"access_token"`

	// TokenType is the scheme announced by the backend, usually "bearer".
	TokenType string `json:"token_type"`

	// Claims is the unverified claim set. Nil when the token is not a JWT.
	Claims *jwt.RegisteredClaims `json:"-"`
}

// String returns the compact token.
func (t Token) String() string {
	return t.AccessToken
}

// ExpiresAt returns the expiry announced by the token, if any.
func (t Token) ExpiresAt() (time.Time, bool) {
	if t.Claims == nil || t.Claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return t.Claims.ExpiresAt.Time, true
}
