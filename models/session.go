package models

// Session is the client-held proof of authentication.
// A session with a token always carries the user it was issued for.
type Session struct {
	Token string
	User  User
}

// Valid reports whether the session holds a token together with a user.
func (s Session) Valid() bool {
	return s.Token != "" && s.User.Email != ""
}

// IsZero reports whether nothing is stored in the session.
func (s Session) IsZero() bool {
	return s.Token == "" && s.User.Email == ""
}
