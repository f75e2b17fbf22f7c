package service

import "errors"

var (
	ErrNoSession        = errors.New("no session stored")
	ErrNotAuthenticated = errors.New("not authenticated")

	ErrLoginOnServer    = errors.New("login on server failed")
	ErrRegisterOnServer = errors.New("registration on server failed")
	ErrEmptyToken       = errors.New("server returned an empty access token")

	ErrSavingSession   = errors.New("failed to save session")
	ErrClearingSession = errors.New("failed to clear session")
)
