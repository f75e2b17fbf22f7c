package viewmodel

import "context"

// ErrorHandler receives every failed server call and announces logouts.
// service.AuthController implements it.
type ErrorHandler interface {
	HandleError(ctx context.Context, err error) bool
	OnLogout(fn func())
}
