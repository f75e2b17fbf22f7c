package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyTitle    = errors.New("title is required")
	ErrEmptyContent  = errors.New("content is required")
	ErrEmptyEmail    = errors.New("email is required")
	ErrInvalidEmail  = errors.New("email is not valid")
	ErrEmptyPassword = errors.New("password is required")
	ErrEmptyUsername = errors.New("username is required")
)
