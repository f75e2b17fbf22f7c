package adapter

import (
	"errors"
	"fmt"
)

// Sentinels matched through [RequestError.Unwrap].
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrServerError  = errors.New("server error")
	ErrNetwork      = errors.New("network error")
)

// Kind classifies a failed request.
type Kind int

const (
	// KindNetworkError is a transport failure: no HTTP response was received.
	KindNetworkError Kind = iota + 1
	// KindUnauthorized is a 401 or 403: the token is missing, expired or invalid,
	// or the credentials were rejected.
	KindUnauthorized
	// KindNotFound is a 404.
	KindNotFound
	// KindValidation is any other 4xx: the backend rejected the input.
	KindValidation
	// KindServerError is a 5xx or a response the client cannot decode.
	KindServerError
)

func (k Kind) String() string {
	switch k {
	case KindNetworkError:
		return "NetworkError"
	case KindUnauthorized:
		return "Unauthorized"
	case KindNotFound:
		return "NotFound"
	case KindValidation:
		return "Validation"
	case KindServerError:
		return "ServerError"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindNetworkError:
		return ErrNetwork
	case KindUnauthorized:
		return ErrUnauthorized
	case KindNotFound:
		return ErrNotFound
	case KindValidation:
		return ErrValidation
	case KindServerError:
		return ErrServerError
	default:
		return nil
	}
}

// RequestError is returned by every failed [ServerAdapter] call.
type RequestError struct {
	// Op is the adapter operation, e.g. "list notes".
	Op string
	// Kind is the failure class.
	Kind Kind
	// StatusCode is the HTTP status, zero for network errors.
	StatusCode int
	// Message is the backend "detail" text or the trimmed response body.
	Message string
	// Err is the underlying transport or decoding error, if any.
	Err error
	// Token is the bearer token the request carried, empty for anonymous
	// calls. It is never part of Error().
	Token string
}

func (e *RequestError) Error() string {
	msg := e.Op + ": " + e.Kind.String()
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (%d)", e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind sentinel and the underlying error, so
// errors.Is(err, ErrUnauthorized) and errors.Is(err, context.Canceled) both work.
func (e *RequestError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s := e.Kind.sentinel(); s != nil {
		errs = append(errs, s)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// KindOf returns the kind of the *RequestError in err's chain, or zero.
func KindOf(err error) Kind {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Kind
	}
	return 0
}

// IsUnauthorized reports whether err means the session is no longer accepted.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// TokenOf returns the bearer token carried by the failed request in err's
// chain. ok is false when err is not a *RequestError.
func TokenOf(err error) (token string, ok bool) {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Token, true
	}
	return "", false
}

// MessageOf returns the backend message carried by err, or err.Error() when
// there is none.
func MessageOf(err error) string {
	var reqErr *RequestError
	if errors.As(err, &reqErr) && reqErr.Message != "" {
		return reqErr.Message
	}
	return err.Error()
}
