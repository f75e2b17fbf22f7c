package adapter

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// mapHTTPError converts a non-2xx response into a *RequestError.
// token is the bearer token the request was sent with.
func mapHTTPError(op, token string, resp *resty.Response) error {
	code := resp.StatusCode()
	if code >= http.StatusOK && code < http.StatusMultipleChoices {
		return nil
	}

	reqErr := &RequestError{
		Op:         op,
		StatusCode: code,
		Message:    extractDetail(resp.Body()),
		Token:      token,
	}
	if reqErr.Message == "" {
		reqErr.Message = http.StatusText(code)
	}

	switch {
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		reqErr.Kind = KindUnauthorized
	case code == http.StatusNotFound:
		reqErr.Kind = KindNotFound
	case code >= http.StatusBadRequest && code < http.StatusInternalServerError:
		reqErr.Kind = KindValidation
	default:
		reqErr.Kind = KindServerError
	}

	return reqErr
}

// mapTransportError wraps a failure that produced no HTTP response.
func mapTransportError(op string, err error) error {
	return &RequestError{Op: op, Kind: KindNetworkError, Err: err}
}

// decodeError reports a 2xx response the client cannot understand.
func decodeError(op string, resp *resty.Response, err error) error {
	return &RequestError{
		Op:         op,
		Kind:       KindServerError,
		StatusCode: resp.StatusCode(),
		Message:    "unexpected response body",
		Err:        err,
	}
}

// extractDetail pulls the human-readable message out of an error body.
// The notes API answers {"detail": "..."}; request validation failures carry
// a list of {"msg": "..."} objects instead. Anything else is returned trimmed.
func extractDetail(body []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return strings.TrimSpace(string(body))
	}

	var text string
	if err := json.Unmarshal(envelope.Detail, &text); err == nil {
		return text
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(envelope.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, item := range items {
			if item.Msg != "" {
				msgs = append(msgs, item.Msg)
			}
		}
		if len(msgs) > 0 {
			return strings.Join(msgs, "; ")
		}
	}

	return strings.TrimSpace(string(envelope.Detail))
}
