package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient wraps a resty client preconfigured for the notes API.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns a client bound to baseURL. A zero timeout keeps the
// transport default. Retries are disabled.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")

	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &HTTPClient{Client: client}
}
