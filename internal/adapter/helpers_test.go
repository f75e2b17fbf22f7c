package adapter

import (
	"net/http"

	"github.com/go-resty/resty/v2"
)

// newResponse builds a resty response without a round trip.
func newResponse(status int, body string) *resty.Response {
	resp := &resty.Response{
		RawResponse: &http.Response{StatusCode: status, Header: http.Header{}},
	}
	resp.SetBody([]byte(body))
	return resp
}
