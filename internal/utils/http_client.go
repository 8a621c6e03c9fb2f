package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

const userAgent = "go-cloud-sync"

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns a resty client preset for JSON calls to a single
// gateway: requests resolve against baseURL, carry a JSON content type and
// the client's User-Agent, and give up after timeout. A non-positive timeout
// leaves resty's default (none).
//
// Each call returns an independent client with its own connection pool.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", userAgent)
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &HTTPClient{Client: client}
}
