// internal/common/http/client.go

// Package http wraps the stdlib client with the timeout set once at
// construction, so feature clients talking to the extraction and
// analysis services share a single transport configuration.
package http

import (
	"context"
	"net/http"
	"time"
)

type Client struct {
	httpClient *http.Client
}

func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// DoWithContext sends a request under the caller's context in addition
// to the client timeout, whichever cancels first.
func (c *Client) DoWithContext(ctx context.Context, req *http.Request) (*http.Response, error) {
	req = req.WithContext(ctx)
	return c.httpClient.Do(req)
}
