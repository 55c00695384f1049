// Package supabase is a thin client for the hosted Supabase project the panel
// moderates against: GoTrue for credentials, PostgREST for filtered CRUD.
// Its internals (consistency, transport) are the service's concern, not ours;
// every failure is surfaced to the caller unchanged.
package supabase

import (
	"net/http"
	"strings"
	"time"
)

// Client talks to a single Supabase project.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a client for the project at baseURL using the given API key.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: time.Second * 15,
		},
	}
}

// SetTimeout sets the request timeout.
func (c *Client) SetTimeout(timeout time.Duration) {
	c.httpClient.Timeout = timeout
}

func (c *Client) setCommonHeaders(req *http.Request) {
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
}
