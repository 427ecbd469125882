// Package client implements the thin JSON REST client shared by every
// Chronicle API wrapper in this repository.
//
// The client performs one synchronous request per call and does not retry
// beyond what the underlying HTTP transport provides.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config holds everything needed to construct a Client.
type Config struct {
	// BaseURL is the scheme and host of the API, already adjusted for the
	// selected region, e.g. "https://backstory.googleapis.com".
	BaseURL string

	// HTTPClient issues the requests. It is expected to attach
	// authentication (see the auth package). Defaults to http.DefaultClient.
	HTTPClient *http.Client

	Logger zerolog.Logger
}

// Client is a JSON REST client bound to one API base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

// New creates a Client from config.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: httpClient,
		log:        cfg.Logger,
	}, nil
}

// BaseURL returns the base URL the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do issues one request and decodes the JSON response into out. A nil out
// discards the response body. Bodies are JSON-encoded from body when it is
// non-nil. Responses with status >= 400 become an *APIError carrying the
// server's message.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + "/" + strings.TrimPrefix(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("api call")

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(respBody),
		}
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// UpdateMask builds the update_mask query parameter from field paths, the
// way the API expects them: comma-joined, no spaces. List-valued fields
// named in a mask are replaced whole; the API does not merge lists.
func UpdateMask(paths ...string) url.Values {
	v := url.Values{}
	v.Set("update_mask", strings.Join(paths, ","))
	return v
}
