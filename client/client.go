// Package client provides the JSON/GraphQL HTTP client used by source adapters.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/git-pkgs/versionbadge/fetch"
)

// Client is an HTTP client with retry and circuit breaking for upstream APIs.
type Client struct {
	fetcher   fetch.FetcherInterface
	userAgent string
	token     string
	opts      []fetch.Option
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.opts = append(c.opts, fetch.WithTimeout(d))
	}
}

// WithMaxRetries sets the maximum number of retries.
func WithMaxRetries(n int) Option {
	return func(c *Client) {
		c.opts = append(c.opts, fetch.WithMaxRetries(n))
	}
}

// WithBaseDelay sets the base delay between retries.
func WithBaseDelay(d time.Duration) Option {
	return func(c *Client) {
		c.opts = append(c.opts, fetch.WithBaseDelay(d))
	}
}

// WithAuthFunc sets a per-URL authentication header provider. It lets one
// client authenticate to some hosts and not others.
func WithAuthFunc(fn func(url string) (headerName, headerValue string)) Option {
	return func(c *Client) {
		c.opts = append(c.opts, fetch.WithAuthFunc(fn))
	}
}

// WithFetcher replaces the transport entirely. Timeout and retry options
// are ignored when a fetcher is supplied.
func WithFetcher(f fetch.FetcherInterface) Option {
	return func(c *Client) {
		c.fetcher = f
	}
}

// DefaultClient returns a client with sensible defaults:
// - 30s timeout
// - 5 retries with exponential backoff
// - Retry on 429 and 5xx responses
// - Per-host circuit breakers
func DefaultClient() *Client {
	return NewClient(WithTimeout(30*time.Second), WithMaxRetries(5))
}

// NewClient creates a new client with the given options.
func NewClient(opts ...Option) *Client {
	c := &Client{userAgent: "versionbadge"}
	for _, opt := range opts {
		opt(c)
	}
	if c.fetcher == nil {
		c.fetcher = fetch.NewCircuitBreakerFetcher(fetch.NewFetcher(c.opts...))
	}
	return c
}

// WithUserAgent returns a copy of the client that sends ua.
func (c *Client) WithUserAgent(ua string) *Client {
	cp := *c
	cp.userAgent = ua
	return &cp
}

// WithToken returns a copy of the client that sends a bearer token.
// An empty token disables authentication.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

func (c *Client) headers() http.Header {
	h := http.Header{}
	h.Set("User-Agent", c.userAgent)
	if c.token != "" {
		h.Set("Authorization", "bearer "+c.token)
	}
	return h
}

func (c *Client) do(ctx context.Context, req *fetch.Request) ([]byte, error) {
	slog.Debug("upstream request", "method", req.Method, "url", req.URL)

	resp, err := c.fetcher.Do(ctx, req)
	if err != nil {
		return nil, translate(req.URL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", req.URL, err)
	}
	return body, nil
}

// translate maps transport errors onto the client's error types.
func translate(url string, err error) error {
	var se *fetch.StatusError
	if !errors.As(err, &se) {
		return err
	}
	if se.StatusCode == http.StatusTooManyRequests {
		return &RateLimitError{RetryAfter: se.RetryAfter}
	}
	return &HTTPError{StatusCode: se.StatusCode, URL: url, Body: se.Body}
}

// GetBody performs a GET and returns the raw response body.
func (c *Client) GetBody(ctx context.Context, url string) ([]byte, error) {
	req := &fetch.Request{Method: http.MethodGet, URL: url, Header: c.headers()}
	return c.do(ctx, req)
}

// GetJSON performs a GET and decodes the JSON response into v.
func (c *Client) GetJSON(ctx context.Context, url string, v any) error {
	req := &fetch.Request{Method: http.MethodGet, URL: url, Header: c.headers()}
	req.Header.Set("Accept", "application/json")

	body, err := c.do(ctx, req)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decoding %s: %w", url, err)
	}
	return nil
}

// PostJSON encodes payload as the request body and decodes the JSON
// response into v.
func (c *Client) PostJSON(ctx context.Context, url string, payload, v any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	req := &fetch.Request{Method: http.MethodPost, URL: url, Header: c.headers(), Body: bytes.Clone(data)}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	body, err := c.do(ctx, req)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decoding %s: %w", url, err)
	}
	return nil
}

// Head reports whether url exists upstream.
func (c *Client) Head(ctx context.Context, url string) (bool, error) {
	_, _, err := c.fetcher.Head(ctx, url)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fetch.ErrNotFound) {
		return false, nil
	}
	return false, translate(url, err)
}
