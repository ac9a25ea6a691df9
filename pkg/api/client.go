// Package api provides the HTTP plumbing shared by all Dehancer Online
// calls: base URL handling, session cookies, default headers, typed remote
// errors, and bounded retries with backoff.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"
)

// defaultTimeout bounds every request. The service renders images
// synchronously, so individual calls can be slow but must not hang forever.
const defaultTimeout = 2 * time.Minute

// Client is a thin session-aware HTTP client. All request helpers apply the
// configured base headers and session cookies.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client      // falls back to a client with defaultTimeout
	Headers    map[string]string // applied to every request

	mu      sync.RWMutex
	cookies map[string]string

	clientOnce    sync.Once
	defaultClient *http.Client
}

// New creates a Client for the given base URL (no trailing slash).
func New(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		cookies: make(map[string]string),
	}
}

// SetCookie stores a session cookie sent with every subsequent request.
func (c *Client) SetCookie(name, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cookies == nil {
		c.cookies = make(map[string]string)
	}
	c.cookies[name] = value
}

// Cookie returns a session cookie previously set.
func (c *Client) Cookie(name string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.cookies[name]
	return v, ok
}

// ClearCookies drops all session cookies.
func (c *Client) ClearCookies() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cookies = make(map[string]string)
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}

	c.clientOnce.Do(func() {
		c.defaultClient = &http.Client{Timeout: defaultTimeout}
	})

	return c.defaultClient
}

// NewRequest builds an *http.Request with base headers and session cookies
// applied. A path beginning with "http" is used verbatim; this is how upload
// PUTs reach the presigned storage URLs the API hands out.
func (c *Client) NewRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	url := path
	if !strings.HasPrefix(path, "http") {
		url = c.BaseURL + path
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}

	for k, v := range c.Headers {
		req.Header.Set(k, v)
	}

	c.mu.RLock()
	for name, value := range c.cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}
	c.mu.RUnlock()

	return req, nil
}

// Do sends the request, wrapping transport failures in NetworkError.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	resp, err := c.httpClient().Do(req) //nolint:gosec // URL is built from trusted BaseURL config, not user input
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	return resp, nil
}

// PostJSON marshals payload as JSON, sends a POST to the given path, checks
// for a 2xx status, and unmarshals the response body into dest. If dest is
// nil the body is discarded after the status check. The response itself is
// returned so callers can read headers such as Set-Cookie.
func (c *Client) PostJSON(ctx context.Context, path string, payload, dest any) (http.Header, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("api: marshal payload: %w", err)
	}

	req, err := c.NewRequest(ctx, http.MethodPost, path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("api: build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	return c.doJSON(req, dest)
}

// GetJSON sends a GET to the given path and unmarshals the JSON response
// into dest.
func (c *Client) GetJSON(ctx context.Context, path string, dest any) (http.Header, error) {
	req, err := c.NewRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, fmt.Errorf("api: build request: %w", err)
	}

	return c.doJSON(req, dest)
}

// PutBytes uploads raw bytes to the given URL and returns the response
// headers. Used for image content PUTs, where the interesting part of the
// response is the ETag header.
func (c *Client) PutBytes(ctx context.Context, url, contentType string, data []byte) (http.Header, error) {
	req, err := c.NewRequest(ctx, http.MethodPut, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("api: build request: %w", err)
	}

	req.Header.Set("Content-Type", contentType)

	resp, err := c.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.Header, nil
}

func (c *Client) doJSON(req *http.Request, dest any) (http.Header, error) {
	slog.Debug("api request", "method", req.Method, "url", req.URL.String())

	resp, err := c.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkStatus(resp); err != nil {
		slog.Debug("api response", "url", req.URL.String(), "error", err)
		return nil, err
	}

	slog.Debug("api response", "url", req.URL.String(), "status", resp.StatusCode)

	if dest == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.Header, nil
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return nil, fmt.Errorf("api: decode response: %w", err)
	}

	return resp.Header, nil
}

// checkStatus converts non-2xx responses into typed errors, consuming the
// body for the error message.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	if resp.StatusCode == http.StatusTooManyRequests {
		return &RateLimitError{
			RetryAfter: ParseRetryAfter(resp.Header.Get("Retry-After")),
			Body:       string(body),
		}
	}

	return statusError(resp.StatusCode, string(body), resp.Request.URL.String())
}
