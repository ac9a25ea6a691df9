// Package dehancer implements the Dehancer Online operations the CLI needs:
// authentication, preset listing, image upload, contact previews, and
// render/export of developed images. Fetched presets and the auth session are
// cached on disk between invocations.
package dehancer

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/halide-labs/dehancer-cli/pkg/api"
	"github.com/halide-labs/dehancer-cli/pkg/diskcache"
	"github.com/halide-labs/dehancer-cli/pkg/preset"
)

// Client talks to the Dehancer Online API. Create it with New; the zero
// value is not usable.
type Client struct {
	api   *api.Client
	cache *diskcache.Store
	retry *api.Retryer
}

// New creates a Client against baseURL, restoring any auth session found in
// the cache. A nil httpClient uses the api package default.
func New(baseURL string, cache *diskcache.Store, httpClient *http.Client) *Client {
	a := api.New(baseURL)
	a.HTTPClient = httpClient
	a.Headers = baseHeaders

	c := &Client{
		api:   a,
		cache: cache,
		retry: api.NewRetryer(3, time.Second),
	}

	c.restoreSession()

	return c
}

// Retryer exposes the retry policy so tests can inject an instant sleeper.
func (c *Client) Retryer() *api.Retryer { return c.retry }

// restoreSession loads the auth cookies persisted by a previous `auth` run.
func (c *Client) restoreSession() {
	for _, key := range []string{cacheKeyAccessToken, cacheKeyAuth} {
		if v, ok := c.cache.GetString(key); ok {
			c.api.SetCookie(key, v)
		}
	}
}

// IsAuthorized reports whether an access token is present in the session.
// Authorized sessions can export without a watermark.
func (c *Client) IsAuthorized() bool {
	v, ok := c.api.Cookie(cacheKeyAccessToken)
	return ok && v != ""
}

type loginResponse struct {
	Success bool `json:"success"`
}

// Login authenticates with email and password. On success the access-token
// and auth cookies from the response are kept in the session and persisted
// in the cache; the cached preset list is dropped since the visible catalog
// can differ between sessions. Returns false when the service rejects the
// credentials.
func (c *Client) Login(ctx context.Context, email, password string) (bool, error) {
	// Stale tokens would be sent along with the login request otherwise.
	c.Logout()

	slog.Debug("logging in", "email", email)

	payload := map[string]string{
		"email":    email,
		"password": password,
	}

	var (
		resp   loginResponse
		header http.Header
	)
	err := c.retry.Do(ctx, func() error {
		var err error
		header, err = c.api.PostJSON(ctx, "/auth/login-with-email-and-password", payload, &resp)
		return err
	})
	if err != nil {
		return false, fmt.Errorf("dehancer: login: %w", err)
	}

	if !resp.Success {
		return false, nil
	}

	cookies := extractAuthCookies(header.Get("Set-Cookie"))
	if len(cookies) == 0 {
		return false, nil
	}

	for name, value := range cookies {
		c.api.SetCookie(name, value)
		if err := c.cache.Put(name, value); err != nil {
			slog.Debug("failed to persist auth cookie", "name", name, "error", err)
		}
	}

	// The preset list is session-scoped; force a refetch next time.
	_ = c.cache.Delete(cacheKeyPresets)

	return true, nil
}

// Logout drops the auth session from memory and cache.
func (c *Client) Logout() {
	c.api.ClearCookies()
	_ = c.cache.Delete(cacheKeyAccessToken)
	_ = c.cache.Delete(cacheKeyAuth)
}

// extractAuthCookies pulls the access-token and auth values out of a
// Set-Cookie header. The service concatenates both cookies into one header
// line, with the auth cookie prefixed by the Secure attribute of the first.
func extractAuthCookies(setCookie string) map[string]string {
	cookies := make(map[string]string)

	for _, part := range strings.Split(setCookie, "; ") {
		switch {
		case strings.HasPrefix(part, "access-token="):
			cookies[cacheKeyAccessToken] = strings.SplitN(part, "=", 2)[1]
		case strings.HasPrefix(part, "Secure, auth="):
			cookies[cacheKeyAuth] = strings.SplitN(part, "=", 2)[1]
		}
	}

	return cookies
}

type presetsResponse struct {
	Presets []preset.Preset `json:"presets"`
}

// AvailablePresets returns the preset catalog sorted by caption. The cached
// copy is used when present and fresh unless refresh forces a refetch.
func (c *Client) AvailablePresets(ctx context.Context, refresh bool) ([]preset.Preset, error) {
	if !refresh && c.cache.Fresh(cacheKeyPresets, presetsMaxAge) {
		var cached []preset.Preset
		if c.cache.Get(cacheKeyPresets, &cached) {
			slog.Debug("using cached presets", "count", len(cached))
			return cached, nil
		}
	}

	slog.Debug("fetching presets")

	var resp presetsResponse
	err := c.retry.Do(ctx, func() error {
		_, err := c.api.GetJSON(ctx, "/presets", &resp)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("dehancer: fetch presets: %w", err)
	}

	preset.Sort(resp.Presets)

	if err := c.cache.Put(cacheKeyPresets, resp.Presets); err != nil {
		slog.Debug("failed to cache presets", "error", err)
	}

	return resp.Presets, nil
}
