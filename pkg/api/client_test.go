package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostJSON_SendsPayloadAndHeaders(t *testing.T) {
	var got struct {
		method      string
		contentType string
		userAgent   string
		cookies     []*http.Cookie
		body        map[string]string
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.method = r.Method
		got.contentType = r.Header.Get("Content-Type")
		got.userAgent = r.Header.Get("User-Agent")
		got.cookies = r.Cookies()
		_ = json.NewDecoder(r.Body).Decode(&got.body)
		_ = json.NewEncoder(w).Encode(map[string]bool{"success": true})
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.Headers = map[string]string{"User-Agent": "test-agent"}
	c.SetCookie("access-token", "tok")

	var resp struct {
		Success bool `json:"success"`
	}
	_, err := c.PostJSON(context.Background(), "/auth", map[string]string{"email": "a@b.c"}, &resp)
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "application/json", got.contentType)
	assert.Equal(t, "test-agent", got.userAgent)
	assert.Equal(t, map[string]string{"email": "a@b.c"}, got.body)

	require.Len(t, got.cookies, 1)
	assert.Equal(t, "access-token", got.cookies[0].Name)
	assert.Equal(t, "tok", got.cookies[0].Value)
}

func TestGetJSON_DecodesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]int{"n": 7})
	}))
	defer srv.Close()

	c := New(srv.URL)

	var resp struct {
		N int `json:"n"`
	}
	_, err := c.GetJSON(context.Background(), "/n", &resp)
	require.NoError(t, err)
	assert.Equal(t, 7, resp.N)
}

func TestPutBytes_ReturnsHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "image/jpeg", r.Header.Get("Content-Type"))
		w.Header().Set("ETag", `"etag-1"`)
	}))
	defer srv.Close()

	c := New("http://unused.example")

	// An absolute URL bypasses BaseURL, as presigned upload URLs do.
	header, err := c.PutBytes(context.Background(), srv.URL+"/part1", "image/jpeg", []byte("bytes"))
	require.NoError(t, err)
	assert.Equal(t, `"etag-1"`, header.Get("ETag"))
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		status int
		check  func(t *testing.T, err error)
	}{
		{http.StatusUnauthorized, func(t *testing.T, err error) {
			var e *AuthRequiredError
			require.ErrorAs(t, err, &e)
			assert.Equal(t, http.StatusUnauthorized, e.Status)
			assert.False(t, Retryable(err))
		}},
		{http.StatusForbidden, func(t *testing.T, err error) {
			var e *AuthRequiredError
			require.ErrorAs(t, err, &e)
			assert.False(t, Retryable(err))
		}},
		{http.StatusNotFound, func(t *testing.T, err error) {
			var e *NotFoundError
			require.ErrorAs(t, err, &e)
			assert.False(t, Retryable(err))
		}},
		{http.StatusInternalServerError, func(t *testing.T, err error) {
			var e *ServerError
			require.ErrorAs(t, err, &e)
			assert.Equal(t, http.StatusInternalServerError, e.Status)
			assert.True(t, Retryable(err))
		}},
		{http.StatusBadGateway, func(t *testing.T, err error) {
			var e *ServerError
			require.ErrorAs(t, err, &e)
			assert.True(t, Retryable(err))
		}},
	}

	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "boom", tt.status)
		}))

		c := New(srv.URL)
		_, err := c.GetJSON(context.Background(), "/x", nil)
		require.Error(t, err, tt.status)
		tt.check(t, err)

		srv.Close()
	}
}

func TestStatusMapping_RateLimitWithRetryAfter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Retry-After", "7")
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.GetJSON(context.Background(), "/x", nil)

	var e *RateLimitError
	require.ErrorAs(t, err, &e)
	assert.Equal(t, 7*time.Second, e.RetryAfter)
	assert.False(t, Retryable(err))
}

func TestDo_NetworkError(t *testing.T) {
	// A server that is already closed refuses connections.
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	c := New(srv.URL)
	_, err := c.GetJSON(context.Background(), "/x", nil)

	var e *NetworkError
	require.ErrorAs(t, err, &e)
	assert.True(t, Retryable(err))
}

func TestCookies(t *testing.T) {
	c := New("http://example.com")

	c.SetCookie("a", "1")
	c.SetCookie("b", "2")

	v, ok := c.Cookie("a")
	require.True(t, ok)
	assert.Equal(t, "1", v)

	c.ClearCookies()
	_, ok = c.Cookie("a")
	assert.False(t, ok)
}

func TestParseRetryAfter(t *testing.T) {
	assert.Equal(t, time.Duration(0), ParseRetryAfter(""))
	assert.Equal(t, 30*time.Second, ParseRetryAfter("30"))
	assert.Equal(t, time.Duration(0), ParseRetryAfter("not-a-value"))

	future := time.Now().Add(time.Minute).UTC().Format(http.TimeFormat)
	d := ParseRetryAfter(future)
	assert.Greater(t, d, 50*time.Second)

	past := time.Now().Add(-time.Minute).UTC().Format(http.TimeFormat)
	assert.Equal(t, time.Duration(0), ParseRetryAfter(past))
}
