package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// NetworkError wraps a transport-level failure (DNS, connect, TLS, timeout).
// These are retryable.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("api: network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// AuthRequiredError is returned for 401/403 responses. Retrying cannot help;
// the user has to run the auth flow again.
type AuthRequiredError struct {
	Status int
	Body   string
}

func (e *AuthRequiredError) Error() string {
	return fmt.Sprintf("api: authorization required (status %d): %s", e.Status, e.Body)
}

// NotFoundError is returned for 404 responses.
type NotFoundError struct {
	URL string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("api: not found: %s", e.URL)
}

// RateLimitError is returned when the API responds with HTTP 429. It carries
// an optional RetryAfter duration parsed from the Retry-After header so the
// message can tell the user when to try again; like other 4xx application
// errors it is surfaced immediately rather than retried.
type RateLimitError struct {
	RetryAfter time.Duration
	Body       string
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("api: rate limited (retry after %s): %s", e.RetryAfter, e.Body)
	}
	return fmt.Sprintf("api: rate limited: %s", e.Body)
}

// ServerError is returned for 5xx responses. These are retryable: the
// service occasionally hiccups under load.
type ServerError struct {
	Status int
	Body   string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("api: server error (status %d): %s", e.Status, e.Body)
}

// ParseRetryAfter parses the Retry-After header value as either seconds
// (integer) or an HTTP-date (RFC 7231). Returns zero if unparseable or if the
// date is in the past.
func ParseRetryAfter(val string) time.Duration {
	if val == "" {
		return 0
	}
	if secs, err := strconv.Atoi(val); err == nil {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(val); err == nil {
		d := time.Until(t)
		if d > 0 {
			return d
		}
		return 0
	}
	return 0
}

// statusError maps a non-2xx response to a typed error.
func statusError(status int, body, url string) error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &AuthRequiredError{Status: status, Body: body}
	case status == http.StatusNotFound:
		return &NotFoundError{URL: url}
	case status == http.StatusTooManyRequests:
		return &RateLimitError{Body: body}
	case status >= 500:
		return &ServerError{Status: status, Body: body}
	default:
		return fmt.Errorf("api: unexpected status %d: %s", status, body)
	}
}

// Retryable reports whether err is worth retrying: transient network
// failures and server-side errors. 4xx application errors, rate limits
// included, are not.
func Retryable(err error) bool {
	var (
		netErr *NetworkError
		srvErr *ServerError
	)
	return errors.As(err, &netErr) || errors.As(err, &srvErr)
}
