package api

import (
	"context"
	"log/slog"
	"math"
	"math/rand"
	"time"
)

// Retryer re-runs an operation a bounded number of times when it fails with
// a retryable error (network, 5xx), backing off exponentially with jitter
// between attempts. 4xx application errors are returned immediately.
type Retryer struct {
	maxRetries int
	baseDelay  time.Duration

	// sleepFunc is used for testing; defaults to a context-aware sleep.
	sleepFunc func(ctx context.Context, d time.Duration) error
	// randFunc returns a random float64 in [0,1); used for jitter.
	randFunc func() float64
}

// NewRetryer creates a Retryer. Non-positive arguments fall back to 3
// retries and a 1s base delay.
func NewRetryer(maxRetries int, baseDelay time.Duration) *Retryer {
	if maxRetries <= 0 {
		maxRetries = 3
	}
	if baseDelay <= 0 {
		baseDelay = time.Second
	}

	return &Retryer{
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		sleepFunc:  contextSleep,
		randFunc:   rand.Float64,
	}
}

// SetSleepFunc overrides the sleep function (for testing).
func (r *Retryer) SetSleepFunc(fn func(ctx context.Context, d time.Duration) error) {
	r.sleepFunc = fn
}

// SetRandFunc overrides the random number generator (for testing).
func (r *Retryer) SetRandFunc(fn func() float64) { r.randFunc = fn }

// contextSleep sleeps for d or until ctx is cancelled.
func contextSleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// jitter applies ±25% random jitter to a duration.
func (r *Retryer) jitter(d time.Duration) time.Duration {
	factor := 0.75 + r.randFunc()*0.5
	return time.Duration(float64(d) * factor)
}

// Do runs op, retrying retryable failures up to the configured count.
func (r *Retryer) Do(ctx context.Context, op func() error) error {
	var lastErr error

	for attempt := range r.maxRetries + 1 {
		err := op()
		if err == nil {
			return nil
		}

		if !Retryable(err) {
			return err
		}

		lastErr = err

		if attempt >= r.maxRetries {
			break
		}

		// baseDelay * 2^attempt, jittered.
		backoff := r.jitter(r.baseDelay * time.Duration(math.Pow(2, float64(attempt))))

		slog.Debug("retrying after failure", "attempt", attempt+1, "backoff", backoff, "error", err)

		if err := r.sleepFunc(ctx, backoff); err != nil {
			return err
		}
	}

	return lastErr
}
