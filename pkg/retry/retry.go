// Package retry runs an operation with exponential backoff until it succeeds,
// fails permanently or the context ends.
package retry

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"strings"
	"time"
)

// ErrInvalidConfig is returned when the policy cannot run a single attempt.
var ErrInvalidConfig = errors.New("retry: max attempts must be greater than 0")

// Policy describes how an operation is retried.
type Policy struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
	// Transient lists lower-case substrings that mark an error as retryable.
	// Empty means every error is retried unless wrapped with Permanent.
	Transient []string
	// OnRetry, when set, is called before sleeping ahead of the next attempt.
	OnRetry func(attempt int, err error, wait time.Duration)
}

// DefaultPolicy retries five times starting at one second.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:  5,
		InitialDelay: time.Second,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
}

// DatabasePolicy retries only on errors that look like a database that is
// still starting or briefly unreachable.
func DatabasePolicy() Policy {
	p := DefaultPolicy()
	p.Transient = []string{
		"connection refused",
		"connection reset",
		"connection timed out",
		"i/o timeout",
		"dial tcp",
		"network is unreachable",
		"no such host",
		"server closed the connection",
		"too many connections",
		"database system is starting up",
		"database is locked",
	}
	return p
}

type permanentError struct{ err error }

func (e permanentError) Error() string { return e.err.Error() }
func (e permanentError) Unwrap() error { return e.err }

// Permanent marks err so that it is returned immediately without retrying.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return permanentError{err: err}
}

// Do runs fn under the policy.
func Do(ctx context.Context, p Policy, fn func() error) error {
	_, err := Value(ctx, p, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

// Value runs fn under the policy and returns its result.
func Value[T any](ctx context.Context, p Policy, fn func() (T, error)) (T, error) {
	var zero T
	if p.MaxAttempts <= 0 {
		return zero, ErrInvalidConfig
	}

	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !p.Retryable(err) {
			var perm permanentError
			if errors.As(err, &perm) {
				return zero, perm.err
			}
			return zero, err
		}
		if attempt == p.MaxAttempts {
			break
		}

		wait := jitter(p.Backoff(attempt))
		if p.OnRetry != nil {
			p.OnRetry(attempt, err, wait)
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
	}

	return zero, lastErr
}

// Backoff returns the wait after the given 1-based attempt, capped at MaxDelay.
func (p Policy) Backoff(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	mult := p.Multiplier
	if mult < 1 {
		mult = 1
	}
	d := float64(p.InitialDelay) * math.Pow(mult, float64(attempt-1))
	if p.MaxDelay > 0 && d > float64(p.MaxDelay) {
		d = float64(p.MaxDelay)
	}
	return time.Duration(d)
}

// Retryable reports whether err should lead to another attempt.
func (p Policy) Retryable(err error) bool {
	if err == nil {
		return false
	}
	var perm permanentError
	if errors.As(err, &perm) {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if len(p.Transient) == 0 {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, pattern := range p.Transient {
		if strings.Contains(msg, strings.ToLower(pattern)) {
			return true
		}
	}
	return false
}

// jitter spreads d by ±10%.
func jitter(d time.Duration) time.Duration {
	//nolint:gosec // jitter has no security requirement
	return d + time.Duration(float64(d)*0.1*(rand.Float64()*2-1))
}
