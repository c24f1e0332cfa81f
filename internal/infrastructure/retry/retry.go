// Package retry provides a generic exponential-backoff-with-jitter
// executor for the unreliable edges of the payment pipeline: backend
// calls, RPC submission, and balance lookups.
package retry

import (
	"context"
	"math"
	"math/rand/v2"
	"strings"
	"time"
)

// Config parameterizes one retry sequence. Immutable per invocation.
type Config struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	// ShouldRetry decides whether a failed attempt is worth repeating.
	// Nil means IsTransient.
	ShouldRetry func(error) bool

	// sleep is swapped out by tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// Network covers calls to the intent backend: 3 attempts, 1-5s.
func Network() Config {
	return Config{MaxAttempts: 3, BaseDelay: time.Second, MaxDelay: 5 * time.Second}
}

// Blockchain covers transaction submission: 5 attempts, 2-15s.
func Blockchain() Config {
	return Config{MaxAttempts: 5, BaseDelay: 2 * time.Second, MaxDelay: 15 * time.Second}
}

// Quick covers lightweight existence checks: 2 attempts, under a second.
func Quick() Config {
	return Config{MaxAttempts: 2, BaseDelay: 500 * time.Millisecond, MaxDelay: time.Second}
}

// Balance covers wallet balance lookups: 2 attempts, up to 2s.
func Balance() Config {
	return Config{MaxAttempts: 2, BaseDelay: time.Second, MaxDelay: 2 * time.Second}
}

var transientMarkers = []string{
	"timeout",
	"timed out",
	"connection",
	"network",
	"congest",
	"fetch",
	"temporarily unavailable",
}

// IsTransient matches network-class failures by message content.
// Anything else is treated as non-retryable.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range transientMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}

	return false
}

// Do runs op up to cfg.MaxAttempts times. A failure that the predicate
// rejects, or the last attempt's failure, propagates unchanged with no
// further delay. Between retryable failures it sleeps
// min(BaseDelay * 2^(attempt-1) * (1+jitter), MaxDelay) with jitter
// drawn uniformly from [0, 0.3). The sleep is cancellable via ctx.
func Do[T any](ctx context.Context, cfg Config, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	attempts := cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	shouldRetry := cfg.ShouldRetry
	if shouldRetry == nil {
		shouldRetry = IsTransient
	}

	sleep := cfg.sleep
	if sleep == nil {
		sleep = sleepCtx
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}

		lastErr = err
		if attempt == attempts || !shouldRetry(err) {
			break
		}

		if err := sleep(ctx, delayFor(cfg, attempt)); err != nil {
			return zero, err
		}
	}

	return zero, lastErr
}

func delayFor(cfg Config, attempt int) time.Duration {
	jitter := 1 + rand.Float64()*0.3
	delay := time.Duration(float64(cfg.BaseDelay) * math.Pow(2, float64(attempt-1)) * jitter)

	if cfg.MaxDelay > 0 && delay > cfg.MaxDelay {
		delay = cfg.MaxDelay
	}

	return delay
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
