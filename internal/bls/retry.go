package bls

import (
	"context"
	"time"
)

// RetryPolicy bounds attempts per chunk and computes exponential backoff.
type RetryPolicy struct {
	maxAttempts         int
	baseDelay           time.Duration
	rateLimitMultiplier int
}

// NewRetryPolicy builds a policy; non-positive arguments fall back to defaults.
func NewRetryPolicy(maxAttempts int, baseDelay time.Duration, rateLimitMultiplier int) RetryPolicy {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxRetries
	}
	if baseDelay <= 0 {
		baseDelay = DefaultBackoffBase
	}
	if rateLimitMultiplier <= 0 {
		rateLimitMultiplier = DefaultRateLimitMultiplier
	}
	return RetryPolicy{maxAttempts: maxAttempts, baseDelay: baseDelay, rateLimitMultiplier: rateLimitMultiplier}
}

// MaxAttempts returns the attempt bound.
func (p RetryPolicy) MaxAttempts() int {
	return p.maxAttempts
}

// ShouldRetry reports whether another attempt may follow the failed attempt
// (0-based). A cancelled or expired caller context is never retried; an HTTP
// client timeout is an ordinary failed attempt.
func (p RetryPolicy) ShouldRetry(ctx context.Context, attempt int) bool {
	return ctx.Err() == nil && attempt+1 < p.maxAttempts
}

// Backoff returns base × 2^attempt, scaled by the rate-limit multiplier after a 429.
func (p RetryPolicy) Backoff(attempt int, rateLimited bool) time.Duration {
	delay := p.baseDelay << uint(attempt)
	if rateLimited {
		delay *= time.Duration(p.rateLimitMultiplier)
	}
	return delay
}

// Sleeper blocks for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// SleepContext is the default Sleeper.
func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
