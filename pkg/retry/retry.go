// Package retry runs an operation a bounded number of times with a
// configurable delay between attempts.
package retry

import (
	"context"
	"fmt"
	"time"

	"listing-slideshow/pkg/clock"
	"listing-slideshow/pkg/logger"
)

// BackoffFunc returns the delay to wait before the given attempt (1-based).
type BackoffFunc func(attempt int) time.Duration

// Linear waits base*(attempt-1): nothing before the first attempt, base
// before the second, 2*base before the third.
func Linear(base time.Duration) BackoffFunc {
	return func(attempt int) time.Duration {
		if attempt <= 1 {
			return 0
		}
		return base * time.Duration(attempt-1)
	}
}

// Policy describes how an operation is retried.
type Policy struct {
	MaxAttempts int
	Backoff     BackoffFunc
	Clock       clock.Clock
}

// DefaultPolicy is three attempts with a linear one-second backoff.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: 3,
		Backoff:     Linear(time.Second),
		Clock:       clock.Real(),
	}
}

// Do calls fn until it succeeds, the attempts run out or ctx is done.
// Every error returned by fn counts as a failed attempt. The final error
// wraps the last failure.
func (p Policy) Do(ctx context.Context, op string, fn func(ctx context.Context, attempt int) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	clk := p.Clock
	if clk == nil {
		clk = clock.Real()
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 && p.Backoff != nil {
			if delay := p.Backoff(attempt); delay > 0 {
				logger.GlobalLogger.Debugf("Retrying %s in %v (attempt %d/%d)", op, delay, attempt, attempts)
				if err := clk.Sleep(ctx, delay); err != nil {
					return fmt.Errorf("%s cancelled after %d attempts: %w", op, attempt-1, lastErr)
				}
			}
		}
		if err := ctx.Err(); err != nil {
			if lastErr == nil {
				lastErr = err
			}
			return fmt.Errorf("%s cancelled after %d attempts: %w", op, attempt-1, lastErr)
		}

		err := fn(ctx, attempt)
		if err == nil {
			return nil
		}
		lastErr = err
		logger.GlobalLogger.Warnf("%s failed (attempt %d/%d): error=%v", op, attempt, attempts, err)
	}
	return fmt.Errorf("%s failed after %d attempts: %w", op, attempts, lastErr)
}
