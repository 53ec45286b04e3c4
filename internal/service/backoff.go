package service

import (
	"context"
	"math"
	"math/rand"
	"time"
)

const (
	backoffFactor  = 2.0
	jitterFraction = 0.25
)

// calcBackoff computes exponential backoff with ±25% jitter for the given
// zero-based attempt number.
func calcBackoff(attempt int, base, maxDelay time.Duration) time.Duration {
	backoff := float64(base) * math.Pow(backoffFactor, float64(attempt))
	if backoff > float64(maxDelay) {
		backoff = float64(maxDelay)
	}

	jitter := backoff * jitterFraction * (rand.Float64()*2 - 1) //nolint:gosec // jitter does not need crypto rand
	backoff += jitter

	return time.Duration(backoff)
}

// timeSleep waits for the given duration or until the context is canceled.
// It is the default sleepFunc for the engine; tests override sleepFunc to
// avoid real delays.
func timeSleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
