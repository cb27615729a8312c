// Package clock provides pacing helpers for polling loops.
package clock

import (
	"context"
	"time"
)

// SleepWithContext waits for the duration or returns early if the context is canceled.
func SleepWithContext(ctx context.Context, d time.Duration) error {
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

// SleepOrWake behaves like SleepWithContext but also returns as soon as wake fires.
// A nil wake channel never fires.
func SleepOrWake(ctx context.Context, d time.Duration, wake <-chan struct{}) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-wake:
		return nil
	case <-timer.C:
		return nil
	}
}

// Pace returns the remaining part of target after elapsed has been spent, never negative.
func Pace(target, elapsed time.Duration) time.Duration {
	if elapsed >= target {
		return 0
	}
	return target - elapsed
}
