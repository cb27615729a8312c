// Package workerpool provides bounded concurrent processing utilities.
package workerpool

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Process calls process for every item while holding at most permits calls in flight.
// A permit is taken before each call and released when it returns, whatever the outcome.
// Item failures do not stop the remaining items; they are reported to onError.
// Process returns only after every started call has finished; a canceled context stops
// new calls from starting and is returned.
func Process[T any](
	ctx context.Context,
	permits int,
	items []T,
	process func(context.Context, T) error,
	onError func(T, error),
) error {
	if permits < 1 {
		permits = 1
	}
	sem := semaphore.NewWeighted(int64(permits))

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for _, item := range items {
		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}
		wg.Add(1)
		go func(item T) {
			defer wg.Done()
			defer sem.Release(1)
			if err := process(ctx, item); err != nil && onError != nil {
				mu.Lock()
				onError(item, err)
				mu.Unlock()
			}
		}(item)
	}
	wg.Wait()

	return ctx.Err()
}
