// Package workerpool runs independent work items on a bounded number of goroutines.
package workerpool

import (
	"context"
	"errors"
	"sync"
)

// Process runs process for every item on at most workerCount goroutines.
// A failing item does not stop the others; all item errors are joined into the result.
// Cancelling ctx stops handing out items and returns the context error.
func Process[T any](
	ctx context.Context,
	workerCount int,
	items []T,
	process func(context.Context, T) error,
) error {
	if workerCount < 1 {
		workerCount = 1
	}
	if workerCount > len(items) {
		workerCount = len(items)
	}

	tasks := make(chan T)
	var (
		mu   sync.Mutex
		errs []error
		wg   sync.WaitGroup
	)
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range tasks {
				if err := process(ctx, item); err != nil {
					mu.Lock()
					errs = append(errs, err)
					mu.Unlock()
				}
			}
		}()
	}

feed:
	for _, item := range items {
		select {
		case <-ctx.Done():
			break feed
		case tasks <- item:
		}
	}
	close(tasks)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}
	return errors.Join(errs...)
}
