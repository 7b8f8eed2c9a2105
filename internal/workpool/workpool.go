// Package workpool runs a batch of independent tasks across a bounded
// number of goroutines and collects their results, generalizing
// OpenAnvilWorld's (anvil_world.go) concurrency pattern: one goroutine
// per unit of work, a sync.WaitGroup, and a buffered result channel
// drained after Wait. The pipeline's data-parallel phases are each
// sequenced behind this one barrier.
package workpool

import (
	"context"
	"runtime"
	"sync"
)

// Size returns the default pool width: one goroutine per logical CPU.
func Size() int {
	if n := runtime.NumCPU(); n > 0 {
		return n
	}
	return 1
}

// Run executes fn(item) for every item in items across at most Size()
// concurrent goroutines, returning one result per item in input order.
// A cancelled ctx stops new tasks from starting; in-flight tasks still
// run to completion.
func Run[T, R any](ctx context.Context, items []T, fn func(context.Context, T) R) []R {
	results := make([]R, len(items))
	if len(items) == 0 {
		return results
	}

	sem := make(chan struct{}, Size())
	var wg sync.WaitGroup
	wg.Add(len(items))

	for i, item := range items {
		select {
		case <-ctx.Done():
			wg.Done()
			continue
		default:
		}

		sem <- struct{}{}
		go func(i int, item T) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = fn(ctx, item)
		}(i, item)
	}

	wg.Wait()
	return results
}
