package workpool

import (
	"context"
	"testing"
	"time"
)

func TestRunPreservesInputOrder(t *testing.T) {
	items := []int{5, 3, 8, 1, 9, 2, 7, 4, 6, 0}

	results := Run(context.Background(), items, func(ctx context.Context, n int) int {
		return n * n
	})

	for i, n := range items {
		if results[i] != n*n {
			t.Fatalf("results[%d] = %d, want %d", i, results[i], n*n)
		}
	}
}

func TestRunEmptyInput(t *testing.T) {
	results := Run(context.Background(), []int{}, func(ctx context.Context, n int) int { return n })
	if len(results) != 0 {
		t.Fatalf("got %d results, want 0", len(results))
	}
}

func TestRunRespectsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	items := make([]int, 50)
	started := make(chan struct{}, len(items))

	results := Run(ctx, items, func(ctx context.Context, n int) int {
		started <- struct{}{}
		return n
	})

	if len(results) != len(items) {
		t.Fatalf("got %d results, want %d (one per item, even if skipped)", len(results), len(items))
	}
	// With the context already cancelled before Run starts, no task should
	// have had the chance to begin.
	select {
	case <-started:
		t.Fatal("expected no task to start after the context was already cancelled")
	case <-time.After(10 * time.Millisecond):
	}
}
