package core

import (
	"context"
	"runtime"
	"sync"

	"bullethell/internal/mathutil"
)

// Movable is anything the parallel integrators can advance.
type Movable interface {
	Advance(dt float64)
}

// CreateDefaultWorkerPool creates a started worker pool sized to the CPU count
func CreateDefaultWorkerPool() *WorkerPool {
	pool := NewWorkerPool(0)
	pool.Start()
	return pool
}

// ParallelForEach runs fn for every item, splitting the slice across goroutines.
func ParallelForEach[T any](items []T, fn func(T)) {
	ParallelForEachWithContext(context.Background(), items, fn)
}

// ParallelForEachWithContext is ParallelForEach with cancellation checked between items.
func ParallelForEachWithContext[T any](ctx context.Context, items []T, fn func(T)) {
	if len(items) == 0 {
		return
	}

	numWorkers := mathutil.IntMin(runtime.NumCPU(), len(items))
	chunkSize := mathutil.IntMax(1, len(items)/numWorkers)
	var wg sync.WaitGroup

	for i := 0; i < len(items); i += chunkSize {
		end := mathutil.IntMin(i+chunkSize, len(items))
		chunk := items[i:end]

		wg.Add(1)
		go func(chunk []T) {
			defer wg.Done()
			for _, item := range chunk {
				select {
				case <-ctx.Done():
					return
				default:
					fn(item)
				}
			}
		}(chunk)
	}

	wg.Wait()
}

// AdvanceAll advances every item by dt, in parallel once the slice is at
// least threshold long and inline otherwise.
func AdvanceAll[T Movable](items []T, dt float64, threshold int) {
	if len(items) < threshold {
		for _, item := range items {
			item.Advance(dt)
		}
		return
	}
	ParallelForEach(items, func(item T) {
		item.Advance(dt)
	})
}
