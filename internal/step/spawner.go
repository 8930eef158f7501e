package step

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ErrWorkerPanic marks a worker that panicked instead of returning.
var ErrWorkerPanic = errors.New("worker panicked")

// Work is one worker's share of a tick.
type Work func(ctx context.Context, worker int) error

// Spawner runs n workers concurrently and returns once all of them finished.
type Spawner interface {
	Spawn(ctx context.Context, n int, work Work) error
}

// SpawnerFunc adapts a function to the Spawner interface.
type SpawnerFunc func(ctx context.Context, n int, work Work) error

// Spawn calls f.
func (f SpawnerFunc) Spawn(ctx context.Context, n int, work Work) error { return f(ctx, n, work) }

// GroupSpawner runs workers on an errgroup. The first failure is returned after
// every worker has joined.
type GroupSpawner struct {
	// Limit caps the number of goroutines alive at once. Zero means no cap.
	Limit int
}

// Spawn implements Spawner.
func (s GroupSpawner) Spawn(ctx context.Context, n int, work Work) error {
	g, gctx := errgroup.WithContext(ctx)
	if s.Limit > 0 {
		g.SetLimit(s.Limit)
	}
	for i := 0; i < n; i++ {
		worker := i
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("worker %d: %w: %v", worker, ErrWorkerPanic, r)
				}
			}()
			return work(gctx, worker)
		})
	}
	return g.Wait()
}
