// Package step advances the shared board one generation at a time.
//
// A Coordinator owns the sparse grid and a single mutex. Each Step holds the
// mutex across the whole read, advance and write sequence, so readers only
// ever observe complete generations. Inside the critical section the rows are
// split into bands and every worker computes its own band from the same
// read-only snapshot; the successor is committed only after all workers join.
package step

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"gol-miner/internal/core"
	"gol-miner/internal/life"
)

// Config controls the coordinator.
type Config struct {
	Size    int
	Workers int
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{Size: 256, Workers: 16}
}

// Coordinator produces generation t+1 from generation t exactly once per Step.
type Coordinator struct {
	mu sync.Mutex

	size    int
	workers int
	grid    *core.SparseGrid
	gen     uint64

	spawner Spawner
	log     zerolog.Logger
}

// New constructs a Coordinator over an empty board.
func New(cfg Config, spawner Spawner, log zerolog.Logger) *Coordinator {
	if cfg.Size < 0 {
		cfg.Size = 0
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if spawner == nil {
		spawner = GroupSpawner{}
	}
	return &Coordinator{
		size:    cfg.Size,
		workers: cfg.Workers,
		grid:    core.NewSparseGrid(),
		spawner: spawner,
		log:     log.With().Str("component", "step").Logger(),
	}
}

// Size returns the board side.
func (c *Coordinator) Size() int { return c.size }

// Seed replaces the board with an independent Bernoulli(density) trial per cell.
func (c *Coordinator) Seed(rng *core.RNG, density float64) {
	g := core.NewDenseGrid(c.size)
	rng.FillBernoulli(g.Cells(), density)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.grid.Replace(g)
	c.gen = 0
}

// Load replaces the board with the given alive cells. Off-board cells are dropped.
func (c *Coordinator) Load(cells []core.Coord) {
	g := core.NewDenseGrid(c.size)
	for _, p := range cells {
		g.Set(p.X, p.Y, 1)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.grid.Replace(g)
	c.gen = 0
}

// Step advances the board by one generation. Cancelling ctx does not interrupt
// a step in progress. If any worker fails the board keeps its current
// generation and the error is returned.
func (c *Coordinator) Step(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	src := c.grid.Dense(c.size)
	dst := core.NewDenseGrid(c.size)
	bands := Partition(c.size, c.workers)

	err := c.spawner.Spawn(context.WithoutCancel(ctx), len(bands), func(_ context.Context, worker int) error {
		b := bands[worker]
		life.AdvanceRows(src, dst, b.Y0, b.Y1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("generation %d: %w", c.gen+1, err)
	}

	c.grid.Replace(dst)
	c.gen++
	c.log.Debug().
		Uint64("generation", c.gen).
		Int("bands", len(bands)).
		Int("alive", c.grid.Len()).
		Msg("generation committed")
	return nil
}

// Snapshot materializes the current generation.
func (c *Coordinator) Snapshot() *core.DenseGrid {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.grid.Dense(c.size)
}

// Generation returns the number of committed steps since the last Seed/Load.
func (c *Coordinator) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

// Alive returns the live cell count of the current generation.
func (c *Coordinator) Alive() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.grid.Len()
}

// AliveCells returns the current live cells in row-major order.
func (c *Coordinator) AliveCells() []core.Coord {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.grid.Cells()
}
