package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"gol-miner/internal/core"
	"gol-miner/internal/life"
	"gol-miner/internal/loop"
	"gol-miner/internal/pattern"
	"gol-miner/internal/persist"
	"gol-miner/internal/render"
	"gol-miner/internal/step"
)

var (
	// ErrUnknownStore is returned for an unrecognized -store value.
	ErrUnknownStore = errors.New("unknown store")
	// ErrUnknownRenderer is returned for an unrecognized -render value.
	ErrUnknownRenderer = errors.New("unknown renderer")
)

// presetSpacing is the lattice pitch used when tiling a preset.
const presetSpacing = 8

// OpenStore connects the configured pattern store.
func OpenStore(ctx context.Context, cfg *Config, meta map[string]string) (persist.BlobStore, error) {
	switch cfg.Store {
	case "", "memory":
		return persist.NewMemoryStore(), nil
	case "dir":
		if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
			return nil, fmt.Errorf("pattern dir: %w", err)
		}
		return persist.NewDirStore(cfg.Dir)
	case "minio":
		return persist.NewMinioStore(ctx, cfg.Minio, meta)
	case "redis":
		return persist.NewRedisStore(ctx, cfg.Redis)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownStore, cfg.Store)
	}
}

// OpenRenderer returns the configured render sink, or nil for "none".
func OpenRenderer(cfg *Config, out io.Writer) (loop.Renderer, error) {
	switch cfg.Render {
	case "", "none":
		return nil, nil
	case "png":
		if err := os.MkdirAll(cfg.RenderDir, 0o755); err != nil {
			return nil, fmt.Errorf("render dir: %w", err)
		}
		return render.NewPNGRenderer(cfg.RenderDir, cfg.Scale), nil
	case "term":
		return render.NewTermRenderer(out, 64), nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownRenderer, cfg.Render)
	}
}

// Initial returns the starting cells for a preset run, or nil for random seeding.
func Initial(cfg *Config) ([]core.Coord, error) {
	if cfg.Preset == "" {
		return nil, nil
	}
	p, err := life.LookupPreset(cfg.Preset)
	if err != nil {
		return nil, err
	}
	cells := p.Tile(cfg.Size, presetSpacing)
	if len(cells) == 0 {
		w, h := p.Bounds()
		return nil, fmt.Errorf("preset %q (%dx%d) does not fit a %dx%d board", cfg.Preset, w, h, cfg.Size, cfg.Size)
	}
	return cells, nil
}

// Build assembles a loop from cfg. The caller owns the returned loop; its
// store is closed when Run returns.
func Build(ctx context.Context, cfg *Config, log zerolog.Logger, runID string, out io.Writer) (*loop.Loop, error) {
	initial, err := Initial(cfg)
	if err != nil {
		return nil, err
	}
	renderer, err := OpenRenderer(cfg, out)
	if err != nil {
		return nil, err
	}
	store, err := OpenStore(ctx, cfg, map[string]string{"run-id": runID})
	if err != nil {
		return nil, err
	}

	coord := step.New(step.Config{Size: cfg.Size, Workers: cfg.Workers}, step.GroupSpawner{Limit: cfg.Workers}, log)
	detector := pattern.NewDetector(pattern.Config{
		Eps:        cfg.Eps,
		MinSamples: cfg.MinSamples,
		MaxCells:   cfg.MaxCells,
	}, pattern.DBSCAN{Workers: 1}, nil, log)
	saver := persist.NewSaver(persist.NewPolicy(cfg.Threshold), store, log)

	return loop.New(loop.Config{
		Density:  cfg.Density,
		Seed:     cfg.Seed,
		Interval: cfg.Interval,
		MaxTicks: cfg.MaxTicks,
		Initial:  initial,
		Preset:   cfg.Preset != "",
	}, coord, detector, saver, renderer, log), nil
}
