package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gol-miner/internal/core"
	"gol-miner/internal/loop"
	"gol-miner/internal/persist"
	"gol-miner/internal/render"
)

func TestOpenStore(t *testing.T) {
	ctx := context.Background()
	cfg := NewConfig()

	s, err := OpenStore(ctx, cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &persist.MemoryStore{}, s)

	cfg.Store = "dir"
	cfg.Dir = filepath.Join(t.TempDir(), "patterns")
	s, err = OpenStore(ctx, cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &persist.DirStore{}, s)
	assert.DirExists(t, cfg.Dir)

	mr := miniredis.RunT(t)
	cfg.Store = "redis"
	cfg.Redis.URL = "redis://" + mr.Addr()
	s, err = OpenStore(ctx, cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &persist.RedisStore{}, s)

	cfg.Store = "minio"
	cfg.Minio.Endpoint = ""
	_, err = OpenStore(ctx, cfg, nil)
	assert.ErrorContains(t, err, "endpoint")

	cfg.Store = "s3"
	_, err = OpenStore(ctx, cfg, nil)
	assert.ErrorIs(t, err, ErrUnknownStore)
}

func TestOpenRenderer(t *testing.T) {
	cfg := NewConfig()
	r, err := OpenRenderer(cfg, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Nil(t, r)

	cfg.Render = "term"
	r, err = OpenRenderer(cfg, &bytes.Buffer{})
	require.NoError(t, err)
	assert.IsType(t, &render.TermRenderer{}, r)

	cfg.Render = "png"
	cfg.RenderDir = filepath.Join(t.TempDir(), "frames")
	r, err = OpenRenderer(cfg, &bytes.Buffer{})
	require.NoError(t, err)
	assert.IsType(t, &render.PNGRenderer{}, r)

	cfg.Render = "gif"
	_, err = OpenRenderer(cfg, &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrUnknownRenderer)
}

func TestInitial(t *testing.T) {
	cfg := NewConfig()
	cells, err := Initial(cfg)
	require.NoError(t, err)
	assert.Nil(t, cells)

	cfg.Size = 16
	cfg.Preset = "block"
	cells, err = Initial(cfg)
	require.NoError(t, err)
	assert.Len(t, cells, 4*4)

	cfg.Preset = "unicorn"
	_, err = Initial(cfg)
	assert.Error(t, err)
}

func TestInitialSmallBoard(t *testing.T) {
	cfg := NewConfig()
	cfg.Size = 5
	cfg.Preset = "blinker"
	cells, err := Initial(cfg)
	require.NoError(t, err)
	assert.Equal(t, []core.Coord{{X: 1, Y: 0}, {X: 1, Y: 1}, {X: 1, Y: 2}}, cells)

	cfg.Density = 1
	l, err := Build(context.Background(), cfg, zerolog.Nop(), "test-run", &bytes.Buffer{})
	require.NoError(t, err)
	l.Init()
	assert.Equal(t, []uint8{
		0, 1, 0, 0, 0,
		0, 1, 0, 0, 0,
		0, 1, 0, 0, 0,
		0, 0, 0, 0, 0,
		0, 0, 0, 0, 0,
	}, l.Cells())

	cfg.Size = 2
	_, err = Initial(cfg)
	assert.ErrorContains(t, err, "does not fit")
}

func TestBuildRunsToCompletion(t *testing.T) {
	dir := t.TempDir()
	cfg := NewConfig()
	cfg.Size = 48
	cfg.Workers = 4
	cfg.Preset = "block"
	cfg.MaxTicks = 1
	cfg.Store = "dir"
	cfg.Dir = dir

	l, err := Build(context.Background(), cfg, zerolog.Nop(), "test-run", &bytes.Buffer{})
	require.NoError(t, err)

	stats, err := l.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Ticks)
	assert.Equal(t, 1, stats.Saved)
	assert.Equal(t, loop.StateTerminated, l.State())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "pattern_0.npy", entries[0].Name())
}
