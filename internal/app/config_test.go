package app

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("test", []string{"-env", ""}, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Equal(t, 256, cfg.Size)
	assert.Equal(t, 16, cfg.Workers)
	assert.Equal(t, time.Second, cfg.Interval)
	assert.Equal(t, 5.0, cfg.Eps)
	assert.Equal(t, 3, cfg.MinSamples)
	assert.Equal(t, 10, cfg.Threshold)
	assert.Equal(t, "memory", cfg.Store)
	assert.Equal(t, "none", cfg.Render)
}

func TestLoadFlagsOverrideFile(t *testing.T) {
	path := writeFile(t, "run.yaml", `
size: 64
workers: 4
interval: 250ms
store: dir
dir: out
minio:
  bucket: from-file
log:
  level: debug
`)
	cfg, err := Load("test", []string{"-env", "", "-config", path, "-workers", "8", "-bucket", "from-flag"}, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Equal(t, 64, cfg.Size)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, 250*time.Millisecond, cfg.Interval)
	assert.Equal(t, "dir", cfg.Store)
	assert.Equal(t, "out", cfg.Dir)
	assert.Equal(t, "from-flag", cfg.Minio.Bucket)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("test", []string{"-env", "", "-config", filepath.Join(t.TempDir(), "nope.yaml")}, &bytes.Buffer{})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadHelp(t *testing.T) {
	var out bytes.Buffer
	_, err := Load("test", []string{"-h"}, &out)
	assert.ErrorIs(t, err, flag.ErrHelp)
	assert.Contains(t, out.String(), "-threshold")
}

func TestStorageEnv(t *testing.T) {
	t.Setenv("MINIO_ENDPOINT", "localhost:9000")
	t.Setenv("MINIO_ACCESS_KEY", "key")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	envFile := writeFile(t, ".env", "MINIO_SECRET_KEY=secret\nMINIO_ACCESS_KEY=ignored\n")
	t.Cleanup(func() { os.Unsetenv("MINIO_SECRET_KEY") })

	cfg := NewConfig()
	require.NoError(t, cfg.LoadStorageEnv(envFile))
	assert.Equal(t, "localhost:9000", cfg.Minio.Endpoint)
	assert.Equal(t, "key", cfg.Minio.AccessKey)
	assert.Equal(t, "secret", cfg.Minio.SecretKey)
	assert.Equal(t, "game-of-life-patterns", cfg.Minio.Bucket)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
	assert.Equal(t, "gol:", cfg.Redis.Prefix)
}

func TestStorageEnvMissingFile(t *testing.T) {
	cfg := NewConfig()
	assert.NoError(t, cfg.LoadStorageEnv(filepath.Join(t.TempDir(), ".env")))
}

func TestValidate(t *testing.T) {
	cfg := NewConfig()
	require.NoError(t, cfg.Validate())

	cfg.Size = 0
	cfg.Density = 1.5
	cfg.MinSamples = 0
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "size")
	assert.Contains(t, err.Error(), "density")
	assert.Contains(t, err.Error(), "min-samples")

	_, err = Load("test", []string{"-env", "", "-workers", "0"}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "workers")
}
