package persist

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrEmptyKey is returned when a blob is stored without a key.
var ErrEmptyKey = errors.New("empty blob key")

// BlobStore stores a payload under a key. The bucket or namespace is a
// property of the store and is assumed to exist.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte) error
}

// MemoryStore keeps blobs in memory.
type MemoryStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
	puts  []string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

// Put implements BlobStore.
func (m *MemoryStore) Put(ctx context.Context, key string, data []byte) error {
	if key == "" {
		return ErrEmptyKey
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	cp := make([]byte, len(data))
	copy(cp, data)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[key] = cp
	m.puts = append(m.puts, key)
	return nil
}

// Get returns the blob stored under key.
func (m *MemoryStore) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.blobs[key]
	return b, ok
}

// Puts returns every key passed to a successful Put, in call order.
func (m *MemoryStore) Puts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.puts...)
}

// DirStore writes each blob to a file named after its key.
type DirStore struct {
	dir string
}

// NewDirStore returns a store rooted at dir. The directory must exist.
func NewDirStore(dir string) (*DirStore, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("pattern dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("pattern dir %s is not a directory", dir)
	}
	return &DirStore{dir: dir}, nil
}

// Put implements BlobStore.
func (d *DirStore) Put(ctx context.Context, key string, data []byte) error {
	if key == "" {
		return ErrEmptyKey
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	name := filepath.Join(d.dir, filepath.Base(key))
	tmp := name + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := os.Rename(tmp, name); err != nil {
		return fmt.Errorf("commit %s: %w", key, err)
	}
	return nil
}
