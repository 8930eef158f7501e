package persist

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/sbinet/npyio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"gol-miner/internal/core"
)

func blinkerBoard() *core.DenseGrid {
	g := core.NewDenseGrid(3)
	g.Set(1, 0, 1)
	g.Set(1, 1, 1)
	g.Set(1, 2, 1)
	return g
}

func TestLabelAndKey(t *testing.T) {
	assert.Equal(t, "pattern_7", Label(7))
	assert.Equal(t, "pattern_7.npy", Key(7))
	assert.Equal(t, "pattern_0.npy", Selection{ID: 0}.Key())
}

func TestPolicyThresholdIsStrict(t *testing.T) {
	p := NewPolicy(DefaultThreshold)
	assert.Empty(t, p.Select(map[int]int{1: 10}))
	assert.Equal(t, []Selection{{ID: 1, Count: 11}}, p.Select(map[int]int{1: 1}))
}

func TestPolicyAccumulatesAcrossTicks(t *testing.T) {
	p := NewPolicy(10)
	assert.Empty(t, p.Select(map[int]int{0: 4, 2: 1}))
	assert.Empty(t, p.Select(map[int]int{0: 4}))
	got := p.Select(map[int]int{0: 3, 2: 20})
	assert.Equal(t, []Selection{{ID: 0, Count: 11}, {ID: 2, Count: 21}}, got)
	assert.Equal(t, 11, p.Total(0))
}

func TestPolicyDeduplicatesSavedLabels(t *testing.T) {
	p := NewPolicy(10)
	require.Len(t, p.Select(map[int]int{5: 11}), 1)
	p.MarkSaved(5)
	assert.True(t, p.Saved(5))
	assert.Empty(t, p.Select(map[int]int{5: 50}))
	assert.Equal(t, 61, p.Total(5))
}

func TestPolicyNegativeThreshold(t *testing.T) {
	assert.Equal(t, DefaultThreshold, NewPolicy(-1).Threshold())
}

func TestSaverCountElevenSavesOnce(t *testing.T) {
	store := NewMemoryStore()
	s := NewSaver(NewPolicy(10), store, zerolog.Nop())
	ctx := context.Background()
	board := blinkerBoard()

	assert.Empty(t, s.Persist(ctx, map[int]int{3: 6}, board))
	saved := s.Persist(ctx, map[int]int{3: 5}, board)
	require.Len(t, saved, 1)
	assert.Equal(t, "pattern_3", saved[0].Label())

	for i := 0; i < 5; i++ {
		assert.Empty(t, s.Persist(ctx, map[int]int{3: 4}, board))
	}
	assert.Equal(t, []string{"pattern_3.npy"}, store.Puts())

	blob, ok := store.Get("pattern_3.npy")
	require.True(t, ok)
	back, err := DecodeNPY(blob)
	require.NoError(t, err)
	assert.Equal(t, board.Cells(), back.Cells())
}

func TestSaverCountTenSavesNothing(t *testing.T) {
	store := NewMemoryStore()
	s := NewSaver(NewPolicy(10), store, zerolog.Nop())
	s.Persist(context.Background(), map[int]int{4: 6}, blinkerBoard())
	s.Persist(context.Background(), map[int]int{4: 4}, blinkerBoard())
	assert.Empty(t, store.Puts())
}

type flakyStore struct {
	fails int
	puts  []string
}

func (f *flakyStore) Put(_ context.Context, key string, _ []byte) error {
	if f.fails > 0 {
		f.fails--
		return errors.New("bucket unavailable")
	}
	f.puts = append(f.puts, key)
	return nil
}

func TestSaverRetriesAfterFailure(t *testing.T) {
	store := &flakyStore{fails: 1}
	s := NewSaver(NewPolicy(10), store, zerolog.Nop())

	assert.Empty(t, s.Persist(context.Background(), map[int]int{1: 11}, blinkerBoard()))
	assert.False(t, s.Policy().Saved(1))

	saved := s.Persist(context.Background(), nil, blinkerBoard())
	require.Len(t, saved, 1)
	assert.Equal(t, []string{"pattern_1.npy"}, store.puts)
	assert.NoError(t, s.Close())
}

func TestEncodeNPYLayout(t *testing.T) {
	b, err := EncodeNPY(blinkerBoard())
	require.NoError(t, err)
	require.Equal(t, "\x93NUMPY", string(b[:6]))

	r, err := npyio.NewReader(bytes.NewReader(b))
	require.NoError(t, err)
	assert.Equal(t, "<f8", r.Header.Descr.Type)
	assert.False(t, r.Header.Descr.Fortran)
	assert.Equal(t, []int{3, 3}, r.Header.Descr.Shape)

	var data []float64
	require.NoError(t, r.Read(&data))
	// row-major: (x=1, y=0) is element 1
	assert.Equal(t, []float64{0, 1, 0, 0, 1, 0, 0, 1, 0}, data)
}

func TestEncodeNPYEmptyBoard(t *testing.T) {
	_, err := EncodeNPY(core.NewDenseGrid(0))
	assert.Error(t, err)
}

func TestDecodeNPYRejectsGarbage(t *testing.T) {
	_, err := DecodeNPY([]byte("not a numpy file"))
	assert.Error(t, err)

	b, err := EncodeNPY(blinkerBoard())
	require.NoError(t, err)
	_, err = DecodeNPY(b[:len(b)-1])
	assert.Error(t, err)
}

func TestDecodeNPYRejectsNonSquare(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, npyio.Write(&buf, mat.NewDense(2, 3, []float64{1, 0, 0, 0, 1, 0})))
	_, err := DecodeNPY(buf.Bytes())
	assert.ErrorContains(t, err, "square")
}

type countingStore struct{ calls int }

func (f *countingStore) Put(context.Context, string, []byte) error {
	f.calls++
	return nil
}

func TestSaverSkipsUnencodableBoard(t *testing.T) {
	store := &countingStore{}
	s := NewSaver(NewPolicy(10), store, zerolog.Nop())
	assert.Empty(t, s.Persist(context.Background(), map[int]int{2: 11}, core.NewDenseGrid(0)))
	assert.Zero(t, store.calls)
	assert.False(t, s.Policy().Saved(2))
}

func TestMemoryStoreRejectsEmptyKey(t *testing.T) {
	assert.ErrorIs(t, NewMemoryStore().Put(context.Background(), "", nil), ErrEmptyKey)
}

func TestDirStorePut(t *testing.T) {
	dir := t.TempDir()
	s, err := NewDirStore(dir)
	require.NoError(t, err)

	require.NoError(t, s.Put(context.Background(), "pattern_2.npy", []byte("abc")))
	got, err := os.ReadFile(filepath.Join(dir, "pattern_2.npy"))
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))

	_, err = NewDirStore(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestRedisStorePut(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	s, err := NewRedisStore(ctx, RedisConfig{URL: "redis://" + mr.Addr(), Prefix: "gol:", TTL: time.Hour})
	require.NoError(t, err)
	defer s.Close()

	payload, err := EncodeNPY(blinkerBoard())
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, "pattern_0.npy", payload))

	got, err := mr.Get("gol:pattern_0.npy")
	require.NoError(t, err)
	assert.Equal(t, string(payload), got)
	assert.Equal(t, time.Hour, mr.TTL("gol:pattern_0.npy"))
}

func TestRedisStoreRequiresURL(t *testing.T) {
	_, err := NewRedisStore(context.Background(), RedisConfig{})
	assert.Error(t, err)
}

func TestMinioStoreValidatesConfig(t *testing.T) {
	_, err := NewMinioStore(context.Background(), MinioConfig{Bucket: "b"}, nil)
	assert.Error(t, err)
	_, err = NewMinioStore(context.Background(), MinioConfig{Endpoint: "localhost:9000"}, nil)
	assert.Error(t, err)

	s, err := NewMinioStore(context.Background(), MinioConfig{Endpoint: "localhost:9000", Bucket: "game-of-life-patterns"}, nil)
	require.NoError(t, err)
	assert.ErrorIs(t, s.Put(context.Background(), "", nil), ErrEmptyKey)
}
