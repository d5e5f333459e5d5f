package batch

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streetsweeper/internal/address"
	"github.com/streetsweeper/internal/db"
	"github.com/streetsweeper/internal/parser"
)

type fakeStore struct {
	mu        sync.Mutex
	pending   []db.RawAddress
	parsed    map[int64]address.Address
	unmatched map[int64]bool
	saveErr   error
	loadErr   error
}

func newFakeStore(addresses ...string) *fakeStore {
	s := &fakeStore{
		parsed:    make(map[int64]address.Address),
		unmatched: make(map[int64]bool),
	}
	for i, a := range addresses {
		s.pending = append(s.pending, db.RawAddress{ID: int64(i + 1), Address: a})
	}
	return s
}

func (s *fakeStore) Pending(_ context.Context, limit int) ([]db.RawAddress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	var out []db.RawAddress
	for _, r := range s.pending {
		if _, done := s.parsed[r.ID]; done {
			continue
		}
		if s.unmatched[r.ID] {
			continue
		}
		out = append(out, r)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *fakeStore) SaveParsed(_ context.Context, id int64, a address.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.parsed[id] = a
	return nil
}

func (s *fakeStore) MarkUnmatched(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unmatched[id] = true
	return nil
}

func newRunner(t *testing.T, store Store, workers, size int) *Runner {
	t.Helper()
	p, err := parser.NewDefault()
	require.NoError(t, err)
	return &Runner{Parser: p, Store: store, Workers: workers, BatchSize: size}
}

func TestRunDrainsQueue(t *testing.T) {
	store := newFakeStore(
		"1005 Gravenstein Hwy 95472",
		"hello world",
		"Mission & Valencia",
		"PO BOX 280568 Queens Village, New York 11428",
		"!!!",
	)

	stats, err := newRunner(t, store, 3, 2).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Batches)
	assert.Equal(t, 5, stats.Processed)
	assert.Equal(t, 3, stats.Parsed)
	assert.Equal(t, 2, stats.Unmatched)

	assert.Equal(t, "1005", store.parsed[1].Number)
	assert.Equal(t, "Gravenstein", store.parsed[1].Street)
	assert.True(t, store.parsed[3].IsIntersection())
	assert.True(t, store.unmatched[2])
	assert.True(t, store.unmatched[5])
}

func TestRunEmptyQueue(t *testing.T) {
	stats, err := newRunner(t, newFakeStore(), 4, 100).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Batches)
	assert.Equal(t, 0, stats.Processed)
}

func TestRunDefaultsWorkersAndSize(t *testing.T) {
	store := newFakeStore("115 Broadway San Francisco CA", "321 S. Washington")

	stats, err := newRunner(t, store, 0, 0).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Batches)
	assert.Equal(t, 2, stats.Parsed)
}

func TestRunStopsOnSaveError(t *testing.T) {
	store := newFakeStore("1005 Gravenstein Hwy 95472")
	store.saveErr = errors.New("disk full")

	stats, err := newRunner(t, store, 2, 10).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, 1, stats.Batches)
	assert.Equal(t, 0, stats.Processed)
}

func TestRunLoadError(t *testing.T) {
	store := newFakeStore("115 Broadway San Francisco CA")
	store.loadErr = errors.New("connection reset")

	_, err := newRunner(t, store, 1, 10).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load batch 1")
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newRunner(t, newFakeStore("115 Broadway San Francisco CA"), 1, 10).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
