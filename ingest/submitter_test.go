package ingest

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/poiesic/catalogit/core"
	"github.com/poiesic/catalogit/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory CatalogStore that records the batches it
// receives.
type fakeStore struct {
	mu      sync.Mutex
	batches [][]*core.Record
	err     error
	block   chan struct{} // when non-nil, CreateRecords waits on it
}

func (f *fakeStore) CreateRecords(ctx context.Context, records []*core.Record) ([]*core.Record, error) {
	if f.block != nil {
		<-f.block
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.batches = append(f.batches, records)
	return records, nil
}

func (f *fakeStore) GetRecord(ctx context.Context, id core.ID) (*core.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, batch := range f.batches {
		for _, record := range batch {
			if record.Id == id {
				return record, nil
			}
		}
	}
	return nil, storage.ErrNotFound
}

func (f *fakeStore) CountRecords(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, batch := range f.batches {
		total += len(batch)
	}
	return total, nil
}

func (f *fakeStore) Close() error { return nil }

func (f *fakeStore) batchSizes() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	sizes := make([]int, len(f.batches))
	for i, batch := range f.batches {
		sizes[i] = len(batch)
	}
	return sizes
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSubmitterProcessSuccess(t *testing.T) {
	store := &fakeStore{}
	stats := &RunStats{}
	sub, err := newSubmitter(store, stats, 2, NewProgressTracker(nil, stats),
		io.Discard, discardLogger(), discardLogger())
	require.NoError(t, err)
	defer sub.Release()

	batch := []*core.Record{{Id: 1, Contents: []byte("a")}, {Id: 2, Contents: []byte("b")}}
	stats.IncInFlight()
	sub.process(context.Background(), batch)

	assert.Equal(t, 2, stats.Ingested())
	assert.Equal(t, 0, stats.InFlight())
	assert.Equal(t, []int{2}, store.batchSizes())
}

func TestSubmitterProcessFailure(t *testing.T) {
	store := &fakeStore{err: errors.New("write failed")}
	stats := &RunStats{}
	var console bytes.Buffer
	sub, err := newSubmitter(store, stats, 2, NewProgressTracker(nil, stats),
		&console, discardLogger(), discardLogger())
	require.NoError(t, err)
	defer sub.Release()

	stats.IncInFlight()
	sub.process(context.Background(), []*core.Record{{Id: 7, Title: "doomed"}})

	assert.Equal(t, 0, stats.Ingested())
	assert.Equal(t, 0, stats.InFlight())
	assert.Contains(t, console.String(), "Error executing create: write failed")
}

func TestSubmitterProcessStoreUnavailableStaysOffConsole(t *testing.T) {
	store := &fakeStore{err: storage.ErrSourceUnavailable}
	stats := &RunStats{}
	var console bytes.Buffer
	sub, err := newSubmitter(store, stats, 2, NewProgressTracker(nil, stats),
		&console, discardLogger(), discardLogger())
	require.NoError(t, err)
	defer sub.Release()

	stats.IncInFlight()
	sub.process(context.Background(), []*core.Record{{Id: 7}})

	assert.Equal(t, 0, stats.InFlight())
	assert.Empty(t, console.String())
}

func TestSubmitterCallerRunsWhenPoolSaturated(t *testing.T) {
	store := &fakeStore{block: make(chan struct{})}
	stats := &RunStats{}
	sub, err := newSubmitter(store, stats, 1, NewProgressTracker(nil, stats),
		io.Discard, discardLogger(), discardLogger())
	require.NoError(t, err)
	defer sub.Release()

	ctx := context.Background()

	// first batch occupies the single worker
	stats.IncInFlight()
	sub.dispatch(ctx, []*core.Record{{Id: 1}})

	// second batch must run on the dispatching goroutine and block it
	stats.IncInFlight()
	done := make(chan struct{})
	go func() {
		sub.dispatch(ctx, []*core.Record{{Id: 2}})
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("dispatch returned while the store was still blocked")
	case <-time.After(50 * time.Millisecond):
	}

	close(store.block)
	<-done

	deadline := time.Now().Add(2 * time.Second)
	for stats.InFlight() != 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	assert.Equal(t, 0, stats.InFlight())
	assert.Equal(t, 2, stats.Ingested())
}

func TestDescribeBatch(t *testing.T) {
	batch := []*core.Record{
		{Id: 42, Title: "first"},
		{Title: "untitled source"},
		nil,
	}
	out := describeBatch(batch)

	assert.Contains(t, out, "Batch #: 1 | Record Title: first | Record ID: 42 |")
	assert.Contains(t, out, "Batch #: 2 | Record Title: untitled source |")
	assert.Contains(t, out, "Batch #: 3 | Null Record")
}
