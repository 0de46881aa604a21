package ingest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/poiesic/catalogit/transform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig(root string) *Config {
	cfg := DefaultConfig()
	cfg.RootPath = root
	cfg.Concurrency = 2
	cfg.SchedulerInterval = 5 * time.Millisecond
	cfg.PollInterval = 5 * time.Millisecond
	return cfg
}

func newTestIngester(t *testing.T, store *fakeStore, cfg *Config, console *bytes.Buffer) *Ingester {
	t.Helper()
	ing, err := NewIngester(store, cfg,
		WithTransformer(stubTransformer{failOn: "poison"}),
		WithConsole(console),
		WithLogger(discardLogger()),
		WithIngestLogger(discardLogger()))
	require.NoError(t, err)
	return ing
}

func TestNewIngesterRequiresStore(t *testing.T) {
	_, err := NewIngester(nil, DefaultConfig())
	assert.ErrorIs(t, err, ErrStoreRequired)
}

func TestRunRejectsInvalidBatchSize(t *testing.T) {
	store := &fakeStore{}
	cfg := fastConfig(t.TempDir())
	cfg.BatchSize = 0

	ing := newTestIngester(t, store, cfg, &bytes.Buffer{})
	_, err := ing.Run(context.Background())

	assert.ErrorIs(t, err, ErrInvalidBatchSize)
	assert.Empty(t, store.batchSizes())
}

func TestRunRequiresRoot(t *testing.T) {
	cfg := fastConfig("")
	ing := newTestIngester(t, &fakeStore{}, cfg, &bytes.Buffer{})
	_, err := ing.Run(context.Background())
	assert.ErrorIs(t, err, ErrRootRequired)
}

func TestRunRejectsMissingRoot(t *testing.T) {
	cfg := fastConfig(filepath.Join(t.TempDir(), "nope"))
	ing := newTestIngester(t, &fakeStore{}, cfg, &bytes.Buffer{})
	_, err := ing.Run(context.Background())
	assert.ErrorIs(t, err, ErrRootNotFound)
}

func TestRunRejectsUnknownTransformer(t *testing.T) {
	cfg := fastConfig(t.TempDir())
	cfg.TransformerID = "no-such-transformer"

	ing, err := NewIngester(&fakeStore{}, cfg, WithConsole(&bytes.Buffer{}),
		WithLogger(discardLogger()), WithIngestLogger(discardLogger()))
	require.NoError(t, err)

	_, err = ing.Run(context.Background())
	assert.ErrorIs(t, err, transform.ErrUnknownTransformer)
}

func TestRunIngestsTreeInOneBatch(t *testing.T) {
	root := t.TempDir()
	for i := 0; i < 8; i++ {
		writeFile(t, root, fmt.Sprintf("doc-%d.txt", i), fmt.Sprintf("contents %d", i))
	}
	writeFile(t, root, "photo-1.jpg", "binary")
	writeFile(t, root, "photo-2.jpg", "binary")

	store := &fakeStore{}
	cfg := fastConfig(root)
	cfg.IgnoreList = []string{".jpg"}

	var console bytes.Buffer
	ing := newTestIngester(t, store, cfg, &console)
	summary, err := ing.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 10, summary.FileCount)
	assert.Equal(t, 8, summary.Ingested)
	assert.Equal(t, 2, summary.Ignored)
	assert.Equal(t, 0, summary.Failed)
	// well under the batch size, so everything goes in a single batch
	assert.Equal(t, []int{8}, store.batchSizes())
	assert.Contains(t, console.String(), "8 file(s) ingested in")
	assert.Contains(t, console.String(), "2 file(s) ignored. See the ingest log for more details.")
	assert.NotContains(t, console.String(), "failed to be ingested")
}

func TestRunReportsFailedFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "good-1.txt", "fine")
	writeFile(t, root, "good-2.txt", "also fine")
	writeFile(t, root, "bad.txt", "poison")

	store := &fakeStore{}
	var console bytes.Buffer
	ing := newTestIngester(t, store, fastConfig(root), &console)
	summary, err := ing.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Ingested)
	assert.Equal(t, 1, summary.Failed)
	assert.Contains(t, console.String(), "Error: failed to ingest file")
	assert.Contains(t, console.String(), "Error: 1 file(s) failed to be ingested. See the ingest log for more details.")
	// no ignore list was supplied, so no ignored line
	assert.NotContains(t, console.String(), "file(s) ignored")
}

func TestRunSingleFailingFileRoot(t *testing.T) {
	root := t.TempDir()
	path := writeFile(t, root, "bad.txt", "poison")

	store := &fakeStore{}
	var console bytes.Buffer
	ing := newTestIngester(t, store, fastConfig(path), &console)
	summary, err := ing.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.FileCount)
	assert.Equal(t, 0, summary.Ingested)
	assert.Equal(t, 0, summary.Ignored)
	assert.Equal(t, 1, summary.Failed)
	assert.Empty(t, store.batchSizes())
	assert.Contains(t, console.String(), "Error: 1 file(s) failed to be ingested.")
}

func TestRunFailedDirForcesBatchSizeOne(t *testing.T) {
	root := t.TempDir()
	failedDir := filepath.Join(t.TempDir(), "failed")
	writeFile(t, root, "good-1.txt", "fine")
	writeFile(t, root, "good-2.txt", "also fine")
	badPath := writeFile(t, root, "bad.txt", "poison")

	store := &fakeStore{}
	cfg := fastConfig(root)
	cfg.BatchSize = 4
	cfg.FailedDir = failedDir

	var console bytes.Buffer
	ing := newTestIngester(t, store, cfg, &console)
	summary, err := ing.Run(context.Background())
	require.NoError(t, err)

	assert.Contains(t, console.String(),
		"WARNING: an ingest failure directory was supplied in addition to a batch size of 4. "+
			"When using an ingest failure directory, the batch size must be 1. Setting batch size to 1.")

	assert.Equal(t, 2, summary.Ingested)
	assert.Equal(t, 1, summary.Failed)
	for _, size := range store.batchSizes() {
		assert.Equal(t, 1, size)
	}

	_, statErr := os.Stat(badPath)
	assert.True(t, os.IsNotExist(statErr))
	_, statErr = os.Stat(filepath.Join(failedDir, "bad.txt"))
	assert.NoError(t, statErr)
}

func TestRunSurvivesStoreFailure(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.txt", "a")
	writeFile(t, root, "b.txt", "b")

	store := &fakeStore{err: errors.New("connection reset")}
	var console bytes.Buffer
	ing := newTestIngester(t, store, fastConfig(root), &console)
	summary, err := ing.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, summary.Ingested)
	assert.Equal(t, 2, summary.Failed)
	assert.Contains(t, console.String(), "Error executing create: connection reset")
}

func TestRunSingleFileRoot(t *testing.T) {
	root := t.TempDir()
	path := writeFile(t, root, "only.txt", "solo")

	store := &fakeStore{}
	cfg := fastConfig(path)

	var console bytes.Buffer
	ing := newTestIngester(t, store, cfg, &console)
	summary, err := ing.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.FileCount)
	assert.Equal(t, 1, summary.Ingested)
	assert.Equal(t, []int{1}, store.batchSizes())
}
