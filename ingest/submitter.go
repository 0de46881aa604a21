package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/catalogit/core"
	"github.com/poiesic/catalogit/storage"
)

// submitter sends batches to the catalog store on a bounded worker
// pool. The pool is non-blocking: when every worker is busy, the batch
// runs on the dispatching goroutine instead (caller-runs backpressure),
// which throttles the batch scheduler under load rather than queueing
// without bound.
type submitter struct {
	store     storage.CatalogStore
	stats     *RunStats
	pool      *ants.Pool
	tracker   *ProgressTracker
	console   io.Writer
	logger    *slog.Logger
	ingestLog *slog.Logger
}

func newSubmitter(store storage.CatalogStore, stats *RunStats, concurrency int,
	tracker *ProgressTracker, console io.Writer, logger, ingestLog *slog.Logger) (*submitter, error) {
	if concurrency < 1 {
		concurrency = 1
	}

	pool, err := ants.NewPool(concurrency, ants.WithNonblocking(true))
	if err != nil {
		return nil, err
	}

	return &submitter{
		store:     store,
		stats:     stats,
		pool:      pool,
		tracker:   tracker,
		console:   console,
		logger:    logger,
		ingestLog: ingestLog,
	}, nil
}

// dispatch hands a batch to the pool, or runs it inline when the pool
// is saturated. The batch is never dropped.
func (s *submitter) dispatch(ctx context.Context, batch []*core.Record) {
	task := func() {
		s.process(ctx, batch)
	}
	if err := s.pool.Submit(task); err != nil {
		if !errors.Is(err, ants.ErrPoolOverload) {
			s.logger.Debug("pool submit failed, running batch inline", "err", err)
		}
		task()
	}
}

// process submits one batch and settles its accounting. The in-flight
// counter is decremented exactly once regardless of outcome; a failed
// batch's records are counted as failed by omission.
func (s *submitter) process(ctx context.Context, batch []*core.Record) {
	defer s.stats.DecInFlight()

	created, err := s.store.CreateRecords(ctx, batch)
	if err != nil {
		s.logBatchFailure(batch, err)
		return
	}

	s.stats.AddIngested(len(created))
	s.tracker.Refresh()
}

func (s *submitter) logBatchFailure(batch []*core.Record, err error) {
	if errors.Is(err, storage.ErrSourceUnavailable) {
		s.ingestLog.Warn("catalog store unavailable, batch failed to ingest",
			"records", len(batch), "batch", describeBatch(batch), "err", err)
		return
	}

	s.ingestLog.Warn("error ingesting record batch",
		"batch", describeBatch(batch), "err", err)
	fmt.Fprintf(s.console, "Error executing create: %v\n", err)
}

// Release shuts down the worker pool. Running tasks finish first.
func (s *submitter) Release() {
	s.pool.Release()
}

// describeBatch enumerates the title and ID of every record in a batch
// for the ingest log.
func describeBatch(batch []*core.Record) string {
	var sb strings.Builder
	for i, record := range batch {
		fmt.Fprintf(&sb, "\nBatch #: %d | ", i+1)
		if record == nil {
			sb.WriteString("Null Record")
			continue
		}
		if record.Title != "" {
			fmt.Fprintf(&sb, "Record Title: %s | ", record.Title)
		}
		if record.Id != 0 {
			fmt.Fprintf(&sb, "Record ID: %d | ", record.Id)
		}
	}
	return sb.String()
}
