package ingest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/poiesic/catalogit/core"
	"github.com/poiesic/catalogit/storage"
	"github.com/poiesic/catalogit/transform"
)

// Ingester wires the pipeline stages together and drives a run to
// completion.
type Ingester struct {
	store       storage.CatalogStore
	config      *Config
	transformer transform.Transformer // resolved from the registry when nil
	console     io.Writer
	logger      *slog.Logger
	ingestLog   *slog.Logger
}

// Option configures an Ingester.
type Option func(*Ingester)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(ing *Ingester) {
		if logger != nil {
			ing.logger = logger
		}
	}
}

// WithIngestLogger sets the dedicated diagnostics logger that receives
// full per-file and per-batch failure detail.
func WithIngestLogger(logger *slog.Logger) Option {
	return func(ing *Ingester) {
		if logger != nil {
			ing.ingestLog = logger
		}
	}
}

// WithConsole sets the writer for the progress line, warnings, and the
// final summary. Default is os.Stderr.
func WithConsole(w io.Writer) Option {
	return func(ing *Ingester) {
		if w != nil {
			ing.console = w
		}
	}
}

// WithTransformer sets the transformer directly, bypassing the registry
// lookup of Config.TransformerID.
func WithTransformer(t transform.Transformer) Option {
	return func(ing *Ingester) {
		ing.transformer = t
	}
}

// NewIngester creates an ingester for the given store and config.
func NewIngester(store storage.CatalogStore, config *Config, opts ...Option) (*Ingester, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if config == nil {
		config = DefaultConfig()
	}

	ing := &Ingester{
		store:     store,
		config:    config,
		console:   os.Stderr,
		logger:    slog.Default(),
		ingestLog: slog.Default().With("log", "ingest"),
	}
	for _, opt := range opts {
		opt(ing)
	}
	return ing, nil
}

// Summary reports the final accounting of an ingest run.
type Summary struct {
	FileCount int
	Ingested  int
	Ignored   int
	Failed    int
	Elapsed   time.Duration
}

// RecordsPerSecond returns the ingest rate over the whole run.
func (s *Summary) RecordsPerSecond() float64 {
	return RecordsPerSecond(s.Ingested, s.Elapsed)
}

// Run executes the ingest pipeline and blocks until the producer has
// exhausted its input, the queue is drained, and no submission is in
// flight. Setup-phase errors abort before any file is processed;
// per-file and per-batch failures are folded into the summary.
func (ing *Ingester) Run(ctx context.Context) (*Summary, error) {
	cfg := ing.config

	if cfg.BatchSize <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBatchSize, cfg.BatchSize)
	}
	if cfg.RootPath == "" {
		return nil, ErrRootRequired
	}
	if _, err := os.Stat(cfg.RootPath); err != nil {
		return nil, fmt.Errorf("%w: [%s]", ErrRootNotFound, cfg.RootPath)
	}

	transformer := ing.transformer
	if transformer == nil {
		id := cfg.TransformerID
		if id == "" {
			id = transform.DefaultID
		}
		t, err := transform.Lookup(id)
		if err != nil {
			return nil, err
		}
		transformer = t
	}

	batchSize := cfg.BatchSize
	if cfg.FailedDir != "" {
		if err := verifyFailedDir(cfg.FailedDir); err != nil {
			return nil, err
		}
		// One file failure must not block or silently merge with others.
		if batchSize != 1 {
			fmt.Fprintf(ing.console, "WARNING: an ingest failure directory was supplied in addition to a batch size of %d. "+
				"When using an ingest failure directory, the batch size must be 1. Setting batch size to 1.\n", batchSize)
		}
		batchSize = 1
	}

	total, err := countFiles(cfg.RootPath)
	if err != nil {
		return nil, err
	}

	stats := &RunStats{}
	stats.SetFileCount(total)

	tracker := NewProgressTracker(ing.console, stats)
	tracker.Start()
	tracker.Refresh()

	sub, err := newSubmitter(ing.store, stats, concurrencyOrDefault(cfg.Concurrency),
		tracker, ing.console, ing.logger, ing.ingestLog)
	if err != nil {
		return nil, err
	}

	queue := newRecordQueue()
	prod := &producer{
		root:        cfg.RootPath,
		transformer: transformer,
		filter:      NewIgnoreFilter(cfg.IgnoreList),
		queue:       queue,
		stats:       stats,
		tracker:     tracker,
		failedDir:   cfg.FailedDir,
		console:     ing.console,
		logger:      ing.logger,
		ingestLog:   ing.ingestLog,
	}

	interval := cfg.SchedulerInterval
	if interval <= 0 {
		interval = defaultSchedulerInterval
	}
	sched := newBatchScheduler(queue, stats, batchSize, interval, func(batch []*core.Record) {
		sub.dispatch(ctx, batch)
	}, tracker)

	go prod.run(ctx)
	go sched.run()

	// Coarse polling; a brief delay in detecting completion is fine.
	pollInterval := cfg.PollInterval
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	for !stats.QueueBuilt() || queue.Len() != 0 || stats.InFlight() != 0 {
		time.Sleep(pollInterval)
	}

	sched.Stop()
	sub.Release()

	tracker.Finish()
	elapsed := tracker.Elapsed()

	summary := &Summary{
		FileCount: stats.FileCount(),
		Ingested:  stats.Ingested(),
		Ignored:   stats.Ignored(),
		Failed:    stats.Failed(),
		Elapsed:   elapsed,
	}
	ing.printSummary(summary, len(cfg.IgnoreList) > 0)
	return summary, nil
}

func concurrencyOrDefault(n int) int {
	if n < 1 {
		return DefaultConcurrency
	}
	return n
}

// verifyFailedDir creates the failure directory if absent and probes
// that it is writable.
func verifyFailedDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: [%s]: %w", ErrFailedDirNotWritable, dir, err)
	}

	probe, err := os.CreateTemp(dir, ".probe-*")
	if err != nil {
		return fmt.Errorf("%w: [%s]: %w", ErrFailedDirNotWritable, dir, err)
	}
	probe.Close()
	return os.Remove(probe.Name())
}

func (ing *Ingester) printSummary(s *Summary, hasIgnoreList bool) {
	elapsed := FormatElapsed(s.Elapsed)

	fmt.Fprintln(ing.console)
	fmt.Fprintf(ing.console, " %d file(s) ingested in %s\n", s.Ingested, elapsed)

	ing.logger.Info("ingest run complete",
		"ingested", s.Ingested, "elapsed", elapsed, "recordsPerSec", s.RecordsPerSecond())
	ing.ingestLog.Info("ingest run complete",
		"ingested", s.Ingested, "elapsed", elapsed, "recordsPerSec", s.RecordsPerSecond())

	if s.FileCount != s.Ingested {
		fmt.Fprintln(ing.console)
		if s.Failed >= 1 {
			fmt.Fprintf(ing.console, "Error: %d file(s) failed to be ingested. See the ingest log for more details.\n", s.Failed)
			ing.ingestLog.Warn("files failed to be ingested", "failed", s.Failed)
		}
		if hasIgnoreList {
			fmt.Fprintf(ing.console, "%d file(s) ignored. See the ingest log for more details.\n", s.Ignored)
			ing.ingestLog.Warn("files ignored", "ignored", s.Ignored)
		}
	}
	fmt.Fprintln(ing.console)
}
