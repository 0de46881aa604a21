package ingest

import (
	"time"

	"github.com/poiesic/catalogit/transform"
)

const (
	// DefaultBatchSize is the number of records submitted per create
	// operation when not configured.
	DefaultBatchSize = 500

	// DefaultConcurrency is the submitter pool size when not configured.
	DefaultConcurrency = 8

	defaultSchedulerInterval = 100 * time.Millisecond
	defaultPollInterval      = 2 * time.Second
)

// Config holds configuration for an ingest run.
type Config struct {
	// RootPath is the file or directory to ingest (required).
	RootPath string

	// TransformerID selects the registered transformer used to turn
	// file bytes into records. Empty means transform.DefaultID.
	TransformerID string

	// Concurrency is the submitter pool size.
	Concurrency int

	// BatchSize is the number of records submitted to the store at a
	// time. Forced to 1 when FailedDir is set.
	BatchSize int

	// FailedDir, when non-empty, receives source files whose transform
	// failed. Created if absent; must be writable.
	FailedDir string

	// IgnoreList holds file extensions (text from the first '.' in the
	// name) or exact file names to skip during ingestion.
	IgnoreList []string

	// SchedulerInterval is the fixed delay between batch scheduler runs.
	SchedulerInterval time.Duration

	// PollInterval is how often the orchestrator checks for completion.
	PollInterval time.Duration
}

// DefaultConfig returns a Config with sensible defaults. RootPath must
// still be set by the caller.
func DefaultConfig() *Config {
	return &Config{
		TransformerID:     transform.DefaultID,
		Concurrency:       DefaultConcurrency,
		BatchSize:         DefaultBatchSize,
		SchedulerInterval: defaultSchedulerInterval,
		PollInterval:      defaultPollInterval,
	}
}
