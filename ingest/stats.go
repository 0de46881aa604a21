package ingest

import "sync/atomic"

// RunStats holds the shared counters for a single ingest run. All
// fields are atomic; a RunStats is shared by the producer, the batch
// scheduler, and every submitter task. Failed is derived, not counted:
// a file that was neither ingested nor ignored failed somewhere along
// the way.
type RunStats struct {
	fileCount  atomic.Int64
	ingested   atomic.Int64
	ignored    atomic.Int64
	inFlight   atomic.Int64
	queueBuilt atomic.Bool
}

// SetFileCount records the total used for progress reporting.
func (s *RunStats) SetFileCount(n int) { s.fileCount.Store(int64(n)) }

// FileCount returns the recorded total.
func (s *RunStats) FileCount() int { return int(s.fileCount.Load()) }

// AddIngested adds the number of records the store reported created.
func (s *RunStats) AddIngested(n int) { s.ingested.Add(int64(n)) }

// Ingested returns the number of records created so far.
func (s *RunStats) Ingested() int { return int(s.ingested.Load()) }

// IncIgnored counts one skipped file.
func (s *RunStats) IncIgnored() { s.ignored.Add(1) }

// Ignored returns the number of files skipped so far.
func (s *RunStats) Ignored() int { return int(s.ignored.Load()) }

// IncInFlight counts one batch handed to the submitter pool.
func (s *RunStats) IncInFlight() { s.inFlight.Add(1) }

// DecInFlight settles one batch, successful or not.
func (s *RunStats) DecInFlight() { s.inFlight.Add(-1) }

// InFlight returns the number of unsettled batches.
func (s *RunStats) InFlight() int { return int(s.inFlight.Load()) }

// MarkQueueBuilt signals that no more records will ever be enqueued.
func (s *RunStats) MarkQueueBuilt() { s.queueBuilt.Store(true) }

// QueueBuilt reports whether the producer has exhausted its input.
func (s *RunStats) QueueBuilt() bool { return s.queueBuilt.Load() }

// Processed returns ingested plus ignored, the progress numerator.
func (s *RunStats) Processed() int { return s.Ingested() + s.Ignored() }

// Failed returns fileCount - ingested - ignored. Meaningful only after
// the run terminates; FileCount is an estimate for directory roots, so
// the value can be negative for deeply nested trees.
func (s *RunStats) Failed() int { return s.FileCount() - s.Ingested() - s.Ignored() }
