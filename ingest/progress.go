package ingest

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// ProgressTracker renders an overwriting progress line for an ingest
// run. It reads counters from the shared RunStats, so any stage may
// call Refresh after changing a counter.
type ProgressTracker struct {
	writer    io.Writer
	stats     *RunStats
	startTime time.Time
	started   bool
	mu        sync.Mutex
}

// NewProgressTracker creates a progress tracker.
// writer: where to write progress output (typically os.Stderr)
func NewProgressTracker(writer io.Writer, stats *RunStats) *ProgressTracker {
	if writer == nil {
		writer = io.Discard
	}
	return &ProgressTracker{
		writer: writer,
		stats:  stats,
	}
}

// Start begins tracking progress.
func (p *ProgressTracker) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.startTime = time.Now()
	p.started = true
}

// Refresh reprints the progress line with the current counters.
func (p *ProgressTracker) Refresh() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}
	p.report()
}

// Finish prints a final progress line followed by a newline.
func (p *ProgressTracker) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}
	p.report()
	fmt.Fprintln(p.writer)
}

// Elapsed returns the time elapsed since Start was called.
func (p *ProgressTracker) Elapsed() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return 0
	}
	return time.Since(p.startTime)
}

// report prints the current progress. Must be called with lock held.
func (p *ProgressTracker) report() {
	current := p.stats.Processed()
	total := p.stats.FileCount()

	elapsed := time.Since(p.startTime)
	rate := 0.0
	if elapsed > 0 {
		rate = float64(p.stats.Ingested()) / elapsed.Seconds()
	}

	percentage := 0.0
	if total > 0 {
		percentage = float64(current) / float64(total) * 100.0
	}

	fmt.Fprintf(p.writer, "\rProgress: %d/%d (%.1f%%) - %.1f records/s",
		current, total, percentage, rate)
}
