package ingest

import (
	"time"

	"github.com/poiesic/catalogit/core"
)

// batchScheduler drains the shared queue into bounded batches on a
// fixed-delay timer: the delay to the next run starts only after the
// current run completes.
type batchScheduler struct {
	queue     *recordQueue
	stats     *RunStats
	batchSize int
	interval  time.Duration
	dispatch  func(batch []*core.Record)
	tracker   *ProgressTracker
	stop      chan struct{}
	done      chan struct{}
}

func newBatchScheduler(queue *recordQueue, stats *RunStats, batchSize int, interval time.Duration,
	dispatch func(batch []*core.Record), tracker *ProgressTracker) *batchScheduler {
	return &batchScheduler{
		queue:     queue,
		stats:     stats,
		batchSize: batchSize,
		interval:  interval,
		dispatch:  dispatch,
		tracker:   tracker,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

func (s *batchScheduler) run() {
	defer close(s.done)

	timer := time.NewTimer(s.interval)
	defer timer.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-timer.C:
			s.tick()
			timer.Reset(s.interval)
		}
	}
}

// tick applies the two-threshold batching policy: a full batch whenever
// the queue holds more than batchSize records, the final short batch
// only once the producer is done. An undersized batch is never emitted
// while the producer may still add records.
func (s *batchScheduler) tick() {
	n := s.queue.Len()
	if n == 0 {
		return
	}

	max := 0
	switch {
	case n > s.batchSize:
		max = s.batchSize
	case s.stats.QueueBuilt():
		max = n
	}
	if max == 0 {
		return
	}

	// Only this goroutine removes from the queue, so at least max
	// records are still present. Counting the batch in flight before
	// draining keeps the orchestrator's completion check from firing
	// between the drain and the dispatch.
	s.stats.IncInFlight()
	batch := s.queue.DrainN(max)
	if len(batch) == 0 {
		s.stats.DecInFlight()
		return
	}

	s.dispatch(batch)
	s.tracker.Refresh()
}

// Stop halts the timer loop and waits for an in-progress tick to
// finish. Batches already dispatched keep running on the submitter
// pool.
func (s *batchScheduler) Stop() {
	close(s.stop)
	<-s.done
}
