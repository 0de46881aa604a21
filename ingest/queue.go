package ingest

import (
	"sync"

	"github.com/poiesic/catalogit/core"
)

// recordQueue is the shared hand-off point between the producer and the
// batch scheduler. It supports concurrent appends while a drain is in
// progress; a record is removed at most once.
type recordQueue struct {
	mu    sync.Mutex
	items []*core.Record
}

func newRecordQueue() *recordQueue {
	return &recordQueue{}
}

// Push appends a record to the queue.
func (q *recordQueue) Push(record *core.Record) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, record)
}

// Len returns the current queue size.
func (q *recordQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// DrainN removes and returns up to max records in insertion order.
// It never blocks and never removes more than max, even if records are
// appended concurrently.
func (q *recordQueue) DrainN(max int) []*core.Record {
	if max <= 0 {
		return nil
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	n := min(max, len(q.items))
	if n == 0 {
		return nil
	}

	batch := make([]*core.Record, n)
	copy(batch, q.items[:n])
	q.items = q.items[n:]
	return batch
}
