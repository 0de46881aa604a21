package storage

import (
	"context"

	"github.com/poiesic/catalogit/core"
)

// CatalogStore provides operations for persisting and retrieving catalog
// records. Implementations must be thread-safe and support concurrent
// access.
type CatalogStore interface {
	// CreateRecords persists a batch of records as a single create
	// operation and returns the records actually created. The store may
	// reject a subset (e.g., duplicates or invalid records), so the
	// result can be shorter than the batch. Records with ID=0 are
	// assigned a content-based ID before being persisted.
	CreateRecords(ctx context.Context, records []*core.Record) ([]*core.Record, error)

	// GetRecord retrieves a single record by ID.
	// Returns ErrNotFound if the record doesn't exist.
	GetRecord(ctx context.Context, id core.ID) (*core.Record, error)

	// CountRecords returns the total number of records in the catalog.
	CountRecords(ctx context.Context) (int, error)

	// Close closes the store and releases resources.
	Close() error
}
