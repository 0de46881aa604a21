package badger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/catalogit/core"
	"github.com/poiesic/catalogit/storage"
)

// Catalog implements storage.CatalogStore for BadgerDB.
type Catalog struct {
	backend *Backend
	logger  *slog.Logger
}

var _ storage.CatalogStore = (*Catalog)(nil)

// NewCatalog creates a catalog store on top of an open backend.
func NewCatalog(backend *Backend) (storage.CatalogStore, error) {
	if backend == nil {
		return nil, fmt.Errorf("%w: backend is nil", storage.ErrSourceUnavailable)
	}

	return &Catalog{
		backend: backend,
		logger:  slog.Default(),
	}, nil
}

// CreateRecords persists a batch of records in a single transaction.
// Records with ID=0 get a content-based ID. Records whose key already
// exists, or that fail validation, are skipped rather than failing the
// batch, so the returned slice may be shorter than the input.
func (c *Catalog) CreateRecords(ctx context.Context, records []*core.Record) ([]*core.Record, error) {
	if c.backend.IsClosed() {
		return nil, fmt.Errorf("%w: backend is closed", storage.ErrSourceUnavailable)
	}

	created := make([]*core.Record, 0, len(records))

	err := c.backend.WithTx(func(tx *badger.Txn) error {
		for _, record := range records {
			if err := core.ValidateRecord(record); err != nil {
				c.logger.Debug("skipping invalid record", "source", record.Source, "err", err)
				continue
			}

			if record.Id == 0 {
				record.Id = core.IDFromContent(record.Contents)
			}

			key := makeRecordKey(record.Id)

			// Duplicate IDs are not re-created.
			_, err := tx.Get(key)
			if err == nil {
				c.logger.Debug("skipping duplicate record", "id", record.Id, "source", record.Source)
				continue
			}
			if !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}

			record.CreatedAt = time.Now().UTC()
			record.ModifiedAt = record.CreatedAt

			if err := tx.Set(key, storage.MarshalRecord(record)); err != nil {
				return err
			}
			created = append(created, record)
		}
		return tx.Commit()
	}, true)

	if err != nil {
		if errors.Is(err, badger.ErrDBClosed) {
			return nil, fmt.Errorf("%w: %w", storage.ErrSourceUnavailable, err)
		}
		return nil, fmt.Errorf("%w: %w", storage.ErrIngest, err)
	}

	return created, nil
}

// GetRecord retrieves a single record by ID.
func (c *Catalog) GetRecord(ctx context.Context, id core.ID) (*core.Record, error) {
	var record *core.Record

	err := c.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeRecordKey(id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			record, err = storage.UnmarshalRecord(val)
			return err
		})
	}, false)

	if err != nil {
		return nil, err
	}
	return record, nil
}

// CountRecords returns the total number of records in the catalog.
func (c *Catalog) CountRecords(ctx context.Context) (int, error) {
	count := 0

	err := c.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := tx.NewIterator(opts)
		defer it.Close()

		prefix := recordKeyPrefix()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	}, false)

	if err != nil {
		return 0, err
	}
	return count, nil
}

// Close is a no-op; the backend owns the database handle.
func (c *Catalog) Close() error {
	return nil
}
