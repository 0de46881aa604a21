package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/poiesic/catalogit/core"
	"github.com/poiesic/catalogit/storage"
)

const schema = `
	CREATE TABLE IF NOT EXISTS catalog_records (
		id           BIGINT PRIMARY KEY,
		title        TEXT NOT NULL,
		source       TEXT NOT NULL DEFAULT '',
		content_type TEXT NOT NULL DEFAULT '',
		contents     BYTEA,
		metadata     JSONB,
		created_at   TIMESTAMPTZ NOT NULL,
		modified_at  TIMESTAMPTZ NOT NULL
	)
`

// Catalog implements storage.CatalogStore using PostgreSQL.
type Catalog struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

var _ storage.CatalogStore = (*Catalog)(nil)

// NewCatalog creates a PostgreSQL catalog store and ensures the schema
// exists. The databaseURL is a standard postgres connection string.
func NewCatalog(ctx context.Context, databaseURL string) (storage.CatalogStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create connection pool: %w", storage.ErrSourceUnavailable, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: failed to ping database: %w", storage.ErrSourceUnavailable, err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	return &Catalog{
		pool:   pool,
		logger: slog.Default(),
	}, nil
}

// CreateRecords persists a batch of records with a single batched
// round trip. Duplicate IDs are rejected by ON CONFLICT DO NOTHING and
// reported through the created slice, not as an error.
func (c *Catalog) CreateRecords(ctx context.Context, records []*core.Record) ([]*core.Record, error) {
	batch := &pgx.Batch{}
	queued := make([]*core.Record, 0, len(records))
	now := time.Now().UTC()

	for _, record := range records {
		if err := core.ValidateRecord(record); err != nil {
			c.logger.Debug("skipping invalid record", "source", record.Source, "err", err)
			continue
		}

		if record.Id == 0 {
			record.Id = core.IDFromContent(record.Contents)
		}
		record.CreatedAt = now
		record.ModifiedAt = now

		metadataJSON, err := json.Marshal(record.Metadata)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal metadata: %w", err)
		}

		batch.Queue(`
			INSERT INTO catalog_records (
				id, title, source, content_type, contents, metadata, created_at, modified_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (id) DO NOTHING
		`,
			int64(record.Id),
			record.Title,
			record.Source,
			record.ContentType,
			record.Contents,
			metadataJSON,
			record.CreatedAt,
			record.ModifiedAt,
		)
		queued = append(queued, record)
	}

	if batch.Len() == 0 {
		return nil, nil
	}

	results := c.pool.SendBatch(ctx, batch)
	defer results.Close()

	created := make([]*core.Record, 0, len(queued))
	for _, record := range queued {
		tag, err := results.Exec()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", storage.ErrIngest, err)
		}
		if tag.RowsAffected() == 1 {
			created = append(created, record)
		} else {
			c.logger.Debug("skipping duplicate record", "id", record.Id, "source", record.Source)
		}
	}

	return created, nil
}

// GetRecord retrieves a single record by ID.
func (c *Catalog) GetRecord(ctx context.Context, id core.ID) (*core.Record, error) {
	query := `
		SELECT id, title, source, content_type, contents, metadata, created_at, modified_at
		FROM catalog_records
		WHERE id = $1
	`

	var record core.Record
	var rawID int64
	var metadataJSON []byte

	err := c.pool.QueryRow(ctx, query, int64(id)).Scan(
		&rawID,
		&record.Title,
		&record.Source,
		&record.ContentType,
		&record.Contents,
		&metadataJSON,
		&record.CreatedAt,
		&record.ModifiedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get record: %w", err)
	}

	record.Id = core.ID(rawID)
	if len(metadataJSON) > 0 {
		if err := json.Unmarshal(metadataJSON, &record.Metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
		}
	}

	return &record, nil
}

// CountRecords returns the total number of records in the catalog.
func (c *Catalog) CountRecords(ctx context.Context) (int, error) {
	var count int
	err := c.pool.QueryRow(ctx, `SELECT count(*) FROM catalog_records`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return count, nil
}

// Close closes the connection pool.
func (c *Catalog) Close() error {
	c.pool.Close()
	return nil
}
