// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package catalogit

import (
	"context"
	"log/slog"

	"github.com/poiesic/catalogit/ingest"
	"github.com/poiesic/catalogit/storage"
	"github.com/poiesic/catalogit/storage/badger"
	"github.com/poiesic/catalogit/storage/postgres"
)

// Catalog bundles a catalog store with the factories that operate on
// it. It is the top-level entry point for embedding the catalog in
// another program.
type Catalog struct {
	backend *badger.Backend // nil for non-embedded backends
	store   storage.CatalogStore
	logger  *slog.Logger
}

// CatalogOption configures a Catalog.
type CatalogOption func(*catalogOptions)

type catalogOptions struct {
	logger   *slog.Logger
	inMemory bool
}

// WithCatalogLogger sets the logger used for lifecycle events.
func WithCatalogLogger(logger *slog.Logger) CatalogOption {
	return func(o *catalogOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithInMemory opens the embedded store in memory, discarding all data
// on Close. Useful for tests and dry runs.
func WithInMemory() CatalogOption {
	return func(o *catalogOptions) {
		o.inMemory = true
	}
}

func applyOptions(opts []CatalogOption) *catalogOptions {
	options := &catalogOptions{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// NewCatalog opens a catalog backed by the embedded store at filePath.
func NewCatalog(filePath string, opts ...CatalogOption) (*Catalog, error) {
	options := applyOptions(opts)

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	store, err := badger.NewCatalog(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	return &Catalog{
		backend: backend,
		store:   store,
		logger:  options.logger,
	}, nil
}

// NewPostgresCatalog opens a catalog backed by a PostgreSQL database.
func NewPostgresCatalog(ctx context.Context, databaseURL string, opts ...CatalogOption) (*Catalog, error) {
	options := applyOptions(opts)

	store, err := postgres.NewCatalog(ctx, databaseURL)
	if err != nil {
		return nil, err
	}

	return &Catalog{
		store:  store,
		logger: options.logger,
	}, nil
}

// Store returns the underlying catalog store.
func (c *Catalog) Store() storage.CatalogStore {
	return c.store
}

// NewIngester creates an ingest pipeline that submits to this catalog.
func (c *Catalog) NewIngester(config *ingest.Config, opts ...ingest.Option) (*ingest.Ingester, error) {
	return ingest.NewIngester(c.store, config, opts...)
}

func (c *Catalog) Close() error {
	if err := c.store.Close(); err != nil {
		c.logger.Error("error closing catalog store", "err", err)
		return err
	}

	if c.backend != nil {
		if err := c.backend.Close(); err != nil {
			c.logger.Error("error closing backend storage", "err", err)
			return err
		}
	}
	return nil
}
