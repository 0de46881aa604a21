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


// Package storage provides the catalog store abstraction for catalogit.
//
// This package defines the CatalogStore interface that decouples the
// ingest pipeline from the backing store implementation. It allows
// different backends (BadgerDB, PostgreSQL, in-memory) to be used
// interchangeably.
//
// # Constructor Return Type Pattern
//
// Backend packages return the storage.CatalogStore interface from their
// public constructors to enforce abstraction:
//
//	store, err := badger.NewCatalog(backend) // returns storage.CatalogStore
//
// # Error Taxonomy
//
// Store implementations distinguish two recoverable failure classes that
// the pipeline handles per batch:
//
//   - ErrSourceUnavailable: the store cannot be reached at all
//   - ErrIngest: the store rejected the create operation
//
// Both are wrapped with fmt.Errorf("%w: ...") so callers can use
// errors.Is.
//
// # Thread Safety
//
// All store implementations must be thread-safe: the submitter pool
// invokes CreateRecords concurrently from multiple goroutines with no
// client-side locking.
package storage
