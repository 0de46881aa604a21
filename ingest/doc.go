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


// Package ingest implements the bulk ingestion pipeline that walks a
// file tree, transforms each file into a catalog record, and submits
// records to a catalog store in bounded batches.
//
// Three stages run concurrently for the duration of a run:
//
//   - the producer walks the tree, filters ignored files, transforms
//     the rest, and pushes records onto a shared queue
//   - the batch scheduler drains the queue into bounded batches on a
//     fixed-delay timer
//   - the submitter pool sends batches to the store; when the pool is
//     saturated, a batch runs on the scheduling goroutine instead
//     (caller-runs backpressure)
//
// Per-file and per-batch failures are logged and folded into the run
// counters; only setup-phase errors abort a run.
package ingest
