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


package core

import "fmt"

// ValidateRecord validates a Record before it is submitted to a store.
//
// Validation rules:
//   - Title must not be empty (the pipeline backfills it from the source
//     file name before enqueue)
//   - Contents must not be empty
//
// NOT validated (populated later):
//   - ID (0 is valid; the store assigns one from the content hash)
//   - CreatedAt / ModifiedAt (set by the store on create)
func ValidateRecord(record *Record) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidRecord)
	}

	if record.Title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrEmptyTitle)
	}

	if len(record.Contents) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrEmptyContents)
	}

	return nil
}
