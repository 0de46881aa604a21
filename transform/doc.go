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


// Package transform converts source files into catalog records.
//
// Transformers are registered under string identifiers and resolved by
// the pipeline at setup time. Three transformers ship with catalogit:
//
//   - "mus" (the default): decodes a Record from its MUS binary encoding
//   - "json": decodes a Record from a JSON document
//   - "text": builds a Record from plain text, taking the title from
//     the first line
//
// A transform failure is local to the file that caused it; the pipeline
// logs it and moves on.
package transform
