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

// Package storage provides the storage abstraction layer for libsearch.
//
// This package defines repository interfaces that decouple storage
// implementation from the ingestion and search logic. It allows for
// different storage backends (BadgerDB, in-memory, etc.) to be used
// interchangeably.
//
// # Constructor Return Type Pattern
//
// Public constructors in backend packages return interfaces from this
// package to enforce abstraction:
//
//	records, err := badger.NewRecordRepository(backend)  // storage.RecordRepository
//
// Internal constructors may return concrete types since they're only used
// within the implementation package.
//
// # Architecture
//
// The storage layer follows the Repository pattern:
//
//   - Repository: lifecycle shared by all repositories
//   - RecordRepository: keyed feed records with a derived search index
//
// Each repository method is individually transactional; mutations within one
// call commit or fail as a unit.
//
// The derived index text of a record is maintained by the repository: it is
// rebuilt on every create and update, so it can never be partially stale
// relative to the source fields.
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support concurrent
// access from multiple goroutines. Queries are read-only and may run with
// unlimited concurrency against a consistent snapshot.
//
// # Context Support
//
// All repository methods accept context.Context for cancellation and timeout
// support. Pass context.Background() for operations without specific timeout
// requirements.
package storage
