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

// Package feed holds the per-feed knowledge the generic ingestion pipeline
// is parameterized with: upstream URIs, the exact header each feed must
// carry, minimum plausible row counts, and the row-to-record mapping for
// each feed type (staff directory, database catalog, best bets).
//
// It also provides the HTTP fetcher collaborator used to retrieve feed
// bytes.
package feed
