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

// Package normalize provides the shared text normalization pipeline.
//
// Both sides of a search pass through the same pipeline: record fields are
// normalized once at ingestion time into cached index text, and query terms
// are normalized per search. Symmetry between the two is what makes
// accent-folded, case-folded and stemmed matching work.
//
// All functions are pure and never fail; malformed input degrades to the
// input itself rather than an error.
package normalize
