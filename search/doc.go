// Copyright 2026 Casenav Systems
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


// Package search manages the vector index over the case-study catalog and
// serves semantic similarity queries against it.
//
// The Manager type owns the index lifecycle:
//   - On first use it restores the index from persisted artifacts, validating
//     the embedding cache against the current catalog record by record.
//   - A stale or corrupt artifact triggers a full rebuild: every record is
//     re-embedded and both artifacts are rewritten.
//   - A valid cache with a missing snapshot rebuilds the index from cached
//     vectors without calling the embedder.
//
// Results carry both the raw distance and a similarity score normalized by
// the per-query maximum distance. Similarity is comparable within one query's
// result list only, never across queries.
package search
