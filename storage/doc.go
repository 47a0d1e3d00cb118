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


// Package storage provides the artifact persistence layer for casenav.
//
// The search subsystem keeps exactly two durable artifacts: the embedding
// cache (per-record identity, fingerprint, and vector, in dataset order) and
// the index snapshot (vectors plus the slot-to-identity mapping). This
// package defines the ArtifactRepository interface that decouples the index
// manager from the storage implementation, and the mus-format binary
// serialization for both artifacts.
//
// # Constructor Return Type Pattern
//
// Public constructors return the ArtifactRepository interface to enforce
// abstraction and enable multiple storage backend implementations:
//
//	repo, err := badger.NewArtifactRepository(path)  // returns storage.ArtifactRepository
//
// # Disposability
//
// Both artifacts are pure derivations of the catalog plus the embedding
// model. Corruption is recovered by deleting and rebuilding, never by
// surfacing an error to a query; the sentinel errors in this package let the
// manager distinguish "absent" from "corrupt" for logging, but both take the
// same rebuild path.
//
// # Usage
//
//	repo, err := badger.NewArtifactRepository("/path/to/store")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer repo.Close()
//
// Use in tests with in-memory storage:
//
//	repo, err := badger.NewMemoryArtifactRepository()
package storage
