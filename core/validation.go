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


package core

import "fmt"

// ValidateCacheEntry validates a CacheEntry according to domain rules.
//
// Validation rules:
//   - Vector must not be empty
//
// NOT validated:
//   - RecordId (0 is a valid row position)
//   - Fingerprint (any 64-bit value is a valid hash)
func ValidateCacheEntry(entry *CacheEntry) error {
	if entry == nil {
		return fmt.Errorf("%w: entry is nil", ErrInvalidCacheEntry)
	}

	if len(entry.Vector) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidCacheEntry, ErrEmptyVector)
	}

	return nil
}

// ValidateSnapshot validates an IndexSnapshot according to domain rules.
//
// Validation rules:
//   - Vector count must equal record identity count
//   - Every vector must have length Dimension
//
// A snapshot with zero records is valid: an empty catalog produces an empty
// index rather than an error.
func ValidateSnapshot(snapshot *IndexSnapshot) error {
	if snapshot == nil {
		return fmt.Errorf("%w: snapshot is nil", ErrInvalidSnapshot)
	}

	if len(snapshot.Vectors) != len(snapshot.RecordIds) {
		return fmt.Errorf("%w: %w (%d vectors, %d identities)",
			ErrInvalidSnapshot, ErrVectorCountMismatch, len(snapshot.Vectors), len(snapshot.RecordIds))
	}

	for i, vector := range snapshot.Vectors {
		if len(vector) != snapshot.Dimension {
			return fmt.Errorf("%w: %w (slot %d has %d, dimension is %d)",
				ErrInvalidSnapshot, ErrDimensionDrift, i, len(vector), snapshot.Dimension)
		}
	}

	return nil
}
