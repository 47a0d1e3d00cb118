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


package storage

import "errors"

var (
	// ErrNotFound indicates that the requested artifact was not found.
	// Callers treat a missing artifact as "absent, rebuild", never as fatal.
	ErrNotFound = errors.New("artifact not found")

	// ErrSerializationFailed indicates a serialization/deserialization failure.
	// A persisted artifact that fails to decode is corrupt and must be
	// discarded and regenerated, not surfaced to query callers.
	ErrSerializationFailed = errors.New("serialization failed")

	// ErrTruncatedData indicates that a persisted artifact ends before its
	// encoding does. Always wrapped in ErrSerializationFailed.
	ErrTruncatedData = errors.New("truncated data")

	// ErrStorageClosed indicates that the storage backend is closed.
	ErrStorageClosed = errors.New("storage is closed")
)
