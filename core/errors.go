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

import "errors"

// Domain validation errors
var (
	// ErrInvalidCacheEntry indicates a CacheEntry failed validation.
	ErrInvalidCacheEntry = errors.New("invalid cache entry")

	// ErrInvalidSnapshot indicates an IndexSnapshot failed validation.
	ErrInvalidSnapshot = errors.New("invalid index snapshot")

	// ErrEmptyVector indicates an embedding vector is empty.
	ErrEmptyVector = errors.New("embedding vector cannot be empty")

	// ErrVectorCountMismatch indicates a snapshot's vector and identity
	// arrays disagree in length.
	ErrVectorCountMismatch = errors.New("vector count does not match record identity count")

	// ErrDimensionDrift indicates a vector whose length disagrees with the
	// snapshot's declared dimension.
	ErrDimensionDrift = errors.New("vector length does not match snapshot dimension")
)
