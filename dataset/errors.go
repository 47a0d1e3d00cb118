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


package dataset

import "errors"

var (
	// ErrDatasetNotFound indicates the catalog file does not exist.
	// This is a configuration error: fatal, no retry, no rebuild can fix it.
	ErrDatasetNotFound = errors.New("dataset file not found")

	// ErrDatasetUnreadable indicates the catalog file exists but could not
	// be parsed. Also a configuration error.
	ErrDatasetUnreadable = errors.New("dataset file unreadable")
)
