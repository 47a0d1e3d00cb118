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


// Package ai provides the text-embedding abstraction used by casenav.
//
// This package defines the Embedder interface that the search subsystem
// depends on, following the dependency inversion principle: the index manager
// and rebuild machinery depend on the abstraction, never on a concrete model
// client.
//
// # Implementation Packages
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// # Constructor Return Type Pattern
//
// Public constructors (openai.NewEmbedder) return the INTERFACE type to
// enforce abstraction and prevent accidental coupling to a concrete
// implementation:
//
//	embedder, err := openai.NewEmbedder(config)  // returns ai.Embedder
//
// Test utility constructors (mock.NewMockEmbedder) return CONCRETE types to
// enable test assertions and behavior injection via the mock's public fields
// (EmbedTextFunc, CallCount, SetDimensions, Reset).
//
// # Lifecycle
//
// The embedder is an expensive, process-wide resource: it is constructed once
// and handed to the index manager at construction time rather than looked up
// as ambient state. A constructor failure is a fatal configuration error;
// there is no silent fallback to empty vectors.
package ai
