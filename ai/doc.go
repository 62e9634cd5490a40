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


// Package ai provides abstractions for the AI services used in mailtriage.
//
// This package defines interfaces for text embeddings, email classification,
// order line extraction, and response generation. It follows the dependency
// inversion principle: the matching and retrieval logic depends on these
// abstractions, never on a live service, so correctness can be tested with
// deterministic stubs.
//
// # Design Principles
//
// The package is designed around four capability interfaces:
//
//   - Embedder: Generates vector embeddings from text
//   - Classifier: Labels an email as order_request or product_inquiry
//   - OrderExtractor: Parses an email body into validated order lines
//   - Responder: Generates and formats reply content
//
// plus AIProvider, which aggregates them for convenient initialization.
//
// # Implementation Packages
//
// The ai package includes two implementation sub-packages:
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// Public constructors (openai.NewProvider etc.) return interface types to
// enforce abstraction. Mock constructors return concrete types so tests can
// inject behavior and assert call counts.
//
// # Usage Example
//
//	config := ai.DefaultConfig()
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	category, err := provider.Classifier().ClassifyEmail(ctx, subject, body)
//	lines, err := provider.OrderExtractor().ExtractOrderLines(ctx, body)
package ai
