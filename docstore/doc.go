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


// Package docstore builds the chunked product index searched by the
// retrieval engine.
//
// Build renders each product into a canonical text document, splits it into
// bounded overlapping chunks, embeds every chunk, and writes the records to
// the chunk repository in one pass. A build is all or nothing: any embedding
// failure aborts it, partial records are dropped, and the store stays not
// ready.
//
// Chunk metadata is a snapshot taken at build time. Stock recorded there may
// go stale once order processing starts decrementing the ledger; the snapshot
// is never refreshed.
package docstore
