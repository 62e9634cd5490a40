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


// Package pipeline orchestrates one batch triage run over a loaded set of
// customer emails.
//
// The run is strictly phased: every email is classified first, producing
// the complete classification table, and only then is each email routed
// down its path. Order requests go through line extraction and stock-aware
// matching; product inquiries go through retrieval-augmented lookup. Both
// paths end in response generation and a formatting pass.
//
// Failures are isolated per email. An extraction that stays malformed after
// retries, a dead endpoint mid-run, or any other per-email error is logged,
// recorded in Results.Failures, and skipped; the batch always runs to
// completion.
package pipeline
