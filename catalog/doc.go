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


// Package catalog handles sheet I/O at the edges of the pipeline: loading
// product and email CSV exports from local files or HTTP(S) URLs, and
// writing the four result tables back out as CSV files.
//
// All file handling lives here; the processing packages only ever see
// loaded records and produce in-memory results.
package catalog
