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


package badger

import (
	"bytes"
	"fmt"

	"github.com/poiesic/mailtriage/core"
)

const (
	// chunkRecordPrefix prefixes both chunk record keys and their
	// product-index keys, so one iterator prefix covers the whole space.
	chunkRecordPrefix = "prdchk"

	// chunkProductIndexPrefix prefixes secondary index keys that map a
	// product to its chunks in chunk-index order.
	chunkProductIndexPrefix = "prdchkp"
)

func chunkRecordKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", chunkRecordPrefix, id))
}

func chunkProductIndexKey(productID string, index int) []byte {
	return []byte(fmt.Sprintf("%s:%s:%08d", chunkProductIndexPrefix, productID, index))
}

func chunkProductIndexScanPrefix(productID string) []byte {
	return []byte(fmt.Sprintf("%s:%s:", chunkProductIndexPrefix, productID))
}

func isChunkProductIndexKey(key []byte) bool {
	return bytes.HasPrefix(key, []byte(chunkProductIndexPrefix))
}
