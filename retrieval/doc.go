// Package retrieval answers free-text product queries against the chunk
// index built by docstore.
//
// A query is embedded with the same model used at index time, matched
// against stored chunk vectors, filtered by a similarity floor, and
// deduplicated so each product appears once at its best-scoring chunk.
package retrieval
