package storage

import (
	"context"

	"github.com/poiesic/mailtriage/core"
)

// ChunkRepository provides operations for managing product chunk records.
// Implementations must be thread-safe and support concurrent access.
type ChunkRepository interface {
	// AddChunks adds one or more chunk records to storage.
	// Records carry content-based IDs (IDFromContent of product id + index + text).
	// Returns the records as stored.
	AddChunks(ctx context.Context, chunks ...*core.ChunkRecord) ([]*core.ChunkRecord, error)

	// GetChunk retrieves a single chunk record by ID.
	// Returns ErrNotFound if the record doesn't exist.
	GetChunk(ctx context.Context, id core.ID) (*core.ChunkRecord, error)

	// GetChunksByProduct retrieves all chunk records for a product,
	// ordered by chunk index. Returns an empty slice when the product
	// has no chunks.
	GetChunksByProduct(ctx context.Context, productID string) ([]*core.ChunkRecord, error)

	// Count returns the number of stored chunk records.
	Count(ctx context.Context) (int, error)

	// FindSimilar finds chunk records similar to the given vector.
	// Returns chunks with similarity >= minSimilarity, up to limit results.
	// Results are ordered by similarity score (highest first).
	FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.ChunkMatch, error)

	// DropAll removes every chunk record and index entry. Used to discard
	// a partially written index after a failed build.
	DropAll(ctx context.Context) error

	// Close closes the repository and releases resources.
	Close() error
}
