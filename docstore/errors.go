package docstore

import "errors"

var (
	// ErrChunkRepositoryRequired is returned when a chunk repository is not provided.
	ErrChunkRepositoryRequired = errors.New("chunk repository required")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrInvalidChunking is returned for a chunk size/overlap combination
	// that cannot produce bounded chunks.
	ErrInvalidChunking = errors.New("invalid chunking parameters")

	// ErrBuildFailed wraps the underlying cause when an index build aborts.
	// After a failed build the store reports not ready and holds no records.
	ErrBuildFailed = errors.New("index build failed")
)
