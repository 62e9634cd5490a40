package badger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/mailtriage/core"
	"github.com/poiesic/mailtriage/storage"
)

// ChunkRepo implements storage.ChunkRepository backed by BadgerDB.
type ChunkRepo struct {
	backend *Backend
	logger  *slog.Logger
}

var _ storage.ChunkRepository = (*ChunkRepo)(nil)

// NewChunkRepository creates a chunk repository on top of an open backend.
func NewChunkRepository(backend *Backend) (storage.ChunkRepository, error) {
	if backend == nil {
		return nil, errors.New("backend cannot be nil")
	}
	return &ChunkRepo{
		backend: backend,
		logger:  slog.Default().With("component", "chunkrepo"),
	}, nil
}

// NewMemoryChunkRepository opens an in-memory backend and a repository on
// top of it. Closing the returned backend releases everything.
func NewMemoryChunkRepository() (storage.ChunkRepository, *Backend, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, nil, err
	}
	repo, err := NewChunkRepository(backend)
	if err != nil {
		backend.Close()
		return nil, nil, err
	}
	return repo, backend, nil
}

// AddChunks stores all records in a single transaction. Either every
// record and its product-index entry lands, or none do.
func (r *ChunkRepo) AddChunks(ctx context.Context, chunks ...*core.ChunkRecord) ([]*core.ChunkRecord, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}
	if len(chunks) == 0 {
		return nil, nil
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, record := range chunks {
			data := storage.MarshalChunkRecord(record)
			if err := tx.Set(chunkRecordKey(record.Id), data); err != nil {
				return err
			}
			idRef := storage.MarshalID(record.Id)
			if err := tx.Set(chunkProductIndexKey(record.ProductId, record.Index), idRef); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, fmt.Errorf("failed to add chunks: %w", err)
	}

	r.logger.Debug("stored chunk records", "count", len(chunks))
	return chunks, nil
}

// GetChunk retrieves a single chunk record by ID.
func (r *ChunkRepo) GetChunk(ctx context.Context, id core.ID) (*core.ChunkRecord, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	var record *core.ChunkRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(chunkRecordKey(id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var err error
			record, err = storage.UnmarshalChunkRecord(val)
			return err
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return record, nil
}

// GetChunksByProduct returns every chunk stored for a product, ordered by
// chunk index. An unknown product yields an empty slice, not an error.
func (r *ChunkRepo) GetChunksByProduct(ctx context.Context, productID string) ([]*core.ChunkRecord, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	var ids []core.ID
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = chunkProductIndexScanPrefix(productID)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				id, err := storage.UnmarshalID(val)
				if err != nil {
					return err
				}
				ids = append(ids, id)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	chunks := make([]*core.ChunkRecord, 0, len(ids))
	for _, id := range ids {
		chunk, err := r.GetChunk(ctx, id)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, chunk)
	}
	return chunks, nil
}

// Count returns the number of chunk records stored.
func (r *ChunkRepo) Count(ctx context.Context) (int, error) {
	if r.backend.IsClosed() {
		return 0, storage.ErrStorageClosed
	}

	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(chunkRecordPrefix)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if isChunkProductIndexKey(iter.Item().Key()) {
				continue
			}
			count++
		}
		return nil
	}, false)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// FindSimilar returns the chunks most similar to the query vector.
func (r *ChunkRepo) FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.ChunkMatch, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}
	return r.backend.FindSimilar(ctx, vector, minSimilarity, limit)
}

// DropAll removes every chunk record and index entry.
func (r *ChunkRepo) DropAll(ctx context.Context) error {
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}
	return r.backend.DropAll()
}

// Close closes the underlying backend.
func (r *ChunkRepo) Close() error {
	if r.backend.IsClosed() {
		return nil
	}
	return r.backend.Close()
}
