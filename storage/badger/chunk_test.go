package badger

import (
	"context"
	"fmt"
	"testing"

	"github.com/poiesic/mailtriage/core"
	"github.com/poiesic/mailtriage/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) storage.ChunkRepository {
	t.Helper()
	repo, backend, err := NewMemoryChunkRepository()
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })
	return repo
}

func testChunk(productID string, index int, text string, vector []float32) *core.ChunkRecord {
	return &core.ChunkRecord{
		Id:        core.IDFromContent(fmt.Sprintf("%s:%d:%s", productID, index, text)),
		ProductId: productID,
		Index:     index,
		Text:      text,
		Meta: core.ChunkMeta{
			ProductName: "Canvas Tote",
			Category:    "Bags",
			Season:      "All seasons",
			Stock:       12,
		},
		Vector: vector,
	}
}

func TestChunkRepoAddAndGet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	chunk := testChunk("TOT1001", 0, "A sturdy canvas tote for everyday errands.", []float32{0.6, 0.8})
	stored, err := repo.AddChunks(ctx, chunk)
	require.NoError(t, err)
	require.Len(t, stored, 1)

	got, err := repo.GetChunk(ctx, chunk.Id)
	require.NoError(t, err)
	assert.Equal(t, chunk.Text, got.Text)
	assert.Equal(t, chunk.ProductId, got.ProductId)
	assert.Equal(t, chunk.Meta, got.Meta)
	assert.Equal(t, chunk.Vector, got.Vector)
}

func TestChunkRepoGetMissing(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetChunk(context.Background(), core.ID(999))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestChunkRepoGetChunksByProductOrdered(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.AddChunks(ctx,
		testChunk("SHT5501", 2, "third part of the description", nil),
		testChunk("SHT5501", 0, "first part of the description", nil),
		testChunk("SHT5501", 1, "second part of the description", nil),
		testChunk("BAG8801", 0, "unrelated product text", nil),
	)
	require.NoError(t, err)

	got, err := repo.GetChunksByProduct(ctx, "SHT5501")
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i, chunk := range got {
		assert.Equal(t, i, chunk.Index)
		assert.Equal(t, "SHT5501", chunk.ProductId)
	}
}

func TestChunkRepoGetChunksByProductUnknown(t *testing.T) {
	repo := newTestRepo(t)

	got, err := repo.GetChunksByProduct(context.Background(), "NOPE000")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestChunkRepoCount(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	_, err = repo.AddChunks(ctx,
		testChunk("AAA0001", 0, "alpha", nil),
		testChunk("AAA0001", 1, "beta", nil),
		testChunk("BBB0002", 0, "gamma", nil),
	)
	require.NoError(t, err)

	count, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestChunkRepoFindSimilar(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.AddChunks(ctx,
		testChunk("AAA0001", 0, "exact match", []float32{1, 0, 0}),
		testChunk("BBB0002", 0, "close match", []float32{0.9, 0.4359, 0}),
		testChunk("CCC0003", 0, "orthogonal", []float32{0, 1, 0}),
		testChunk("DDD0004", 0, "no embedding", nil),
	)
	require.NoError(t, err)

	matches, err := repo.FindSimilar(ctx, []float32{1, 0, 0}, 0.5, 10)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "AAA0001", matches[0].Chunk.ProductId)
	assert.Equal(t, "BBB0002", matches[1].Chunk.ProductId)
	assert.Greater(t, matches[0].Score, matches[1].Score)
}

func TestChunkRepoFindSimilarLimit(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.AddChunks(ctx,
		testChunk("AAA0001", 0, "one", []float32{1, 0}),
		testChunk("BBB0002", 0, "two", []float32{0.99, 0.141}),
		testChunk("CCC0003", 0, "three", []float32{0.98, 0.199}),
	)
	require.NoError(t, err)

	matches, err := repo.FindSimilar(ctx, []float32{1, 0}, 0.0, 2)
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}

func TestChunkRepoDropAll(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.AddChunks(ctx, testChunk("AAA0001", 0, "ephemeral", []float32{1}))
	require.NoError(t, err)
	require.NoError(t, repo.DropAll(ctx))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestChunkRepoClosed(t *testing.T) {
	repo, backend, err := NewMemoryChunkRepository()
	require.NoError(t, err)
	require.NoError(t, backend.Close())

	ctx := context.Background()
	_, err = repo.AddChunks(ctx, testChunk("AAA0001", 0, "x", nil))
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
	_, err = repo.GetChunk(ctx, 1)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
	_, err = repo.Count(ctx)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}
