package docstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/mailtriage/ai/mock"
	"github.com/poiesic/mailtriage/core"
	"github.com/poiesic/mailtriage/storage"
	"github.com/poiesic/mailtriage/storage/badger"
)

func testCatalog() []*core.Product {
	return []*core.Product{
		{Id: "HAT0001", Name: "Blue Hat", Category: "Accessories", Description: "A warm knit hat for cold days.", Season: "Winter", Stock: 5},
		{Id: "SHT5501", Name: "Linen Shirt", Category: "Shirts", Description: strings.Repeat("A breezy linen shirt with a relaxed fit. ", 60), Season: "Summer", Stock: 100},
	}
}

func newTestStore(t *testing.T, opts ...Option) (*Store, storage.ChunkRepository, *mock.MockEmbedder) {
	t.Helper()
	repo, backend, err := badger.NewMemoryChunkRepository()
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	embedder := mock.NewMockEmbedder()
	store, err := NewStore(repo, embedder, opts...)
	require.NoError(t, err)
	return store, repo, embedder
}

func TestNewStoreValidation(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	repo, backend, err := badger.NewMemoryChunkRepository()
	require.NoError(t, err)
	defer backend.Close()

	_, err = NewStore(nil, embedder)
	assert.ErrorIs(t, err, ErrChunkRepositoryRequired)

	_, err = NewStore(repo, nil)
	assert.ErrorIs(t, err, ErrEmbedderRequired)

	_, err = NewStore(repo, embedder, WithChunkSize(100), WithChunkOverlap(100))
	assert.ErrorIs(t, err, ErrInvalidChunking)

	_, err = NewStore(repo, embedder, WithChunkSize(0))
	assert.ErrorIs(t, err, ErrInvalidChunking)
}

func TestBuildIndexesEveryProduct(t *testing.T) {
	store, repo, _ := newTestStore(t)
	ctx := context.Background()

	require.False(t, store.Ready())
	require.NoError(t, store.Build(ctx, testCatalog()))
	assert.True(t, store.Ready())

	for _, p := range testCatalog() {
		chunks, err := repo.GetChunksByProduct(ctx, p.Id)
		require.NoError(t, err)
		require.NotEmpty(t, chunks, "product %s has no chunks", p.Id)

		for i, chunk := range chunks {
			assert.Equal(t, i, chunk.Index)
			assert.Equal(t, p.Name, chunk.Meta.ProductName)
			assert.Equal(t, p.Stock, chunk.Meta.Stock)
			assert.NotEmpty(t, chunk.Vector)
		}
	}
}

func TestBuildBoundsChunkSize(t *testing.T) {
	store, repo, _ := newTestStore(t, WithChunkSize(200), WithChunkOverlap(40))
	ctx := context.Background()

	require.NoError(t, store.Build(ctx, testCatalog()))

	chunks, err := repo.GetChunksByProduct(ctx, "SHT5501")
	require.NoError(t, err)
	require.Greater(t, len(chunks), 1, "long description should split into multiple chunks")
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk.Text), 200)
	}
}

func TestBuildRejectsInvalidProduct(t *testing.T) {
	store, _, _ := newTestStore(t)

	err := store.Build(context.Background(), []*core.Product{
		{Id: "", Name: "Nameless", Stock: 1},
	})
	assert.ErrorIs(t, err, ErrBuildFailed)
	assert.False(t, store.Ready())
}

func TestBuildAbortsOnEmbeddingFailure(t *testing.T) {
	store, repo, embedder := newTestStore(t)
	ctx := context.Background()

	boom := errors.New("embedding endpoint down")
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, boom
	}

	err := store.Build(ctx, testCatalog())
	assert.ErrorIs(t, err, ErrBuildFailed)
	assert.ErrorIs(t, err, boom)
	assert.False(t, store.Ready())

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count, "failed build must leave no records behind")
}

func TestBuildReplacesPreviousIndex(t *testing.T) {
	store, repo, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Build(ctx, testCatalog()))
	first, err := repo.Count(ctx)
	require.NoError(t, err)

	require.NoError(t, store.Build(ctx, testCatalog()[:1]))
	second, err := repo.Count(ctx)
	require.NoError(t, err)

	assert.Less(t, second, first)
	assert.True(t, store.Ready())
}

func TestBuildEmptyCatalog(t *testing.T) {
	store, repo, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Build(ctx, nil))
	assert.True(t, store.Ready())

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestRenderProductCarriesAllFields(t *testing.T) {
	p := testCatalog()[0]
	text := renderProduct(p)

	assert.Contains(t, text, fmt.Sprintf("Product ID: %s", p.Id))
	assert.Contains(t, text, p.Name)
	assert.Contains(t, text, p.Category)
	assert.Contains(t, text, p.Season)
	assert.Contains(t, text, fmt.Sprintf("Stock: %d", p.Stock))
	assert.Contains(t, text, p.Description)
}
