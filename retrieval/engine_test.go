package retrieval

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/mailtriage/ai/mock"
	"github.com/poiesic/mailtriage/core"
	"github.com/poiesic/mailtriage/docstore"
	"github.com/poiesic/mailtriage/storage/badger"
)

func testCatalog() []*core.Product {
	return []*core.Product{
		{Id: "HAT0001", Name: "Blue Hat", Category: "Accessories", Description: "A warm knit hat for winter walks.", Season: "Winter", Stock: 5},
		{Id: "TOT1001", Name: "Canvas Tote", Category: "Bags", Description: "A sturdy canvas tote for everyday errands.", Season: "All seasons", Stock: 12},
		{Id: "SHT5501", Name: "Linen Shirt", Category: "Shirts", Description: "A breezy linen shirt with a relaxed summer fit.", Season: "Summer", Stock: 100},
	}
}

func newTestEngine(t *testing.T, opts ...Option) (*Engine, *docstore.Store, *mock.MockEmbedder) {
	t.Helper()
	repo, backend, err := badger.NewMemoryChunkRepository()
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	embedder := mock.NewMockEmbedder()
	store, err := docstore.NewStore(repo, embedder)
	require.NoError(t, err)

	engine, err := NewEngine(store, repo, embedder, opts...)
	require.NoError(t, err)
	return engine, store, embedder
}

func TestNewEngineValidation(t *testing.T) {
	engine, store, embedder := newTestEngine(t)
	_ = engine

	_, err := NewEngine(nil, nil, embedder)
	assert.ErrorIs(t, err, ErrStoreRequired)

	repo, backend, err := badger.NewMemoryChunkRepository()
	require.NoError(t, err)
	defer backend.Close()

	_, err = NewEngine(store, nil, embedder)
	assert.ErrorIs(t, err, ErrChunkRepositoryRequired)

	_, err = NewEngine(store, repo, nil)
	assert.ErrorIs(t, err, ErrEmbedderRequired)

	_, err = NewEngine(store, repo, embedder, WithTopK(0))
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = NewEngine(store, repo, embedder, WithMinSimilarity(1.5))
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestSearchBeforeBuild(t *testing.T) {
	engine, _, _ := newTestEngine(t)

	_, err := engine.Search(context.Background(), "warm hat")
	assert.ErrorIs(t, err, ErrNotReady)
}

func TestSearchDeterministic(t *testing.T) {
	engine, store, _ := newTestEngine(t)
	ctx := context.Background()
	require.NoError(t, store.Build(ctx, testCatalog()))

	first, err := engine.Search(ctx, "something warm for winter")
	require.NoError(t, err)
	second, err := engine.Search(ctx, "something warm for winter")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSearchDistinctProductsDescendingScore(t *testing.T) {
	engine, store, _ := newTestEngine(t)
	ctx := context.Background()
	require.NoError(t, store.Build(ctx, testCatalog()))

	candidates, err := engine.Search(ctx, "a bag for groceries")
	require.NoError(t, err)
	require.NotEmpty(t, candidates)
	assert.LessOrEqual(t, len(candidates), DefaultTopK)

	seen := make(map[string]bool)
	for i, c := range candidates {
		assert.False(t, seen[c.ProductId], "product %s appears twice", c.ProductId)
		seen[c.ProductId] = true
		if i > 0 {
			assert.GreaterOrEqual(t, candidates[i-1].Score, c.Score)
		}
	}
}

func TestSearchTopKLimit(t *testing.T) {
	engine, store, _ := newTestEngine(t, WithTopK(1))
	ctx := context.Background()
	require.NoError(t, store.Build(ctx, testCatalog()))

	candidates, err := engine.Search(ctx, "clothing")
	require.NoError(t, err)
	assert.Len(t, candidates, 1)
}

func TestSearchEmptyCatalog(t *testing.T) {
	engine, store, _ := newTestEngine(t)
	ctx := context.Background()
	require.NoError(t, store.Build(ctx, nil))

	candidates, err := engine.Search(ctx, "anything at all")
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestSearchSimilarityFloor(t *testing.T) {
	// With the floor pinned just under 1 nothing can clear it.
	engine, store, _ := newTestEngine(t, WithMinSimilarity(0.999999))
	ctx := context.Background()
	require.NoError(t, store.Build(ctx, testCatalog()))

	candidates, err := engine.Search(ctx, "zzz unrelated query")
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestSearchDedupesChunksOfOneProduct(t *testing.T) {
	repo, backend, err := badger.NewMemoryChunkRepository()
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	embedder := mock.NewMockEmbedder()
	store, err := docstore.NewStore(repo, embedder,
		docstore.WithChunkSize(120), docstore.WithChunkOverlap(20))
	require.NoError(t, err)

	catalog := []*core.Product{
		{Id: "TOT1001", Name: "Canvas Tote", Category: "Bags", Description: strings.Repeat("A sturdy canvas tote for everyday errands. ", 12), Season: "All seasons", Stock: 12},
		{Id: "HAT0001", Name: "Blue Hat", Category: "Accessories", Description: "A warm knit hat.", Season: "Winter", Stock: 5},
	}
	ctx := context.Background()
	require.NoError(t, store.Build(ctx, catalog))

	toteChunks, err := repo.GetChunksByProduct(ctx, "TOT1001")
	require.NoError(t, err)
	require.Greater(t, len(toteChunks), 1, "description long enough to split")

	engine, err := NewEngine(store, repo, embedder, WithMinSimilarity(0))
	require.NoError(t, err)

	query := "a bag for groceries"
	candidates, err := engine.Search(ctx, query)
	require.NoError(t, err)

	var tote *core.ProductCandidate
	seen := 0
	for i := range candidates {
		if candidates[i].ProductId == "TOT1001" {
			tote = &candidates[i]
			seen++
		}
	}
	require.Equal(t, 1, seen, "multi-chunk product must surface exactly once")

	// The surviving score is the best among the product's chunks.
	vector, err := embedder.EmbedText(ctx, query)
	require.NoError(t, err)
	matches, err := repo.FindSimilar(ctx, vector, 0, len(toteChunks)+8)
	require.NoError(t, err)
	var best float32
	for _, m := range matches {
		if m.Chunk.ProductId == "TOT1001" && m.Score > best {
			best = m.Score
		}
	}
	assert.Equal(t, best, tote.Score)
}

type recordingMonitor struct {
	stages     []string
	matchCount int
	candidates []core.ProductCandidate
}

func (m *recordingMonitor) Start(string) { m.stages = append(m.stages, "start") }

func (m *recordingMonitor) AfterQueryEmbedding([]float32) { m.stages = append(m.stages, "embed") }

func (m *recordingMonitor) AfterSimilaritySearch(matches []*core.ChunkMatch) {
	m.stages = append(m.stages, "scan")
	m.matchCount = len(matches)
}

func (m *recordingMonitor) Finish(candidates []core.ProductCandidate) {
	m.stages = append(m.stages, "finish")
	m.candidates = candidates
}

func TestSearchMonitorObservesStages(t *testing.T) {
	monitor := &recordingMonitor{}
	engine, store, _ := newTestEngine(t, WithMonitor(monitor))
	ctx := context.Background()
	require.NoError(t, store.Build(ctx, testCatalog()))

	candidates, err := engine.Search(ctx, "a bag for groceries")
	require.NoError(t, err)

	assert.Equal(t, []string{"start", "embed", "scan", "finish"}, monitor.stages)
	assert.Greater(t, monitor.matchCount, 0)
	assert.Equal(t, candidates, monitor.candidates)
}

func TestSearchEmbeddingFailure(t *testing.T) {
	engine, store, embedder := newTestEngine(t)
	ctx := context.Background()
	require.NoError(t, store.Build(ctx, testCatalog()))

	boom := errors.New("embedding endpoint down")
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, boom
	}

	_, err := engine.Search(ctx, "warm hat")
	assert.ErrorIs(t, err, boom)
}

func TestSearchCandidateCarriesSnapshot(t *testing.T) {
	engine, store, _ := newTestEngine(t)
	ctx := context.Background()
	require.NoError(t, store.Build(ctx, testCatalog()))

	candidates, err := engine.Search(ctx, "linen shirt")
	require.NoError(t, err)
	require.NotEmpty(t, candidates)

	byID := make(map[string]*core.Product)
	for _, p := range testCatalog() {
		byID[p.Id] = p
	}
	for _, c := range candidates {
		p, ok := byID[c.ProductId]
		require.True(t, ok)
		assert.Equal(t, p.Name, c.Name)
		assert.Equal(t, p.Category, c.Category)
		assert.Equal(t, p.Season, c.Season)
		assert.Equal(t, p.Stock, c.Stock)
	}
}
