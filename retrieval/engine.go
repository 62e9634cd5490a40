package retrieval

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/poiesic/mailtriage/ai"
	"github.com/poiesic/mailtriage/core"
	"github.com/poiesic/mailtriage/docstore"
	"github.com/poiesic/mailtriage/storage"
)

const (
	// DefaultTopK is the number of distinct products returned per query.
	DefaultTopK = 3

	// DefaultMinSimilarity is the relevance floor applied to chunk hits.
	// Set to 0 to disable the floor entirely.
	DefaultMinSimilarity float32 = 0.60
)

// Engine answers product queries against the chunked document store.
type Engine struct {
	store         *docstore.Store
	repo          storage.ChunkRepository
	embedder      ai.Embedder
	topK          int
	minSimilarity float32
	monitor       Monitor
	logger        *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithTopK sets how many distinct products a query may return.
func WithTopK(k int) Option {
	return func(e *Engine) error {
		if k < 1 {
			return fmt.Errorf("%w: top-k %d", ErrInvalidParameter, k)
		}
		e.topK = k
		return nil
	}
}

// WithMinSimilarity sets the relevance floor. Zero disables filtering.
func WithMinSimilarity(min float32) Option {
	return func(e *Engine) error {
		if min < 0 || min > 1 {
			return fmt.Errorf("%w: similarity floor %f", ErrInvalidParameter, min)
		}
		e.minSimilarity = min
		return nil
	}
}

// WithMonitor sets a search monitor.
// Default is a no-op monitor.
func WithMonitor(monitor Monitor) Option {
	return func(e *Engine) error {
		if monitor == nil {
			monitor = &noopMonitor{}
		}
		e.monitor = monitor
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewEngine creates a retrieval engine over a document store.
func NewEngine(store *docstore.Store, repo storage.ChunkRepository, embedder ai.Embedder, opts ...Option) (*Engine, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if repo == nil {
		return nil, ErrChunkRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	e := &Engine{
		store:         store,
		repo:          repo,
		embedder:      embedder,
		topK:          DefaultTopK,
		minSimilarity: DefaultMinSimilarity,
		monitor:       &noopMonitor{},
		logger:        slog.Default().With("component", "retrieval"),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// Search embeds the query and returns the most relevant products, best
// first, at most top-k distinct products. A query that clears nothing over
// the floor returns an empty slice, not an error. The candidates carry the
// metadata snapshot taken at index build time, so the stock figures reflect
// the catalog as loaded, not the live ledger.
func (e *Engine) Search(ctx context.Context, query string) ([]core.ProductCandidate, error) {
	if !e.store.Ready() {
		return nil, ErrNotReady
	}

	e.monitor.Start(query)

	vector, err := e.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	e.monitor.AfterQueryEmbedding(vector)

	// Over-fetch at the chunk level so chunks of one product cannot crowd
	// distinct products out of the final list.
	matches, err := e.repo.FindSimilar(ctx, vector, e.minSimilarity, e.topK*4)
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}
	e.monitor.AfterSimilaritySearch(matches)

	// Dedupe by product, keeping each product's best-scoring chunk.
	best := make(map[string]core.ProductCandidate)
	for _, match := range matches {
		chunk := match.Chunk
		if existing, ok := best[chunk.ProductId]; ok && existing.Score >= match.Score {
			continue
		}
		best[chunk.ProductId] = core.ProductCandidate{
			ProductId: chunk.ProductId,
			Name:      chunk.Meta.ProductName,
			Category:  chunk.Meta.Category,
			Season:    chunk.Meta.Season,
			Stock:     chunk.Meta.Stock,
			Score:     match.Score,
		}
	}

	candidates := make([]core.ProductCandidate, 0, len(best))
	for _, c := range best {
		candidates = append(candidates, c)
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].ProductId < candidates[j].ProductId
	})
	if len(candidates) > e.topK {
		candidates = candidates[:e.topK]
	}

	e.logger.Debug("retrieval complete", "query_len", len(query), "candidates", len(candidates))
	e.monitor.Finish(candidates)
	return candidates, nil
}
