package docstore

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
	"github.com/tmc/langchaingo/textsplitter"

	"github.com/poiesic/mailtriage/ai"
	"github.com/poiesic/mailtriage/core"
	"github.com/poiesic/mailtriage/storage"
)

const (
	// DefaultChunkSize bounds chunk length in characters.
	DefaultChunkSize = 1000

	// DefaultChunkOverlap is the character overlap between adjacent chunks.
	DefaultChunkOverlap = 200
)

// Store builds and owns the chunked product index.
type Store struct {
	repo         storage.ChunkRepository
	embedder     ai.Embedder
	chunkSize    int
	chunkOverlap int
	poolSize     int
	ready        atomic.Bool
	logger       *slog.Logger
}

// Option configures a Store.
type Option func(*Store) error

// WithChunkSize sets the maximum chunk length in characters.
func WithChunkSize(size int) Option {
	return func(s *Store) error {
		if size < 1 {
			return fmt.Errorf("%w: chunk size %d", ErrInvalidChunking, size)
		}
		s.chunkSize = size
		return nil
	}
}

// WithChunkOverlap sets the overlap between adjacent chunks.
func WithChunkOverlap(overlap int) Option {
	return func(s *Store) error {
		if overlap < 0 {
			return fmt.Errorf("%w: chunk overlap %d", ErrInvalidChunking, overlap)
		}
		s.chunkOverlap = overlap
		return nil
	}
}

// WithPoolSize sets the worker pool size for concurrent embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(s *Store) error {
		if size < 1 {
			size = 1
		}
		s.poolSize = size
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewStore creates a chunked document store over the given repository and
// embedder. The store starts not ready; call Build before searching.
func NewStore(repo storage.ChunkRepository, embedder ai.Embedder, opts ...Option) (*Store, error) {
	if repo == nil {
		return nil, ErrChunkRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	s := &Store{
		repo:         repo,
		embedder:     embedder,
		chunkSize:    DefaultChunkSize,
		chunkOverlap: DefaultChunkOverlap,
		poolSize:     poolSize,
		logger:       slog.Default().With("component", "docstore"),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	if s.chunkOverlap >= s.chunkSize {
		return nil, fmt.Errorf("%w: overlap %d must be smaller than size %d",
			ErrInvalidChunking, s.chunkOverlap, s.chunkSize)
	}

	return s, nil
}

// Ready reports whether a build has completed successfully.
func (s *Store) Ready() bool {
	return s.ready.Load()
}

// productChunks holds one product's split text ahead of embedding.
type productChunks struct {
	product *core.Product
	texts   []string
	vectors [][]float32
}

// Build indexes the catalog: render, split, embed, store. Any failure
// drops whatever was written and leaves the store not ready. Calling
// Build again replaces the previous index entirely.
func (s *Store) Build(ctx context.Context, products []*core.Product) error {
	s.ready.Store(false)
	if err := s.repo.DropAll(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrBuildFailed, err)
	}

	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(s.chunkSize),
		textsplitter.WithChunkOverlap(s.chunkOverlap),
	)

	batches := make([]*productChunks, 0, len(products))
	total := 0
	for _, p := range products {
		if err := core.ValidateProduct(p); err != nil {
			return fmt.Errorf("%w: %w", ErrBuildFailed, err)
		}
		texts, err := splitter.SplitText(renderProduct(p))
		if err != nil {
			return fmt.Errorf("%w: splitting product %s: %w", ErrBuildFailed, p.Id, err)
		}
		batches = append(batches, &productChunks{product: p, texts: texts})
		total += len(texts)
	}

	s.logger.Info("building product index", "products", len(products), "chunks", total)

	if err := s.embedBatches(ctx, batches); err != nil {
		if dropErr := s.repo.DropAll(ctx); dropErr != nil {
			s.logger.Error("error dropping partial index", "err", dropErr)
		}
		return fmt.Errorf("%w: %w", ErrBuildFailed, err)
	}

	records := make([]*core.ChunkRecord, 0, total)
	for _, batch := range batches {
		p := batch.product
		meta := core.ChunkMeta{
			ProductName: p.Name,
			Category:    p.Category,
			Season:      p.Season,
			Stock:       p.Stock,
		}
		for i, text := range batch.texts {
			records = append(records, &core.ChunkRecord{
				Id:        core.IDFromContent(fmt.Sprintf("%s:%d:%s", p.Id, i, text)),
				ProductId: p.Id,
				Index:     i,
				Text:      text,
				Meta:      meta,
				Vector:    batch.vectors[i],
			})
		}
	}

	if _, err := s.repo.AddChunks(ctx, records...); err != nil {
		if dropErr := s.repo.DropAll(ctx); dropErr != nil {
			s.logger.Error("error dropping partial index", "err", dropErr)
		}
		return fmt.Errorf("%w: %w", ErrBuildFailed, err)
	}

	s.ready.Store(true)
	return nil
}

// embedBatches runs one embedding task per product through the worker pool.
// The first error wins; remaining tasks still drain but their results are
// discarded by the caller.
func (s *Store) embedBatches(ctx context.Context, batches []*productChunks) error {
	pool, err := ants.NewPool(s.poolSize)
	if err != nil {
		return err
	}
	defer pool.Release()

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for _, batch := range batches {
		if len(batch.texts) == 0 {
			continue
		}
		wg.Add(1)
		b := batch
		submitErr := pool.Submit(func() {
			defer wg.Done()
			vectors, err := s.embedder.EmbedTexts(ctx, b.texts)
			if err == nil && len(vectors) != len(b.texts) {
				err = fmt.Errorf("embedding result mismatch. expected %d, received %d",
					len(b.texts), len(vectors))
			}
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("embedding product %s: %w", b.product.Id, err)
				}
				mu.Unlock()
				return
			}
			b.vectors = vectors
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			if firstErr == nil {
				firstErr = submitErr
			}
			mu.Unlock()
			break
		}
	}

	wg.Wait()
	return firstErr
}

// renderProduct produces the canonical text document indexed for a product.
// Every catalog field participates so queries can hit on names, categories,
// and seasonality as well as description text.
func renderProduct(p *core.Product) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Product ID: %s\n", p.Id)
	fmt.Fprintf(&b, "Product Name: %s\n", p.Name)
	fmt.Fprintf(&b, "Category: %s\n", p.Category)
	fmt.Fprintf(&b, "Season: %s\n", p.Season)
	fmt.Fprintf(&b, "Stock: %d\n", p.Stock)
	fmt.Fprintf(&b, "Description: %s", p.Description)
	return b.String()
}
