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


package mailtriage

import (
	"context"
	"log/slog"

	"github.com/poiesic/mailtriage/ai"
	"github.com/poiesic/mailtriage/ai/openai"
	"github.com/poiesic/mailtriage/config"
	"github.com/poiesic/mailtriage/core"
	"github.com/poiesic/mailtriage/docstore"
	"github.com/poiesic/mailtriage/ledger"
	"github.com/poiesic/mailtriage/orders"
	"github.com/poiesic/mailtriage/pipeline"
	"github.com/poiesic/mailtriage/retrieval"
	"github.com/poiesic/mailtriage/storage"
	"github.com/poiesic/mailtriage/storage/badger"
)

// System wires the whole triage stack for one run: in-memory chunk store,
// document store, retrieval engine, and AI provider. The order path is
// created per catalog via NewRun once products are loaded.
type System struct {
	cfg       config.Config
	backend   *badger.Backend
	chunkRepo storage.ChunkRepository
	store     *docstore.Store
	retrieval *retrieval.Engine
	provider  ai.AIProvider
	logger    *slog.Logger
}

// SystemOption configures a System.
type SystemOption func(*systemOptions)

type systemOptions struct {
	provider ai.AIProvider
}

// WithAIProvider injects a pre-built AI provider, replacing the
// OpenAI-compatible one constructed from the config.
func WithAIProvider(provider ai.AIProvider) SystemOption {
	return func(o *systemOptions) {
		o.provider = provider
	}
}

// NewSystem builds the system from a run configuration.
func NewSystem(cfg config.Config, opts ...SystemOption) (*System, error) {
	options := &systemOptions{}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend("", true)
	if err != nil {
		return nil, err
	}

	chunkRepo, err := badger.NewChunkRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(ai.NewConfig(aiOptions(cfg.AI)...))
		if err != nil {
			backend.Close()
			return nil, err
		}
	}

	storeOpts := []docstore.Option{
		docstore.WithChunkSize(cfg.Index.ChunkSize),
		docstore.WithChunkOverlap(cfg.Index.ChunkOverlap),
	}
	if cfg.Index.PoolSize > 0 {
		storeOpts = append(storeOpts, docstore.WithPoolSize(cfg.Index.PoolSize))
	}
	store, err := docstore.NewStore(chunkRepo, provider.Embedder(), storeOpts...)
	if err != nil {
		provider.Close()
		backend.Close()
		return nil, err
	}

	retrievalEngine, err := retrieval.NewEngine(store, chunkRepo, provider.Embedder(),
		retrieval.WithTopK(cfg.Retrieval.TopK),
		retrieval.WithMinSimilarity(cfg.SimilarityFloor()),
	)
	if err != nil {
		provider.Close()
		backend.Close()
		return nil, err
	}

	return &System{
		cfg:       cfg,
		backend:   backend,
		chunkRepo: chunkRepo,
		store:     store,
		retrieval: retrievalEngine,
		provider:  provider,
		logger:    slog.Default(),
	}, nil
}

// aiOptions translates the populated config fields into ai.Config options,
// leaving ai package defaults in place for anything unset.
func aiOptions(cfg config.AIConfig) []ai.ConfigOption {
	var opts []ai.ConfigOption
	if cfg.Host != "" {
		opts = append(opts, ai.WithHost(cfg.Host))
	}
	if cfg.EmbeddingHost != "" {
		opts = append(opts, ai.WithEmbeddingHost(cfg.EmbeddingHost))
	}
	if cfg.ChatHost != "" {
		opts = append(opts, ai.WithChatHost(cfg.ChatHost))
	}
	if cfg.EmbeddingModel != "" {
		opts = append(opts, ai.WithEmbeddingModel(cfg.EmbeddingModel))
	}
	if cfg.ChatModel != "" {
		opts = append(opts, ai.WithChatModel(cfg.ChatModel))
	}
	if cfg.APIToken != "" {
		opts = append(opts, ai.WithAPIToken(cfg.APIToken))
	}
	if cfg.ExtractAttempts > 0 {
		opts = append(opts, ai.WithExtractAttempts(cfg.ExtractAttempts))
	}
	return opts
}

// BuildIndex indexes the catalog for retrieval.
func (s *System) BuildIndex(ctx context.Context, products []*core.Product) error {
	return s.store.Build(ctx, products)
}

// Search runs an ad-hoc product query against the built index.
func (s *System) Search(ctx context.Context, query string) ([]core.ProductCandidate, error) {
	return s.retrieval.Search(ctx, query)
}

// NewRun creates the pipeline for one batch over the given catalog. The
// returned pipeline owns a fresh stock ledger seeded from the products.
func (s *System) NewRun(products []*core.Product, opts ...pipeline.Option) (*pipeline.Pipeline, error) {
	l, err := ledger.New(products)
	if err != nil {
		return nil, err
	}

	orderEngine, err := orders.NewEngine(l)
	if err != nil {
		return nil, err
	}

	return pipeline.New(s.provider, orderEngine, s.retrieval, opts...)
}

// ChunkRepository exposes the chunk store, mainly for inspection tooling.
func (s *System) ChunkRepository() storage.ChunkRepository {
	return s.chunkRepo
}

// Close releases the provider and storage in reverse construction order.
func (s *System) Close() error {
	if err := s.provider.Close(); err != nil {
		s.logger.Error("error closing AI provider", "err", err)
	}
	if err := s.backend.Close(); err != nil {
		s.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}
