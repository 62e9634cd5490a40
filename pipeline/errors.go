package pipeline

import "errors"

var (
	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")

	// ErrOrderEngineRequired is returned when an order engine is not provided.
	ErrOrderEngineRequired = errors.New("order engine required")

	// ErrRetrievalEngineRequired is returned when a retrieval engine is not provided.
	ErrRetrievalEngineRequired = errors.New("retrieval engine required")
)
