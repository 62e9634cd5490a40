package ai

import (
	"context"

	"github.com/poiesic/mailtriage/core"
)

// Embedder generates vector embeddings from text for semantic similarity search.
// Index-time and query-time embeddings must come from the same model;
// mixing models invalidates distance comparisons.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Classifier assigns one of the two known categories to an email.
// Implementations must be thread-safe for concurrent use.
type Classifier interface {
	// ClassifyEmail returns order_request or product_inquiry for the given
	// email. Unexpected model output is coerced to product_inquiry rather
	// than surfaced as an error; only transport/generation failures error.
	ClassifyEmail(ctx context.Context, subject, body string) (core.EmailCategory, error)
}

// OrderExtractor extracts structured order line items from an email body.
// Implementations must be thread-safe for concurrent use.
type OrderExtractor interface {
	// ExtractOrderLines parses the email body into validated order lines.
	// Returns ErrMalformedExtraction (possibly wrapped) when the model output
	// cannot be parsed into the expected structure after bounded retries.
	// Unvalidated output never reaches the caller.
	ExtractOrderLines(ctx context.Context, body string) ([]core.OrderLineRequest, error)
}

// Responder generates natural-language reply content.
// Implementations must be thread-safe for concurrent use.
type Responder interface {
	// OrderResponse generates a reply for a processed order given its
	// human-readable line summary.
	OrderResponse(ctx context.Context, summary string) (string, error)

	// InquiryResponse generates a reply for a product inquiry given the
	// retrieved candidate products.
	InquiryResponse(ctx context.Context, inquiry string, candidates []core.ProductCandidate) (string, error)

	// NoMatchResponse generates a reply for an inquiry that matched no products.
	NoMatchResponse(ctx context.Context) (string, error)

	// FormatResponse applies the final structure-and-tone formatting pass to
	// reply content under the given subject line.
	FormatResponse(ctx context.Context, subject, content string) (string, error)
}

// AIProvider aggregates AI services for convenient initialization and
// lifecycle management. A provider creates and manages the embedding,
// classification, extraction, and response generation services, ensuring
// they share configuration and resources appropriately.
type AIProvider interface {
	// Embedder returns the text embedding service.
	Embedder() Embedder

	// Classifier returns the email classification service.
	Classifier() Classifier

	// OrderExtractor returns the order line extraction service.
	OrderExtractor() OrderExtractor

	// Responder returns the response generation service.
	Responder() Responder

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
