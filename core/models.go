package core

import (
	"encoding/binary"
	"strings"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Product is one catalog entry. The record set is loaded once at startup and
// its membership never changes during a run. Stock is the only mutable field
// and is mutated exclusively by the stock ledger.
type Product struct {
	Id          string
	Name        string
	Category    string
	Description string
	Season      string
	Stock       int
}

// ChunkMeta is the snapshot of a product's non-text fields taken at index
// build time. Stock here may go stale once order processing starts mutating
// the ledger; the snapshot is never refreshed.
type ChunkMeta struct {
	ProductName string
	Category    string
	Season      string
	Stock       int
}

// ChunkRecord is one bounded text window derived from a product's rendered
// description, the unit of semantic indexing. Immutable after index build.
type ChunkRecord struct {
	Id        ID
	ProductId string
	Index     int // position of the chunk within its product's text
	Text      string
	Meta      ChunkMeta
	Vector    []float32 // embedding, same model as query-time embeddings
}

// EmailCategory classifies an incoming email.
type EmailCategory string

const (
	// CategoryOrderRequest marks an email where the customer wants to purchase products.
	CategoryOrderRequest EmailCategory = "order_request"
	// CategoryProductInquiry marks an email asking for product information.
	CategoryProductInquiry EmailCategory = "product_inquiry"
)

// Email is one incoming customer email.
type Email struct {
	Id      string
	Subject string
	Body    string
}

// Classification records the category assigned to one email.
type Classification struct {
	EmailId  string
	Category EmailCategory
}

// OrderLineRequest is one extracted order line. ProductName is matched
// case-insensitively against the catalog; Quantity must be positive.
type OrderLineRequest struct {
	ProductName string
	Quantity    int
}

// LineStatus is the outcome of one attempted allocation.
type LineStatus string

const (
	// LineCreated means the line was allocated and stock was decremented.
	LineCreated LineStatus = "created"
	// LineOutOfStock means the product was found but stock was insufficient.
	// Stock is left untouched.
	LineOutOfStock LineStatus = "out_of_stock"
	// LineNotFound means no catalog product matched the requested name.
	LineNotFound LineStatus = "not_found"
)

// OrderLineStatus is the append-only record of one attempted allocation.
// For not_found lines ProductId is empty and ProductName carries the
// unmatched name for operator diagnosis.
type OrderLineStatus struct {
	EmailId     string
	ProductId   string
	ProductName string
	Quantity    int
	Status      LineStatus
}

// ProductCandidate is one retrieval result: a product judged relevant to a
// query, deduplicated to its best-scoring chunk.
type ProductCandidate struct {
	ProductId string
	Name      string
	Category  string
	Season    string
	Stock     int
	Score     float32
}

// ChunkMatch is a chunk hit from vector similarity search.
type ChunkMatch struct {
	Chunk *ChunkRecord
	Score float32
}

// ResponseKind distinguishes the two generated response tables.
type ResponseKind string

const (
	// ResponseOrder is a reply to an order request.
	ResponseOrder ResponseKind = "order"
	// ResponseInquiry is a reply to a product inquiry.
	ResponseInquiry ResponseKind = "inquiry"
)

// EmailResponse is one generated reply, ready for the output tables.
type EmailResponse struct {
	EmailId string
	Kind    ResponseKind
	Content string
}

// NormalizeName lowercases and trims a product name for case-insensitive
// exact matching. No fuzzy matching is applied anywhere; a naming mismatch
// between extracted text and the catalog is a not_found outcome.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
