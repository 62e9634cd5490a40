package mock

import (
	"context"
	"fmt"
	"strings"

	"github.com/poiesic/mailtriage/core"
)

// MockResponder is a test double for ai.Responder.
// It allows custom behavior injection via function fields.
type MockResponder struct {
	// OrderResponseFunc is called by OrderResponse if set.
	OrderResponseFunc func(ctx context.Context, summary string) (string, error)

	// InquiryResponseFunc is called by InquiryResponse if set.
	InquiryResponseFunc func(ctx context.Context, inquiry string, candidates []core.ProductCandidate) (string, error)

	// NoMatchResponseFunc is called by NoMatchResponse if set.
	NoMatchResponseFunc func(ctx context.Context) (string, error)

	// FormatResponseFunc is called by FormatResponse if set.
	FormatResponseFunc func(ctx context.Context, subject, content string) (string, error)

	callCount int
}

// NewMockResponder creates a mock responder with canned deterministic replies.
// Note: Returns concrete type to allow test assertions via GetMockResponder().
func NewMockResponder() *MockResponder {
	return &MockResponder{}
}

// OrderResponse returns a canned reply containing the order summary.
func (m *MockResponder) OrderResponse(ctx context.Context, summary string) (string, error) {
	m.callCount++

	if m.OrderResponseFunc != nil {
		return m.OrderResponseFunc(ctx, summary)
	}
	return "Thank you for your order.\n" + summary, nil
}

// InquiryResponse returns a canned reply listing the candidate names.
func (m *MockResponder) InquiryResponse(ctx context.Context, inquiry string, candidates []core.ProductCandidate) (string, error) {
	m.callCount++

	if m.InquiryResponseFunc != nil {
		return m.InquiryResponseFunc(ctx, inquiry, candidates)
	}

	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = fmt.Sprintf("%s (%d in stock)", c.Name, c.Stock)
	}
	return "You may be interested in: " + strings.Join(names, ", "), nil
}

// NoMatchResponse returns a canned no-results reply.
func (m *MockResponder) NoMatchResponse(ctx context.Context) (string, error) {
	m.callCount++

	if m.NoMatchResponseFunc != nil {
		return m.NoMatchResponseFunc(ctx)
	}
	return "We could not find matching products for your inquiry.", nil
}

// FormatResponse returns the content under the subject without LLM formatting.
func (m *MockResponder) FormatResponse(ctx context.Context, subject, content string) (string, error) {
	m.callCount++

	if m.FormatResponseFunc != nil {
		return m.FormatResponseFunc(ctx, subject, content)
	}
	return subject + "\n\n" + content, nil
}

// CallCount returns the number of times any method was called.
func (m *MockResponder) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockResponder) Reset() {
	m.callCount = 0
	m.OrderResponseFunc = nil
	m.InquiryResponseFunc = nil
	m.NoMatchResponseFunc = nil
	m.FormatResponseFunc = nil
}
