package mock

import (
	"context"
	"strconv"
	"strings"

	"github.com/poiesic/mailtriage/core"
)

// MockOrderExtractor is a test double for ai.OrderExtractor.
// It allows custom behavior injection via function fields.
type MockOrderExtractor struct {
	// ExtractOrderLinesFunc is called by ExtractOrderLines if set.
	// If nil, uses default line-prefix parsing.
	ExtractOrderLinesFunc func(ctx context.Context, body string) ([]core.OrderLineRequest, error)

	callCount int
}

// NewMockOrderExtractor creates a mock extractor with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockExtractor().
func NewMockOrderExtractor() *MockOrderExtractor {
	return &MockOrderExtractor{}
}

// ExtractOrderLines parses order lines from text without an LLM.
// Default behavior: each body line of the form "<quantity> <product name>"
// becomes one order line; everything else is ignored.
func (m *MockOrderExtractor) ExtractOrderLines(ctx context.Context, body string) ([]core.OrderLineRequest, error) {
	m.callCount++

	if m.ExtractOrderLinesFunc != nil {
		return m.ExtractOrderLinesFunc(ctx, body)
	}

	lines := []core.OrderLineRequest{}
	for _, raw := range strings.Split(body, "\n") {
		fields := strings.Fields(raw)
		if len(fields) < 2 {
			continue
		}
		quantity, err := strconv.Atoi(fields[0])
		if err != nil || quantity < 1 {
			continue
		}
		lines = append(lines, core.OrderLineRequest{
			ProductName: strings.Join(fields[1:], " "),
			Quantity:    quantity,
		})
	}
	return lines, nil
}

// CallCount returns the number of times ExtractOrderLines was called.
func (m *MockOrderExtractor) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockOrderExtractor) Reset() {
	m.callCount = 0
	m.ExtractOrderLinesFunc = nil
}
