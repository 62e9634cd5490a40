package mock

import (
	"context"
	"strings"

	"github.com/poiesic/mailtriage/core"
)

// MockClassifier is a test double for ai.Classifier.
// It allows custom behavior injection via function fields.
type MockClassifier struct {
	// ClassifyEmailFunc is called by ClassifyEmail if set.
	// If nil, uses default keyword-based behavior.
	ClassifyEmailFunc func(ctx context.Context, subject, body string) (core.EmailCategory, error)

	callCount int
}

// NewMockClassifier creates a mock classifier with default keyword behavior.
// Note: Returns concrete type to allow test assertions via GetMockClassifier().
func NewMockClassifier() *MockClassifier {
	return &MockClassifier{}
}

// ClassifyEmail labels an email using simple keyword matching.
// Default behavior: emails whose text mentions ordering/buying verbs are
// order requests; everything else is a product inquiry.
func (m *MockClassifier) ClassifyEmail(ctx context.Context, subject, body string) (core.EmailCategory, error) {
	m.callCount++

	if m.ClassifyEmailFunc != nil {
		return m.ClassifyEmailFunc(ctx, subject, body)
	}

	text := strings.ToLower(subject + " " + body)
	for _, keyword := range []string{"order", "buy", "purchase", "would like"} {
		if strings.Contains(text, keyword) {
			return core.CategoryOrderRequest, nil
		}
	}
	return core.CategoryProductInquiry, nil
}

// CallCount returns the number of times ClassifyEmail was called.
func (m *MockClassifier) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockClassifier) Reset() {
	m.callCount = 0
	m.ClassifyEmailFunc = nil
}
