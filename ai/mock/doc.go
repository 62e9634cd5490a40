// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.Embedder, ai.Classifier,
// ai.OrderExtractor, ai.Responder, and ai.AIProvider for use in unit tests.
// The mocks allow the matching and retrieval logic to be tested without any
// live AI service, with controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockProvider := mock.NewMockProvider()
//	category, err := mockProvider.Classifier().ClassifyEmail(ctx, "Order", "2 hats please")
//
//	// Custom behavior injection
//	mockExtractor := mock.NewMockOrderExtractor()
//	mockExtractor.ExtractOrderLinesFunc = func(ctx context.Context, body string) ([]core.OrderLineRequest, error) {
//	    return []core.OrderLineRequest{{ProductName: "blue hat", Quantity: 2}}, nil
//	}
//
//	// Check call counts
//	count := mockExtractor.CallCount()
//
// # Default Behavior
//
// The mock implementations provide sensible defaults:
//
//   - MockEmbedder: Returns deterministic vectors based on text hash
//   - MockClassifier: Keyword matching on ordering verbs
//   - MockOrderExtractor: Parses "<quantity> <name>" body lines
//   - MockResponder: Canned replies that echo their inputs
package mock
