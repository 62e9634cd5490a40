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


package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/mailtriage/ai"
	"github.com/poiesic/mailtriage/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
	"github.com/tmc/langchaingo/llms/openai"
)

// OrderExtractor implements ai.OrderExtractor using OpenAI-compatible chat APIs.
type OrderExtractor struct {
	client   llms.Model
	attempts int
	logger   *slog.Logger
}

// orderItem is an internal type used for JSON unmarshaling.
// It matches the structure expected from the LLM.
type orderItem struct {
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
}

// orderItems is the wrapper structure for the LLM's JSON response.
type orderItems struct {
	OrderItems []orderItem `json:"order_items"`
}

// newOrderExtractor is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newOrderExtractor(config *ai.Config) (*OrderExtractor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.ChatHost),
		openai.WithToken(config.APIToken),
		openai.WithModel(config.ChatModel),
	)
	if err != nil {
		return nil, err
	}

	return &OrderExtractor{
		client:   client,
		attempts: config.ExtractAttempts,
		logger:   slog.Default().With("component", "openai-extractor"),
	}, nil
}

// NewOrderExtractor creates a new order line extractor using the provided configuration.
//
// Returns ai.OrderExtractor interface to enforce abstraction.
func NewOrderExtractor(config *ai.Config) (ai.OrderExtractor, error) {
	return newOrderExtractor(config)
}

// ExtractOrderLines parses an email body into validated order lines using an LLM.
// Malformed model output is retried up to the configured attempt limit and
// then reported as ai.ErrMalformedExtraction; unvalidated structures never
// reach the caller.
func (e *OrderExtractor) ExtractOrderLines(ctx context.Context, body string) ([]core.OrderLineRequest, error) {
	content := []llms.MessageContent{
		{
			Role: schema.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(extractSystemPrompt),
			},
		},
		{
			Role: schema.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(buildExtractPrompt(body)),
			},
		},
	}

	var result orderItems
	var lastErr error
	for attempt := 0; attempt < e.attempts; attempt++ {
		response, err := e.client.GenerateContent(ctx, content, llms.WithTemperature(0.1), llms.WithJSONMode())
		if err != nil {
			e.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return nil, err
		}

		if len(response.Choices) < 1 {
			lastErr = fmt.Errorf("no choices returned from model")
			e.logger.Warn("no choices returned from model", "attempt", attempt+1)
			continue
		}

		choice := response.Choices[0]

		// Strip markdown code fences if present
		responseText := strings.TrimSpace(choice.Content)
		responseText = strings.TrimPrefix(responseText, "```json")
		responseText = strings.TrimPrefix(responseText, "```")
		responseText = strings.TrimSuffix(responseText, "```")
		responseText = strings.TrimSpace(responseText)

		// Try to repair common JSON issues
		responseText = repairJSON(responseText)

		if err := json.Unmarshal([]byte(responseText), &result); err != nil {
			lastErr = err
			e.logger.Warn("error parsing extraction response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		// Parsed structurally; validate each line before accepting
		lines, err := validateOrderItems(result.OrderItems)
		if err != nil {
			lastErr = err
			e.logger.Warn("extraction output failed validation",
				"attempt", attempt+1,
				"err", err)
			continue
		}

		return lines, nil
	}

	e.logger.Error("failed to parse extraction response after retries", "err", lastErr)
	return nil, fmt.Errorf("%w: %w", ai.ErrMalformedExtraction, lastErr)
}

// validateOrderItems converts parsed items into domain order lines,
// rejecting the whole batch if any item violates domain rules.
func validateOrderItems(items []orderItem) ([]core.OrderLineRequest, error) {
	lines := make([]core.OrderLineRequest, 0, len(items))
	for i, item := range items {
		line := core.OrderLineRequest{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
		}
		if err := core.ValidateOrderLine(&line); err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		lines = append(lines, line)
	}
	return lines, nil
}
