package openai

import (
	"context"
	"log/slog"
	"strings"

	"github.com/poiesic/mailtriage/ai"
	"github.com/poiesic/mailtriage/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
	"github.com/tmc/langchaingo/llms/openai"
)

// Classifier implements ai.Classifier using OpenAI-compatible chat APIs.
type Classifier struct {
	client llms.Model
	logger *slog.Logger
}

// newClassifier is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newClassifier(config *ai.Config) (*Classifier, error) {
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

	return &Classifier{
		client: client,
		logger: slog.Default().With("component", "openai-classifier"),
	}, nil
}

// NewClassifier creates a new classifier using the provided configuration.
//
// Returns ai.Classifier interface to enforce abstraction.
func NewClassifier(config *ai.Config) (ai.Classifier, error) {
	return newClassifier(config)
}

// ClassifyEmail labels an email as order_request or product_inquiry.
// A low temperature keeps the labels consistent across runs. Output that is
// neither known label is coerced to product_inquiry with a warning.
func (c *Classifier) ClassifyEmail(ctx context.Context, subject, body string) (core.EmailCategory, error) {
	content := []llms.MessageContent{
		{
			Role: schema.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(classifySystemPrompt),
			},
		},
		{
			Role: schema.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(buildClassifyPrompt(subject, body)),
			},
		},
	}

	response, err := c.client.GenerateContent(ctx, content, llms.WithTemperature(0.1))
	if err != nil {
		c.logger.Error("failed to classify email", "err", err)
		return "", err
	}

	if len(response.Choices) < 1 {
		c.logger.Warn("no choices returned from model, defaulting to product_inquiry")
		return core.CategoryProductInquiry, nil
	}

	label := strings.Trim(strings.ToLower(strings.TrimSpace(response.Choices[0].Content)), `"`)
	category := core.EmailCategory(label)
	if err := core.ValidateCategory(category); err != nil {
		c.logger.Warn("unexpected classification, defaulting to product_inquiry", "label", label)
		return core.CategoryProductInquiry, nil
	}

	return category, nil
}
