package openai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/mailtriage/ai"
	"github.com/poiesic/mailtriage/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
	"github.com/tmc/langchaingo/llms/openai"
)

// Responder implements ai.Responder using OpenAI-compatible chat APIs.
// Reply content is generated at a higher temperature than classification or
// extraction; the final formatting pass runs at a lower one.
type Responder struct {
	client llms.Model
	logger *slog.Logger
}

// newResponder is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newResponder(config *ai.Config) (*Responder, error) {
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

	return &Responder{
		client: client,
		logger: slog.Default().With("component", "openai-responder"),
	}, nil
}

// NewResponder creates a new responder using the provided configuration.
//
// Returns ai.Responder interface to enforce abstraction.
func NewResponder(config *ai.Config) (ai.Responder, error) {
	return newResponder(config)
}

// OrderResponse generates a reply for a processed order.
func (r *Responder) OrderResponse(ctx context.Context, summary string) (string, error) {
	return r.generate(ctx, respondSystemPrompt, buildOrderResponsePrompt(summary), 0.7)
}

// InquiryResponse generates a reply for a product inquiry from retrieved candidates.
func (r *Responder) InquiryResponse(ctx context.Context, inquiry string, candidates []core.ProductCandidate) (string, error) {
	return r.generate(ctx, inquirySystemPrompt, buildInquiryResponsePrompt(inquiry, candidates), 0.7)
}

// NoMatchResponse generates a reply for an inquiry that matched no products.
func (r *Responder) NoMatchResponse(ctx context.Context) (string, error) {
	return r.generate(ctx, respondSystemPrompt, noMatchResponsePrompt, 0.7)
}

// FormatResponse applies the final structure-and-tone formatting pass.
func (r *Responder) FormatResponse(ctx context.Context, subject, content string) (string, error) {
	return r.generate(ctx, formatSystemPrompt, buildFormatPrompt(subject, content), 0.3)
}

func (r *Responder) generate(ctx context.Context, systemPrompt, userPrompt string, temperature float64) (string, error) {
	content := []llms.MessageContent{
		{
			Role: schema.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(systemPrompt),
			},
		},
		{
			Role: schema.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(userPrompt),
			},
		},
	}

	response, err := r.client.GenerateContent(ctx, content, llms.WithTemperature(temperature))
	if err != nil {
		r.logger.Error("failed to generate response", "err", err)
		return "", err
	}

	if len(response.Choices) < 1 {
		return "", fmt.Errorf("no choices returned from model")
	}

	return strings.TrimSpace(response.Choices[0].Content), nil
}

var _ ai.Responder = (*Responder)(nil)
