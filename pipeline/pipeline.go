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


package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/mailtriage/ai"
	"github.com/poiesic/mailtriage/core"
	"github.com/poiesic/mailtriage/orders"
	"github.com/poiesic/mailtriage/retrieval"
)

// Reply subject lines applied in the formatting pass.
const (
	OrderResponseSubject   = "Re: Your Order Confirmation"
	InquiryResponseSubject = "Re: Your Product Inquiry"
)

// Failure records one email the pipeline could not fully process.
// Failed emails never abort the run; they are reported here.
type Failure struct {
	EmailId string
	Stage   string
	Err     error
}

// Results aggregates everything one run produces.
type Results struct {
	Classifications  []core.Classification
	OrderStatuses    []core.OrderLineStatus
	OrderResponses   []core.EmailResponse
	InquiryResponses []core.EmailResponse
	Failures         []Failure
}

// Pipeline orchestrates one batch run: classify every email, then route
// each down the order or inquiry path and generate its reply.
type Pipeline struct {
	provider  ai.AIProvider
	orders    *orders.Engine
	retrieval *retrieval.Engine
	logger    *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// New creates a pipeline over the given collaborators.
func New(provider ai.AIProvider, orderEngine *orders.Engine, retrievalEngine *retrieval.Engine, opts ...Option) (*Pipeline, error) {
	if provider == nil {
		return nil, ErrAIProviderRequired
	}
	if orderEngine == nil {
		return nil, ErrOrderEngineRequired
	}
	if retrievalEngine == nil {
		return nil, ErrRetrievalEngineRequired
	}

	p := &Pipeline{
		provider:  provider,
		orders:    orderEngine,
		retrieval: retrievalEngine,
		logger:    slog.Default().With("component", "pipeline"),
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Run processes the batch. Every email is classified before any is routed,
// so the classification table is complete even when later stages fail.
// A failure in one email's path is recorded and the run moves on; Run only
// errors on invalid input.
func (p *Pipeline) Run(ctx context.Context, emails []*core.Email) (*Results, error) {
	for _, email := range emails {
		if err := core.ValidateEmail(email); err != nil {
			return nil, err
		}
	}

	results := &Results{}
	categories := make(map[string]core.EmailCategory, len(emails))

	// Classification pass.
	for _, email := range emails {
		category, err := p.provider.Classifier().ClassifyEmail(ctx, email.Subject, email.Body)
		if err != nil {
			p.logger.Error("classification failed", "email", email.Id, "err", err)
			results.Failures = append(results.Failures, Failure{
				EmailId: email.Id,
				Stage:   "classify",
				Err:     err,
			})
			continue
		}
		categories[email.Id] = category
		results.Classifications = append(results.Classifications, core.Classification{
			EmailId:  email.Id,
			Category: category,
		})
	}

	// Routing pass.
	for _, email := range emails {
		category, ok := categories[email.Id]
		if !ok {
			continue
		}

		var err error
		switch category {
		case core.CategoryOrderRequest:
			err = p.processOrder(ctx, email, results)
		case core.CategoryProductInquiry:
			err = p.processInquiry(ctx, email, results)
		}
		if err != nil {
			p.logger.Error("email processing failed", "email", email.Id, "category", category, "err", err)
			results.Failures = append(results.Failures, Failure{
				EmailId: email.Id,
				Stage:   string(category),
				Err:     err,
			})
		}
	}

	p.logger.Info("run complete",
		"emails", len(emails),
		"orders", len(results.OrderResponses),
		"inquiries", len(results.InquiryResponses),
		"failures", len(results.Failures))
	return results, nil
}

func (p *Pipeline) processOrder(ctx context.Context, email *core.Email, results *Results) error {
	lines, err := p.provider.OrderExtractor().ExtractOrderLines(ctx, email.Body)
	if err != nil {
		return fmt.Errorf("extracting order lines: %w", err)
	}

	statuses, err := p.orders.Process(ctx, email.Id, lines)
	if err != nil {
		return fmt.Errorf("processing order: %w", err)
	}
	results.OrderStatuses = append(results.OrderStatuses, statuses...)

	content, err := p.provider.Responder().OrderResponse(ctx, p.orders.Summarize(statuses))
	if err != nil {
		return fmt.Errorf("generating order response: %w", err)
	}

	formatted, err := p.provider.Responder().FormatResponse(ctx, OrderResponseSubject, content)
	if err != nil {
		return fmt.Errorf("formatting order response: %w", err)
	}

	results.OrderResponses = append(results.OrderResponses, core.EmailResponse{
		EmailId: email.Id,
		Kind:    core.ResponseOrder,
		Content: formatted,
	})
	return nil
}

func (p *Pipeline) processInquiry(ctx context.Context, email *core.Email, results *Results) error {
	candidates, err := p.retrieval.Search(ctx, email.Body)
	if err != nil {
		return fmt.Errorf("searching products: %w", err)
	}

	var content string
	if len(candidates) == 0 {
		content, err = p.provider.Responder().NoMatchResponse(ctx)
	} else {
		content, err = p.provider.Responder().InquiryResponse(ctx, email.Body, candidates)
	}
	if err != nil {
		return fmt.Errorf("generating inquiry response: %w", err)
	}

	formatted, err := p.provider.Responder().FormatResponse(ctx, InquiryResponseSubject, content)
	if err != nil {
		return fmt.Errorf("formatting inquiry response: %w", err)
	}

	results.InquiryResponses = append(results.InquiryResponses, core.EmailResponse{
		EmailId: email.Id,
		Kind:    core.ResponseInquiry,
		Content: formatted,
	})
	return nil
}
