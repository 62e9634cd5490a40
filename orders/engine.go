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


package orders

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/mailtriage/core"
	"github.com/poiesic/mailtriage/ledger"
)

// Engine turns extracted order lines into allocation outcomes against the
// stock ledger.
type Engine struct {
	ledger *ledger.Ledger
	logger *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewEngine creates an order matching engine over the given ledger.
func NewEngine(l *ledger.Ledger, opts ...Option) (*Engine, error) {
	if l == nil {
		return nil, ErrLedgerRequired
	}
	e := &Engine{
		ledger: l,
		logger: slog.Default().With("component", "orders"),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Process resolves and allocates each extracted line in order. One line's
// outcome never affects its siblings: a miss or an out-of-stock line is
// recorded and processing moves on. The returned statuses preserve input
// order, one status per line.
func (e *Engine) Process(ctx context.Context, emailID string, lines []core.OrderLineRequest) ([]core.OrderLineStatus, error) {
	statuses := make([]core.OrderLineStatus, 0, len(lines))

	for _, line := range lines {
		if err := core.ValidateOrderLine(&line); err != nil {
			return nil, fmt.Errorf("email %s: %w", emailID, err)
		}

		status := core.OrderLineStatus{
			EmailId:     emailID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
		}

		product, err := e.ledger.ResolveByName(line.ProductName)
		if err != nil {
			if !errors.Is(err, ledger.ErrProductNotFound) {
				return nil, fmt.Errorf("email %s: resolving %q: %w", emailID, line.ProductName, err)
			}
			// Unknown product: record it and leave stock alone.
			status.Status = core.LineNotFound
			e.logger.Warn("order line matched no product", "email", emailID, "name", line.ProductName)
			statuses = append(statuses, status)
			continue
		}

		status.ProductId = product.Id
		status.ProductName = product.Name

		_, ok, err := e.ledger.TryAllocate(product.Id, line.Quantity)
		if err != nil {
			return nil, fmt.Errorf("email %s: allocating %q: %w", emailID, line.ProductName, err)
		}
		if ok {
			status.Status = core.LineCreated
		} else {
			status.Status = core.LineOutOfStock
		}
		statuses = append(statuses, status)
	}

	return statuses, nil
}

// Summarize renders the allocation outcomes as the human-readable order
// summary handed to response generation.
func (e *Engine) Summarize(statuses []core.OrderLineStatus) string {
	var b strings.Builder
	for i, s := range statuses {
		if i > 0 {
			b.WriteString("\n")
		}
		switch s.Status {
		case core.LineCreated:
			fmt.Fprintf(&b, "- %d x %s: confirmed", s.Quantity, s.ProductName)
		case core.LineOutOfStock:
			fmt.Fprintf(&b, "- %d x %s: out of stock", s.Quantity, s.ProductName)
		case core.LineNotFound:
			fmt.Fprintf(&b, "- %d x %s: no matching product", s.Quantity, s.ProductName)
		}
	}
	return b.String()
}
