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


package ledger

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/poiesic/mailtriage/core"
)

// Ledger owns the live stock counts for the duration of a run. All stock
// mutation goes through TryAllocate; catalog rows loaded at startup are
// copied in, never referenced again.
type Ledger struct {
	mu       sync.Mutex
	products map[string]*core.Product
	byName   map[string]string
	logger   *slog.Logger
}

// New builds a ledger from the catalog rows. Each product is copied, so
// later mutation of the input slice does not leak into the ledger.
func New(products []*core.Product) (*Ledger, error) {
	l := &Ledger{
		products: make(map[string]*core.Product, len(products)),
		byName:   make(map[string]string, len(products)),
		logger:   slog.Default().With("component", "ledger"),
	}

	for _, p := range products {
		if err := core.ValidateProduct(p); err != nil {
			return nil, err
		}
		if _, exists := l.products[p.Id]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateProduct, p.Id)
		}
		cp := *p
		l.products[p.Id] = &cp
		l.byName[core.NormalizeName(p.Name)] = p.Id
	}

	return l, nil
}

// Get returns a copy of the product's current state.
func (l *Ledger) Get(id string) (*core.Product, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, ok := l.products[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrProductNotFound, id)
	}
	cp := *p
	return &cp, nil
}

// ResolveByName looks a product up by case-insensitive exact name match.
func (l *Ledger) ResolveByName(name string) (*core.Product, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	id, ok := l.byName[core.NormalizeName(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrProductNotFound, name)
	}
	cp := *l.products[id]
	return &cp, nil
}

// TryAllocate atomically decrements stock by quantity when enough is on
// hand. It returns the remaining stock and whether the allocation took.
// An allocation never goes partial: either the full quantity comes off or
// nothing does.
func (l *Ledger) TryAllocate(id string, quantity int) (remaining int, ok bool, err error) {
	if quantity <= 0 {
		return 0, false, fmt.Errorf("%w: %d", core.ErrNonPositiveQuantity, quantity)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	p, found := l.products[id]
	if !found {
		return 0, false, fmt.Errorf("%w: %q", ErrProductNotFound, id)
	}

	if p.Stock < quantity {
		return p.Stock, false, nil
	}

	p.Stock -= quantity
	l.logger.Debug("allocated stock", "product", p.Name, "quantity", quantity, "remaining", p.Stock)
	return p.Stock, true, nil
}

// Len returns the number of products tracked.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.products)
}

// Snapshot returns a copy of every product, ordered by ID, reflecting
// stock as of the call.
func (l *Ledger) Snapshot() []*core.Product {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]*core.Product, 0, len(l.products))
	for _, p := range l.products {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Id < out[j].Id })
	return out
}
