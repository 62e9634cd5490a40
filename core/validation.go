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


package core

import "fmt"

// ValidateProduct validates a Product according to domain rules.
//
// Validation rules:
//   - Id must not be empty
//   - Name must not be empty
//   - Stock must not be negative
//
// NOT validated:
//   - Description, Category, Season (free text, may be empty)
func ValidateProduct(product *Product) error {
	if product == nil {
		return fmt.Errorf("%w: product is nil", ErrInvalidProduct)
	}

	if product.Id == "" {
		return fmt.Errorf("%w: %w", ErrInvalidProduct, ErrEmptyProductId)
	}

	if product.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidProduct, ErrEmptyProductName)
	}

	if product.Stock < 0 {
		return fmt.Errorf("%w: %w: product %s", ErrInvalidProduct, ErrNegativeStock, product.Id)
	}

	return nil
}

// ValidateEmail validates an Email according to domain rules.
//
// Validation rules:
//   - Id must not be empty
//   - Body must not be empty
//
// NOT validated:
//   - Subject (may be empty; classification works from the body alone)
func ValidateEmail(email *Email) error {
	if email == nil {
		return fmt.Errorf("%w: email is nil", ErrInvalidEmail)
	}

	if email.Id == "" {
		return fmt.Errorf("%w: %w", ErrInvalidEmail, ErrEmptyEmailId)
	}

	if email.Body == "" {
		return fmt.Errorf("%w: %w: email %s", ErrInvalidEmail, ErrEmptyEmailBody, email.Id)
	}

	return nil
}

// ValidateOrderLine validates an OrderLineRequest according to domain rules.
//
// Validation rules:
//   - ProductName must not be empty after trimming
//   - Quantity must be at least 1
//
// Extraction output that fails these rules must never reach the matching
// engine; the extractor rejects it as malformed instead.
func ValidateOrderLine(line *OrderLineRequest) error {
	if line == nil {
		return fmt.Errorf("%w: line is nil", ErrInvalidOrderLine)
	}

	if NormalizeName(line.ProductName) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidOrderLine, ErrEmptyLineName)
	}

	if line.Quantity < 1 {
		return fmt.Errorf("%w: %w: got %d", ErrInvalidOrderLine, ErrNonPositiveQuantity, line.Quantity)
	}

	return nil
}

// ValidateCategory checks that a category is one of the two known labels.
func ValidateCategory(category EmailCategory) error {
	if category != CategoryOrderRequest && category != CategoryProductInquiry {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidEmail, category)
	}
	return nil
}
