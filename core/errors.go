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

import "errors"

// Domain validation errors
var (
	// ErrInvalidProduct indicates a Product failed validation.
	ErrInvalidProduct = errors.New("invalid product")

	// ErrInvalidEmail indicates an Email failed validation.
	ErrInvalidEmail = errors.New("invalid email")

	// ErrInvalidOrderLine indicates an OrderLineRequest failed validation.
	ErrInvalidOrderLine = errors.New("invalid order line")

	// ErrEmptyProductId indicates the product Id field is empty.
	ErrEmptyProductId = errors.New("product id cannot be empty")

	// ErrEmptyProductName indicates the product Name field is empty.
	ErrEmptyProductName = errors.New("product name cannot be empty")

	// ErrNegativeStock indicates a negative stock count.
	ErrNegativeStock = errors.New("stock cannot be negative")

	// ErrEmptyEmailId indicates the email Id field is empty.
	ErrEmptyEmailId = errors.New("email id cannot be empty")

	// ErrEmptyEmailBody indicates the email Body field is empty.
	ErrEmptyEmailBody = errors.New("email body cannot be empty")

	// ErrEmptyLineName indicates an order line with an empty product name.
	ErrEmptyLineName = errors.New("order line product name cannot be empty")

	// ErrNonPositiveQuantity indicates an order line quantity below one.
	ErrNonPositiveQuantity = errors.New("order line quantity must be positive")
)
