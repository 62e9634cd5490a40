package ledger

import "errors"

var (
	// ErrProductNotFound indicates a lookup for a product the ledger does
	// not track.
	ErrProductNotFound = errors.New("product not found")

	// ErrDuplicateProduct indicates two catalog rows shared a product ID.
	ErrDuplicateProduct = errors.New("duplicate product id")
)
