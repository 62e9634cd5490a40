package orders

import "errors"

var (
	// ErrLedgerRequired is returned when a stock ledger is not provided.
	ErrLedgerRequired = errors.New("stock ledger required")
)
