// Package orders matches extracted order lines against the stock ledger.
//
// Each line resolves by exact case-insensitive name and allocates through
// the ledger, producing one of three statuses: created, out_of_stock, or
// not_found. Lines are independent; a failed line never blocks the rest of
// the order.
package orders
