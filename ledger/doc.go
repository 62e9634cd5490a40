// Package ledger tracks product stock for a single processing run.
//
// The ledger is the only component allowed to mutate stock. It is built
// once from the loaded catalog and then shared across the order path;
// every decrement goes through TryAllocate, which is atomic and never
// leaves a product partially allocated.
package ledger
