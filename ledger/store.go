/*
store.go - Persistence interface for the transaction log

PURPOSE:
  Defines the interface between the ledger and the database. The store
  owns transaction identity (ids are assigned on append) and ordering.

APPEND-ONLY CONTRACT:
  - Append():      single transaction write, returns the assigned id
  - AppendBatch(): atomic multi-transaction write (all-or-nothing)
  - NO Update() or Delete() methods exist

ATOMIC BATCHES:
  AppendBatch() backs multi-line sales: either every line's transaction is
  written or none is. Readers never observe a half-applied sale.

IMPLEMENTATIONS:
  - store/sqlite: production SQLite store
  - ledger/store: in-memory store for tests

SEE ALSO:
  - ledger.go: validating wrapper over Store
  - valuation.go: derived views reading through Store
*/
package ledger

import "context"

// Store handles persistence of transactions.
// IMPORTANT: Store is APPEND-ONLY. No Update, No Delete. Ever.
type Store interface {
	// Append persists one transaction and returns its assigned id.
	Append(ctx context.Context, tx Transaction) (TransactionID, error)

	// AppendBatch persists multiple transactions atomically, returning the
	// assigned ids in order. Either all succeed or none do.
	AppendBatch(ctx context.Context, txs []Transaction) ([]TransactionID, error)

	// LoadThrough returns all transactions with OccurredAt on or before
	// asOf, ordered by (OccurredAt, ID). Read-only.
	LoadThrough(ctx context.Context, asOf Date) ([]Transaction, error)

	// LoadItemThrough returns the transactions for one item with OccurredAt
	// on or before asOf, ordered by (OccurredAt, ID). Read-only.
	LoadItemThrough(ctx context.Context, itemName string, asOf Date) ([]Transaction, error)

	// Count returns the total number of transactions in the ledger.
	Count(ctx context.Context) (int64, error)
}
