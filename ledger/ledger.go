/*
ledger.go - Validating wrapper over the append-only store

PURPOSE:
  The Ledger is the only write path into the transaction log. It checks
  the structural invariants of every transaction before handing it to the
  store, so no malformed entry ever reaches durable storage.

CRITICAL INVARIANTS:
  1. APPEND-ONLY: no Update, no Delete.
  2. IMMUTABLE: once written, transactions cannot be modified.
  3. VALIDATED: every append passes Transaction.Validate() first.

CORRECTIONS:
  Mistakes are not edited. A wrong sale is corrected by a new offsetting
  entry; both remain in the history.
*/
package ledger

import "context"

// Ledger validates and appends transactions. All writes go through here.
type Ledger struct {
	store Store
}

func New(store Store) *Ledger {
	return &Ledger{store: store}
}

// Append validates tx and persists it, returning the assigned id.
func (l *Ledger) Append(ctx context.Context, tx Transaction) (TransactionID, error) {
	if err := tx.Validate(); err != nil {
		return 0, err
	}
	return l.store.Append(ctx, tx)
}

// AppendBatch validates every transaction, then persists them atomically.
// A validation failure on any entry means nothing is written.
func (l *Ledger) AppendBatch(ctx context.Context, txs []Transaction) ([]TransactionID, error) {
	for _, tx := range txs {
		if err := tx.Validate(); err != nil {
			return nil, err
		}
	}
	return l.store.AppendBatch(ctx, txs)
}

// Count returns the number of transactions in the ledger.
func (l *Ledger) Count(ctx context.Context) (int64, error) {
	return l.store.Count(ctx)
}
