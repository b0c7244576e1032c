/*
Package ledger provides the append-only transaction log and the derived
views computed from it.

PURPOSE:
  The ledger is the single source of truth for the company's stock and cash
  position. There is no mutable "inventory" or "balance" table: stock levels
  and the cash balance are always reconstructed by folding the transaction
  history up to an as-of date, so point-in-time queries are exact by
  construction.

KEY CONCEPTS IN THIS FILE (types.go):
  - Transaction: an immutable ledger entry (stock order or sale)
  - Kind: the two recognized transaction kinds
  - CashEffect / StockEffect: the signed contribution of an entry

DESIGN PRINCIPLES:
  1. Immutability: transactions are never updated or deleted. Corrections
     are new offsetting entries.
  2. Precision: monetary values use decimal.Decimal, never float64.
  3. Derivation: stock and cash are pure functions of ledger content.

SEE ALSO:
  - store.go: Persistence interface
  - valuation.go: Derived stock/cash views
  - errors.go: Error taxonomy
*/
package ledger

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// TRANSACTION - Immutable ledger entry
// =============================================================================

// TransactionID is assigned by the store on append, monotonically increasing.
type TransactionID int64

type Kind string

const (
	// KindStockOrder records a supplier purchase: units flow in, cash flows out.
	KindStockOrder Kind = "stock_order"
	// KindSale records a customer sale: units flow out, cash flows in.
	// A sale with no item name is a pure cash entry (initial capitalization).
	KindSale Kind = "sale"
)

// Transaction is a single immutable ledger entry.
//
// ItemName is empty only for a pure cash entry, in which case Units must be
// zero. Amount is always a positive magnitude; its sign on the cash balance
// is determined by Kind. OccurredAt is caller-supplied and need not match
// the append wall-clock time (historical backfill is supported).
type Transaction struct {
	ID         TransactionID
	ItemName   string
	Kind       Kind
	Units      int64
	Amount     decimal.Decimal
	OccurredAt Date
}

// IsCashOnly reports whether this entry affects cash without touching stock.
func (tx Transaction) IsCashOnly() bool { return tx.ItemName == "" }

// Validate checks the structural invariants of a transaction before append.
func (tx Transaction) Validate() error {
	switch tx.Kind {
	case KindStockOrder, KindSale:
	default:
		return &InvalidTransactionError{Reason: "kind must be stock_order or sale, got " + string(tx.Kind)}
	}
	if tx.IsCashOnly() {
		if tx.Kind != KindSale {
			return &InvalidTransactionError{Reason: "item name is required for " + string(tx.Kind)}
		}
		if tx.Units != 0 {
			return &InvalidTransactionError{Reason: "units must be zero on a pure cash entry"}
		}
	} else if tx.Units <= 0 {
		return &InvalidTransactionError{Reason: "units must be positive"}
	}
	if !tx.Amount.IsPositive() {
		return &InvalidTransactionError{Reason: "amount must be positive"}
	}
	if tx.OccurredAt.IsZero() {
		return &InvalidTransactionError{Reason: "occurred_at is required"}
	}
	return nil
}

// CashEffect returns the signed contribution of this entry to the cash
// balance: sales add, stock orders subtract.
func (tx Transaction) CashEffect() decimal.Decimal {
	if tx.Kind == KindStockOrder {
		return tx.Amount.Neg()
	}
	return tx.Amount
}

// StockEffect returns the signed contribution of this entry to the item's
// stock level. Zero for cash-only entries.
func (tx Transaction) StockEffect() int64 {
	if tx.IsCashOnly() {
		return 0
	}
	if tx.Kind == KindSale {
		return -tx.Units
	}
	return tx.Units
}

// =============================================================================
// SALE TOTALS - Cumulative sales aggregation per item
// =============================================================================

type SaleTotals struct {
	Units   int64
	Revenue decimal.Decimal
}
