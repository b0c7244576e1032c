/*
errors.go - Centralized error taxonomy for the ledger engine

PURPOSE:
  All typed failures in one place. Callers branch with errors.Is/As; the
  HTTP layer maps categories to status codes via the helpers at the bottom.

ERROR CATEGORIES:
  1. Append errors   - malformed transactions
  2. Request errors  - bad quantities, unknown items, bad dates
  3. Guard errors    - insufficient funds / insufficient stock

None of these leave partial state behind: a rejected operation appends
nothing to the ledger.
*/
package ledger

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidTransaction is returned when an append is malformed:
	// unrecognized kind, missing item name outside the cash-only case, or
	// unit/amount violations.
	ErrInvalidTransaction = errors.New("invalid transaction")

	// ErrInvalidQuantity is returned for a non-positive quantity in a
	// quote, order, or sale line.
	ErrInvalidQuantity = errors.New("invalid quantity")

	// ErrInvalidDate is returned for a date string that does not parse as
	// YYYY-MM-DD. Delivery estimation degrades instead of returning this.
	ErrInvalidDate = errors.New("invalid date")

	// ErrUnknownItem is returned when an item is absent from the catalog.
	ErrUnknownItem = errors.New("item not in catalog")

	// ErrInsufficientFunds is returned when a stock order would exceed the
	// cash balance as of the order date.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInsufficientStock is returned when any sale line exceeds derived
	// stock. The whole sale fails; no line is applied.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

type InvalidTransactionError struct {
	Reason string
}

func (e *InvalidTransactionError) Error() string {
	return fmt.Sprintf("invalid transaction: %s", e.Reason)
}

func (e *InvalidTransactionError) Unwrap() error { return ErrInvalidTransaction }

type InvalidQuantityError struct {
	ItemName string
	Quantity int64
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("invalid quantity %d for %q: must be positive", e.Quantity, e.ItemName)
}

func (e *InvalidQuantityError) Unwrap() error { return ErrInvalidQuantity }

type UnknownItemError struct {
	ItemName string
}

func (e *UnknownItemError) Error() string {
	return fmt.Sprintf("%q is not in the catalog", e.ItemName)
}

func (e *UnknownItemError) Unwrap() error { return ErrUnknownItem }

type InsufficientFundsError struct {
	Available decimal.Decimal
	Required  decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: order costs %s but only %s available",
		e.Required.StringFixed(2), e.Available.StringFixed(2))
}

func (e *InsufficientFundsError) Unwrap() error { return ErrInsufficientFunds }

type InsufficientStockError struct {
	ItemName  string
	Available int64
	Requested int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: requested %d, available %d",
		e.ItemName, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid caller input or
// a rejected business guard, as opposed to a store failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidTransaction) ||
		errors.Is(err, ErrInvalidQuantity) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrUnknownItem) ||
		errors.Is(err, ErrInsufficientFunds) ||
		errors.Is(err, ErrInsufficientStock)
}

// IsNotFound returns true if the error indicates a missing catalog item.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUnknownItem)
}
