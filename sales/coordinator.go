/*
coordinator.go - Validated, atomic writes into the ledger

PURPOSE:
  The Coordinator is the single writer. Stock orders and sales are
  check-then-append sequences: all guards (funds, stock, quantities) are
  evaluated before anything is written, and the append is all-or-nothing,
  so a rejected operation leaves the ledger untouched.

CONCURRENCY:
  A mutex serializes the check-then-append sequences. Two concurrent sales
  of the same item cannot both pass the stock check before either appends.
  Reads (valuation, quoting) do not take this lock; multi-line sales are
  atomic batches at the store level, so readers never see a half-applied
  sale.
*/
package sales

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/beaverschoice/paperledger/catalog"
	"github.com/beaverschoice/paperledger/ledger"
)

// OrderReceipt confirms a committed stock order.
type OrderReceipt struct {
	TransactionID ledger.TransactionID
	ItemName      string
	Quantity      int64
	Cost          decimal.Decimal
	DeliveryDate  ledger.Date
}

// SoldLine is one committed sale line.
type SoldLine struct {
	TransactionID ledger.TransactionID
	ItemName      string
	Quantity      int64
	Price         decimal.Decimal
}

// SaleReceipt confirms a committed sale. DeliveryDate is the aggregate
// estimate over the summed quantity of all lines.
type SaleReceipt struct {
	Lines        []SoldLine
	Total        decimal.Decimal
	DeliveryDate ledger.Date
}

// Coordinator validates and commits reorders and sales.
type Coordinator struct {
	mu        sync.Mutex
	ledger    *ledger.Ledger
	valuation *ledger.Valuation
	catalog   *catalog.Catalog
}

func NewCoordinator(l *ledger.Ledger, v *ledger.Valuation, cat *catalog.Catalog) *Coordinator {
	return &Coordinator{ledger: l, valuation: v, catalog: cat}
}

// PlaceStockOrder buys quantity units of an item from the supplier as of
// the given date. The order is rejected - with nothing appended - for a
// non-positive quantity, an unknown item, or a cost exceeding the cash
// balance as of that date. Cash exactly equal to the cost is sufficient.
func (c *Coordinator) PlaceStockOrder(ctx context.Context, itemName string, quantity int64, asOf ledger.Date) (*OrderReceipt, error) {
	if quantity <= 0 {
		return nil, &ledger.InvalidQuantityError{ItemName: itemName, Quantity: quantity}
	}
	it, ok := c.catalog.Lookup(itemName)
	if !ok {
		return nil, &ledger.UnknownItemError{ItemName: itemName}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	cost := it.UnitPrice.Mul(decimal.NewFromInt(quantity))
	cash, err := c.valuation.CashBalance(ctx, asOf)
	if err != nil {
		return nil, err
	}
	if cash.LessThan(cost) {
		return nil, &ledger.InsufficientFundsError{Available: cash, Required: cost}
	}

	id, err := c.ledger.Append(ctx, ledger.Transaction{
		ItemName:   itemName,
		Kind:       ledger.KindStockOrder,
		Units:      quantity,
		Amount:     cost,
		OccurredAt: asOf,
	})
	if err != nil {
		return nil, err
	}
	c.valuation.Invalidate(asOf)

	return &OrderReceipt{
		TransactionID: id,
		ItemName:      itemName,
		Quantity:      quantity,
		Cost:          cost,
		DeliveryDate:  asOf.AddDays(deliveryDays(quantity)),
	}, nil
}

// RecordSale commits a multi-line sale as of the given date. Every line is
// validated first - positive quantity, known item, derived stock covering
// the requested units - and a failure on any line rejects the whole sale
// with zero transactions appended. On success one sale transaction is
// appended per line, atomically.
func (c *Coordinator) RecordSale(ctx context.Context, lines []Line, asOf ledger.Date) (*SaleReceipt, error) {
	if len(lines) == 0 {
		return nil, &ledger.InvalidQuantityError{Quantity: 0}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Validation pass: nothing is appended until every line clears.
	txs := make([]ledger.Transaction, 0, len(lines))
	total := decimal.Zero
	var totalUnits int64

	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, &ledger.InvalidQuantityError{ItemName: line.ItemName, Quantity: line.Quantity}
		}
		it, ok := c.catalog.Lookup(line.ItemName)
		if !ok {
			return nil, &ledger.UnknownItemError{ItemName: line.ItemName}
		}
		stock, err := c.valuation.StockOf(ctx, line.ItemName, asOf)
		if err != nil {
			return nil, err
		}
		if stock < line.Quantity {
			return nil, &ledger.InsufficientStockError{
				ItemName:  line.ItemName,
				Available: stock,
				Requested: line.Quantity,
			}
		}

		price := it.UnitPrice.Mul(decimal.NewFromInt(line.Quantity))
		txs = append(txs, ledger.Transaction{
			ItemName:   line.ItemName,
			Kind:       ledger.KindSale,
			Units:      line.Quantity,
			Amount:     price,
			OccurredAt: asOf,
		})
		total = total.Add(price)
		totalUnits += line.Quantity
	}

	ids, err := c.ledger.AppendBatch(ctx, txs)
	if err != nil {
		return nil, err
	}
	c.valuation.Invalidate(asOf)

	receipt := &SaleReceipt{
		Total:        total,
		DeliveryDate: asOf.AddDays(deliveryDays(totalUnits)),
	}
	for i, tx := range txs {
		receipt.Lines = append(receipt.Lines, SoldLine{
			TransactionID: ids[i],
			ItemName:      tx.ItemName,
			Quantity:      tx.Units,
			Price:         tx.Amount,
		})
	}
	return receipt, nil
}
