/*
Package sales implements the customer-facing operations over the ledger:
quoting, stock reorders, sale recording, delivery estimation, and the
financial report.

The quote calculator in this file is pure - it reads the catalog and
nothing else. Committing a quoted sale is a separate operation on the
Coordinator, which is the only writer.
*/
package sales

import (
	"github.com/shopspring/decimal"

	"github.com/beaverschoice/paperledger/catalog"
	"github.com/beaverschoice/paperledger/ledger"
)

// =============================================================================
// QUOTE CALCULATOR - Tiered bulk discount pricing
// =============================================================================

// Line is one requested (item, quantity) pair.
type Line struct {
	ItemName string
	Quantity int64
}

// PricedLine is one quoted line with its catalog price applied.
type PricedLine struct {
	ItemName  string
	Quantity  int64
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

// Quote is the full pricing breakdown for a request. All figures are kept
// at full precision; rounding to cents happens only at the presentation
// boundary.
type Quote struct {
	AsOf           ledger.Date
	Lines          []PricedLine
	Unavailable    []string
	Subtotal       decimal.Decimal
	DiscountRate   decimal.Decimal
	DiscountAmount decimal.Decimal
	Total          decimal.Decimal
}

// Discount tiers, evaluated once on the final subtotal, highest first.
// Bounds are inclusive: a subtotal exactly on a threshold takes that tier.
var discountTiers = []struct {
	threshold decimal.Decimal
	rate      decimal.Decimal
}{
	{decimal.NewFromInt(5000), decimal.RequireFromString("0.15")},
	{decimal.NewFromInt(2000), decimal.RequireFromString("0.10")},
	{decimal.NewFromInt(1000), decimal.RequireFromString("0.05")},
}

// DiscountRate returns the bulk discount rate for a subtotal.
func DiscountRate(subtotal decimal.Decimal) decimal.Decimal {
	for _, tier := range discountTiers {
		if subtotal.GreaterThanOrEqual(tier.threshold) {
			return tier.rate
		}
	}
	return decimal.Zero
}

// Calculator prices multi-item requests against the catalog.
type Calculator struct {
	catalog *catalog.Catalog
}

func NewCalculator(cat *catalog.Catalog) *Calculator {
	return &Calculator{catalog: cat}
}

// Quote prices the requested lines. Items absent from the catalog are
// reported as unavailable and dropped from the subtotal, not priced at
// zero. A non-positive quantity on any line rejects the whole request.
// The as-of date only timestamps the quote; it does not affect pricing.
func (c *Calculator) Quote(lines []Line, asOf ledger.Date) (*Quote, error) {
	q := &Quote{AsOf: asOf, Subtotal: decimal.Zero}

	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, &ledger.InvalidQuantityError{ItemName: line.ItemName, Quantity: line.Quantity}
		}

		it, ok := c.catalog.Lookup(line.ItemName)
		if !ok {
			q.Unavailable = append(q.Unavailable, line.ItemName)
			continue
		}

		total := it.UnitPrice.Mul(decimal.NewFromInt(line.Quantity))
		q.Lines = append(q.Lines, PricedLine{
			ItemName:  line.ItemName,
			Quantity:  line.Quantity,
			UnitPrice: it.UnitPrice,
			LineTotal: total,
		})
		q.Subtotal = q.Subtotal.Add(total)
	}

	q.DiscountRate = DiscountRate(q.Subtotal)
	q.DiscountAmount = q.Subtotal.Mul(q.DiscountRate)
	q.Total = q.Subtotal.Sub(q.DiscountAmount)
	return q, nil
}
