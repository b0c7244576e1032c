package sales

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/beaverschoice/paperledger/catalog"
	"github.com/beaverschoice/paperledger/ledger"
)

// =============================================================================
// REPORTING VIEW - Financial snapshot as of a date
// =============================================================================

// topSellerLimit caps the best-seller list in the financial report.
const topSellerLimit = 5

// ItemValuation is one catalog item's contribution to inventory value.
type ItemValuation struct {
	ItemName  string
	Stock     int64
	UnitPrice decimal.Decimal
	Value     decimal.Decimal
}

// TopSeller is one entry in the best-seller ranking.
type TopSeller struct {
	ItemName string
	Units    int64
	Revenue  decimal.Decimal
}

// Report is the financial snapshot as of a date. Read-only.
type Report struct {
	AsOf           ledger.Date
	CashBalance    decimal.Decimal
	InventoryValue decimal.Decimal
	TotalAssets    decimal.Decimal
	Inventory      []ItemValuation
	TopSellers     []TopSeller
}

// Reporter aggregates valuation output into financial snapshots.
type Reporter struct {
	valuation *ledger.Valuation
	catalog   *catalog.Catalog
}

func NewReporter(v *ledger.Valuation, cat *catalog.Catalog) *Reporter {
	return &Reporter{valuation: v, catalog: cat}
}

// FinancialReport combines the cash balance, a per-catalog-item valuation,
// and the top sellers by cumulative sale revenue through the date. Revenue
// ties are broken by item name ascending so the ranking is deterministic.
func (r *Reporter) FinancialReport(ctx context.Context, asOf ledger.Date) (*Report, error) {
	cash, err := r.valuation.CashBalance(ctx, asOf)
	if err != nil {
		return nil, err
	}

	report := &Report{
		AsOf:           asOf,
		CashBalance:    cash,
		InventoryValue: decimal.Zero,
	}

	for _, it := range r.catalog.Items() {
		stock, err := r.valuation.StockOf(ctx, it.Name, asOf)
		if err != nil {
			return nil, err
		}
		value := it.UnitPrice.Mul(decimal.NewFromInt(stock))
		report.InventoryValue = report.InventoryValue.Add(value)
		report.Inventory = append(report.Inventory, ItemValuation{
			ItemName:  it.Name,
			Stock:     stock,
			UnitPrice: it.UnitPrice,
			Value:     value,
		})
	}
	report.TotalAssets = cash.Add(report.InventoryValue)

	totals, err := r.valuation.SalesByItem(ctx, asOf)
	if err != nil {
		return nil, err
	}
	sellers := make([]TopSeller, 0, len(totals))
	for name, t := range totals {
		sellers = append(sellers, TopSeller{ItemName: name, Units: t.Units, Revenue: t.Revenue})
	}
	sort.Slice(sellers, func(i, j int) bool {
		if !sellers[i].Revenue.Equal(sellers[j].Revenue) {
			return sellers[i].Revenue.GreaterThan(sellers[j].Revenue)
		}
		return sellers[i].ItemName < sellers[j].ItemName
	})
	if len(sellers) > topSellerLimit {
		sellers = sellers[:topSellerLimit]
	}
	report.TopSellers = sellers

	return report, nil
}
