/*
valuation.go - Derived stock and cash views over the ledger

PURPOSE:
  Computes stock-per-item and the cash balance as of an arbitrary date by
  folding the transaction log. Nothing here is stored as independent mutable
  state: every answer is a pure function of ledger content at call time.

THE FOLD:
  A single linear pass over transactions with OccurredAt <= asOf,
  partitioned by item and kind. The aggregation is commutative, so the
  result does not depend on append order within the same dates.

CACHING:
  Per-(item, date) stock results are memoized. A cached value for date D is
  only valid while no transaction with OccurredAt <= D is appended, so the
  write path calls Invalidate(occurred) after every successful append, which
  drops all cached entries at or after the new transaction's date. A
  generation counter guards against the read-side race: a load that started
  before an append must not install its result after that append's
  invalidation, or the stale value would survive indefinitely.
*/
package ledger

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
)

// Valuation derives point-in-time stock and cash figures from a Store.
// Reads may run concurrently; the cache is internally synchronized.
type Valuation struct {
	store Store

	mu    sync.RWMutex
	gen   uint64
	stock map[stockKey]int64
}

type stockKey struct {
	item string
	date string
}

func NewValuation(store Store) *Valuation {
	return &Valuation{
		store: store,
		stock: make(map[stockKey]int64),
	}
}

// StockOf returns the derived stock of an item as of a date: stock orders
// minus sales through that day. Zero when the item has no history.
func (v *Valuation) StockOf(ctx context.Context, itemName string, asOf Date) (int64, error) {
	k := stockKey{item: itemName, date: asOf.String()}

	v.mu.RLock()
	cached, ok := v.stock[k]
	gen := v.gen
	v.mu.RUnlock()
	if ok {
		return cached, nil
	}

	txs, err := v.store.LoadItemThrough(ctx, itemName, asOf)
	if err != nil {
		return 0, err
	}

	var total int64
	for _, tx := range txs {
		total += tx.StockEffect()
	}

	// Cache only if no invalidation ran while the load was in flight;
	// otherwise this result may predate an append it should reflect.
	v.mu.Lock()
	if v.gen == gen {
		v.stock[k] = total
	}
	v.mu.Unlock()
	return total, nil
}

// AllPositiveStock returns every item whose derived stock is strictly
// positive as of the date. Depleted and never-stocked items are omitted,
// not reported as zero.
func (v *Valuation) AllPositiveStock(ctx context.Context, asOf Date) (map[string]int64, error) {
	txs, err := v.store.LoadThrough(ctx, asOf)
	if err != nil {
		return nil, err
	}

	levels := make(map[string]int64)
	for _, tx := range txs {
		if tx.IsCashOnly() {
			continue
		}
		levels[tx.ItemName] += tx.StockEffect()
	}
	for name, stock := range levels {
		if stock <= 0 {
			delete(levels, name)
		}
	}
	return levels, nil
}

// CashBalance returns sale inflows minus stock-order outflows through the
// date. Exactly zero when the ledger has no transactions on or before it.
func (v *Valuation) CashBalance(ctx context.Context, asOf Date) (decimal.Decimal, error) {
	txs, err := v.store.LoadThrough(ctx, asOf)
	if err != nil {
		return decimal.Decimal{}, err
	}

	balance := decimal.Zero
	for _, tx := range txs {
		balance = balance.Add(tx.CashEffect())
	}
	return balance, nil
}

// SalesByItem returns cumulative units sold and sale revenue per item
// through the date. Cash-only entries are excluded.
func (v *Valuation) SalesByItem(ctx context.Context, asOf Date) (map[string]SaleTotals, error) {
	txs, err := v.store.LoadThrough(ctx, asOf)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]SaleTotals)
	for _, tx := range txs {
		if tx.Kind != KindSale || tx.IsCashOnly() {
			continue
		}
		t := totals[tx.ItemName]
		t.Units += tx.Units
		t.Revenue = t.Revenue.Add(tx.Amount)
		totals[tx.ItemName] = t
	}
	return totals, nil
}

// Flush drops the whole stock cache. Used when the underlying store is
// reloaded wholesale (demo scenarios), not on the normal append path.
func (v *Valuation) Flush() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.gen++
	v.stock = make(map[stockKey]int64)
}

// Invalidate drops cached stock entries that a new transaction dated
// occurred could affect: every cached date at or after it.
func (v *Valuation) Invalidate(occurred Date) {
	cutoff := occurred.String()

	v.mu.Lock()
	defer v.mu.Unlock()
	v.gen++
	for k := range v.stock {
		if k.date >= cutoff {
			delete(v.stock, k)
		}
	}
}
