/*
Package catalog holds the static reference data for the paper supplies the
company trades in: item name, category, unit price, and minimum stock level.

The catalog is immutable after load. It is the authority on which items
exist at all - quotes and orders for anything else are rejected as unknown
rather than priced at zero - and it supplies the unit prices used for
quoting, order costing, and inventory valuation.
*/
package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Item is one catalog entry. SeedStock is only consulted when seeding a
// fresh ledger; it plays no part in derived stock levels afterwards.
type Item struct {
	Name          string
	Category      string
	UnitPrice     decimal.Decimal
	MinStockLevel int64
	SeedStock     int64
}

// Catalog is a read-only lookup of items by exact name.
type Catalog struct {
	items map[string]Item
	order []string
}

// New builds a catalog from items, rejecting duplicates, non-positive
// prices, and negative minimum stock levels. Iteration order follows the
// input order.
func New(items []Item) (*Catalog, error) {
	c := &Catalog{items: make(map[string]Item, len(items))}
	for _, it := range items {
		if it.Name == "" {
			return nil, fmt.Errorf("catalog item with empty name")
		}
		if _, dup := c.items[it.Name]; dup {
			return nil, fmt.Errorf("duplicate catalog item %q", it.Name)
		}
		if !it.UnitPrice.IsPositive() {
			return nil, fmt.Errorf("catalog item %q: unit price must be positive", it.Name)
		}
		if it.MinStockLevel < 0 {
			return nil, fmt.Errorf("catalog item %q: min stock level must not be negative", it.Name)
		}
		c.items[it.Name] = it
		c.order = append(c.order, it.Name)
	}
	return c, nil
}

// Lookup returns the item with the exact name, if present.
func (c *Catalog) Lookup(name string) (Item, bool) {
	it, ok := c.items[name]
	return it, ok
}

// Items returns all items in load order.
func (c *Catalog) Items() []Item {
	out := make([]Item, len(c.order))
	for i, name := range c.order {
		out[i] = c.items[name]
	}
	return out
}

func (c *Catalog) Len() int { return len(c.order) }
