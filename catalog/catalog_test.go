package catalog_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beaverschoice/paperledger/catalog"
)

func item(name string, price string) catalog.Item {
	return catalog.Item{
		Name:      name,
		Category:  "paper",
		UnitPrice: decimal.RequireFromString(price),
	}
}

// =============================================================================
// CONSTRUCTION TESTS
// =============================================================================

func TestNew_Valid(t *testing.T) {
	c, err := catalog.New([]catalog.Item{
		item("A4 paper", "0.05"),
		item("Cardstock", "0.15"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	it, ok := c.Lookup("A4 paper")
	require.True(t, ok)
	assert.True(t, it.UnitPrice.Equal(decimal.RequireFromString("0.05")))
}

func TestNew_Rejected(t *testing.T) {
	tests := []struct {
		name  string
		items []catalog.Item
	}{
		{"empty name", []catalog.Item{item("", "0.05")}},
		{"duplicate name", []catalog.Item{item("A4 paper", "0.05"), item("A4 paper", "0.06")}},
		{"zero price", []catalog.Item{item("A4 paper", "0")}},
		{"negative price", []catalog.Item{item("A4 paper", "-0.05")}},
		{"negative min stock", []catalog.Item{{Name: "A4 paper", UnitPrice: decimal.NewFromInt(1), MinStockLevel: -1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := catalog.New(tt.items)
			assert.Error(t, err)
		})
	}
}

func TestLookup_ExactNameOnly(t *testing.T) {
	c, err := catalog.New([]catalog.Item{item("A4 paper", "0.05")})
	require.NoError(t, err)

	_, ok := c.Lookup("a4 paper")
	assert.False(t, ok, "lookup is case-sensitive exact match")

	_, ok = c.Lookup("A4")
	assert.False(t, ok)
}

func TestItems_PreservesLoadOrder(t *testing.T) {
	c, err := catalog.New([]catalog.Item{
		item("Zeta paper", "0.10"),
		item("Alpha paper", "0.20"),
	})
	require.NoError(t, err)

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "Zeta paper", items[0].Name)
	assert.Equal(t, "Alpha paper", items[1].Name)
}

// =============================================================================
// SUPPLIES LIST TESTS
// =============================================================================

func TestPaperSupplies_Complete(t *testing.T) {
	supplies := catalog.PaperSupplies()
	assert.Len(t, supplies, 46)

	// The full list is itself a valid catalog
	c, err := catalog.New(supplies)
	require.NoError(t, err)

	it, ok := c.Lookup("A4 paper")
	require.True(t, ok)
	assert.True(t, it.UnitPrice.Equal(decimal.RequireFromString("0.05")))
	assert.NotEmpty(t, it.Category)
}

// =============================================================================
// SEEDED SAMPLING TESTS
// =============================================================================

func TestSampleInventory_Deterministic(t *testing.T) {
	// GIVEN: The same supplies, coverage, and seed
	// WHEN: Sampling twice
	// THEN: The exact same items with the exact same stock figures come out

	supplies := catalog.PaperSupplies()
	a := catalog.SampleInventory(supplies, catalog.DefaultCoverage, catalog.DefaultSeed)
	b := catalog.SampleInventory(supplies, catalog.DefaultCoverage, catalog.DefaultSeed)

	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].Name, b[i].Name)
		assert.Equal(t, a[i].SeedStock, b[i].SeedStock)
		assert.Equal(t, a[i].MinStockLevel, b[i].MinStockLevel)
	}
}

func TestSampleInventory_CoverageAndRanges(t *testing.T) {
	supplies := catalog.PaperSupplies()
	selected := catalog.SampleInventory(supplies, 0.5, 7)

	assert.Len(t, selected, len(supplies)/2)
	for _, it := range selected {
		assert.GreaterOrEqual(t, it.SeedStock, int64(200), "%s seed stock", it.Name)
		assert.Less(t, it.SeedStock, int64(800), "%s seed stock", it.Name)
		assert.GreaterOrEqual(t, it.MinStockLevel, int64(50), "%s min stock", it.Name)
		assert.Less(t, it.MinStockLevel, int64(150), "%s min stock", it.Name)
	}
}

func TestSampleInventory_DifferentSeedsDiffer(t *testing.T) {
	supplies := catalog.PaperSupplies()
	a := catalog.SampleInventory(supplies, 0.4, 1)
	b := catalog.SampleInventory(supplies, 0.4, 2)

	names := func(items []catalog.Item) []string {
		out := make([]string, len(items))
		for i, it := range items {
			out[i] = it.Name
		}
		return out
	}
	assert.NotEqual(t, names(a), names(b))
}

func TestDefault_IsValidCatalog(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)
	assert.Greater(t, c.Len(), 0)
	assert.Less(t, c.Len(), len(catalog.PaperSupplies()))
}
