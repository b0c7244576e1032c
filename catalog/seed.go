package catalog

import "math/rand"

// Seeding defaults, matching the historical demo data set.
const (
	DefaultCoverage = 0.4
	DefaultSeed     = 137
)

// SampleInventory selects a deterministic subset of the supplies list and
// assigns each selected item a seed stock in [200, 800) and a minimum stock
// level in [50, 150). The same seed always yields the same inventory, which
// keeps demo scenarios and tests reproducible.
func SampleInventory(supplies []Item, coverage float64, seed int64) []Item {
	if coverage < 0 {
		coverage = 0
	}
	if coverage > 1 {
		coverage = 1
	}

	rng := rand.New(rand.NewSource(seed))
	count := int(float64(len(supplies)) * coverage)

	selected := make([]Item, 0, count)
	for _, i := range rng.Perm(len(supplies))[:count] {
		it := supplies[i]
		it.SeedStock = 200 + rng.Int63n(600)
		it.MinStockLevel = 50 + rng.Int63n(100)
		selected = append(selected, it)
	}
	return selected
}

// Default returns the standard demo catalog: the sampled subset of the
// paper supplies list with seeded stock figures.
func Default() (*Catalog, error) {
	return New(SampleInventory(PaperSupplies(), DefaultCoverage, DefaultSeed))
}
