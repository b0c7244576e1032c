package sales

import "github.com/beaverschoice/paperledger/ledger"

// =============================================================================
// DELIVERY ESTIMATION - Quantity-banded lead times
// =============================================================================

// deliveryDays returns the supplier lead time for an order quantity.
func deliveryDays(quantity int64) int {
	switch {
	case quantity <= 10:
		return 0
	case quantity <= 100:
		return 1
	case quantity <= 1000:
		return 4
	default:
		return 7
	}
}

// EstimateDelivery returns the expected delivery date for an order of the
// given quantity placed on requestDate (YYYY-MM-DD). Estimates are
// advisory, so an unparseable date falls back to today instead of failing.
func EstimateDelivery(requestDate string, quantity int64) ledger.Date {
	d, err := ledger.ParseDate(requestDate)
	if err != nil {
		d = ledger.Today()
	}
	return d.AddDays(deliveryDays(quantity))
}
