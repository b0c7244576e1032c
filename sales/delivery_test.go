package sales_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/beaverschoice/paperledger/ledger"
	"github.com/beaverschoice/paperledger/sales"
)

func TestEstimateDelivery_QuantityBands(t *testing.T) {
	tests := []struct {
		quantity int64
		want     string
	}{
		{1, "2025-01-01"},
		{10, "2025-01-01"},   // band edge: same day
		{11, "2025-01-02"},
		{100, "2025-01-02"},  // band edge: next day
		{101, "2025-01-05"},
		{1000, "2025-01-05"}, // band edge: four days
		{1001, "2025-01-08"},
		{50000, "2025-01-08"},
	}
	for _, tt := range tests {
		got := sales.EstimateDelivery("2025-01-01", tt.quantity)
		assert.Equal(t, tt.want, got.String(), "quantity %d", tt.quantity)
	}
}

func TestEstimateDelivery_BadDateFallsBackToToday(t *testing.T) {
	// Estimates are advisory: a garbage date degrades to today rather
	// than failing the request.

	got := sales.EstimateDelivery("not-a-date", 500)
	want := ledger.Today().AddDays(4)
	assert.True(t, got.Equal(want), "want %s, got %s", want, got)
}

func TestEstimateDelivery_MonthRollover(t *testing.T) {
	got := sales.EstimateDelivery("2025-01-30", 5000)
	assert.Equal(t, "2025-02-06", got.String())
}

func TestEstimateDelivery_DateOnlyPrecision(t *testing.T) {
	got := sales.EstimateDelivery("2025-03-15", 1)
	assert.Equal(t, time.UTC, got.Time().Location())
	assert.Zero(t, got.Time().Hour())
}
