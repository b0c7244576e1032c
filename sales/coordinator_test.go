package sales_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beaverschoice/paperledger/ledger"
	"github.com/beaverschoice/paperledger/ledger/store"
	"github.com/beaverschoice/paperledger/sales"
)

// =============================================================================
// TEST SETUP
// =============================================================================

type fixture struct {
	ledger      *ledger.Ledger
	valuation   *ledger.Valuation
	coordinator *sales.Coordinator
}

// newFixture funds the company with openingCash on Jan 1, 2025.
func newFixture(t *testing.T, openingCash string) *fixture {
	t.Helper()

	mem := store.NewMemory()
	l := ledger.New(mem)
	v := ledger.NewValuation(mem)
	c := sales.NewCoordinator(l, v, testCatalog(t))

	cash := decimal.RequireFromString(openingCash)
	if cash.IsPositive() {
		_, err := l.Append(context.Background(), ledger.Transaction{
			Kind:       ledger.KindSale,
			Amount:     cash,
			OccurredAt: ledger.NewDate(2025, time.January, 1),
		})
		require.NoError(t, err)
	}
	return &fixture{ledger: l, valuation: v, coordinator: c}
}

// =============================================================================
// STOCK ORDER TESTS
// =============================================================================

func TestPlaceStockOrder_Succeeds(t *testing.T) {
	// GIVEN: 50,000 in cash
	// WHEN: Ordering 1,000 sheets of A4 at 0.05 on Jan 1
	// THEN: 50.00 leaves the cash balance, stock rises, delivery is Jan 5

	f := newFixture(t, "50000")
	ctx := context.Background()
	jan1 := ledger.NewDate(2025, time.January, 1)

	receipt, err := f.coordinator.PlaceStockOrder(ctx, "A4 paper", 1000, jan1)
	require.NoError(t, err)

	eq(t, "50", receipt.Cost)
	assert.Equal(t, "2025-01-05", receipt.DeliveryDate.String())

	cash, err := f.valuation.CashBalance(ctx, jan1)
	require.NoError(t, err)
	eq(t, "49950", cash)

	stock, err := f.valuation.StockOf(ctx, "A4 paper", jan1)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), stock)
}

func TestPlaceStockOrder_ExactFundsSucceed(t *testing.T) {
	// Cash exactly equal to the cost clears the guard.

	f := newFixture(t, "50") // 1000 * 0.05 = 50.00 exactly
	ctx := context.Background()

	receipt, err := f.coordinator.PlaceStockOrder(ctx, "A4 paper", 1000, ledger.NewDate(2025, time.January, 2))
	require.NoError(t, err)
	eq(t, "50", receipt.Cost)

	cash, err := f.valuation.CashBalance(ctx, ledger.NewDate(2025, time.January, 2))
	require.NoError(t, err)
	assert.True(t, cash.IsZero(), "got %s", cash)
}

func TestPlaceStockOrder_InsufficientFunds(t *testing.T) {
	// GIVEN: 49.99 in cash against a 50.00 cost
	// WHEN: Ordering
	// THEN: Rejected with nothing appended

	f := newFixture(t, "49.99")
	ctx := context.Background()

	before, err := f.ledger.Count(ctx)
	require.NoError(t, err)

	_, err = f.coordinator.PlaceStockOrder(ctx, "A4 paper", 1000, ledger.NewDate(2025, time.January, 2))
	assert.ErrorIs(t, err, ledger.ErrInsufficientFunds)

	var fundsErr *ledger.InsufficientFundsError
	require.ErrorAs(t, err, &fundsErr)
	eq(t, "49.99", fundsErr.Available)
	eq(t, "50", fundsErr.Required)

	after, err := f.ledger.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after, "rejected order must not touch the ledger")
}

func TestPlaceStockOrder_FundsCheckedAsOfOrderDate(t *testing.T) {
	// GIVEN: Capital arriving Jan 1
	// WHEN: Backdating an order to Dec 31, 2024
	// THEN: The balance as of that date is zero, so the order is rejected

	f := newFixture(t, "50000")

	_, err := f.coordinator.PlaceStockOrder(context.Background(), "A4 paper", 100,
		ledger.NewDate(2024, time.December, 31))
	assert.ErrorIs(t, err, ledger.ErrInsufficientFunds)
}

func TestPlaceStockOrder_UnknownItem(t *testing.T) {
	f := newFixture(t, "50000")

	_, err := f.coordinator.PlaceStockOrder(context.Background(), "Unobtainium", 10, ledger.Today())
	assert.ErrorIs(t, err, ledger.ErrUnknownItem)
}

func TestPlaceStockOrder_NonPositiveQuantity(t *testing.T) {
	f := newFixture(t, "50000")

	for _, qty := range []int64{0, -10} {
		_, err := f.coordinator.PlaceStockOrder(context.Background(), "A4 paper", qty, ledger.Today())
		assert.ErrorIs(t, err, ledger.ErrInvalidQuantity)
	}
}

// =============================================================================
// SALE TESTS
// =============================================================================

func TestRecordSale_Succeeds(t *testing.T) {
	// GIVEN: 500 sheets in stock
	// WHEN: Selling 200
	// THEN: One sale entry per line, stock down, cash up

	f := newFixture(t, "50000")
	ctx := context.Background()
	jan2 := ledger.NewDate(2025, time.January, 2)
	jan10 := ledger.NewDate(2025, time.January, 10)

	_, err := f.coordinator.PlaceStockOrder(ctx, "A4 paper", 500, jan2)
	require.NoError(t, err)

	receipt, err := f.coordinator.RecordSale(ctx, []sales.Line{{ItemName: "A4 paper", Quantity: 200}}, jan10)
	require.NoError(t, err)

	require.Len(t, receipt.Lines, 1)
	eq(t, "10", receipt.Total) // 200 * 0.05
	assert.Equal(t, "2025-01-12", receipt.DeliveryDate.String())

	stock, err := f.valuation.StockOf(ctx, "A4 paper", jan10)
	require.NoError(t, err)
	assert.Equal(t, int64(300), stock)

	cash, err := f.valuation.CashBalance(ctx, jan10)
	require.NoError(t, err)
	eq(t, "49985", cash) // 50000 - 25 + 10
}

func TestRecordSale_InsufficientStockRejectsWholeSale(t *testing.T) {
	// GIVEN: Plenty of A4 but only 10 Cardstock
	// WHEN: Selling both, with the Cardstock line over stock
	// THEN: The whole sale fails and the good line is not applied either

	f := newFixture(t, "50000")
	ctx := context.Background()
	jan2 := ledger.NewDate(2025, time.January, 2)
	jan10 := ledger.NewDate(2025, time.January, 10)

	_, err := f.coordinator.PlaceStockOrder(ctx, "A4 paper", 500, jan2)
	require.NoError(t, err)
	_, err = f.coordinator.PlaceStockOrder(ctx, "Cardstock", 10, jan2)
	require.NoError(t, err)

	before, err := f.ledger.Count(ctx)
	require.NoError(t, err)

	_, err = f.coordinator.RecordSale(ctx, []sales.Line{
		{ItemName: "A4 paper", Quantity: 100},
		{ItemName: "Cardstock", Quantity: 11},
	}, jan10)
	assert.ErrorIs(t, err, ledger.ErrInsufficientStock)

	var stockErr *ledger.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Cardstock", stockErr.ItemName)
	assert.Equal(t, int64(10), stockErr.Available)
	assert.Equal(t, int64(11), stockErr.Requested)

	after, err := f.ledger.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after, "failed sale must leave the ledger untouched")

	stock, err := f.valuation.StockOf(ctx, "A4 paper", jan10)
	require.NoError(t, err)
	assert.Equal(t, int64(500), stock)
}

func TestRecordSale_ExactStockSellsOut(t *testing.T) {
	f := newFixture(t, "50000")
	ctx := context.Background()

	_, err := f.coordinator.PlaceStockOrder(ctx, "Cardstock", 10, ledger.NewDate(2025, time.January, 2))
	require.NoError(t, err)

	jan10 := ledger.NewDate(2025, time.January, 10)
	_, err = f.coordinator.RecordSale(ctx, []sales.Line{{ItemName: "Cardstock", Quantity: 10}}, jan10)
	require.NoError(t, err)

	stock, err := f.valuation.StockOf(ctx, "Cardstock", jan10)
	require.NoError(t, err)
	assert.Zero(t, stock)
}

func TestRecordSale_UnknownItemRejectsWholeSale(t *testing.T) {
	f := newFixture(t, "50000")
	ctx := context.Background()

	_, err := f.coordinator.PlaceStockOrder(ctx, "A4 paper", 500, ledger.NewDate(2025, time.January, 2))
	require.NoError(t, err)

	_, err = f.coordinator.RecordSale(ctx, []sales.Line{
		{ItemName: "A4 paper", Quantity: 100},
		{ItemName: "Unobtainium", Quantity: 1},
	}, ledger.NewDate(2025, time.January, 10))
	assert.ErrorIs(t, err, ledger.ErrUnknownItem)
}

func TestRecordSale_EmptyLines(t *testing.T) {
	f := newFixture(t, "50000")

	_, err := f.coordinator.RecordSale(context.Background(), nil, ledger.Today())
	assert.ErrorIs(t, err, ledger.ErrInvalidQuantity)
}

func TestRecordSale_DeliveryAggregatesOverAllLines(t *testing.T) {
	// Two 60-unit lines are each in the next-day band; combined 120 units
	// fall into the four-day band.

	f := newFixture(t, "50000")
	ctx := context.Background()
	jan2 := ledger.NewDate(2025, time.January, 2)

	_, err := f.coordinator.PlaceStockOrder(ctx, "A4 paper", 500, jan2)
	require.NoError(t, err)
	_, err = f.coordinator.PlaceStockOrder(ctx, "Cardstock", 500, jan2)
	require.NoError(t, err)

	receipt, err := f.coordinator.RecordSale(ctx, []sales.Line{
		{ItemName: "A4 paper", Quantity: 60},
		{ItemName: "Cardstock", Quantity: 60},
	}, ledger.NewDate(2025, time.January, 10))
	require.NoError(t, err)

	assert.Equal(t, "2025-01-14", receipt.DeliveryDate.String())
}

func TestRecordSale_ConcurrentSalesCannotOversell(t *testing.T) {
	// GIVEN: 100 units in stock and two concurrent 60-unit sales that fit
	//        individually but not together
	// WHEN: Both run at once
	// THEN: Exactly one commits; the other is rejected for stock, and the
	//       remaining stock reflects a single sale

	f := newFixture(t, "50000")
	ctx := context.Background()
	jan2 := ledger.NewDate(2025, time.January, 2)
	jan10 := ledger.NewDate(2025, time.January, 10)

	_, err := f.coordinator.PlaceStockOrder(ctx, "A4 paper", 100, jan2)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.coordinator.RecordSale(ctx,
				[]sales.Line{{ItemName: "A4 paper", Quantity: 60}}, jan10)
		}(i)
	}
	wg.Wait()

	var committed, rejected int
	for _, err := range errs {
		if err == nil {
			committed++
			continue
		}
		assert.ErrorIs(t, err, ledger.ErrInsufficientStock)
		rejected++
	}
	assert.Equal(t, 1, committed, "exactly one sale must pass the stock check")
	assert.Equal(t, 1, rejected)

	stock, err := f.valuation.StockOf(ctx, "A4 paper", jan10)
	require.NoError(t, err)
	assert.Equal(t, int64(40), stock)
}

func TestRecordSale_ProceedsFundLaterOrders(t *testing.T) {
	// A sale and a reorder chained on consecutive days: the reorder sees
	// cash including the sale proceeds.

	f := newFixture(t, "100")
	ctx := context.Background()

	_, err := f.coordinator.PlaceStockOrder(ctx, "A4 paper", 2000, ledger.NewDate(2025, time.January, 2))
	require.NoError(t, err) // 100.00 spent, cash now 0

	_, err = f.coordinator.RecordSale(ctx, []sales.Line{{ItemName: "A4 paper", Quantity: 1000}},
		ledger.NewDate(2025, time.January, 5))
	require.NoError(t, err) // +50.00

	receipt, err := f.coordinator.PlaceStockOrder(ctx, "A4 paper", 1000, ledger.NewDate(2025, time.January, 6))
	require.NoError(t, err)
	eq(t, "50", receipt.Cost)

	cash, err := f.valuation.CashBalance(ctx, ledger.NewDate(2025, time.January, 6))
	require.NoError(t, err)
	assert.True(t, cash.IsZero(), "got %s", cash)
}
