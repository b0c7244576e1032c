/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Pre-built ledger states for demos and manual testing. Each scenario
	resets the store, persists the catalog, and replays a deterministic
	transaction history.

AVAILABLE SCENARIOS:

	blank:         catalog loaded, empty ledger
	opening-day:   opening capitalization plus initial stock orders
	first-quarter: opening day plus a quarter of sales and a reorder

NOTE:

	Scenarios reset the database. Only use in development/demo
	environments.

SEE ALSO:
  - handlers.go: shared handler dependencies
  - catalog/seed.go: deterministic sample inventory
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/beaverschoice/paperledger/ledger"
	"github.com/beaverschoice/paperledger/sales"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "blank",
		Name:        "Blank",
		Description: "Catalog loaded, empty ledger",
	},
	{
		ID:          "opening-day",
		Name:        "Opening Day",
		Description: "Opening capitalization of 50,000.00 plus initial stock orders on 2025-01-01",
	},
	{
		ID:          "first-quarter",
		Name:        "First Quarter",
		Description: "Opening day plus a quarter of sales and a supplier reorder",
	},
}

var (
	seedDate    = ledger.NewDate(2025, 1, 1)
	openingCash = decimal.NewFromInt(50000)
)

// =============================================================================
// SCENARIO HANDLERS
// =============================================================================

// ListScenarios returns the available demo scenarios.
// GET /api/scenarios
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the most recently loaded scenario id.
// GET /api/scenarios/current
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"scenario_id": h.currentScenario})
}

// LoadScenario resets the store and loads the named scenario.
// POST /api/scenarios/load
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	var err error
	switch req.ScenarioID {
	case "blank":
		err = h.loadBlank(r.Context())
	case "opening-day":
		err = h.loadOpeningDay(r.Context())
	case "first-quarter":
		err = h.loadFirstQuarter(r.Context())
	default:
		writeError(w, http.StatusNotFound, fmt.Sprintf("Unknown scenario %q", req.ScenarioID), nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load scenario", err)
		return
	}

	h.currentScenario = req.ScenarioID
	writeJSON(w, http.StatusOK, map[string]string{"scenario_id": req.ScenarioID, "status": "loaded"})
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

func (h *Handler) loadBlank(ctx context.Context) error {
	if err := h.Store.Reset(ctx); err != nil {
		return err
	}
	h.Valuation.Flush()
	return h.Store.ReplaceCatalog(ctx, h.Catalog.Items())
}

// loadOpeningDay capitalizes the company and books the initial stock
// orders recorded in the catalog's seed figures. Seeding appends directly
// through the ledger: the funds guard applies to operations, not to the
// historical opening position.
func (h *Handler) loadOpeningDay(ctx context.Context) error {
	if err := h.loadBlank(ctx); err != nil {
		return err
	}

	txs := []ledger.Transaction{{
		Kind:       ledger.KindSale,
		Amount:     openingCash,
		OccurredAt: seedDate,
	}}
	for _, it := range h.Catalog.Items() {
		if it.SeedStock <= 0 {
			continue
		}
		txs = append(txs, ledger.Transaction{
			ItemName:   it.Name,
			Kind:       ledger.KindStockOrder,
			Units:      it.SeedStock,
			Amount:     it.UnitPrice.Mul(decimal.NewFromInt(it.SeedStock)),
			OccurredAt: seedDate,
		})
	}

	if _, err := h.Ledger.AppendBatch(ctx, txs); err != nil {
		return err
	}
	h.Valuation.Invalidate(seedDate)
	return nil
}

// loadFirstQuarter replays a deterministic quarter of trading through the
// coordinator, so every entry passed the regular funds and stock guards.
func (h *Handler) loadFirstQuarter(ctx context.Context) error {
	if err := h.loadOpeningDay(ctx); err != nil {
		return err
	}

	items := h.Catalog.Items()
	if len(items) < 3 {
		return fmt.Errorf("first-quarter scenario needs at least 3 catalog items, have %d", len(items))
	}

	trades := []struct {
		date  ledger.Date
		lines []sales.Line
	}{
		{ledger.NewDate(2025, 1, 15), []sales.Line{
			{ItemName: items[0].Name, Quantity: items[0].SeedStock / 4},
			{ItemName: items[1].Name, Quantity: items[1].SeedStock / 5},
		}},
		{ledger.NewDate(2025, 2, 10), []sales.Line{
			{ItemName: items[2].Name, Quantity: items[2].SeedStock / 3},
		}},
		{ledger.NewDate(2025, 3, 5), []sales.Line{
			{ItemName: items[0].Name, Quantity: items[0].SeedStock / 4},
			{ItemName: items[2].Name, Quantity: items[2].SeedStock / 4},
		}},
	}
	for _, trade := range trades {
		if _, err := h.Coordinator.RecordSale(ctx, trade.lines, trade.date); err != nil {
			return fmt.Errorf("scenario sale on %s: %w", trade.date, err)
		}
	}

	if _, err := h.Coordinator.PlaceStockOrder(ctx, items[0].Name, 500, ledger.NewDate(2025, 2, 20)); err != nil {
		return fmt.Errorf("scenario reorder: %w", err)
	}
	return nil
}
