/*
handlers.go - HTTP API handlers for the ledger and quoting engine

PURPOSE:
  Exposes the engine via REST. Handles HTTP request/response and JSON
  serialization, parses YYYY-MM-DD date strings at the boundary, and
  delegates to the domain packages.

ENDPOINTS:
  Quoting:
    POST   /api/quotes              Price a multi-item request (read-only)

  Orders & sales:
    POST   /api/orders              Place a supplier stock order
    POST   /api/sales               Record a multi-line sale

  Derived views:
    GET    /api/stock               All items with positive stock
    GET    /api/stock?item=X        Stock level for one item
    GET    /api/cash                Cash balance
    GET    /api/reports/financial   Financial snapshot

  Reference data:
    GET    /api/catalog             List catalog items
    GET    /api/transactions        Recent ledger entries (admin view)
    GET    /api/delivery-estimate   Advisory delivery date

  Scenarios:
    GET    /api/scenarios           List demo scenarios
    POST   /api/scenarios/load      Load a demo scenario (resets data)

ERROR HANDLING:
  Typed domain errors map to HTTP status codes:
  - 400: invalid quantity, malformed date or body
  - 404: item not in catalog
  - 409: insufficient funds / insufficient stock
  - 500: store failures
  Rejected operations append nothing; there is no partial state to report.

SEE ALSO:
  - dto.go: request/response shapes
  - server.go: router setup and middleware
  - scenarios.go: demo data loaders
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strconv"

	"github.com/beaverschoice/paperledger/catalog"
	"github.com/beaverschoice/paperledger/ledger"
	"github.com/beaverschoice/paperledger/sales"
	"github.com/beaverschoice/paperledger/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store       *sqlite.Store
	Catalog     *catalog.Catalog
	Ledger      *ledger.Ledger
	Valuation   *ledger.Valuation
	Calculator  *sales.Calculator
	Coordinator *sales.Coordinator
	Reporter    *sales.Reporter

	// Track currently loaded scenario
	currentScenario string
}

// NewHandler wires the engine on top of the given store and catalog.
func NewHandler(store *sqlite.Store, cat *catalog.Catalog) *Handler {
	l := ledger.New(store)
	v := ledger.NewValuation(store)
	return &Handler{
		Store:       store,
		Catalog:     cat,
		Ledger:      l,
		Valuation:   v,
		Calculator:  sales.NewCalculator(cat),
		Coordinator: sales.NewCoordinator(l, v, cat),
		Reporter:    sales.NewReporter(v, cat),
	}
}

// =============================================================================
// QUOTE HANDLERS
// =============================================================================

// CalculateQuote prices a multi-item request. No ledger mutation.
// POST /api/quotes
func (h *Handler) CalculateQuote(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	asOf, err := ledger.ParseDate(req.AsOf)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid as_of date (use YYYY-MM-DD)", err)
		return
	}

	quote, err := h.Calculator.Quote(toLines(req.Lines), asOf)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toQuoteDTO(quote))
}

// =============================================================================
// ORDER & SALE HANDLERS
// =============================================================================

// PlaceStockOrder places a supplier reorder.
// POST /api/orders
func (h *Handler) PlaceStockOrder(w http.ResponseWriter, r *http.Request) {
	var req StockOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	asOf, err := ledger.ParseDate(req.AsOf)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid as_of date (use YYYY-MM-DD)", err)
		return
	}

	receipt, err := h.Coordinator.PlaceStockOrder(r.Context(), req.ItemName, req.Quantity, asOf)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, OrderReceiptDTO{
		TransactionID: int64(receipt.TransactionID),
		ItemName:      receipt.ItemName,
		Quantity:      receipt.Quantity,
		Cost:          receipt.Cost.StringFixed(2),
		DeliveryDate:  receipt.DeliveryDate.String(),
	})
}

// RecordSale commits a multi-line sale, all-or-nothing.
// POST /api/sales
func (h *Handler) RecordSale(w http.ResponseWriter, r *http.Request) {
	var req SaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	asOf, err := ledger.ParseDate(req.AsOf)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid as_of date (use YYYY-MM-DD)", err)
		return
	}

	receipt, err := h.Coordinator.RecordSale(r.Context(), toLines(req.Lines), asOf)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	dto := SaleReceiptDTO{
		Total:        receipt.Total.StringFixed(2),
		DeliveryDate: receipt.DeliveryDate.String(),
	}
	for _, line := range receipt.Lines {
		dto.Lines = append(dto.Lines, SoldLineDTO{
			TransactionID: int64(line.TransactionID),
			ItemName:      line.ItemName,
			Quantity:      line.Quantity,
			Price:         line.Price.StringFixed(2),
		})
	}
	writeJSON(w, http.StatusCreated, dto)
}

// =============================================================================
// DERIVED VIEW HANDLERS
// =============================================================================

// GetStock returns all positive stock levels, or one item's level when the
// item query parameter is present. Items not in the catalog are a 404, not
// a zero stock figure.
// GET /api/stock?as_of=YYYY-MM-DD[&item=name]
func (h *Handler) GetStock(w http.ResponseWriter, r *http.Request) {
	asOf, ok := h.asOfParam(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	if item := r.URL.Query().Get("item"); item != "" {
		it, found := h.Catalog.Lookup(item)
		if !found {
			writeDomainError(w, &ledger.UnknownItemError{ItemName: item})
			return
		}
		stock, err := h.Valuation.StockOf(ctx, item, asOf)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to compute stock", err)
			return
		}
		writeJSON(w, http.StatusOK, StockLevelDTO{
			ItemName:      item,
			Stock:         stock,
			MinStockLevel: it.MinStockLevel,
			AsOf:          asOf.String(),
		})
		return
	}

	levels, err := h.Valuation.AllPositiveStock(ctx, asOf)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to compute stock", err)
		return
	}

	names := make([]string, 0, len(levels))
	for name := range levels {
		names = append(names, name)
	}
	sort.Strings(names)

	dtos := make([]StockLevelDTO, 0, len(names))
	for _, name := range names {
		it, _ := h.Catalog.Lookup(name)
		dtos = append(dtos, StockLevelDTO{
			ItemName:      name,
			Stock:         levels[name],
			MinStockLevel: it.MinStockLevel,
			AsOf:          asOf.String(),
		})
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetCash returns the cash balance as of a date.
// GET /api/cash?as_of=YYYY-MM-DD
func (h *Handler) GetCash(w http.ResponseWriter, r *http.Request) {
	asOf, ok := h.asOfParam(w, r)
	if !ok {
		return
	}

	balance, err := h.Valuation.CashBalance(r.Context(), asOf)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to compute cash balance", err)
		return
	}
	writeJSON(w, http.StatusOK, CashBalanceDTO{Balance: balance.StringFixed(2), AsOf: asOf.String()})
}

// GetFinancialReport returns the financial snapshot as of a date.
// GET /api/reports/financial?as_of=YYYY-MM-DD
func (h *Handler) GetFinancialReport(w http.ResponseWriter, r *http.Request) {
	asOf, ok := h.asOfParam(w, r)
	if !ok {
		return
	}

	report, err := h.Reporter.FinancialReport(r.Context(), asOf)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to build report", err)
		return
	}
	writeJSON(w, http.StatusOK, toReportDTO(report))
}

// =============================================================================
// REFERENCE DATA HANDLERS
// =============================================================================

// ListCatalog returns all catalog items.
// GET /api/catalog
func (h *Handler) ListCatalog(w http.ResponseWriter, r *http.Request) {
	items := h.Catalog.Items()
	dtos := make([]CatalogItemDTO, len(items))
	for i, it := range items {
		dtos[i] = CatalogItemDTO{
			ItemName:      it.Name,
			Category:      it.Category,
			UnitPrice:     it.UnitPrice.StringFixed(2),
			MinStockLevel: it.MinStockLevel,
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ListTransactions returns the newest ledger entries.
// GET /api/transactions?limit=N
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "Invalid limit", err)
			return
		}
		limit = n
	}

	txs, err := h.Store.Recent(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list transactions", err)
		return
	}

	dtos := make([]TransactionDTO, len(txs))
	for i, tx := range txs {
		dtos[i] = toTransactionDTO(tx)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetDeliveryEstimate returns the advisory delivery date for a quantity.
// The date parameter is forgiving: an unparseable value falls back to
// today rather than failing, since estimates are advisory.
// GET /api/delivery-estimate?date=YYYY-MM-DD&quantity=N
func (h *Handler) GetDeliveryEstimate(w http.ResponseWriter, r *http.Request) {
	qty, err := strconv.ParseInt(r.URL.Query().Get("quantity"), 10, 64)
	if err != nil || qty <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid quantity", err)
		return
	}

	delivery := sales.EstimateDelivery(r.URL.Query().Get("date"), qty)
	writeJSON(w, http.StatusOK, DeliveryEstimateDTO{
		Quantity:     qty,
		DeliveryDate: delivery.String(),
	})
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) asOfParam(w http.ResponseWriter, r *http.Request) (ledger.Date, bool) {
	s := r.URL.Query().Get("as_of")
	if s == "" {
		return ledger.Today(), true
	}
	asOf, err := ledger.ParseDate(s)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid as_of date (use YYYY-MM-DD)", err)
		return ledger.Date{}, false
	}
	return asOf, true
}

// writeDomainError maps typed domain errors to HTTP status codes.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case ledger.IsNotFound(err):
		writeError(w, http.StatusNotFound, "Item not in catalog", err)
	case errors.Is(err, ledger.ErrInsufficientFunds), errors.Is(err, ledger.ErrInsufficientStock):
		writeError(w, http.StatusConflict, "Operation rejected", err)
	case ledger.IsClientError(err):
		writeError(w, http.StatusBadRequest, "Invalid request", err)
	default:
		writeError(w, http.StatusInternalServerError, "Internal error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
