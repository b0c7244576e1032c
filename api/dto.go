/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON structures for API communication, decoupling the internal domain
  model from the external contract. Monetary values are rendered as fixed
  two-decimal strings here - and only here; internal arithmetic stays at
  full precision.

NAMING CONVENTION:
  - *DTO: response types returned to clients
  - *Request: request body types from clients
*/
package api

import (
	"github.com/beaverschoice/paperledger/ledger"
	"github.com/beaverschoice/paperledger/sales"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// LineDTO is one (item, quantity) pair in a quote or sale request.
type LineDTO struct {
	ItemName string `json:"item_name"`
	Quantity int64  `json:"quantity"`
}

// QuoteRequest asks for pricing of a multi-item request.
type QuoteRequest struct {
	Lines []LineDTO `json:"lines"`
	AsOf  string    `json:"as_of"`
}

// QuoteDTO is the full pricing breakdown returned to clients.
type QuoteDTO struct {
	AsOf           string           `json:"as_of"`
	Lines          []QuotedLineDTO  `json:"lines"`
	Unavailable    []string         `json:"unavailable_items,omitempty"`
	Subtotal       string           `json:"subtotal"`
	DiscountRate   string           `json:"discount_rate"`
	DiscountAmount string           `json:"discount_amount"`
	Total          string           `json:"total"`
}

type QuotedLineDTO struct {
	ItemName  string `json:"item_name"`
	Quantity  int64  `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	LineTotal string `json:"line_total"`
}

// StockOrderRequest places a supplier reorder.
type StockOrderRequest struct {
	ItemName string `json:"item_name"`
	Quantity int64  `json:"quantity"`
	AsOf     string `json:"as_of"`
}

// OrderReceiptDTO confirms a committed stock order.
type OrderReceiptDTO struct {
	TransactionID int64  `json:"transaction_id"`
	ItemName      string `json:"item_name"`
	Quantity      int64  `json:"quantity"`
	Cost          string `json:"cost"`
	DeliveryDate  string `json:"delivery_date"`
}

// SaleRequest commits a multi-line sale.
type SaleRequest struct {
	Lines []LineDTO `json:"lines"`
	AsOf  string    `json:"as_of"`
}

// SaleReceiptDTO confirms a committed sale.
type SaleReceiptDTO struct {
	Lines        []SoldLineDTO `json:"lines"`
	Total        string        `json:"total"`
	DeliveryDate string        `json:"delivery_date"`
}

type SoldLineDTO struct {
	TransactionID int64  `json:"transaction_id"`
	ItemName      string `json:"item_name"`
	Quantity      int64  `json:"quantity"`
	Price         string `json:"price"`
}

// StockLevelDTO is the derived stock of one item as of a date.
type StockLevelDTO struct {
	ItemName      string `json:"item_name"`
	Stock         int64  `json:"stock"`
	MinStockLevel int64  `json:"min_stock_level"`
	AsOf          string `json:"as_of"`
}

// CashBalanceDTO is the derived cash position as of a date.
type CashBalanceDTO struct {
	Balance string `json:"balance"`
	AsOf    string `json:"as_of"`
}

// CatalogItemDTO is one catalog entry.
type CatalogItemDTO struct {
	ItemName      string `json:"item_name"`
	Category      string `json:"category"`
	UnitPrice     string `json:"unit_price"`
	MinStockLevel int64  `json:"min_stock_level"`
}

// TransactionDTO is one ledger entry (admin view).
type TransactionDTO struct {
	ID         int64  `json:"id"`
	ItemName   string `json:"item_name,omitempty"`
	Kind       string `json:"kind"`
	Units      int64  `json:"units,omitempty"`
	Amount     string `json:"amount"`
	OccurredAt string `json:"occurred_at"`
}

// ReportDTO is the financial snapshot as of a date.
type ReportDTO struct {
	AsOf           string             `json:"as_of"`
	CashBalance    string             `json:"cash_balance"`
	InventoryValue string             `json:"inventory_value"`
	TotalAssets    string             `json:"total_assets"`
	Inventory      []ItemValuationDTO `json:"inventory_summary"`
	TopSellers     []TopSellerDTO     `json:"top_selling_products"`
}

type ItemValuationDTO struct {
	ItemName  string `json:"item_name"`
	Stock     int64  `json:"stock"`
	UnitPrice string `json:"unit_price"`
	Value     string `json:"value"`
}

type TopSellerDTO struct {
	ItemName string `json:"item_name"`
	Units    int64  `json:"total_units"`
	Revenue  string `json:"total_revenue"`
}

// DeliveryEstimateDTO is the advisory delivery estimate.
type DeliveryEstimateDTO struct {
	Quantity     int64  `json:"quantity"`
	DeliveryDate string `json:"delivery_date"`
}

// ScenarioDTO describes a loadable demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// LoadScenarioRequest selects the scenario to load.
type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toQuoteDTO(q *sales.Quote) QuoteDTO {
	dto := QuoteDTO{
		AsOf:           q.AsOf.String(),
		Unavailable:    q.Unavailable,
		Subtotal:       q.Subtotal.StringFixed(2),
		DiscountRate:   q.DiscountRate.StringFixed(2),
		DiscountAmount: q.DiscountAmount.StringFixed(2),
		Total:          q.Total.StringFixed(2),
	}
	for _, line := range q.Lines {
		dto.Lines = append(dto.Lines, QuotedLineDTO{
			ItemName:  line.ItemName,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice.StringFixed(2),
			LineTotal: line.LineTotal.StringFixed(2),
		})
	}
	return dto
}

func toTransactionDTO(tx ledger.Transaction) TransactionDTO {
	return TransactionDTO{
		ID:         int64(tx.ID),
		ItemName:   tx.ItemName,
		Kind:       string(tx.Kind),
		Units:      tx.Units,
		Amount:     tx.Amount.StringFixed(2),
		OccurredAt: tx.OccurredAt.String(),
	}
}

func toReportDTO(rep *sales.Report) ReportDTO {
	dto := ReportDTO{
		AsOf:           rep.AsOf.String(),
		CashBalance:    rep.CashBalance.StringFixed(2),
		InventoryValue: rep.InventoryValue.StringFixed(2),
		TotalAssets:    rep.TotalAssets.StringFixed(2),
	}
	for _, iv := range rep.Inventory {
		dto.Inventory = append(dto.Inventory, ItemValuationDTO{
			ItemName:  iv.ItemName,
			Stock:     iv.Stock,
			UnitPrice: iv.UnitPrice.StringFixed(2),
			Value:     iv.Value.StringFixed(2),
		})
	}
	for _, ts := range rep.TopSellers {
		dto.TopSellers = append(dto.TopSellers, TopSellerDTO{
			ItemName: ts.ItemName,
			Units:    ts.Units,
			Revenue:  ts.Revenue.StringFixed(2),
		})
	}
	return dto
}

func toLines(dtos []LineDTO) []sales.Line {
	lines := make([]sales.Line, len(dtos))
	for i, d := range dtos {
		lines[i] = sales.Line{ItemName: d.ItemName, Quantity: d.Quantity}
	}
	return lines
}
