package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustInventoryRequest body para PUT /api/inventory (ajuste manual, crea el ítem si no existe).
type AdjustInventoryRequest struct {
	ItemName       string          `json:"item_name" validate:"required"`
	QuantityChange decimal.Decimal `json:"quantity_change" validate:"required"`
}

// InventoryResponse existencia de un ítem.
type InventoryResponse struct {
	ID            string          `json:"id"`
	ItemName      string          `json:"item_name"`
	ProductID     string          `json:"product_id,omitempty"`
	StockQuantity decimal.Decimal `json:"stock_quantity"`
	Location      string          `json:"location,omitempty"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// LedgerEntryResponse movimiento del libro de existencias.
type LedgerEntryResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Reference string          `json:"reference"`
	StockIn   decimal.Decimal `json:"stock_in"`
	StockOut  decimal.Decimal `json:"stock_out"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
}

// LedgerSummaryResponse totales del libro para un producto.
type LedgerSummaryResponse struct {
	ProductID   string          `json:"product_id"`
	TotalIn     decimal.Decimal `json:"total_in"`
	TotalOut    decimal.Decimal `json:"total_out"`
	Balance     decimal.Decimal `json:"balance"`
	Entries     int             `json:"entries"`
	LastMovedAt *time.Time      `json:"last_moved_at,omitempty"`
}

// LedgerResponse respuesta de GET /api/stock-ledger/:productId.
type LedgerResponse struct {
	ProductID string                `json:"product_id"`
	Entries   []LedgerEntryResponse `json:"entries"`
	Summary   LedgerSummaryResponse `json:"summary"`
}
