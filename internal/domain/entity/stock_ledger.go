package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Prefijos de referencia del libro de existencias.
const (
	ReferencePrefixWorkOrder          = "WO-"
	ReferencePrefixManufacturingOrder = "MO-"
	ReferencePrefixAdjustment         = "ADJ-"
)

// LedgerEntry movimiento de existencias de un producto (append-only).
// Balance es el saldo acumulado del producto después de aplicar este movimiento.
type LedgerEntry struct {
	ID        string
	Seq       int64 // orden de inserción; desempata entradas con el mismo CreatedAt
	ProductID string
	Reference string // "WO-<id>", "MO-<id>", "ADJ-<id>"
	StockIn   decimal.Decimal
	StockOut  decimal.Decimal
	Balance   decimal.Decimal
	CreatedAt time.Time
}

// WorkOrderReference referencia de consumo de una orden de trabajo.
func WorkOrderReference(workOrderID string) string {
	return ReferencePrefixWorkOrder + workOrderID
}

// ManufacturingOrderReference referencia de producción de una orden de fabricación.
func ManufacturingOrderReference(orderID string) string {
	return ReferencePrefixManufacturingOrder + orderID
}

// AdjustmentReference referencia de un ajuste manual de inventario.
func AdjustmentReference(id string) string {
	return ReferencePrefixAdjustment + id
}

// LedgerSummary totales de movimientos de un producto.
type LedgerSummary struct {
	ProductID   string
	TotalIn     decimal.Decimal
	TotalOut    decimal.Decimal
	Balance     decimal.Decimal
	Entries     int
	LastMovedAt *time.Time
}
