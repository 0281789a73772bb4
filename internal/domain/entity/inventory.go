package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryRecord existencia actual de un ítem, una fila por nombre de ítem.
// StockQuantity puede quedar negativa: el consumo no tiene piso en cero.
type InventoryRecord struct {
	ID            string
	ItemName      string
	ProductID     string // vacío si el ítem no corresponde a un producto registrado
	StockQuantity decimal.Decimal
	Location      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
