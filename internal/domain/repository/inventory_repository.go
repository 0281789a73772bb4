package repository

import (
	"context"

	"github.com/jhoicas/mrp-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// InventoryRepository puerto de existencias por nombre de ítem.
type InventoryRepository interface {
	GetByItemName(ctx context.Context, itemName string) (*entity.InventoryRecord, error)
	// Adjust suma delta (puede ser negativo) a la existencia del ítem y crea la fila si no existe.
	// Es atómico respecto a otros Adjust del mismo ítem; no aplica piso en cero.
	Adjust(ctx context.Context, itemName, productID string, delta decimal.Decimal) (*entity.InventoryRecord, error)
	List(ctx context.Context, limit, offset int) ([]*entity.InventoryRecord, error)
}
