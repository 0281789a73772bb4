package repository

import (
	"context"

	"github.com/jhoicas/mrp-api/internal/domain/entity"
)

// MOFilter filtros opcionales para listar órdenes de fabricación.
type MOFilter struct {
	Status     string
	AssigneeID string
	Limit      int
	Offset     int
}

// ManufacturingOrderRepository puerto de persistencia de órdenes de fabricación.
type ManufacturingOrderRepository interface {
	Create(ctx context.Context, mo *entity.ManufacturingOrder) error
	GetByID(ctx context.Context, id string) (*entity.ManufacturingOrder, error)
	// GetForUpdate obtiene la orden y la bloquea hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.ManufacturingOrder, error)
	List(ctx context.Context, filter MOFilter) ([]*entity.ManufacturingOrder, error)
	// Update persiste estado, fechas reales, notas y la lista de órdenes de trabajo.
	Update(ctx context.Context, mo *entity.ManufacturingOrder) error
}
