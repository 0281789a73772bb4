package repository

import (
	"context"
	"time"

	"github.com/jhoicas/mrp-api/internal/domain/entity"
)

// WorkOrderRepository puerto de persistencia de órdenes de trabajo.
type WorkOrderRepository interface {
	Create(ctx context.Context, wo *entity.WorkOrder) error
	GetByID(ctx context.Context, id string) (*entity.WorkOrder, error)
	// ListByMO devuelve las órdenes de trabajo de una orden de fabricación, por fecha de creación.
	ListByMO(ctx context.Context, moID string) ([]*entity.WorkOrder, error)
	ListByAssignee(ctx context.Context, assigneeID string) ([]*entity.WorkOrder, error)
	ListByWorkCenter(ctx context.Context, workCenterID string) ([]*entity.WorkOrder, error)
	// ListCompletedBetween filtra por EndTime en [from, to); assigneeID vacío = todos.
	ListCompletedBetween(ctx context.Context, assigneeID string, from, to time.Time) ([]*entity.WorkOrder, error)
	List(ctx context.Context, limit, offset int) ([]*entity.WorkOrder, error)
	Update(ctx context.Context, wo *entity.WorkOrder) error
}
