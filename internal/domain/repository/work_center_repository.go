package repository

import (
	"context"

	"github.com/jhoicas/mrp-api/internal/domain/entity"
)

// WorkCenterRepository puerto de persistencia de centros de trabajo.
type WorkCenterRepository interface {
	Create(ctx context.Context, wc *entity.WorkCenter) error
	GetByID(ctx context.Context, id string) (*entity.WorkCenter, error)
	GetByName(ctx context.Context, name string) (*entity.WorkCenter, error)
	List(ctx context.Context, limit, offset int) ([]*entity.WorkCenter, error)
	Update(ctx context.Context, wc *entity.WorkCenter) error
}
