package repository

import (
	"context"

	"github.com/jhoicas/mrp-api/internal/domain/entity"
)

// BOMRepository puerto de persistencia de listas de materiales.
type BOMRepository interface {
	Create(ctx context.Context, bom *entity.BillOfMaterials) error
	GetByID(ctx context.Context, id string) (*entity.BillOfMaterials, error)
	GetByCode(ctx context.Context, code string) (*entity.BillOfMaterials, error)
	// MaxCodeNumber devuelve el mayor N de los códigos "BOM-N" existentes (0 si no hay).
	MaxCodeNumber(ctx context.Context) (int, error)
	List(ctx context.Context, limit, offset int) ([]*entity.BillOfMaterials, error)
	Update(ctx context.Context, bom *entity.BillOfMaterials) error
	Delete(ctx context.Context, id string) error
}
