package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/mrp-api/internal/domain"
	"github.com/jhoicas/mrp-api/internal/domain/entity"
	"github.com/jhoicas/mrp-api/internal/domain/repository"
)

var _ repository.ManufacturingOrderRepository = (*ManufacturingOrderRepo)(nil)

// ManufacturingOrderRepo órdenes de fabricación en memoria.
type ManufacturingOrderRepo struct{ base }

// NewManufacturingOrderRepository construye el repositorio.
func NewManufacturingOrderRepository(s *Store) *ManufacturingOrderRepo {
	return &ManufacturingOrderRepo{base{s: s}}
}

func cloneMO(mo entity.ManufacturingOrder) *entity.ManufacturingOrder {
	mo.RequiredComponents = append([]entity.Component(nil), mo.RequiredComponents...)
	mo.WorkOrderIDs = append([]string{}, mo.WorkOrderIDs...)
	mo.ActualStart = cloneTime(mo.ActualStart)
	mo.ActualEnd = cloneTime(mo.ActualEnd)
	return &mo
}

func (r *ManufacturingOrderRepo) Create(_ context.Context, mo *entity.ManufacturingOrder) error {
	defer r.lock()()
	if _, ok := r.s.data.orders[mo.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.data.orders[mo.ID] = *cloneMO(*mo)
	return nil
}

func (r *ManufacturingOrderRepo) GetByID(_ context.Context, id string) (*entity.ManufacturingOrder, error) {
	defer r.lock()()
	mo, ok := r.s.data.orders[id]
	if !ok {
		return nil, nil
	}
	return cloneMO(mo), nil
}

// GetForUpdate equivale a GetByID: dentro de Run el Store ya está bloqueado.
func (r *ManufacturingOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.ManufacturingOrder, error) {
	return r.GetByID(ctx, id)
}

func (r *ManufacturingOrderRepo) List(_ context.Context, filter repository.MOFilter) ([]*entity.ManufacturingOrder, error) {
	defer r.lock()()
	out := []*entity.ManufacturingOrder{}
	for _, mo := range r.s.data.orders {
		if filter.Status != "" && string(mo.Status) != filter.Status {
			continue
		}
		if filter.AssigneeID != "" && mo.AssigneeID != filter.AssigneeID {
			continue
		}
		out = append(out, cloneMO(mo))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return paginate(out, filter.Limit, filter.Offset), nil
}

func (r *ManufacturingOrderRepo) Update(_ context.Context, mo *entity.ManufacturingOrder) error {
	defer r.lock()()
	if _, ok := r.s.data.orders[mo.ID]; !ok {
		return domain.NewNotFoundError("orden de fabricación", mo.ID)
	}
	r.s.data.orders[mo.ID] = *cloneMO(*mo)
	return nil
}
