package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/mrp-api/internal/domain"
	"github.com/jhoicas/mrp-api/internal/domain/entity"
	"github.com/jhoicas/mrp-api/internal/domain/repository"
)

var _ repository.WorkOrderRepository = (*WorkOrderRepo)(nil)

// WorkOrderRepo órdenes de trabajo en memoria.
type WorkOrderRepo struct{ base }

// NewWorkOrderRepository construye el repositorio.
func NewWorkOrderRepository(s *Store) *WorkOrderRepo { return &WorkOrderRepo{base{s: s}} }

func cloneWO(wo entity.WorkOrder) *entity.WorkOrder {
	wo.StartTime = cloneTime(wo.StartTime)
	wo.EndTime = cloneTime(wo.EndTime)
	return &wo
}

func (r *WorkOrderRepo) Create(_ context.Context, wo *entity.WorkOrder) error {
	defer r.lock()()
	if _, ok := r.s.data.workOrders[wo.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.data.workOrders[wo.ID] = *cloneWO(*wo)
	return nil
}

func (r *WorkOrderRepo) GetByID(_ context.Context, id string) (*entity.WorkOrder, error) {
	defer r.lock()()
	wo, ok := r.s.data.workOrders[id]
	if !ok {
		return nil, nil
	}
	return cloneWO(wo), nil
}

func (r *WorkOrderRepo) ListByMO(_ context.Context, moID string) ([]*entity.WorkOrder, error) {
	defer r.lock()()
	return r.filter(func(wo entity.WorkOrder) bool { return wo.MOID == moID }), nil
}

func (r *WorkOrderRepo) ListByAssignee(_ context.Context, assigneeID string) ([]*entity.WorkOrder, error) {
	defer r.lock()()
	return r.filter(func(wo entity.WorkOrder) bool { return wo.AssigneeID == assigneeID }), nil
}

func (r *WorkOrderRepo) ListByWorkCenter(_ context.Context, workCenterID string) ([]*entity.WorkOrder, error) {
	defer r.lock()()
	return r.filter(func(wo entity.WorkOrder) bool { return wo.WorkCenterID == workCenterID }), nil
}

func (r *WorkOrderRepo) ListCompletedBetween(_ context.Context, assigneeID string, from, to time.Time) ([]*entity.WorkOrder, error) {
	defer r.lock()()
	return r.filter(func(wo entity.WorkOrder) bool {
		if wo.Status != entity.WOStatusCompleted || wo.EndTime == nil {
			return false
		}
		if assigneeID != "" && wo.AssigneeID != assigneeID {
			return false
		}
		return !wo.EndTime.Before(from) && wo.EndTime.Before(to)
	}), nil
}

func (r *WorkOrderRepo) List(_ context.Context, limit, offset int) ([]*entity.WorkOrder, error) {
	defer r.lock()()
	return paginate(r.filter(func(entity.WorkOrder) bool { return true }), limit, offset), nil
}

func (r *WorkOrderRepo) Update(_ context.Context, wo *entity.WorkOrder) error {
	defer r.lock()()
	if _, ok := r.s.data.workOrders[wo.ID]; !ok {
		return domain.NewNotFoundError("orden de trabajo", wo.ID)
	}
	r.s.data.workOrders[wo.ID] = *cloneWO(*wo)
	return nil
}

// filter ordena por fecha de creación ascendente.
func (r *WorkOrderRepo) filter(keep func(entity.WorkOrder) bool) []*entity.WorkOrder {
	out := []*entity.WorkOrder{}
	for _, wo := range r.s.data.workOrders {
		if keep(wo) {
			out = append(out, cloneWO(wo))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}
