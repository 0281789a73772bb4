package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/mrp-api/internal/domain"
	"github.com/jhoicas/mrp-api/internal/domain/entity"
	"github.com/jhoicas/mrp-api/internal/domain/repository"
)

var _ repository.WorkCenterRepository = (*WorkCenterRepo)(nil)

// WorkCenterRepo centros de trabajo en memoria; el nombre es único.
type WorkCenterRepo struct{ base }

// NewWorkCenterRepository construye el repositorio.
func NewWorkCenterRepository(s *Store) *WorkCenterRepo { return &WorkCenterRepo{base{s: s}} }

func (r *WorkCenterRepo) Create(_ context.Context, wc *entity.WorkCenter) error {
	defer r.lock()()
	if r.nameTaken(wc.ID, wc.Name) {
		return domain.ErrDuplicate
	}
	r.s.data.workCenters[wc.ID] = *wc
	return nil
}

func (r *WorkCenterRepo) GetByID(_ context.Context, id string) (*entity.WorkCenter, error) {
	defer r.lock()()
	wc, ok := r.s.data.workCenters[id]
	if !ok {
		return nil, nil
	}
	return &wc, nil
}

func (r *WorkCenterRepo) GetByName(_ context.Context, name string) (*entity.WorkCenter, error) {
	defer r.lock()()
	for _, wc := range r.s.data.workCenters {
		if strings.EqualFold(wc.Name, name) {
			return &wc, nil
		}
	}
	return nil, nil
}

func (r *WorkCenterRepo) List(_ context.Context, limit, offset int) ([]*entity.WorkCenter, error) {
	defer r.lock()()
	out := make([]*entity.WorkCenter, 0, len(r.s.data.workCenters))
	for _, wc := range r.s.data.workCenters {
		wc := wc
		out = append(out, &wc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, limit, offset), nil
}

func (r *WorkCenterRepo) Update(_ context.Context, wc *entity.WorkCenter) error {
	defer r.lock()()
	if _, ok := r.s.data.workCenters[wc.ID]; !ok {
		return domain.NewNotFoundError("centro de trabajo", wc.ID)
	}
	if r.nameTaken(wc.ID, wc.Name) {
		return domain.ErrDuplicate
	}
	r.s.data.workCenters[wc.ID] = *wc
	return nil
}

func (r *WorkCenterRepo) nameTaken(id, name string) bool {
	for other, wc := range r.s.data.workCenters {
		if other != id && strings.EqualFold(wc.Name, name) {
			return true
		}
	}
	return false
}
