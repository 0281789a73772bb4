package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/mrp-api/internal/domain"
	"github.com/jhoicas/mrp-api/internal/domain/entity"
	"github.com/jhoicas/mrp-api/internal/domain/repository"
)

var _ repository.BOMRepository = (*BOMRepo)(nil)

// BOMRepo listas de materiales en memoria.
type BOMRepo struct{ base }

// NewBOMRepository construye el repositorio.
func NewBOMRepository(s *Store) *BOMRepo { return &BOMRepo{base{s: s}} }

func cloneBOM(b entity.BillOfMaterials) *entity.BillOfMaterials {
	b.Items = append([]entity.BOMItem(nil), b.Items...)
	b.Operations = append([]entity.BOMOperation(nil), b.Operations...)
	return &b
}

func (r *BOMRepo) Create(_ context.Context, bom *entity.BillOfMaterials) error {
	defer r.lock()()
	for _, b := range r.s.data.boms {
		if b.Code == bom.Code {
			return domain.ErrDuplicate
		}
	}
	r.s.data.boms[bom.ID] = *cloneBOM(*bom)
	return nil
}

func (r *BOMRepo) GetByID(_ context.Context, id string) (*entity.BillOfMaterials, error) {
	defer r.lock()()
	b, ok := r.s.data.boms[id]
	if !ok {
		return nil, nil
	}
	return cloneBOM(b), nil
}

func (r *BOMRepo) GetByCode(_ context.Context, code string) (*entity.BillOfMaterials, error) {
	defer r.lock()()
	for _, b := range r.s.data.boms {
		if b.Code == code {
			return cloneBOM(b), nil
		}
	}
	return nil, nil
}

func (r *BOMRepo) MaxCodeNumber(context.Context) (int, error) {
	defer r.lock()()
	max := 0
	for _, b := range r.s.data.boms {
		if n, ok := entity.ParseBOMCode(b.Code); ok && n > max {
			max = n
		}
	}
	return max, nil
}

func (r *BOMRepo) List(_ context.Context, limit, offset int) ([]*entity.BillOfMaterials, error) {
	defer r.lock()()
	out := make([]*entity.BillOfMaterials, 0, len(r.s.data.boms))
	for _, b := range r.s.data.boms {
		out = append(out, cloneBOM(b))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return paginate(out, limit, offset), nil
}

func (r *BOMRepo) Update(_ context.Context, bom *entity.BillOfMaterials) error {
	defer r.lock()()
	if _, ok := r.s.data.boms[bom.ID]; !ok {
		return domain.NewNotFoundError("lista de materiales", bom.ID)
	}
	r.s.data.boms[bom.ID] = *cloneBOM(*bom)
	return nil
}

func (r *BOMRepo) Delete(_ context.Context, id string) error {
	defer r.lock()()
	if _, ok := r.s.data.boms[id]; !ok {
		return domain.NewNotFoundError("lista de materiales", id)
	}
	delete(r.s.data.boms, id)
	return nil
}
