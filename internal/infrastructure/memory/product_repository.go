package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/mrp-api/internal/domain"
	"github.com/jhoicas/mrp-api/internal/domain/entity"
	"github.com/jhoicas/mrp-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo productos en memoria; el nombre es único sin distinguir mayúsculas.
type ProductRepo struct{ base }

// NewProductRepository construye el repositorio.
func NewProductRepository(s *Store) *ProductRepo { return &ProductRepo{base{s: s}} }

func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	defer r.lock()()
	for _, p := range r.s.data.products {
		if strings.EqualFold(p.Name, product.Name) {
			return domain.ErrDuplicate
		}
	}
	r.s.data.products[product.ID] = *product
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	defer r.lock()()
	p, ok := r.s.data.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *ProductRepo) GetByName(_ context.Context, name string) (*entity.Product, error) {
	defer r.lock()()
	for _, p := range r.s.data.products {
		if strings.EqualFold(p.Name, name) {
			return &p, nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) List(_ context.Context, productType string, limit, offset int) ([]*entity.Product, error) {
	defer r.lock()()
	out := []*entity.Product{}
	for _, p := range r.s.data.products {
		if productType != "" && p.Type != productType {
			continue
		}
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, limit, offset), nil
}
