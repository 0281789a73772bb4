package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/mrp-api/internal/application/dto"
	"github.com/jhoicas/mrp-api/internal/domain"
	"github.com/jhoicas/mrp-api/internal/domain/entity"
	"github.com/jhoicas/mrp-api/internal/domain/repository"
)

// ProductUseCase alta y listado de productos. Las existencias se manejan vía inventario y libro.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un producto (raw | finished) con nombre único.
func (uc *ProductUseCase) Create(ctx context.Context, identity entity.Identity, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if !identity.IsSupervisor() {
		return nil, domain.ErrForbidden
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "el nombre es obligatorio")
	}
	if !entity.ValidProductType(in.Type) {
		return nil, domain.NewValidationError("type", "el tipo debe ser raw o finished")
	}
	if in.Price.IsNegative() {
		return nil, domain.NewValidationError("price", "el precio no puede ser negativo")
	}
	existing, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        name,
		Type:        in.Type,
		Unit:        strings.TrimSpace(in.Unit),
		Description: in.Description,
		Price:       in.Price,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	out := toProductResponse(product)
	return &out, nil
}

// List lista productos, opcionalmente por tipo.
func (uc *ProductUseCase) List(ctx context.Context, productType string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	if productType != "" && !entity.ValidProductType(productType) {
		return nil, domain.NewValidationError("type", "el tipo debe ser raw o finished")
	}
	page.DefaultPage()
	list, err := uc.repo.List(ctx, productType, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Type:        p.Type,
		Unit:        p.Unit,
		Description: p.Description,
		Price:       p.Price,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
