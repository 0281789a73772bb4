package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/mrp-api/internal/application/dto"
	"github.com/jhoicas/mrp-api/internal/domain"
	"github.com/jhoicas/mrp-api/internal/domain/entity"
	"github.com/jhoicas/mrp-api/internal/domain/repository"
)

// BOMUseCase gestión de listas de materiales.
type BOMUseCase struct {
	repo        repository.BOMRepository
	products    repository.ProductRepository
	workCenters repository.WorkCenterRepository
}

// NewBOMUseCase construye el caso de uso.
func NewBOMUseCase(repo repository.BOMRepository, products repository.ProductRepository, workCenters repository.WorkCenterRepository) *BOMUseCase {
	return &BOMUseCase{repo: repo, products: products, workCenters: workCenters}
}

// NextCode siguiente código libre "BOM-NNN".
func (uc *BOMUseCase) NextCode(ctx context.Context) (string, error) {
	n, err := uc.repo.MaxCodeNumber(ctx)
	if err != nil {
		return "", err
	}
	return entity.FormatBOMCode(n + 1), nil
}

// Create guarda la lista. Los productos (terminado y materias primas) que no existan se crean.
func (uc *BOMUseCase) Create(ctx context.Context, identity entity.Identity, in dto.CreateBOMRequest) (*dto.BOMResponse, error) {
	if !identity.IsSupervisor() {
		return nil, domain.ErrForbidden
	}
	productName := strings.TrimSpace(in.ProductName)
	if productName == "" {
		return nil, domain.NewValidationError("product_name", "el producto es obligatorio")
	}
	if err := uc.validateLines(ctx, in.Items, in.Operations); err != nil {
		return nil, err
	}

	code := strings.TrimSpace(in.Code)
	if code == "" {
		next, err := uc.NextCode(ctx)
		if err != nil {
			return nil, err
		}
		code = next
	} else if err := uc.checkCode(ctx, code, ""); err != nil {
		return nil, err
	}

	product, err := uc.ensureProduct(ctx, productName, entity.ProductTypeFinished, "")
	if err != nil {
		return nil, err
	}
	items, err := uc.buildItems(ctx, in.Items)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	bom := &entity.BillOfMaterials{
		ID:          uuid.New().String(),
		Code:        code,
		ProductID:   product.ID,
		ProductName: product.Name,
		Items:       items,
		Operations:  buildOperations(in.Operations),
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, bom); err != nil {
		return nil, err
	}
	out := toBOMResponse(bom)
	return &out, nil
}

// Get obtiene una lista por ID.
func (uc *BOMUseCase) Get(ctx context.Context, id string) (*dto.BOMResponse, error) {
	bom, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toBOMResponse(bom)
	return &out, nil
}

// List lista por código.
func (uc *BOMUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.BOMResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BOMResponse, 0, len(list))
	for _, b := range list {
		out = append(out, toBOMResponse(b))
	}
	return out, nil
}

// Update reemplaza los campos presentes. Items y Operations nil no cambian.
// Las órdenes ya creadas conservan su copia de componentes.
func (uc *BOMUseCase) Update(ctx context.Context, identity entity.Identity, id string, in dto.UpdateBOMRequest) (*dto.BOMResponse, error) {
	if !identity.IsSupervisor() {
		return nil, domain.ErrForbidden
	}
	bom, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Code != nil {
		code := strings.TrimSpace(*in.Code)
		if code == "" {
			return nil, domain.NewValidationError("code", "el código no puede quedar vacío")
		}
		if err := uc.checkCode(ctx, code, bom.ID); err != nil {
			return nil, err
		}
		bom.Code = code
	}
	if in.ProductName != nil {
		name := strings.TrimSpace(*in.ProductName)
		if name == "" {
			return nil, domain.NewValidationError("product_name", "el producto es obligatorio")
		}
		product, err := uc.ensureProduct(ctx, name, entity.ProductTypeFinished, "")
		if err != nil {
			return nil, err
		}
		bom.ProductID, bom.ProductName = product.ID, product.Name
	}
	if in.Items != nil || in.Operations != nil {
		items, ops := in.Items, in.Operations
		if items == nil {
			items = itemRequests(bom.Items)
		}
		if err := uc.validateLines(ctx, items, ops); err != nil {
			return nil, err
		}
		if in.Items != nil {
			built, err := uc.buildItems(ctx, in.Items)
			if err != nil {
				return nil, err
			}
			bom.Items = built
		}
		if in.Operations != nil {
			bom.Operations = buildOperations(in.Operations)
		}
	}
	if in.IsActive != nil {
		bom.IsActive = *in.IsActive
	}
	bom.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, bom); err != nil {
		return nil, err
	}
	out := toBOMResponse(bom)
	return &out, nil
}

// Delete elimina la lista.
func (uc *BOMUseCase) Delete(ctx context.Context, identity entity.Identity, id string) error {
	if !identity.IsSupervisor() {
		return domain.ErrForbidden
	}
	if _, err := uc.find(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *BOMUseCase) find(ctx context.Context, id string) (*entity.BillOfMaterials, error) {
	bom, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bom == nil {
		return nil, domain.NewNotFoundError("lista de materiales", id)
	}
	return bom, nil
}

// checkCode falla si otra lista (distinta de selfID) ya usa el código.
func (uc *BOMUseCase) checkCode(ctx context.Context, code, selfID string) error {
	other, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return err
	}
	if other != nil && other.ID != selfID {
		return domain.ErrDuplicate
	}
	return nil
}

func (uc *BOMUseCase) validateLines(ctx context.Context, items []dto.BOMItemRequest, ops []dto.BOMOperationRequest) error {
	if len(items) == 0 {
		return domain.NewValidationError("items", "la lista necesita al menos una materia prima")
	}
	for _, it := range items {
		if strings.TrimSpace(it.Name) == "" {
			return domain.NewValidationError("items", "cada materia prima necesita nombre")
		}
		if !it.Quantity.IsPositive() {
			return domain.NewValidationError("items", "la cantidad de "+it.Name+" debe ser positiva")
		}
	}
	for _, op := range ops {
		if strings.TrimSpace(op.Name) == "" {
			return domain.NewValidationError("operations", "cada operación necesita nombre")
		}
		if op.TimeRequired < 0 {
			return domain.NewValidationError("operations", "el tiempo de "+op.Name+" no puede ser negativo")
		}
		if op.WorkCenterID == "" {
			continue
		}
		wc, err := uc.workCenters.GetByID(ctx, op.WorkCenterID)
		if err != nil {
			return err
		}
		if wc == nil {
			return domain.NewNotFoundError("centro de trabajo", op.WorkCenterID)
		}
	}
	return nil
}

func (uc *BOMUseCase) buildItems(ctx context.Context, in []dto.BOMItemRequest) ([]entity.BOMItem, error) {
	items := make([]entity.BOMItem, 0, len(in))
	for _, it := range in {
		product, err := uc.ensureProduct(ctx, strings.TrimSpace(it.Name), entity.ProductTypeRaw, it.Unit)
		if err != nil {
			return nil, err
		}
		items = append(items, entity.BOMItem{
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  it.Quantity,
			Unit:      it.Unit,
		})
	}
	return items, nil
}

// ensureProduct busca el producto por nombre y lo crea si no existe.
func (uc *BOMUseCase) ensureProduct(ctx context.Context, name, productType, unit string) (*entity.Product, error) {
	product, err := uc.products.GetByName(ctx, name)
	if err != nil || product != nil {
		return product, err
	}
	now := time.Now()
	product = &entity.Product{
		ID:        uuid.New().String(),
		Name:      name,
		Type:      productType,
		Unit:      unit,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.products.Create(ctx, product); err != nil {
		// Otra petición lo creó entre la búsqueda y el alta.
		if errors.Is(err, domain.ErrDuplicate) {
			return uc.products.GetByName(ctx, name)
		}
		return nil, err
	}
	return product, nil
}

func buildOperations(in []dto.BOMOperationRequest) []entity.BOMOperation {
	ops := make([]entity.BOMOperation, 0, len(in))
	for _, op := range in {
		ops = append(ops, entity.BOMOperation{
			Name:         strings.TrimSpace(op.Name),
			WorkCenterID: op.WorkCenterID,
			TimeRequired: op.TimeRequired,
		})
	}
	return ops
}

func itemRequests(items []entity.BOMItem) []dto.BOMItemRequest {
	out := make([]dto.BOMItemRequest, 0, len(items))
	for _, it := range items {
		out = append(out, dto.BOMItemRequest{Name: it.Name, Quantity: it.Quantity, Unit: it.Unit})
	}
	return out
}

func toBOMResponse(b *entity.BillOfMaterials) dto.BOMResponse {
	items := make([]dto.BOMItemResponse, 0, len(b.Items))
	for _, it := range b.Items {
		items = append(items, dto.BOMItemResponse{ProductID: it.ProductID, Name: it.Name, Quantity: it.Quantity, Unit: it.Unit})
	}
	ops := make([]dto.BOMOperationResponse, 0, len(b.Operations))
	for _, op := range b.Operations {
		ops = append(ops, dto.BOMOperationResponse{Name: op.Name, WorkCenterID: op.WorkCenterID, TimeRequired: op.TimeRequired})
	}
	return dto.BOMResponse{
		ID:          b.ID,
		Code:        b.Code,
		ProductID:   b.ProductID,
		ProductName: b.ProductName,
		Items:       items,
		Operations:  ops,
		IsActive:    b.IsActive,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}
