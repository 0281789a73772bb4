package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/mrp-api/internal/domain/entity"
	"github.com/jhoicas/mrp-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo existencias por nombre de ítem.
type InventoryRepo struct{ base }

// NewInventoryRepository construye el repositorio.
func NewInventoryRepository(s *Store) *InventoryRepo { return &InventoryRepo{base{s: s}} }

func (r *InventoryRepo) GetByItemName(_ context.Context, itemName string) (*entity.InventoryRecord, error) {
	defer r.lock()()
	rec, ok := r.s.data.inventory[itemName]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (r *InventoryRepo) Adjust(_ context.Context, itemName, productID string, delta decimal.Decimal) (*entity.InventoryRecord, error) {
	defer r.lock()()
	now := time.Now()
	rec, ok := r.s.data.inventory[itemName]
	if !ok {
		rec = entity.InventoryRecord{
			ID:            uuid.New().String(),
			ItemName:      itemName,
			StockQuantity: decimal.Zero,
			CreatedAt:     now,
		}
	}
	if rec.ProductID == "" {
		rec.ProductID = productID
	}
	rec.StockQuantity = rec.StockQuantity.Add(delta)
	rec.UpdatedAt = now
	r.s.data.inventory[itemName] = rec
	return &rec, nil
}

func (r *InventoryRepo) List(_ context.Context, limit, offset int) ([]*entity.InventoryRecord, error) {
	defer r.lock()()
	out := make([]*entity.InventoryRecord, 0, len(r.s.data.inventory))
	for _, rec := range r.s.data.inventory {
		rec := rec
		out = append(out, &rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemName < out[j].ItemName })
	return paginate(out, limit, offset), nil
}
