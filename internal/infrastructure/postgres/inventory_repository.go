package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/mrp-api/internal/domain/entity"
	"github.com/jhoicas/mrp-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo existencias por nombre de ítem sobre PostgreSQL.
type InventoryRepo struct {
	q Querier
}

func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

const inventoryColumns = `id, item_name, COALESCE(product_id, ''), stock_quantity, location, created_at, updated_at`

func scanInventory(row pgx.Row) (*entity.InventoryRecord, error) {
	var rec entity.InventoryRecord
	if err := row.Scan(&rec.ID, &rec.ItemName, &rec.ProductID, &rec.StockQuantity, &rec.Location, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *InventoryRepo) GetByItemName(ctx context.Context, itemName string) (*entity.InventoryRecord, error) {
	rec, err := scanInventory(r.q.QueryRow(ctx, `SELECT `+inventoryColumns+` FROM inventory WHERE item_name = $1`, itemName))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("get inventory", err)
	}
	return rec, nil
}

// Adjust suma delta en una sola sentencia: el UPSERT toma el lock de fila, así que dos
// ajustes concurrentes del mismo ítem no pierden actualizaciones. Sin piso en cero.
func (r *InventoryRepo) Adjust(ctx context.Context, itemName, productID string, delta decimal.Decimal) (*entity.InventoryRecord, error) {
	now := time.Now().UTC()
	rec, err := scanInventory(r.q.QueryRow(ctx, `
		INSERT INTO inventory (id, item_name, product_id, stock_quantity, location, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, '', $5, $5)
		ON CONFLICT (item_name) DO UPDATE SET
			stock_quantity = inventory.stock_quantity + EXCLUDED.stock_quantity,
			product_id     = COALESCE(inventory.product_id, EXCLUDED.product_id),
			updated_at     = EXCLUDED.updated_at
		RETURNING `+inventoryColumns,
		uuid.New().String(), itemName, productID, delta, now,
	))
	if err != nil {
		return nil, storeErr(fmt.Sprintf("adjust inventory %q", itemName), err)
	}
	return rec, nil
}

func (r *InventoryRepo) List(ctx context.Context, limit, offset int) ([]*entity.InventoryRecord, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+inventoryColumns+` FROM inventory
		ORDER BY item_name
		LIMIT $1 OFFSET $2`, limitArg(limit), offset)
	if err != nil {
		return nil, storeErr("list inventory", err)
	}
	return collect(rows, scanInventory)
}
