package inventory

import (
	"context"

	"github.com/jhoicas/mrp-api/internal/domain/entity"
	"github.com/jhoicas/mrp-api/internal/domain/repository"
)

// Repos repositorios atados a una misma unidad de trabajo.
type Repos struct {
	Orders     repository.ManufacturingOrderRepository
	WorkOrders repository.WorkOrderRepository
	Inventory  repository.InventoryRepository
	Ledger     repository.StockLedgerRepository
	Products   repository.ProductRepository
}

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Si fn devuelve error no queda escrito nada de lo que hizo.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos Repos) error) error
}

// LedgerCache caché de lectura del libro de existencias por producto.
// Los errores de la caché no se propagan: una falla equivale a un miss.
//
// Cada producto tiene una versión; Get la devuelve también en un miss y Set solo escribe
// bajo esa versión. Invalidate la incrementa, así que un Set con una lectura anterior a la
// invalidación queda en una clave que nadie vuelve a leer. version < 0 = no cachear.
type LedgerCache interface {
	Get(ctx context.Context, productID string) (entries []*entity.LedgerEntry, version int64, ok bool)
	Set(ctx context.Context, productID string, version int64, entries []*entity.LedgerEntry)
	Invalidate(ctx context.Context, productIDs ...string)
}

// NopLedgerCache caché desactivada.
type NopLedgerCache struct{}

func (NopLedgerCache) Get(context.Context, string) ([]*entity.LedgerEntry, int64, bool) {
	return nil, -1, false
}
func (NopLedgerCache) Set(context.Context, string, int64, []*entity.LedgerEntry) {}
func (NopLedgerCache) Invalidate(context.Context, ...string) {}
