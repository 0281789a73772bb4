package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/mrp-api/internal/application/inventory"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL (READ COMMITTED).
// La exclusión entre transiciones de la misma orden la da SELECT ... FOR UPDATE en GetForUpdate.
type TxRunner struct {
	pool *pgxpool.Pool
}

func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos inventory.Repos) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return storeErr("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(BindRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return storeErr("commit transaction", err)
	}
	return nil
}

// BindRepos construye los repositorios de una unidad de trabajo sobre q.
func BindRepos(q Querier) inventory.Repos {
	return inventory.Repos{
		Orders:     NewManufacturingOrderRepository(q),
		WorkOrders: NewWorkOrderRepository(q),
		Inventory:  NewInventoryRepository(q),
		Ledger:     NewStockLedgerRepository(q),
		Products:   NewProductRepository(q),
	}
}
