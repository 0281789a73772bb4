package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/mrp-api/internal/domain"
	"github.com/jhoicas/mrp-api/internal/domain/entity"
	"github.com/jhoicas/mrp-api/internal/domain/repository"
)

var _ repository.StockLedgerRepository = (*StockLedgerRepo)(nil)

// StockLedgerRepo libro de existencias append-only sobre PostgreSQL.
type StockLedgerRepo struct {
	q Querier
}

func NewStockLedgerRepository(q Querier) *StockLedgerRepo {
	return &StockLedgerRepo{q: q}
}

const ledgerColumns = `id, seq, product_id, reference, stock_in, stock_out, balance, created_at`

const ledgerOrder = `ORDER BY created_at DESC, seq DESC`

func scanLedger(row pgx.Row) (*entity.LedgerEntry, error) {
	var e entity.LedgerEntry
	if err := row.Scan(&e.ID, &e.Seq, &e.ProductID, &e.Reference, &e.StockIn, &e.StockOut, &e.Balance, &e.CreatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}

// LockProduct toma un advisory lock de transacción por producto; se libera en Commit o Rollback.
// Fuera de una transacción se libera al terminar la sentencia y no protege nada.
func (r *StockLedgerRepo) LockProduct(ctx context.Context, productID string) error {
	if _, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, productID); err != nil {
		return storeErr(fmt.Sprintf("lock ledger %s", productID), err)
	}
	return nil
}

func (r *StockLedgerRepo) LastEntry(ctx context.Context, productID string) (*entity.LedgerEntry, error) {
	e, err := scanLedger(r.q.QueryRow(ctx, `
		SELECT `+ledgerColumns+` FROM stock_ledger
		WHERE product_id = $1
		`+ledgerOrder+`
		LIMIT 1`, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("last ledger entry", err)
	}
	return e, nil
}

// Append inserta la entrada y asigna Seq desde la secuencia.
func (r *StockLedgerRepo) Append(ctx context.Context, e *entity.LedgerEntry) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO stock_ledger (id, product_id, reference, stock_in, stock_out, balance, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING seq`,
		e.ID, e.ProductID, e.Reference, e.StockIn, e.StockOut, e.Balance, e.CreatedAt,
	).Scan(&e.Seq)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NewNotFoundError("producto", e.ProductID)
		}
		return storeErr("append ledger entry", err)
	}
	return nil
}

func (r *StockLedgerRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.LedgerEntry, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+ledgerColumns+` FROM stock_ledger
		WHERE product_id = $1
		`+ledgerOrder, productID)
	if err != nil {
		return nil, storeErr("list ledger by product", err)
	}
	return collect(rows, scanLedger)
}

func (r *StockLedgerRepo) ListByReference(ctx context.Context, reference string) ([]*entity.LedgerEntry, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+ledgerColumns+` FROM stock_ledger
		WHERE reference = $1
		`+ledgerOrder, reference)
	if err != nil {
		return nil, storeErr("list ledger by reference", err)
	}
	return collect(rows, scanLedger)
}

func (r *StockLedgerRepo) ListBetween(ctx context.Context, from, to time.Time) ([]*entity.LedgerEntry, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+ledgerColumns+` FROM stock_ledger
		WHERE created_at >= $1 AND created_at < $2
		`+ledgerOrder, from, to)
	if err != nil {
		return nil, storeErr("list ledger between", err)
	}
	return collect(rows, scanLedger)
}
