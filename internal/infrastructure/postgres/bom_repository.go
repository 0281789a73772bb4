package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/mrp-api/internal/domain"
	"github.com/jhoicas/mrp-api/internal/domain/entity"
	"github.com/jhoicas/mrp-api/internal/domain/repository"
)

var _ repository.BOMRepository = (*BOMRepo)(nil)

// BOMRepo listas de materiales; ítems y operaciones se guardan como JSONB.
type BOMRepo struct {
	q Querier
}

func NewBOMRepository(q Querier) *BOMRepo {
	return &BOMRepo{q: q}
}

const bomColumns = `id, code, product_id, product_name, items, operations, is_active, created_at, updated_at`

func scanBOM(row pgx.Row) (*entity.BillOfMaterials, error) {
	var (
		b          entity.BillOfMaterials
		items, ops []byte
	)
	if err := row.Scan(&b.ID, &b.Code, &b.ProductID, &b.ProductName, &items, &ops, &b.IsActive, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	if err := fromJSON(items, &b.Items); err != nil {
		return nil, err
	}
	if err := fromJSON(ops, &b.Operations); err != nil {
		return nil, err
	}
	return &b, nil
}

func bomJSON(b *entity.BillOfMaterials) (items, ops []byte, err error) {
	if items, err = toJSON(nonNil(b.Items)); err != nil {
		return nil, nil, err
	}
	if ops, err = toJSON(nonNil(b.Operations)); err != nil {
		return nil, nil, err
	}
	return items, ops, nil
}

// nonNil evita guardar "null" en columnas JSONB de arreglos.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func (r *BOMRepo) Create(ctx context.Context, b *entity.BillOfMaterials) error {
	items, ops, err := bomJSON(b)
	if err != nil {
		return err
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO boms (`+bomColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		b.ID, b.Code, b.ProductID, b.ProductName, items, ops, b.IsActive, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return storeErr("insert bom", err)
	}
	return nil
}

func (r *BOMRepo) GetByID(ctx context.Context, id string) (*entity.BillOfMaterials, error) {
	return r.getOne(ctx, "get bom by id", `SELECT `+bomColumns+` FROM boms WHERE id = $1`, id)
}

func (r *BOMRepo) GetByCode(ctx context.Context, code string) (*entity.BillOfMaterials, error) {
	return r.getOne(ctx, "get bom by code", `SELECT `+bomColumns+` FROM boms WHERE code = $1`, code)
}

func (r *BOMRepo) getOne(ctx context.Context, op, query string, arg any) (*entity.BillOfMaterials, error) {
	b, err := scanBOM(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr(op, err)
	}
	return b, nil
}

// MaxCodeNumber ignora códigos que no siguen el patrón BOM-<n>.
func (r *BOMRepo) MaxCodeNumber(ctx context.Context) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(MAX(substring(code FROM '^BOM-([0-9]+)$')::int), 0)
		FROM boms`).Scan(&n)
	if err != nil {
		return 0, storeErr("max bom code", err)
	}
	return n, nil
}

func (r *BOMRepo) List(ctx context.Context, limit, offset int) ([]*entity.BillOfMaterials, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+bomColumns+` FROM boms
		ORDER BY code
		LIMIT $1 OFFSET $2`, limitArg(limit), offset)
	if err != nil {
		return nil, storeErr("list boms", err)
	}
	return collect(rows, scanBOM)
}

func (r *BOMRepo) Update(ctx context.Context, b *entity.BillOfMaterials) error {
	items, ops, err := bomJSON(b)
	if err != nil {
		return err
	}
	tag, err := r.q.Exec(ctx, `
		UPDATE boms SET code = $2, product_id = $3, product_name = $4, items = $5, operations = $6,
			is_active = $7, updated_at = $8
		WHERE id = $1`,
		b.ID, b.Code, b.ProductID, b.ProductName, items, ops, b.IsActive, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return storeErr("update bom", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("lista de materiales", b.ID)
	}
	return nil
}

func (r *BOMRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM boms WHERE id = $1`, id)
	if err != nil {
		return storeErr("delete bom", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("lista de materiales", id)
	}
	return nil
}
