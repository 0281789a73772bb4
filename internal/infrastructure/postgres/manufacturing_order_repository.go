package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/mrp-api/internal/domain"
	"github.com/jhoicas/mrp-api/internal/domain/entity"
	"github.com/jhoicas/mrp-api/internal/domain/repository"
)

var _ repository.ManufacturingOrderRepository = (*ManufacturingOrderRepo)(nil)

// ManufacturingOrderRepo órdenes de fabricación; componentes en JSONB e IDs de órdenes de trabajo en TEXT[].
type ManufacturingOrderRepo struct {
	q Querier
}

func NewManufacturingOrderRepository(q Querier) *ManufacturingOrderRepo {
	return &ManufacturingOrderRepo{q: q}
}

const moColumns = `id, bom_id, product_id, product_name, quantity, status, schedule_start, deadline,
	assignee_id, priority, notes, required_components, work_order_ids, actual_start, actual_end,
	created_at, updated_at`

func scanMO(row pgx.Row) (*entity.ManufacturingOrder, error) {
	var (
		mo         entity.ManufacturingOrder
		status     string
		components []byte
	)
	err := row.Scan(
		&mo.ID, &mo.BOMID, &mo.ProductID, &mo.ProductName, &mo.Quantity, &status, &mo.ScheduleStart, &mo.Deadline,
		&mo.AssigneeID, &mo.Priority, &mo.Notes, &components, &mo.WorkOrderIDs, &mo.ActualStart, &mo.ActualEnd,
		&mo.CreatedAt, &mo.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	mo.Status = entity.MOStatus(status)
	if err := fromJSON(components, &mo.RequiredComponents); err != nil {
		return nil, err
	}
	if mo.WorkOrderIDs == nil {
		mo.WorkOrderIDs = []string{}
	}
	return &mo, nil
}

func (r *ManufacturingOrderRepo) Create(ctx context.Context, mo *entity.ManufacturingOrder) error {
	components, err := toJSON(nonNil(mo.RequiredComponents))
	if err != nil {
		return err
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO manufacturing_orders (`+moColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		mo.ID, mo.BOMID, mo.ProductID, mo.ProductName, mo.Quantity, string(mo.Status), mo.ScheduleStart, mo.Deadline,
		mo.AssigneeID, mo.Priority, mo.Notes, components, nonNil(mo.WorkOrderIDs), mo.ActualStart, mo.ActualEnd,
		mo.CreatedAt, mo.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return storeErr("insert manufacturing order", err)
	}
	return nil
}

func (r *ManufacturingOrderRepo) GetByID(ctx context.Context, id string) (*entity.ManufacturingOrder, error) {
	return r.getOne(ctx, "get manufacturing order", `SELECT `+moColumns+` FROM manufacturing_orders WHERE id = $1`, id)
}

// GetForUpdate bloquea la fila hasta el fin de la transacción: serializa las transiciones
// concurrentes de órdenes de trabajo hermanas y el cierre de la orden.
func (r *ManufacturingOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.ManufacturingOrder, error) {
	return r.getOne(ctx, "lock manufacturing order", `SELECT `+moColumns+` FROM manufacturing_orders WHERE id = $1 FOR UPDATE`, id)
}

func (r *ManufacturingOrderRepo) getOne(ctx context.Context, op, query string, arg any) (*entity.ManufacturingOrder, error) {
	mo, err := scanMO(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr(op, err)
	}
	return mo, nil
}

// List más recientes primero; filtros vacíos no se aplican.
func (r *ManufacturingOrderRepo) List(ctx context.Context, f repository.MOFilter) ([]*entity.ManufacturingOrder, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+moColumns+` FROM manufacturing_orders
		WHERE ($1 = '' OR status = $1) AND ($2 = '' OR assignee_id = $2)
		ORDER BY created_at DESC, id
		LIMIT $3 OFFSET $4`, f.Status, f.AssigneeID, limitArg(f.Limit), f.Offset)
	if err != nil {
		return nil, storeErr("list manufacturing orders", err)
	}
	return collect(rows, scanMO)
}

func (r *ManufacturingOrderRepo) Update(ctx context.Context, mo *entity.ManufacturingOrder) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE manufacturing_orders SET status = $2, notes = $3, work_order_ids = $4,
			actual_start = $5, actual_end = $6, updated_at = $7
		WHERE id = $1`,
		mo.ID, string(mo.Status), mo.Notes, nonNil(mo.WorkOrderIDs), mo.ActualStart, mo.ActualEnd, mo.UpdatedAt,
	)
	if err != nil {
		return storeErr("update manufacturing order", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("orden de fabricación", mo.ID)
	}
	return nil
}
