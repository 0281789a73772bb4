package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/mrp-api/internal/domain"
	"github.com/jhoicas/mrp-api/internal/domain/entity"
	"github.com/jhoicas/mrp-api/internal/domain/repository"
)

var _ repository.WorkOrderRepository = (*WorkOrderRepo)(nil)

type WorkOrderRepo struct {
	q Querier
}

func NewWorkOrderRepository(q Querier) *WorkOrderRepo {
	return &WorkOrderRepo{q: q}
}

const woColumns = `id, mo_id, operation_name, work_center_id, assignee_id, status, comments,
	planned_duration, actual_duration, quality_status, quality_notes, start_time, end_time,
	created_at, updated_at`

const woOrder = `ORDER BY created_at, id`

func scanWO(row pgx.Row) (*entity.WorkOrder, error) {
	var (
		wo     entity.WorkOrder
		status string
	)
	err := row.Scan(
		&wo.ID, &wo.MOID, &wo.OperationName, &wo.WorkCenterID, &wo.AssigneeID, &status, &wo.Comments,
		&wo.PlannedDuration, &wo.ActualDuration, &wo.QualityStatus, &wo.QualityNotes, &wo.StartTime, &wo.EndTime,
		&wo.CreatedAt, &wo.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	wo.Status = entity.WOStatus(status)
	return &wo, nil
}

func (r *WorkOrderRepo) Create(ctx context.Context, wo *entity.WorkOrder) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO work_orders (`+woColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		wo.ID, wo.MOID, wo.OperationName, wo.WorkCenterID, wo.AssigneeID, string(wo.Status), wo.Comments,
		wo.PlannedDuration, wo.ActualDuration, wo.QualityStatus, wo.QualityNotes, wo.StartTime, wo.EndTime,
		wo.CreatedAt, wo.UpdatedAt,
	)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrDuplicate
		case isForeignKeyViolation(err):
			return domain.NewNotFoundError("orden de fabricación", wo.MOID)
		}
		return storeErr("insert work order", err)
	}
	return nil
}

func (r *WorkOrderRepo) GetByID(ctx context.Context, id string) (*entity.WorkOrder, error) {
	wo, err := scanWO(r.q.QueryRow(ctx, `SELECT `+woColumns+` FROM work_orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("get work order", err)
	}
	return wo, nil
}

func (r *WorkOrderRepo) ListByMO(ctx context.Context, moID string) ([]*entity.WorkOrder, error) {
	return r.list(ctx, "list work orders by mo", `WHERE mo_id = $1 `+woOrder, moID)
}

func (r *WorkOrderRepo) ListByAssignee(ctx context.Context, assigneeID string) ([]*entity.WorkOrder, error) {
	return r.list(ctx, "list work orders by assignee", `WHERE assignee_id = $1 `+woOrder, assigneeID)
}

func (r *WorkOrderRepo) ListByWorkCenter(ctx context.Context, workCenterID string) ([]*entity.WorkOrder, error) {
	return r.list(ctx, "list work orders by work center", `WHERE work_center_id = $1 `+woOrder, workCenterID)
}

func (r *WorkOrderRepo) ListCompletedBetween(ctx context.Context, assigneeID string, from, to time.Time) ([]*entity.WorkOrder, error) {
	return r.list(ctx, "list completed work orders", `
		WHERE status = $1 AND end_time >= $2 AND end_time < $3 AND ($4 = '' OR assignee_id = $4)
		`+woOrder, string(entity.WOStatusCompleted), from, to, assigneeID)
}

func (r *WorkOrderRepo) List(ctx context.Context, limit, offset int) ([]*entity.WorkOrder, error) {
	return r.list(ctx, "list work orders", woOrder+` LIMIT $1 OFFSET $2`, limitArg(limit), offset)
}

func (r *WorkOrderRepo) list(ctx context.Context, op, where string, args ...any) ([]*entity.WorkOrder, error) {
	rows, err := r.q.Query(ctx, `SELECT `+woColumns+` FROM work_orders `+where, args...)
	if err != nil {
		return nil, storeErr(op, err)
	}
	return collect(rows, scanWO)
}

func (r *WorkOrderRepo) Update(ctx context.Context, wo *entity.WorkOrder) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE work_orders SET status = $2, comments = $3, actual_duration = $4, quality_status = $5,
			quality_notes = $6, start_time = $7, end_time = $8, updated_at = $9
		WHERE id = $1`,
		wo.ID, string(wo.Status), wo.Comments, wo.ActualDuration, wo.QualityStatus,
		wo.QualityNotes, wo.StartTime, wo.EndTime, wo.UpdatedAt,
	)
	if err != nil {
		return storeErr("update work order", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("orden de trabajo", wo.ID)
	}
	return nil
}
