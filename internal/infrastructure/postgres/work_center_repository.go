package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/mrp-api/internal/domain"
	"github.com/jhoicas/mrp-api/internal/domain/entity"
	"github.com/jhoicas/mrp-api/internal/domain/repository"
)

var _ repository.WorkCenterRepository = (*WorkCenterRepo)(nil)

type WorkCenterRepo struct {
	q Querier
}

func NewWorkCenterRepository(q Querier) *WorkCenterRepo {
	return &WorkCenterRepo{q: q}
}

const workCenterColumns = `id, name, description, hourly_cost_rate, status, capacity, efficiency, created_at, updated_at`

func scanWorkCenter(row pgx.Row) (*entity.WorkCenter, error) {
	var wc entity.WorkCenter
	if err := row.Scan(&wc.ID, &wc.Name, &wc.Description, &wc.HourlyCostRate, &wc.Status, &wc.Capacity, &wc.Efficiency, &wc.CreatedAt, &wc.UpdatedAt); err != nil {
		return nil, err
	}
	return &wc, nil
}

func (r *WorkCenterRepo) Create(ctx context.Context, wc *entity.WorkCenter) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO work_centers (`+workCenterColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		wc.ID, wc.Name, wc.Description, wc.HourlyCostRate, wc.Status, wc.Capacity, wc.Efficiency, wc.CreatedAt, wc.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return storeErr("insert work center", err)
	}
	return nil
}

func (r *WorkCenterRepo) GetByID(ctx context.Context, id string) (*entity.WorkCenter, error) {
	return r.getOne(ctx, "get work center by id", `SELECT `+workCenterColumns+` FROM work_centers WHERE id = $1`, id)
}

func (r *WorkCenterRepo) GetByName(ctx context.Context, name string) (*entity.WorkCenter, error) {
	return r.getOne(ctx, "get work center by name", `SELECT `+workCenterColumns+` FROM work_centers WHERE lower(name) = lower($1)`, name)
}

func (r *WorkCenterRepo) getOne(ctx context.Context, op, query string, arg any) (*entity.WorkCenter, error) {
	wc, err := scanWorkCenter(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr(op, err)
	}
	return wc, nil
}

func (r *WorkCenterRepo) List(ctx context.Context, limit, offset int) ([]*entity.WorkCenter, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+workCenterColumns+` FROM work_centers
		ORDER BY name
		LIMIT $1 OFFSET $2`, limitArg(limit), offset)
	if err != nil {
		return nil, storeErr("list work centers", err)
	}
	return collect(rows, scanWorkCenter)
}

func (r *WorkCenterRepo) Update(ctx context.Context, wc *entity.WorkCenter) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE work_centers SET name = $2, description = $3, hourly_cost_rate = $4, status = $5,
			capacity = $6, efficiency = $7, updated_at = $8
		WHERE id = $1`,
		wc.ID, wc.Name, wc.Description, wc.HourlyCostRate, wc.Status, wc.Capacity, wc.Efficiency, wc.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return storeErr("update work center", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("centro de trabajo", wc.ID)
	}
	return nil
}
