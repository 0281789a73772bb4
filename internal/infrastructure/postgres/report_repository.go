package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/mrp-api/internal/domain/entity"
	"github.com/jhoicas/mrp-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo agregaciones de solo lectura para reportes.
type ReportRepo struct {
	q Querier
}

func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// Throughput agrupa por día UTC de cierre.
func (r *ReportRepo) Throughput(ctx context.Context, from, to time.Time) ([]repository.ThroughputRow, error) {
	rows, err := r.q.Query(ctx, `
		SELECT date_trunc('day', actual_end AT TIME ZONE 'UTC') AS day, count(*), COALESCE(sum(quantity), 0)
		FROM manufacturing_orders
		WHERE status = $1 AND actual_end >= $2 AND actual_end < $3
		GROUP BY day
		ORDER BY day`, string(entity.MOStatusCompleted), from, to)
	if err != nil {
		return nil, storeErr("report throughput", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (repository.ThroughputRow, error) {
		var t repository.ThroughputRow
		if err := row.Scan(&t.Day, &t.Completed, &t.Units); err != nil {
			return t, err
		}
		t.Day = time.Date(t.Day.Year(), t.Day.Month(), t.Day.Day(), 0, 0, 0, 0, time.UTC)
		return t, nil
	})
}

func (r *ReportRepo) WorkCenterLoad(ctx context.Context, from, to time.Time) ([]repository.WorkCenterLoadRow, error) {
	rows, err := r.q.Query(ctx, `
		SELECT wo.work_center_id, COALESCE(wc.name, ''), count(*),
			COALESCE(sum(wo.planned_duration), 0)::numeric, COALESCE(sum(wo.actual_duration), 0)
		FROM work_orders wo
		LEFT JOIN work_centers wc ON wc.id = wo.work_center_id
		WHERE wo.work_center_id <> '' AND wo.status = $1 AND wo.end_time >= $2 AND wo.end_time < $3
		GROUP BY wo.work_center_id, wc.name
		ORDER BY 2`, string(entity.WOStatusCompleted), from, to)
	if err != nil {
		return nil, storeErr("report work center load", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (repository.WorkCenterLoadRow, error) {
		var w repository.WorkCenterLoadRow
		err := row.Scan(&w.WorkCenterID, &w.WorkCenterName, &w.Completed, &w.PlannedMinutes, &w.ActualMinutes)
		return w, err
	})
}

func (r *ReportRepo) StockUsage(ctx context.Context, from, to time.Time) ([]repository.StockUsageRow, error) {
	rows, err := r.q.Query(ctx, `
		SELECT l.product_id, COALESCE(p.name, ''), COALESCE(sum(l.stock_out), 0), COALESCE(sum(l.stock_in), 0)
		FROM stock_ledger l
		LEFT JOIN products p ON p.id = l.product_id
		WHERE l.created_at >= $1 AND l.created_at < $2
		GROUP BY l.product_id, p.name
		ORDER BY 2`, from, to)
	if err != nil {
		return nil, storeErr("report stock usage", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (repository.StockUsageRow, error) {
		var s repository.StockUsageRow
		err := row.Scan(&s.ProductID, &s.ProductName, &s.Consumed, &s.Produced)
		return s, err
	})
}

func (r *ReportRepo) Totals(ctx context.Context) (*repository.SystemTotals, error) {
	t := &repository.SystemTotals{
		OrdersByStatus: map[string]int{},
		WorkByStatus:   map[string]int{},
		InventoryUnits: decimal.Zero,
	}
	err := r.q.QueryRow(ctx, `
		SELECT
			(SELECT count(*) FROM users),
			(SELECT count(*) FROM products),
			(SELECT count(*) FROM boms),
			(SELECT count(*) FROM work_centers),
			(SELECT COALESCE(sum(stock_quantity), 0) FROM inventory)`,
	).Scan(&t.Users, &t.Products, &t.BOMs, &t.WorkCenters, &t.InventoryUnits)
	if err != nil {
		return nil, storeErr("report totals", err)
	}
	if err := r.countByStatus(ctx, "manufacturing_orders", t.OrdersByStatus); err != nil {
		return nil, err
	}
	if err := r.countByStatus(ctx, "work_orders", t.WorkByStatus); err != nil {
		return nil, err
	}
	return t, nil
}

// countByStatus table es siempre una constante interna.
func (r *ReportRepo) countByStatus(ctx context.Context, table string, into map[string]int) error {
	rows, err := r.q.Query(ctx, `SELECT status, count(*) FROM `+table+` GROUP BY status`)
	if err != nil {
		return storeErr(fmt.Sprintf("count %s by status", table), err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return storeErr(fmt.Sprintf("scan %s status", table), err)
		}
		into[status] = n
	}
	return rows.Err()
}
