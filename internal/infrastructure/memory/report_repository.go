package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/mrp-api/internal/domain/entity"
	"github.com/jhoicas/mrp-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo agregaciones de reportes recorriendo las tablas en memoria.
type ReportRepo struct{ base }

// NewReportRepository construye el repositorio.
func NewReportRepository(s *Store) *ReportRepo { return &ReportRepo{base{s: s}} }

func inRange(t, from, to time.Time) bool {
	return !t.Before(from) && t.Before(to)
}

func (r *ReportRepo) Throughput(_ context.Context, from, to time.Time) ([]repository.ThroughputRow, error) {
	defer r.lock()()
	byDay := map[time.Time]*repository.ThroughputRow{}
	for _, mo := range r.s.data.orders {
		if mo.Status != entity.MOStatusCompleted || mo.ActualEnd == nil || !inRange(*mo.ActualEnd, from, to) {
			continue
		}
		end := mo.ActualEnd.UTC()
		day := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
		row, ok := byDay[day]
		if !ok {
			row = &repository.ThroughputRow{Day: day}
			byDay[day] = row
		}
		row.Completed++
		row.Units += mo.Quantity
	}
	out := make([]repository.ThroughputRow, 0, len(byDay))
	for _, row := range byDay {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day.Before(out[j].Day) })
	return out, nil
}

func (r *ReportRepo) WorkCenterLoad(_ context.Context, from, to time.Time) ([]repository.WorkCenterLoadRow, error) {
	defer r.lock()()
	byWC := map[string]*repository.WorkCenterLoadRow{}
	for _, wo := range r.s.data.workOrders {
		if wo.WorkCenterID == "" || wo.Status != entity.WOStatusCompleted || wo.EndTime == nil || !inRange(*wo.EndTime, from, to) {
			continue
		}
		row, ok := byWC[wo.WorkCenterID]
		if !ok {
			row = &repository.WorkCenterLoadRow{
				WorkCenterID:   wo.WorkCenterID,
				WorkCenterName: r.s.data.workCenters[wo.WorkCenterID].Name,
				PlannedMinutes: decimal.Zero,
				ActualMinutes:  decimal.Zero,
			}
			byWC[wo.WorkCenterID] = row
		}
		row.Completed++
		row.PlannedMinutes = row.PlannedMinutes.Add(decimal.NewFromInt(int64(wo.PlannedDuration)))
		row.ActualMinutes = row.ActualMinutes.Add(wo.ActualDuration)
	}
	out := make([]repository.WorkCenterLoadRow, 0, len(byWC))
	for _, row := range byWC {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WorkCenterName < out[j].WorkCenterName })
	return out, nil
}

func (r *ReportRepo) StockUsage(_ context.Context, from, to time.Time) ([]repository.StockUsageRow, error) {
	defer r.lock()()
	byProduct := map[string]*repository.StockUsageRow{}
	for _, e := range r.s.data.ledger {
		if !inRange(e.CreatedAt, from, to) {
			continue
		}
		row, ok := byProduct[e.ProductID]
		if !ok {
			row = &repository.StockUsageRow{
				ProductID:   e.ProductID,
				ProductName: r.s.data.products[e.ProductID].Name,
				Consumed:    decimal.Zero,
				Produced:    decimal.Zero,
			}
			byProduct[e.ProductID] = row
		}
		row.Consumed = row.Consumed.Add(e.StockOut)
		row.Produced = row.Produced.Add(e.StockIn)
	}
	out := make([]repository.StockUsageRow, 0, len(byProduct))
	for _, row := range byProduct {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductName < out[j].ProductName })
	return out, nil
}

func (r *ReportRepo) Totals(context.Context) (*repository.SystemTotals, error) {
	defer r.lock()()
	t := &repository.SystemTotals{
		Users:          len(r.s.data.users),
		Products:       len(r.s.data.products),
		BOMs:           len(r.s.data.boms),
		WorkCenters:    len(r.s.data.workCenters),
		OrdersByStatus: map[string]int{},
		WorkByStatus:   map[string]int{},
		InventoryUnits: decimal.Zero,
	}
	for _, mo := range r.s.data.orders {
		t.OrdersByStatus[string(mo.Status)]++
	}
	for _, wo := range r.s.data.workOrders {
		t.WorkByStatus[string(wo.Status)]++
	}
	for _, rec := range r.s.data.inventory {
		t.InventoryUnits = t.InventoryUnits.Add(rec.StockQuantity)
	}
	return t, nil
}
