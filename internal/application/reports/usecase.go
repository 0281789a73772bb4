// Package reports arma los reportes por rol a partir de consultas de solo lectura.
package reports

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/mrp-api/internal/application/dto"
	"github.com/jhoicas/mrp-api/internal/application/inventory"
	"github.com/jhoicas/mrp-api/internal/application/manufacturing"
	"github.com/jhoicas/mrp-api/internal/application/usecase"
	"github.com/jhoicas/mrp-api/internal/domain"
	"github.com/jhoicas/mrp-api/internal/domain/entity"
	"github.com/jhoicas/mrp-api/internal/domain/repository"
)

// DefaultPeriodDays ventana por defecto cuando no se indica from.
const DefaultPeriodDays = 30

// maxRows límite de filas de los listados completos que se incluyen en un reporte.
const maxRows = 10000

// ReportsUseCase reportes de operador, jefe de manufactura, administrador e inventario.
type ReportsUseCase struct {
	reports    repository.ReportRepository
	workOrders repository.WorkOrderRepository
	orders     repository.ManufacturingOrderRepository
	inventory  repository.InventoryRepository
	loc        *time.Location
	now        func() time.Time
}

// NewReportsUseCase construye el caso de uso. loc nil = UTC.
func NewReportsUseCase(
	reports repository.ReportRepository,
	workOrders repository.WorkOrderRepository,
	orders repository.ManufacturingOrderRepository,
	inventoryRepo repository.InventoryRepository,
	loc *time.Location,
) *ReportsUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportsUseCase{
		reports:    reports,
		workOrders: workOrders,
		orders:     orders,
		inventory:  inventoryRepo,
		loc:        loc,
		now:        time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *ReportsUseCase) WithClock(now func() time.Time) *ReportsUseCase {
	uc.now = now
	return uc
}

// Period convierte from/to (YYYY-MM-DD, ambos inclusive) en el intervalo [from, to+1d).
// Sin to: hoy. Sin from: DefaultPeriodDays antes de to.
func (uc *ReportsUseCase) Period(q dto.ReportQuery) (time.Time, time.Time, error) {
	n := uc.now().In(uc.loc)
	to := time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, uc.loc)
	if s := strings.TrimSpace(q.To); s != "" {
		t, err := time.ParseInLocation(dto.DateLayout, s, uc.loc)
		if err != nil {
			return time.Time{}, time.Time{}, domain.NewValidationError("to", "formato de fecha inválido, use YYYY-MM-DD")
		}
		to = t
	}
	from := to.AddDate(0, 0, -DefaultPeriodDays)
	if s := strings.TrimSpace(q.From); s != "" {
		t, err := time.ParseInLocation(dto.DateLayout, s, uc.loc)
		if err != nil {
			return time.Time{}, time.Time{}, domain.NewValidationError("from", "formato de fecha inválido, use YYYY-MM-DD")
		}
		from = t
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, domain.NewValidationError("to", "la fecha final es anterior a la inicial")
	}
	return from, to.AddDate(0, 0, 1), nil
}

// Operator órdenes de trabajo completadas por quien consulta.
func (uc *ReportsUseCase) Operator(ctx context.Context, identity entity.Identity, q dto.ReportQuery) (*dto.OperatorReport, error) {
	if !identity.HasRole(entity.RoleOperator, entity.RoleAdmin) {
		return nil, domain.ErrForbidden
	}
	from, to, err := uc.Period(q)
	if err != nil {
		return nil, err
	}
	wos, err := uc.workOrders.ListCompletedBetween(ctx, identity.UserID, from, to)
	if err != nil {
		return nil, err
	}
	out := &dto.OperatorReport{
		UserID:     identity.UserID,
		From:       from,
		To:         to,
		Completed:  len(wos),
		WorkOrders: manufacturing.ToWorkOrderResponses(wos),
	}
	for _, wo := range wos {
		out.TotalMinutes = out.TotalMinutes.Add(wo.ActualDuration)
	}
	return out, nil
}

// Manager producción diaria, órdenes vencidas y uso de centros.
func (uc *ReportsUseCase) Manager(ctx context.Context, identity entity.Identity, q dto.ReportQuery) (*dto.ManagerReport, error) {
	if !identity.IsSupervisor() {
		return nil, domain.ErrForbidden
	}
	from, to, err := uc.Period(q)
	if err != nil {
		return nil, err
	}
	throughput, err := uc.reports.Throughput(ctx, from, to)
	if err != nil {
		return nil, err
	}
	load, err := uc.reports.WorkCenterLoad(ctx, from, to)
	if err != nil {
		return nil, err
	}
	overdue, err := uc.overdue(ctx)
	if err != nil {
		return nil, err
	}

	out := &dto.ManagerReport{
		From:        from,
		To:          to,
		Throughput:  make([]dto.ThroughputPoint, 0, len(throughput)),
		Overdue:     overdue,
		Utilization: make([]dto.UtilizationResponse, 0, len(load)),
	}
	for _, row := range throughput {
		out.Throughput = append(out.Throughput, dto.ThroughputPoint{Day: row.Day.Format(dto.DateLayout), Completed: row.Completed, Units: row.Units})
	}
	for _, row := range load {
		out.Utilization = append(out.Utilization, dto.UtilizationResponse{
			WorkCenterID:       row.WorkCenterID,
			WorkCenterName:     row.WorkCenterName,
			CompletedOrders:    row.Completed,
			PlannedMinutes:     row.PlannedMinutes,
			ActualMinutes:      row.ActualMinutes,
			UtilizationPercent: usecase.UtilizationPercent(row.ActualMinutes, row.PlannedMinutes),
		})
	}
	return out, nil
}

func (uc *ReportsUseCase) overdue(ctx context.Context) ([]dto.OverdueOrder, error) {
	now := uc.now()
	out := []dto.OverdueOrder{}
	for _, status := range []entity.MOStatus{entity.MOStatusPlanned, entity.MOStatusInProgress} {
		list, err := uc.orders.List(ctx, repository.MOFilter{Status: string(status), Limit: maxRows})
		if err != nil {
			return nil, err
		}
		for _, mo := range list {
			if !mo.IsOverdue(now) {
				continue
			}
			out = append(out, dto.OverdueOrder{
				ID:          mo.ID,
				ProductName: mo.ProductName,
				Deadline:    mo.Deadline.Format(dto.DateLayout),
				Status:      string(mo.Status),
				DaysLate:    int(now.Sub(mo.Deadline).Hours() / 24),
			})
		}
	}
	return out, nil
}

// Admin conteos generales del sistema.
func (uc *ReportsUseCase) Admin(ctx context.Context, identity entity.Identity) (*dto.AdminReport, error) {
	if !identity.HasRole(entity.RoleAdmin) {
		return nil, domain.ErrForbidden
	}
	t, err := uc.reports.Totals(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.AdminReport{
		Users:          t.Users,
		Products:       t.Products,
		BOMs:           t.BOMs,
		WorkCenters:    t.WorkCenters,
		OrdersByStatus: t.OrdersByStatus,
		WorkByStatus:   t.WorkByStatus,
		InventoryUnits: t.InventoryUnits,
	}, nil
}

// Inventory consumo y producción por producto según el libro, más las existencias actuales.
func (uc *ReportsUseCase) Inventory(ctx context.Context, identity entity.Identity, q dto.ReportQuery) (*dto.InventoryReport, error) {
	if !identity.HasRole(entity.RoleAdmin, entity.RoleInventoryManager) {
		return nil, domain.ErrForbidden
	}
	from, to, err := uc.Period(q)
	if err != nil {
		return nil, err
	}
	usage, err := uc.reports.StockUsage(ctx, from, to)
	if err != nil {
		return nil, err
	}
	records, err := uc.inventory.List(ctx, maxRows, 0)
	if err != nil {
		return nil, err
	}
	out := &dto.InventoryReport{
		From:  from,
		To:    to,
		Usage: make([]dto.StockUsageDTO, 0, len(usage)),
		Stock: make([]dto.InventoryResponse, 0, len(records)),
	}
	for _, u := range usage {
		out.Usage = append(out.Usage, dto.StockUsageDTO{ProductID: u.ProductID, ProductName: u.ProductName, Consumed: u.Consumed, Produced: u.Produced})
	}
	for _, r := range records {
		out.Stock = append(out.Stock, inventory.ToInventoryResponse(r))
	}
	return out, nil
}
