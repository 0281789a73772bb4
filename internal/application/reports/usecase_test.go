package reports_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mrp-api/internal/application/dto"
	"github.com/jhoicas/mrp-api/internal/application/reports"
	"github.com/jhoicas/mrp-api/internal/domain"
	"github.com/jhoicas/mrp-api/internal/domain/entity"
	"github.com/jhoicas/mrp-api/internal/infrastructure/memory"
)

var today = time.Date(2026, 5, 20, 12, 0, 0, 0, time.UTC)

func ptrTime(t time.Time) *time.Time { return &t }

func seed(t *testing.T) (*reports.ReportsUseCase, *memory.Store) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	wcs := memory.NewWorkCenterRepository(store)
	require.NoError(t, wcs.Create(ctx, &entity.WorkCenter{ID: "wc-1", Name: "Torno", Status: entity.WorkCenterActive}))

	orders := memory.NewManufacturingOrderRepository(store)
	for _, mo := range []*entity.ManufacturingOrder{
		{ID: "mo-done", ProductName: "mesa", Quantity: 10, Status: entity.MOStatusCompleted, Deadline: today, ActualEnd: ptrTime(today.AddDate(0, 0, -2)), CreatedAt: today.AddDate(0, 0, -9)},
		{ID: "mo-late", ProductName: "silla", Quantity: 3, Status: entity.MOStatusInProgress, Deadline: today.AddDate(0, 0, -3), CreatedAt: today.AddDate(0, 0, -8)},
		{ID: "mo-ok", ProductName: "banco", Quantity: 1, Status: entity.MOStatusPlanned, Deadline: today.AddDate(0, 0, 5), CreatedAt: today.AddDate(0, 0, -7)},
	} {
		require.NoError(t, orders.Create(ctx, mo))
	}

	wos := memory.NewWorkOrderRepository(store)
	for _, wo := range []*entity.WorkOrder{
		{ID: "wo-1", MOID: "mo-done", WorkCenterID: "wc-1", AssigneeID: "u-op", Status: entity.WOStatusCompleted, PlannedDuration: 60, ActualDuration: decimal.NewFromInt(30), EndTime: ptrTime(today.AddDate(0, 0, -2)), CreatedAt: today.AddDate(0, 0, -9)},
		{ID: "wo-2", MOID: "mo-done", WorkCenterID: "wc-1", AssigneeID: "u-otro", Status: entity.WOStatusCompleted, PlannedDuration: 60, ActualDuration: decimal.NewFromInt(60), EndTime: ptrTime(today.AddDate(0, 0, -2)), CreatedAt: today.AddDate(0, 0, -9)},
		{ID: "wo-old", MOID: "mo-done", AssigneeID: "u-op", Status: entity.WOStatusCompleted, ActualDuration: decimal.NewFromInt(15), EndTime: ptrTime(today.AddDate(0, -3, 0)), CreatedAt: today.AddDate(0, -3, 0)},
	} {
		require.NoError(t, wos.Create(ctx, wo))
	}

	products := memory.NewProductRepository(store)
	require.NoError(t, products.Create(ctx, &entity.Product{ID: "p-steel", Name: "steel", Type: entity.ProductTypeRaw}))
	ledger := memory.NewStockLedgerRepository(store)
	require.NoError(t, ledger.Append(ctx, &entity.LedgerEntry{ID: "l1", ProductID: "p-steel", Reference: "WO-wo-1", StockOut: decimal.NewFromInt(5), Balance: decimal.NewFromInt(-5), CreatedAt: today.AddDate(0, 0, -2)}))
	require.NoError(t, ledger.Append(ctx, &entity.LedgerEntry{ID: "l2", ProductID: "p-steel", Reference: "ADJ-1", StockIn: decimal.NewFromInt(20), Balance: decimal.NewFromInt(15), CreatedAt: today.AddDate(0, 0, -1)}))

	uc := reports.NewReportsUseCase(memory.NewReportRepository(store), wos, orders, memory.NewInventoryRepository(store), time.UTC).
		WithClock(func() time.Time { return today })
	return uc, store
}

func TestPeriod(t *testing.T) {
	uc, _ := seed(t)

	from, to, err := uc.Period(dto.ReportQuery{})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 4, 20, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, 5, 21, 0, 0, 0, 0, time.UTC), to, "el último día es inclusivo")

	_, _, err = uc.Period(dto.ReportQuery{From: "2026-05-10", To: "2026-05-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, _, err = uc.Period(dto.ReportQuery{From: "ayer"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOperator_SoloSusOrdenesEnElPeriodo(t *testing.T) {
	uc, _ := seed(t)
	me := entity.Identity{UserID: "u-op", Role: entity.RoleOperator}

	r, err := uc.Operator(context.Background(), me, dto.ReportQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, r.Completed)
	assert.True(t, r.TotalMinutes.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, "wo-1", r.WorkOrders[0].ID)

	doc := reports.OperatorDocument(r)
	assert.Len(t, doc.Sections, 2)
	assert.Len(t, doc.Sections[1].Rows, 1)

	_, err = uc.Operator(context.Background(), entity.Identity{UserID: "x", Role: entity.RoleInventoryManager}, dto.ReportQuery{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestManager(t *testing.T) {
	uc, _ := seed(t)
	r, err := uc.Manager(context.Background(), entity.Identity{UserID: "j", Role: entity.RoleManufacturingManager}, dto.ReportQuery{})
	require.NoError(t, err)

	require.Len(t, r.Throughput, 1)
	assert.Equal(t, "2026-05-18", r.Throughput[0].Day)
	assert.Equal(t, 10, r.Throughput[0].Units)

	require.Len(t, r.Overdue, 1)
	assert.Equal(t, "mo-late", r.Overdue[0].ID)
	assert.Equal(t, 3, r.Overdue[0].DaysLate)

	require.Len(t, r.Utilization, 1)
	assert.Equal(t, "Torno", r.Utilization[0].WorkCenterName)
	assert.Equal(t, "75", r.Utilization[0].UtilizationPercent.String())

	_, err = uc.Manager(context.Background(), entity.Identity{UserID: "o", Role: entity.RoleOperator}, dto.ReportQuery{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAdminEInventario(t *testing.T) {
	uc, _ := seed(t)
	ctx := context.Background()

	a, err := uc.Admin(ctx, entity.Identity{UserID: "a", Role: entity.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, 1, a.WorkCenters)
	assert.Equal(t, 1, a.OrdersByStatus["completed"])
	assert.Equal(t, 3, a.WorkByStatus["completed"])
	assert.Len(t, reports.AdminDocument(a).Sections[1].Rows, 3)

	inv, err := uc.Inventory(ctx, entity.Identity{UserID: "i", Role: entity.RoleInventoryManager}, dto.ReportQuery{})
	require.NoError(t, err)
	require.Len(t, inv.Usage, 1)
	assert.Equal(t, "steel", inv.Usage[0].ProductName)
	assert.True(t, inv.Usage[0].Consumed.Equal(decimal.NewFromInt(5)))
	assert.True(t, inv.Usage[0].Produced.Equal(decimal.NewFromInt(20)))

	_, err = uc.Admin(ctx, entity.Identity{UserID: "i", Role: entity.RoleInventoryManager})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
