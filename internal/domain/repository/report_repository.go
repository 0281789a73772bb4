package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ThroughputRow órdenes de fabricación completadas en un día.
type ThroughputRow struct {
	Day       time.Time
	Completed int
	Units     int
}

// WorkCenterLoadRow carga de un centro de trabajo en un período.
type WorkCenterLoadRow struct {
	WorkCenterID   string
	WorkCenterName string
	Completed      int
	PlannedMinutes decimal.Decimal
	ActualMinutes  decimal.Decimal
}

// StockUsageRow consumo y producción de un producto según el libro de existencias.
type StockUsageRow struct {
	ProductID   string
	ProductName string
	Consumed    decimal.Decimal
	Produced    decimal.Decimal
}

// SystemTotals conteos generales para el reporte de administración.
type SystemTotals struct {
	Users          int
	Products       int
	BOMs           int
	WorkCenters    int
	OrdersByStatus map[string]int
	WorkByStatus   map[string]int
	InventoryUnits decimal.Decimal
}

// ReportRepository consultas de lectura para reportes (no modifican datos).
type ReportRepository interface {
	Throughput(ctx context.Context, from, to time.Time) ([]ThroughputRow, error)
	WorkCenterLoad(ctx context.Context, from, to time.Time) ([]WorkCenterLoadRow, error)
	StockUsage(ctx context.Context, from, to time.Time) ([]StockUsageRow, error)
	Totals(ctx context.Context) (*SystemTotals, error)
}
