package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Formatos de salida de reportes.
const (
	ReportFormatJSON  = "json"
	ReportFormatPDF   = "pdf"
	ReportFormatExcel = "excel"
)

// ReportQuery parámetros comunes de reportes (fechas YYYY-MM-DD, por defecto últimos 30 días).
type ReportQuery struct {
	Format string `query:"format"`
	From   string `query:"from"`
	To     string `query:"to"`
}

// OperatorReport órdenes de trabajo completadas por el operador en el período.
type OperatorReport struct {
	UserID       string              `json:"user_id"`
	From         time.Time           `json:"from"`
	To           time.Time           `json:"to"`
	Completed    int                 `json:"completed"`
	TotalMinutes decimal.Decimal     `json:"total_minutes"`
	WorkOrders   []WorkOrderResponse `json:"work_orders"`
}

// ThroughputPoint producción de un día.
type ThroughputPoint struct {
	Day       string `json:"day"`
	Completed int    `json:"completed"`
	Units     int    `json:"units"`
}

// OverdueOrder orden abierta con la fecha límite vencida.
type OverdueOrder struct {
	ID          string `json:"id"`
	ProductName string `json:"product_name"`
	Deadline    string `json:"deadline"`
	Status      string `json:"status"`
	DaysLate    int    `json:"days_late"`
}

// ManagerReport rendimiento, retrasos y uso de centros en el período.
type ManagerReport struct {
	From        time.Time             `json:"from"`
	To          time.Time             `json:"to"`
	Throughput  []ThroughputPoint     `json:"throughput"`
	Overdue     []OverdueOrder        `json:"overdue"`
	Utilization []UtilizationResponse `json:"utilization"`
}

// AdminReport conteos generales del sistema.
type AdminReport struct {
	Users          int             `json:"users"`
	Products       int             `json:"products"`
	BOMs           int             `json:"boms"`
	WorkCenters    int             `json:"work_centers"`
	OrdersByStatus map[string]int  `json:"orders_by_status"`
	WorkByStatus   map[string]int  `json:"work_orders_by_status"`
	InventoryUnits decimal.Decimal `json:"inventory_units"`
}

// StockUsageDTO consumo y producción de un producto.
type StockUsageDTO struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Consumed    decimal.Decimal `json:"consumed"`
	Produced    decimal.Decimal `json:"produced"`
}

// InventoryReport uso de existencias en el período y existencias actuales.
type InventoryReport struct {
	From  time.Time           `json:"from"`
	To    time.Time           `json:"to"`
	Usage []StockUsageDTO     `json:"usage"`
	Stock []InventoryResponse `json:"stock"`
}
