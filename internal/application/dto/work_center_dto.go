package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateWorkCenterRequest body para POST /api/workcenters.
type CreateWorkCenterRequest struct {
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	HourlyCostRate decimal.Decimal `json:"hourly_cost_rate"`
	Status         string          `json:"status"`
	Capacity       int             `json:"capacity"`
	Efficiency     decimal.Decimal `json:"efficiency"`
}

// UpdateWorkCenterRequest body para PUT /api/workcenters/:id; campos nil no cambian.
type UpdateWorkCenterRequest struct {
	Name           *string          `json:"name"`
	Description    *string          `json:"description"`
	HourlyCostRate *decimal.Decimal `json:"hourly_cost_rate"`
	Status         *string          `json:"status"`
	Capacity       *int             `json:"capacity"`
	Efficiency     *decimal.Decimal `json:"efficiency"`
}

// WorkCenterResponse salida de un centro de trabajo.
type WorkCenterResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	HourlyCostRate decimal.Decimal `json:"hourly_cost_rate"`
	Status         string          `json:"status"`
	Capacity       int             `json:"capacity"`
	Efficiency     decimal.Decimal `json:"efficiency"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// UtilizationResponse uso de un centro: minutos reales sobre minutos planificados de órdenes completadas.
type UtilizationResponse struct {
	WorkCenterID       string          `json:"work_center_id"`
	WorkCenterName     string          `json:"work_center_name"`
	CompletedOrders    int             `json:"completed_orders"`
	PlannedMinutes     decimal.Decimal `json:"planned_minutes"`
	ActualMinutes      decimal.Decimal `json:"actual_minutes"`
	UtilizationPercent decimal.Decimal `json:"utilization_percent"`
}
