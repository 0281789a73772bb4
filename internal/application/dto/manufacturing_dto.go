package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout formato de fechas de programación (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// CreateManufacturingOrderRequest body para POST /api/manufacturing-orders.
// Quantity acepta número o texto numérico ("5").
type CreateManufacturingOrderRequest struct {
	BOMID         string      `json:"bom_id"`
	Quantity      json.Number `json:"quantity"`
	ScheduleStart string      `json:"schedule_start"`
	Deadline      string      `json:"deadline"`
	AssigneeID    string      `json:"assignee_id"`
	Priority      string      `json:"priority"`
	Notes         string      `json:"notes"`
}

// UpdateManufacturingOrderStatusRequest cambio manual de estado de una orden de fabricación.
type UpdateManufacturingOrderStatusRequest struct {
	Status string `json:"status"`
}

// ComponentDTO materia prima reservada por una orden.
type ComponentDTO struct {
	ProductID string          `json:"product_id,omitempty"`
	Item      string          `json:"item"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// ManufacturingOrderResponse salida de una orden de fabricación.
type ManufacturingOrderResponse struct {
	ID                 string              `json:"id"`
	BOMID              string              `json:"bom_id"`
	ProductID          string              `json:"product_id,omitempty"`
	ProductName        string              `json:"product_name"`
	Quantity           int                 `json:"quantity"`
	Status             string              `json:"status"`
	ScheduleStart      string              `json:"schedule_start"`
	Deadline           string              `json:"deadline"`
	AssigneeID         string              `json:"assignee_id"`
	Priority           string              `json:"priority"`
	Notes              string              `json:"notes,omitempty"`
	RequiredComponents []ComponentDTO      `json:"required_components"`
	WorkOrderIDs       []string            `json:"work_order_ids"`
	WorkOrders         []WorkOrderResponse `json:"work_orders,omitempty"`
	ActualStart        *time.Time          `json:"actual_start,omitempty"`
	ActualEnd          *time.Time          `json:"actual_end,omitempty"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

// CreateWorkOrderRequest body para POST /api/manufacturing-orders/:id/work-orders.
type CreateWorkOrderRequest struct {
	OperationName   string `json:"operation_name"`
	WorkCenterID    string `json:"work_center_id"`
	AssigneeID      string `json:"assignee_id"`
	PlannedDuration int    `json:"planned_duration"`
}

// UpdateWorkOrderStatusRequest body para PUT /api/work-orders/:id/status.
// Comments nil conserva los comentarios actuales.
type UpdateWorkOrderStatusRequest struct {
	Status   string  `json:"status"`
	Comments *string `json:"comments"`
}

// QualityCheckRequest resultado del control de calidad de una orden de trabajo.
type QualityCheckRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// WorkOrderResponse salida de una orden de trabajo.
type WorkOrderResponse struct {
	ID              string          `json:"id"`
	MOID            string          `json:"mo_id"`
	OperationName   string          `json:"operation_name"`
	WorkCenterID    string          `json:"work_center_id,omitempty"`
	AssigneeID      string          `json:"assignee_id"`
	Status          string          `json:"status"`
	Comments        string          `json:"comments,omitempty"`
	PlannedDuration int             `json:"planned_duration"`
	ActualDuration  decimal.Decimal `json:"actual_duration"`
	QualityStatus   string          `json:"quality_status"`
	QualityNotes    string          `json:"quality_notes,omitempty"`
	StartTime       *time.Time      `json:"start_time,omitempty"`
	EndTime         *time.Time      `json:"end_time,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
