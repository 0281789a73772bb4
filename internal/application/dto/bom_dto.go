package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BOMItemRequest materia prima por unidad de producto terminado.
type BOMItemRequest struct {
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
	Unit     string          `json:"unit"`
}

// BOMOperationRequest operación de fabricación.
type BOMOperationRequest struct {
	Name         string `json:"name"`
	WorkCenterID string `json:"work_center_id"`
	TimeRequired int    `json:"time_required"`
}

// CreateBOMRequest body para POST /api/boms. Code vacío = siguiente "BOM-NNN".
type CreateBOMRequest struct {
	Code        string                `json:"code"`
	ProductName string                `json:"product_name"`
	Items       []BOMItemRequest      `json:"items"`
	Operations  []BOMOperationRequest `json:"operations"`
}

// UpdateBOMRequest body para PUT /api/boms/:id; campos nil no cambian.
type UpdateBOMRequest struct {
	Code        *string               `json:"code"`
	ProductName *string               `json:"product_name"`
	Items       []BOMItemRequest      `json:"items"`
	Operations  []BOMOperationRequest `json:"operations"`
	IsActive    *bool                 `json:"is_active"`
}

// BOMItemResponse ítem de una lista de materiales.
type BOMItemResponse struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	Unit      string          `json:"unit"`
}

// BOMOperationResponse operación de una lista de materiales.
type BOMOperationResponse struct {
	Name         string `json:"name"`
	WorkCenterID string `json:"work_center_id,omitempty"`
	TimeRequired int    `json:"time_required"`
}

// BOMResponse salida de una lista de materiales.
type BOMResponse struct {
	ID          string                 `json:"id"`
	Code        string                 `json:"code"`
	ProductID   string                 `json:"product_id"`
	ProductName string                 `json:"product_name"`
	Items       []BOMItemResponse      `json:"items"`
	Operations  []BOMOperationResponse `json:"operations"`
	IsActive    bool                   `json:"is_active"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}
