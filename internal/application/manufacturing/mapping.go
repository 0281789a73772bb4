package manufacturing

import (
	"github.com/jhoicas/mrp-api/internal/application/dto"
	"github.com/jhoicas/mrp-api/internal/domain/entity"
)

// ToManufacturingOrderResponse mapea la orden; wos nil omite el detalle de órdenes de trabajo.
func ToManufacturingOrderResponse(mo *entity.ManufacturingOrder, wos []*entity.WorkOrder) dto.ManufacturingOrderResponse {
	components := make([]dto.ComponentDTO, 0, len(mo.RequiredComponents))
	for _, c := range mo.RequiredComponents {
		components = append(components, dto.ComponentDTO{ProductID: c.ProductID, Item: c.Item, Quantity: c.Quantity})
	}
	ids := mo.WorkOrderIDs
	if ids == nil {
		ids = []string{}
	}
	out := dto.ManufacturingOrderResponse{
		ID:                 mo.ID,
		BOMID:              mo.BOMID,
		ProductID:          mo.ProductID,
		ProductName:        mo.ProductName,
		Quantity:           mo.Quantity,
		Status:             string(mo.Status),
		ScheduleStart:      mo.ScheduleStart.Format(dto.DateLayout),
		Deadline:           mo.Deadline.Format(dto.DateLayout),
		AssigneeID:         mo.AssigneeID,
		Priority:           mo.Priority,
		Notes:              mo.Notes,
		RequiredComponents: components,
		WorkOrderIDs:       ids,
		ActualStart:        mo.ActualStart,
		ActualEnd:          mo.ActualEnd,
		CreatedAt:          mo.CreatedAt,
		UpdatedAt:          mo.UpdatedAt,
	}
	if wos != nil {
		out.WorkOrders = ToWorkOrderResponses(wos)
	}
	return out
}

// ToWorkOrderResponse mapea entidad a DTO.
func ToWorkOrderResponse(wo *entity.WorkOrder) dto.WorkOrderResponse {
	return dto.WorkOrderResponse{
		ID:              wo.ID,
		MOID:            wo.MOID,
		OperationName:   wo.OperationName,
		WorkCenterID:    wo.WorkCenterID,
		AssigneeID:      wo.AssigneeID,
		Status:          string(wo.Status),
		Comments:        wo.Comments,
		PlannedDuration: wo.PlannedDuration,
		ActualDuration:  wo.ActualDuration,
		QualityStatus:   wo.QualityStatus,
		QualityNotes:    wo.QualityNotes,
		StartTime:       wo.StartTime,
		EndTime:         wo.EndTime,
		CreatedAt:       wo.CreatedAt,
		UpdatedAt:       wo.UpdatedAt,
	}
}

// ToWorkOrderResponses mapea una lista conservando el orden.
func ToWorkOrderResponses(list []*entity.WorkOrder) []dto.WorkOrderResponse {
	out := make([]dto.WorkOrderResponse, 0, len(list))
	for _, wo := range list {
		out = append(out, ToWorkOrderResponse(wo))
	}
	return out
}
