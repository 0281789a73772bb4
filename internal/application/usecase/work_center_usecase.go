package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/mrp-api/internal/application/dto"
	"github.com/jhoicas/mrp-api/internal/domain"
	"github.com/jhoicas/mrp-api/internal/domain/entity"
	"github.com/jhoicas/mrp-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// WorkCenterUseCase gestión de centros de trabajo y su utilización.
type WorkCenterUseCase struct {
	repo       repository.WorkCenterRepository
	workOrders repository.WorkOrderRepository
}

// NewWorkCenterUseCase construye el caso de uso.
func NewWorkCenterUseCase(repo repository.WorkCenterRepository, workOrders repository.WorkOrderRepository) *WorkCenterUseCase {
	return &WorkCenterUseCase{repo: repo, workOrders: workOrders}
}

// Create da de alta un centro con nombre único. Estado vacío = active.
func (uc *WorkCenterUseCase) Create(ctx context.Context, identity entity.Identity, in dto.CreateWorkCenterRequest) (*dto.WorkCenterResponse, error) {
	if !identity.IsSupervisor() {
		return nil, domain.ErrForbidden
	}
	status := in.Status
	if status == "" {
		status = entity.WorkCenterActive
	}
	now := time.Now()
	wc := &entity.WorkCenter{
		ID:             uuid.New().String(),
		Name:           strings.TrimSpace(in.Name),
		Description:    in.Description,
		HourlyCostRate: in.HourlyCostRate,
		Status:         status,
		Capacity:       in.Capacity,
		Efficiency:     in.Efficiency,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := validateWorkCenter(wc); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByName(ctx, wc.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if err := uc.repo.Create(ctx, wc); err != nil {
		return nil, err
	}
	out := toWorkCenterResponse(wc)
	return &out, nil
}

// Get obtiene un centro por ID.
func (uc *WorkCenterUseCase) Get(ctx context.Context, id string) (*dto.WorkCenterResponse, error) {
	wc, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toWorkCenterResponse(wc)
	return &out, nil
}

// List lista centros ordenados por nombre.
func (uc *WorkCenterUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.WorkCenterResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.WorkCenterResponse, 0, len(list))
	for _, wc := range list {
		out = append(out, toWorkCenterResponse(wc))
	}
	return out, nil
}

// Update aplica los campos presentes.
func (uc *WorkCenterUseCase) Update(ctx context.Context, identity entity.Identity, id string, in dto.UpdateWorkCenterRequest) (*dto.WorkCenterResponse, error) {
	if !identity.IsSupervisor() {
		return nil, domain.ErrForbidden
	}
	wc, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		wc.Name = strings.TrimSpace(*in.Name)
		other, err := uc.repo.GetByName(ctx, wc.Name)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != wc.ID {
			return nil, domain.ErrDuplicate
		}
	}
	if in.Description != nil {
		wc.Description = *in.Description
	}
	if in.HourlyCostRate != nil {
		wc.HourlyCostRate = *in.HourlyCostRate
	}
	if in.Status != nil {
		wc.Status = *in.Status
	}
	if in.Capacity != nil {
		wc.Capacity = *in.Capacity
	}
	if in.Efficiency != nil {
		wc.Efficiency = *in.Efficiency
	}
	if err := validateWorkCenter(wc); err != nil {
		return nil, err
	}
	wc.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, wc); err != nil {
		return nil, err
	}
	out := toWorkCenterResponse(wc)
	return &out, nil
}

// Utilization minutos reales sobre planificados de las órdenes de trabajo completadas en el centro.
func (uc *WorkCenterUseCase) Utilization(ctx context.Context, id string) (*dto.UtilizationResponse, error) {
	wc, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	wos, err := uc.workOrders.ListByWorkCenter(ctx, id)
	if err != nil {
		return nil, err
	}
	out := &dto.UtilizationResponse{
		WorkCenterID:       wc.ID,
		WorkCenterName:     wc.Name,
		PlannedMinutes:     decimal.Zero,
		ActualMinutes:      decimal.Zero,
		UtilizationPercent: decimal.Zero,
	}
	for _, wo := range wos {
		if wo.Status != entity.WOStatusCompleted {
			continue
		}
		out.CompletedOrders++
		out.PlannedMinutes = out.PlannedMinutes.Add(decimal.NewFromInt(int64(wo.PlannedDuration)))
		out.ActualMinutes = out.ActualMinutes.Add(wo.ActualDuration)
	}
	out.UtilizationPercent = UtilizationPercent(out.ActualMinutes, out.PlannedMinutes)
	return out, nil
}

// UtilizationPercent actual/planned en porcentaje con dos decimales; 0 sin minutos planificados.
func UtilizationPercent(actual, planned decimal.Decimal) decimal.Decimal {
	if !planned.IsPositive() {
		return decimal.Zero
	}
	return actual.Div(planned).Mul(hundred).Round(2)
}

func (uc *WorkCenterUseCase) find(ctx context.Context, id string) (*entity.WorkCenter, error) {
	wc, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if wc == nil {
		return nil, domain.NewNotFoundError("centro de trabajo", id)
	}
	return wc, nil
}

func validateWorkCenter(wc *entity.WorkCenter) error {
	switch {
	case wc.Name == "":
		return domain.NewValidationError("name", "el nombre es obligatorio")
	case !entity.ValidWorkCenterStatus(wc.Status):
		return domain.NewValidationError("status", "estado debe ser active, inactive o maintenance")
	case wc.HourlyCostRate.IsNegative():
		return domain.NewValidationError("hourly_cost_rate", "el costo por hora no puede ser negativo")
	case wc.Capacity < 0:
		return domain.NewValidationError("capacity", "la capacidad no puede ser negativa")
	case wc.Efficiency.IsNegative() || wc.Efficiency.GreaterThan(hundred):
		return domain.NewValidationError("efficiency", "la eficiencia debe estar entre 0 y 100")
	}
	return nil
}

func toWorkCenterResponse(wc *entity.WorkCenter) dto.WorkCenterResponse {
	return dto.WorkCenterResponse{
		ID:             wc.ID,
		Name:           wc.Name,
		Description:    wc.Description,
		HourlyCostRate: wc.HourlyCostRate,
		Status:         wc.Status,
		Capacity:       wc.Capacity,
		Efficiency:     wc.Efficiency,
		CreatedAt:      wc.CreatedAt,
		UpdatedAt:      wc.UpdatedAt,
	}
}
