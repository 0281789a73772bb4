package manufacturing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/mrp-api/internal/application/dto"
	"github.com/jhoicas/mrp-api/internal/application/inventory"
	"github.com/jhoicas/mrp-api/internal/domain"
	"github.com/jhoicas/mrp-api/internal/domain/entity"
	"github.com/jhoicas/mrp-api/internal/domain/repository"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// WorkOrderUseCase alta de órdenes de trabajo y su ciclo de estados, incluido el cierre
// que consume materia prima y completa la orden de fabricación.
type WorkOrderUseCase struct {
	txRunner    inventory.TxRunner
	workOrders  repository.WorkOrderRepository
	users       repository.UserRepository
	workCenters repository.WorkCenterRepository
	completer   *completer
	cache       inventory.LedgerCache
	recorder    Recorder
	log         zerolog.Logger
	now         func() time.Time
}

// NewWorkOrderUseCase construye el caso de uso. cache y recorder pueden ser nil.
func NewWorkOrderUseCase(
	txRunner inventory.TxRunner,
	workOrders repository.WorkOrderRepository,
	users repository.UserRepository,
	workCenters repository.WorkCenterRepository,
	poster *inventory.StockPoster,
	cache inventory.LedgerCache,
	recorder Recorder,
	opts Options,
	log zerolog.Logger,
) *WorkOrderUseCase {
	if cache == nil {
		cache = inventory.NopLedgerCache{}
	}
	if recorder == nil {
		recorder = NopRecorder{}
	}
	return &WorkOrderUseCase{
		txRunner:    txRunner,
		workOrders:  workOrders,
		users:       users,
		workCenters: workCenters,
		completer:   &completer{poster: poster, recorder: recorder, opts: opts, log: log},
		cache:       cache,
		recorder:    recorder,
		log:         log,
		now:         time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *WorkOrderUseCase) WithClock(now func() time.Time) *WorkOrderUseCase {
	uc.now = now
	return uc
}

// Create agrega una orden de trabajo pendiente a una orden de fabricación abierta.
func (uc *WorkOrderUseCase) Create(ctx context.Context, identity entity.Identity, moID string, in dto.CreateWorkOrderRequest) (*dto.WorkOrderResponse, error) {
	if !identity.IsSupervisor() {
		return nil, domain.ErrForbidden
	}
	assigneeID := strings.TrimSpace(in.AssigneeID)
	if assigneeID == "" {
		return nil, domain.NewValidationError("assignee_id", "el responsable es obligatorio")
	}
	if in.PlannedDuration < 0 {
		return nil, domain.NewValidationError("planned_duration", "la duración planificada no puede ser negativa")
	}
	assignee, err := uc.users.GetByID(ctx, assigneeID)
	if err != nil {
		return nil, err
	}
	if assignee == nil {
		return nil, domain.NewNotFoundError("usuario", assigneeID)
	}
	if !assignee.CanBeAssignedOrders() {
		return nil, domain.NewValidationError("assignee_id", "el responsable debe ser operador o jefe de manufactura")
	}
	if in.WorkCenterID != "" {
		wc, err := uc.workCenters.GetByID(ctx, in.WorkCenterID)
		if err != nil {
			return nil, err
		}
		if wc == nil {
			return nil, domain.NewNotFoundError("centro de trabajo", in.WorkCenterID)
		}
	}

	now := uc.now()
	wo := &entity.WorkOrder{
		ID:              uuid.New().String(),
		MOID:            moID,
		OperationName:   strings.TrimSpace(in.OperationName),
		WorkCenterID:    in.WorkCenterID,
		AssigneeID:      assigneeID,
		Status:          entity.WOStatusPending,
		PlannedDuration: in.PlannedDuration,
		ActualDuration:  decimal.Zero,
		QualityStatus:   entity.QualityPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	err = uc.txRunner.Run(ctx, func(repos inventory.Repos) error {
		mo, err := repos.Orders.GetForUpdate(ctx, moID)
		if err != nil {
			return err
		}
		if mo == nil {
			return domain.NewNotFoundError("orden de fabricación", moID)
		}
		if mo.Status == entity.MOStatusCompleted || mo.Status == entity.MOStatusCancelled {
			return fmt.Errorf("%w: la orden de fabricación está %s", domain.ErrConflict, mo.Status)
		}
		if err := repos.WorkOrders.Create(ctx, wo); err != nil {
			return err
		}
		mo.WorkOrderIDs = append(mo.WorkOrderIDs, wo.ID)
		mo.UpdatedAt = now
		return repos.Orders.Update(ctx, mo)
	})
	if err != nil {
		return nil, err
	}
	out := ToWorkOrderResponse(wo)
	return &out, nil
}

// TransitionStatus cambia el estado de una orden de trabajo.
//
// Al pasar a completed por primera vez descuenta la parte proporcional de cada componente
// antes de guardar el estado; luego, si todas las órdenes de trabajo hermanas están completas,
// completa la orden de fabricación y registra el producto terminado. Repetir el estado actual
// solo actualiza los comentarios. Todo ocurre en una unidad de trabajo con la orden de
// fabricación bloqueada, de modo que los cierres concurrentes se serializan.
func (uc *WorkOrderUseCase) TransitionStatus(ctx context.Context, identity entity.Identity, woID string, in dto.UpdateWorkOrderStatusRequest) (*dto.WorkOrderResponse, error) {
	if strings.TrimSpace(in.Status) == "" {
		return nil, domain.NewValidationError("status", "el estado es obligatorio")
	}
	next, ok := entity.ParseWOStatus(in.Status)
	if !ok {
		return nil, domain.NewValidationError("status", fmt.Sprintf("estado desconocido: %q", in.Status))
	}

	now := uc.now()
	var (
		result      *entity.WorkOrder
		previous    entity.WOStatus
		touched     []string
		moCompleted *entity.ManufacturingOrder
	)
	err := uc.txRunner.Run(ctx, func(repos inventory.Repos) error {
		wo, err := repos.WorkOrders.GetByID(ctx, woID)
		if err != nil {
			return err
		}
		if wo == nil {
			return domain.NewNotFoundError("orden de trabajo", woID)
		}
		if !identity.IsSupervisor() && wo.AssigneeID != identity.UserID {
			return domain.ErrForbidden
		}

		mo, err := repos.Orders.GetForUpdate(ctx, wo.MOID)
		if err != nil {
			return err
		}
		if mo == nil {
			return domain.NewInvariantError("la orden de trabajo %s referencia una orden de fabricación inexistente (%s)", wo.ID, wo.MOID)
		}
		// Releer con la orden bloqueada: otra transición pudo cambiarla mientras esperábamos.
		wo, err = repos.WorkOrders.GetByID(ctx, woID)
		if err != nil {
			return err
		}
		if wo == nil {
			return domain.NewNotFoundError("orden de trabajo", woID)
		}

		previous = wo.Status
		if previous == next {
			if in.Comments != nil {
				wo.Comments = *in.Comments
				wo.UpdatedAt = now
				if err := repos.WorkOrders.Update(ctx, wo); err != nil {
					return err
				}
			}
			result = wo
			return nil
		}
		if !previous.CanTransitionTo(next) {
			return &domain.TransitionError{Entity: "orden de trabajo", From: string(previous), To: string(next)}
		}
		// Una orden de fabricación cerrada no admite avances: nada se consume ni se registra.
		if mo.Status == entity.MOStatusCompleted || mo.Status == entity.MOStatusCancelled {
			return fmt.Errorf("%w: la orden de fabricación está %s", domain.ErrConflict, mo.Status)
		}

		switch next {
		case entity.WOStatusInProgress:
			wo.Start(now)
			if mo.Status == entity.MOStatusPlanned {
				mo.Status = entity.MOStatusInProgress
				start := now
				mo.ActualStart = &start
				mo.UpdatedAt = now
				if err := repos.Orders.Update(ctx, mo); err != nil {
					return err
				}
			}
		case entity.WOStatusCompleted:
			// N = referencias de órdenes de trabajo que guarda la orden de fabricación.
			consumed, err := uc.completer.consume(ctx, repos, mo, wo, len(mo.WorkOrderIDs), now)
			if err != nil {
				return err
			}
			touched = append(touched, consumed...)
			wo.Finish(now)
		}

		wo.Status = next
		if in.Comments != nil {
			wo.Comments = *in.Comments
		}
		wo.UpdatedAt = now
		if err := repos.WorkOrders.Update(ctx, wo); err != nil {
			return err
		}
		result = wo

		if next != entity.WOStatusCompleted {
			return nil
		}
		siblings, err := repos.WorkOrders.ListByMO(ctx, mo.ID)
		if err != nil {
			return err
		}
		if !allCompleted(siblings) {
			return nil
		}
		if !mo.Status.CanComplete() {
			uc.log.Warn().Str("mo_id", mo.ID).Str("status", string(mo.Status)).
				Msg("órdenes de trabajo completas pero la orden de fabricación no admite cierre")
			return nil
		}
		produced, err := uc.completer.postProduction(ctx, repos, mo, now)
		if err != nil {
			return err
		}
		touched = append(touched, produced...)
		mo.Status = entity.MOStatusCompleted
		end := now
		mo.ActualEnd = &end
		mo.UpdatedAt = now
		if err := repos.Orders.Update(ctx, mo); err != nil {
			return err
		}
		moCompleted = mo
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(touched) > 0 {
		uc.cache.Invalidate(ctx, touched...)
	}
	if previous != next {
		uc.recorder.WorkOrderTransition(string(previous), string(next))
		uc.log.Info().Str("wo_id", result.ID).Str("mo_id", result.MOID).
			Str("from", string(previous)).Str("to", string(next)).
			Str("user_id", identity.UserID).Msg("orden de trabajo actualizada")
	}
	if moCompleted != nil {
		uc.recorder.ManufacturingOrderCompleted()
		uc.log.Info().Str("mo_id", moCompleted.ID).Int("quantity", moCompleted.Quantity).
			Msg("orden de fabricación completada")
	}
	out := ToWorkOrderResponse(result)
	return &out, nil
}

// RecordQuality guarda el resultado del control de calidad (passed | failed).
func (uc *WorkOrderUseCase) RecordQuality(ctx context.Context, identity entity.Identity, woID string, in dto.QualityCheckRequest) (*dto.WorkOrderResponse, error) {
	if in.Status != entity.QualityPassed && in.Status != entity.QualityFailed {
		return nil, domain.NewValidationError("status", "el resultado debe ser passed o failed")
	}
	wo, err := uc.workOrders.GetByID(ctx, woID)
	if err != nil {
		return nil, err
	}
	if wo == nil {
		return nil, domain.NewNotFoundError("orden de trabajo", woID)
	}
	if !identity.IsSupervisor() && wo.AssigneeID != identity.UserID {
		return nil, domain.ErrForbidden
	}
	wo.QualityStatus = in.Status
	wo.QualityNotes = in.Notes
	wo.UpdatedAt = uc.now()
	if err := uc.workOrders.Update(ctx, wo); err != nil {
		return nil, err
	}
	out := ToWorkOrderResponse(wo)
	return &out, nil
}

// Get devuelve una orden de trabajo.
func (uc *WorkOrderUseCase) Get(ctx context.Context, woID string) (*dto.WorkOrderResponse, error) {
	wo, err := uc.workOrders.GetByID(ctx, woID)
	if err != nil {
		return nil, err
	}
	if wo == nil {
		return nil, domain.NewNotFoundError("orden de trabajo", woID)
	}
	out := ToWorkOrderResponse(wo)
	return &out, nil
}

// ListAssigned órdenes de trabajo asignadas a quien consulta.
func (uc *WorkOrderUseCase) ListAssigned(ctx context.Context, identity entity.Identity) ([]dto.WorkOrderResponse, error) {
	list, err := uc.workOrders.ListByAssignee(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}
	return ToWorkOrderResponses(list), nil
}

// List todas las órdenes de trabajo, paginadas.
func (uc *WorkOrderUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.WorkOrderResponse, error) {
	page.DefaultPage()
	list, err := uc.workOrders.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return ToWorkOrderResponses(list), nil
}
