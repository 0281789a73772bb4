package manufacturing

import (
	"context"
	"fmt"
	"strconv"
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

// ManufacturingOrderUseCase alta, consulta y cambios manuales de estado de órdenes de fabricación.
type ManufacturingOrderUseCase struct {
	txRunner   inventory.TxRunner
	orders     repository.ManufacturingOrderRepository
	workOrders repository.WorkOrderRepository
	boms       repository.BOMRepository
	users      repository.UserRepository
	loc        *time.Location
	log        zerolog.Logger
	now        func() time.Time
}

// NewManufacturingOrderUseCase construye el caso de uso. loc decide qué día es "hoy" (nil = UTC).
func NewManufacturingOrderUseCase(
	txRunner inventory.TxRunner,
	orders repository.ManufacturingOrderRepository,
	workOrders repository.WorkOrderRepository,
	boms repository.BOMRepository,
	users repository.UserRepository,
	loc *time.Location,
	log zerolog.Logger,
) *ManufacturingOrderUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &ManufacturingOrderUseCase{
		txRunner:   txRunner,
		orders:     orders,
		workOrders: workOrders,
		boms:       boms,
		users:      users,
		loc:        loc,
		log:        log,
		now:        time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *ManufacturingOrderUseCase) WithClock(now func() time.Time) *ManufacturingOrderUseCase {
	uc.now = now
	return uc
}

// Create valida la solicitud y guarda una orden planificada con la copia de los componentes
// de la lista de materiales (cantidad por unidad × cantidad de la orden). Cualquier error
// de validación deja el almacenamiento sin cambios.
func (uc *ManufacturingOrderUseCase) Create(ctx context.Context, identity entity.Identity, in dto.CreateManufacturingOrderRequest) (*dto.ManufacturingOrderResponse, error) {
	if !identity.HasRole(entity.RoleAdmin, entity.RoleManufacturingManager, entity.RoleOperator) {
		return nil, domain.ErrForbidden
	}
	bomRef := strings.TrimSpace(in.BOMID)
	assigneeID := strings.TrimSpace(in.AssigneeID)
	required := []struct{ field, value string }{
		{"bom_id", bomRef},
		{"quantity", strings.TrimSpace(in.Quantity.String())},
		{"schedule_start", strings.TrimSpace(in.ScheduleStart)},
		{"deadline", strings.TrimSpace(in.Deadline)},
		{"assignee_id", assigneeID},
	}
	for _, r := range required {
		if r.value == "" {
			return nil, domain.NewValidationError(r.field, "campo obligatorio")
		}
	}

	quantity, err := strconv.Atoi(strings.TrimSpace(in.Quantity.String()))
	if err != nil || quantity <= 0 {
		return nil, domain.NewValidationError("quantity", "la cantidad debe ser un entero positivo")
	}

	start, err := time.ParseInLocation(dto.DateLayout, strings.TrimSpace(in.ScheduleStart), uc.loc)
	if err != nil {
		return nil, domain.NewValidationError("schedule_start", "formato de fecha inválido, use YYYY-MM-DD")
	}
	deadline, err := time.ParseInLocation(dto.DateLayout, strings.TrimSpace(in.Deadline), uc.loc)
	if err != nil {
		return nil, domain.NewValidationError("deadline", "formato de fecha inválido, use YYYY-MM-DD")
	}
	if !deadline.After(start) {
		return nil, domain.NewValidationError("deadline", "la fecha límite debe ser posterior a la fecha de inicio")
	}
	if start.Before(uc.today()) {
		return nil, domain.NewValidationError("schedule_start", "la fecha de inicio no puede estar en el pasado")
	}

	priority := strings.ToLower(strings.TrimSpace(in.Priority))
	switch priority {
	case "":
		priority = entity.PriorityMedium
	case entity.PriorityLow, entity.PriorityMedium, entity.PriorityHigh:
	default:
		return nil, domain.NewValidationError("priority", "la prioridad debe ser low, medium o high")
	}

	bom, err := uc.findBOM(ctx, bomRef)
	if err != nil {
		return nil, err
	}
	if bom == nil {
		return nil, domain.NewNotFoundError("lista de materiales", bomRef)
	}
	if !bom.IsActive {
		return nil, domain.NewValidationError("bom_id", "la lista de materiales está inactiva")
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

	now := uc.now()
	mo := &entity.ManufacturingOrder{
		ID:                 uuid.New().String(),
		BOMID:              bom.ID,
		ProductID:          bom.ProductID,
		ProductName:        bom.ProductName,
		Quantity:           quantity,
		Status:             entity.MOStatusPlanned,
		ScheduleStart:      start,
		Deadline:           deadline,
		AssigneeID:         assigneeID,
		Priority:           priority,
		Notes:              strings.TrimSpace(in.Notes),
		RequiredComponents: snapshotComponents(bom, quantity),
		WorkOrderIDs:       []string{},
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := uc.orders.Create(ctx, mo); err != nil {
		return nil, err
	}
	uc.log.Info().Str("mo_id", mo.ID).Str("bom", bom.Code).Int("quantity", quantity).
		Str("user_id", identity.UserID).Msg("orden de fabricación creada")
	out := ToManufacturingOrderResponse(mo, nil)
	return &out, nil
}

func (uc *ManufacturingOrderUseCase) today() time.Time {
	n := uc.now().In(uc.loc)
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, uc.loc)
}

// findBOM acepta el id o el código ("BOM-001").
func (uc *ManufacturingOrderUseCase) findBOM(ctx context.Context, ref string) (*entity.BillOfMaterials, error) {
	if _, ok := entity.ParseBOMCode(ref); ok {
		return uc.boms.GetByCode(ctx, ref)
	}
	return uc.boms.GetByID(ctx, ref)
}

func snapshotComponents(bom *entity.BillOfMaterials, quantity int) []entity.Component {
	out := make([]entity.Component, 0, len(bom.Items))
	q := decimal.NewFromInt(int64(quantity))
	for _, item := range bom.Items {
		out = append(out, entity.Component{
			ProductID: item.ProductID,
			Item:      item.Name,
			Quantity:  item.Quantity.Mul(q),
		})
	}
	return out
}

// Get devuelve la orden con sus órdenes de trabajo.
func (uc *ManufacturingOrderUseCase) Get(ctx context.Context, id string) (*dto.ManufacturingOrderResponse, error) {
	mo, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if mo == nil {
		return nil, domain.NewNotFoundError("orden de fabricación", id)
	}
	wos, err := uc.workOrders.ListByMO(ctx, id)
	if err != nil {
		return nil, err
	}
	out := ToManufacturingOrderResponse(mo, wos)
	return &out, nil
}

// List lista órdenes con filtros opcionales por estado y responsable.
func (uc *ManufacturingOrderUseCase) List(ctx context.Context, status, assigneeID string, page dto.PageRequest) ([]dto.ManufacturingOrderResponse, error) {
	if status != "" {
		if _, ok := entity.ParseMOStatus(status); !ok {
			return nil, domain.NewValidationError("status", fmt.Sprintf("estado desconocido: %q", status))
		}
	}
	page.DefaultPage()
	list, err := uc.orders.List(ctx, repository.MOFilter{
		Status:     status,
		AssigneeID: assigneeID,
		Limit:      page.Limit,
		Offset:     page.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.ManufacturingOrderResponse, 0, len(list))
	for _, mo := range list {
		out = append(out, ToManufacturingOrderResponse(mo, nil))
	}
	return out, nil
}

// UpdateStatus cambio manual de estado. completed no se acepta: lo fija el cierre de la
// última orden de trabajo.
func (uc *ManufacturingOrderUseCase) UpdateStatus(ctx context.Context, identity entity.Identity, id string, in dto.UpdateManufacturingOrderStatusRequest) (*dto.ManufacturingOrderResponse, error) {
	if !identity.IsSupervisor() {
		return nil, domain.ErrForbidden
	}
	if strings.TrimSpace(in.Status) == "" {
		return nil, domain.NewValidationError("status", "el estado es obligatorio")
	}
	next, ok := entity.ParseMOStatus(in.Status)
	if !ok {
		return nil, domain.NewValidationError("status", fmt.Sprintf("estado desconocido: %q", in.Status))
	}

	now := uc.now()
	var result *entity.ManufacturingOrder
	err := uc.txRunner.Run(ctx, func(repos inventory.Repos) error {
		mo, err := repos.Orders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if mo == nil {
			return domain.NewNotFoundError("orden de fabricación", id)
		}
		result = mo
		if mo.Status == next {
			return nil
		}
		if !mo.Status.CanTransitionTo(next) {
			return &domain.TransitionError{Entity: "orden de fabricación", From: string(mo.Status), To: string(next)}
		}
		if next == entity.MOStatusInProgress && mo.ActualStart == nil {
			start := now
			mo.ActualStart = &start
		}
		mo.Status = next
		mo.UpdatedAt = now
		return repos.Orders.Update(ctx, mo)
	})
	if err != nil {
		return nil, err
	}
	out := ToManufacturingOrderResponse(result, nil)
	return &out, nil
}

// ListWorkOrders órdenes de trabajo de una orden de fabricación.
func (uc *ManufacturingOrderUseCase) ListWorkOrders(ctx context.Context, moID string) ([]dto.WorkOrderResponse, error) {
	mo, err := uc.orders.GetByID(ctx, moID)
	if err != nil {
		return nil, err
	}
	if mo == nil {
		return nil, domain.NewNotFoundError("orden de fabricación", moID)
	}
	wos, err := uc.workOrders.ListByMO(ctx, moID)
	if err != nil {
		return nil, err
	}
	return ToWorkOrderResponses(wos), nil
}
