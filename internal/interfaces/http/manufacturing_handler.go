package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/mrp-api/internal/application/dto"
	"github.com/jhoicas/mrp-api/internal/application/manufacturing"
)

// ManufacturingHandler órdenes de fabricación y sus órdenes de trabajo.
type ManufacturingHandler struct {
	orders     *manufacturing.ManufacturingOrderUseCase
	workOrders *manufacturing.WorkOrderUseCase
	log        zerolog.Logger
}

func NewManufacturingHandler(orders *manufacturing.ManufacturingOrderUseCase, workOrders *manufacturing.WorkOrderUseCase, log zerolog.Logger) *ManufacturingHandler {
	return &ManufacturingHandler{orders: orders, workOrders: workOrders, log: log}
}

// CreateOrder godoc
// @Summary      Crear orden de fabricación
// @Description  Fechas en YYYY-MM-DD. bom_id acepta el ID o el código BOM-NNN.
// @Tags         manufacturing-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateManufacturingOrderRequest  true  "Datos de la orden"
// @Success      201   {object}  dto.ManufacturingOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/manufacturing-orders [post]
func (h *ManufacturingHandler) CreateOrder(c *fiber.Ctx) error {
	var in dto.CreateManufacturingOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.orders.Create(c.UserContext(), GetIdentity(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListOrders godoc
// @Summary      Listar órdenes de fabricación
// @Tags         manufacturing-orders
// @Security     Bearer
// @Produce      json
// @Param        status       query  string  false  "planned | in_progress | completed | cancelled"
// @Param        assignee_id  query  string  false  "Responsable"
// @Param        limit        query  int     false  "Límite"  default(20)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200          {array}  dto.ManufacturingOrderResponse
// @Router       /api/manufacturing-orders [get]
func (h *ManufacturingHandler) ListOrders(c *fiber.Ctx) error {
	out, err := h.orders.List(c.UserContext(), c.Query("status"), c.Query("assignee_id"), pageQuery(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetOrder godoc
// @Summary      Obtener orden de fabricación con sus órdenes de trabajo
// @Tags         manufacturing-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.ManufacturingOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/manufacturing-orders/{id} [get]
func (h *ManufacturingHandler) GetOrder(c *fiber.Ctx) error {
	out, err := h.orders.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// UpdateOrderStatus godoc
// @Summary      Cambiar estado de la orden de fabricación
// @Description  completed solo se alcanza al completar todas sus órdenes de trabajo.
// @Tags         manufacturing-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                                     true  "ID de la orden"
// @Param        body  body  dto.UpdateManufacturingOrderStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.ManufacturingOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/manufacturing-orders/{id}/status [put]
func (h *ManufacturingHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	var in dto.UpdateManufacturingOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.orders.UpdateStatus(c.UserContext(), GetIdentity(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// ListOrderWorkOrders godoc
// @Summary      Órdenes de trabajo de una orden de fabricación
// @Tags         manufacturing-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {array}   dto.WorkOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/manufacturing-orders/{id}/work-orders [get]
func (h *ManufacturingHandler) ListOrderWorkOrders(c *fiber.Ctx) error {
	out, err := h.orders.ListWorkOrders(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// CreateWorkOrder godoc
// @Summary      Agregar orden de trabajo a una orden de fabricación
// @Tags         manufacturing-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID de la orden de fabricación"
// @Param        body  body  dto.CreateWorkOrderRequest  true  "Operación, centro, responsable"
// @Success      201   {object}  dto.WorkOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/manufacturing-orders/{id}/work-orders [post]
func (h *ManufacturingHandler) CreateWorkOrder(c *fiber.Ctx) error {
	var in dto.CreateWorkOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.workOrders.Create(c.UserContext(), GetIdentity(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListWorkOrders godoc
// @Summary      Listar todas las órdenes de trabajo
// @Tags         work-orders
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {array}  dto.WorkOrderResponse
// @Router       /api/work-orders [get]
func (h *ManufacturingHandler) ListWorkOrders(c *fiber.Ctx) error {
	out, err := h.workOrders.List(c.UserContext(), pageQuery(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// ListAssigned godoc
// @Summary      Órdenes de trabajo asignadas al operador autenticado
// @Tags         work-orders
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.WorkOrderResponse
// @Router       /api/work-orders/assigned [get]
func (h *ManufacturingHandler) ListAssigned(c *fiber.Ctx) error {
	out, err := h.workOrders.ListAssigned(c.UserContext(), GetIdentity(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetWorkOrder godoc
// @Summary      Obtener orden de trabajo
// @Tags         work-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden de trabajo"
// @Success      200  {object}  dto.WorkOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/work-orders/{id} [get]
func (h *ManufacturingHandler) GetWorkOrder(c *fiber.Ctx) error {
	out, err := h.workOrders.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// UpdateWorkOrderStatus godoc
// @Summary      Cambiar estado de una orden de trabajo
// @Description  Al completarse descuenta su parte de componentes; la última completa la orden de fabricación.
// @Tags         work-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                            true  "ID de la orden de trabajo"
// @Param        body  body  dto.UpdateWorkOrderStatusRequest  true  "Nuevo estado y comentarios"
// @Success      200   {object}  dto.WorkOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/work-orders/{id}/status [put]
func (h *ManufacturingHandler) UpdateWorkOrderStatus(c *fiber.Ctx) error {
	var in dto.UpdateWorkOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.workOrders.TransitionStatus(c.UserContext(), GetIdentity(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// RecordQuality godoc
// @Summary      Registrar control de calidad
// @Tags         work-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID de la orden de trabajo"
// @Param        body  body  dto.QualityCheckRequest  true  "passed | failed y notas"
// @Success      200   {object}  dto.WorkOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/work-orders/{id}/quality [put]
func (h *ManufacturingHandler) RecordQuality(c *fiber.Ctx) error {
	var in dto.QualityCheckRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.workOrders.RecordQuality(c.UserContext(), GetIdentity(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
