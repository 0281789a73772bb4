package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/mrp-api/internal/application/dto"
	"github.com/jhoicas/mrp-api/internal/application/usecase"
)

type WorkCenterHandler struct {
	uc  *usecase.WorkCenterUseCase
	log zerolog.Logger
}

func NewWorkCenterHandler(uc *usecase.WorkCenterUseCase, log zerolog.Logger) *WorkCenterHandler {
	return &WorkCenterHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear centro de trabajo
// @Tags         workcenters
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateWorkCenterRequest  true  "Datos del centro"
// @Success      201   {object}  dto.WorkCenterResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/workcenters [post]
func (h *WorkCenterHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateWorkCenterRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetIdentity(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar centros de trabajo
// @Tags         workcenters
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {array}  dto.WorkCenterResponse
// @Router       /api/workcenters [get]
func (h *WorkCenterHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), pageQuery(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener centro de trabajo
// @Tags         workcenters
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del centro"
// @Success      200  {object}  dto.WorkCenterResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/workcenters/{id} [get]
func (h *WorkCenterHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar centro de trabajo
// @Tags         workcenters
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID del centro"
// @Param        body  body  dto.UpdateWorkCenterRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.WorkCenterResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/workcenters/{id} [put]
func (h *WorkCenterHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateWorkCenterRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetIdentity(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Utilization godoc
// @Summary      Utilización del centro (minutos reales / planificados de órdenes completadas)
// @Tags         workcenters
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del centro"
// @Success      200  {object}  dto.UtilizationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/workcenters/{id}/utilization [get]
func (h *WorkCenterHandler) Utilization(c *fiber.Ctx) error {
	out, err := h.uc.Utilization(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
