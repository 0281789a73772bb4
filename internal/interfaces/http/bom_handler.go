package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/mrp-api/internal/application/dto"
	"github.com/jhoicas/mrp-api/internal/application/usecase"
)

// BOMHandler listas de materiales.
type BOMHandler struct {
	uc  *usecase.BOMUseCase
	log zerolog.Logger
}

func NewBOMHandler(uc *usecase.BOMUseCase, log zerolog.Logger) *BOMHandler {
	return &BOMHandler{uc: uc, log: log}
}

// NextCodeResponse siguiente código BOM-NNN disponible.
type NextCodeResponse struct {
	Code string `json:"code"`
}

// Create godoc
// @Summary      Crear lista de materiales
// @Description  Sin code se asigna el siguiente BOM-NNN. Productos inexistentes se crean al vuelo.
// @Tags         boms
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBOMRequest  true  "Producto, componentes y operaciones"
// @Success      201   {object}  dto.BOMResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/boms [post]
func (h *BOMHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBOMRequest
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
// @Summary      Listar listas de materiales
// @Tags         boms
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {array}  dto.BOMResponse
// @Router       /api/boms [get]
func (h *BOMHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), pageQuery(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// NextCode godoc
// @Summary      Siguiente código de lista de materiales
// @Tags         boms
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  NextCodeResponse
// @Router       /api/boms/next-code [get]
func (h *BOMHandler) NextCode(c *fiber.Ctx) error {
	code, err := h.uc.NextCode(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(NextCodeResponse{Code: code})
}

// Get godoc
// @Summary      Obtener lista de materiales
// @Tags         boms
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la lista"
// @Success      200  {object}  dto.BOMResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/boms/{id} [get]
func (h *BOMHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar lista de materiales
// @Tags         boms
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID de la lista"
// @Param        body  body  dto.UpdateBOMRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.BOMResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/boms/{id} [put]
func (h *BOMHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateBOMRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetIdentity(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar lista de materiales
// @Tags         boms
// @Security     Bearer
// @Param        id   path  string  true  "ID de la lista"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/boms/{id} [delete]
func (h *BOMHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetIdentity(c), c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
