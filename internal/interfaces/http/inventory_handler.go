package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/mrp-api/internal/application/dto"
	"github.com/jhoicas/mrp-api/internal/application/inventory"
)

// InventoryHandler existencias y libro de movimientos (protegido).
type InventoryHandler struct {
	uc     *inventory.InventoryUseCase
	ledger *inventory.LedgerUseCase
	log    zerolog.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.InventoryUseCase, ledger *inventory.LedgerUseCase, log zerolog.Logger) *InventoryHandler {
	return &InventoryHandler{uc: uc, ledger: ledger, log: log}
}

// List godoc
// @Summary      Listar existencias
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {array}  dto.InventoryResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), pageQuery(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Adjust godoc
// @Summary      Ajuste manual de existencias
// @Description  Suma quantity_change al saldo; si el ítem es un producto se anota en el libro.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustInventoryRequest  true  "item_name y quantity_change"
// @Success      200   {object}  dto.InventoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/inventory [put]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Adjust(c.UserContext(), GetIdentity(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Ledger godoc
// @Summary      Libro de movimientos de un producto
// @Description  Entradas de la más reciente a la más antigua con totales.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200        {object}  dto.LedgerResponse
// @Failure      400        {object}  dto.ErrorResponse
// @Router       /api/stock-ledger/{productId} [get]
func (h *InventoryHandler) Ledger(c *fiber.Ctx) error {
	out, err := h.ledger.Query(c.UserContext(), c.Params("productId"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// LedgerByReference godoc
// @Summary      Movimientos generados por una orden
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        reference  query  string  true  "WO-<id> o MO-<id>"
// @Success      200        {array}   dto.LedgerEntryResponse
// @Failure      400        {object}  dto.ErrorResponse
// @Router       /api/stock-ledger [get]
func (h *InventoryHandler) LedgerByReference(c *fiber.Ctx) error {
	out, err := h.ledger.ListByReference(c.UserContext(), c.Query("reference"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
