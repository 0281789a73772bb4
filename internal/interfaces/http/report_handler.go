package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/mrp-api/internal/application/dto"
	"github.com/jhoicas/mrp-api/internal/application/reports"
)

// ReportHandler reportes en JSON, PDF o Excel según ?format=.
type ReportHandler struct {
	uc        *reports.ReportsUseCase
	renderers map[string]reports.Renderer
	log       zerolog.Logger
}

// NewReportHandler recibe los exportadores por formato (dto.ReportFormatPDF, dto.ReportFormatExcel).
func NewReportHandler(uc *reports.ReportsUseCase, renderers map[string]reports.Renderer, log zerolog.Logger) *ReportHandler {
	return &ReportHandler{uc: uc, renderers: renderers, log: log}
}

func reportQuery(c *fiber.Ctx) dto.ReportQuery {
	q := dto.ReportQuery{Format: c.Query("format"), From: c.Query("from"), To: c.Query("to")}
	if q.Format == "" {
		q.Format = dto.ReportFormatJSON
	}
	return q
}

// respond valida el formato antes de consultar y exporta el resultado.
func (h *ReportHandler) respond(c *fiber.Ctx, name, format string, load func() (any, reports.Document, error)) error {
	var renderer reports.Renderer
	if format != dto.ReportFormatJSON {
		r, ok := h.renderers[format]
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code: CodeValidation, Message: "formato no soportado (json, pdf, excel)", Field: "format",
			})
		}
		renderer = r
	}
	data, doc, err := load()
	if err != nil {
		return writeError(c, h.log, err)
	}
	if renderer == nil {
		return c.JSON(data)
	}
	body, err := renderer.Render(c.UserContext(), doc)
	if err != nil {
		return writeError(c, h.log, err)
	}
	filename := fmt.Sprintf("%s-%s.%s", name, time.Now().UTC().Format("20060102"), renderer.Extension())
	c.Set(fiber.HeaderContentType, renderer.ContentType())
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(body)
}

// Operator godoc
// @Summary      Reporte del operador
// @Description  Órdenes de trabajo completadas por el usuario autenticado.
// @Tags         reports
// @Security     Bearer
// @Produce      json,application/pdf,application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        format  query  string  false  "json | pdf | excel"  default(json)
// @Param        from    query  string  false  "YYYY-MM-DD"
// @Param        to      query  string  false  "YYYY-MM-DD"
// @Success      200     {object}  dto.OperatorReport
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/reports/operator [get]
func (h *ReportHandler) Operator(c *fiber.Ctx) error {
	q := reportQuery(c)
	return h.respond(c, "reporte-operador", q.Format, func() (any, reports.Document, error) {
		r, err := h.uc.Operator(c.UserContext(), GetIdentity(c), q)
		if err != nil {
			return nil, reports.Document{}, err
		}
		return r, reports.OperatorDocument(r), nil
	})
}

// Manager godoc
// @Summary      Reporte de producción
// @Description  Throughput diario, órdenes vencidas y estados.
// @Tags         reports
// @Security     Bearer
// @Produce      json,application/pdf,application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        format  query  string  false  "json | pdf | excel"  default(json)
// @Param        from    query  string  false  "YYYY-MM-DD"
// @Param        to      query  string  false  "YYYY-MM-DD"
// @Success      200     {object}  dto.ManagerReport
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      403     {object}  dto.ErrorResponse
// @Router       /api/reports/manager [get]
func (h *ReportHandler) Manager(c *fiber.Ctx) error {
	q := reportQuery(c)
	return h.respond(c, "reporte-produccion", q.Format, func() (any, reports.Document, error) {
		r, err := h.uc.Manager(c.UserContext(), GetIdentity(c), q)
		if err != nil {
			return nil, reports.Document{}, err
		}
		return r, reports.ManagerDocument(r), nil
	})
}

// Admin godoc
// @Summary      Reporte general del sistema
// @Tags         reports
// @Security     Bearer
// @Produce      json,application/pdf,application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        format  query  string  false  "json | pdf | excel"  default(json)
// @Success      200     {object}  dto.AdminReport
// @Failure      403     {object}  dto.ErrorResponse
// @Router       /api/reports/admin [get]
func (h *ReportHandler) Admin(c *fiber.Ctx) error {
	q := reportQuery(c)
	return h.respond(c, "reporte-general", q.Format, func() (any, reports.Document, error) {
		r, err := h.uc.Admin(c.UserContext(), GetIdentity(c))
		if err != nil {
			return nil, reports.Document{}, err
		}
		return r, reports.AdminDocument(r), nil
	})
}

// Inventory godoc
// @Summary      Reporte de consumo de inventario
// @Tags         reports
// @Security     Bearer
// @Produce      json,application/pdf,application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        format  query  string  false  "json | pdf | excel"  default(json)
// @Param        from    query  string  false  "YYYY-MM-DD"
// @Param        to      query  string  false  "YYYY-MM-DD"
// @Success      200     {object}  dto.InventoryReport
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      403     {object}  dto.ErrorResponse
// @Router       /api/reports/inventory [get]
func (h *ReportHandler) Inventory(c *fiber.Ctx) error {
	q := reportQuery(c)
	return h.respond(c, "reporte-inventario", q.Format, func() (any, reports.Document, error) {
		r, err := h.uc.Inventory(c.UserContext(), GetIdentity(c), q)
		if err != nil {
			return nil, reports.Document{}, err
		}
		return r, reports.InventoryDocument(r), nil
	})
}
