package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/mrp-api/internal/application/dto"
	"github.com/jhoicas/mrp-api/internal/domain"
)

// Códigos de error de la API.
const (
	CodeInvalidBody        = "INVALID_BODY"
	CodeValidation         = "VALIDATION"
	CodeNotFound           = "NOT_FOUND"
	CodeInvalidTransition  = "INVALID_TRANSITION"
	CodeDuplicate          = "DUPLICATE"
	CodeEmailExists        = "EMAIL_EXISTS"
	CodeInvariantViolation = "INVARIANT_VIOLATION"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeRateLimited        = "RATE_LIMITED"
	CodeInternal           = "INTERNAL"
)

func errorJSON(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: message})
}

func badBody(c *fiber.Ctx) error {
	return errorJSON(c, fiber.StatusBadRequest, CodeInvalidBody, "cuerpo inválido")
}

// writeError traduce un error de caso de uso a la respuesta HTTP. Los 5xx se registran en el log.
func writeError(c *fiber.Ctx, log zerolog.Logger, err error) error {
	var (
		validation *domain.ValidationError
		notFound   *domain.NotFoundError
		transition *domain.TransitionError
	)
	switch {
	case errors.As(err, &validation):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: CodeValidation, Message: validation.Message, Field: validation.Field,
		})
	case errors.Is(err, domain.ErrInvalidInput):
		return errorJSON(c, fiber.StatusBadRequest, CodeValidation, err.Error())
	case errors.As(err, &notFound):
		return errorJSON(c, fiber.StatusNotFound, CodeNotFound, notFound.Error())
	case errors.Is(err, domain.ErrNotFound):
		return errorJSON(c, fiber.StatusNotFound, CodeNotFound, "recurso no encontrado")
	case errors.As(err, &transition), errors.Is(err, domain.ErrConflict):
		return errorJSON(c, fiber.StatusConflict, CodeInvalidTransition, err.Error())
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return errorJSON(c, fiber.StatusConflict, CodeEmailExists, "el email ya está registrado")
	case errors.Is(err, domain.ErrDuplicate):
		return errorJSON(c, fiber.StatusConflict, CodeDuplicate, "el recurso ya existe")
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrUnauthorized):
		return errorJSON(c, fiber.StatusUnauthorized, CodeUnauthorized, "credenciales inválidas")
	case errors.Is(err, domain.ErrForbidden):
		return errorJSON(c, fiber.StatusForbidden, CodeForbidden, "acceso denegado")
	case errors.Is(err, domain.ErrStore):
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("falla de almacenamiento")
		return errorJSON(c, fiber.StatusInternalServerError, CodeInternal, "error interno del servidor")
	case errors.Is(err, domain.ErrInvariantViolation):
		log.Error().Err(err).Str("path", c.Path()).Msg("invariante violada")
		return errorJSON(c, fiber.StatusInternalServerError, CodeInvariantViolation, err.Error())
	}
	log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
	return errorJSON(c, fiber.StatusInternalServerError, CodeInternal, "error interno del servidor")
}

// ErrorHandler manejador global de fiber para errores no tratados por los handlers (404 de ruta, panics recuperados).
func ErrorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code := CodeInternal
			switch fe.Code {
			case fiber.StatusNotFound:
				code = CodeNotFound
			case fiber.StatusMethodNotAllowed, fiber.StatusBadRequest:
				code = CodeInvalidBody
			}
			return errorJSON(c, fe.Code, code, fe.Message)
		}
		return writeError(c, log, err)
	}
}
