package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInvariantViolation = errors.New("invariante de dominio violada")
	ErrStore              = errors.New("error de almacenamiento")
)

// ValidationError describe un campo de entrada rechazado. Envuelve ErrInvalidInput.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NewValidationError construye un ValidationError.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NotFoundError indica qué entidad no existe. Envuelve ErrNotFound.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s no encontrado: %s", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NewNotFoundError construye un NotFoundError.
func NewNotFoundError(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// TransitionError indica un cambio de estado no permitido por la tabla de transiciones.
type TransitionError struct {
	Entity string
	From   string
	To     string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: transición no permitida de %q a %q", e.Entity, e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrConflict }

// InvariantError indica que los datos persistidos contradicen una regla del dominio.
type InvariantError struct {
	Message string
}

func (e *InvariantError) Error() string { return e.Message }

func (e *InvariantError) Unwrap() error { return ErrInvariantViolation }

// NewInvariantError construye un InvariantError.
func NewInvariantError(format string, args ...any) error {
	return &InvariantError{Message: fmt.Sprintf(format, args...)}
}
