package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un centro de trabajo.
const (
	WorkCenterActive      = "active"
	WorkCenterInactive    = "inactive"
	WorkCenterMaintenance = "maintenance"
)

// WorkCenter estación o línea donde se ejecutan las operaciones.
type WorkCenter struct {
	ID             string
	Name           string // único
	Description    string
	HourlyCostRate decimal.Decimal
	Status         string
	Capacity       int             // unidades por hora
	Efficiency     decimal.Decimal // porcentaje 0..100
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ValidWorkCenterStatus indica si s es un estado soportado.
func ValidWorkCenterStatus(s string) bool {
	switch s {
	case WorkCenterActive, WorkCenterInactive, WorkCenterMaintenance:
		return true
	}
	return false
}
