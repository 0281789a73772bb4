package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MOStatus estado de una orden de fabricación.
type MOStatus string

const (
	MOStatusPlanned    MOStatus = "planned"
	MOStatusInProgress MOStatus = "in_progress"
	MOStatusCompleted  MOStatus = "completed"
	MOStatusCancelled  MOStatus = "cancelled"
)

// Prioridades de una orden de fabricación.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// moManualTransitions cambios de estado que un usuario puede pedir directamente.
// completed solo se alcanza cuando todas las órdenes de trabajo terminan.
var moManualTransitions = map[MOStatus][]MOStatus{
	MOStatusPlanned:    {MOStatusInProgress, MOStatusCancelled},
	MOStatusInProgress: {MOStatusPlanned, MOStatusCancelled},
	MOStatusCancelled:  {MOStatusPlanned},
	MOStatusCompleted:  {},
}

// ParseMOStatus valida un estado recibido como texto.
func ParseMOStatus(s string) (MOStatus, bool) {
	st := MOStatus(s)
	_, ok := moManualTransitions[st]
	return st, ok
}

// CanTransitionTo indica si un usuario puede mover la orden de s a next.
func (s MOStatus) CanTransitionTo(next MOStatus) bool {
	for _, allowed := range moManualTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// CanComplete indica si la orden admite la finalización automática.
func (s MOStatus) CanComplete() bool {
	return s == MOStatusPlanned || s == MOStatusInProgress
}

// Component materia prima reservada por la orden (copia de la lista de materiales al crearla).
// Quantity es el total para toda la orden.
type Component struct {
	ProductID string          `json:"product_id"`
	Item      string          `json:"item"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// ManufacturingOrder orden de fabricación de un producto terminado.
type ManufacturingOrder struct {
	ID                 string
	BOMID              string
	ProductID          string
	ProductName        string
	Quantity           int
	Status             MOStatus
	ScheduleStart      time.Time
	Deadline           time.Time
	AssigneeID         string
	Priority           string
	Notes              string
	RequiredComponents []Component
	WorkOrderIDs       []string
	ActualStart        *time.Time
	ActualEnd          *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// IsOverdue indica si la orden sigue abierta después de su fecha límite.
func (mo *ManufacturingOrder) IsOverdue(now time.Time) bool {
	if mo.Status == MOStatusCompleted || mo.Status == MOStatusCancelled {
		return false
	}
	return now.After(mo.Deadline)
}
