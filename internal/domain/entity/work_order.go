package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// WOStatus estado de una orden de trabajo.
type WOStatus string

const (
	WOStatusPending    WOStatus = "pending"
	WOStatusInProgress WOStatus = "in_progress"
	WOStatusCompleted  WOStatus = "completed"
	WOStatusCancelled  WOStatus = "cancelled"
)

var woTransitions = map[WOStatus][]WOStatus{
	WOStatusPending:    {WOStatusInProgress, WOStatusCompleted, WOStatusCancelled},
	WOStatusInProgress: {WOStatusPending, WOStatusCompleted, WOStatusCancelled},
	WOStatusCancelled:  {WOStatusPending},
	WOStatusCompleted:  {},
}

// ParseWOStatus valida un estado recibido como texto.
func ParseWOStatus(s string) (WOStatus, bool) {
	st := WOStatus(s)
	_, ok := woTransitions[st]
	return st, ok
}

// CanTransitionTo indica si la orden puede pasar de s a next.
// Repetir el estado actual no es una transición; se trata aparte como no-op.
func (s WOStatus) CanTransitionTo(next WOStatus) bool {
	for _, allowed := range woTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Resultado del control de calidad.
const (
	QualityPending = "pending"
	QualityPassed  = "passed"
	QualityFailed  = "failed"
)

// WorkOrder operación concreta dentro de una orden de fabricación.
type WorkOrder struct {
	ID              string
	MOID            string
	OperationName   string
	WorkCenterID    string
	AssigneeID      string
	Status          WOStatus
	Comments        string
	PlannedDuration int             // minutos
	ActualDuration  decimal.Decimal // minutos
	QualityStatus   string
	QualityNotes    string
	StartTime       *time.Time
	EndTime         *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Start marca el inicio de la ejecución.
func (wo *WorkOrder) Start(now time.Time) {
	if wo.StartTime == nil {
		t := now
		wo.StartTime = &t
	}
}

// Finish marca el final y calcula la duración real en minutos desde el inicio.
func (wo *WorkOrder) Finish(now time.Time) {
	t := now
	wo.EndTime = &t
	if wo.StartTime != nil {
		minutes := now.Sub(*wo.StartTime).Minutes()
		wo.ActualDuration = decimal.NewFromFloat(minutes).Round(2)
	}
}
