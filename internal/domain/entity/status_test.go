package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/mrp-api/internal/domain/entity"
)

func TestWOStatus_Transiciones(t *testing.T) {
	assert.True(t, entity.WOStatusPending.CanTransitionTo(entity.WOStatusInProgress))
	assert.True(t, entity.WOStatusPending.CanTransitionTo(entity.WOStatusCompleted))
	assert.True(t, entity.WOStatusInProgress.CanTransitionTo(entity.WOStatusCompleted))
	assert.True(t, entity.WOStatusCancelled.CanTransitionTo(entity.WOStatusPending))

	assert.False(t, entity.WOStatusCompleted.CanTransitionTo(entity.WOStatusPending),
		"una orden completada no puede reabrirse")
	assert.False(t, entity.WOStatusCancelled.CanTransitionTo(entity.WOStatusCompleted))
}

func TestParseWOStatus_Desconocido(t *testing.T) {
	_, ok := entity.ParseWOStatus("done")
	assert.False(t, ok)

	st, ok := entity.ParseWOStatus("in_progress")
	assert.True(t, ok)
	assert.Equal(t, entity.WOStatusInProgress, st)
}

func TestMOStatus_CompletedSoloAutomatico(t *testing.T) {
	assert.False(t, entity.MOStatusPlanned.CanTransitionTo(entity.MOStatusCompleted))
	assert.False(t, entity.MOStatusInProgress.CanTransitionTo(entity.MOStatusCompleted))
	assert.True(t, entity.MOStatusPlanned.CanComplete())
	assert.True(t, entity.MOStatusInProgress.CanComplete())
	assert.False(t, entity.MOStatusCancelled.CanComplete())
	assert.False(t, entity.MOStatusCompleted.CanComplete())
}

func TestUser_CanBeAssignedOrders(t *testing.T) {
	cases := map[string]bool{
		"Operator":              true,
		"OPERATOR":              true,
		"manufacturing manager": true,
		"Senior Operator":       true,
		"Inventory Manager":     false,
		"Administrator":         false,
	}
	for role, want := range cases {
		u := &entity.User{Role: role}
		assert.Equal(t, want, u.CanBeAssignedOrders(), "rol %q", role)
	}
}

func TestNormalizeRole(t *testing.T) {
	assert.Equal(t, entity.RoleManufacturingManager, entity.NormalizeRole("manufacturing MANAGER"))
	assert.Equal(t, "", entity.NormalizeRole("vendedor"))
}

func TestIdentity_IsSupervisor(t *testing.T) {
	assert.True(t, entity.Identity{Role: "administrator"}.IsSupervisor())
	assert.True(t, entity.Identity{Role: entity.RoleManufacturingManager}.IsSupervisor())
	assert.False(t, entity.Identity{Role: entity.RoleOperator}.IsSupervisor())
}

func TestWorkOrder_FinishCalculaDuracion(t *testing.T) {
	start := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
	wo := &entity.WorkOrder{}
	wo.Start(start)
	wo.Finish(start.Add(90 * time.Minute))

	assert.Equal(t, "90", wo.ActualDuration.String())
	assert.NotNil(t, wo.EndTime)
}

func TestBOMCode(t *testing.T) {
	assert.Equal(t, "BOM-007", entity.FormatBOMCode(7))
	n, ok := entity.ParseBOMCode("BOM-042")
	assert.True(t, ok)
	assert.Equal(t, 42, n)
	_, ok = entity.ParseBOMCode("X-1")
	assert.False(t, ok)
}
