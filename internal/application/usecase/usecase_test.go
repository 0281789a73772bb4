package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/mrp-api/internal/application/dto"
	"github.com/jhoicas/mrp-api/internal/application/usecase"
	"github.com/jhoicas/mrp-api/internal/domain"
	"github.com/jhoicas/mrp-api/internal/domain/entity"
	"github.com/jhoicas/mrp-api/internal/infrastructure/memory"
)

var (
	manager  = entity.Identity{UserID: "u-jefe", Role: entity.RoleManufacturingManager}
	operator = entity.Identity{UserID: "u-op", Role: entity.RoleOperator}
)

func ptr[T any](v T) *T { return &v }

// ──────────────────────────────────────────────────────────────────────────────
// Listas de materiales
// ──────────────────────────────────────────────────────────────────────────────

func newBOMUseCase(store *memory.Store) *usecase.BOMUseCase {
	return usecase.NewBOMUseCase(memory.NewBOMRepository(store), memory.NewProductRepository(store), memory.NewWorkCenterRepository(store))
}

func TestBOM_CodigoAutonumeradoYProductosCreados(t *testing.T) {
	store := memory.NewStore()
	uc := newBOMUseCase(store)
	ctx := context.Background()

	next, err := uc.NextCode(ctx)
	require.NoError(t, err)
	assert.Equal(t, "BOM-001", next)

	bom, err := uc.Create(ctx, manager, dto.CreateBOMRequest{
		ProductName: "mesa",
		Items: []dto.BOMItemRequest{
			{Name: "madera", Quantity: decimal.NewFromInt(4), Unit: "kg"},
			{Name: "tornillo", Quantity: decimal.NewFromInt(12), Unit: "und"},
		},
		Operations: []dto.BOMOperationRequest{{Name: "ensamble", TimeRequired: 30}},
	})
	require.NoError(t, err)
	assert.Equal(t, "BOM-001", bom.Code)
	require.Len(t, bom.Items, 2)

	products := memory.NewProductRepository(store)
	mesa, err := products.GetByName(ctx, "mesa")
	require.NoError(t, err)
	require.NotNil(t, mesa)
	assert.Equal(t, entity.ProductTypeFinished, mesa.Type)
	assert.Equal(t, mesa.ID, bom.ProductID)
	madera, err := products.GetByName(ctx, "madera")
	require.NoError(t, err)
	require.NotNil(t, madera)
	assert.Equal(t, entity.ProductTypeRaw, madera.Type)
	assert.Equal(t, madera.ID, bom.Items[0].ProductID)

	next, err = uc.NextCode(ctx)
	require.NoError(t, err)
	assert.Equal(t, "BOM-002", next)
}

func TestBOM_CodigoDuplicado(t *testing.T) {
	uc := newBOMUseCase(memory.NewStore())
	ctx := context.Background()
	req := dto.CreateBOMRequest{Code: "BOM-010", ProductName: "silla", Items: []dto.BOMItemRequest{{Name: "madera", Quantity: decimal.NewFromInt(2)}}}

	first, err := uc.Create(ctx, manager, req)
	require.NoError(t, err)
	_, err = uc.Create(ctx, manager, req)
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// Actualizar con su propio código no es duplicado.
	_, err = uc.Update(ctx, manager, first.ID, dto.UpdateBOMRequest{Code: ptr("BOM-010"), IsActive: ptr(false)})
	require.NoError(t, err)

	next, err := uc.NextCode(ctx)
	require.NoError(t, err)
	assert.Equal(t, "BOM-011", next)
}

func TestBOM_Validaciones(t *testing.T) {
	uc := newBOMUseCase(memory.NewStore())
	ctx := context.Background()

	_, err := uc.Create(ctx, operator, dto.CreateBOMRequest{})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Create(ctx, manager, dto.CreateBOMRequest{ProductName: "mesa"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, manager, dto.CreateBOMRequest{ProductName: "mesa", Items: []dto.BOMItemRequest{{Name: "madera", Quantity: decimal.Zero}}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, manager, dto.CreateBOMRequest{
		ProductName: "mesa",
		Items:       []dto.BOMItemRequest{{Name: "madera", Quantity: decimal.NewFromInt(1)}},
		Operations:  []dto.BOMOperationRequest{{Name: "corte", WorkCenterID: uuid.New().String()}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = uc.Delete(ctx, manager, uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Centros de trabajo
// ──────────────────────────────────────────────────────────────────────────────

func TestWorkCenter_Utilizacion(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	uc := usecase.NewWorkCenterUseCase(memory.NewWorkCenterRepository(store), memory.NewWorkOrderRepository(store))

	wc, err := uc.Create(ctx, manager, dto.CreateWorkCenterRequest{Name: "Torno", Capacity: 10, Efficiency: decimal.NewFromInt(90)})
	require.NoError(t, err)
	assert.Equal(t, entity.WorkCenterActive, wc.Status)

	wos := memory.NewWorkOrderRepository(store)
	now := time.Now()
	for i, wo := range []entity.WorkOrder{
		{Status: entity.WOStatusCompleted, PlannedDuration: 60, ActualDuration: decimal.NewFromInt(45)},
		{Status: entity.WOStatusCompleted, PlannedDuration: 40, ActualDuration: decimal.NewFromInt(55)},
		{Status: entity.WOStatusInProgress, PlannedDuration: 500},
	} {
		wo.ID = uuid.New().String()
		wo.WorkCenterID = wc.ID
		wo.CreatedAt = now.Add(time.Duration(i) * time.Second)
		require.NoError(t, wos.Create(ctx, &wo))
	}

	u, err := uc.Utilization(ctx, wc.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, u.CompletedOrders)
	assert.True(t, u.PlannedMinutes.Equal(decimal.NewFromInt(100)))
	assert.True(t, u.UtilizationPercent.Equal(decimal.NewFromInt(100)))

	_, err = uc.Utilization(ctx, uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWorkCenter_NombreUnicoYEstado(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	uc := usecase.NewWorkCenterUseCase(memory.NewWorkCenterRepository(store), memory.NewWorkOrderRepository(store))

	a, err := uc.Create(ctx, manager, dto.CreateWorkCenterRequest{Name: "Torno"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, manager, dto.CreateWorkCenterRequest{Name: "torno"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	b, err := uc.Create(ctx, manager, dto.CreateWorkCenterRequest{Name: "Prensa"})
	require.NoError(t, err)
	_, err = uc.Update(ctx, manager, b.ID, dto.UpdateWorkCenterRequest{Name: ptr("Torno")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Update(ctx, manager, a.ID, dto.UpdateWorkCenterRequest{Status: ptr("broken")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := uc.Update(ctx, manager, a.ID, dto.UpdateWorkCenterRequest{Status: ptr(entity.WorkCenterMaintenance)})
	require.NoError(t, err)
	assert.Equal(t, entity.WorkCenterMaintenance, out.Status)
}

func TestUtilizationPercent_SinPlanificado(t *testing.T) {
	assert.True(t, usecase.UtilizationPercent(decimal.NewFromInt(10), decimal.Zero).IsZero())
	assert.Equal(t, "33.33", usecase.UtilizationPercent(decimal.NewFromInt(1), decimal.NewFromInt(3)).String())
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos y usuarios
// ──────────────────────────────────────────────────────────────────────────────

func TestProduct_CreateYList(t *testing.T) {
	uc := usecase.NewProductUseCase(memory.NewProductRepository(memory.NewStore()))
	ctx := context.Background()

	_, err := uc.Create(ctx, manager, dto.CreateProductRequest{Name: "acero", Type: entity.ProductTypeRaw})
	require.NoError(t, err)
	_, err = uc.Create(ctx, manager, dto.CreateProductRequest{Name: "Acero", Type: entity.ProductTypeRaw})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	_, err = uc.Create(ctx, manager, dto.CreateProductRequest{Name: "x", Type: "semi"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, operator, dto.CreateProductRequest{Name: "y", Type: entity.ProductTypeRaw})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	list, err := uc.List(ctx, entity.ProductTypeFinished, dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)
	assert.Equal(t, 20, list.Page.Limit)
}

func TestUser_ActualizarPerfil(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	repo := memory.NewUserRepository(store)
	hash, err := bcrypt.GenerateFromPassword([]byte("secreto123"), bcrypt.MinCost)
	require.NoError(t, err)
	ana := &entity.User{ID: "u-ana", Username: "ana", Email: "ana@mrp.test", PasswordHash: string(hash), Role: entity.RoleOperator, Status: entity.UserStatusActive}
	luis := &entity.User{ID: "u-luis", Username: "luis", Email: "luis@mrp.test", Role: entity.RoleInventoryManager, Status: entity.UserStatusActive}
	require.NoError(t, repo.Create(ctx, ana))
	require.NoError(t, repo.Create(ctx, luis))
	uc := usecase.NewUserUseCase(repo)
	me := entity.Identity{UserID: ana.ID, Role: ana.Role}

	_, err = uc.UpdateProfile(ctx, me, dto.UpdateProfileRequest{Email: ptr("luis@mrp.test")})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = uc.UpdateProfile(ctx, me, dto.UpdateProfileRequest{NewPassword: "otra-clave", CurrentPassword: "mal"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := uc.UpdateProfile(ctx, me, dto.UpdateProfileRequest{Username: ptr("ana.m"), NewPassword: "otra-clave", CurrentPassword: "secreto123"})
	require.NoError(t, err)
	assert.Equal(t, "ana.m", out.Username)

	ops, err := uc.ListOperators(ctx)
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, ana.ID, ops[0].ID)

	_, err = uc.List(ctx, me, dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
