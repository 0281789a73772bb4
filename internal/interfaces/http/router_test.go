package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mrp-api/internal/application/auth"
	"github.com/jhoicas/mrp-api/internal/application/dto"
	"github.com/jhoicas/mrp-api/internal/application/inventory"
	"github.com/jhoicas/mrp-api/internal/application/manufacturing"
	"github.com/jhoicas/mrp-api/internal/application/reports"
	"github.com/jhoicas/mrp-api/internal/application/usecase"
	"github.com/jhoicas/mrp-api/internal/domain/entity"
	"github.com/jhoicas/mrp-api/internal/infrastructure/export"
	"github.com/jhoicas/mrp-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/mrp-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Servidor de prueba sobre el driver en memoria
// ──────────────────────────────────────────────────────────────────────────────

type nopMailer struct{}

func (nopMailer) SendPasswordReset(context.Context, string, string, string) error { return nil }

type testServer struct {
	app      *fiber.App
	steel    *entity.Product
	widget   *entity.Product
	bom      *entity.BillOfMaterials
	admin    *entity.User
	manager  *entity.User
	operator *entity.User
	clerk    *entity.User
}

func newTestServer(t *testing.T, rateLimit string) *testServer {
	t.Helper()
	ctx := context.Background()
	log := zerolog.Nop()
	store := memory.NewStore()
	now := time.Now().UTC()

	products := memory.NewProductRepository(store)
	steel := &entity.Product{ID: uuid.New().String(), Name: "steel", Type: entity.ProductTypeRaw, Unit: "kg", CreatedAt: now}
	widget := &entity.Product{ID: uuid.New().String(), Name: "widget", Type: entity.ProductTypeFinished, Unit: "und", CreatedAt: now}
	require.NoError(t, products.Create(ctx, steel))
	require.NoError(t, products.Create(ctx, widget))

	boms := memory.NewBOMRepository(store)
	bom := &entity.BillOfMaterials{
		ID:          uuid.New().String(),
		Code:        entity.FormatBOMCode(1),
		ProductID:   widget.ID,
		ProductName: widget.Name,
		Items:       []entity.BOMItem{{ProductID: steel.ID, Name: "steel", Quantity: decimal.NewFromInt(2), Unit: "kg"}},
		IsActive:    true,
		CreatedAt:   now,
	}
	require.NoError(t, boms.Create(ctx, bom))

	users := memory.NewUserRepository(store)
	mkUser := func(name, role string) *entity.User {
		u := &entity.User{ID: uuid.New().String(), Username: name, Email: name + "@mrp.test", Role: role, Status: entity.UserStatusActive, CreatedAt: now}
		require.NoError(t, users.Create(ctx, u))
		return u
	}

	workOrders := memory.NewWorkOrderRepository(store)
	orders := memory.NewManufacturingOrderRepository(store)
	workCenters := memory.NewWorkCenterRepository(store)
	inventoryRepo := memory.NewInventoryRepository(store)
	poster := inventory.NewStockPoster(log)

	app := fiber.New(apphttp.AppConfig(log))
	err := apphttp.Router(app, apphttp.RouterDeps{
		AuthUC: auth.NewAuthUseCase(users, nopMailer{}, auth.JWTConfig{
			Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer, ResetExpMinutes: 15,
		}, "http://localhost/reset", log),
		UserUC:       usecase.NewUserUseCase(users),
		ProductUC:    usecase.NewProductUseCase(products),
		WorkCenterUC: usecase.NewWorkCenterUseCase(workCenters, workOrders),
		BOMUC:        usecase.NewBOMUseCase(boms, products, workCenters),
		InventoryUC:  inventory.NewInventoryUseCase(store, poster, inventoryRepo, nil, log),
		LedgerUC:     inventory.NewLedgerUseCase(memory.NewStockLedgerRepository(store), nil),
		OrderUC:      manufacturing.NewManufacturingOrderUseCase(store, orders, workOrders, boms, users, time.UTC, log),
		WorkOrderUC: manufacturing.NewWorkOrderUseCase(store, workOrders, users, workCenters, poster, nil, nil,
			manufacturing.DefaultOptions(), log),
		ReportsUC: reports.NewReportsUseCase(memory.NewReportRepository(store), workOrders, orders, inventoryRepo, time.UTC),
		Renderers: map[string]reports.Renderer{
			dto.ReportFormatPDF:   export.NewPDFRenderer("mrp-api"),
			dto.ReportFormatExcel: export.NewXLSXRenderer(),
		},
		JWTSecret:     testJWTSecret,
		AuthRateLimit: rateLimit,
		Log:           log,
	})
	require.NoError(t, err)

	return &testServer{
		app:      app,
		steel:    steel,
		widget:   widget,
		bom:      bom,
		admin:    mkUser("root", entity.RoleAdmin),
		manager:  mkUser("jefe", entity.RoleManufacturingManager),
		operator: mkUser("ana", entity.RoleOperator),
		clerk:    mkUser("sara", entity.RoleInventoryManager),
	}
}

func (s *testServer) do(t *testing.T, method, path string, user *entity.User, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if user != nil {
		req.Header.Set("Authorization", tokenFor(t, user.ID, user.Role))
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func (s *testServer) createOrder(t *testing.T, quantity int) dto.ManufacturingOrderResponse {
	t.Helper()
	today := time.Now().UTC().Format(dto.DateLayout)
	resp := s.do(t, http.MethodPost, "/api/manufacturing-orders", s.manager, fiber.Map{
		"bom_id":         s.bom.Code,
		"quantity":       quantity,
		"schedule_start": today,
		"deadline":       time.Now().UTC().AddDate(0, 0, 7).Format(dto.DateLayout),
		"assignee_id":    s.operator.ID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[dto.ManufacturingOrderResponse](t, resp)
}

func (s *testServer) addWorkOrder(t *testing.T, moID, operation string) dto.WorkOrderResponse {
	t.Helper()
	resp := s.do(t, http.MethodPost, "/api/manufacturing-orders/"+moID+"/work-orders", s.manager, dto.CreateWorkOrderRequest{
		OperationName: operation,
		AssigneeID:    s.operator.ID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[dto.WorkOrderResponse](t, resp)
}

func (s *testServer) setStatus(t *testing.T, woID, status string) *http.Response {
	t.Helper()
	return s.do(t, http.MethodPut, "/api/work-orders/"+woID+"/status", s.operator, dto.UpdateWorkOrderStatusRequest{Status: status})
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo de cierre de órdenes
// ──────────────────────────────────────────────────────────────────────────────

func TestFlujoCompleto_CierraOrdenYActualizaLibro(t *testing.T) {
	s := newTestServer(t, "")
	mo := s.createOrder(t, 10)
	assert.Equal(t, "planned", mo.Status)
	require.Len(t, mo.RequiredComponents, 1)
	assert.True(t, mo.RequiredComponents[0].Quantity.Equal(decimal.NewFromInt(20)))

	wo1 := s.addWorkOrder(t, mo.ID, "corte")
	wo2 := s.addWorkOrder(t, mo.ID, "ensamble")

	resp := s.setStatus(t, wo1.ID, "in_progress")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = s.setStatus(t, wo1.ID, "completed")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	order := decode[dto.ManufacturingOrderResponse](t, s.do(t, http.MethodGet, "/api/manufacturing-orders/"+mo.ID, s.operator, nil))
	assert.Equal(t, "in_progress", order.Status)

	resp = s.setStatus(t, wo2.ID, "completed")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	order = decode[dto.ManufacturingOrderResponse](t, s.do(t, http.MethodGet, "/api/manufacturing-orders/"+mo.ID, s.operator, nil))
	assert.Equal(t, "completed", order.Status)
	assert.Len(t, order.WorkOrders, 2)

	steel := decode[dto.LedgerResponse](t, s.do(t, http.MethodGet, "/api/stock-ledger/"+s.steel.ID, s.clerk, nil))
	require.Len(t, steel.Entries, 2)
	assert.True(t, steel.Entries[0].Balance.Equal(decimal.NewFromInt(-20)))
	assert.True(t, steel.Summary.TotalOut.Equal(decimal.NewFromInt(20)))

	widget := decode[dto.LedgerResponse](t, s.do(t, http.MethodGet, "/api/stock-ledger/"+s.widget.ID, s.clerk, nil))
	require.Len(t, widget.Entries, 1)
	assert.True(t, widget.Entries[0].StockIn.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, entity.ManufacturingOrderReference(mo.ID), widget.Entries[0].Reference)

	resp = s.do(t, http.MethodGet, "/api/stock-ledger?reference="+entity.WorkOrderReference(wo1.ID), s.clerk, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	byRef := decode[[]dto.LedgerEntryResponse](t, resp)
	require.Len(t, byRef, 1)
	assert.Equal(t, s.steel.ID, byRef[0].ProductID)
}

// Las órdenes de trabajo guardan el id de ruta de su orden de fabricación; otras peticiones
// posteriores no deben alterarlo.
func TestFlujoCompleto_VariasOrdenesAntesDeCerrar(t *testing.T) {
	s := newTestServer(t, "")
	first := s.createOrder(t, 4)
	wo := s.addWorkOrder(t, first.ID, "corte")
	second := s.createOrder(t, 6)
	other := s.addWorkOrder(t, second.ID, "pintura")
	s.createOrder(t, 1)

	resp := s.setStatus(t, wo.ID, "completed")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[dto.WorkOrderResponse](t, resp)
	assert.Equal(t, first.ID, got.MOID)

	order := decode[dto.ManufacturingOrderResponse](t, s.do(t, http.MethodGet, "/api/manufacturing-orders/"+first.ID, s.operator, nil))
	assert.Equal(t, "completed", order.Status)

	resp = s.setStatus(t, other.ID, "completed")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	widget := decode[dto.LedgerResponse](t, s.do(t, http.MethodGet, "/api/stock-ledger/"+s.widget.ID, s.clerk, nil))
	require.Len(t, widget.Entries, 2)
	assert.True(t, widget.Summary.TotalIn.Equal(decimal.NewFromInt(10)))
}

func TestAppConfig_Inmutable(t *testing.T) {
	assert.True(t, apphttp.AppConfig(zerolog.Nop()).Immutable)
}

func TestFlujoCompleto_LibroVacioParaProductoSinMovimientos(t *testing.T) {
	s := newTestServer(t, "")
	resp := s.do(t, http.MethodGet, "/api/stock-ledger/"+uuid.New().String(), s.clerk, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	ledger := decode[dto.LedgerResponse](t, resp)
	assert.Empty(t, ledger.Entries)
}

// ──────────────────────────────────────────────────────────────────────────────
// Traducción de errores
// ──────────────────────────────────────────────────────────────────────────────

func TestErrores_TransicionInvalidaRetorna409(t *testing.T) {
	s := newTestServer(t, "")
	mo := s.createOrder(t, 1)
	wo := s.addWorkOrder(t, mo.ID, "corte")

	resp := s.setStatus(t, wo.ID, "completed")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = s.setStatus(t, wo.ID, "in_progress")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, apphttp.CodeInvalidTransition, body.Code)
}

func TestErrores_EstadoDesconocidoRetorna400(t *testing.T) {
	s := newTestServer(t, "")
	mo := s.createOrder(t, 1)
	wo := s.addWorkOrder(t, mo.ID, "corte")

	resp := s.setStatus(t, wo.ID, "done")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, apphttp.CodeValidation, body.Code)
}

func TestErrores_OrdenInexistenteRetorna404(t *testing.T) {
	s := newTestServer(t, "")
	resp := s.do(t, http.MethodGet, "/api/manufacturing-orders/"+uuid.New().String(), s.manager, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, apphttp.CodeNotFound, body.Code)
}

func TestErrores_CuerpoInvalidoRetorna400(t *testing.T) {
	s := newTestServer(t, "")
	req := httptest.NewRequest(http.MethodPut, "/api/inventory", bytes.NewBufferString("{no-json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tokenFor(t, s.clerk.ID, s.clerk.Role))
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, apphttp.CodeInvalidBody, body.Code)
}

func TestErrores_OperadorNoListaTodasLasOrdenesDeTrabajo(t *testing.T) {
	s := newTestServer(t, "")
	resp := s.do(t, http.MethodGet, "/api/work-orders", s.operator, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = s.do(t, http.MethodGet, "/api/work-orders/assigned", s.operator, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestErrores_OperadorNoAjustaInventario(t *testing.T) {
	s := newTestServer(t, "")
	resp := s.do(t, http.MethodPut, "/api/inventory", s.operator, fiber.Map{"item_name": "steel", "quantity_change": "5"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

// ──────────────────────────────────────────────────────────────────────────────
// Inventario
// ──────────────────────────────────────────────────────────────────────────────

func TestInventario_AjusteQuedaEnElLibro(t *testing.T) {
	s := newTestServer(t, "")
	resp := s.do(t, http.MethodPut, "/api/inventory", s.clerk, fiber.Map{"item_name": "steel", "quantity_change": "50"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rec := decode[dto.InventoryResponse](t, resp)
	assert.True(t, rec.StockQuantity.Equal(decimal.NewFromInt(50)))

	ledger := decode[dto.LedgerResponse](t, s.do(t, http.MethodGet, "/api/stock-ledger/"+s.steel.ID, s.clerk, nil))
	require.Len(t, ledger.Entries, 1)
	assert.True(t, ledger.Entries[0].StockIn.Equal(decimal.NewFromInt(50)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Reportes
// ──────────────────────────────────────────────────────────────────────────────

func TestReportes_FormatoNoSoportadoRetorna400(t *testing.T) {
	s := newTestServer(t, "")
	resp := s.do(t, http.MethodGet, "/api/reports/admin?format=csv", s.admin, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "format", body.Field)
}

func TestReportes_AdminEnExcel(t *testing.T) {
	s := newTestServer(t, "")
	resp := s.do(t, http.MethodGet, "/api/reports/admin?format=excel", s.admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	assert.Equal(t, export.NewXLSXRenderer().ContentType(), resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), ".xlsx")
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("PK")), "un xlsx es un zip")
}

func TestReportes_InventarioRestringidoPorRol(t *testing.T) {
	s := newTestServer(t, "")
	resp := s.do(t, http.MethodGet, "/api/reports/inventory", s.operator, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = s.do(t, http.MethodGet, "/api/reports/inventory", s.clerk, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth y límite de peticiones
// ──────────────────────────────────────────────────────────────────────────────

func TestAuth_RegistroYLogin(t *testing.T) {
	s := newTestServer(t, "")
	resp := s.do(t, http.MethodPost, "/api/auth/register", nil, dto.RegisterRequest{
		Username: "pedro", Email: "pedro@mrp.test", Password: "secreto-123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = s.do(t, http.MethodPost, "/api/auth/login", nil, dto.LoginRequest{Email: "pedro@mrp.test", Password: "secreto-123"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	login := decode[dto.LoginResponse](t, resp)
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, entity.RoleOperator, login.User.Role)

	resp = s.do(t, http.MethodPost, "/api/auth/login", nil, dto.LoginRequest{Email: "pedro@mrp.test", Password: "otra-clave"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestAuth_LimiteDePeticiones(t *testing.T) {
	s := newTestServer(t, "2-M")
	login := dto.LoginRequest{Email: "nadie@mrp.test", Password: "x"}

	for i := 0; i < 2; i++ {
		resp := s.do(t, http.MethodPost, "/api/auth/login", nil, login)
		assert.NotEqual(t, http.StatusTooManyRequests, resp.StatusCode)
		resp.Body.Close()
	}
	resp := s.do(t, http.MethodPost, "/api/auth/login", nil, login)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, apphttp.CodeRateLimited, body.Code)
}
