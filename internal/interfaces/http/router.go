package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/mrp-api/internal/application/auth"
	"github.com/jhoicas/mrp-api/internal/application/inventory"
	"github.com/jhoicas/mrp-api/internal/application/manufacturing"
	"github.com/jhoicas/mrp-api/internal/application/reports"
	"github.com/jhoicas/mrp-api/internal/application/usecase"
	"github.com/jhoicas/mrp-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	UserUC        *usecase.UserUseCase
	ProductUC     *usecase.ProductUseCase
	WorkCenterUC  *usecase.WorkCenterUseCase
	BOMUC         *usecase.BOMUseCase
	InventoryUC   *inventory.InventoryUseCase
	LedgerUC      *inventory.LedgerUseCase
	OrderUC       *manufacturing.ManufacturingOrderUseCase
	WorkOrderUC   *manufacturing.WorkOrderUseCase
	ReportsUC     *reports.ReportsUseCase
	Renderers     map[string]reports.Renderer
	JWTSecret     string
	AuthRateLimit string // formato ulule, ej. "20-M"; vacío desactiva el límite
	Log           zerolog.Logger
}

// AppConfig configuración base de fiber. Immutable copia parámetros, query y cuerpo:
// los ids de ruta terminan guardados en entidades y no pueden apuntar al buffer de fasthttp.
func AppConfig(log zerolog.Logger) fiber.Config {
	return fiber.Config{
		Immutable:    true,
		ErrorHandler: ErrorHandler(log),
	}
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) error {
	var (
		admin      = entity.RoleAdmin
		manager    = entity.RoleManufacturingManager
		operator   = entity.RoleOperator
		invManager = entity.RoleInventoryManager
	)
	supervisors := RequireRole(admin, manager)

	api := app.Group("/api")

	// Auth (público, con límite por IP)
	authHandler := NewAuthHandler(deps.AuthUC, deps.Log)
	authGroup := api.Group("/auth")
	if deps.AuthRateLimit != "" {
		limit, err := RateLimit(deps.AuthRateLimit, deps.Log)
		if err != nil {
			return err
		}
		authGroup.Use(limit)
	}
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/forgot-password", authHandler.ForgotPassword)
	authGroup.Post("/reset-password", authHandler.ResetPassword)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Post("/admin/users", RequireRole(admin), authHandler.CreateUser)

	userHandler := NewUserHandler(deps.UserUC, deps.Log)
	protected.Get("/users", RequireRole(admin), userHandler.List)
	protected.Get("/profile", userHandler.GetProfile)
	protected.Put("/profile", userHandler.UpdateProfile)
	protected.Get("/operators", userHandler.ListOperators)

	productHandler := NewProductHandler(deps.ProductUC, deps.Log)
	products := protected.Group("/products")
	products.Post("/", supervisors, productHandler.Create)
	products.Get("/", productHandler.List)

	wcHandler := NewWorkCenterHandler(deps.WorkCenterUC, deps.Log)
	workCenters := protected.Group("/workcenters")
	workCenters.Post("/", supervisors, wcHandler.Create)
	workCenters.Get("/", wcHandler.List)
	workCenters.Get("/:id", wcHandler.Get)
	workCenters.Put("/:id", supervisors, wcHandler.Update)
	workCenters.Get("/:id/utilization", wcHandler.Utilization)

	bomHandler := NewBOMHandler(deps.BOMUC, deps.Log)
	boms := protected.Group("/boms")
	boms.Post("/", supervisors, bomHandler.Create)
	boms.Get("/", bomHandler.List)
	boms.Get("/next-code", bomHandler.NextCode)
	boms.Get("/:id", bomHandler.Get)
	boms.Put("/:id", supervisors, bomHandler.Update)
	boms.Delete("/:id", supervisors, bomHandler.Delete)

	mfgHandler := NewManufacturingHandler(deps.OrderUC, deps.WorkOrderUC, deps.Log)
	orders := protected.Group("/manufacturing-orders")
	orders.Post("/", mfgHandler.CreateOrder)
	orders.Get("/", mfgHandler.ListOrders)
	orders.Get("/:id", mfgHandler.GetOrder)
	orders.Put("/:id/status", supervisors, mfgHandler.UpdateOrderStatus)
	orders.Get("/:id/work-orders", mfgHandler.ListOrderWorkOrders)
	orders.Post("/:id/work-orders", supervisors, mfgHandler.CreateWorkOrder)

	workOrders := protected.Group("/work-orders")
	workOrders.Get("/", supervisors, mfgHandler.ListWorkOrders)
	workOrders.Get("/assigned", RequireRole(operator), mfgHandler.ListAssigned)
	workOrders.Get("/:id", mfgHandler.GetWorkOrder)
	workOrders.Put("/:id/status", mfgHandler.UpdateWorkOrderStatus)
	workOrders.Put("/:id/quality", mfgHandler.RecordQuality)

	invHandler := NewInventoryHandler(deps.InventoryUC, deps.LedgerUC, deps.Log)
	protected.Get("/inventory", invHandler.List)
	protected.Put("/inventory", RequireRole(admin, invManager), invHandler.Adjust)
	protected.Get("/stock-ledger", invHandler.LedgerByReference)
	protected.Get("/stock-ledger/:productId", invHandler.Ledger)

	reportHandler := NewReportHandler(deps.ReportsUC, deps.Renderers, deps.Log)
	rep := protected.Group("/reports")
	rep.Get("/operator", reportHandler.Operator)
	rep.Get("/manager", reportHandler.Manager)
	rep.Get("/admin", reportHandler.Admin)
	rep.Get("/inventory", reportHandler.Inventory)

	return nil
}
