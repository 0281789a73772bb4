package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/jhoicas/mrp-api/docs"
	"github.com/jhoicas/mrp-api/internal/application/auth"
	"github.com/jhoicas/mrp-api/internal/application/dto"
	"github.com/jhoicas/mrp-api/internal/application/inventory"
	"github.com/jhoicas/mrp-api/internal/application/manufacturing"
	"github.com/jhoicas/mrp-api/internal/application/reports"
	"github.com/jhoicas/mrp-api/internal/application/usecase"
	"github.com/jhoicas/mrp-api/internal/infrastructure/cache"
	"github.com/jhoicas/mrp-api/internal/infrastructure/export"
	"github.com/jhoicas/mrp-api/internal/infrastructure/mail"
	"github.com/jhoicas/mrp-api/internal/infrastructure/metrics"
	httpRouter "github.com/jhoicas/mrp-api/internal/interfaces/http"
	"github.com/jhoicas/mrp-api/pkg/config"
	"github.com/jhoicas/mrp-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// openStore se reemplaza en tests.
var openStore = openStorage

// @title        MRP API
// @version      1.0
// @description  Órdenes de fabricación, órdenes de trabajo y libro de existencias.
// @BasePath     /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("aplicación detenida con error")
	}
	log.Info().Msg("aplicación detenida")
}

// run arma y sirve la aplicación hasta recibir SIGINT/SIGTERM. Los recursos abiertos se
// cierran al volver, también cuando falla el arranque.
func run(cfg *config.Config, log *logger.Logger) error {
	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		return fmt.Errorf("zona horaria %q: %w", cfg.App.Timezone, err)
	}

	ctx := context.Background()
	store, err := openStore(ctx, cfg, log.Component("storage"))
	if err != nil {
		return fmt.Errorf("almacenamiento: %w", err)
	}
	defer store.close()

	var ledgerCache inventory.LedgerCache = inventory.NopLedgerCache{}
	if cfg.Redis.Enabled() {
		var rdb *redis.Client
		rdb, err = cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("redis no disponible, libro sin caché")
		} else {
			defer rdb.Close()
			ledgerCache = cache.NewRedisLedgerCache(rdb, time.Duration(cfg.Redis.LedgerTTL)*time.Second, log.Component("ledger-cache"))
		}
	}

	var recorder manufacturing.Recorder = manufacturing.NopRecorder{}
	var collectors *metrics.Metrics
	if cfg.Metrics.Enabled {
		collectors = metrics.New(prometheus.DefaultRegisterer)
		recorder = collectors
	}

	poster := inventory.NewStockPoster(log.Component("stock"))
	authUC := auth.NewAuthUseCase(store.users, mail.New(cfg.Mail, log.Component("mail")), auth.JWTConfig{
		Secret:          cfg.JWT.Secret,
		ExpMinutes:      cfg.JWT.Expiration,
		Issuer:          cfg.JWT.Issuer,
		ResetExpMinutes: cfg.JWT.ResetExpiration,
	}, cfg.Mail.ResetURL, log.Component("auth"))

	fiberCfg := httpRouter.AppConfig(log.Component("http"))
	fiberCfg.AppName = cfg.App.Name
	fiberCfg.ReadTimeout = time.Second * 10
	fiberCfg.WriteTimeout = time.Second * 30
	fiberCfg.IdleTimeout = time.Second * 60
	app := fiber.New(fiberCfg)
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log.Component("access")))
	if collectors != nil {
		app.Use(collectors.Middleware())
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "MRP API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger no disponible")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	err = httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		UserUC:       usecase.NewUserUseCase(store.users),
		ProductUC:    usecase.NewProductUseCase(store.products),
		WorkCenterUC: usecase.NewWorkCenterUseCase(store.workCenters, store.workOrders),
		BOMUC:        usecase.NewBOMUseCase(store.boms, store.products, store.workCenters),
		InventoryUC:  inventory.NewInventoryUseCase(store.txRunner, poster, store.inventory, ledgerCache, log.Component("inventory")),
		LedgerUC:     inventory.NewLedgerUseCase(store.ledger, ledgerCache),
		OrderUC: manufacturing.NewManufacturingOrderUseCase(store.txRunner, store.orders, store.workOrders,
			store.boms, store.users, loc, log.Component("manufacturing")),
		WorkOrderUC: manufacturing.NewWorkOrderUseCase(store.txRunner, store.workOrders, store.users, store.workCenters,
			poster, ledgerCache, recorder, manufacturing.DefaultOptions(), log.Component("work-orders")),
		ReportsUC: reports.NewReportsUseCase(store.reports, store.workOrders, store.orders, store.inventory, loc),
		Renderers: map[string]reports.Renderer{
			dto.ReportFormatPDF:   export.NewPDFRenderer(cfg.App.Name),
			dto.ReportFormatExcel: export.NewXLSXRenderer(),
		},
		JWTSecret:     cfg.JWT.Secret,
		AuthRateLimit: cfg.HTTP.RateLimit,
		Log:           log.Component("http"),
	})
	if err != nil {
		return fmt.Errorf("configurar rutas: %w", err)
	}

	listenErr := make(chan error, 1)
	go func() {
		listenErr <- app.Listen(cfg.HTTP.Addr())
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-listenErr:
		return fmt.Errorf("servidor HTTP: %w", err)
	case <-quit:
	}

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	return nil
}
