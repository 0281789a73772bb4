package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/mrp-api/internal/application/inventory"
	"github.com/jhoicas/mrp-api/internal/domain/repository"
	"github.com/jhoicas/mrp-api/internal/infrastructure/memory"
	"github.com/jhoicas/mrp-api/internal/infrastructure/postgres"
	"github.com/jhoicas/mrp-api/pkg/config"
)

// storage agrupa los repositorios del driver elegido con STORAGE_DRIVER.
type storage struct {
	txRunner    inventory.TxRunner
	users       repository.UserRepository
	products    repository.ProductRepository
	inventory   repository.InventoryRepository
	ledger      repository.StockLedgerRepository
	boms        repository.BOMRepository
	workCenters repository.WorkCenterRepository
	orders      repository.ManufacturingOrderRepository
	workOrders  repository.WorkOrderRepository
	reports     repository.ReportRepository
	close       func()
}

func openStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*storage, error) {
	if cfg.Storage.Driver == config.StorageMemory {
		log.Warn().Msg("STORAGE_DRIVER=memory: los datos se pierden al reiniciar")
		s := memory.NewStore()
		return &storage{
			txRunner:    s,
			users:       memory.NewUserRepository(s),
			products:    memory.NewProductRepository(s),
			inventory:   memory.NewInventoryRepository(s),
			ledger:      memory.NewStockLedgerRepository(s),
			boms:        memory.NewBOMRepository(s),
			workCenters: memory.NewWorkCenterRepository(s),
			orders:      memory.NewManufacturingOrderRepository(s),
			workOrders:  memory.NewWorkOrderRepository(s),
			reports:     memory.NewReportRepository(s),
			close:       func() {},
		}, nil
	}

	if cfg.DB.AutoMigrate {
		if err := migrate(ctx, cfg.DB.ConnectionString()); err != nil {
			return nil, err
		}
		log.Info().Msg("migraciones aplicadas")
	}
	pool, err := postgres.NewPool(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}
	return &storage{
		txRunner:    postgres.NewTxRunner(pool),
		users:       postgres.NewUserRepository(pool),
		products:    postgres.NewProductRepository(pool),
		inventory:   postgres.NewInventoryRepository(pool),
		ledger:      postgres.NewStockLedgerRepository(pool),
		boms:        postgres.NewBOMRepository(pool),
		workCenters: postgres.NewWorkCenterRepository(pool),
		orders:      postgres.NewManufacturingOrderRepository(pool),
		workOrders:  postgres.NewWorkOrderRepository(pool),
		reports:     postgres.NewReportRepository(pool),
		close:       pool.Close,
	}, nil
}

func migrate(ctx context.Context, dsn string) error {
	m, err := postgres.OpenMigrator(dsn)
	if err != nil {
		return err
	}
	defer m.Close()
	if err := m.Up(ctx); err != nil {
		return fmt.Errorf("migraciones: %w", err)
	}
	return nil
}
