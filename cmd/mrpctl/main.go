// Package main implementa mrpctl, la CLI de operación: migraciones y alta del primer administrador.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/mrp-api/pkg/config"
	"github.com/jhoicas/mrp-api/pkg/logger"
)

var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mrpctl",
	Short: "Operación de la API MRP",
	Long: `mrpctl aplica las migraciones de PostgreSQL y crea usuarios administradores.
La conexión se toma de las mismas variables que la API (DATABASE_URL o DB_*).`,
	Version:       version,
	SilenceUsage:  true,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(createAdminCmd)
}

// loadConfig configuración y logger de consola para los subcomandos.
func loadConfig() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log := logger.New(logger.Config{Env: "development", Level: cfg.Log.Level, Service: "mrpctl"})
	return cfg, log, nil
}
