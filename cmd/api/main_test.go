package main

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mrp-api/pkg/config"
	"github.com/jhoicas/mrp-api/pkg/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		App:     config.AppConfig{Env: "test", Name: "mrp-api", Timezone: "UTC"},
		Storage: config.StorageConfig{Driver: config.StorageMemory},
	}
}

func TestRun_ZonaHorariaInvalida(t *testing.T) {
	cfg := testConfig()
	cfg.App.Timezone = "Marte/Base"

	err := run(cfg, logger.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "zona horaria")
}

// Un fallo al configurar rutas se devuelve y el almacenamiento se cierra igual.
func TestRun_FalloDeRutasCierraAlmacenamiento(t *testing.T) {
	closed := false
	original := openStore
	openStore = func(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*storage, error) {
		s, err := original(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		s.close = func() { closed = true }
		return s, nil
	}
	t.Cleanup(func() { openStore = original })

	cfg := testConfig()
	cfg.HTTP.RateLimit = "no-es-un-limite"

	err := run(cfg, logger.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configurar rutas")
	assert.True(t, closed)
}
