package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/mrp-api/internal/domain/entity"
	"github.com/jhoicas/mrp-api/internal/infrastructure/cache"
)

// Redis inalcanzable: la caché debe degradar a miss sin propagar errores.
func TestRedisLedgerCache_SinServidorEsMiss(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		MaxRetries:  -1,
		DialTimeout: 50 * time.Millisecond,
	})
	defer func() { _ = rdb.Close() }()

	c := cache.NewRedisLedgerCache(rdb, time.Minute, zerolog.Nop())
	ctx := context.Background()

	c.Set(ctx, "p-1", 0, []*entity.LedgerEntry{{ID: "l-1", ProductID: "p-1", StockIn: decimal.NewFromInt(5)}})
	entries, version, ok := c.Get(ctx, "p-1")
	assert.False(t, ok)
	assert.Nil(t, entries)
	assert.Equal(t, int64(-1), version, "sin versión no se cachea")

	assert.NotPanics(t, func() { c.Invalidate(ctx, "p-1", "p-2") })
	assert.NotPanics(t, func() { c.Invalidate(ctx) })
}
