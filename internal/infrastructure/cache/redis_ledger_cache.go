package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"github.com/jhoicas/mrp-api/internal/application/inventory"
	"github.com/jhoicas/mrp-api/internal/domain/entity"
	"github.com/jhoicas/mrp-api/pkg/config"
)

const ledgerKeyPrefix = "mrp:ledger:"

// NewRedisClient abre el cliente y verifica la conexión con un PING.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return rdb, nil
}

// RedisLedgerCache guarda en Redis el libro de existencias de cada producto como JSON,
// bajo una clave que incluye la versión del producto (mrp:ledger:ver:<id>).
// Invalidar incrementa la versión; las claves viejas vencen por TTL.
// Toda falla de Redis se registra y se trata como miss.
type RedisLedgerCache struct {
	rdb *redis.Client
	ttl time.Duration
	log zerolog.Logger
}

var _ inventory.LedgerCache = (*RedisLedgerCache)(nil)

func NewRedisLedgerCache(rdb *redis.Client, ttl time.Duration, log zerolog.Logger) *RedisLedgerCache {
	return &RedisLedgerCache{rdb: rdb, ttl: ttl, log: log}
}

func versionKey(productID string) string { return ledgerKeyPrefix + "ver:" + productID }

func ledgerKey(productID string, version int64) string {
	return fmt.Sprintf("%s%s:v%d", ledgerKeyPrefix, productID, version)
}

// version lee la versión vigente; sin clave es 0. -1 si Redis falla.
func (c *RedisLedgerCache) version(ctx context.Context, productID string) int64 {
	v, err := c.rdb.Get(ctx, versionKey(productID)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0
		}
		c.log.Warn().Err(err).Str("product_id", productID).Msg("cache ledger: versión")
		return -1
	}
	return v
}

func (c *RedisLedgerCache) Get(ctx context.Context, productID string) ([]*entity.LedgerEntry, int64, bool) {
	version := c.version(ctx, productID)
	if version < 0 {
		return nil, version, false
	}
	raw, err := c.rdb.Get(ctx, ledgerKey(productID, version)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn().Err(err).Str("product_id", productID).Msg("cache ledger: get")
		}
		return nil, version, false
	}
	var entries []*entity.LedgerEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		c.log.Warn().Err(err).Str("product_id", productID).Msg("cache ledger: payload inválido")
		return nil, version, false
	}
	if entries == nil {
		entries = []*entity.LedgerEntry{}
	}
	return entries, version, true
}

func (c *RedisLedgerCache) Set(ctx context.Context, productID string, version int64, entries []*entity.LedgerEntry) {
	if version < 0 {
		return
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		c.log.Warn().Err(err).Str("product_id", productID).Msg("cache ledger: serializar")
		return
	}
	if err := c.rdb.Set(ctx, ledgerKey(productID, version), raw, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("product_id", productID).Msg("cache ledger: set")
	}
}

func (c *RedisLedgerCache) Invalidate(ctx context.Context, productIDs ...string) {
	if len(productIDs) == 0 {
		return
	}
	_, err := c.rdb.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, id := range productIDs {
			pipe.Incr(ctx, versionKey(id))
		}
		return nil
	})
	if err != nil {
		c.log.Warn().Err(err).Strs("product_ids", productIDs).Msg("cache ledger: invalidar")
	}
}
