package inventory_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mrp-api/internal/application/dto"
	"github.com/jhoicas/mrp-api/internal/application/inventory"
	"github.com/jhoicas/mrp-api/internal/domain"
	"github.com/jhoicas/mrp-api/internal/domain/entity"
	"github.com/jhoicas/mrp-api/internal/domain/repository"
	"github.com/jhoicas/mrp-api/internal/infrastructure/memory"
)

// recordingCache caché versionada en memoria que registra las invalidaciones.
type recordingCache struct {
	data        map[string][]*entity.LedgerEntry
	versions    map[string]int64
	invalidated []string
}

func newRecordingCache() *recordingCache {
	return &recordingCache{data: map[string][]*entity.LedgerEntry{}, versions: map[string]int64{}}
}

func cacheKey(id string, version int64) string { return fmt.Sprintf("%s:v%d", id, version) }

func (c *recordingCache) Get(_ context.Context, id string) ([]*entity.LedgerEntry, int64, bool) {
	v := c.versions[id]
	e, ok := c.data[cacheKey(id, v)]
	return e, v, ok
}

func (c *recordingCache) Set(_ context.Context, id string, version int64, entries []*entity.LedgerEntry) {
	c.data[cacheKey(id, version)] = entries
}

func (c *recordingCache) Invalidate(_ context.Context, ids ...string) {
	for _, id := range ids {
		c.versions[id]++
		c.invalidated = append(c.invalidated, id)
	}
}

// hookedLedger ejecuta afterRead una vez, entre la lectura del repositorio y el retorno.
type hookedLedger struct {
	repository.StockLedgerRepository
	afterRead func()
}

func (h *hookedLedger) ListByProduct(ctx context.Context, productID string) ([]*entity.LedgerEntry, error) {
	entries, err := h.StockLedgerRepository.ListByProduct(ctx, productID)
	if h.afterRead != nil {
		fn := h.afterRead
		h.afterRead = nil
		fn()
	}
	return entries, err
}

var (
	clerk    = entity.Identity{UserID: "u-clerk", Role: entity.RoleInventoryManager}
	operator = entity.Identity{UserID: "u-op", Role: entity.RoleOperator}
)

func setup(t *testing.T) (*memory.Store, *inventory.InventoryUseCase, *inventory.LedgerUseCase, *recordingCache, *entity.Product) {
	t.Helper()
	store := memory.NewStore()
	steel := &entity.Product{ID: uuid.New().String(), Name: "steel", Type: entity.ProductTypeRaw, CreatedAt: time.Now()}
	require.NoError(t, memory.NewProductRepository(store).Create(context.Background(), steel))

	cache := newRecordingCache()
	uc := inventory.NewInventoryUseCase(store, inventory.NewStockPoster(zerolog.Nop()),
		memory.NewInventoryRepository(store), cache, zerolog.Nop())
	ledger := inventory.NewLedgerUseCase(memory.NewStockLedgerRepository(store), cache)
	return store, uc, ledger, cache, steel
}

// ──────────────────────────────────────────────────────────────────────────────
// Adjust
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjust_ProductoRegistradoQuedaEnLibro(t *testing.T) {
	_, uc, ledger, cache, steel := setup(t)
	ctx := context.Background()

	// Poblar la caché para comprobar que el ajuste la invalida.
	_, err := ledger.ListEntries(ctx, steel.ID)
	require.NoError(t, err)

	out, err := uc.Adjust(ctx, clerk, dto.AdjustInventoryRequest{ItemName: "steel", QuantityChange: decimal.NewFromInt(40)})
	require.NoError(t, err)
	assert.True(t, out.StockQuantity.Equal(decimal.NewFromInt(40)))
	assert.Equal(t, steel.ID, out.ProductID)
	assert.Contains(t, cache.invalidated, steel.ID)

	_, err = uc.Adjust(ctx, clerk, dto.AdjustInventoryRequest{ItemName: "steel", QuantityChange: decimal.NewFromInt(-15)})
	require.NoError(t, err)

	res, err := ledger.Query(ctx, steel.ID)
	require.NoError(t, err)
	require.Len(t, res.Entries, 2)
	assert.True(t, res.Entries[0].StockOut.Equal(decimal.NewFromInt(15)))
	assert.True(t, res.Summary.Balance.Equal(decimal.NewFromInt(25)))
	assert.True(t, res.Summary.TotalIn.Equal(decimal.NewFromInt(40)))
	assert.Regexp(t, `^ADJ-`, res.Entries[0].Reference)
}

func TestAdjust_ItemSinProductoSoloInventario(t *testing.T) {
	store, uc, _, cache, _ := setup(t)
	ctx := context.Background()

	out, err := uc.Adjust(ctx, clerk, dto.AdjustInventoryRequest{ItemName: "tornillos", QuantityChange: decimal.NewFromInt(-3)})
	require.NoError(t, err)
	assert.True(t, out.StockQuantity.Equal(decimal.NewFromInt(-3)), "sin piso en cero")
	assert.Empty(t, out.ProductID)
	assert.Empty(t, cache.invalidated)

	rows, err := memory.NewStockLedgerRepository(store).ListBetween(ctx, time.Time{}, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestAdjust_Validaciones(t *testing.T) {
	_, uc, _, _, _ := setup(t)
	ctx := context.Background()

	_, err := uc.Adjust(ctx, operator, dto.AdjustInventoryRequest{ItemName: "steel", QuantityChange: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Adjust(ctx, clerk, dto.AdjustInventoryRequest{ItemName: "  ", QuantityChange: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Adjust(ctx, clerk, dto.AdjustInventoryRequest{ItemName: "steel"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Libro
// ──────────────────────────────────────────────────────────────────────────────

func TestLedger_ProductoObligatorio(t *testing.T) {
	_, _, ledger, _, _ := setup(t)

	_, err := ledger.ListEntries(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLedger_RespuestaVaciaSinMovimientos(t *testing.T) {
	_, _, ledger, _, steel := setup(t)

	res, err := ledger.Query(context.Background(), steel.ID)
	require.NoError(t, err)
	assert.NotNil(t, res.Entries)
	assert.Empty(t, res.Entries)
	assert.True(t, res.Summary.Balance.IsZero())
	assert.Nil(t, res.Summary.LastMovedAt)
}

// Un ajuste que se confirma entre la lectura del repositorio y el Set no deja la caché vieja.
func TestLedger_InvalidacionDuranteLecturaNoDejaCacheVieja(t *testing.T) {
	store, uc, _, cache, steel := setup(t)
	ctx := context.Background()

	_, err := uc.Adjust(ctx, clerk, dto.AdjustInventoryRequest{ItemName: "steel", QuantityChange: decimal.NewFromInt(-50)})
	require.NoError(t, err)

	hooked := &hookedLedger{StockLedgerRepository: memory.NewStockLedgerRepository(store)}
	hooked.afterRead = func() {
		_, err := uc.Adjust(ctx, clerk, dto.AdjustInventoryRequest{ItemName: "steel", QuantityChange: decimal.NewFromInt(-50)})
		require.NoError(t, err)
	}
	ledger := inventory.NewLedgerUseCase(hooked, cache)

	stale, err := ledger.ListEntries(ctx, steel.ID)
	require.NoError(t, err)
	assert.Len(t, stale, 1, "la lectura en curso ve el estado previo")

	res, err := ledger.Query(ctx, steel.ID)
	require.NoError(t, err)
	assert.Len(t, res.Entries, 2)
	assert.True(t, res.Summary.Balance.Equal(decimal.NewFromInt(-100)))
}

func TestSummarize(t *testing.T) {
	now := time.Now()
	entries := []*entity.LedgerEntry{
		{Seq: 2, StockIn: decimal.Zero, StockOut: decimal.NewFromInt(5), Balance: decimal.NewFromInt(5), CreatedAt: now},
		{Seq: 1, StockIn: decimal.NewFromInt(10), StockOut: decimal.Zero, Balance: decimal.NewFromInt(10), CreatedAt: now.Add(-time.Minute)},
	}

	s := inventory.Summarize("p", entries)
	assert.Equal(t, 2, s.Entries)
	assert.True(t, s.Balance.Equal(decimal.NewFromInt(5)))
	assert.True(t, s.TotalOut.Equal(decimal.NewFromInt(5)))
	require.NotNil(t, s.LastMovedAt)
	assert.True(t, s.LastMovedAt.Equal(now))
}
