package inventory

import (
	"context"
	"strings"

	"github.com/jhoicas/mrp-api/internal/application/dto"
	"github.com/jhoicas/mrp-api/internal/domain"
	"github.com/jhoicas/mrp-api/internal/domain/entity"
	"github.com/jhoicas/mrp-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// LedgerUseCase consultas de solo lectura sobre el libro de existencias.
type LedgerUseCase struct {
	ledger repository.StockLedgerRepository
	cache  LedgerCache
}

// NewLedgerUseCase construye el caso de uso. cache nil = sin caché.
func NewLedgerUseCase(ledger repository.StockLedgerRepository, cache LedgerCache) *LedgerUseCase {
	if cache == nil {
		cache = NopLedgerCache{}
	}
	return &LedgerUseCase{ledger: ledger, cache: cache}
}

// ListEntries devuelve todas las entradas del producto, de la más reciente a la más antigua
// (created_at DESC, seq DESC). Un producto sin historial devuelve una lista vacía.
func (uc *LedgerUseCase) ListEntries(ctx context.Context, productID string) ([]*entity.LedgerEntry, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, domain.NewValidationError("product_id", "el producto es obligatorio")
	}
	// La versión se lee antes que el repositorio: si un cierre invalida en medio, este Set
	// cae en una versión vieja.
	entries, version, ok := uc.cache.Get(ctx, productID)
	if ok {
		return entries, nil
	}
	entries, err := uc.ledger.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []*entity.LedgerEntry{}
	}
	uc.cache.Set(ctx, productID, version, entries)
	return entries, nil
}

// Query devuelve las entradas del producto y sus totales.
func (uc *LedgerUseCase) Query(ctx context.Context, productID string) (*dto.LedgerResponse, error) {
	entries, err := uc.ListEntries(ctx, productID)
	if err != nil {
		return nil, err
	}
	summary := Summarize(productID, entries)
	return &dto.LedgerResponse{
		ProductID: productID,
		Entries:   ToLedgerEntryResponses(entries),
		Summary: dto.LedgerSummaryResponse{
			ProductID:   summary.ProductID,
			TotalIn:     summary.TotalIn,
			TotalOut:    summary.TotalOut,
			Balance:     summary.Balance,
			Entries:     summary.Entries,
			LastMovedAt: summary.LastMovedAt,
		},
	}, nil
}

// ListByReference devuelve los movimientos generados por una orden ("WO-<id>", "MO-<id>").
func (uc *LedgerUseCase) ListByReference(ctx context.Context, reference string) ([]dto.LedgerEntryResponse, error) {
	if strings.TrimSpace(reference) == "" {
		return nil, domain.NewValidationError("reference", "la referencia es obligatoria")
	}
	entries, err := uc.ledger.ListByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	return ToLedgerEntryResponses(entries), nil
}

// Summarize totaliza entradas ordenadas de la más reciente a la más antigua.
func Summarize(productID string, entries []*entity.LedgerEntry) entity.LedgerSummary {
	s := entity.LedgerSummary{ProductID: productID, TotalIn: decimal.Zero, TotalOut: decimal.Zero, Balance: decimal.Zero}
	for _, e := range entries {
		s.TotalIn = s.TotalIn.Add(e.StockIn)
		s.TotalOut = s.TotalOut.Add(e.StockOut)
	}
	s.Entries = len(entries)
	if len(entries) > 0 {
		s.Balance = entries[0].Balance
		last := entries[0].CreatedAt
		s.LastMovedAt = &last
	}
	return s
}

// ToLedgerEntryResponses mapea entidades a DTOs conservando el orden.
func ToLedgerEntryResponses(entries []*entity.LedgerEntry) []dto.LedgerEntryResponse {
	out := make([]dto.LedgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.LedgerEntryResponse{
			ID:        e.ID,
			ProductID: e.ProductID,
			Reference: e.Reference,
			StockIn:   e.StockIn,
			StockOut:  e.StockOut,
			Balance:   e.Balance,
			CreatedAt: e.CreatedAt,
		})
	}
	return out
}
