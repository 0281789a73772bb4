package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/mrp-api/internal/application/dto"
	"github.com/jhoicas/mrp-api/internal/domain"
	"github.com/jhoicas/mrp-api/internal/domain/entity"
	"github.com/jhoicas/mrp-api/internal/domain/repository"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// InventoryUseCase consulta y ajuste manual de existencias.
type InventoryUseCase struct {
	txRunner  TxRunner
	poster    *StockPoster
	inventory repository.InventoryRepository
	cache     LedgerCache
	log       zerolog.Logger
	now       func() time.Time
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(
	txRunner TxRunner,
	poster *StockPoster,
	inventoryRepo repository.InventoryRepository,
	cache LedgerCache,
	log zerolog.Logger,
) *InventoryUseCase {
	if cache == nil {
		cache = NopLedgerCache{}
	}
	return &InventoryUseCase{
		txRunner:  txRunner,
		poster:    poster,
		inventory: inventoryRepo,
		cache:     cache,
		log:       log,
		now:       time.Now,
	}
}

// List devuelve las existencias ordenadas por nombre de ítem.
func (uc *InventoryUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.InventoryResponse, error) {
	page.DefaultPage()
	records, err := uc.inventory.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventoryResponse, 0, len(records))
	for _, r := range records {
		out = append(out, ToInventoryResponse(r))
	}
	return out, nil
}

// Adjust suma quantity_change a la existencia del ítem (lo crea si no existe).
// Si el ítem corresponde a un producto, el ajuste queda en el libro con referencia ADJ-<id>.
func (uc *InventoryUseCase) Adjust(ctx context.Context, identity entity.Identity, in dto.AdjustInventoryRequest) (*dto.InventoryResponse, error) {
	if !identity.HasRole(entity.RoleAdmin, entity.RoleInventoryManager) {
		return nil, domain.ErrForbidden
	}
	itemName := strings.TrimSpace(in.ItemName)
	if itemName == "" {
		return nil, domain.NewValidationError("item_name", "el nombre del ítem es obligatorio")
	}
	if in.QuantityChange.IsZero() {
		return nil, domain.NewValidationError("quantity_change", "la cantidad debe ser distinta de cero")
	}

	m := Movement{
		ItemName:  itemName,
		Reference: entity.AdjustmentReference(uuid.New().String()),
		At:        uc.now(),
	}
	if in.QuantityChange.IsPositive() {
		m.In, m.Out = in.QuantityChange, decimal.Zero
	} else {
		m.In, m.Out = decimal.Zero, in.QuantityChange.Neg()
	}

	var posting *Posting
	err := uc.txRunner.Run(ctx, func(repos Repos) error {
		var err error
		posting, err = uc.poster.Post(ctx, repos, m)
		return err
	})
	if err != nil {
		return nil, err
	}
	if posting.Entry != nil {
		uc.cache.Invalidate(ctx, posting.Entry.ProductID)
	}
	uc.log.Info().Str("item", itemName).Str("change", in.QuantityChange.String()).
		Str("user_id", identity.UserID).Msg("ajuste manual de inventario")
	out := ToInventoryResponse(posting.Record)
	return &out, nil
}

// ToInventoryResponse mapea entidad a DTO.
func ToInventoryResponse(r *entity.InventoryRecord) dto.InventoryResponse {
	return dto.InventoryResponse{
		ID:            r.ID,
		ItemName:      r.ItemName,
		ProductID:     r.ProductID,
		StockQuantity: r.StockQuantity,
		Location:      r.Location,
		UpdatedAt:     r.UpdatedAt,
	}
}
