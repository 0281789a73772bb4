package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/mrp-api/internal/domain/entity"
	dominv "github.com/jhoicas/mrp-api/internal/domain/inventory"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Movement movimiento de existencias de un ítem.
// ProductID vacío: se resuelve por nombre; si el ítem no es un producto registrado
// solo se ajusta el inventario y no se escribe en el libro.
type Movement struct {
	ItemName  string
	ProductID string
	In        decimal.Decimal
	Out       decimal.Decimal
	Reference string
	At        time.Time
}

// Posting resultado de aplicar un Movement.
type Posting struct {
	Record *entity.InventoryRecord
	Entry  *entity.LedgerEntry // nil si no se escribió en el libro
}

// StockPoster aplica movimientos dentro de una unidad de trabajo: ajusta el inventario del ítem
// y agrega la entrada del libro con el saldo acumulado del producto.
type StockPoster struct {
	log zerolog.Logger
}

// NewStockPoster construye el servicio.
func NewStockPoster(log zerolog.Logger) *StockPoster {
	return &StockPoster{log: log}
}

// Post ajusta inventario y libro. Debe llamarse dentro de TxRunner.Run.
func (p *StockPoster) Post(ctx context.Context, repos Repos, m Movement) (*Posting, error) {
	m.In = dominv.RoundQuantity(m.In)
	m.Out = dominv.RoundQuantity(m.Out)
	delta := m.In.Sub(m.Out)
	productID := m.ProductID
	if productID == "" {
		product, err := repos.Products.GetByName(ctx, m.ItemName)
		if err != nil {
			return nil, err
		}
		if product != nil {
			productID = product.ID
		}
	}

	record, err := repos.Inventory.Adjust(ctx, m.ItemName, productID, delta)
	if err != nil {
		return nil, fmt.Errorf("ajustar inventario de %q: %w", m.ItemName, err)
	}
	if productID == "" {
		p.log.Warn().Str("item", m.ItemName).Str("reference", m.Reference).
			Msg("ítem sin producto registrado: se omite la entrada del libro")
		return &Posting{Record: record}, nil
	}

	entry, err := p.appendEntry(ctx, repos, productID, m)
	if err != nil {
		return nil, err
	}
	return &Posting{Record: record, Entry: entry}, nil
}

// AdjustOnly cambia la existencia del ítem sin registrar movimiento en el libro.
func (p *StockPoster) AdjustOnly(ctx context.Context, repos Repos, itemName, productID string, delta decimal.Decimal) (*entity.InventoryRecord, error) {
	record, err := repos.Inventory.Adjust(ctx, itemName, productID, dominv.RoundQuantity(delta))
	if err != nil {
		return nil, fmt.Errorf("ajustar inventario de %q: %w", itemName, err)
	}
	return record, nil
}

func (p *StockPoster) appendEntry(ctx context.Context, repos Repos, productID string, m Movement) (*entity.LedgerEntry, error) {
	// El saldo previo y el nuevo se calculan con el producto bloqueado.
	if err := repos.Ledger.LockProduct(ctx, productID); err != nil {
		return nil, err
	}
	last, err := repos.Ledger.LastEntry(ctx, productID)
	if err != nil {
		return nil, err
	}
	previous := decimal.Zero
	if last != nil {
		previous = last.Balance
	}
	at := m.At
	if at.IsZero() {
		at = time.Now()
	}
	// created_at no retrocede dentro de un producto; seq desempata.
	if last != nil && at.Before(last.CreatedAt) {
		at = last.CreatedAt
	}
	entry := &entity.LedgerEntry{
		ID:        uuid.New().String(),
		ProductID: productID,
		Reference: m.Reference,
		StockIn:   m.In,
		StockOut:  m.Out,
		Balance:   dominv.NextBalance(previous, m.In, m.Out),
		CreatedAt: at,
	}
	if err := repos.Ledger.Append(ctx, entry); err != nil {
		return nil, fmt.Errorf("registrar movimiento %s: %w", m.Reference, err)
	}
	return entry, nil
}
