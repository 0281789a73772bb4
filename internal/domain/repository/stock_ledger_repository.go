package repository

import (
	"context"
	"time"

	"github.com/jhoicas/mrp-api/internal/domain/entity"
)

// StockLedgerRepository puerto del libro de existencias (append-only).
type StockLedgerRepository interface {
	// LockProduct serializa los Append de un producto hasta el fin de la unidad de trabajo.
	LockProduct(ctx context.Context, productID string) error
	// LastEntry devuelve la entrada más reciente del producto o (nil, nil) si no tiene historial.
	LastEntry(ctx context.Context, productID string) (*entity.LedgerEntry, error)
	// Append persiste la entrada y asigna Seq.
	Append(ctx context.Context, entry *entity.LedgerEntry) error
	// ListByProduct devuelve las entradas ordenadas por CreatedAt DESC, Seq DESC.
	ListByProduct(ctx context.Context, productID string) ([]*entity.LedgerEntry, error)
	ListByReference(ctx context.Context, reference string) ([]*entity.LedgerEntry, error)
	// ListBetween devuelve las entradas de todos los productos creadas en [from, to).
	ListBetween(ctx context.Context, from, to time.Time) ([]*entity.LedgerEntry, error)
}
