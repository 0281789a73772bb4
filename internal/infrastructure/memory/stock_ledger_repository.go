package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/mrp-api/internal/domain/entity"
	"github.com/jhoicas/mrp-api/internal/domain/repository"
)

var _ repository.StockLedgerRepository = (*StockLedgerRepo)(nil)

// StockLedgerRepo libro de existencias append-only.
type StockLedgerRepo struct{ base }

// NewStockLedgerRepository construye el repositorio.
func NewStockLedgerRepository(s *Store) *StockLedgerRepo { return &StockLedgerRepo{base{s: s}} }

// LockProduct no hace nada: el mutex del Store ya serializa la unidad de trabajo.
func (r *StockLedgerRepo) LockProduct(context.Context, string) error { return nil }

func (r *StockLedgerRepo) LastEntry(_ context.Context, productID string) (*entity.LedgerEntry, error) {
	defer r.lock()()
	list := r.filter(func(e entity.LedgerEntry) bool { return e.ProductID == productID })
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (r *StockLedgerRepo) Append(_ context.Context, entry *entity.LedgerEntry) error {
	defer r.lock()()
	r.s.data.ledgerSeq++
	entry.Seq = r.s.data.ledgerSeq
	r.s.data.ledger = append(r.s.data.ledger, *entry)
	return nil
}

func (r *StockLedgerRepo) ListByProduct(_ context.Context, productID string) ([]*entity.LedgerEntry, error) {
	defer r.lock()()
	return r.filter(func(e entity.LedgerEntry) bool { return e.ProductID == productID }), nil
}

func (r *StockLedgerRepo) ListByReference(_ context.Context, reference string) ([]*entity.LedgerEntry, error) {
	defer r.lock()()
	return r.filter(func(e entity.LedgerEntry) bool { return e.Reference == reference }), nil
}

func (r *StockLedgerRepo) ListBetween(_ context.Context, from, to time.Time) ([]*entity.LedgerEntry, error) {
	defer r.lock()()
	return r.filter(func(e entity.LedgerEntry) bool {
		return !e.CreatedAt.Before(from) && e.CreatedAt.Before(to)
	}), nil
}

// filter devuelve las entradas más recientes primero (CreatedAt DESC, Seq DESC).
func (r *StockLedgerRepo) filter(keep func(entity.LedgerEntry) bool) []*entity.LedgerEntry {
	out := []*entity.LedgerEntry{}
	for _, e := range r.s.data.ledger {
		if keep(e) {
			e := e
			out = append(out, &e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].Seq > out[j].Seq
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
