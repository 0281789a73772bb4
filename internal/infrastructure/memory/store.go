// Package memory implementa los repositorios sobre mapas en memoria.
// Se usa con STORAGE_DRIVER=memory y como doble de pruebas de los casos de uso.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/mrp-api/internal/application/inventory"
	"github.com/jhoicas/mrp-api/internal/domain/entity"
)

var _ inventory.TxRunner = (*Store)(nil)

type tables struct {
	users       map[string]entity.User
	products    map[string]entity.Product
	inventory   map[string]entity.InventoryRecord // clave: nombre del ítem
	ledger      []entity.LedgerEntry
	ledgerSeq   int64
	boms        map[string]entity.BillOfMaterials
	workCenters map[string]entity.WorkCenter
	orders      map[string]entity.ManufacturingOrder
	workOrders  map[string]entity.WorkOrder
}

func newTables() *tables {
	return &tables{
		users:       map[string]entity.User{},
		products:    map[string]entity.Product{},
		inventory:   map[string]entity.InventoryRecord{},
		boms:        map[string]entity.BillOfMaterials{},
		workCenters: map[string]entity.WorkCenter{},
		orders:      map[string]entity.ManufacturingOrder{},
		workOrders:  map[string]entity.WorkOrder{},
	}
}

// clone copia superficial de cada tabla. Los valores guardados nunca se modifican en sitio
// (cada escritura reemplaza el valor), así que basta para restaurar tras un rollback.
func (t *tables) clone() *tables {
	c := &tables{
		users:       make(map[string]entity.User, len(t.users)),
		products:    make(map[string]entity.Product, len(t.products)),
		inventory:   make(map[string]entity.InventoryRecord, len(t.inventory)),
		ledger:      append([]entity.LedgerEntry(nil), t.ledger...),
		ledgerSeq:   t.ledgerSeq,
		boms:        make(map[string]entity.BillOfMaterials, len(t.boms)),
		workCenters: make(map[string]entity.WorkCenter, len(t.workCenters)),
		orders:      make(map[string]entity.ManufacturingOrder, len(t.orders)),
		workOrders:  make(map[string]entity.WorkOrder, len(t.workOrders)),
	}
	for k, v := range t.users {
		c.users[k] = v
	}
	for k, v := range t.products {
		c.products[k] = v
	}
	for k, v := range t.inventory {
		c.inventory[k] = v
	}
	for k, v := range t.boms {
		c.boms[k] = v
	}
	for k, v := range t.workCenters {
		c.workCenters[k] = v
	}
	for k, v := range t.orders {
		c.orders[k] = v
	}
	for k, v := range t.workOrders {
		c.workOrders[k] = v
	}
	return c
}

// Store datos en memoria. Un único mutex serializa las operaciones sueltas y las unidades
// de trabajo completas, lo que equivale a bloquear la orden de fabricación y el producto.
type Store struct {
	mu   sync.Mutex
	data *tables
}

// NewStore crea un almacenamiento vacío.
func NewStore() *Store {
	return &Store{data: newTables()}
}

type base struct {
	s  *Store
	tx bool // dentro de Run el mutex ya está tomado
}

func (b base) lock() func() {
	if b.tx {
		return func() {}
	}
	b.s.mu.Lock()
	return b.s.mu.Unlock
}

// Run ejecuta fn como una unidad de trabajo: si devuelve error (o entra en pánico) los datos
// vuelven al estado previo.
func (s *Store) Run(ctx context.Context, fn func(repos inventory.Repos) error) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	committed := false
	defer func() {
		if !committed {
			s.data = snapshot
		}
		if r := recover(); r != nil {
			err = fmt.Errorf("memory: pánico en la unidad de trabajo: %v", r)
		}
	}()

	b := base{s: s, tx: true}
	repos := inventory.Repos{
		Orders:     &ManufacturingOrderRepo{b},
		WorkOrders: &WorkOrderRepo{b},
		Inventory:  &InventoryRepo{b},
		Ledger:     &StockLedgerRepo{b},
		Products:   &ProductRepo{b},
	}
	if err := fn(repos); err != nil {
		return err
	}
	committed = true
	return nil
}

func paginate[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return []T{}
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
