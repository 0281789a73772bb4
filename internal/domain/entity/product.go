package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de producto.
const (
	ProductTypeRaw      = "raw"
	ProductTypeFinished = "finished"
)

// Product representa una materia prima o un producto terminado.
// El libro de existencias (StockLedger) se indexa por Product.ID.
type Product struct {
	ID          string
	Name        string // único
	Type        string // raw, finished
	Unit        string
	Description string
	Price       decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ValidProductType indica si t es un tipo de producto soportado.
func ValidProductType(t string) bool {
	return t == ProductTypeRaw || t == ProductTypeFinished
}
