package inventory

import (
	"github.com/jhoicas/mrp-api/internal/domain"
	"github.com/shopspring/decimal"
)

// QuantityScale decimales con que se guardan cantidades y saldos (NUMERIC(18,4)).
const QuantityScale = 4

// RoundQuantity redondea a QuantityScale, igual que PostgreSQL al guardar la columna.
func RoundQuantity(q decimal.Decimal) decimal.Decimal {
	return q.Round(QuantityScale)
}

// EqualShare reparte total en parts porciones iguales (servicio de dominio).
// Cada orden de trabajo consume total/N sin importar su operación; parts <= 0 es una
// violación de invariante porque la orden de trabajo que se completa pertenece a la orden.
// La porción se redondea a QuantityScale: con N=3, cada una consume 33.3333 de 100.
func EqualShare(total decimal.Decimal, parts int) (decimal.Decimal, error) {
	if parts <= 0 {
		return decimal.Zero, domain.NewInvariantError("la orden de fabricación no tiene órdenes de trabajo")
	}
	return RoundQuantity(total.Div(decimal.NewFromInt(int64(parts)))), nil
}

// NextBalance saldo acumulado después de un movimiento: previo + entrada - salida.
func NextBalance(previous, stockIn, stockOut decimal.Decimal) decimal.Decimal {
	return previous.Add(stockIn).Sub(stockOut)
}
