package manufacturing

import "github.com/shopspring/decimal"

// Recorder recibe los eventos de producción para métricas.
type Recorder interface {
	WorkOrderTransition(from, to string)
	ManufacturingOrderCompleted()
	MaterialConsumed(item string, qty decimal.Decimal)
	GoodsProduced(product string, qty decimal.Decimal)
	// RedundantDeduction cuenta el descuento completo de componentes al cerrar una orden.
	RedundantDeduction(item string, qty decimal.Decimal)
}

// NopRecorder descarta los eventos.
type NopRecorder struct{}

func (NopRecorder) WorkOrderTransition(string, string)         {}
func (NopRecorder) ManufacturingOrderCompleted()               {}
func (NopRecorder) MaterialConsumed(string, decimal.Decimal)   {}
func (NopRecorder) GoodsProduced(string, decimal.Decimal)      {}
func (NopRecorder) RedundantDeduction(string, decimal.Decimal) {}

// Options comportamiento configurable del cierre de órdenes.
type Options struct {
	// DeductComponentsOnCompletion descuenta otra vez cada componente por su cantidad total
	// cuando la orden de fabricación se completa, además del consumo proporcional por orden
	// de trabajo. Activo por defecto para conservar los saldos históricos.
	DeductComponentsOnCompletion bool
}

// DefaultOptions opciones por defecto.
func DefaultOptions() Options {
	return Options{DeductComponentsOnCompletion: true}
}
