// Package metrics expone los contadores Prometheus de producción y de la API HTTP.
//
// Métricas:
//   - mrp_work_order_transitions_total{from,to}
//   - mrp_manufacturing_orders_completed_total
//   - mrp_material_consumed_total{item}
//   - mrp_goods_produced_total{product}
//   - mrp_redundant_deduction_total{item}
//   - mrp_http_requests_total{method,route,status}
//   - mrp_http_request_duration_seconds{method,route}
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/mrp-api/internal/application/manufacturing"
)

// Metrics implementa manufacturing.Recorder y mide las peticiones HTTP.
type Metrics struct {
	woTransitions      *prometheus.CounterVec
	moCompleted        prometheus.Counter
	materialConsumed   *prometheus.CounterVec
	goodsProduced      *prometheus.CounterVec
	redundantDeduction *prometheus.CounterVec
	httpRequests       *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
}

var _ manufacturing.Recorder = (*Metrics)(nil)

// New registra las métricas en reg (prometheus.DefaultRegisterer en producción).
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		woTransitions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "mrp_work_order_transitions_total",
			Help: "Transiciones de estado de órdenes de trabajo",
		}, []string{"from", "to"}),
		moCompleted: f.NewCounter(prometheus.CounterOpts{
			Name: "mrp_manufacturing_orders_completed_total",
			Help: "Órdenes de fabricación completadas",
		}),
		materialConsumed: f.NewCounterVec(prometheus.CounterOpts{
			Name: "mrp_material_consumed_total",
			Help: "Unidades de componente consumidas por órdenes de trabajo",
		}, []string{"item"}),
		goodsProduced: f.NewCounterVec(prometheus.CounterOpts{
			Name: "mrp_goods_produced_total",
			Help: "Unidades de producto terminado ingresadas al inventario",
		}, []string{"product"}),
		redundantDeduction: f.NewCounterVec(prometheus.CounterOpts{
			Name: "mrp_redundant_deduction_total",
			Help: "Unidades descontadas de nuevo al cerrar la orden de fabricación",
		}, []string{"item"}),
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "mrp_http_requests_total",
			Help: "Peticiones HTTP atendidas",
		}, []string{"method", "route", "status"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mrp_http_request_duration_seconds",
			Help:    "Duración de las peticiones HTTP",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

func (m *Metrics) WorkOrderTransition(from, to string) {
	m.woTransitions.WithLabelValues(from, to).Inc()
}

func (m *Metrics) ManufacturingOrderCompleted() { m.moCompleted.Inc() }

func (m *Metrics) MaterialConsumed(item string, qty decimal.Decimal) {
	addDecimal(m.materialConsumed.WithLabelValues(item), qty)
}

func (m *Metrics) GoodsProduced(product string, qty decimal.Decimal) {
	addDecimal(m.goodsProduced.WithLabelValues(product), qty)
}

func (m *Metrics) RedundantDeduction(item string, qty decimal.Decimal) {
	addDecimal(m.redundantDeduction.WithLabelValues(item), qty)
}

// Los contadores no aceptan valores negativos.
func addDecimal(c prometheus.Counter, qty decimal.Decimal) {
	v, _ := qty.Abs().Float64()
	c.Add(v)
}

// Middleware mide cada petición por ruta registrada (no por path crudo, para acotar cardinalidad).
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := c.Route().Path
		m.httpRequests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		m.httpDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}
