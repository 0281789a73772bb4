package metrics_test

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mrp-api/internal/infrastructure/metrics"
)

// counterValue suma el valor de la familia name cuyas etiquetas coinciden con labels.
func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	total := 0.0
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			if matches(m, labels) {
				total += m.GetCounter().GetValue()
			}
		}
	}
	return total
}

func matches(m *dto.Metric, labels map[string]string) bool {
	found := 0
	for _, lp := range m.GetLabel() {
		if v, ok := labels[lp.GetName()]; ok {
			if v != lp.GetValue() {
				return false
			}
			found++
		}
	}
	return found == len(labels)
}

func TestMetrics_Recorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.WorkOrderTransition("in_progress", "completed")
	m.WorkOrderTransition("in_progress", "completed")
	m.ManufacturingOrderCompleted()
	m.MaterialConsumed("Steel", decimal.NewFromInt(-50))
	m.GoodsProduced("Widget", decimal.NewFromInt(100))
	m.RedundantDeduction("Steel", decimal.NewFromInt(-100))

	assert.Equal(t, 2.0, counterValue(t, reg, "mrp_work_order_transitions_total", map[string]string{"from": "in_progress", "to": "completed"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "mrp_manufacturing_orders_completed_total", nil))
	assert.Equal(t, 50.0, counterValue(t, reg, "mrp_material_consumed_total", map[string]string{"item": "Steel"}))
	assert.Equal(t, 100.0, counterValue(t, reg, "mrp_goods_produced_total", map[string]string{"product": "Widget"}))
	assert.Equal(t, 100.0, counterValue(t, reg, "mrp_redundant_deduction_total", map[string]string{"item": "Steel"}))
}

func TestMetrics_MiddlewareUsaRutaRegistrada(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/boms/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	for _, id := range []string{"a", "b"} {
		resp, err := app.Test(httptest.NewRequest("GET", "/boms/"+id, nil), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	}

	assert.Equal(t, 2.0, counterValue(t, reg, "mrp_http_requests_total", map[string]string{
		"method": "GET", "route": "/boms/:id", "status": "204",
	}))
}
