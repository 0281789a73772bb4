package manufacturing

import (
	"context"
	"time"

	"github.com/jhoicas/mrp-api/internal/application/inventory"
	"github.com/jhoicas/mrp-api/internal/domain"
	"github.com/jhoicas/mrp-api/internal/domain/entity"
	dominv "github.com/jhoicas/mrp-api/internal/domain/inventory"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// completer reúne los movimientos de existencias que dispara el cierre de órdenes.
// Todos sus métodos corren dentro de la unidad de trabajo de la transición.
type completer struct {
	poster   *inventory.StockPoster
	recorder Recorder
	opts     Options
	log      zerolog.Logger
}

// consume descuenta la parte de la orden de trabajo en cada componente de la orden:
// total/N por componente, con N = órdenes de trabajo de la orden de fabricación.
// Todas las órdenes de trabajo cuentan como partes iguales aunque su operación no use
// el componente. Devuelve los productos cuyo libro cambió.
func (c *completer) consume(
	ctx context.Context,
	repos inventory.Repos,
	mo *entity.ManufacturingOrder,
	wo *entity.WorkOrder,
	siblings int,
	now time.Time,
) ([]string, error) {
	if siblings <= 0 {
		return nil, domain.NewInvariantError("la orden de fabricación %s no tiene órdenes de trabajo", mo.ID)
	}
	var touched []string
	for _, comp := range mo.RequiredComponents {
		qty, err := dominv.EqualShare(comp.Quantity, siblings)
		if err != nil {
			return nil, err
		}
		posting, err := c.poster.Post(ctx, repos, inventory.Movement{
			ItemName:  comp.Item,
			ProductID: comp.ProductID,
			In:        decimal.Zero,
			Out:       qty,
			Reference: entity.WorkOrderReference(wo.ID),
			At:        now,
		})
		if err != nil {
			return nil, err
		}
		if posting.Entry != nil {
			touched = append(touched, posting.Entry.ProductID)
		}
		c.recorder.MaterialConsumed(comp.Item, qty)
	}
	return touched, nil
}

// postProduction registra la entrada del producto terminado cuando la orden se completa.
// Con DeductComponentsOnCompletion también descuenta cada componente por su total, sin
// entrada en el libro; sumado al consumo proporcional, la materia prima queda descontada dos veces.
func (c *completer) postProduction(
	ctx context.Context,
	repos inventory.Repos,
	mo *entity.ManufacturingOrder,
	now time.Time,
) ([]string, error) {
	if c.opts.DeductComponentsOnCompletion {
		for _, comp := range mo.RequiredComponents {
			if _, err := c.poster.AdjustOnly(ctx, repos, comp.Item, comp.ProductID, comp.Quantity.Neg()); err != nil {
				return nil, err
			}
			c.recorder.RedundantDeduction(comp.Item, comp.Quantity)
		}
	}

	qty := decimal.NewFromInt(int64(mo.Quantity))
	posting, err := c.poster.Post(ctx, repos, inventory.Movement{
		ItemName:  mo.ProductName,
		ProductID: mo.ProductID,
		In:        qty,
		Out:       decimal.Zero,
		Reference: entity.ManufacturingOrderReference(mo.ID),
		At:        now,
	})
	if err != nil {
		return nil, err
	}
	c.recorder.GoodsProduced(mo.ProductName, qty)

	var touched []string
	if posting.Entry != nil {
		touched = append(touched, posting.Entry.ProductID)
	}
	return touched, nil
}

func allCompleted(workOrders []*entity.WorkOrder) bool {
	if len(workOrders) == 0 {
		return false
	}
	for _, wo := range workOrders {
		if wo.Status != entity.WOStatusCompleted {
			return false
		}
	}
	return true
}
