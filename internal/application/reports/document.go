package reports

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/mrp-api/internal/application/dto"
)

// Section tabla de un reporte.
type Section struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// Document reporte listo para exportar: título y tablas de texto.
type Document struct {
	Title    string
	Subtitle string
	Sections []Section
}

// Renderer exporta un Document a un formato binario (PDF, XLSX).
type Renderer interface {
	Render(ctx context.Context, doc Document) ([]byte, error)
	ContentType() string
	Extension() string
}

func period(from, to string) string {
	return fmt.Sprintf("Período %s a %s", from, to)
}

// OperatorDocument tabla de órdenes de trabajo completadas.
func OperatorDocument(r *dto.OperatorReport) Document {
	rows := make([][]string, 0, len(r.WorkOrders))
	for _, wo := range r.WorkOrders {
		end := ""
		if wo.EndTime != nil {
			end = wo.EndTime.Format("2006-01-02 15:04")
		}
		rows = append(rows, []string{wo.ID, wo.OperationName, wo.MOID, fmt.Sprint(wo.PlannedDuration), wo.ActualDuration.StringFixed(2), end})
	}
	return Document{
		Title:    "Reporte de operador",
		Subtitle: period(r.From.Format(dto.DateLayout), r.To.Format(dto.DateLayout)),
		Sections: []Section{
			{
				Title:   "Resumen",
				Headers: []string{"Completadas", "Minutos"},
				Rows:    [][]string{{fmt.Sprint(r.Completed), r.TotalMinutes.StringFixed(2)}},
			},
			{
				Title:   "Órdenes de trabajo",
				Headers: []string{"ID", "Operación", "Orden", "Plan (min)", "Real (min)", "Fin"},
				Rows:    rows,
			},
		},
	}
}

// ManagerDocument producción diaria, retrasos y uso de centros.
func ManagerDocument(r *dto.ManagerReport) Document {
	throughput := make([][]string, 0, len(r.Throughput))
	for _, p := range r.Throughput {
		throughput = append(throughput, []string{p.Day, fmt.Sprint(p.Completed), fmt.Sprint(p.Units)})
	}
	overdue := make([][]string, 0, len(r.Overdue))
	for _, o := range r.Overdue {
		overdue = append(overdue, []string{o.ID, o.ProductName, o.Deadline, o.Status, fmt.Sprint(o.DaysLate)})
	}
	util := make([][]string, 0, len(r.Utilization))
	for _, u := range r.Utilization {
		util = append(util, []string{u.WorkCenterName, fmt.Sprint(u.CompletedOrders), u.PlannedMinutes.StringFixed(2), u.ActualMinutes.StringFixed(2), u.UtilizationPercent.StringFixed(2)})
	}
	return Document{
		Title:    "Reporte de producción",
		Subtitle: period(r.From.Format(dto.DateLayout), r.To.Format(dto.DateLayout)),
		Sections: []Section{
			{Title: "Producción diaria", Headers: []string{"Día", "Órdenes", "Unidades"}, Rows: throughput},
			{Title: "Órdenes vencidas", Headers: []string{"ID", "Producto", "Fecha límite", "Estado", "Días de atraso"}, Rows: overdue},
			{Title: "Centros de trabajo", Headers: []string{"Centro", "Completadas", "Plan (min)", "Real (min)", "Uso %"}, Rows: util},
		},
	}
}

// AdminDocument conteos generales.
func AdminDocument(r *dto.AdminReport) Document {
	return Document{
		Title: "Reporte de administración",
		Sections: []Section{
			{
				Title:   "Totales",
				Headers: []string{"Concepto", "Cantidad"},
				Rows: [][]string{
					{"Usuarios", fmt.Sprint(r.Users)},
					{"Productos", fmt.Sprint(r.Products)},
					{"Listas de materiales", fmt.Sprint(r.BOMs)},
					{"Centros de trabajo", fmt.Sprint(r.WorkCenters)},
					{"Unidades en inventario", r.InventoryUnits.String()},
				},
			},
			{Title: "Órdenes de fabricación por estado", Headers: []string{"Estado", "Cantidad"}, Rows: countRows(r.OrdersByStatus)},
			{Title: "Órdenes de trabajo por estado", Headers: []string{"Estado", "Cantidad"}, Rows: countRows(r.WorkByStatus)},
		},
	}
}

// InventoryDocument uso de existencias y saldo actual.
func InventoryDocument(r *dto.InventoryReport) Document {
	usage := make([][]string, 0, len(r.Usage))
	for _, u := range r.Usage {
		usage = append(usage, []string{u.ProductName, u.Consumed.String(), u.Produced.String()})
	}
	stock := make([][]string, 0, len(r.Stock))
	for _, s := range r.Stock {
		stock = append(stock, []string{s.ItemName, s.StockQuantity.String(), s.Location})
	}
	return Document{
		Title:    "Reporte de inventario",
		Subtitle: period(r.From.Format(dto.DateLayout), r.To.Format(dto.DateLayout)),
		Sections: []Section{
			{Title: "Movimientos", Headers: []string{"Producto", "Consumido", "Producido"}, Rows: usage},
			{Title: "Existencias", Headers: []string{"Ítem", "Cantidad", "Ubicación"}, Rows: stock},
		},
	}
}

func countRows(m map[string]int) [][]string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []string{k, fmt.Sprint(m[k])})
	}
	return rows
}
