// Package export implementa los formatos de descarga de reportes.
//
// Layout de la página A4 del PDF:
//
//	┌─────────────────────────────────────────────┐
//	│  TÍTULO                     │  Generado     │
//	│  Subtítulo (período)                        │
//	│  ─────────────────────────────────────────  │
//	│  SECCIÓN: cabecera + filas                  │
//	│  ...                                        │
//	└─────────────────────────────────────────────┘
package export

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/mrp-api/internal/application/reports"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// maroto reparte el ancho en 12 columnas.
const gridSize = 12

// ── Renderer ──────────────────────────────────────────────────────────────────

// PDFRenderer implementa reports.Renderer usando Maroto v2.
type PDFRenderer struct {
	author string
	now    func() time.Time
}

var _ reports.Renderer = (*PDFRenderer)(nil)

// NewPDFRenderer construye el renderer. author aparece en los metadatos del PDF.
func NewPDFRenderer(author string) *PDFRenderer {
	return &PDFRenderer{author: author, now: time.Now}
}

func (r *PDFRenderer) ContentType() string { return "application/pdf" }
func (r *PDFRenderer) Extension() string   { return "pdf" }

// Render genera el PDF y devuelve sus bytes.
func (r *PDFRenderer) Render(ctx context.Context, doc reports.Document) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(doc.Title, true).
		WithAuthor(r.author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc, r.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	for _, s := range doc.Sections {
		m.AddRows(row.New(4))
		m.AddRows(sectionTitleRow(s.Title))
		m.AddRows(tableHeaderRow(s.Headers))
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.2}))
		if len(s.Rows) == 0 {
			m.AddRows(row.New(6).Add(col.New(gridSize).Add(
				text.New("Sin registros en el período.", props.Text{Size: 8, Color: colorGray, Top: 1}),
			)))
			continue
		}
		for _, cells := range s.Rows {
			m.AddRows(tableDataRow(s.Headers, cells))
		}
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(doc reports.Document, now time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(doc.Title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(doc.Subtitle, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+now.Format("2006-01-02 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

func sectionTitleRow(title string) core.Row {
	return row.New(7).Add(col.New(gridSize).Add(
		text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 1,
		}),
	))
}

func tableHeaderRow(headers []string) core.Row {
	widths := columnWidths(len(headers))
	cols := make([]core.Col, 0, len(widths))
	for i := range widths {
		cols = append(cols, col.New(widths[i]).Add(text.New(headers[i], props.Text{
			Style: fontstyle.Bold, Size: 8, Top: 1, Left: 1, Right: 1,
		})))
	}
	return row.New(6).Add(cols...)
}

func tableDataRow(headers []string, cells []string) core.Row {
	widths := columnWidths(len(headers))
	cols := make([]core.Col, 0, len(widths))
	for i := range widths {
		v := ""
		if i < len(cells) {
			v = cells[i]
		}
		cols = append(cols, col.New(widths[i]).Add(text.New(v, props.Text{
			Size: 8, Top: 1, Left: 1, Right: 1,
		})))
	}
	return row.New(6).Add(cols...)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// columnWidths reparte las 12 columnas de maroto entre n celdas; el resto va a las primeras.
// Ej: 5 → [3 3 2 2 2]
func columnWidths(n int) []int {
	if n <= 0 {
		return nil
	}
	if n > gridSize {
		n = gridSize
	}
	widths := make([]int, n)
	base, extra := gridSize/n, gridSize%n
	for i := range widths {
		widths[i] = base
		if i < extra {
			widths[i]++
		}
	}
	return widths
}
