package export_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/mrp-api/internal/application/reports"
	"github.com/jhoicas/mrp-api/internal/infrastructure/export"
)

func sampleDocument() reports.Document {
	return reports.Document{
		Title:    "Reporte de inventario",
		Subtitle: "Período 2026-05-01 a 2026-05-31",
		Sections: []reports.Section{
			{
				Title:   "Consumo",
				Headers: []string{"Producto", "Entradas", "Salidas"},
				Rows: [][]string{
					{"Acero", "0", "100"},
					{"Widget", "100", "0"},
				},
			},
			{
				Title:   "Consumo",
				Headers: []string{"Total"},
			},
		},
	}
}

// ── XLSX ─────────────────────────────────────────────────────────────────────

func TestXLSXRenderer_UnaHojaPorSeccion(t *testing.T) {
	out, err := export.NewXLSXRenderer().Render(context.Background(), sampleDocument())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	require.Len(t, sheets, 2)
	assert.Equal(t, "Consumo", sheets[0])
	assert.Equal(t, "Consumo 2", sheets[1])

	title, err := f.GetCellValue("Consumo", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Reporte de inventario", title)

	header, err := f.GetCellValue("Consumo", "C4")
	require.NoError(t, err)
	assert.Equal(t, "Salidas", header)

	val, err := f.GetCellValue("Consumo", "A6")
	require.NoError(t, err)
	assert.Equal(t, "Widget", val)
}

func TestXLSXRenderer_Metadatos(t *testing.T) {
	r := export.NewXLSXRenderer()
	assert.Equal(t, "xlsx", r.Extension())
	assert.Contains(t, r.ContentType(), "spreadsheetml")
}

// ── PDF ──────────────────────────────────────────────────────────────────────

func TestPDFRenderer_GeneraPDF(t *testing.T) {
	r := export.NewPDFRenderer("mrp-api")
	out, err := r.Render(context.Background(), sampleDocument())
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "el documento debe iniciar con la firma PDF")
	assert.Equal(t, "application/pdf", r.ContentType())
	assert.Equal(t, "pdf", r.Extension())
}

func TestPDFRenderer_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := export.NewPDFRenderer("mrp-api").Render(ctx, sampleDocument())
	assert.ErrorIs(t, err, context.Canceled)
}
