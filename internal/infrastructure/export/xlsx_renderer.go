package export

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/mrp-api/internal/application/reports"
)

// excel limita los nombres de hoja a 31 caracteres.
const maxSheetName = 31

// XLSXRenderer implementa reports.Renderer con excelize: una hoja por sección.
type XLSXRenderer struct{}

var _ reports.Renderer = (*XLSXRenderer)(nil)

func NewXLSXRenderer() *XLSXRenderer { return &XLSXRenderer{} }

func (r *XLSXRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (r *XLSXRenderer) Extension() string { return "xlsx" }

// Render escribe cada sección en su hoja: título y período en A1:A2, cabecera en la fila 4.
func (r *XLSXRenderer) Render(ctx context.Context, doc reports.Document) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	first := f.GetSheetName(f.GetActiveSheetIndex())
	used := make(map[string]bool, len(doc.Sections))

	for i, s := range doc.Sections {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := uniqueSheetName(s.Title, i, used)
		if i == 0 {
			if err := f.SetSheetName(first, name); err != nil {
				return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("xlsx: crear hoja %q: %w", name, err)
		}
		if err := writeSection(f, name, doc, s); err != nil {
			return nil, err
		}
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("xlsx: escribir archivo: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSection(f *excelize.File, sheet string, doc reports.Document, s reports.Section) error {
	if err := f.SetCellValue(sheet, "A1", doc.Title); err != nil {
		return fmt.Errorf("xlsx: título: %w", err)
	}
	if err := f.SetCellValue(sheet, "A2", doc.Subtitle); err != nil {
		return fmt.Errorf("xlsx: subtítulo: %w", err)
	}

	header := make([]interface{}, 0, len(s.Headers))
	for _, h := range s.Headers {
		header = append(header, h)
	}
	if err := f.SetSheetRow(sheet, "A4", &header); err != nil {
		return fmt.Errorf("xlsx: cabecera: %w", err)
	}

	row := 5
	for _, cells := range s.Rows {
		excelRow := make([]interface{}, 0, len(cells))
		for _, c := range cells {
			excelRow = append(excelRow, c)
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return fmt.Errorf("xlsx: celda: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &excelRow); err != nil {
			return fmt.Errorf("xlsx: fila %d: %w", row, err)
		}
		row++
	}
	return nil
}

// uniqueSheetName limpia caracteres que excel no acepta y evita nombres repetidos.
func uniqueSheetName(title string, idx int, used map[string]bool) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '-'
		}
		return r
	}, strings.TrimSpace(title))
	if name == "" {
		name = fmt.Sprintf("Hoja%d", idx+1)
	}
	if r := []rune(name); len(r) > maxSheetName {
		name = string(r[:maxSheetName])
	}
	if used[strings.ToLower(name)] {
		suffix := fmt.Sprintf(" %d", idx+1)
		r := []rune(name)
		if len(r)+len(suffix) > maxSheetName {
			r = r[:maxSheetName-len(suffix)]
		}
		name = string(r) + suffix
	}
	used[strings.ToLower(name)] = true
	return name
}
