package entity

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// BOMCodePrefix prefijo de los códigos autonumerados ("BOM-001").
const BOMCodePrefix = "BOM-"

// BOMItem materia prima requerida por unidad de producto terminado.
type BOMItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	Unit      string          `json:"unit"`
}

// BOMOperation paso de fabricación; cada una se convierte en una orden de trabajo.
type BOMOperation struct {
	Name         string `json:"name"`
	WorkCenterID string `json:"work_center_id"`
	TimeRequired int    `json:"time_required"` // minutos
}

// BillOfMaterials lista de materiales de un producto terminado.
type BillOfMaterials struct {
	ID          string
	Code        string
	ProductID   string
	ProductName string
	Items       []BOMItem
	Operations  []BOMOperation
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// FormatBOMCode construye el código "BOM-NNN" para el número dado.
func FormatBOMCode(n int) string {
	return fmt.Sprintf("%s%03d", BOMCodePrefix, n)
}

// ParseBOMCode extrae el número de un código "BOM-NNN"; ok=false si no tiene ese formato.
func ParseBOMCode(code string) (int, bool) {
	if !strings.HasPrefix(code, BOMCodePrefix) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(code, BOMCodePrefix))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
