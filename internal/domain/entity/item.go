package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un ítem de inventario (p. ej. "Milk"); su stock se maneja por ubicación.
// Cost es el costo promedio ponderado calculado desde las entradas con costo.
type Item struct {
	ID          string
	Name        string
	Description string
	Metric      string // unidad de medida: L, kg, und
	Cost        decimal.Decimal
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
