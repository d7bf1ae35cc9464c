package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockMovement registro inmutable de un cambio directo de cantidad sobre un Stock.
type StockMovement struct {
	ID            string
	Seq           int64 // orden de inserción dentro del log, asignado por el store
	StockID       string
	TransactionID string // transacción que originó el movimiento; vacío = cambio directo
	Before        decimal.Decimal
	After         decimal.Decimal
	Cost          decimal.Decimal
	Reason        string
	CreatedBy     string // vacío = anónimo
	CreatedAt     time.Time
}

// Delta devuelve After - Before (positivo = entrada, negativo = salida).
func (m *StockMovement) Delta() decimal.Decimal {
	return m.After.Sub(m.Before)
}
