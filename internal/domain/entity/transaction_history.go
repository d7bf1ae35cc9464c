package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionHistory registro inmutable de una transición de estado.
type TransactionHistory struct {
	ID             string
	TransactionID  string
	StateBefore    TransactionState
	StateAfter     TransactionState
	QuantityBefore decimal.Decimal
	QuantityAfter  decimal.Decimal
	CreatedBy      string
	CreatedAt      time.Time
}
