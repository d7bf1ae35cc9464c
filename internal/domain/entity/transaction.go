package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionState estado del ciclo de vida de una transacción de stock.
type TransactionState string

// Estados válidos (enumeración cerrada).
const (
	StateOpened      TransactionState = "opened"
	StateOnHold      TransactionState = "on-hold"
	StateReserved    TransactionState = "reserved"
	StateBackOrdered TransactionState = "back-ordered"
	StateOrdered     TransactionState = "ordered"
	StateCheckout    TransactionState = "checkout"
	StateSold        TransactionState = "sold"
	StateReturned    TransactionState = "returned"
	StateCancelled   TransactionState = "cancelled"
)

// TransactionStates lista todos los estados conocidos.
var TransactionStates = []TransactionState{
	StateOpened, StateOnHold, StateReserved, StateBackOrdered, StateOrdered,
	StateCheckout, StateSold, StateReturned, StateCancelled,
}

// Valid indica si s es uno de los estados conocidos.
func (s TransactionState) Valid() bool {
	for _, st := range TransactionStates {
		if st == s {
			return true
		}
	}
	return false
}

// Terminal indica si el estado no admite más transiciones.
func (s TransactionState) Terminal() bool { return s == StateCancelled }

// Transaction máquina de estados ligada a un Stock.
// Quantity cambia de significado según el estado (reservado, pedido, vendido...).
// Taken es la cantidad neta que la transacción tiene retirada del stock en este momento.
type Transaction struct {
	ID        string
	StockID   string
	Name      string
	State     TransactionState
	Quantity  decimal.Decimal
	Taken     decimal.Decimal
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}
