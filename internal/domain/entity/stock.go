package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock representa la cantidad de un ítem de inventario en una ubicación.
// Existe una sola fila por par (ItemID, LocationID); Quantity nunca es negativa.
type Stock struct {
	ID         string
	ItemID     string
	LocationID string
	Quantity   decimal.Decimal
	Aisle      string
	Row        string
	Bin        string
	CreatedBy  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
