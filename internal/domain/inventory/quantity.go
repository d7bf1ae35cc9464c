package inventory

import (
	"fmt"

	"github.com/jhoicas/Inventario-stock/internal/domain"
	"github.com/shopspring/decimal"
)

// QuantityScale decimales que se persisten para cantidades (NUMERIC(20, 6)).
const QuantityScale = 6

// ValidateAmount exige una cantidad positiva que se pueda guardar sin redondeo.
func ValidateAmount(q decimal.Decimal) error {
	if !q.IsPositive() {
		return &domain.InvalidQuantityError{Quantity: q, Reason: "debe ser mayor que cero"}
	}
	if !q.Equal(q.Truncate(QuantityScale)) {
		return &domain.InvalidQuantityError{
			Quantity: q,
			Reason:   fmt.Sprintf("admite como máximo %d decimales", QuantityScale),
		}
	}
	return nil
}
