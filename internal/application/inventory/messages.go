package inventory

import (
	"context"
	"fmt"

	domaininv "github.com/jhoicas/Inventario-stock/internal/domain/inventory"
)

// Claves de mensaje de movimientos directos.
const (
	ReasonFirstRecord = "stock.first_record.reason"
	ReasonPut         = "stock.put.reason"
	ReasonTake        = "stock.take.reason"
	ReasonMovedTo     = "stock.moved_to.reason"
	ReasonMovedFrom   = "stock.moved_from.reason"
	ReasonRollback    = "stock.rollback.reason"
)

// DefaultMessages textos por defecto (en) usados cuando el TextResolver no resuelve la clave.
var DefaultMessages = map[string]string{
	ReasonFirstRecord: "First Item Record; Stock Increase",
	ReasonPut:         "Stock Increase",
	ReasonTake:        "Stock Decrease",
	ReasonMovedTo:     "Moved to %s",
	ReasonMovedFrom:   "Moved from %s",
	ReasonRollback:    "Rolled back movement %s",

	domaininv.ReasonHold:      "Stock was held",
	domaininv.ReasonReserved:  "Stock was reserved",
	domaininv.ReasonBackOrder: "Held stock was released for back-order",
	domaininv.ReasonOrdered:   "Held stock was released for order",
	domaininv.ReasonCheckout:  "Stock was checked out",
	domaininv.ReasonSold:      "Stock sale was adjusted",
	domaininv.ReasonReturned:  "Stock was returned",
	domaininv.ReasonCancel:    "Transaction was cancelled; stock was restored",
}

// resolveReason: la razón explícita gana; si no, se resuelve la clave y se cae al texto por defecto.
func resolveReason(ctx context.Context, texts TextResolver, supplied, key string, args ...any) string {
	if supplied != "" {
		return supplied
	}
	if text := texts.Resolve(ctx, key, args...); text != "" && text != key {
		return text
	}
	if def, ok := DefaultMessages[key]; ok {
		return fmt.Sprintf(def, args...)
	}
	return key
}
