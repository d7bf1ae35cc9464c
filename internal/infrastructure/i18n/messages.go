package i18n

import (
	"github.com/jhoicas/Inventario-stock/internal/application/inventory"
	domaininv "github.com/jhoicas/Inventario-stock/internal/domain/inventory"
	"golang.org/x/text/language"
)

var translations = map[language.Tag]map[string]string{
	language.English: inventory.DefaultMessages,
	language.Spanish: {
		inventory.ReasonFirstRecord: "Primer registro del ítem; aumento de stock",
		inventory.ReasonPut:         "Aumento de stock",
		inventory.ReasonTake:        "Disminución de stock",
		inventory.ReasonMovedTo:     "Movido a %s",
		inventory.ReasonMovedFrom:   "Movido desde %s",
		inventory.ReasonRollback:    "Reversión del movimiento %s",

		domaininv.ReasonHold:      "Stock retenido",
		domaininv.ReasonReserved:  "Stock reservado",
		domaininv.ReasonBackOrder: "Stock retenido liberado por pedido pendiente",
		domaininv.ReasonOrdered:   "Stock retenido liberado por orden de compra",
		domaininv.ReasonCheckout:  "Stock despachado",
		domaininv.ReasonSold:      "Ajuste de venta de stock",
		domaininv.ReasonReturned:  "Stock devuelto",
		domaininv.ReasonCancel:    "Transacción cancelada; stock restaurado",
	},
}
