package inventory

import (
	"fmt"

	"github.com/jhoicas/Inventario-stock/internal/domain"
	"github.com/jhoicas/Inventario-stock/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Operation operación nombrada de la máquina de estados de transacciones.
type Operation string

// Operaciones de transición.
const (
	OpHold      Operation = "hold"
	OpReserved  Operation = "reserved"
	OpBackOrder Operation = "back-order"
	OpOrdered   Operation = "ordered"
	OpCheckout  Operation = "checkout"
	OpSold      Operation = "sold"
	OpReturned  Operation = "returned"
	OpCancel    Operation = "cancel"
)

// Operations lista las operaciones en el orden del ciclo de vida.
var Operations = []Operation{
	OpHold, OpReserved, OpBackOrder, OpOrdered, OpCheckout, OpSold, OpReturned, OpCancel,
}

// Claves de mensaje para la razón por defecto del movimiento de stock de cada operación.
const (
	ReasonHold      = "transaction.hold.reason"
	ReasonReserved  = "transaction.reserved.reason"
	ReasonBackOrder = "transaction.back_order.reason"
	ReasonOrdered   = "transaction.ordered.reason"
	ReasonCheckout  = "transaction.checkout.reason"
	ReasonSold      = "transaction.sold.reason"
	ReasonReturned  = "transaction.returned.reason"
	ReasonCancel    = "transaction.cancel.reason"
)

// stockPolicy define cuánto stock debe quedar retirado (Taken) tras la transición.
type stockPolicy int

const (
	policyHold     stockPolicy = iota // Taken = qty
	policyRelease                     // Taken = 0, la demanda se registra sin descontar
	policyGiveBack                    // Taken = Taken - qty
	policyRevert                      // Taken = 0 y Quantity = 0
	policyKeep                        // Taken sin cambios, qty <= Taken
)

// quantityRule define cómo se obtiene la cantidad de la operación.
type quantityRule int

const (
	qtyRequired quantityRule = iota
	qtyDefaultsToCurrent
	qtyIgnored
)

type rule struct {
	sources   []entity.TransactionState
	target    entity.TransactionState
	policy    stockPolicy
	quantity  quantityRule
	reasonKey string
}

// transitions es la tabla central de transiciones; ninguna operación valida estados por fuera de ella.
var transitions = map[Operation]rule{
	OpHold: {
		sources:   []entity.TransactionState{entity.StateOpened},
		target:    entity.StateOnHold,
		policy:    policyHold,
		quantity:  qtyRequired,
		reasonKey: ReasonHold,
	},
	OpReserved: {
		sources:   []entity.TransactionState{entity.StateOpened, entity.StateOnHold},
		target:    entity.StateReserved,
		policy:    policyHold,
		quantity:  qtyRequired,
		reasonKey: ReasonReserved,
	},
	OpBackOrder: {
		sources:   []entity.TransactionState{entity.StateOpened, entity.StateOnHold, entity.StateReserved},
		target:    entity.StateBackOrdered,
		policy:    policyRelease,
		quantity:  qtyRequired,
		reasonKey: ReasonBackOrder,
	},
	OpOrdered: {
		sources:   []entity.TransactionState{entity.StateOpened, entity.StateBackOrdered},
		target:    entity.StateOrdered,
		policy:    policyRelease,
		quantity:  qtyRequired,
		reasonKey: ReasonOrdered,
	},
	OpCheckout: {
		sources:   []entity.TransactionState{entity.StateOpened, entity.StateOnHold, entity.StateReserved, entity.StateOrdered},
		target:    entity.StateCheckout,
		policy:    policyHold,
		quantity:  qtyRequired,
		reasonKey: ReasonCheckout,
	},
	OpSold: {
		sources:   []entity.TransactionState{entity.StateCheckout},
		target:    entity.StateSold,
		policy:    policyKeep,
		quantity:  qtyDefaultsToCurrent,
		reasonKey: ReasonSold,
	},
	OpReturned: {
		sources:   []entity.TransactionState{entity.StateCheckout, entity.StateSold},
		target:    entity.StateReturned,
		policy:    policyGiveBack,
		quantity:  qtyDefaultsToCurrent,
		reasonKey: ReasonReturned,
	},
	OpCancel: {
		sources:   nonTerminalStates(),
		target:    entity.StateCancelled,
		policy:    policyRevert,
		quantity:  qtyIgnored,
		reasonKey: ReasonCancel,
	},
}

func nonTerminalStates() []entity.TransactionState {
	out := make([]entity.TransactionState, 0, len(entity.TransactionStates))
	for _, s := range entity.TransactionStates {
		if !s.Terminal() {
			out = append(out, s)
		}
	}
	return out
}

// Plan describe el efecto completo de una transición antes de aplicarla.
type Plan struct {
	Operation      Operation
	From           entity.TransactionState
	To             entity.TransactionState
	QuantityBefore decimal.Decimal
	QuantityAfter  decimal.Decimal
	TakenBefore    decimal.Decimal
	TakenAfter     decimal.Decimal
	ReasonKey      string
}

// StockDelta cambio a aplicar sobre el stock: negativo = take, positivo = put, cero = sin movimiento.
func (p Plan) StockDelta() decimal.Decimal {
	return p.TakenBefore.Sub(p.TakenAfter)
}

// ParseOperation convierte el nombre externo en Operation.
func ParseOperation(s string) (Operation, bool) {
	op := Operation(s)
	_, ok := transitions[op]
	return op, ok
}

// Allowed indica si op es legal desde state.
func Allowed(state entity.TransactionState, op Operation) bool {
	r, ok := transitions[op]
	if !ok {
		return false
	}
	for _, s := range r.sources {
		if s == state {
			return true
		}
	}
	return false
}

// AllowedOperations devuelve las operaciones legales desde state.
func AllowedOperations(state entity.TransactionState) []Operation {
	var out []Operation
	for _, op := range Operations {
		if Allowed(state, op) {
			out = append(out, op)
		}
	}
	return out
}

// PlanTransition valida op contra el estado actual de tr y calcula el plan.
// qty nil usa la cantidad por defecto de la operación (solo sold/returned); cancel ignora qty.
// No modifica tr.
func PlanTransition(tr *entity.Transaction, op Operation, qty *decimal.Decimal) (Plan, error) {
	r, ok := transitions[op]
	if !ok {
		return Plan{}, fmt.Errorf("%w: operación desconocida %q", domain.ErrInvalidInput, op)
	}
	if !Allowed(tr.State, op) {
		return Plan{}, &domain.InvalidTransactionStateError{
			TransactionID: tr.ID,
			Operation:     string(op),
			State:         string(tr.State),
		}
	}

	var q decimal.Decimal
	switch r.quantity {
	case qtyRequired:
		if qty == nil {
			return Plan{}, &domain.InvalidQuantityError{Quantity: decimal.Zero, Reason: "cantidad requerida"}
		}
		q = *qty
	case qtyDefaultsToCurrent:
		q = tr.Quantity
		if qty != nil {
			q = *qty
		}
	}
	if r.quantity != qtyIgnored {
		if err := ValidateAmount(q); err != nil {
			return Plan{}, err
		}
	}

	plan := Plan{
		Operation:      op,
		From:           tr.State,
		To:             r.target,
		QuantityBefore: tr.Quantity,
		QuantityAfter:  q,
		TakenBefore:    tr.Taken,
		ReasonKey:      r.reasonKey,
	}
	switch r.policy {
	case policyHold:
		plan.TakenAfter = q
	case policyRelease:
		plan.TakenAfter = decimal.Zero
	case policyGiveBack:
		if q.GreaterThan(tr.Taken) {
			return Plan{}, &domain.InvalidQuantityError{Quantity: q, Reason: "excede la cantidad retirada por la transacción"}
		}
		plan.TakenAfter = tr.Taken.Sub(q)
	case policyRevert:
		plan.TakenAfter = decimal.Zero
		plan.QuantityAfter = decimal.Zero
	case policyKeep:
		if q.GreaterThan(tr.Taken) {
			return Plan{}, &domain.InvalidQuantityError{Quantity: q, Reason: "excede la cantidad retirada por la transacción"}
		}
		plan.TakenAfter = tr.Taken
	}
	return plan, nil
}
