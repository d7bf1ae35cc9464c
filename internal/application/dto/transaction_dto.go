package dto

import (
	"time"

	"github.com/jhoicas/Inventario-stock/internal/domain/entity"
	domaininv "github.com/jhoicas/Inventario-stock/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest body para POST /api/stocks/:id/transactions.
type CreateTransactionRequest struct {
	Name string `json:"name" validate:"max=200"`
}

// TransitionRequest body de las operaciones de transición. Quantity es obligatoria salvo en
// sold/returned (por defecto la cantidad actual) y cancel (se ignora).
type TransitionRequest struct {
	Quantity *decimal.Decimal `json:"quantity,omitempty"`
	Reason   string           `json:"reason,omitempty" validate:"max=500"`
}

// TransactionResponse salida de una transacción con las operaciones legales desde su estado.
type TransactionResponse struct {
	ID                string          `json:"id"`
	StockID           string          `json:"stock_id"`
	Name              string          `json:"name"`
	State             string          `json:"state"`
	Quantity          decimal.Decimal `json:"quantity"`
	Taken             decimal.Decimal `json:"taken"`
	AllowedOperations []string        `json:"allowed_operations"`
	CreatedBy         string          `json:"created_by"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// TransactionHistoryResponse una entrada del historial de transiciones.
type TransactionHistoryResponse struct {
	ID             string          `json:"id"`
	StateBefore    string          `json:"state_before"`
	StateAfter     string          `json:"state_after"`
	QuantityBefore decimal.Decimal `json:"quantity_before"`
	QuantityAfter  decimal.Decimal `json:"quantity_after"`
	CreatedBy      string          `json:"created_by"`
	CreatedAt      time.Time       `json:"created_at"`
}

// FromTransaction mapea la entidad a su respuesta.
func FromTransaction(t *entity.Transaction) TransactionResponse {
	ops := domaininv.AllowedOperations(t.State)
	allowed := make([]string, 0, len(ops))
	for _, op := range ops {
		allowed = append(allowed, string(op))
	}
	return TransactionResponse{
		ID:                t.ID,
		StockID:           t.StockID,
		Name:              t.Name,
		State:             string(t.State),
		Quantity:          t.Quantity,
		Taken:             t.Taken,
		AllowedOperations: allowed,
		CreatedBy:         t.CreatedBy,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
}

// FromHistory mapea el historial en orden cronológico.
func FromHistory(list []*entity.TransactionHistory) []TransactionHistoryResponse {
	out := make([]TransactionHistoryResponse, 0, len(list))
	for _, h := range list {
		out = append(out, TransactionHistoryResponse{
			ID:             h.ID,
			StateBefore:    string(h.StateBefore),
			StateAfter:     string(h.StateAfter),
			QuantityBefore: h.QuantityBefore,
			QuantityAfter:  h.QuantityAfter,
			CreatedBy:      h.CreatedBy,
			CreatedAt:      h.CreatedAt,
		})
	}
	return out
}
