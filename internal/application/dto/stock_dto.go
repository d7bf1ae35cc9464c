package dto

import (
	"time"

	"github.com/jhoicas/Inventario-stock/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CreateStockRequest body para POST /api/stocks (ítem en una ubicación, cantidad inicial opcional).
type CreateStockRequest struct {
	ItemID     string           `json:"item_id" validate:"required,uuid"`
	LocationID string           `json:"location_id" validate:"required,uuid"`
	Quantity   decimal.Decimal  `json:"quantity"`
	Cost       *decimal.Decimal `json:"cost,omitempty"`
	Reason     string           `json:"reason,omitempty" validate:"max=500"`
	Aisle      string           `json:"aisle,omitempty" validate:"max=50"`
	Row        string           `json:"row,omitempty" validate:"max=50"`
	Bin        string           `json:"bin,omitempty" validate:"max=50"`
}

// UpdateLocatorRequest body para PATCH /api/stocks/:id/locator (campos ausentes no cambian).
type UpdateLocatorRequest struct {
	Aisle *string `json:"aisle,omitempty" validate:"omitempty,max=50"`
	Row   *string `json:"row,omitempty" validate:"omitempty,max=50"`
	Bin   *string `json:"bin,omitempty" validate:"omitempty,max=50"`
}

// MovementRequest body para put/take.
type MovementRequest struct {
	Quantity decimal.Decimal  `json:"quantity"`
	Cost     *decimal.Decimal `json:"cost,omitempty"`
	Reason   string           `json:"reason,omitempty" validate:"max=500"`
}

// MoveRequest body para POST /api/stocks/:id/move.
type MoveRequest struct {
	ToStockID string           `json:"to_stock_id" validate:"required,uuid"`
	Quantity  decimal.Decimal  `json:"quantity"`
	Cost      *decimal.Decimal `json:"cost,omitempty"`
	Reason    string           `json:"reason,omitempty" validate:"max=500"`
}

// RollbackRequest body para POST /api/stocks/:id/rollback. Recursive revierte también los posteriores.
type RollbackRequest struct {
	MovementID string           `json:"movement_id" validate:"required,uuid"`
	Recursive  bool             `json:"recursive"`
	Cost       *decimal.Decimal `json:"cost,omitempty"`
	Reason     string           `json:"reason,omitempty" validate:"max=500"`
}

// StockResponse salida de un stock.
type StockResponse struct {
	ID         string          `json:"id"`
	ItemID     string          `json:"item_id"`
	LocationID string          `json:"location_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	Aisle      string          `json:"aisle"`
	Row        string          `json:"row"`
	Bin        string          `json:"bin"`
	CreatedBy  string          `json:"created_by"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// StockMovementResponse salida de un movimiento del log.
type StockMovementResponse struct {
	ID            string          `json:"id"`
	Seq           int64           `json:"seq"`
	StockID       string          `json:"stock_id"`
	TransactionID string          `json:"transaction_id,omitempty"`
	Before        decimal.Decimal `json:"before"`
	After         decimal.Decimal `json:"after"`
	Delta         decimal.Decimal `json:"delta"`
	Cost          decimal.Decimal `json:"cost"`
	Reason        string          `json:"reason"`
	CreatedBy     string          `json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
}

// MoveResponse movimientos de salida y entrada de un traslado.
type MoveResponse struct {
	Out StockMovementResponse `json:"out"`
	In  StockMovementResponse `json:"in"`
}

// FromStock mapea la entidad a su respuesta.
func FromStock(s *entity.Stock) StockResponse {
	return StockResponse{
		ID:         s.ID,
		ItemID:     s.ItemID,
		LocationID: s.LocationID,
		Quantity:   s.Quantity,
		Aisle:      s.Aisle,
		Row:        s.Row,
		Bin:        s.Bin,
		CreatedBy:  s.CreatedBy,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

// FromMovement mapea el movimiento a su respuesta (Delta = After - Before).
func FromMovement(m *entity.StockMovement) StockMovementResponse {
	return StockMovementResponse{
		ID:            m.ID,
		Seq:           m.Seq,
		StockID:       m.StockID,
		TransactionID: m.TransactionID,
		Before:        m.Before,
		After:         m.After,
		Delta:         m.Delta(),
		Cost:          m.Cost,
		Reason:        m.Reason,
		CreatedBy:     m.CreatedBy,
		CreatedAt:     m.CreatedAt,
	}
}

// FromMovements mapea una lista de movimientos.
func FromMovements(list []*entity.StockMovement) []StockMovementResponse {
	out := make([]StockMovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, FromMovement(m))
	}
	return out
}
