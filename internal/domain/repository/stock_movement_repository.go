package repository

import (
	"context"

	"github.com/jhoicas/Inventario-stock/internal/domain/entity"
)

// StockMovementRepository puerto append-only para el log de movimientos de stock.
// No existe Update ni Delete: los movimientos son inmutables.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	GetByID(ctx context.Context, id string) (*entity.StockMovement, error)
	// ListByStock lista movimientos del stock, más recientes primero.
	ListByStock(ctx context.Context, stockID string, limit, offset int) ([]*entity.StockMovement, error)
	// ListSince devuelve el movimiento indicado y todos los posteriores del mismo stock, más recientes primero.
	ListSince(ctx context.Context, stockID string, seq int64) ([]*entity.StockMovement, error)
}
