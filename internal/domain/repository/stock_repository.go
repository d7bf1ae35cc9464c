package repository

import (
	"context"

	"github.com/jhoicas/Inventario-stock/internal/domain/entity"
)

// StockRepository define el puerto de persistencia para Stock (una fila por ítem+ubicación).
// Usado dentro de transacciones para garantizar consistencia.
type StockRepository interface {
	// Create inserta el stock; devuelve domain.ErrDuplicate si ya existe el par ítem+ubicación.
	Create(ctx context.Context, stock *entity.Stock) error
	GetByID(ctx context.Context, id string) (*entity.Stock, error)
	// GetForUpdate obtiene el stock y bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Stock, error)
	GetByItemAndLocation(ctx context.Context, itemID, locationID string) (*entity.Stock, error)
	Update(ctx context.Context, stock *entity.Stock) error
}
