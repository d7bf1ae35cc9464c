package repository

import (
	"context"

	"github.com/jhoicas/Inventario-stock/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ItemRepository define el puerto de persistencia para ítems de inventario (DIP).
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	// GetForUpdate bloquea el ítem hasta el fin de la transacción (recalcular costo).
	GetForUpdate(ctx context.Context, id string) (*entity.Item, error)
	UpdateCost(ctx context.Context, id string, cost decimal.Decimal) error
}

// LocationRepository define el puerto de persistencia para ubicaciones.
type LocationRepository interface {
	Create(ctx context.Context, location *entity.Location) error
	GetByID(ctx context.Context, id string) (*entity.Location, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Location, error)
}
