package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Inventario-stock/internal/domain"
	"github.com/jhoicas/Inventario-stock/internal/domain/entity"
	domaininv "github.com/jhoicas/Inventario-stock/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// applyDelta aplica delta sobre un stock ya bloqueado (GetForUpdate) y registra exactamente un
// movimiento con el antes/después. Debe ejecutarse dentro de TxRunner.Run.
func applyDelta(
	ctx context.Context,
	repos Repos,
	stock *entity.Stock,
	delta, cost decimal.Decimal,
	reason, actor string,
	now time.Time,
) (*entity.StockMovement, error) {
	return recordDelta(ctx, repos, stock, delta, &entity.StockMovement{
		Cost:      cost,
		Reason:    reason,
		CreatedBy: actor,
		CreatedAt: now,
	})
}

// recordDelta completa mov (ID, stock, antes/después), actualiza el stock e inserta el movimiento.
func recordDelta(
	ctx context.Context,
	repos Repos,
	stock *entity.Stock,
	delta decimal.Decimal,
	mov *entity.StockMovement,
) (*entity.StockMovement, error) {
	after := stock.Quantity.Add(delta)
	if after.IsNegative() {
		return nil, &domain.NotEnoughStockError{
			StockID:   stock.ID,
			Available: stock.Quantity,
			Requested: delta.Neg(),
		}
	}
	mov.ID = uuid.New().String()
	mov.StockID = stock.ID
	mov.Before = stock.Quantity
	mov.After = after
	stock.Quantity = after
	stock.UpdatedAt = mov.CreatedAt
	if err := repos.Stocks.Update(ctx, stock); err != nil {
		return nil, err
	}
	if err := repos.Movements.Create(ctx, mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// lockStock bloquea la fila del stock; ErrNotFound si no existe.
func lockStock(ctx context.Context, repos Repos, id string) (*entity.Stock, error) {
	stock, err := repos.Stocks.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, domain.ErrNotFound
	}
	return stock, nil
}

func requirePositive(amount decimal.Decimal) error {
	return domaininv.ValidateAmount(amount)
}

func costOrZero(cost *decimal.Decimal) decimal.Decimal {
	if cost == nil {
		return decimal.Zero
	}
	return *cost
}
