package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/jhoicas/Inventario-stock/internal/domain"
	"github.com/jhoicas/Inventario-stock/internal/domain/entity"
	domaininv "github.com/jhoicas/Inventario-stock/internal/domain/inventory"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
)

// TransactionUseCase orquesta la máquina de estados de transacciones de stock.
// Cada transición: bloquea la transacción, valida contra la tabla central, aplica el delta de stock
// (con su movimiento), actualiza el estado y agrega una entrada de historial; todo en una misma tx.
type TransactionUseCase struct {
	txRunner TxRunner
	deps     Deps
}

// NewTransactionUseCase construye el caso de uso.
func NewTransactionUseCase(txRunner TxRunner, deps Deps) *TransactionUseCase {
	return &TransactionUseCase{txRunner: txRunner, deps: deps.withDefaults()}
}

// NewTransaction abre una transacción (estado opened, cantidad 0) sobre el stock.
func (uc *TransactionUseCase) NewTransaction(ctx context.Context, stockID, name string) (*entity.Transaction, error) {
	actor := uc.deps.Actors.Actor(ctx)
	now := uc.deps.Now()
	tr := &entity.Transaction{
		ID:        uuid.New().String(),
		StockID:   stockID,
		Name:      name,
		State:     entity.StateOpened,
		Quantity:  decimal.Zero,
		Taken:     decimal.Zero,
		CreatedBy: actor,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := uc.txRunner.Run(ctx, func(repos Repos) error {
		stock, err := repos.Stocks.GetByID(ctx, stockID)
		if err != nil {
			return err
		}
		if stock == nil {
			return domain.ErrNotFound
		}
		return repos.Transactions.Create(ctx, tr)
	})
	if err != nil {
		return nil, err
	}
	return tr, nil
}

// Get obtiene una transacción por ID.
func (uc *TransactionUseCase) Get(ctx context.Context, id string) (*entity.Transaction, error) {
	var tr *entity.Transaction
	err := uc.txRunner.Run(ctx, func(repos Repos) error {
		t, err := repos.Transactions.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrNotFound
		}
		tr = t
		return nil
	})
	return tr, err
}

// ListByStock lista las transacciones de un stock.
func (uc *TransactionUseCase) ListByStock(ctx context.Context, stockID string, limit, offset int) ([]*entity.Transaction, error) {
	var list []*entity.Transaction
	err := uc.txRunner.Run(ctx, func(repos Repos) error {
		stock, err := repos.Stocks.GetByID(ctx, stockID)
		if err != nil {
			return err
		}
		if stock == nil {
			return domain.ErrNotFound
		}
		list, err = repos.Transactions.ListByStock(ctx, stockID, limit, offset)
		return err
	})
	return list, err
}

// History devuelve el historial de transiciones en orden cronológico.
func (uc *TransactionUseCase) History(ctx context.Context, id string) ([]*entity.TransactionHistory, error) {
	var list []*entity.TransactionHistory
	err := uc.txRunner.Run(ctx, func(repos Repos) error {
		t, err := repos.Transactions.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrNotFound
		}
		list, err = repos.Histories.ListByTransaction(ctx, id)
		return err
	})
	return list, err
}

// Hold retira qty del stock y deja la transacción en on-hold.
func (uc *TransactionUseCase) Hold(ctx context.Context, id string, qty decimal.Decimal, reason string) (*entity.Transaction, error) {
	return uc.Transition(ctx, id, domaininv.OpHold, &qty, reason)
}

// Reserved reserva qty; si venía de on-hold solo se retira (o devuelve) la diferencia.
func (uc *TransactionUseCase) Reserved(ctx context.Context, id string, qty decimal.Decimal, reason string) (*entity.Transaction, error) {
	return uc.Transition(ctx, id, domaininv.OpReserved, &qty, reason)
}

// BackOrder registra qty como demanda pendiente sin descontar stock.
func (uc *TransactionUseCase) BackOrder(ctx context.Context, id string, qty decimal.Decimal, reason string) (*entity.Transaction, error) {
	return uc.Transition(ctx, id, domaininv.OpBackOrder, &qty, reason)
}

// Ordered registra qty como pedido al proveedor.
func (uc *TransactionUseCase) Ordered(ctx context.Context, id string, qty decimal.Decimal, reason string) (*entity.Transaction, error) {
	return uc.Transition(ctx, id, domaininv.OpOrdered, &qty, reason)
}

// Checkout retira qty del stock descontando lo ya retenido por la transacción.
func (uc *TransactionUseCase) Checkout(ctx context.Context, id string, qty decimal.Decimal, reason string) (*entity.Transaction, error) {
	return uc.Transition(ctx, id, domaininv.OpCheckout, &qty, reason)
}

// Sold confirma la venta sin mover stock; qty nil usa la cantidad actual y no puede superar lo retirado.
func (uc *TransactionUseCase) Sold(ctx context.Context, id string, qty *decimal.Decimal, reason string) (*entity.Transaction, error) {
	return uc.Transition(ctx, id, domaininv.OpSold, qty, reason)
}

// Returned devuelve qty al stock; qty nil devuelve la cantidad actual de la transacción.
func (uc *TransactionUseCase) Returned(ctx context.Context, id string, qty *decimal.Decimal, reason string) (*entity.Transaction, error) {
	return uc.Transition(ctx, id, domaininv.OpReturned, qty, reason)
}

// Cancel revierte el efecto neto sobre el stock y deja la cantidad en 0.
func (uc *TransactionUseCase) Cancel(ctx context.Context, id string, reason string) (*entity.Transaction, error) {
	return uc.Transition(ctx, id, domaininv.OpCancel, nil, reason)
}

// Transition ejecuta op sobre la transacción id. Si falla no cambia el estado, ni el stock, ni el historial.
func (uc *TransactionUseCase) Transition(
	ctx context.Context,
	id string,
	op domaininv.Operation,
	qty *decimal.Decimal,
	reason string,
) (result *entity.Transaction, err error) {
	ctx, span := startSpan(ctx, "transaction."+string(op), attribute.String("transaction.id", id))
	defer func() { endSpan(span, err) }()

	actor := uc.deps.Actors.Actor(ctx)
	now := uc.deps.Now()
	var plan domaininv.Plan

	err = uc.txRunner.Run(ctx, func(repos Repos) error {
		tr, err := repos.Transactions.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if tr == nil {
			return domain.ErrNotFound
		}
		plan, err = domaininv.PlanTransition(tr, op, qty)
		if err != nil {
			return err
		}

		if delta := plan.StockDelta(); !delta.IsZero() {
			stock, err := lockStock(ctx, repos, tr.StockID)
			if err != nil {
				return err
			}
			text := resolveReason(ctx, uc.deps.Texts, reason, plan.ReasonKey)
			mov := &entity.StockMovement{
				TransactionID: tr.ID,
				Cost:          decimal.Zero,
				Reason:        text,
				CreatedBy:     actor,
				CreatedAt:     now,
			}
			if _, err := recordDelta(ctx, repos, stock, delta, mov); err != nil {
				return err
			}
		}

		tr.State = plan.To
		tr.Quantity = plan.QuantityAfter
		tr.Taken = plan.TakenAfter
		tr.UpdatedAt = now
		if err := repos.Transactions.Update(ctx, tr); err != nil {
			return err
		}
		h := &entity.TransactionHistory{
			ID:             uuid.New().String(),
			TransactionID:  tr.ID,
			StateBefore:    plan.From,
			StateAfter:     plan.To,
			QuantityBefore: plan.QuantityBefore,
			QuantityAfter:  plan.QuantityAfter,
			CreatedBy:      actor,
			CreatedAt:      now,
		}
		if err := repos.Histories.Create(ctx, h); err != nil {
			return err
		}
		result = tr
		return nil
	})
	if err != nil {
		uc.deps.Metrics.TransitionFailed(string(op), err)
		uc.deps.Logger.Warn().Err(err).Str("transaction_id", id).Str("operation", string(op)).Msg("transición rechazada")
		return nil, err
	}
	if !plan.StockDelta().IsZero() {
		uc.deps.Metrics.MovementRecorded("transaction")
	}
	uc.deps.Metrics.TransitionCompleted(string(op), plan.From, plan.To)
	uc.deps.Logger.Debug().Str("transaction_id", id).Str("operation", string(op)).
		Str("from", string(plan.From)).Str("to", string(plan.To)).
		Str("quantity", plan.QuantityAfter.String()).Msg("transición aplicada")
	return result, nil
}
