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

// StockUseCase operaciones directas sobre un Stock (put, take, moveTo, rollback).
// Cada operación bloquea la fila (SELECT FOR UPDATE), valida, escribe la cantidad y el movimiento
// en una sola transacción: o queda todo o no queda nada.
type StockUseCase struct {
	txRunner TxRunner
	deps     Deps
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(txRunner TxRunner, deps Deps) *StockUseCase {
	return &StockUseCase{txRunner: txRunner, deps: deps.withDefaults()}
}

// MovementInput entrada de put/take/moveTo. Cost y Reason son opcionales.
type MovementInput struct {
	Amount decimal.Decimal
	Cost   *decimal.Decimal
	Reason string
}

// CreateStockInput entrada para registrar un ítem en una ubicación.
type CreateStockInput struct {
	ItemID     string
	LocationID string
	Quantity   decimal.Decimal // cantidad inicial, puede ser 0
	Cost       *decimal.Decimal
	Reason     string
	Aisle      string
	Row        string
	Bin        string
}

// LocatorInput campos de ubicación física a modificar (nil = sin cambio).
type LocatorInput struct {
	Aisle *string
	Row   *string
	Bin   *string
}

// MoveResult movimientos generados por MoveTo (salida en origen, entrada en destino).
type MoveResult struct {
	Out *entity.StockMovement
	In  *entity.StockMovement
}

// CreateStock crea el stock del par ítem+ubicación. Con cantidad inicial positiva registra
// el primer movimiento (0 → cantidad).
func (uc *StockUseCase) CreateStock(ctx context.Context, in CreateStockInput) (stock *entity.Stock, err error) {
	ctx, span := startSpan(ctx, "stock.create",
		attribute.String("item.id", in.ItemID), attribute.String("location.id", in.LocationID))
	defer func() { endSpan(span, err) }()

	if in.ItemID == "" || in.LocationID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity.IsNegative() {
		return nil, &domain.InvalidQuantityError{Quantity: in.Quantity, Reason: "no puede ser negativa"}
	}
	if in.Quantity.IsPositive() {
		if err := requirePositive(in.Quantity); err != nil {
			return nil, err
		}
	}
	actor := uc.deps.Actors.Actor(ctx)
	now := uc.deps.Now()

	err = uc.txRunner.Run(ctx, func(repos Repos) error {
		item, err := repos.Items.GetByID(ctx, in.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		loc, err := repos.Locations.GetByID(ctx, in.LocationID)
		if err != nil {
			return err
		}
		if loc == nil {
			return domain.ErrNotFound
		}
		existing, err := repos.Stocks.GetByItemAndLocation(ctx, in.ItemID, in.LocationID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicate
		}
		s := &entity.Stock{
			ID:         uuid.New().String(),
			ItemID:     in.ItemID,
			LocationID: in.LocationID,
			Quantity:   decimal.Zero,
			Aisle:      in.Aisle,
			Row:        in.Row,
			Bin:        in.Bin,
			CreatedBy:  actor,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := repos.Stocks.Create(ctx, s); err != nil {
			return err
		}
		if in.Quantity.IsPositive() {
			reason := resolveReason(ctx, uc.deps.Texts, in.Reason, ReasonFirstRecord)
			if _, err := uc.put(ctx, repos, s, in.Quantity, in.Cost, reason, actor); err != nil {
				return err
			}
		}
		stock = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.deps.Logger.Info().Str("stock_id", stock.ID).Str("item_id", stock.ItemID).
		Str("location_id", stock.LocationID).Str("quantity", stock.Quantity.String()).Msg("stock creado")
	return stock, nil
}

// GetStock obtiene un stock por ID.
func (uc *StockUseCase) GetStock(ctx context.Context, id string) (*entity.Stock, error) {
	var stock *entity.Stock
	err := uc.txRunner.Run(ctx, func(repos Repos) error {
		s, err := repos.Stocks.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.ErrNotFound
		}
		stock = s
		return nil
	})
	return stock, err
}

// FindStock obtiene el stock de un ítem en una ubicación.
func (uc *StockUseCase) FindStock(ctx context.Context, itemID, locationID string) (*entity.Stock, error) {
	var stock *entity.Stock
	err := uc.txRunner.Run(ctx, func(repos Repos) error {
		s, err := repos.Stocks.GetByItemAndLocation(ctx, itemID, locationID)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.ErrNotFound
		}
		stock = s
		return nil
	})
	return stock, err
}

// UpdateLocator cambia pasillo/fila/estante. No altera la cantidad, por lo que no genera movimiento.
func (uc *StockUseCase) UpdateLocator(ctx context.Context, id string, in LocatorInput) (*entity.Stock, error) {
	var stock *entity.Stock
	err := uc.txRunner.Run(ctx, func(repos Repos) error {
		s, err := lockStock(ctx, repos, id)
		if err != nil {
			return err
		}
		if in.Aisle != nil {
			s.Aisle = *in.Aisle
		}
		if in.Row != nil {
			s.Row = *in.Row
		}
		if in.Bin != nil {
			s.Bin = *in.Bin
		}
		s.UpdatedAt = uc.deps.Now()
		if err := repos.Stocks.Update(ctx, s); err != nil {
			return err
		}
		stock = s
		return nil
	})
	return stock, err
}

// Put suma amount al stock. amount debe ser > 0; no hay límite superior.
// Con costo actualiza el costo promedio ponderado del ítem.
func (uc *StockUseCase) Put(ctx context.Context, stockID string, in MovementInput) (mov *entity.StockMovement, err error) {
	ctx, span := startSpan(ctx, "stock.put", attribute.String("stock.id", stockID))
	defer func() { endSpan(span, err) }()

	if err := requirePositive(in.Amount); err != nil {
		return nil, err
	}
	actor := uc.deps.Actors.Actor(ctx)
	err = uc.txRunner.Run(ctx, func(repos Repos) error {
		stock, err := lockStock(ctx, repos, stockID)
		if err != nil {
			return err
		}
		reason := resolveReason(ctx, uc.deps.Texts, in.Reason, ReasonPut)
		mov, err = uc.put(ctx, repos, stock, in.Amount, in.Cost, reason, actor)
		return err
	})
	if err != nil {
		uc.logFailure("put", stockID, err)
		return nil, err
	}
	uc.recorded("put", mov)
	return mov, nil
}

// Take resta amount del stock. Falla con *domain.NotEnoughStockError si amount supera la cantidad actual.
func (uc *StockUseCase) Take(ctx context.Context, stockID string, in MovementInput) (mov *entity.StockMovement, err error) {
	ctx, span := startSpan(ctx, "stock.take", attribute.String("stock.id", stockID))
	defer func() { endSpan(span, err) }()

	if err := requirePositive(in.Amount); err != nil {
		return nil, err
	}
	actor := uc.deps.Actors.Actor(ctx)
	err = uc.txRunner.Run(ctx, func(repos Repos) error {
		stock, err := lockStock(ctx, repos, stockID)
		if err != nil {
			return err
		}
		reason := resolveReason(ctx, uc.deps.Texts, in.Reason, ReasonTake)
		mov, err = applyDelta(ctx, repos, stock, in.Amount.Neg(), costOrZero(in.Cost), reason, actor, uc.deps.Now())
		return err
	})
	if err != nil {
		uc.logFailure("take", stockID, err)
		return nil, err
	}
	uc.recorded("take", mov)
	return mov, nil
}

// MoveTo traslada amount desde fromID hacia toID (mismo ítem, otra ubicación): take en origen y put
// en destino dentro de la misma transacción. Si el take falla ninguno de los dos cambia.
func (uc *StockUseCase) MoveTo(ctx context.Context, fromID, toID string, in MovementInput) (res *MoveResult, err error) {
	ctx, span := startSpan(ctx, "stock.move",
		attribute.String("stock.id", fromID), attribute.String("stock.to_id", toID))
	defer func() { endSpan(span, err) }()

	if fromID == "" || toID == "" || fromID == toID {
		return nil, domain.ErrInvalidInput
	}
	if err := requirePositive(in.Amount); err != nil {
		return nil, err
	}
	actor := uc.deps.Actors.Actor(ctx)
	now := uc.deps.Now()

	err = uc.txRunner.Run(ctx, func(repos Repos) error {
		// Orden de bloqueo fijo por ID para evitar deadlocks entre traslados cruzados.
		firstID, secondID := fromID, toID
		if secondID < firstID {
			firstID, secondID = secondID, firstID
		}
		first, err := lockStock(ctx, repos, firstID)
		if err != nil {
			return err
		}
		second, err := lockStock(ctx, repos, secondID)
		if err != nil {
			return err
		}
		from, to := first, second
		if from.ID != fromID {
			from, to = second, first
		}
		if from.ItemID != to.ItemID {
			return domain.ErrInvalidInput
		}

		fromName, err := uc.locationName(ctx, repos, from.LocationID)
		if err != nil {
			return err
		}
		toName, err := uc.locationName(ctx, repos, to.LocationID)
		if err != nil {
			return err
		}
		cost := costOrZero(in.Cost)

		outReason := resolveReason(ctx, uc.deps.Texts, in.Reason, ReasonMovedTo, toName)
		out, err := applyDelta(ctx, repos, from, in.Amount.Neg(), cost, outReason, actor, now)
		if err != nil {
			return err
		}
		inReason := resolveReason(ctx, uc.deps.Texts, in.Reason, ReasonMovedFrom, fromName)
		inMov, err := applyDelta(ctx, repos, to, in.Amount, cost, inReason, actor, now)
		if err != nil {
			return err
		}
		res = &MoveResult{Out: out, In: inMov}
		return nil
	})
	if err != nil {
		uc.logFailure("move", fromID, err)
		return nil, err
	}
	uc.recorded("move", res.Out)
	uc.recorded("move", res.In)
	return res, nil
}

// Rollback revierte un movimiento aplicando el delta inverso como un movimiento nuevo.
// El movimiento original no se modifica. *domain.InvalidMovementError si no pertenece al stock
// o si lo generó una transacción.
func (uc *StockUseCase) Rollback(ctx context.Context, stockID, movementID string, in MovementInput) (mov *entity.StockMovement, err error) {
	ctx, span := startSpan(ctx, "stock.rollback",
		attribute.String("stock.id", stockID), attribute.String("movement.id", movementID))
	defer func() { endSpan(span, err) }()

	actor := uc.deps.Actors.Actor(ctx)
	err = uc.txRunner.Run(ctx, func(repos Repos) error {
		stock, err := lockStock(ctx, repos, stockID)
		if err != nil {
			return err
		}
		target, err := ownedMovement(ctx, repos, stockID, movementID)
		if err != nil {
			return err
		}
		mov, err = uc.revert(ctx, repos, stock, target, in, actor)
		return err
	})
	if err != nil {
		uc.logFailure("rollback", stockID, err)
		return nil, err
	}
	uc.recorded("rollback", mov)
	return mov, nil
}

// RollbackRecursive revierte el movimiento indicado y todos los posteriores del mismo stock,
// del más reciente al más antiguo, en una sola transacción.
func (uc *StockUseCase) RollbackRecursive(ctx context.Context, stockID, movementID string, in MovementInput) (movs []*entity.StockMovement, err error) {
	ctx, span := startSpan(ctx, "stock.rollback_recursive",
		attribute.String("stock.id", stockID), attribute.String("movement.id", movementID))
	defer func() { endSpan(span, err) }()

	actor := uc.deps.Actors.Actor(ctx)
	err = uc.txRunner.Run(ctx, func(repos Repos) error {
		stock, err := lockStock(ctx, repos, stockID)
		if err != nil {
			return err
		}
		target, err := ownedMovement(ctx, repos, stockID, movementID)
		if err != nil {
			return err
		}
		chain, err := repos.Movements.ListSince(ctx, stockID, target.Seq)
		if err != nil {
			return err
		}
		for _, m := range chain {
			if err := revertible(m); err != nil {
				return err
			}
		}
		movs = make([]*entity.StockMovement, 0, len(chain))
		for _, m := range chain {
			rb, err := uc.revert(ctx, repos, stock, m, in, actor)
			if err != nil {
				return err
			}
			movs = append(movs, rb)
		}
		return nil
	})
	if err != nil {
		uc.logFailure("rollback_recursive", stockID, err)
		return nil, err
	}
	for _, m := range movs {
		uc.recorded("rollback", m)
	}
	return movs, nil
}

// ListMovements lista el log de movimientos del stock (más recientes primero).
func (uc *StockUseCase) ListMovements(ctx context.Context, stockID string, limit, offset int) ([]*entity.StockMovement, error) {
	var list []*entity.StockMovement
	err := uc.txRunner.Run(ctx, func(repos Repos) error {
		s, err := repos.Stocks.GetByID(ctx, stockID)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.ErrNotFound
		}
		list, err = repos.Movements.ListByStock(ctx, stockID, limit, offset)
		return err
	})
	return list, err
}

func (uc *StockUseCase) put(
	ctx context.Context,
	repos Repos,
	stock *entity.Stock,
	amount decimal.Decimal,
	cost *decimal.Decimal,
	reason, actor string,
) (*entity.StockMovement, error) {
	if cost != nil {
		item, err := repos.Items.GetForUpdate(ctx, stock.ItemID)
		if err != nil {
			return nil, err
		}
		if item != nil {
			newCost := domaininv.CostCalculator(stock.Quantity, item.Cost, amount, *cost)
			if err := repos.Items.UpdateCost(ctx, item.ID, newCost); err != nil {
				return nil, err
			}
		}
	}
	return applyDelta(ctx, repos, stock, amount, costOrZero(cost), reason, actor, uc.deps.Now())
}

func (uc *StockUseCase) revert(
	ctx context.Context,
	repos Repos,
	stock *entity.Stock,
	target *entity.StockMovement,
	in MovementInput,
	actor string,
) (*entity.StockMovement, error) {
	reason := resolveReason(ctx, uc.deps.Texts, in.Reason, ReasonRollback, target.ID)
	cost := target.Cost
	if in.Cost != nil {
		cost = *in.Cost
	}
	return applyDelta(ctx, repos, stock, target.Delta().Neg(), cost, reason, actor, uc.deps.Now())
}

func ownedMovement(ctx context.Context, repos Repos, stockID, movementID string) (*entity.StockMovement, error) {
	m, err := repos.Movements.GetByID(ctx, movementID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	if m.StockID != stockID {
		return nil, &domain.InvalidMovementError{MovementID: movementID, StockID: stockID}
	}
	if err := revertible(m); err != nil {
		return nil, err
	}
	return m, nil
}

// revertible rechaza movimientos generados por transiciones de una transacción.
func revertible(m *entity.StockMovement) error {
	if m.TransactionID != "" {
		return &domain.InvalidMovementError{MovementID: m.ID, StockID: m.StockID, TransactionID: m.TransactionID}
	}
	return nil
}

func (uc *StockUseCase) locationName(ctx context.Context, repos Repos, id string) (string, error) {
	loc, err := repos.Locations.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if loc == nil {
		return id, nil
	}
	return loc.Name, nil
}

func (uc *StockUseCase) recorded(kind string, mov *entity.StockMovement) {
	uc.deps.Metrics.MovementRecorded(kind)
	uc.deps.Logger.Debug().Str("kind", kind).Str("stock_id", mov.StockID).Str("movement_id", mov.ID).
		Str("before", mov.Before.String()).Str("after", mov.After.String()).Msg("movimiento registrado")
}

func (uc *StockUseCase) logFailure(kind, stockID string, err error) {
	uc.deps.Logger.Warn().Err(err).Str("kind", kind).Str("stock_id", stockID).Msg("movimiento rechazado")
}
