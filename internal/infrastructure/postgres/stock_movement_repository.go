package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Inventario-stock/internal/domain/entity"
	"github.com/jhoicas/Inventario-stock/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo log append-only de movimientos; seq lo asigna la BD (BIGSERIAL).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementColumns = `id, seq, stock_id, COALESCE(transaction_id::text, ''), before_qty, after_qty, cost, reason, created_by, created_at`

// Create inserta el movimiento y completa Seq con el valor asignado.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, stock_id, transaction_id, before_qty, after_qty, cost, reason, created_by, created_at)
		VALUES ($1, $2, NULLIF($3, '')::uuid, $4, $5, $6, $7, $8, $9)
		RETURNING seq`
	err := r.q.QueryRow(ctx, query,
		m.ID, m.StockID, m.TransactionID, m.Before, m.After, m.Cost, m.Reason, m.CreatedBy, m.CreatedAt,
	).Scan(&m.Seq)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *StockMovementRepo) GetByID(ctx context.Context, id string) (*entity.StockMovement, error) {
	var m entity.StockMovement
	err := r.q.QueryRow(ctx, `SELECT `+movementColumns+` FROM stock_movements WHERE id = $1`, id).Scan(
		&m.ID, &m.Seq, &m.StockID, &m.TransactionID, &m.Before, &m.After, &m.Cost, &m.Reason, &m.CreatedBy, &m.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock movement: %w", err)
	}
	return &m, nil
}

// ListByStock lista movimientos del stock, más recientes primero.
func (r *StockMovementRepo) ListByStock(ctx context.Context, stockID string, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements WHERE stock_id = $1
		ORDER BY seq DESC LIMIT $2 OFFSET $3`
	return r.list(ctx, query, stockID, limitOrAll(limit), max(offset, 0))
}

// ListSince devuelve el movimiento con seq dado y todos los posteriores, más recientes primero.
func (r *StockMovementRepo) ListSince(ctx context.Context, stockID string, seq int64) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements WHERE stock_id = $1 AND seq >= $2
		ORDER BY seq DESC`
	return r.list(ctx, query, stockID, seq)
}

func (r *StockMovementRepo) list(ctx context.Context, query string, args ...any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.Seq, &m.StockID, &m.TransactionID, &m.Before, &m.After, &m.Cost, &m.Reason, &m.CreatedBy, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
