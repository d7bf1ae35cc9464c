package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Inventario-stock/internal/domain"
	"github.com/jhoicas/Inventario-stock/internal/domain/entity"
	"github.com/jhoicas/Inventario-stock/internal/domain/repository"
)

var (
	_ repository.TransactionRepository        = (*TransactionRepo)(nil)
	_ repository.TransactionHistoryRepository = (*TransactionHistoryRepo)(nil)
)

// TransactionRepo implementación de TransactionRepository sobre PostgreSQL.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

const transactionColumns = `id, stock_id, name, state, quantity, taken, created_by, created_at, updated_at`

func (r *TransactionRepo) Create(ctx context.Context, t *entity.Transaction) error {
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.StockID, t.Name, string(t.State), t.Quantity, t.Taken, t.CreatedBy, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

func (r *TransactionRepo) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	return r.scanOne(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, "get transaction", id)
}

// GetForUpdate bloquea la fila de la transacción (primer lock de toda transición).
func (r *TransactionRepo) GetForUpdate(ctx context.Context, id string) (*entity.Transaction, error) {
	return r.scanOne(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = $1 FOR UPDATE`,
		"get transaction for update", id)
}

func (r *TransactionRepo) Update(ctx context.Context, t *entity.Transaction) error {
	query := `
		UPDATE transactions SET name = $2, state = $3, quantity = $4, taken = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, t.ID, t.Name, string(t.State), t.Quantity, t.Taken, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByStock lista transacciones del stock, más recientes primero.
func (r *TransactionRepo) ListByStock(ctx context.Context, stockID string, limit, offset int) ([]*entity.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions WHERE stock_id = $1
		ORDER BY created_at DESC, id LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, stockID, limitOrAll(limit), max(offset, 0))
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (r *TransactionRepo) scanOne(ctx context.Context, query, op string, args ...any) (*entity.Transaction, error) {
	t, err := scanTransaction(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return t, nil
}

func scanTransaction(row pgx.Row) (*entity.Transaction, error) {
	var t entity.Transaction
	var state string
	if err := row.Scan(&t.ID, &t.StockID, &t.Name, &state, &t.Quantity, &t.Taken, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	t.State = entity.TransactionState(state)
	return &t, nil
}

// TransactionHistoryRepo historial append-only de transiciones.
type TransactionHistoryRepo struct {
	q Querier
}

// NewTransactionHistoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionHistoryRepository(q Querier) *TransactionHistoryRepo {
	return &TransactionHistoryRepo{q: q}
}

func (r *TransactionHistoryRepo) Create(ctx context.Context, h *entity.TransactionHistory) error {
	query := `
		INSERT INTO transaction_histories
			(id, transaction_id, state_before, state_after, quantity_before, quantity_after, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		h.ID, h.TransactionID, string(h.StateBefore), string(h.StateAfter),
		h.QuantityBefore, h.QuantityAfter, h.CreatedBy, h.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transaction history: %w", err)
	}
	return nil
}

func (r *TransactionHistoryRepo) ListByTransaction(ctx context.Context, transactionID string) ([]*entity.TransactionHistory, error) {
	query := `
		SELECT id, transaction_id, state_before, state_after, quantity_before, quantity_after, created_by, created_at
		FROM transaction_histories WHERE transaction_id = $1
		ORDER BY seq`
	rows, err := r.q.Query(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("list transaction history: %w", err)
	}
	defer rows.Close()
	var list []*entity.TransactionHistory
	for rows.Next() {
		var h entity.TransactionHistory
		var before, after string
		if err := rows.Scan(&h.ID, &h.TransactionID, &before, &after, &h.QuantityBefore, &h.QuantityAfter, &h.CreatedBy, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction history: %w", err)
		}
		h.StateBefore = entity.TransactionState(before)
		h.StateAfter = entity.TransactionState(after)
		list = append(list, &h)
	}
	return list, rows.Err()
}
