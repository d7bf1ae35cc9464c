package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Inventario-stock/internal/domain"
	"github.com/jhoicas/Inventario-stock/internal/domain/entity"
	"github.com/jhoicas/Inventario-stock/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const stockColumns = `id, item_id, location_id, quantity, aisle, row_code, bin, created_by, created_at, updated_at`

// Create inserta el stock del par ítem+ubicación.
func (r *StockRepo) Create(ctx context.Context, s *entity.Stock) error {
	query := `
		INSERT INTO stocks (` + stockColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.ItemID, s.LocationID, s.Quantity, s.Aisle, s.Row, s.Bin, s.CreatedBy, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert stock: %w", err)
	}
	return nil
}

// GetByID obtiene un stock por ID.
func (r *StockRepo) GetByID(ctx context.Context, id string) (*entity.Stock, error) {
	return r.scanOne(ctx, `SELECT `+stockColumns+` FROM stocks WHERE id = $1`, "get stock", id)
}

// GetForUpdate obtiene el stock y bloquea la fila para update (SELECT FOR UPDATE).
func (r *StockRepo) GetForUpdate(ctx context.Context, id string) (*entity.Stock, error) {
	return r.scanOne(ctx, `SELECT `+stockColumns+` FROM stocks WHERE id = $1 FOR UPDATE`, "get stock for update", id)
}

// GetByItemAndLocation obtiene el stock de un ítem en una ubicación.
func (r *StockRepo) GetByItemAndLocation(ctx context.Context, itemID, locationID string) (*entity.Stock, error) {
	return r.scanOne(ctx,
		`SELECT `+stockColumns+` FROM stocks WHERE item_id = $1 AND location_id = $2`,
		"get stock by item and location", itemID, locationID)
}

// Update guarda cantidad, localizador y updated_at.
func (r *StockRepo) Update(ctx context.Context, s *entity.Stock) error {
	query := `
		UPDATE stocks SET quantity = $2, aisle = $3, row_code = $4, bin = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, s.ID, s.Quantity, s.Aisle, s.Row, s.Bin, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *StockRepo) scanOne(ctx context.Context, query, op string, args ...any) (*entity.Stock, error) {
	var s entity.Stock
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&s.ID, &s.ItemID, &s.LocationID, &s.Quantity, &s.Aisle, &s.Row, &s.Bin,
		&s.CreatedBy, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &s, nil
}
