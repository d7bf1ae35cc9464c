package memory

import (
	"context"

	"github.com/jhoicas/Inventario-stock/internal/domain"
	"github.com/jhoicas/Inventario-stock/internal/domain/entity"
	"github.com/jhoicas/Inventario-stock/internal/domain/repository"
)

var _ repository.StockRepository = (*stockRepo)(nil)

type stockRepo struct {
	st *state
}

func (r *stockRepo) Create(_ context.Context, stock *entity.Stock) error {
	if _, ok := r.st.stocks[stock.ID]; ok {
		return domain.ErrDuplicate
	}
	for _, s := range r.st.stocks {
		if s.ItemID == stock.ItemID && s.LocationID == stock.LocationID {
			return domain.ErrDuplicate
		}
	}
	r.st.stocks[stock.ID] = *stock
	return nil
}

func (r *stockRepo) GetByID(_ context.Context, id string) (*entity.Stock, error) {
	s, ok := r.st.stocks[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

// GetForUpdate: el mutex del Store ya serializa la transacción completa.
func (r *stockRepo) GetForUpdate(ctx context.Context, id string) (*entity.Stock, error) {
	return r.GetByID(ctx, id)
}

func (r *stockRepo) GetByItemAndLocation(_ context.Context, itemID, locationID string) (*entity.Stock, error) {
	for _, s := range r.st.stocks {
		if s.ItemID == itemID && s.LocationID == locationID {
			return &s, nil
		}
	}
	return nil, nil
}

func (r *stockRepo) Update(_ context.Context, stock *entity.Stock) error {
	if _, ok := r.st.stocks[stock.ID]; !ok {
		return domain.ErrNotFound
	}
	r.st.stocks[stock.ID] = *stock
	return nil
}
