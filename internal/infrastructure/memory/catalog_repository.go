package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/Inventario-stock/internal/domain"
	"github.com/jhoicas/Inventario-stock/internal/domain/entity"
	"github.com/jhoicas/Inventario-stock/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var (
	_ repository.ItemRepository     = (*itemRepo)(nil)
	_ repository.LocationRepository = (*locationRepo)(nil)
)

type itemRepo struct {
	st *state
}

func (r *itemRepo) Create(_ context.Context, item *entity.Item) error {
	if _, ok := r.st.items[item.ID]; ok {
		return domain.ErrDuplicate
	}
	r.st.items[item.ID] = *item
	return nil
}

func (r *itemRepo) GetByID(_ context.Context, id string) (*entity.Item, error) {
	i, ok := r.st.items[id]
	if !ok {
		return nil, nil
	}
	return &i, nil
}

// GetForUpdate equivale a GetByID: el store ya serializa las transacciones.
func (r *itemRepo) GetForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	return r.GetByID(ctx, id)
}

func (r *itemRepo) UpdateCost(_ context.Context, id string, cost decimal.Decimal) error {
	i, ok := r.st.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	i.Cost = cost
	r.st.items[id] = i
	return nil
}

type locationRepo struct {
	st *state
}

func (r *locationRepo) Create(_ context.Context, loc *entity.Location) error {
	if _, ok := r.st.locations[loc.ID]; ok {
		return domain.ErrDuplicate
	}
	r.st.locations[loc.ID] = *loc
	return nil
}

func (r *locationRepo) GetByID(_ context.Context, id string) (*entity.Location, error) {
	l, ok := r.st.locations[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (r *locationRepo) List(_ context.Context, limit, offset int) ([]*entity.Location, error) {
	out := make([]*entity.Location, 0, len(r.st.locations))
	for _, l := range r.st.locations {
		out = append(out, &l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return paginate(out, limit, offset), nil
}
