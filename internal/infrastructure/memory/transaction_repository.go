package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/Inventario-stock/internal/domain"
	"github.com/jhoicas/Inventario-stock/internal/domain/entity"
	"github.com/jhoicas/Inventario-stock/internal/domain/repository"
)

var (
	_ repository.TransactionRepository        = (*transactionRepo)(nil)
	_ repository.TransactionHistoryRepository = (*historyRepo)(nil)
)

type transactionRepo struct {
	st *state
}

func (r *transactionRepo) Create(_ context.Context, tr *entity.Transaction) error {
	if _, ok := r.st.transactions[tr.ID]; ok {
		return domain.ErrDuplicate
	}
	r.st.transactions[tr.ID] = *tr
	return nil
}

func (r *transactionRepo) GetByID(_ context.Context, id string) (*entity.Transaction, error) {
	t, ok := r.st.transactions[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (r *transactionRepo) GetForUpdate(ctx context.Context, id string) (*entity.Transaction, error) {
	return r.GetByID(ctx, id)
}

func (r *transactionRepo) Update(_ context.Context, tr *entity.Transaction) error {
	if _, ok := r.st.transactions[tr.ID]; !ok {
		return domain.ErrNotFound
	}
	r.st.transactions[tr.ID] = *tr
	return nil
}

func (r *transactionRepo) ListByStock(_ context.Context, stockID string, limit, offset int) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	for _, t := range r.st.transactions {
		if t.StockID == stockID {
			out = append(out, &t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return paginate(out, limit, offset), nil
}

type historyRepo struct {
	st *state
}

func (r *historyRepo) Create(_ context.Context, h *entity.TransactionHistory) error {
	r.st.histories = append(r.st.histories, *h)
	return nil
}

func (r *historyRepo) ListByTransaction(_ context.Context, transactionID string) ([]*entity.TransactionHistory, error) {
	var out []*entity.TransactionHistory
	for _, h := range r.st.histories {
		if h.TransactionID == transactionID {
			out = append(out, &h)
		}
	}
	return out, nil
}
