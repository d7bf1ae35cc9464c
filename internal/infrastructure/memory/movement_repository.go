package memory

import (
	"context"

	"github.com/google/uuid"
	"github.com/jhoicas/Inventario-stock/internal/domain/entity"
	"github.com/jhoicas/Inventario-stock/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*movementRepo)(nil)

type movementRepo struct {
	st *state
}

func (r *movementRepo) Create(_ context.Context, movement *entity.StockMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	r.st.seq++
	movement.Seq = r.st.seq
	r.st.movements = append(r.st.movements, *movement)
	return nil
}

func (r *movementRepo) GetByID(_ context.Context, id string) (*entity.StockMovement, error) {
	for _, m := range r.st.movements {
		if m.ID == id {
			return &m, nil
		}
	}
	return nil, nil
}

func (r *movementRepo) ListByStock(_ context.Context, stockID string, limit, offset int) ([]*entity.StockMovement, error) {
	return paginate(r.newestFirst(stockID, 0), limit, offset), nil
}

func (r *movementRepo) ListSince(_ context.Context, stockID string, seq int64) ([]*entity.StockMovement, error) {
	return r.newestFirst(stockID, seq), nil
}

func (r *movementRepo) newestFirst(stockID string, minSeq int64) []*entity.StockMovement {
	var out []*entity.StockMovement
	for i := len(r.st.movements) - 1; i >= 0; i-- {
		m := r.st.movements[i]
		if m.StockID == stockID && m.Seq >= minSeq {
			out = append(out, &m)
		}
	}
	return out
}
