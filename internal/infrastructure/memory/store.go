package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/jhoicas/Inventario-stock/internal/application/inventory"
	"github.com/jhoicas/Inventario-stock/internal/domain/entity"
	"github.com/jhoicas/Inventario-stock/internal/domain/repository"
)

var _ inventory.TxRunner = (*Store)(nil)

// Store almacenamiento en memoria con semántica transaccional: cada Run trabaja sobre una copia
// del estado y solo la confirma si fn no retorna error. Un único mutex serializa las transacciones,
// lo que equivale a bloquear todas las filas.
type Store struct {
	mu    sync.Mutex
	state state
}

type state struct {
	stocks       map[string]entity.Stock
	movements    []entity.StockMovement
	transactions map[string]entity.Transaction
	histories    []entity.TransactionHistory
	items        map[string]entity.Item
	locations    map[string]entity.Location
	users        map[string]entity.User
	seq          int64
}

func newState() state {
	return state{
		stocks:       map[string]entity.Stock{},
		transactions: map[string]entity.Transaction{},
		items:        map[string]entity.Item{},
		locations:    map[string]entity.Location{},
		users:        map[string]entity.User{},
	}
}

func (s state) clone() state {
	return state{
		stocks:       maps.Clone(s.stocks),
		movements:    slices.Clone(s.movements),
		transactions: maps.Clone(s.transactions),
		histories:    slices.Clone(s.histories),
		items:        maps.Clone(s.items),
		locations:    maps.Clone(s.locations),
		users:        maps.Clone(s.users),
		seq:          s.seq,
	}
}

// NewStore construye un store vacío.
func NewStore() *Store {
	return &Store{state: newState()}
}

// Run ejecuta fn sobre una copia del estado; confirma solo si fn no retorna error.
func (s *Store) Run(ctx context.Context, fn func(repos inventory.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.state.clone()
	if err := fn(reposFor(&work)); err != nil {
		return err
	}
	s.state = work
	return nil
}

// Users devuelve el repositorio de usuarios (fuera de Run: no llamar dentro de una transacción).
func (s *Store) Users() repository.UserRepository {
	return &userRepo{store: s}
}

func reposFor(st *state) inventory.Repos {
	return inventory.Repos{
		Stocks:       &stockRepo{st: st},
		Movements:    &movementRepo{st: st},
		Transactions: &transactionRepo{st: st},
		Histories:    &historyRepo{st: st},
		Items:        &itemRepo{st: st},
		Locations:    &locationRepo{st: st},
	}
}

func paginate[T any](list []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(list) {
		return []T{}
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
