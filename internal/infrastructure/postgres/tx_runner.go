package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Inventario-stock/internal/application/inventory"
	"github.com/rs/zerolog"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

const maxTxAttempts = 3

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool   *pgxpool.Pool
	logger *zerolog.Logger
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool, logger *zerolog.Logger) *TxRunner {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &TxRunner{pool: pool, logger: logger}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Ante deadlock o fallo de serialización reintenta la transacción completa (hasta maxTxAttempts).
func (r *TxRunner) Run(ctx context.Context, fn func(repos inventory.Repos) error) error {
	var err error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err = r.runOnce(ctx, fn)
		if err == nil || !isRetryable(err) || ctx.Err() != nil {
			return err
		}
		r.logger.Warn().Err(err).Int("attempt", attempt).Msg("conflicto de concurrencia, reintentando transacción")
	}
	return err
}

func (r *TxRunner) runOnce(ctx context.Context, fn func(repos inventory.Repos) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// NewRepos construye todos los repositorios sobre el mismo Querier (pool o tx).
func NewRepos(q Querier) inventory.Repos {
	return inventory.Repos{
		Stocks:       NewStockRepository(q),
		Movements:    NewStockMovementRepository(q),
		Transactions: NewTransactionRepository(q),
		Histories:    NewTransactionHistoryRepository(q),
		Items:        NewItemRepository(q),
		Locations:    NewLocationRepository(q),
	}
}
