package repository

import (
	"context"

	"github.com/jhoicas/Inventario-stock/internal/domain/entity"
)

// TransactionRepository define el puerto de persistencia para transacciones de stock.
type TransactionRepository interface {
	Create(ctx context.Context, tr *entity.Transaction) error
	GetByID(ctx context.Context, id string) (*entity.Transaction, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Transaction, error)
	Update(ctx context.Context, tr *entity.Transaction) error
	ListByStock(ctx context.Context, stockID string, limit, offset int) ([]*entity.Transaction, error)
}

// TransactionHistoryRepository puerto append-only para el historial de transiciones.
type TransactionHistoryRepository interface {
	Create(ctx context.Context, h *entity.TransactionHistory) error
	// ListByTransaction devuelve el historial en orden cronológico.
	ListByTransaction(ctx context.Context, transactionID string) ([]*entity.TransactionHistory, error)
}
