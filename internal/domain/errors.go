package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")

	ErrInvalidTransactionState = errors.New("transición inválida para el estado actual")
	ErrInvalidMovement         = errors.New("el movimiento no pertenece al stock")
	ErrInvalidQuantity         = errors.New("cantidad inválida")
)

// NotEnoughStockError se produce cuando un take dejaría la cantidad en negativo.
type NotEnoughStockError struct {
	StockID   string
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *NotEnoughStockError) Error() string {
	return fmt.Sprintf("stock insuficiente en %s: disponible %s, solicitado %s",
		e.StockID, e.Available.String(), e.Requested.String())
}

func (e *NotEnoughStockError) Is(target error) bool { return target == ErrInsufficientStock }

// InvalidTransactionStateError indica que la operación no está permitida desde el estado actual.
type InvalidTransactionStateError struct {
	TransactionID string
	Operation     string
	State         string
}

func (e *InvalidTransactionStateError) Error() string {
	return fmt.Sprintf("transacción %s: la operación %q no es válida en estado %s",
		e.TransactionID, e.Operation, e.State)
}

func (e *InvalidTransactionStateError) Is(target error) bool {
	return target == ErrInvalidTransactionState
}

// InvalidMovementError: el movimiento a revertir pertenece a otro stock o lo generó una
// transacción (solo se deshace con cancel sobre la transacción).
type InvalidMovementError struct {
	MovementID    string
	StockID       string
	TransactionID string
}

func (e *InvalidMovementError) Error() string {
	if e.TransactionID != "" {
		return fmt.Sprintf("el movimiento %s pertenece a la transacción %s", e.MovementID, e.TransactionID)
	}
	return fmt.Sprintf("el movimiento %s no pertenece al stock %s", e.MovementID, e.StockID)
}

func (e *InvalidMovementError) Is(target error) bool { return target == ErrInvalidMovement }

// InvalidQuantityError: se exigía una cantidad positiva (o dentro de un límite).
type InvalidQuantityError struct {
	Quantity decimal.Decimal
	Reason   string
}

func (e *InvalidQuantityError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("cantidad inválida %s: %s", e.Quantity.String(), e.Reason)
	}
	return fmt.Sprintf("cantidad inválida %s", e.Quantity.String())
}

func (e *InvalidQuantityError) Is(target error) bool {
	return target == ErrInvalidQuantity || target == ErrInvalidInput
}

// IsBusinessRule indica si el error corresponde a una regla de negocio violada
// (stock insuficiente, transición ilegal, cantidad inválida).
func IsBusinessRule(err error) bool {
	return errors.Is(err, ErrInsufficientStock) ||
		errors.Is(err, ErrInvalidTransactionState) ||
		errors.Is(err, ErrInvalidQuantity)
}

// IsIntegrity indica una violación de integridad de datos (p. ej. movimiento ajeno al stock).
func IsIntegrity(err error) bool {
	return errors.Is(err, ErrInvalidMovement)
}
