package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Inventario-stock/internal/application/dto"
	"github.com/jhoicas/Inventario-stock/internal/application/inventory"
	domaininv "github.com/jhoicas/Inventario-stock/internal/domain/inventory"
)

// TransactionHandler ciclo de vida de transacciones de stock.
type TransactionHandler struct {
	uc *inventory.TransactionUseCase
}

// NewTransactionHandler construye el handler.
func NewTransactionHandler(uc *inventory.TransactionUseCase) *TransactionHandler {
	return &TransactionHandler{uc: uc}
}

// Create godoc
// @Summary      Abrir transacción sobre un stock
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true   "ID del stock"
// @Param        body  body  dto.CreateTransactionRequest  false  "nombre"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stocks/{id}/transactions [post]
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransactionRequest
	if err := parseOptionalBody(c, &in); err != nil {
		return writeError(c, err)
	}
	tr, err := h.uc.NewTransaction(c.UserContext(), c.Params("id"), in.Name)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromTransaction(tr))
}

// ListByStock lista las transacciones de un stock.
func (h *TransactionHandler) ListByStock(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return writeError(c, err)
	}
	list, err := h.uc.ListByStock(c.UserContext(), c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	items := make([]dto.TransactionResponse, 0, len(list))
	for _, t := range list {
		items = append(items, dto.FromTransaction(t))
	}
	return c.JSON(dto.ListResponse[dto.TransactionResponse]{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}

// Get obtiene una transacción con sus operaciones permitidas.
func (h *TransactionHandler) Get(c *fiber.Ctx) error {
	tr, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromTransaction(tr))
}

// History godoc
// @Summary      Historial de transiciones
// @Tags         transactions
// @Produce      json
// @Param        id   path  string  true  "ID de la transacción"
// @Success      200  {array}   dto.TransactionHistoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id}/history [get]
func (h *TransactionHandler) History(c *fiber.Ctx) error {
	list, err := h.uc.History(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromHistory(list))
}

// Transition godoc
// @Summary      Ejecutar una transición
// @Description  operation: hold, reserved, back-order, ordered, checkout, sold, returned, cancel.
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        id         path  string                 true   "ID de la transacción"
// @Param        operation  path  string                 true   "operación"
// @Param        body       body  dto.TransitionRequest  false  "cantidad y razón"
// @Success      200        {object}  dto.TransactionResponse
// @Failure      400        {object}  dto.ErrorResponse
// @Failure      404        {object}  dto.ErrorResponse
// @Failure      409        {object}  dto.ErrorResponse
// @Router       /api/transactions/{id}/{operation} [post]
func (h *TransactionHandler) Transition(c *fiber.Ctx) error {
	op, ok := domaininv.ParseOperation(c.Params("operation"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "UNKNOWN_OPERATION", Message: "operación desconocida: " + c.Params("operation")})
	}
	var in dto.TransitionRequest
	if err := parseOptionalBody(c, &in); err != nil {
		return writeError(c, err)
	}
	tr, err := h.uc.Transition(c.UserContext(), c.Params("id"), op, in.Quantity, in.Reason)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromTransaction(tr))
}
