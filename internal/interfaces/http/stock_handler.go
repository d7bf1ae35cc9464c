package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Inventario-stock/internal/application/dto"
	"github.com/jhoicas/Inventario-stock/internal/application/inventory"
)

// StockHandler operaciones sobre stocks y su log de movimientos.
type StockHandler struct {
	uc *inventory.StockUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *inventory.StockUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar ítem en una ubicación
// @Description  Crea el stock del par ítem+ubicación. Con cantidad inicial registra el primer movimiento.
// @Tags         stocks
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockRequest  true  "ítem, ubicación y cantidad inicial"
// @Success      201   {object}  dto.StockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stocks [post]
func (h *StockHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStockRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	stock, err := h.uc.CreateStock(c.UserContext(), inventory.CreateStockInput{
		ItemID:     in.ItemID,
		LocationID: in.LocationID,
		Quantity:   in.Quantity,
		Cost:       in.Cost,
		Reason:     in.Reason,
		Aisle:      in.Aisle,
		Row:        in.Row,
		Bin:        in.Bin,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromStock(stock))
}

// Get godoc
// @Summary      Obtener stock
// @Tags         stocks
// @Produce      json
// @Param        id   path  string  true  "ID del stock"
// @Success      200  {object}  dto.StockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stocks/{id} [get]
func (h *StockHandler) Get(c *fiber.Ctx) error {
	stock, err := h.uc.GetStock(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromStock(stock))
}

// Find busca el stock por ?item_id=&location_id=.
func (h *StockHandler) Find(c *fiber.Ctx) error {
	itemID, locationID := c.Query("item_id"), c.Query("location_id")
	if itemID == "" || locationID == "" {
		return writeError(c, &validationError{field: "item_id/location_id", tag: "required"})
	}
	stock, err := h.uc.FindStock(c.UserContext(), itemID, locationID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromStock(stock))
}

// UpdateLocator cambia pasillo, fila o estante sin tocar la cantidad.
func (h *StockHandler) UpdateLocator(c *fiber.Ctx) error {
	var in dto.UpdateLocatorRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	stock, err := h.uc.UpdateLocator(c.UserContext(), c.Params("id"), inventory.LocatorInput{
		Aisle: in.Aisle,
		Row:   in.Row,
		Bin:   in.Bin,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromStock(stock))
}

// ListMovements godoc
// @Summary      Log de movimientos del stock
// @Tags         stocks
// @Produce      json
// @Param        id      path   string  true   "ID del stock"
// @Param        limit   query  int     false  "máximo 100"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200     {object}  dto.ListResponse[dto.StockMovementResponse]
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/stocks/{id}/movements [get]
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return writeError(c, err)
	}
	list, err := h.uc.ListMovements(c.UserContext(), c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ListResponse[dto.StockMovementResponse]{
		Items: dto.FromMovements(list),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}

// Put godoc
// @Summary      Ingresar cantidad
// @Tags         stocks
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID del stock"
// @Param        body  body  dto.MovementRequest  true  "cantidad > 0, costo y razón opcionales"
// @Success      201   {object}  dto.StockMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stocks/{id}/put [post]
func (h *StockHandler) Put(c *fiber.Ctx) error {
	var in dto.MovementRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	mov, err := h.uc.Put(c.UserContext(), c.Params("id"), toMovementInput(in))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromMovement(mov))
}

// Take godoc
// @Summary      Retirar cantidad
// @Tags         stocks
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID del stock"
// @Param        body  body  dto.MovementRequest  true  "cantidad > 0"
// @Success      201   {object}  dto.StockMovementResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stocks/{id}/take [post]
func (h *StockHandler) Take(c *fiber.Ctx) error {
	var in dto.MovementRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	mov, err := h.uc.Take(c.UserContext(), c.Params("id"), toMovementInput(in))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromMovement(mov))
}

// Move godoc
// @Summary      Trasladar cantidad a otro stock del mismo ítem
// @Tags         stocks
// @Accept       json
// @Produce      json
// @Param        id    path  string           true  "ID del stock origen"
// @Param        body  body  dto.MoveRequest  true  "destino y cantidad"
// @Success      201   {object}  dto.MoveResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stocks/{id}/move [post]
func (h *StockHandler) Move(c *fiber.Ctx) error {
	var in dto.MoveRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	res, err := h.uc.MoveTo(c.UserContext(), c.Params("id"), in.ToStockID, inventory.MovementInput{
		Amount: in.Quantity,
		Cost:   in.Cost,
		Reason: in.Reason,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MoveResponse{
		Out: dto.FromMovement(res.Out),
		In:  dto.FromMovement(res.In),
	})
}

// Rollback godoc
// @Summary      Revertir un movimiento
// @Description  Registra el movimiento inverso. Con recursive revierte también todos los posteriores.
// @Tags         stocks
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID del stock"
// @Param        body  body  dto.RollbackRequest  true  "movimiento a revertir"
// @Success      201   {array}   dto.StockMovementResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/stocks/{id}/rollback [post]
func (h *StockHandler) Rollback(c *fiber.Ctx) error {
	var in dto.RollbackRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	input := inventory.MovementInput{Cost: in.Cost, Reason: in.Reason}
	if in.Recursive {
		movs, err := h.uc.RollbackRecursive(c.UserContext(), c.Params("id"), in.MovementID, input)
		if err != nil {
			return writeError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(dto.FromMovements(movs))
	}
	mov, err := h.uc.Rollback(c.UserContext(), c.Params("id"), in.MovementID, input)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON([]dto.StockMovementResponse{dto.FromMovement(mov)})
}

func toMovementInput(in dto.MovementRequest) inventory.MovementInput {
	return inventory.MovementInput{Amount: in.Quantity, Cost: in.Cost, Reason: in.Reason}
}
