package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Inventario-stock/internal/application/dto"
	"github.com/jhoicas/Inventario-stock/internal/application/inventory"
)

// CatalogHandler ítems y ubicaciones.
type CatalogHandler struct {
	uc *inventory.CatalogUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *inventory.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// CreateItem godoc
// @Summary      Crear ítem
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "nombre, descripción, unidad"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *CatalogHandler) CreateItem(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	item, err := h.uc.CreateItem(c.UserContext(), in.Name, in.Description, in.Metric)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromItem(item))
}

// GetItem godoc
// @Summary      Obtener ítem
// @Tags         catalog
// @Produce      json
// @Param        id   path  string  true  "ID del ítem"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [get]
func (h *CatalogHandler) GetItem(c *fiber.Ctx) error {
	item, err := h.uc.GetItem(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromItem(item))
}

// CreateLocation godoc
// @Summary      Crear ubicación
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLocationRequest  true  "nombre y padre opcional"
// @Success      201   {object}  dto.LocationResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/locations [post]
func (h *CatalogHandler) CreateLocation(c *fiber.Ctx) error {
	var in dto.CreateLocationRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	loc, err := h.uc.CreateLocation(c.UserContext(), in.Name, in.ParentID)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromLocation(loc))
}

// GetLocation obtiene una ubicación por ID.
func (h *CatalogHandler) GetLocation(c *fiber.Ctx) error {
	loc, err := h.uc.GetLocation(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromLocation(loc))
}

// ListLocations lista ubicaciones ordenadas por ruta.
func (h *CatalogHandler) ListLocations(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return writeError(c, err)
	}
	list, err := h.uc.ListLocations(c.UserContext(), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	items := make([]dto.LocationResponse, 0, len(list))
	for _, l := range list {
		items = append(items, dto.FromLocation(l))
	}
	return c.JSON(dto.ListResponse[dto.LocationResponse]{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}
