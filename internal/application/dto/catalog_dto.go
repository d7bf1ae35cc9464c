package dto

import (
	"time"

	"github.com/jhoicas/Inventario-stock/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CreateItemRequest body para POST /api/items.
type CreateItemRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
	Metric      string `json:"metric" validate:"max=50"` // unidad: litre, kg, unit...
}

// ItemResponse salida de un ítem con su costo promedio ponderado.
type ItemResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Metric      string          `json:"metric"`
	Cost        decimal.Decimal `json:"cost"`
	CreatedBy   string          `json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// CreateLocationRequest body para POST /api/locations.
type CreateLocationRequest struct {
	Name     string `json:"name" validate:"required,max=200"`
	ParentID string `json:"parent_id" validate:"omitempty,uuid"`
}

// LocationResponse salida de una ubicación del árbol.
type LocationResponse struct {
	ID        string    `json:"id"`
	ParentID  string    `json:"parent_id,omitempty"`
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	Depth     int       `json:"depth"`
	CreatedAt time.Time `json:"created_at"`
}

// FromItem mapea la entidad a su respuesta.
func FromItem(i *entity.Item) ItemResponse {
	return ItemResponse{
		ID:          i.ID,
		Name:        i.Name,
		Description: i.Description,
		Metric:      i.Metric,
		Cost:        i.Cost,
		CreatedBy:   i.CreatedBy,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

// FromLocation mapea la entidad a su respuesta.
func FromLocation(l *entity.Location) LocationResponse {
	return LocationResponse{
		ID:        l.ID,
		ParentID:  l.ParentID,
		Name:      l.Name,
		Path:      l.Path,
		Depth:     l.Depth,
		CreatedAt: l.CreatedAt,
	}
}
