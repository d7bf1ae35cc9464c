package entity

import "time"

// Location representa una ubicación física (bodega, estante...). Forma un árbol:
// Path y Depth se recalculan desde el padre al crear.
type Location struct {
	ID        string
	ParentID  string // vacío = raíz
	Name      string
	Path      string // "/Warehouse/Shelf A"
	Depth     int
	CreatedAt time.Time
	UpdatedAt time.Time
}
