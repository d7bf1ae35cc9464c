package inventory

import (
	"strings"

	"github.com/jhoicas/Inventario-stock/internal/domain/entity"
)

// LocationPath calcula Path y Depth de una ubicación nueva a partir de su padre (nil = raíz).
func LocationPath(parent *entity.Location, name string) (string, int) {
	segment := strings.ReplaceAll(strings.TrimSpace(name), "/", "-")
	if parent == nil {
		return "/" + segment, 0
	}
	return strings.TrimSuffix(parent.Path, "/") + "/" + segment, parent.Depth + 1
}
