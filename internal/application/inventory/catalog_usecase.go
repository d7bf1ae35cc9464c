package inventory

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/Inventario-stock/internal/domain"
	"github.com/jhoicas/Inventario-stock/internal/domain/entity"
	domaininv "github.com/jhoicas/Inventario-stock/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// CatalogUseCase alta y consulta de ítems y ubicaciones (colaboradores del motor de stock).
type CatalogUseCase struct {
	txRunner TxRunner
	deps     Deps
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(txRunner TxRunner, deps Deps) *CatalogUseCase {
	return &CatalogUseCase{txRunner: txRunner, deps: deps.withDefaults()}
}

// CreateItem crea un ítem de inventario con costo inicial 0.
func (uc *CatalogUseCase) CreateItem(ctx context.Context, name, description, metric string) (*entity.Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := uc.deps.Now()
	item := &entity.Item{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		Metric:      metric,
		Cost:        decimal.Zero,
		CreatedBy:   uc.deps.Actors.Actor(ctx),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := uc.txRunner.Run(ctx, func(repos Repos) error {
		return repos.Items.Create(ctx, item)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// GetItem obtiene un ítem por ID.
func (uc *CatalogUseCase) GetItem(ctx context.Context, id string) (*entity.Item, error) {
	var item *entity.Item
	err := uc.txRunner.Run(ctx, func(repos Repos) error {
		i, err := repos.Items.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if i == nil {
			return domain.ErrNotFound
		}
		item = i
		return nil
	})
	return item, err
}

// CreateLocation crea una ubicación; con parentID se cuelga del padre y hereda su ruta.
func (uc *CatalogUseCase) CreateLocation(ctx context.Context, name, parentID string) (*entity.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := uc.deps.Now()
	loc := &entity.Location{
		ID:        uuid.New().String(),
		ParentID:  parentID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := uc.txRunner.Run(ctx, func(repos Repos) error {
		var parent *entity.Location
		if parentID != "" {
			p, err := repos.Locations.GetByID(ctx, parentID)
			if err != nil {
				return err
			}
			if p == nil {
				return domain.ErrNotFound
			}
			parent = p
		}
		loc.Path, loc.Depth = domaininv.LocationPath(parent, name)
		return repos.Locations.Create(ctx, loc)
	})
	if err != nil {
		return nil, err
	}
	return loc, nil
}

// GetLocation obtiene una ubicación por ID.
func (uc *CatalogUseCase) GetLocation(ctx context.Context, id string) (*entity.Location, error) {
	var loc *entity.Location
	err := uc.txRunner.Run(ctx, func(repos Repos) error {
		l, err := repos.Locations.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if l == nil {
			return domain.ErrNotFound
		}
		loc = l
		return nil
	})
	return loc, err
}

// ListLocations lista ubicaciones ordenadas por ruta.
func (uc *CatalogUseCase) ListLocations(ctx context.Context, limit, offset int) ([]*entity.Location, error) {
	var list []*entity.Location
	err := uc.txRunner.Run(ctx, func(repos Repos) error {
		var err error
		list, err = repos.Locations.List(ctx, limit, offset)
		return err
	})
	return list, err
}
