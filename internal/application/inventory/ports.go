package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/Inventario-stock/internal/domain/entity"
	"github.com/jhoicas/Inventario-stock/internal/domain/repository"
	"github.com/rs/zerolog"
)

// Repos repositorios atados a una misma transacción de BD.
type Repos struct {
	Stocks       repository.StockRepository
	Movements    repository.StockMovementRepository
	Transactions repository.TransactionRepository
	Histories    repository.TransactionHistoryRepository
	Items        repository.ItemRepository
	Locations    repository.LocationRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn retorna error nada de lo escrito queda confirmado. Garantiza atomicidad para el motor de inventario.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos Repos) error) error
}

// ActorResolver entrega la identidad que firma cada registro de log (vacío = anónimo).
type ActorResolver interface {
	Actor(ctx context.Context) string
}

// TextResolver resuelve una clave de mensaje a texto legible. Debe devolver "" o la misma
// clave cuando no tiene traducción.
type TextResolver interface {
	Resolve(ctx context.Context, key string, args ...any) string
}

// Metrics puerto de métricas del motor de inventario.
type Metrics interface {
	MovementRecorded(kind string)
	TransitionCompleted(op string, from, to entity.TransactionState)
	TransitionFailed(op string, err error)
}

// Deps colaboradores opcionales de los casos de uso; los nil se reemplazan por no-ops.
type Deps struct {
	Actors  ActorResolver
	Texts   TextResolver
	Metrics Metrics
	Logger  *zerolog.Logger
	Now     func() time.Time
}

func (d Deps) withDefaults() Deps {
	if d.Actors == nil {
		d.Actors = ContextActorResolver{}
	}
	if d.Texts == nil {
		d.Texts = NopTextResolver{}
	}
	if d.Metrics == nil {
		d.Metrics = NopMetrics{}
	}
	if d.Logger == nil {
		nop := zerolog.Nop()
		d.Logger = &nop
	}
	if d.Now == nil {
		d.Now = func() time.Time { return time.Now().UTC() }
	}
	return d
}

// NopTextResolver devuelve la clave sin cambios.
type NopTextResolver struct{}

func (NopTextResolver) Resolve(_ context.Context, key string, _ ...any) string { return key }

// NopMetrics descarta todas las métricas.
type NopMetrics struct{}

func (NopMetrics) MovementRecorded(string)                                                      {}
func (NopMetrics) TransitionCompleted(string, entity.TransactionState, entity.TransactionState) {}
func (NopMetrics) TransitionFailed(string, error)                                               {}
