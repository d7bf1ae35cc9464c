package metrics

import (
	"errors"

	"github.com/jhoicas/Inventario-stock/internal/application/inventory"
	"github.com/jhoicas/Inventario-stock/internal/domain"
	"github.com/jhoicas/Inventario-stock/internal/domain/entity"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var _ inventory.Metrics = (*Prometheus)(nil)

// Prometheus implementa inventory.Metrics con contadores en un registro propio.
type Prometheus struct {
	registry    *prometheus.Registry
	movements   *prometheus.CounterVec
	transitions *prometheus.CounterVec
	failures    *prometheus.CounterVec
}

// NewPrometheus crea el registro (con métricas de proceso y runtime de Go) y los contadores del motor.
func NewPrometheus(namespace string) *Prometheus {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	p := &Prometheus{
		registry: reg,
		movements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stock_movements_total",
			Help:      "Movimientos de stock registrados, por tipo de operación.",
		}, []string{"kind"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transaction_transitions_total",
			Help:      "Transiciones de transacción aplicadas.",
		}, []string{"operation", "from", "to"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transaction_transition_failures_total",
			Help:      "Transiciones rechazadas, por causa.",
		}, []string{"operation", "kind"}),
	}
	reg.MustRegister(p.movements, p.transitions, p.failures)
	return p
}

// Registry expone el registro para el handler /metrics.
func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}

func (p *Prometheus) MovementRecorded(kind string) {
	p.movements.WithLabelValues(kind).Inc()
}

func (p *Prometheus) TransitionCompleted(op string, from, to entity.TransactionState) {
	p.transitions.WithLabelValues(op, string(from), string(to)).Inc()
}

func (p *Prometheus) TransitionFailed(op string, err error) {
	p.failures.WithLabelValues(op, failureKind(err)).Inc()
}

// failureKind etiqueta de baja cardinalidad para el error.
func failureKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, domain.ErrInvalidTransactionState):
		return "invalid_state"
	case errors.Is(err, domain.ErrInvalidQuantity):
		return "invalid_quantity"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	default:
		return "internal"
	}
}
