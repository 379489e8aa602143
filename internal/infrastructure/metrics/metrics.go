// Package metrics exports workflow counters to Prometheus.
package metrics

import (
	"servicedesk/internal/usecase/interfaces"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "servicedesk"

type Recorder struct {
	transitions *prometheus.CounterVec
	stockUnits  *prometheus.CounterVec
	conflicts   *prometheus.CounterVec
}

var _ interfaces.IMetricsRecorder = (*Recorder)(nil)

// NewRecorder creates the counters and registers them with reg.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "transitions_total",
				Help:      "Committed state transitions by entity and transition",
			},
			[]string{"entity", "transition"},
		),
		stockUnits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "stock_units_total",
				Help:      "Inventory units moved by the ledger, by direction",
			},
			[]string{"direction"},
		),
		conflicts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "commit_conflicts_total",
				Help:      "Optimistic concurrency conflicts by operation",
			},
			[]string{"operation"},
		),
	}
	for _, c := range []prometheus.Collector{r.transitions, r.stockUnits, r.conflicts} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Recorder) ObserveTransition(entity, transition string) {
	r.transitions.WithLabelValues(entity, transition).Inc()
}

func (r *Recorder) ObserveStockAdjustment(direction string, quantity int) {
	if quantity < 0 {
		quantity = -quantity
	}
	r.stockUnits.WithLabelValues(direction).Add(float64(quantity))
}

func (r *Recorder) ObserveConflict(operation string) {
	r.conflicts.WithLabelValues(operation).Inc()
}
