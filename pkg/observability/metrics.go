package observability

import (
	"github.com/aretw0/compact/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts dispatches and routing warnings.
type Metrics struct {
	Actions  *prometheus.CounterVec // compact_actions_total{type, outcome}
	Warnings *prometheus.CounterVec // compact_warnings_total{source, path}
}

// NewMetrics creates the collectors and registers them on reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Actions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "compact_actions_total",
				Help: "Total number of dispatched actions, by type and outcome",
			},
			[]string{"type", "outcome"},
		),
		Warnings: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "compact_warnings_total",
				Help: "Total number of actions ignored because their slice could not be reached or handled",
			},
			[]string{"source", "path"},
		),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.Actions, m.Warnings} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns the engine hooks recording into m.
// Ignored actions are counted under the type "unknown" so that arbitrary
// client input cannot grow the label set.
func (m *Metrics) Hooks() domain.Hooks {
	return domain.Hooks{
		OnDispatch: func(e *domain.DispatchEvent) {
			typ := e.Action
			if e.Outcome == domain.OutcomeIgnored {
				typ = "unknown"
			}
			m.Actions.WithLabelValues(typ, string(e.Outcome)).Inc()
		},
		OnWarning: func(e *domain.WarningEvent) {
			m.Warnings.WithLabelValues(e.Source, e.Path).Inc()
		},
	}
}
