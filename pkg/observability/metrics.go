package observability

import (
	"context"

	"github.com/aretw0/bisim/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records refinement activity as Prometheus collectors.
type Metrics struct {
	Runs     prometheus.Counter
	Rounds   prometheus.Counter
	Splits   *prometheus.CounterVec
	Blocks   prometheus.Histogram
	Duration prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg falls back to prometheus.DefaultRegisterer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		Runs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bisim_refinements_total",
			Help: "Total number of refinement runs that reached a fixpoint",
		}),
		Rounds: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bisim_rounds_total",
			Help: "Total number of evaluated refinement rounds",
		}),
		Splits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bisim_splits_total",
				Help: "Total number of block splits by splitter kind",
			},
			[]string{"kind"},
		),
		Blocks: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "bisim_fixpoint_blocks",
			Help:    "Number of equivalence classes at the fixpoint",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "bisim_refinement_duration_seconds",
			Help:    "Duration of refinement runs",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(m.Runs, m.Rounds, m.Splits, m.Blocks, m.Duration)
	return m
}

// Hooks returns lifecycle hooks that feed the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRoundEnd: func(ctx context.Context, e *domain.RoundEvent) {
			m.Rounds.Inc()
		},
		OnSplit: func(ctx context.Context, e *domain.SplitEvent) {
			kind := "visible"
			if e.Splitter.Label.IsSilent() {
				kind = "silent"
			}
			m.Splits.WithLabelValues(kind).Inc()
		},
		OnFixpoint: func(ctx context.Context, e *domain.FixpointEvent) {
			m.Runs.Inc()
			m.Blocks.Observe(float64(e.Blocks))
			m.Duration.Observe(e.Duration.Seconds())
		},
	}
}
