package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the application's prometheus collectors.
type Metrics struct {
	LedgerMutations *prometheus.CounterVec
	GPAComputations prometheus.Counter
	GPACacheHits    prometheus.Counter
	GPACacheMisses  prometheus.Counter
	PlansGenerated  prometheus.Counter
}

// New registers the collectors on the given registerer. Pass
// prometheus.DefaultRegisterer in production; tests can pass a fresh
// registry to avoid duplicate registration.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		LedgerMutations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "unigrade_ledger_mutations_total",
			Help: "Enrollment ledger mutations by operation and outcome.",
		}, []string{"operation", "outcome"}),
		GPAComputations: factory.NewCounter(prometheus.CounterOpts{
			Name: "unigrade_gpa_computations_total",
			Help: "GPA computations performed.",
		}),
		GPACacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "unigrade_gpa_cache_hits_total",
			Help: "GPA breakdowns served from cache.",
		}),
		GPACacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "unigrade_gpa_cache_misses_total",
			Help: "GPA breakdowns recomputed on cache miss.",
		}),
		PlansGenerated: factory.NewCounter(prometheus.CounterOpts{
			Name: "unigrade_target_plans_total",
			Help: "Target-GPA plans generated.",
		}),
	}
}

// MutationOutcome labels for LedgerMutations.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)
