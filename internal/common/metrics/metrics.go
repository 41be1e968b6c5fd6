// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RecommendationsServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisor_recommendations_served_total",
			Help: "Total number of recommendation sets served",
		},
		[]string{"outcome"},
	)

	DecisionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "advisor_decision_duration_seconds",
			Help: "Duration of decision-core operations in seconds",
		},
		[]string{"operation"},
	)

	ScoringFaults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisor_scoring_faults_total",
			Help: "Per-item scoring faults replaced by neutral fallback scores",
		},
		[]string{"stage"},
	)

	ClaimsCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisor_claims_cache_requests_total",
			Help: "Claims summary cache lookups by result",
		},
		[]string{"result"},
	)
)
