package metrics

import "github.com/prometheus/client_golang/prometheus"

// Retrieval Prometheus metrics.
var (
	AskRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "expcards",
			Name:      "ask_requests_total",
			Help:      "Total ask requests by outcome",
		},
		[]string{"outcome"}, // "ok" / "empty" / "rejected" / "invalid"
	)

	SafetyRejectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "expcards",
			Name:      "safety_rejections_total",
			Help:      "Safety gate rejections by reason code",
		},
		[]string{"reason"},
	)

	VectorCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "expcards",
			Name:      "vector_cache_total",
			Help:      "Term-vector cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

// RegisterMatchingMetrics registers the retrieval metrics explicitly (no init()).
func RegisterMatchingMetrics() {
	prometheus.MustRegister(AskRequestsTotal)
	prometheus.MustRegister(SafetyRejectionsTotal)
	prometheus.MustRegister(VectorCacheTotal)
}
