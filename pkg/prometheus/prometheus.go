package prometheus

import "github.com/prometheus/client_golang/prometheus"

var (
	IntentCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skill_intents_total",
			Help: "Count of processed intents",
		},
		[]string{"intent", "status"},
	)
	IntentDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "skill_intent_duration_seconds",
			Help:    "Time taken to process an intent",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"intent"},
	)
	ActiveFlows = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "skill_active_case_flows",
			Help: "Case creations currently in progress",
		},
	)

	APIFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skill_api_failures_total",
			Help: "Count of failed record store calls",
		},
		[]string{"intent"},
	)

	CacheOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skill_cache_operations_total",
			Help: "Identity cache lookups by result",
		},
		[]string{"result"}, // hit, miss, error
	)
)

func Init() {
	prometheus.MustRegister(
		IntentCounter,
		IntentDuration,
		ActiveFlows,
		APIFailures,
		CacheOperations,
	)
}
