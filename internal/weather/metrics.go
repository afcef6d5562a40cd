package weather

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	fetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weatherapp_provider_requests_total",
			Help: "Provider requests by query kind and outcome.",
		},
		[]string{"query", "outcome"},
	)

	fetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "weatherapp_provider_request_duration_seconds",
			Help:    "Provider request latency by query kind.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"query"},
	)

	batchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "weatherapp_batch_cities",
			Help:    "Number of cities per batch fetch.",
			Buckets: []float64{1, 2, 5, 10, 20, 50},
		},
	)
)

func observeFetch(query, outcome string, elapsed time.Duration) {
	fetchTotal.WithLabelValues(query, outcome).Inc()
	fetchDuration.WithLabelValues(query).Observe(elapsed.Seconds())
}
