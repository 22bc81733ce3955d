package records

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for /records retrievals.
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "records_requests_total",
		Help: "Total /records requests by outcome status",
	}, []string{"status"})

	requestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "records_request_duration_seconds",
		Help:    "/records request duration in seconds",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	})

	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "records_errors_total",
		Help: "Total failed /records retrievals by error class",
	}, []string{"class"})

	itemsReceived = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "records_items_received",
		Help:    "Number of records in each successful /records response before truncation",
		Buckets: []float64{0, 1, 5, 10, 11, 20, 50},
	})
)
