// Package metrics exposes the Prometheus registry the records client
// registers with. The metrics themselves live in pkg/records next to the
// code that updates them.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry is the default Prometheus registry used by the records client.
// All metrics are registered via promauto in pkg/records.
var Registry = prometheus.DefaultRegisterer

// Handler serves the metrics gathered by Registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Metrics Documentation
//
// Request Metrics (pkg/records):
//   - records_requests_total{status} (Counter): requests by HTTP status code,
//     or network_error / decode_error when no usable response was produced
//   - records_request_duration_seconds (Histogram): round-trip time of the GET
//   - records_errors_total{class} (Counter): failed retrievals by class
//     (client, server, unexpected, network, decode)
//   - records_items_received (Histogram): records in each 200 response,
//     before truncation to one page
//
// Example Prometheus Queries:
//
//   # Failure rate
//   sum(rate(records_errors_total[5m])) / sum(rate(records_requests_total[5m]))
//
//   # P95 request latency
//   histogram_quantile(0.95, rate(records_request_duration_seconds_bucket[5m]))
//
//   # Share of responses that had a further page
//   1 - histogram_quantile(0.5, rate(records_items_received_bucket[5m])) / 11
