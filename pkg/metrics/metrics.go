// Package metrics provides the centralized Prometheus metrics registry for
// the radio search client. All metrics are defined in their respective
// packages (client, pagination) to maintain modularity and avoid circular
// dependencies.
//
// This package provides documentation and reference for all available metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the client.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Request Metrics (pkg/client):
//   - abcradio_requests_total{status} (Counter): Search requests by HTTP status
//     (or "network_error"/"read_error" for transport failures)
//   - abcradio_request_duration_seconds (Histogram): Search request duration
//   - abcradio_decode_errors_total{entity} (Counter): Decode failures by entity
//
// Pagination Metrics (pkg/pagination):
//   - abcradio_pages_fetched_total (Counter): Result pages fetched by pagers
//
// Example Prometheus Queries:
//
//   # Request Error Rate
//   sum(rate(abcradio_requests_total{status=~"5..|network_error"}[5m])) /
//   sum(rate(abcradio_requests_total[5m]))
//
//   # P95 Request Latency
//   histogram_quantile(0.95, rate(abcradio_request_duration_seconds_bucket[5m]))
//
//   # Decode failures by entity
//   rate(abcradio_decode_errors_total[5m])
