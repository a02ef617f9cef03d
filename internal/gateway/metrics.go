package gateway

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "medicare_client_requests_total",
			Help: "Outgoing MediCare API requests.",
		},
		[]string{"method", "resource", "status"},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "medicare_client_request_duration_seconds",
			Help:    "Outgoing request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "resource", "status"},
	)

	registerOnce sync.Once
)

// RegisterMetrics adds the client metrics to the default Prometheus
// registry. Safe to call more than once.
func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(requestsTotal, requestDuration)
	})
}

func observe(method, path string, status int, d time.Duration) {
	code := "error"
	if status > 0 {
		code = strconv.Itoa(status)
	}
	res := resourceLabel(path)
	requestsTotal.WithLabelValues(method, res, code).Inc()
	requestDuration.WithLabelValues(method, res, code).Observe(d.Seconds())
}

// resourceLabel collapses a request path to its resource family so entity
// IDs never become label values.
func resourceLabel(path string) string {
	parts := strings.SplitN(strings.TrimPrefix(path, "/"), "/", 3)
	if len(parts) >= 2 {
		return "/" + parts[0] + "/" + parts[1]
	}
	return "/" + parts[0]
}
