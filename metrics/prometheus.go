package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type promCollector struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

var _ Collector = &promCollector{}

// NewPrometheus registers the basket request metrics on registry.
// It panics if they are already registered there, like promauto does.
func NewPrometheus(registry prometheus.Registerer) Collector {
	return &promCollector{
		requestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "basket_requests_total",
				Help: "Total number of basket API calls by outcome",
			},
			[]string{"method", "endpoint", "outcome"},
		),
		requestDuration: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "basket_request_duration_seconds",
				Help:    "Duration of basket API calls in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
	}
}

func (c *promCollector) RecordRequest(method, endpoint, outcome string, duration time.Duration) {
	c.requestsTotal.WithLabelValues(method, endpoint, outcome).Inc()
	c.requestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}
