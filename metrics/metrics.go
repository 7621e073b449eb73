package metrics

import "time"

// Collector receives one observation per basket API call, including
// calls rejected before sending because of a malformed token.
//
// endpoint is the path template (e.g. "/news/user/{token}/"), never the
// concrete path, so tokens do not leak into label values.
// outcome is "ok" for a successful call, otherwise the errors.TYPE_* value
// of the failure ("invalid-token", "io", "json", "status-error", ...).
//
// Usage Example:
//
//	reg := prometheus.NewRegistry()
//	client := basket.NewClient(apiKey, baseUrl,
//	    basket.WithMetrics(metrics.NewPrometheus(reg)),
//	)
type Collector interface {
	RecordRequest(method, endpoint, outcome string, duration time.Duration)
}

const OutcomeOk = "ok"
