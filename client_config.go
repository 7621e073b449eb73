package basket

import (
	"net/http"
	"time"

	"github.com/fiji-flo/basket/logger"
	"github.com/fiji-flo/basket/metrics"
	"github.com/fiji-flo/basket/rate"
	"github.com/fiji-flo/basket/types"
)

type config struct {
	// transport specifies the HTTP transport mechanism
	// for making requests.
	// It's useful for mocking or if customers
	// want to add extra logging, headers, etc.
	// default: http.DefaultTransport
	transport http.RoundTripper

	// timeout sets the maximum duration for HTTP requests
	// before they are cancelled
	// default: 10 seconds
	timeout time.Duration

	// logger provides logging functionality for all internal
	// basket client operations
	// default: logger.Noop
	logger logger.Logger

	// limiter is called before every request is sent
	// default: rate.NoopLimiter
	limiter rate.Limiter

	// metrics receives one observation per API call
	// default: metrics.Noop
	metrics metrics.Collector

	// flagStyle selects how boolean options are encoded
	// default: types.FlagStyleYesNo (Y/N)
	flagStyle types.FlagStyle

	// strictTokens requires user tokens to be UUIDs
	// default: false (any identifier-formatted token)
	strictTokens bool
}

func defaultConfig() *config {
	return &config{
		transport: http.DefaultTransport,
		timeout:   10 * time.Second,
		logger:    logger.Noop{},
		limiter:   rate.NoopLimiter{},
		metrics:   metrics.Noop{},
		flagStyle: types.FlagStyleYesNo,
	}
}

type ConfigOption func(c *config)

func WithTransport(transport http.RoundTripper) ConfigOption {
	return func(c *config) {
		c.transport = transport
	}
}

func WithTimeout(timeout time.Duration) ConfigOption {
	return func(c *config) {
		c.timeout = timeout
	}
}

func WithLogger(logger logger.Logger) ConfigOption {
	return func(c *config) {
		c.logger = logger
	}
}

func WithRateLimiter(limiter rate.Limiter) ConfigOption {
	return func(c *config) {
		c.limiter = limiter
	}
}

func WithMetrics(collector metrics.Collector) ConfigOption {
	return func(c *config) {
		c.metrics = collector
	}
}

func WithFlagStyle(style types.FlagStyle) ConfigOption {
	return func(c *config) {
		c.flagStyle = style
	}
}

func WithStrictTokens() ConfigOption {
	return func(c *config) {
		c.strictTokens = true
	}
}
