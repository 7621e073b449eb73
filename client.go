package basket

import (
	"net/http"

	"github.com/fiji-flo/basket/api"
)

// Client is the entry point to the basket API.
// It is immutable after NewClient and safe for concurrent use:
// every call is an independent request on the shared *http.Client.
type Client struct {
	httpClient *http.Client

	subscriptions *api.Subscriptions
	users         *api.Users
	newsletters   *api.Newsletters
}

// NewClient builds a client for the basket instance at baseUrl.
// No I/O happens here and baseUrl is not validated:
// a malformed URL fails each call with a request-prep error.
//
// apiKey is only sent by the privileged calls
// (Subscriptions().SubscribePrivate and Users().Lookup).
func NewClient(apiKey string, baseUrl string, opts ...ConfigOption) *Client {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	httpClient := &http.Client{}
	httpClient.Transport = cfg.transport
	httpClient.Timeout = cfg.timeout

	settings := api.Settings{
		ApiKey:       apiKey,
		BaseUrl:      baseUrl,
		HttpClient:   httpClient,
		Logger:       cfg.logger,
		Limiter:      cfg.limiter,
		Metrics:      cfg.metrics,
		FlagStyle:    cfg.flagStyle,
		StrictTokens: cfg.strictTokens,
	}

	return &Client{
		httpClient:    httpClient,
		subscriptions: api.NewSubscriptionsApi(settings),
		users:         api.NewUsersApi(settings),
		newsletters:   api.NewNewslettersApi(settings),
	}
}

func (c *Client) Subscriptions() *api.Subscriptions {
	return c.subscriptions
}

func (c *Client) Users() *api.Users {
	return c.users
}

func (c *Client) Newsletters() *api.Newsletters {
	return c.newsletters
}
