package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fiji-flo/basket/errors"
	"github.com/fiji-flo/basket/logger"
	"github.com/fiji-flo/basket/metrics"
	"github.com/fiji-flo/basket/rate"
	"github.com/fiji-flo/basket/types"
)

const (
	paramApiKey = "api-key"

	redactedValue = "REDACTED"

	contentTypeForm = "application/x-www-form-urlencoded"
)

// Settings is shared by every resource API of one client.
// Nil Logger, Limiter and Metrics fall back to their Noop implementations.
type Settings struct {
	ApiKey     string
	BaseUrl    string
	HttpClient *http.Client
	Logger     logger.Logger
	Limiter    rate.Limiter
	Metrics    metrics.Collector
	FlagStyle  types.FlagStyle

	// StrictTokens requires user tokens to be UUIDs,
	// not only identifier-formatted.
	StrictTokens bool
}

type apiClient struct {
	apiKey       string
	baseUrl      string
	httpClient   *http.Client
	logger       logger.Logger
	limiter      rate.Limiter
	metrics      metrics.Collector
	flags        types.FlagStyle
	strictTokens bool
}

func newApiClient(s Settings) *apiClient {
	c := &apiClient{
		apiKey:       s.ApiKey,
		baseUrl:      s.BaseUrl,
		httpClient:   s.HttpClient,
		logger:       s.Logger,
		limiter:      s.Limiter,
		metrics:      s.Metrics,
		flags:        s.FlagStyle,
		strictTokens: s.StrictTokens,
	}
	if c.httpClient == nil {
		c.httpClient = http.DefaultClient
	}
	if c.logger == nil {
		c.logger = logger.Noop{}
	}
	if c.limiter == nil {
		c.limiter = rate.NoopLimiter{}
	}
	if c.metrics == nil {
		c.metrics = metrics.Noop{}
	}
	return c
}

// request describes one call to basket.
// endpoint is the path template used for logs and metrics;
// path is the concrete path with the token filled in.
type request struct {
	method   string
	endpoint string
	path     string
	query    url.Values
	form     url.Values
}

func (c *apiClient) get(ctx context.Context, endpoint, path string, query url.Values) (map[string]any, *errors.ApiError) {
	env, err := c.send(ctx, request{
		method:   http.MethodGet,
		endpoint: endpoint,
		path:     path,
		query:    query,
	})
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (c *apiClient) postForm(ctx context.Context, endpoint, path string, query, form url.Values) *errors.ApiError {
	_, err := c.send(ctx, request{
		method:   http.MethodPost,
		endpoint: endpoint,
		path:     path,
		query:    query,
		form:     form,
	})
	return err
}

func (c *apiClient) send(ctx context.Context, r request) (env *types.Envelope, apiErr *errors.ApiError) {
	start := time.Now()
	defer func() {
		outcome := metrics.OutcomeOk
		if apiErr != nil {
			outcome = apiErr.Type
			c.logger.Warnf("basket %s %s failed: %v", r.method, r.endpoint, apiErr)
		}
		c.metrics.RecordRequest(r.method, r.endpoint, outcome, time.Since(start))
	}()

	c.logger.Debugf("basket %s %s", r.method, r.endpoint)

	endpoint, err := c.resolve(r.path, r.query)
	if err != nil {
		return nil, &errors.ApiError{
			Stage:     errors.STAGE_BEFORE_REQUEST,
			Type:      errors.TYPE_REQUEST_PREP,
			SourceErr: err,
		}
	}

	var body io.Reader
	if r.form != nil {
		body = strings.NewReader(r.form.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, r.method, endpoint, body)
	if err != nil {
		return nil, &errors.ApiError{
			Stage:     errors.STAGE_BEFORE_REQUEST,
			Type:      errors.TYPE_REQUEST_PREP,
			SourceErr: err,
		}
	}
	if r.form != nil {
		req.Header.Set("Content-Type", contentTypeForm)
	}
	req.Header.Set("Accept", "application/json")

	c.limiter.Limit(req)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &errors.ApiError{
			Stage:     errors.STAGE_REQUEST,
			Type:      errors.TYPE_IO,
			SourceErr: redactApiKey(err),
		}
	}
	defer func() { _ = res.Body.Close() }()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &errors.ApiError{
			Stage:          errors.STAGE_AFTER_REQUEST,
			Type:           errors.TYPE_IO,
			Body:           resBody,
			HttpStatusCode: res.StatusCode,
			SourceErr:      err,
		}
	}

	// basket answers with an envelope on 2xx and 4xx alike,
	// so the HTTP status is recorded but never decides the outcome.
	env = &types.Envelope{}
	if err = json.Unmarshal(resBody, env); err != nil {
		return nil, &errors.ApiError{
			Stage:          errors.STAGE_AFTER_REQUEST,
			Type:           errors.TYPE_JSON_PARSE,
			SourceErr:      err,
			Body:           resBody,
			HttpStatusCode: res.StatusCode,
		}
	}

	if env.Status != types.StatusOk {
		return nil, &errors.ApiError{
			Stage:          errors.STAGE_AFTER_REQUEST,
			Type:           errors.TYPE_STATUS_ERROR,
			Body:           resBody,
			HttpStatusCode: res.StatusCode,
			Envelope:       env,
		}
	}

	return env, nil
}

// resolve joins an absolute path onto the base URL.
// Like any URL reference, the path replaces the base URL's own path.
func (c *apiClient) resolve(path string, query url.Values) (string, error) {
	base, err := url.Parse(c.baseUrl)
	if err != nil {
		return "", err
	}
	if !base.IsAbs() || base.Host == "" {
		return "", fmt.Errorf("base url %q must be absolute", c.baseUrl)
	}
	ref, err := url.Parse(path)
	if err != nil {
		return "", err
	}
	u := base.ResolveReference(ref)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String(), nil
}

// withApiKey returns query with the client's API key added.
func (c *apiClient) withApiKey(query url.Values) url.Values {
	if query == nil {
		query = url.Values{}
	}
	query.Set(paramApiKey, c.apiKey)
	return query
}

// redactApiKey masks the api-key query parameter in the URL a *url.Error
// reports, so the credential never reaches error messages or logs.
// The wrapped cause is kept for errors.Is and errors.As.
func redactApiKey(err error) error {
	urlErr, ok := err.(*url.Error)
	if !ok {
		return err
	}
	u, parseErr := url.Parse(urlErr.URL)
	if parseErr != nil {
		return &url.Error{Op: urlErr.Op, URL: redactedValue, Err: urlErr.Err}
	}
	query := u.Query()
	if !query.Has(paramApiKey) {
		return err
	}
	query.Set(paramApiKey, redactedValue)
	u.RawQuery = query.Encode()
	return &url.Error{Op: urlErr.Op, URL: u.String(), Err: urlErr.Err}
}

// toNilErr converts a *errors.ApiError type to be a true nil interface.
// Internally, a Go interface has a Type and Value.
// An interface value is nil only if the V and T are both unset.
// See: https://go.dev/doc/faq#nil_error
func toNilErr[T any](r T, e *errors.ApiError) (T, error) {
	if e != nil {
		return r, e
	}
	return r, nil
}

// toNilError is toNilErr for operations without a result.
func toNilError(e *errors.ApiError) error {
	if e != nil {
		return e
	}
	return nil
}
