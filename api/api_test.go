package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"testing"

	"github.com/fiji-flo/basket/errors"
	"github.com/fiji-flo/basket/logger"
	"github.com/fiji-flo/basket/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testApiKey  = "test-api-key"
	testBaseUrl = "https://basket.example.com"
	testToken   = "6e1a4b3c-0d2f-4a7e-9b8c-1f2e3d4c5b6a"
)

func Test_send(t *testing.T) {
	testCases := []struct {
		name       string
		method     string
		path       string
		form       url.Values
		resBody    []byte
		resCode    int
		resErr     error
		expectUrl  string
		expectEnv  *types.Envelope
		expectType string
		expectCode int
	}{
		{
			name:      "ok",
			method:    http.MethodGet,
			path:      "/news/newsletters/",
			resBody:   []byte(`{"status":"ok","newsletters":{}}`),
			resCode:   200,
			expectUrl: "https://basket.example.com/news/newsletters/",
			expectEnv: &types.Envelope{
				Status: types.StatusOk,
				Data:   map[string]any{"newsletters": map[string]any{}},
			},
		},
		{
			name:      "ok form",
			method:    http.MethodPost,
			path:      "/news/recover/",
			form:      url.Values{"email": {"x@example.com"}},
			resBody:   []byte(`{"status":"ok"}`),
			resCode:   200,
			expectUrl: "https://basket.example.com/news/recover/",
			expectEnv: &types.Envelope{Status: types.StatusOk},
		},
		{
			name:       "failed to send the request",
			method:     http.MethodGet,
			path:       "/news/newsletters/",
			resErr:     fmt.Errorf("test error"),
			expectUrl:  "https://basket.example.com/news/newsletters/",
			expectType: errors.TYPE_IO,
		},
		{
			name:       "malformed json in response",
			method:     http.MethodGet,
			path:       "/news/newsletters/",
			resBody:    []byte(`{"status":`),
			resCode:    200,
			expectUrl:  "https://basket.example.com/news/newsletters/",
			expectType: errors.TYPE_JSON_PARSE,
			expectCode: 200,
		},
		{
			name:       "html error page",
			method:     http.MethodGet,
			path:       "/news/newsletters/",
			resBody:    []byte(`<html>Bad Gateway</html>`),
			resCode:    502,
			expectUrl:  "https://basket.example.com/news/newsletters/",
			expectType: errors.TYPE_JSON_PARSE,
			expectCode: 502,
		},
		{
			name:       "missing status",
			method:     http.MethodGet,
			path:       "/news/newsletters/",
			resBody:    []byte(`{"desc":"no status"}`),
			resCode:    200,
			expectUrl:  "https://basket.example.com/news/newsletters/",
			expectType: errors.TYPE_JSON_PARSE,
			expectCode: 200,
		},
		{
			name:       "unknown status",
			method:     http.MethodGet,
			path:       "/news/newsletters/",
			resBody:    []byte(`{"status":"pending"}`),
			resCode:    200,
			expectUrl:  "https://basket.example.com/news/newsletters/",
			expectType: errors.TYPE_JSON_PARSE,
			expectCode: 200,
		},
		{
			name:       "status error on 400",
			method:     http.MethodPost,
			path:       "/news/subscribe/",
			form:       url.Values{"email": {"bad"}},
			resBody:    []byte(`{"status":"error","desc":"Invalid email","code":2}`),
			resCode:    400,
			expectUrl:  "https://basket.example.com/news/subscribe/",
			expectType: errors.TYPE_STATUS_ERROR,
			expectCode: 400,
		},
		{
			name:       "status error on 200",
			method:     http.MethodGet,
			path:       "/news/newsletters/",
			resBody:    []byte(`{"status":"error"}`),
			resCode:    200,
			expectUrl:  "https://basket.example.com/news/newsletters/",
			expectType: errors.TYPE_STATUS_ERROR,
			expectCode: 200,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := httpClient(tt.resBody, tt.resCode, tt.resErr)
			api := newApiClient(testSettings(c))

			env, err := api.send(context.Background(), request{
				method:   tt.method,
				endpoint: tt.path,
				path:     tt.path,
				form:     tt.form,
			})
			if tt.expectType != "" {
				require.NotNil(t, err)
				assert.Nil(t, env)
				assert.Equal(t, tt.expectType, err.Type)
				assert.Equal(t, tt.expectCode, err.HttpStatusCode)
			} else {
				require.Nil(t, err)
				assert.Equal(t, tt.expectEnv, env)
			}

			tr, _ := c.Transport.(*testTransport)
			assert.Equal(t, tt.expectUrl, tr.Url())
			assert.Equal(t, tt.method, tr.Method())
			assert.Equal(t, "application/json", tr.req.Header.Get("Accept"))
			if tt.form != nil {
				assert.Equal(t, contentTypeForm, tr.req.Header.Get("Content-Type"))
				assert.Equal(t, tt.form, tr.Form())
			} else {
				assert.Empty(t, tr.req.Header.Get("Content-Type"))
			}
			assert.Empty(t, tr.ApiKey())

			cl, _ := tr.res.Body.(*testReader)
			assert.Equal(t, cl.isRead, cl.isClosed)
		})
	}
}

func Test_send_status_error_envelope(t *testing.T) {
	c := httpClient([]byte(`{"status":"error","desc":"Token not found"}`), 404, nil)
	api := newApiClient(testSettings(c))

	_, err := api.send(context.Background(), request{
		method:   http.MethodGet,
		endpoint: pathUser,
		path:     "/news/user/" + testToken + "/",
	})
	require.NotNil(t, err)
	assert.Equal(t, errors.STAGE_AFTER_REQUEST, err.Stage)
	assert.Equal(t, `{"desc":"Token not found"}`, err.Error())
	assert.Equal(t, "Token not found", err.Envelope.Desc())
	assert.Equal(t, []byte(`{"status":"error","desc":"Token not found"}`), err.Body)
}

func Test_send_request_prep(t *testing.T) {
	testCases := []struct {
		name    string
		baseUrl string
	}{
		{name: "unparsable", baseUrl: "http://[::1"},
		{name: "relative", baseUrl: "basket.example.com"},
		{name: "empty", baseUrl: ""},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := httpClient([]byte(`{"status":"ok"}`), 200, nil)
			settings := testSettings(c)
			settings.BaseUrl = tt.baseUrl
			api := newApiClient(settings)

			_, err := api.send(context.Background(), request{
				method:   http.MethodGet,
				endpoint: pathNewsletters,
				path:     pathNewsletters,
			})
			require.NotNil(t, err)
			assert.Equal(t, errors.STAGE_BEFORE_REQUEST, err.Stage)
			assert.Equal(t, errors.TYPE_REQUEST_PREP, err.Type)

			tr, _ := c.Transport.(*testTransport)
			assert.Nil(t, tr.req)
		})
	}
}

func Test_send_canceled_context(t *testing.T) {
	c := httpClient([]byte(`{"status":"ok"}`), 200, nil)
	api := newApiClient(testSettings(c))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := api.send(ctx, request{
		method:   http.MethodGet,
		endpoint: pathNewsletters,
		path:     pathNewsletters,
	})
	require.NotNil(t, err)
	assert.Equal(t, errors.TYPE_IO, err.Type)
	assert.ErrorIs(t, err, context.Canceled)
}

func Test_resolve(t *testing.T) {
	testCases := []struct {
		name    string
		baseUrl string
		path    string
		query   url.Values
		expect  string
	}{
		{
			name:    "host only",
			baseUrl: "https://basket.example.com",
			path:    "/news/subscribe/",
			expect:  "https://basket.example.com/news/subscribe/",
		},
		{
			name:    "trailing slash",
			baseUrl: "https://basket.example.com/",
			path:    "/news/subscribe/",
			expect:  "https://basket.example.com/news/subscribe/",
		},
		{
			name:    "absolute path replaces base path",
			baseUrl: "https://example.com/basket/",
			path:    "/news/subscribe/",
			expect:  "https://example.com/news/subscribe/",
		},
		{
			name:    "query",
			baseUrl: "http://localhost:8000",
			path:    "/news/lookup-user/",
			query:   url.Values{"email": {"x+1@example.com"}, "api-key": {"k"}},
			expect:  "http://localhost:8000/news/lookup-user/?api-key=k&email=x%2B1%40example.com",
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			api := newApiClient(Settings{BaseUrl: tt.baseUrl})
			got, err := api.resolve(tt.path, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.expect, got)
		})
	}
}

func Test_withApiKey(t *testing.T) {
	api := newApiClient(Settings{ApiKey: testApiKey})

	q := api.withApiKey(nil)
	assert.Equal(t, url.Values{"api-key": {testApiKey}}, q)

	q = api.withApiKey(url.Values{"email": {"x@example.com"}})
	assert.Equal(t, url.Values{"api-key": {testApiKey}, "email": {"x@example.com"}}, q)
}

func Test_newApiClient_defaults(t *testing.T) {
	api := newApiClient(Settings{})
	assert.Equal(t, http.DefaultClient, api.httpClient)
	assert.NotNil(t, api.logger)
	assert.NotNil(t, api.limiter)
	assert.NotNil(t, api.metrics)
	assert.Equal(t, types.FlagStyleYesNo, api.flags)
}

func Test_send_logs(t *testing.T) {
	var buf bytes.Buffer
	c := httpClient([]byte(`{"status":"error","desc":"nope"}`), 400, nil)
	settings := testSettings(c)
	settings.Logger = logger.NewWriter(&buf)
	api := newApiClient(settings)

	_, err := api.send(context.Background(), request{
		method:   http.MethodGet,
		endpoint: pathUser,
		path:     "/news/user/" + testToken + "/",
	})
	require.NotNil(t, err)
	assert.Equal(t,
		"[DEBUG] basket GET /news/user/{token}/\n"+
			"[WARN] basket GET /news/user/{token}/ failed: {\"desc\":\"nope\"}\n",
		buf.String(),
	)
}

func Test_send_transport_error_redacts_api_key(t *testing.T) {
	refused := fmt.Errorf("dial tcp: connection refused")

	var buf bytes.Buffer
	settings := testSettings(httpClient(nil, 0, refused))
	settings.Logger = logger.NewWriter(&buf)
	users := NewUsersApi(settings)

	_, err := users.Lookup(context.Background(), "x@example.com")
	require.Error(t, err)
	assert.Equal(t, errors.TYPE_IO, errors.TypeOf(err))
	assert.ErrorIs(t, err, refused)

	assert.NotContains(t, err.Error(), testApiKey)
	assert.Contains(t, err.Error(), "api-key="+redactedValue)
	assert.Contains(t, err.Error(), "email=x%40example.com")
	assert.NotContains(t, buf.String(), testApiKey)
	assert.Contains(t, buf.String(), "[WARN] basket GET /news/lookup-user/ failed")
}

func Test_redactApiKey(t *testing.T) {
	cause := fmt.Errorf("connection reset")
	testCases := []struct {
		name   string
		err    error
		expect string
	}{
		{
			name:   "url error with api key",
			err:    &url.Error{Op: "Post", URL: "https://basket.example.com/news/subscribe/?api-key=secret", Err: cause},
			expect: `Post "https://basket.example.com/news/subscribe/?api-key=REDACTED": connection reset`,
		},
		{
			name:   "url error without api key",
			err:    &url.Error{Op: "Get", URL: "https://basket.example.com/news/newsletters/", Err: cause},
			expect: `Get "https://basket.example.com/news/newsletters/": connection reset`,
		},
		{
			name:   "other error",
			err:    cause,
			expect: "connection reset",
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := redactApiKey(tt.err)
			assert.Equal(t, tt.expect, err.Error())
			assert.ErrorIs(t, err, cause)
		})
	}
}

func Test_toNilErr(t *testing.T) {
	var err *errors.ApiError
	var err2 error = err
	if err2 == nil {
		assert.Fail(t, "An interface value is nil only if the V and T are both unset.")
	}

	var err3 error
	_, err3 = toNilErr("ignore", err)
	if err3 != nil {
		assert.Fail(t, "Must be nil")
	}
	if toNilError(err) != nil {
		assert.Fail(t, "Must be nil")
	}
}

func testSettings(c *http.Client) Settings {
	return Settings{
		ApiKey:     testApiKey,
		BaseUrl:    testBaseUrl,
		HttpClient: c,
	}
}

func httpClient(body []byte, code int, err error) *http.Client {
	res := &http.Response{
		StatusCode: code,
		Body:       &testReader{Reader: bytes.NewBuffer(body)},
	}
	return &http.Client{
		Transport: &testTransport{res: res, err: err},
	}
}

type testTransport struct {
	req  *http.Request
	res  *http.Response
	err  error
	body []byte
}

func (t *testTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.req = req
	if req.Body != nil {
		t.body, _ = io.ReadAll(req.Body)
	}
	if err := req.Context().Err(); err != nil {
		return nil, err
	}
	return t.res, t.err
}

func (t *testTransport) Method() string {
	return t.req.Method
}

func (t *testTransport) Url() string {
	return t.req.URL.String()
}

// ApiKey returns the api-key query parameter of the request.
func (t *testTransport) ApiKey() string {
	return t.req.URL.Query().Get("api-key")
}

func (t *testTransport) Form() url.Values {
	form, _ := url.ParseQuery(string(t.body))
	return form
}

type testReader struct {
	isClosed bool
	isRead   bool
	io.Reader
}

func (c *testReader) Close() error {
	c.isClosed = true
	return nil
}

func (c *testReader) Read(p []byte) (n int, err error) {
	c.isRead = true
	return c.Reader.Read(p)
}
