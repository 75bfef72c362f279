// Package hover is a client for the Hover DNS hosting API.
//
// A Client logs in lazily: the first operation posts the configured
// credentials to /login, keeps the session cookie, and every later operation
// reuses it. The session is never refreshed; once the provider expires the
// cookie, calls fail with the provider's error.
package hover

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/sync/singleflight"
)

// Default client configuration values.
const (
	// DefaultBaseURL is Hover's REST endpoint.
	DefaultBaseURL = "https://www.hover.com/api"

	// DefaultTimeout is the HTTP client timeout used when no client is supplied.
	DefaultTimeout = 30 * time.Second
)

// statusKey is the top-level field every Hover response carries next to its payload.
const statusKey = "succeeded"

// Client is a Hover API session.
type Client struct {
	baseURL    string
	username   string
	password   string
	userAgent  string
	httpClient *http.Client
	logger     logrus.FieldLogger
	metrics    *Metrics

	authenticated atomic.Bool
	login         singleflight.Group
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimSuffix(baseURL, "/")
		}
	}
}

// WithHTTPClient sets the HTTP client used for requests. A cookie jar is
// attached to a copy of it when it has none.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithMetrics records request and login metrics.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient creates a Hover client for the given account. No request is made
// until the first operation.
func NewClient(username, password string, opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		username:   username,
		password:   password,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     logrus.StandardLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	httpClient := *c.httpClient
	if httpClient.Jar == nil {
		// cookiejar.New never fails.
		jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		httpClient.Jar = jar
	}
	httpClient.Transport = newTransport(httpClient.Transport, c.userAgent, c.logger)
	c.httpClient = &httpClient

	return c
}

// BaseURL returns the API endpoint the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Authenticated reports whether the session has logged in.
func (c *Client) Authenticated() bool {
	return c.authenticated.Load()
}

// Login authenticates the session if it has not been authenticated yet.
// Concurrent callers share a single login request. The shared request is not
// tied to any one caller's cancellation; each caller stops waiting when its
// own ctx is done. A failed login leaves the session unauthenticated so that
// the next call tries again.
func (c *Client) Login(ctx context.Context) error {
	if c.authenticated.Load() {
		return nil
	}

	ch := c.login.DoChan("login", func() (any, error) {
		if c.authenticated.Load() {
			return nil, nil
		}
		err := c.authenticate(context.WithoutCancel(ctx))
		c.metrics.observeLogin(err)
		if err != nil {
			return nil, err
		}
		c.authenticated.Store(true)
		return nil, nil
	})

	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// authenticate posts the credentials as a form. The session cookie returned
// by Hover is stored in the client's jar.
func (c *Client) authenticate(ctx context.Context) error {
	form := url.Values{}
	form.Set("username", c.username)
	form.Set("password", c.password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/login", strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("creating login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	status, body, err := c.send(req)
	if err != nil {
		return err
	}

	// Login responses are not required to be JSON; only an explicit
	// "succeeded": false is treated as a failure.
	var result map[string]json.RawMessage
	if json.Unmarshal(body, &result) == nil && reportsFailure(result) {
		return &APIError{StatusCode: status, Body: body}
	}

	c.logger.WithField("username", c.username).Debug("logged in to Hover")

	return nil
}

// Do sends an authenticated request and returns the response payload with
// the status field removed. Calls Login first when needed. body, when not
// nil, is sent as JSON.
func (c *Client) Do(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	if err := c.Login(ctx); err != nil {
		return nil, fmt.Errorf("logging in: %w", err)
	}

	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	status, respBody, err := c.send(req)
	if err != nil {
		return nil, err
	}

	// An empty 2xx body, such as a 204 on delete, carries no payload.
	if len(bytes.TrimSpace(respBody)) == 0 {
		return nil, nil
	}

	var result map[string]json.RawMessage
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if reportsFailure(result) {
		return nil, &APIError{StatusCode: status, Body: respBody}
	}

	return extractPayload(result)
}

// send executes req and returns the status and body. Statuses of 400 and
// above become an *APIError holding the body.
func (c *Client) send(req *http.Request) (int, []byte, error) {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.observeRequest(req.Method, 0, err, time.Since(start))
		return 0, nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	c.metrics.observeRequest(req.Method, resp.StatusCode, nil, time.Since(start))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return resp.StatusCode, body, &APIError{StatusCode: resp.StatusCode, Body: body}
	}

	return resp.StatusCode, body, nil
}

// reportsFailure reports whether the status field is present and false.
func reportsFailure(result map[string]json.RawMessage) bool {
	raw, ok := result[statusKey]
	if !ok {
		return false
	}
	var succeeded bool
	if err := json.Unmarshal(raw, &succeeded); err != nil {
		return false
	}
	return !succeeded
}

// extractPayload drops the status field and returns what remains. Hover
// responses carry one payload key whose name depends on the endpoint. With
// no payload key the result is nil; with several, the remaining object is
// returned as is.
func extractPayload(result map[string]json.RawMessage) (json.RawMessage, error) {
	delete(result, statusKey)

	switch len(result) {
	case 0:
		return nil, nil
	case 1:
		for _, v := range result {
			return v, nil
		}
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("encoding payload: %w", err)
	}
	return payload, nil
}

// decodePayload unmarshals raw into v. An absent or null payload leaves v untouched.
func decodePayload(raw json.RawMessage, v any) error {
	if len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil
	}
	return json.Unmarshal(raw, v)
}
