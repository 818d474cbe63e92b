package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/yndnr/shopfront-go/internal/client/navigation"
	"github.com/yndnr/shopfront-go/internal/client/tokenstore"
	"github.com/yndnr/shopfront-go/internal/telemetry/logger"
	"github.com/yndnr/shopfront-go/internal/telemetry/metric"
)

const (
	// DefaultBaseURL is used when no backend origin is configured.
	DefaultBaseURL = "http://localhost:8000"
	// DefaultTimeout bounds a single request.
	DefaultTimeout = 30 * time.Second
)

// Config configures a Client.
type Config struct {
	// BaseURL is the backend origin. Empty means DefaultBaseURL.
	BaseURL string
	// Timeout bounds a single request. Zero means DefaultTimeout.
	Timeout time.Duration
	// UserAgent is sent when non-empty.
	UserAgent string
}

// Option configures optional collaborators of a Client.
type Option func(*Client)

// WithTokenStore sets the session token store. Without one every request
// is anonymous.
func WithTokenStore(s tokenstore.Store) Option {
	return func(c *Client) { c.tokens = s }
}

// WithLocation sets the location consulted and assigned on 401.
// Without one no navigation happens.
func WithLocation(l navigation.Location) Option {
	return func(c *Client) { c.location = l }
}

// WithLogger sets the logger receiving failure records.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithDiagnostics sets the logger receiving a record for every outgoing
// request. The default discards them; development builds inject a real one.
func WithDiagnostics(l logger.Logger) Option {
	return func(c *Client) { c.diag = l }
}

// WithMetrics records request outcomes in r.
func WithMetrics(r *metric.Registry) Option {
	return func(c *Client) { c.metrics = r }
}

// WithTransport replaces the underlying round tripper.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) { c.http.Transport = rt }
}

// Client is the shared storefront HTTP client. It is safe for concurrent use.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client

	tokens   tokenstore.Store
	location navigation.Location
	log      logger.Logger
	diag     logger.Logger
	metrics  *metric.Registry
}

// New creates a Client for cfg.
func New(cfg Config, opts ...Option) (*Client, error) {
	baseURL, err := ResolveBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &Client{
		baseURL:   baseURL,
		userAgent: cfg.UserAgent,
		http:      &http.Client{Timeout: timeout},
		log:       logger.Default(),
		diag:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With("component", "apiclient")
	return c, nil
}

// ResolveBaseURL applies the default and scheme rules to a configured origin.
func ResolveBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultBaseURL, nil
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "http://" + raw
	}
	raw = strings.TrimRight(raw, "/")
	if raw == "http:" || raw == "https:" {
		return "", fmt.Errorf("apiclient: invalid base url %q", raw)
	}
	return raw, nil
}

// BaseURL returns the resolved backend origin.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Response is a successful backend answer with its body fully read.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Decode unmarshals the JSON body into target.
func (r *Response) Decode(target any) error {
	if target == nil || len(r.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Body, target); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, http.MethodGet, path, nil)
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, http.MethodPost, path, body)
}

// GetJSON performs a GET request and decodes the answer into out.
func (c *Client) GetJSON(ctx context.Context, path string, out any) error {
	resp, err := c.Get(ctx, path)
	if err != nil {
		return err
	}
	return resp.Decode(out)
}

// PostJSON performs a POST request and decodes the answer into out.
func (c *Client) PostJSON(ctx context.Context, path string, in, out any) error {
	resp, err := c.Post(ctx, path, in)
	if err != nil {
		return err
	}
	return resp.Decode(out)
}

// Do sends one request through both interceptor stages. body, when non-nil,
// is encoded as JSON. Every failure is returned to the caller after the
// response stage has run; the error is an *HTTPError, a *TransportError or
// a request construction error.
func (c *Client) Do(ctx context.Context, method, path string, body any) (*Response, error) {
	ctx, _ = logger.EnsureRequestID(ctx)

	req, payload, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	if err := c.interceptRequest(ctx, req, payload); err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := c.send(req)
	if c.metrics != nil {
		status, _ := StatusCode(err)
		if resp != nil {
			status = resp.StatusCode
		}
		c.metrics.ObserveRequest(req.Method, status, time.Since(start))
	}

	return c.interceptResponse(ctx, req, resp, err)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, []byte, error) {
	var (
		payload    []byte
		bodyReader io.Reader
	)
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, nil, fmt.Errorf("marshal body: %w", err)
		}
		payload = data
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, strings.ToUpper(method), c.url(path), bodyReader)
	if err != nil {
		return nil, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set(HeaderContentType, contentTypeJSON)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	return req, payload, nil
}

func (c *Client) url(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}

// interceptRequest is the request stage.
func (c *Client) interceptRequest(ctx context.Context, req *http.Request, payload []byte) error {
	var token string
	if c.tokens != nil {
		t, err := c.tokens.Get(ctx)
		if err != nil {
			return fmt.Errorf("read session token: %w", err)
		}
		token = t
	}

	attached := Decorate(req, token)

	c.diag.WithContext(ctx).Debug("api request",
		"request_id", logger.RequestIDFromContext(ctx),
		"method", req.Method,
		"url", req.URL.String(),
		"has_token", attached,
		"body", logger.RedactJSON(payload),
	)
	return nil
}

func (c *Client) send(req *http.Request) (*Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Method: req.Method, URL: req.URL.String(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Method: req.Method, URL: req.URL.String(), Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{
			StatusCode: resp.StatusCode,
			Method:     req.Method,
			URL:        req.URL.String(),
			Body:       body,
		}
	}

	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: body}, nil
}

// interceptResponse is the response stage.
func (c *Client) interceptResponse(ctx context.Context, req *http.Request, resp *Response, err error) (*Response, error) {
	if err == nil {
		return resp, nil
	}

	c.apply(ctx, Evaluate(err, c.currentPath()))

	fields := []any{
		"request_id", logger.RequestIDFromContext(ctx),
		"url", req.URL.String(),
		"method", req.Method,
	}
	if httpErr, ok := err.(*HTTPError); ok {
		fields = append(fields, "status", httpErr.StatusCode)
		if len(httpErr.Body) > 0 {
			fields = append(fields, "body", logger.RedactJSON(httpErr.Body))
		}
	} else {
		fields = append(fields, "error", err.Error())
	}
	c.log.WithContext(ctx).Error("api request failed", fields...)

	return nil, err
}

func (c *Client) currentPath() string {
	if c.location == nil {
		return ""
	}
	return c.location.Path()
}

// apply carries out the effects of a failed request.
func (c *Client) apply(ctx context.Context, effects Effects) {
	if effects.None() {
		return
	}
	if effects.ClearToken && c.tokens != nil {
		if err := c.tokens.Clear(ctx); err != nil {
			c.log.WithContext(ctx).Warn("failed to clear session token", "error", err)
		} else if c.metrics != nil {
			c.metrics.SessionInvalidations.Inc()
		}
	}
	if effects.RedirectTo != "" && c.location != nil {
		c.location.Assign(effects.RedirectTo)
		if c.metrics != nil {
			c.metrics.LoginRedirects.Inc()
		}
	}
}
