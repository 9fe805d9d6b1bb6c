// Package backend is a client for the scan-management backend's HTTP API.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/minion/minion-scan/pkg/types"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "minion-scan"
	tracerName       = "github.com/minion/minion-scan/internal/backend"

	// maxErrorBody bounds how much of a rejected response is kept as the reason.
	maxErrorBody = 512
)

// Control commands accepted by PUT /scans/<id>/control.
const (
	CommandStart = "START"
	CommandStop  = "STOP"
)

// Client issues requests against a single backend base URL.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	timeout    time.Duration
	hasTimeout bool
	userAgent  string
	tracer     trace.Tracer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout. It is applied to a copy of the
// HTTP client, so a client passed to WithHTTPClient is never modified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
		c.hasTimeout = true
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithTracer sets the tracer used for request spans.
func WithTracer(t trace.Tracer) Option {
	return func(c *Client) { c.tracer = t }
}

// New creates a client for the backend at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid backend URL %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("backend URL %q must use http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("backend URL %q has no host", baseURL)
	}

	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: defaultTimeout},
		userAgent:  defaultUserAgent,
		tracer:     otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.hasTimeout {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c, nil
}

// BaseURL returns the backend address the client talks to.
func (c *Client) BaseURL() string { return c.baseURL.String() }

// scanEnvelope wraps the scan object on every scan endpoint.
type scanEnvelope struct {
	statusEnvelope
	Scan *types.Scan `json:"scan"`
}

type plansEnvelope struct {
	statusEnvelope
	Plans []types.Plan `json:"plans"`
}

// statusEnvelope holds the success flag and diagnostics the backend may add
// to any response.
type statusEnvelope struct {
	Success *bool  `json:"success,omitempty"`
	Error   string `json:"error,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

func (s statusEnvelope) rejected() (string, bool) {
	if s.Success == nil || *s.Success {
		return "", false
	}
	if s.Error != "" {
		return s.Error, true
	}
	if s.Reason != "" {
		return s.Reason, true
	}
	return "success is false", true
}

// CreateScan submits req and returns the new scan as created by the backend.
// It is not idempotent: every call creates another scan.
func (c *Client) CreateScan(ctx context.Context, req types.ScanRequest) (*types.Scan, error) {
	payload, err := json.Marshal(req.Body())
	if err != nil {
		return nil, fmt.Errorf("encoding scan request: %w", err)
	}
	return c.scanCall(ctx, "create scan", http.MethodPost, "/scans", "application/json", payload)
}

// StartScan issues the START command for the scan.
func (c *Client) StartScan(ctx context.Context, id string) error {
	return c.control(ctx, "start scan", id, CommandStart)
}

// StopScan issues the STOP command for the scan.
func (c *Client) StopScan(ctx context.Context, id string) error {
	return c.control(ctx, "stop scan", id, CommandStop)
}

// GetScan fetches the current snapshot of the scan.
func (c *Client) GetScan(ctx context.Context, id string) (*types.Scan, error) {
	return c.scanCall(ctx, "get scan", http.MethodGet, "/scans/"+url.PathEscape(id), "", nil)
}

// ListPlans returns the plans the backend can execute.
func (c *Client) ListPlans(ctx context.Context) ([]types.Plan, error) {
	const op = "list plans"
	status, body, err := c.do(ctx, op, http.MethodGet, "/plans", "", nil)
	if err != nil {
		return nil, err
	}
	var env plansEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, c.fail(op, "/plans", status, "", fmt.Errorf("%w: %v", ErrMalformedResponse, err))
	}
	if reason, ok := env.rejected(); ok {
		return nil, c.fail(op, "/plans", status, reason, ErrBackendRejected)
	}
	return env.Plans, nil
}

func (c *Client) control(ctx context.Context, op, id, command string) error {
	path := "/scans/" + url.PathEscape(id) + "/control"
	status, body, err := c.do(ctx, op, http.MethodPut, path, "text/plain", []byte(command))
	if err != nil {
		return err
	}
	// The body carries nothing on success; only an explicit failure matters.
	var env statusEnvelope
	if json.Unmarshal(body, &env) == nil {
		if reason, ok := env.rejected(); ok {
			return c.fail(op, path, status, reason, ErrBackendRejected)
		}
	}
	return nil
}

func (c *Client) scanCall(ctx context.Context, op, method, path, contentType string, payload []byte) (*types.Scan, error) {
	status, body, err := c.do(ctx, op, method, path, contentType, payload)
	if err != nil {
		return nil, err
	}

	var env scanEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, c.fail(op, path, status, "", fmt.Errorf("%w: %v", ErrMalformedResponse, err))
	}
	if reason, ok := env.rejected(); ok {
		return nil, c.fail(op, path, status, reason, ErrBackendRejected)
	}
	if env.Scan == nil {
		return nil, c.fail(op, path, status, "", fmt.Errorf("%w: missing scan", ErrMalformedResponse))
	}
	if env.Scan.ID == "" {
		return nil, c.fail(op, path, status, "", fmt.Errorf("%w: missing scan.id", ErrMalformedResponse))
	}
	return env.Scan, nil
}

// do performs exactly one request/response cycle and returns the status and
// body of a 2xx response. The response body is always closed.
func (c *Client) do(ctx context.Context, op, method, path, contentType string, payload []byte) (int, []byte, error) {
	ctx, span := c.tracer.Start(ctx, op, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	target := c.baseURL.String() + path
	requestID := uuid.NewString()
	span.SetAttributes(
		attribute.String("http.method", method),
		attribute.String("http.url", target),
		attribute.String("request.id", requestID),
	)

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return 0, nil, c.traceErr(span, &Error{Op: op, URL: target, Err: fmt.Errorf("%w: %v", ErrBackendUnavailable, err)})
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, c.traceErr(span, &Error{Op: op, URL: target, Err: fmt.Errorf("%w: %v", ErrBackendUnavailable, err)})
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, c.traceErr(span, &Error{
			Op: op, URL: target, StatusCode: resp.StatusCode,
			Err: fmt.Errorf("%w: reading body: %v", ErrBackendUnavailable, err),
		})
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, nil, c.traceErr(span, &Error{
			Op: op, URL: target, StatusCode: resp.StatusCode,
			Reason: errorReason(data),
			Err:    ErrBackendRejected,
		})
	}
	return resp.StatusCode, data, nil
}

func (c *Client) fail(op, path string, status int, reason string, err error) error {
	return &Error{Op: op, URL: c.baseURL.String() + path, StatusCode: status, Reason: reason, Err: err}
}

func (c *Client) traceErr(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

// errorReason extracts a short diagnostic from a rejected response body.
func errorReason(body []byte) string {
	var env statusEnvelope
	if json.Unmarshal(body, &env) == nil {
		if env.Error != "" {
			return env.Error
		}
		if env.Reason != "" {
			return env.Reason
		}
	}
	s := strings.TrimSpace(string(body))
	if len(s) > maxErrorBody {
		s = s[:maxErrorBody] + "..."
	}
	return s
}
