package connection

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/yndnr/kvcli/internal/infra/buildinfo"
	"github.com/yndnr/kvcli/internal/telemetry/logger"
	"github.com/yndnr/kvcli/internal/telemetry/metric"
)

// DefaultTimeout is used when Options.Timeout is zero.
const DefaultTimeout = 10 * time.Second

// maxBodySize bounds how much of a response body is read.
const maxBodySize = 1 << 20

// maxMessageSize bounds a non-JSON error body quoted in a StatusError.
const maxMessageSize = 200

// RequestIDHeader carries the client-generated ULID of each request.
const RequestIDHeader = "X-Request-ID"

// Options configures an HTTPClient.
type Options struct {
	// Timeout is applied to every request.
	Timeout time.Duration

	// TunnelHeader is sent with every request when non-empty.
	TunnelHeader      string
	TunnelHeaderValue string

	// Metrics records request outcomes. Nil disables it.
	Metrics *metric.Registry

	// TLSConfig replaces the default TLS settings, e.g. to trust a
	// private CA. Ignored when Transport is set.
	TLSConfig *tls.Config

	// Transport overrides the default round tripper.
	Transport http.RoundTripper
}

// HTTPClient provides HTTP communication with the record service.
type HTTPClient struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
	header  http.Header
	metrics *metric.Registry
}

// NewHTTPClient creates a new HTTP client.
func NewHTTPClient(server string, opts Options) *HTTPClient {
	baseURL := strings.TrimRight(server, "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "http://" + baseURL
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	header := http.Header{}
	header.Set("User-Agent", buildinfo.UserAgent())
	header.Set("Accept", "application/json")
	if opts.TunnelHeader != "" {
		header.Set(opts.TunnelHeader, opts.TunnelHeaderValue)
	}

	transport := opts.Transport
	if transport == nil && opts.TLSConfig != nil {
		t := http.DefaultTransport.(*http.Transport).Clone()
		t.TLSClientConfig = opts.TLSConfig
		transport = t
	}

	return &HTTPClient{
		baseURL: baseURL,
		timeout: timeout,
		header:  header,
		metrics: opts.Metrics,
		client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

// Request describes one call to the service.
type Request struct {
	Method string
	Path   string
	// Route is the path template used for logs and metrics,
	// e.g. "/api/data/{key}". Defaults to Path.
	Route string
	// Body is encoded as JSON when non-nil.
	Body any
	// Authorization is sent as-is when non-empty.
	Authorization string
}

func (r Request) endpoint() string {
	route := r.Route
	if route == "" {
		route = r.Path
	}
	return r.Method + " " + route
}

// Response is a fully read response.
type Response struct {
	Status    int
	Body      []byte
	RequestID string
}

// OK reports whether the status is 2xx.
func (r *Response) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// Do sends the request. A non-2xx status is not an error here; the
// returned error is always a *TransportError.
func (c *HTTPClient) Do(ctx context.Context, r Request) (*Response, error) {
	op := r.endpoint()
	reqID := ulid.Make().String()
	log := logger.L(ctx).With("request_id", reqID)

	var bodyReader io.Reader
	if r.Body != nil {
		data, err := json.Marshal(r.Body)
		if err != nil {
			return nil, &TransportError{Kind: KindProtocol, Op: op, Err: fmt.Errorf("marshal body: %w", err)}
		}
		bodyReader = bytes.NewReader(data)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, r.Method, c.baseURL+r.Path, bodyReader)
	if err != nil {
		return nil, &TransportError{Kind: KindProtocol, Op: op, Err: fmt.Errorf("create request: %w", err)}
	}

	c.addHeaders(req, reqID)
	if r.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.Authorization != "" {
		req.Header.Set("Authorization", r.Authorization)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		terr := classify(op, err)
		c.observe(op, terr.Kind.String(), start)
		log.Debug("request failed", "endpoint", op, "kind", terr.Kind.String(), "error", err)
		return nil, terr
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		terr := classify(op, err)
		if terr.Kind != KindTimeout {
			terr.Kind = KindProtocol
		}
		c.observe(op, terr.Kind.String(), start)
		log.Debug("read response failed", "endpoint", op, "error", err)
		return nil, terr
	}

	out := &Response{Status: resp.StatusCode, Body: body, RequestID: reqID}
	outcome := metric.OutcomeSuccess
	if !out.OK() {
		outcome = metric.OutcomeRejected
	}
	c.observe(op, outcome, start)
	log.Debug("request done", "endpoint", op, "status", resp.StatusCode, "elapsed", time.Since(start))

	return out, nil
}

// addHeaders adds the common headers.
func (c *HTTPClient) addHeaders(req *http.Request, reqID string) {
	for k, v := range c.header {
		req.Header[k] = v
	}
	req.Header.Set(RequestIDHeader, reqID)
}

func (c *HTTPClient) observe(endpoint, outcome string, start time.Time) {
	if c.metrics == nil {
		return
	}
	c.metrics.ObserveRequest(endpoint, outcome, time.Since(start))
}

// BaseURL returns the base URL of the client.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// Timeout returns the per-request ceiling.
func (c *HTTPClient) Timeout() time.Duration {
	return c.timeout
}

// Close releases idle connections.
func (c *HTTPClient) Close() {
	c.client.CloseIdleConnections()
}

// ParseResponse decodes a 2xx JSON body into target. Non-2xx responses
// become a *StatusError, malformed bodies a *TransportError of KindProtocol.
func ParseResponse(resp *Response, target any) error {
	if !resp.OK() {
		return &StatusError{Status: resp.Status, Message: errorMessage(resp.Body)}
	}

	if target != nil {
		if err := json.Unmarshal(resp.Body, target); err != nil {
			return &TransportError{Kind: KindProtocol, Op: "decode", Err: fmt.Errorf("parse response: %w", err)}
		}
	}

	return nil
}

// errorMessage extracts a message from an error body, if it has one.
func errorMessage(body []byte) string {
	var errResp struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &errResp); err != nil {
		text := strings.TrimSpace(string(body))
		if len(text) > maxMessageSize {
			text = text[:maxMessageSize] + "..."
		}
		return text
	}

	msg := errResp.Message
	if msg == "" {
		msg = errResp.Error
	}
	if msg != "" && errResp.Code != "" {
		return "[" + errResp.Code + "] " + msg
	}
	return msg
}
