// Package cyrest implements the low-level HTTP bridge to a running
// Cytoscape instance: URL construction, request dispatch, response
// normalization and the typed error surface.
package cyrest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cytoscape/cyrest-go/internal/metrics"
)

// DefaultBaseURL is where a locally running Cytoscape serves CyREST.
const DefaultBaseURL = "http://127.0.0.1:1234/v1"

const defaultTimeout = 60 * time.Second

// Params holds query-string parameters for a single request.
type Params map[string]string

// Client issues synchronous requests against one CyREST endpoint. It is
// stateless apart from its configuration and safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// Options configures a Client. Zero values fall back to defaults.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// New builds a Client for the given endpoint.
func New(opts Options) *Client {
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout == 0 {
			timeout = defaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{baseURL: base, http: hc, log: log}
}

// BaseURL returns the endpoint this client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// RootURL returns the endpoint with the API version segment stripped,
// e.g. http://127.0.0.1:1234 for http://127.0.0.1:1234/v1.
func (c *Client) RootURL() string {
	if i := strings.LastIndex(c.baseURL, "/v"); i > 0 {
		return c.baseURL[:i]
	}
	return c.baseURL
}

// buildURL appends the percent-encoded operation path and query params
// to the base URL.
func (c *Client) buildURL(operation string, params Params) string {
	u := c.baseURL
	if operation != "" {
		var b strings.Builder
		b.WriteString(u)
		for _, seg := range strings.Split(operation, "/") {
			b.WriteByte('/')
			b.WriteString(url.PathEscape(seg))
		}
		u = b.String()
	}
	if len(params) > 0 {
		q := url.Values{}
		for k, v := range params {
			q.Set(k, v)
		}
		u += "?" + q.Encode()
	}
	return u
}

// Get issues a GET. When requireJSON is true the decoded JSON value is
// returned and a non-JSON body is a RemoteError; otherwise a non-JSON
// body comes back as its raw text.
func (c *Client) Get(ctx context.Context, operation string, params Params, requireJSON bool) (any, error) {
	return c.do(ctx, http.MethodGet, operation, params, nil, requireJSON)
}

// Post issues a POST with an optional JSON body.
func (c *Client) Post(ctx context.Context, operation string, params Params, body any, requireJSON bool) (any, error) {
	return c.do(ctx, http.MethodPost, operation, params, body, requireJSON)
}

// Put issues a PUT with an optional JSON body.
func (c *Client) Put(ctx context.Context, operation string, params Params, body any, requireJSON bool) (any, error) {
	return c.do(ctx, http.MethodPut, operation, params, body, requireJSON)
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, operation string, params Params, requireJSON bool) (any, error) {
	return c.do(ctx, http.MethodDelete, operation, params, nil, requireJSON)
}

// GetInto issues a GET and decodes the JSON response into out.
func (c *Client) GetInto(ctx context.Context, operation string, params Params, out any) error {
	return c.doInto(ctx, http.MethodGet, operation, params, nil, out)
}

// PostInto issues a POST and decodes the JSON response into out.
func (c *Client) PostInto(ctx context.Context, operation string, params Params, body, out any) error {
	return c.doInto(ctx, http.MethodPost, operation, params, body, out)
}

// PutInto issues a PUT and decodes the JSON response into out.
func (c *Client) PutInto(ctx context.Context, operation string, params Params, body, out any) error {
	return c.doInto(ctx, http.MethodPut, operation, params, body, out)
}

func (c *Client) doInto(ctx context.Context, method, operation string, params Params, body, out any) error {
	raw, err := c.doRaw(ctx, method, operation, params, body, "")
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &RemoteError{StatusCode: http.StatusOK, Operation: operation,
			Message: "expected JSON response: " + err.Error()}
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, operation string, params Params, body any, requireJSON bool) (any, error) {
	raw, err := c.doRaw(ctx, method, operation, params, body, "")
	if err != nil {
		return nil, err
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		if requireJSON {
			return nil, &RemoteError{StatusCode: http.StatusOK, Operation: operation,
				Message: "expected JSON response: " + err.Error()}
		}
		return string(raw), nil
	}
	return v, nil
}

// doRaw performs one request and returns the raw 2xx body. accept, when
// non-empty, is sent as the Accept header (the commands surface wants
// text/plain).
func (c *Client) doRaw(ctx context.Context, method, operation string, params Params, body any, accept string) ([]byte, error) {
	return c.doRawURL(ctx, method, operation, c.buildURL(operation, params), body, accept)
}

// doRawURL is doRaw with the URL already built; the root endpoint
// (outside the versioned base) goes through here directly.
func (c *Client) doRawURL(ctx context.Context, method, operation, fullURL string, body any, accept string) ([]byte, error) {
	done := metrics.TimeRequest(method)

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			done(false)
			return nil, Validationf("cannot encode request body for %s: %v", operation, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		done(false)
		return nil, Validationf("cannot build %s request for %q: %v", method, operation, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	c.log.Debug("cyrest request", zap.String("method", method), zap.String("url", fullURL))

	resp, err := c.http.Do(req)
	if err != nil {
		done(false)
		return nil, &TransportError{URL: fullURL, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		done(false)
		return nil, &TransportError{URL: fullURL, Err: err}
	}

	c.log.Debug("cyrest response",
		zap.String("method", method),
		zap.String("url", fullURL),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(data)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		done(false)
		return nil, &RemoteError{
			StatusCode: resp.StatusCode,
			Operation:  operation,
			Message:    remoteMessage(data),
		}
	}
	done(true)
	return data, nil
}

// remoteMessage digs the error text out of a CyREST error payload,
// falling back to the raw body.
func remoteMessage(body []byte) string {
	var payload struct {
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && len(payload.Errors) > 0 && payload.Errors[0].Message != "" {
		return payload.Errors[0].Message
	}
	return strings.TrimSpace(string(body))
}
