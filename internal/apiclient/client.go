package apiclient

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

	pkgerrors "github.com/aimingmed/sctracker-console/pkg/errors"
	"github.com/aimingmed/sctracker-console/pkg/logger"
	"github.com/aimingmed/sctracker-console/pkg/metrics"
)

const maxBodyBytes = 8 << 20

// TokenSource yields the bearer token to attach, or "" when there is none.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func(ctx context.Context) (string, error)

func (f TokenFunc) Token(ctx context.Context) (string, error) { return f(ctx) }

// Options configures a Client.
type Options struct {
	BaseURL string
	// Zero means no client-side timeout.
	Timeout    time.Duration
	HTTPClient *http.Client
	Metrics    *metrics.APIClientMetrics
	Logger     *logger.Logger
}

// Client talks to the tracker REST API. It is safe for concurrent use; per-workspace
// copies made with WithTokens share the underlying http.Client.
type Client struct {
	base    *url.URL
	http    *http.Client
	tokens  TokenSource
	metrics *metrics.APIClientMetrics
	logg    *logger.Logger
}

func New(opts Options) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid api base url %q", opts.BaseURL)
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	return &Client{
		base:    base,
		http:    httpClient,
		metrics: opts.Metrics,
		logg:    opts.Logger,
	}, nil
}

// WithTokens returns a copy of c that authenticates with ts.
func (c *Client) WithTokens(ts TokenSource) *Client {
	clone := *c
	clone.tokens = ts
	return &clone
}

func (c *Client) Auth() *AuthAPI           { return &AuthAPI{c: c} }
func (c *Client) Products() *ProductsAPI   { return &ProductsAPI{c: c} }
func (c *Client) Inventory() *InventoryAPI { return &InventoryAPI{c: c} }
func (c *Client) Requests() *RequestsAPI   { return &RequestsAPI{c: c} }

type call struct {
	resource  string
	operation string
	method    string
	path      string
	query     url.Values
	body      any
	out       any
	// token overrides the token source when set.
	token string
}

func (c *Client) do(ctx context.Context, in call) error {
	target := c.base.JoinPath(in.path)
	if strings.HasSuffix(in.path, "/") && !strings.HasSuffix(target.Path, "/") {
		target.Path += "/"
	}
	if len(in.query) > 0 {
		target.RawQuery = in.query.Encode()
	}

	var payload io.Reader
	if in.body != nil {
		raw, err := json.Marshal(in.body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode request body")
		}
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, in.method, target.String(), payload)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token := in.token
	if token == "" && c.tokens != nil {
		token, err = c.tokens.Token(ctx)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "read token")
		}
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(ctx, in, 0, start)
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("%s %s failed", in.resource, in.operation))
	}
	defer resp.Body.Close()
	c.observe(ctx, in, resp.StatusCode, start)

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read response")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newRequestError(resp.StatusCode, raw)
	}
	if in.out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, in.out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("decode %s %s response", in.resource, in.operation))
	}
	return nil
}

func (c *Client) observe(ctx context.Context, in call, status int, start time.Time) {
	took := time.Since(start)
	c.metrics.Observe(in.resource, in.operation, status, took)
	if c.logg == nil {
		return
	}
	ctx = c.logg.WithFields(ctx, map[string]any{
		"resource":    in.resource,
		"operation":   in.operation,
		"method":      in.method,
		"path":        in.path,
		"status":      status,
		"duration_ms": took.Milliseconds(),
	})
	c.logg.Debug(ctx, "tracker api call")
}
