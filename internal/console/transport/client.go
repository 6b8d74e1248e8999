package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/socconsole/internal/common"
	"github.com/dmitrijs2005/socconsole/internal/logging"
)

const apiPrefix = "/api"

// TokenSource yields the current bearer token, "" when logged out.
type TokenSource interface {
	Token() string
}

type Config struct {
	BaseURL string
	Timeout time.Duration
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithUnauthorizedHandler installs fn to be called after any request that
// failed with 401 or 403.
func WithUnauthorizedHandler(fn func(ctx context.Context)) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

type Client struct {
	baseURL        string
	tokens         TokenSource
	http           *http.Client
	log            logging.Logger
	metrics        *Metrics
	onUnauthorized func(ctx context.Context)
}

func NewClient(cfg Config, tokens TokenSource, log logging.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		tokens:  tokens,
		http:    &http.Client{Timeout: cfg.Timeout},
		log:     log,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// AuthHeaders returns the headers every request carries. Authorization is
// present only while the token source has a token.
func (c *Client) AuthHeaders() http.Header {
	h := http.Header{}
	h.Set("Content-Type", "application/json")
	h.Set("Accept", "application/json")
	if t := c.token(); t != "" {
		h.Set(common.AuthorizationHeaderName, common.BearerPrefix+t)
	}
	return h
}

func (c *Client) token() string {
	if c.tokens == nil {
		return ""
	}
	return c.tokens.Token()
}

// URL resolves path: API paths go to the configured base URL, anything else
// is used verbatim.
func (c *Client) URL(path string) string {
	if strings.HasPrefix(path, apiPrefix) {
		return c.baseURL + path
	}
	return path
}

// Do issues the request and returns the raw JSON body. A 2xx response with
// an empty or non-JSON body yields nil.
func (c *Client) Do(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s %s body: %w", method, path, err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.URL(path), rdr)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s %s: %w", method, path, err)
	}
	req.Header = c.AuthHeaders()
	reqID := uuid.NewString()
	req.Header.Set(common.RequestIDHeaderName, reqID)

	log := c.log.With("method", method, "path", path, "request_id", reqID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.observe(method, 0, time.Since(start))
		log.Warn(ctx, "request failed", "error", err)
		return nil, &RequestError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	data, readErr := io.ReadAll(resp.Body)
	c.metrics.observe(method, resp.StatusCode, time.Since(start))
	log.Debug(ctx, "request done", "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text := strings.TrimSpace(string(data))
		if readErr != nil || text == "" {
			text = http.StatusText(resp.StatusCode)
		}
		rerr := &RequestError{Method: method, Path: path, Status: resp.StatusCode, Text: text}
		if errors.Is(rerr, ErrUnauthorized) && c.onUnauthorized != nil {
			c.onUnauthorized(ctx)
		}
		return nil, rerr
	}

	if readErr != nil || len(bytes.TrimSpace(data)) == 0 || !json.Valid(data) {
		return nil, nil
	}
	return json.RawMessage(data), nil
}

// DoJSON is Do followed by decoding into out. A nil result leaves out untouched.
func (c *Client) DoJSON(ctx context.Context, method, path string, body, out any) error {
	raw, err := c.Do(ctx, method, path, body)
	if err != nil {
		return err
	}
	if raw == nil || out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}
