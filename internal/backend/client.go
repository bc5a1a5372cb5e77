// Package backend is the HTTP client for the data service that serves
// broadband percentages and redlining overlays.
package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cristianoliveira/maprepl/internal/geo"
	"github.com/cristianoliveira/maprepl/internal/logging"
	"github.com/cristianoliveira/maprepl/internal/metrics"
)

const (
	EndpointBroadband = "/broadband"
	EndpointRedlining = "/redlining"
	EndpointFilter    = "/filter"

	resultSuccess = "success"
)

var (
	// ErrBadStatus is wrapped by every non-2xx response error.
	ErrBadStatus = errors.New("backend: unexpected status")
	// ErrMalformed is wrapped when a response body does not match the contract.
	ErrMalformed = errors.New("backend: malformed response")
)

// APIError is a logical failure reported by the backend with result != "success".
type APIError struct {
	Result  string
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return "backend: " + e.Result
	}
	return e.Message
}

// StatusError carries the HTTP status of a non-2xx response.
type StatusError struct {
	Endpoint string
	Code     int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend: %s returned %d", e.Endpoint, e.Code)
}

func (e *StatusError) Unwrap() error { return ErrBadStatus }

// Doer is the subset of *http.Client used by Client.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the backend service.
type Client struct {
	baseURL string
	http    Doer
	metrics *metrics.Metrics
	log     logging.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the transport. No timeout is applied by default.
func WithHTTPClient(d Doer) Option {
	return func(c *Client) { c.http = d }
}

// WithMetrics records every request.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New creates a client for baseURL, e.g. "http://localhost:3232".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
		log:     logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With("component", "backend")
	return c
}

// BaseURL returns the configured service root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type envelope struct {
	Result       string          `json:"result"`
	ErrorMessage string          `json:"error_message"`
	Percent      json.RawMessage `json:"broadband_access_percent"`
	Data         json.RawMessage `json:"data"`
}

// Broadband returns the broadband access percentage for a county, formatted
// as the backend sent it (numbers in shortest form).
func (c *Client) Broadband(ctx context.Context, state, county string) (string, error) {
	q := url.Values{}
	q.Set("state", state)
	q.Set("county", county)
	env, err := c.get(ctx, EndpointBroadband, q)
	if err != nil {
		return "", err
	}
	pct, err := formatPercent(env.Percent)
	if err != nil {
		return "", fmt.Errorf("%w: broadband_access_percent: %v", ErrMalformed, err)
	}
	return pct, nil
}

// Redlining fetches the base overlay within the given box.
func (c *Client) Redlining(ctx context.Context, box geo.BBox) (*geo.FeatureCollection, error) {
	q := url.Values{}
	q.Set("minLat", formatFloat(box.MinLat))
	q.Set("maxLat", formatFloat(box.MaxLat))
	q.Set("minLon", formatFloat(box.MinLon))
	q.Set("maxLon", formatFloat(box.MaxLon))
	env, err := c.get(ctx, EndpointRedlining, q)
	if err != nil {
		return nil, err
	}
	return decodeCollection(env.Data)
}

// Filter fetches the features whose area description contains keyword.
func (c *Client) Filter(ctx context.Context, keyword string) (*geo.FeatureCollection, error) {
	q := url.Values{}
	q.Set("keyword", keyword)
	env, err := c.get(ctx, EndpointFilter, q)
	if err != nil {
		return nil, err
	}
	return decodeCollection(env.Data)
}

func (c *Client) get(ctx context.Context, endpoint string, q url.Values) (*envelope, error) {
	u := c.baseURL + endpoint + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("backend: build request: %w", err)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.ObserveUpstream(endpoint, 0, time.Since(start))
		c.log.Warn("request failed", "endpoint", endpoint, "error", err.Error())
		return nil, fmt.Errorf("backend: %s: %w", endpoint, err)
	}
	defer resp.Body.Close()
	c.metrics.ObserveUpstream(endpoint, resp.StatusCode, time.Since(start))
	c.log.Debug("response", "endpoint", endpoint, "status", resp.StatusCode, "elapsed", time.Since(start).String())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{Endpoint: endpoint, Code: resp.StatusCode}
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, endpoint, err)
	}
	if env.Result != resultSuccess {
		return nil, &APIError{Result: env.Result, Message: env.ErrorMessage}
	}
	return &env, nil
}

func decodeCollection(raw json.RawMessage) (*geo.FeatureCollection, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: missing data", ErrMalformed)
	}
	fc, err := geo.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return fc, nil
}

func formatPercent(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return "", err
	}
	return formatFloat(f), nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
