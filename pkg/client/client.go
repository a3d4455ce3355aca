// Package client provides the HTTP search client for the ABC radio
// play-history API.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/MatthewBurke1995/ABC-Radio-Wrapper/pkg/query"
	"github.com/MatthewBurke1995/ABC-Radio-Wrapper/pkg/radio"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Prometheus metrics for search client operations.
var (
	radioRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "abcradio_requests_total",
		Help: "Total search requests by HTTP status",
	}, []string{"status"})

	radioRequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "abcradio_request_duration_seconds",
		Help:    "Search request duration in seconds",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	})

	radioDecodeErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "abcradio_decode_errors_total",
		Help: "Total response decode failures by entity",
	}, []string{"entity"})
)

// BaseURL is the production search endpoint.
const BaseURL = "https://music.abcradio.net.au/api/v1/plays/search.json"

// Client issues search requests against the play-history API. It performs
// exactly one GET per Search call: no retries, no caching, no rate
// limiting. Callers wanting a retry policy wrap Search themselves.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	logger     zerolog.Logger
}

// Config holds the client configuration.
type Config struct {
	// BaseURL of the search endpoint; defaults to BaseURL.
	BaseURL string

	// UserAgent header sent with every request.
	UserAgent string

	// HTTPClient is the transport collaborator. It is assumed to handle
	// TLS, redirects, and timeouts already; nil selects a default client
	// with Timeout applied.
	HTTPClient *http.Client

	// Timeout for the default HTTP client. Ignored when HTTPClient is set.
	Timeout time.Duration
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig(userAgent string) Config {
	return Config{
		BaseURL:   BaseURL,
		UserAgent: userAgent,
		Timeout:   30 * time.Second,
	}
}

// New creates a new search client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = BaseURL
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", cfg.BaseURL, err)
	}
	if cfg.UserAgent == "" {
		return nil, fmt.Errorf("user-agent is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	logger := log.With().Str("component", "radio-client").Logger()

	return &Client{
		httpClient: httpClient,
		baseURL:    cfg.BaseURL,
		userAgent:  cfg.UserAgent,
		logger:     logger,
	}, nil
}

// Search issues one GET for the given options and decodes the response
// into a page of results. The returned page carries the Params that
// produced it, so callers can introspect the effective search without the
// client holding any mutable state.
//
// Failures map onto the error taxonomy: *query.ConfigurationError before
// any network traffic, *TransportError for network-layer failures, and
// *radio.DecodeError when the body does not match the expected shape. The
// HTTP status is not otherwise validated; a non-JSON error body surfaces
// as a DecodeError.
func (c *Client) Search(ctx context.Context, params query.Params) (*radio.SearchResult, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	requestURL := c.baseURL + params.Encode()

	start := time.Now()
	defer func() {
		radioRequestDuration.Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, &TransportError{URL: requestURL, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().
		Str("url", requestURL).
		Msg("Executing search request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		radioRequestsTotal.WithLabelValues("network_error").Inc()
		c.logger.Error().Err(err).Str("url", requestURL).Msg("Search request failed")
		return nil, &TransportError{URL: requestURL, Err: err}
	}
	defer resp.Body.Close()

	radioRequestsTotal.WithLabelValues(fmt.Sprintf("%d", resp.StatusCode)).Inc()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		radioRequestsTotal.WithLabelValues("read_error").Inc()
		return nil, &TransportError{URL: requestURL, Err: err}
	}

	if resp.StatusCode >= 400 {
		c.logger.Warn().
			Str("url", requestURL).
			Int("status", resp.StatusCode).
			Msg("Search returned error status")
	}

	result, err := radio.DecodeSearchResult(body)
	if err != nil {
		var decodeErr *radio.DecodeError
		if errors.As(err, &decodeErr) {
			radioDecodeErrorsTotal.WithLabelValues(decodeErr.Entity).Inc()
		}
		return nil, err
	}
	result.Params = params

	c.logger.Debug().
		Int("total", result.Total).
		Int("offset", result.Offset).
		Int("limit", result.Limit).
		Int("plays", len(result.Plays)).
		Msg("Search complete")

	return result, nil
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}
