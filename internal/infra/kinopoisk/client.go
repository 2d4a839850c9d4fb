package infra_kinopoisk

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/humanbelnik/kinoswap/searchqa/internal/config"
)

const (
	HeaderAPIKey = "X-API-KEY"

	MoviePath  = "/movie"
	SearchPath = "/movie/search"
)

var (
	ErrInvalidConfig = errors.New("invalid client config")
	ErrRequestFailed = errors.New("request failed")
	ErrMalformedBody = errors.New("malformed response body")
)

type Client struct {
	baseURL string
	token   string
	http    *retryablehttp.Client

	logger *slog.Logger
}

type ClientOption func(*Client)

func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient replaces the underlying transport client, e.g. an
// httptest server client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.http.HTTPClient = hc
	}
}

func New(cfg config.API, opts ...ClientOption) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: empty base url", ErrInvalidConfig)
	}
	if _, err := url.ParseRequestURI(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("%w: base url: %w", ErrInvalidConfig, err)
	}
	if cfg.Token == "" {
		return nil, fmt.Errorf("%w: empty token", ErrInvalidConfig)
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = cfg.RetryMax
	rc.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	// Status codes are asserted by callers, so exhausted retries must
	// hand the last response back instead of an error.
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		http:    rc,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	rc.Logger = c.logger

	return c, nil
}

// Movies calls GET /movie with the filter as query parameters.
func (c *Client) Movies(ctx context.Context, f MovieFilter) (*Response, error) {
	return c.Get(ctx, MoviePath, f.Values())
}

// Search calls GET /movie/search.
func (c *Client) Search(ctx context.Context, q SearchQuery) (*Response, error) {
	return c.Get(ctx, SearchPath, q.Values())
}

// Get sends an authorized GET to path relative to the base URL. Any status
// code is returned as a Response; only transport failures are errors.
func (c *Client) Get(ctx context.Context, path string, params url.Values) (*Response, error) {
	target := c.URL(path, params)

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set(HeaderAPIKey, c.token)

	c.logger.Debug("sending request",
		slog.String("method", http.MethodGet),
		slog.String("path", path),
		slog.String("query", params.Encode()))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %w", ErrRequestFailed, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body of GET %s: %w", ErrRequestFailed, path, err)
	}

	c.logger.Debug("received response",
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Int("bytes", len(body)))

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

// URL renders the absolute request URL for path and params.
func (c *Client) URL(path string, params url.Values) string {
	target := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(params) > 0 {
		target += "?" + params.Encode()
	}
	return target
}
