package mediawiki

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"krimiwiki/internal/logging"
)

const (
	defaultBatchSize = 50
	maxBatchSize     = 50
)

// APIError is an error object returned by the API.
type APIError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("mediawiki api error %s: %s", e.Code, e.Info)
}

// Client provides access to one wiki's action API.
type Client struct {
	apiURL     string
	userAgent  string
	batchSize  int
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBatchSize sets how many titles are requested per content query.
func WithBatchSize(n int) Option {
	return func(c *Client) {
		if n > 0 && n <= maxBatchSize {
			c.batchSize = n
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a client for the API endpoint at apiURL.
func New(apiURL, userAgent string, timeout time.Duration, opts ...Option) (*Client, error) {
	apiURL = strings.TrimSpace(apiURL)
	if apiURL == "" {
		return nil, errors.New("mediawiki api url required")
	}
	userAgent = strings.TrimSpace(userAgent)
	if userAgent == "" {
		return nil, errors.New("mediawiki user agent required")
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	client := &Client{
		apiURL:     apiURL,
		userAgent:  userAgent,
		batchSize:  defaultBatchSize,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// SiteAPIURL returns the action API endpoint of a Wikipedia language edition.
func SiteAPIURL(code string) string {
	return "https://" + code + ".wikipedia.org/w/api.php"
}

type response struct {
	Continue map[string]string `json:"continue"`
	Query    json.RawMessage   `json:"query"`
	Error    *APIError         `json:"error"`
}

// query runs an action=query request and follows continuation, passing every
// query object to fn.
func (c *Client) query(ctx context.Context, params url.Values, fn func(json.RawMessage) (bool, error)) error {
	params.Set("action", "query")
	params.Set("format", "json")
	params.Set("formatversion", "2")

	var cont map[string]string
	for {
		values := url.Values{}
		for k, v := range params {
			values[k] = v
		}
		for k, v := range cont {
			values.Set(k, v)
		}

		payload, err := c.get(ctx, values)
		if err != nil {
			return err
		}
		if len(payload.Query) > 0 {
			more, err := fn(payload.Query)
			if err != nil {
				return err
			}
			if !more {
				return nil
			}
		}
		if len(payload.Continue) == 0 {
			return nil
		}
		cont = payload.Continue
	}
}

func (c *Client) get(ctx context.Context, values url.Values) (*response, error) {
	endpoint, err := url.Parse(c.apiURL)
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}
	endpoint.RawQuery = values.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("api request",
		logging.String("url", endpoint.String()),
		logging.Int("status", resp.StatusCode),
		logging.Duration("latency", latency))

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("mediawiki api returned %d (latency=%v)", resp.StatusCode, latency)
	}

	var payload response
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode mediawiki response: %w", err)
	}
	if payload.Error != nil {
		return nil, payload.Error
	}
	return &payload, nil
}
