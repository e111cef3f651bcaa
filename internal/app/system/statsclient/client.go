// Package statsclient talks to the remote visitor statistics service.
package statsclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dalemusser/visitorstats/internal/domain/models"
	"go.uber.org/zap"
)

// InfoPath is the statistics resource below the base URL.
const InfoPath = "/onlinesInfo"

// DefaultBaseURL is the public statistics service.
const DefaultBaseURL = "https://services.beyondstars.xyz"

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 8 << 20

// Client fetches statistics payloads.
type Client struct {
	endpoint string
	http     *http.Client
	logger   *zap.Logger
}

// New creates a Client for the given base URL. A nil httpClient gets a
// default client with the given timeout.
func New(baseURL string, httpClient *http.Client, timeout time.Duration, logger *zap.Logger) (*Client, error) {
	if err := ValidateBaseURL(baseURL); err != nil {
		return nil, err
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		endpoint: strings.TrimRight(baseURL, "/") + InfoPath,
		http:     httpClient,
		logger:   logger,
	}, nil
}

// ValidateBaseURL checks that baseURL is an absolute http(s) URL.
func ValidateBaseURL(baseURL string) error {
	u, err := url.Parse(baseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid base URL %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid base URL %q: missing host", baseURL)
	}
	return nil
}

// Endpoint returns the full URL that Fetch requests.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Fetch performs one GET request and decodes the body.
// Every failure is returned as a *FetchError.
func (c *Client) Fetch(ctx context.Context) (*models.Payload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, &FetchError{URL: c.endpoint, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &FetchError{URL: c.endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &FetchError{URL: c.endpoint, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &FetchError{URL: c.endpoint, StatusCode: resp.StatusCode, Err: err}
	}

	payload, err := Decode(body)
	if err != nil {
		return nil, &FetchError{URL: c.endpoint, StatusCode: resp.StatusCode, Err: err}
	}

	c.logger.Debug("fetched statistics",
		zap.String("url", c.endpoint),
		zap.Int("bytes", len(body)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return payload, nil
}

// CloseIdleConnections releases pooled upstream connections.
func (c *Client) CloseIdleConnections() {
	c.http.CloseIdleConnections()
}
