// Package catalog reads the destination catalog, either from the catalog
// HTTP endpoint or from a seed file on disk.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"destpick/internal/domain"
	"destpick/internal/eventbus"
)

// ErrCatalogUnavailable wraps every failure to read the catalog. Callers do
// not distinguish transient from permanent failures.
var ErrCatalogUnavailable = errors.New("catalog unavailable")

// maxBodyBytes bounds how much of a catalog response is read
const maxBodyBytes = 8 << 20

// Client reads destinations from a catalog endpoint
type Client struct {
	url        string
	httpClient *http.Client
	bus        eventbus.EventBus
}

// Option configures a Client
type Option func(*Client)

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBus makes the client publish catalog outcome events
func WithBus(bus eventbus.EventBus) Option {
	return func(c *Client) {
		c.bus = bus
	}
}

// NewClient creates a client for the catalog at url
func NewClient(url string, opts ...Option) *Client {
	c := &Client{
		url:        url,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URL returns the catalog endpoint the client reads
func (c *Client) URL() string {
	return c.url
}

// Destinations performs one read of the catalog. It never retries.
func (c *Client) Destinations(ctx context.Context) ([]domain.Destination, error) {
	dests, err := c.fetch(ctx)
	if err != nil {
		log.Error().Err(err).Str("url", c.url).Msg("error fetching destinations")
		if c.bus != nil {
			c.bus.Publish(eventbus.CatalogFailedEvent{Source: c.url, Err: err})
		}
		return nil, err
	}

	log.Info().Int("count", len(dests)).Str("url", c.url).Msg("catalog loaded")
	if c.bus != nil {
		c.bus.Publish(eventbus.CatalogLoadedEvent{Source: c.url, Count: len(dests)})
	}
	return dests, nil
}

func (c *Client) fetch(ctx context.Context) ([]domain.Destination, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrCatalogUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrCatalogUnavailable, resp.StatusCode)
	}

	var body domain.CatalogResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", ErrCatalogUnavailable, err)
	}

	if !body.Success {
		if body.Error != "" {
			return nil, fmt.Errorf("%w: %s", ErrCatalogUnavailable, body.Error)
		}
		return nil, fmt.Errorf("%w: server reported failure", ErrCatalogUnavailable)
	}

	if body.Data == nil {
		return []domain.Destination{}, nil
	}
	return body.Data, nil
}
