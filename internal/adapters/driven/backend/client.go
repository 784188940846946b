// Package backend is the REST client for the application's own backend API:
// the ride directory, the user directory and the popular destinations feed.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/spolujizda-labs/hledej/internal/core/domain"
	"github.com/spolujizda-labs/hledej/internal/core/ports/driven"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 10 * time.Second

	// DefaultRate throttles outgoing requests; search-as-you-type can
	// produce bursts faster than the backend wants to see.
	DefaultRate = 10 // requests per second

	// DefaultBurst allows short keystroke bursts through the limiter.
	DefaultBurst = 5

	// directoryLimit is how many rides/users one directory query requests.
	directoryLimit = 10
)

// Ensure Client implements the directory capabilities.
var (
	_ driven.RideDirectory       = (*Client)(nil)
	_ driven.UserDirectory       = (*Client)(nil)
	_ driven.PopularDestinations = (*Client)(nil)
)

// Client talks to the backend REST API.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient swaps the underlying HTTP client. Useful for testing.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) { c.http = h }
}

// WithRateLimit overrides the outgoing request throttle.
func WithRateLimit(perSecond float64, burst int) ClientOption {
	return func(c *Client) { c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst) }
}

// NewClient creates a backend API client for the given base URL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: DefaultTimeout},
		limiter: rate.NewLimiter(rate.Limit(DefaultRate), DefaultBurst),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FindRides queries rides whose route text matches the query.
func (c *Client) FindRides(ctx context.Context, text string) ([]domain.Ride, error) {
	params := url.Values{
		"q":     {text},
		"limit": {strconv.Itoa(directoryLimit)},
	}

	var rides []domain.Ride
	if err := c.getJSON(ctx, "/api/rides/search-text?"+params.Encode(), &rides); err != nil {
		return nil, err
	}
	return rides, nil
}

// FindUsers queries users by display name.
func (c *Client) FindUsers(ctx context.Context, text string) ([]domain.User, error) {
	body, err := json.Marshal(map[string]string{"query": text})
	if err != nil {
		return nil, fmt.Errorf("encoding user query: %w", err)
	}

	var users []domain.User
	if err := c.postJSON(ctx, "/api/users/search-text", body, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Popular returns the curated popular destinations.
func (c *Client) Popular(ctx context.Context, limit int) ([]domain.Destination, error) {
	params := url.Values{"limit": {strconv.Itoa(limit)}}

	var dests []domain.Destination
	if err := c.getJSON(ctx, "/api/search/popular?"+params.Encode(), &dests); err != nil {
		return nil, err
	}
	if len(dests) > limit {
		dests = dests[:limit]
	}
	return dests, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) postJSON(ctx context.Context, path string, body []byte, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: %s returned %d", domain.ErrBackendUnavailable, req.URL.Path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", req.URL.Path, err)
	}
	return nil
}
