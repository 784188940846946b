// Package geocode is the REST client for the external place
// autocomplete service. When no service is configured the place provider
// runs on its built-in reference list instead, so this adapter is optional.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/spolujizda-labs/hledej/internal/core/domain"
	"github.com/spolujizda-labs/hledej/internal/core/ports/driven"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 10 * time.Second

	// suggestLimit is how many candidates one lookup requests.
	suggestLimit = 10

	earthRadiusKm = 6371.0
)

// Ensure Client implements the interface.
var _ driven.PlaceLookup = (*Client)(nil)

// suggestion is the wire shape of one autocomplete candidate.
type suggestion struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Region string  `json:"region"`
	Score  float64 `json:"score"`
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
}

// Client talks to the place autocomplete service.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a place lookup client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: DefaultTimeout},
	}
}

// SuggestPlaces returns place candidates for partial input, biased towards
// origin when given. The service's own score becomes the candidate rank.
func (c *Client) SuggestPlaces(ctx context.Context, text string, origin *domain.GeoPoint) ([]domain.PlaceCandidate, error) {
	params := url.Values{
		"q":     {text},
		"limit": {strconv.Itoa(suggestLimit)},
	}
	if origin != nil {
		params.Set("lat", strconv.FormatFloat(origin.Lat, 'f', -1, 64))
		params.Set("lng", strconv.FormatFloat(origin.Lng, 'f', -1, 64))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/suggest?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("place lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("place lookup returned %d", resp.StatusCode)
	}

	var suggestions []suggestion
	if err := json.NewDecoder(resp.Body).Decode(&suggestions); err != nil {
		return nil, fmt.Errorf("decoding place suggestions: %w", err)
	}

	candidates := make([]domain.PlaceCandidate, 0, len(suggestions))
	for _, s := range suggestions {
		cand := domain.PlaceCandidate{
			ID:          s.ID,
			DisplayText: s.Name,
			Subtitle:    s.Region,
			Rank:        clamp01(s.Score),
		}
		if origin != nil && (s.Lat != 0 || s.Lng != 0) {
			km := haversineKm(*origin, domain.GeoPoint{Lat: s.Lat, Lng: s.Lng})
			cand.DistanceKm = &km
		}
		candidates = append(candidates, cand)
	}
	return candidates, nil
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// haversineKm is the great-circle distance between two coordinates.
func haversineKm(a, b domain.GeoPoint) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}
