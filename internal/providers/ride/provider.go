// Package ride provides candidates from the backend ride directory: rides
// whose route text matches the query.
package ride

import (
	"context"
	"fmt"

	"github.com/spolujizda-labs/hledej/internal/core/domain"
	"github.com/spolujizda-labs/hledej/internal/core/ports/driven"
	"github.com/spolujizda-labs/hledej/internal/core/services"
)

// Ensure Provider implements the interface.
var _ driven.SourceProvider = (*Provider)(nil)

// Provider searches published rides through the ride directory capability.
type Provider struct {
	directory driven.RideDirectory
}

// New creates a ride provider.
func New(directory driven.RideDirectory) *Provider {
	return &Provider{directory: directory}
}

// Kind returns domain.KindRide.
func (p *Provider) Kind() domain.SourceKind {
	return domain.KindRide
}

// Fetch returns ride candidates. Confidence is scored against the
// concatenated origin/destination text; the subtitle carries the schedule
// and price summary.
func (p *Provider) Fetch(ctx context.Context, query domain.SearchQuery) ([]domain.SearchResult, error) {
	rides, err := p.directory.FindRides(ctx, query.Text)
	if err != nil {
		return nil, err
	}

	results := make([]domain.SearchResult, 0, len(rides))
	for _, r := range rides {
		results = append(results, domain.SearchResult{
			ID:          fmt.Sprintf("ride_%d", r.ID),
			DisplayText: fmt.Sprintf("%s → %s", r.FromLocation, r.ToLocation),
			Subtitle:    fmt.Sprintf("%s • %s • %.0f Kč", r.DepartureTime, r.DriverName, r.PricePerSeat),
			Kind:        domain.KindRide,
			Icon:        domain.IconRide,
			Confidence:  services.Confidence(query.Text, r.RouteText()),
			Payload:     r,
		})
	}
	return results, nil
}
