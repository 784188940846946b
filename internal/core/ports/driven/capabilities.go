package driven

import (
	"context"

	"github.com/spolujizda-labs/hledej/internal/core/domain"
)

// PlaceLookup is the external geocoding/autocomplete capability.
// A nil PlaceLookup makes the place provider fall back to its built-in
// reference list.
type PlaceLookup interface {
	// SuggestPlaces returns place candidates for partial input, optionally
	// biased towards origin.
	SuggestPlaces(ctx context.Context, text string, origin *domain.GeoPoint) ([]domain.PlaceCandidate, error)
}

// RideDirectory is the backend capability listing rides by route text.
type RideDirectory interface {
	FindRides(ctx context.Context, text string) ([]domain.Ride, error)
}

// UserDirectory is the backend capability listing users by name.
type UserDirectory interface {
	FindUsers(ctx context.Context, text string) ([]domain.User, error)
}

// PopularDestinations supplies the externally curated destinations shown on
// the suggestions path.
type PopularDestinations interface {
	Popular(ctx context.Context, limit int) ([]domain.Destination, error)
}

// Locator reports the caller's current position. A nil Locator disables the
// synthetic "current location" suggestion.
type Locator interface {
	Current(ctx context.Context) (*domain.GeoPoint, error)
}
