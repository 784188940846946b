package ride

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spolujizda-labs/hledej/internal/core/domain"
)

type stubDirectory struct {
	rides []domain.Ride
	err   error
}

func (s *stubDirectory) FindRides(context.Context, string) ([]domain.Ride, error) {
	return s.rides, s.err
}

func TestFetchMapsRides(t *testing.T) {
	p := New(&stubDirectory{rides: []domain.Ride{
		{
			ID:            7,
			FromLocation:  "Praha",
			ToLocation:    "Brno",
			DepartureTime: "2026-09-01 08:00",
			DriverName:    "Jan Novák",
			PricePerSeat:  250,
		},
	}})

	results, err := p.Fetch(context.Background(), domain.SearchQuery{Text: "Praha"})
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.Equal(t, "ride_7", r.ID)
	assert.Equal(t, "Praha → Brno", r.DisplayText)
	assert.Equal(t, "2026-09-01 08:00 • Jan Novák • 250 Kč", r.Subtitle)
	assert.Equal(t, domain.KindRide, r.Kind)
	assert.Equal(t, domain.IconRide, r.Icon)

	// Scored against the concatenated route text, not just the origin.
	assert.Greater(t, r.Confidence, 0.0)
	assert.LessOrEqual(t, r.Confidence, 1.0)

	payload, ok := r.Payload.(domain.Ride)
	require.True(t, ok)
	assert.Equal(t, int64(7), payload.ID)
}

func TestFetchPropagatesDirectoryFailure(t *testing.T) {
	p := New(&stubDirectory{err: errors.New("api down")})

	_, err := p.Fetch(context.Background(), domain.SearchQuery{Text: "Praha"})
	assert.Error(t, err)
}

func TestFetchNoMatchesIsEmptyNotError(t *testing.T) {
	p := New(&stubDirectory{})

	results, err := p.Fetch(context.Background(), domain.SearchQuery{Text: "Praha"})
	require.NoError(t, err)
	assert.Empty(t, results)
}
