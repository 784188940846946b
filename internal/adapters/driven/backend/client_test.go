package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spolujizda-labs/hledej/internal/core/domain"
)

func TestFindRides(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/rides/search-text", r.URL.Path)
		assert.Equal(t, "Praha", r.URL.Query().Get("q"))

		_ = json.NewEncoder(w).Encode([]domain.Ride{
			{ID: 7, FromLocation: "Praha", ToLocation: "Brno", PricePerSeat: 250},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	rides, err := c.FindRides(context.Background(), "Praha")
	require.NoError(t, err)
	require.Len(t, rides, 1)
	assert.Equal(t, "Brno", rides[0].ToLocation)
}

func TestFindUsersPostsJSONQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/users/search-text", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Jana", body["query"])

		_ = json.NewEncoder(w).Encode([]domain.User{
			{ID: 12, Name: "Jana Nováková", Rating: 4.8},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	users, err := c.FindUsers(context.Background(), "Jana")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Jana Nováková", users[0].Name)
}

func TestPopularHonoursLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/search/popular", r.URL.Path)

		_ = json.NewEncoder(w).Encode([]domain.Destination{
			{ID: "popular_praha", Name: "Praha"},
			{ID: "popular_brno", Name: "Brno"},
			{ID: "popular_ostrava", Name: "Ostrava"},
			{ID: "popular_plzen", Name: "Plzeň"},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	dests, err := c.Popular(context.Background(), 3)
	require.NoError(t, err)
	assert.Len(t, dests, 3)
}

func TestNon200IsBackendUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.FindRides(context.Background(), "Praha")
	assert.ErrorIs(t, err, domain.ErrBackendUnavailable)
}

func TestUnreachableBackend(t *testing.T) {
	c := NewClient("http://127.0.0.1:1")

	_, err := c.FindUsers(context.Background(), "Jana")
	assert.ErrorIs(t, err, domain.ErrBackendUnavailable)
}
