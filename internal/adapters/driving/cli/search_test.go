package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spolujizda-labs/hledej/internal/core/domain"
)

func TestSearchCmd_Use(t *testing.T) {
	assert.Equal(t, "search [query]", searchCmd.Use)
}

func TestSearchCmd_RequiresExactlyOneArg(t *testing.T) {
	_, _, cleanup := setupTestServices()
	defer cleanup()

	_, err := executeCommand("search")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestSearchCmd_HasLimitFlag(t *testing.T) {
	flag := searchCmd.Flags().Lookup("limit")
	require.NotNil(t, flag, "limit flag should exist")
	assert.Equal(t, "n", flag.Shorthand)
	assert.Equal(t, "10", flag.DefValue)
}

func TestSearchCmd_ExecutesWithQuery(t *testing.T) {
	svc, _, cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCommand("search", "Praha")

	assert.NoError(t, err)
	assert.Contains(t, out, "Results:")
	assert.Contains(t, out, "Praha")
	assert.Equal(t, "Praha", svc.lastQuery.Text)
	assert.Equal(t, domain.AllSources, svc.lastQuery.Sources)
}

func TestSearchCmd_SourcesFlag(t *testing.T) {
	svc, _, cleanup := setupTestServices()
	defer cleanup()
	defer func() { searchSources = nil }()

	_, err := executeCommand("search", "--sources", "ride,user", "Praha")

	assert.NoError(t, err)
	assert.False(t, svc.lastQuery.Sources.Has(domain.KindHistory))
	assert.True(t, svc.lastQuery.Sources.Has(domain.KindRide))
	assert.True(t, svc.lastQuery.Sources.Has(domain.KindUser))
}

func TestSearchCmd_UnknownSourceFails(t *testing.T) {
	_, _, cleanup := setupTestServices()
	defer cleanup()
	defer func() { searchSources = nil }()

	_, err := executeCommand("search", "--sources", "pigeon", "Praha")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSearchCmd_OriginFlags(t *testing.T) {
	svc, _, cleanup := setupTestServices()
	defer cleanup()

	_, err := executeCommand("search", "--lat", "50.08", "--lng", "14.42", "Praha")

	assert.NoError(t, err)
	require.NotNil(t, svc.lastQuery.Origin)
	assert.Equal(t, 50.08, svc.lastQuery.Origin.Lat)
	assert.Equal(t, 14.42, svc.lastQuery.Origin.Lng)
}

func TestSearchCmd_JSONOutput(t *testing.T) {
	_, _, cleanup := setupTestServices()
	defer cleanup()
	defer func() { searchJSON = false }()

	out, err := executeCommand("search", "--json", "Praha")

	assert.NoError(t, err)
	assert.Contains(t, out, `"id": "place_praha"`)
	assert.Contains(t, out, `"confidence": 0.92`)
}

func TestSearchCmd_ServiceError(t *testing.T) {
	oldService := searchService
	searchService = mockSearchServiceError{}
	defer func() { searchService = oldService }()

	_, err := executeCommand("search", "Praha")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "search failed")
}

func TestOutputResultsTable_EmptyResults(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)

	err := outputResultsTable(rootCmd, nil)

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "No results found")
}

func TestOutputResultsJSON_EmptyResults(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)

	err := outputResultsJSON(rootCmd, nil)

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "[]")
}

func TestOutputResultsTable_Details(t *testing.T) {
	svc, _, cleanup := setupTestServices()
	defer cleanup()

	km := 2.5
	svc.set = domain.RankedResultSet{
		Results: []domain.SearchResult{
			{
				ID:          "ride_7",
				DisplayText: "Praha → Brno",
				Subtitle:    "Dnes 14:00 • Karel • 250 Kč",
				Kind:        domain.KindRide,
				Icon:        domain.IconRide,
				Confidence:  0.85,
				DistanceKm:  &km,
			},
		},
	}

	out, err := executeCommand("search", "Praha")

	assert.NoError(t, err)
	assert.Contains(t, out, "Praha → Brno")
	assert.Contains(t, out, "Dnes 14:00 • Karel • 250 Kč")
	assert.Contains(t, out, "2.5 km")
	assert.Contains(t, out, "(0.85)")
}
