package history

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spolujizda-labs/hledej/internal/core/domain"
)

type stubStore struct {
	entries []domain.HistoryEntry
}

func (s *stubStore) Record(context.Context, domain.HistoryEntry) error { return nil }

func (s *stubStore) Recent(_ context.Context, limit int) ([]domain.HistoryEntry, error) {
	if limit > len(s.entries) {
		limit = len(s.entries)
	}
	return s.entries[:limit], nil
}

func (s *stubStore) Clear(context.Context) error { return nil }

func TestFetchFiltersBySimilarityThreshold(t *testing.T) {
	p := New(&stubStore{entries: []domain.HistoryEntry{
		{ID: "h1", DisplayText: "Praha", Kind: domain.KindPlace},
		{ID: "h2", DisplayText: "Karlovy Vary", Kind: domain.KindPlace},
	}})

	results, err := p.Fetch(context.Background(), domain.SearchQuery{Text: "Pra"})
	require.NoError(t, err)

	// "Pra" vs "Praha" passes (similarity 0.6); "Karlovy Vary" does not.
	require.Len(t, results, 1)
	assert.Equal(t, "h1", results[0].ID)
	assert.Equal(t, domain.KindHistory, results[0].Kind)
	assert.Equal(t, domain.IconRecent, results[0].Icon)
}

func TestFetchConfidenceStacksBonuses(t *testing.T) {
	p := New(&stubStore{entries: []domain.HistoryEntry{
		{ID: "h1", DisplayText: "Praha", Kind: domain.KindPlace},
	}})

	results, err := p.Fetch(context.Background(), domain.SearchQuery{Text: "Pra"})
	require.NoError(t, err)
	require.Len(t, results, 1)

	// 0.6 similarity + 0.2 prefix + 0.1 substring.
	assert.InDelta(t, 0.9, results[0].Confidence, 1e-9)
}

func TestFetchEmptyHistory(t *testing.T) {
	p := New(&stubStore{})

	results, err := p.Fetch(context.Background(), domain.SearchQuery{Text: "Praha"})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestKind(t *testing.T) {
	assert.Equal(t, domain.KindHistory, New(&stubStore{}).Kind())
}
