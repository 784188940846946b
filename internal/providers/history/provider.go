// Package history provides search candidates from the user's bounded
// selection history. It is the only provider with no I/O beyond local
// storage: it never fails and never times out.
package history

import (
	"context"

	"github.com/spolujizda-labs/hledej/internal/core/domain"
	"github.com/spolujizda-labs/hledej/internal/core/ports/driven"
	"github.com/spolujizda-labs/hledej/internal/core/services"
)

// matchThreshold is the minimum plain similarity for a history entry to
// qualify. The threshold deliberately ignores the prefix/substring bonuses;
// the reported confidence includes them.
const matchThreshold = 0.6

// Ensure Provider implements the interface.
var _ driven.SourceProvider = (*Provider)(nil)

// Provider filters the local history by fuzzy match against the query.
type Provider struct {
	store driven.HistoryStore
}

// New creates a history provider over the given store.
func New(store driven.HistoryStore) *Provider {
	return &Provider{store: store}
}

// Kind returns domain.KindHistory.
func (p *Provider) Kind() domain.SourceKind {
	return domain.KindHistory
}

// Fetch returns history entries whose display text is similar enough to the
// query text.
func (p *Provider) Fetch(ctx context.Context, query domain.SearchQuery) ([]domain.SearchResult, error) {
	entries, err := p.store.Recent(ctx, domain.HistoryLimit)
	if err != nil {
		return nil, err
	}

	var results []domain.SearchResult
	for _, e := range entries {
		if services.Similarity(query.Text, e.DisplayText) < matchThreshold {
			continue
		}
		results = append(results, domain.SearchResult{
			ID:          e.ID,
			DisplayText: e.DisplayText,
			Kind:        domain.KindHistory,
			Icon:        domain.IconRecent,
			Confidence:  services.Confidence(query.Text, e.DisplayText),
		})
	}
	return results, nil
}
