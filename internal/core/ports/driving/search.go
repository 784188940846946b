package driving

import (
	"context"

	"github.com/spolujizda-labs/hledej/internal/core/domain"
)

// SearchService is the engine's inbound surface. Callers submit a query and
// render the returned ordered list; they never participate in matching,
// ranking or caching.
type SearchService interface {
	// Search resolves one query into one ranked, deduplicated result set.
	// Queries shorter than two characters are answered from the suggestions
	// path. Provider failures and timeouts degrade to an empty contribution;
	// an all-sources-down query yields an empty set, not an error.
	Search(ctx context.Context, query domain.SearchQuery) (domain.RankedResultSet, error)

	// Suggest returns the short-query suggestion set directly: recent
	// history, popular destinations and, when available, the caller's
	// current location. Never consults the cache.
	Suggest(ctx context.Context, query domain.SearchQuery) (domain.RankedResultSet, error)

	// RecordSelection appends an accepted result to the bounded history.
	// Routing to ride pages, chats or maps is the caller's responsibility.
	RecordSelection(ctx context.Context, result domain.SearchResult) error
}
