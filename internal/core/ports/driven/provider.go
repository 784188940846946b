package driven

import (
	"context"

	"github.com/spolujizda-labs/hledej/internal/core/domain"
)

// SourceProvider turns one query into zero or more candidate results from a
// single domain (history, places, rides, users).
type SourceProvider interface {
	// Kind identifies which source this provider serves.
	Kind() domain.SourceKind

	// Fetch returns candidates for the query. The coordinator bounds each
	// call with a per-provider deadline on ctx; implementations must honour
	// it. "No results" is an empty slice, not an error. Errors and deadline
	// overruns are isolated by the coordinator and never abort siblings.
	Fetch(ctx context.Context, query domain.SearchQuery) ([]domain.SearchResult, error)
}
