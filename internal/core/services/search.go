package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/spolujizda-labs/hledej/internal/core/domain"
	"github.com/spolujizda-labs/hledej/internal/core/ports/driven"
	"github.com/spolujizda-labs/hledej/internal/core/ports/driving"
	"github.com/spolujizda-labs/hledej/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

const (
	// DefaultProviderTimeout bounds each provider call.
	DefaultProviderTimeout = 5 * time.Second

	// DefaultCacheTTL is how long a fused result set stays valid.
	DefaultCacheTTL = 60 * time.Second

	// minQueryRunes is the shortest query that triggers a fan-out; anything
	// shorter is answered from the suggestions path.
	minQueryRunes = 2

	// suggestionSlice caps each suggestion category (history, popular).
	suggestionSlice = 3
)

// SearchService fans one query out to all enabled providers, fuses their
// candidates into a single ranked list and memoises the result per query
// context. It is the only component with concurrency-correctness duties:
// per-provider deadlines, per-branch failure isolation and a join that
// waits for every outstanding branch.
type SearchService struct {
	providers map[domain.SourceKind]driven.SourceProvider
	cache     driven.ResultCache
	history   driven.HistoryStore
	popular   driven.PopularDestinations
	locator   driven.Locator

	providerTimeout time.Duration
	cacheTTL        time.Duration
}

// Option configures a SearchService.
type Option func(*SearchService)

// WithProviderTimeout overrides the per-provider deadline.
func WithProviderTimeout(d time.Duration) Option {
	return func(s *SearchService) { s.providerTimeout = d }
}

// WithCacheTTL overrides the result cache time-to-live.
func WithCacheTTL(d time.Duration) Option {
	return func(s *SearchService) { s.cacheTTL = d }
}

// WithPopularDestinations wires the popular destinations capability used on
// the suggestions path.
func WithPopularDestinations(p driven.PopularDestinations) Option {
	return func(s *SearchService) { s.popular = p }
}

// WithLocator wires the location capability that enables the synthetic
// "current location" suggestion.
func WithLocator(l driven.Locator) Option {
	return func(s *SearchService) { s.locator = l }
}

// NewSearchService creates the fan-out coordinator. The cache and history
// store are required; capabilities are optional. Providers registered for
// the same kind overwrite each other.
func NewSearchService(
	cache driven.ResultCache,
	history driven.HistoryStore,
	providers []driven.SourceProvider,
	opts ...Option,
) *SearchService {
	s := &SearchService{
		providers:       make(map[domain.SourceKind]driven.SourceProvider, len(providers)),
		cache:           cache,
		history:         history,
		providerTimeout: DefaultProviderTimeout,
		cacheTTL:        DefaultCacheTTL,
	}
	for _, p := range providers {
		s.providers[p.Kind()] = p
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search resolves one query into one ranked, deduplicated result set.
func (s *SearchService) Search(ctx context.Context, query domain.SearchQuery) (domain.RankedResultSet, error) {
	logger.Section("Search Execution")
	logger.Debug("Query: %q", query.Text)

	trimmed := strings.TrimSpace(query.Text)
	if len([]rune(trimmed)) < minQueryRunes {
		logger.Debug("Short query, taking suggestions path")
		return s.Suggest(ctx, query)
	}

	key := domain.KeyFor(query)
	if cached, ok := s.cache.Get(key); ok {
		logger.Info("Cache hit for %q (bucket %s)", key.Text, key.Bucket)
		return cached, nil
	}
	logger.Debug("Cache miss for %q (bucket %s)", key.Text, key.Bucket)

	candidates := s.fanOut(ctx, query)

	set := domain.RankedResultSet{
		Query:   query,
		Results: Merge(candidates, query.EffectiveLimit()),
	}

	if err := ctx.Err(); err != nil {
		// Caller went away mid-flight; a partially assembled set must not
		// poison the cache.
		return domain.RankedResultSet{Query: query}, err
	}

	s.cache.Put(key, set, s.cacheTTL)
	logger.Info("Final results: %d", len(set.Results))

	return set, nil
}

// branchOutcome carries one provider's contribution, indexed by dispatch
// slot so concatenation preserves dispatch order.
type branchOutcome struct {
	results []domain.SearchResult
	err     error
}

// fanOut invokes every enabled provider concurrently with an identical
// per-provider deadline and joins once all branches settle. Failures and
// timeouts become empty contributions; no branch ever aborts a sibling.
func (s *SearchService) fanOut(ctx context.Context, query domain.SearchQuery) []domain.SearchResult {
	kinds := query.Sources.Kinds()
	outcomes := make([]branchOutcome, len(kinds))

	var wg sync.WaitGroup
	for i, kind := range kinds {
		provider, ok := s.providers[kind]
		if !ok {
			logger.Debug("No provider registered for %s", kind)
			continue
		}

		wg.Add(1)
		go func(slot int, kind domain.SourceKind, p driven.SourceProvider) {
			defer wg.Done()

			branchCtx, cancel := context.WithTimeout(ctx, s.providerTimeout)
			defer cancel()

			results, err := p.Fetch(branchCtx, query)
			outcomes[slot] = branchOutcome{results: results, err: classifyBranchErr(err)}
		}(i, kind, provider)
	}
	wg.Wait()

	var candidates []domain.SearchResult
	for i, kind := range kinds {
		out := outcomes[i]
		switch {
		case errors.Is(out.err, domain.ErrSourceTimeout):
			logger.Warn("Provider %s timed out, contributing nothing", kind)
		case out.err != nil:
			logger.Warn("Provider %s failed: %v", kind, out.err)
		default:
			logger.Debug("Provider %s: %d candidates", kind, len(out.results))
			candidates = append(candidates, out.results...)
		}
	}
	return candidates
}

// classifyBranchErr maps deadline overruns to ErrSourceTimeout and any other
// provider error to ErrSourceFailure.
func classifyBranchErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded):
		return domain.ErrSourceTimeout
	case errors.Is(err, domain.ErrSourceTimeout):
		return err
	default:
		return errors.Join(domain.ErrSourceFailure, err)
	}
}

// Suggest composes the short-query suggestion set: up to three most recent
// history entries, up to three popular destinations, and a synthetic current
// location entry when a locator is wired and Place is an enabled source.
// The cache is never consulted.
func (s *SearchService) Suggest(ctx context.Context, query domain.SearchQuery) (domain.RankedResultSet, error) {
	var results []domain.SearchResult

	if s.history != nil {
		entries, err := s.history.Recent(ctx, suggestionSlice)
		if err != nil {
			logger.Warn("History suggestions unavailable: %v", err)
		}
		for _, e := range entries {
			results = append(results, domain.SearchResult{
				ID:          e.ID,
				DisplayText: e.DisplayText,
				Kind:        domain.KindHistory,
				Icon:        domain.IconRecent,
				Confidence:  1,
			})
		}
	}

	if s.popular != nil {
		dests, err := s.popular.Popular(ctx, suggestionSlice)
		if err != nil {
			logger.Warn("Popular destinations unavailable: %v", err)
		}
		for _, d := range dests {
			results = append(results, domain.SearchResult{
				ID:          d.ID,
				DisplayText: d.Name,
				Kind:        domain.KindPlace,
				Icon:        domain.IconPopular,
				Confidence:  1,
			})
		}
	}

	if s.locator != nil && query.Sources.Has(domain.KindPlace) {
		if pos, err := s.locator.Current(ctx); err == nil && pos != nil {
			results = append(results, domain.SearchResult{
				ID:          "current_location",
				DisplayText: "Moje poloha",
				Kind:        domain.KindPlace,
				Icon:        domain.IconLocation,
				Confidence:  1,
				Payload:     *pos,
			})
		}
	}

	logger.Debug("Suggestions: %d entries", len(results))
	return domain.RankedResultSet{Query: query, Results: results}, nil
}

// RecordSelection appends an accepted result to the bounded history.
func (s *SearchService) RecordSelection(ctx context.Context, result domain.SearchResult) error {
	if s.history == nil {
		return nil
	}
	return s.history.Record(ctx, domain.HistoryEntryFrom(result, time.Now()))
}
