package driven

import (
	"time"

	"github.com/spolujizda-labs/hledej/internal/core/domain"
)

// ResultCache memoises fused result sets per (normalised query text,
// location bucket). Implementations must be safe for concurrent use by
// multiple query sessions; last writer wins on a same-key race.
type ResultCache interface {
	// Get returns the cached set for the key if present and not expired.
	Get(key domain.CacheKey) (domain.RankedResultSet, bool)

	// Put stores the set for the key with the given time-to-live,
	// overwriting any existing entry.
	Put(key domain.CacheKey, set domain.RankedResultSet, ttl time.Duration)
}
