package domain

import (
	"fmt"
	"math"
	"strings"
)

// SourceKind identifies an independent origin of search results.
// The numeric value doubles as the ranking priority: lower is ranked first.
type SourceKind int

const (
	// KindHistory is the user's own recent selections.
	KindHistory SourceKind = iota
	// KindPlace is a geographic destination.
	KindPlace
	// KindRide is a published ride whose route matches the query.
	KindRide
	// KindUser is another user of the platform.
	KindUser
)

// AllKinds lists the source kinds in dispatch (and tie-break) order.
var AllKinds = []SourceKind{KindHistory, KindPlace, KindRide, KindUser}

// Priority returns the ranking priority. Lower sorts first.
func (k SourceKind) Priority() int {
	return int(k)
}

// String returns the identifier used in configuration and APIs.
func (k SourceKind) String() string {
	switch k {
	case KindHistory:
		return "history"
	case KindPlace:
		return "place"
	case KindRide:
		return "ride"
	case KindUser:
		return "user"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// ParseSourceKind converts an identifier back to a SourceKind.
func ParseSourceKind(s string) (SourceKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "history":
		return KindHistory, nil
	case "place":
		return KindPlace, nil
	case "ride":
		return KindRide, nil
	case "user":
		return KindUser, nil
	default:
		return 0, fmt.Errorf("%w: source kind %q", ErrInvalidInput, s)
	}
}

// SourceSet is the set of sources enabled for a query.
type SourceSet uint8

// NewSourceSet builds a set from the given kinds.
func NewSourceSet(kinds ...SourceKind) SourceSet {
	var s SourceSet
	for _, k := range kinds {
		s |= 1 << uint(k)
	}
	return s
}

// AllSources enables every source kind.
var AllSources = NewSourceSet(AllKinds...)

// Has reports whether the kind is enabled.
func (s SourceSet) Has(k SourceKind) bool {
	return s&(1<<uint(k)) != 0
}

// Kinds returns the enabled kinds in dispatch order.
func (s SourceSet) Kinds() []SourceKind {
	var kinds []SourceKind
	for _, k := range AllKinds {
		if s.Has(k) {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// GeoPoint is a WGS84 coordinate.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// DefaultResultLimit caps a ranked result set unless the query overrides it.
const DefaultResultLimit = 10

// SearchQuery is one immutable search request.
type SearchQuery struct {
	// Text is the raw user input.
	Text string

	// Origin is the caller's position, if known.
	Origin *GeoPoint

	// Sources selects which providers participate.
	Sources SourceSet

	// Limit is the maximum number of results. Zero means DefaultResultLimit.
	Limit int
}

// EffectiveLimit resolves the result cap for this query.
func (q SearchQuery) EffectiveLimit() int {
	if q.Limit <= 0 {
		return DefaultResultLimit
	}
	return q.Limit
}

// Icon tags for result rendering. Symbolic, mapped to glyphs by the caller.
const (
	IconRecent   = "recent"
	IconPlace    = "place"
	IconRide     = "ride"
	IconUser     = "user"
	IconPopular  = "popular"
	IconLocation = "location"
)

// SearchResult is a single candidate produced by a provider.
// ID is globally unique across all sources and is the identity key for
// deduplication: two results with the same ID are the same logical entity.
type SearchResult struct {
	ID          string     `json:"id"`
	DisplayText string     `json:"text"`
	Subtitle    string     `json:"subtitle,omitempty"`
	Kind        SourceKind `json:"-"`
	Icon        string     `json:"icon"`
	Confidence  float64    `json:"confidence"`
	DistanceKm  *float64   `json:"distance_km,omitempty"`

	// Payload carries the source-specific object (ride, user, ...). Ranking
	// and merging never look inside it.
	Payload any `json:"data,omitempty"`
}

// RankedResultSet is the fused, ordered, deduplicated answer to one query.
// Results are sorted by (kind priority asc, confidence desc), contain no
// duplicate IDs and never exceed the query's effective limit.
type RankedResultSet struct {
	Query      SearchQuery
	Results    []SearchResult
	Generation uint64
}

// bucketSize quantises coordinates to roughly one kilometre.
const bucketSize = 0.01

// noGeoBucket is the bucket for queries without an origin.
const noGeoBucket = "none"

// CacheKey identifies a cached result set.
type CacheKey struct {
	Text   string
	Bucket string
}

// NormalizeQueryText canonicalises query text for cache keying: trimmed,
// lower-cased, inner whitespace collapsed.
func NormalizeQueryText(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// LocationBucket quantises an origin so nearby queries share a cache key.
func LocationBucket(origin *GeoPoint) string {
	if origin == nil {
		return noGeoBucket
	}
	lat := math.Round(origin.Lat/bucketSize) * bucketSize
	lng := math.Round(origin.Lng/bucketSize) * bucketSize
	return fmt.Sprintf("%.2f,%.2f", lat, lng)
}

// KeyFor builds the cache key for a query.
func KeyFor(q SearchQuery) CacheKey {
	return CacheKey{
		Text:   NormalizeQueryText(q.Text),
		Bucket: LocationBucket(q.Origin),
	}
}
