// Package place provides destination candidates from an external
// geocoding/autocomplete capability, falling back to a built-in reference
// list of Czech cities when no capability is wired.
package place

import (
	"context"
	"strings"

	"github.com/spolujizda-labs/hledej/internal/core/domain"
	"github.com/spolujizda-labs/hledej/internal/core/ports/driven"
	"github.com/spolujizda-labs/hledej/internal/core/services"
)

// fallbackThreshold filters the built-in list the same way the history
// provider filters entries.
const fallbackThreshold = 0.6

// fallbackCities is the built-in reference list used when no place lookup
// capability is available.
var fallbackCities = []string{
	"Praha", "Brno", "Ostrava", "Plzeň", "Liberec", "Olomouc", "Ústí nad Labem",
	"České Budějovice", "Hradec Králové", "Pardubice", "Zlín", "Havířov",
	"Kladno", "Most", "Opava", "Frýdek-Místek", "Karviná", "Jihlava",
	"Děčín", "Teplice", "Chomutov", "Jablonec nad Nisou", "Mladá Boleslav",
	"Prostějov", "Přerov", "Česká Lípa", "Třebíč", "Uherské Hradiště",
	"Kolín", "Písek", "Trutnov", "Vsetín", "Valašské Meziříčí",
}

const fallbackSubtitle = "Město v České republice"

// Ensure Provider implements the interface.
var _ driven.SourceProvider = (*Provider)(nil)

// Provider resolves place candidates. With a lookup capability the
// candidates and their confidence come from the capability; without one the
// fallback list is matched and scored locally.
type Provider struct {
	lookup driven.PlaceLookup
}

// New creates a place provider. lookup may be nil.
func New(lookup driven.PlaceLookup) *Provider {
	return &Provider{lookup: lookup}
}

// Kind returns domain.KindPlace.
func (p *Provider) Kind() domain.SourceKind {
	return domain.KindPlace
}

// Fetch returns place candidates for the query.
func (p *Provider) Fetch(ctx context.Context, query domain.SearchQuery) ([]domain.SearchResult, error) {
	if p.lookup == nil {
		return p.fromFallback(query), nil
	}

	candidates, err := p.lookup.SuggestPlaces(ctx, query.Text, query.Origin)
	if err != nil {
		return nil, err
	}

	results := make([]domain.SearchResult, 0, len(candidates))
	for _, c := range candidates {
		results = append(results, domain.SearchResult{
			ID:          c.ID,
			DisplayText: c.DisplayText,
			Subtitle:    c.Subtitle,
			Kind:        domain.KindPlace,
			Icon:        domain.IconPlace,
			Confidence:  c.Rank,
			DistanceKm:  c.DistanceKm,
		})
	}
	return results, nil
}

func (p *Provider) fromFallback(query domain.SearchQuery) []domain.SearchResult {
	var results []domain.SearchResult
	for _, city := range fallbackCities {
		if services.Similarity(query.Text, city) < fallbackThreshold {
			continue
		}
		results = append(results, domain.SearchResult{
			ID:          strings.ReplaceAll(strings.ToLower(city), " ", "_"),
			DisplayText: city,
			Subtitle:    fallbackSubtitle,
			Kind:        domain.KindPlace,
			Icon:        domain.IconPlace,
			Confidence:  services.Confidence(query.Text, city),
		})
	}
	return results
}
