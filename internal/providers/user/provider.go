// Package user provides candidates from the backend user directory.
package user

import (
	"context"
	"fmt"

	"github.com/spolujizda-labs/hledej/internal/core/domain"
	"github.com/spolujizda-labs/hledej/internal/core/ports/driven"
	"github.com/spolujizda-labs/hledej/internal/core/services"
)

// Ensure Provider implements the interface.
var _ driven.SourceProvider = (*Provider)(nil)

// Provider searches platform users through the user directory capability.
type Provider struct {
	directory driven.UserDirectory
}

// New creates a user provider.
func New(directory driven.UserDirectory) *Provider {
	return &Provider{directory: directory}
}

// Kind returns domain.KindUser.
func (p *Provider) Kind() domain.SourceKind {
	return domain.KindUser
}

// Fetch returns user candidates scored against the display name.
func (p *Provider) Fetch(ctx context.Context, query domain.SearchQuery) ([]domain.SearchResult, error) {
	users, err := p.directory.FindUsers(ctx, query.Text)
	if err != nil {
		return nil, err
	}

	results := make([]domain.SearchResult, 0, len(users))
	for _, u := range users {
		results = append(results, domain.SearchResult{
			ID:          fmt.Sprintf("user_%d", u.ID),
			DisplayText: u.Name,
			Subtitle:    fmt.Sprintf("⭐ %.1f • %s", u.Rating, u.Phone),
			Kind:        domain.KindUser,
			Icon:        domain.IconUser,
			Confidence:  services.Confidence(query.Text, u.Name),
			Payload:     u,
		})
	}
	return results, nil
}
