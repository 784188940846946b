package user

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spolujizda-labs/hledej/internal/core/domain"
)

type stubDirectory struct {
	users []domain.User
	err   error
}

func (s *stubDirectory) FindUsers(context.Context, string) ([]domain.User, error) {
	return s.users, s.err
}

func TestFetchMapsUsers(t *testing.T) {
	p := New(&stubDirectory{users: []domain.User{
		{ID: 12, Name: "Jana Nováková", Rating: 4.8, Phone: "+420 777 123 456"},
	}})

	results, err := p.Fetch(context.Background(), domain.SearchQuery{Text: "Jana"})
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.Equal(t, "user_12", r.ID)
	assert.Equal(t, "Jana Nováková", r.DisplayText)
	assert.Equal(t, "⭐ 4.8 • +420 777 123 456", r.Subtitle)
	assert.Equal(t, domain.KindUser, r.Kind)
	assert.Equal(t, domain.IconUser, r.Icon)

	payload, ok := r.Payload.(domain.User)
	require.True(t, ok)
	assert.Equal(t, int64(12), payload.ID)
}

func TestFetchExactNameIsFullConfidence(t *testing.T) {
	p := New(&stubDirectory{users: []domain.User{
		{ID: 1, Name: "Petr"},
	}})

	results, err := p.Fetch(context.Background(), domain.SearchQuery{Text: "Petr"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 1.0, results[0].Confidence)
}

func TestFetchPropagatesDirectoryFailure(t *testing.T) {
	p := New(&stubDirectory{err: errors.New("api down")})

	_, err := p.Fetch(context.Background(), domain.SearchQuery{Text: "Jana"})
	assert.Error(t, err)
}
