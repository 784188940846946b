package tui

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spolujizda-labs/hledej/internal/core/domain"
	"github.com/spolujizda-labs/hledej/internal/core/services"
)

type mockSearchService struct {
	mu         sync.Mutex
	searchSet  domain.RankedResultSet
	suggestSet domain.RankedResultSet
	recorded   []domain.SearchResult
	searches   int
}

func (m *mockSearchService) Search(_ context.Context, q domain.SearchQuery) (domain.RankedResultSet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searches++
	set := m.searchSet
	set.Query = q
	return set, nil
}

func (m *mockSearchService) Suggest(_ context.Context, q domain.SearchQuery) (domain.RankedResultSet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	set := m.suggestSet
	set.Query = q
	return set, nil
}

func (m *mockSearchService) RecordSelection(_ context.Context, r domain.SearchResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recorded = append(m.recorded, r)
	return nil
}

func (m *mockSearchService) searchCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.searches
}

func resultSet(texts ...string) domain.RankedResultSet {
	var set domain.RankedResultSet
	for _, t := range texts {
		set.Results = append(set.Results, domain.SearchResult{
			ID:          t,
			DisplayText: t,
			Icon:        domain.IconPlace,
			Confidence:  1,
		})
	}
	return set
}

func typeRunes(app *App, text string) {
	for _, r := range text {
		app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestTypingDebouncesIntoOneSearch(t *testing.T) {
	svc := &mockSearchService{searchSet: resultSet("Praha")}
	app := NewApp(svc, WithSessionOptions(services.WithDebounce(20*time.Millisecond)))
	defer app.session.Close()

	typeRunes(app, "Praha")

	require.Eventually(t, func() bool {
		return svc.searchCount() == 1
	}, 2*time.Second, 10*time.Millisecond)

	// The session delivered through the emit channel.
	select {
	case set := <-app.results:
		assert.Equal(t, "Praha", set.Results[0].DisplayText)
	case <-time.After(time.Second):
		t.Fatal("no result delivered")
	}
}

func TestResultsMessageRendersList(t *testing.T) {
	app := NewApp(&mockSearchService{})
	defer app.session.Close()

	app.Update(resultsMsg(resultSet("Praha", "Brno")))

	view := app.View()
	assert.Contains(t, view, "Praha")
	assert.Contains(t, view, "Brno")
	assert.Contains(t, view, "2 výsledků")
}

func TestArrowKeysMoveSelection(t *testing.T) {
	app := NewApp(&mockSearchService{})
	defer app.session.Close()

	app.Update(resultsMsg(resultSet("Praha", "Brno", "Ostrava")))

	app.Update(tea.KeyMsg{Type: tea.KeyDown})
	app.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, app.selected)

	// Never past the end.
	app.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, app.selected)

	app.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 1, app.selected)
}

func TestEnterRecordsSelection(t *testing.T) {
	svc := &mockSearchService{}
	app := NewApp(svc)
	defer app.session.Close()

	app.Update(resultsMsg(resultSet("Praha", "Brno")))
	app.Update(tea.KeyMsg{Type: tea.KeyDown})

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg := cmd()

	require.Len(t, svc.recorded, 1)
	assert.Equal(t, "Brno", svc.recorded[0].ID)

	app.Update(msg)
	assert.Contains(t, app.View(), "Vybráno: Brno")
}

func TestSuggestionsFillIdleInput(t *testing.T) {
	svc := &mockSearchService{suggestSet: resultSet("Praha", "Brno", "Ostrava")}
	app := NewApp(svc)
	defer app.session.Close()

	msg := app.loadSuggestions()()
	app.Update(msg)

	assert.Contains(t, app.View(), "Návrhy")
	assert.Contains(t, app.View(), "Ostrava")
}

func TestEscQuits(t *testing.T) {
	app := NewApp(&mockSearchService{})

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	// Session is closed; further input is rejected.
	err := app.session.Input(domain.SearchQuery{Text: "Praha"})
	assert.ErrorIs(t, err, domain.ErrSessionClosed)
}
