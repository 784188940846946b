// Package tui is the interactive search box: type-ahead input, debounced
// live results, keyboard selection. It drives a services.Session so typing
// bursts collapse into one search and stale answers never reach the screen.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/spolujizda-labs/hledej/internal/core/domain"
	"github.com/spolujizda-labs/hledej/internal/core/ports/driving"
	"github.com/spolujizda-labs/hledej/internal/core/services"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("8"))
	subtitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).MarginTop(1)
)

// resultsMsg delivers one ranked result set from the session.
type resultsMsg domain.RankedResultSet

// suggestionsMsg delivers the empty-input suggestion set.
type suggestionsMsg domain.RankedResultSet

// selectedMsg confirms a recorded selection.
type selectedMsg struct {
	result domain.SearchResult
}

// App is the bubbletea model for the search box.
type App struct {
	search  driving.SearchService
	session *services.Session
	results chan domain.RankedResultSet

	ctx      context.Context
	input    textinput.Model
	set      domain.RankedResultSet
	selected int
	status   string
	quitting bool
}

// Option configures the App.
type Option func(*options)

type options struct {
	sessionOpts []services.SessionOption
}

// WithSessionOptions forwards options to the underlying session, e.g. a
// custom debounce.
func WithSessionOptions(opts ...services.SessionOption) Option {
	return func(o *options) { o.sessionOpts = append(o.sessionOpts, opts...) }
}

// NewApp builds the search box model around a search service.
func NewApp(search driving.SearchService, opts ...Option) *App {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	input := textinput.New()
	input.Placeholder = "Kam jedete?"
	input.Prompt = "🔍 "
	input.Focus()

	results := make(chan domain.RankedResultSet, 16)
	a := &App{
		search:  search,
		results: results,
		ctx:     context.Background(),
		input:   input,
	}
	a.session = services.NewSession(search, func(set domain.RankedResultSet) {
		results <- set
	}, o.sessionOpts...)
	return a
}

// WithContext sets the context used for suggestion and selection calls.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init starts the result subscription and loads initial suggestions.
func (a *App) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, a.waitForResults(), a.loadSuggestions())
}

// waitForResults re-arms the subscription on the session's emit channel.
func (a *App) waitForResults() tea.Cmd {
	return func() tea.Msg {
		return resultsMsg(<-a.results)
	}
}

func (a *App) loadSuggestions() tea.Cmd {
	return func() tea.Msg {
		set, err := a.search.Suggest(a.ctx, domain.SearchQuery{Sources: domain.AllSources})
		if err != nil {
			return suggestionsMsg(domain.RankedResultSet{})
		}
		return suggestionsMsg(set)
	}
}

// Update handles messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)

	case resultsMsg:
		a.set = domain.RankedResultSet(msg)
		a.clampSelection()
		a.status = fmt.Sprintf("%d výsledků", len(a.set.Results))
		return a, a.waitForResults()

	case suggestionsMsg:
		// Suggestions only fill an idle input; live results win.
		if strings.TrimSpace(a.input.Value()) == "" {
			a.set = domain.RankedResultSet(msg)
			a.clampSelection()
			a.status = "Návrhy"
		}
		return a, nil

	case selectedMsg:
		a.status = fmt.Sprintf("Vybráno: %s", msg.result.DisplayText)
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		a.quitting = true
		a.session.Close()
		return a, tea.Quit

	case tea.KeyUp:
		if a.selected > 0 {
			a.selected--
		}
		return a, nil

	case tea.KeyDown:
		if a.selected < len(a.set.Results)-1 {
			a.selected++
		}
		return a, nil

	case tea.KeyEnter:
		return a, a.selectCurrent()
	}

	before := a.input.Value()
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	after := a.input.Value()

	if after == before {
		return a, cmd
	}

	if strings.TrimSpace(after) == "" {
		return a, tea.Batch(cmd, a.loadSuggestions())
	}

	if err := a.session.Input(domain.SearchQuery{Text: after, Sources: domain.AllSources}); err != nil {
		a.status = err.Error()
	} else {
		a.status = "Hledám…"
	}
	return a, cmd
}

// selectCurrent records the highlighted result into the history.
func (a *App) selectCurrent() tea.Cmd {
	if a.selected >= len(a.set.Results) {
		return nil
	}
	result := a.set.Results[a.selected]
	return func() tea.Msg {
		_ = a.search.RecordSelection(a.ctx, result)
		return selectedMsg{result: result}
	}
}

func (a *App) clampSelection() {
	if a.selected >= len(a.set.Results) {
		a.selected = 0
	}
}

// View renders the search box.
func (a *App) View() string {
	if a.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Hledej — spolujízda"))
	b.WriteString("\n\n")
	b.WriteString(a.input.View())
	b.WriteString("\n\n")

	if len(a.set.Results) == 0 {
		b.WriteString(subtitleStyle.Render("  Žádné výsledky"))
		b.WriteString("\n")
	}
	for i, r := range a.set.Results {
		line := fmt.Sprintf("%s %s", iconGlyph(r.Icon), r.DisplayText)
		if r.DistanceKm != nil {
			line += fmt.Sprintf("  (%.1f km)", *r.DistanceKm)
		}
		if i == a.selected {
			b.WriteString(selectedStyle.Render("▸ " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
		if r.Subtitle != "" {
			b.WriteString(subtitleStyle.Render("      " + r.Subtitle))
			b.WriteString("\n")
		}
	}

	if a.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(a.status))
	}
	b.WriteString(helpStyle.Render("\n↑/↓ vybrat • Enter potvrdit • Esc konec"))
	return b.String()
}

// iconGlyph maps symbolic icon tags to glyphs.
func iconGlyph(icon string) string {
	switch icon {
	case domain.IconRecent:
		return "🕐"
	case domain.IconPlace:
		return "📍"
	case domain.IconRide:
		return "🚗"
	case domain.IconUser:
		return "👤"
	case domain.IconPopular:
		return "🔥"
	case domain.IconLocation:
		return "📌"
	default:
		return "•"
	}
}
