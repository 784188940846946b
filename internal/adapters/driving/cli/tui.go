package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/spolujizda-labs/hledej/internal/adapters/driving/tui"
	"github.com/spolujizda-labs/hledej/internal/core/services"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive search box",
	Long: `Launch the interactive terminal search box.

Results update live as you type, debounced so a typing burst costs one
search. Controls:
  ↑/↓      - Navigate results
  Enter    - Select (records into history)
  Esc      - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	// Panic recovery so a rendering bug leaves a stack trace, not a
	// garbled terminal.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	app := tui.NewApp(searchService,
		tui.WithSessionOptions(services.WithDebounce(appConfig.Debounce())),
	).WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
