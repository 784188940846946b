package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spolujizda-labs/hledej/internal/core/domain"
)

var suggestJSON bool

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Show empty-input suggestions",
	Long: `Prints what the search box offers before the user has typed anything:
recent searches, popular destinations and the current location shortcut.`,
	Args: cobra.NoArgs,
	RunE: runSuggest,
}

func init() {
	suggestCmd.Flags().BoolVar(&suggestJSON, "json", false, "output suggestions as JSON")
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, _ []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	query := domain.SearchQuery{Sources: domain.AllSources}
	set, err := searchService.Suggest(cmd.Context(), query)
	if err != nil {
		return fmt.Errorf("suggestions failed: %w", err)
	}

	if suggestJSON {
		return outputResultsJSON(cmd, set.Results)
	}

	if len(set.Results) == 0 {
		cmd.Println("No suggestions yet. Search for something first.")
		return nil
	}
	for _, r := range set.Results {
		cmd.Printf("  %s %s\n", iconGlyph(r.Icon), r.DisplayText)
	}
	return nil
}
