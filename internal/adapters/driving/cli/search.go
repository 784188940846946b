package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spolujizda-labs/hledej/internal/core/domain"
)

var (
	searchLimit   int
	searchJSON    bool
	searchSources []string
	searchLat     float64
	searchLng     float64
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search rides, places and people",
	Long: `Runs one fuzzy search across all enabled sources and prints the fused,
ranked result list. Typo-tolerant: "Brbo" still finds Brno.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", domain.DefaultResultLimit, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().StringSliceVar(&searchSources, "sources", nil, "sources to query (history,place,ride,user); default all")
	searchCmd.Flags().Float64Var(&searchLat, "lat", 0, "origin latitude, for distance and cache locality")
	searchCmd.Flags().Float64Var(&searchLng, "lng", 0, "origin longitude")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	query, err := buildQuery(cmd, args[0])
	if err != nil {
		return err
	}

	set, err := searchService.Search(cmd.Context(), query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputResultsJSON(cmd, set.Results)
	}
	return outputResultsTable(cmd, set.Results)
}

func buildQuery(cmd *cobra.Command, text string) (domain.SearchQuery, error) {
	query := domain.SearchQuery{
		Text:    text,
		Sources: domain.AllSources,
		Limit:   searchLimit,
	}

	// Flags win over config; config wins over built-in defaults.
	if !cmd.Flags().Changed("limit") && appConfig.Search.Limit > 0 {
		query.Limit = appConfig.Search.Limit
	}
	if len(searchSources) == 0 {
		if sources, err := appConfig.SourceSet(); err == nil {
			query.Sources = sources
		}
	}

	if len(searchSources) > 0 {
		kinds := make([]domain.SourceKind, 0, len(searchSources))
		for _, name := range searchSources {
			kind, err := domain.ParseSourceKind(name)
			if err != nil {
				return domain.SearchQuery{}, err
			}
			kinds = append(kinds, kind)
		}
		query.Sources = domain.NewSourceSet(kinds...)
	}

	if cmd.Flags().Changed("lat") && cmd.Flags().Changed("lng") {
		query.Origin = &domain.GeoPoint{Lat: searchLat, Lng: searchLng}
	}
	return query, nil
}

func outputResultsJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	if results == nil {
		results = []domain.SearchResult{}
	}
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputResultsTable(cmd *cobra.Command, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i, r := range results {
		cmd.Printf("  [%d] %s %s (%.2f)\n", i+1, iconGlyph(r.Icon), r.DisplayText, r.Confidence)
		if r.Subtitle != "" {
			cmd.Printf("      %s\n", r.Subtitle)
		}
		if r.DistanceKm != nil {
			cmd.Printf("      %.1f km\n", *r.DistanceKm)
		}
	}
	cmd.Println()
	return nil
}

// iconGlyph maps symbolic icon tags to terminal glyphs.
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
