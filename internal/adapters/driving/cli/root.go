// Package cli wires the cobra command tree. Services are built once in the
// persistent pre-run from the loaded config; tests swap the package-level
// service variables for mocks instead.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spolujizda-labs/hledej/internal/adapters/driven/backend"
	"github.com/spolujizda-labs/hledej/internal/adapters/driven/cache/memory"
	configfile "github.com/spolujizda-labs/hledej/internal/adapters/driven/config/file"
	"github.com/spolujizda-labs/hledej/internal/adapters/driven/geocode"
	"github.com/spolujizda-labs/hledej/internal/adapters/driven/popular"
	storagememory "github.com/spolujizda-labs/hledej/internal/adapters/driven/storage/memory"
	"github.com/spolujizda-labs/hledej/internal/adapters/driven/storage/sqlite"
	"github.com/spolujizda-labs/hledej/internal/core/ports/driven"
	"github.com/spolujizda-labs/hledej/internal/core/ports/driving"
	"github.com/spolujizda-labs/hledej/internal/core/services"
	historyprovider "github.com/spolujizda-labs/hledej/internal/providers/history"
	placeprovider "github.com/spolujizda-labs/hledej/internal/providers/place"
	rideprovider "github.com/spolujizda-labs/hledej/internal/providers/ride"
	userprovider "github.com/spolujizda-labs/hledej/internal/providers/user"
	"github.com/spolujizda-labs/hledej/internal/logger"
)

var version = "0.1.0-dev"

var (
	verbose    bool
	configPath string

	appConfig     configfile.Config
	searchService driving.SearchService
	historyStore  driven.HistoryStore
	popularSource driven.PopularDestinations

	// cleanups run after the command tree finishes.
	cleanups []func()
)

var rootCmd = &cobra.Command{
	Use:   "hledej",
	Short: "Fuzzy search across rides, places and people",
	Long: `Hledej is the search frontend for the spolujizda carpooling platform.

One query fans out to every enabled source (recent searches, destinations,
published rides, users), tolerant of typos and diacritics, and comes back as
a single ranked list.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)

		// Tests inject their own service; don't wire over it.
		if searchService != nil {
			return nil
		}
		return bootstrap()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.hledej/config.toml)")
}

// Execute runs the command tree and releases held resources afterwards.
func Execute() error {
	defer shutdown()
	return rootCmd.Execute()
}

func shutdown() {
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
	cleanups = nil
}

// bootstrap builds the service graph from configuration.
func bootstrap() error {
	cfg, err := configfile.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	appConfig = cfg

	switch cfg.Storage.History {
	case "sqlite":
		store, err := sqlite.NewStore(cfg.Storage.DataDir)
		if err != nil {
			return fmt.Errorf("opening history store: %w", err)
		}
		cleanups = append(cleanups, func() { _ = store.Close() })
		historyStore = store
	default:
		historyStore = storagememory.NewHistoryStore()
	}

	client := backend.NewClient(cfg.Backend.URL)

	var lookup driven.PlaceLookup
	if cfg.Backend.GeocodeURL != "" {
		lookup = geocode.NewClient(cfg.Backend.GeocodeURL)
	}

	popularSource = client
	if cfg.Backend.PopularFile != "" {
		fileSource, err := popular.NewFileSource(cfg.Backend.PopularFile)
		if err != nil {
			return fmt.Errorf("loading popular destinations: %w", err)
		}
		cleanups = append(cleanups, func() { _ = fileSource.Close() })
		popularSource = fileSource
	}

	providers := []driven.SourceProvider{
		historyprovider.New(historyStore),
		placeprovider.New(lookup),
		rideprovider.New(client),
		userprovider.New(client),
	}

	searchService = services.NewSearchService(
		memory.NewResultCache(cfg.Search.CacheCapacity),
		historyStore,
		providers,
		services.WithProviderTimeout(cfg.ProviderTimeout()),
		services.WithCacheTTL(cfg.CacheTTL()),
		services.WithPopularDestinations(popularSource),
	)
	return nil
}
