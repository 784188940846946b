package cli

import (
	"errors"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/spolujizda-labs/hledej/internal/adapters/driving/httpapi"
	"github.com/spolujizda-labs/hledej/internal/logger"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the search HTTP API",
	Long: `Exposes the search engine over REST for the mobile and web clients:

  GET  /api/search          one ranked search
  GET  /api/search/suggest  empty-input suggestions
  POST /api/search/history  record an accepted selection`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8090", "listen address")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	var opts []httpapi.Option
	if popularSource != nil {
		opts = append(opts, httpapi.WithPopular(popularSource))
	}
	server := httpapi.NewServer(searchService, opts...)
	logger.Info("Search API listening on %s", serveAddr)
	cmd.Printf("Listening on %s\n", serveAddr)

	if err := server.Start(serveAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
