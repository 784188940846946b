// Package httpapi exposes the search engine over REST for the mobile and
// web clients. It is a thin translation layer: parse the request, call the
// service, shape the response.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/spolujizda-labs/hledej/internal/core/domain"
	"github.com/spolujizda-labs/hledej/internal/core/ports/driven"
	"github.com/spolujizda-labs/hledej/internal/core/ports/driving"
)

// Server hosts the search HTTP API.
type Server struct {
	echo    *echo.Echo
	search  driving.SearchService
	popular driven.PopularDestinations
}

// Option configures the server.
type Option func(*Server)

// WithPopular enables the popular destinations passthrough endpoint.
func WithPopular(p driven.PopularDestinations) Option {
	return func(s *Server) { s.popular = p }
}

// searchResponse is the wire shape of a search or suggest answer.
type searchResponse struct {
	Query   string                `json:"query"`
	Count   int                   `json:"count"`
	Results []domain.SearchResult `json:"results"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewServer builds the server and its routes.
func NewServer(search driving.SearchService, opts ...Option) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	s := &Server{echo: e, search: search}
	for _, opt := range opts {
		opt(s)
	}

	e.GET("/healthz", s.handleHealth)
	e.GET("/api/search", s.handleSearch)
	e.GET("/api/search/suggest", s.handleSuggest)
	e.POST("/api/search/history", s.handleRecordSelection)
	if s.popular != nil {
		e.GET("/api/search/popular", s.handlePopular)
	}

	return s
}

// Start listens on addr and blocks until shutdown.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Handler exposes the router, used by tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSearch(c echo.Context) error {
	query, err := parseQuery(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	set, err := s.search.Search(c.Request().Context(), query)
	if err != nil {
		return searchError(c, err)
	}
	return c.JSON(http.StatusOK, searchResponse{
		Query:   query.Text,
		Count:   len(set.Results),
		Results: nonNil(set.Results),
	})
}

func (s *Server) handleSuggest(c echo.Context) error {
	query, err := parseQuery(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	set, err := s.search.Suggest(c.Request().Context(), query)
	if err != nil {
		return searchError(c, err)
	}
	return c.JSON(http.StatusOK, searchResponse{
		Query:   query.Text,
		Count:   len(set.Results),
		Results: nonNil(set.Results),
	})
}

func (s *Server) handleRecordSelection(c echo.Context) error {
	var result domain.SearchResult
	if err := c.Bind(&result); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "malformed body"})
	}
	if result.ID == "" || result.DisplayText == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "id and text are required"})
	}

	if err := s.search.RecordSelection(c.Request().Context(), result); err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to record selection"})
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handlePopular(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "limit must be a non-negative integer"})
		}
		limit = n
	}

	dests, err := s.popular.Popular(c.Request().Context(), limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "popular destinations unavailable"})
	}
	if dests == nil {
		dests = []domain.Destination{}
	}
	return c.JSON(http.StatusOK, map[string]any{
		"count":        len(dests),
		"destinations": dests,
	})
}

// parseQuery maps query parameters onto a SearchQuery. lat and lng must
// come as a pair.
func parseQuery(c echo.Context) (domain.SearchQuery, error) {
	query := domain.SearchQuery{
		Text:    c.QueryParam("q"),
		Sources: domain.AllSources,
	}

	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return domain.SearchQuery{}, errors.New("limit must be a non-negative integer")
		}
		query.Limit = limit
	}

	if raw := c.QueryParam("sources"); raw != "" {
		var kinds []domain.SourceKind
		for _, name := range strings.Split(raw, ",") {
			kind, err := domain.ParseSourceKind(name)
			if err != nil {
				return domain.SearchQuery{}, err
			}
			kinds = append(kinds, kind)
		}
		query.Sources = domain.NewSourceSet(kinds...)
	}

	rawLat, rawLng := c.QueryParam("lat"), c.QueryParam("lng")
	if (rawLat == "") != (rawLng == "") {
		return domain.SearchQuery{}, errors.New("lat and lng must be given together")
	}
	if rawLat != "" {
		lat, errLat := strconv.ParseFloat(rawLat, 64)
		lng, errLng := strconv.ParseFloat(rawLng, 64)
		if errLat != nil || errLng != nil {
			return domain.SearchQuery{}, errors.New("lat and lng must be numbers")
		}
		query.Origin = &domain.GeoPoint{Lat: lat, Lng: lng}
	}

	return query, nil
}

func searchError(c echo.Context, err error) error {
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, errorResponse{Error: "search failed"})
}

func nonNil(results []domain.SearchResult) []domain.SearchResult {
	if results == nil {
		return []domain.SearchResult{}
	}
	return results
}
