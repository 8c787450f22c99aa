// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/voyago/voyago/internal/domain/model"
	"github.com/voyago/voyago/pkg/metrics"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Recommend runs the full pipeline for one request.
	Recommend(ctx context.Context, profile model.UserProfile, loc *model.Location, sel model.FilterSelection) ([]model.ScoredRecommendation, error)

	// CatalogSize reports the number of places available.
	CatalogSize(ctx context.Context) int
}

// StatsProvider exposes service statistics for the stats endpoint.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	recommendHandler *RecommendationsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		recommendHandler: NewRecommendationsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/recommendations", MetricsMiddleware(s.recommendHandler.HandleRecommendations, "recommendations"))
	mux.Handle("/metrics", metrics.Handler())
}
