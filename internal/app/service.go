// Package app provides the core recommendation service that implements the
// dependencies required by the HTTP API.
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/voyago/voyago/internal/adapters/catalog"
	"github.com/voyago/voyago/internal/domain/filter"
	"github.com/voyago/voyago/internal/domain/mapview"
	"github.com/voyago/voyago/internal/domain/model"
	"github.com/voyago/voyago/internal/domain/rank"
	"github.com/voyago/voyago/internal/domain/scoring"
	"github.com/voyago/voyago/pkg/logger"
	"github.com/voyago/voyago/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultMaxResults = 50
)

// Service wires the pure engine components behind the public Recommend
// operation. Each Recommend call is an independent computation over its
// inputs; the service holds no per-request state.
type Service struct {
	mu sync.RWMutex

	// Core components
	catalog   catalog.Store
	pipeline  *filter.Pipeline
	scorer    *scoring.Model
	projector *mapview.Projector

	// Configuration
	maxResults    int
	weights       scoring.Weights
	mapScale      float64
	defaultRadius float64
	seedPlaces    []model.Place

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMaxResults caps the number of recommendations returned per request.
func WithMaxResults(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxResults = n
		}
	}
}

// WithScoringWeights overrides the default scoring weights.
func WithScoringWeights(w scoring.Weights) Option {
	return func(s *Service) {
		s.weights = w
	}
}

// WithMapScale sets the viewport percent one kilometer maps to.
func WithMapScale(pctPerKm float64) Option {
	return func(s *Service) {
		if pctPerKm > 0 {
			s.mapScale = pctPerKm
		}
	}
}

// WithDefaultMapRadius sets the marker ring used when distance is unknown.
func WithDefaultMapRadius(pct float64) Option {
	return func(s *Service) {
		if pct > 0 {
			s.defaultRadius = pct
		}
	}
}

// WithPlaces seeds the built-in catalog with places.
func WithPlaces(places []model.Place) Option {
	return func(s *Service) {
		s.seedPlaces = places
	}
}

// WithCatalog injects an external catalog store, replacing the built-in one.
func WithCatalog(store catalog.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.catalog = store
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		maxResults:    defaultMaxResults,
		weights:       scoring.DefaultWeights(),
		mapScale:      0, // mapview default applies
		defaultRadius: 0, // mapview default applies
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting recommendation service...")

	if s.catalog == nil {
		places := s.seedPlaces
		if places == nil {
			places = catalog.DemoPlaces()
		}
		s.catalog = catalog.New(ctx, places)
	}
	s.pipeline = filter.New(filter.WithLogger(s.logger.Named("filter")))
	s.scorer = scoring.New(scoring.WithWeights(s.weights))

	var projOpts []mapview.Option
	if s.mapScale > 0 {
		projOpts = append(projOpts, mapview.WithScale(s.mapScale))
	}
	if s.defaultRadius > 0 {
		projOpts = append(projOpts, mapview.WithDefaultRadius(s.defaultRadius))
	}
	s.projector = mapview.New(projOpts...)

	s.started = true
	s.logger.Info(ctx, "recommendation service started",
		logger.Int("catalogPlaces", s.catalog.Count(ctx)),
		logger.Int("maxResults", s.maxResults),
	)
	return nil
}

// Stop shuts the service down.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	if closer, ok := s.catalog.(interface{ Close() error }); ok {
		_ = closer.Close()
	}

	s.started = false
	s.logger.Info(context.Background(), "recommendation service stopped")
}

// Recommend runs the full pipeline for one request: fetch candidates, filter,
// score, rank, project. An empty catalog or a filter matching nothing yields
// an empty list, never an error.
func (s *Service) Recommend(ctx context.Context, profile model.UserProfile, loc *model.Location, sel model.FilterSelection) ([]model.ScoredRecommendation, error) {
	s.mu.RLock()
	started := s.started
	s.mu.RUnlock()
	if !started {
		return nil, ErrNotStarted
	}

	if err := validateInput(profile, sel); err != nil {
		metrics.RecordRequestError("invalid_input")
		return nil, err
	}

	start := time.Now()
	metrics.RecordRequest()

	candidates, err := s.catalog.GetCandidates(ctx, loc, sel)
	if err != nil {
		metrics.RecordRequestError("catalog")
		return nil, fmt.Errorf("%w: %w", ErrCatalog, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := s.pipeline.Apply(ctx, candidates, sel, loc)
	metrics.RecordMalformedPlaces(res.Malformed)
	metrics.RecordBadCoordinates(res.BadCoordinates)

	recs := make([]model.ScoredRecommendation, 0, len(res.Candidates))
	for _, c := range res.Candidates {
		score, breakdown := s.scorer.Score(profile, c)
		recs = append(recs, model.ScoredRecommendation{
			Place:      c.Place,
			Score:      score,
			Reason:     s.scorer.Reason(breakdown),
			DistanceKm: c.DistanceKm,
		})
	}

	recs = rank.Order(recs)
	if len(recs) > s.maxResults {
		recs = recs[:s.maxResults]
	}
	s.projector.Project(recs, loc)

	metrics.RecordResultCount(len(recs))
	metrics.RecordPipelineDuration(time.Since(start).Seconds())

	s.logger.Debug(ctx, "recommendation request served",
		logger.Int("candidates", len(candidates)),
		logger.Int("results", len(recs)),
		logger.Int("malformed", res.Malformed),
		logger.Bool("hasLocation", loc != nil),
	)
	return recs, nil
}

// CatalogSize reports the number of places held by the catalog.
func (s *Service) CatalogSize(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.catalog == nil {
		return 0
	}
	return s.catalog.Count(ctx)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":    s.started,
		"maxResults": s.maxResults,
	}
	if s.started {
		stats["catalogPlaces"] = s.catalog.Count(context.Background())
	}
	return stats
}

// validateInput rejects malformed profiles and filter selections before any
// filtering or scoring runs.
func validateInput(profile model.UserProfile, sel model.FilterSelection) error {
	switch {
	case !profile.Budget.Valid():
		return fmt.Errorf("%w: profile budget %q", ErrInvalidInput, profile.Budget)
	case profile.RadiusKm <= 0:
		return fmt.Errorf("%w: profile radius %.2f must be positive", ErrInvalidInput, profile.RadiusKm)
	case sel.Category != model.CategoryAny && !sel.Category.Valid():
		return fmt.Errorf("%w: filter category %q", ErrInvalidInput, sel.Category)
	case sel.Budget != model.TierAny && !sel.Budget.Valid():
		return fmt.Errorf("%w: filter budget %q", ErrInvalidInput, sel.Budget)
	case sel.RadiusKm <= 0:
		return fmt.Errorf("%w: filter radius %.2f must be positive", ErrInvalidInput, sel.RadiusKm)
	}
	for _, c := range profile.Categories {
		if !c.Valid() {
			return fmt.Errorf("%w: profile category %q", ErrInvalidInput, c)
		}
	}
	return nil
}
