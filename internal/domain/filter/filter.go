// Package filter narrows a candidate catalog with user-selected predicates.
//
// All predicates are independent and conjunctive: a place survives only if
// every enabled predicate passes. Input order is preserved and the input
// slice is never mutated.
package filter

import (
	"context"

	"github.com/voyago/voyago/internal/domain/geo"
	"github.com/voyago/voyago/internal/domain/model"
	"github.com/voyago/voyago/pkg/logger"
)

// Candidate is a place that survived filtering, together with its distance
// from the request location. DistanceKm is nil when no location was given.
type Candidate struct {
	Place      model.Place
	DistanceKm *float64
}

// Result carries the surviving candidates plus tallies of records that were
// excluded for data problems rather than by user predicates.
type Result struct {
	Candidates []Candidate

	// Malformed counts places with invalid category, rating or price level.
	Malformed int

	// BadCoordinates counts places dropped for out-of-range lat/lng.
	BadCoordinates int
}

// Option applies a configuration option to the Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
func WithLogger(l logger.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// Pipeline applies category, budget, radius and open-now predicates.
type Pipeline struct {
	logger logger.Logger
}

// New creates a filter pipeline with configuration options.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = logger.Get().Named("filter")
	}
	return p
}

// Apply runs all predicates over places and returns the surviving
// subsequence. Malformed records are excluded and tallied, never fatal.
//
// The radius predicate needs a location; when loc is nil it is skipped
// entirely so a missing location can never empty the result set on its own.
func (p *Pipeline) Apply(ctx context.Context, places []model.Place, sel model.FilterSelection, loc *model.Location) Result {
	res := Result{Candidates: make([]Candidate, 0, len(places))}

	for _, place := range places {
		if err := place.Validate(); err != nil {
			res.Malformed++
			p.logger.Warn(ctx, "dropping malformed place", logger.String("place", place.ID), logger.Error(err))
			continue
		}
		if !place.Coord.Valid() {
			res.BadCoordinates++
			p.logger.Warn(ctx, "dropping place with bad coordinates", logger.String("place", place.ID))
			continue
		}

		var dist *float64
		if loc != nil {
			d, err := geo.DistanceKm(loc.Coordinate, place.Coord)
			if err != nil {
				res.BadCoordinates++
				p.logger.Warn(ctx, "dropping place with bad coordinates", logger.String("place", place.ID), logger.Error(err))
				continue
			}
			dist = &d
		}

		if !p.matches(place, sel, dist) {
			continue
		}

		res.Candidates = append(res.Candidates, Candidate{Place: place, DistanceKm: dist})
	}

	return res
}

// matches evaluates the conjunction of user predicates for one place.
func (p *Pipeline) matches(place model.Place, sel model.FilterSelection, dist *float64) bool {
	if sel.Category != model.CategoryAny && place.Category != sel.Category {
		return false
	}
	if sel.Budget != model.TierAny && place.Tier() != sel.Budget {
		return false
	}
	if dist != nil && sel.RadiusKm > 0 && *dist > sel.RadiusKm {
		return false
	}
	if sel.OpenNowOnly && !place.OpenNow {
		return false
	}
	return true
}
