// Package mapview converts ranked candidates into bounded viewport
// coordinates for the rendering layer.
package mapview

import (
	"math"

	"github.com/voyago/voyago/internal/domain/geo"
	"github.com/voyago/voyago/internal/domain/model"
)

// Viewport and projection constants. Axes are percentages of a fixed-size
// frame; markers must stay inside [minBound,maxBound] on both axes.
const (
	viewportCenter = 50.0
	minBound       = 5.0
	maxBound       = 95.0

	defaultScalePctPerKm = 8.0
	maxRadiusPct         = 40.0
	defaultRadiusPct     = 25.0

	// overlapPct is how close two markers may sit before the later one is
	// nudged; jitterStepDeg is the angular nudge per attempt, multiplied by
	// the marker's rank index so the adjustment is reproducible.
	overlapPct        = 3.0
	jitterStepDeg     = 11.0
	maxJitterAttempts = 8
)

// Option applies a configuration option to the Projector.
type Option func(*Projector)

// WithScale sets how many viewport percent one kilometer maps to.
func WithScale(pctPerKm float64) Option {
	return func(p *Projector) {
		if pctPerKm > 0 {
			p.scale = pctPerKm
		}
	}
}

// WithDefaultRadius sets the ring radius used when a candidate has no
// distance.
func WithDefaultRadius(pct float64) Option {
	return func(p *Projector) {
		if pct > 0 && pct <= maxRadiusPct {
			p.defaultRadius = pct
		}
	}
}

// Projector derives marker positions from distance and bearing, or from rank
// index alone when no location is known. It holds no per-request state.
type Projector struct {
	scale         float64
	defaultRadius float64
}

// New creates a projector with configuration options.
func New(opts ...Option) *Projector {
	p := &Projector{
		scale:         defaultScalePctPerKm,
		defaultRadius: defaultRadiusPct,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Project assigns a MapCoordinate to every recommendation in rank order.
// Identical input always yields identical coordinates; the overlap nudge is
// a pure function of the rank index.
func (p *Projector) Project(recs []model.ScoredRecommendation, loc *model.Location) {
	placed := make([]model.MapCoordinate, 0, len(recs))

	for i := range recs {
		angle := p.angleDeg(recs[i], loc, i, len(recs))
		radius := p.radiusPct(recs[i].DistanceKm)

		coord := place(angle, radius, i)
		for attempt := 1; attempt <= maxJitterAttempts && collides(coord, placed); attempt++ {
			angle += jitterStepDeg * float64(i+1)
			coord = place(angle, radius, i)
		}

		recs[i].Map = coord
		placed = append(placed, coord)
	}
}

// angleDeg picks the compass bearing when a location is available and the
// candidate does not coincide with it; otherwise a synthetic angle spread
// evenly by rank index.
func (p *Projector) angleDeg(rec model.ScoredRecommendation, loc *model.Location, index, count int) float64 {
	if loc != nil && loc.Coordinate != rec.Place.Coord {
		if b, err := geo.BearingDeg(loc.Coordinate, rec.Place.Coord); err == nil {
			return b
		}
	}
	if count == 0 {
		return 0
	}
	return float64(index) * 360.0 / float64(count)
}

// radiusPct scales a known distance onto the viewport and caps it at the
// frame edge; unknown distances land on a fixed default ring.
func (p *Projector) radiusPct(distKm *float64) float64 {
	if distKm == nil {
		return p.defaultRadius
	}
	return math.Min(*distKm*p.scale, maxRadiusPct)
}

// place converts a polar offset from the viewport center into clamped
// Cartesian viewport coordinates.
func place(angleDeg, radiusPct float64, index int) model.MapCoordinate {
	rad := angleDeg * math.Pi / 180.0
	x := viewportCenter + radiusPct*math.Cos(rad)
	y := viewportCenter + radiusPct*math.Sin(rad)
	return model.MapCoordinate{
		X:     clamp(x),
		Y:     clamp(y),
		Index: index,
	}
}

func clamp(v float64) float64 {
	return math.Max(minBound, math.Min(maxBound, v))
}

// collides reports whether c sits within the overlap threshold of any
// already-placed marker.
func collides(c model.MapCoordinate, placed []model.MapCoordinate) bool {
	for _, other := range placed {
		dx := c.X - other.X
		dy := c.Y - other.Y
		if math.Hypot(dx, dy) < overlapPct {
			return true
		}
	}
	return false
}
