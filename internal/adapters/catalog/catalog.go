// Package catalog implements the candidate catalog collaborator backed by an
// in-memory R-tree spatial index.
package catalog

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/dhconnelly/rtreego"
	"github.com/voyago/voyago/internal/domain/model"
	"github.com/voyago/voyago/pkg/logger"
	"github.com/voyago/voyago/pkg/metrics"
)

const (
	dimensions  = 2
	minChildren = 25
	maxChildren = 50

	// pointTolerance gives indexed points a tiny non-zero footprint, which
	// rtreego requires.
	pointTolerance = 1e-6

	// bboxSlack widens the radius bounding box slightly so float error can
	// never exclude a place right at the edge. The exact haversine check
	// happens downstream in the filter pipeline.
	bboxSlack = 1.05

	kmPerDegreeLat = 110.574
	kmPerDegreeLng = 111.320
)

// Store is the catalog contract consumed by the recommendation session.
type Store interface {
	// GetCandidates returns places for one request. With a location and a
	// positive radius the result is pre-narrowed to a bounding box that is a
	// superset of the radius circle; otherwise the full catalog is returned.
	// Order is the catalog's insertion order either way.
	GetCandidates(ctx context.Context, loc *model.Location, sel model.FilterSelection) ([]model.Place, error)

	// Count returns the number of places held.
	Count(ctx context.Context) int
}

// spatialPlace wraps a catalog entry to implement rtreego.Spatial.
type spatialPlace struct {
	index int
	rect  *rtreego.Rect
}

func (s *spatialPlace) Bounds() *rtreego.Rect {
	return s.rect
}

// Option applies a configuration option to the InMemoryCatalog.
type Option func(*InMemoryCatalog)

// WithLogger sets a custom logger for the catalog.
func WithLogger(l logger.Logger) Option {
	return func(c *InMemoryCatalog) {
		if l != nil {
			c.logger = l
		}
	}
}

// InMemoryCatalog implements Store with an rtreego index over place
// coordinates. Places keep their insertion order in query results.
type InMemoryCatalog struct {
	mu        sync.RWMutex
	places    []model.Place
	tree      *rtreego.Rtree
	unindexed []int
	closed    bool
	logger    logger.Logger
}

// New builds a catalog from places and indexes their coordinates. Record
// validation is not the catalog's job; malformed entries still flow to the
// filter pipeline, which excludes and tallies them. Entries whose coordinates
// fall outside the valid lat/lng ranges cannot be indexed; they are kept
// aside and included in every query so the pipeline sees and tallies them
// whether or not a location narrows the search.
func New(ctx context.Context, places []model.Place, opts ...Option) *InMemoryCatalog {
	c := &InMemoryCatalog{
		places: append([]model.Place(nil), places...),
		tree:   rtreego.NewTree(dimensions, minChildren, maxChildren),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logger.Get().Named("catalog")
	}

	for i, p := range c.places {
		if !p.Coord.Valid() {
			c.unindexed = append(c.unindexed, i)
			continue
		}
		pt := rtreego.Point{p.Coord.Lat, p.Coord.Lng}
		c.tree.Insert(&spatialPlace{index: i, rect: pt.ToRect(pointTolerance)})
	}

	metrics.UpdateCatalogSize(len(c.places))
	c.logger.Info(ctx, "catalog indexed", logger.Int("places", len(c.places)))
	return c
}

// GetCandidates implements Store.
func (c *InMemoryCatalog) GetCandidates(_ context.Context, loc *model.Location, sel model.FilterSelection) ([]model.Place, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		metrics.RecordCatalogError()
		return nil, ErrClosed
	}

	if loc == nil || sel.RadiusKm <= 0 {
		return append([]model.Place(nil), c.places...), nil
	}

	rects, err := radiusBBoxes(loc.Coordinate, sel.RadiusKm*bboxSlack)
	if err != nil {
		metrics.RecordCatalogError()
		return nil, err
	}

	matched := make(map[int]struct{})
	for _, i := range c.unindexed {
		matched[i] = struct{}{}
	}
	for _, rect := range rects {
		for _, h := range c.tree.SearchIntersect(rect) {
			if sp, ok := h.(*spatialPlace); ok {
				matched[sp.index] = struct{}{}
			}
		}
	}

	indexes := make([]int, 0, len(matched))
	for i := range matched {
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)

	out := make([]model.Place, 0, len(indexes))
	for _, i := range indexes {
		out = append(out, c.places[i])
	}
	return out, nil
}

// Count implements Store.
func (c *InMemoryCatalog) Count(_ context.Context) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.places)
}

// Close marks the catalog unusable; subsequent queries fail with ErrClosed.
func (c *InMemoryCatalog) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

// radiusBBoxes builds the lat/lng bounding boxes around center that enclose
// the radius circle. Longitude degrees shrink with latitude. Latitude clamps
// at the poles, but longitude wraps: a circle crossing the antimeridian
// yields two boxes, one on each side of it, so a place just across the date
// line is still a candidate.
func radiusBBoxes(center model.Coordinate, radiusKm float64) ([]*rtreego.Rect, error) {
	latDelta := radiusKm / kmPerDegreeLat
	cosLat := math.Cos(center.Lat * math.Pi / 180)
	lngDelta := 180.0
	if cosLat > 1e-6 {
		lngDelta = math.Min(180, radiusKm/(kmPerDegreeLng*cosLat))
	}

	minLat := math.Max(-90, center.Lat-latDelta)
	maxLat := math.Min(90, center.Lat+latDelta)

	rects := make([]*rtreego.Rect, 0, 2)
	for _, span := range lngSpans(center.Lng-lngDelta, center.Lng+lngDelta) {
		rect, err := rtreego.NewRect(rtreego.Point{minLat, span[0]}, []float64{maxLat - minLat, span[1] - span[0]})
		if err != nil {
			return nil, err
		}
		rects = append(rects, rect)
	}
	return rects, nil
}

// lngSpans splits a raw longitude interval at the antimeridian. The interval
// may extend past +-180 when the circle crosses the date line; the overhang
// re-enters from the opposite side.
func lngSpans(minLng, maxLng float64) [][2]float64 {
	if maxLng-minLng >= 360 {
		return [][2]float64{{-180, 180}}
	}
	switch {
	case minLng < -180:
		return [][2]float64{{-180, maxLng}, {minLng + 360, 180}}
	case maxLng > 180:
		return [][2]float64{{minLng, 180}, {-180, maxLng - 360}}
	default:
		return [][2]float64{{minLng, maxLng}}
	}
}
