// Package model contains domain models passed between layers.
package model

import "fmt"

// Category classifies a place. The set is fixed; anything else is malformed.
type Category string

// Known place categories.
const (
	CategoryRestaurant    Category = "restaurant"
	CategoryAttraction    Category = "attraction"
	CategoryEntertainment Category = "entertainment"
	CategoryShopping      Category = "shopping"
	CategoryHotel         Category = "hotel"
	CategoryTransport     Category = "transport"
	CategoryEvent         Category = "event"
	CategoryCulture       Category = "culture"
	CategoryNature        Category = "nature"
	CategoryNightlife     Category = "nightlife"

	// CategoryAny disables category filtering in a FilterSelection.
	CategoryAny Category = "any"
)

var knownCategories = map[Category]struct{}{
	CategoryRestaurant:    {},
	CategoryAttraction:    {},
	CategoryEntertainment: {},
	CategoryShopping:      {},
	CategoryHotel:         {},
	CategoryTransport:     {},
	CategoryEvent:         {},
	CategoryCulture:       {},
	CategoryNature:        {},
	CategoryNightlife:     {},
}

// Valid reports whether c is a known concrete category (not "any").
func (c Category) Valid() bool {
	_, ok := knownCategories[c]
	return ok
}

// Tier is the budget classification derived from a place's price level.
type Tier string

// Budget tiers, ordered low < medium < high.
const (
	TierLow    Tier = "low"
	TierMedium Tier = "medium"
	TierHigh   Tier = "high"

	// TierAny disables budget filtering in a FilterSelection.
	TierAny Tier = "any"
)

// Valid reports whether t is a concrete tier (not "any").
func (t Tier) Valid() bool {
	return t == TierLow || t == TierMedium || t == TierHigh
}

// ordinal returns the tier position for adjacency comparisons.
func (t Tier) ordinal() int {
	switch t {
	case TierLow:
		return 0
	case TierMedium:
		return 1
	case TierHigh:
		return 2
	default:
		return -1
	}
}

// Adjacent reports whether two tiers sit next to each other in the
// low < medium < high ordering.
func (t Tier) Adjacent(other Tier) bool {
	a, b := t.ordinal(), other.ordinal()
	if a < 0 || b < 0 {
		return false
	}
	d := a - b
	return d == 1 || d == -1
}

// Coordinate is a geographic point in degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether the point lies in the standard lat/lng ranges.
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// Location is the caller's current position plus accuracy metadata from the
// provider. It is optional everywhere in the pipeline; a nil *Location
// degrades distance-dependent signals instead of failing the request.
type Location struct {
	Coordinate
	AccuracyM float64 `json:"accuracy_m,omitempty"`
}

// Place is a candidate supplied by the catalog. The engine never mutates it.
type Place struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Category    Category   `json:"category"`
	Coord       Coordinate `json:"coordinates"`
	Address     string     `json:"address,omitempty"`
	Rating      float64    `json:"rating"`       // [0,5]
	ReviewCount int        `json:"review_count"` // >= 0
	PriceLevel  int        `json:"price_level"`  // {1,2,3,4}
	OpenNow     bool       `json:"open_now"`

	// Pass-through display fields, opaque to ranking.
	Features          []string `json:"features,omitempty"`
	EstimatedDuration int      `json:"estimated_duration,omitempty"` // minutes
}

// Tier maps the place's price level to its budget tier: 1 is low, 2 is
// medium, 3 and 4 are high.
func (p Place) Tier() Tier {
	switch p.PriceLevel {
	case 1:
		return TierLow
	case 2:
		return TierMedium
	default:
		return TierHigh
	}
}

// Validate reports why a place record is malformed, or nil. Malformed places
// are dropped from the catalog and tallied, never fatal.
func (p Place) Validate() error {
	switch {
	case p.ID == "":
		return fmt.Errorf("place has no id")
	case !p.Category.Valid():
		return fmt.Errorf("place %s: unknown category %q", p.ID, p.Category)
	case p.Rating < 0 || p.Rating > 5:
		return fmt.Errorf("place %s: rating %.2f out of range", p.ID, p.Rating)
	case p.ReviewCount < 0:
		return fmt.Errorf("place %s: negative review count", p.ID)
	case p.PriceLevel < 1 || p.PriceLevel > 4:
		return fmt.Errorf("place %s: price level %d out of range", p.ID, p.PriceLevel)
	}
	return nil
}

// UserProfile is the read-only preference record for one request.
type UserProfile struct {
	Budget     Tier       `json:"budget"`
	Categories []Category `json:"categories,omitempty"` // empty = no preference
	RadiusKm   float64    `json:"radius_km"`            // > 0
	Locale     string     `json:"locale,omitempty"`     // opaque pass-through
	Currency   string     `json:"currency,omitempty"`   // opaque pass-through
}

// WantsCategory reports whether the profile names cat as an interest.
func (u UserProfile) WantsCategory(cat Category) bool {
	for _, c := range u.Categories {
		if c == cat {
			return true
		}
	}
	return false
}

// FilterSelection is the user-controlled narrowing applied before scoring.
type FilterSelection struct {
	Category    Category `json:"category"` // concrete category or "any"
	Budget      Tier     `json:"budget"`   // concrete tier or "any"
	RadiusKm    float64  `json:"radius_km"`
	OpenNowOnly bool     `json:"open_now_only"`
}

// MapCoordinate positions a marker inside a fixed-size viewport. Both axes
// are percentages clamped to keep the marker visible; Index disambiguates
// overlapping placements.
type MapCoordinate struct {
	X     float64 `json:"x"` // [5,95]
	Y     float64 `json:"y"` // [5,95]
	Index int     `json:"index"`
}

// ScoredRecommendation is one ranked result. DistanceKm is nil when the
// request carried no location.
type ScoredRecommendation struct {
	Place      Place         `json:"place"`
	Score      float64       `json:"score"`
	Reason     string        `json:"reason"`
	DistanceKm *float64      `json:"distance_km,omitempty"`
	Map        MapCoordinate `json:"map"`
}
