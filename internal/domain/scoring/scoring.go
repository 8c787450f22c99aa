// Package scoring computes a relevance score and justification per candidate.
package scoring

import (
	"math"

	"github.com/voyago/voyago/internal/domain/filter"
	"github.com/voyago/voyago/internal/domain/model"
)

// Scoring thresholds and normalization constants.
const (
	maxRating = 5.0

	// reviewDampDivisor controls how quickly low review counts stop
	// discounting the rating: log10(reviewCount+1)/2 reaches 1.0 at 99
	// reviews.
	reviewDampDivisor = 2.0

	// reasonThreshold is the minimum component value that qualifies a
	// dimension to drive the justification text.
	reasonThreshold = 0.75

	neutral = 0.5
)

// Weights holds the relative importance of each scoring dimension. The
// defaults sum to 1.0 so the final score stays in [0,1].
type Weights struct {
	Quality          float64 `koanf:"quality"`
	CategoryAffinity float64 `koanf:"category_affinity"`
	BudgetAffinity   float64 `koanf:"budget_affinity"`
	Proximity        float64 `koanf:"proximity"`
	Availability     float64 `koanf:"availability"`
}

// DefaultWeights returns the standard dimension weights.
func DefaultWeights() Weights {
	return Weights{
		Quality:          0.35,
		CategoryAffinity: 0.25,
		BudgetAffinity:   0.15,
		Proximity:        0.15,
		Availability:     0.10,
	}
}

// valid reports whether a weight set is usable.
func (w Weights) valid() bool {
	return w.Quality > 0 && w.CategoryAffinity >= 0 && w.BudgetAffinity >= 0 &&
		w.Proximity >= 0 && w.Availability >= 0
}

// Breakdown carries the normalized per-dimension components, each in [0,1]
// before weighting.
type Breakdown struct {
	Quality          float64
	CategoryAffinity float64
	BudgetAffinity   float64
	Proximity        float64
	Availability     float64
}

// Option applies a configuration option to the Model.
type Option func(*Model)

// WithWeights overrides the default dimension weights. Invalid weight sets
// are ignored and the defaults kept.
func WithWeights(w Weights) Option {
	return func(m *Model) {
		if w.valid() {
			m.weights = w
		}
	}
}

// Model scores candidates against a user profile. It holds no per-request
// state and is safe for concurrent use.
type Model struct {
	weights Weights
}

// New creates a scoring model with configuration options.
func New(opts ...Option) *Model {
	m := &Model{weights: DefaultWeights()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Score computes the weighted relevance score for one surviving candidate.
// Higher is better; the result is in [0,1] with default weights.
func (m *Model) Score(profile model.UserProfile, c filter.Candidate) (float64, Breakdown) {
	b := Breakdown{
		Quality:          quality(c.Place),
		CategoryAffinity: categoryAffinity(profile, c.Place),
		BudgetAffinity:   budgetAffinity(profile, c.Place),
		Proximity:        proximity(profile, c.DistanceKm),
		Availability:     availability(c.Place),
	}

	score := m.weights.Quality*b.Quality +
		m.weights.CategoryAffinity*b.CategoryAffinity +
		m.weights.BudgetAffinity*b.BudgetAffinity +
		m.weights.Proximity*b.Proximity +
		m.weights.Availability*b.Availability

	return score, b
}

// Canned justification phrases, one per dimension plus a generic fallback.
const (
	reasonQuality      = "Highly rated with consistently strong reviews"
	reasonCategory     = "Popular spot matching your preferences"
	reasonProximity    = "Just a short trip from where you are"
	reasonAvailability = "Open right now and ready for visitors"
	reasonBudget       = "A great fit for your budget"
	reasonFallback     = "A nearby option worth a look"
)

// Reason picks the justification phrase for a breakdown. Dimensions scoring
// above the threshold qualify; the first qualifying dimension in priority
// order Quality > CategoryAffinity > Proximity > Availability > BudgetAffinity
// wins. The rule is fully deterministic.
func (m *Model) Reason(b Breakdown) string {
	switch {
	case b.Quality > reasonThreshold:
		return reasonQuality
	case b.CategoryAffinity > reasonThreshold:
		return reasonCategory
	case b.Proximity > reasonThreshold:
		return reasonProximity
	case b.Availability > reasonThreshold:
		return reasonAvailability
	case b.BudgetAffinity > reasonThreshold:
		return reasonBudget
	default:
		return reasonFallback
	}
}

// quality normalizes the rating and damps it for thin review histories so a
// 5.0 rating with one review cannot outrank a 4.5 rating with hundreds.
func quality(p model.Place) float64 {
	q := p.Rating / maxRating
	damp := math.Log10(float64(p.ReviewCount)+1) / reviewDampDivisor
	return q * math.Min(1, damp)
}

// categoryAffinity is 1 for a stated interest, neutral when the profile has
// no category preference at all, and 0 otherwise.
func categoryAffinity(profile model.UserProfile, p model.Place) float64 {
	if len(profile.Categories) == 0 {
		return neutral
	}
	if profile.WantsCategory(p.Category) {
		return 1
	}
	return 0
}

// budgetAffinity is 1 on an exact tier match, 0.5 for an adjacent tier and 0
// otherwise.
func budgetAffinity(profile model.UserProfile, p model.Place) float64 {
	tier := p.Tier()
	switch {
	case tier == profile.Budget:
		return 1
	case tier.Adjacent(profile.Budget):
		return neutral
	default:
		return 0
	}
}

// proximity is neutral without a location; otherwise it decays linearly to 0
// at the profile's preferred radius.
func proximity(profile model.UserProfile, distKm *float64) float64 {
	if distKm == nil {
		return neutral
	}
	if profile.RadiusKm <= 0 {
		return 0
	}
	return math.Max(0, math.Min(1, 1-*distKm/profile.RadiusKm))
}

// availability rewards places known to be open.
func availability(p model.Place) float64 {
	if p.OpenNow {
		return 1
	}
	return 0
}
