// Package model contains domain models passed between layers.
package model

import "time"

// Rating defaults shared across the engine.
const (
	DefaultRating          = 1500.0
	DefaultRatingDeviation = 350.0
	VolatilityScale        = 400.0
)

// Category is the media kind of a rateable item.
type Category string

// Supported media categories.
const (
	CategoryMovie Category = "movie"
	CategoryShow  Category = "show"
	CategoryAnime Category = "anime"
	CategoryGame  Category = "game"
	CategoryBook  Category = "book"
)

// Valid reports whether c is one of the supported categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryMovie, CategoryShow, CategoryAnime, CategoryGame, CategoryBook:
		return true
	}
	return false
}

// Item is one entry in a user's collection, eligible for pairwise duels.
// Rating fields are always present; defaults are applied when the item
// enters the collection and only the recorder mutates them afterwards.
type Item struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Category    Category `json:"category"`
	ExternalRef string   `json:"external_ref"` // catalog id; empty means not pairable

	Rating          float64 `json:"rating"`
	MatchCount      int     `json:"match_count"`
	RatingDeviation float64 `json:"rating_deviation"`
	Volatility      float64 `json:"volatility"`
	Provisional     bool    `json:"provisional"`

	// Mirrors of rating/matchCount scoped to the item's category,
	// updated only when a resolved pair shares the category.
	CategoryRating     float64 `json:"category_rating"`
	CategoryMatchCount int     `json:"category_match_count"`

	LastComparedAt time.Time `json:"last_compared_at"`
}

// Initialized reports whether the item carries rating fields.
// A zero rating is outside the representable range once defaults
// are applied, so it marks an item created by external glue.
func (i Item) Initialized() bool {
	return i.Rating != 0
}

// Pairable reports whether the item may enter a candidate pool.
func (i Item) Pairable() bool {
	return i.ExternalRef != ""
}

// ApplyDefaults sets the documented rating defaults on a fresh item.
func (i *Item) ApplyDefaults() {
	i.Rating = DefaultRating
	i.MatchCount = 0
	i.RatingDeviation = DefaultRatingDeviation
	i.Volatility = DefaultRatingDeviation / VolatilityScale
	i.Provisional = true
	i.CategoryRating = DefaultRating
	i.CategoryMatchCount = 0
	i.LastComparedAt = time.Time{}
}

// SystemState holds the per-scope tunables and the comparison counter.
type SystemState struct {
	TotalComparisons     int     `json:"total_comparisons"`
	ExplorationWeight    float64 `json:"exploration_weight"`
	ProvisionalThreshold int     `json:"provisional_threshold"`
	DecayRate            float64 `json:"decay_rate"`
	Tau                  float64 `json:"tau"`
}

// System defaults. Tau follows the Glicko-2 convention; it is stored for
// configuration stability and not consumed by the update formulas.
const (
	DefaultExplorationWeight    = 1.4142135623730951 // sqrt(2)
	DefaultProvisionalThreshold = 15
	DefaultDecayRate            = 0.05
	DefaultTau                  = 0.5
)

// DefaultSystemState returns a fresh state with documented defaults.
func DefaultSystemState() SystemState {
	return SystemState{
		TotalComparisons:     0,
		ExplorationWeight:    DefaultExplorationWeight,
		ProvisionalThreshold: DefaultProvisionalThreshold,
		DecayRate:            DefaultDecayRate,
		Tau:                  DefaultTau,
	}
}

// ComparisonRecord is one resolved pair, kept in a short rolling window
// so the selector can avoid immediate repeats.
type ComparisonRecord struct {
	ID       string    `json:"id"`
	FirstID  string    `json:"first_id"`
	SecondID string    `json:"second_id"`
	At       time.Time `json:"at"`
}

// Side captures one participant's rating change in an outcome.
type Side struct {
	ID        string  `json:"id"`
	OldRating float64 `json:"old_rating"`
	NewRating float64 `json:"new_rating"`
	Delta     float64 `json:"delta"`
}

// ComparisonOutcome is the result of resolving one duel, returned to the
// caller for display and applied to the store by the recorder.
type ComparisonOutcome struct {
	Winner Side `json:"winner"`
	Loser  Side `json:"loser"`
	Draw   bool `json:"draw"`
}

// RankedItem is a collection item with its 1-indexed rank.
type RankedItem struct {
	Rank int  `json:"rank"`
	Item Item `json:"item"`
}

// InitResult reports what system initialization did.
type InitResult struct {
	Created          bool `json:"created"`
	ItemsInitialized int  `json:"items_initialized"`
}

// ResetResult reports what a system reset did.
type ResetResult struct {
	ItemsReset int `json:"items_reset"`
}

// Pair is the two items offered together for a single user decision.
type Pair struct {
	First  Item `json:"first"`
	Second Item `json:"second"`
}
