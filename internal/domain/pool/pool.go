// Package pool ranks a user's collection into a candidate list for the next
// duel, blending exploration need, rating uncertainty, and rating magnitude.
package pool

import (
	"math"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/okian/faceoff/internal/domain/model"
)

// Priority blend weights and normalization constants.
const (
	explorationShare = 0.5
	uncertaintyShare = 0.3
	magnitudeShare   = 0.2

	explorationWindow = 30     // matches after which exploration need bottoms out
	magnitudePivot    = 1400.0 // ratings above this get a mild refinement bias
	magnitudeScale    = 200.0

	jitterMin = 0.9
	jitterMax = 1.1

	// MinEligible is the smallest pool that can produce a pair.
	MinEligible = 2
)

// Candidate is an item annotated with its selection scores. PriorityScore is
// the primary ranking signal; UCBScore is kept for alternative strategies.
type Candidate struct {
	Item          model.Item
	PriorityScore float64
	UCBScore      float64
}

// Ranker builds ranked candidate lists. The jitter source is seedable so
// selection stays testable.
type Ranker struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// Option applies a configuration option to the Ranker.
type Option func(*Ranker)

// WithSeed makes the priority jitter deterministic.
func WithSeed(seed int64) Option {
	return func(r *Ranker) {
		r.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // jitter, not crypto
	}
}

// NewRanker creates a Ranker with a time-seeded jitter source.
func NewRanker(opts ...Option) *Ranker {
	r := &Ranker{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // jitter, not crypto
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Build returns candidates sorted by priority, highest first. Items outside
// the category filter, items without an external catalog reference, and
// uninitialized items are excluded. A pool smaller than MinEligible is
// returned as nil: the caller treats that as an insufficient-items state,
// not a failure.
func (r *Ranker) Build(items []model.Item, category model.Category, state model.SystemState) []Candidate {
	candidates := make([]Candidate, 0, len(items))
	for _, item := range items {
		if category != "" && item.Category != category {
			continue
		}
		if !item.Pairable() || !item.Initialized() {
			continue
		}
		candidates = append(candidates, Candidate{
			Item:          item,
			PriorityScore: r.priority(item),
			UCBScore:      ucb(item, state),
		})
	}
	if len(candidates) < MinEligible {
		return nil
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].PriorityScore > candidates[j].PriorityScore
	})
	return candidates
}

// priority blends the three normalized signals and applies a random jitter
// in [jitterMin, jitterMax] so repeated builds do not cycle deterministically.
func (r *Ranker) priority(item model.Item) float64 {
	exploration := math.Max(1, float64(explorationWindow-item.MatchCount)) / explorationWindow
	uncertainty := item.RatingDeviation / model.DefaultRatingDeviation
	magnitude := (item.Rating - magnitudePivot) / magnitudeScale

	score := explorationShare*exploration + uncertaintyShare*uncertainty + magnitudeShare*magnitude
	return score * r.jitter()
}

func (r *Ranker) jitter() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return jitterMin + r.rng.Float64()*(jitterMax-jitterMin)
}

// ucb is the classic upper-confidence-bound term over the scope-wide
// comparison counter. Exposed on every candidate, not used for the primary
// ordering.
func ucb(item model.Item, state model.SystemState) float64 {
	bonus := math.Sqrt(math.Log(float64(state.TotalComparisons)+1) / float64(item.MatchCount+1))
	return item.Rating + state.ExplorationWeight*bonus
}
