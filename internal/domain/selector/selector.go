// Package selector picks the next duel from a ranked candidate pool,
// applying variety and anti-repeat constraints over the recent history.
package selector

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/okian/faceoff/internal/domain/model"
	"github.com/okian/faceoff/internal/domain/pool"
	"github.com/okian/faceoff/internal/domain/recent"
)

// Selection tuning constants.
const (
	firstPoolCap   = 15 // at most this many candidates compete for the first slot
	firstPickSpan  = 5  // the first item is drawn uniformly from this many leaders
	opponentScan   = 10 // how deep to look for a pair not seen recently
	priorityShare  = 0.5
	affinityShare  = 0.5
	affinityScale  = 400.0
)

// Selector chooses pairs. The first-item pick is the second of the two
// deliberate randomized steps (the pool's jitter is the other), so the rand
// source is injectable for tests.
type Selector struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// Option applies a configuration option to the Selector.
type Option func(*Selector)

// WithSeed makes the first-item pick deterministic.
func WithSeed(seed int64) Option {
	return func(s *Selector) {
		s.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // variety, not crypto
	}
}

// New creates a Selector with a time-seeded rand source.
func New(opts ...Option) *Selector {
	s := &Selector{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // variety, not crypto
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Pick returns the next pair from candidates (already sorted by priority,
// highest first) and the recent-pair memory. It returns false when fewer
// than two candidates exist; it never blocks on exhausted novelty — if every
// nearby pairing was seen recently, the best-affinity opponent is returned
// anyway.
func (s *Selector) Pick(candidates []pool.Candidate, memory *recent.Memory) (model.Pair, bool) {
	if len(candidates) < pool.MinEligible {
		return model.Pair{}, false
	}

	first, rest := s.pickFirst(candidates, memory)

	opponents := rankOpponents(first, rest)
	chosen := opponents[0]
	scan := min(opponentScan, len(opponents))
	for i := 0; i < scan; i++ {
		if !memory.Seen(first.Item.ID, opponents[i].Item.ID) {
			chosen = opponents[i]
			break
		}
	}

	return model.Pair{First: first.Item, Second: chosen.Item}, true
}

// pickFirst draws the first slot uniformly from the top of the priority
// order, preferring candidates that have not led a recent duel. It returns
// the pick and the remaining candidates.
func (s *Selector) pickFirst(candidates []pool.Candidate, memory *recent.Memory) (pool.Candidate, []pool.Candidate) {
	top := min(firstPoolCap, len(candidates)/2)
	if top < 1 {
		top = 1
	}
	slice := candidates[:top]

	fresh := make([]pool.Candidate, 0, top)
	for _, c := range slice {
		if !memory.LedRecently(c.Item.ID) {
			fresh = append(fresh, c)
		}
	}
	// Everything in the slice led recently: fall back rather than stall.
	if len(fresh) == 0 {
		fresh = slice
	}

	span := min(firstPickSpan, len(fresh))
	first := fresh[s.intn(span)]

	rest := make([]pool.Candidate, 0, len(candidates)-1)
	for _, c := range candidates {
		if c.Item.ID != first.Item.ID {
			rest = append(rest, c)
		}
	}
	return first, rest
}

// rankOpponents orders the remaining candidates by match affinity: a blend
// of general priority and rating similarity that favors competitive,
// informative pairings.
func rankOpponents(first pool.Candidate, rest []pool.Candidate) []pool.Candidate {
	type scored struct {
		c     pool.Candidate
		score float64
	}
	ranked := make([]scored, len(rest))
	for i, c := range rest {
		similarity := math.Max(0, 1-math.Abs(first.Item.Rating-c.Item.Rating)/affinityScale)
		ranked[i] = scored{c: c, score: priorityShare*c.PriorityScore + affinityShare*similarity}
	}
	// Insertion sort keeps this simple; opponent lists are collection-sized.
	for i := 1; i < len(ranked); i++ {
		for j := i; j > 0 && ranked[j].score > ranked[j-1].score; j-- {
			ranked[j], ranked[j-1] = ranked[j-1], ranked[j]
		}
	}
	out := make([]pool.Candidate, len(ranked))
	for i, r := range ranked {
		out[i] = r.c
	}
	return out
}

func (s *Selector) intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}
