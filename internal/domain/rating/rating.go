// Package rating implements the pure comparison math: logistic expectation,
// experience-tiered learning rates, and the rating update for one resolved
// duel. Nothing here touches I/O or shared state.
package rating

import (
	"math"

	"github.com/okian/faceoff/internal/domain/model"
)

// Learning-rate tiers and update constants.
const (
	defaultBaseRate = 32.0

	freshTierCeiling  = 5
	youngTierCeiling  = 10
	veteranTierFloor  = 50
	freshMultiplier   = 2.0
	youngMultiplier   = 1.5
	settlingMult      = 1.2
	veteranMultiplier = 0.8

	ratingScale   = 400.0
	swingCapRatio = 0.5 // expected results shrink K by up to 50%, upsets grow it
	minSwing      = 0.5
	maxSwing      = 1.5
)

// Option applies a configuration option to the Resolver.
type Option func(*Resolver)

// WithBaseRate overrides the base K-factor.
func WithBaseRate(k float64) Option {
	return func(r *Resolver) {
		if k > 0 {
			r.baseRate = k
		}
	}
}

// Resolver computes rating updates for resolved comparisons.
type Resolver struct {
	baseRate float64
}

// NewResolver creates a Resolver with the conventional base K of 32.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{baseRate: defaultBaseRate}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ExpectedOutcome returns the probability that a rating of a beats a rating
// of b under the standard logistic model. The result is in (0,1) and
// ExpectedOutcome(a,b)+ExpectedOutcome(b,a) == 1.
func ExpectedOutcome(a, b float64) float64 {
	return 1.0 / (1.0 + math.Pow(10, (b-a)/ratingScale))
}

// AdjustedRate returns the learning rate for an item with the given match
// count. New items take large corrective steps; long-tenured items barely
// move on a single result.
func (r *Resolver) AdjustedRate(matchCount int, state model.SystemState) float64 {
	switch {
	case matchCount < freshTierCeiling:
		return r.baseRate * freshMultiplier
	case matchCount < youngTierCeiling:
		return r.baseRate * youngMultiplier
	case matchCount < state.ProvisionalThreshold:
		return r.baseRate * settlingMult
	case matchCount >= veteranTierFloor:
		return r.baseRate * veteranMultiplier
	default:
		return r.baseRate
	}
}

// Resolve computes the new rating pair for one comparison. winnerID/loserID
// are carried through so the outcome is self-describing. On a draw the
// outcome values are (0.5, 0.5) and the swing multiplier is skipped.
func (r *Resolver) Resolve(
	winnerID, loserID string,
	winnerRating, loserRating float64,
	winnerMatches, loserMatches int,
	state model.SystemState,
	isDraw bool,
) model.ComparisonOutcome {
	expectedWin := ExpectedOutcome(winnerRating, loserRating)
	expectedLoss := ExpectedOutcome(loserRating, winnerRating)

	winnerRate := r.AdjustedRate(winnerMatches, state)
	loserRate := r.AdjustedRate(loserMatches, state)

	winnerOutcome, loserOutcome := 1.0, 0.0
	if isDraw {
		winnerOutcome, loserOutcome = 0.5, 0.5
	} else {
		// Predictable results move ratings less; upsets move them more.
		diffFactor := math.Abs(winnerRating-loserRating) / ratingScale
		swing := 1.0 + swingCapRatio*diffFactor
		if winnerRating >= loserRating {
			swing = 1.0 - swingCapRatio*diffFactor
		}
		swing = clamp(swing, minSwing, maxSwing)
		winnerRate *= swing
		loserRate *= swing
	}

	newWinner := roundTenth(winnerRating + winnerRate*(winnerOutcome-expectedWin))
	newLoser := roundTenth(loserRating + loserRate*(loserOutcome-expectedLoss))

	return model.ComparisonOutcome{
		Winner: model.Side{
			ID:        winnerID,
			OldRating: winnerRating,
			NewRating: newWinner,
			Delta:     roundTenth(newWinner - winnerRating),
		},
		Loser: model.Side{
			ID:        loserID,
			OldRating: loserRating,
			NewRating: newLoser,
			Delta:     roundTenth(newLoser - loserRating),
		},
		Draw: isDraw,
	}
}

// NextDeviation shrinks RD monotonically with experience. It approaches a
// floor asymptotically and never reaches zero.
func NextDeviation(matchCount int) float64 {
	return model.DefaultRatingDeviation / (1.0 + float64(matchCount)/50.0)
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
