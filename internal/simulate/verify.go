package simulate

import (
	"fmt"

	"github.com/okian/faceoff/internal/domain/model"
)

// Report collects what a simulation run did and saw.
type Report struct {
	Scope             string
	Created           bool
	ItemsSeeded       []string
	ComparisonsPlayed int
	Rankings          []model.RankedItem
}

// Verify checks the ranking invariants the engine promises: ranks are
// 1-indexed and dense, ratings are sorted descending, every deviation stays
// positive, and match counts add up to two participants per comparison.
func (r *Report) Verify() error {
	if len(r.Rankings) != len(r.ItemsSeeded) {
		return fmt.Errorf("expected %d ranked items, got %d", len(r.ItemsSeeded), len(r.Rankings))
	}

	totalMatches := 0
	for i, ranked := range r.Rankings {
		if ranked.Rank != i+1 {
			return fmt.Errorf("rank at position %d is %d, want %d", i, ranked.Rank, i+1)
		}
		if i > 0 && ranked.Item.Rating > r.Rankings[i-1].Item.Rating {
			return fmt.Errorf("ratings not descending at rank %d", ranked.Rank)
		}
		if ranked.Item.RatingDeviation <= 0 {
			return fmt.Errorf("item %s has non-positive deviation %.2f", ranked.Item.ID, ranked.Item.RatingDeviation)
		}
		if ranked.Item.MatchCount < 0 {
			return fmt.Errorf("item %s has negative match count", ranked.Item.ID)
		}
		totalMatches += ranked.Item.MatchCount
	}

	if want := 2 * r.ComparisonsPlayed; totalMatches != want {
		return fmt.Errorf("match counts sum to %d, want %d", totalMatches, want)
	}
	return nil
}
