package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/okian/faceoff/internal/domain/model"
	"github.com/okian/faceoff/internal/domain/rating"
	"github.com/okian/faceoff/pkg/logger"
	"github.com/okian/faceoff/pkg/metrics"
)

// RecordComparison applies one resolved duel: new ratings for both sides,
// match counters, deviation shrink, provisional flags, category mirrors, the
// scope counter, and the history record. Item updates go through one atomic
// batch, so a failure leaves both sides untouched. History pruning is
// best-effort and never surfaces to the caller.
func (s *Service) RecordComparison(ctx context.Context, scope, winnerID, loserID string, isDraw bool) (model.ComparisonOutcome, error) {
	if winnerID == "" || loserID == "" || winnerID == loserID {
		return model.ComparisonOutcome{}, fmt.Errorf("winner %q vs loser %q: %w", winnerID, loserID, ErrInvalidArgument)
	}
	start := s.now()

	winner, err := s.store.GetItem(ctx, scope, winnerID)
	if err != nil {
		return model.ComparisonOutcome{}, err
	}
	loser, err := s.store.GetItem(ctx, scope, loserID)
	if err != nil {
		return model.ComparisonOutcome{}, err
	}
	state, err := s.loadState(ctx, scope)
	if err != nil {
		return model.ComparisonOutcome{}, err
	}

	outcome := s.resolver.Resolve(
		winnerID, loserID,
		winner.Rating, loser.Rating,
		winner.MatchCount, loser.MatchCount,
		state, isDraw,
	)

	sameCategory := winner.Category == loser.Category
	s.applyOutcome(&winner, outcome.Winner.NewRating, sameCategory, state)
	s.applyOutcome(&loser, outcome.Loser.NewRating, sameCategory, state)

	if err := s.store.BatchUpdateItems(ctx, scope, []model.Item{winner, loser}); err != nil {
		return model.ComparisonOutcome{}, err
	}

	state.TotalComparisons++
	if err := s.store.PutSystemState(ctx, scope, state); err != nil {
		return model.ComparisonOutcome{}, err
	}

	record := model.ComparisonRecord{
		ID:       uuid.NewString(),
		FirstID:  winnerID,
		SecondID: loserID,
		At:       s.now(),
	}
	if err := s.store.AppendHistory(ctx, scope, record); err != nil {
		return model.ComparisonOutcome{}, err
	}
	s.pruneHistory(ctx, scope)

	metrics.RecordComparison(isDraw, outcome.Winner.Delta)
	metrics.RecordRecordLatency(float64(s.now().Sub(start).Nanoseconds()) / msPerNs)
	s.logger.Debug(ctx, "comparison recorded",
		logger.String("scope", scope),
		logger.String("winner", winnerID),
		logger.String("loser", loserID),
		logger.Bool("draw", isDraw),
		logger.Float64("winnerDelta", outcome.Winner.Delta))
	return outcome, nil
}

// applyOutcome mutates one side's persisted rating fields after a duel.
func (s *Service) applyOutcome(item *model.Item, newRating float64, sameCategory bool, state model.SystemState) {
	item.MatchCount++
	item.Rating = newRating
	item.RatingDeviation = rating.NextDeviation(item.MatchCount)
	item.Provisional = item.MatchCount < state.ProvisionalThreshold
	item.LastComparedAt = s.now()
	if sameCategory {
		item.CategoryRating = newRating
		item.CategoryMatchCount++
	}
}

// pruneHistory trims the rolling window. Failures are logged and swallowed:
// the comparison itself is already durably recorded.
func (s *Service) pruneHistory(ctx context.Context, scope string) {
	records, err := s.store.ListHistory(ctx, scope, 0, false)
	if err != nil {
		metrics.RecordPruneFailure()
		s.logger.Warn(ctx, "history prune list failed", logger.Error(err))
		return
	}
	excess := len(records) - s.historyWindow
	if excess <= 0 {
		return
	}
	ids := make([]string, 0, excess)
	for _, rec := range records[:excess] { // oldest first
		ids = append(ids, rec.ID)
	}
	if err := s.store.DeleteHistory(ctx, scope, ids); err != nil {
		metrics.RecordPruneFailure()
		s.logger.Warn(ctx, "history prune failed", logger.Error(err))
		return
	}
	metrics.RecordHistoryPruned(len(ids))
}
