// Package maintenance runs the background deviation decay sweep: confidence
// in an idle item's rating fades, so its RD grows back toward the default.
// The sweep is a housekeeping job; it never blocks or fails a comparison.
package maintenance

import (
	"context"
	"math"
	"time"

	"github.com/okian/faceoff/internal/adapters/repository"
	"github.com/okian/faceoff/internal/domain/model"
	"github.com/okian/faceoff/internal/domain/rating"
	"github.com/okian/faceoff/pkg/logger"
	"github.com/okian/faceoff/pkg/metrics"
)

// Sweep timing defaults.
const (
	defaultInterval = 24 * time.Hour
	idleAfter       = 24 * time.Hour
)

// Sweeper periodically grows the rating deviation of idle items by the
// scope's configured decay rate.
type Sweeper struct {
	store    repository.Store
	interval time.Duration
	now      func() time.Time
	logger   logger.Logger

	shutdown chan struct{}
	done     chan struct{}
}

// Option applies a configuration option to the Sweeper.
type Option func(*Sweeper)

// WithInterval sets the sweep interval.
func WithInterval(interval time.Duration) Option {
	return func(s *Sweeper) {
		if interval > 0 {
			s.interval = interval
		}
	}
}

// WithClock injects a time source for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Sweeper) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Sweeper) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSweeper creates a Sweeper over the given store.
func NewSweeper(store repository.Store, opts ...Option) *Sweeper {
	s := &Sweeper{
		store:    store,
		interval: defaultInterval,
		now:      time.Now,
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("maintenance")
	}
	return s
}

// Run sweeps on the configured interval until ctx is canceled or Shutdown
// is called.
func (s *Sweeper) Run(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.shutdown:
			return
		case <-ticker.C:
			if err := s.SweepAll(ctx); err != nil {
				s.logger.Error(ctx, "decay sweep failed", logger.Error(err))
			}
		}
	}
}

// Shutdown stops the sweeper and waits for the loop to exit.
func (s *Sweeper) Shutdown(ctx context.Context) error {
	close(s.shutdown)
	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SweepAll applies decay across every known scope.
func (s *Sweeper) SweepAll(ctx context.Context) error {
	scopes, err := s.store.ListScopes(ctx)
	if err != nil {
		return err
	}
	for _, scope := range scopes {
		if err := s.sweepScope(ctx, scope); err != nil {
			s.logger.Warn(ctx, "scope sweep failed",
				logger.String("scope", scope), logger.Error(err))
		}
	}
	return nil
}

// sweepScope recomputes RD for each idle item from its experience schedule
// and idle time, so repeated sweeps are idempotent for a given clock.
func (s *Sweeper) sweepScope(ctx context.Context, scope string) error {
	state, err := s.store.GetSystemState(ctx, scope)
	if err != nil {
		// Uninitialized scopes carry no tunables; skip them.
		return nil //nolint:nilerr // missing state means nothing to decay
	}
	if state.DecayRate <= 0 {
		return nil
	}
	items, err := s.store.ListItems(ctx, scope, "")
	if err != nil {
		return err
	}

	now := s.now()
	var decayed []model.Item
	for _, item := range items {
		if item.LastComparedAt.IsZero() {
			continue
		}
		idleDays := int(now.Sub(item.LastComparedAt) / idleAfter)
		if idleDays < 1 {
			continue
		}
		base := rating.NextDeviation(item.MatchCount)
		target := math.Min(model.DefaultRatingDeviation,
			base*math.Pow(1+state.DecayRate, float64(idleDays)))
		if target <= item.RatingDeviation {
			continue
		}
		item.RatingDeviation = target
		decayed = append(decayed, item)
	}
	if len(decayed) == 0 {
		return nil
	}
	if err := s.store.BatchUpdateItems(ctx, scope, decayed); err != nil {
		return err
	}

	metrics.RecordDecaySweep(len(decayed))
	s.logger.Info(ctx, "deviation decay applied",
		logger.String("scope", scope),
		logger.Int("items", len(decayed)))
	return nil
}
