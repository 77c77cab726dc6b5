// Package app provides the ranking service that implements the operations
// exposed by the HTTP API: pair selection, comparison recording, system
// lifecycle, and ranked reads.
package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/faceoff/internal/adapters/maintenance"
	"github.com/okian/faceoff/internal/adapters/repository"
	"github.com/okian/faceoff/internal/domain/model"
	"github.com/okian/faceoff/internal/domain/pool"
	"github.com/okian/faceoff/internal/domain/rating"
	"github.com/okian/faceoff/internal/domain/recent"
	"github.com/okian/faceoff/internal/domain/selector"
	"github.com/okian/faceoff/pkg/logger"
	"github.com/okian/faceoff/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultHistoryWindow = 20
	msPerNs              = 1e6
)

// Service implements the ranking engine operations over a Store.
type Service struct {
	mu sync.RWMutex

	store    repository.Store
	ranker   *pool.Ranker
	selector *selector.Selector
	resolver *rating.Resolver
	sweeper  *maintenance.Sweeper

	// Configuration
	historyWindow        int
	baseRate             float64
	explorationWeight    float64
	provisionalThreshold int
	decayRate            float64
	tau                  float64
	sweepInterval        time.Duration
	seed                 int64
	seeded               bool

	started bool
	now     func() time.Time
	logger  logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the backing store. Defaults to an in-memory store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithHistoryWindow bounds the rolling comparison log per scope.
func WithHistoryWindow(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.historyWindow = n
		}
	}
}

// WithBaseRate overrides the base K-factor.
func WithBaseRate(k float64) Option {
	return func(s *Service) {
		if k > 0 {
			s.baseRate = k
		}
	}
}

// WithExplorationWeight sets the UCB exploration weight stored in fresh
// system states.
func WithExplorationWeight(w float64) Option {
	return func(s *Service) {
		if w > 0 {
			s.explorationWeight = w
		}
	}
}

// WithProvisionalThreshold sets the match count at which ratings stop being
// provisional.
func WithProvisionalThreshold(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.provisionalThreshold = n
		}
	}
}

// WithDecayRate sets the fractional daily RD growth for idle items.
func WithDecayRate(rate float64) Option {
	return func(s *Service) {
		if rate >= 0 {
			s.decayRate = rate
		}
	}
}

// WithTau sets the stored volatility constraint constant.
func WithTau(tau float64) Option {
	return func(s *Service) {
		if tau > 0 {
			s.tau = tau
		}
	}
}

// WithDecaySweepInterval enables the background decay sweeper.
func WithDecaySweepInterval(interval time.Duration) Option {
	return func(s *Service) {
		if interval > 0 {
			s.sweepInterval = interval
		}
	}
}

// WithSeed makes both randomized selection steps deterministic.
func WithSeed(seed int64) Option {
	return func(s *Service) {
		s.seed = seed
		s.seeded = true
	}
}

// WithClock injects a time source for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		historyWindow:        defaultHistoryWindow,
		explorationWeight:    model.DefaultExplorationWeight,
		provisionalThreshold: model.DefaultProvisionalThreshold,
		decayRate:            model.DefaultDecayRate,
		tau:                  model.DefaultTau,
		now:                  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("app")
	}
	if s.store == nil {
		s.store = repository.NewMemoryStore()
		s.logger.Info(ctx, "using in-memory store")
	}

	var ratingOpts []rating.Option
	if s.baseRate > 0 {
		ratingOpts = append(ratingOpts, rating.WithBaseRate(s.baseRate))
	}
	s.resolver = rating.NewResolver(ratingOpts...)

	if s.seeded {
		s.ranker = pool.NewRanker(pool.WithSeed(s.seed))
		s.selector = selector.New(selector.WithSeed(s.seed + 1))
	} else {
		s.ranker = pool.NewRanker()
		s.selector = selector.New()
	}

	if s.sweepInterval > 0 {
		s.sweeper = maintenance.NewSweeper(s.store,
			maintenance.WithInterval(s.sweepInterval),
			maintenance.WithClock(s.now),
			maintenance.WithLogger(s.logger.Named("decay")),
		)
		go s.sweeper.Run(ctx)
		s.logger.Info(ctx, "decay sweeper started",
			logger.Duration("interval", s.sweepInterval))
	}

	s.started = true
	s.logger.Info(ctx, "ranking service started",
		logger.Int("historyWindow", s.historyWindow),
		logger.Int("provisionalThreshold", s.provisionalThreshold))
	return nil
}

// Stop shuts the service down.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	if s.sweeper != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.sweeper.Shutdown(ctx); err != nil {
			s.logger.Warn(ctx, "decay sweeper shutdown", logger.Error(err))
		}
	}
	s.started = false
	s.logger.Info(context.Background(), "ranking service stopped")
}

// AddItem registers a new collection item with default rating fields.
// This is host glue: item CRUD belongs to the surrounding application, but
// the in-memory store needs an entry point.
func (s *Service) AddItem(ctx context.Context, scope, title string, category model.Category, externalRef string) (model.Item, error) {
	if strings.TrimSpace(title) == "" {
		return model.Item{}, fmt.Errorf("empty title: %w", ErrInvalidArgument)
	}
	if !category.Valid() {
		return model.Item{}, fmt.Errorf("category %q: %w", category, ErrInvalidArgument)
	}
	item := model.Item{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(title),
		Category:    category,
		ExternalRef: externalRef,
	}
	item.ApplyDefaults()
	if err := s.store.AddItem(ctx, scope, item); err != nil {
		return model.Item{}, err
	}
	return item, nil
}

// ListItems returns a scope's items.
func (s *Service) ListItems(ctx context.Context, scope string, category model.Category) ([]model.Item, error) {
	return s.store.ListItems(ctx, scope, category)
}

// SelectNextPair picks the next two items to compare. It returns
// ErrInsufficientItems when fewer than two items are eligible; callers
// should treat that as a normal state, not a failure.
func (s *Service) SelectNextPair(ctx context.Context, scope string, category model.Category) (model.Pair, error) {
	if category != "" && !category.Valid() {
		return model.Pair{}, fmt.Errorf("category %q: %w", category, ErrInvalidArgument)
	}
	start := s.now()

	state, err := s.loadState(ctx, scope)
	if err != nil {
		return model.Pair{}, err
	}
	items, err := s.store.ListItems(ctx, scope, "")
	if err != nil {
		return model.Pair{}, err
	}

	candidates := s.ranker.Build(items, category, state)
	if candidates == nil {
		metrics.RecordInsufficientPool()
		return model.Pair{}, ErrInsufficientItems
	}

	history, err := s.store.ListHistory(ctx, scope, s.historyWindow, true)
	if err != nil {
		// A missing window only weakens anti-repeat; selection still works.
		s.logger.Warn(ctx, "history unavailable for selection", logger.Error(err))
		history = nil
	}

	pair, ok := s.selector.Pick(candidates, recent.FromHistory(history))
	if !ok {
		metrics.RecordInsufficientPool()
		return model.Pair{}, ErrInsufficientItems
	}

	metrics.RecordPairSelected()
	metrics.RecordSelectionLatency(float64(s.now().Sub(start).Nanoseconds()) / msPerNs)
	return pair, nil
}

// RankedItems returns items with at least minMatches comparisons, sorted by
// rating descending with 1-indexed ranks.
func (s *Service) RankedItems(ctx context.Context, scope string, category model.Category, limit, minMatches int) ([]model.RankedItem, error) {
	if category != "" && !category.Valid() {
		return nil, fmt.Errorf("category %q: %w", category, ErrInvalidArgument)
	}
	items, err := s.store.ListItems(ctx, scope, category)
	if err != nil {
		return nil, err
	}

	eligible := make([]model.Item, 0, len(items))
	for _, item := range items {
		if item.Initialized() && item.MatchCount >= minMatches {
			eligible = append(eligible, item)
		}
	}
	sort.Slice(eligible, func(i, j int) bool {
		if eligible[i].Rating != eligible[j].Rating {
			return eligible[i].Rating > eligible[j].Rating
		}
		return eligible[i].ID < eligible[j].ID
	})
	if limit > 0 && len(eligible) > limit {
		eligible = eligible[:limit]
	}

	ranked := make([]model.RankedItem, len(eligible))
	for i, item := range eligible {
		ranked[i] = model.RankedItem{Rank: i + 1, Item: item}
	}
	return ranked, nil
}

// InitializeSystem creates the scope's system state if absent and back-fills
// rating fields on items that lack them. Idempotent: re-running reports
// created=false and touches nothing that was already initialized.
func (s *Service) InitializeSystem(ctx context.Context, scope string) (model.InitResult, error) {
	var result model.InitResult

	_, err := s.store.GetSystemState(ctx, scope)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		if putErr := s.store.PutSystemState(ctx, scope, s.freshState()); putErr != nil {
			return result, putErr
		}
		result.Created = true
		metrics.RecordSystemInitialized()
	case err != nil:
		return result, err
	}

	items, err := s.store.ListItems(ctx, scope, "")
	if err != nil {
		return result, err
	}
	var backfilled []model.Item
	for _, item := range items {
		if item.Initialized() {
			continue
		}
		item.ApplyDefaults()
		backfilled = append(backfilled, item)
	}
	if len(backfilled) > 0 {
		if err := s.store.BatchUpdateItems(ctx, scope, backfilled); err != nil {
			return result, err
		}
	}
	result.ItemsInitialized = len(backfilled)

	s.logger.Info(ctx, "system initialized",
		logger.String("scope", scope),
		logger.Bool("created", result.Created),
		logger.Int("itemsInitialized", result.ItemsInitialized))
	return result, nil
}

// ResetSystem puts every item's rating fields back to defaults, zeroes the
// comparison counter, and clears the history. Irreversible; the transport
// layer gates it behind an explicit operation.
func (s *Service) ResetSystem(ctx context.Context, scope string) (model.ResetResult, error) {
	items, err := s.store.ListItems(ctx, scope, "")
	if err != nil {
		return model.ResetResult{}, err
	}
	for i := range items {
		items[i].ApplyDefaults()
	}
	if len(items) > 0 {
		if err := s.store.BatchUpdateItems(ctx, scope, items); err != nil {
			return model.ResetResult{}, err
		}
	}
	if err := s.store.PutSystemState(ctx, scope, s.freshState()); err != nil {
		return model.ResetResult{}, err
	}
	if err := s.store.ClearHistory(ctx, scope); err != nil {
		return model.ResetResult{}, err
	}

	metrics.RecordSystemReset()
	s.logger.Info(ctx, "system reset",
		logger.String("scope", scope),
		logger.Int("itemsReset", len(items)))
	return model.ResetResult{ItemsReset: len(items)}, nil
}

// Stats returns service statistics for monitoring.
func (s *Service) Stats(ctx context.Context, scope string) map[string]any {
	stats := map[string]any{
		"historyWindow":        s.historyWindow,
		"provisionalThreshold": s.provisionalThreshold,
	}
	if state, err := s.store.GetSystemState(ctx, scope); err == nil {
		stats["totalComparisons"] = state.TotalComparisons
		stats["explorationWeight"] = state.ExplorationWeight
	}
	if items, err := s.store.ListItems(ctx, scope, ""); err == nil {
		stats["items"] = len(items)
	}
	return stats
}

// freshState builds a zero-counter state from the configured tunables.
func (s *Service) freshState() model.SystemState {
	return model.SystemState{
		TotalComparisons:     0,
		ExplorationWeight:    s.explorationWeight,
		ProvisionalThreshold: s.provisionalThreshold,
		DecayRate:            s.decayRate,
		Tau:                  s.tau,
	}
}

// loadState returns the scope's state, or the configured defaults when the
// scope has not been explicitly initialized. Selection must not force a
// lifecycle call first.
func (s *Service) loadState(ctx context.Context, scope string) (model.SystemState, error) {
	state, err := s.store.GetSystemState(ctx, scope)
	if errors.Is(err, repository.ErrNotFound) {
		return s.freshState(), nil
	}
	if err != nil {
		return model.SystemState{}, err
	}
	return state, nil
}
