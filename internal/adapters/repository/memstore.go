package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/okian/faceoff/internal/domain/model"
	"github.com/okian/faceoff/pkg/metrics"
)

// MemoryStore implements Store with per-scope in-memory state behind one
// RWMutex. Reads may race writes from other requests in the same scope; the
// engine treats pool scores as advisory, so that is acceptable.
type MemoryStore struct {
	mu     sync.RWMutex
	scopes map[string]*scopeState
}

type scopeState struct {
	items   map[string]model.Item
	history []model.ComparisonRecord // oldest first
	state   *model.SystemState       // nil until the scope is initialized
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{scopes: make(map[string]*scopeState)}
}

// scope returns the state bucket for a scope, creating it on first touch.
// Callers must hold the write lock.
func (s *MemoryStore) scope(name string) *scopeState {
	sc, ok := s.scopes[name]
	if !ok {
		sc = &scopeState{items: make(map[string]model.Item)}
		s.scopes[name] = sc
	}
	return sc
}

// AddItem registers a new collection item.
func (s *MemoryStore) AddItem(_ context.Context, scope string, item model.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc := s.scope(scope)
	if _, exists := sc.items[item.ID]; exists {
		return fmt.Errorf("add %q: %w", item.ID, ErrConflict)
	}
	sc.items[item.ID] = item
	metrics.UpdateItemsTracked(s.countItemsLocked())
	return nil
}

// ListItems returns a scope's items sorted by id for stable iteration.
func (s *MemoryStore) ListItems(_ context.Context, scope string, category model.Category) ([]model.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sc, ok := s.scopes[scope]
	if !ok {
		return nil, nil
	}
	items := make([]model.Item, 0, len(sc.items))
	for _, item := range sc.items {
		if category != "" && item.Category != category {
			continue
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

// GetItem returns one item by id.
func (s *MemoryStore) GetItem(_ context.Context, scope, id string) (model.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sc, ok := s.scopes[scope]
	if !ok {
		return model.Item{}, fmt.Errorf("get %q: %w", id, ErrNotFound)
	}
	item, ok := sc.items[id]
	if !ok {
		return model.Item{}, fmt.Errorf("get %q: %w", id, ErrNotFound)
	}
	return item, nil
}

// BatchUpdateItems applies all updates or none: every id is checked before
// the first write, so a failed batch leaves the scope untouched.
func (s *MemoryStore) BatchUpdateItems(_ context.Context, scope string, items []model.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc, ok := s.scopes[scope]
	if !ok {
		return fmt.Errorf("batch update: unknown scope %q: %w", scope, ErrNotFound)
	}
	for _, item := range items {
		if _, exists := sc.items[item.ID]; !exists {
			return fmt.Errorf("batch update %q: %w", item.ID, ErrNotFound)
		}
	}
	for _, item := range items {
		sc.items[item.ID] = item
	}
	return nil
}

// AppendHistory adds a record to the end of the scope's log.
func (s *MemoryStore) AppendHistory(_ context.Context, scope string, rec model.ComparisonRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc := s.scope(scope)
	sc.history = append(sc.history, rec)
	return nil
}

// ListHistory returns up to limit records, newest first when asked.
func (s *MemoryStore) ListHistory(_ context.Context, scope string, limit int, mostRecentFirst bool) ([]model.ComparisonRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sc, ok := s.scopes[scope]
	if !ok {
		return nil, nil
	}
	records := make([]model.ComparisonRecord, len(sc.history))
	copy(records, sc.history)
	if mostRecentFirst {
		for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
			records[i], records[j] = records[j], records[i]
		}
	}
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// DeleteHistory removes records by id; unknown ids are ignored.
func (s *MemoryStore) DeleteHistory(_ context.Context, scope string, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc, ok := s.scopes[scope]
	if !ok {
		return nil
	}
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	kept := sc.history[:0]
	for _, rec := range sc.history {
		if _, gone := drop[rec.ID]; !gone {
			kept = append(kept, rec)
		}
	}
	sc.history = kept
	return nil
}

// ClearHistory drops the scope's entire comparison log.
func (s *MemoryStore) ClearHistory(_ context.Context, scope string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sc, ok := s.scopes[scope]; ok {
		sc.history = nil
	}
	return nil
}

// GetSystemState returns the scope's state if initialized.
func (s *MemoryStore) GetSystemState(_ context.Context, scope string) (model.SystemState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sc, ok := s.scopes[scope]
	if !ok || sc.state == nil {
		return model.SystemState{}, fmt.Errorf("system state for %q: %w", scope, ErrNotFound)
	}
	return *sc.state, nil
}

// PutSystemState stores the scope's state.
func (s *MemoryStore) PutSystemState(_ context.Context, scope string, state model.SystemState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc := s.scope(scope)
	sc.state = &state
	metrics.UpdateTotalComparisons(state.TotalComparisons)
	return nil
}

// ListScopes returns every known scope in stable order.
func (s *MemoryStore) ListScopes(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	scopes := make([]string, 0, len(s.scopes))
	for name := range s.scopes {
		scopes = append(scopes, name)
	}
	sort.Strings(scopes)
	return scopes, nil
}

func (s *MemoryStore) countItemsLocked() int {
	total := 0
	for _, sc := range s.scopes {
		total += len(sc.items)
	}
	return total
}
