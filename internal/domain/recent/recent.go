// Package recent tracks which pairs were offered lately so the selector can
// avoid immediate repeats and lead-slot monotony.
package recent

import (
	"strings"

	"github.com/okian/faceoff/internal/domain/model"
)

// firstSlotWindow bounds how many of the newest records feed the
// recent-firsts set.
const firstSlotWindow = 5

// Memory is a read-only view over the rolling comparison history. It is
// rebuilt per selection from the persisted window, so a slightly stale view
// is acceptable and no locking is needed.
type Memory struct {
	seen   map[string]struct{}
	firsts map[string]struct{}
}

// FromHistory builds a Memory from records ordered most recent first.
func FromHistory(records []model.ComparisonRecord) *Memory {
	m := &Memory{
		seen:   make(map[string]struct{}, len(records)),
		firsts: make(map[string]struct{}, firstSlotWindow),
	}
	for i, rec := range records {
		m.seen[PairKey(rec.FirstID, rec.SecondID)] = struct{}{}
		if i < firstSlotWindow {
			m.firsts[rec.FirstID] = struct{}{}
		}
	}
	return m
}

// Seen reports whether the pair (a,b) appears in the window, in either order.
func (m *Memory) Seen(a, b string) bool {
	_, ok := m.seen[PairKey(a, b)]
	return ok
}

// LedRecently reports whether id held the first slot in the newest records.
func (m *Memory) LedRecently(id string) bool {
	_, ok := m.firsts[id]
	return ok
}

// PairKey returns an order-independent key for two item ids.
func PairKey(a, b string) string {
	if strings.Compare(a, b) > 0 {
		a, b = b, a
	}
	return a + "|" + b
}
