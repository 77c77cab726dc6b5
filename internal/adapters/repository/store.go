// Package repository defines the item/history/state store contract the
// engine runs against, plus an in-memory implementation. Any transactional
// key-value or document store can stand in, provided BatchUpdateItems stays
// atomic across all entries.
package repository

import (
	"context"

	"github.com/okian/faceoff/internal/domain/model"
)

// Store provides read/write access to one or more user scopes.
type Store interface {
	// AddItem registers a new collection item. Returns ErrConflict if the
	// id already exists in the scope.
	AddItem(ctx context.Context, scope string, item model.Item) error

	// ListItems returns a scope's items, optionally filtered by category.
	ListItems(ctx context.Context, scope string, category model.Category) ([]model.Item, error)

	// GetItem returns one item. Returns ErrNotFound if the id is unknown.
	GetItem(ctx context.Context, scope, id string) (model.Item, error)

	// BatchUpdateItems replaces the stored state of every given item as a
	// single atomic unit: if any id is unknown, nothing is applied and
	// ErrNotFound is returned.
	BatchUpdateItems(ctx context.Context, scope string, items []model.Item) error

	// AppendHistory adds a comparison record to the scope's rolling log.
	AppendHistory(ctx context.Context, scope string, rec model.ComparisonRecord) error

	// ListHistory returns up to limit records; limit <= 0 means all.
	ListHistory(ctx context.Context, scope string, limit int, mostRecentFirst bool) ([]model.ComparisonRecord, error)

	// DeleteHistory removes records by id. Unknown ids are ignored.
	DeleteHistory(ctx context.Context, scope string, ids []string) error

	// GetSystemState returns the scope's state. Returns ErrNotFound until
	// the scope has been initialized.
	GetSystemState(ctx context.Context, scope string) (model.SystemState, error)

	// PutSystemState stores the scope's state, creating it if absent.
	PutSystemState(ctx context.Context, scope string, state model.SystemState) error

	// ClearHistory drops the scope's entire comparison log.
	ClearHistory(ctx context.Context, scope string) error

	// ListScopes returns every known scope, for maintenance sweeps.
	ListScopes(ctx context.Context) ([]string, error)
}
