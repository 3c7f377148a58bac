package repository

import (
	"context"

	"github.com/uragrafica/printflow/internal/domain/model"
)

// OrderRepository describes persistence operations with orders. The store is
// the single source of truth; every mutation is observed by the rest of the
// system through a subsequent snapshot push, never through local patching.
type OrderRepository interface {
	Create(ctx context.Context, draft model.OrderDraft) (*model.Order, error)
	Get(ctx context.Context, id string) (*model.Order, error)
	// List returns the full record set, newest-created-first.
	List(ctx context.Context) ([]model.Order, error)
	Update(ctx context.Context, id string, patch model.OrderPatch) (*model.Order, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
	// Upsert writes the given records keyed by identifier in a single
	// transaction. Existing records are overwritten, new ones inserted.
	Upsert(ctx context.Context, orders []model.Order) error
}
