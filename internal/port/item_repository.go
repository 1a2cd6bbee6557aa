package port

import (
	"context"

	"github.com/rl1809/shop-api/internal/core/domain"
)

type ItemRepository interface {
	// Create stores a new item under its id
	Create(ctx context.Context, item domain.Item) error

	// Get returns the item and whether it exists, deleted or not
	Get(ctx context.Context, id string) (domain.Item, bool, error)

	// Update applies fn to the stored record atomically and returns the
	// resulting item; ok is false when the id is unknown
	Update(ctx context.Context, id string, fn func(*domain.Item)) (domain.Item, bool, error)

	// List returns all items in creation order
	List(ctx context.Context) ([]domain.Item, error)
}
