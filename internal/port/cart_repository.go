package port

import (
	"context"

	"github.com/rl1809/shop-api/internal/core/domain"
)

type CartRepository interface {
	// Create stores a new cart under its id
	Create(ctx context.Context, cart domain.Cart) error

	// Get returns the cart and whether it exists
	Get(ctx context.Context, id string) (domain.Cart, bool, error)

	// Append adds itemID to the end of the cart's item list atomically;
	// ok is false when the cart is unknown
	Append(ctx context.Context, cartID, itemID string) (bool, error)

	// List returns all carts in creation order
	List(ctx context.Context) ([]domain.Cart, error)
}
