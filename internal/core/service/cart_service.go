package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/rl1809/shop-api/internal/core/domain"
	"github.com/rl1809/shop-api/internal/port"
)

// CartFilter narrows a cart listing by view totals. Price bounds apply to
// the priced total (available lines only); quantity bounds apply to the sum
// over all lines, unavailable ones included.
type CartFilter struct {
	MinPrice    *float64
	MaxPrice    *float64
	MinQuantity *int
	MaxQuantity *int
	Page        Page
}

// CartService owns cart lifecycle and read-side pricing. Carts only ever
// grow: there is no removal of either carts or cart entries.
type CartService struct {
	carts port.CartRepository
	items port.ItemRepository
}

func NewCartService(carts port.CartRepository, items port.ItemRepository) *CartService {
	return &CartService{carts: carts, items: items}
}

// CreateCart stores a new empty cart.
func (s *CartService) CreateCart(ctx context.Context) (domain.Cart, error) {
	cart := domain.Cart{ID: uuid.NewString()}

	if err := s.carts.Create(ctx, cart); err != nil {
		return domain.Cart{}, fmt.Errorf("create cart: %w", err)
	}
	return cart, nil
}

// GetCart returns the freshly priced view of a cart.
func (s *CartService) GetCart(ctx context.Context, id string) (domain.CartView, error) {
	cart, ok, err := s.carts.Get(ctx, id)
	if err != nil {
		return domain.CartView{}, fmt.Errorf("get cart: %w", err)
	}
	if !ok {
		return domain.CartView{}, ErrCartNotFound
	}
	return s.view(ctx, cart)
}

// AddItem appends an item reference to a cart. Both ids must exist; the
// item may already be in the cart, repeated adds raise its quantity.
func (s *CartService) AddItem(ctx context.Context, cartID, itemID string) error {
	_, ok, err := s.items.Get(ctx, itemID)
	if err != nil {
		return fmt.Errorf("add item: %w", err)
	}
	if !ok {
		return ErrItemNotFound
	}

	ok, err = s.carts.Append(ctx, cartID, itemID)
	if err != nil {
		return fmt.Errorf("add item: %w", err)
	}
	if !ok {
		return ErrCartNotFound
	}
	return nil
}

// ListCarts prices every cart, filters on the view totals, then paginates
// in creation order.
func (s *CartService) ListCarts(ctx context.Context, f CartFilter) ([]domain.CartView, error) {
	carts, err := s.carts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list carts: %w", err)
	}

	views := make([]domain.CartView, 0, len(carts))
	for _, cart := range carts {
		view, err := s.view(ctx, cart)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}

	views = filter(views, func(v domain.CartView) bool {
		return inRange(v.Price, f.MinPrice, f.MaxPrice) &&
			intInRange(v.TotalQuantity(), f.MinQuantity, f.MaxQuantity)
	})
	return paginate(views, f.Page), nil
}
