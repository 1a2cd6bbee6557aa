package storage

import (
	"context"
	"sync"

	"github.com/rl1809/shop-api/internal/core/domain"
)

// MemoryCartStore keeps carts in a process-wide map, creation order
// preserved for listing. Item lists are copied on the way out so callers
// never share a slice with the store.
type MemoryCartStore struct {
	mu    sync.RWMutex
	carts map[string]domain.Cart
	order []string
}

func NewMemoryCartStore() *MemoryCartStore {
	return &MemoryCartStore{
		carts: make(map[string]domain.Cart),
	}
}

func (s *MemoryCartStore) Create(ctx context.Context, cart domain.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.carts[cart.ID] = copyCart(cart)
	s.order = append(s.order, cart.ID)
	return nil
}

func (s *MemoryCartStore) Get(ctx context.Context, id string) (domain.Cart, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cart, ok := s.carts[id]
	if !ok {
		return domain.Cart{}, false, nil
	}
	return copyCart(cart), true, nil
}

func (s *MemoryCartStore) Append(ctx context.Context, cartID, itemID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[cartID]
	if !ok {
		return false, nil
	}

	cart.Items = append(cart.Items, itemID)
	s.carts[cartID] = cart
	return true, nil
}

func (s *MemoryCartStore) List(ctx context.Context) ([]domain.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	carts := make([]domain.Cart, 0, len(s.order))
	for _, id := range s.order {
		carts = append(carts, copyCart(s.carts[id]))
	}
	return carts, nil
}

func copyCart(cart domain.Cart) domain.Cart {
	items := make([]string, len(cart.Items))
	copy(items, cart.Items)
	cart.Items = items
	return cart
}
