package storage

import (
	"context"
	"sync"

	"github.com/rl1809/shop-api/internal/core/domain"
)

// MemoryItemStore keeps items in a process-wide map. Records live for the
// process lifetime; deletion is a flag flip, never a map removal, so cart
// references stay resolvable.
type MemoryItemStore struct {
	mu    sync.RWMutex
	items map[string]domain.Item
	order []string
}

func NewMemoryItemStore() *MemoryItemStore {
	return &MemoryItemStore{
		items: make(map[string]domain.Item),
	}
}

func (s *MemoryItemStore) Create(ctx context.Context, item domain.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[item.ID] = item
	s.order = append(s.order, item.ID)
	return nil
}

func (s *MemoryItemStore) Get(ctx context.Context, id string) (domain.Item, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	return item, ok, nil
}

func (s *MemoryItemStore) Update(ctx context.Context, id string, fn func(*domain.Item)) (domain.Item, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return domain.Item{}, false, nil
	}

	fn(&item)
	s.items[id] = item
	return item, true, nil
}

func (s *MemoryItemStore) List(ctx context.Context) ([]domain.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]domain.Item, 0, len(s.order))
	for _, id := range s.order {
		items = append(items, s.items[id])
	}
	return items, nil
}
