package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/rl1809/shop-api/internal/core/domain"
	"github.com/rl1809/shop-api/internal/port"
)

var (
	ErrItemNotFound = errors.New("item not found")
	ErrCartNotFound = errors.New("cart not found")

	// ErrItemNotModified reports that a patch hit a deleted item: the call
	// is accepted but no field changes. Not a failure.
	ErrItemNotModified = errors.New("item not modified")
)

// ItemFilter narrows an item listing. Nil bounds impose no constraint; a
// bound of exactly zero does.
type ItemFilter struct {
	MinPrice       *float64
	MaxPrice       *float64
	IncludeDeleted bool
	Page           Page
}

// CatalogService owns item lifecycle: records are created once, mutated in
// place and soft-deleted, never removed.
type CatalogService struct {
	items port.ItemRepository
}

func NewCatalogService(items port.ItemRepository) *CatalogService {
	return &CatalogService{items: items}
}

// CreateItem stores a new item. Name and price are boundary-validated
// before they get here.
func (s *CatalogService) CreateItem(ctx context.Context, name string, price float64) (domain.Item, error) {
	item := domain.Item{
		ID:    uuid.NewString(),
		Name:  name,
		Price: price,
	}

	if err := s.items.Create(ctx, item); err != nil {
		return domain.Item{}, fmt.Errorf("create item: %w", err)
	}
	return item, nil
}

// GetItem returns a visible item. A soft-deleted record is reported as not
// found, same as an unknown id.
func (s *CatalogService) GetItem(ctx context.Context, id string) (domain.Item, error) {
	item, ok, err := s.items.Get(ctx, id)
	if err != nil {
		return domain.Item{}, fmt.Errorf("get item: %w", err)
	}
	if !ok || item.Deleted {
		return domain.Item{}, ErrItemNotFound
	}
	return item, nil
}

// ReplaceItem overwrites both mutable fields. Replacing a deleted item is
// allowed and does not undelete it.
func (s *CatalogService) ReplaceItem(ctx context.Context, id, name string, price float64) (domain.Item, error) {
	item, ok, err := s.items.Update(ctx, id, func(it *domain.Item) {
		it.Name = name
		it.Price = price
	})
	if err != nil {
		return domain.Item{}, fmt.Errorf("replace item: %w", err)
	}
	if !ok {
		return domain.Item{}, ErrItemNotFound
	}
	return item, nil
}

// PatchItem updates only the fields that are set. A patch on a deleted item
// changes nothing and returns the record together with ErrItemNotModified.
func (s *CatalogService) PatchItem(ctx context.Context, id string, name *string, price *float64) (domain.Item, error) {
	modified := true
	item, ok, err := s.items.Update(ctx, id, func(it *domain.Item) {
		if it.Deleted {
			modified = false
			return
		}
		if name != nil {
			it.Name = *name
		}
		if price != nil {
			it.Price = *price
		}
	})
	if err != nil {
		return domain.Item{}, fmt.Errorf("patch item: %w", err)
	}
	if !ok {
		return domain.Item{}, ErrItemNotFound
	}
	if !modified {
		return item, ErrItemNotModified
	}
	return item, nil
}

// DeleteItem soft-deletes: the record stays in the store with Deleted set.
// Deleting twice is the same as deleting once.
func (s *CatalogService) DeleteItem(ctx context.Context, id string) error {
	_, ok, err := s.items.Update(ctx, id, func(it *domain.Item) {
		it.Deleted = true
	})
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if !ok {
		return ErrItemNotFound
	}
	return nil
}

// ListItems filters by price range and deleted visibility, then paginates.
// Order is creation order throughout.
func (s *CatalogService) ListItems(ctx context.Context, f ItemFilter) ([]domain.Item, error) {
	items, err := s.items.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	items = filter(items, func(it domain.Item) bool {
		if !f.IncludeDeleted && it.Deleted {
			return false
		}
		return inRange(it.Price, f.MinPrice, f.MaxPrice)
	})
	return paginate(items, f.Page), nil
}
