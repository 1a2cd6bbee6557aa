package service

import (
	"context"
	"fmt"

	"github.com/rl1809/shop-api/internal/core/domain"
)

// view derives the priced projection of a cart from current item state.
// Raw entries are grouped by item id, counting occurrences into quantities,
// with lines ordered by first occurrence. Deleted items stay in the view as
// unavailable lines contributing zero to the total; an id that resolves to
// no item at all is dropped.
func (s *CartService) view(ctx context.Context, cart domain.Cart) (domain.CartView, error) {
	seen := make(map[string]bool, len(cart.Items))
	ids := make([]string, 0, len(cart.Items))
	counts := make(map[string]int, len(cart.Items))

	for _, id := range cart.Items {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
		counts[id]++
	}

	view := domain.CartView{
		ID:    cart.ID,
		Items: make([]domain.CartLine, 0, len(ids)),
	}

	for _, id := range ids {
		item, ok, err := s.items.Get(ctx, id)
		if err != nil {
			return domain.CartView{}, fmt.Errorf("price cart %s: %w", cart.ID, err)
		}
		if !ok {
			continue
		}

		view.Items = append(view.Items, domain.CartLine{
			ItemID:    id,
			Name:      item.Name,
			Quantity:  counts[id],
			Available: !item.Deleted,
		})
		if !item.Deleted {
			view.Price += float64(counts[id]) * item.Price
		}
	}

	return view, nil
}
