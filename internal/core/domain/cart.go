package domain

// Cart holds an ordered list of item ids. Duplicates are intentional:
// adding the same item twice means quantity two.
type Cart struct {
	ID    string   `json:"id"`
	Items []string `json:"items"`
}

// CartLine is one distinct item inside a cart view. Available mirrors the
// referenced item's deleted flag at view time.
type CartLine struct {
	ItemID    string `json:"id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Available bool   `json:"available"`
}

// CartView is the priced projection of a cart. It is derived on every read,
// never stored, so Price reflects the current item state.
type CartView struct {
	ID    string     `json:"id"`
	Items []CartLine `json:"items"`
	Price float64    `json:"price"`
}

// TotalQuantity sums quantities across every line, unavailable ones
// included.
func (v CartView) TotalQuantity() int {
	total := 0
	for _, line := range v.Items {
		total += line.Quantity
	}
	return total
}
