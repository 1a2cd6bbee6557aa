package domain

// Item is a catalog entry. Items are soft-deleted only: Deleted flips to
// true and the record stays resolvable for carts that reference it.
type Item struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Price   float64 `json:"price"`
	Deleted bool    `json:"deleted"`
}
