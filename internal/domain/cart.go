package domain

// CartItem represents a single cart line. Its ID equals the product ID,
// so a cart holds at most one line per product. Quantity is always a
// positive integer while the item is in the cart.
type CartItem struct {
	ID       string  `json:"id"`
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}
