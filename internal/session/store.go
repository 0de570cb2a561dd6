package session

import (
	"sort"
	"sync"

	"github.com/polashmiya/eGadget-Ecommerce/internal/domain"
)

// Store holds the mutable state of one storefront session: the cart,
// the signed-in user, the cart drawer flag, the wishlist and the order
// history. All mutation goes through the command methods; there is no
// other way to reach the state.
//
// Commands are total functions. Operations on an absent product id are
// no-ops rather than errors, so callers never need to pre-check
// existence.
type Store struct {
	mu         sync.Mutex
	cart       map[string]*domain.CartItem
	user       *domain.User
	drawerOpen bool
	wishlist   []domain.Product
	orders     []domain.Order
}

// NewStore creates a session store with an empty cart, no user and the
// drawer closed.
func NewStore() *Store {
	return &Store{
		cart: make(map[string]*domain.CartItem),
	}
}

// AddToCart inserts a cart line for product, or increments the existing
// line's quantity. A quantity below 1 is treated as 1. Stock is not
// consulted here; clamping to stock is a presentation concern.
func (s *Store) AddToCart(product domain.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if item, ok := s.cart[product.ID]; ok {
		item.Quantity += quantity
		return
	}
	s.cart[product.ID] = &domain.CartItem{
		ID:       product.ID,
		Product:  product,
		Quantity: quantity,
	}
}

// RemoveFromCart deletes the cart line with the given product id, if
// present.
func (s *Store) RemoveFromCart(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cart, productID)
}

// UpdateQuantity sets the quantity of an existing cart line. A quantity
// of zero or less removes the line instead, so no line is ever stored
// with a non-positive quantity. Absent ids are a no-op.
func (s *Store) UpdateQuantity(productID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		delete(s.cart, productID)
		return
	}
	if item, ok := s.cart[productID]; ok {
		item.Quantity = quantity
	}
}

// ClearCart empties the cart.
func (s *Store) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = make(map[string]*domain.CartItem)
}

// SetUser binds user to the session, or unbinds it when nil. The
// authentication flag is derived from the user being present.
func (s *Store) SetUser(user *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
}

// Logout resets the session entirely: the user is unbound, the cart and
// wishlist are emptied and the drawer closes. This is the deliberate
// business rule, not a side effect.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.cart = make(map[string]*domain.CartItem)
	s.wishlist = nil
	s.drawerOpen = false
}

// OpenDrawer marks the cart drawer open.
func (s *Store) OpenDrawer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drawerOpen = true
}

// CloseDrawer marks the cart drawer closed.
func (s *Store) CloseDrawer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drawerOpen = false
}

// ToggleDrawer flips the cart drawer flag.
func (s *Store) ToggleDrawer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drawerOpen = !s.drawerOpen
}

// User returns the signed-in user, or nil.
func (s *Store) User() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// IsAuthenticated reports whether a user is bound to the session.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil
}

// DrawerOpen reports the cart drawer flag.
func (s *Store) DrawerOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drawerOpen
}

// CartItems returns a snapshot of the cart lines, ordered by product id
// for stable output. Mutating the snapshot does not affect the store.
func (s *Store) CartItems() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]domain.CartItem, 0, len(s.cart))
	for _, item := range s.cart {
		items = append(items, *item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items
}

// CartTotal returns the exact floating-point sum of price times
// quantity over all cart lines.
func (s *Store) CartTotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total float64
	for _, item := range s.cart {
		total += item.Product.Price * float64(item.Quantity)
	}
	return total
}

// CartItemCount returns the sum of quantities over all cart lines; a
// quantity-3 line counts as 3.
func (s *Store) CartItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int
	for _, item := range s.cart {
		count += item.Quantity
	}
	return count
}

// AddToWishlist saves a product to the wishlist. Adding a product that
// is already saved is a no-op.
func (s *Store) AddToWishlist(product domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.wishlist {
		if p.ID == product.ID {
			return
		}
	}
	s.wishlist = append(s.wishlist, product)
}

// RemoveFromWishlist drops the product with the given id, if saved.
func (s *Store) RemoveFromWishlist(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.wishlist {
		if p.ID == productID {
			s.wishlist = append(s.wishlist[:i], s.wishlist[i+1:]...)
			return
		}
	}
}

// ClearWishlist empties the wishlist.
func (s *Store) ClearWishlist() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wishlist = nil
}

// Wishlist returns a snapshot of the saved products in the order they
// were added.
func (s *Store) Wishlist() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Product, len(s.wishlist))
	copy(out, s.wishlist)
	return out
}

// RecordOrder appends a placed order to the session's order history.
func (s *Store) RecordOrder(order domain.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = append(s.orders, order)
}

// Orders returns the session's placed orders, newest first.
func (s *Store) Orders() []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Order, len(s.orders))
	for i, o := range s.orders {
		out[len(s.orders)-1-i] = o
	}
	return out
}
