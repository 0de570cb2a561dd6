package session

import (
	"testing"

	"github.com/polashmiya/eGadget-Ecommerce/internal/domain"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func testProduct(id string, price float64) domain.Product {
	return domain.Product{
		ID:       id,
		Name:     "Product " + id,
		Price:    price,
		Category: "Audio",
		Brand:    "Aurion",
		InStock:  true,
	}
}

func TestProperty_AddToCartCreatesSingleLine(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("adding to an empty cart yields one line with that quantity", prop.ForAll(
		func(quantity int) bool {
			store := NewStore()
			store.AddToCart(testProduct("p-1", 9.99), quantity)

			items := store.CartItems()
			if len(items) != 1 {
				t.Logf("FAIL: expected 1 cart line, got %d", len(items))
				return false
			}
			if items[0].Quantity != quantity {
				t.Logf("FAIL: expected quantity %d, got %d", quantity, items[0].Quantity)
				return false
			}
			return items[0].ID == "p-1"
		},
		gen.IntRange(1, 1000),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_AddToCartIsAdditive(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("adding the same product twice yields one line with summed quantity", prop.ForAll(
		func(q1, q2 int) bool {
			store := NewStore()
			product := testProduct("p-1", 19.99)

			store.AddToCart(product, q1)
			store.AddToCart(product, q2)

			items := store.CartItems()
			if len(items) != 1 {
				t.Logf("FAIL: expected 1 cart line, got %d", len(items))
				return false
			}
			return items[0].Quantity == q1+q2
		},
		gen.IntRange(1, 500),
		gen.IntRange(1, 500),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_UpdateQuantityNonPositiveRemoves(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("updating to a non-positive quantity equals removing the line", prop.ForAll(
		func(quantity int) bool {
			updated := NewStore()
			removed := NewStore()
			product := testProduct("p-1", 12.50)

			updated.AddToCart(product, 3)
			removed.AddToCart(product, 3)

			updated.UpdateQuantity("p-1", quantity)
			removed.RemoveFromCart("p-1")

			return len(updated.CartItems()) == len(removed.CartItems()) &&
				len(updated.CartItems()) == 0
		},
		gen.IntRange(-1000, 0),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_LogoutResetsSession(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("logout clears user, cart, wishlist and drawer regardless of prior state", prop.ForAll(
		func(quantity int, drawerOpen bool) bool {
			store := NewStore()
			store.AddToCart(testProduct("p-1", 5), quantity)
			store.AddToWishlist(testProduct("p-2", 10))
			store.SetUser(&domain.User{ID: "u-1", Email: "shopper@example.com"})
			if drawerOpen {
				store.OpenDrawer()
			}

			store.Logout()

			return store.User() == nil &&
				!store.IsAuthenticated() &&
				len(store.CartItems()) == 0 &&
				len(store.Wishlist()) == 0 &&
				!store.DrawerOpen()
		},
		gen.IntRange(1, 100),
		gen.Bool(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_CartTotalsMatchSums(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("total and count are the sums over all lines", prop.ForAll(
		func(prices []float64) bool {
			store := NewStore()

			var wantTotal float64
			var wantCount int
			for i, price := range prices {
				qty := i%3 + 1
				store.AddToCart(testProduct(productID(i), price), qty)
				wantTotal += price * float64(qty)
				wantCount += qty
			}

			return almostEqual(store.CartTotal(), wantTotal) && store.CartItemCount() == wantCount
		},
		gen.SliceOf(gen.Float64Range(0.01, 999.99)),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func productID(i int) string {
	return "p-" + string(rune('a'+i%26)) + string(rune('a'+(i/26)%26))
}

func almostEqual(a, b float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < 1e-6
}

func TestCartTotalAndCount(t *testing.T) {
	store := NewStore()
	store.AddToCart(testProduct("p-1", 10), 2)
	store.AddToCart(testProduct("p-2", 5), 3)

	if got := store.CartTotal(); got != 35 {
		t.Errorf("CartTotal() = %v, want 35", got)
	}
	if got := store.CartItemCount(); got != 5 {
		t.Errorf("CartItemCount() = %v, want 5", got)
	}
}

func TestAddToCartDefaultsQuantityToOne(t *testing.T) {
	store := NewStore()
	store.AddToCart(testProduct("p-1", 10), 0)

	items := store.CartItems()
	if len(items) != 1 || items[0].Quantity != 1 {
		t.Fatalf("expected one line with quantity 1, got %+v", items)
	}
}

func TestRemoveFromCartAbsentIsNoop(t *testing.T) {
	store := NewStore()
	store.AddToCart(testProduct("p-1", 10), 1)

	store.RemoveFromCart("p-999")

	if len(store.CartItems()) != 1 {
		t.Error("removing an absent id must not change the cart")
	}
}

func TestUpdateQuantityAbsentIsNoop(t *testing.T) {
	store := NewStore()
	store.AddToCart(testProduct("p-1", 10), 2)

	store.UpdateQuantity("p-999", 7)

	items := store.CartItems()
	if len(items) != 1 || items[0].Quantity != 2 {
		t.Errorf("updating an absent id must not change the cart, got %+v", items)
	}
}

func TestUpdateQuantitySetsValue(t *testing.T) {
	store := NewStore()
	store.AddToCart(testProduct("p-1", 10), 2)

	store.UpdateQuantity("p-1", 7)

	items := store.CartItems()
	if len(items) != 1 || items[0].Quantity != 7 {
		t.Errorf("expected quantity 7, got %+v", items)
	}
}

func TestIsAuthenticatedDerivedFromUser(t *testing.T) {
	store := NewStore()

	if store.IsAuthenticated() {
		t.Error("fresh store must not be authenticated")
	}

	store.SetUser(&domain.User{ID: "u-1", Email: "shopper@example.com"})
	if !store.IsAuthenticated() {
		t.Error("store with user must be authenticated")
	}

	store.SetUser(nil)
	if store.IsAuthenticated() {
		t.Error("store with nil user must not be authenticated")
	}
}

func TestDrawerCommands(t *testing.T) {
	store := NewStore()

	if store.DrawerOpen() {
		t.Error("drawer starts closed")
	}

	store.OpenDrawer()
	if !store.DrawerOpen() {
		t.Error("OpenDrawer must open the drawer")
	}

	store.CloseDrawer()
	if store.DrawerOpen() {
		t.Error("CloseDrawer must close the drawer")
	}

	store.ToggleDrawer()
	if !store.DrawerOpen() {
		t.Error("ToggleDrawer must flip closed to open")
	}
	store.ToggleDrawer()
	if store.DrawerOpen() {
		t.Error("ToggleDrawer must flip open to closed")
	}
}

func TestClearCart(t *testing.T) {
	store := NewStore()
	store.AddToCart(testProduct("p-1", 10), 2)
	store.AddToCart(testProduct("p-2", 20), 1)

	store.ClearCart()

	if len(store.CartItems()) != 0 {
		t.Error("ClearCart must empty the cart")
	}
	if store.CartTotal() != 0 || store.CartItemCount() != 0 {
		t.Error("empty cart must have zero total and count")
	}
}

func TestWishlist(t *testing.T) {
	store := NewStore()
	p1 := testProduct("p-1", 10)
	p2 := testProduct("p-2", 20)

	store.AddToWishlist(p1)
	store.AddToWishlist(p2)
	store.AddToWishlist(p1) // duplicate is a no-op

	wishlist := store.Wishlist()
	if len(wishlist) != 2 {
		t.Fatalf("expected 2 wishlist items, got %d", len(wishlist))
	}
	if wishlist[0].ID != "p-1" || wishlist[1].ID != "p-2" {
		t.Errorf("wishlist must keep insertion order, got %+v", wishlist)
	}

	store.RemoveFromWishlist("p-1")
	if got := store.Wishlist(); len(got) != 1 || got[0].ID != "p-2" {
		t.Errorf("unexpected wishlist after removal: %+v", got)
	}

	store.RemoveFromWishlist("p-999") // absent id is a no-op
	if len(store.Wishlist()) != 1 {
		t.Error("removing an absent id must not change the wishlist")
	}

	store.ClearWishlist()
	if len(store.Wishlist()) != 0 {
		t.Error("ClearWishlist must empty the wishlist")
	}
}

func TestOrdersNewestFirst(t *testing.T) {
	store := NewStore()
	store.RecordOrder(domain.Order{ID: "o-1"})
	store.RecordOrder(domain.Order{ID: "o-2"})
	store.RecordOrder(domain.Order{ID: "o-3"})

	orders := store.Orders()
	if len(orders) != 3 {
		t.Fatalf("expected 3 orders, got %d", len(orders))
	}
	if orders[0].ID != "o-3" || orders[2].ID != "o-1" {
		t.Errorf("orders must be newest first, got %v, %v, %v", orders[0].ID, orders[1].ID, orders[2].ID)
	}
}

func TestCartItemsSnapshotDoesNotAlias(t *testing.T) {
	store := NewStore()
	store.AddToCart(testProduct("p-1", 10), 2)

	items := store.CartItems()
	items[0].Quantity = 99

	if got := store.CartItems()[0].Quantity; got != 2 {
		t.Errorf("mutating the snapshot must not affect the store, got quantity %d", got)
	}
}
