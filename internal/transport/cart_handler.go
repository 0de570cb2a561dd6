package transport

import (
	"errors"
	"net/http"

	"github.com/polashmiya/eGadget-Ecommerce/internal/catalog"
	"github.com/polashmiya/eGadget-Ecommerce/internal/domain"
	"github.com/polashmiya/eGadget-Ecommerce/internal/middleware"
	"github.com/polashmiya/eGadget-Ecommerce/internal/session"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AddItemRequest represents the add-to-cart payload. Quantity defaults
// to 1 when omitted.
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=0"`
}

// UpdateItemRequest represents the update-quantity payload. A quantity
// of zero or less removes the line.
type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}

// CartResponse is the cart snapshot returned after every cart call.
type CartResponse struct {
	Items      []domain.CartItem `json:"items"`
	Total      float64           `json:"total"`
	ItemCount  int               `json:"item_count"`
	DrawerOpen bool              `json:"drawer_open"`
}

// CartHandler handles HTTP requests for the session cart and the cart
// drawer flag.
type CartHandler struct {
	catalog *catalog.Catalog
	logger  *zap.Logger
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(c *catalog.Catalog, logger *zap.Logger) *CartHandler {
	return &CartHandler{catalog: c, logger: logger}
}

// RegisterRoutes registers all cart routes
func (h *CartHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/cart", func(r chi.Router) {
		r.Get("/", h.GetCart)
		r.Delete("/", h.ClearCart)
		r.Post("/items", h.AddItem)
		r.Put("/items/{id}", h.UpdateItem)
		r.Delete("/items/{id}", h.RemoveItem)
		r.Post("/drawer/open", h.OpenDrawer)
		r.Post("/drawer/close", h.CloseDrawer)
		r.Post("/drawer/toggle", h.ToggleDrawer)
	})
}

// GetCart returns the current cart snapshot.
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	store, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "session unavailable")
		return
	}
	respondWithCart(w, store)
}

// AddItem adds a product to the cart, incrementing an existing line.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	store, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "session unavailable")
		return
	}

	var req AddItemRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.catalog.FindByID(req.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Product lookup failed", zap.Error(err), zap.String("product_id", req.ProductID))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to add to cart")
		return
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	store.AddToCart(product, quantity)
	h.logger.Debug("Added to cart",
		zap.String("product_id", product.ID),
		zap.Int("quantity", quantity),
	)
	respondWithCart(w, store)
}

// UpdateItem sets the quantity of a cart line. Quantities of zero or
// less remove the line; unknown ids are a no-op.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	store, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "session unavailable")
		return
	}

	var req UpdateItemRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	store.UpdateQuantity(chi.URLParam(r, "id"), req.Quantity)
	respondWithCart(w, store)
}

// RemoveItem deletes a cart line. Unknown ids are a no-op.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	store, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "session unavailable")
		return
	}

	store.RemoveFromCart(chi.URLParam(r, "id"))
	respondWithCart(w, store)
}

// ClearCart empties the cart.
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	store, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "session unavailable")
		return
	}

	store.ClearCart()
	respondWithCart(w, store)
}

// OpenDrawer marks the cart drawer open.
func (h *CartHandler) OpenDrawer(w http.ResponseWriter, r *http.Request) {
	h.setDrawer(w, r, func(s *session.Store) { s.OpenDrawer() })
}

// CloseDrawer marks the cart drawer closed.
func (h *CartHandler) CloseDrawer(w http.ResponseWriter, r *http.Request) {
	h.setDrawer(w, r, func(s *session.Store) { s.CloseDrawer() })
}

// ToggleDrawer flips the cart drawer flag.
func (h *CartHandler) ToggleDrawer(w http.ResponseWriter, r *http.Request) {
	h.setDrawer(w, r, func(s *session.Store) { s.ToggleDrawer() })
}

func (h *CartHandler) setDrawer(w http.ResponseWriter, r *http.Request, apply func(*session.Store)) {
	store, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "session unavailable")
		return
	}

	apply(store)
	respondWithCart(w, store)
}

func respondWithCart(w http.ResponseWriter, store *session.Store) {
	middleware.RespondWithJSON(w, http.StatusOK, CartResponse{
		Items:      store.CartItems(),
		Total:      store.CartTotal(),
		ItemCount:  store.CartItemCount(),
		DrawerOpen: store.DrawerOpen(),
	})
}
