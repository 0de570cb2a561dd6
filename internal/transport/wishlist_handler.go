package transport

import (
	"errors"
	"net/http"

	"github.com/polashmiya/eGadget-Ecommerce/internal/catalog"
	"github.com/polashmiya/eGadget-Ecommerce/internal/domain"
	"github.com/polashmiya/eGadget-Ecommerce/internal/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// WishlistResponse is the wishlist snapshot with its stock partition.
type WishlistResponse struct {
	Items           []domain.Product `json:"items"`
	InStockCount    int              `json:"in_stock_count"`
	OutOfStockCount int              `json:"out_of_stock_count"`
}

// WishlistHandler handles HTTP requests for the session wishlist.
type WishlistHandler struct {
	catalog *catalog.Catalog
	logger  *zap.Logger
}

// NewWishlistHandler creates a new WishlistHandler
func NewWishlistHandler(c *catalog.Catalog, logger *zap.Logger) *WishlistHandler {
	return &WishlistHandler{catalog: c, logger: logger}
}

// RegisterRoutes registers all wishlist routes. The wishlist belongs to
// the signed-in experience, so everything here requires auth.
func (h *WishlistHandler) RegisterRoutes(r chi.Router, requireAuth func(http.Handler) http.Handler) {
	r.Route("/api/wishlist", func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/", h.GetWishlist)
		r.Delete("/", h.ClearWishlist)
		r.Post("/{id}", h.AddItem)
		r.Delete("/{id}", h.RemoveItem)
	})
}

// GetWishlist returns the saved products and their stock counts.
func (h *WishlistHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	store, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "session unavailable")
		return
	}
	respondWithWishlist(w, store.Wishlist())
}

// AddItem saves a product to the wishlist.
func (h *WishlistHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	store, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "session unavailable")
		return
	}

	id := chi.URLParam(r, "id")
	product, err := h.catalog.FindByID(id)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Product lookup failed", zap.Error(err), zap.String("product_id", id))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update wishlist")
		return
	}

	store.AddToWishlist(product)
	respondWithWishlist(w, store.Wishlist())
}

// RemoveItem drops a product from the wishlist. Unknown ids are a
// no-op.
func (h *WishlistHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	store, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "session unavailable")
		return
	}

	store.RemoveFromWishlist(chi.URLParam(r, "id"))
	respondWithWishlist(w, store.Wishlist())
}

// ClearWishlist empties the wishlist.
func (h *WishlistHandler) ClearWishlist(w http.ResponseWriter, r *http.Request) {
	store, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "session unavailable")
		return
	}

	store.ClearWishlist()
	respondWithWishlist(w, store.Wishlist())
}

func respondWithWishlist(w http.ResponseWriter, items []domain.Product) {
	resp := WishlistResponse{Items: items}
	for _, p := range items {
		if p.InStock {
			resp.InStockCount++
		} else {
			resp.OutOfStockCount++
		}
	}
	middleware.RespondWithJSON(w, http.StatusOK, resp)
}
