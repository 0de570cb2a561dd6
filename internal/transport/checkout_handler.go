package transport

import (
	"errors"
	"net/http"

	"github.com/polashmiya/eGadget-Ecommerce/internal/domain"
	"github.com/polashmiya/eGadget-Ecommerce/internal/middleware"
	"github.com/polashmiya/eGadget-Ecommerce/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AddressPayload is an address as collected by the checkout form.
type AddressPayload struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Company   string `json:"company"`
	Address1  string `json:"address1" validate:"required"`
	Address2  string `json:"address2"`
	City      string `json:"city" validate:"required"`
	State     string `json:"state" validate:"required"`
	ZipCode   string `json:"zip_code" validate:"required"`
	Country   string `json:"country" validate:"required"`
	Phone     string `json:"phone"`
}

// CheckoutPayload represents the checkout request body.
type CheckoutPayload struct {
	ShippingAddress AddressPayload  `json:"shipping_address" validate:"required"`
	BillingAddress  *AddressPayload `json:"billing_address,omitempty"`
	SameAsShipping  bool            `json:"same_as_shipping"`
	PaymentMethod   string          `json:"payment_method" validate:"required"`
}

// OrdersResponse lists the session's placed orders.
type OrdersResponse struct {
	Orders []domain.Order `json:"orders"`
}

// CheckoutHandler handles HTTP requests for checkout and order history.
type CheckoutHandler struct {
	checkoutService service.CheckoutService
	logger          *zap.Logger
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(checkoutService service.CheckoutService, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService, logger: logger}
}

// RegisterRoutes registers checkout and order routes
func (h *CheckoutHandler) RegisterRoutes(r chi.Router, requireAuth func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/api/checkout", h.Checkout)
		r.Get("/api/orders", h.ListOrders)
	})
}

// Checkout prices the cart into an order and clears the cart.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	store, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "session unavailable")
		return
	}

	var req CheckoutPayload
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Checkout validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	checkoutReq := service.CheckoutRequest{
		ShippingAddress: toAddress(req.ShippingAddress),
		SameAsShipping:  req.SameAsShipping || req.BillingAddress == nil,
		PaymentMethod:   req.PaymentMethod,
	}
	if req.BillingAddress != nil {
		checkoutReq.BillingAddress = toAddress(*req.BillingAddress)
	}

	order, err := h.checkoutService.Checkout(store, checkoutReq)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotAuthenticated):
			middleware.RespondWithError(w, http.StatusUnauthorized, "authentication required")
		case errors.Is(err, service.ErrEmptyCart):
			middleware.RespondWithError(w, http.StatusBadRequest, "cart is empty")
		default:
			h.logger.Error("Checkout failed", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to place order")
		}
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, order)
}

// ListOrders returns the session's order history, newest first.
func (h *CheckoutHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	store, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "session unavailable")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, OrdersResponse{
		Orders: h.checkoutService.Orders(store),
	})
}

func toAddress(p AddressPayload) domain.Address {
	return domain.Address{
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Company:   p.Company,
		Address1:  p.Address1,
		Address2:  p.Address2,
		City:      p.City,
		State:     p.State,
		ZipCode:   p.ZipCode,
		Country:   p.Country,
		Phone:     p.Phone,
	}
}
