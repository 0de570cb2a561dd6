package transport

import (
	"net/http"

	"github.com/polashmiya/eGadget-Ecommerce/internal/domain"
	"github.com/polashmiya/eGadget-Ecommerce/internal/middleware"
	"github.com/polashmiya/eGadget-Ecommerce/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// LoginRequest represents the login request payload. The password is
// required for form shape only; it is never checked against anything.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse represents the login response
type LoginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// UpdateProfileRequest carries editable profile fields; omitted fields
// are left unchanged.
type UpdateProfileRequest struct {
	FirstName   *string `json:"first_name,omitempty"`
	LastName    *string `json:"last_name,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	DateOfBirth *string `json:"date_of_birth,omitempty"`
}

// UserHandler handles HTTP requests for mock sign-in and the session
// profile.
type UserHandler struct {
	authService service.AuthService
	logger      *zap.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(authService service.AuthService, logger *zap.Logger) *UserHandler {
	return &UserHandler{authService: authService, logger: logger}
}

// RegisterRoutes registers all user routes
func (h *UserHandler) RegisterRoutes(r chi.Router, requireAuth func(http.Handler) http.Handler) {
	r.Route("/api/users", func(r chi.Router) {
		r.Post("/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/logout", h.Logout)
			r.Get("/profile", h.GetProfile)
			r.Put("/profile", h.UpdateProfile)
		})
	})
}

// Login binds a mock user to the session and returns a session token.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	store, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "session unavailable")
		return
	}

	var req LoginRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Login validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user := h.authService.Login(store, req.Email)

	sessionID, _ := middleware.SessionIDFromContext(r.Context())
	token, err := h.authService.IssueSessionToken(sessionID)
	if err != nil {
		h.logger.Error("Failed to issue session token", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to login")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, LoginResponse{Token: token, User: *user})
}

// Logout resets the session: user, cart, wishlist and drawer all go.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	store, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "session unavailable")
		return
	}

	h.authService.Logout(store)
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// GetProfile returns the signed-in user.
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	store, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "session unavailable")
		return
	}

	user := store.User()
	if user == nil {
		middleware.RespondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, user)
}

// UpdateProfile applies a profile edit to the signed-in user.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	store, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "session unavailable")
		return
	}

	var req UpdateProfileRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, ok := h.authService.UpdateProfile(store, service.ProfileUpdate{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Phone:       req.Phone,
		DateOfBirth: req.DateOfBirth,
	})
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, user)
}
