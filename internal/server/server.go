package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/polashmiya/eGadget-Ecommerce/internal/catalog"
	"github.com/polashmiya/eGadget-Ecommerce/internal/config"
	custommiddleware "github.com/polashmiya/eGadget-Ecommerce/internal/middleware"
	"github.com/polashmiya/eGadget-Ecommerce/internal/service"
	"github.com/polashmiya/eGadget-Ecommerce/internal/session"
	"github.com/polashmiya/eGadget-Ecommerce/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config      *config.Config
	logger      *zap.Logger
	rateLimiter *custommiddleware.RateLimiter
}

func NewServer(cfg *config.Config, logger *zap.Logger, cat *catalog.Catalog, sessions *session.Manager) *Server {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.Server.Env == "development"))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Initialize services
	authService := service.NewAuthService(cfg.JWT.Secret, logger)
	checkoutService := service.NewCheckoutService(logger)

	// Initialize handlers
	catalogHandler := transport.NewCatalogHandler(cat, logger)
	cartHandler := transport.NewCartHandler(cat, logger)
	userHandler := transport.NewUserHandler(authService, logger)
	wishlistHandler := transport.NewWishlistHandler(cat, logger)
	checkoutHandler := transport.NewCheckoutHandler(checkoutService, logger)

	// Session resolution, rate limiting and auth gating for the API
	rateLimiter := custommiddleware.NewRateLimiter(custommiddleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		Burst:             cfg.RateLimit.Burst,
	}, logger)
	requireAuth := custommiddleware.RequireAuth(logger)

	router.Group(func(r chi.Router) {
		r.Use(custommiddleware.SessionMiddleware(authService, sessions, logger))
		r.Use(rateLimiter.Middleware())

		catalogHandler.RegisterRoutes(r)
		cartHandler.RegisterRoutes(r)
		userHandler.RegisterRoutes(r, requireAuth)
		wishlistHandler.RegisterRoutes(r, requireAuth)
		checkoutHandler.RegisterRoutes(r, requireAuth)
	})

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config:      cfg,
		logger:      logger,
		rateLimiter: rateLimiter,
	}

	return server
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	s.rateLimiter.Stop()

	s.logger.Sync()
	return nil
}
