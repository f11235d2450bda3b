package api

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bpofinance/bpofinance/internal/api/handlers"
	"github.com/bpofinance/bpofinance/internal/api/middleware"
	"github.com/bpofinance/bpofinance/internal/service"
)

// NewRouter creates and configures the HTTP router. authService and
// rateLimitService may be nil, which disables the corresponding middleware.
func NewRouter(
	payableService *service.PayableService,
	receivableService *service.ReceivableService,
	authService *service.AuthService,
	rateLimitService *service.RateLimitService,
	rateLimitDaily int,
	db *sql.DB,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logging)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS)
	r.Use(middleware.Metrics)

	// Health checks and metrics (no auth required)
	healthHandler := handlers.NewHealthHandler(db)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)
	r.Handle("/metrics", promhttp.Handler())

	// Create handlers
	payableHandler := handlers.NewPayableHandler(payableService)
	receivableHandler := handlers.NewReceivableHandler(receivableService)

	r.Route("/api", func(r chi.Router) {
		if authService != nil {
			authHandler := handlers.NewAuthHandler(authService)
			r.Post("/auth/token", authHandler.Token)
		}

		// Resource routes
		r.Group(func(r chi.Router) {
			if authService != nil {
				authMiddleware := middleware.NewAuthMiddleware(authService)
				r.Use(authMiddleware.Authenticate)
			}
			if rateLimitService != nil {
				rateLimitMiddleware := middleware.NewRateLimitMiddleware(rateLimitService, rateLimitDaily)
				r.Use(rateLimitMiddleware.RateLimit)
			}

			r.Route("/payables", func(r chi.Router) {
				r.Get("/", payableHandler.List)
				r.Post("/", payableHandler.Create)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", payableHandler.Get)
					r.Put("/", payableHandler.Update)
					r.Delete("/", payableHandler.Delete)
					r.Patch("/pay", payableHandler.Pay)
				})
			})

			r.Route("/receivables", func(r chi.Router) {
				r.Get("/", receivableHandler.List)
				r.Post("/", receivableHandler.Create)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", receivableHandler.Get)
					r.Put("/", receivableHandler.Update)
					r.Delete("/", receivableHandler.Delete)
					r.Patch("/receive", receivableHandler.Receive)
				})
			})
		})
	})

	return r
}
