package router

import (
	"net/http"

	"tinyshop/internal/handler"
	"tinyshop/internal/metrics"
	"tinyshop/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers mounted by the router.
type Handlers struct {
	Auth    *handler.AuthHandler
	Product *handler.ProductHandler
	Order   *handler.OrderHandler
	Health  *handler.HealthHandler
}

// New creates a new HTTP router with all routes and middleware configured.
// m may be nil, in which case no /metrics endpoint is served.
func New(h Handlers, verifier middleware.TokenVerifier, m *metrics.Metrics, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Order: RequestID -> Recovery -> Logging -> Metrics -> CORS
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	if m != nil {
		r.Use(m.Middleware)
	}
	r.Use(middleware.CORS)

	r.NotFound(handler.NotFound(logger))
	r.MethodNotAllowed(handler.MethodNotAllowed(logger))

	r.Get("/health", h.Health.Check)
	if m != nil {
		r.Method(http.MethodGet, "/metrics", m.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", h.Auth.Login)
		r.Post("/auth/register", h.Auth.Register)
		r.Get("/products", h.Product.GetAll)
		r.Get("/products/{id}", h.Product.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(middleware.BearerAuth(verifier, logger))

			r.Get("/auth/me", h.Auth.Me)
			r.Post("/products", h.Product.Create)
			r.Post("/orders", h.Order.Create)
			r.Get("/orders/{id}", h.Order.GetByID)
		})
	})

	return r
}
